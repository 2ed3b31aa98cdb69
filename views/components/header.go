package components

import (
	"github.com/rohanthewiz/element"
)

// Header is the logo and screen title at the top of an auth card
type Header struct {
	AppName string
	Title   string
}

func (h Header) Render(b *element.Builder) (x any) {
	b.Header("class", "auth-header").R(
		b.DivClass("auth-logo").R(
			b.H1().R(
				b.A("href", "/").T(h.AppName),
			),
		),
		b.H2Class("auth-title").T(h.Title),
	)
	return
}
