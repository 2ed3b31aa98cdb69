package components

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Alert kinds
const (
	AlertError   = "error"
	AlertSuccess = "success"
)

// Alert is a page-level message box. Nothing is rendered when Message is empty.
type Alert struct {
	ID      string
	Kind    string
	Message string
}

func (a Alert) Render(b *element.Builder) (x any) {
	if a.Message == "" {
		return
	}
	b.Div("class", "alert alert-"+a.Kind, "id", a.ID, "role", "alert").T(html.EscapeString(a.Message))
	return
}
