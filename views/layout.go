package views

import (
	"github.com/rohanthewiz/element"
)

// AppTitle is the product name shown in page titles and headings
const AppTitle = "Klikk"

// clearFieldErrorJS empties a field's error paragraph as soon as the user
// types into it. The server clears the same error on the next submission,
// so this only keeps the page honest between submits.
const clearFieldErrorJS = `function clearFieldError(name){` +
	`var el=document.getElementById(name+'Error');if(el){el.textContent='';el.classList.add('hidden');}` +
	`var ok=document.getElementById('success-message');if(ok){ok.remove();}}`

// SimpleLayout wraps content in a minimal HTML document.
// Both auth screens use it; there is no navigation chrome.
func SimpleLayout(title string, content element.Component) string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(pageTitle(title)),
			b.Link("rel", "icon", "href", "/favicon.ico"),
			b.Link("rel", "stylesheet", "href", "/static/css/app.css"),
			b.Script().T(clearFieldErrorJS),
		),
		b.Body().R(
			b.Main("class", "auth-container").R(
				element.RenderComponents(b, content),
			),
		),
	)

	return b.String()
}

func pageTitle(title string) string {
	if title == "" {
		return AppTitle
	}
	return title + " - " + AppTitle
}
