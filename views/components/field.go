package components

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Field is a labelled form input with its own error line.
// The error paragraph is always rendered, with id "<Name>Error", so the
// page script can clear it while the user types.
type Field struct {
	Name         string
	Label        string
	Type         string // defaults to text
	Value        string
	Error        string
	Placeholder  string
	Autocomplete string
	Required     bool
	ClearOnInput bool
}

func (f Field) Render(b *element.Builder) (x any) {
	inputType := f.Type
	if inputType == "" {
		inputType = "text"
	}

	attrs := []string{
		"type", inputType,
		"class", f.inputClass(),
		"id", f.Name,
		"name", f.Name,
		"value", f.Value,
	}
	if f.Placeholder != "" {
		attrs = append(attrs, "placeholder", f.Placeholder)
	}
	if f.Autocomplete != "" {
		attrs = append(attrs, "autocomplete", f.Autocomplete)
	}
	if f.Required {
		attrs = append(attrs, "required", "required")
	}
	if f.ClearOnInput {
		attrs = append(attrs, "oninput", "clearFieldError('"+f.Name+"')")
	}

	errClass := "error-msg"
	if f.Error == "" {
		errClass += " hidden"
	}

	b.DivClass("form-group").R(
		b.LabelClass("form-label", "for", f.Name).T(f.Label),
		b.Input(attrs...),
		b.P("class", errClass, "id", f.Name+"Error").T(html.EscapeString(f.Error)),
	)
	return
}

func (f Field) inputClass() string {
	if f.Error != "" {
		return "form-input input-error"
	}
	return "form-input"
}
