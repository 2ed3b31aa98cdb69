package pages

import (
	"klikk/models"
	"klikk/views"
	"klikk/views/components"

	"github.com/rohanthewiz/element"
)

// RenderRegister renders the registration screen
func RenderRegister(snap views.RegisterSnapshot) string {
	return views.SimpleLayout("Register", RegisterForm{Snapshot: snap})
}

// RegisterForm is the registration card. Browser validation is turned off;
// the field rules are applied on submit and reported under each field.
type RegisterForm struct {
	Snapshot views.RegisterSnapshot
}

func (p RegisterForm) Render(b *element.Builder) (x any) {
	form := p.Snapshot.Form
	errs := p.Snapshot.Errors

	submitLabel := "Register"
	submitAttrs := []string{"type", "submit", "class", "auth-submit", "id", "submit-btn"}
	if p.Snapshot.Loading {
		submitLabel = "Registering..."
		submitAttrs = append(submitAttrs, "disabled", "disabled")
	}

	b.DivClass("auth-card").R(
		element.RenderComponents(b,
			components.Header{AppName: views.AppTitle, Title: "Create your account"},
			components.Alert{ID: "success-message", Kind: components.AlertSuccess, Message: p.Snapshot.Success},
			components.Alert{ID: "error-message", Kind: components.AlertError, Message: errs[models.FieldGeneral]},
		),

		b.Form("class", "auth-form", "id", "register-form", "method", "post",
			"action", "/registration", "novalidate", "novalidate").R(
			element.RenderComponents(b,
				components.Field{
					Name: models.FieldFirstName, Label: "First Name",
					Value: form.FirstName, Error: errs[models.FieldFirstName],
					Autocomplete: "given-name", ClearOnInput: true,
				},
				components.Field{
					Name: models.FieldLastName, Label: "Last Name",
					Value: form.LastName, Error: errs[models.FieldLastName],
					Autocomplete: "family-name", ClearOnInput: true,
				},
				components.Field{
					Name: models.FieldEmail, Label: "Email", Type: "email",
					Value: form.Email, Error: errs[models.FieldEmail],
					Autocomplete: "email", ClearOnInput: true,
				},
				components.Field{
					Name: models.FieldPassword, Label: "Password", Type: "password",
					Error:        errs[models.FieldPassword],
					Placeholder:  "At least 6 characters, a number and a symbol",
					Autocomplete: "new-password", ClearOnInput: true,
				},
			),
			b.Button(submitAttrs...).T(submitLabel),
		),

		b.DivClass("auth-footer").R(
			b.Span().T("Already have an account? "),
			b.A("href", "/").T("Sign in"),
		),
	)
	return
}
