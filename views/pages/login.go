package pages

import (
	"html"

	"klikk/views"
	"klikk/views/components"

	"github.com/rohanthewiz/element"
)

// RenderLogin renders the login screen for either login state
func RenderLogin(snap views.LoginSnapshot) string {
	if snap.State == views.Authenticated {
		return views.SimpleLayout("Welcome", LoggedIn{Snapshot: snap})
	}
	return views.SimpleLayout("Login", LoginForm{Snapshot: snap})
}

// LoginForm is the unauthenticated login card
type LoginForm struct {
	Snapshot views.LoginSnapshot
}

func (p LoginForm) Render(b *element.Builder) (x any) {
	submitLabel := "Sign In"
	submitAttrs := []string{"type", "submit", "class", "auth-submit", "id", "submit-btn"}
	if p.Snapshot.Pending {
		submitLabel = "Signing in..."
		submitAttrs = append(submitAttrs, "disabled", "disabled")
	}

	b.DivClass("auth-card").R(
		element.RenderComponents(b,
			components.Header{AppName: views.AppTitle, Title: "Sign in to your account"},
			components.Alert{ID: "error-message", Kind: components.AlertError, Message: p.Snapshot.ErrorMessage},
		),

		b.Form("class", "auth-form", "id", "login-form", "method", "post", "action", "/login").R(
			element.RenderComponents(b,
				components.Field{
					Name: "email", Label: "Email", Type: "email",
					Value:        p.Snapshot.Email,
					Placeholder:  "Enter your email",
					Autocomplete: "email",
					Required:     true,
				},
				components.Field{
					Name: "password", Label: "Password", Type: "password",
					Placeholder:  "Enter your password",
					Autocomplete: "current-password",
					Required:     true,
				},
			),
			b.Button(submitAttrs...).T(submitLabel),
		),

		b.DivClass("auth-footer").R(
			b.Span().T("Don't have an account? "),
			b.A("href", "/registration").T("Create one"),
		),
	)
	return
}

// LoggedIn is the authenticated card with a logout action
type LoggedIn struct {
	Snapshot views.LoginSnapshot
}

func (p LoggedIn) Render(b *element.Builder) (x any) {
	id := p.Snapshot.Identity

	b.DivClass("auth-card").R(
		element.RenderComponents(b,
			components.Header{AppName: views.AppTitle, Title: "You are logged in"},
		),

		b.Wrap(func() {
			if !p.Snapshot.HasIdentity {
				return
			}
			b.DivClass("identity").R(
				b.Wrap(func() {
					if id.Name != "" {
						b.PClass("identity-name").T(html.EscapeString(id.Name))
					}
					if id.Email != "" {
						b.PClass("identity-email").T(html.EscapeString(id.Email))
					}
					if !id.ExpiresAt.IsZero() {
						b.Small().T("Session valid until " + id.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
					}
				}),
			)
		}),

		b.Form("class", "auth-form", "id", "logout-form", "method", "post", "action", "/logout").R(
			b.Button("type", "submit", "class", "auth-submit", "id", "logout-btn").T("Log out"),
		),
	)
	return
}
