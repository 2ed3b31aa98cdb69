package web

import (
	"context"
	"net/http"
	"net/url"

	"klikk/models"
	"klikk/views"
	"klikk/views/pages"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// screens holds the page handlers. Every request builds fresh views over
// the request's cookie, so no state is shared between requests.
type screens struct {
	auth AuthAPI
}

// setupRoutes configures the application routes
func setupRoutes(s *rweb.Server, h *screens) {
	s.Get("/", h.loginPage)
	s.Post("/login", h.login)
	s.Post("/logout", h.logout)
	s.Get("/registration", h.registrationPage)
	s.Post("/registration", h.register)
}

// loginPage shows the login form, or the logged-in card when the request
// carries a session cookie. No call is made to the auth API.
func (h *screens) loginPage(ctx rweb.Context) error {
	view := views.NewLoginView(NewCookieSessionStore(ctx), h.auth)
	return writePage(ctx, http.StatusOK, pages.RenderLogin(view.Snapshot()))
}

func (h *screens) login(ctx rweb.Context) error {
	view := views.NewLoginView(NewCookieSessionStore(ctx), h.auth)
	if view.State() == views.Authenticated {
		return ctx.Redirect(http.StatusSeeOther, "/")
	}

	form := parseForm(ctx)
	view.SetEmail(form.Get("email"))
	view.SetPassword(form.Get("password"))

	// The form marks both fields required; a request without them is not sent on
	if !view.Filled() {
		return writePage(ctx, http.StatusBadRequest, pages.RenderLogin(view.Snapshot()))
	}

	view.Submit(context.Background())
	if view.State() == views.Authenticated {
		return ctx.Redirect(http.StatusSeeOther, "/")
	}
	return writePage(ctx, http.StatusOK, pages.RenderLogin(view.Snapshot()))
}

func (h *screens) logout(ctx rweb.Context) error {
	view := views.NewLoginView(NewCookieSessionStore(ctx), h.auth)
	view.Logout()
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *screens) registrationPage(ctx rweb.Context) error {
	view := views.NewRegisterView(h.auth)
	return writePage(ctx, http.StatusOK, pages.RenderRegister(view.Snapshot()))
}

func (h *screens) register(ctx rweb.Context) error {
	view := views.NewRegisterView(h.auth)

	form := parseForm(ctx)
	for _, field := range models.RegistrationFields {
		view.Edit(field, form.Get(field))
	}

	status := http.StatusOK
	if !view.Submit(context.Background()) {
		status = http.StatusUnprocessableEntity
	}
	return writePage(ctx, status, pages.RenderRegister(view.Snapshot()))
}

// parseForm reads an application/x-www-form-urlencoded body
func parseForm(ctx rweb.Context) url.Values {
	values, err := url.ParseQuery(string(ctx.Request().Body()))
	if err != nil {
		logger.LogErr(err, "failed to parse form body", "path", ctx.Request().Path())
		return url.Values{}
	}
	return values
}

func writePage(ctx rweb.Context, status int, html string) error {
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	ctx.SetStatus(status)
	return ctx.WriteHTML(html)
}
