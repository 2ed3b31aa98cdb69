package web

import (
	"net/http"
	"net/url"
	"time"

	"klikk/models"

	"github.com/rohanthewiz/rweb"
)

// cookieIO is the slice of a request/response pair the cookie store needs
type cookieIO interface {
	readCookie(name string) (string, bool)
	writeSetCookie(header string)
}

// rwebCookies adapts an rweb request context to cookieIO
type rwebCookies struct {
	ctx rweb.Context
}

func (c rwebCookies) readCookie(name string) (string, bool) {
	val, err := c.ctx.GetCookie(name)
	if err != nil {
		return "", false
	}
	return val, true
}

func (c rwebCookies) writeSetCookie(header string) {
	c.ctx.Response().SetHeader("Set-Cookie", header)
}

// CookieSessionStore is the web front end's SessionStore: the token lives
// in the browser's jwt_token cookie and expiry is enforced by the browser.
// A store is bound to one request; writes are visible to later reads in
// the same request.
type CookieSessionStore struct {
	io    cookieIO
	clock models.Clock

	written bool
	value   string
}

// NewCookieSessionStore binds a store to the current request.
func NewCookieSessionStore(ctx rweb.Context) *CookieSessionStore {
	return newCookieSessionStore(rwebCookies{ctx: ctx}, time.Now)
}

func newCookieSessionStore(io cookieIO, clock models.Clock) *CookieSessionStore {
	return &CookieSessionStore{io: io, clock: clock}
}

func (s *CookieSessionStore) Get() (string, bool) {
	if s.written {
		return s.value, s.value != ""
	}

	raw, ok := s.io.readCookie(models.SessionSlot)
	if !ok {
		return "", false
	}
	token, err := url.QueryUnescape(raw)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s *CookieSessionStore) Set(token string, ttlDays int) error {
	now := s.clock()
	expires, err := models.TokenExpiry(now, ttlDays)
	if err != nil {
		return err
	}

	s.io.writeSetCookie(sessionCookie(url.QueryEscape(token), expires, int(expires.Sub(now).Seconds())).String())
	s.written, s.value = true, token
	return nil
}

func (s *CookieSessionStore) Clear() error {
	s.io.writeSetCookie(sessionCookie("", time.Unix(0, 0), -1).String())
	s.written, s.value = true, ""
	return nil
}

// sessionCookie builds the jwt_token cookie. maxAge < 0 deletes it.
func sessionCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     models.SessionSlot,
		Value:    value,
		Path:     "/",
		Expires:  expires.UTC(),
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
