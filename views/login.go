package views

import (
	"context"
	"strings"

	"klikk/models"

	"github.com/rohanthewiz/logger"
)

// Authenticator performs the remote login call.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (token string, err error)
}

// LoginState is the login screen's state.
type LoginState int

const (
	Unauthenticated LoginState = iota
	Authenticated
)

func (s LoginState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// LoginView is the login screen's state machine. It is not safe for
// concurrent use; each front end drives it from a single goroutine.
//
// A submission is split into Begin and Settle so an event loop can run
// the network call elsewhere; Submit does all three steps inline.
type LoginView struct {
	store models.SessionStore
	auth  Authenticator

	state    LoginState
	email    string
	password string
	errorMsg string
	pending  bool
}

// LoginSnapshot is a read-only copy of the view for rendering.
type LoginSnapshot struct {
	State        LoginState
	Email        string
	ErrorMessage string
	Pending      bool
	Identity     models.TokenInfo
	HasIdentity  bool
}

// NewLoginView creates the view and picks its initial state from the store:
// a live token means the user is already logged in. No network call is made.
func NewLoginView(store models.SessionStore, auth Authenticator) *LoginView {
	v := &LoginView{store: store, auth: auth}
	if _, ok := store.Get(); ok {
		v.state = Authenticated
	}
	return v
}

// State reports whether the view is logged in.
func (v *LoginView) State() LoginState { return v.state }

// ErrorMessage is the last login failure, empty when there is none.
func (v *LoginView) ErrorMessage() string { return v.errorMsg }

// Pending is true between Begin and Settle.
func (v *LoginView) Pending() bool { return v.pending }

// Email returns the email as typed.
func (v *LoginView) Email() string { return v.email }

// Password returns the password as typed.
func (v *LoginView) Password() string { return v.password }

// SetEmail updates the email field. The current error is kept.
func (v *LoginView) SetEmail(email string) { v.email = email }

// SetPassword updates the password field. The current error is kept.
func (v *LoginView) SetPassword(password string) { v.password = password }

// Filled reports whether both fields hold something worth sending.
// A blank email counts as empty; the password is taken as typed.
func (v *LoginView) Filled() bool {
	return strings.TrimSpace(v.email) != "" && v.password != ""
}

// Begin starts a submission and returns the credentials to send.
// It refuses while logged in or while a request is already out.
func (v *LoginView) Begin() (models.Credentials, bool) {
	if v.state == Authenticated || v.pending {
		return models.Credentials{}, false
	}
	v.pending = true
	return models.Credentials{Email: v.email, Password: v.password}, true
}

// Settle applies the outcome of the request started by Begin.
func (v *LoginView) Settle(token string, err error) {
	v.pending = false

	if err == nil && token == "" {
		err = &models.EndpointError{Status: 200}
	}
	if err != nil {
		logger.LogErr(err, "login failed", "email", v.email)
		v.errorMsg = models.ErrorMessage(err, models.LoginFailedMessage)
		return
	}

	if err := v.store.Set(token, models.TokenTTLDays); err != nil {
		logger.LogErr(err, "failed to persist login token")
		v.errorMsg = models.LoginFailedMessage
		return
	}

	logger.Info("Login successful", "email", v.email)
	v.errorMsg = ""
	v.password = ""
	v.state = Authenticated
}

// Submit runs a full login: Begin, the remote call, Settle.
// It reports whether a request was sent.
func (v *LoginView) Submit(ctx context.Context) bool {
	creds, ok := v.Begin()
	if !ok {
		return false
	}
	token, err := v.auth.Login(ctx, creds)
	v.Settle(token, err)
	return true
}

// Logout drops the stored token and resets the form.
func (v *LoginView) Logout() {
	if err := v.store.Clear(); err != nil {
		logger.LogErr(err, "failed to clear session token")
	}
	v.state = Unauthenticated
	v.email = ""
	v.password = ""
	v.errorMsg = ""
	v.pending = false
}

// Snapshot copies the view's state for rendering.
func (v *LoginView) Snapshot() LoginSnapshot {
	snap := LoginSnapshot{
		State:        v.state,
		Email:        v.email,
		ErrorMessage: v.errorMsg,
		Pending:      v.pending,
	}
	if v.state == Authenticated {
		if token, ok := v.store.Get(); ok {
			snap.Identity, snap.HasIdentity = models.DescribeToken(token)
		}
	}
	return snap
}
