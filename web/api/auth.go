// Package api is the development stand-in for the remote auth API.
// It speaks the same wire format as the production service: flat JSON
// bodies with a token on login, a message on registration, and a message
// on every error.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"klikk/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Messages returned by the development API
const (
	MsgRegistered         = "Registration successful. Please log in."
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgMissingCredentials = "Email and password are required"
	MsgInvalidBody        = "Invalid request body"
	MsgServerError        = "Something went wrong. Please try again."
)

// Registry is the account storage the handlers need.
type Registry interface {
	Create(data models.RegistrationData) (*models.User, error)
	Authenticate(creds models.Credentials) (*models.User, error)
	Count() (int, error)
}

// loginResponse and messageResponse are the two success shapes
type loginResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
}

// Handlers serves the development auth endpoints.
type Handlers struct {
	users    Registry
	secret   []byte
	tokenTTL time.Duration
}

// NewHandlers creates the handlers. Tokens are signed with secret and live
// as long as the client keeps them (seven days).
func NewHandlers(users Registry, secret []byte) (*Handlers, error) {
	if len(secret) < models.MinSecretLength {
		return nil, serr.New("dev API secret must be at least 32 characters")
	}
	return &Handlers{
		users:    users,
		secret:   secret,
		tokenTTL: models.TokenTTLDays * 24 * time.Hour,
	}, nil
}

// Register creates an account.
// POST /api/register
//
// Request body:
//
//	{ "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "engine1!" }
//
// Success (201):
//
//	{ "message": "Registration successful. Please log in." }
//
// Errors (all { "message": "..." }):
//   - 400: malformed body or a field that fails the registration rules
//   - 409: email already registered
func (h *Handlers) Register(ctx rweb.Context) error {
	var input models.RegistrationData
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeMessage(ctx, http.StatusBadRequest, MsgInvalidBody)
	}

	// Same rules as the client, so a bypassed form gets the same message
	if _, msg, bad := models.ValidateRegistration(input).First(models.RegistrationFields); bad {
		return writeMessage(ctx, http.StatusBadRequest, msg)
	}

	user, err := h.users.Create(input.Trimmed())
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return writeMessage(ctx, http.StatusConflict, MsgUserExists)
		}
		logger.LogErr(serr.Wrap(err, "failed to create user"), "email", input.Email)
		return writeMessage(ctx, http.StatusInternalServerError, MsgServerError)
	}

	logger.Info("User registered", "guid", user.GUID, "email", user.Email)
	return writeJSON(ctx, http.StatusCreated, messageResponse{Message: MsgRegistered})
}

// Login authenticates and returns a signed token.
// POST /api/login
//
// Request body:
//
//	{ "email": "ada@example.com", "password": "engine1!" }
//
// Success (200):
//
//	{ "token": "<jwt>" }
//
// Errors (all { "message": "..." }):
//   - 400: malformed body or missing email/password
//   - 401: unknown email or wrong password
func (h *Handlers) Login(ctx rweb.Context) error {
	var input models.Credentials
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeMessage(ctx, http.StatusBadRequest, MsgInvalidBody)
	}
	if input.Email == "" || input.Password == "" {
		return writeMessage(ctx, http.StatusBadRequest, MsgMissingCredentials)
	}

	user, err := h.users.Authenticate(input)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "authentication error"), "email", input.Email)
		return writeMessage(ctx, http.StatusInternalServerError, MsgServerError)
	}
	if user == nil {
		// Don't reveal whether the email exists
		return writeMessage(ctx, http.StatusUnauthorized, MsgInvalidCredentials)
	}

	token, err := models.SignToken(h.secret, user.GUID, user.Email, user.DisplayName(), h.tokenTTL)
	if err != nil {
		logger.LogErr(err, "failed to sign token", "guid", user.GUID)
		return writeMessage(ctx, http.StatusInternalServerError, MsgServerError)
	}

	logger.Info("User logged in", "guid", user.GUID)
	return writeJSON(ctx, http.StatusOK, loginResponse{Token: token})
}

// Health reports liveness and the number of accounts.
// GET /api/health
func (h *Handlers) Health(ctx rweb.Context) error {
	n, err := h.users.Count()
	if err != nil {
		logger.LogErr(err, "health check failed")
		return writeMessage(ctx, http.StatusServiceUnavailable, MsgServerError)
	}
	return writeJSON(ctx, http.StatusOK, healthResponse{Status: "ok", Users: n})
}

// Routes mounts the handlers on s.
func (h *Handlers) Routes(s *rweb.Server) {
	s.Post(models.LoginPath, h.Login)
	s.Post(models.RegisterPath, h.Register)
	s.Get("/api/health", h.Health)
}

func writeJSON(ctx rweb.Context, status int, body any) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(body)
}

func writeMessage(ctx rweb.Context, status int, message string) error {
	return writeJSON(ctx, status, messageResponse{Message: message})
}
