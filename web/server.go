package web

import (
	"klikk/views"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// AuthAPI is the remote auth service as the web front end sees it
type AuthAPI interface {
	views.Authenticator
	views.Registrar
}

// NewServer creates the web front end: the login and registration screens
// backed by auth, with the browser cookie as session store.
func NewServer(opts rweb.ServerOptions, auth AuthAPI) *rweb.Server {
	s := rweb.NewServer(opts)

	s.Use(rweb.RequestInfo)
	s.Use(RequestIDMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(LoggingMiddleware)

	setupRoutes(s, &screens{auth: auth})
	SetupStaticFiles(s)

	return s
}

// Run starts the server and blocks
func Run(s *rweb.Server, addr string) error {
	logger.Info("Klikk web server starting", "address", addr)
	return s.Run()
}
