package web

import (
	"klikk/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewDevAPIServer creates the development auth API server.
// requestsPerMinute limits each client; zero disables the limit.
func NewDevAPIServer(opts rweb.ServerOptions, handlers *api.Handlers, requestsPerMinute int) *rweb.Server {
	s := rweb.NewServer(opts)

	s.Use(rweb.RequestInfo)
	s.Use(RequestIDMiddleware)
	s.Use(CorsMiddleware)
	s.Use(RateLimitMiddleware(requestsPerMinute))
	s.Use(LoggingMiddleware)

	handlers.Routes(s)

	logger.Debug("Dev API routes mounted", "address", opts.Address)
	return s
}
