package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server wraps the HTTP listener. h2c lets HTTP/2 clients connect
// without TLS, which is how local frontends and proxies talk to it.
type Server struct {
	httpServer *http.Server
}

// New creates a server listening on port with the given handler.
func New(port string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    port,
			Handler: h2c.NewHandler(handler, &http2.Server{}),
		},
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	log.Printf("🚀 PlotKit: serving API on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
