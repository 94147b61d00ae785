// Package httpd serves a gglive device over HTTP.
//
// Routes:
//
//	GET    /                   live viewer page
//	GET    /state              device state
//	GET    /plots?from=&limit= page list
//	GET    /plot?id=|index=&width=&height=
//	                           page markup (image/svg+xml)
//	DELETE /plot?id=|index=    remove a page (also GET /remove)
//	DELETE /plots              remove every page (also GET /clear)
//	GET    /live               server-sent events on every update
//
// Pages are selected by stable id or by 1-based index; index 0 or -1, or no
// selector at all, is the newest page. A width or height of -1 (the
// default) keeps the capture size. When the device has a token, every
// request must carry it in the X-HTTPGD-TOKEN header or the token query
// parameter.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gogpu/gglive"
	"github.com/gogpu/gglive/store"
)

// Service is the device API the server exposes. *gglive.Device implements
// it.
type Service interface {
	ListPages(from, limit int) ([]store.PageInfo, error)
	Markup(sel store.Selector, width, height float64) (string, error)
	RemovePage(sel store.Selector) (bool, error)
	ClearPages() (bool, error)
	State() gglive.State
	Subscribe() (<-chan uint64, func(), error)
}

var _ Service = (*gglive.Device)(nil)

// Server is the HTTP transport of a device.
type Server struct {
	addr  string
	token string
	cors  bool
	log   *slog.Logger

	http *http.Server
}

var _ gglive.Transport = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a server for the address, token and CORS settings of cfg.
func New(cfg gglive.Config, opts ...Option) *Server {
	s := &Server{
		addr:  net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		token: cfg.Token,
		cors:  cfg.Cors,
		log:   gglive.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start implements gglive.Transport.
func (s *Server) Start(d *gglive.Device) (net.Addr, error) {
	return s.Serve(d)
}

// Serve begins listening for requests to svc (non-blocking) and returns
// the bound address.
func (s *Server) Serve(svc Service) (net.Addr, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s.http = &http.Server{
		Handler:           s.Handler(svc),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("httpd: serve", "err", err)
		}
	}()
	s.log.Info("httpd: listening", "addr", ln.Addr().String())
	return ln.Addr(), nil
}

// Shutdown gracefully stops the server. Live update streams end when the
// device closes its subscriptions.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Handler returns the routes for svc with all middleware applied.
func (s *Server) Handler(svc Service) http.Handler {
	h := &handlers{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.viewer)
	mux.HandleFunc("GET /state", h.state)
	mux.HandleFunc("GET /plots", h.plots)
	mux.HandleFunc("GET /plot", h.plot)
	mux.HandleFunc("DELETE /plot", h.remove)
	mux.HandleFunc("GET /remove", h.remove)
	mux.HandleFunc("DELETE /plots", h.clear)
	mux.HandleFunc("GET /clear", h.clear)
	mux.HandleFunc("GET /live", h.live)

	return chain(mux,
		recoveryMiddleware(s.log),
		loggingMiddleware(s.log),
		corsMiddleware(s.cors),
		tokenMiddleware(s.token),
	)
}
