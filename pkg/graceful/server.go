// Package graceful runs an HTTP server until its context is canceled.
package graceful

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// Server drains in-flight requests for up to its shutdown timeout once the serving
// context ends.
type Server struct {
	srv     *http.Server
	log     *slog.Logger
	timeout time.Duration
}

// NewServer falls back to a 10s drain when shutdownTimeout is not positive.
func NewServer(log *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) *Server {
	if log == nil {
		log = slog.Default()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &Server{srv: srv, log: log, timeout: shutdownTimeout}
}

// ListenAndServe binds srv.Addr first, so a taken port fails immediately.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve blocks until ctx is canceled and the drain finished, or until serving fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	served := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", slog.String("addr", ln.Addr().String()))
		served <- ignoreClosed(s.srv.Serve(ln))
	}()

	select {
	case err := <-served:
		if err != nil {
			s.log.Error("http server stopped", slog.Any("error", err))
		}
		return err
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.log.Info("draining http server", slog.Duration("timeout", s.timeout))
	if err := s.srv.Shutdown(drainCtx); err != nil {
		s.log.Error("http server drain failed", slog.Any("error", err))
		return err
	}
	return <-served
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
