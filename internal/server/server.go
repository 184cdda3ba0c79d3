// Package server owns the HTTP listener that serves the catalog on a
// background goroutine.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server wraps an echo instance bound to one address.  Start returns once
// the socket is listening; Shutdown drains in-flight requests.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	done     chan error
}

// New builds an echo instance with recovery and the given middleware and
// lets register attach routes to it.
func New(addr string, logger *zap.Logger, register func(*echo.Echo), mw ...echo.MiddlewareFunc) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(mw...)
	register(e)
	return &Server{echo: e, addr: addr, logger: logger}
}

// Echo exposes the underlying instance, mainly for tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// Start binds the address and serves on a new goroutine.  Binding errors
// are returned synchronously so the caller never races the listener.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return errors.New("server already started")
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = ln
	s.echo.Listener = ln
	s.done = make(chan error, 1)

	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
	go func() {
		err := s.echo.Start("")
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			s.logger.Error("http server stopped", zap.Error(err))
		}
		s.done <- err
	}()
	return nil
}

// Addr is the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Done yields the serve error (nil after a clean shutdown) once the
// listener goroutine exits.  It is nil before Start.
func (s *Server) Done() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	started := s.listener != nil
	s.mu.Unlock()
	if !started {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
