package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/localedocs/pkg/logger"
)

// Server is an http.Server with graceful shutdown.
type Server struct {
	cfg *settings

	mu       sync.Mutex
	srv      *http.Server
	shutdown sync.Once
	stopErr  error
}

// New returns a Server configured by opts.
func New(opts ...Option) *Server {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Discard()
	}
	return &Server{cfg: cfg}
}

// Run listens and serves handler until ctx is done, a termination signal arrives or the
// listener fails. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	srv := &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
		ErrorLog:     slog.NewLogLogger(s.cfg.log.Handler(), slog.LevelWarn),
	}
	s.srv = srv
	s.mu.Unlock()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	addr := ln.Addr().String()
	s.cfg.log.InfoContext(ctx, "http server started", logger.Addr(addr))
	for _, fn := range s.cfg.onStart {
		fn(addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	var serveErr error
	select {
	case <-ctx.Done():
		s.stop(context.WithoutCancel(ctx))
		serveErr = <-errCh
	case <-sig:
		s.stop(context.WithoutCancel(ctx))
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, serveErr)
	}
	if err := s.shutdownErr(); err != nil {
		return err
	}
	s.cfg.log.InfoContext(ctx, "http server stopped", logger.Addr(addr))
	return nil
}

// Shutdown gracefully stops a running server. Repeated calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop(ctx)
	return s.shutdownErr()
}

func (s *Server) shutdownErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopErr
}

func (s *Server) stop(ctx context.Context) {
	s.shutdown.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.mu.Lock()
			s.stopErr = errors.Join(ErrShutdown, err)
			s.mu.Unlock()
		}
	})
}
