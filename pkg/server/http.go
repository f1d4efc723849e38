package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const stopWaitTime = 5 * time.Second

type httpServer struct {
	ctx    context.Context
	cancel context.CancelFunc
	name   string
	server *http.Server
	logger *slog.Logger
}

// NewHTTPServer binds handler to the configured address. An empty host
// listens on all interfaces.
func NewHTTPServer(ctx context.Context, cancel context.CancelFunc, name string, cfg Config, handler http.Handler, logger *slog.Logger) Server {
	return &httpServer{
		ctx:    ctx,
		cancel: cancel,
		name:   name,
		server: &http.Server{Addr: cfg.Host + ":" + cfg.Port, Handler: handler},
		logger: logger,
	}
}

func (s *httpServer) Start() error {
	errCh := make(chan error, 1)
	s.logger.Info(fmt.Sprintf("%s service http server listening at %s without TLS", s.name, s.server.Addr))

	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-s.ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}

func (s *httpServer) Stop() error {
	defer s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), stopWaitTime)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("%s service error during shutdown at %s: %s", s.name, s.server.Addr, err))

		return fmt.Errorf("%s service error during shutdown at %s: %w", s.name, s.server.Addr, err)
	}
	s.logger.Info(fmt.Sprintf("%s service shutdown of http at %s", s.name, s.server.Addr))

	return nil
}
