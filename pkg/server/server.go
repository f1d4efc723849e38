// Package server manages the lifecycle of the daemon's listeners.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Server is a long-running listener with a graceful stop.
type Server interface {
	Start() error
	Stop() error
}

type Config struct {
	Host string `env:"HOST"`
	Port string `env:"PORT"`
}

// StopSignalHandler blocks until the context ends or a termination signal
// arrives, then stops every server.
func StopSignalHandler(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, svcName string, servers ...Server) error {
	c := make(chan os.Signal, 2)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-c:
		defer cancel()

		var err error
		for _, server := range servers {
			err = errors.Join(err, server.Stop())
		}
		logger.Info(fmt.Sprintf("%s service shutdown by signal: %s", svcName, sig))

		return err
	case <-ctx.Done():
		return nil
	}
}
