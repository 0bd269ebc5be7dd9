package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bornholm/sidenav/pkg/log"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// serve runs the server until the context is done. Closers are released
// once the server has shut down.
func serve(ctx context.Context, server *http.Server, listener net.Listener, closers ...io.Closer) error {
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				slog.Error("could not release resource", log.Error(errors.WithStack(err)))
			}
		}
	}()

	shutdown := make(chan error, 1)
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdown <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "could not serve")
	}

	if err := <-shutdown; err != nil {
		slog.Error("could not shutdown server", log.Error(errors.WithStack(err)))
	}

	return nil
}
