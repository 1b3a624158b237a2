package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

type namedServer struct {
	name   string
	server *http.Server
}

func (a *App) servers() []namedServer {
	return []namedServer{
		{name: "http", server: a.httpServer},
		{name: "sse", server: a.sseServer},
	}
}

// Start launches the HTTP and SSE servers and returns a channel closed on shutdown.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	for _, s := range a.servers() {
		go func() {
			slog.Info(s.name+" server listening", "address", s.server.Addr)

			if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to listen and serve "+s.name+" server", "error", err)
				os.Exit(1)
			}
		}()
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		<-sigint

		close(terminateChan)

		slog.Info("application gracefully shutdown")
	}()

	return terminateChan
}

// Serve runs the HTTP server on the provided listener. Code streams are
// served on the same handler, so one listener is enough for tests.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// Stop cancels the app context, which ends every open code stream, then
// shuts the servers down, joins the stream producers and closes resources.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	for _, s := range a.servers() {
		if err := s.server.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", s.name+" server", "error", err)
		}
	}

	slog.InfoContext(ctx, "waiting for code streams to finish", "running", a.goroutine.Running())
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}
	slog.InfoContext(ctx, "all code streams have finished")

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
