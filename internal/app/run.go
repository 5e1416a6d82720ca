package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/restifygo/internal/ctxlog"
)

// Run starts the API server and blocks until the context is canceled or
// the server fails. Shutdown is graceful with a bounded timeout.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.hooks.EmitStarting(ctx)

	addr := fmt.Sprintf(":%d", appConfig.Port)
	// Requests keep the logger but must outlive Run's cancellation so
	// graceful shutdown can drain them.
	baseCtx := context.WithoutCancel(ctx)
	a.httpServer = &http.Server{
		Addr:        addr,
		Handler:     a.router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("API server starting.", "address", fmt.Sprintf("http://localhost%s%s", addr, a.paths.Base()))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		a.closeStore()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down API server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("API server shutdown failed.", "error", err)
		a.closeStore()
		return err
	}

	a.logger.Debug("API server shut down gracefully.")
	return a.closeStore()
}
