package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cradoe/safetrain/internal/middleware"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
	limiterPruneInterval  = time.Minute
	sessionPruneInterval  = 5 * time.Minute
)

// ServeHTTP serves until SIGINT or SIGTERM, then drains requests and waits for background tasks.
func (app *Application) ServeHTTP(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	limiter := middleware.NewRateLimiter(app.Config.RateLimit.Enabled, app.Config.RateLimit.RPS, app.Config.RateLimit.Burst, app.errorHandler, app.Logger)
	limiter.StartPruning(ctx, limiterPruneInterval)

	if app.memory != nil {
		app.memory.StartPruning(ctx, sessionPruneInterval)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.HttpPort),
		Handler:      app.routes(limiter),
		ErrorLog:     slog.NewLogLogger(app.Logger.Handler(), slog.LevelWarn),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	shutdownErrorChan := make(chan error, 1)

	go func() {
		quitChan := make(chan os.Signal, 1)
		signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-quitChan:
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
		defer cancel()

		shutdownErrorChan <- srv.Shutdown(shutdownCtx)
	}()

	app.Logger.Info("starting server", slog.Group("server", "addr", srv.Addr))

	var err error
	if app.Config.TLS.CertFile != "" && app.Config.TLS.KeyFile != "" {
		err = srv.ListenAndServeTLS(app.Config.TLS.CertFile, app.Config.TLS.KeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownErrorChan
	if err != nil {
		return err
	}

	app.Logger.Info("stopped server", slog.Group("server", "addr", srv.Addr))

	app.WG.Wait()
	return nil
}
