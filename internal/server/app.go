// Package server wires the GophGarage REST server: storage selected by
// configuration, the services on top of it and the gin router, served with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/server/api"
	"github.com/dmitrijs2005/gophgarage/internal/server/config"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophgarage/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repositories.RepositoryManager
	router      http.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	m, err := repomanager.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, logger, m), nil
}

func newApp(cfg *config.Config, logger logging.Logger, m repositories.RepositoryManager) *App {
	if logging.ParseLevel(cfg.LogLevel) > logging.ParseLevel("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	h := api.NewHandler(
		services.NewUserService(m, cfg),
		services.NewGarageService(m),
		services.NewImageService(m, cfg),
		[]byte(cfg.SecretKey),
		logger,
	)

	return &App{
		config:      cfg,
		logger:      logger,
		repomanager: m,
		router:      h.NewRouter(cfg.APIPrefix),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes the storage.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Address, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.logger.Info(ctx, "Starting app...",
		"address", ln.Addr().String(), "storage", app.config.Storage, "prefix", app.config.APIPrefix)

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(shutdownCtx, "storage close error", "error", err)
	}

	app.logger.Info(shutdownCtx, "Server stopped")
	return serveErr
}
