// @title Animal Rescue API
// @version 1.0
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animal-rescue/internal/config"
	"animal-rescue/internal/forms"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/router"
	"animal-rescue/internal/visitor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Zap().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := router.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("open storage", map[string]any{"err": err})
		os.Exit(1)
	}
	defer func() { _ = closeStore() }()

	verifier, backend, err := router.OpenAuth(cfg, log)
	if err != nil {
		log.Error("configure auth", map[string]any{"err": err})
		os.Exit(1)
	}

	reg := visitor.NewRegistry(visitor.Deps{
		Backend:       backend,
		Definitions:   forms.Definitions(),
		TTL:           cfg.VisitorTTL,
		Secure:        cfg.IsProduction(),
		Log:           log,
		MaxWorkspaces: cfg.MaxVisitors,
	})
	go reg.Run(ctx, time.Minute)

	opts := router.Options{
		AuthVerifier:    verifier,
		AuthBackend:     backend,
		Store:           store,
		Registry:        reg,
		Log:             log,
		AllowedOrigins:  cfg.AllowedOrigins,
		CatalogPageSize: cfg.CatalogPageSize,
	}
	// Ojo: un *router.Limiter nil no debe llegar como interfaz no-nil.
	if lim := router.OpenLimiter(ctx, cfg, log); lim != nil {
		opts.Limiter = lim
		defer func() { _ = lim.Close() }()
		go sweepLimiter(ctx, lim)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + cfg.UpstreamTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": cfg.StorageDriver, "env": cfg.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", map[string]any{"err": err})
	}
}

func sweepLimiter(ctx context.Context, lim *router.Limiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			lim.Sweep()
		}
	}
}
