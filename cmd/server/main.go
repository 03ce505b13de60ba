package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/eventsdesk/internal/auth"
	"github.com/mmynk/eventsdesk/internal/config"
	"github.com/mmynk/eventsdesk/internal/costs"
	"github.com/mmynk/eventsdesk/internal/metrics"
	"github.com/mmynk/eventsdesk/internal/middleware"
	"github.com/mmynk/eventsdesk/internal/rpc"
	"github.com/mmynk/eventsdesk/internal/service"
	"github.com/mmynk/eventsdesk/internal/storage/sqlite"
	"github.com/mmynk/eventsdesk/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	aggregator := costs.NewAggregator(store, cfg.Cost.Filter(), cfg.Cost.Interval, m, logger)

	routerCfg := rpc.RouterConfig{
		Events:  rpc.NewEventHandler(service.NewEventService(store, logger), aggregator, logger),
		Metrics: m,
		Logger:  logger,
	}
	if cfg.Auth.Enabled() {
		routerCfg.JWT = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
		authenticator := auth.NewStaticAuthenticator(cfg.Auth.OperatorUsername, cfg.Auth.OperatorPasswordHash)
		routerCfg.Auth = rpc.NewAuthHandler(authenticator, routerCfg.JWT, logger)
		logger.Info("Operator authentication enabled", "username", cfg.Auth.OperatorUsername)
	} else {
		logger.Warn("JWT_SECRET not set, RPCs are unauthenticated")
	}

	handler := middleware.RequestLogger(logger, middleware.CORS(rpc.NewRouter(routerCfg)))

	// h2c serves HTTP/2 without TLS, which Connect clients use by default.
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregatorDone := aggregator.Start(ctx)
	// The store must outlive any in-flight recompute.
	defer func() {
		stop()
		<-aggregatorDone
		logger.Info("Cost aggregator drained")
	}()

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", server.Addr)
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
