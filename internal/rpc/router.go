package rpc

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/eventsdesk/internal/auth"
	"github.com/mmynk/eventsdesk/internal/metrics"
	"github.com/mmynk/eventsdesk/internal/middleware"
)

// RouterConfig collects what NewRouter mounts.
type RouterConfig struct {
	Events  *EventHandler
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// Auth and JWT are both nil when authentication is disabled.
	Auth *AuthHandler
	JWT  *auth.JWTManager
}

// NewRouter mounts the Connect services, /metrics and /healthz.
func NewRouter(cfg RouterConfig) http.Handler {
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor(cfg.Logger, cfg.Metrics)}
	if cfg.JWT != nil {
		interceptors = append(interceptors, middleware.RequireAuth(cfg.JWT, LoginProcedure))
	}
	opts := connect.WithInterceptors(interceptors...)

	mux := http.NewServeMux()

	eventPath, eventHandler := NewEventServiceHandler(cfg.Events, opts)
	mux.Handle(eventPath, eventHandler)

	if cfg.Auth != nil {
		authPath, authHandler := NewAuthServiceHandler(cfg.Auth, opts)
		mux.Handle(authPath, authHandler)
	}

	mux.Handle("GET /metrics", cfg.Metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
