package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/eventsdesk/internal/auth"
)

const AuthServiceName = "eventsdesk.v1.AuthService"

const LoginProcedure = "/" + AuthServiceName + "/Login"

// AuthHandler implements the AuthService RPCs.
type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// NewAuthServiceHandler builds an HTTP handler serving AuthService.
func NewAuthServiceHandler(h *AuthHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LoginProcedure, connect.NewUnaryHandler(LoginProcedure, h.Login, opts...))
	return "/" + AuthServiceName + "/", mux
}

// Login authenticates an operator and returns a bearer token.
func (h *AuthHandler) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	h.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, invalidArgument(errors.New("username and password are required"))
	}

	operator, err := h.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		h.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expiresAt, err := h.jwtManager.Generate(operator)
	if err != nil {
		h.logger.Error("Failed to generate token", "username", operator.Username, "error", err)
		return nil, toConnectError(err)
	}

	h.logger.Info("Operator logged in", "username", operator.Username)
	return connect.NewResponse(&LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}), nil
}
