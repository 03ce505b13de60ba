package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/eventsdesk/internal/auth"
	"github.com/mmynk/eventsdesk/internal/metrics"
)

type ping struct{}

const (
	privateProcedure = "/test.v1.Service/Private"
	publicProcedure  = "/test.v1.Service/Public"
)

// call runs a unary interceptor against a fake request for procedure.
func call(t *testing.T, interceptor connect.UnaryInterceptorFunc, procedure, authHeader string, inner connect.UnaryFunc) (string, error) {
	t.Helper()

	// Requests only carry a Spec once they pass through a handler.
	var operator string
	handler := connect.NewUnaryHandler(procedure,
		func(ctx context.Context, req *connect.Request[ping]) (*connect.Response[ping], error) {
			operator = GetOperator(ctx)
			if inner != nil {
				if _, err := inner(ctx, req); err != nil {
					return nil, err
				}
			}
			return connect.NewResponse(&ping{}), nil
		},
		connect.WithInterceptors(interceptor),
		connect.WithCodec(testCodec{}),
	)
	server := httptest.NewServer(handler)
	defer server.Close()

	client := connect.NewClient[ping, ping](http.DefaultClient, server.URL+procedure, connect.WithCodec(testCodec{}))
	req := connect.NewRequest(&ping{})
	if authHeader != "" {
		req.Header().Set("Authorization", authHeader)
	}
	_, err := client.CallUnary(context.Background(), req)
	return operator, err
}

type testCodec struct{}

func (testCodec) Name() string { return "json" }

func (testCodec) Marshal(any) ([]byte, error) { return []byte("{}"), nil }

func (testCodec) Unmarshal([]byte, any) error { return nil }

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, _, err := jwtManager.Generate(&auth.Operator{Username: "admin"})
	require.NoError(t, err)
	interceptor := RequireAuth(jwtManager, publicProcedure)

	t.Run("missing header", func(t *testing.T) {
		_, err := call(t, interceptor, privateProcedure, "", nil)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := call(t, interceptor, privateProcedure, "Basic "+token, nil)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := call(t, interceptor, privateProcedure, "Bearer not-a-jwt", nil)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("valid token", func(t *testing.T) {
		operator, err := call(t, interceptor, privateProcedure, "Bearer "+token, nil)
		require.NoError(t, err)
		assert.Equal(t, "admin", operator)
	})

	t.Run("public procedure", func(t *testing.T) {
		operator, err := call(t, interceptor, publicProcedure, "", nil)
		require.NoError(t, err)
		assert.Empty(t, operator)
	})
}

func TestLoggingInterceptor_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	interceptor := LoggingInterceptor(logger, m)

	_, err := call(t, interceptor, privateProcedure, "", nil)
	require.NoError(t, err)

	_, err = call(t, interceptor, privateProcedure, "", func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(privateProcedure, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(privateProcedure, connect.CodeNotFound.String())))
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called, "preflight must not reach the wrapped handler")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.True(t, called)
}

func TestRequestLogger_PassesStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
