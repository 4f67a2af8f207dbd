package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/rigbudget/internal/auth"
	"github.com/mmynk/rigbudget/internal/metrics"
	"github.com/mmynk/rigbudget/internal/models"
	"github.com/mmynk/rigbudget/pkg/api"
)

type seen struct {
	userID string
	email  string
	called bool
}

func recordingNext(s *seen) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		s.called = true
		s.userID = GetUserID(ctx)
		s.email = GetEmail(ctx)
		return connect.NewResponse(&api.SignOutResponse{}), nil
	}
}

func requestWithAuth(value string) *connect.Request[api.SignOutRequest] {
	req := connect.NewRequest(&api.SignOutRequest{})
	if value != "" {
		req.Header().Set("Authorization", value)
	}
	return req
}

func validToken(t *testing.T, jwt *auth.JWTManager) string {
	t.Helper()
	token, err := jwt.Generate(&models.User{ID: "user-1", Email: "ada@example.com"})
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	jwt := auth.NewJWTManager("secret", time.Hour)
	token := validToken(t, jwt)

	t.Run("valid token populates context", func(t *testing.T) {
		var s seen
		_, err := RequireAuth(jwt)(recordingNext(&s))(context.Background(), requestWithAuth("Bearer "+token))
		require.NoError(t, err)
		assert.Equal(t, "user-1", s.userID)
		assert.Equal(t, "ada@example.com", s.email)
	})

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"bad token":      "Bearer garbage",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var s seen
			_, err := RequireAuth(jwt)(recordingNext(&s))(context.Background(), requestWithAuth(header))
			require.Error(t, err)
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
			assert.False(t, s.called)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwt := auth.NewJWTManager("secret", time.Hour)

	var s seen
	_, err := OptionalAuth(jwt)(recordingNext(&s))(context.Background(), requestWithAuth("Bearer garbage"))
	require.NoError(t, err)
	assert.True(t, s.called)
	assert.Empty(t, s.userID)

	s = seen{}
	_, err = OptionalAuth(jwt)(recordingNext(&s))(context.Background(), requestWithAuth("Bearer "+validToken(t, jwt)))
	require.NoError(t, err)
	assert.Equal(t, "user-1", s.userID)
}

func TestLoggingInterceptorRecordsMetrics(t *testing.T) {
	m := metrics.New()
	interceptor := LoggingInterceptor(m)

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&api.SignOutResponse{}), nil
	}
	notFound := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("nope"))
	}
	plain := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, errors.New("boom")
	}

	ctx := context.Background()
	_, err := interceptor(ok)(ctx, requestWithAuth(""))
	require.NoError(t, err)
	_, err = interceptor(notFound)(ctx, requestWithAuth(""))
	require.Error(t, err)
	_, err = interceptor(plain)(ctx, requestWithAuth(""))
	require.Error(t, err)

	// Requests built outside a handler carry an empty procedure.
	n, err := testutil.GatherAndCount(m.Registry(), "rigbudget_rpc_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLoggingInterceptorNilMetrics(t *testing.T) {
	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&api.SignOutResponse{}), nil
	}
	_, err := LoggingInterceptor(nil)(ok)(context.Background(), requestWithAuth(""))
	assert.NoError(t, err)
}
