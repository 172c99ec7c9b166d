package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/auth"
)

func newTestTokens(t *testing.T, ttl time.Duration) *auth.Tokens {
	t.Helper()
	tokens, err := auth.NewTokens([]byte("gate-secret"), ttl)
	require.NoError(t, err)
	return tokens
}

func gateHandler(t *testing.T, v Verifier, called *bool, seen *string) http.Handler {
	t.Helper()
	return Authenticate(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*seen, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthenticate_Rejections(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)
	valid, err := tokens.Issue("user-1", "Test User", "test@example.com")
	require.NoError(t, err)

	expired, err := newTestTokens(t, -time.Hour).Issue("user-1", "Test User", "test@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		set    bool
	}{
		{name: "missing header"},
		{name: "empty header", header: "", set: true},
		{name: "scheme only", header: "Bearer", set: true},
		{name: "scheme with blank credential", header: "Bearer   ", set: true},
		{name: "credential without scheme", header: valid, set: true},
		{name: "wrong scheme", header: "Basic " + valid, set: true},
		{name: "garbage token", header: "Bearer not.a.jwt", set: true},
		{name: "expired token", header: "Bearer " + expired, set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var seen string
			h := gateHandler(t, tokens, &called, &seen)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.set {
				req.Header["Authorization"] = []string{tt.header}
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.False(t, called, "downstream handler must not run")
		})
	}
}

func TestAuthenticate_ValidTokenAttachesSubject(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)
	raw, err := tokens.Issue("user-42", "Test User", "test@example.com")
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + raw, "bearer " + raw, "Bearer  " + raw} {
		var called bool
		var seen string
		h := gateHandler(t, tokens, &called, &seen)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, "user-42", seen)
	}
}

func TestAuthenticate_Idempotent(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)
	raw, err := tokens.Issue("user-7", "n", "e@x.io")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		var called bool
		var seen string
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		gateHandler(t, tokens, &called, &seen).ServeHTTP(rec, req)
		assert.Equal(t, "user-7", seen)
	}
}

func TestUserIDFromCtx(t *testing.T) {
	_, ok := UserIDFromCtx(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromCtx(WithUserID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := UserIDFromCtx(WithUserID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}
