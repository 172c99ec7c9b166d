package ctx_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	appctx "github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
)

func serve(h appctx.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	appctx.Handle(h)(rec, req)
	return rec
}

func TestHandleWritesResult(t *testing.T) {
	rec := serve(func(c *appctx.Context) (any, error) {
		return map[string]any{"ok": true}, nil
	}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestFailMapsKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"invalid input", apperr.New(apperr.InvalidInput, "Email incorrect"), 400, `{"error":"Email incorrect"}`},
		{"already exists", apperr.New(apperr.AlreadyExists, "User already exists"), 400, `{"error":"User already exists"}`},
		{"credentials", apperr.New(apperr.InvalidCredentials, "User/password incorrect"), 400, `{"error":"User/password incorrect"}`},
		{"wrapped not found", fmt.Errorf("send: %w", apperr.New(apperr.NotFound, "Order not found")), 400, `{"error":"Order not found"}`},
		{"upstream is masked", apperr.Wrap(apperr.Upstream, errors.New("dial tcp: refused"), ""), 500, `{"error":"Internal Server Error"}`},
		{"unclassified is masked", errors.New("boom"), 500, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(func(c *appctx.Context) (any, error) {
				return nil, tt.err
			}, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestFailUnauthenticatedHasNoBody(t *testing.T) {
	rec := serve(func(c *appctx.Context) (any, error) {
		_, err := c.UserID()
		return nil, err
	}, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUserIDFromGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))

	rec := serve(func(c *appctx.Context) (any, error) {
		id, err := c.UserID()
		return map[string]string{"id": id}, err
	}, req)

	assert.JSONEq(t, `{"id":"user-1"}`, rec.Body.String())
}

func TestBindInvalidInput(t *testing.T) {
	type input struct {
		Table int `json:"table" validate:"required"`
	}

	rec := serve(func(c *appctx.Context) (any, error) {
		var in input
		if err := c.Bind(&in); err != nil {
			return nil, err
		}
		return in, nil
	}, httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"The table field is required."}`, rec.Body.String())
}

func TestBindMalformedJSON(t *testing.T) {
	rec := serve(func(c *appctx.Context) (any, error) {
		var in struct{}
		return nil, c.Bind(&in)
	}, httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"table":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}
