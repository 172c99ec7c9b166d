package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/bind"
)

type orderInput struct {
	Table int     `json:"table" validate:"required"`
	Name  *string `json:"name"`
}

func TestJSONDecodesAndValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"table":5,"name":"Mesa 5"}`))

	var in orderInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 5, in.Table)
	require.NotNil(t, in.Name)
	assert.Equal(t, "Mesa 5", *in.Name)
}

func TestJSONEmptyBodyReportsMissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/order", nil)

	var in orderInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Equal(t, "The table field is required.", errs["table"])
}

func TestJSONMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"table":`))

	var in orderInput
	_, err := bind.JSON(req, &in)
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestJSONTooLarge(t *testing.T) {
	var err error
	h := bind.Limit(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in orderInput
		_, err = bind.JSON(r, &in)
	}))

	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"table":5,"name":"a very long customer name"}`))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.ErrorContains(t, err, "too large")
}

func TestJSONDefaultLimitWithoutMiddleware(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "16")
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"table":5,"name":"a very long customer name"}`))

	var in orderInput
	_, err := bind.JSON(req, &in)
	assert.NoError(t, err)
	assert.Equal(t, 5, in.Table)
}

type idInput struct {
	OrderID string `json:"order_id" validate:"required"`
}

func TestRequestReadsQueryWhenBodyIsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/order?order_id=o-1", nil)

	var in idInput
	errs, err := bind.Request(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "o-1", in.OrderID)
}

func TestRequestPrefersBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/order?order_id=from-query", strings.NewReader(`{"order_id":"from-body"}`))

	var in idInput
	_, err := bind.Request(req, &in)
	require.NoError(t, err)
	assert.Equal(t, "from-body", in.OrderID)
}

func TestRequestMissingEverywhere(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/order/detail", nil)

	var in idInput
	errs, err := bind.Request(req, &in)
	require.NoError(t, err)
	assert.Equal(t, "The order_id field is required.", errs["order_id"])
}
