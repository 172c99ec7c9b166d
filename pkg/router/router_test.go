package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

func text(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }
}

func tag(name string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestMethodsAndGroups(t *testing.T) {
	r := router.New()
	r.Post("/users", "users.store", text("store"))

	g := r.Group("/", tag("gate"))
	g.Put("/order/send", "orders.send", text("send"))
	g.Delete("order", "orders.destroy", text("destroy"), tag("inner"))

	cases := []struct {
		method, path, body string
		chain              []string
	}{
		{http.MethodPost, "/users", "store", nil},
		{http.MethodPut, "/order/send", "send", []string{"gate"}},
		{http.MethodDelete, "/order", "destroy", []string{"gate", "inner"}},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.body, rec.Body.String())
		assert.Equal(t, tc.chain, rec.Header().Values("X-Chain"))
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order/send", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutesAreSortedAndNamed(t *testing.T) {
	r := router.New()
	r.Put("/order/send", "orders.send", text(""))
	r.Delete("/order", "orders.destroy", text(""))
	r.Post("/order", "orders.store", text(""))
	r.Mount("/files", "files", http.NotFoundHandler())

	assert.Equal(t, []router.RouteInfo{
		{Method: "*", Path: "/files/*", Name: "files"},
		{Method: http.MethodDelete, Path: "/order", Name: "orders.destroy"},
		{Method: http.MethodPost, Path: "/order", Name: "orders.store"},
		{Method: http.MethodPut, Path: "/order/send", Name: "orders.send"},
	}, r.Routes())
}

func TestURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", text(""))

	url, err := r.URL("orders.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/42", url)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}
