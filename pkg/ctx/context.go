// Package ctx adapts the API's uniform handler shape to net/http.
//
// A handler receives a *Context and returns either a result, written as a
// 200 JSON body, or an error, mapped to a status by its apperr kind:
//
//	func (oc *OrderController) Send(c *ctx.Context) (any, error) {
//	    var in OrderIDInput
//	    if err := c.Bind(&in); err != nil {
//	        return nil, err
//	    }
//	    return oc.orders.SendOrder(c.Context(), in.OrderID)
//	}
//
//	router.Put("/order/send", "orders.send", ctx.Handle(oc.Send))
package ctx

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	"github.com/shashiranjanraj/pizzeria/pkg/bind"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// HandlerFunc is the handler signature used by every API endpoint.
type HandlerFunc func(c *Context) (any, error)

// Handle converts a HandlerFunc to a standard http.HandlerFunc.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)

		result, err := h(c)
		if err != nil {
			c.Fail(err)
			return
		}
		response.Success(w, result)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// UserID returns the caller identity attached by the access gate.
func (c *Context) UserID() (string, error) {
	id, ok := middleware.UserIDFromCtx(c.R.Context())
	if !ok {
		return "", apperr.New(apperr.Unauthenticated, "")
	}
	return id, nil
}

// Bind decodes the JSON body, falling back to the query string for string
// fields, and validates dest. Failures come back as InvalidInput carrying
// the first field message.
func (c *Context) Bind(dest any) error {
	errs, err := bind.Request(c.R, dest)
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, err.Error())
	}
	if validate.HasErrors(errs) {
		return apperr.New(apperr.InvalidInput, validate.First(errs))
	}
	return nil
}

// Fail writes err: domain failures as 400 {"error": msg}, Unauthenticated as
// an empty 401, anything else as a logged 500.
func (c *Context) Fail(err error) {
	switch apperr.KindOf(err) {
	case apperr.Unauthenticated:
		response.Unauthorized(c.W)
	case apperr.InvalidInput, apperr.AlreadyExists, apperr.InvalidCredentials, apperr.NotFound:
		response.BadRequest(c.W, message(err))
	default:
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method,
			"path", c.R.URL.Path,
			"error", err,
		)
		response.InternalError(c.W)
	}
}

// message returns the client-facing text of the outermost apperr.Error.
func message(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
