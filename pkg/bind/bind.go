// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// DefaultMaxBodyBytes applies when no Limit middleware ran.
const DefaultMaxBodyBytes int64 = 4 << 20

type limitKey struct{}

// Limit caps the JSON body size for every request below it at n bytes.
func Limit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 {
				r = r.WithContext(context.WithValue(r.Context(), limitKey{}, n))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func maxBodyBytes(r *http.Request) int64 {
	if n, ok := r.Context().Value(limitKey{}).(int64); ok {
		return n
	}
	return DefaultMaxBodyBytes
}

// JSON decodes r.Body as JSON into dest and runs validation. An empty body
// leaves dest untouched so the validation rules report the missing fields.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	if err := decode(r, dest); err != nil {
		return nil, err
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Request decodes the JSON body like JSON, then fills string fields that are
// still empty from query parameters of the same json name, then validates.
// This lets DELETE and GET routes take their ids either way.
func Request(r *http.Request, dest interface{}) (map[string]string, error) {
	if err := decode(r, dest); err != nil {
		return nil, err
	}

	fillFromQuery(r.URL.Query(), dest)

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

func fillFromQuery(q url.Values, dest interface{}) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		v := rv.Field(i)
		if !f.IsExported() || v.Kind() != reflect.String || v.String() != "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if val := q.Get(name); val != "" {
			v.SetString(val)
		}
	}
}

func decode(r *http.Request, dest interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes(r))

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
