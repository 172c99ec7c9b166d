// Package testkit drives the API from tests: JSON and multipart requests
// against an http.Handler, response assertions, and a scripted
// RoundTripper for outbound HTTP calls.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client sends requests straight to a handler. When Token is set every
// request carries it as a bearer credential.
type Client struct {
	t       testing.TB
	handler http.Handler
	Token   string
}

func NewClient(t testing.TB, h http.Handler) *Client {
	return &Client{t: t, handler: h}
}

// File is a multipart file part.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// JSON sends body encoded as JSON. A nil body sends no body at all.
func (c *Client) JSON(method, target string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("testkit: encode body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req)
}

// Multipart sends a multipart/form-data POST with the given fields and an
// optional file part.
func (c *Client) Multipart(target string, fields map[string]string, file *File) *httptest.ResponseRecorder {
	c.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			c.t.Fatalf("testkit: write field %s: %v", k, err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			c.t.Fatalf("testkit: create file part: %v", err)
		}
		if _, err := fw.Write(file.Content); err != nil {
			c.t.Fatalf("testkit: write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		c.t.Fatalf("testkit: close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.Do(req)
}

// Do serves req and returns the recorded response.
func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the response body into a T or fails the test.
func Decode[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("testkit: decode %q: %v", rec.Body.String(), err)
	}
	return v
}
