package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// MockStep is one scripted response. Method "" matches any method; Match is
// a substring of the request URL ("" matches any URL).
type MockStep struct {
	Method string
	Match  string
	Status int
	Body   string
	Header map[string]string
}

// MockTransport is an http.RoundTripper that answers from MockSteps instead
// of the network. Steps are tried in order; the first match wins.
//
//	mt := testkit.NewMockTransport(testkit.MockStep{Method: "PUT", Match: "banner.png"})
//	client := mt.Client()
type MockTransport struct {
	mu    sync.Mutex
	steps []mockEntry
	// Strict makes unmatched requests fail instead of returning 404.
	Strict bool
}

type mockEntry struct {
	step  MockStep
	calls int
}

func NewMockTransport(steps ...MockStep) *MockTransport {
	mt := &MockTransport{}
	for _, s := range steps {
		mt.steps = append(mt.steps, mockEntry{step: s})
	}
	return mt
}

// Client returns an *http.Client that uses the transport.
func (mt *MockTransport) Client() *http.Client {
	return &http.Client{Transport: mt}
}

func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.steps {
		e := &mt.steps[i]
		if e.step.Method != "" && !strings.EqualFold(e.step.Method, req.Method) {
			continue
		}
		if !strings.Contains(req.URL.String(), e.step.Match) {
			continue
		}
		e.calls++
		return respond(req, e.step), nil
	}

	if mt.Strict {
		return nil, fmt.Errorf("testkit: unexpected %s %s", req.Method, req.URL)
	}
	return respond(req, MockStep{Status: http.StatusNotFound}), nil
}

// Calls reports how often the step with this method and match was used.
func (mt *MockTransport) Calls(method, match string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, e := range mt.steps {
		if e.step.Method == method && e.step.Match == match {
			return e.calls
		}
	}
	return 0
}

// AssertAllCalled fails t for every step that was never used.
func (mt *MockTransport) AssertAllCalled(t testing.TB) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, e := range mt.steps {
		if e.calls == 0 {
			t.Errorf("testkit: mock %s %q was never called", e.step.Method, e.step.Match)
		}
	}
}

func respond(req *http.Request, s MockStep) *http.Response {
	code := s.Status
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	for k, v := range s.Header {
		header.Set(k, v)
	}

	return &http.Response{
		StatusCode:    code,
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(s.Body)),
		ContentLength: int64(len(s.Body)),
		Request:       req,
	}
}
