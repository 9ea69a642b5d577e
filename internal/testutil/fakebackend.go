package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is one request the fake backend received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// DecodeBody unmarshals the recorded JSON body into v.
func (r RecordedRequest) DecodeBody(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decoding %s %s body: %v", r.Method, r.Path, err)
	}
}

// FakeBackend is an httptest server standing in for the REST API. Routes
// match on method and exact path; unmatched requests get a 404 with a
// detail body. Every request is recorded, matched or not.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{routes: make(map[string]http.HandlerFunc)}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL is the backend origin, without the /api prefix.
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// BaseURL is the API base the client should be configured with.
func (fb *FakeBackend) BaseURL() string { return fb.Server.URL + "/api" }

// Handle installs h for method and path (path includes /api).
func (fb *FakeBackend) Handle(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = h
}

// Reply answers method and path with status and body encoded as JSON.
// A nil body writes no content.
func (fb *FakeBackend) Reply(method, path string, status int, body any) {
	fb.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns a copy of everything received so far.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest(nil), fb.requests...)
}

// RequestsTo filters recorded requests by method and path.
func (fb *FakeBackend) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range fb.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// CountWrites returns how many non-GET requests were received.
func (fb *FakeBackend) CountWrites() int {
	n := 0
	for _, r := range fb.Requests() {
		if r.Method != http.MethodGet {
			n++
		}
	}
	return n
}

// ResetRequests forgets recorded requests but keeps routes.
func (fb *FakeBackend) ResetRequests() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.requests = nil
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	fb.mu.Lock()
	fb.requests = append(fb.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	h, ok := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}
	h(w, r)
}

// WriteJSON writes body as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
