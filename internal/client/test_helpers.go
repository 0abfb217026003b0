package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// capturedRequest is what the fake Wix API saw.
type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]interface{}
}

// fakeWix serves canned JSON per "METHOD /path" and records requests.
type fakeWix struct {
	t        *testing.T
	server   *httptest.Server
	mutex    sync.Mutex
	routes   map[string]fakeRoute
	requests []capturedRequest
}

type fakeRoute struct {
	status   int
	response interface{}
}

func newFakeWix(t *testing.T) *fakeWix {
	t.Helper()

	fake := &fakeWix{t: t, routes: make(map[string]fakeRoute)}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeWix) on(method, path string, status int, response interface{}) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.routes[method+" "+path] = fakeRoute{status: status, response: response}
}

func (f *fakeWix) serve(writer http.ResponseWriter, request *http.Request) {
	data, err := io.ReadAll(request.Body)
	assert.NoError(f.t, err)

	captured := capturedRequest{
		Method: request.Method,
		Path:   request.URL.Path,
		Query:  request.URL.RawQuery,
		Header: request.Header.Clone(),
	}

	if len(data) > 0 {
		assert.NoError(f.t, json.Unmarshal(data, &captured.Body))
	}

	f.mutex.Lock()
	f.requests = append(f.requests, captured)
	route, ok := f.routes[request.Method+" "+request.URL.Path]
	f.mutex.Unlock()

	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"message":"no route"}`))

		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(route.status)
	_ = json.NewEncoder(writer).Encode(route.response)
}

func (f *fakeWix) last() capturedRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	require.NotEmpty(f.t, f.requests)

	return f.requests[len(f.requests)-1]
}

// newTestClient creates a backend against the fake with a static API key.
func newTestClient(t *testing.T, fake *fakeWix) *Client {
	t.Helper()

	client, err := New(&wix.ClientConfig{
		APIBaseURL: fake.server.URL,
		APIKey:     "api-key",
		SiteID:     "site-1",
		RetryMax:   1,
	})
	require.NoError(t, err)

	return client
}
