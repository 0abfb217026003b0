package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	wixhttp "github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRefreshFailed = errors.New("refresh failed")

// MockTokenManager for testing.
type MockTokenManager struct {
	mutex      sync.Mutex
	token      string
	err        error
	refreshed  string
	refreshErr error
	refreshes  int
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.refreshes++
	if m.refreshErr != nil {
		return m.refreshErr
	}

	if m.refreshed != "" {
		m.token = m.refreshed
	}

	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	mutex sync.Mutex
	logs  []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func fastRetries() wixhttp.Option {
	return wixhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/stores/v1/products/prod-1", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "visitor-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, wixhttp.DefaultUserAgent, request.Header.Get("User-Agent"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"product": map[string]string{"id": "prod-1", "name": "Mug"},
			})
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, &MockTokenManager{token: "visitor-token"})

		resp, err := client.Do(context.Background(), &wixhttp.Request{
			Method: http.MethodGet,
			Path:   "/stores/v1/products/prod-1",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Product wix.Product `json:"product"`
		}

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Equal(t, "prod-1", result.Product.ID)
		assert.Equal(t, "Mug", result.Product.Name)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "dataCollectionId=Posts", request.URL.RawQuery)
			assert.Empty(t, request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL+"/", nil)
		assert.Equal(t, server.URL, client.BaseURL())

		resp, err := client.Get(context.Background(), "/wix-data/v2/items/1", url.Values{"dataCollectionId": []string{"Posts"}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Posts", body["dataCollectionId"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/wix-data/v2/items/query", map[string]string{"dataCollectionId": "Posts"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"message":"Product not found","details":{"applicationError":{"code":"PRODUCT_NOT_FOUND"}}}`))
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/stores/v1/products/missing", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.True(t, wix.IsNotFound(err))

		apiErr := &wix.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Product not found", apiErr.Message())
		assert.Equal(t, "PRODUCT_NOT_FOUND", apiErr.ApplicationCode())
	})

	t.Run("error response without body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/members/v1/members/my", nil)
		require.Error(t, err)
		assert.True(t, wix.IsForbidden(err))
		assert.Equal(t, "Forbidden", wix.ErrorMessage(err))
	})

	t.Run("default and request headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "site-1", request.Header.Get("wix-site-id"))
			assert.Equal(t, "override", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "cli/1.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil,
			wixhttp.WithSiteID("site-1"),
			wixhttp.WithHeader("X-Custom-Header", "default"),
			wixhttp.WithUserAgent("cli/1.0"),
		)

		_, err := client.Do(context.Background(), &wixhttp.Request{
			Method:  http.MethodGet,
			Path:    "/",
			Headers: map[string]string{"X-Custom-Header": "override"},
		})
		require.NoError(t, err)
	})

	t.Run("token failure aborts the request", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, &MockTokenManager{err: errRefreshFailed})

		_, err := client.Get(context.Background(), "/", nil)
		require.ErrorIs(t, err, errRefreshFailed)
		assert.Zero(t, hits.Load())
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := wixhttp.NewClient(server.URL, nil, wixhttp.WithLogger(logger), wixhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		fn     func(*wixhttp.Client, context.Context) (*wixhttp.Response, error)
	}{
		{http.MethodGet, func(c *wixhttp.Client, ctx context.Context) (*wixhttp.Response, error) {
			return c.Get(ctx, "/test", nil)
		}},
		{http.MethodPost, func(c *wixhttp.Client, ctx context.Context) (*wixhttp.Response, error) {
			return c.Post(ctx, "/test", map[string]string{"key": "value"})
		}},
		{http.MethodPut, func(c *wixhttp.Client, ctx context.Context) (*wixhttp.Response, error) {
			return c.Put(ctx, "/test", map[string]string{"key": "value"})
		}},
		{http.MethodPatch, func(c *wixhttp.Client, ctx context.Context) (*wixhttp.Response, error) {
			return c.Patch(ctx, "/test", map[string]string{"key": "value"})
		}},
		{http.MethodDelete, func(c *wixhttp.Client, ctx context.Context) (*wixhttp.Response, error) {
			return c.Delete(ctx, "/test")
		}},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.method, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			resp, err := testCase.fn(wixhttp.NewClient(server.URL, nil), context.Background())
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()

	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil, fastRetries())

		resp, err := client.Post(context.Background(), "/test", map[string]int{"n": 1})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil, fastRetries())

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil, fastRetries())

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := wixhttp.NewClient(server.URL, nil, wixhttp.WithRetryConfig(1, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})
}

func TestClient_RefreshesOnUnauthorized(t *testing.T) {
	t.Parallel()

	t.Run("retries once with a fresh token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get("Authorization") != "fresh" {
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tokens := &MockTokenManager{token: "stale", refreshed: "fresh"}
		client := wixhttp.NewClient(server.URL, tokens)

		resp, err := client.Get(context.Background(), "/members/v1/members/my", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, tokens.refreshes)
	})

	t.Run("returns unauthorized when refresh fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		logger := &MockLogger{}
		tokens := &MockTokenManager{token: "stale", refreshErr: errRefreshFailed}
		client := wixhttp.NewClient(server.URL, tokens, wixhttp.WithLogger(logger))

		resp, err := client.Get(context.Background(), "/members/v1/members/my", nil)
		require.Error(t, err)
		assert.True(t, wix.IsUnauthorized(err))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Len(t, logger.logs, 1)
		assert.Equal(t, "warn", logger.logs[0]["level"])
	})
}
