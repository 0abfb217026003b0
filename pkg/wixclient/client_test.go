package wixclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
	"github.com/fivetwenty-io/wix-templates/pkg/wixclient"
)

type spyLogger struct {
	wix.NoopLogger

	mutex  sync.Mutex
	errors []map[string]interface{}
}

func (l *spyLogger) Error(msg string, fields map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.errors = append(l.errors, fields)
}

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("nil backend gives uninitialized client", func(t *testing.T) {
		t.Parallel()

		client := wixclient.Init(nil)
		require.NotNil(t, client)
		assert.False(t, client.Initialized())

		_, err := client.Stores().GetProducts(context.Background(), nil)
		require.ErrorIs(t, err, wix.ErrUninitialized)
	})

	t.Run("strict constructor rejects nil backend", func(t *testing.T) {
		t.Parallel()

		client, err := wixclient.New(nil)
		require.ErrorIs(t, err, wix.ErrBackendRequired)
		assert.Nil(t, client)
	})
}

func TestNewREST(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := wixclient.NewREST(context.Background(), nil)
		require.ErrorIs(t, err, wix.ErrConfigRequired)
	})

	t.Run("requires a credential", func(t *testing.T) {
		t.Parallel()

		_, err := wixclient.NewREST(context.Background(), &wixclient.Config{SiteID: "site-1"})
		require.ErrorIs(t, err, wix.ErrClientIDRequired)
	})

	t.Run("rejects malformed token URL", func(t *testing.T) {
		t.Parallel()

		_, err := wixclient.NewREST(context.Background(), &wixclient.Config{ClientID: "id", TokenURL: "not a url"})
		require.ErrorIs(t, err, wix.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "TokenURL")
	})

	t.Run("rejects negative retries", func(t *testing.T) {
		t.Parallel()

		_, err := wixclient.NewREST(context.Background(), &wixclient.Config{APIKey: "key", RetryMax: -1})
		require.ErrorIs(t, err, wix.ErrInvalidConfig)
	})

	t.Run("normalizes base URL without touching the caller's config", func(t *testing.T) {
		t.Parallel()

		config := &wixclient.Config{APIKey: "key", APIBaseURL: "www.wixapis.com/"}

		client, err := wixclient.NewREST(context.Background(), config)
		require.NoError(t, err)
		assert.True(t, client.Initialized())
		assert.Equal(t, "www.wixapis.com/", config.APIBaseURL)
	})

	t.Run("trailing slash is trimmed from the base URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/stores/v1/products/query", request.URL.Path)
			_, _ = writer.Write([]byte(`{"products":[],"totalResults":0}`))
		}))
		defer server.Close()

		config := &wixclient.Config{APIKey: "key", SiteID: "site-1", APIBaseURL: server.URL + "/"}

		client, err := wixclient.NewREST(context.Background(), config)
		require.NoError(t, err)

		_, err = client.Stores().GetProducts(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/", config.APIBaseURL)
	})

	t.Run("convenience constructors", func(t *testing.T) {
		t.Parallel()

		visitor, err := wixclient.NewVisitor(context.Background(), "client-id")
		require.NoError(t, err)
		assert.True(t, visitor.Initialized())

		admin, err := wixclient.NewWithAPIKey(context.Background(), "key", "site-1")
		require.NoError(t, err)
		assert.True(t, admin.Initialized())

		_, err = wixclient.NewVisitor(context.Background(), "")
		require.ErrorIs(t, err, wix.ErrClientIDRequired)
	})
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "site-1", request.Header.Get("wix-site-id"))

		switch request.URL.Path {
		case "/stores/v1/products/query":
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"products":     []map[string]string{{"id": "p1", "name": "Mug"}},
				"totalResults": 1,
			})
		case "/ecom/v1/carts":
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"message":"Cart limit reached"}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	logger := &spyLogger{}

	client, err := wixclient.NewREST(context.Background(), &wixclient.Config{
		APIBaseURL: server.URL,
		APIKey:     "key",
		SiteID:     "site-1",
	}, wixclient.WithLogger(logger))
	require.NoError(t, err)

	products, err := client.Stores().GetProducts(context.Background(), wix.NewQueryOptions().WithLimit(1))
	require.NoError(t, err)
	require.Len(t, products.Products, 1)
	assert.Equal(t, "Mug", products.Products[0].Name)

	_, err = client.Stores().CreateCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Stores.createCart: Cart limit reached", err.Error())
	assert.ErrorIs(t, err, wix.ErrOperationFailed)

	apiErr := &wix.APIError{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.Len(t, logger.errors, 1)
	assert.Equal(t, "Stores", logger.errors[0]["domain"])
	assert.Equal(t, "Stores.createCart", logger.errors[0]["operation"])
}
