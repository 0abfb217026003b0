package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/wix-templates/internal/auth"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, wix.ErrConfigRequired)
	})

	t.Run("defaults base URL", func(t *testing.T) {
		t.Parallel()

		client, err := New(&wix.ClientConfig{ClientID: "client-id"})
		require.NoError(t, err)
		assert.Equal(t, "https://www.wixapis.com", client.BaseURL())
		assert.IsType(t, &auth.OAuth2TokenManager{}, client.TokenManager())
	})

	t.Run("api key wins over oauth", func(t *testing.T) {
		t.Parallel()

		client, err := New(&wix.ClientConfig{ClientID: "client-id", APIKey: "key"})
		require.NoError(t, err)
		assert.IsType(t, &auth.StaticTokenManager{}, client.TokenManager())
	})

	t.Run("access token without client id is static", func(t *testing.T) {
		t.Parallel()

		client, err := New(&wix.ClientConfig{AccessToken: "token"})
		require.NoError(t, err)
		assert.IsType(t, &auth.StaticTokenManager{}, client.TokenManager())
	})

	t.Run("persister wraps oauth", func(t *testing.T) {
		t.Parallel()

		client, err := New(&wix.ClientConfig{ClientID: "client-id", TokenPersister: nopPersister{}})
		require.NoError(t, err)
		assert.IsType(t, &auth.ConfigTokenManager{}, client.TokenManager())
	})

	t.Run("no credentials means no token manager", func(t *testing.T) {
		t.Parallel()

		client, err := New(&wix.ClientConfig{})
		require.NoError(t, err)
		assert.Nil(t, client.TokenManager())
	})
}

type nopPersister struct{}

func (nopPersister) UpdateSiteToken(string, string, time.Time, string) error { return nil }

func TestClient_SendsSiteAndAuthorization(t *testing.T) {
	t.Parallel()

	fake := newFakeWix(t)
	fake.on(http.MethodGet, "/stores/v1/products/p1", http.StatusOK, map[string]interface{}{
		"product": map[string]interface{}{"id": "p1", "name": "Mug"},
	})

	client := newTestClient(t, fake)

	product, err := client.Products().GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mug", product.Name)

	req := fake.last()
	assert.Equal(t, "api-key", req.Header.Get("Authorization"))
	assert.Equal(t, "site-1", req.Header.Get("wix-site-id"))
}

func TestClient_VisitorTokenFlow(t *testing.T) {
	t.Parallel()

	var tokenCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/oauth2/token":
			tokenCalls.Add(1)

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "anonymous", body["grantType"])
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"access_token": "visitor", "expires_in": 3600})
		case "/events/v1/events/e1":
			assert.Equal(t, "visitor", request.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"event": map[string]string{"id": "e1", "title": "Launch"}})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := New(&wix.ClientConfig{
		APIBaseURL: server.URL,
		TokenURL:   server.URL + "/oauth2/token",
		ClientID:   "client-id",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		event, err := client.Events().GetEvent(context.Background(), "e1")
		require.NoError(t, err)
		assert.Equal(t, "Launch", event.Title)
	}

	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestClient_ErrorsCarryWixMessage(t *testing.T) {
	t.Parallel()

	fake := newFakeWix(t)
	fake.on(http.MethodGet, "/members/v1/members/my", http.StatusForbidden, map[string]interface{}{
		"message": "Member is not logged in",
		"details": map[string]interface{}{"applicationError": map[string]string{"code": "NOT_LOGGED_IN"}},
	})

	client := newTestClient(t, fake)

	_, err := client.Members().GetCurrentMember(context.Background())
	require.Error(t, err)
	assert.True(t, wix.IsForbidden(err))
	assert.Equal(t, "Member is not logged in", wix.ErrorMessage(err))
}

func TestClient_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(&wix.ClientConfig{APIBaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.CurrentCart().CreateCart(context.Background())
	require.ErrorIs(t, err, wix.ErrEmptyResponse)
}
