// Package client implements wix.Backend over the Wix REST APIs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/wix-templates/internal/auth"
	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

const tokenPath = "/oauth2/token"

// Client implements the wix.Backend interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	clientID     string
	logger       wix.Logger

	// Resource clients
	items        *ItemsClient
	products     *ProductsClient
	currentCart  *CurrentCartClient
	services     *ServicesClient
	availability *AvailabilityClient
	bookings     *BookingsClient
	events       *EventsClient
	members      *MembersClient
	auth         *AuthClient
}

// createTokenManager creates appropriate token manager based on config.
func createTokenManager(config *wix.ClientConfig) auth.TokenManager {
	if config.APIKey != "" {
		return auth.NewStaticTokenManager(config.APIKey)
	}

	if config.ClientID == "" {
		if config.AccessToken != "" {
			return auth.NewStaticTokenManager(config.AccessToken)
		}

		return nil // No authentication
	}

	tokenURL := config.TokenURL
	if tokenURL == "" && config.APIBaseURL != "" {
		tokenURL = strings.TrimSuffix(config.APIBaseURL, "/") + tokenPath
	}

	oauthConfig := &auth.OAuth2Config{
		TokenURL:     tokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		InstanceID:   config.InstanceID,
		RefreshToken: config.RefreshToken,
	}

	if config.TokenPersister != nil {
		manager := auth.NewConfigTokenManager(oauthConfig, config.TokenPersister, config.SiteID, config.AccessToken, config.AccessTokenExpiresAt)
		if config.Logger != nil {
			logger := config.Logger
			manager.OnPersistError = func(err error) {
				logger.Warn("failed to persist refreshed token", map[string]interface{}{"error": err.Error()})
			}
		}

		return manager
	}

	manager := auth.NewOAuth2TokenManager(oauthConfig)
	if config.AccessToken != "" {
		manager.SetToken(config.AccessToken, config.AccessTokenExpiresAt)
	}

	return manager
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *wix.ClientConfig) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.SiteID != "" {
		httpOpts = append(httpOpts, http.WithSiteID(config.SiteID))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a REST backend from config.
func New(config *wix.ClientConfig) (*Client, error) {
	if config == nil {
		return nil, wix.ErrConfigRequired
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a REST backend with a custom token manager.
func NewWithTokenManager(config *wix.ClientConfig, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, wix.ErrConfigRequired
	}

	baseURL := config.APIBaseURL
	if baseURL == "" {
		baseURL = constants.DefaultAPIBaseURL
	}

	logger := config.Logger
	if logger == nil {
		logger = wix.NoopLogger{}
	}

	client := &Client{
		httpClient:   http.NewClient(baseURL, tokenManager, createHTTPClientOptions(config)...),
		tokenManager: tokenManager,
		baseURL:      baseURL,
		clientID:     config.ClientID,
		logger:       logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.items = NewItemsClient(c.httpClient)
	c.products = NewProductsClient(c.httpClient)
	c.currentCart = NewCurrentCartClient(c.httpClient)
	c.services = NewServicesClient(c.httpClient)
	c.availability = NewAvailabilityClient(c.httpClient)
	c.bookings = NewBookingsClient(c.httpClient)
	c.events = NewEventsClient(c.httpClient)
	c.members = NewMembersClient(c.httpClient)
	c.auth = NewAuthClient(c.httpClient, c.tokenManager, c.clientID)
}

// BaseURL returns the API host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TokenManager returns the token manager, or nil for unauthenticated clients.
func (c *Client) TokenManager() auth.TokenManager {
	return c.tokenManager
}

// Items implements wix.Backend.
func (c *Client) Items() wix.ItemsAPI { return c.items }

// Products implements wix.Backend.
func (c *Client) Products() wix.ProductsAPI { return c.products }

// CurrentCart implements wix.Backend.
func (c *Client) CurrentCart() wix.CurrentCartAPI { return c.currentCart }

// Services implements wix.Backend.
func (c *Client) Services() wix.ServicesAPI { return c.services }

// Availability implements wix.Backend.
func (c *Client) Availability() wix.AvailabilityAPI { return c.availability }

// Bookings implements wix.Backend.
func (c *Client) Bookings() wix.BookingsAPI { return c.bookings }

// Events implements wix.Backend.
func (c *Client) Events() wix.EventsAPI { return c.events }

// Members implements wix.Backend.
func (c *Client) Members() wix.MembersAPI { return c.members }

// Auth implements wix.Backend.
func (c *Client) Auth() wix.AuthAPI { return c.auth }

// queryRequest is the envelope used by the Wix query endpoints.
type queryRequest struct {
	Query *wix.QueryOptions `json:"query"`
}

func newQueryRequest(opts *wix.QueryOptions) *queryRequest {
	if opts == nil {
		opts = wix.NewQueryOptions()
	}

	return &queryRequest{Query: opts}
}

// postJSON posts body and decodes the response into T.
func postJSON[T any](ctx context.Context, httpClient *http.Client, path string, body interface{}, action string) (*T, error) {
	resp, err := httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return decode[T](resp.Body, action)
}

// getJSON fetches path and decodes the response into T.
func getJSON[T any](ctx context.Context, httpClient *http.Client, path string, query url.Values, action string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return decode[T](resp.Body, action)
}

func decode[T any](body []byte, action string) (*T, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%s: %w", action, wix.ErrEmptyResponse)
	}

	var result T

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", action, err)
	}

	return &result, nil
}
