package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
)

// Wix OAuth grant types.
const (
	GrantTypeAnonymous         = "anonymous"
	GrantTypeRefreshToken      = "refresh_token"
	GrantTypeClientCredentials = "client_credentials"
)

// Static errors for err113 compliance.
var (
	ErrNoValidCredentials       = errors.New("no valid credentials available")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrTokenRequestFailed       = errors.New("token request failed")
)

// OAuth2Config configures the Wix OAuth token manager.
type OAuth2Config struct {
	// TokenURL is the Wix token endpoint, https://www.wixapis.com/oauth2/token by default.
	TokenURL string
	// ClientID is the headless OAuth app client ID.
	ClientID string
	// ClientSecret is only used by the client_credentials grant.
	ClientSecret string
	// InstanceID selects the app instance for the client_credentials grant.
	InstanceID string
	// RefreshToken of a visitor or member session.
	RefreshToken string
	// AccessToken seeds the store with an existing token.
	AccessToken string
	// HTTPClient overrides the client used for token requests.
	HTTPClient *http.Client
}

// tokenRequest is the JSON body accepted by the Wix token endpoint.
type tokenRequest struct {
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	InstanceID   string `json:"instance_id,omitempty"`
	GrantType    string `json:"grantType"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

// OAuth2TokenManager obtains and renews Wix access tokens. Without a refresh
// token it falls back to the client_credentials grant when a secret is
// configured, then to the anonymous visitor grant.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
	mutex      sync.Mutex
}

// NewOAuth2TokenManager creates a new OAuth token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	if config.TokenURL == "" {
		config.TokenURL = constants.DefaultTokenURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	manager := &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    constants.TokenTypeBearer,
		})
	}

	return manager
}

// NewVisitorTokenManager creates a manager for anonymous site visitors.
func NewVisitorTokenManager(clientID string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{ClientID: clientID})
}

// GetToken returns a valid access token, fetching a new one if necessary.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Another caller may have refreshed while we waited.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.fetchToken(ctx, token)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a new token to be fetched.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.fetchToken(ctx, m.store.Get())
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	m.store.Set(&Token{
		AccessToken:  token,
		RefreshToken: refreshToken,
		TokenType:    constants.TokenTypeBearer,
		ExpiresAt:    expiresAt,
	})
}

// Clear drops the stored token and any configured refresh token, so the
// next request starts a fresh visitor session.
func (m *OAuth2TokenManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.config.RefreshToken = ""
	m.store.Clear()
}

// Current returns the stored token, or nil.
func (m *OAuth2TokenManager) Current() *Token {
	return m.store.Get()
}

func (m *OAuth2TokenManager) fetchToken(ctx context.Context, current *Token) error {
	request, err := m.grantRequest(current)
	if err != nil {
		return err
	}

	token, err := m.requestToken(ctx, request)
	if err != nil {
		return err
	}

	// Wix does not always rotate the refresh token.
	if token.RefreshToken == "" {
		token.RefreshToken = request.RefreshToken
	}

	m.store.Set(token)

	return nil
}

func (m *OAuth2TokenManager) grantRequest(current *Token) (*tokenRequest, error) {
	refreshToken := m.config.RefreshToken
	if current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	switch {
	case refreshToken != "":
		return &tokenRequest{
			ClientID:     m.config.ClientID,
			GrantType:    GrantTypeRefreshToken,
			RefreshToken: refreshToken,
		}, nil
	case m.config.ClientID != "" && m.config.ClientSecret != "":
		return &tokenRequest{
			ClientID:     m.config.ClientID,
			ClientSecret: m.config.ClientSecret,
			InstanceID:   m.config.InstanceID,
			GrantType:    GrantTypeClientCredentials,
		}, nil
	case m.config.ClientID != "":
		return &tokenRequest{
			ClientID:  m.config.ClientID,
			GrantType: GrantTypeAnonymous,
		}, nil
	default:
		return nil, ErrNoValidCredentials
	}
}

func (m *OAuth2TokenManager) requestToken(ctx context.Context, request *tokenRequest) (*Token, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp tokenErrorResponse
		if json.Unmarshal(data, &errResp) == nil && (errResp.Error != "" || errResp.Message != "") {
			if errResp.Message != "" {
				return nil, fmt.Errorf("%w: %s", ErrTokenRequestFailed, errResp.Message)
			}

			return nil, fmt.Errorf("%w: %s: %s", ErrTokenRequestFailed, errResp.Error, errResp.ErrorDescription)
		}

		return nil, fmt.Errorf("%w: status %d", ErrTokenRequestFailed, resp.StatusCode)
	}

	var token Token

	err = json.Unmarshal(data, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}
