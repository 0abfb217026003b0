package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/wix-templates/internal/auth"
	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// Login states reported by the authentication API.
const (
	LoginStateSuccess = "SUCCESS"
)

// MembersClient implements wix.MembersAPI.
type MembersClient struct {
	httpClient *http.Client
}

// NewMembersClient creates a new members client.
func NewMembersClient(httpClient *http.Client) *MembersClient {
	return &MembersClient{httpClient: httpClient}
}

type memberResponse struct {
	Member wix.Member `json:"member"`
}

// GetCurrentMember implements wix.MembersAPI.GetCurrentMember.
func (c *MembersClient) GetCurrentMember(ctx context.Context) (*wix.Member, error) {
	query := url.Values{"fieldsets": []string{"FULL"}}

	resp, err := getJSON[memberResponse](ctx, c.httpClient, "/members/v1/members/my", query, "getting current member")
	if err != nil {
		return nil, err
	}

	return &resp.Member, nil
}

// AuthClient implements wix.AuthAPI for direct member login.
type AuthClient struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	clientID     string
}

// NewAuthClient creates a new member authentication client.
func NewAuthClient(httpClient *http.Client, tokenManager auth.TokenManager, clientID string) *AuthClient {
	return &AuthClient{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		clientID:     clientID,
	}
}

type loginID struct {
	Email string `json:"email"`
}

type loginRequest struct {
	LoginID  loginID `json:"loginId"`
	Password string  `json:"password"`
}

type loginResponse struct {
	State        string `json:"state"`
	SessionToken string `json:"sessionToken"`
	Identity     struct {
		ID string `json:"id"`
	} `json:"identity"`
}

type logoutRequest struct {
	Logout struct {
		ClientID string `json:"clientId"`
	} `json:"logout"`
}

type redirectSessionResponse struct {
	RedirectSession struct {
		FullURL string `json:"fullUrl"`
	} `json:"redirectSession"`
}

// tokenClearer is implemented by token managers that hold a session.
type tokenClearer interface {
	Clear()
}

// Login implements wix.AuthAPI.Login. Non-success states, such as a pending
// email verification, are returned in the result rather than as errors.
func (c *AuthClient) Login(ctx context.Context, request *wix.LoginRequest) (*wix.LoginResult, error) {
	if request == nil {
		request = &wix.LoginRequest{}
	}

	resp, err := postJSON[loginResponse](ctx, c.httpClient, "/iam/authentication/v2/authentication/login", &loginRequest{
		LoginID:  loginID{Email: request.Email},
		Password: request.Password,
	}, "logging in")
	if err != nil {
		return nil, err
	}

	if resp.State == LoginStateSuccess && resp.SessionToken == "" {
		return nil, wix.ErrMissingSessionToken
	}

	return &wix.LoginResult{
		State:        resp.State,
		SessionToken: resp.SessionToken,
		MemberID:     resp.Identity.ID,
	}, nil
}

// Logout implements wix.AuthAPI.Logout. It ends the session on Wix and
// drops the local member tokens.
func (c *AuthClient) Logout(ctx context.Context) (*wix.LogoutResult, error) {
	if c.clientID == "" {
		return nil, wix.ErrClientIDRequired
	}

	var body logoutRequest
	body.Logout.ClientID = c.clientID

	resp, err := postJSON[redirectSessionResponse](ctx, c.httpClient, "/redirects-api/v1/redirect-session", &body, "logging out")
	if err != nil {
		return nil, err
	}

	if clearer, ok := c.tokenManager.(tokenClearer); ok {
		clearer.Clear()
	}

	return &wix.LogoutResult{LogoutURL: resp.RedirectSession.FullURL}, nil
}
