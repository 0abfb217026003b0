package unified

import (
	"context"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// MembersClient implements wix.MembersClient.
type MembersClient struct {
	domain
}

// NewMembersClient creates a new members client.
func NewMembersClient(backend wix.Backend, logger wix.Logger) *MembersClient {
	return &MembersClient{domain: domain{name: "Members", backend: backend, logger: logger}}
}

// GetCurrentMember implements wix.MembersClient.GetCurrentMember.
func (c *MembersClient) GetCurrentMember(ctx context.Context) (*wix.Member, error) {
	return invoke(ctx, c.domain, "getCurrentMember", func(ctx context.Context, backend wix.Backend) (*wix.Member, error) {
		return backend.Members().GetCurrentMember(ctx)
	})
}

// Login implements wix.MembersClient.Login.
func (c *MembersClient) Login(ctx context.Context, email, password string) (*wix.LoginResult, error) {
	return invoke(ctx, c.domain, "login", func(ctx context.Context, backend wix.Backend) (*wix.LoginResult, error) {
		return backend.Auth().Login(ctx, &wix.LoginRequest{Email: email, Password: password})
	})
}

// Logout implements wix.MembersClient.Logout.
func (c *MembersClient) Logout(ctx context.Context) (*wix.LogoutResult, error) {
	return invoke(ctx, c.domain, "logout", func(ctx context.Context, backend wix.Backend) (*wix.LogoutResult, error) {
		return backend.Auth().Logout(ctx)
	})
}
