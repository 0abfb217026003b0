package wix

import (
	"fmt"
	"time"
)

// APIConfig holds the Wix API endpoints.
type APIConfig struct {
	APIBaseURL    string `json:"api_base_url"   yaml:"api_base_url"`
	AuthEndpoint  string `json:"auth_endpoint"  yaml:"auth_endpoint"`
	TokenEndpoint string `json:"token_endpoint" yaml:"token_endpoint"`
}

// DefaultAPIConfig is the default Wix API configuration.
var DefaultAPIConfig = APIConfig{
	APIBaseURL:    "https://www.wixapis.com",
	AuthEndpoint:  "https://www.wix.com/oauth/authorize",
	TokenEndpoint: "https://www.wix.com/oauth/access_token",
}

// TokenPersister stores tokens that were refreshed during a session.
type TokenPersister interface {
	UpdateSiteToken(siteID, token string, expiresAt time.Time, refreshToken string) error
}

// ClientConfig configures the REST backend.
type ClientConfig struct {
	// APIBaseURL defaults to DefaultAPIConfig.APIBaseURL.
	APIBaseURL string `validate:"omitempty,url"`

	// Authentication (provide one)
	// ClientID: headless OAuth client ID. Visitors get anonymous tokens.
	ClientID string `validate:"required_without_all=APIKey AccessToken"`
	// ClientSecret and InstanceID switch to the client_credentials grant.
	ClientSecret string
	InstanceID   string
	// APIKey: admin API key, sent as is.
	APIKey string
	// RefreshToken of an existing visitor or member session.
	RefreshToken string
	// AccessToken: used directly until AccessTokenExpiresAt, or forever
	// when that is zero.
	AccessToken          string
	AccessTokenExpiresAt time.Time
	// TokenURL defaults to <APIBaseURL>/oauth2/token.
	TokenURL string `validate:"omitempty,url"`

	// SiteID is sent as the wix-site-id header when set.
	SiteID string

	// Optional configurations
	HTTPTimeout  time.Duration `validate:"gte=0"`
	RetryMax     int           `validate:"gte=0"`
	RetryWaitMin time.Duration `validate:"gte=0"`
	RetryWaitMax time.Duration `validate:"gte=0"`
	UserAgent    string
	// Debug logs every request and response when a Logger is set.
	Debug  bool
	Logger Logger `validate:"-"`
	// TokenPersister receives refreshed OAuth tokens.
	TokenPersister TokenPersister `validate:"-"`
}

// Environment variable names shared by all templates.
const (
	EnvClientID     = "NEXT_PUBLIC_WIX_CLIENT_ID"
	EnvClientSecret = "WIX_CLIENT_SECRET"
	EnvRefreshToken = "WIX_REFRESH_TOKEN"
	EnvSiteID       = "NEXT_PUBLIC_WIX_SITE_ID"
)

// EnvVars maps the logical variable name to the environment variable name.
var EnvVars = map[string]string{
	"WIX_CLIENT_ID":     EnvClientID,
	"WIX_CLIENT_SECRET": EnvClientSecret,
	"WIX_REFRESH_TOKEN": EnvRefreshToken,
	"WIX_SITE_ID":       EnvSiteID,
}

// Framework is a template framework type.
type Framework string

// Template frameworks.
const (
	FrameworkNextJS      Framework = "nextjs"
	FrameworkAstro       Framework = "astro"
	FrameworkReactNative Framework = "react-native"
)

// Frameworks returns all supported frameworks in display order.
func Frameworks() []Framework {
	return []Framework{FrameworkNextJS, FrameworkAstro, FrameworkReactNative}
}

// Key returns the constant-style name of the framework, e.g. "REACT_NATIVE".
func (f Framework) Key() string {
	switch f {
	case FrameworkNextJS:
		return "NEXTJS"
	case FrameworkAstro:
		return "ASTRO"
	case FrameworkReactNative:
		return "REACT_NATIVE"
	default:
		return string(f)
	}
}

// ParseFramework validates a framework name.
func ParseFramework(name string) (Framework, error) {
	for _, f := range Frameworks() {
		if string(f) == name {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFramework, name)
}

// Solution is a Wix business solution.
type Solution string

// Wix business solutions.
const (
	SolutionCMS          Solution = "cms"
	SolutionBlog         Solution = "blog"
	SolutionStores       Solution = "stores"
	SolutionBookings     Solution = "bookings"
	SolutionEvents       Solution = "events"
	SolutionMembers      Solution = "members"
	SolutionPricingPlans Solution = "pricing-plans"
	SolutionMedia        Solution = "media"
)

// Solutions returns all business solutions in display order.
func Solutions() []Solution {
	return []Solution{
		SolutionCMS,
		SolutionBlog,
		SolutionStores,
		SolutionBookings,
		SolutionEvents,
		SolutionMembers,
		SolutionPricingPlans,
		SolutionMedia,
	}
}

// Key returns the constant-style name of the solution, e.g. "PRICING_PLANS".
func (s Solution) Key() string {
	switch s {
	case SolutionCMS:
		return "CMS"
	case SolutionBlog:
		return "BLOG"
	case SolutionStores:
		return "STORES"
	case SolutionBookings:
		return "BOOKINGS"
	case SolutionEvents:
		return "EVENTS"
	case SolutionMembers:
		return "MEMBERS"
	case SolutionPricingPlans:
		return "PRICING_PLANS"
	case SolutionMedia:
		return "MEDIA"
	default:
		return string(s)
	}
}

// ParseSolution validates a solution name.
func ParseSolution(name string) (Solution, error) {
	for _, s := range Solutions() {
		if string(s) == name {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownSolution, name)
}

// FrameworkConfig holds the commands and config files of a framework.
type FrameworkConfig struct {
	BuildCommand string   `json:"build_command" yaml:"build_command"`
	DevCommand   string   `json:"dev_command"   yaml:"dev_command"`
	StartCommand string   `json:"start_command" yaml:"start_command"`
	ConfigFiles  []string `json:"config_files"  yaml:"config_files"`
}

// GetFrameworkConfig returns the configuration for a framework, or nil when
// the framework is unknown.
func GetFrameworkConfig(framework Framework) *FrameworkConfig {
	switch framework {
	case FrameworkNextJS:
		return &FrameworkConfig{
			BuildCommand: "next build",
			DevCommand:   "next dev",
			StartCommand: "next start",
			ConfigFiles:  []string{"next.config.js", "next.config.mjs"},
		}
	case FrameworkAstro:
		return &FrameworkConfig{
			BuildCommand: "astro build",
			DevCommand:   "astro dev",
			StartCommand: "astro preview",
			ConfigFiles:  []string{"astro.config.mjs", "astro.config.ts"},
		}
	case FrameworkReactNative:
		return &FrameworkConfig{
			BuildCommand: "expo build",
			DevCommand:   "expo start",
			StartCommand: "expo start",
			ConfigFiles:  []string{"app.json", "expo.config.js"},
		}
	default:
		return nil
	}
}
