package wixclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/wix-templates/internal/client"
	"github.com/fivetwenty-io/wix-templates/internal/unified"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// Config configures NewREST.
type Config = wix.ClientConfig

// Option configures the facade.
type Option func(*options)

type options struct {
	logger wix.Logger
}

// WithLogger sets the logger that receives backend failures.
func WithLogger(logger wix.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Init creates the unified client over backend. A nil backend yields an
// uninitialized client whose operations fail with wix.ErrUninitialized.
func Init(backend wix.Backend, opts ...Option) wix.Client {
	return unified.New(backend, applyOptions(opts).logger)
}

// New is like Init but rejects a nil backend.
func New(backend wix.Backend, opts ...Option) (wix.Client, error) {
	facade := unified.New(backend, applyOptions(opts).logger)
	if !facade.Initialized() {
		return nil, wix.ErrBackendRequired
	}

	return facade, nil
}

// NewREST validates config and creates the unified client over the Wix REST
// APIs. WithLogger overrides config.Logger for facade error logging.
func NewREST(ctx context.Context, config *Config, opts ...Option) (wix.Client, error) {
	if config == nil {
		return nil, wix.ErrConfigRequired
	}

	// Normalize a copy; the caller's config is left as given.
	cfg := *config
	if cfg.APIBaseURL != "" {
		cfg.APIBaseURL = normalizeURL(cfg.APIBaseURL)
	}

	err := ValidateConfig(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	backend, err := client.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST backend: %w", err)
	}

	o := applyOptions(opts)
	if o.logger == nil {
		o.logger = cfg.Logger
	}

	return unified.New(backend, o.logger), nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks config for missing credentials and malformed URLs.
func ValidateConfig(ctx context.Context, config *Config) error {
	err := validate.StructCtx(ctx, config)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			if fieldErr.Field() == "ClientID" {
				return wix.ErrClientIDRequired
			}
		}

		return fmt.Errorf("%w: %s failed %q", wix.ErrInvalidConfig, validationErrors[0].Namespace(), validationErrors[0].Tag())
	}

	return fmt.Errorf("%w: %w", wix.ErrInvalidConfig, err)
}

func normalizeURL(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewVisitor creates a client that acts as an anonymous site visitor.
func NewVisitor(ctx context.Context, clientID string, opts ...Option) (wix.Client, error) {
	return NewREST(ctx, &Config{ClientID: clientID}, opts...)
}

// NewWithAPIKey creates an admin client for a single site.
func NewWithAPIKey(ctx context.Context, apiKey, siteID string, opts ...Option) (wix.Client, error) {
	return NewREST(ctx, &Config{APIKey: apiKey, SiteID: siteID}, opts...)
}
