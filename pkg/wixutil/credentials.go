package wixutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// ErrMissingCredentials is returned by CheckCredentials.
var ErrMissingCredentials = errors.New("missing Wix credentials")

// Credentials identifies a headless client and the site it talks to.
type Credentials struct {
	ClientID     string `json:"clientId"               validate:"required" yaml:"client_id"`
	SiteID       string `json:"siteId"                 validate:"required" yaml:"site_id"`
	ClientSecret string `json:"clientSecret,omitempty" yaml:"client_secret,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCredentials reports whether both the client ID and site ID are set.
func ValidateCredentials(credentials Credentials) bool {
	return CheckCredentials(credentials) == nil
}

// CheckCredentials is ValidateCredentials with the missing fields named.
func CheckCredentials(credentials Credentials) error {
	err := validate.Struct(credentials)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validating credentials: %w", err)
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		missing = append(missing, fieldErr.Field())
	}

	return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
}

// CredentialsFromEnv reads credentials using the shared template variable names.
func CredentialsFromEnv(lookup func(string) string) Credentials {
	return Credentials{
		ClientID:     lookup(wix.EnvClientID),
		SiteID:       lookup(wix.EnvSiteID),
		ClientSecret: lookup(wix.EnvClientSecret),
	}
}
