package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/internal/logging"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
	"github.com/fivetwenty-io/wix-templates/pkg/wixclient"
	"github.com/fivetwenty-io/wix-templates/pkg/wixutil"
)

const defaultTemplatesRoot = "."

func validateOutputFormat(format string) error {
	switch format {
	case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

// renderOutput writes data as JSON or YAML, or calls table for the default
// table format.
func renderOutput(w io.Writer, data interface{}, table func(io.Writer) error) error {
	format := viper.GetString("output")

	err := validateOutputFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		return table(w)
	}
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func truncate(value string, length int) string {
	runes := []rune(value)
	if len(runes) <= length {
		return value
	}

	return string(runes[:length-3]) + "..."
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func templatesRoot() string {
	if root := viper.GetString("templates_root"); root != "" {
		return root
	}

	return defaultTemplatesRoot
}

func newLogger() *logging.Logger {
	return logging.New(logging.Options{
		Verbose: viper.GetBool("verbose"),
		File:    viper.GetString("log_file"),
	})
}

// buildClientConfig maps the CLI configuration onto the REST client config.
// Refreshed OAuth tokens are written back to the config file.
func buildClientConfig(config *Config, logger wix.Logger) *wixclient.Config {
	clientConfig := &wixclient.Config{
		APIBaseURL:   config.APIBaseURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		InstanceID:   config.InstanceID,
		APIKey:       config.APIKey,
		RefreshToken: config.RefreshToken,
		AccessToken:  config.AccessToken,
		SiteID:       config.SiteID,
		Debug:        viper.GetBool("verbose"),
		Logger:       logger,
	}

	if config.AccessTokenExpiresAt != nil {
		clientConfig.AccessTokenExpiresAt = *config.AccessTokenExpiresAt
	}

	if config.ClientID != "" && config.APIKey == "" {
		clientConfig.TokenPersister = NewConfigPersister()
	}

	return clientConfig
}

// createClient builds the facade from the effective configuration. The
// returned logger must be closed by the caller.
func createClient(ctx context.Context) (wix.Client, *logging.Logger, error) {
	config := loadConfig()

	if config.APIKey != "" && config.SiteID == "" {
		return nil, nil, constants.ErrNoSiteConfigured
	}

	logger := newLogger()

	client, err := wixclient.NewREST(ctx, buildClientConfig(config, logger))
	if err != nil {
		_ = logger.Close()

		if errors.Is(err, wix.ErrClientIDRequired) {
			return nil, nil, constants.ErrNoClientIDConfigured
		}

		return nil, nil, fmt.Errorf("failed to create Wix client: %w", err)
	}

	return client, logger, nil
}

// withClient runs fn with a facade built from the configuration.
func withClient(ctx context.Context, fn func(client wix.Client) error) error {
	client, logger, err := createClient(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Close() }()

	return fn(client)
}

// queryOptions builds paging options from --limit and --offset.
func queryOptions(limit, offset int) *wix.QueryOptions {
	opts := wix.NewQueryOptions()

	if limit > 0 {
		if limit > constants.MaxPageSize {
			limit = constants.MaxPageSize
		}

		opts.WithLimit(limit)
	}

	if offset > 0 {
		opts.WithOffset(offset)
	}

	return opts
}

// parseDateFlag accepts YYYY-MM-DD or RFC 3339.
func parseDateFlag(value string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", constants.ErrInvalidDateFlag, value)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return wixutil.FormatDate(*t, constants.DefaultLocale) + " " + t.Format("15:04")
}

func formatPrice(price *wix.Price) string {
	if price == nil {
		return constants.NotAvailable
	}

	if price.Formatted != nil && price.Formatted.Formatted != "" {
		return price.Formatted.Formatted
	}

	formatted, err := wixutil.FormatCurrency(price.Price, price.Currency, constants.DefaultLocale)
	if err != nil {
		return fmt.Sprintf("%.2f %s", price.Price, price.Currency)
	}

	return formatted
}
