package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ScaffoldDirPerm is the permission for directories created from templates.
	ScaffoldDirPerm = 0755

	// ScaffoldFilePerm is the permission for files created from templates.
	ScaffoldFilePerm = 0644
)

// Wix endpoints.
const (
	// DefaultAPIBaseURL is the root of the Wix REST APIs.
	DefaultAPIBaseURL = "https://www.wixapis.com"

	// DefaultTokenURL issues visitor and member tokens for headless clients.
	DefaultTokenURL = DefaultAPIBaseURL + "/oauth2/token"

	// SiteIDHeader scopes a request to a single site.
	SiteIDHeader = "wix-site-id"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// TokenTypeBearer is reported for tokens set by hand.
	TokenTypeBearer = "bearer"
)

// Pagination.
const (
	// DefaultPageSize is the default number of items per query.
	DefaultPageSize = 50

	// MaxPageSize is the largest page the Wix query APIs accept.
	MaxPageSize = 100
)

// Logging.
const (
	// DefaultLogMaxSizeMB is the rotation size of the CLI log file.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxBackups is the number of rotated log files kept.
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAgeDays is how long rotated log files are kept.
	DefaultLogMaxAgeDays = 28
)

// Utility defaults.
const (
	// DefaultCurrency is used when a price has no currency.
	DefaultCurrency = "USD"

	// DefaultLocale is used for number and date formatting.
	DefaultLocale = "en-US"

	// UniqueIDSuffixLength is the length of the random part of generated IDs.
	UniqueIDSuffixLength = 9
)

// UI and display constants.
const (
	// CheckMarkSymbol marks selected or up-to-date items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// DescriptionDisplayLength is the length for descriptions in tables.
	DescriptionDisplayLength = 60
)

// Output formats.
const (
	// FormatTable renders a table.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)
