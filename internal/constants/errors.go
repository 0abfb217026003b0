package constants

import "errors"

// Configuration errors.
var (
	ErrNoSiteConfigured     = errors.New("no site configured, use 'wix-templates config set site_id <id>'")
	ErrNoClientIDConfigured = errors.New("no client ID configured, set WIX_CLIENT_ID or 'wix-templates config set client_id <id>'")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrInvalidOutputFormat  = errors.New("invalid output format, expected table, json or yaml")
)

// Command argument errors.
var (
	ErrCollectionRequired = errors.New("--collection flag is required")
	ErrServiceRequired    = errors.New("--service flag is required")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidDateFlag    = errors.New("invalid date, expected YYYY-MM-DD or RFC 3339")
)

// ErrDirectoryTraversalDetected is returned when a copied path escapes its root.
var ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
