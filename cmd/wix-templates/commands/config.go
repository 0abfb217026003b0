package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
	"github.com/fivetwenty-io/wix-templates/pkg/wixutil"
)

const (
	configDirName  = ".wix-templates"
	configFileName = "config.yml"
	envPrefix      = "WIX_TEMPLATES"
)

// Config represents the CLI configuration.
type Config struct {
	// Global settings
	Output        string `json:"output,omitempty"         yaml:"output,omitempty"`
	TemplatesRoot string `json:"templates_root,omitempty" yaml:"templates_root,omitempty"`
	LogFile       string `json:"log_file,omitempty"       yaml:"log_file,omitempty"`

	// Site and client
	APIBaseURL   string `json:"api_base_url,omitempty"  yaml:"api_base_url,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	InstanceID   string `json:"instance_id,omitempty"   yaml:"instance_id,omitempty"`
	APIKey       string `json:"api_key,omitempty"       yaml:"api_key,omitempty"`
	SiteID       string `json:"site_id,omitempty"       yaml:"site_id,omitempty"`

	// Session state written back by the CLI
	AccessToken          string     `json:"access_token,omitempty"            yaml:"access_token,omitempty"`
	AccessTokenExpiresAt *time.Time `json:"access_token_expires_at,omitempty" yaml:"access_token_expires_at,omitempty"`
	RefreshToken         string     `json:"refresh_token,omitempty"           yaml:"refresh_token,omitempty"`
	LastRefreshed        *time.Time `json:"last_refreshed,omitempty"          yaml:"last_refreshed,omitempty"`
	SessionToken         string     `json:"session_token,omitempty"           yaml:"session_token,omitempty"`
	MemberID             string     `json:"member_id,omitempty"               yaml:"member_id,omitempty"`
}

// envBindings lets the CLI pick up the variables the templates already use.
var envBindings = map[string][]string{
	"client_id":     {envPrefix + "_CLIENT_ID", wix.EnvClientID, "WIX_CLIENT_ID"},
	"client_secret": {envPrefix + "_CLIENT_SECRET", wix.EnvClientSecret},
	"refresh_token": {envPrefix + "_REFRESH_TOKEN", wix.EnvRefreshToken},
	"site_id":       {envPrefix + "_SITE_ID", wix.EnvSiteID, "WIX_SITE_ID"},
	"api_key":       {envPrefix + "_API_KEY", "WIX_API_KEY"},
}

// appFs is the filesystem used for configuration and templates.
var appFs = afero.NewOsFs()

// InitConfig points viper at the config file and the environment. A missing
// config file is not an error.
func InitConfig(cfgFile string) error {
	viper.SetFs(appFs)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		viper.AddConfigPath(filepath.Join(home, configDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for key, names := range envBindings {
		_ = viper.BindEnv(append([]string{key}, names...)...)
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the site, credentials and defaults used by wix-templates",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from file, environment and flags. Secrets are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskConfig(loadConfig())

			return renderOutput(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value in the config file. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd.OutOrStdout(), "Set", args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd.OutOrStdout(), "Unset", args[0], "")
		},
	}
}

func updateConfigValue(w io.Writer, action, key, value string) error {
	key = strings.ReplaceAll(key, "-", "_")

	handler, ok := configHandlers[key]
	if !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(configKeys(), ", "))
	}

	if key == "output" && value != "" {
		err := validateOutputFormat(value)
		if err != nil {
			return err
		}
	}

	config, err := loadFileConfig()
	if err != nil {
		return err
	}

	handler(config, value)

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return outputConfigUpdateResult(w, action, key, value)
}

// configHandlers set one key of the config file.
var configHandlers = map[string]func(*Config, string){
	"output":         func(c *Config, v string) { c.Output = v },
	"templates_root": func(c *Config, v string) { c.TemplatesRoot = v },
	"log_file":       func(c *Config, v string) { c.LogFile = v },
	"api_base_url":   func(c *Config, v string) { c.APIBaseURL = v },
	"client_id":      func(c *Config, v string) { c.ClientID = v },
	"client_secret":  func(c *Config, v string) { c.ClientSecret = v },
	"instance_id":    func(c *Config, v string) { c.InstanceID = v },
	"api_key":        func(c *Config, v string) { c.APIKey = v },
	"site_id":        func(c *Config, v string) { c.SiteID = v },
	"refresh_token":  func(c *Config, v string) { c.RefreshToken = v },
	"access_token": func(c *Config, v string) {
		c.AccessToken = v
		c.AccessTokenExpiresAt = nil
	},
}

func configKeys() []string {
	keys := make([]string, 0, len(configHandlers))
	for key := range configHandlers {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func isSecretKey(key string) bool {
	switch key {
	case "client_secret", "api_key", "access_token", "refresh_token", "session_token":
		return true
	default:
		return false
	}
}

// loadConfig returns the effective configuration: file, environment and
// flags merged by viper.
func loadConfig() *Config {
	config := &Config{
		Output:        viper.GetString("output"),
		TemplatesRoot: viper.GetString("templates_root"),
		LogFile:       viper.GetString("log_file"),
		APIBaseURL:    viper.GetString("api_base_url"),
		ClientID:      viper.GetString("client_id"),
		ClientSecret:  viper.GetString("client_secret"),
		InstanceID:    viper.GetString("instance_id"),
		APIKey:        viper.GetString("api_key"),
		SiteID:        viper.GetString("site_id"),
		AccessToken:   viper.GetString("access_token"),
		RefreshToken:  viper.GetString("refresh_token"),
		SessionToken:  viper.GetString("session_token"),
		MemberID:      viper.GetString("member_id"),
	}

	if expiresAt := viper.GetTime("access_token_expires_at"); !expiresAt.IsZero() {
		config.AccessTokenExpiresAt = &expiresAt
	}

	if refreshed := viper.GetTime("last_refreshed"); !refreshed.IsZero() {
		config.LastRefreshed = &refreshed
	}

	return config
}

// loadFileConfig reads only the config file, so that saving it never copies
// environment variables or flags to disk.
func loadFileConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func configFilePath() (string, error) {
	if file := viper.ConfigFileUsed(); file != "" {
		return file, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = appFs.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = afero.WriteFile(appFs, configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.SetConfigFile(configFile)

	err = viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to reload config file: %w", err)
	}

	return nil
}

func maskConfig(config *Config) *Config {
	masked := *config

	for _, field := range []*string{
		&masked.ClientSecret,
		&masked.APIKey,
		&masked.AccessToken,
		&masked.RefreshToken,
		&masked.SessionToken,
	} {
		if *field != "" {
			*field = constants.MaskedSecret
		}
	}

	return &masked
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"Templates Root", formatConfigValue(config.TemplatesRoot)})
	_ = table.Append([]string{"Log File", formatConfigValue(config.LogFile)})
	_ = table.Append([]string{"API Base URL", formatConfigValue(config.APIBaseURL)})
	_ = table.Append([]string{"Client ID", formatConfigValue(config.ClientID)})
	_ = table.Append([]string{"Client Secret", formatConfigValue(config.ClientSecret)})
	_ = table.Append([]string{"Instance ID", formatConfigValue(config.InstanceID)})
	_ = table.Append([]string{"API Key", formatConfigValue(config.APIKey)})
	_ = table.Append([]string{"Site ID", formatConfigValue(config.SiteID)})
	_ = table.Append([]string{"Access Token", formatConfigValue(config.AccessToken)})

	if config.AccessTokenExpiresAt != nil {
		_ = table.Append([]string{"Token Expires", config.AccessTokenExpiresAt.Format(time.RFC3339)})
	}

	_ = table.Append([]string{"Refresh Token", formatConfigValue(config.RefreshToken)})

	if config.MemberID != "" {
		_ = table.Append([]string{"Member ID", config.MemberID})
	}

	credentials := constants.CheckMarkSymbol

	err := wixutil.CheckCredentials(wixutil.Credentials{ClientID: config.ClientID, SiteID: config.SiteID})
	if err != nil {
		credentials = wix.ErrorMessage(err)
	}

	_ = table.Append([]string{"Credentials", credentials})

	return renderTable(table)
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func outputConfigUpdateResult(w io.Writer, action, key, value string) error {
	if isSecretKey(key) && value != "" {
		value = constants.MaskedSecret
	}

	result := map[string]string{
		"action": strings.ToLower(action),
		"key":    key,
		"value":  value,
	}

	return renderOutput(w, result, func(w io.Writer) error {
		if value == "" {
			_, err := fmt.Fprintf(w, "%s %s\n", action, key)

			return err
		}

		_, err := fmt.Fprintf(w, "%s %s = %s\n", action, key, value)

		return err
	})
}
