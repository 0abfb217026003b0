//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ClientID   string
	APIKey     string
	SiteID     string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ClientID:   os.Getenv(wix.EnvClientID),
		APIKey:     os.Getenv("WIX_API_KEY"),
		SiteID:     os.Getenv(wix.EnvSiteID),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("WIX_TEMPLATES_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the wix-templates binary
func getBinaryPath() string {
	if path := os.Getenv("WIX_TEMPLATES_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../wix-templates",
		"./wix-templates",
		"../wix-templates",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "wix-templates"
}

// SkipIfNoBinary skips the test when the CLI has not been built
func (config *TestConfig) SkipIfNoBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("wix-templates binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// SkipIfNoVisitorCredentials skips the test unless a headless client ID is set
func (config *TestConfig) SkipIfNoVisitorCredentials(t *testing.T) {
	t.Helper()

	if config.ClientID == "" {
		t.Skipf("%s not set, skipping integration test", wix.EnvClientID)
	}
}

// CommandRunner runs the CLI against an isolated config file
type CommandRunner struct {
	config     *TestConfig
	t          *testing.T
	configFile string
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		t:          t,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
	}
}

// Run executes a wix-templates command and returns its output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.BinaryPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
