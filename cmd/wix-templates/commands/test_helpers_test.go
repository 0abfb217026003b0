package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// setupTest resets viper and points the CLI at an empty config file in a
// temporary directory. Tests using it share global state and must not run
// in parallel.
func setupTest(t *testing.T) string {
	t.Helper()

	for _, names := range envBindings {
		for _, name := range names {
			if _, ok := os.LookupEnv(name); ok {
				t.Setenv(name, "")
			}
		}
	}

	dir := t.TempDir()
	previousFs := appFs

	viper.Reset()
	appFs = afero.NewOsFs()

	t.Cleanup(func() {
		viper.Reset()
		appFs = previousFs
	})

	require.NoError(t, InitConfig(filepath.Join(dir, "config.yml")))

	return dir
}

func newTestRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wix-templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("output", "o", "table", "output format")
	root.PersistentFlags().String("templates-root", "", "templates root")
	_ = viper.BindPFlag("output", root.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("templates_root", root.PersistentFlags().Lookup("templates-root"))

	AddCommands(root, "1.2.3", "abc123", "2026-01-01")

	return root
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newTestRootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(bytes.NewReader(nil))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// wixServer is a canned Wix API keyed by "METHOD /path".
type wixServer struct {
	server   *httptest.Server
	mutex    sync.Mutex
	routes   map[string]wixRoute
	requests []*http.Request
	bodies   []map[string]interface{}
}

type wixRoute struct {
	status int
	body   interface{}
}

func newWixServer(t *testing.T) *wixServer {
	t.Helper()

	s := &wixServer{routes: make(map[string]wixRoute)}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		var body map[string]interface{}
		if len(data) > 0 {
			_ = json.Unmarshal(data, &body)
		}

		s.mutex.Lock()
		s.requests = append(s.requests, r)
		s.bodies = append(s.bodies, body)
		route, ok := s.routes[r.Method+" "+r.URL.Path]
		s.mutex.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))

			return
		}

		w.WriteHeader(route.status)
		_ = json.NewEncoder(w).Encode(route.body)
	}))
	t.Cleanup(s.server.Close)

	return s
}

func (s *wixServer) on(method, path string, status int, body interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.routes[method+" "+path] = wixRoute{status: status, body: body}
}

func (s *wixServer) lastRequest() (*http.Request, map[string]interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.requests) == 0 {
		return nil, nil
	}

	return s.requests[len(s.requests)-1], s.bodies[len(s.bodies)-1]
}
