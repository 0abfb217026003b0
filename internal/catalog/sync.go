package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

const packageJSON = "package.json"

// SyncOptions narrows and controls Sync.
type SyncOptions struct {
	// Template restricts the sync to one template ("framework/name" or name).
	Template string
	// DryRun reports changes without writing them.
	DryRun bool
}

// DependencyChange is one version bump in a package.json.
type DependencyChange struct {
	Template string `json:"template" yaml:"template"`
	Package  string `json:"package"  yaml:"package"`
	From     string `json:"from"     yaml:"from"`
	To       string `json:"to"       yaml:"to"`
}

// SkippedTemplate is a template that could not be synced.
type SkippedTemplate struct {
	Template string `json:"template" yaml:"template"`
	Reason   string `json:"reason"   yaml:"reason"`
}

// SyncResult is the outcome of Sync.
type SyncResult struct {
	Changes  []DependencyChange `json:"changes"           yaml:"changes"`
	Updated  []string           `json:"updated"           yaml:"updated"`
	UpToDate []string           `json:"up_to_date"        yaml:"up_to_date"`
	Skipped  []SkippedTemplate  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	DryRun   bool               `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// Sync brings shared dependency versions in every template's package.json
// in line with deps. Only dependencies a template already declares are
// changed; key order and formatting of the file are preserved.
func Sync(fs afero.Fs, root string, deps SharedDependencies, opts SyncOptions) (*SyncResult, error) {
	scan, err := Scan(fs, root)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{DryRun: opts.DryRun}
	matched := opts.Template == ""

	for _, framework := range scan.Frameworks {
		for _, name := range framework.Templates {
			path := string(framework.Framework) + "/" + name
			if opts.Template != "" && opts.Template != path && opts.Template != name {
				continue
			}

			matched = true

			err = syncTemplate(fs, filepath.Join(root, path), path, deps[framework.Framework], opts.DryRun, result)
			if err != nil {
				return nil, err
			}
		}
	}

	if !matched {
		return nil, fmt.Errorf("%w: %s", wix.ErrTemplateNotFound, opts.Template)
	}

	return result, nil
}

func syncTemplate(fs afero.Fs, dir, path string, deps map[string]string, dryRun bool, result *SyncResult) error {
	file := filepath.Join(dir, packageJSON)

	data, err := afero.ReadFile(fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			result.Skipped = append(result.Skipped, SkippedTemplate{Template: path, Reason: "no package.json found"})

			return nil
		}

		return fmt.Errorf("reading %s: %w", file, err)
	}

	if !gjson.ValidBytes(data) {
		result.Skipped = append(result.Skipped, SkippedTemplate{Template: path, Reason: "package.json is not valid JSON"})

		return nil
	}

	changes := dependencyChanges(data, path, deps)
	if len(changes) == 0 {
		result.UpToDate = append(result.UpToDate, path)

		return nil
	}

	for _, change := range changes {
		data, err = sjson.SetBytes(data, "dependencies."+escapePath(change.Package), change.To)
		if err != nil {
			return fmt.Errorf("updating %s in %s: %w", change.Package, file, err)
		}
	}

	if !dryRun {
		info, statErr := fs.Stat(file)

		mode := os.FileMode(constants.ScaffoldFilePerm)
		if statErr == nil {
			mode = info.Mode().Perm()
		}

		err = afero.WriteFile(fs, file, data, mode)
		if err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
	}

	result.Changes = append(result.Changes, changes...)
	result.Updated = append(result.Updated, path)

	return nil
}

func dependencyChanges(data []byte, path string, deps map[string]string) []DependencyChange {
	declared := make(map[string]string)

	gjson.GetBytes(data, "dependencies").ForEach(func(key, value gjson.Result) bool {
		declared[key.String()] = value.String()

		return true
	})

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}

	sort.Strings(names)

	var changes []DependencyChange

	for _, name := range names {
		current, ok := declared[name]
		if ok && current != deps[name] {
			changes = append(changes, DependencyChange{Template: path, Package: name, From: current, To: deps[name]})
		}
	}

	return changes
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	".", `\.`,
	"*", `\*`,
	"?", `\?`,
	"@", `\@`,
	"|", `\|`,
	"#", `\#`,
	":", `\:`,
)

// escapePath escapes a key for use in a gjson/sjson path.
func escapePath(key string) string {
	return pathEscaper.Replace(key)
}
