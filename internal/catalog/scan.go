package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// FrameworkScan lists the template directories found for one framework.
type FrameworkScan struct {
	Framework wix.Framework `json:"framework"         yaml:"framework"`
	Templates []string      `json:"templates"         yaml:"templates"`
	Missing   bool          `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ScanResult is the outcome of Scan.
type ScanResult struct {
	Frameworks []FrameworkScan `json:"frameworks" yaml:"frameworks"`
}

// Total returns the number of templates found.
func (r *ScanResult) Total() int {
	total := 0
	for _, framework := range r.Frameworks {
		total += len(framework.Templates)
	}

	return total
}

// Scan lists the directories under <root>/<framework> for every framework.
// A missing framework directory is reported, not treated as an error.
func Scan(fs afero.Fs, root string) (*ScanResult, error) {
	result := &ScanResult{}

	for _, framework := range wix.Frameworks() {
		templates, err := templateDirs(fs, filepath.Join(root, string(framework)))
		if err != nil {
			if os.IsNotExist(err) {
				result.Frameworks = append(result.Frameworks, FrameworkScan{Framework: framework, Missing: true})

				continue
			}

			return nil, fmt.Errorf("scanning %s templates: %w", framework, err)
		}

		result.Frameworks = append(result.Frameworks, FrameworkScan{Framework: framework, Templates: templates})
	}

	return result, nil
}

func templateDirs(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}
