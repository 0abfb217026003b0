// Package catalog describes the template catalog and manages template
// directories on disk: scanning, dependency sync and scaffolding.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Template is a single template in the catalog.
type Template struct {
	Name        string         `json:"name"                  yaml:"name"`
	Framework   wix.Framework  `json:"framework"             yaml:"-"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Solutions   []wix.Solution `json:"solutions"             yaml:"solutions"`
}

// Path returns the template's location relative to the templates root,
// e.g. "astro/blog".
func (t Template) Path() string {
	return string(t.Framework) + "/" + t.Name
}

// HasSolution reports whether the template uses solution.
func (t Template) HasSolution(solution wix.Solution) bool {
	for _, s := range t.Solutions {
		if s == solution {
			return true
		}
	}

	return false
}

// FrameworkTemplates groups templates by framework.
type FrameworkTemplates struct {
	Name      wix.Framework `json:"name"      yaml:"name"`
	Templates []Template    `json:"templates" yaml:"templates"`
}

// SharedDependencies maps a framework to the package versions it shares.
type SharedDependencies map[wix.Framework]map[string]string

// Catalog is the parsed template catalog.
type Catalog struct {
	Frameworks         []FrameworkTemplates `json:"frameworks"          yaml:"frameworks"`
	SharedDependencies SharedDependencies   `json:"shared_dependencies" yaml:"shared_dependencies"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse reads a catalog from YAML and validates its framework and
// solution names.
func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog

	err := yaml.Unmarshal(data, &catalog)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	for i := range catalog.Frameworks {
		group := &catalog.Frameworks[i]

		_, err = wix.ParseFramework(string(group.Name))
		if err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}

		for j := range group.Templates {
			group.Templates[j].Framework = group.Name

			for _, solution := range group.Templates[j].Solutions {
				_, err = wix.ParseSolution(string(solution))
				if err != nil {
					return nil, fmt.Errorf("parsing catalog: template %s: %w", group.Templates[j].Path(), err)
				}
			}
		}
	}

	return &catalog, nil
}

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []Template {
	var templates []Template
	for _, group := range c.Frameworks {
		templates = append(templates, group.Templates...)
	}

	return templates
}

// FrameworkNames returns the frameworks that have templates.
func (c *Catalog) FrameworkNames() []wix.Framework {
	names := make([]wix.Framework, 0, len(c.Frameworks))
	for _, group := range c.Frameworks {
		names = append(names, group.Name)
	}

	return names
}

// Filter returns the templates matching framework and solution. Empty
// arguments match everything.
func (c *Catalog) Filter(framework, solution string) ([]Template, error) {
	if framework != "" {
		if _, err := wix.ParseFramework(framework); err != nil {
			return nil, err
		}
	}

	if solution != "" {
		if _, err := wix.ParseSolution(solution); err != nil {
			return nil, err
		}
	}

	var matches []Template

	for _, template := range c.Templates() {
		if framework != "" && string(template.Framework) != framework {
			continue
		}

		if solution != "" && !template.HasSolution(wix.Solution(solution)) {
			continue
		}

		matches = append(matches, template)
	}

	return matches, nil
}

// Find looks a template up by "framework/name" or by a name that only one
// framework uses.
func (c *Catalog) Find(name string) (*Template, error) {
	var matches []Template

	for _, template := range c.Templates() {
		if template.Path() == name || template.Name == name {
			matches = append(matches, template)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", wix.ErrTemplateNotFound, name)
	case 1:
		return &matches[0], nil
	default:
		paths := make([]string, 0, len(matches))
		for _, match := range matches {
			paths = append(paths, match.Path())
		}

		return nil, fmt.Errorf("%w: %s (use one of %s)", wix.ErrAmbiguousTemplate, name, strings.Join(paths, ", "))
	}
}
