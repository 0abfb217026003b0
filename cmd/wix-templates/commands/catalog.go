package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/wix-templates/internal/catalog"
	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
	"github.com/fivetwenty-io/wix-templates/pkg/wixutil"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		framework string
		solution  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all available templates",
		Long:    "List the templates in the catalog, optionally filtered by framework and Wix solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			templates, err := cat.Filter(framework, solution)
			if err != nil {
				return err
			}

			return renderOutput(cmd.OutOrStdout(), templates, func(w io.Writer) error {
				return displayTemplatesTable(w, templates)
			})
		},
	}

	cmd.Flags().StringVarP(&framework, "framework", "f", "", "filter by framework (nextjs, astro, react-native)")
	cmd.Flags().StringVarP(&solution, "solution", "s", "", "filter by Wix solution")

	return cmd
}

func displayTemplatesTable(w io.Writer, templates []catalog.Template) error {
	if len(templates) == 0 {
		_, err := fmt.Fprintln(w, "No templates match the given filters")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Framework", "Template", "Solutions", "Description")

	for _, template := range templates {
		_ = table.Append([]string{
			string(template.Framework),
			template.Name,
			joinSolutions(template.Solutions),
			truncate(template.Description, constants.DescriptionDisplayLength),
		})
	}

	return renderTable(table)
}

func joinSolutions(solutions []wix.Solution) string {
	names := make([]string, 0, len(solutions))
	for _, solution := range solutions {
		names = append(names, string(solution))
	}

	return strings.Join(names, ", ")
}

// templateInfo is the output of the info command.
type templateInfo struct {
	catalog.Template `yaml:",inline"`

	Path     string               `json:"path"               yaml:"path"`
	OnDisk   bool                 `json:"on_disk"            yaml:"on_disk"`
	Commands *wix.FrameworkConfig `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info TEMPLATE",
		Short: "Show information about a template",
		Long:  "Show the solutions, location and framework commands of a template (name or framework/name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			template, err := cat.Find(args[0])
			if err != nil {
				return err
			}

			path := filepath.Join(templatesRoot(), string(template.Framework), template.Name)

			onDisk, err := afero.DirExists(appFs, path)
			if err != nil {
				return fmt.Errorf("failed to check template directory: %w", err)
			}

			info := templateInfo{
				Template: *template,
				Path:     path,
				OnDisk:   onDisk,
				Commands: wix.GetFrameworkConfig(template.Framework),
			}

			return renderOutput(cmd.OutOrStdout(), info, func(w io.Writer) error {
				return displayTemplateInfo(w, info)
			})
		},
	}
}

func displayTemplateInfo(w io.Writer, info templateInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Name", info.Name})
	_ = table.Append([]string{"Framework", string(info.Framework)})
	_ = table.Append([]string{"Solutions", joinSolutions(info.Solutions)})
	_ = table.Append([]string{"Description", orNotAvailable(info.Description)})
	_ = table.Append([]string{"Path", info.Path})

	onDisk := constants.NotAvailable
	if info.OnDisk {
		onDisk = constants.CheckMarkSymbol
	}

	_ = table.Append([]string{"On Disk", onDisk})

	if info.Commands != nil {
		_ = table.Append([]string{"Dev Command", info.Commands.DevCommand})
		_ = table.Append([]string{"Build Command", info.Commands.BuildCommand})
	}

	return renderTable(table)
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Scan the templates directory",
		Long:  "List the template directories found under the templates root, grouped by framework",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := catalog.Scan(appFs, templatesRoot())
			if err != nil {
				return err
			}

			return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
				return displayScanTable(w, result)
			})
		},
	}
}

func displayScanTable(w io.Writer, result *catalog.ScanResult) error {
	table := tablewriter.NewWriter(w)
	table.Header("Framework", "Count", "Templates")

	for _, framework := range result.Frameworks {
		templates := strings.Join(framework.Templates, ", ")
		if framework.Missing {
			templates = "directory not found"
		}

		_ = table.Append([]string{
			string(framework.Framework),
			strconv.Itoa(len(framework.Templates)),
			orNotAvailable(templates),
		})
	}

	err := renderTable(table)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Total templates: %d\n", result.Total())

	return err
}

type namedValue struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// NewSolutionsCommand creates the solutions command.
func NewSolutionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solutions",
		Short: "List all Wix business solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			solutions := make([]namedValue, 0, len(wix.Solutions()))
			for _, solution := range wix.Solutions() {
				solutions = append(solutions, namedValue{
					Key:   solution.Key(),
					Value: string(solution),
					Label: wixutil.Humanize(string(solution)),
				})
			}

			return renderOutput(cmd.OutOrStdout(), solutions, func(w io.Writer) error {
				return displayNamedValues(w, "Solution", solutions)
			})
		},
	}
}

// NewFrameworksCommand creates the frameworks command.
func NewFrameworksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List supported frameworks",
		RunE: func(cmd *cobra.Command, args []string) error {
			frameworks := make([]namedValue, 0, len(wix.Frameworks()))
			for _, framework := range wix.Frameworks() {
				frameworks = append(frameworks, namedValue{
					Key:   framework.Key(),
					Value: string(framework),
					Label: wixutil.Humanize(string(framework)),
				})
			}

			return renderOutput(cmd.OutOrStdout(), frameworks, func(w io.Writer) error {
				return displayNamedValues(w, "Framework", frameworks)
			})
		},
	}
}

func displayNamedValues(w io.Writer, kind string, values []namedValue) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", kind, "Name")

	for _, value := range values {
		_ = table.Append([]string{value.Key, value.Value, value.Label})
	}

	return renderTable(table)
}
