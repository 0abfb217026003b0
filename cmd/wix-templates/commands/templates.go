package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/wix-templates/internal/catalog"
	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init TEMPLATE [DIRECTORY]",
		Short: "Initialize a new project from a template",
		Long: `Copy a template from the templates root into DIRECTORY (default ".").

Build output and node_modules are not copied. DIRECTORY must be empty or
not exist yet.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := "."
			if len(args) > 1 {
				dest = args[1]
			}

			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			template, err := cat.Find(args[0])
			if err != nil {
				return err
			}

			result, err := catalog.Scaffold(appFs, templatesRoot(), *template, dest)
			if err != nil {
				return err
			}

			return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
				return displayScaffoldResult(w, template, result)
			})
		},
	}
}

func displayScaffoldResult(w io.Writer, template *catalog.Template, result *catalog.ScaffoldResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Created %s from %s (%d files)\n\n", result.Destination, result.Template, result.Files)
	b.WriteString("Next steps:\n")
	fmt.Fprintf(&b, "  cd %s\n", result.Destination)
	b.WriteString("  npm install\n")

	if commands := wix.GetFrameworkConfig(template.Framework); commands != nil {
		fmt.Fprintf(&b, "  npx %s\n", commands.DevCommand)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	var (
		all      bool
		template string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update templates with latest changes",
		Long:  "Apply the shared dependency versions to all templates or to a single one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && template == "" {
				return fmt.Errorf("%w: use --all or --template NAME", wix.ErrNoTemplateSpecified)
			}

			if all {
				template = ""
			}

			return runSync(cmd.OutOrStdout(), catalog.SyncOptions{Template: template})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "update all templates")
	cmd.Flags().StringVarP(&template, "template", "t", "", "update a specific template")
	cmd.MarkFlagsMutuallyExclusive("all", "template")

	return cmd
}

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	var opts catalog.SyncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync shared dependency versions across templates",
		Long: `Bring the shared dependencies of every template's package.json in line with
the catalog. Only packages a template already depends on are changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show changes without writing them")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "sync a single template")

	return cmd
}

func runSync(w io.Writer, opts catalog.SyncOptions) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	result, err := catalog.Sync(appFs, templatesRoot(), cat.SharedDependencies, opts)
	if err != nil {
		return err
	}

	return renderOutput(w, result, func(w io.Writer) error {
		return displaySyncResult(w, result)
	})
}

func displaySyncResult(w io.Writer, result *catalog.SyncResult) error {
	if len(result.Changes) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header("Template", "Package", "From", "To")

		for _, change := range result.Changes {
			_ = table.Append([]string{change.Template, change.Package, change.From, change.To})
		}

		err := renderTable(table)
		if err != nil {
			return err
		}
	}

	for _, skipped := range result.Skipped {
		_, _ = fmt.Fprintf(w, "Skipped %s: %s\n", skipped.Template, skipped.Reason)
	}

	for _, template := range result.UpToDate {
		_, _ = fmt.Fprintf(w, "%s %s is up to date\n", constants.CheckMarkSymbol, template)
	}

	verb := "Updated"
	if result.DryRun {
		verb = "Would update"
	}

	_, err := fmt.Fprintf(w, "%s %d template(s), %d up to date, %d skipped\n",
		verb, len(result.Updated), len(result.UpToDate), len(result.Skipped))

	return err
}
