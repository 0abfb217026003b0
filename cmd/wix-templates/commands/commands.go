// Package commands implements the wix-templates command tree.
package commands

import "github.com/spf13/cobra"

// AddCommands registers every command on root.
func AddCommands(root *cobra.Command, version, commit, date string) {
	root.AddCommand(NewVersionCommand(version, commit, date))
	root.AddCommand(NewConfigCommand())

	// Catalog
	root.AddCommand(NewListCommand())
	root.AddCommand(NewInfoCommand())
	root.AddCommand(NewInitCommand())
	root.AddCommand(NewUpdateCommand())
	root.AddCommand(NewSyncCommand())
	root.AddCommand(NewCatalogCommand())
	root.AddCommand(NewSolutionsCommand())
	root.AddCommand(NewFrameworksCommand())

	// Wix business solutions
	root.AddCommand(NewCMSCommand())
	root.AddCommand(NewStoresCommand())
	root.AddCommand(NewBookingsCommand())
	root.AddCommand(NewEventsCommand())
	root.AddCommand(NewMembersCommand())
}
