package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// NewCMSCommand creates the cms command group.
func NewCMSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cms",
		Short: "Query Wix CMS collections",
		Long:  "Read data items from the CMS collections of the configured site",
	}

	cmd.AddCommand(newCMSItemsCommand())
	cmd.AddCommand(newCMSItemCommand())

	return cmd
}

func newCMSItemsCommand() *cobra.Command {
	var (
		collection string
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items of a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if collection == "" {
				return constants.ErrCollectionRequired
			}

			return withClient(cmd.Context(), func(client wix.Client) error {
				result, err := client.CMS().GetItems(cmd.Context(), collection, queryOptions(limit, offset))
				if err != nil {
					return fmt.Errorf("failed to query items: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					return displayItemsTable(w, result.Items)
				})
			})
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "data collection ID")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of items")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of items to skip")

	return cmd
}

func newCMSItemCommand() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "item ITEM_ID",
		Short: "Get a single item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if collection == "" {
				return constants.ErrCollectionRequired
			}

			return withClient(cmd.Context(), func(client wix.Client) error {
				item, err := client.CMS().GetItem(cmd.Context(), collection, args[0])
				if err != nil {
					return fmt.Errorf("failed to get item: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), item, func(w io.Writer) error {
					return displayItemsTable(w, []wix.DataItem{*item})
				})
			})
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "data collection ID")

	return cmd
}

func displayItemsTable(w io.Writer, items []wix.DataItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items found")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Fields", "Data")

	for _, item := range items {
		data, err := json.Marshal(item.Data)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", item.ID, err)
		}

		_ = table.Append([]string{
			item.ID,
			strconv.Itoa(len(item.Data)),
			truncate(string(data), constants.DescriptionDisplayLength),
		})
	}

	return renderTable(table)
}
