package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Browse and register to events",
		Long:    "Query Wix Events and register guests",
	}

	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsGetCommand())
	cmd.AddCommand(newEventsRegisterCommand())

	return cmd
}

func newEventsListCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				result, err := client.Events().GetEvents(cmd.Context(), queryOptions(limit, offset))
				if err != nil {
					return fmt.Errorf("failed to query events: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					return displayEventsTable(w, result.Events)
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of events")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of events to skip")

	return cmd
}

func newEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EVENT_ID",
		Short: "Get event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				event, err := client.Events().GetEvent(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get event: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), event, func(w io.Writer) error {
					return displayEventsTable(w, []wix.Event{*event})
				})
			})
		},
	}
}

func displayEventsTable(w io.Writer, events []wix.Event) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events found")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Starts", "Location", "Status")

	for _, event := range events {
		location := constants.NotAvailable
		if event.Location != nil {
			location = orNotAvailable(event.Location.Name)
		}

		_ = table.Append([]string{
			event.ID,
			event.Title,
			formatTime(event.Scheduling.StartDate),
			location,
			orNotAvailable(event.Status),
		})
	}

	return renderTable(table)
}

func newEventsRegisterCommand() *cobra.Command {
	var registration wix.Registration

	cmd := &cobra.Command{
		Use:   "register EVENT_ID",
		Short: "Register a guest to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				result, err := client.Events().RegisterToEvent(cmd.Context(), args[0], &registration)
				if err != nil {
					return fmt.Errorf("failed to register to event: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Registered to %s (registration %s, status %s)\n",
						args[0], result.ID, orNotAvailable(result.Status))

					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&registration.Guest.FirstName, "first-name", "", "guest first name")
	cmd.Flags().StringVar(&registration.Guest.LastName, "last-name", "", "guest last name")
	cmd.Flags().StringVar(&registration.Guest.Email, "email", "", "guest email")
	cmd.Flags().IntVar(&registration.GuestCount, "guests", 1, "number of guests")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
