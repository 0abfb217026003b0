package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// NewBookingsCommand creates the bookings command group.
func NewBookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "Browse services and book slots",
		Long:    "Query Wix Bookings services and availability and create bookings",
	}

	cmd.AddCommand(newBookingsServicesCommand())
	cmd.AddCommand(newBookingsAvailabilityCommand())
	cmd.AddCommand(newBookingsBookCommand())

	return cmd
}

func newBookingsServicesCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				result, err := client.Bookings().GetServices(cmd.Context(), queryOptions(limit, offset))
				if err != nil {
					return fmt.Errorf("failed to query services: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					return displayServicesTable(w, result.Services)
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of services")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of services to skip")

	return cmd
}

func displayServicesTable(w io.Writer, services []wix.Service) error {
	if len(services) == 0 {
		_, err := fmt.Fprintln(w, "No services found")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Type", "Tagline")

	for _, service := range services {
		_ = table.Append([]string{
			service.ID,
			service.Name,
			orNotAvailable(service.Type),
			truncate(orNotAvailable(service.Tagline), constants.DescriptionDisplayLength),
		})
	}

	return renderTable(table)
}

func newBookingsAvailabilityCommand() *cobra.Command {
	var (
		serviceID string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show available slots of a service",
		Long:  "Show the slots of a service on a day (YYYY-MM-DD, default today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceID == "" {
				return constants.ErrServiceRequired
			}

			day := time.Now()

			if date != "" {
				parsed, err := parseDateFlag(date)
				if err != nil {
					return err
				}

				day = parsed
			}

			return withClient(cmd.Context(), func(client wix.Client) error {
				availability, err := client.Bookings().GetAvailability(cmd.Context(), serviceID, day)
				if err != nil {
					return fmt.Errorf("failed to get availability: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), availability, func(w io.Writer) error {
					return displayAvailabilityTable(w, availability.Entries)
				})
			})
		},
	}

	cmd.Flags().StringVar(&serviceID, "service", "", "service ID")
	cmd.Flags().StringVar(&date, "date", "", "day to check (YYYY-MM-DD)")

	return cmd
}

func displayAvailabilityTable(w io.Writer, entries []wix.AvailabilityEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No available slots")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Start", "End", "Open Spots", "Bookable")

	for _, entry := range entries {
		bookable := constants.None
		if entry.Bookable {
			bookable = constants.CheckMarkSymbol
		}

		_ = table.Append([]string{
			formatTime(&entry.Slot.StartDate),
			formatTime(&entry.Slot.EndDate),
			fmt.Sprintf("%d/%d", entry.OpenSpots, entry.TotalSpots),
			bookable,
		})
	}

	return renderTable(table)
}

func newBookingsBookCommand() *cobra.Command {
	var (
		request wix.BookingRequest
		start   string
		end     string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a slot",
		Long:  "Create a booking for a service slot. Start and end are RFC 3339 timestamps.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if request.Slot.ServiceID == "" {
				return constants.ErrServiceRequired
			}

			var err error

			request.Slot.StartDate, err = parseDateFlag(start)
			if err != nil {
				return err
			}

			request.Slot.EndDate, err = parseDateFlag(end)
			if err != nil {
				return err
			}

			if request.NumberOfSpots <= 0 {
				return fmt.Errorf("%w: %d", constants.ErrInvalidQuantity, request.NumberOfSpots)
			}

			return withClient(cmd.Context(), func(client wix.Client) error {
				booking, err := client.Bookings().CreateBooking(cmd.Context(), &request)
				if err != nil {
					return fmt.Errorf("failed to create booking: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), booking, func(w io.Writer) error {
					table := tablewriter.NewWriter(w)
					table.Header("Property", "Value")
					_ = table.Append([]string{"Booking ID", booking.ID})
					_ = table.Append([]string{"Status", orNotAvailable(booking.Status)})
					_ = table.Append([]string{"Start", formatTime(&booking.Slot.StartDate)})
					_ = table.Append([]string{"Spots", strconv.Itoa(request.NumberOfSpots)})

					return renderTable(table)
				})
			})
		},
	}

	cmd.Flags().StringVar(&request.Slot.ServiceID, "service", "", "service ID")
	cmd.Flags().StringVar(&start, "start", "", "slot start (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "slot end (RFC 3339)")
	cmd.Flags().StringVar(&request.ContactDetails.FirstName, "first-name", "", "contact first name")
	cmd.Flags().StringVar(&request.ContactDetails.LastName, "last-name", "", "contact last name")
	cmd.Flags().StringVar(&request.ContactDetails.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&request.ContactDetails.Phone, "phone", "", "contact phone")
	cmd.Flags().IntVar(&request.NumberOfSpots, "spots", 1, "number of participants")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
