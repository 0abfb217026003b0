package client

import (
	"context"
	"time"

	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// ServicesClient implements wix.ServicesAPI.
type ServicesClient struct {
	httpClient *http.Client
}

// NewServicesClient creates a new bookings services client.
func NewServicesClient(httpClient *http.Client) *ServicesClient {
	return &ServicesClient{httpClient: httpClient}
}

// QueryServices implements wix.ServicesAPI.QueryServices.
func (c *ServicesClient) QueryServices(ctx context.Context, opts *wix.QueryOptions) (*wix.ServicesResult, error) {
	return postJSON[wix.ServicesResult](ctx, c.httpClient, "/bookings/v2/services/query", newQueryRequest(opts), "querying services")
}

// AvailabilityClient implements wix.AvailabilityAPI.
type AvailabilityClient struct {
	httpClient *http.Client
}

// NewAvailabilityClient creates a new availability client.
func NewAvailabilityClient(httpClient *http.Client) *AvailabilityClient {
	return &AvailabilityClient{httpClient: httpClient}
}

// GetAvailability implements wix.AvailabilityAPI.GetAvailability. The
// window covers the calendar day of date in date's location.
func (c *AvailabilityClient) GetAvailability(ctx context.Context, serviceID string, date time.Time) (*wix.Availability, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	opts := wix.NewQueryOptions().
		WithFilter("serviceId", []string{serviceID}).
		WithFilter("startDate", start.Format(time.RFC3339)).
		WithFilter("endDate", end.Format(time.RFC3339))

	return postJSON[wix.Availability](ctx, c.httpClient, "/bookings/v1/availability/query", newQueryRequest(opts), "querying availability")
}

// BookingsClient implements wix.BookingsAPI.
type BookingsClient struct {
	httpClient *http.Client
}

// NewBookingsClient creates a new bookings client.
func NewBookingsClient(httpClient *http.Client) *BookingsClient {
	return &BookingsClient{httpClient: httpClient}
}

type createBookingRequest struct {
	Booking *wix.BookingRequest `json:"booking"`
}

type bookingResponse struct {
	Booking wix.Booking `json:"booking"`
}

// CreateBooking implements wix.BookingsAPI.CreateBooking.
func (c *BookingsClient) CreateBooking(ctx context.Context, booking *wix.BookingRequest) (*wix.Booking, error) {
	resp, err := postJSON[bookingResponse](ctx, c.httpClient, "/bookings/v2/bookings", &createBookingRequest{Booking: booking}, "creating booking")
	if err != nil {
		return nil, err
	}

	return &resp.Booking, nil
}
