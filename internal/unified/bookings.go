package unified

import (
	"context"
	"time"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// BookingsClient implements wix.BookingsClient.
type BookingsClient struct {
	domain
}

// NewBookingsClient creates a new bookings client.
func NewBookingsClient(backend wix.Backend, logger wix.Logger) *BookingsClient {
	return &BookingsClient{domain: domain{name: "Bookings", backend: backend, logger: logger}}
}

// GetServices implements wix.BookingsClient.GetServices.
func (c *BookingsClient) GetServices(ctx context.Context, opts *wix.QueryOptions) (*wix.ServicesResult, error) {
	return invoke(ctx, c.domain, "getServices", func(ctx context.Context, backend wix.Backend) (*wix.ServicesResult, error) {
		return backend.Services().QueryServices(ctx, opts)
	})
}

// GetAvailability implements wix.BookingsClient.GetAvailability.
func (c *BookingsClient) GetAvailability(ctx context.Context, serviceID string, date time.Time) (*wix.Availability, error) {
	return invoke(ctx, c.domain, "getAvailability", func(ctx context.Context, backend wix.Backend) (*wix.Availability, error) {
		return backend.Availability().GetAvailability(ctx, serviceID, date)
	})
}

// CreateBooking implements wix.BookingsClient.CreateBooking.
func (c *BookingsClient) CreateBooking(ctx context.Context, booking *wix.BookingRequest) (*wix.Booking, error) {
	return invoke(ctx, c.domain, "createBooking", func(ctx context.Context, backend wix.Backend) (*wix.Booking, error) {
		return backend.Bookings().CreateBooking(ctx, booking)
	})
}
