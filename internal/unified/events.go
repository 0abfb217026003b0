package unified

import (
	"context"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// EventsClient implements wix.EventsClient.
type EventsClient struct {
	domain
}

// NewEventsClient creates a new events client.
func NewEventsClient(backend wix.Backend, logger wix.Logger) *EventsClient {
	return &EventsClient{domain: domain{name: "Events", backend: backend, logger: logger}}
}

// GetEvents implements wix.EventsClient.GetEvents.
func (c *EventsClient) GetEvents(ctx context.Context, opts *wix.QueryOptions) (*wix.EventsResult, error) {
	return invoke(ctx, c.domain, "getEvents", func(ctx context.Context, backend wix.Backend) (*wix.EventsResult, error) {
		return backend.Events().QueryEvents(ctx, opts)
	})
}

// GetEvent implements wix.EventsClient.GetEvent.
func (c *EventsClient) GetEvent(ctx context.Context, eventID string) (*wix.Event, error) {
	return invoke(ctx, c.domain, "getEvent", func(ctx context.Context, backend wix.Backend) (*wix.Event, error) {
		return backend.Events().GetEvent(ctx, eventID)
	})
}

// RegisterToEvent implements wix.EventsClient.RegisterToEvent.
func (c *EventsClient) RegisterToEvent(ctx context.Context, eventID string, registration *wix.Registration) (*wix.RegistrationResult, error) {
	return invoke(ctx, c.domain, "registerToEvent", func(ctx context.Context, backend wix.Backend) (*wix.RegistrationResult, error) {
		return backend.Events().Register(ctx, eventID, registration)
	})
}
