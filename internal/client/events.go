package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// EventsClient implements wix.EventsAPI against the Events v1 API.
type EventsClient struct {
	httpClient *http.Client
}

// NewEventsClient creates a new events client.
func NewEventsClient(httpClient *http.Client) *EventsClient {
	return &EventsClient{httpClient: httpClient}
}

type eventResponse struct {
	Event wix.Event `json:"event"`
}

type registrationResponse struct {
	Registration wix.RegistrationResult `json:"registration"`
}

// QueryEvents implements wix.EventsAPI.QueryEvents.
func (c *EventsClient) QueryEvents(ctx context.Context, opts *wix.QueryOptions) (*wix.EventsResult, error) {
	return postJSON[wix.EventsResult](ctx, c.httpClient, "/events/v1/events/query", newQueryRequest(opts), "querying events")
}

// GetEvent implements wix.EventsAPI.GetEvent.
func (c *EventsClient) GetEvent(ctx context.Context, eventID string) (*wix.Event, error) {
	resp, err := getJSON[eventResponse](ctx, c.httpClient, "/events/v1/events/"+url.PathEscape(eventID), nil, "getting event")
	if err != nil {
		return nil, err
	}

	return &resp.Event, nil
}

// Register implements wix.EventsAPI.Register.
func (c *EventsClient) Register(ctx context.Context, eventID string, registration *wix.Registration) (*wix.RegistrationResult, error) {
	if registration == nil {
		registration = &wix.Registration{}
	}

	path := "/events/v1/events/" + url.PathEscape(eventID) + "/registrations"

	resp, err := postJSON[registrationResponse](ctx, c.httpClient, path, registration, "registering to event")
	if err != nil {
		return nil, err
	}

	if resp.Registration.EventID == "" {
		resp.Registration.EventID = eventID
	}

	return &resp.Registration, nil
}
