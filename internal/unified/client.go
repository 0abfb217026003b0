package unified

import (
	"context"
	"reflect"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// Client implements wix.Client.
type Client struct {
	backend wix.Backend

	cms      *CMSClient
	stores   *StoresClient
	bookings *BookingsClient
	events   *EventsClient
	members  *MembersClient
}

// New creates a facade over backend. A nil backend (including a typed nil
// pointer) yields an uninitialized facade whose operations all fail with
// wix.ErrUninitialized.
func New(backend wix.Backend, logger wix.Logger) *Client {
	if isNilBackend(backend) {
		backend = nil
	}

	if logger == nil {
		logger = wix.NoopLogger{}
	}

	client := &Client{backend: backend}
	client.initializeDomainClients(logger)

	return client
}

// CMS implements wix.Client.CMS.
func (c *Client) CMS() wix.CMSClient {
	return c.cms
}

// Stores implements wix.Client.Stores.
func (c *Client) Stores() wix.StoresClient {
	return c.stores
}

// Bookings implements wix.Client.Bookings.
func (c *Client) Bookings() wix.BookingsClient {
	return c.bookings
}

// Events implements wix.Client.Events.
func (c *Client) Events() wix.EventsClient {
	return c.events
}

// Members implements wix.Client.Members.
func (c *Client) Members() wix.MembersClient {
	return c.members
}

// Initialized implements wix.Client.Initialized.
func (c *Client) Initialized() bool {
	return c.backend != nil
}

func (c *Client) initializeDomainClients(logger wix.Logger) {
	c.cms = NewCMSClient(c.backend, logger)
	c.stores = NewStoresClient(c.backend, logger)
	c.bookings = NewBookingsClient(c.backend, logger)
	c.events = NewEventsClient(c.backend, logger)
	c.members = NewMembersClient(c.backend, logger)
}

// domain holds what every capability wrapper shares: the backend reference
// and the logger. It is never mutated after construction.
type domain struct {
	name    string
	backend wix.Backend
	logger  wix.Logger
}

// invoke runs one backend call for operation op of domain d. It enforces the
// initialization precondition before touching the backend and turns any
// failure into a *wix.OperationError after logging it once.
func invoke[T any](ctx context.Context, d domain, op string, call func(ctx context.Context, backend wix.Backend) (T, error)) (T, error) {
	var zero T

	if d.backend == nil {
		return zero, wix.ErrUninitialized
	}

	result, err := call(ctx, d.backend)
	if err != nil {
		return zero, d.fail(op, err)
	}

	return result, nil
}

func (d domain) fail(op string, err error) error {
	opContext := d.name + "." + op
	message := wix.ErrorMessage(err)

	d.logger.Error("[WixSDK Error - "+opContext+"]", map[string]interface{}{
		"domain":    d.name,
		"operation": opContext,
		"error":     message,
	})

	return &wix.OperationError{Op: opContext, Message: message, Err: err}
}

func isNilBackend(backend wix.Backend) bool {
	if backend == nil {
		return true
	}

	value := reflect.ValueOf(backend)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}
