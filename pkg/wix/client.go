package wix

import (
	"context"
	"time"
)

// ItemsAPI is the CMS data items module of a Wix client.
type ItemsAPI interface {
	QueryDataItems(ctx context.Context, query *DataItemsQuery) (*DataItemsResult, error)
	GetDataItem(ctx context.Context, dataCollectionID, itemID string) (*DataItem, error)
}

// ProductsAPI is the stores products module of a Wix client.
type ProductsAPI interface {
	QueryProducts(ctx context.Context, opts *QueryOptions) (*ProductsResult, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// CurrentCartAPI is the ecommerce cart module of a Wix client.
type CurrentCartAPI interface {
	CreateCart(ctx context.Context) (*Cart, error)
	AddToCart(ctx context.Context, cartID string, items []LineItem) (*Cart, error)
}

// ServicesAPI is the bookings services module of a Wix client.
type ServicesAPI interface {
	QueryServices(ctx context.Context, opts *QueryOptions) (*ServicesResult, error)
}

// AvailabilityAPI is the bookings availability module of a Wix client.
type AvailabilityAPI interface {
	GetAvailability(ctx context.Context, serviceID string, date time.Time) (*Availability, error)
}

// BookingsAPI is the bookings module of a Wix client.
type BookingsAPI interface {
	CreateBooking(ctx context.Context, booking *BookingRequest) (*Booking, error)
}

// EventsAPI is the events module of a Wix client.
type EventsAPI interface {
	QueryEvents(ctx context.Context, opts *QueryOptions) (*EventsResult, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	Register(ctx context.Context, eventID string, registration *Registration) (*RegistrationResult, error)
}

// MembersAPI is the members module of a Wix client.
type MembersAPI interface {
	GetCurrentMember(ctx context.Context) (*Member, error)
}

// AuthAPI is the member authentication module of a Wix client.
type AuthAPI interface {
	Login(ctx context.Context, request *LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context) (*LogoutResult, error)
}

// Backend is the underlying Wix client the facade forwards to. It is owned
// by the caller; the facade never closes it.
type Backend interface {
	Items() ItemsAPI
	Products() ProductsAPI
	CurrentCart() CurrentCartAPI
	Services() ServicesAPI
	Availability() AvailabilityAPI
	Bookings() BookingsAPI
	Events() EventsAPI
	Members() MembersAPI
	Auth() AuthAPI
}

// CMSClient exposes the content domain.
type CMSClient interface {
	GetItems(ctx context.Context, dataCollectionID string, opts *QueryOptions) (*DataItemsResult, error)
	GetItem(ctx context.Context, dataCollectionID, itemID string) (*DataItem, error)
}

// StoresClient exposes the commerce domain.
type StoresClient interface {
	GetProducts(ctx context.Context, opts *QueryOptions) (*ProductsResult, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateCart(ctx context.Context) (*Cart, error)
	AddToCart(ctx context.Context, cartID string, items []LineItem) (*Cart, error)
}

// BookingsClient exposes the scheduling domain.
type BookingsClient interface {
	GetServices(ctx context.Context, opts *QueryOptions) (*ServicesResult, error)
	GetAvailability(ctx context.Context, serviceID string, date time.Time) (*Availability, error)
	CreateBooking(ctx context.Context, booking *BookingRequest) (*Booking, error)
}

// EventsClient exposes the events domain.
type EventsClient interface {
	GetEvents(ctx context.Context, opts *QueryOptions) (*EventsResult, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	RegisterToEvent(ctx context.Context, eventID string, registration *Registration) (*RegistrationResult, error)
}

// MembersClient exposes the identity domain.
type MembersClient interface {
	GetCurrentMember(ctx context.Context) (*Member, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) (*LogoutResult, error)
}

// Client is the unified facade over a Backend.
type Client interface {
	CMS() CMSClient
	Stores() StoresClient
	Bookings() BookingsClient
	Events() EventsClient
	Members() MembersClient

	// Initialized reports whether the facade holds a backend.
	Initialized() bool
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]interface{}) {}
func (NoopLogger) Info(string, map[string]interface{})  {}
func (NoopLogger) Warn(string, map[string]interface{})  {}
func (NoopLogger) Error(string, map[string]interface{}) {}
