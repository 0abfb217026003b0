package unified_test

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// stubBackend answers every backend call with result/err and records what it
// was asked.
type stubBackend struct {
	mu sync.Mutex

	result interface{}
	err    error

	accesses int
	calls    []string
	args     map[string][]interface{}
}

func newStubBackend(result interface{}, err error) *stubBackend {
	return &stubBackend{result: result, err: err, args: make(map[string][]interface{})}
}

func (s *stubBackend) access() *stubBackend {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accesses++

	return s
}

func (s *stubBackend) record(name string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, name)
	s.args[name] = args
}

func answer[T any](s *stubBackend) (T, error) {
	var zero T
	if s.err != nil {
		return zero, s.err
	}

	if s.result == nil {
		return zero, nil
	}

	return s.result.(T), nil
}

func (s *stubBackend) Items() wix.ItemsAPI               { return stubItems{s.access()} }
func (s *stubBackend) Products() wix.ProductsAPI         { return stubProducts{s.access()} }
func (s *stubBackend) CurrentCart() wix.CurrentCartAPI   { return stubCart{s.access()} }
func (s *stubBackend) Services() wix.ServicesAPI         { return stubServices{s.access()} }
func (s *stubBackend) Availability() wix.AvailabilityAPI { return stubAvailability{s.access()} }
func (s *stubBackend) Bookings() wix.BookingsAPI         { return stubBookings{s.access()} }
func (s *stubBackend) Events() wix.EventsAPI             { return stubEvents{s.access()} }
func (s *stubBackend) Members() wix.MembersAPI           { return stubMembers{s.access()} }
func (s *stubBackend) Auth() wix.AuthAPI                 { return stubAuth{s.access()} }

type stubItems struct{ s *stubBackend }

func (a stubItems) QueryDataItems(ctx context.Context, query *wix.DataItemsQuery) (*wix.DataItemsResult, error) {
	a.s.record("items.queryDataItems", query)

	return answer[*wix.DataItemsResult](a.s)
}

func (a stubItems) GetDataItem(ctx context.Context, dataCollectionID, itemID string) (*wix.DataItem, error) {
	a.s.record("items.getDataItem", dataCollectionID, itemID)

	return answer[*wix.DataItem](a.s)
}

type stubProducts struct{ s *stubBackend }

func (a stubProducts) QueryProducts(ctx context.Context, opts *wix.QueryOptions) (*wix.ProductsResult, error) {
	a.s.record("products.queryProducts", opts)

	return answer[*wix.ProductsResult](a.s)
}

func (a stubProducts) GetProduct(ctx context.Context, productID string) (*wix.Product, error) {
	a.s.record("products.getProduct", productID)

	return answer[*wix.Product](a.s)
}

type stubCart struct{ s *stubBackend }

func (a stubCart) CreateCart(ctx context.Context) (*wix.Cart, error) {
	a.s.record("currentCart.createCart")

	return answer[*wix.Cart](a.s)
}

func (a stubCart) AddToCart(ctx context.Context, cartID string, items []wix.LineItem) (*wix.Cart, error) {
	a.s.record("currentCart.addToCart", cartID, items)

	return answer[*wix.Cart](a.s)
}

type stubServices struct{ s *stubBackend }

func (a stubServices) QueryServices(ctx context.Context, opts *wix.QueryOptions) (*wix.ServicesResult, error) {
	a.s.record("services.queryServices", opts)

	return answer[*wix.ServicesResult](a.s)
}

type stubAvailability struct{ s *stubBackend }

func (a stubAvailability) GetAvailability(ctx context.Context, serviceID string, date time.Time) (*wix.Availability, error) {
	a.s.record("availability.getAvailability", serviceID, date)

	return answer[*wix.Availability](a.s)
}

type stubBookings struct{ s *stubBackend }

func (a stubBookings) CreateBooking(ctx context.Context, booking *wix.BookingRequest) (*wix.Booking, error) {
	a.s.record("bookings.createBooking", booking)

	return answer[*wix.Booking](a.s)
}

type stubEvents struct{ s *stubBackend }

func (a stubEvents) QueryEvents(ctx context.Context, opts *wix.QueryOptions) (*wix.EventsResult, error) {
	a.s.record("events.queryEvents", opts)

	return answer[*wix.EventsResult](a.s)
}

func (a stubEvents) GetEvent(ctx context.Context, eventID string) (*wix.Event, error) {
	a.s.record("events.getEvent", eventID)

	return answer[*wix.Event](a.s)
}

func (a stubEvents) Register(ctx context.Context, eventID string, registration *wix.Registration) (*wix.RegistrationResult, error) {
	a.s.record("events.register", eventID, registration)

	return answer[*wix.RegistrationResult](a.s)
}

type stubMembers struct{ s *stubBackend }

func (a stubMembers) GetCurrentMember(ctx context.Context) (*wix.Member, error) {
	a.s.record("members.getCurrentMember")

	return answer[*wix.Member](a.s)
}

type stubAuth struct{ s *stubBackend }

func (a stubAuth) Login(ctx context.Context, request *wix.LoginRequest) (*wix.LoginResult, error) {
	a.s.record("auth.login", request)

	return answer[*wix.LoginResult](a.s)
}

func (a stubAuth) Logout(ctx context.Context) (*wix.LogoutResult, error) {
	a.s.record("auth.logout")

	return answer[*wix.LogoutResult](a.s)
}

// recordingLogger captures log calls.
type recordingLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }
