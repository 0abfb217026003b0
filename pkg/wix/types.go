package wix

import (
	"time"
)

// SortOrder is the direction of a query sort.
type SortOrder string

const (
	// SortAscending sorts from lowest to highest.
	SortAscending SortOrder = "ASC"

	// SortDescending sorts from highest to lowest.
	SortDescending SortOrder = "DESC"
)

// Sorting describes a single sort clause.
type Sorting struct {
	FieldName string    `json:"fieldName"       yaml:"field_name"`
	Order     SortOrder `json:"order,omitempty" yaml:"order,omitempty"`
}

// Paging limits the size and offset of a query result.
type Paging struct {
	Limit  int `json:"limit,omitempty"  yaml:"limit,omitempty"`
	Offset int `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// QueryOptions is the option bag accepted by every list operation.
type QueryOptions struct {
	Filter map[string]interface{} `json:"filter,omitempty" yaml:"filter,omitempty"`
	Sort   []Sorting              `json:"sort,omitempty"   yaml:"sort,omitempty"`
	Paging *Paging                `json:"paging,omitempty" yaml:"paging,omitempty"`
}

// NewQueryOptions creates empty query options.
func NewQueryOptions() *QueryOptions {
	return &QueryOptions{}
}

// WithFilter adds a filter expression for a field.
func (q *QueryOptions) WithFilter(field string, value interface{}) *QueryOptions {
	if q.Filter == nil {
		q.Filter = make(map[string]interface{})
	}

	q.Filter[field] = value

	return q
}

// WithSort appends a sort clause.
func (q *QueryOptions) WithSort(field string, order SortOrder) *QueryOptions {
	q.Sort = append(q.Sort, Sorting{FieldName: field, Order: order})

	return q
}

// WithLimit sets the page size.
func (q *QueryOptions) WithLimit(limit int) *QueryOptions {
	if q.Paging == nil {
		q.Paging = &Paging{}
	}

	q.Paging.Limit = limit

	return q
}

// WithOffset sets the page offset.
func (q *QueryOptions) WithOffset(offset int) *QueryOptions {
	if q.Paging == nil {
		q.Paging = &Paging{}
	}

	q.Paging.Offset = offset

	return q
}

// PagingMetadata describes the page returned by a query.
type PagingMetadata struct {
	Count   int  `json:"count"             yaml:"count"`
	Offset  int  `json:"offset"            yaml:"offset"`
	Total   int  `json:"total,omitempty"   yaml:"total,omitempty"`
	Tooltip bool `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// DataItem is a single CMS collection item.
type DataItem struct {
	ID               string                 `json:"id"               yaml:"id"`
	DataCollectionID string                 `json:"dataCollectionId" yaml:"data_collection_id"`
	Data             map[string]interface{} `json:"data"             yaml:"data"`
}

// DataItemsQuery is the merged collection id and query options sent to the
// CMS backend.
type DataItemsQuery struct {
	DataCollectionID string `json:"dataCollectionId" yaml:"data_collection_id"`
	QueryOptions     `yaml:",inline"`
}

// DataItemsResult is a page of CMS items.
type DataItemsResult struct {
	Items          []DataItem      `json:"dataItems"                yaml:"items"`
	PagingMetadata *PagingMetadata `json:"pagingMetadata,omitempty" yaml:"paging_metadata,omitempty"`
}

// Money is a formatted monetary amount.
type Money struct {
	Amount    float64 `json:"amount"                    yaml:"amount"`
	Currency  string  `json:"currency"                  yaml:"currency"`
	Formatted string  `json:"formattedAmount,omitempty" yaml:"formatted,omitempty"`
}

// Price is the price data of a store product.
type Price struct {
	Currency        string  `json:"currency"                  yaml:"currency"`
	Price           float64 `json:"price"                     yaml:"price"`
	DiscountedPrice float64 `json:"discountedPrice,omitempty" yaml:"discounted_price,omitempty"`
	Formatted       *Money  `json:"formatted,omitempty"       yaml:"formatted,omitempty"`
}

// Product is a store product.
type Product struct {
	ID          string    `json:"id"                    yaml:"id"`
	Name        string    `json:"name"                  yaml:"name"`
	Slug        string    `json:"slug,omitempty"        yaml:"slug,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	SKU         string    `json:"sku,omitempty"         yaml:"sku,omitempty"`
	Visible     bool      `json:"visible"               yaml:"visible"`
	ProductType string    `json:"productType,omitempty" yaml:"product_type,omitempty"`
	PriceData   *Price    `json:"priceData,omitempty"   yaml:"price_data,omitempty"`
	InStock     bool      `json:"inStock"               yaml:"in_stock"`
	UpdatedDate time.Time `json:"lastUpdated"           yaml:"updated_date"`
}

// ProductsResult is a page of store products.
type ProductsResult struct {
	Products     []Product `json:"products"     yaml:"products"`
	TotalResults int       `json:"totalResults" yaml:"total_results"`
}

// CatalogReference points a line item at a catalog entity.
type CatalogReference struct {
	CatalogItemID string                 `json:"catalogItemId"     yaml:"catalog_item_id"`
	AppID         string                 `json:"appId"             yaml:"app_id"`
	Options       map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

// LineItem is an item added to a cart.
type LineItem struct {
	ID               string           `json:"id,omitempty"          yaml:"id,omitempty"`
	CatalogReference CatalogReference `json:"catalogReference"      yaml:"catalog_reference"`
	Quantity         int              `json:"quantity"              yaml:"quantity"`
	ProductName      string           `json:"productName,omitempty" yaml:"product_name,omitempty"`
	Price            *Money           `json:"price,omitempty"       yaml:"price,omitempty"`
}

// Cart is an ecommerce cart.
type Cart struct {
	ID        string     `json:"id"                  yaml:"id"`
	LineItems []LineItem `json:"lineItems,omitempty" yaml:"line_items,omitempty"`
	Currency  string     `json:"currency,omitempty"  yaml:"currency,omitempty"`
	Subtotal  *Money     `json:"subtotal,omitempty"  yaml:"subtotal,omitempty"`
}

// Service is a bookable service.
type Service struct {
	ID          string `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Tagline     string `json:"tagLine,omitempty"     yaml:"tagline,omitempty"`
	Hidden      bool   `json:"hidden"                yaml:"hidden"`
}

// ServicesResult is a page of bookable services.
type ServicesResult struct {
	Services       []Service       `json:"services"                 yaml:"services"`
	PagingMetadata *PagingMetadata `json:"pagingMetadata,omitempty" yaml:"paging_metadata,omitempty"`
}

// Slot is a bookable time window of a service.
type Slot struct {
	ServiceID  string    `json:"serviceId"            yaml:"service_id"`
	ScheduleID string    `json:"scheduleId,omitempty" yaml:"schedule_id,omitempty"`
	StartDate  time.Time `json:"startDate"            yaml:"start_date"`
	EndDate    time.Time `json:"endDate"              yaml:"end_date"`
	Timezone   string    `json:"timezone,omitempty"   yaml:"timezone,omitempty"`
}

// AvailabilityEntry describes a slot and whether it can still be booked.
type AvailabilityEntry struct {
	Slot          Slot `json:"slot"          yaml:"slot"`
	Bookable      bool `json:"bookable"      yaml:"bookable"`
	OpenSpots     int  `json:"openSpots"     yaml:"open_spots"`
	TotalSpots    int  `json:"totalSpots"    yaml:"total_spots"`
	WaitingListOn bool `json:"waitingListOn" yaml:"waiting_list_on"`
}

// Availability is the availability of a service on a given day.
type Availability struct {
	Entries []AvailabilityEntry `json:"availabilityEntries" yaml:"entries"`
}

// ContactDetails identifies the person making a booking or registration.
type ContactDetails struct {
	FirstName string `json:"firstName,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"last_name,omitempty"`
	Email     string `json:"email,omitempty"     yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty"     yaml:"phone,omitempty"`
}

// BookingRequest is the free-form booking payload.
type BookingRequest struct {
	Slot           Slot                   `json:"slot"                       yaml:"slot"`
	ContactDetails ContactDetails         `json:"contactDetails"             yaml:"contact_details"`
	NumberOfSpots  int                    `json:"numberOfParticipants"       yaml:"number_of_spots"`
	AdditionalData map[string]interface{} `json:"additionalFields,omitempty" yaml:"additional_data,omitempty"`
}

// Booking is a created booking.
type Booking struct {
	ID             string         `json:"id"                    yaml:"id"`
	Status         string         `json:"status"                yaml:"status"`
	Slot           Slot           `json:"slot"                  yaml:"slot"`
	ContactDetails ContactDetails `json:"contactDetails"        yaml:"contact_details"`
	CreatedDate    *time.Time     `json:"createdDate,omitempty" yaml:"created_date,omitempty"`
}

// EventLocation is where an event takes place.
type EventLocation struct {
	Name    string `json:"name,omitempty"    yaml:"name,omitempty"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Type    string `json:"type,omitempty"    yaml:"type,omitempty"`
}

// EventScheduling is the time window of an event.
type EventScheduling struct {
	StartDate *time.Time `json:"startDate,omitempty"  yaml:"start_date,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"    yaml:"end_date,omitempty"`
	Timezone  string     `json:"timeZoneId,omitempty" yaml:"timezone,omitempty"`
}

// Event is a Wix event.
type Event struct {
	ID          string          `json:"id"                    yaml:"id"`
	Title       string          `json:"title"                 yaml:"title"`
	Slug        string          `json:"slug,omitempty"        yaml:"slug,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string          `json:"status,omitempty"      yaml:"status,omitempty"`
	Location    *EventLocation  `json:"location,omitempty"    yaml:"location,omitempty"`
	Scheduling  EventScheduling `json:"scheduling"            yaml:"scheduling"`
}

// EventsResult is a page of events.
type EventsResult struct {
	Events []Event `json:"events" yaml:"events"`
	Total  int     `json:"total"  yaml:"total"`
}

// Registration is the free-form registration payload for an event.
type Registration struct {
	Guest      ContactDetails         `json:"guest"                yaml:"guest"`
	GuestCount int                    `json:"guestCount,omitempty" yaml:"guest_count,omitempty"`
	Form       map[string]interface{} `json:"form,omitempty"       yaml:"form,omitempty"`
}

// RegistrationResult is the outcome of an event registration.
type RegistrationResult struct {
	ID      string `json:"id"               yaml:"id"`
	EventID string `json:"eventId"          yaml:"event_id"`
	Status  string `json:"status"           yaml:"status"`
	Ticket  string `json:"ticket,omitempty" yaml:"ticket,omitempty"`
}

// MemberProfile is the public profile of a site member.
type MemberProfile struct {
	Nickname string `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Slug     string `json:"slug,omitempty"     yaml:"slug,omitempty"`
}

// Member is a site member.
type Member struct {
	ID          string         `json:"id"                    yaml:"id"`
	LoginEmail  string         `json:"loginEmail"            yaml:"login_email"`
	Status      string         `json:"status,omitempty"      yaml:"status,omitempty"`
	Profile     *MemberProfile `json:"profile,omitempty"     yaml:"profile,omitempty"`
	Contact     ContactDetails `json:"contact"               yaml:"contact"`
	CreatedDate *time.Time     `json:"createdDate,omitempty" yaml:"created_date,omitempty"`
}

// LoginRequest carries member credentials.
type LoginRequest struct {
	Email    string `json:"email"    yaml:"email"`
	Password string `json:"password" yaml:"-"`
}

// LoginResult is the outcome of a member login.
type LoginResult struct {
	State        string `json:"state"                  yaml:"state"`
	SessionToken string `json:"sessionToken,omitempty" yaml:"-"`
	MemberID     string `json:"memberId,omitempty"     yaml:"member_id,omitempty"`
}

// LogoutResult is the outcome of a member logout.
type LogoutResult struct {
	LogoutURL string `json:"logoutUrl,omitempty" yaml:"logout_url,omitempty"`
}
