package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// CurrentCartClient implements wix.CurrentCartAPI against the eCommerce carts API.
type CurrentCartClient struct {
	httpClient *http.Client
}

// NewCurrentCartClient creates a new cart client.
func NewCurrentCartClient(httpClient *http.Client) *CurrentCartClient {
	return &CurrentCartClient{httpClient: httpClient}
}

type cartInfo struct{}

type createCartRequest struct {
	CartInfo cartInfo `json:"cartInfo"`
}

type addToCartRequest struct {
	LineItems []wix.LineItem `json:"lineItems"`
}

type cartResponse struct {
	Cart wix.Cart `json:"cart"`
}

// CreateCart implements wix.CurrentCartAPI.CreateCart.
func (c *CurrentCartClient) CreateCart(ctx context.Context) (*wix.Cart, error) {
	resp, err := postJSON[cartResponse](ctx, c.httpClient, "/ecom/v1/carts", &createCartRequest{}, "creating cart")
	if err != nil {
		return nil, err
	}

	return &resp.Cart, nil
}

// AddToCart implements wix.CurrentCartAPI.AddToCart.
func (c *CurrentCartClient) AddToCart(ctx context.Context, cartID string, items []wix.LineItem) (*wix.Cart, error) {
	if items == nil {
		items = []wix.LineItem{}
	}

	path := "/ecom/v1/carts/" + url.PathEscape(cartID) + "/add-to-cart"

	resp, err := postJSON[cartResponse](ctx, c.httpClient, path, &addToCartRequest{LineItems: items}, "adding to cart")
	if err != nil {
		return nil, err
	}

	return &resp.Cart, nil
}
