package unified

import (
	"context"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// StoresClient implements wix.StoresClient.
type StoresClient struct {
	domain
}

// NewStoresClient creates a new stores client.
func NewStoresClient(backend wix.Backend, logger wix.Logger) *StoresClient {
	return &StoresClient{domain: domain{name: "Stores", backend: backend, logger: logger}}
}

// GetProducts implements wix.StoresClient.GetProducts.
func (c *StoresClient) GetProducts(ctx context.Context, opts *wix.QueryOptions) (*wix.ProductsResult, error) {
	return invoke(ctx, c.domain, "getProducts", func(ctx context.Context, backend wix.Backend) (*wix.ProductsResult, error) {
		return backend.Products().QueryProducts(ctx, opts)
	})
}

// GetProduct implements wix.StoresClient.GetProduct.
func (c *StoresClient) GetProduct(ctx context.Context, productID string) (*wix.Product, error) {
	return invoke(ctx, c.domain, "getProduct", func(ctx context.Context, backend wix.Backend) (*wix.Product, error) {
		return backend.Products().GetProduct(ctx, productID)
	})
}

// CreateCart implements wix.StoresClient.CreateCart.
func (c *StoresClient) CreateCart(ctx context.Context) (*wix.Cart, error) {
	return invoke(ctx, c.domain, "createCart", func(ctx context.Context, backend wix.Backend) (*wix.Cart, error) {
		return backend.CurrentCart().CreateCart(ctx)
	})
}

// AddToCart implements wix.StoresClient.AddToCart.
func (c *StoresClient) AddToCart(ctx context.Context, cartID string, items []wix.LineItem) (*wix.Cart, error) {
	return invoke(ctx, c.domain, "addToCart", func(ctx context.Context, backend wix.Backend) (*wix.Cart, error) {
		return backend.CurrentCart().AddToCart(ctx, cartID, items)
	})
}
