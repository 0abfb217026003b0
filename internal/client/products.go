package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// ProductsClient implements wix.ProductsAPI against the Stores v1 API.
type ProductsClient struct {
	httpClient *http.Client
}

// NewProductsClient creates a new products client.
func NewProductsClient(httpClient *http.Client) *ProductsClient {
	return &ProductsClient{httpClient: httpClient}
}

type productResponse struct {
	Product wix.Product `json:"product"`
}

// QueryProducts implements wix.ProductsAPI.QueryProducts.
func (c *ProductsClient) QueryProducts(ctx context.Context, opts *wix.QueryOptions) (*wix.ProductsResult, error) {
	return postJSON[wix.ProductsResult](ctx, c.httpClient, "/stores/v1/products/query", newQueryRequest(opts), "querying products")
}

// GetProduct implements wix.ProductsAPI.GetProduct.
func (c *ProductsClient) GetProduct(ctx context.Context, productID string) (*wix.Product, error) {
	resp, err := getJSON[productResponse](ctx, c.httpClient, "/stores/v1/products/"+url.PathEscape(productID), nil, "getting product")
	if err != nil {
		return nil, err
	}

	return &resp.Product, nil
}
