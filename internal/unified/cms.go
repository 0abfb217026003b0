package unified

import (
	"context"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// CMSClient implements wix.CMSClient.
type CMSClient struct {
	domain
}

// NewCMSClient creates a new CMS client.
func NewCMSClient(backend wix.Backend, logger wix.Logger) *CMSClient {
	return &CMSClient{domain: domain{name: "CMS", backend: backend, logger: logger}}
}

// GetItems implements wix.CMSClient.GetItems. The collection id and the
// options are merged into a single query.
func (c *CMSClient) GetItems(ctx context.Context, dataCollectionID string, opts *wix.QueryOptions) (*wix.DataItemsResult, error) {
	return invoke(ctx, c.domain, "getItems", func(ctx context.Context, backend wix.Backend) (*wix.DataItemsResult, error) {
		query := &wix.DataItemsQuery{DataCollectionID: dataCollectionID}
		if opts != nil {
			query.QueryOptions = *opts
		}

		return backend.Items().QueryDataItems(ctx, query)
	})
}

// GetItem implements wix.CMSClient.GetItem.
func (c *CMSClient) GetItem(ctx context.Context, dataCollectionID, itemID string) (*wix.DataItem, error) {
	return invoke(ctx, c.domain, "getItem", func(ctx context.Context, backend wix.Backend) (*wix.DataItem, error) {
		return backend.Items().GetDataItem(ctx, dataCollectionID, itemID)
	})
}
