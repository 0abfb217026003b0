package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/wix-templates/internal/http"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// ItemsClient implements wix.ItemsAPI against the Wix Data v2 API.
type ItemsClient struct {
	httpClient *http.Client
}

// NewItemsClient creates a new CMS items client.
func NewItemsClient(httpClient *http.Client) *ItemsClient {
	return &ItemsClient{httpClient: httpClient}
}

type dataItemsQueryRequest struct {
	DataCollectionID string            `json:"dataCollectionId"`
	Query            *wix.QueryOptions `json:"query"`
}

type dataItemResponse struct {
	DataItem wix.DataItem `json:"dataItem"`
}

// QueryDataItems implements wix.ItemsAPI.QueryDataItems.
func (c *ItemsClient) QueryDataItems(ctx context.Context, query *wix.DataItemsQuery) (*wix.DataItemsResult, error) {
	if query == nil {
		query = &wix.DataItemsQuery{}
	}

	options := query.QueryOptions

	return postJSON[wix.DataItemsResult](ctx, c.httpClient, "/wix-data/v2/items/query", &dataItemsQueryRequest{
		DataCollectionID: query.DataCollectionID,
		Query:            &options,
	}, "querying data items")
}

// GetDataItem implements wix.ItemsAPI.GetDataItem.
func (c *ItemsClient) GetDataItem(ctx context.Context, dataCollectionID, itemID string) (*wix.DataItem, error) {
	query := url.Values{"dataCollectionId": []string{dataCollectionID}}

	resp, err := getJSON[dataItemResponse](ctx, c.httpClient, "/wix-data/v2/items/"+url.PathEscape(itemID), query, "getting data item")
	if err != nil {
		return nil, err
	}

	return &resp.DataItem, nil
}
