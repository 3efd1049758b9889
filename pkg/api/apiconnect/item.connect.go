package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/pkg/api"
)

// ItemServiceName is the fully-qualified name of the ItemService service.
// ItemService manages line items and how each is split.
const ItemServiceName = "splitbill.v1.ItemService"

// Procedure paths, one per RPC.
const (
	ItemServiceAddItemProcedure          = "/splitbill.v1.ItemService/AddItem"
	ItemServiceBulkAddItemsProcedure     = "/splitbill.v1.ItemService/BulkAddItems"
	ItemServiceUpdateItemProcedure       = "/splitbill.v1.ItemService/UpdateItem"
	ItemServiceDeleteItemProcedure       = "/splitbill.v1.ItemService/DeleteItem"
	ItemServiceDeleteAllItemsProcedure   = "/splitbill.v1.ItemService/DeleteAllItems"
	ItemServiceSplitItemEquallyProcedure = "/splitbill.v1.ItemService/SplitItemEqually"
	ItemServiceAssignSharesProcedure     = "/splitbill.v1.ItemService/AssignShares"
	ItemServiceClearItemSplitsProcedure  = "/splitbill.v1.ItemService/ClearItemSplits"
)

// ItemServiceClient is a client for the splitbill.v1.ItemService service.
type ItemServiceClient interface {
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	BulkAddItems(context.Context, *connect.Request[api.BulkAddItemsRequest]) (*connect.Response[api.BulkAddItemsResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.ItemRef]) (*connect.Response[api.BillResponse], error)
	DeleteAllItems(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error)
	SplitItemEqually(context.Context, *connect.Request[api.SplitItemEquallyRequest]) (*connect.Response[api.ItemResponse], error)
	AssignShares(context.Context, *connect.Request[api.AssignSharesRequest]) (*connect.Response[api.ItemResponse], error)
	ClearItemSplits(context.Context, *connect.Request[api.ItemRef]) (*connect.Response[api.ClearItemSplitsResponse], error)
}

// NewItemServiceClient returns a client for the service at baseURL, for example
// http://localhost:8080. It speaks JSON over the Connect protocol.
func NewItemServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ItemServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithJSON()}, opts...)
	return &itemServiceClient{
		addItem:          connect.NewClient[api.AddItemRequest, api.ItemResponse](httpClient, baseURL+ItemServiceAddItemProcedure, opts...),
		bulkAddItems:     connect.NewClient[api.BulkAddItemsRequest, api.BulkAddItemsResponse](httpClient, baseURL+ItemServiceBulkAddItemsProcedure, opts...),
		updateItem:       connect.NewClient[api.UpdateItemRequest, api.ItemResponse](httpClient, baseURL+ItemServiceUpdateItemProcedure, opts...),
		deleteItem:       connect.NewClient[api.ItemRef, api.BillResponse](httpClient, baseURL+ItemServiceDeleteItemProcedure, opts...),
		deleteAllItems:   connect.NewClient[api.BillRef, api.DeleteAllResponse](httpClient, baseURL+ItemServiceDeleteAllItemsProcedure, opts...),
		splitItemEqually: connect.NewClient[api.SplitItemEquallyRequest, api.ItemResponse](httpClient, baseURL+ItemServiceSplitItemEquallyProcedure, opts...),
		assignShares:     connect.NewClient[api.AssignSharesRequest, api.ItemResponse](httpClient, baseURL+ItemServiceAssignSharesProcedure, opts...),
		clearItemSplits:  connect.NewClient[api.ItemRef, api.ClearItemSplitsResponse](httpClient, baseURL+ItemServiceClearItemSplitsProcedure, opts...),
	}
}

type itemServiceClient struct {
	addItem          *connect.Client[api.AddItemRequest, api.ItemResponse]
	bulkAddItems     *connect.Client[api.BulkAddItemsRequest, api.BulkAddItemsResponse]
	updateItem       *connect.Client[api.UpdateItemRequest, api.ItemResponse]
	deleteItem       *connect.Client[api.ItemRef, api.BillResponse]
	deleteAllItems   *connect.Client[api.BillRef, api.DeleteAllResponse]
	splitItemEqually *connect.Client[api.SplitItemEquallyRequest, api.ItemResponse]
	assignShares     *connect.Client[api.AssignSharesRequest, api.ItemResponse]
	clearItemSplits  *connect.Client[api.ItemRef, api.ClearItemSplitsResponse]
}

func (c *itemServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *itemServiceClient) BulkAddItems(ctx context.Context, req *connect.Request[api.BulkAddItemsRequest]) (*connect.Response[api.BulkAddItemsResponse], error) {
	return c.bulkAddItems.CallUnary(ctx, req)
}

func (c *itemServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *itemServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.ItemRef]) (*connect.Response[api.BillResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *itemServiceClient) DeleteAllItems(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error) {
	return c.deleteAllItems.CallUnary(ctx, req)
}

func (c *itemServiceClient) SplitItemEqually(ctx context.Context, req *connect.Request[api.SplitItemEquallyRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.splitItemEqually.CallUnary(ctx, req)
}

func (c *itemServiceClient) AssignShares(ctx context.Context, req *connect.Request[api.AssignSharesRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.assignShares.CallUnary(ctx, req)
}

func (c *itemServiceClient) ClearItemSplits(ctx context.Context, req *connect.Request[api.ItemRef]) (*connect.Response[api.ClearItemSplitsResponse], error) {
	return c.clearItemSplits.CallUnary(ctx, req)
}

// ItemServiceHandler is the server side of splitbill.v1.ItemService.
type ItemServiceHandler interface {
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	BulkAddItems(context.Context, *connect.Request[api.BulkAddItemsRequest]) (*connect.Response[api.BulkAddItemsResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.ItemRef]) (*connect.Response[api.BillResponse], error)
	DeleteAllItems(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error)
	SplitItemEqually(context.Context, *connect.Request[api.SplitItemEquallyRequest]) (*connect.Response[api.ItemResponse], error)
	AssignShares(context.Context, *connect.Request[api.AssignSharesRequest]) (*connect.Response[api.ItemResponse], error)
	ClearItemSplits(context.Context, *connect.Request[api.ItemRef]) (*connect.Response[api.ClearItemSplitsResponse], error)
}

// NewItemServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewItemServiceHandler(svc ItemServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	routes := map[string]http.Handler{
		ItemServiceAddItemProcedure:          connect.NewUnaryHandler(ItemServiceAddItemProcedure, svc.AddItem, opts...),
		ItemServiceBulkAddItemsProcedure:     connect.NewUnaryHandler(ItemServiceBulkAddItemsProcedure, svc.BulkAddItems, opts...),
		ItemServiceUpdateItemProcedure:       connect.NewUnaryHandler(ItemServiceUpdateItemProcedure, svc.UpdateItem, opts...),
		ItemServiceDeleteItemProcedure:       connect.NewUnaryHandler(ItemServiceDeleteItemProcedure, svc.DeleteItem, opts...),
		ItemServiceDeleteAllItemsProcedure:   connect.NewUnaryHandler(ItemServiceDeleteAllItemsProcedure, svc.DeleteAllItems, opts...),
		ItemServiceSplitItemEquallyProcedure: connect.NewUnaryHandler(ItemServiceSplitItemEquallyProcedure, svc.SplitItemEqually, opts...),
		ItemServiceAssignSharesProcedure:     connect.NewUnaryHandler(ItemServiceAssignSharesProcedure, svc.AssignShares, opts...),
		ItemServiceClearItemSplitsProcedure:  connect.NewUnaryHandler(ItemServiceClearItemSplitsProcedure, svc.ClearItemSplits, opts...),
	}
	return "/" + ItemServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
