package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
// BillService manages bills and the bill-wide split operations.
const BillServiceName = "splitbill.v1.BillService"

// Procedure paths, one per RPC.
const (
	BillServiceCreateBillProcedure      = "/splitbill.v1.BillService/CreateBill"
	BillServiceGetBillProcedure         = "/splitbill.v1.BillService/GetBill"
	BillServiceListBillsProcedure       = "/splitbill.v1.BillService/ListBills"
	BillServiceUpdateBillProcedure      = "/splitbill.v1.BillService/UpdateBill"
	BillServiceDeleteBillProcedure      = "/splitbill.v1.BillService/DeleteBill"
	BillServiceGetSummaryProcedure      = "/splitbill.v1.BillService/GetSummary"
	BillServiceRecalculateProcedure     = "/splitbill.v1.BillService/Recalculate"
	BillServiceCloneBillProcedure       = "/splitbill.v1.BillService/CloneBill"
	BillServiceClearBillSplitsProcedure = "/splitbill.v1.BillService/ClearBillSplits"
	BillServiceResetBillProcedure       = "/splitbill.v1.BillService/ResetBill"
	BillServiceSplitAllEquallyProcedure = "/splitbill.v1.BillService/SplitAllEqually"
)

// BillServiceClient is a client for the splitbill.v1.BillService service.
type BillServiceClient interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error)
	GetBill(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.DeleteBillResponse], error)
	GetSummary(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.GetSummaryResponse], error)
	Recalculate(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	CloneBill(context.Context, *connect.Request[api.CloneBillRequest]) (*connect.Response[api.BillResponse], error)
	ClearBillSplits(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	ResetBill(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	SplitAllEqually(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
}

// NewBillServiceClient returns a client for the service at baseURL, for example
// http://localhost:8080. It speaks JSON over the Connect protocol.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithJSON()}, opts...)
	return &billServiceClient{
		createBill:      connect.NewClient[api.CreateBillRequest, api.BillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:         connect.NewClient[api.BillRef, api.BillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		listBills:       connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		updateBill:      connect.NewClient[api.UpdateBillRequest, api.BillResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		deleteBill:      connect.NewClient[api.BillRef, api.DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		getSummary:      connect.NewClient[api.BillRef, api.GetSummaryResponse](httpClient, baseURL+BillServiceGetSummaryProcedure, opts...),
		recalculate:     connect.NewClient[api.BillRef, api.BillResponse](httpClient, baseURL+BillServiceRecalculateProcedure, opts...),
		cloneBill:       connect.NewClient[api.CloneBillRequest, api.BillResponse](httpClient, baseURL+BillServiceCloneBillProcedure, opts...),
		clearBillSplits: connect.NewClient[api.BillRef, api.BillResponse](httpClient, baseURL+BillServiceClearBillSplitsProcedure, opts...),
		resetBill:       connect.NewClient[api.BillRef, api.BillResponse](httpClient, baseURL+BillServiceResetBillProcedure, opts...),
		splitAllEqually: connect.NewClient[api.BillRef, api.BillResponse](httpClient, baseURL+BillServiceSplitAllEquallyProcedure, opts...),
	}
}

type billServiceClient struct {
	createBill      *connect.Client[api.CreateBillRequest, api.BillResponse]
	getBill         *connect.Client[api.BillRef, api.BillResponse]
	listBills       *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	updateBill      *connect.Client[api.UpdateBillRequest, api.BillResponse]
	deleteBill      *connect.Client[api.BillRef, api.DeleteBillResponse]
	getSummary      *connect.Client[api.BillRef, api.GetSummaryResponse]
	recalculate     *connect.Client[api.BillRef, api.BillResponse]
	cloneBill       *connect.Client[api.CloneBillRequest, api.BillResponse]
	clearBillSplits *connect.Client[api.BillRef, api.BillResponse]
	resetBill       *connect.Client[api.BillRef, api.BillResponse]
	splitAllEqually *connect.Client[api.BillRef, api.BillResponse]
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *billServiceClient) Recalculate(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	return c.recalculate.CallUnary(ctx, req)
}

func (c *billServiceClient) CloneBill(ctx context.Context, req *connect.Request[api.CloneBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.cloneBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ClearBillSplits(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	return c.clearBillSplits.CallUnary(ctx, req)
}

func (c *billServiceClient) ResetBill(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	return c.resetBill.CallUnary(ctx, req)
}

func (c *billServiceClient) SplitAllEqually(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	return c.splitAllEqually.CallUnary(ctx, req)
}

// BillServiceHandler is the server side of splitbill.v1.BillService.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error)
	GetBill(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.DeleteBillResponse], error)
	GetSummary(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.GetSummaryResponse], error)
	Recalculate(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	CloneBill(context.Context, *connect.Request[api.CloneBillRequest]) (*connect.Response[api.BillResponse], error)
	ClearBillSplits(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	ResetBill(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
	SplitAllEqually(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error)
}

// NewBillServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	routes := map[string]http.Handler{
		BillServiceCreateBillProcedure:      connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...),
		BillServiceGetBillProcedure:         connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...),
		BillServiceListBillsProcedure:       connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...),
		BillServiceUpdateBillProcedure:      connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...),
		BillServiceDeleteBillProcedure:      connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...),
		BillServiceGetSummaryProcedure:      connect.NewUnaryHandler(BillServiceGetSummaryProcedure, svc.GetSummary, opts...),
		BillServiceRecalculateProcedure:     connect.NewUnaryHandler(BillServiceRecalculateProcedure, svc.Recalculate, opts...),
		BillServiceCloneBillProcedure:       connect.NewUnaryHandler(BillServiceCloneBillProcedure, svc.CloneBill, opts...),
		BillServiceClearBillSplitsProcedure: connect.NewUnaryHandler(BillServiceClearBillSplitsProcedure, svc.ClearBillSplits, opts...),
		BillServiceResetBillProcedure:       connect.NewUnaryHandler(BillServiceResetBillProcedure, svc.ResetBill, opts...),
		BillServiceSplitAllEquallyProcedure: connect.NewUnaryHandler(BillServiceSplitAllEquallyProcedure, svc.SplitAllEqually, opts...),
	}
	return "/" + BillServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
