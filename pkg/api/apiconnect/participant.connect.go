package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/pkg/api"
)

// ParticipantServiceName is the fully-qualified name of the ParticipantService service.
// ParticipantService manages the people on a bill.
const ParticipantServiceName = "splitbill.v1.ParticipantService"

// Procedure paths, one per RPC.
const (
	ParticipantServiceAddParticipantProcedure        = "/splitbill.v1.ParticipantService/AddParticipant"
	ParticipantServiceBulkAddParticipantsProcedure   = "/splitbill.v1.ParticipantService/BulkAddParticipants"
	ParticipantServiceUpdateParticipantProcedure     = "/splitbill.v1.ParticipantService/UpdateParticipant"
	ParticipantServiceDeleteParticipantProcedure     = "/splitbill.v1.ParticipantService/DeleteParticipant"
	ParticipantServiceDeleteAllParticipantsProcedure = "/splitbill.v1.ParticipantService/DeleteAllParticipants"
	ParticipantServiceGetParticipantSplitsProcedure  = "/splitbill.v1.ParticipantService/GetParticipantSplits"
)

// ParticipantServiceClient is a client for the splitbill.v1.ParticipantService service.
type ParticipantServiceClient interface {
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.ParticipantResponse], error)
	BulkAddParticipants(context.Context, *connect.Request[api.BulkAddParticipantsRequest]) (*connect.Response[api.BulkAddParticipantsResponse], error)
	UpdateParticipant(context.Context, *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.ParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[api.ParticipantRef]) (*connect.Response[api.BillResponse], error)
	DeleteAllParticipants(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error)
	GetParticipantSplits(context.Context, *connect.Request[api.ParticipantRef]) (*connect.Response[api.GetParticipantSplitsResponse], error)
}

// NewParticipantServiceClient returns a client for the service at baseURL, for example
// http://localhost:8080. It speaks JSON over the Connect protocol.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithJSON()}, opts...)
	return &participantServiceClient{
		addParticipant:        connect.NewClient[api.AddParticipantRequest, api.ParticipantResponse](httpClient, baseURL+ParticipantServiceAddParticipantProcedure, opts...),
		bulkAddParticipants:   connect.NewClient[api.BulkAddParticipantsRequest, api.BulkAddParticipantsResponse](httpClient, baseURL+ParticipantServiceBulkAddParticipantsProcedure, opts...),
		updateParticipant:     connect.NewClient[api.UpdateParticipantRequest, api.ParticipantResponse](httpClient, baseURL+ParticipantServiceUpdateParticipantProcedure, opts...),
		deleteParticipant:     connect.NewClient[api.ParticipantRef, api.BillResponse](httpClient, baseURL+ParticipantServiceDeleteParticipantProcedure, opts...),
		deleteAllParticipants: connect.NewClient[api.BillRef, api.DeleteAllResponse](httpClient, baseURL+ParticipantServiceDeleteAllParticipantsProcedure, opts...),
		getParticipantSplits:  connect.NewClient[api.ParticipantRef, api.GetParticipantSplitsResponse](httpClient, baseURL+ParticipantServiceGetParticipantSplitsProcedure, opts...),
	}
}

type participantServiceClient struct {
	addParticipant        *connect.Client[api.AddParticipantRequest, api.ParticipantResponse]
	bulkAddParticipants   *connect.Client[api.BulkAddParticipantsRequest, api.BulkAddParticipantsResponse]
	updateParticipant     *connect.Client[api.UpdateParticipantRequest, api.ParticipantResponse]
	deleteParticipant     *connect.Client[api.ParticipantRef, api.BillResponse]
	deleteAllParticipants *connect.Client[api.BillRef, api.DeleteAllResponse]
	getParticipantSplits  *connect.Client[api.ParticipantRef, api.GetParticipantSplitsResponse]
}

func (c *participantServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.ParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) BulkAddParticipants(ctx context.Context, req *connect.Request[api.BulkAddParticipantsRequest]) (*connect.Response[api.BulkAddParticipantsResponse], error) {
	return c.bulkAddParticipants.CallUnary(ctx, req)
}

func (c *participantServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.ParticipantResponse], error) {
	return c.updateParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) DeleteParticipant(ctx context.Context, req *connect.Request[api.ParticipantRef]) (*connect.Response[api.BillResponse], error) {
	return c.deleteParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) DeleteAllParticipants(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error) {
	return c.deleteAllParticipants.CallUnary(ctx, req)
}

func (c *participantServiceClient) GetParticipantSplits(ctx context.Context, req *connect.Request[api.ParticipantRef]) (*connect.Response[api.GetParticipantSplitsResponse], error) {
	return c.getParticipantSplits.CallUnary(ctx, req)
}

// ParticipantServiceHandler is the server side of splitbill.v1.ParticipantService.
type ParticipantServiceHandler interface {
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.ParticipantResponse], error)
	BulkAddParticipants(context.Context, *connect.Request[api.BulkAddParticipantsRequest]) (*connect.Response[api.BulkAddParticipantsResponse], error)
	UpdateParticipant(context.Context, *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.ParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[api.ParticipantRef]) (*connect.Response[api.BillResponse], error)
	DeleteAllParticipants(context.Context, *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error)
	GetParticipantSplits(context.Context, *connect.Request[api.ParticipantRef]) (*connect.Response[api.GetParticipantSplitsResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	routes := map[string]http.Handler{
		ParticipantServiceAddParticipantProcedure:        connect.NewUnaryHandler(ParticipantServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		ParticipantServiceBulkAddParticipantsProcedure:   connect.NewUnaryHandler(ParticipantServiceBulkAddParticipantsProcedure, svc.BulkAddParticipants, opts...),
		ParticipantServiceUpdateParticipantProcedure:     connect.NewUnaryHandler(ParticipantServiceUpdateParticipantProcedure, svc.UpdateParticipant, opts...),
		ParticipantServiceDeleteParticipantProcedure:     connect.NewUnaryHandler(ParticipantServiceDeleteParticipantProcedure, svc.DeleteParticipant, opts...),
		ParticipantServiceDeleteAllParticipantsProcedure: connect.NewUnaryHandler(ParticipantServiceDeleteAllParticipantsProcedure, svc.DeleteAllParticipants, opts...),
		ParticipantServiceGetParticipantSplitsProcedure:  connect.NewUnaryHandler(ParticipantServiceGetParticipantSplitsProcedure, svc.GetParticipantSplits, opts...),
	}
	return "/" + ParticipantServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
