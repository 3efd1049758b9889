package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/storage/sqlite"
	"github.com/mmynk/splitbill/pkg/api"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
)

// testUserHeader names the caller in tests in place of a bearer token.
const testUserHeader = "X-Test-User"

// testAuthInterceptor trusts testUserHeader and defaults to "alice".
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := req.Header().Get(testUserHeader)
			if userID == "" {
				userID = "alice"
			}
			return next(middleware.WithUser(ctx, userID, userID+"@example.com"), req)
		}
	}
}

// asUser makes a client call as userID.
func asUser(userID string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set(testUserHeader, userID)
			return next(ctx, req)
		}
	}))
}

type testClients struct {
	bills        apiconnect.BillServiceClient
	participants apiconnect.ParticipantServiceClient
	items        apiconnect.ItemServiceClient
}

func newTestClients(url string, opts ...connect.ClientOption) *testClients {
	return &testClients{
		bills:        apiconnect.NewBillServiceClient(http.DefaultClient, url, opts...),
		participants: apiconnect.NewParticipantServiceClient(http.DefaultClient, url, opts...),
		items:        apiconnect.NewItemServiceClient(http.DefaultClient, url, opts...),
	}
}

// setupTestServer serves the bill services over a temp SQLite database and
// returns clients calling as "alice" plus the server URL.
func setupTestServer(t *testing.T, opts ...Option) (*testClients, string) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	interceptors := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, opts...), interceptors))
	mux.Handle(apiconnect.NewParticipantServiceHandler(NewParticipantService(store, opts...), interceptors))
	mux.Handle(apiconnect.NewItemServiceHandler(NewItemService(store, opts...), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return newTestClients(server.URL), server.URL
}

func createBill(t *testing.T, c *testClients, req *api.CreateBillRequest) *api.Bill {
	t.Helper()
	resp, err := c.bills.CreateBill(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	return resp.Msg.Bill
}

func getBill(t *testing.T, c *testClients, billID string) *api.Bill {
	t.Helper()
	resp, err := c.bills.GetBill(context.Background(), connect.NewRequest(&api.BillRef{BillID: billID}))
	require.NoError(t, err)
	return resp.Msg.Bill
}

func summaryOf(t *testing.T, c *testClients, billID string) *api.Summary {
	t.Helper()
	resp, err := c.bills.GetSummary(context.Background(), connect.NewRequest(&api.BillRef{BillID: billID}))
	require.NoError(t, err)
	return resp.Msg.Summary
}

func splitEqually(t *testing.T, c *testClients, billID, itemID string, participantIDs ...string) *api.Item {
	t.Helper()
	resp, err := c.items.SplitItemEqually(context.Background(), connect.NewRequest(&api.SplitItemEquallyRequest{
		BillID:         billID,
		ItemID:         itemID,
		ParticipantIDs: participantIDs,
	}))
	require.NoError(t, err)
	return resp.Msg.Item
}

func assign(t *testing.T, c *testClients, billID, itemID string, shares ...*api.ShareAssignment) *api.Item {
	t.Helper()
	resp, err := c.items.AssignShares(context.Background(), connect.NewRequest(&api.AssignSharesRequest{
		BillID:      billID,
		ItemID:      itemID,
		Assignments: shares,
	}))
	require.NoError(t, err)
	return resp.Msg.Item
}

func owed(s *api.Summary, participantID string) *api.ParticipantSummary {
	for _, p := range s.Participants {
		if p.ParticipantID == participantID {
			return p
		}
	}
	return nil
}

func people(names ...string) []*api.NewParticipant {
	out := make([]*api.NewParticipant, len(names))
	for i, n := range names {
		out[i] = &api.NewParticipant{Name: n}
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
