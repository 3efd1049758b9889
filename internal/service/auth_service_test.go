package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitbill/internal/auth"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/storage/sqlite"
	"github.com/mmynk/splitbill/pkg/api"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
)

type authClients struct {
	url   string
	auth  apiconnect.AuthServiceClient
	bills apiconnect.BillServiceClient
}

// setupAuthServer mounts the auth service with optional authentication and
// the bill service behind required authentication, as the server does.
func setupAuthServer(t *testing.T) *authClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(apiconnect.NewBillServiceHandler(
		NewBillService(store, WithLogger(logger)),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return &authClients{
		url:   server.URL,
		auth:  apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		bills: apiconnect.NewBillServiceClient(http.DefaultClient, server.URL),
	}
}

func withToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

func register(t *testing.T, c *authClients, email, password string) *api.AuthResponse {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    email,
		Password: password,
	}))
	require.NoError(t, err)
	return resp.Msg
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	c := setupAuthServer(t)

	reg := register(t, c, "Alice@Example.com", "correct-horse")
	require.NotNil(t, reg.User)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.Equal(t, "alice", reg.User.DisplayName)
	assert.NotEmpty(t, reg.Token)
	assert.Greater(t, reg.ExpiresAt, time.Now().Unix())

	login, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.Msg.User.ID)
	assert.NotEmpty(t, login.Msg.Token)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	c := setupAuthServer(t)
	register(t, c, "bob@example.com", "long-enough")

	tests := []struct {
		name     string
		email    string
		password string
		wantCode connect.Code
	}{
		{"duplicate email", "BOB@example.com", "long-enough", connect.CodeAlreadyExists},
		{"weak password", "carol@example.com", "short", connect.CodeInvalidArgument},
		{"malformed email", "not-an-email", "long-enough", connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
				Email:    tt.email,
				Password: tt.password,
			}))
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
		})
	}
}

func TestAuthService_LoginErrors(t *testing.T) {
	c := setupAuthServer(t)
	register(t, c, "dana@example.com", "long-enough")

	_, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong-password",
	}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "nobody@example.com",
		Password: "long-enough",
	}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{Email: "dana@example.com"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	c := setupAuthServer(t)
	reg := register(t, c, "erin@example.com", "long-enough")

	_, err := c.auth.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	authed := apiconnect.NewAuthServiceClient(http.DefaultClient, c.url, withToken(reg.Token))
	resp, err := authed.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.Msg.User.ID)
	assert.Equal(t, "erin@example.com", resp.Msg.User.Email)

	_, err = authed.Logout(context.Background(), connect.NewRequest(&api.LogoutRequest{}))
	assert.NoError(t, err)

	forged := apiconnect.NewAuthServiceClient(http.DefaultClient, c.url, withToken("not-a-token"))
	_, err = forged.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestAuthService_BillsRequireToken(t *testing.T) {
	c := setupAuthServer(t)

	_, err := c.bills.CreateBill(context.Background(), connect.NewRequest(&api.CreateBillRequest{Name: "Lunch"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	reg := register(t, c, "frank@example.com", "long-enough")
	bills := apiconnect.NewBillServiceClient(http.DefaultClient, c.url, withToken(reg.Token))
	created, err := bills.CreateBill(context.Background(), connect.NewRequest(&api.CreateBillRequest{Name: "Lunch"}))
	require.NoError(t, err)

	list, err := bills.ListBills(context.Background(), connect.NewRequest(&api.ListBillsRequest{}))
	require.NoError(t, err)
	require.Equal(t, 1, list.Msg.Count)
	assert.Equal(t, created.Msg.Bill.ID, list.Msg.Bills[0].ID)

	other := register(t, c, "gina@example.com", "long-enough")
	otherBills := apiconnect.NewBillServiceClient(http.DefaultClient, c.url, withToken(other.Token))
	_, err = otherBills.GetBill(context.Background(), connect.NewRequest(&api.BillRef{BillID: created.Msg.Bill.ID}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}
