package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/internal/buildinfo"
	"github.com/mmynk/splitbill/internal/config"
	"github.com/mmynk/splitbill/pkg/api"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
)

// threeWay is a 10.00 item split equally among three people.
const threeWay = `
name: Cake
participants:
  - {id: a, name: Ann}
  - {id: b, name: Ben}
  - {id: c, name: Cat}
items:
  - name: Cake
    price: "10.00"
    splits:
      - {participant_id: a, share: "0.3333333333333333"}
      - {participant_id: b, share: "0.3333333333333333"}
      - {participant_id: c, share: "0.3333333333333333"}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, buildinfo.Version)
}

func TestSummarize(t *testing.T) {
	path := writeFile(t, "cake.yaml", threeWay)

	tests := []struct {
		remainder string
		wantFirst string
	}{
		{"ignore", "3.33"},
		{"largest-share", "3.34"},
	}
	for _, tt := range tests {
		t.Run(tt.remainder, func(t *testing.T) {
			out, err := execute(t, "summarize", path, "--remainder", tt.remainder)
			require.NoError(t, err)

			var summary api.Summary
			require.NoError(t, json.Unmarshal([]byte(out), &summary))
			assert.Equal(t, "Cake", summary.BillName)
			assert.Equal(t, "10.00", summary.BillTotal)
			require.Len(t, summary.Participants, 3)
			assert.Equal(t, tt.wantFirst, summary.Participants[0].TotalOwed)
			assert.Equal(t, "3.33", summary.Participants[2].TotalOwed)
			assert.Equal(t, "0.3333", summary.Participants[1].Items[0].Share)
		})
	}
}

func TestSummarize_RemainderFromConfig(t *testing.T) {
	t.Setenv("SPLIT_REMAINDER", "")
	cfgPath := writeFile(t, "splitbill.yaml", "split:\n  remainder: largest-share\n")
	path := writeFile(t, "cake.yaml", threeWay)

	out, err := execute(t, "summarize", path, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"total_owed": "3.34"`)
}

func TestSummarize_Errors(t *testing.T) {
	_, err := execute(t, "summarize", filepath.Join(t.TempDir(), "missing.yaml"), "--remainder", "ignore")
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "items:\n  - {name: x, price: -3}\n")
	_, err = execute(t, "summarize", bad, "--remainder", "ignore")
	assert.Error(t, err)

	good := writeFile(t, "cake.yaml", threeWay)
	_, err = execute(t, "summarize", good, "--remainder", "banker")
	assert.Error(t, err)

	_, err = execute(t, "summarize")
	assert.Error(t, err)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>splitbill</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log('hi')"), 0o644))

	cfg := config.Default()
	cfg.Server.StaticPath = static
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "data", "bills.db")
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()
	a, err := newApp(testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	server := httptest.NewServer(a.handler)
	t.Cleanup(func() {
		server.Close()
		a.Close()
	})
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServe_EndToEnd(t *testing.T) {
	server := newTestApp(t)
	ctx := context.Background()

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	reg, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:    "host@example.com",
		Password: "long-enough",
	}))
	require.NoError(t, err)

	bearer := connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+reg.Msg.Token)
			return next(ctx, req)
		}
	}))
	bills := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL, bearer)
	items := apiconnect.NewItemServiceClient(http.DefaultClient, server.URL, bearer)

	created, err := bills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{
		Name:         "Brunch",
		TipValue:     "15",
		Participants: []*api.NewParticipant{{Name: "Host"}},
		Items:        []*api.NewItem{{Name: "Waffles", Price: "10.00"}},
	}))
	require.NoError(t, err)
	bill := created.Msg.Bill

	_, err = items.SplitItemEqually(ctx, connect.NewRequest(&api.SplitItemEquallyRequest{
		BillID: bill.ID,
		ItemID: bill.Items[0].ID,
	}))
	require.NoError(t, err)

	summary, err := bills.GetSummary(ctx, connect.NewRequest(&api.BillRef{BillID: bill.ID}))
	require.NoError(t, err)
	assert.Equal(t, "1.50", summary.Msg.Summary.BillTip)
	assert.Equal(t, "11.50", summary.Msg.Summary.Participants[0].TotalOwed)

	anonymous := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL)
	_, err = anonymous.GetBill(ctx, connect.NewRequest(&api.BillRef{BillID: bill.ID}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	status, body := get(t, server.URL+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `splitbill_rpc_requests_total{code="ok",procedure="/splitbill.v1.BillService/GetSummary"} 1`)
	assert.Contains(t, body, `code="unauthenticated"`)
	assert.Contains(t, body, "splitbill_summaries_computed_total")
}

func TestServe_StaticFiles(t *testing.T) {
	server := newTestApp(t)

	status, body := get(t, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "splitbill")

	status, body = get(t, server.URL+"/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "console.log")

	// Client-side routes fall back to the app shell.
	status, body = get(t, server.URL+"/bills/123")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<h1>splitbill</h1>")

	status, _ = get(t, server.URL+"/splitbill.v1.NoSuchService/Call")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServe_CORSPreflight(t *testing.T) {
	server := newTestApp(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.BillServiceGetBillProcedure, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, strings.Contains(resp.Header.Get("Access-Control-Allow-Headers"), "Authorization"))
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runServe(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, err)
}
