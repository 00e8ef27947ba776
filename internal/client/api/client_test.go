package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
	httpx "github.com/dmitrijs2005/ledgerkeeper/internal/server/http"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubExporter struct{}

func (stubExporter) Export(_ context.Context, ownerID string) (*services.ExportResult, error) {
	return &services.ExportResult{Key: "exports/" + ownerID + "/x.csv", URL: "http://s3.local/x.csv"}, nil
}

func (stubExporter) History(context.Context, string) ([]*models.Export, error) {
	return []*models.Export{}, nil
}

// newLedgerServer runs the real router over the memory backend.
func newLedgerServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := repomanager.NewMemoryRepositoryManager()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenIssuer([]byte("client-test"), time.Hour)

	router := httpx.NewRouter(httpx.Deps{
		Logger:   log,
		Users:    services.NewUserService(m, hasher, tokens, log),
		Ledger:   services.NewTransactionService(m, log),
		Exporter: stubExporter{},
		Tokens:   tokens,
		Registry: prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_EndToEnd(t *testing.T) {
	ts := newLedgerServer(t)
	ctx := context.Background()
	c := NewClient(ts.URL, 5*time.Second)

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Register(ctx, "Ann", "ann@x.io", []byte("pw")))

	err := c.Register(ctx, "Ann", "ann@x.io", []byte("pw"))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "User already exists", se.Message)

	_, err = c.ListTransactions(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.Error(t, c.Login(ctx, "ann@x.io", []byte("nope")))
	assert.False(t, c.LoggedIn())
	require.NoError(t, c.Login(ctx, "ann@x.io", []byte("pw")))
	assert.True(t, c.LoggedIn())

	id, err := c.CreateTransaction(ctx, TransactionInput{
		Title: "Lunch", Amount: decimal.RequireFromString("10.25"), Category: "food", Date: "2024-05-01",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = c.CreateTransaction(ctx, TransactionInput{
		Title: "Bus", Amount: decimal.NewFromInt(2), Category: "travel", Date: "2024-05-03",
	})
	require.NoError(t, err)

	items, err := c.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bus", items[0].Title)

	got, err := c.GetTransaction(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.25").Equal(got.Amount))

	require.NoError(t, c.UpdateTransaction(ctx, id, TransactionInput{
		Title: "Dinner", Amount: decimal.NewFromInt(20), Category: "food", Date: "2024-05-01",
	}))

	sum, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(22).Equal(sum.TotalExpense))
	require.Len(t, sum.CategoryBreakdown, 2)

	exp, err := c.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://s3.local/x.csv", exp.URL)

	history, err := c.ExportHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, c.DeleteTransaction(ctx, id))
	_, err = c.GetTransaction(ctx, id)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	c.SetToken("garbage")
	_, err = c.Summary(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	err := NewClient(url, time.Second).Ping(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_EscapesTransactionID(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath()
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	c.SetToken("tok")
	require.NoError(t, c.DeleteTransaction(context.Background(), "../users/x?y#z"))
	assert.Equal(t, "/transactions/..%2Fusers%2Fx%3Fy%23z/", got)
}

func TestNewClient_AddsScheme(t *testing.T) {
	c := NewClient("127.0.0.1:3000/", time.Second)
	assert.Equal(t, "http://127.0.0.1:3000", c.baseURL)
}
