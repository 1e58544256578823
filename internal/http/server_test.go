package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardtrack/internal/core"
	"cardtrack/internal/services"
	"cardtrack/internal/sheets/memory"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.Seed(
		[]core.Card{
			{ID: "c1", Name: "신한카드", MonthlyTarget: 300000, FixedCost: 50000, Active: true},
			{ID: "c2", Name: "국민카드", MonthlyTarget: 100000, Active: true},
		},
		[]core.Transaction{
			{ID: "t1", Date: "2025-06-01", Month: "2025-06", CardID: "c1", Amount: 2000, Item: "커피"},
			{ID: "t2", Date: "2025-06-03", Month: "2025-06", CardID: "c1", Amount: 3000, Item: "점심"},
		},
	)
	tracker := services.NewTrackerService(store, store, services.WithClock(fixedNow))
	return NewServer(":0", tracker), store
}

func TestDashboardPage(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "신한카드")
	assert.Contains(t, body, "250,000")
	assert.Contains(t, body, "5,000")
	assert.Contains(t, body, "2025-06-30")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestDashboardUnknownPathIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddTransactionRedirects(t *testing.T) {
	srv, store := newTestServer(t)

	form := url.Values{
		"card_id": {"c1"},
		"date":    {"2025-06-20"},
		"amount":  {"12,000"},
		"item":    {"장보기"},
	}
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "month=2025-06")

	txs, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestAddTransactionBadAmountRerenders(t *testing.T) {
	srv, store := newTestServer(t)

	form := url.Values{
		"card_id": {"c1"},
		"date":    {"2025-06-20"},
		"amount":  {"abc"},
	}
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "금액은")

	txs, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestSaveTransactionsGrid(t *testing.T) {
	srv, store := newTestServer(t)

	form := url.Values{
		"month":     {"2025-06"},
		"tx_id":     {"t1", "t2"},
		"tx_card":   {"국민카드", "신한카드"},
		"tx_date":   {"2025-06-01", "2025-06-03"},
		"tx_amount": {"2500", "3000"},
		"tx_item":   {"커피", "점심"},
		"tx_delete": {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/transactions/save", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)

	txs, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, "c2", txs[0].CardID)
	assert.Equal(t, int64(2500), txs[0].Amount)
}

func TestSaveTransactionsUnknownCardRejected(t *testing.T) {
	srv, store := newTestServer(t)

	// a row added in the grid has no id and no existing card to fall back to
	form := url.Values{
		"month":     {"2025-06"},
		"tx_id":     {""},
		"tx_card":   {"없는카드"},
		"tx_date":   {"2025-06-01"},
		"tx_amount": {"2000"},
		"tx_item":   {"커피"},
	}
	req := httptest.NewRequest(http.MethodPost, "/transactions/save", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	txs, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestAddAndSaveCards(t *testing.T) {
	srv, store := newTestServer(t)

	form := url.Values{
		"card_name":      {"롯데카드"},
		"monthly_target": {"200000"},
		"fixed_cost":     {"0"},
	}
	req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cards, err := store.ListCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)

	save := url.Values{
		"card_id":        {cards[0].ID, cards[1].ID, cards[2].ID},
		"card_name":      {cards[0].Name, cards[1].Name, cards[2].Name},
		"monthly_target": {"300000", "100000", "200000"},
		"fixed_cost":     {"50000", "0", "0"},
		"card_active":    {"0", "2"},
	}
	req = httptest.NewRequest(http.MethodPost, "/cards/save", strings.NewReader(save.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cards, err = store.ListCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.True(t, cards[0].Active)
	assert.False(t, cards[1].Active)
	assert.True(t, cards[2].Active)
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Server.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
