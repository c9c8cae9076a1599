package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/holdings-dashboard/internal/modules/portfolio"
	testingpkg "github.com/aristath/holdings-dashboard/internal/testing"
)

func newTestRouter(t *testing.T, prices map[string]float64) http.Handler {
	t.Helper()

	db := testingpkg.NewTestDB(t, "dashboard")

	log := zerolog.Nop()
	service := portfolio.NewService(
		portfolio.NewHoldingRepository(db.Conn(), log),
		portfolio.NewWatchlistRepository(db.Conn(), log),
		testingpkg.NewStaticPrices(prices),
		log,
	)

	router := chi.NewRouter()
	router.Route("/api", NewHandler(service, log).RegisterRoutes)
	return router
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func getHoldings(t *testing.T, h http.Handler) []map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetHoldings_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAddHolding_ThenListEnriched(t *testing.T) {
	router := newTestRouter(t, map[string]float64{"NVDA": 375})

	rec, body := do(t, router, http.MethodPost, "/api/holdings", `{"symbol":" nvda ","shares":0.5,"avg_cost":400}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, _ = do(t, router, http.MethodPost, "/api/holdings", `{"symbol":"RKLB","shares":"1.222","avg_cost":"40.9"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	holdings := getHoldings(t, router)
	require.Len(t, holdings, 2)

	nvda := holdings[0]
	assert.Equal(t, "NVDA", nvda["symbol"])
	assert.InDelta(t, 375, nvda["current_price"], 1e-9)
	assert.InDelta(t, 200, nvda["cost_basis"], 1e-9)
	assert.InDelta(t, 187.5, nvda["current_value"], 1e-9)
	assert.InDelta(t, -12.5, nvda["pnl"], 1e-9)
	assert.InDelta(t, -6.25, nvda["pnl_percent"], 1e-9)

	rklb := holdings[1]
	assert.Equal(t, "RKLB", rklb["symbol"])
	assert.Contains(t, rklb, "current_price")
	assert.Nil(t, rklb["current_price"])
	assert.Nil(t, rklb["current_value"])
	assert.Nil(t, rklb["pnl"])
	assert.Nil(t, rklb["pnl_percent"])
	assert.InDelta(t, 1.222*40.9, rklb["cost_basis"], 1e-9)
}

func TestAddHolding_Rejections(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"zero shares", `{"symbol":"NVDA","shares":0,"avg_cost":1}`, "Invalid data"},
		{"negative cost", `{"symbol":"NVDA","shares":1,"avg_cost":-1}`, "Invalid data"},
		{"missing symbol", `{"shares":1,"avg_cost":1}`, "Invalid data"},
		{"non-numeric shares", `{"symbol":"NVDA","shares":"lots","avg_cost":1}`, "Invalid data"},
		{"malformed body", `{`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, router, http.MethodPost, "/api/holdings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestAddHolding_Duplicate(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, _ := do(t, router, http.MethodPost, "/api/holdings", `{"symbol":"NVDA","shares":1,"avg_cost":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, router, http.MethodPost, "/api/holdings", `{"symbol":"nvda","shares":2,"avg_cost":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Stock already in holdings", body["error"])
}

func TestDeleteHolding_CaseInsensitiveAndIdempotent(t *testing.T) {
	router := newTestRouter(t, nil)
	do(t, router, http.MethodPost, "/api/holdings", `{"symbol":"NVDA","shares":1,"avg_cost":1}`)

	rec, body := do(t, router, http.MethodDelete, "/api/holdings/nvda", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, getHoldings(t, router))

	rec, body = do(t, router, http.MethodDelete, "/api/holdings/NVDA", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestWatchlist_Lifecycle(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, _ := do(t, router, http.MethodPost, "/api/watchlist", `{"symbol":"spy"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, router, http.MethodPost, "/api/watchlist", `{"symbol":"QQQ"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, router, http.MethodPost, "/api/watchlist", `{"symbol":"SPY"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Already in watchlist", body["error"])

	rec, body = do(t, router, http.MethodPost, "/api/watchlist", `{"symbol":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid symbol", body["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	list := httptest.NewRecorder()
	router.ServeHTTP(list, req)
	assert.JSONEq(t, `["SPY","QQQ"]`, list.Body.String())

	rec, _ = do(t, router, http.MethodDelete, "/api/watchlist/spy", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	list = httptest.NewRecorder()
	router.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/watchlist", nil))
	assert.JSONEq(t, `["QQQ"]`, list.Body.String())
}
