package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/holdings-dashboard/internal/database"
	"github.com/aristath/holdings-dashboard/internal/modules/portfolio"
	portfoliohandlers "github.com/aristath/holdings-dashboard/internal/modules/portfolio/handlers"
	"github.com/aristath/holdings-dashboard/internal/modules/settings"
	settingshandlers "github.com/aristath/holdings-dashboard/internal/modules/settings/handlers"
	testingpkg "github.com/aristath/holdings-dashboard/internal/testing"
)

type stubJob struct {
	runs int
	err  error
}

func (j *stubJob) Run() error   { j.runs++; return j.err }
func (j *stubJob) Name() string { return "price_sync" }

func newTestServer(t *testing.T, job *stubJob) (*Server, *database.DB) {
	t.Helper()
	db := testingpkg.NewTestDB(t, "dashboard")

	log := zerolog.Nop()
	portfolioSvc := portfolio.NewService(
		portfolio.NewHoldingRepository(db.Conn(), log),
		portfolio.NewWatchlistRepository(db.Conn(), log),
		testingpkg.NewStaticPrices(nil),
		log,
	)
	settingsSvc := settings.NewService(settings.NewRepository(db.Conn(), log), log)

	cfg := Config{
		Log:         log,
		Port:        5000,
		DevMode:     true,
		CORSOrigins: []string{"http://localhost:3000"},
		Portfolio:   portfoliohandlers.NewHandler(portfolioSvc, log),
		Settings:    settingshandlers.NewHandler(settingsSvc, log),
		Databases:   []*database.DB{db},
	}
	if job != nil {
		cfg.PriceSync = job
	}
	return New(cfg), db
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealth_DatabaseDown(t *testing.T) {
	s, db := newTestServer(t, nil)
	require.NoError(t, db.Close())

	rec := do(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"error"`)
}

func TestRoutesMounted(t *testing.T) {
	s, _ := newTestServer(t, nil)

	for _, path := range []string{"/api/holdings", "/api/watchlist", "/api/config"} {
		rec := do(s, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), path)
	}
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/holdings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := do(s, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec := do(s, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPriceSyncTrigger(t *testing.T) {
	job := &stubJob{}
	s, _ := newTestServer(t, job)

	rec := do(s, httptest.NewRequest(http.MethodPost, "/api/jobs/price-sync", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, job.runs)
}

func TestPriceSyncTrigger_Failure(t *testing.T) {
	s, _ := newTestServer(t, &stubJob{err: errors.New("yahoo down")})

	rec := do(s, httptest.NewRequest(http.MethodPost, "/api/jobs/price-sync", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Price sync failed"}`, rec.Body.String())
}

func TestPriceSyncRouteAbsentWithoutJob(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, httptest.NewRequest(http.MethodPost, "/api/jobs/price-sync", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
