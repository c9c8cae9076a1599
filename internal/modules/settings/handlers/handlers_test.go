package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/holdings-dashboard/internal/modules/settings"
	testingpkg "github.com/aristath/holdings-dashboard/internal/testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testingpkg.NewTestDB(t, "dashboard")

	log := zerolog.Nop()
	svc := settings.NewService(settings.NewRepository(db.Conn(), log), log)

	router := chi.NewRouter()
	router.Route("/api", NewHandler(svc, log).RegisterRoutes)
	return router
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetConfig_Defaults(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/api/config", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"email_from": "", "email_to": "",
		"hard_stop": 0.91, "warning": 0.95, "profit_target": 1.3,
		"pullback": 8, "rsi_max": 65
	}`, rec.Body.String())
}

func TestUpdateConfig_ThenGet(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/api/config", `{"email_from":"bot@example.com","hard_stop":0.9}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/api/config", "")
	assert.Contains(t, rec.Body.String(), `"email_from":"bot@example.com"`)
	assert.Contains(t, rec.Body.String(), `"hard_stop":0.9`)
}

func TestUpdateConfig_InvalidNumber(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/api/config", `{"rsi_max":"lots"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid data"}`, rec.Body.String())
}

func TestUpdateConfig_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/api/config", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
