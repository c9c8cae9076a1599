// Package handlers provides HTTP handlers for holdings and the watchlist.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/modules/portfolio"
	"github.com/aristath/holdings-dashboard/internal/utils"
)

// Handler handles holdings and watchlist HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetHoldings returns holdings enriched with live prices
func (h *Handler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.service.EnrichedHoldings(r.Context())
	if err != nil {
		h.log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("Failed to load holdings")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load holdings"})
		return
	}
	h.writeJSON(w, http.StatusOK, holdings)
}

// HandleAddHolding adds a position. Shares and avg_cost may be numbers or numeric strings.
func (h *Handler) HandleAddHolding(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	symbol, _ := body["symbol"].(string)
	shares, sharesErr := utils.ToFloat(body["shares"])
	avgCost, costErr := utils.ToFloat(body["avg_cost"])
	if sharesErr != nil || costErr != nil {
		h.writeFailure(w, http.StatusBadRequest, portfolio.ErrInvalidHolding.Error())
		return
	}

	h.writeResult(w, h.service.AddHolding(r.Context(), symbol, shares, avgCost))
}

// HandleDeleteHolding removes a position; the symbol is matched case-insensitively
func (h *Handler) HandleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.service.DeleteHolding(r.Context(), chi.URLParam(r, "symbol")))
}

// HandleGetWatchlist returns the watched symbols in insertion order
func (h *Handler) HandleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.service.Watchlist(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load watchlist")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load watchlist"})
		return
	}
	h.writeJSON(w, http.StatusOK, symbols)
}

func (h *Handler) HandleAddWatchlist(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	symbol, _ := body["symbol"].(string)
	h.writeResult(w, h.service.AddToWatchlist(r.Context(), symbol))
}

func (h *Handler) HandleDeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.service.RemoveFromWatchlist(r.Context(), chi.URLParam(r, "symbol")))
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

// writeResult answers a mutation with the {success, error} envelope.
func (h *Handler) writeResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, portfolio.ErrInvalidHolding),
		errors.Is(err, portfolio.ErrHoldingExists),
		errors.Is(err, portfolio.ErrInvalidSymbol),
		errors.Is(err, portfolio.ErrAlreadyWatched):
		h.writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("Failed to save")
		h.writeFailure(w, http.StatusInternalServerError, "Failed to save")
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
