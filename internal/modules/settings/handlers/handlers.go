// Package handlers provides HTTP handlers for strategy and e-mail settings.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/modules/settings"
)

// Handler handles settings HTTP requests
type Handler struct {
	service *settings.Service
	log     zerolog.Logger
}

// NewHandler creates a new settings handler
func NewHandler(service *settings.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "settings").Logger(),
	}
}

// RegisterRoutes registers the config routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/config", h.HandleGetConfig)
	r.Post("/config", h.HandleUpdateConfig)
}

// HandleGetConfig returns the current settings
func (h *Handler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load settings")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load settings"})
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

// HandleUpdateConfig applies a partial settings update
func (h *Handler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request body"})
		return
	}

	err := h.service.Update(r.Context(), body)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, settings.ErrInvalidValue):
		h.log.Warn().Err(err).Msg("Rejected settings update")
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid data"})
	default:
		h.log.Error().Err(err).Msg("Failed to save settings")
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Failed to save"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
