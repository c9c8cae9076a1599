package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers holdings and watchlist routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holdings", func(r chi.Router) {
		r.Get("/", h.HandleGetHoldings)
		r.Post("/", h.HandleAddHolding)
		r.Delete("/{symbol}", h.HandleDeleteHolding)
	})

	r.Route("/watchlist", func(r chi.Router) {
		r.Get("/", h.HandleGetWatchlist)
		r.Post("/", h.HandleAddWatchlist)
		r.Delete("/{symbol}", h.HandleDeleteWatchlist)
	})
}
