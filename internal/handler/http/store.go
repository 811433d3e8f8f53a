package http

import (
	"log/slog"
	"net/http"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	"github.com/makrand12345/StoreDoc-Backend/pkg/httputil"
)

// StoreHandler serves store listings, the owner dashboard and rating.
type StoreHandler struct {
	stores  *service.StoreService
	ratings *service.RatingService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(stores *service.StoreService, ratings *service.RatingService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{stores: stores, ratings: ratings, logger: logger}
}

type rateResponse struct {
	Msg    string         `json:"msg"`
	Rating *domain.Rating `json:"rating"`
}

// List handles GET /api/stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.QueryID(w, r, "userId", 0)
	if !ok {
		return
	}

	stores, err := h.stores.ListStores(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(stores))
}

// MyStats handles GET /api/stores/my-stats
func (h *StoreHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ownerID, ok := optionalQueryID(w, r, "ownerId")
	if !ok {
		return
	}

	stats, err := h.stores.OwnerStats(r.Context(), caller, ownerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	stats.Raters = orEmpty(stats.Raters)
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// Rate handles POST /api/rate-store
func (h *StoreHandler) Rate(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	var req service.RateInput
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rating, err := h.ratings.Rate(r.Context(), caller, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rateResponse{Msg: "Rating saved!", Rating: rating})
}
