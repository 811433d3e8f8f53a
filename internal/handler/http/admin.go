package http

import (
	"log/slog"
	"net/http"

	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	"github.com/makrand12345/StoreDoc-Backend/pkg/httputil"
)

// AdminHandler serves the admin dashboard. Every route requires the Admin role.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: logger}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.service.ListUsers(r.Context(), service.ListUsersInput{
		Search: q.Get("search"),
		Role:   q.Get("role"),
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(users))
}

// AddUser handles POST /api/admin/add-user
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req service.AddUserInput
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.service.AddUser(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newUserView(user))
}

// ListStores handles GET /api/admin/stores
func (h *AdminHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(stores))
}

// AddStore handles POST /api/admin/add-store
func (h *AdminHandler) AddStore(w http.ResponseWriter, r *http.Request) {
	var req service.AddStoreInput
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	store, err := h.service.AddStore(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, store)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}
