package http

import (
	"log/slog"
	"net/http"

	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	"github.com/makrand12345/StoreDoc-Backend/pkg/httputil"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

type registerResponse struct {
	Msg  string   `json:"msg"`
	User userView `json:"user"`
}

type loginResponse struct {
	userView
	Token string `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, registerResponse{
		Msg:  "Registration successful",
		User: newUserView(user),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		userView: newUserView(res.User),
		Token:    res.Token,
	})
}
