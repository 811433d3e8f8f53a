package http

import (
	"encoding/json"
	"net/http"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
	"github.com/makrand12345/StoreDoc-Backend/pkg/httputil"
	"github.com/makrand12345/StoreDoc-Backend/pkg/middleware"
)

const maxBodyBytes = 1 << 20 // 1MB

// decodeJSON reads a JSON request body into dst. Malformed bodies become 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	return nil
}

// callerFrom returns the authenticated caller set by middleware.Auth.
func callerFrom(r *http.Request) (service.Caller, error) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return service.Caller{}, apperrors.Unauthorized("authentication required")
	}
	return service.Caller{ID: id.UserID, Role: domain.Role(id.Role)}, nil
}

// optionalQueryID parses the id name when present. It writes a 400 and
// returns false on a malformed or out-of-range value.
func optionalQueryID(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	if r.URL.Query().Get(name) == "" {
		return nil, true
	}
	v, ok := httputil.QueryID(w, r, name, 0)
	if !ok {
		return nil, false
	}
	return &v, true
}

// userView is the public shape of a user in write responses.
type userView struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func newUserView(u *domain.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// orEmpty keeps empty listings encoded as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
