package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
	"github.com/makrand12345/StoreDoc-Backend/pkg/httputil"
	"github.com/makrand12345/StoreDoc-Backend/pkg/logger"
)

type contextKeyType string

const identityKey contextKeyType = "identity"

// Identity is the authenticated caller decoded from a bearer token. It lives
// only in the request context.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// TokenValidator validates a bearer token and returns the caller identity.
type TokenValidator func(token string) (*Identity, error)

// Auth validates the bearer token in the Authorization header and stores the
// caller identity in the request context. Missing, malformed, forged or
// expired tokens are rejected with 401.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("missing authorization header"), nil)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid authorization header format"), nil)
				return
			}

			id, err := validate(token)
			if err != nil || id == nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid or expired token"), nil)
				return
			}

			ctx := WithIdentity(r.Context(), *id)
			ctx = logger.WithIdentity(ctx, id.UserID, id.Role)
			// Re-enrich the request-scoped logger now that the caller is known.
			if l := logger.FromContext(ctx); l != slog.Default() {
				ctx = logger.NewContext(ctx, l.With(
					slog.Int64("user_id", id.UserID),
					slog.String("role", id.Role),
				))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose role is not in roles with 403. It must be
// mounted after Auth. The response carries no resource data.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), nil)
				return
			}
			if _, allowed := roleSet[id.Role]; !allowed {
				httputil.WriteError(w, r, apperrors.Forbidden("insufficient permissions"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity stored by Auth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
