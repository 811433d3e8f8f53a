package http

import (
	"mime"
	"net/http"

	"github.com/makrand12345/StoreDoc-Backend/pkg/httputil"
	"github.com/makrand12345/StoreDoc-Backend/pkg/logger"
)

// ContentTypeJSON rejects write requests whose declared body type is not
// JSON with 415. A missing Content-Type is accepted.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if ct := r.Header.Get("Content-Type"); ct != "" {
				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil || mediaType != "application/json" {
					httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.ErrorEnvelope{
						Error: &httputil.ErrorResponse{
							Code:      "UNSUPPORTED_MEDIA_TYPE",
							Message:   "Content-Type must be application/json",
							RequestID: logger.CorrelationIDFromContext(r.Context()),
						},
					})
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
