package middleware

import "net/http"

// NoStore marks responses as uncacheable. Auth responses carry bearer tokens
// and admin listings carry personal data, so neither may sit in a shared cache.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}
