package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	handler := CORS(cfg)(okHandler())
	req := httptest.NewRequest(method, "/api/stores", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS_DevMode_AllowsAnyOrigin(t *testing.T) {
	rec := corsRequest(CORSConfig{Environment: "development"}, http.MethodGet, "http://localhost:3000")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_ProdMode_Origins(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins: []string{"https://storedoc.app", " https://admin.storedoc.app"},
		Environment:    "production",
	}

	tests := []struct {
		origin string
		want   string
	}{
		{"https://storedoc.app", "https://storedoc.app"},
		{"https://admin.storedoc.app", "https://admin.storedoc.app"},
		{"https://evil.example", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			rec := corsRequest(cfg, http.MethodGet, tt.origin)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.want != "" {
				assert.Equal(t, "Origin", rec.Header().Get("Vary"))
			}
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestCORS_WildcardInList_AllowsAll(t *testing.T) {
	rec := corsRequest(CORSConfig{AllowedOrigins: []string{"*"}, Environment: "production"}, http.MethodGet, "https://anything.example")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardWithCredentials_EchoesOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}
	rec := corsRequest(cfg, http.MethodGet, "http://localhost:3000")

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight_Returns204(t *testing.T) {
	reached := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/rate-store", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCORS_Defaults(t *testing.T) {
	rec := corsRequest(CORSConfig{Environment: "development"}, http.MethodGet, "")

	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Authorization, Content-Type, X-Correlation-ID", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_CustomHeadersAndMaxAge(t *testing.T) {
	cfg := CORSConfig{
		Environment:    "development",
		AllowedHeaders: []string{"Authorization"},
		ExposedHeaders: []string{CorrelationHeader},
		MaxAge:         600,
	}
	rec := corsRequest(cfg, http.MethodGet, "")

	assert.Equal(t, "Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, CorrelationHeader, rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DefaultConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.AllowedMethods, "POST")
	assert.Equal(t, 3600, cfg.MaxAge)
	assert.Equal(t, "development", cfg.Environment)
}
