package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
	"github.com/makrand12345/StoreDoc-Backend/pkg/logger"
	"github.com/makrand12345/StoreDoc-Backend/pkg/validator"
)

// ErrorEnvelope wraps an ErrorResponse under the "error" key.
type ErrorEnvelope struct {
	Error *ErrorResponse `json:"error"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardized error response based on the error type.
// Internal errors are logged with the request-scoped logger when the
// RequestLogger middleware is mounted, otherwise with fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	requestID := logger.CorrelationIDFromContext(r.Context())

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeValidation(w, valErr, requestID)
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logInternal(l, r, err)
		}
		WriteJSON(w, appErr.Status, ErrorEnvelope{
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = "NOT_FOUND"
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		code = "ALREADY_EXISTS"
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = "INVALID_INPUT"
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		code = "UNAUTHORIZED"
		message = "unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		code = "FORBIDDEN"
		message = "forbidden"
	case errors.Is(err, apperrors.ErrRateLimited):
		code = "RATE_LIMITED"
		message = "too many requests"
	default:
		status = http.StatusInternalServerError
		logInternal(l, r, err)
	}

	WriteJSON(w, status, ErrorEnvelope{
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

func logInternal(l *slog.Logger, r *http.Request, err error) {
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

func writeValidation(w http.ResponseWriter, valErr *validator.ValidationError, requestID string) {
	WriteJSON(w, http.StatusBadRequest, ErrorEnvelope{
		Error: &ErrorResponse{
			Code:      "VALIDATION_ERROR",
			Message:   valErr.First(),
			Fields:    valErr.Fields(),
			RequestID: requestID,
		},
	})
}

// QueryInt64 reads an optional integer query parameter. An absent or empty
// parameter yields def. A malformed value writes a 400 INVALID_PARAMETER
// response and returns false, signaling the caller to return early.
func QueryInt64(w http.ResponseWriter, r *http.Request, name string, def int64) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeInvalidParameter(w, r, name, raw)
		return 0, false
	}
	return v, true
}

// QueryID is QueryInt64 for identifiers stored in INTEGER columns. Values
// outside the int32 range are rejected the same way as malformed ones.
func QueryID(w http.ResponseWriter, r *http.Request, name string, def int64) (int64, bool) {
	v, ok := QueryInt64(w, r, name, def)
	if !ok {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		writeInvalidParameter(w, r, name, r.URL.Query().Get(name))
		return 0, false
	}
	return v, true
}

func writeInvalidParameter(w http.ResponseWriter, r *http.Request, name, raw string) {
	WriteJSON(w, http.StatusBadRequest, ErrorEnvelope{
		Error: &ErrorResponse{
			Code:      "INVALID_PARAMETER",
			Message:   "invalid " + name + ": " + raw,
			RequestID: logger.CorrelationIDFromContext(r.Context()),
		},
	})
}
