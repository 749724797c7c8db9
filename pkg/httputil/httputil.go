// Package httputil centralizes JSON encoding and error translation for the
// HTTP layer so every handler emits the same envelope.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "docaudit/pkg/domainerrors"
)

// Validatable lets request types carry their own validation and parsing.
type Validatable interface {
	Validate() error
}

// statusFor maps domain codes to HTTP status codes.
func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInsufficientData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as the standard JSON error envelope. Internal error
// descriptions are suppressed so storage or wiring details never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		if de, ok := err.(*dErrors.Error); ok {
			body["error_description"] = de.Message
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeAndPrepare decodes the request body into T and runs its validation,
// writing the error response itself on failure. Handlers only proceed when the
// second return value is true.
func DecodeAndPrepare[T any, PT interface {
	Validatable
	*T
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context) (*T, bool) {
	req := new(T)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "request decode failed", "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body is not valid JSON"))
		return nil, false
	}
	if err := PT(req).Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
