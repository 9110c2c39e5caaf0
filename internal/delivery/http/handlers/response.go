package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response.SuccessResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, response.ErrorResponse{Status: "error", Code: code, Message: message})
}

// writeDomainError maps err to a status code; unclassified errors are logged
// and reported without detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapDomainError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, code, "internal error")
		return
	}

	body := response.ErrorResponse{Status: "error", Code: code, Message: err.Error()}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Field = ve.Field
	}
	writeJSON(w, status, body)
}

func mapDomainError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadRequest, "MALFORMED_PAYLOAD"
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, "INVALID_PERIOD"
	case errors.Is(err, domain.ErrUnknownSource):
		return http.StatusNotFound, "UNKNOWN_SOURCE"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION"
	case errors.Is(err, domain.ErrGenerationInProgress), errors.Is(err, domain.ErrSalesAlreadyBatched):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("", "invalid json body")
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
