package controller

import (
	"errors"
	"net/http"

	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
	"github.com/api-sage/account-ledger/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

// statusForError maps service errors onto HTTP statuses. Validation failures
// are recognized by the envelope message because they are plain errors built
// from the offending field list.
func statusForError(message string, err error) int {
	if message == "validation failed" {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
