package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jpark/commute-connect/internal/domain"
	"github.com/sirupsen/logrus"
)

// ErrorBody is the JSON envelope every failed request carries: a stable
// machine-checkable code plus a human-readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

const (
	codeInvalidInput = "invalid_input"
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeInternal     = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// writeDomainError maps domain sentinel errors to their HTTP status and
// stable error code. Anything unmapped is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrChatWithSelf),
		errors.Is(err, domain.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrNotRouteOwner):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRouteNotFound),
		errors.Is(err, domain.ErrUserRouteNotFound),
		errors.Is(err, domain.ErrChatNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrRouteAlreadyAdded):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	default:
		logrus.WithError(err).Error("unhandled error")
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
