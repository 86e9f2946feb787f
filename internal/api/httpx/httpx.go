package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/baharkarakas/point-service/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	MsgInvalidRequest = "Invalid request value."
	MsgUnexpected     = "An unexpected error occurred."
)

// ErrorResponse is the envelope for every failed request. Code is the HTTP status as text.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{
		Code:    strconv.Itoa(status),
		Message: msg,
	})
}

// WriteBadRequest answers a malformed path or body.
func WriteBadRequest(w http.ResponseWriter) {
	WriteError(w, http.StatusBadRequest, MsgInvalidRequest)
}

// StatusFor is the one place error kinds become HTTP statuses.
func StatusFor(kind models.Kind) int {
	switch kind {
	case models.KindUserNotFound:
		return http.StatusNotFound
	case models.KindInvalidAmount,
		models.KindInsufficientBalance,
		models.KindMaxPointExceeded,
		models.KindBadArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError classifies err and writes the envelope. Messages of unexpected errors
// are logged and replaced with a generic one. Business errors answer with their own
// message even when wrapped.
func WriteServiceError(w http.ResponseWriter, err error, log logrus.FieldLogger) {
	kind := models.KindOf(err)
	status := StatusFor(kind)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("unexpected error")
		WriteError(w, status, MsgUnexpected)
		return
	}
	msg := err.Error()
	var me *models.Error
	if errors.As(err, &me) {
		msg = me.Error()
	}
	WriteError(w, status, msg)
}
