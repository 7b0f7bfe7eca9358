package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

type problem struct {
	Error  string              `json:"error"`
	Reason string              `json:"reason"`
	Fields []wizard.FieldError `json:"fields,omitempty"`
}

// StatusCode maps a wizard error to the HTTP status both the JSON API and
// the HTML form endpoints answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, wizard.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrInvalidChoice), errors.Is(err, wizard.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, wizard.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, wizard.ErrDelivery):
		return http.StatusBadGateway
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeProblem(w http.ResponseWriter, status int, reason string, err error) {
	writeJSON(w, status, problem{Error: err.Error(), Reason: reason})
}
