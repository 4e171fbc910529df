package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/calcpad-server/internal/calc"
	"github.com/avolkov/calcpad-server/internal/model"
)

// ErrorResponse carries a failure description. Detail is either a plain
// message or a list of field errors.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, statusCode int, detail any) {
	respondJSON(w, statusCode, ErrorResponse{Detail: detail})
}

// NotFound responds to unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed responds to matched routes hit with a wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func isArithmeticError(err error) bool {
	var divisionErr *calc.DivisionByZeroError
	var rootErr *calc.NegativeRootError
	var exponentErr *calc.InvalidExponentError
	var operationErr *calc.InvalidOperationError
	var typeErr *calc.UnsupportedOperationError

	return errors.As(err, &divisionErr) ||
		errors.As(err, &rootErr) ||
		errors.As(err, &exponentErr) ||
		errors.As(err, &operationErr) ||
		errors.As(err, &typeErr)
}

func handleError(w http.ResponseWriter, err error) {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		respondError(w, http.StatusUnprocessableEntity, validationErrs)
		return
	}

	if isArithmeticError(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var notFoundErr *model.NotFoundError
	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		respondError(w, http.StatusBadRequest, "Username already registered")
	case errors.Is(err, model.ErrDuplicateEmail):
		respondError(w, http.StatusBadRequest, "Email already registered")
	case errors.As(err, &notFoundErr):
		respondError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.Is(err, model.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, model.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, model.ErrMissingToken):
		respondError(w, http.StatusForbidden, "Not authenticated")
	case errors.Is(err, model.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "Could not validate credentials")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
