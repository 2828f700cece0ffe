package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xmkt/marketplace/internal/service"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps service-layer errors to HTTP statuses.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		jsonError(w, http.StatusUnauthorized, "invalid key")
	case errors.Is(err, service.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not found")
	default:
		log.Printf("internal error: %v", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
