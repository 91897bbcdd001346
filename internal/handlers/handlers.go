package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alvarots/checkauto/internal/middleware"
	"github.com/alvarots/checkauto/internal/models"
)

var (
	errNegativeInterval = errors.New("interval months cannot be negative")
	errInvalidMileage   = errors.New("last replaced mileage must be -1 or a non-negative value")
)

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireUser resolves the authenticated user's claims, writing a 401 when
// the request carries none.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// decodeBody unmarshals the request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}
