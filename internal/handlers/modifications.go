package handlers

import (
	"net/http"
	"time"

	"github.com/alvarots/checkauto/internal/db"
	"github.com/alvarots/checkauto/internal/models"
)

// ModificationHandler handles modification/wishlist requests
type ModificationHandler struct {
	mods db.ModificationStore
}

// NewModificationHandler creates a new modification handler
func NewModificationHandler(mods db.ModificationStore) *ModificationHandler {
	return &ModificationHandler{mods: mods}
}

// List returns a vehicle's modifications, newest first
func (h *ModificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	mods, err := h.mods.FindModifications(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to load modifications", http.StatusInternalServerError)
		return
	}
	if mods == nil {
		mods = []models.Modification{}
	}
	writeJSON(w, http.StatusOK, mods)
}

// Create stores a modification; installed entries get a synthetic expense
// record under the reserved modification category
func (h *ModificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var mod models.Modification
	if !decodeBody(w, r, &mod) {
		return
	}

	if mod.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(time.RFC3339, mod.Date); err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	mod.VehicleID = r.PathValue("id")
	created, err := h.mods.InsertModification(r.Context(), claims.UserID, mod)
	if err != nil {
		http.Error(w, "Failed to create modification", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Install converts a wishlist entry into an installed modification
func (h *ModificationHandler) Install(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Cost float64 `json:"cost"`
		Date string  `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := time.Parse(time.RFC3339, req.Date); err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	err := h.mods.InstallModification(r.Context(), claims.UserID, r.PathValue("id"), r.PathValue("modID"), req.Cost, req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a modification and its linked expense record, if any
func (h *ModificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	err := h.mods.DeleteModification(r.Context(), claims.UserID, r.PathValue("id"), r.PathValue("modID"))
	if err != nil {
		http.Error(w, "Modification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
