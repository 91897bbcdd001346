package handlers

import (
	"net/http"
	"time"

	"github.com/alvarots/checkauto/internal/alerts"
	"github.com/alvarots/checkauto/internal/db"
	"github.com/alvarots/checkauto/internal/models"
)

// HistoryHandler handles service-record requests
type HistoryHandler struct {
	history  db.HistoryStore
	vehicles db.VehicleStore
	configs  db.ConfigStore
	notifier *alerts.Notifier
}

// NewHistoryHandler creates a new service-record handler
func NewHistoryHandler(history db.HistoryStore, vehicles db.VehicleStore, configs db.ConfigStore, notifier *alerts.Notifier) *HistoryHandler {
	return &HistoryHandler{
		history:  history,
		vehicles: vehicles,
		configs:  configs,
		notifier: notifier,
	}
}

// List returns the user's service records, newest first
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	records, err := h.history.FindHistory(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.ServiceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Create logs a service event. The store recomputes the owning config and
// bumps the vehicle mileage when the record's reading is strictly higher.
func (h *HistoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var record models.ServiceRecord
	if !decodeBody(w, r, &record) {
		return
	}

	if record.VehicleID == "" || record.MaintenanceConfigID == "" {
		http.Error(w, "Vehicle and config references are required", http.StatusBadRequest)
		return
	}
	if record.Mileage < 0 {
		http.Error(w, "Mileage cannot be negative", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(time.RFC3339, record.Date); err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	id, err := h.history.InsertServiceRecord(r.Context(), claims.UserID, record)
	if err != nil {
		http.Error(w, "Failed to create record", http.StatusInternalServerError)
		return
	}

	h.checkAlerts(r, claims.UserID, record.VehicleID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update edits a record and recomputes the owning config
func (h *HistoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var record models.ServiceRecord
	if !decodeBody(w, r, &record) {
		return
	}
	if _, err := time.Parse(time.RFC3339, record.Date); err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	if err := h.history.UpdateServiceRecord(r.Context(), claims.UserID, r.PathValue("id"), record); err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Delete removes a record; the owning config falls back to unknown history
// when it was the last one
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.history.DeleteServiceRecord(r.Context(), claims.UserID, r.PathValue("id")); err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) checkAlerts(r *http.Request, userID, vehicleID string) {
	if h.notifier == nil {
		return
	}
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), userID, vehicleID)
	if err != nil {
		return
	}
	configs, err := h.configs.FindConfigsByVehicle(r.Context(), userID, vehicleID)
	if err != nil {
		return
	}
	h.notifier.CheckVehicle(*vehicle, configs, time.Now())
}
