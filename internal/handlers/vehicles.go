package handlers

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/alvarots/checkauto/internal/alerts"
	"github.com/alvarots/checkauto/internal/db"
	"github.com/alvarots/checkauto/internal/models"
)

// VehicleHandler handles garage requests
type VehicleHandler struct {
	vehicles db.VehicleStore
	configs  db.ConfigStore
	notifier *alerts.Notifier
}

// NewVehicleHandler creates a new garage handler. notifier may be nil when
// alerting is disabled.
func NewVehicleHandler(vehicles db.VehicleStore, configs db.ConfigStore, notifier *alerts.Notifier) *VehicleHandler {
	return &VehicleHandler{
		vehicles: vehicles,
		configs:  configs,
		notifier: notifier,
	}
}

// List returns the user's vehicles
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	vehicles, err := h.vehicles.FindVehicles(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Create registers a vehicle and its default maintenance configs
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if !decodeBody(w, r, &vehicle) {
		return
	}

	if vehicle.Make == "" || vehicle.Model == "" {
		http.Error(w, "Make and model are required", http.StatusBadRequest)
		return
	}
	if vehicle.CurrentMileage < 0 {
		http.Error(w, "Mileage cannot be negative", http.StatusBadRequest)
		return
	}

	vehicle.UserID = claims.UserID
	created, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		log.WithError(err).Error("failed to create vehicle")
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get returns one vehicle
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Update edits a vehicle's details
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	stored, err := h.vehicles.FindVehicleByID(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	var vehicle models.Vehicle
	if !decodeBody(w, r, &vehicle) {
		return
	}
	if vehicle.CurrentMileage < 0 {
		http.Error(w, "Mileage cannot be negative", http.StatusBadRequest)
		return
	}

	vehicle.ID = stored.ID
	if err := h.vehicles.UpdateVehicle(r.Context(), claims.UserID, vehicle); err != nil {
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}

	h.checkAlerts(r, claims.UserID, stored.ID.Hex())
	writeJSON(w, http.StatusOK, vehicle)
}

// UpdateMileage sets the current odometer reading
func (h *VehicleHandler) UpdateMileage(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Mileage int `json:"mileage"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Mileage < 0 {
		http.Error(w, "Mileage cannot be negative", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	if err := h.vehicles.UpdateVehicleMileage(r.Context(), claims.UserID, id, req.Mileage); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	h.checkAlerts(r, claims.UserID, id)
	writeJSON(w, http.StatusOK, map[string]int{"mileage": req.Mileage})
}

// Delete removes a vehicle with all its configs, history and modifications
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), claims.UserID, r.PathValue("id")); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checkAlerts re-evaluates the vehicle after a data change and publishes any
// newly-overdue items.
func (h *VehicleHandler) checkAlerts(r *http.Request, userID, vehicleID string) {
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
