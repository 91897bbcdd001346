package handlers

import (
	"net/http"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/db"
	"github.com/alvarots/checkauto/internal/models"
)

// ConfigHandler handles maintenance-config requests
type ConfigHandler struct {
	configs db.ConfigStore
	catalog *catalog.Catalog
}

// NewConfigHandler creates a new maintenance-config handler
func NewConfigHandler(configs db.ConfigStore, cat *catalog.Catalog) *ConfigHandler {
	return &ConfigHandler{
		configs: configs,
		catalog: cat,
	}
}

// List returns the user's configs, optionally filtered by vehicle
func (h *ConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var (
		configs []models.MaintenanceConfig
		err     error
	)
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		configs, err = h.configs.FindConfigsByVehicle(r.Context(), claims.UserID, vehicleID)
	} else {
		configs, err = h.configs.FindConfigs(r.Context(), claims.UserID)
	}
	if err != nil {
		http.Error(w, "Failed to load configs", http.StatusInternalServerError)
		return
	}
	if configs == nil {
		configs = []models.MaintenanceConfig{}
	}
	writeJSON(w, http.StatusOK, configs)
}

// Update edits one config's schedule and active state. Customized km
// intervals are validated against the catalog's safety limits.
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	stored, err := h.configs.FindConfigByID(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Config not found", http.StatusNotFound)
		return
	}

	var config models.MaintenanceConfig
	if !decodeBody(w, r, &config) {
		return
	}
	config.ID = stored.ID
	config.Category = stored.Category

	if err := h.validate(config); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.configs.UpdateConfig(r.Context(), claims.UserID, config); err != nil {
		http.Error(w, "Failed to update config", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, config)
}

// BatchUpdate applies several config updates at once (setup wizard)
func (h *ConfigHandler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var configs []models.MaintenanceConfig
	if !decodeBody(w, r, &configs) {
		return
	}

	for _, config := range configs {
		if err := h.validate(config); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := h.configs.BatchUpdateConfigs(r.Context(), claims.UserID, configs); err != nil {
		http.Error(w, "Failed to update configs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

func (h *ConfigHandler) validate(config models.MaintenanceConfig) error {
	if err := h.catalog.ValidateIntervalKm(config.Category, config.IntervalKm); err != nil {
		return err
	}
	if config.IntervalMonths < 0 {
		return errNegativeInterval
	}
	if config.LastReplacedMileage < models.UnknownMileage {
		return errInvalidMileage
	}
	return nil
}
