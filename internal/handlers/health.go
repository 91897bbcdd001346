package handlers

import (
	"net/http"
	"time"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/db"
	"github.com/alvarots/checkauto/internal/maintenance"
	"github.com/alvarots/checkauto/internal/models"
)

// HealthHandler serves the evaluated maintenance state of a vehicle: the
// per-item status list and the aggregated health score.
type HealthHandler struct {
	vehicles db.VehicleStore
	configs  db.ConfigStore
	catalog  *catalog.Catalog
	now      func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(vehicles db.VehicleStore, configs db.ConfigStore, cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{vehicles: vehicles, configs: configs, catalog: cat, now: time.Now}
}

// ItemStatus is one maintenance item together with its evaluated state.
// Untracked dimensions carry the historical sentinel values on the wire.
type ItemStatus struct {
	models.MaintenanceConfig
	Status        models.MaintenanceStatus `json:"status"`
	KmRemaining   int                      `json:"km_remaining"`
	DaysRemaining int                      `json:"days_remaining"`
	Progress      float64                  `json:"progress"`
}

// HealthResponse is the aggregated health report for one vehicle.
type HealthResponse struct {
	Score float64          `json:"score"`
	Tier  maintenance.Tier `json:"tier"`
	Items []ItemStatus     `json:"items"`
}

// Status evaluates every active maintenance item of a vehicle
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	vehicle, configs, ok := h.load(w, r, claims.UserID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.evaluateItems(*vehicle, configs))
}

// Health returns the aggregated score, tier and per-item breakdown
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	vehicle, configs, ok := h.load(w, r, claims.UserID)
	if !ok {
		return
	}

	score := maintenance.HealthScore(*vehicle, configs, h.catalog, h.now())
	writeJSON(w, http.StatusOK, HealthResponse{
		Score: score,
		Tier:  maintenance.ClassifyTier(score),
		Items: h.evaluateItems(*vehicle, configs),
	})
}

func (h *HealthHandler) load(w http.ResponseWriter, r *http.Request, userID string) (*models.Vehicle, []models.MaintenanceConfig, bool) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return nil, nil, false
	}
	configs, err := h.configs.FindConfigsByVehicle(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to load maintenance configs", http.StatusInternalServerError)
		return nil, nil, false
	}
	return vehicle, configs, true
}

func (h *HealthHandler) evaluateItems(vehicle models.Vehicle, configs []models.MaintenanceConfig) []ItemStatus {
	now := h.now()
	items := []ItemStatus{}
	for _, config := range maintenance.ActiveConfigs(vehicle, configs) {
		result := maintenance.Evaluate(vehicle, config, h.catalog, now)
		items = append(items, ItemStatus{
			MaintenanceConfig: config,
			Status:            result.Status,
			KmRemaining:       result.KmRemaining.ValueOr(maintenance.KmNotApplicable),
			DaysRemaining:     result.DaysRemaining.ValueOr(maintenance.DaysNotApplicable),
			Progress:          result.Progress,
		})
	}
	return items
}

// Liveness reports service health for load balancers and monitors
func Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
