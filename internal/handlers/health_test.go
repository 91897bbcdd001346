package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/maintenance"
	"github.com/alvarots/checkauto/internal/models"
)

func TestHealthHandler_Health(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	userID := primitive.NewObjectID().Hex()
	vehicleID := primitive.NewObjectID()

	vehicle := &models.Vehicle{
		ID:             vehicleID,
		UserID:         userID,
		Make:           "Seat",
		Model:          "Leon",
		CurrentMileage: 80000,
	}

	configs := []models.MaintenanceConfig{
		{
			// OK: 5000 km and ~3.5 months used of 15000 km / 12 months
			ID:                  primitive.NewObjectID(),
			VehicleID:           vehicleID.Hex(),
			Category:            models.CategoryEngineOil,
			IntervalKm:          15000,
			IntervalMonths:      12,
			LastReplacedMileage: 75000,
			LastReplacedDate:    "2024-03-01T00:00:00Z",
			IsActive:            true,
		},
		{
			// WARNING: insurance expires in 10 days
			ID:                  primitive.NewObjectID(),
			VehicleID:           vehicleID.Hex(),
			Category:            models.CategoryInsurance,
			IntervalMonths:      12,
			LastReplacedMileage: 0,
			LastReplacedDate:    "2024-06-25T00:00:00Z",
			IsActive:            true,
		},
		{
			// Inactive, must not participate
			ID:                  primitive.NewObjectID(),
			VehicleID:           vehicleID.Hex(),
			Category:            models.CategoryTimingBelt,
			IntervalKm:          120000,
			LastReplacedMileage: models.UnknownMileage,
			LastReplacedDate:    "2024-01-01T00:00:00Z",
			IsActive:            false,
		},
	}

	newHandler := func(vehicles *MockVehicleStore, cfgs *MockConfigStore) *HealthHandler {
		handler := NewHealthHandler(vehicles, cfgs, catalog.Default())
		handler.now = func() time.Time { return now }
		return handler
	}

	t.Run("aggregated report", func(t *testing.T) {
		mockVehicles := new(MockVehicleStore)
		mockConfigs := new(MockConfigStore)
		handler := newHandler(mockVehicles, mockConfigs)

		mockVehicles.On("FindVehicleByID", mock.Anything, userID, vehicleID.Hex()).Return(vehicle, nil)
		mockConfigs.On("FindConfigsByVehicle", mock.Anything, userID, vehicleID.Hex()).Return(configs, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/vehicles/"+vehicleID.Hex()+"/health", nil), userID)
		req.SetPathValue("id", vehicleID.Hex())
		w := httptest.NewRecorder()

		handler.Health(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		// OK (20) + WARNING (10) of a possible 40
		assert.InDelta(t, 75.0, response.Score, 0.001)
		assert.Equal(t, maintenance.TierGood, response.Tier.Level)
		assert.False(t, response.Tier.ResponsibleDriver)
		assert.Len(t, response.Items, 2)

		mockVehicles.AssertExpectations(t)
		mockConfigs.AssertExpectations(t)
	})

	t.Run("per-item breakdown carries sentinels for untracked dimensions", func(t *testing.T) {
		mockVehicles := new(MockVehicleStore)
		mockConfigs := new(MockConfigStore)
		handler := newHandler(mockVehicles, mockConfigs)

		mockVehicles.On("FindVehicleByID", mock.Anything, userID, vehicleID.Hex()).Return(vehicle, nil)
		mockConfigs.On("FindConfigsByVehicle", mock.Anything, userID, vehicleID.Hex()).Return(configs, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/vehicles/"+vehicleID.Hex()+"/status", nil), userID)
		req.SetPathValue("id", vehicleID.Hex())
		w := httptest.NewRecorder()

		handler.Status(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var items []ItemStatus
		if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if assert.Len(t, items, 2) {
			oil, insurance := items[0], items[1]
			assert.Equal(t, models.StatusOK, oil.Status)
			assert.Equal(t, 10000, oil.KmRemaining)
			assert.Equal(t, models.StatusWarning, insurance.Status)
			assert.Equal(t, maintenance.KmNotApplicable, insurance.KmRemaining)
			assert.Equal(t, 10, insurance.DaysRemaining)
		}
	})

	t.Run("no active items scores 100", func(t *testing.T) {
		mockVehicles := new(MockVehicleStore)
		mockConfigs := new(MockConfigStore)
		handler := newHandler(mockVehicles, mockConfigs)

		mockVehicles.On("FindVehicleByID", mock.Anything, userID, vehicleID.Hex()).Return(vehicle, nil)
		mockConfigs.On("FindConfigsByVehicle", mock.Anything, userID, vehicleID.Hex()).
			Return([]models.MaintenanceConfig{}, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/vehicles/"+vehicleID.Hex()+"/health", nil), userID)
		req.SetPathValue("id", vehicleID.Hex())
		w := httptest.NewRecorder()

		handler.Health(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, 100.0, response.Score)
		assert.Equal(t, maintenance.TierExcellent, response.Tier.Level)
		assert.True(t, response.Tier.ResponsibleDriver)
		assert.Empty(t, response.Items)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		mockVehicles := new(MockVehicleStore)
		mockConfigs := new(MockConfigStore)
		handler := newHandler(mockVehicles, mockConfigs)

		mockVehicles.On("FindVehicleByID", mock.Anything, userID, "missing").Return(nil, assert.AnError)

		req := withClaims(httptest.NewRequest("GET", "/api/vehicles/missing/health", nil), userID)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Health(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLiveness(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	Liveness(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
