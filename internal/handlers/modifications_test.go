package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alvarots/checkauto/internal/models"
)

func TestModificationHandler_Create(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	vehicleID := primitive.NewObjectID().Hex()

	t.Run("successful creation", func(t *testing.T) {
		mockMods := new(MockModificationStore)
		handler := NewModificationHandler(mockMods)

		created := &models.Modification{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			VehicleID: vehicleID,
			Name:      "Coilover kit",
			Category:  models.ModPerformance,
			Cost:      650,
			Date:      "2024-04-01T00:00:00Z",
		}
		mockMods.On("InsertModification", mock.Anything, userID, mock.MatchedBy(func(m models.Modification) bool {
			return m.VehicleID == vehicleID && m.Name == "Coilover kit"
		})).Return(created, nil)

		body, _ := json.Marshal(models.Modification{
			Name:     "Coilover kit",
			Category: models.ModPerformance,
			Cost:     650,
			Date:     "2024-04-01T00:00:00Z",
		})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles/"+vehicleID+"/modifications", bytes.NewBuffer(body)), userID)
		req.SetPathValue("id", vehicleID)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockMods.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		handler := NewModificationHandler(new(MockModificationStore))

		body, _ := json.Marshal(models.Modification{Date: "2024-04-01T00:00:00Z"})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles/"+vehicleID+"/modifications", bytes.NewBuffer(body)), userID)
		req.SetPathValue("id", vehicleID)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestModificationHandler_List(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	vehicleID := primitive.NewObjectID().Hex()

	mockMods := new(MockModificationStore)
	handler := NewModificationHandler(mockMods)

	mockMods.On("FindModifications", mock.Anything, userID, vehicleID).Return([]models.Modification(nil), nil)

	req := withClaims(httptest.NewRequest("GET", "/api/vehicles/"+vehicleID+"/modifications", nil), userID)
	req.SetPathValue("id", vehicleID)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	mockMods.AssertExpectations(t)
}

func TestModificationHandler_Install(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	vehicleID := primitive.NewObjectID().Hex()
	modID := primitive.NewObjectID().Hex()

	t.Run("successful install", func(t *testing.T) {
		mockMods := new(MockModificationStore)
		handler := NewModificationHandler(mockMods)

		mockMods.On("InstallModification", mock.Anything, userID, vehicleID, modID, 650.0, "2024-04-01T00:00:00Z").Return(nil)

		body, _ := json.Marshal(map[string]interface{}{"cost": 650.0, "date": "2024-04-01T00:00:00Z"})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles/"+vehicleID+"/modifications/"+modID+"/install", bytes.NewBuffer(body)), userID)
		req.SetPathValue("id", vehicleID)
		req.SetPathValue("modID", modID)
		w := httptest.NewRecorder()

		handler.Install(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockMods.AssertExpectations(t)
	})

	t.Run("not a wishlist entry", func(t *testing.T) {
		mockMods := new(MockModificationStore)
		handler := NewModificationHandler(mockMods)

		mockMods.On("InstallModification", mock.Anything, userID, vehicleID, modID, 650.0, "2024-04-01T00:00:00Z").
			Return(assert.AnError)

		body, _ := json.Marshal(map[string]interface{}{"cost": 650.0, "date": "2024-04-01T00:00:00Z"})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles/"+vehicleID+"/modifications/"+modID+"/install", bytes.NewBuffer(body)), userID)
		req.SetPathValue("id", vehicleID)
		req.SetPathValue("modID", modID)
		w := httptest.NewRecorder()

		handler.Install(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestModificationHandler_Delete(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	vehicleID := primitive.NewObjectID().Hex()
	modID := primitive.NewObjectID().Hex()

	mockMods := new(MockModificationStore)
	handler := NewModificationHandler(mockMods)

	mockMods.On("DeleteModification", mock.Anything, userID, vehicleID, modID).Return(nil)

	req := withClaims(httptest.NewRequest("DELETE", "/api/vehicles/"+vehicleID+"/modifications/"+modID, nil), userID)
	req.SetPathValue("id", vehicleID)
	req.SetPathValue("modID", modID)
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockMods.AssertExpectations(t)
}
