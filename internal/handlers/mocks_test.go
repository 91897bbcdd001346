package handlers

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/alvarots/checkauto/internal/middleware"
	"github.com/alvarots/checkauto/internal/models"
)

// MockVehicleStore is a mock implementation of db.VehicleStore
type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) FindVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) FindVehicleByID(ctx context.Context, userID, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) UpdateVehicle(ctx context.Context, userID string, vehicle models.Vehicle) error {
	args := m.Called(ctx, userID, vehicle)
	return args.Error(0)
}

func (m *MockVehicleStore) UpdateVehicleMileage(ctx context.Context, userID, id string, mileage int) error {
	args := m.Called(ctx, userID, id, mileage)
	return args.Error(0)
}

func (m *MockVehicleStore) DeleteVehicle(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockConfigStore is a mock implementation of db.ConfigStore
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) FindConfigs(ctx context.Context, userID string) ([]models.MaintenanceConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceConfig), args.Error(1)
}

func (m *MockConfigStore) FindConfigsByVehicle(ctx context.Context, userID, vehicleID string) ([]models.MaintenanceConfig, error) {
	args := m.Called(ctx, userID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceConfig), args.Error(1)
}

func (m *MockConfigStore) FindConfigByID(ctx context.Context, userID, id string) (*models.MaintenanceConfig, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceConfig), args.Error(1)
}

func (m *MockConfigStore) UpdateConfig(ctx context.Context, userID string, config models.MaintenanceConfig) error {
	args := m.Called(ctx, userID, config)
	return args.Error(0)
}

func (m *MockConfigStore) BatchUpdateConfigs(ctx context.Context, userID string, configs []models.MaintenanceConfig) error {
	args := m.Called(ctx, userID, configs)
	return args.Error(0)
}

func (m *MockConfigStore) RecalcLastService(ctx context.Context, userID, configID string) error {
	args := m.Called(ctx, userID, configID)
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of db.HistoryStore
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) FindHistory(ctx context.Context, userID string) ([]models.ServiceRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceRecord), args.Error(1)
}

func (m *MockHistoryStore) InsertServiceRecord(ctx context.Context, userID string, record models.ServiceRecord) (string, error) {
	args := m.Called(ctx, userID, record)
	return args.String(0), args.Error(1)
}

func (m *MockHistoryStore) UpdateServiceRecord(ctx context.Context, userID, id string, record models.ServiceRecord) error {
	args := m.Called(ctx, userID, id, record)
	return args.Error(0)
}

func (m *MockHistoryStore) DeleteServiceRecord(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockModificationStore is a mock implementation of db.ModificationStore
type MockModificationStore struct {
	mock.Mock
}

func (m *MockModificationStore) FindModifications(ctx context.Context, userID, vehicleID string) ([]models.Modification, error) {
	args := m.Called(ctx, userID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Modification), args.Error(1)
}

func (m *MockModificationStore) InsertModification(ctx context.Context, userID string, mod models.Modification) (*models.Modification, error) {
	args := m.Called(ctx, userID, mod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Modification), args.Error(1)
}

func (m *MockModificationStore) InstallModification(ctx context.Context, userID, vehicleID, modID string, cost float64, date string) error {
	args := m.Called(ctx, userID, vehicleID, modID, cost, date)
	return args.Error(0)
}

func (m *MockModificationStore) DeleteModification(ctx context.Context, userID, vehicleID, modID string) error {
	args := m.Called(ctx, userID, vehicleID, modID)
	return args.Error(0)
}

// MockUserStore is a mock implementation of db.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateSettings(ctx context.Context, id string, settings models.Settings) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// withClaims attaches authenticated-user claims to the request context the
// same way the auth middleware does.
func withClaims(req *http.Request, userID string) *http.Request {
	claims := &models.Claims{UserID: userID, Email: "test@example.com"}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}
