package db

import (
	"context"

	"github.com/alvarots/checkauto/internal/models"
)

// VehicleStore defines vehicle data operations. All operations are scoped to
// the owning user.
type VehicleStore interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error)
	FindVehicles(ctx context.Context, userID string) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, userID, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID string, vehicle models.Vehicle) error
	UpdateVehicleMileage(ctx context.Context, userID, id string, mileage int) error
	DeleteVehicle(ctx context.Context, userID, id string) error
}

// ConfigStore defines maintenance-config data operations.
type ConfigStore interface {
	FindConfigs(ctx context.Context, userID string) ([]models.MaintenanceConfig, error)
	FindConfigsByVehicle(ctx context.Context, userID, vehicleID string) ([]models.MaintenanceConfig, error)
	FindConfigByID(ctx context.Context, userID, id string) (*models.MaintenanceConfig, error)
	UpdateConfig(ctx context.Context, userID string, config models.MaintenanceConfig) error
	BatchUpdateConfigs(ctx context.Context, userID string, configs []models.MaintenanceConfig) error
	RecalcLastService(ctx context.Context, userID, configID string) error
}

// HistoryStore defines service-record data operations.
type HistoryStore interface {
	FindHistory(ctx context.Context, userID string) ([]models.ServiceRecord, error)
	InsertServiceRecord(ctx context.Context, userID string, record models.ServiceRecord) (string, error)
	UpdateServiceRecord(ctx context.Context, userID, id string, record models.ServiceRecord) error
	DeleteServiceRecord(ctx context.Context, userID, id string) error
}

// ModificationStore defines modification/wishlist data operations.
type ModificationStore interface {
	FindModifications(ctx context.Context, userID, vehicleID string) ([]models.Modification, error)
	InsertModification(ctx context.Context, userID string, mod models.Modification) (*models.Modification, error)
	InstallModification(ctx context.Context, userID, vehicleID, modID string, cost float64, date string) error
	DeleteModification(ctx context.Context, userID, vehicleID, modID string) error
}

// UserStore defines account data operations.
type UserStore interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateSettings(ctx context.Context, id string, settings models.Settings) error
	UpdateLastLogin(ctx context.Context, id string) error
}
