package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alvarots/checkauto/internal/models"
)

// FindConfigs returns all maintenance configs owned by the user.
func (s *Store) FindConfigs(ctx context.Context, userID string) ([]models.MaintenanceConfig, error) {
	return s.findConfigs(ctx, bson.M{"user_id": userID})
}

// FindConfigsByVehicle returns the configs for one vehicle.
func (s *Store) FindConfigsByVehicle(ctx context.Context, userID, vehicleID string) ([]models.MaintenanceConfig, error) {
	return s.findConfigs(ctx, bson.M{"user_id": userID, "vehicle_id": vehicleID})
}

func (s *Store) findConfigs(ctx context.Context, filter bson.M) ([]models.MaintenanceConfig, error) {
	cursor, err := s.Configs.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []models.MaintenanceConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// FindConfigByID finds one of the user's configs by its ID.
func (s *Store) FindConfigByID(ctx context.Context, userID, id string) (*models.MaintenanceConfig, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid config ID: %w", err)
	}

	var config models.MaintenanceConfig
	err = s.Configs.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&config)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("config not found")
		}
		return nil, err
	}
	return &config, nil
}

// UpdateConfig updates a config's schedule and active state.
func (s *Store) UpdateConfig(ctx context.Context, userID string, config models.MaintenanceConfig) error {
	result, err := s.Configs.UpdateOne(ctx,
		bson.M{"_id": config.ID, "user_id": userID},
		bson.M{"$set": configUpdate(config)})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("config not found")
	}
	return nil
}

// BatchUpdateConfigs applies updates to several configs at once, as the setup
// wizard does when activating a whole section.
func (s *Store) BatchUpdateConfigs(ctx context.Context, userID string, configs []models.MaintenanceConfig) error {
	writes := make([]mongo.WriteModel, 0, len(configs))
	for _, config := range configs {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": config.ID, "user_id": userID}).
			SetUpdate(bson.M{"$set": configUpdate(config)}))
	}
	if len(writes) == 0 {
		return nil
	}
	_, err := s.Configs.BulkWrite(ctx, writes)
	return err
}

func configUpdate(config models.MaintenanceConfig) bson.M {
	return bson.M{
		"interval_km":           config.IntervalKm,
		"interval_months":       config.IntervalMonths,
		"last_replaced_mileage": config.LastReplacedMileage,
		"last_replaced_date":    config.LastReplacedDate,
		"is_active":             config.IsActive,
	}
}

// RecalcLastService rewrites a config's last-replaced fields from its most
// recent history record, or resets them to the unknown sentinel when no
// records remain. Keeps config state consistent when history is edited or
// deleted out of order.
func (s *Store) RecalcLastService(ctx context.Context, userID, configID string) error {
	objectID, err := primitive.ObjectIDFromHex(configID)
	if err != nil {
		return fmt.Errorf("invalid config ID: %w", err)
	}

	cursor, err := s.History.Find(ctx, bson.M{"user_id": userID, "maintenance_config_id": configID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var records []models.ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return err
	}

	update := bson.M{
		"last_replaced_mileage": models.UnknownMileage,
		"last_replaced_date":    time.Now().Format(time.RFC3339),
	}
	if len(records) > 0 {
		sortRecordsByDateDesc(records)
		update["last_replaced_mileage"] = records[0].Mileage
		update["last_replaced_date"] = records[0].Date
	}

	_, err = s.Configs.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": update})
	return err
}

// sortRecordsByDateDesc orders records newest-first by their service date.
// Unparseable dates sort last.
func sortRecordsByDateDesc(records []models.ServiceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, erri := time.Parse(time.RFC3339, records[i].Date)
		tj, errj := time.Parse(time.RFC3339, records[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})
}
