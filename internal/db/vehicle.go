package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alvarots/checkauto/internal/models"
)

// InsertVehicle creates a vehicle and seeds one maintenance config per
// catalog entry (the reserved modification category excepted): inactive, with
// unknown service history, ready for the setup wizard.
func (s *Store) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	if s.Vehicles == nil {
		return nil, fmt.Errorf("vehicles collection is nil")
	}

	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	result, err := s.Vehicles.InsertOne(ctx, vehicle)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	vehicle.ID = result.InsertedID.(primitive.ObjectID)

	now := time.Now().Format(time.RFC3339)
	var defaults []interface{}
	for _, d := range s.Catalog.Definitions() {
		if d.Category == models.CategoryModification {
			continue
		}
		defaults = append(defaults, models.MaintenanceConfig{
			UserID:              vehicle.UserID,
			VehicleID:           vehicle.ID.Hex(),
			Category:            d.Category,
			IntervalKm:          d.IntervalKm,
			IntervalMonths:      d.IntervalMonths,
			LastReplacedMileage: models.UnknownMileage,
			LastReplacedDate:    now,
			IsActive:            false,
		})
	}
	if _, err := s.Configs.InsertMany(ctx, defaults); err != nil {
		return nil, fmt.Errorf("seed default configs: %w", err)
	}

	return &vehicle, nil
}

// FindVehicles returns all vehicles owned by the user.
func (s *Store) FindVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	if s.Vehicles == nil {
		return nil, fmt.Errorf("vehicles collection is nil")
	}

	cursor, err := s.Vehicles.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicleByID finds one of the user's vehicles by its ID.
func (s *Store) FindVehicleByID(ctx context.Context, userID, id string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}

	var vehicle models.Vehicle
	err = s.Vehicles.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle updates a vehicle's editable details.
func (s *Store) UpdateVehicle(ctx context.Context, userID string, vehicle models.Vehicle) error {
	vehicle.UpdatedAt = time.Now()
	update := bson.M{
		"make":            vehicle.Make,
		"model":           vehicle.Model,
		"year":            vehicle.Year,
		"plate":           vehicle.Plate,
		"current_mileage": vehicle.CurrentMileage,
		"updated_at":      vehicle.UpdatedAt,
	}
	if vehicle.Image != "" {
		update["image"] = vehicle.Image
	}

	result, err := s.Vehicles.UpdateOne(ctx,
		bson.M{"_id": vehicle.ID, "user_id": userID},
		bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// UpdateVehicleMileage sets the current odometer reading.
func (s *Store) UpdateVehicleMileage(ctx context.Context, userID, id string, mileage int) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	result, err := s.Vehicles.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": bson.M{"current_mileage": mileage, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// DeleteVehicle removes a vehicle and everything hanging off it: configs,
// history and modifications first, the vehicle last.
func (s *Store) DeleteVehicle(ctx context.Context, userID, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	owned := bson.M{"user_id": userID, "vehicle_id": id}
	if _, err := s.Configs.DeleteMany(ctx, owned); err != nil {
		return fmt.Errorf("delete configs: %w", err)
	}
	if _, err := s.History.DeleteMany(ctx, owned); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if _, err := s.Modifications.DeleteMany(ctx, owned); err != nil {
		return fmt.Errorf("delete modifications: %w", err)
	}

	result, err := s.Vehicles.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}
