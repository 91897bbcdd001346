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

// FindHistory returns the user's service records, newest first.
func (s *Store) FindHistory(ctx context.Context, userID string) ([]models.ServiceRecord, error) {
	if s.History == nil {
		return nil, fmt.Errorf("history collection is nil")
	}

	cursor, err := s.History.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	sortRecordsByDateDesc(records)
	return records, nil
}

// InsertServiceRecord logs a service event, then keeps the rest of the data
// consistent: the owning config's last-replaced fields are recomputed from
// history, and the vehicle's odometer is bumped when the record's mileage is
// strictly higher.
func (s *Store) InsertServiceRecord(ctx context.Context, userID string, record models.ServiceRecord) (string, error) {
	record.UserID = userID
	record.CreatedAt = time.Now()

	result, err := s.History.InsertOne(ctx, record)
	if err != nil {
		return "", fmt.Errorf("insert service record: %w", err)
	}
	id := result.InsertedID.(primitive.ObjectID).Hex()

	if record.MaintenanceConfigID != "" {
		if err := s.RecalcLastService(ctx, userID, record.MaintenanceConfigID); err != nil {
			return id, err
		}
	}

	vehicle, err := s.FindVehicleByID(ctx, userID, record.VehicleID)
	if err != nil {
		return id, err
	}
	if record.Mileage > vehicle.CurrentMileage {
		if err := s.UpdateVehicleMileage(ctx, userID, record.VehicleID, record.Mileage); err != nil {
			return id, err
		}
	}

	return id, nil
}

// UpdateServiceRecord edits a record and recomputes the owning config.
func (s *Store) UpdateServiceRecord(ctx context.Context, userID, id string, record models.ServiceRecord) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}

	update := bson.M{
		"date":      record.Date,
		"mileage":   record.Mileage,
		"cost":      record.Cost,
		"shop_name": record.ShopName,
		"notes":     record.Notes,
	}
	result, err := s.History.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("record not found")
	}

	var stored models.ServiceRecord
	if err := s.History.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&stored); err != nil {
		return err
	}
	if stored.MaintenanceConfigID != "" {
		return s.RecalcLastService(ctx, userID, stored.MaintenanceConfigID)
	}
	return nil
}

// DeleteServiceRecord removes a record and recomputes the owning config,
// which falls back to the unknown sentinel when this was the last record.
func (s *Store) DeleteServiceRecord(ctx context.Context, userID, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}

	var stored models.ServiceRecord
	err = s.History.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&stored)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("record not found")
		}
		return err
	}

	if _, err := s.History.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID}); err != nil {
		return err
	}

	if stored.MaintenanceConfigID != "" {
		return s.RecalcLastService(ctx, userID, stored.MaintenanceConfigID)
	}
	return nil
}
