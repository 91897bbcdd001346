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

// FindModifications returns a vehicle's modifications, newest first.
func (s *Store) FindModifications(ctx context.Context, userID, vehicleID string) ([]models.Modification, error) {
	cursor, err := s.Modifications.Find(ctx, bson.M{"user_id": userID, "vehicle_id": vehicleID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mods []models.Modification
	if err := cursor.All(ctx, &mods); err != nil {
		return nil, err
	}
	sortModsByDateDesc(mods)
	return mods, nil
}

// InsertModification stores a modification. Installed (non-wishlist) entries
// also get a synthetic service record under the reserved modification
// category so they show up in expense aggregation.
func (s *Store) InsertModification(ctx context.Context, userID string, mod models.Modification) (*models.Modification, error) {
	mod.UserID = userID

	if !mod.IsWishlist {
		expenseID, err := s.bookModificationExpense(ctx, userID, mod.VehicleID, mod.Name, string(mod.Category), mod.Cost, mod.Date)
		if err != nil {
			return nil, err
		}
		mod.ExpenseID = expenseID
	}

	result, err := s.Modifications.InsertOne(ctx, mod)
	if err != nil {
		return nil, fmt.Errorf("insert modification: %w", err)
	}
	mod.ID = result.InsertedID.(primitive.ObjectID)
	return &mod, nil
}

// InstallModification converts a wishlist entry into an installed one with
// its final cost and install date, booking the expense record.
func (s *Store) InstallModification(ctx context.Context, userID, vehicleID, modID string, cost float64, date string) error {
	objectID, err := primitive.ObjectIDFromHex(modID)
	if err != nil {
		return fmt.Errorf("invalid modification ID: %w", err)
	}

	var mod models.Modification
	err = s.Modifications.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID, "vehicle_id": vehicleID}).Decode(&mod)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("modification not found")
		}
		return err
	}
	if !mod.IsWishlist {
		return fmt.Errorf("modification already installed")
	}

	expenseID, err := s.bookModificationExpense(ctx, userID, vehicleID, mod.Name, string(mod.Category), cost, date)
	if err != nil {
		return err
	}

	_, err = s.Modifications.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": bson.M{
			"is_wishlist": false,
			"cost":        cost,
			"date":        date,
			"expense_id":  expenseID,
		}})
	return err
}

// DeleteModification removes a modification and, when installed, its linked
// expense record.
func (s *Store) DeleteModification(ctx context.Context, userID, vehicleID, modID string) error {
	objectID, err := primitive.ObjectIDFromHex(modID)
	if err != nil {
		return fmt.Errorf("invalid modification ID: %w", err)
	}

	var mod models.Modification
	err = s.Modifications.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID, "vehicle_id": vehicleID}).Decode(&mod)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("modification not found")
		}
		return err
	}

	if _, err := s.Modifications.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID}); err != nil {
		return err
	}

	if mod.ExpenseID != "" {
		return s.DeleteServiceRecord(ctx, userID, mod.ExpenseID)
	}
	return nil
}

// bookModificationExpense inserts the synthetic service record for an
// installed modification, lazily creating the reserved modification config
// the first time a vehicle needs one.
func (s *Store) bookModificationExpense(ctx context.Context, userID, vehicleID, name, category string, cost float64, date string) (string, error) {
	configID, err := s.ensureModificationConfig(ctx, userID, vehicleID)
	if err != nil {
		return "", err
	}

	vehicle, err := s.FindVehicleByID(ctx, userID, vehicleID)
	if err != nil {
		return "", err
	}

	return s.InsertServiceRecord(ctx, userID, models.ServiceRecord{
		VehicleID:           vehicleID,
		MaintenanceConfigID: configID,
		Date:                date,
		Mileage:             vehicle.CurrentMileage,
		Cost:                cost,
		ShopName:            "Mod: " + category,
		Notes:               name,
	})
}

func (s *Store) ensureModificationConfig(ctx context.Context, userID, vehicleID string) (string, error) {
	filter := bson.M{
		"user_id":    userID,
		"vehicle_id": vehicleID,
		"category":   models.CategoryModification,
	}

	var config models.MaintenanceConfig
	err := s.Configs.FindOne(ctx, filter).Decode(&config)
	if err == nil {
		return config.ID.Hex(), nil
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	result, err := s.Configs.InsertOne(ctx, models.MaintenanceConfig{
		UserID:              userID,
		VehicleID:           vehicleID,
		Category:            models.CategoryModification,
		IntervalKm:          0,
		IntervalMonths:      0,
		LastReplacedMileage: models.UnknownMileage,
		LastReplacedDate:    time.Now().Format(time.RFC3339),
		IsActive:            false,
	})
	if err != nil {
		return "", fmt.Errorf("create modification config: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func sortModsByDateDesc(mods []models.Modification) {
	sort.SliceStable(mods, func(i, j int) bool {
		ti, erri := time.Parse(time.RFC3339, mods[i].Date)
		tj, errj := time.Parse(time.RFC3339, mods[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})
}
