package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModificationCategory groups cosmetic/performance upgrades.
type ModificationCategory string

const (
	ModExterior    ModificationCategory = "exterior"
	ModInterior    ModificationCategory = "interior"
	ModPerformance ModificationCategory = "performance"
	ModWheels      ModificationCategory = "wheels"
	ModLighting    ModificationCategory = "lighting"
	ModElectronics ModificationCategory = "electronics"
	ModOther       ModificationCategory = "other"
)

// Modification is an upgrade, either installed or still on the wishlist.
// Installed modifications carry an ExpenseID pointing at the synthetic
// service record created for expense aggregation.
type Modification struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     string               `bson:"user_id" json:"user_id"`
	VehicleID  string               `bson:"vehicle_id" json:"vehicle_id"`
	Name       string               `bson:"name" json:"name"`
	Category   ModificationCategory `bson:"category" json:"category"`
	Cost       float64              `bson:"cost" json:"cost"`
	Date       string               `bson:"date" json:"date"` // RFC 3339
	ExpenseID  string               `bson:"expense_id,omitempty" json:"expense_id,omitempty"`
	IsWishlist bool                 `bson:"is_wishlist" json:"is_wishlist"`
}
