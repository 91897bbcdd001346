package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRecord is one logged service event. Records are the source the owning
// config's last-replaced fields are recomputed from.
type ServiceRecord struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              string             `bson:"user_id" json:"user_id"`
	VehicleID           string             `bson:"vehicle_id" json:"vehicle_id"`
	MaintenanceConfigID string             `bson:"maintenance_config_id" json:"maintenance_config_id"`
	Date                string             `bson:"date" json:"date"` // RFC 3339
	Mileage             int                `bson:"mileage" json:"mileage"`
	Cost                float64            `bson:"cost" json:"cost"`
	ShopName            string             `bson:"shop_name" json:"shop_name"`
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}
