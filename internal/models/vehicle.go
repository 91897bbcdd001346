package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle represents a tracked car in a user's garage.
type Vehicle struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"user_id"`
	Make           string             `bson:"make" json:"make"`
	Model          string             `bson:"model" json:"model"`
	Year           int                `bson:"year" json:"year"`
	Plate          string             `bson:"plate" json:"plate"`
	CurrentMileage int                `bson:"current_mileage" json:"current_mileage"` // in kilometers
	Image          string             `bson:"image,omitempty" json:"image,omitempty"` // Base64 data URL
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
