package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceStatus is the evaluated state of a single maintenance item.
type MaintenanceStatus string

const (
	StatusOK           MaintenanceStatus = "OK"
	StatusWarning      MaintenanceStatus = "WARNING"       // approaching the limit
	StatusOverdue      MaintenanceStatus = "OVERDUE"       // limit exceeded
	StatusReviewNeeded MaintenanceStatus = "REVIEW_NEEDED" // unknown history
)

// MaintenanceCategory identifies one maintainable item on a vehicle.
type MaintenanceCategory string

const (
	// Legal & documentation
	CategoryInsurance  MaintenanceCategory = "insurance"
	CategoryRoadTax    MaintenanceCategory = "road_tax"
	CategoryInspection MaintenanceCategory = "inspection"

	// Engine
	CategoryEngineOil     MaintenanceCategory = "engine_oil"
	CategoryOilFilter     MaintenanceCategory = "oil_filter"
	CategoryAirFilter     MaintenanceCategory = "air_filter"
	CategoryFuelFilter    MaintenanceCategory = "fuel_filter"
	CategorySparkPlugs    MaintenanceCategory = "spark_plugs"
	CategoryGlowPlugs     MaintenanceCategory = "glow_plugs"
	CategoryTimingBelt    MaintenanceCategory = "timing_belt"
	CategoryAccessoryBelt MaintenanceCategory = "accessory_belt"
	CategoryCoolant       MaintenanceCategory = "coolant"
	CategoryDPFFilter     MaintenanceCategory = "dpf_filter"

	// Safety & braking
	CategoryBrakePads      MaintenanceCategory = "brake_pads"
	CategoryBrakeDiscs     MaintenanceCategory = "brake_discs"
	CategoryBrakeFluid     MaintenanceCategory = "brake_fluid"
	CategoryTires          MaintenanceCategory = "tires"
	CategoryShockAbsorbers MaintenanceCategory = "shock_absorbers"

	// Visibility & comfort
	CategoryCabinFilter MaintenanceCategory = "cabin_filter"
	CategoryWipers      MaintenanceCategory = "wipers"
	CategoryWasherFluid MaintenanceCategory = "washer_fluid"
	CategoryBulbs       MaintenanceCategory = "bulbs"

	// Transmission & steering
	CategoryGearboxOil    MaintenanceCategory = "gearbox_oil"
	CategorySteeringFluid MaintenanceCategory = "steering_fluid"
	CategoryClutch        MaintenanceCategory = "clutch"

	// Electrical
	CategoryBattery    MaintenanceCategory = "battery"
	CategoryKeyBattery MaintenanceCategory = "key_battery"

	// Other
	CategoryACGas  MaintenanceCategory = "ac_gas"
	CategoryAdBlue MaintenanceCategory = "adblue"

	// Reserved category used to book modification expenses into history.
	// Excluded from status evaluation and scoring.
	CategoryModification MaintenanceCategory = "modification"
)

// UnknownMileage is the stored sentinel for "never recorded / history unknown".
// It is part of the document format; code should go through HasKnownHistory
// instead of comparing against it.
const UnknownMileage = -1

// MaintenanceConfig holds the schedule for one (vehicle, category) pair.
//
// LastReplacedDate carries two meanings depending on the category: for
// expiration-based items (legal section) it is the future date the document
// or coverage expires; for everything else it is the past date of the last
// service. The catalog decides which reading applies.
type MaintenanceConfig struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID              string              `bson:"user_id" json:"user_id"`
	VehicleID           string              `bson:"vehicle_id" json:"vehicle_id"`
	Category            MaintenanceCategory `bson:"category" json:"category"`
	IntervalKm          int                 `bson:"interval_km" json:"interval_km"`         // 0 = not usage-tracked
	IntervalMonths      int                 `bson:"interval_months" json:"interval_months"` // 0 = not time-tracked
	LastReplacedMileage int                 `bson:"last_replaced_mileage" json:"last_replaced_mileage"`
	LastReplacedDate    string              `bson:"last_replaced_date" json:"last_replaced_date"` // RFC 3339
	IsActive            bool                `bson:"is_active" json:"is_active"`
}

// HasKnownHistory reports whether the item has a recorded service history.
func (c *MaintenanceConfig) HasKnownHistory() bool {
	return c.LastReplacedMileage != UnknownMileage
}
