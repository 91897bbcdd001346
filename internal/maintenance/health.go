package maintenance

import (
	"time"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/models"
)

// Point values per evaluated status. The asymmetry is deliberate: penalties
// outweigh rewards so the score flags risk early. These constants are a
// user-visible contract, not tunables.
const (
	pointsOK           = 20
	pointsWarning      = 10
	pointsReviewNeeded = -10
	pointsOverdue      = -25

	maxPointsPerItem = 20
)

// TierLevel is the qualitative band a health score falls into.
type TierLevel string

const (
	TierExcellent TierLevel = "excellent" // >= 90
	TierGood      TierLevel = "good"      // >= 70
	TierModerate  TierLevel = "moderate"  // >= 40
	TierCritical  TierLevel = "critical"  // < 40
)

// Tier is display metadata for a health score.
type Tier struct {
	Level TierLevel `json:"level"`
	// ResponsibleDriver marks scores above 95 for the badge shown on the
	// dashboard. Display-only.
	ResponsibleDriver bool `json:"responsible_driver"`
}

// ActiveConfigs filters configs to the vehicle's active items, the set that
// participates in scoring.
func ActiveConfigs(vehicle models.Vehicle, configs []models.MaintenanceConfig) []models.MaintenanceConfig {
	vehicleID := vehicle.ID.Hex()
	var active []models.MaintenanceConfig
	for _, c := range configs {
		if c.VehicleID == vehicleID && c.IsActive {
			active = append(active, c)
		}
	}
	return active
}

// HealthScore reduces a vehicle's active maintenance items to a single 0-100
// percentage. A vehicle with no active items scores 100: a new or
// unconfigured car should not greet the user with an alarming graph.
func HealthScore(vehicle models.Vehicle, configs []models.MaintenanceConfig, cat *catalog.Catalog, now time.Time) float64 {
	active := ActiveConfigs(vehicle, configs)
	if len(active) == 0 {
		return 100
	}

	total := 0
	for _, config := range active {
		switch Evaluate(vehicle, config, cat, now).Status {
		case models.StatusOK:
			total += pointsOK
		case models.StatusWarning:
			total += pointsWarning
		case models.StatusReviewNeeded:
			total += pointsReviewNeeded
		case models.StatusOverdue:
			total += pointsOverdue
		}
	}

	maxPotential := len(active) * maxPointsPerItem
	percentage := float64(total) / float64(maxPotential) * 100

	// Can go negative when many items are overdue.
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}

// ClassifyTier maps a health score to its qualitative tier. Boundaries are
// inclusive on the lower bound of each band.
func ClassifyTier(score float64) Tier {
	t := Tier{ResponsibleDriver: score > 95}
	switch {
	case score >= 90:
		t.Level = TierExcellent
	case score >= 70:
		t.Level = TierGood
	case score >= 40:
		t.Level = TierModerate
	default:
		t.Level = TierCritical
	}
	return t
}
