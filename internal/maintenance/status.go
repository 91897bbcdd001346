// Package maintenance implements the status and health-scoring engine.
// All functions are pure: evaluation time is an explicit parameter and there
// is no shared state, so they are safe for concurrent use.
package maintenance

import (
	"encoding/json"
	"math"
	"time"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/models"
)

// Values emitted on the wire for dimensions an item does not track, kept for
// compatibility with existing clients.
const (
	KmNotApplicable   = 999999
	DaysNotApplicable = 9999
)

// Warning thresholds: an item enters WARNING within 8% of its limit, but
// never closer than 1000 km / 30 days.
const (
	warningFraction = 0.08
	minWarningKm    = 1000
	minWarningDays  = 30
)

// expirationWindowDays is the reference window for the visual progress bar of
// expiration-based items.
const expirationWindowDays = 365

// Remaining is a remaining-usage value for one dimension. Tracked is false
// when the item does not track that dimension at all.
type Remaining struct {
	Value   int
	Tracked bool
}

// ValueOr returns the remaining value, or fallback for untracked dimensions.
func (r Remaining) ValueOr(fallback int) int {
	if r.Tracked {
		return r.Value
	}
	return fallback
}

// Result is the evaluated state of one maintenance item.
//
// Progress is a 0-100+ value for progress bars; it is deliberately not
// clamped above 100 (callers clamp for display) and is not used to derive
// Status.
type Result struct {
	Status        models.MaintenanceStatus
	KmRemaining   Remaining
	DaysRemaining Remaining
	Progress      float64
}

// MarshalJSON encodes untracked dimensions as the historical sentinel values.
func (r Result) MarshalJSON() ([]byte, error) {
	km := r.KmRemaining.ValueOr(KmNotApplicable)
	days := r.DaysRemaining.ValueOr(DaysNotApplicable)
	return json.Marshal(struct {
		Status        models.MaintenanceStatus `json:"status"`
		KmRemaining   int                      `json:"km_remaining"`
		DaysRemaining int                      `json:"days_remaining"`
		Progress      float64                  `json:"progress"`
	}{r.Status, km, days, r.Progress})
}

// Evaluate determines the current status of one maintenance item.
//
// Items with unknown history short-circuit to REVIEW_NEEDED before anything
// else. Expiration-based items (legal section) compare their stored expiry
// date against now; usage-based items compare elapsed km and/or elapsed days
// against their intervals, skipping any dimension whose interval is zero.
//
// A stored date that fails to parse is treated exactly like unknown history:
// the item needs review, never an error or a panic.
func Evaluate(vehicle models.Vehicle, config models.MaintenanceConfig, cat *catalog.Catalog, now time.Time) Result {
	if !config.HasKnownHistory() {
		return reviewNeeded()
	}

	recordDate, err := time.Parse(time.RFC3339, config.LastReplacedDate)
	if err != nil {
		return reviewNeeded()
	}

	// Normalize to start of day so time-of-day never shifts a day count.
	today := startOfDay(now)
	record := startOfDay(recordDate.In(now.Location()))

	if cat.IsExpirationBased(config.Category) {
		return evaluateExpiration(today, record)
	}
	return evaluateUsage(vehicle, config, today, record)
}

// evaluateExpiration handles legal/documentation items: the stored date is
// the target expiry, km is irrelevant.
func evaluateExpiration(today, expiry time.Time) Result {
	days := daysBetween(today, expiry)

	status := models.StatusOK
	if days < 0 {
		status = models.StatusOverdue
	} else if days <= minWarningDays {
		status = models.StatusWarning
	}

	// Visual only: map remaining days against a one-year window, more urgent
	// means a fuller bar.
	clampedDays := math.Max(0, float64(days))
	progress := (expirationWindowDays - clampedDays) / expirationWindowDays * 100
	progress = math.Max(0, math.Min(100, progress))

	return Result{
		Status:        status,
		KmRemaining:   Remaining{},
		DaysRemaining: Remaining{Value: days, Tracked: true},
		Progress:      progress,
	}
}

// evaluateUsage handles mechanical/service items: the stored date is the last
// service, and usage since then is compared against the configured intervals.
func evaluateUsage(vehicle models.Vehicle, config models.MaintenanceConfig, today, lastService time.Time) Result {
	// Clamp guards against odometer rollback or bad data entry.
	kmTraveled := vehicle.CurrentMileage - config.LastReplacedMileage
	if kmTraveled < 0 {
		kmTraveled = 0
	}
	daysElapsed := daysBetween(lastService, today)
	if daysElapsed < 0 {
		daysElapsed = 0
	}

	kmRemaining := Remaining{}
	daysRemaining := Remaining{}
	var kmProgress, timeProgress float64
	var kmOverdue, kmWarning, timeOverdue, timeWarning bool

	if config.IntervalKm > 0 {
		remaining := config.IntervalKm - kmTraveled
		kmRemaining = Remaining{Value: remaining, Tracked: true}
		kmProgress = float64(kmTraveled) / float64(config.IntervalKm)

		threshold := math.Max(minWarningKm, float64(config.IntervalKm)*warningFraction)
		if remaining < 0 {
			kmOverdue = true
		} else if float64(remaining) <= threshold {
			kmWarning = true
		}
	}

	if config.IntervalMonths > 0 {
		daysLimit := config.IntervalMonths * 30 // approximation, not calendar-accurate
		remaining := daysLimit - daysElapsed
		daysRemaining = Remaining{Value: remaining, Tracked: true}
		timeProgress = float64(daysElapsed) / float64(daysLimit)

		threshold := math.Max(minWarningDays, float64(daysLimit)*warningFraction)
		if remaining < 0 {
			timeOverdue = true
		} else if float64(remaining) <= threshold {
			timeWarning = true
		}
	}

	status := models.StatusOK
	switch {
	case kmOverdue || timeOverdue:
		status = models.StatusOverdue
	case kmWarning || timeWarning:
		status = models.StatusWarning
	}

	return Result{
		Status:        status,
		KmRemaining:   kmRemaining,
		DaysRemaining: daysRemaining,
		Progress:      math.Max(kmProgress, timeProgress) * 100,
	}
}

func reviewNeeded() Result {
	return Result{
		Status:        models.StatusReviewNeeded,
		KmRemaining:   Remaining{Value: 0, Tracked: true},
		DaysRemaining: Remaining{Value: 0, Tracked: true},
		Progress:      0,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns b-a in whole days. Both arguments are expected to be
// start-of-day values; rounding absorbs DST offsets.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
