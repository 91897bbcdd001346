package catalog

import (
	"fmt"

	"github.com/alvarots/checkauto/internal/models"
)

// Section groups maintenance categories in the UI and decides scheduling
// semantics: items in the legal section are expiration-based (the stored date
// is a future expiry), everything else is usage-based (the stored date is the
// last service).
type Section string

const (
	SectionLegal        Section = "legal"
	SectionEngine       Section = "engine"
	SectionSafety       Section = "safety"
	SectionVisibility   Section = "visibility"
	SectionTransmission Section = "transmission"
	SectionElectrical   Section = "electrical"
	SectionOther        Section = "other"
)

// Definition is the static metadata for one maintenance category.
type Definition struct {
	Category       models.MaintenanceCategory
	IntervalKm     int
	IntervalMonths int
	Section        Section
}

// Limits bounds a user-customized km interval.
type Limits struct {
	Min  int
	Max  int
	Step int
}

// DefaultLimits is the fallback for categories without a specific entry.
var DefaultLimits = Limits{Min: 0, Max: 200000, Step: 5000}

// Catalog is the immutable category table. Construct with Default (or New for
// tests) and inject; never mutate after construction.
type Catalog struct {
	defs       []Definition
	byCategory map[models.MaintenanceCategory]Definition
	limits     map[models.MaintenanceCategory]Limits
}

// New builds a catalog from explicit definitions and limits. Intended for
// tests that need a reduced or altered table.
func New(defs []Definition, limits map[models.MaintenanceCategory]Limits) *Catalog {
	byCategory := make(map[models.MaintenanceCategory]Definition, len(defs))
	for _, d := range defs {
		byCategory[d.Category] = d
	}
	l := make(map[models.MaintenanceCategory]Limits, len(limits))
	for k, v := range limits {
		l[k] = v
	}
	return &Catalog{defs: defs, byCategory: byCategory, limits: l}
}

// Default returns the standard catalog.
func Default() *Catalog {
	return New(defaultDefinitions, defaultLimits)
}

// Definitions returns every catalog entry in display order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Lookup returns the definition for a category.
func (c *Catalog) Lookup(category models.MaintenanceCategory) (Definition, bool) {
	d, ok := c.byCategory[category]
	return d, ok
}

// IsExpirationBased reports whether the category's stored date is a future
// expiry rather than a past service date. Unknown categories are treated as
// usage-based.
func (c *Catalog) IsExpirationBased(category models.MaintenanceCategory) bool {
	d, ok := c.byCategory[category]
	return ok && d.Section == SectionLegal
}

// LimitsFor returns the interval bounds for a category, falling back to
// DefaultLimits when no specific entry exists.
func (c *Catalog) LimitsFor(category models.MaintenanceCategory) Limits {
	if l, ok := c.limits[category]; ok {
		return l
	}
	return DefaultLimits
}

// ValidateIntervalKm checks a user-edited km interval against the category's
// safety bounds. A zero interval is always allowed (it disables the km
// dimension).
func (c *Catalog) ValidateIntervalKm(category models.MaintenanceCategory, km int) error {
	if km == 0 {
		return nil
	}
	l := c.LimitsFor(category)
	if km < l.Min || km > l.Max {
		return fmt.Errorf("interval %d km for %s outside allowed range [%d, %d]", km, category, l.Min, l.Max)
	}
	return nil
}

var defaultDefinitions = []Definition{
	// Legal & documentation
	{Category: models.CategoryInsurance, IntervalKm: 0, IntervalMonths: 12, Section: SectionLegal},
	{Category: models.CategoryRoadTax, IntervalKm: 0, IntervalMonths: 12, Section: SectionLegal},

	// Engine
	{Category: models.CategoryEngineOil, IntervalKm: 15000, IntervalMonths: 12, Section: SectionEngine},
	{Category: models.CategoryOilFilter, IntervalKm: 15000, IntervalMonths: 12, Section: SectionEngine},
	{Category: models.CategoryAirFilter, IntervalKm: 30000, IntervalMonths: 24, Section: SectionEngine},
	{Category: models.CategoryFuelFilter, IntervalKm: 60000, IntervalMonths: 48, Section: SectionEngine},
	{Category: models.CategorySparkPlugs, IntervalKm: 60000, IntervalMonths: 48, Section: SectionEngine},
	{Category: models.CategoryGlowPlugs, IntervalKm: 100000, IntervalMonths: 96, Section: SectionEngine},
	{Category: models.CategoryTimingBelt, IntervalKm: 120000, IntervalMonths: 84, Section: SectionEngine},
	{Category: models.CategoryAccessoryBelt, IntervalKm: 100000, IntervalMonths: 84, Section: SectionEngine},
	{Category: models.CategoryCoolant, IntervalKm: 60000, IntervalMonths: 60, Section: SectionEngine},
	{Category: models.CategoryDPFFilter, IntervalKm: 150000, IntervalMonths: 0, Section: SectionEngine},

	// Safety & braking
	{Category: models.CategoryBrakePads, IntervalKm: 40000, IntervalMonths: 36, Section: SectionSafety},
	{Category: models.CategoryBrakeDiscs, IntervalKm: 80000, IntervalMonths: 0, Section: SectionSafety},
	{Category: models.CategoryBrakeFluid, IntervalKm: 0, IntervalMonths: 24, Section: SectionSafety},
	{Category: models.CategoryTires, IntervalKm: 45000, IntervalMonths: 60, Section: SectionSafety},
	{Category: models.CategoryShockAbsorbers, IntervalKm: 100000, IntervalMonths: 0, Section: SectionSafety},

	// Visibility & comfort
	{Category: models.CategoryCabinFilter, IntervalKm: 15000, IntervalMonths: 12, Section: SectionVisibility},
	{Category: models.CategoryWipers, IntervalKm: 0, IntervalMonths: 24, Section: SectionVisibility},
	{Category: models.CategoryWasherFluid, IntervalKm: 0, IntervalMonths: 6, Section: SectionVisibility},
	{Category: models.CategoryBulbs, IntervalKm: 0, IntervalMonths: 36, Section: SectionVisibility},

	// Transmission & steering
	{Category: models.CategoryGearboxOil, IntervalKm: 100000, IntervalMonths: 120, Section: SectionTransmission},
	{Category: models.CategorySteeringFluid, IntervalKm: 80000, IntervalMonths: 96, Section: SectionTransmission},
	{Category: models.CategoryClutch, IntervalKm: 150000, IntervalMonths: 0, Section: SectionTransmission},

	// Electrical
	{Category: models.CategoryBattery, IntervalKm: 0, IntervalMonths: 48, Section: SectionElectrical},
	{Category: models.CategoryKeyBattery, IntervalKm: 0, IntervalMonths: 24, Section: SectionElectrical},

	// Other
	{Category: models.CategoryInspection, IntervalKm: 0, IntervalMonths: 12, Section: SectionLegal},
	{Category: models.CategoryACGas, IntervalKm: 0, IntervalMonths: 48, Section: SectionOther},
	{Category: models.CategoryAdBlue, IntervalKm: 15000, IntervalMonths: 0, Section: SectionOther},

	// Reserved, never scheduled
	{Category: models.CategoryModification, IntervalKm: 0, IntervalMonths: 0, Section: SectionOther},
}

var defaultLimits = map[models.MaintenanceCategory]Limits{
	// Engine
	models.CategoryEngineOil:  {Min: 5000, Max: 35000, Step: 1000},
	models.CategoryOilFilter:  {Min: 5000, Max: 35000, Step: 1000},
	models.CategoryAirFilter:  {Min: 10000, Max: 60000, Step: 5000},
	models.CategoryFuelFilter: {Min: 20000, Max: 90000, Step: 5000},
	models.CategoryTimingBelt: {Min: 60000, Max: 240000, Step: 10000},
	models.CategoryCoolant:    {Min: 30000, Max: 150000, Step: 10000},

	// Safety
	models.CategoryTires:      {Min: 10000, Max: 100000, Step: 5000},
	models.CategoryBrakePads:  {Min: 10000, Max: 100000, Step: 5000},
	models.CategoryBrakeFluid: {Min: 0, Max: 100000, Step: 5000},
}
