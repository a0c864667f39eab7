// Package catalog holds the read-only reference data the estimator prices
// against: materials, labor rates, climate and seismic zones and energy codes.
//
// Rows are served by a SQLite Repository built from an embedded, versioned
// dataset. The engine never talks to the database directly; it receives
// already-resolved rows through the Catalog interface.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) when a lookup has no matching row.
var ErrNotFound = errors.New("not found")

// ErrUnknownCategory is returned for a category name the catalog does not serve.
var ErrUnknownCategory = errors.New("unknown catalog category")

// UnresolvedError reports a project reference with no catalog row behind it.
type UnresolvedError struct {
	Category Category
	Name     string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q", e.Category, e.Name)
}

func (e *UnresolvedError) Unwrap() error {
	return ErrNotFound
}

// Category names a catalog table.
type Category string

const (
	CategoryBricks      Category = "bricks"
	CategoryCement      Category = "cement"
	CategorySteel       Category = "steel"
	CategoryRoofing     Category = "roofing"
	CategoryDoors       Category = "doors"
	CategoryWindows     Category = "windows"
	CategoryInsulation  Category = "insulation"
	CategoryLabor       Category = "labor"
	CategoryClimate     Category = "climate"
	CategorySeismic     Category = "seismic"
	CategoryEnergyCodes Category = "energy_codes"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryBricks, CategoryCement, CategorySteel, CategoryRoofing,
	CategoryDoors, CategoryWindows, CategoryInsulation, CategoryLabor,
	CategoryClimate, CategorySeismic, CategoryEnergyCodes,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Brick is a masonry unit.
type Brick struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	Size                string  `json:"size"`
	PerSqm              float64 `json:"per_sqm"`              // units per m² of wall
	PricePerUnit        float64 `json:"price_per_unit"`       // currency per unit
	WastagePercent      float64 `json:"wastage_percent"`      // %
	CompressiveStrength float64 `json:"compressive_strength"` // MPa
	ThermalConductivity float64 `json:"thermal_conductivity"` // W/mK
	WaterAbsorption     float64 `json:"water_absorption"`     // %
	LifecycleYears      int     `json:"lifecycle_years"`
	EmbodiedCarbon      float64 `json:"embodied_carbon"` // kgCO2e per unit
}

// Cement is a bagged binder.
type Cement struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	Grade               string  `json:"grade"`
	BagWeight           float64 `json:"bag_weight"`      // kg
	PricePerBag         float64 `json:"price_per_bag"`   // currency per bag
	WastagePercent      float64 `json:"wastage_percent"` // %
	SettingTime         int     `json:"setting_time"`    // minutes
	CompressiveStrength float64 `json:"compressive_strength"`
	LifecycleYears      int     `json:"lifecycle_years"`
	EmbodiedCarbon      float64 `json:"embodied_carbon"` // kgCO2e per kg
}

// Steel is a reinforcement rod grade at one diameter.
type Steel struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Diameter          int     `json:"diameter"`          // mm
	WeightPerMeter    float64 `json:"weight_per_meter"`  // kg/m
	PricePerKg        float64 `json:"price_per_kg"`      // currency per kg
	WastagePercent    float64 `json:"wastage_percent"`   // %
	YieldStrength     float64 `json:"yield_strength"`    // MPa
	UltimateStrength  float64 `json:"ultimate_strength"` // MPa
	ElongationPercent float64 `json:"elongation_percent"`
	LifecycleYears    int     `json:"lifecycle_years"`
	EmbodiedCarbon    float64 `json:"embodied_carbon"` // kgCO2e per kg
}

// Roofing is a roof covering.
type Roofing struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	CoveragePerUnit float64 `json:"coverage_per_unit"` // m² per unit
	PricePerUnit    float64 `json:"price_per_unit"`
	WastagePercent  float64 `json:"wastage_percent"` // %
	WindRating      float64 `json:"wind_rating"`     // km/h
	FireRating      string  `json:"fire_rating"`
	LifespanYears   int     `json:"lifespan_years"`
	UValue          float64 `json:"u_value"`         // W/m²K
	RValue          float64 `json:"r_value"`         // m²K/W
	EmbodiedCarbon  float64 `json:"embodied_carbon"` // kgCO2e per m²
}

// Door is a door leaf priced per piece.
type Door struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Material          string  `json:"material"`
	StandardSize      string  `json:"standard_size"`
	Price             float64 `json:"price"`
	ThermalInsulation float64 `json:"thermal_insulation"`
	SoundReduction    float64 `json:"sound_reduction"` // dB
	UValue            float64 `json:"u_value"`         // W/m²K
	LifecycleYears    int     `json:"lifecycle_years"`
}

// Window is a glazed unit priced per piece.
type Window struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Material           string  `json:"material"`
	StandardSize       string  `json:"standard_size"`
	Price              float64 `json:"price"`
	UValue             float64 `json:"u_value"` // W/m²K
	SolarHeatGainCoeff float64 `json:"solar_heat_gain_coeff"`
	LifecycleYears     int     `json:"lifecycle_years"`
}

// Insulation is a wall insulation product priced per m².
type Insulation struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	Thickness           float64 `json:"thickness"` // mm
	PricePerSqm         float64 `json:"price_per_sqm"`
	ThermalConductivity float64 `json:"thermal_conductivity"` // W/mK
	RValue              float64 `json:"r_value"`              // m²K/W
	LifecycleYears      int     `json:"lifecycle_years"`
}

// LaborRate is the cost of one trade per unit of its driving quantity.
type LaborRate struct {
	ID              int     `json:"id"`
	Activity        string  `json:"activity"`
	Rate            float64 `json:"rate"`
	Unit            string  `json:"unit"`
	ClimateFactor   float64 `json:"climate_factor"`
	SkillLevel      string  `json:"skill_level"`
	DurationPerUnit float64 `json:"duration_per_unit"` // days
}

// ClimateZone carries the multipliers applied for site climate.
type ClimateZone struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	TemperatureFactor float64 `json:"temperature_factor"`
	RainfallFactor    float64 `json:"rainfall_factor"`
	WindFactor        float64 `json:"wind_factor"`
	EnergyCode        string  `json:"energy_code"`
}

// SeismicZone carries the base-shear coefficients for a zone.
type SeismicZone struct {
	ID                      int     `json:"id"`
	Name                    string  `json:"name"`
	ZoneFactor              float64 `json:"zone_factor"`
	ImportanceFactor        float64 `json:"importance_factor"`
	ResponseReductionFactor float64 `json:"response_reduction_factor"`
}

// EnergyCode holds envelope compliance limits.
type EnergyCode struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	MaxUValueWalls  float64 `json:"max_u_value_walls"`
	MaxUValueRoof   float64 `json:"max_u_value_roof"`
	MaxUValueWindow float64 `json:"max_u_value_window"`
	MinRValueWalls  float64 `json:"min_r_value_walls"`
	MinRValueRoof   float64 `json:"min_r_value_roof"`
}

// Option is a catalog row reduced to what option listings and the
// alternative search compare: price and one performance attribute.
type Option struct {
	Category        Category `json:"category"`
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Detail          string   `json:"detail"`
	Price           float64  `json:"price"`
	Performance     float64  `json:"performance"`
	PerformanceUnit string   `json:"performance_unit"`
	LifecycleYears  int      `json:"lifecycle_years"`
	EmbodiedCarbon  float64  `json:"embodied_carbon"`
}

// Catalog is the lookup surface the estimator depends on.
type Catalog interface {
	Brick(ctx context.Context, name string) (Brick, error)
	Cement(ctx context.Context, name string) (Cement, error)
	// Steel returns the named grade at diameter mm, or the first row of
	// that grade when diameter is zero.
	Steel(ctx context.Context, name string, diameter int) (Steel, error)
	Roofing(ctx context.Context, name string) (Roofing, error)
	Door(ctx context.Context, name string) (Door, error)
	Window(ctx context.Context, name string) (Window, error)
	Insulation(ctx context.Context, name string) (Insulation, error)
	LaborRates(ctx context.Context) ([]LaborRate, error)
	ClimateZone(ctx context.Context, name string) (ClimateZone, error)
	SeismicZone(ctx context.Context, name string) (SeismicZone, error)
	EnergyCode(ctx context.Context, name string) (EnergyCode, error)

	// CheaperAlternatives returns rows priced strictly below price whose
	// performance attribute is at least minPerformance, cheapest first.
	CheaperAlternatives(ctx context.Context, category Category, price, minPerformance float64) ([]Option, error)
	// Options returns every row of a material category except excludeName.
	Options(ctx context.Context, category Category, excludeName string) ([]Option, error)
	// List returns the typed rows of any category.
	List(ctx context.Context, category Category) (any, error)
}
