// Package quantity derives every physical quantity and cost line of an
// estimate from the project geometry and the selected catalog rows.
//
// Compute is a pure function: it performs no I/O and never fails. Exceeded
// engineering thresholds are reported through the advisory report on the
// result.
package quantity

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goestimate/internal/advisory"
	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/loads"
	"github.com/alexiusacademia/goestimate/internal/project"
	"github.com/alexiusacademia/goestimate/internal/schedule"
)

// Self-weight assumptions for the bearing check
const (
	WallUnitWeight  = 20.0 // kN/m³ of masonry
	FloorDeadLoad   = 12.0 // kN/m² per floor
	ColumnsPerFloor = 4
)

// Concrete mix per m³ (1:2:4 nominal)
const (
	CementBagsPerCum  = 6.5  // bags
	SandPerCum        = 0.44 // m³
	AggregatePerCum   = 0.88 // m³
	SteelDensity      = 7850 // kg/m³
	SeismicSteelBasis = 0.1  // zone factor that doubles RCC steel
)

// Reinforcement as a percentage of concrete volume
const (
	RCCSteelPercent         = 1.5
	LoadBearingSteelPercent = 0.8
	SteelFramedSteelPercent = 3.0
)

// Haulage
const (
	TransportRate    = 5.0 // currency per km per tonne
	BrickMass        = 3.0 // kg per brick
	SandDensity      = 1.6 // t/m³
	AggregateDensity = 1.5 // t/m³
)

// Productivity in days per unit of driving quantity, per floor
const (
	ExcavationDaysPerCum  = 0.5
	FoundationDaysPerCum  = 0.3
	StructureDaysPerCum   = 0.4
	BrickworkDaysPerSqm   = 0.1
	RoofingDaysPerSqm     = 0.2
	FinishWallDaysPerSqm  = 0.15
	FinishFloorDaysPerSqm = 0.1
	ConcreteDaysPerCum    = 0.5
)

// Materials is the catalog row selected for each material category.
type Materials struct {
	Brick      catalog.Brick      `json:"brick"`
	Cement     catalog.Cement     `json:"cement"`
	Steel      catalog.Steel      `json:"steel"`
	Roofing    catalog.Roofing    `json:"roofing"`
	Door       catalog.Door       `json:"door"`
	Window     catalog.Window     `json:"window"`
	Insulation catalog.Insulation `json:"insulation"`
}

// Inputs is everything Compute needs, already resolved against the catalog.
type Inputs struct {
	Project    project.Project
	Materials  Materials
	Climate    catalog.ClimateZone
	Seismic    catalog.SeismicZone
	LaborRates []catalog.LaborRate
}

// Carbon is embodied carbon per material in kgCO2e.
type Carbon struct {
	Bricks  float64 `json:"bricks"`
	Cement  float64 `json:"cement"`
	Steel   float64 `json:"steel"`
	Roofing float64 `json:"roofing"`
	Total   float64 `json:"total"`
}

// Calculations are the derived quantities and cost lines.
type Calculations struct {
	// Geometry
	FloorArea      float64 `json:"floor_area"`       // m², one floor
	TotalFloorArea float64 `json:"total_floor_area"` // m², all floors
	Perimeter      float64 `json:"perimeter"`        // m
	WallArea       float64 `json:"wall_area"`        // m², all floors
	WallVolume     float64 `json:"wall_volume"`      // m³

	// Bearing check
	BuildingWeight     float64 `json:"building_weight"`      // kN
	ColumnLoad         float64 `json:"column_load"`          // kN per column
	SoilPressure       float64 `json:"soil_pressure"`        // kN/m², with the input footing width
	FootingWidth       float64 `json:"footing_width"`        // m, after correction
	DesignSoilPressure float64 `json:"design_soil_pressure"` // kN/m², with FootingWidth
	FootingWidened     bool    `json:"footing_widened"`

	// Concrete, m³
	FootingVolume float64 `json:"footing_volume"`
	ColumnVolume  float64 `json:"column_volume"`
	BeamVolume    float64 `json:"beam_volume"`
	SlabVolume    float64 `json:"slab_volume"`
	TotalConcrete float64 `json:"total_concrete"`

	// Materials
	Bricks       float64 `json:"bricks"`
	CementBags   float64 `json:"cement_bags"`
	Sand         float64 `json:"sand"`      // m³
	Aggregate    float64 `json:"aggregate"` // m³
	SteelPercent float64 `json:"steel_percent"`
	SteelVolume  float64 `json:"steel_volume"` // m³
	SteelKg      float64 `json:"steel_kg"`
	RoofingUnits int     `json:"roofing_units"`

	// Environmental loads
	WindLoad     float64 `json:"wind_load"`     // kN/m², negative is uplift
	SeismicShear float64 `json:"seismic_shear"` // kN

	// Costs
	BrickCost      float64     `json:"brick_cost"`
	CementCost     float64     `json:"cement_cost"`
	SteelCost      float64     `json:"steel_cost"`
	RoofingCost    float64     `json:"roofing_cost"`
	DoorCost       float64     `json:"door_cost"`
	WindowCost     float64     `json:"window_cost"`
	InsulationCost float64     `json:"insulation_cost"`
	Labor          []LaborLine `json:"labor"`
	LaborCost      float64     `json:"labor_cost"`
	TransportMass  float64     `json:"transport_mass"` // t
	TransportCost  float64     `json:"transport_cost"`
	TotalCost      float64     `json:"total_cost"`

	ConstructionDays float64 `json:"construction_days"`
	EmbodiedCarbon   Carbon  `json:"embodied_carbon"`
}

// Summary is the headline estimate. Values are unrounded.
type Summary struct {
	CementBags       float64 `json:"cement_bags"`
	SteelTons        float64 `json:"steel_tons"`
	Bricks           float64 `json:"bricks"`
	Sand             float64 `json:"sand"`      // m³
	Aggregate        float64 `json:"aggregate"` // m³
	RoofingUnits     int     `json:"roofing_units"`
	Doors            int     `json:"doors"`
	Windows          int     `json:"windows"`
	ConstructionDays float64 `json:"construction_days"`
	WindLoad         float64 `json:"wind_load"`     // kN/m²
	SeismicShear     float64 `json:"seismic_shear"` // kN
	SoilPressure     float64 `json:"soil_pressure"` // kN/m²
	EmbodiedCarbon   float64 `json:"embodied_carbon"`
	TotalCost        float64 `json:"total_cost"`
}

// Result is the output of Compute.
type Result struct {
	Calculations Calculations      `json:"calculations"`
	Summary      Summary           `json:"summary"`
	Timeline     schedule.Timeline `json:"timeline"`
	Advisory     *advisory.Report  `json:"advisory"`
}

// Compute runs the quantity and cost take-off. Each step may use the
// values of the steps before it.
func Compute(in Inputs) Result {
	p := in.Project
	d := p.Dimensions
	m := in.Materials
	floors := float64(d.Floors)
	report := advisory.NewReport()

	var c Calculations

	// Geometry
	c.FloorArea = d.Length * d.Width
	c.TotalFloorArea = c.FloorArea * floors
	c.Perimeter = 2 * (d.Length + d.Width)
	c.WallArea = c.Perimeter * d.Height * floors
	c.WallVolume = c.WallArea * d.WallThickness

	// Bearing check with a single widening pass
	weightPerFloor := c.WallVolume*WallUnitWeight + c.FloorArea*FloorDeadLoad
	c.BuildingWeight = weightPerFloor * floors
	c.ColumnLoad = c.BuildingWeight / ColumnsPerFloor
	c.FootingWidth = d.FootingWidth
	c.SoilPressure = c.BuildingWeight / (c.Perimeter * d.FootingWidth)
	c.DesignSoilPressure = c.SoilPressure
	capacity := p.Loads.SoilCapacity
	if c.SoilPressure > capacity {
		c.FootingWidth = c.BuildingWeight / (capacity * c.Perimeter)
		c.DesignSoilPressure = c.BuildingWeight / (c.Perimeter * c.FootingWidth)
		c.FootingWidened = true
		report.AddWarning(advisory.Warning{
			Code: advisory.CodeSoilPressure,
			Message: fmt.Sprintf("soil pressure %.2f kN/m² exceeds bearing capacity %.2f kN/m²; footing widened from %.2f m to %.2f m",
				c.SoilPressure, capacity, d.FootingWidth, c.FootingWidth),
			Actual: c.SoilPressure,
			Limit:  capacity,
		})
	}

	// Concrete
	c.FootingVolume = c.Perimeter * d.FootingDepth * c.FootingWidth
	c.ColumnVolume = d.ColumnSize.Area() * d.Height * ColumnsPerFloor * floors
	c.BeamVolume = c.Perimeter * d.BeamSize.Area() * floors
	c.SlabVolume = c.FloorArea * d.SlabThickness * floors
	c.TotalConcrete = c.FootingVolume + c.ColumnVolume + c.BeamVolume + c.SlabVolume

	// Masonry and concrete constituents
	c.Bricks = c.WallArea * m.Brick.PerSqm * wastage(m.Brick.WastagePercent)
	c.CementBags = c.TotalConcrete * CementBagsPerCum * wastage(m.Cement.WastagePercent)
	c.Sand = c.TotalConcrete * SandPerCum
	c.Aggregate = c.TotalConcrete * AggregatePerCum

	// Reinforcement
	c.SteelPercent = SteelPercent(p.Construction.Method, in.Seismic.ZoneFactor)
	c.SteelVolume = c.TotalConcrete * c.SteelPercent / 100
	c.SteelKg = c.SteelVolume * SteelDensity * wastage(m.Steel.WastagePercent)

	// Environmental loads
	c.SeismicShear = loads.SeismicBaseShear(
		in.Seismic.ZoneFactor,
		in.Seismic.ImportanceFactor,
		in.Seismic.ResponseReductionFactor,
		c.BuildingWeight/loads.Gravity,
	)
	c.WindLoad = loads.WindLoad(p.Loads.WindSpeed, p.Loads.RoofAngle)

	// Roofing
	if m.Roofing.CoveragePerUnit > 0 {
		c.RoofingUnits = int(math.Ceil(c.FloorArea / m.Roofing.CoveragePerUnit * wastage(m.Roofing.WastagePercent)))
	}
	if p.Loads.WindSpeed > m.Roofing.WindRating {
		report.AddWarning(advisory.Warning{
			Code: advisory.CodeWindRating,
			Message: fmt.Sprintf("design wind speed %.0f km/h exceeds %s rating of %.0f km/h",
				p.Loads.WindSpeed, m.Roofing.Name, m.Roofing.WindRating),
			Actual: p.Loads.WindSpeed,
			Limit:  m.Roofing.WindRating,
		})
	}

	// Material costs
	c.BrickCost = c.Bricks * m.Brick.PricePerUnit
	c.CementCost = c.CementBags * m.Cement.PricePerBag
	c.SteelCost = c.SteelKg * m.Steel.PricePerKg
	c.RoofingCost = float64(c.RoofingUnits) * m.Roofing.PricePerUnit
	c.DoorCost = float64(p.Construction.Doors) * m.Door.Price
	c.WindowCost = float64(p.Construction.Windows) * m.Window.Price
	c.InsulationCost = c.WallArea * m.Insulation.PricePerSqm

	// Labor
	c.Labor = laborLines(in.LaborRates, c, d.Floors)
	for _, l := range c.Labor {
		c.LaborCost += l.Cost
	}

	// Transport
	temp := in.Climate.TemperatureFactor
	c.TransportMass = c.CementBags*m.Cement.BagWeight/1000 +
		c.SteelKg/1000 +
		c.Bricks*BrickMass/1000 +
		c.Sand*SandDensity +
		c.Aggregate*AggregateDensity
	c.TransportCost = c.TransportMass * TransportRate * p.Site.TransportDistance * temp

	// Programme
	timeline := schedule.Timeline{
		Excavation: c.FootingVolume * ExcavationDaysPerCum * floors * temp,
		Foundation: c.FootingVolume * FoundationDaysPerCum * floors * temp,
		Structure:  (c.ColumnVolume + c.BeamVolume) * StructureDaysPerCum * floors * temp,
		Brickwork:  c.WallArea * BrickworkDaysPerSqm * floors * temp,
		Roofing:    c.FloorArea * RoofingDaysPerSqm * floors * temp,
		Finishing:  (c.WallArea*FinishWallDaysPerSqm + c.FloorArea*FinishFloorDaysPerSqm) * floors * temp,
	}
	c.ConstructionDays = (c.FootingVolume*ExcavationDaysPerCum +
		c.WallArea*BrickworkDaysPerSqm +
		c.TotalConcrete*ConcreteDaysPerCum +
		c.FloorArea*RoofingDaysPerSqm) * floors * temp

	// Embodied carbon
	c.EmbodiedCarbon = Carbon{
		Bricks:  c.Bricks * m.Brick.EmbodiedCarbon,
		Cement:  c.CementBags * m.Cement.BagWeight * m.Cement.EmbodiedCarbon,
		Steel:   c.SteelKg * m.Steel.EmbodiedCarbon,
		Roofing: c.FloorArea * m.Roofing.EmbodiedCarbon,
	}
	c.EmbodiedCarbon.Total = c.EmbodiedCarbon.Bricks + c.EmbodiedCarbon.Cement +
		c.EmbodiedCarbon.Steel + c.EmbodiedCarbon.Roofing

	c.TotalCost = c.CementCost + c.SteelCost + c.BrickCost + c.RoofingCost +
		c.DoorCost + c.WindowCost + c.InsulationCost + c.LaborCost + c.TransportCost

	return Result{
		Calculations: c,
		Summary:      Summarize(c, p),
		Timeline:     timeline,
		Advisory:     report,
	}
}

// Summarize builds the headline estimate from the calculations.
func Summarize(c Calculations, p project.Project) Summary {
	return Summary{
		CementBags:       c.CementBags,
		SteelTons:        c.SteelKg / 1000,
		Bricks:           c.Bricks,
		Sand:             c.Sand,
		Aggregate:        c.Aggregate,
		RoofingUnits:     c.RoofingUnits,
		Doors:            p.Construction.Doors,
		Windows:          p.Construction.Windows,
		ConstructionDays: c.ConstructionDays,
		WindLoad:         c.WindLoad,
		SeismicShear:     c.SeismicShear,
		SoilPressure:     c.SoilPressure,
		EmbodiedCarbon:   c.EmbodiedCarbon.Total,
		TotalCost:        c.TotalCost,
	}
}

// SteelPercent returns reinforcement as a percentage of concrete volume.
// RCC frames are scaled up with the seismic zone factor.
func SteelPercent(method project.Method, zoneFactor float64) float64 {
	switch method {
	case project.MethodLoadBearing:
		return LoadBearingSteelPercent
	case project.MethodSteelFramed:
		return SteelFramedSteelPercent
	default:
		return RCCSteelPercent * (1 + zoneFactor/SeismicSteelBasis)
	}
}

func wastage(percent float64) float64 {
	return 1 + percent/100
}
