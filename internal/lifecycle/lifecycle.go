// Package lifecycle projects the present value of material replacements over
// an analysis horizon.
package lifecycle

import (
	"math"

	"github.com/alexiusacademia/goestimate/internal/quantity"
)

// DefaultHorizonYears is the analysis period when none is configured.
const DefaultHorizonYears = 30

// MinDiscountRate is the floor applied to the real discount rate.
const MinDiscountRate = 0.01

// Component is one replaceable part of the building.
type Component struct {
	Name           string  `json:"name"`
	BaseCost       float64 `json:"base_cost"` // cost of one full replacement
	LifecycleYears int     `json:"lifecycle_years"`
}

// Line is the replacement projection for one component.
type Line struct {
	Component
	Replacements   int     `json:"replacements"`
	DiscountedCost float64 `json:"discounted_cost"`
}

// Result is the lifecycle cost over the horizon.
type Result struct {
	InitialCost   float64 `json:"initial_cost"`
	HorizonYears  int     `json:"horizon_years"`
	DiscountRate  float64 `json:"discount_rate"`
	Lines         []Line  `json:"lines"`
	ReplacementPV float64 `json:"replacement_pv"`
	TotalCost     float64 `json:"total_cost"`
}

// Components lists the replaceable parts of an estimate with the cost of
// replacing each one once.
func Components(c quantity.Calculations, s quantity.Summary, m quantity.Materials) []Component {
	return []Component{
		{"Bricks", s.Bricks * m.Brick.PricePerUnit, m.Brick.LifecycleYears},
		{"Cement", s.CementBags * m.Cement.PricePerBag, m.Cement.LifecycleYears},
		{"Steel", s.SteelTons * 1000 * m.Steel.PricePerKg, m.Steel.LifecycleYears},
		{"Roofing", float64(s.RoofingUnits) * m.Roofing.PricePerUnit, m.Roofing.LifespanYears},
		{"Doors", float64(s.Doors) * m.Door.Price, m.Door.LifecycleYears},
		{"Windows", float64(s.Windows) * m.Window.Price, m.Window.LifecycleYears},
		{"Insulation", c.WallArea * m.Insulation.PricePerSqm, m.Insulation.LifecycleYears},
	}
}

// DiscountRate returns the real rate interest - inflation, floored at
// MinDiscountRate.
func DiscountRate(interestRate, inflationRate float64) float64 {
	r := interestRate - inflationRate
	if r < MinDiscountRate {
		return MinDiscountRate
	}
	return r
}

// Replacements returns how many times a component with the given life is
// replaced within the horizon. A non-positive life is never replaced.
func Replacements(horizonYears, lifecycleYears int) int {
	if lifecycleYears <= 0 || horizonYears <= 0 {
		return 0
	}
	return horizonYears / lifecycleYears
}

// PresentValue discounts each replacement i = 1..n, occurring in year
// i·life, back to today.
func PresentValue(baseCost float64, lifecycleYears, replacements int, rate float64) float64 {
	var pv float64
	for i := 1; i <= replacements; i++ {
		pv += baseCost / math.Pow(1+rate, float64(i*lifecycleYears))
	}
	return pv
}

// Compute projects replacement costs for components over horizonYears. A
// non-positive horizon uses DefaultHorizonYears.
func Compute(initialCost float64, components []Component, interestRate, inflationRate float64, horizonYears int) Result {
	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}
	rate := DiscountRate(interestRate, inflationRate)

	res := Result{
		InitialCost:  initialCost,
		HorizonYears: horizonYears,
		DiscountRate: rate,
		Lines:        make([]Line, 0, len(components)),
	}
	for _, comp := range components {
		n := Replacements(horizonYears, comp.LifecycleYears)
		line := Line{
			Component:      comp,
			Replacements:   n,
			DiscountedCost: PresentValue(comp.BaseCost, comp.LifecycleYears, n, rate),
		}
		res.ReplacementPV += line.DiscountedCost
		res.Lines = append(res.Lines, line)
	}
	res.TotalCost = initialCost + res.ReplacementPV
	return res
}
