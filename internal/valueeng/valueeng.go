// Package valueeng searches the catalog for cheaper materials that keep most
// of the selected material's performance.
package valueeng

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/quantity"
)

// Share of the selected material's performance an alternative must keep
const (
	StrengthRatio = 0.9 // compressive or yield strength
	LifespanRatio = 0.8 // roofing lifespan
)

// Suggestion proposes one substitution.
type Suggestion struct {
	Category     catalog.Category `json:"category"`
	Current      string           `json:"current"`
	CurrentPrice float64          `json:"current_price"`
	Alternative  catalog.Option   `json:"alternative"`
	Quantity     float64          `json:"quantity"` // in the priced unit
	Savings      float64          `json:"savings"`
	Text         string           `json:"text"`
}

// candidate is a selected material reduced to what the search compares.
type candidate struct {
	category    catalog.Category
	noun        string
	name        string
	price       float64
	performance float64
	ratio       float64
	quantity    float64
	describe    func(catalog.Option) string
}

func candidates(m quantity.Materials, s quantity.Summary) []candidate {
	strength := func(o catalog.Option) string { return fmt.Sprintf("%g MPa strength", o.Performance) }
	return []candidate{
		{catalog.CategoryBricks, "bricks", m.Brick.Name, m.Brick.PricePerUnit, m.Brick.CompressiveStrength, StrengthRatio, s.Bricks, strength},
		{catalog.CategoryCement, "cement", m.Cement.Name, m.Cement.PricePerBag, m.Cement.CompressiveStrength, StrengthRatio, s.CementBags, strength},
		{catalog.CategorySteel, "steel", m.Steel.Name, m.Steel.PricePerKg, m.Steel.YieldStrength, StrengthRatio, s.SteelTons * 1000,
			func(o catalog.Option) string { return fmt.Sprintf("%g MPa yield strength", o.Performance) }},
		{catalog.CategoryRoofing, "roofing", m.Roofing.Name, m.Roofing.PricePerUnit, float64(m.Roofing.LifespanYears), LifespanRatio, float64(s.RoofingUnits),
			func(o catalog.Option) string { return fmt.Sprintf("%g year lifespan", o.Performance) }},
	}
}

// Suggest returns at most one suggestion per material category: the
// cheapest alternative priced strictly below the selection that keeps the
// required share of its performance.
func Suggest(ctx context.Context, cat catalog.Catalog, m quantity.Materials, s quantity.Summary, currency string) ([]Suggestion, error) {
	suggestions := []Suggestion{}
	for _, c := range candidates(m, s) {
		alts, err := cat.CheaperAlternatives(ctx, c.category, c.price, c.performance*c.ratio)
		if err != nil {
			return nil, fmt.Errorf("value engineering %s: %w", c.category, err)
		}
		if len(alts) == 0 {
			continue
		}

		best := alts[0]
		for _, a := range alts[1:] {
			if a.Price < best.Price {
				best = a
			}
		}

		savings := (c.price - best.Price) * c.quantity
		suggestions = append(suggestions, Suggestion{
			Category:     c.category,
			Current:      c.name,
			CurrentPrice: c.price,
			Alternative:  best,
			Quantity:     c.quantity,
			Savings:      savings,
			Text: fmt.Sprintf("Consider using %s %s instead (%s %.2f savings, %s)",
				best.Name, c.noun, currency, savings, c.describe(best)),
		})
	}
	return suggestions, nil
}

// TotalSavings sums the savings of all suggestions.
func TotalSavings(suggestions []Suggestion) float64 {
	var total float64
	for _, s := range suggestions {
		total += s.Savings
	}
	return total
}
