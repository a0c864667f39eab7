package catalog

import (
	"context"
	"fmt"
)

// optionSource maps a material category onto the columns compared by the
// option listing and the alternative search.
type optionSource struct {
	table       string
	detail      string // SQL expression
	price       string
	performance string
	unit        string
	lifecycle   string
}

var optionSources = map[Category]optionSource{
	CategoryBricks: {
		table:       "bricks",
		detail:      "size",
		price:       "price_per_unit",
		performance: "compressive_strength_mpa",
		unit:        "MPa",
		lifecycle:   "lifecycle_years",
	},
	CategoryCement: {
		table:       "cement_types",
		detail:      "type",
		price:       "price_per_bag",
		performance: "compressive_strength_mpa",
		unit:        "MPa",
		lifecycle:   "lifecycle_years",
	},
	CategorySteel: {
		table:       "steel_rods",
		detail:      "CAST(diameter_mm AS TEXT) || ' mm'",
		price:       "price_per_kg",
		performance: "yield_strength_mpa",
		unit:        "MPa",
		lifecycle:   "lifecycle_years",
	},
	CategoryRoofing: {
		table:       "roofing_materials",
		detail:      "type",
		price:       "price_per_unit",
		performance: "lifespan_years",
		unit:        "years",
		lifecycle:   "lifespan_years",
	},
}

func (src optionSource) selectClause() string {
	return fmt.Sprintf(`SELECT id, name, %s, %s, %s, %s, embodied_carbon FROM %s`,
		src.detail, src.price, src.performance, src.lifecycle, src.table)
}

func optionSourceFor(category Category) (optionSource, error) {
	src, ok := optionSources[category]
	if !ok {
		return optionSource{}, fmt.Errorf("%w: no options for %q", ErrUnknownCategory, category)
	}
	return src, nil
}

func optionScanner(category Category, unit string) func(scanner) (Option, error) {
	return func(s scanner) (Option, error) {
		o := Option{Category: category, PerformanceUnit: unit}
		err := s.Scan(&o.ID, &o.Name, &o.Detail, &o.Price, &o.Performance,
			&o.LifecycleYears, &o.EmbodiedCarbon)
		return o, err
	}
}

// CheaperAlternatives returns rows of category priced strictly below price
// with performance of at least minPerformance, cheapest first.
func (r *Repository) CheaperAlternatives(ctx context.Context, category Category, price, minPerformance float64) ([]Option, error) {
	src, err := optionSourceFor(category)
	if err != nil {
		return nil, err
	}

	query := src.selectClause() + fmt.Sprintf(` WHERE %s < ? AND %s >= ? ORDER BY %s, id`,
		src.price, src.performance, src.price)
	opts, err := queryAll(ctx, r.db, query, optionScanner(category, src.unit), price, minPerformance)
	if err != nil {
		return nil, fmt.Errorf("searching %s alternatives: %w", category, err)
	}
	return opts, nil
}

// Options returns every row of category except those named excludeName.
func (r *Repository) Options(ctx context.Context, category Category, excludeName string) ([]Option, error) {
	src, err := optionSourceFor(category)
	if err != nil {
		return nil, err
	}

	query := src.selectClause() + ` WHERE name <> ? ORDER BY id`
	opts, err := queryAll(ctx, r.db, query, optionScanner(category, src.unit), excludeName)
	if err != nil {
		return nil, fmt.Errorf("listing %s options: %w", category, err)
	}
	return opts, nil
}
