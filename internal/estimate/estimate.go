// Package estimate runs the full estimating pipeline for one project: it
// resolves the project's catalog references, then threads the resolved
// inputs through the quantity, structural, thermal, lifecycle, value
// engineering, cash flow and scheduling modules.
//
// The result is a read-only aggregate consumed by the report, chart and
// HTTP layers.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alexiusacademia/goestimate/internal/advisory"
	"github.com/alexiusacademia/goestimate/internal/cashflow"
	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/lifecycle"
	"github.com/alexiusacademia/goestimate/internal/project"
	"github.com/alexiusacademia/goestimate/internal/quantity"
	"github.com/alexiusacademia/goestimate/internal/schedule"
	"github.com/alexiusacademia/goestimate/internal/structural"
	"github.com/alexiusacademia/goestimate/internal/thermal"
	"github.com/alexiusacademia/goestimate/internal/valueeng"
)

// ErrInvalidProject wraps boundary validation failures.
var ErrInvalidProject = errors.New("invalid project")

// DefaultCurrency labels money in suggestion text when none is configured.
const DefaultCurrency = "AED"

// AlternativeCategories are the categories listed as options in reports.
var AlternativeCategories = []catalog.Category{
	catalog.CategoryBricks,
	catalog.CategoryCement,
	catalog.CategorySteel,
	catalog.CategoryRoofing,
}

// Options tune a run.
type Options struct {
	Currency     string
	HorizonYears int              // lifecycle horizon, 0 for the default
	Now          func() time.Time // clock, time.Now when nil
}

// Inputs are the project's references resolved against the catalog.
type Inputs struct {
	quantity.Inputs
	EnergyCode thermal.Code
}

// Alternatives lists the other rows of one category.
type Alternatives struct {
	Category catalog.Category `json:"category"`
	Options  []catalog.Option `json:"options"`
}

// Result is the aggregate output of one estimate.
type Result struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Currency    string    `json:"currency"`

	Project    project.Project     `json:"project"`
	Materials  quantity.Materials  `json:"materials"`
	Climate    catalog.ClimateZone `json:"climate"`
	Seismic    catalog.SeismicZone `json:"seismic"`
	EnergyCode thermal.Code        `json:"energy_code"`

	Calculations quantity.Calculations `json:"calculations"`
	Summary      quantity.Summary      `json:"summary"`
	Timeline     schedule.Timeline     `json:"timeline"`
	Structural   structural.Design     `json:"structural"`
	Thermal      thermal.Result        `json:"thermal"`
	Lifecycle    lifecycle.Result      `json:"lifecycle"`
	Schedule     schedule.Schedule     `json:"schedule"`
	CashFlow     []cashflow.Point      `json:"cash_flow"`

	Suggestions  []valueeng.Suggestion `json:"suggestions"`
	Alternatives []Alternatives        `json:"alternatives"`

	Advisory *advisory.Report `json:"advisory"`
}

// Resolve looks up every catalog reference of p. A reference with no row
// fails with a *catalog.UnresolvedError. A climate zone whose energy code is
// missing falls back to thermal.DefaultCode and records a notice.
func Resolve(ctx context.Context, cat catalog.Catalog, p *project.Project) (Inputs, *advisory.Report, error) {
	report := advisory.NewReport()
	in := Inputs{Inputs: quantity.Inputs{Project: *p}}
	m := p.Materials
	var err error

	if in.Materials.Brick, err = cat.Brick(ctx, m.Brick); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving brick: %w", err)
	}
	if in.Materials.Cement, err = cat.Cement(ctx, m.Cement); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving cement: %w", err)
	}
	if in.Materials.Steel, err = cat.Steel(ctx, m.Steel, m.SteelDiameter); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving steel: %w", err)
	}
	if in.Materials.Roofing, err = cat.Roofing(ctx, m.Roofing); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving roofing: %w", err)
	}
	if in.Materials.Door, err = cat.Door(ctx, m.Door); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving door: %w", err)
	}
	if in.Materials.Window, err = cat.Window(ctx, m.Window); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving window: %w", err)
	}
	if in.Materials.Insulation, err = cat.Insulation(ctx, m.Insulation); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving insulation: %w", err)
	}

	if in.Climate, err = cat.ClimateZone(ctx, p.Site.ClimateZone); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving climate zone: %w", err)
	}
	if in.Seismic, err = cat.SeismicZone(ctx, p.Site.SeismicZone); err != nil {
		return Inputs{}, nil, fmt.Errorf("resolving seismic zone: %w", err)
	}
	if in.LaborRates, err = cat.LaborRates(ctx); err != nil {
		return Inputs{}, nil, fmt.Errorf("loading labor rates: %w", err)
	}

	code, err := cat.EnergyCode(ctx, in.Climate.EnergyCode)
	switch {
	case err == nil:
		in.EnergyCode = ThermalCode(code)
	case errors.Is(err, catalog.ErrNotFound):
		in.EnergyCode = thermal.DefaultCode
		report.AddNotice(advisory.Warning{
			Code: advisory.CodeEnergyCodeDefault,
			Message: fmt.Sprintf("energy code %q of climate zone %s not in catalog; using default limits",
				in.Climate.EnergyCode, in.Climate.Name),
		})
	default:
		return Inputs{}, nil, fmt.Errorf("resolving energy code: %w", err)
	}

	return in, report, nil
}

// ThermalCode converts a catalog energy code to compliance thresholds.
func ThermalCode(c catalog.EnergyCode) thermal.Code {
	return thermal.Code{
		Name:            c.Name,
		MaxUValueWalls:  c.MaxUValueWalls,
		MaxUValueRoof:   c.MaxUValueRoof,
		MaxUValueWindow: c.MaxUValueWindow,
		MinRValueWalls:  c.MinRValueWalls,
		MinRValueRoof:   c.MinRValueRoof,
	}
}

// Envelope maps the selected materials onto the thermal envelope inputs.
func Envelope(d project.Dimensions, m quantity.Materials) thermal.Envelope {
	return thermal.Envelope{
		WallThickness:     d.WallThickness,
		BrickConductivity: m.Brick.ThermalConductivity,
		InsulationRValue:  m.Insulation.RValue,
		RoofUValue:        m.Roofing.UValue,
		RoofRValue:        m.Roofing.RValue,
		WindowUValue:      m.Window.UValue,
		DoorUValue:        m.Door.UValue,
	}
}

// Run validates p, resolves it and computes the full estimate.
func Run(ctx context.Context, cat catalog.Catalog, p *project.Project, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating estimate id: %w", err)
	}
	log := slog.With("estimate", id.String(), "project", p.Name)

	in, report, err := Resolve(ctx, cat, p)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved catalog references",
		"climate", in.Climate.Name,
		"seismic", in.Seismic.Name,
		"energy_code", in.EnergyCode.Name,
	)

	q := quantity.Compute(in.Inputs)
	report.Merge(q.Advisory)
	log.Debug("computed quantities", "total_cost", q.Summary.TotalCost, "days", q.Summary.ConstructionDays)

	d := p.Dimensions
	design := structural.DesignMembers(d.Length, p.Loads.LiveLoad, q.Calculations.ColumnLoad, d.Height, p.Loads.SoilCapacity)
	structuralWarnings(report, design)
	log.Debug("designed members", "adequate", design.Adequate())

	th := thermal.Compute(Envelope(d, in.Materials), in.EnergyCode)
	thermalWarnings(report, th)
	log.Debug("checked envelope", "code", th.Code.Name, "compliant", th.Compliant())

	lc := lifecycle.Compute(
		q.Summary.TotalCost,
		lifecycle.Components(q.Calculations, q.Summary, in.Materials),
		p.Finance.InterestRate,
		p.Finance.InflationRate,
		opts.HorizonYears,
	)
	log.Debug("projected lifecycle cost", "horizon", lc.HorizonYears, "total", lc.TotalCost)

	suggestions, err := valueeng.Suggest(ctx, cat, in.Materials, q.Summary, opts.Currency)
	if err != nil {
		return nil, err
	}

	alternatives, err := listAlternatives(ctx, cat, in.Materials)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:           id.String(),
		GeneratedAt:  now().UTC(),
		Currency:     opts.Currency,
		Project:      *p,
		Materials:    in.Materials,
		Climate:      in.Climate,
		Seismic:      in.Seismic,
		EnergyCode:   in.EnergyCode,
		Calculations: q.Calculations,
		Summary:      q.Summary,
		Timeline:     q.Timeline,
		Structural:   design,
		Thermal:      th,
		Lifecycle:    lc,
		Schedule:     schedule.Compute(q.Timeline),
		CashFlow:     cashflow.Compute(q.Summary.TotalCost, p.Finance.DurationMonths),
		Suggestions:  suggestions,
		Alternatives: alternatives,
		Advisory:     report,
	}

	for _, w := range report.Warnings {
		log.Warn(w.Message, "code", w.Code)
	}
	for _, n := range report.Notices {
		log.Info(n.Message, "code", n.Code)
	}
	log.Debug("estimate complete", "critical_path", res.Schedule.CriticalPath, "findings", report.Summary())

	return res, nil
}

func listAlternatives(ctx context.Context, cat catalog.Catalog, m quantity.Materials) ([]Alternatives, error) {
	selected := map[catalog.Category]string{
		catalog.CategoryBricks:  m.Brick.Name,
		catalog.CategoryCement:  m.Cement.Name,
		catalog.CategorySteel:   m.Steel.Name,
		catalog.CategoryRoofing: m.Roofing.Name,
	}

	out := make([]Alternatives, 0, len(AlternativeCategories))
	for _, category := range AlternativeCategories {
		opts, err := cat.Options(ctx, category, selected[category])
		if err != nil {
			return nil, fmt.Errorf("listing %s options: %w", category, err)
		}
		out = append(out, Alternatives{Category: category, Options: opts})
	}
	return out, nil
}

func structuralWarnings(report *advisory.Report, d structural.Design) {
	if !d.Beam.IsAdequate {
		report.AddWarning(advisory.Warning{
			Code:    advisory.CodeBeamSection,
			Message: "beam: " + d.Beam.Message,
			Actual:  d.Beam.DesignMoment,
		})
	}
	if !d.Column.IsAdequate {
		report.AddWarning(advisory.Warning{
			Code:    advisory.CodeColumnCapacity,
			Message: "column: " + d.Column.Message,
			Actual:  d.Column.FactoredLoad,
			Limit:   d.Column.AxialCapacity,
		})
	}
	if !d.Footing.IsAdequate {
		report.AddWarning(advisory.Warning{
			Code:    advisory.CodeFootingSize,
			Message: "footing: " + d.Footing.Message,
			Actual:  d.Footing.SoilPressure,
			Limit:   d.Footing.SoilCapacity,
		})
	}
}

func thermalWarnings(report *advisory.Report, r thermal.Result) {
	check := func(ok bool, element string, actual, limit float64) {
		if ok {
			return
		}
		report.AddWarning(advisory.Warning{
			Code: advisory.CodeThermalCompliance,
			Message: fmt.Sprintf("%s U-value %.3f W/m²K exceeds %s limit %.3f W/m²K",
				element, actual, r.Code.Name, limit),
			Actual: actual,
			Limit:  limit,
		})
	}
	check(r.WallCompliant, "wall", r.WallUValue, r.Code.MaxUValueWalls)
	check(r.RoofCompliant, "roof", r.RoofUValue, r.Code.MaxUValueRoof)
	check(r.WindowCompliant, "window", r.WindowUValue, r.Code.MaxUValueWindow)
}
