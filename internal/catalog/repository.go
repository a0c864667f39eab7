package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

// Repository serves catalog rows from SQLite.
type Repository struct {
	db *sql.DB
}

var _ Catalog = (*Repository)(nil)

// Open opens the catalog database at path and applies any pending dataset
// migrations. An empty path opens an in-memory copy of the dataset.
func Open(ctx context.Context, path string) (*Repository, error) {
	if path == "" {
		path = MemoryPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	// A second connection to :memory: would see an empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to catalog database: %w", err)
	}

	if _, err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating catalog: %w", err)
	}

	return NewRepository(db), nil
}

// NewRepository wraps an already-migrated database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close releases the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SchemaVersion returns the newest dataset migration applied.
func (r *Repository) SchemaVersion(ctx context.Context) (int, error) {
	return schemaVersion(ctx, r.db)
}

type scanner interface {
	Scan(dest ...any) error
}

// lookupErr converts a missing row into an UnresolvedError.
func lookupErr(err error, category Category, name string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &UnresolvedError{Category: category, Name: name}
	}
	return fmt.Errorf("querying %s %q: %w", category, name, err)
}

const brickColumns = `id, name, size, per_sqm, price_per_unit, wastage_percent,
	compressive_strength_mpa, thermal_conductivity, water_absorption,
	lifecycle_years, embodied_carbon`

func scanBrick(s scanner) (Brick, error) {
	var b Brick
	err := s.Scan(&b.ID, &b.Name, &b.Size, &b.PerSqm, &b.PricePerUnit, &b.WastagePercent,
		&b.CompressiveStrength, &b.ThermalConductivity, &b.WaterAbsorption,
		&b.LifecycleYears, &b.EmbodiedCarbon)
	return b, err
}

// Brick retrieves a brick by name.
func (r *Repository) Brick(ctx context.Context, name string) (Brick, error) {
	query := `SELECT ` + brickColumns + ` FROM bricks WHERE name = ? ORDER BY id LIMIT 1`
	b, err := scanBrick(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return Brick{}, lookupErr(err, CategoryBricks, name)
	}
	return b, nil
}

// Bricks lists every brick.
func (r *Repository) Bricks(ctx context.Context) ([]Brick, error) {
	return queryAll(ctx, r.db, `SELECT `+brickColumns+` FROM bricks ORDER BY id`, scanBrick)
}

const cementColumns = `id, name, type, grade, bag_weight_kg, price_per_bag, wastage_percent,
	setting_time_min, compressive_strength_mpa, lifecycle_years, embodied_carbon`

func scanCement(s scanner) (Cement, error) {
	var c Cement
	err := s.Scan(&c.ID, &c.Name, &c.Type, &c.Grade, &c.BagWeight, &c.PricePerBag,
		&c.WastagePercent, &c.SettingTime, &c.CompressiveStrength,
		&c.LifecycleYears, &c.EmbodiedCarbon)
	return c, err
}

// Cement retrieves a cement type by name.
func (r *Repository) Cement(ctx context.Context, name string) (Cement, error) {
	query := `SELECT ` + cementColumns + ` FROM cement_types WHERE name = ? ORDER BY id LIMIT 1`
	c, err := scanCement(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return Cement{}, lookupErr(err, CategoryCement, name)
	}
	return c, nil
}

// Cements lists every cement type.
func (r *Repository) Cements(ctx context.Context) ([]Cement, error) {
	return queryAll(ctx, r.db, `SELECT `+cementColumns+` FROM cement_types ORDER BY id`, scanCement)
}

const steelColumns = `id, name, diameter_mm, weight_per_meter_kg, price_per_kg, wastage_percent,
	yield_strength_mpa, ultimate_strength_mpa, elongation_percent,
	lifecycle_years, embodied_carbon`

func scanSteel(s scanner) (Steel, error) {
	var st Steel
	err := s.Scan(&st.ID, &st.Name, &st.Diameter, &st.WeightPerMeter, &st.PricePerKg,
		&st.WastagePercent, &st.YieldStrength, &st.UltimateStrength, &st.ElongationPercent,
		&st.LifecycleYears, &st.EmbodiedCarbon)
	return st, err
}

// Steel retrieves a steel grade by name. A non-zero diameter (mm) selects
// that bar size; zero takes the first row of the grade.
func (r *Repository) Steel(ctx context.Context, name string, diameter int) (Steel, error) {
	query := `SELECT ` + steelColumns + ` FROM steel_rods
		WHERE name = ? AND (? = 0 OR diameter_mm = ?)
		ORDER BY id LIMIT 1`
	st, err := scanSteel(r.db.QueryRowContext(ctx, query, name, diameter, diameter))
	if err != nil {
		ref := name
		if diameter != 0 {
			ref = fmt.Sprintf("%s %dmm", name, diameter)
		}
		return Steel{}, lookupErr(err, CategorySteel, ref)
	}
	return st, nil
}

// SteelRods lists every steel row.
func (r *Repository) SteelRods(ctx context.Context) ([]Steel, error) {
	return queryAll(ctx, r.db, `SELECT `+steelColumns+` FROM steel_rods ORDER BY id`, scanSteel)
}

const roofingColumns = `id, name, type, coverage_per_unit_sqm, price_per_unit, wastage_percent,
	wind_rating_kmh, fire_rating, lifespan_years, u_value, r_value, embodied_carbon`

func scanRoofing(s scanner) (Roofing, error) {
	var rf Roofing
	err := s.Scan(&rf.ID, &rf.Name, &rf.Type, &rf.CoveragePerUnit, &rf.PricePerUnit,
		&rf.WastagePercent, &rf.WindRating, &rf.FireRating, &rf.LifespanYears,
		&rf.UValue, &rf.RValue, &rf.EmbodiedCarbon)
	return rf, err
}

// Roofing retrieves a roofing material by name.
func (r *Repository) Roofing(ctx context.Context, name string) (Roofing, error) {
	query := `SELECT ` + roofingColumns + ` FROM roofing_materials WHERE name = ? ORDER BY id LIMIT 1`
	rf, err := scanRoofing(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return Roofing{}, lookupErr(err, CategoryRoofing, name)
	}
	return rf, nil
}

// RoofingMaterials lists every roofing material.
func (r *Repository) RoofingMaterials(ctx context.Context) ([]Roofing, error) {
	return queryAll(ctx, r.db, `SELECT `+roofingColumns+` FROM roofing_materials ORDER BY id`, scanRoofing)
}

const doorColumns = `id, name, material, standard_size, price, thermal_insulation,
	sound_reduction_db, u_value, lifecycle_years`

func scanDoor(s scanner) (Door, error) {
	var d Door
	err := s.Scan(&d.ID, &d.Name, &d.Material, &d.StandardSize, &d.Price,
		&d.ThermalInsulation, &d.SoundReduction, &d.UValue, &d.LifecycleYears)
	return d, err
}

// Door retrieves a door by name.
func (r *Repository) Door(ctx context.Context, name string) (Door, error) {
	query := `SELECT ` + doorColumns + ` FROM doors WHERE name = ? ORDER BY id LIMIT 1`
	d, err := scanDoor(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return Door{}, lookupErr(err, CategoryDoors, name)
	}
	return d, nil
}

// Doors lists every door.
func (r *Repository) Doors(ctx context.Context) ([]Door, error) {
	return queryAll(ctx, r.db, `SELECT `+doorColumns+` FROM doors ORDER BY id`, scanDoor)
}

const windowColumns = `id, name, material, standard_size, price, u_value,
	solar_heat_gain_coeff, lifecycle_years`

func scanWindow(s scanner) (Window, error) {
	var w Window
	err := s.Scan(&w.ID, &w.Name, &w.Material, &w.StandardSize, &w.Price,
		&w.UValue, &w.SolarHeatGainCoeff, &w.LifecycleYears)
	return w, err
}

// Window retrieves a window by name.
func (r *Repository) Window(ctx context.Context, name string) (Window, error) {
	query := `SELECT ` + windowColumns + ` FROM windows WHERE name = ? ORDER BY id LIMIT 1`
	w, err := scanWindow(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return Window{}, lookupErr(err, CategoryWindows, name)
	}
	return w, nil
}

// Windows lists every window.
func (r *Repository) Windows(ctx context.Context) ([]Window, error) {
	return queryAll(ctx, r.db, `SELECT `+windowColumns+` FROM windows ORDER BY id`, scanWindow)
}

const insulationColumns = `id, name, type, thickness_mm, price_per_sqm,
	thermal_conductivity, r_value, lifecycle_years`

func scanInsulation(s scanner) (Insulation, error) {
	var in Insulation
	err := s.Scan(&in.ID, &in.Name, &in.Type, &in.Thickness, &in.PricePerSqm,
		&in.ThermalConductivity, &in.RValue, &in.LifecycleYears)
	return in, err
}

// Insulation retrieves an insulation material by name.
func (r *Repository) Insulation(ctx context.Context, name string) (Insulation, error) {
	query := `SELECT ` + insulationColumns + ` FROM insulation_materials WHERE name = ? ORDER BY id LIMIT 1`
	in, err := scanInsulation(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return Insulation{}, lookupErr(err, CategoryInsulation, name)
	}
	return in, nil
}

// InsulationMaterials lists every insulation material.
func (r *Repository) InsulationMaterials(ctx context.Context) ([]Insulation, error) {
	return queryAll(ctx, r.db, `SELECT `+insulationColumns+` FROM insulation_materials ORDER BY id`, scanInsulation)
}

func scanLaborRate(s scanner) (LaborRate, error) {
	var l LaborRate
	err := s.Scan(&l.ID, &l.Activity, &l.Rate, &l.Unit, &l.ClimateFactor,
		&l.SkillLevel, &l.DurationPerUnit)
	return l, err
}

// LaborRates lists every labor rate in catalog order.
func (r *Repository) LaborRates(ctx context.Context) ([]LaborRate, error) {
	query := `SELECT id, activity, rate, unit, climate_factor, skill_level, duration_per_unit
		FROM labor_rates ORDER BY id`
	return queryAll(ctx, r.db, query, scanLaborRate)
}

const climateColumns = `id, name, description, temperature_factor, rainfall_factor,
	wind_factor, energy_code`

func scanClimateZone(s scanner) (ClimateZone, error) {
	var z ClimateZone
	err := s.Scan(&z.ID, &z.Name, &z.Description, &z.TemperatureFactor,
		&z.RainfallFactor, &z.WindFactor, &z.EnergyCode)
	return z, err
}

// ClimateZone retrieves a climate zone by name.
func (r *Repository) ClimateZone(ctx context.Context, name string) (ClimateZone, error) {
	query := `SELECT ` + climateColumns + ` FROM climate_zones WHERE name = ?`
	z, err := scanClimateZone(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return ClimateZone{}, lookupErr(err, CategoryClimate, name)
	}
	return z, nil
}

// ClimateZones lists every climate zone.
func (r *Repository) ClimateZones(ctx context.Context) ([]ClimateZone, error) {
	return queryAll(ctx, r.db, `SELECT `+climateColumns+` FROM climate_zones ORDER BY id`, scanClimateZone)
}

const seismicColumns = `id, name, zone_factor, importance_factor, response_reduction_factor`

func scanSeismicZone(s scanner) (SeismicZone, error) {
	var z SeismicZone
	err := s.Scan(&z.ID, &z.Name, &z.ZoneFactor, &z.ImportanceFactor, &z.ResponseReductionFactor)
	return z, err
}

// SeismicZone retrieves a seismic zone by name.
func (r *Repository) SeismicZone(ctx context.Context, name string) (SeismicZone, error) {
	query := `SELECT ` + seismicColumns + ` FROM seismic_zones WHERE name = ?`
	z, err := scanSeismicZone(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return SeismicZone{}, lookupErr(err, CategorySeismic, name)
	}
	return z, nil
}

// SeismicZones lists every seismic zone.
func (r *Repository) SeismicZones(ctx context.Context) ([]SeismicZone, error) {
	return queryAll(ctx, r.db, `SELECT `+seismicColumns+` FROM seismic_zones ORDER BY id`, scanSeismicZone)
}

const energyCodeColumns = `id, name, max_u_value_walls, max_u_value_roof, max_u_value_windows,
	min_r_value_walls, min_r_value_roof`

func scanEnergyCode(s scanner) (EnergyCode, error) {
	var c EnergyCode
	err := s.Scan(&c.ID, &c.Name, &c.MaxUValueWalls, &c.MaxUValueRoof, &c.MaxUValueWindow,
		&c.MinRValueWalls, &c.MinRValueRoof)
	return c, err
}

// EnergyCode retrieves an energy code by name.
func (r *Repository) EnergyCode(ctx context.Context, name string) (EnergyCode, error) {
	query := `SELECT ` + energyCodeColumns + ` FROM energy_codes WHERE name = ?`
	c, err := scanEnergyCode(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return EnergyCode{}, lookupErr(err, CategoryEnergyCodes, name)
	}
	return c, nil
}

// EnergyCodes lists every energy code.
func (r *Repository) EnergyCodes(ctx context.Context) ([]EnergyCode, error) {
	return queryAll(ctx, r.db, `SELECT `+energyCodeColumns+` FROM energy_codes ORDER BY id`, scanEnergyCode)
}

// List returns the typed rows of category.
func (r *Repository) List(ctx context.Context, category Category) (any, error) {
	switch category {
	case CategoryBricks:
		return r.Bricks(ctx)
	case CategoryCement:
		return r.Cements(ctx)
	case CategorySteel:
		return r.SteelRods(ctx)
	case CategoryRoofing:
		return r.RoofingMaterials(ctx)
	case CategoryDoors:
		return r.Doors(ctx)
	case CategoryWindows:
		return r.Windows(ctx)
	case CategoryInsulation:
		return r.InsulationMaterials(ctx)
	case CategoryLabor:
		return r.LaborRates(ctx)
	case CategoryClimate:
		return r.ClimateZones(ctx)
	case CategorySeismic:
		return r.SeismicZones(ctx)
	case CategoryEnergyCodes:
		return r.EnergyCodes(ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog rows: %w", err)
	}
	return out, nil
}
