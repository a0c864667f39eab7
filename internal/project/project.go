// Package project defines the input document for one building estimate and
// its boundary validation.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Method is the structural system of the building.
type Method string

const (
	MethodRCCFramed   Method = "rcc_framed"
	MethodLoadBearing Method = "load_bearing"
	MethodSteelFramed Method = "steel_framed"
)

// UnmarshalText accepts the canonical names plus spaced or hyphenated
// spellings such as "RCC Framed" or "load-bearing".
func (m *Method) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	s = strings.TrimSuffix(s, "_structure")
	*m = Method(s)
	return nil
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodRCCFramed, MethodLoadBearing, MethodSteelFramed:
		return true
	}
	return false
}

// String returns the display name.
func (m Method) String() string {
	switch m {
	case MethodRCCFramed:
		return "RCC Framed Structure"
	case MethodLoadBearing:
		return "Load Bearing Structure"
	case MethodSteelFramed:
		return "Steel Framed Structure"
	}
	return string(m)
}

// RoofType is the roof form.
type RoofType string

const (
	RoofFlatRCC RoofType = "flat_rcc"
	RoofSloped  RoofType = "sloped"
	RoofDome    RoofType = "dome"
)

// String returns the display name.
func (r RoofType) String() string {
	switch r {
	case RoofFlatRCC:
		return "Flat RCC Roof"
	case RoofSloped:
		return "Sloped Roof"
	case RoofDome:
		return "Dome Roof"
	}
	return string(r)
}

// CrossSection is a rectangular member section in metres.
type CrossSection struct {
	Width float64 `yaml:"width" json:"width"`
	Depth float64 `yaml:"depth" json:"depth"`
}

// Area returns the section area in m².
func (c CrossSection) Area() float64 {
	return c.Width * c.Depth
}

func (c CrossSection) String() string {
	return strconv.FormatFloat(c.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(c.Depth, 'f', -1, 64)
}

// ParseCrossSection parses "WIDTHxDEPTH", e.g. "0.3x0.45".
func ParseCrossSection(s string) (CrossSection, error) {
	w, d, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return CrossSection{}, fmt.Errorf("cross-section %q: expected WIDTHxDEPTH", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return CrossSection{}, fmt.Errorf("cross-section %q: width: %w", s, err)
	}
	depth, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
	if err != nil {
		return CrossSection{}, fmt.Errorf("cross-section %q: depth: %w", s, err)
	}
	return CrossSection{Width: width, Depth: depth}, nil
}

type plainCrossSection CrossSection

// UnmarshalYAML accepts either "0.3x0.45" or a {width, depth} mapping.
func (c *CrossSection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		cs, err := ParseCrossSection(node.Value)
		if err != nil {
			return err
		}
		*c = cs
		return nil
	}
	var p plainCrossSection
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = CrossSection(p)
	return nil
}

// UnmarshalJSON accepts either "0.3x0.45" or a {width, depth} object.
func (c *CrossSection) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		cs, err := ParseCrossSection(s)
		if err != nil {
			return err
		}
		*c = cs
		return nil
	}
	var p plainCrossSection
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CrossSection(p)
	return nil
}

// Dimensions is the building geometry. Lengths in metres.
type Dimensions struct {
	Length        float64      `yaml:"length" json:"length"`
	Width         float64      `yaml:"width" json:"width"`
	Height        float64      `yaml:"height" json:"height"` // storey height
	Floors        int          `yaml:"floors" json:"floors"`
	WallThickness float64      `yaml:"wall_thickness" json:"wall_thickness"`
	FootingDepth  float64      `yaml:"footing_depth" json:"footing_depth"`
	FootingWidth  float64      `yaml:"footing_width" json:"footing_width"`
	ColumnSize    CrossSection `yaml:"column_size" json:"column_size"`
	BeamSize      CrossSection `yaml:"beam_size" json:"beam_size"`
	SlabThickness float64      `yaml:"slab_thickness" json:"slab_thickness"`
}

// Loads are the design actions on the building.
type Loads struct {
	LiveLoad     float64 `yaml:"live_load" json:"live_load"`         // kN/m²
	WindSpeed    float64 `yaml:"wind_speed" json:"wind_speed"`       // km/h
	SoilCapacity float64 `yaml:"soil_capacity" json:"soil_capacity"` // kN/m²
	RoofAngle    float64 `yaml:"roof_angle_deg" json:"roof_angle_deg"`
}

// Finance holds the schedule and money inputs. Rates are annual fractions.
type Finance struct {
	DurationMonths float64 `yaml:"duration_months" json:"duration_months"`
	InterestRate   float64 `yaml:"interest_rate" json:"interest_rate"`
	InflationRate  float64 `yaml:"inflation_rate" json:"inflation_rate"`
}

// Site selects the climate and seismic zones by catalog name.
type Site struct {
	ClimateZone       string  `yaml:"climate_zone" json:"climate_zone"`
	SeismicZone       string  `yaml:"seismic_zone" json:"seismic_zone"`
	TransportDistance float64 `yaml:"transport_distance_km" json:"transport_distance_km"`
}

// Construction describes the building system and openings.
type Construction struct {
	Method   Method   `yaml:"method" json:"method"`
	RoofType RoofType `yaml:"roof_type" json:"roof_type"`
	Doors    int      `yaml:"doors" json:"doors"`
	Windows  int      `yaml:"windows" json:"windows"`
}

// Materials selects one catalog row per material category by name.
type Materials struct {
	Brick         string `yaml:"brick" json:"brick"`
	Cement        string `yaml:"cement" json:"cement"`
	Steel         string `yaml:"steel" json:"steel"`
	SteelDiameter int    `yaml:"steel_diameter_mm,omitempty" json:"steel_diameter_mm,omitempty"`
	Roofing       string `yaml:"roofing" json:"roofing"`
	Door          string `yaml:"door" json:"door"`
	Window        string `yaml:"window" json:"window"`
	Insulation    string `yaml:"insulation" json:"insulation"`
}

// Project is one building to estimate.
type Project struct {
	Name         string       `yaml:"name" json:"name"`
	Client       string       `yaml:"client" json:"client"`
	Location     string       `yaml:"location" json:"location"`
	Date         string       `yaml:"date,omitempty" json:"date,omitempty"`
	Dimensions   Dimensions   `yaml:"dimensions" json:"dimensions"`
	Loads        Loads        `yaml:"loads" json:"loads"`
	Finance      Finance      `yaml:"finance" json:"finance"`
	Site         Site         `yaml:"site" json:"site"`
	Construction Construction `yaml:"construction" json:"construction"`
	Materials    Materials    `yaml:"materials" json:"materials"`
}

// Load reads a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML project document. JSON is valid YAML, so JSON
// documents are accepted as well.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	return &p, nil
}

// Upper bounds accepted at the input boundary
const (
	MaxFloors         = 200
	MaxDurationMonths = 600 // 50 years
)

// Validate checks the project at the input boundary and returns every
// problem found.
func (p *Project) Validate() error {
	var errs []error

	finite := func(field string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a finite number, got %v", field, v))
			return false
		}
		return true
	}
	positive := func(field string, v float64) {
		if finite(field, v) && v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", field, v))
		}
	}
	nonNegative := func(field string, v float64) {
		if finite(field, v) && v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", field, v))
		}
	}
	required := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field))
		}
	}

	d := p.Dimensions
	positive("dimensions.length", d.Length)
	positive("dimensions.width", d.Width)
	positive("dimensions.height", d.Height)
	if d.Floors < 1 || d.Floors > MaxFloors {
		errs = append(errs, fmt.Errorf("dimensions.floors must be in [1, %d], got %d", MaxFloors, d.Floors))
	}
	positive("dimensions.wall_thickness", d.WallThickness)
	positive("dimensions.footing_depth", d.FootingDepth)
	positive("dimensions.footing_width", d.FootingWidth)
	positive("dimensions.column_size.width", d.ColumnSize.Width)
	positive("dimensions.column_size.depth", d.ColumnSize.Depth)
	positive("dimensions.beam_size.width", d.BeamSize.Width)
	positive("dimensions.beam_size.depth", d.BeamSize.Depth)
	positive("dimensions.slab_thickness", d.SlabThickness)

	nonNegative("loads.live_load", p.Loads.LiveLoad)
	nonNegative("loads.wind_speed", p.Loads.WindSpeed)
	positive("loads.soil_capacity", p.Loads.SoilCapacity)
	if !(p.Loads.RoofAngle >= 0 && p.Loads.RoofAngle < 90) {
		errs = append(errs, fmt.Errorf("loads.roof_angle_deg must be in [0, 90), got %v", p.Loads.RoofAngle))
	}

	nonNegative("finance.duration_months", p.Finance.DurationMonths)
	if p.Finance.DurationMonths > MaxDurationMonths {
		errs = append(errs, fmt.Errorf("finance.duration_months must not exceed %d, got %v", MaxDurationMonths, p.Finance.DurationMonths))
	}
	finite("finance.interest_rate", p.Finance.InterestRate)
	finite("finance.inflation_rate", p.Finance.InflationRate)
	nonNegative("site.transport_distance_km", p.Site.TransportDistance)

	if p.Construction.Doors < 0 {
		errs = append(errs, fmt.Errorf("construction.doors must not be negative, got %d", p.Construction.Doors))
	}
	if p.Construction.Windows < 0 {
		errs = append(errs, fmt.Errorf("construction.windows must not be negative, got %d", p.Construction.Windows))
	}
	if !p.Construction.Method.Valid() {
		errs = append(errs, fmt.Errorf("construction.method %q is not one of %s, %s, %s",
			p.Construction.Method, MethodRCCFramed, MethodLoadBearing, MethodSteelFramed))
	}

	required("site.climate_zone", p.Site.ClimateZone)
	required("site.seismic_zone", p.Site.SeismicZone)
	required("materials.brick", p.Materials.Brick)
	required("materials.cement", p.Materials.Cement)
	required("materials.steel", p.Materials.Steel)
	required("materials.roofing", p.Materials.Roofing)
	required("materials.door", p.Materials.Door)
	required("materials.window", p.Materials.Window)
	required("materials.insulation", p.Materials.Insulation)

	return errors.Join(errs...)
}
