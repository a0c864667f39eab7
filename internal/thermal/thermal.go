// Package thermal computes the thermal performance of the building envelope
// and checks it against an energy code.
package thermal

// Fixed plaster layer applied to every wall
const (
	PlasterThickness    = 0.02 // m
	PlasterConductivity = 0.72 // W/mK
)

// Code holds the compliance thresholds of an energy code.
type Code struct {
	Name            string  `json:"name"`
	MaxUValueWalls  float64 `json:"max_u_value_walls"`  // W/m²K
	MaxUValueRoof   float64 `json:"max_u_value_roof"`   // W/m²K
	MaxUValueWindow float64 `json:"max_u_value_window"` // W/m²K
	MinRValueWalls  float64 `json:"min_r_value_walls"`  // m²K/W
	MinRValueRoof   float64 `json:"min_r_value_roof"`   // m²K/W
}

// DefaultCode is used when no energy code matches the climate zone.
var DefaultCode = Code{
	Name:            "Not specified",
	MaxUValueWalls:  1.0,
	MaxUValueRoof:   1.0,
	MaxUValueWindow: 5.0,
	MinRValueWalls:  1.0,
	MinRValueRoof:   1.0,
}

// Envelope lists the inputs of the envelope calculation.
type Envelope struct {
	WallThickness     float64 `json:"wall_thickness"`     // m
	BrickConductivity float64 `json:"brick_conductivity"` // W/mK
	InsulationRValue  float64 `json:"insulation_r_value"` // m²K/W
	RoofUValue        float64 `json:"roof_u_value"`       // W/m²K
	RoofRValue        float64 `json:"roof_r_value"`       // m²K/W
	WindowUValue      float64 `json:"window_u_value"`     // W/m²K
	DoorUValue        float64 `json:"door_u_value"`       // W/m²K
}

// Result holds envelope U/R values and compliance flags.
type Result struct {
	WallUValue   float64 `json:"wall_u_value"`   // W/m²K
	WallRValue   float64 `json:"wall_r_value"`   // m²K/W
	RoofUValue   float64 `json:"roof_u_value"`   // W/m²K
	RoofRValue   float64 `json:"roof_r_value"`   // m²K/W
	WindowUValue float64 `json:"window_u_value"` // W/m²K
	DoorUValue   float64 `json:"door_u_value"`   // W/m²K

	// Layer breakdown of the wall R-value (m²K/W)
	BrickLayerR      float64 `json:"brick_layer_r"`
	PlasterLayerR    float64 `json:"plaster_layer_r"`
	InsulationLayerR float64 `json:"insulation_layer_r"`

	WallCompliant   bool `json:"wall_compliant"`
	RoofCompliant   bool `json:"roof_compliant"`
	WindowCompliant bool `json:"window_compliant"`

	// R-value minimums are reported, not enforced.
	WallMeetsMinR bool `json:"wall_meets_min_r"`
	RoofMeetsMinR bool `json:"roof_meets_min_r"`

	Code Code `json:"code"`
}

// Compliant reports whether walls, roof and windows all meet the code.
func (r Result) Compliant() bool {
	return r.WallCompliant && r.RoofCompliant && r.WindowCompliant
}

// Compute evaluates the envelope against the energy code. A zero-value code
// (no name) is replaced by DefaultCode.
func Compute(env Envelope, code Code) Result {
	if code.Name == "" {
		code = DefaultCode
	}

	r := Result{
		RoofUValue:   env.RoofUValue,
		RoofRValue:   env.RoofRValue,
		WindowUValue: env.WindowUValue,
		DoorUValue:   env.DoorUValue,
		Code:         code,
	}

	if env.BrickConductivity > 0 {
		r.BrickLayerR = env.WallThickness / env.BrickConductivity
	}
	r.PlasterLayerR = PlasterThickness / PlasterConductivity
	r.InsulationLayerR = env.InsulationRValue

	r.WallRValue = r.BrickLayerR + r.PlasterLayerR + r.InsulationLayerR
	r.WallUValue = 1 / r.WallRValue

	r.WallCompliant = r.WallUValue <= code.MaxUValueWalls
	r.RoofCompliant = r.RoofUValue <= code.MaxUValueRoof
	r.WindowCompliant = r.WindowUValue <= code.MaxUValueWindow

	r.WallMeetsMinR = r.WallRValue >= code.MinRValueWalls
	r.RoofMeetsMinR = r.RoofRValue >= code.MinRValueRoof

	return r
}
