package structural

// Fixed material assumptions for every member (IS 456 limit state method).
// These are not user inputs.
const (
	Fck = 20.0  // Concrete grade M20 (MPa)
	Fy  = 415.0 // Steel grade Fe415 (MPa)

	// Main reinforcement
	MainBarDiameter = 16    // mm
	MainBarArea     = 201.0 // mm² per 16mm bar

	// Footing mesh
	FootingBarDiameter = 12    // mm
	FootingBarArea     = 113.0 // mm² per 12mm bar

	// Links
	TieDiameter    = 8     // mm, column ties and beam stirrups
	StirrupSpacing = 150.0 // mm c/c
	MaxTieSpacing  = 300.0 // mm
	TieBarMultiple = 16    // ties at most 16 × main bar diameter
	ColumnSizeStep = 50.0  // mm, column sizes rounded up to this step

	// FootingSizeDivisions rounds footing sides up to the next 0.1 m.
	FootingSizeDivisions = 10.0
)

// Beam assumptions
const (
	BeamWidth       = 300.0 // mm
	BeamCover       = 50.0  // mm added to effective depth
	DefaultDeadLoad = 2.5   // kN/m²

	// LimitingMomentFactor is Mu,lim/(fck·b·d²) for Fe415.
	LimitingMomentFactor = 0.138

	// MomentCoefficient gives M = w·L²/10.
	MomentCoefficient = 10.0
)

// Column and footing assumptions
const (
	LoadFactor         = 1.5  // factored load = 1.5 × service load
	ColumnStressFactor = 0.4  // allowable concrete stress = 0.4 fck
	SteelStressFactor  = 0.67 // steel contribution = 0.67 fy
	ColumnSteelRatio   = 0.01 // 1% of gross area

	FootingMinDepth   = 0.3    // m
	FootingDepthRatio = 5.0    // depth = side / 5 when larger than the minimum
	FootingSteelRatio = 0.0012 // 0.12% of the side × depth section
)
