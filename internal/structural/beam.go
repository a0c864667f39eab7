package structural

import (
	"fmt"
	"math"
)

// BeamDesign holds the sizing of a singly reinforced rectangular beam.
type BeamDesign struct {
	// Loading
	Span         float64 `json:"span"`          // m
	LiveLoad     float64 `json:"live_load"`     // kN/m²
	DeadLoad     float64 `json:"dead_load"`     // kN/m²
	LineLoad     float64 `json:"line_load"`     // w (kN/m)
	DesignMoment float64 `json:"design_moment"` // M (kN-m)

	// Section (mm)
	Width          float64 `json:"width"`
	EffectiveDepth float64 `json:"effective_depth"`
	Depth          float64 `json:"depth"`

	// Reinforcement
	SteelArea       float64 `json:"steel_area"` // Ast (mm²)
	BarCount        int     `json:"bar_count"`
	BarDiameter     int     `json:"bar_diameter"`     // mm
	StirrupDiameter int     `json:"stirrup_diameter"` // mm
	StirrupSpacing  float64 `json:"stirrup_spacing"`  // mm c/c

	// Status
	FormulaValid bool   `json:"formula_valid"`
	IsAdequate   bool   `json:"is_adequate"`
	Message      string `json:"message"`
}

// DesignBeam sizes a beam for the given span (m) and live/dead loads (kN/m²).
//
// The load is taken as a triangular distribution, w = (D+L)·span/2, and the
// moment as w·span²/10. The effective depth is the limiting depth for the
// moment at b = 300mm. When the steel-area radicand is not positive the
// section is reported as over-reinforced with no steel rather than NaN.
func DesignBeam(span, liveLoad, deadLoad float64) BeamDesign {
	b := BeamDesign{
		Span:            span,
		LiveLoad:        liveLoad,
		DeadLoad:        deadLoad,
		Width:           BeamWidth,
		BarDiameter:     MainBarDiameter,
		StirrupDiameter: TieDiameter,
		StirrupSpacing:  StirrupSpacing,
	}

	b.LineLoad = (deadLoad + liveLoad) * span / 2
	b.DesignMoment = b.LineLoad * span * span / MomentCoefficient

	if b.DesignMoment <= 0 || math.IsNaN(b.DesignMoment) {
		b.Message = fmt.Sprintf("No positive design moment (M=%.2f kN-m); beam not sized", b.DesignMoment)
		return b
	}

	mNmm := b.DesignMoment * 1e6
	b.EffectiveDepth = math.Sqrt(mNmm / (LimitingMomentFactor * Fck * BeamWidth))
	b.Depth = b.EffectiveDepth + BeamCover

	ast, ok := tensionSteelArea(mNmm, b.EffectiveDepth)
	if !ok {
		b.Message = "Over-reinforced section: steel area formula invalid (1 - 4.6Mu/(fck·b·d²) < 0)"
		return b
	}

	b.FormulaValid = true
	b.SteelArea = ast
	b.BarCount = int(math.Ceil(ast / MainBarArea))
	b.IsAdequate = true
	b.Message = "Design OK - Section is under-reinforced"

	return b
}

// tensionSteelArea solves the singly reinforced section for Ast (mm²):
//
//	Ast = (0.5·fck·b·d / fy) · (1 - √(1 - 4.6·Mu / (fck·b·d²)))
//
// It reports false when the radicand is negative or the depth is not positive.
func tensionSteelArea(mNmm, d float64) (float64, bool) {
	if d <= 0 {
		return 0, false
	}

	radicand := 1 - (4.6*mNmm)/(Fck*BeamWidth*d*d)
	if radicand < 0 || math.IsNaN(radicand) || math.IsInf(radicand, 0) {
		return 0, false
	}

	return (0.5 * Fck * BeamWidth * d / Fy) * (1 - math.Sqrt(radicand)), true
}
