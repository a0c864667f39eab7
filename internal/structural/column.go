package structural

import (
	"fmt"
	"math"
)

// ColumnDesign holds the sizing of a square tied column.
type ColumnDesign struct {
	AxialLoad    float64 `json:"axial_load"`    // Service load P (kN)
	FactoredLoad float64 `json:"factored_load"` // Pu (kN)
	Height       float64 `json:"height"`        // m

	GrossAreaRequired float64 `json:"gross_area_required"` // mm²
	Size              float64 `json:"size"`                // Side of the square section (mm)

	SteelArea   float64 `json:"steel_area"` // mm²
	BarCount    int     `json:"bar_count"`
	BarDiameter int     `json:"bar_diameter"` // mm

	TieDiameter int     `json:"tie_diameter"` // mm
	TieSpacing  float64 `json:"tie_spacing"`  // mm c/c

	AxialCapacity float64 `json:"axial_capacity"` // kN, with the provided bars

	IsAdequate bool   `json:"is_adequate"`
	Message    string `json:"message"`
}

// DesignColumn sizes a square column for a service axial load (kN).
func DesignColumn(axialLoadKN, height float64) ColumnDesign {
	c := ColumnDesign{
		AxialLoad:   axialLoadKN,
		Height:      height,
		BarDiameter: MainBarDiameter,
		TieDiameter: TieDiameter,
	}

	puN := LoadFactor * axialLoadKN * 1000
	c.FactoredLoad = puN / 1000

	if puN <= 0 {
		c.Message = fmt.Sprintf("No axial load (P=%.2f kN); column not sized", axialLoadKN)
		return c
	}

	c.GrossAreaRequired = puN / (ColumnStressFactor * Fck)
	c.Size = math.Ceil(math.Sqrt(c.GrossAreaRequired)/ColumnSizeStep) * ColumnSizeStep

	c.SteelArea = ColumnSteelRatio * c.Size * c.Size
	c.BarCount = int(math.Ceil(c.SteelArea / MainBarArea))

	c.TieSpacing = math.Min(math.Min(TieBarMultiple*MainBarDiameter, MaxTieSpacing), c.Size)

	asc := float64(c.BarCount) * MainBarArea
	ag := c.Size * c.Size
	c.AxialCapacity = (ColumnStressFactor*Fck*(ag-asc) + SteelStressFactor*Fy*asc) / 1000

	c.IsAdequate = c.AxialCapacity >= c.FactoredLoad
	if c.IsAdequate {
		c.Message = "Design OK - Capacity exceeds factored load"
	} else {
		c.Message = fmt.Sprintf("Column inadequate: capacity %.2f kN < Pu %.2f kN", c.AxialCapacity, c.FactoredLoad)
	}

	return c
}
