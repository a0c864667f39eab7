package structural

import (
	"fmt"
	"math"
)

// FootingDesign holds the sizing of a square isolated footing.
type FootingDesign struct {
	ColumnLoad   float64 `json:"column_load"`   // kN
	SoilCapacity float64 `json:"soil_capacity"` // kN/m²

	AreaRequired float64 `json:"area_required"` // m²
	Size         float64 `json:"size"`          // Side of the square footing (m)
	Depth        float64 `json:"depth"`         // m

	SteelArea   float64 `json:"steel_area"` // mm²
	BarsEachWay int     `json:"bars_each_way"`
	BarDiameter int     `json:"bar_diameter"` // mm

	SoilPressure float64 `json:"soil_pressure"` // kN/m² under the provided footing

	IsAdequate bool   `json:"is_adequate"`
	Message    string `json:"message"`
}

// DesignFooting sizes an isolated footing for a column load (kN) on soil of
// the given bearing capacity (kN/m²).
func DesignFooting(columnLoadKN, soilCapacityKNm2 float64) FootingDesign {
	f := FootingDesign{
		ColumnLoad:   columnLoadKN,
		SoilCapacity: soilCapacityKNm2,
		BarDiameter:  FootingBarDiameter,
	}

	if soilCapacityKNm2 <= 0 {
		f.Message = fmt.Sprintf("Invalid soil bearing capacity %.2f kN/m²; footing not sized", soilCapacityKNm2)
		return f
	}
	if columnLoadKN <= 0 {
		f.Message = fmt.Sprintf("No column load (P=%.2f kN); footing not sized", columnLoadKN)
		return f
	}

	f.AreaRequired = columnLoadKN / soilCapacityKNm2
	f.Size = math.Ceil(math.Sqrt(f.AreaRequired)*FootingSizeDivisions) / FootingSizeDivisions
	f.Depth = math.Max(FootingMinDepth, f.Size/FootingDepthRatio)

	f.SteelArea = FootingSteelRatio * f.Size * f.Depth * 1e6
	f.BarsEachWay = int(math.Ceil(f.SteelArea / (2 * FootingBarArea)))

	f.SoilPressure = columnLoadKN / (f.Size * f.Size)
	f.IsAdequate = f.SoilPressure <= soilCapacityKNm2*(1+1e-9)
	if f.IsAdequate {
		f.Message = "Design OK - Soil pressure within bearing capacity"
	} else {
		f.Message = fmt.Sprintf("Soil pressure %.2f kN/m² exceeds capacity %.2f kN/m²", f.SoilPressure, soilCapacityKNm2)
	}

	return f
}
