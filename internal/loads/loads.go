// Package loads computes the environmental loads acting on the building:
// roof wind pressure and seismic base shear.
package loads

// Wind exposure coefficients (ASCE 7 velocity pressure method)
const (
	Kz  = 0.85 // Exposure C, open terrain
	Kzt = 1.0  // Flat terrain
	Kd  = 0.85 // Directionality factor

	// Air density term in qz = 0.613 Kz Kzt Kd V² (N/m², V in m/s)
	AirDensityTerm = 0.613
)

// External pressure coefficients by roof slope
const (
	CpFlat     = -0.9 // roof angle == 0, uplift
	CpLowPitch = -0.7 // 0 < angle < 30°
	CpSteep    = -0.5 // angle >= 30°
)

// Seismic equivalent static method (IS 1893)
const (
	// SpectralAcceleration is Sa/g for medium soil and a short period.
	SpectralAcceleration = 2.5

	// Gravity converts tonnes to kN.
	Gravity = 9.81
)

// KmhToMs converts km/h to m/s.
func KmhToMs(kmh float64) float64 {
	return kmh / 3.6
}

// PressureCoefficient returns Cp for the given roof angle in degrees.
func PressureCoefficient(roofAngleDeg float64) float64 {
	switch {
	case roofAngleDeg == 0:
		return CpFlat
	case roofAngleDeg < 30:
		return CpLowPitch
	default:
		return CpSteep
	}
}

// VelocityPressure returns qz in N/m² for a wind speed in km/h.
func VelocityPressure(windSpeedKmh float64) float64 {
	v := KmhToMs(windSpeedKmh)
	return AirDensityTerm * Kz * Kzt * Kd * v * v
}

// WindLoad returns the design roof wind pressure in kN/m².
// Negative values are uplift.
func WindLoad(windSpeedKmh, roofAngleDeg float64) float64 {
	return VelocityPressure(windSpeedKmh) * PressureCoefficient(roofAngleDeg) / 1000
}

// HorizontalCoefficient returns Ah = Z·I·(Sa/g) / 2R.
func HorizontalCoefficient(zoneFactor, importanceFactor, responseReduction float64) float64 {
	return (zoneFactor * importanceFactor * SpectralAcceleration) / (2 * responseReduction)
}

// SeismicBaseShear returns the design base shear in kN for a seismic weight
// given in tonnes.
func SeismicBaseShear(zoneFactor, importanceFactor, responseReduction, buildingWeightTons float64) float64 {
	ah := HorizontalCoefficient(zoneFactor, importanceFactor, responseReduction)
	return ah * buildingWeightTons * Gravity
}
