package loads

import (
	"math"
	"testing"
)

func TestWindLoadFlatRoof(t *testing.T) {
	got := WindLoad(100, 0)

	// V = 27.78 m/s, qz ≈ 362.1 Pa, Cp = -0.9
	if math.Abs(got-(-0.326)) > 0.001 {
		t.Errorf("wind load = %.4f kN/m², want ≈ -0.326", got)
	}
	if got >= 0 {
		t.Error("flat roof wind load should be uplift (negative)")
	}
}

func TestVelocityPressure(t *testing.T) {
	qz := VelocityPressure(100)
	if math.Abs(qz-362.1) > 0.5 {
		t.Errorf("qz = %.2f Pa, want ≈ 362.1", qz)
	}
}

func TestPressureCoefficient(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{0, -0.9},
		{10, -0.7},
		{29.9, -0.7},
		{30, -0.5},
		{45, -0.5},
	}
	for _, tt := range tests {
		if got := PressureCoefficient(tt.angle); got != tt.want {
			t.Errorf("Cp(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestSeismicBaseShear(t *testing.T) {
	ah := HorizontalCoefficient(0.24, 1.5, 3.0)
	if math.Abs(ah-0.15) > 1e-12 {
		t.Errorf("Ah = %v, want 0.15", ah)
	}

	v := SeismicBaseShear(0.24, 1.5, 3.0, 500)
	if math.Abs(v-735.75) > 1e-9 {
		t.Errorf("base shear = %.4f kN, want 735.75", v)
	}
}

func TestSeismicBaseShearZeroWeight(t *testing.T) {
	if v := SeismicBaseShear(0.36, 1.5, 3.0, 0); v != 0 {
		t.Errorf("base shear for zero weight = %v, want 0", v)
	}
}
