package cashflow

import (
	"math"
	"testing"
)

func TestCompute_SumsToTotal(t *testing.T) {
	for _, tc := range []struct {
		total  float64
		months float64
	}{
		{1_000_000, 12},
		{523_417.89, 7.9},
		{100, 1},
		{0, 6},
	} {
		points := Compute(tc.total, tc.months)
		if len(points) != int(tc.months) {
			t.Fatalf("len = %d, want %d", len(points), int(tc.months))
		}

		var sum, prev float64
		for i, p := range points {
			if p.Month != i+1 {
				t.Errorf("point %d has month %d", i, p.Month)
			}
			if p.Cumulative < prev {
				t.Errorf("cumulative decreased at month %d: %v < %v", p.Month, p.Cumulative, prev)
			}
			prev = p.Cumulative
			sum += p.Amount
		}

		if math.Abs(sum-tc.total) > 1e-6 {
			t.Errorf("sum of amounts = %v, want %v", sum, tc.total)
		}
		last := points[len(points)-1]
		if math.Abs(last.Cumulative-tc.total) > 1e-6 {
			t.Errorf("last cumulative = %v, want %v", last.Cumulative, tc.total)
		}
		if math.Abs(last.CumulativeFraction-1) > 1e-12 {
			t.Errorf("last fraction = %v, want 1", last.CumulativeFraction)
		}
	}
}

func TestCompute_Symmetric(t *testing.T) {
	points := Compute(1200, 12)
	if math.Abs(points[0].Amount-points[11].Amount) > 1e-9 {
		t.Errorf("first %v and last %v month should match", points[0].Amount, points[11].Amount)
	}
	peak := Peak(points)
	if peak.Month != 6 && peak.Month != 7 {
		t.Errorf("peak month = %d, want 6 or 7", peak.Month)
	}
}

func TestCompute_DegenerateDuration(t *testing.T) {
	for _, d := range []float64{0, 0.9, -3} {
		if got := Compute(1000, d); len(got) != 0 {
			t.Errorf("Compute(1000, %v) returned %d points", d, len(got))
		}
	}
	if p := Peak(nil); p.Month != 0 {
		t.Errorf("Peak(nil) = %+v", p)
	}
}

func TestSCurve(t *testing.T) {
	if SCurve(0) != 0 || SCurve(1) != 1 || SCurve(0.5) != 0.5 {
		t.Errorf("SCurve endpoints: %v %v %v", SCurve(0), SCurve(1), SCurve(0.5))
	}
}
