package lifecycle

import (
	"math"
	"testing"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/quantity"
)

func TestDiscountRate(t *testing.T) {
	tests := []struct {
		interest, inflation, want float64
	}{
		{0.08, 0.03, 0.05},
		{0.03, 0.03, 0.01},
		{0.02, 0.05, 0.01},
		{0.035, 0.03, 0.01},
	}
	for _, tt := range tests {
		if got := DiscountRate(tt.interest, tt.inflation); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DiscountRate(%v, %v) = %v, want %v", tt.interest, tt.inflation, got, tt.want)
		}
	}
}

func TestReplacements(t *testing.T) {
	tests := []struct {
		horizon, life, want int
	}{
		{30, 50, 0},
		{30, 30, 1},
		{30, 25, 1},
		{30, 15, 2},
		{30, 0, 0},
		{30, -5, 0},
	}
	for _, tt := range tests {
		if got := Replacements(tt.horizon, tt.life); got != tt.want {
			t.Errorf("Replacements(%d, %d) = %d, want %d", tt.horizon, tt.life, got, tt.want)
		}
	}
}

func TestCompute(t *testing.T) {
	components := []Component{
		{"Bricks", 100_000, 50},
		{"Windows", 42_000, 15},
		{"Insulation", 12_960, 20},
		{"Broken", 5_000, 0},
	}
	res := Compute(1_000_000, components, 0.08, 0.03, 30)

	if res.HorizonYears != 30 || math.Abs(res.DiscountRate-0.05) > 1e-12 {
		t.Fatalf("horizon/rate = %d/%v", res.HorizonYears, res.DiscountRate)
	}

	bricks := res.Lines[0]
	if bricks.Replacements != 0 || bricks.DiscountedCost != 0 {
		t.Errorf("bricks outlive the horizon: %+v", bricks)
	}

	windows := res.Lines[1]
	wantWindows := 42_000/math.Pow(1.05, 15) + 42_000/math.Pow(1.05, 30)
	if windows.Replacements != 2 || math.Abs(windows.DiscountedCost-wantWindows) > 1e-6 {
		t.Errorf("windows = %+v, want 2 replacements costing %v", windows, wantWindows)
	}

	insulation := res.Lines[2]
	wantInsulation := 12_960 / math.Pow(1.05, 20)
	if insulation.Replacements != 1 || math.Abs(insulation.DiscountedCost-wantInsulation) > 1e-6 {
		t.Errorf("insulation = %+v, want %v", insulation, wantInsulation)
	}

	if res.Lines[3].Replacements != 0 {
		t.Errorf("zero life should never be replaced: %+v", res.Lines[3])
	}

	if math.Abs(res.ReplacementPV-(wantWindows+wantInsulation)) > 1e-6 {
		t.Errorf("replacement PV = %v", res.ReplacementPV)
	}
	if math.Abs(res.TotalCost-(1_000_000+wantWindows+wantInsulation)) > 1e-6 {
		t.Errorf("total = %v", res.TotalCost)
	}
}

func TestCompute_DefaultHorizon(t *testing.T) {
	res := Compute(10, nil, 0.05, 0.02, 0)
	if res.HorizonYears != DefaultHorizonYears {
		t.Errorf("horizon = %d, want %d", res.HorizonYears, DefaultHorizonYears)
	}
	if res.TotalCost != 10 {
		t.Errorf("total with no components = %v, want 10", res.TotalCost)
	}
}

func TestComponents(t *testing.T) {
	m := quantity.Materials{
		Brick:      catalog.Brick{PricePerUnit: 10, LifecycleYears: 50},
		Cement:     catalog.Cement{PricePerBag: 400, LifecycleYears: 50},
		Steel:      catalog.Steel{PricePerKg: 65, LifecycleYears: 50},
		Roofing:    catalog.Roofing{PricePerUnit: 300, LifespanYears: 30},
		Door:       catalog.Door{Price: 5000, LifecycleYears: 30},
		Window:     catalog.Window{Price: 7000, LifecycleYears: 25},
		Insulation: catalog.Insulation{PricePerSqm: 60, LifecycleYears: 40},
	}
	s := quantity.Summary{Bricks: 1000, CementBags: 10, SteelTons: 2, RoofingUnits: 84, Doors: 4, Windows: 6}
	c := quantity.Calculations{WallArea: 216}

	comps := Components(c, s, m)
	want := map[string]Component{
		"Bricks":     {"Bricks", 10_000, 50},
		"Cement":     {"Cement", 4_000, 50},
		"Steel":      {"Steel", 130_000, 50},
		"Roofing":    {"Roofing", 25_200, 30},
		"Doors":      {"Doors", 20_000, 30},
		"Windows":    {"Windows", 42_000, 25},
		"Insulation": {"Insulation", 12_960, 40},
	}
	if len(comps) != len(want) {
		t.Fatalf("got %d components, want %d", len(comps), len(want))
	}
	for _, got := range comps {
		w := want[got.Name]
		if math.Abs(got.BaseCost-w.BaseCost) > 1e-9 || got.LifecycleYears != w.LifecycleYears {
			t.Errorf("%s = %+v, want %+v", got.Name, got, w)
		}
	}
}
