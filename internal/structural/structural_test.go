package structural

import (
	"math"
	"testing"
)

func TestDesignBeam(t *testing.T) {
	b := DesignBeam(10, 3, DefaultDeadLoad)

	if math.Abs(b.LineLoad-27.5) > 1e-9 {
		t.Errorf("line load = %v kN/m, want 27.5", b.LineLoad)
	}
	if math.Abs(b.DesignMoment-275) > 1e-9 {
		t.Errorf("design moment = %v kN-m, want 275", b.DesignMoment)
	}
	if math.Abs(b.EffectiveDepth-576.30) > 0.01 {
		t.Errorf("effective depth = %.2f mm, want ≈ 576.30", b.EffectiveDepth)
	}
	if math.Abs(b.Depth-(b.EffectiveDepth+BeamCover)) > 1e-9 {
		t.Errorf("total depth = %v, want d + %v", b.Depth, BeamCover)
	}
	if math.Abs(b.SteelArea-1648.43) > 0.01 {
		t.Errorf("steel area = %.2f mm², want ≈ 1648.43", b.SteelArea)
	}
	if b.BarCount != 9 {
		t.Errorf("bar count = %d, want 9", b.BarCount)
	}
	if b.Width != 300 {
		t.Errorf("width = %v, want 300", b.Width)
	}
	if !b.FormulaValid || !b.IsAdequate {
		t.Errorf("expected valid adequate design, got %q", b.Message)
	}
}

func TestDesignBeamZeroSpan(t *testing.T) {
	b := DesignBeam(0, 3, DefaultDeadLoad)

	if b.IsAdequate || b.FormulaValid {
		t.Error("zero span beam should not be reported adequate")
	}
	if math.IsNaN(b.SteelArea) || math.IsNaN(b.EffectiveDepth) {
		t.Error("zero span beam produced NaN")
	}
	if b.Message == "" {
		t.Error("expected a warning message")
	}
}

func TestTensionSteelAreaNegativeRadicand(t *testing.T) {
	// 275 kN-m on a 100mm effective depth is far beyond the limiting moment.
	ast, ok := tensionSteelArea(275e6, 100)
	if ok {
		t.Fatal("expected the formula to be flagged invalid")
	}
	if ast != 0 || math.IsNaN(ast) {
		t.Errorf("steel area = %v, want 0", ast)
	}

	if _, ok := tensionSteelArea(275e6, 0); ok {
		t.Error("zero depth should be flagged invalid")
	}
}

func TestDesignColumn(t *testing.T) {
	c := DesignColumn(500, 3)

	if math.Abs(c.FactoredLoad-750) > 1e-9 {
		t.Errorf("factored load = %v kN, want 750", c.FactoredLoad)
	}
	if c.Size != 350 {
		t.Errorf("size = %v mm, want 350", c.Size)
	}
	if math.Abs(c.SteelArea-1225) > 1e-9 {
		t.Errorf("steel area = %v mm², want 1225", c.SteelArea)
	}
	if c.BarCount != 7 {
		t.Errorf("bar count = %d, want 7", c.BarCount)
	}
	if c.TieSpacing != 256 {
		t.Errorf("tie spacing = %v mm, want 256", c.TieSpacing)
	}
	if !c.IsAdequate {
		t.Errorf("expected adequate column: %s", c.Message)
	}
	if c.AxialCapacity < c.FactoredLoad {
		t.Errorf("capacity %.2f kN below factored load %.2f kN", c.AxialCapacity, c.FactoredLoad)
	}
	// 0.4·20·(350² - 7·201) + 0.67·415·(7·201), in kN
	if math.Abs(c.AxialCapacity-1359.96035) > 1e-6 {
		t.Errorf("axial capacity = %v kN, want 1359.96035", c.AxialCapacity)
	}
}

func TestDesignColumnSizeRounding(t *testing.T) {
	for _, load := range []float64{10, 120, 480, 1500, 4200} {
		c := DesignColumn(load, 3)
		if math.Mod(c.Size, ColumnSizeStep) != 0 {
			t.Errorf("load %v: size %v not a multiple of %v", load, c.Size, ColumnSizeStep)
		}
		if c.Size*c.Size < c.GrossAreaRequired {
			t.Errorf("load %v: size %v too small for Ag %.0f", load, c.Size, c.GrossAreaRequired)
		}
		if c.TieSpacing > c.Size || c.TieSpacing > MaxTieSpacing {
			t.Errorf("load %v: tie spacing %v exceeds limits", load, c.TieSpacing)
		}
	}

	small := DesignColumn(10, 3)
	if small.Size != 50 || small.TieSpacing != 50 {
		t.Errorf("small column size/ties = %v/%v, want 50/50", small.Size, small.TieSpacing)
	}
}

func TestDesignFooting(t *testing.T) {
	f := DesignFooting(500, 150)

	if math.Abs(f.Size-1.9) > 1e-9 {
		t.Errorf("size = %v m, want 1.9", f.Size)
	}
	if math.Abs(f.Depth-0.38) > 1e-9 {
		t.Errorf("depth = %v m, want 0.38", f.Depth)
	}
	if math.Abs(f.SteelArea-866.4) > 1e-6 {
		t.Errorf("steel area = %v mm², want 866.4", f.SteelArea)
	}
	if f.BarsEachWay != 4 {
		t.Errorf("bars each way = %d, want 4", f.BarsEachWay)
	}
	if math.Abs(f.SoilPressure-138.504) > 0.001 {
		t.Errorf("soil pressure = %.3f, want ≈ 138.504", f.SoilPressure)
	}
	if !f.IsAdequate {
		t.Errorf("expected adequate footing: %s", f.Message)
	}
}

func TestDesignFootingMinimumDepth(t *testing.T) {
	f := DesignFooting(50, 200)
	if f.Depth != FootingMinDepth {
		t.Errorf("depth = %v, want minimum %v", f.Depth, FootingMinDepth)
	}
}

func TestDesignFootingInvalidSoil(t *testing.T) {
	f := DesignFooting(500, 0)
	if f.IsAdequate {
		t.Error("zero soil capacity should not be adequate")
	}
	if math.IsInf(f.AreaRequired, 0) || math.IsNaN(f.SoilPressure) {
		t.Error("zero soil capacity produced a non-finite result")
	}
}

func TestDesignMembers(t *testing.T) {
	d := DesignMembers(10, 3, 500, 3, 150)
	if !d.Adequate() {
		t.Errorf("expected all members adequate: beam=%q column=%q footing=%q",
			d.Beam.Message, d.Column.Message, d.Footing.Message)
	}
	if d.Beam.DeadLoad != DefaultDeadLoad {
		t.Errorf("beam dead load = %v, want default %v", d.Beam.DeadLoad, DefaultDeadLoad)
	}
}
