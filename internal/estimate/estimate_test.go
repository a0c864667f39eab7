package estimate

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alexiusacademia/goestimate/internal/advisory"
	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/project"
	"github.com/alexiusacademia/goestimate/internal/thermal"
)

func setup(t *testing.T) (*catalog.Repository, *project.Project) {
	t.Helper()
	repo, err := catalog.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	p, err := project.Load("../project/testdata/house.yaml")
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	return repo, p
}

func TestRun(t *testing.T) {
	repo, p := setup(t)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	res, err := Run(context.Background(), repo, p, Options{Now: func() time.Time { return fixed }})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.ID == "" || !res.GeneratedAt.Equal(fixed) {
		t.Errorf("id/time = %q/%v", res.ID, res.GeneratedAt)
	}
	if res.Currency != DefaultCurrency {
		t.Errorf("currency = %q", res.Currency)
	}
	if res.Materials.Steel.Diameter != 10 || res.Materials.Steel.ID != 4 {
		t.Errorf("expected the 10 mm Fe 415 row, got %+v", res.Materials.Steel)
	}
	if res.EnergyCode.Name != "ASHRAE 90.1-2019" {
		t.Errorf("energy code = %q", res.EnergyCode.Name)
	}

	t.Run("quantities", func(t *testing.T) {
		if res.Calculations.WallArea != 216 {
			t.Errorf("wall area = %v, want 216", res.Calculations.WallArea)
		}
		if math.Abs(res.Summary.Bricks-13608) > 1e-9 {
			t.Errorf("bricks = %v, want 13608", res.Summary.Bricks)
		}
		if res.Summary.TotalCost != res.Calculations.TotalCost {
			t.Errorf("summary total %v != calculations total %v", res.Summary.TotalCost, res.Calculations.TotalCost)
		}
	})

	t.Run("cash flow sums to total", func(t *testing.T) {
		if len(res.CashFlow) != 12 {
			t.Fatalf("expected 12 months, got %d", len(res.CashFlow))
		}
		last := res.CashFlow[len(res.CashFlow)-1]
		if math.Abs(last.Cumulative-res.Summary.TotalCost) > 1e-6*res.Summary.TotalCost {
			t.Errorf("cumulative = %v, want %v", last.Cumulative, res.Summary.TotalCost)
		}
	})

	t.Run("schedule ends with finishing", func(t *testing.T) {
		fin, ok := res.Schedule.Activity("Finishing")
		if !ok {
			t.Fatal("Finishing missing from schedule")
		}
		if math.Abs(fin.EarlyFinish-res.Schedule.ProjectDuration) > 1e-9 {
			t.Errorf("finishing EF %v != duration %v", fin.EarlyFinish, res.Schedule.ProjectDuration)
		}
	})

	t.Run("lifecycle starts from total cost", func(t *testing.T) {
		if res.Lifecycle.InitialCost != res.Summary.TotalCost {
			t.Errorf("initial = %v", res.Lifecycle.InitialCost)
		}
		if res.Lifecycle.HorizonYears != 30 {
			t.Errorf("horizon = %d", res.Lifecycle.HorizonYears)
		}
	})

	t.Run("alternatives exclude selection", func(t *testing.T) {
		if len(res.Alternatives) != len(AlternativeCategories) {
			t.Fatalf("got %d alternative groups", len(res.Alternatives))
		}
		for _, group := range res.Alternatives {
			for _, o := range group.Options {
				if (group.Category == catalog.CategoryBricks && o.Name == "Standard Red Brick") ||
					(group.Category == catalog.CategoryRoofing && o.Name == "Clay Tiles") {
					t.Errorf("selected row listed as alternative: %+v", o)
				}
			}
		}
	})

	t.Run("advisories", func(t *testing.T) {
		// Clay tiles at U 2.5 exceed the ASHRAE roof limit of 0.27.
		if !res.Advisory.Has(advisory.CodeThermalCompliance) {
			t.Errorf("expected a roof compliance warning, got %+v", res.Advisory.All())
		}
		if res.Advisory.Has(advisory.CodeWindRating) {
			t.Errorf("120 km/h does not exceed the clay tile rating: %+v", res.Advisory.Warnings)
		}
		if res.Advisory.Has(advisory.CodeEnergyCodeDefault) {
			t.Error("energy code should resolve from the catalog")
		}
		if res.Structural.Beam.IsAdequate == res.Advisory.Has(advisory.CodeBeamSection) {
			t.Errorf("beam adequacy %v disagrees with advisory", res.Structural.Beam.IsAdequate)
		}
	})
}

func TestRun_InvalidProject(t *testing.T) {
	repo, p := setup(t)
	p.Dimensions.Length = 0

	_, err := Run(context.Background(), repo, p, Options{})
	if !errors.Is(err, ErrInvalidProject) {
		t.Errorf("expected ErrInvalidProject, got %v", err)
	}
}

func TestRun_UnresolvedMaterial(t *testing.T) {
	repo, p := setup(t)
	p.Materials.Roofing = "Thatch"

	_, err := Run(context.Background(), repo, p, Options{})
	var unresolved *catalog.UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedError, got %v", err)
	}
	if unresolved.Category != catalog.CategoryRoofing || unresolved.Name != "Thatch" {
		t.Errorf("unresolved = %+v", unresolved)
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Error("unresolved error should match ErrNotFound")
	}
}

type noEnergyCodes struct {
	*catalog.Repository
}

func (noEnergyCodes) EnergyCode(_ context.Context, name string) (catalog.EnergyCode, error) {
	return catalog.EnergyCode{}, &catalog.UnresolvedError{Category: catalog.CategoryEnergyCodes, Name: name}
}

func TestResolve_EnergyCodeFallback(t *testing.T) {
	repo, p := setup(t)

	in, report, err := Resolve(context.Background(), noEnergyCodes{repo}, p)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.EnergyCode != thermal.DefaultCode {
		t.Errorf("energy code = %+v, want default", in.EnergyCode)
	}
	if len(report.Notices) != 1 || report.Notices[0].Code != advisory.CodeEnergyCodeDefault {
		t.Errorf("expected one default-code notice, got %+v", report.Notices)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("fallback is not a warning: %+v", report.Warnings)
	}
}

type brokenEnergyCodes struct {
	*catalog.Repository
}

func (brokenEnergyCodes) EnergyCode(context.Context, string) (catalog.EnergyCode, error) {
	return catalog.EnergyCode{}, errors.New("disk I/O error")
}

func TestResolve_PropagatesCatalogFailure(t *testing.T) {
	repo, p := setup(t)

	if _, _, err := Resolve(context.Background(), brokenEnergyCodes{repo}, p); err == nil {
		t.Error("expected storage error to propagate")
	}
}

func TestEnvelope(t *testing.T) {
	repo, p := setup(t)
	in, _, err := Resolve(context.Background(), repo, p)
	if err != nil {
		t.Fatal(err)
	}

	env := Envelope(p.Dimensions, in.Materials)
	if env.WallThickness != 0.2 || env.BrickConductivity != 0.8 || env.InsulationRValue != 2.85 {
		t.Errorf("wall inputs = %+v", env)
	}
	if env.RoofUValue != 2.5 || env.WindowUValue != 2.8 || env.DoorUValue != 3.0 {
		t.Errorf("element U-values = %+v", env)
	}
}
