package valueeng

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/quantity"
)

func openCatalog(t *testing.T) *catalog.Repository {
	t.Helper()
	repo, err := catalog.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func selectMaterials(t *testing.T, repo *catalog.Repository, brick, cement, steel, roofing string) quantity.Materials {
	t.Helper()
	ctx := context.Background()
	var m quantity.Materials
	var err error
	if m.Brick, err = repo.Brick(ctx, brick); err != nil {
		t.Fatal(err)
	}
	if m.Cement, err = repo.Cement(ctx, cement); err != nil {
		t.Fatal(err)
	}
	if m.Steel, err = repo.Steel(ctx, steel, 0); err != nil {
		t.Fatal(err)
	}
	if m.Roofing, err = repo.Roofing(ctx, roofing); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSuggest(t *testing.T) {
	repo := openCatalog(t)
	m := selectMaterials(t, repo, "Concrete Block", "White Cement", "Fe 550", "Solar Tiles")
	s := quantity.Summary{Bricks: 1000, CementBags: 100, SteelTons: 2, RoofingUnits: 50}

	got, err := Suggest(context.Background(), repo, m, s, "AED")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 suggestions, got %d: %+v", len(got), got)
	}

	want := []struct {
		category catalog.Category
		name     string
		savings  float64
	}{
		{catalog.CategoryBricks, "Engineering Brick", (30 - 15) * 1000},
		{catalog.CategoryCement, "OPC 43 Grade", (600 - 400) * 100},
		{catalog.CategorySteel, "Fe 500", (80 - 70) * 2000},
		{catalog.CategoryRoofing, "Concrete Tiles", (500 - 12) * 50},
	}
	for i, w := range want {
		if got[i].Category != w.category || got[i].Alternative.Name != w.name {
			t.Errorf("suggestion %d = %s/%s, want %s/%s", i, got[i].Category, got[i].Alternative.Name, w.category, w.name)
		}
		if math.Abs(got[i].Savings-w.savings) > 1e-6 {
			t.Errorf("%s savings = %v, want %v", w.category, got[i].Savings, w.savings)
		}
	}

	if !strings.HasPrefix(got[0].Text, "Consider using Engineering Brick bricks instead (AED 15000.00 savings") {
		t.Errorf("unexpected text %q", got[0].Text)
	}
	if !strings.Contains(got[2].Text, "500 MPa yield strength") {
		t.Errorf("unexpected steel text %q", got[2].Text)
	}
	if math.Abs(TotalSavings(got)-(15000+20000+20000+24400)) > 1e-6 {
		t.Errorf("total savings = %v", TotalSavings(got))
	}
}

func TestSuggest_WeakerAlternativeExcluded(t *testing.T) {
	repo := openCatalog(t)
	// Fly Ash Brick is cheaper than Concrete Block but only 12 of 15 MPa.
	m := selectMaterials(t, repo, "Concrete Block", "OPC 43 Grade", "Fe 415", "Concrete Tiles")

	got, err := Suggest(context.Background(), repo, m, quantity.Summary{Bricks: 10}, "AED")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range got {
		if s.Alternative.Name == "Fly Ash Brick" {
			t.Errorf("weaker brick suggested: %+v", s)
		}
	}
}

func TestSuggest_NoneForCheapestSelection(t *testing.T) {
	repo := openCatalog(t)
	m := selectMaterials(t, repo, "Standard Red Brick", "PPC", "Fe 415", "Concrete Tiles")

	got, err := Suggest(context.Background(), repo, m, quantity.Summary{}, "AED")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %+v", got)
	}
}

type failingCatalog struct {
	catalog.Catalog
}

func (failingCatalog) CheaperAlternatives(context.Context, catalog.Category, float64, float64) ([]catalog.Option, error) {
	return nil, errors.New("database is locked")
}

func TestSuggest_PropagatesCatalogError(t *testing.T) {
	_, err := Suggest(context.Background(), failingCatalog{}, quantity.Materials{}, quantity.Summary{}, "AED")
	if err == nil || !strings.Contains(err.Error(), "database is locked") {
		t.Errorf("expected wrapped catalog error, got %v", err)
	}
}

type stubCatalog struct {
	catalog.Catalog
	options []catalog.Option
}

func (s stubCatalog) CheaperAlternatives(_ context.Context, category catalog.Category, price, minPerf float64) ([]catalog.Option, error) {
	var out []catalog.Option
	for _, o := range s.options {
		if o.Category == category && o.Price < price && o.Performance >= minPerf {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestSuggest_StrengthThreshold(t *testing.T) {
	stub := stubCatalog{options: []catalog.Option{
		{Category: catalog.CategoryBricks, Name: "At ninety", Price: 8, Performance: 18},
		{Category: catalog.CategoryBricks, Name: "Below ninety", Price: 5, Performance: 17.9},
	}}
	m := quantity.Materials{}
	m.Brick.Name = "Selected"
	m.Brick.PricePerUnit = 10
	m.Brick.CompressiveStrength = 20

	got, err := Suggest(context.Background(), stub, m, quantity.Summary{Bricks: 100}, "AED")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Alternative.Name != "At ninety" {
		t.Fatalf("expected only the 90%% alternative, got %+v", got)
	}
	if got[0].Savings != 200 {
		t.Errorf("savings = %v, want 200", got[0].Savings)
	}
}
