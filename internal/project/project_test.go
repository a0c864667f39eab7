package project

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	p, err := Load("testdata/house.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Name != "Al Noor Residence" {
		t.Errorf("name = %q, want %q", p.Name, "Al Noor Residence")
	}
	if p.Dimensions.Floors != 2 {
		t.Errorf("floors = %d, want 2", p.Dimensions.Floors)
	}
	if p.Dimensions.ColumnSize != (CrossSection{Width: 0.3, Depth: 0.3}) {
		t.Errorf("column_size = %+v, want 0.3x0.3", p.Dimensions.ColumnSize)
	}
	if p.Dimensions.BeamSize != (CrossSection{Width: 0.3, Depth: 0.45}) {
		t.Errorf("beam_size = %+v, want 0.3x0.45", p.Dimensions.BeamSize)
	}
	if p.Construction.Method != MethodRCCFramed {
		t.Errorf("method = %q, want %q", p.Construction.Method, MethodRCCFramed)
	}
	if p.Materials.SteelDiameter != 10 {
		t.Errorf("steel_diameter_mm = %d, want 10", p.Materials.SteelDiameter)
	}
	if p.Finance.InterestRate != 0.08 {
		t.Errorf("interest_rate = %v, want 0.08", p.Finance.InterestRate)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("sample project should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("testdata/nope.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_JSON(t *testing.T) {
	doc := `{"name": "Shed", ` +
		`"dimensions": {"length": 4, "column_size": "0.25x0.25", "beam_size": {"width": 0.2, "depth": 0.3}}, ` +
		`"construction": {"method": "steel-framed"}}`
	p, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Dimensions.ColumnSize.Area() != 0.0625 {
		t.Errorf("column area = %v, want 0.0625", p.Dimensions.ColumnSize.Area())
	}
	if p.Dimensions.BeamSize.Depth != 0.3 {
		t.Errorf("beam depth = %v, want 0.3", p.Dimensions.BeamSize.Depth)
	}
	if p.Construction.Method != MethodSteelFramed {
		t.Errorf("method = %q, want %q", p.Construction.Method, MethodSteelFramed)
	}
}

func TestCrossSection_JSON(t *testing.T) {
	var c CrossSection
	if err := json.Unmarshal([]byte(`"0.3x0.45"`), &c); err != nil {
		t.Fatal(err)
	}
	if c.Width != 0.3 || c.Depth != 0.45 {
		t.Errorf("got %+v", c)
	}
	if err := json.Unmarshal([]byte(`{"width": 0.2, "depth": 0.5}`), &c); err != nil {
		t.Fatal(err)
	}
	if c.Width != 0.2 || c.Depth != 0.5 {
		t.Errorf("got %+v", c)
	}
	if c.String() != "0.2x0.5" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestParseCrossSection(t *testing.T) {
	tests := []struct {
		in      string
		want    CrossSection
		wantErr bool
	}{
		{"0.3x0.45", CrossSection{0.3, 0.45}, false},
		{" 0.3 X 0.3 ", CrossSection{0.3, 0.3}, false},
		{"0.3", CrossSection{}, true},
		{"ax0.3", CrossSection{}, true},
		{"0.3xb", CrossSection{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCrossSection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMethod_UnmarshalText(t *testing.T) {
	tests := map[string]Method{
		"rcc_framed":           MethodRCCFramed,
		"RCC Framed Structure": MethodRCCFramed,
		"Load-Bearing":         MethodLoadBearing,
		"steel framed":         MethodSteelFramed,
		"timber":               Method("timber"),
	}
	for in, want := range tests {
		var m Method
		if err := m.UnmarshalText([]byte(in)); err != nil {
			t.Fatal(err)
		}
		if m != want {
			t.Errorf("UnmarshalText(%q) = %q, want %q", in, m, want)
		}
	}
	if Method("timber").Valid() {
		t.Error("timber should not be a valid method")
	}
	if MethodLoadBearing.String() != "Load Bearing Structure" {
		t.Errorf("String() = %q", MethodLoadBearing.String())
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	p, err := Load("testdata/house.yaml")
	if err != nil {
		t.Fatal(err)
	}
	p.Dimensions.Length = 0
	p.Dimensions.Floors = 0
	p.Construction.Method = "timber"
	p.Materials.Brick = ""
	p.Construction.Doors = -1

	err = p.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"dimensions.length",
		"dimensions.floors",
		"construction.method",
		"materials.brick",
		"construction.doors",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidate_RejectsNonFiniteAndOversized(t *testing.T) {
	base, err := os.ReadFile("testdata/house.yaml")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		old   string
		new   string
		field string
	}{
		{"nan length", "length: 10", "length: .nan", "dimensions.length"},
		{"infinite length", "length: 10", "length: .inf", "dimensions.length"},
		{"negative infinite wind", "wind_speed: 120", "wind_speed: -.inf", "loads.wind_speed"},
		{"nan duration", "duration_months: 12", "duration_months: .nan", "finance.duration_months"},
		{"oversized duration", "duration_months: 12", "duration_months: 1e12", "finance.duration_months"},
		{"too many floors", "floors: 2", "floors: 100000", "dimensions.floors"},
		{"nan roof angle", "roof_angle_deg: 0", "roof_angle_deg: .nan", "loads.roof_angle_deg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := string(base)
			if !strings.Contains(doc, tt.old) {
				t.Fatalf("fixture has no %q", tt.old)
			}
			p, err := Parse([]byte(strings.Replace(doc, tt.old, tt.new, 1)))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			err = p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error does not name %s:\n%v", tt.field, err)
			}
		})
	}
}
