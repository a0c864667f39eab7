package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/estimate"
	"github.com/alexiusacademia/goestimate/internal/project"
)

func sampleResult(t *testing.T) *estimate.Result {
	t.Helper()
	ctx := context.Background()
	repo, err := catalog.Open(ctx, "")
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	p, err := project.Load("../project/testdata/house.yaml")
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	res, err := estimate.Run(ctx, repo, p, estimate.Options{Currency: "AED", Now: func() time.Time { return at }})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	return res
}

func TestMoney(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "AED 0.00"},
		{1234.5, "AED 1,234.50"},
		{1234567.891, "AED 1,234,567.89"},
	}
	for _, tt := range tests {
		if got := Money("AED", tt.v); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	if got := Count(13607.2); got != "13,608" {
		t.Errorf("Count = %q, want 13,608", got)
	}
}

func TestPrintSummary(t *testing.T) {
	res := sampleResult(t)

	var buf bytes.Buffer
	if err := PrintSummary(&buf, res, ConsoleOptions{Gantt: true, CashFlow: true}); err != nil {
		t.Fatalf("PrintSummary: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"CONSTRUCTION ESTIMATE - AL NOOR RESIDENCE",
		"13,608 nos",
		"TOTAL COST: " + Money("AED", res.Summary.TotalCost),
		"THERMAL PERFORMANCE (ASHRAE 90.1-2019)",
		"Critical path",
		"CPM SCHEDULE",
		"Cumulative spend over 12 months",
		"[thermal_compliance]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestWritePDF(t *testing.T) {
	res := sampleResult(t)
	path := filepath.Join(t.TempDir(), "reports", "estimate.pdf")

	if err := WritePDF(path, res, PDFOptions{Charts: true}); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderPDF_NoCashFlow(t *testing.T) {
	res := sampleResult(t)
	res.CashFlow = nil

	var buf bytes.Buffer
	if err := RenderPDF(&buf, res, PDFOptions{Charts: true}); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty PDF")
	}
}
