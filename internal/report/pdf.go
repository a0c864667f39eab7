package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"gonum.org/v1/plot"

	"github.com/alexiusacademia/goestimate/internal/diagram"
	"github.com/alexiusacademia/goestimate/internal/estimate"
	"github.com/alexiusacademia/goestimate/internal/valueeng"
)

// PDFOptions controls the PDF report.
type PDFOptions struct {
	Charts bool // embed timeline, cash flow and schedule charts
}

const (
	pageWidth  = 180.0 // usable A4 width (mm)
	lineHeight = 6.0
)

type document struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	currency string
}

// WritePDF renders the estimate report to a PDF file at path.
func WritePDF(path string, r *estimate.Result, opts PDFOptions) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := RenderPDF(f, r, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderPDF writes the estimate report as PDF to w.
func RenderPDF(w io.Writer, r *estimate.Result, opts PDFOptions) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Construction Estimate - "+r.Project.Name, true)
	pdf.SetCreator("goestimate", true)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetModificationDate(r.GeneratedAt)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Estimate %s - page %d/{nb}", r.ID, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), currency: r.Currency}
	pdf.AddPage()

	d.title(r)
	d.projectDetails(r)
	d.materials(r)
	d.summary(r)
	d.labor(r)
	d.structural(r)
	d.thermal(r)
	d.lifecycle(r)
	d.valueEngineering(r)
	d.cashFlow(r)
	d.schedule(r)
	d.alternatives(r)
	if opts.Charts {
		if err := d.charts(r); err != nil {
			return err
		}
	}
	d.notes(r)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func (d *document) title(r *estimate.Result) {
	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.CellFormat(0, 12, d.tr("Construction Estimate Report"), "", 1, "C", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, lineHeight, d.tr(r.Project.Name), "", 1, "C", false, 0, "")
	d.pdf.CellFormat(0, lineHeight, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	d.pdf.Ln(4)
}

func (d *document) heading(text string) {
	if d.pdf.GetY() > 250 {
		d.pdf.AddPage()
	}
	d.pdf.Ln(3)
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.SetTextColor(30, 70, 120)
	d.pdf.CellFormat(0, 8, d.tr(text), "B", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(2)
}

func (d *document) keyValues(rows [][2]string) {
	for _, row := range rows {
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.CellFormat(65, lineHeight, d.tr(row[0]), "", 0, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.CellFormat(0, lineHeight, d.tr(row[1]), "", 1, "L", false, 0, "")
	}
}

// table draws a bordered table; widths are fractions of the page width.
func (d *document) table(headers []string, widths []float64, rows [][]string) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(220, 230, 241)
	for i, h := range headers {
		d.pdf.CellFormat(widths[i]*pageWidth, 7, d.tr(h), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		if d.pdf.GetY() > 270 {
			d.pdf.AddPage()
		}
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			d.pdf.CellFormat(widths[i]*pageWidth, 6, d.tr(cell), "1", 0, align, false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *document) paragraph(text string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
}

func (d *document) money(v float64) string {
	return Money(d.currency, v)
}

func (d *document) projectDetails(r *estimate.Result) {
	p := r.Project
	dim := p.Dimensions
	d.heading("Project Details")
	d.keyValues([][2]string{
		{"Client", p.Client},
		{"Location", p.Location},
		{"Date", p.Date},
		{"Estimate ID", r.ID},
		{"Construction method", p.Construction.Method.String()},
		{"Roof type", p.Construction.RoofType.String()},
		{"Climate zone", fmt.Sprintf("%s (%s)", r.Climate.Name, r.Climate.Description)},
		{"Seismic zone", fmt.Sprintf("%s (Z = %.2f)", r.Seismic.Name, r.Seismic.ZoneFactor)},
	})

	d.heading("Dimensions and Loads")
	d.keyValues([][2]string{
		{"Plan", fmt.Sprintf("%.2f m x %.2f m", dim.Length, dim.Width)},
		{"Floors", fmt.Sprintf("%d at %.2f m", dim.Floors, dim.Height)},
		{"Wall thickness", fmt.Sprintf("%.2f m", dim.WallThickness)},
		{"Footing", fmt.Sprintf("%.2f m deep, %.2f m wide", dim.FootingDepth, dim.FootingWidth)},
		{"Column / beam", fmt.Sprintf("%s / %s m", dim.ColumnSize, dim.BeamSize)},
		{"Slab thickness", fmt.Sprintf("%.2f m", dim.SlabThickness)},
		{"Live load", fmt.Sprintf("%.2f kN/m²", p.Loads.LiveLoad)},
		{"Wind speed", fmt.Sprintf("%.0f km/h", p.Loads.WindSpeed)},
		{"Soil bearing capacity", fmt.Sprintf("%.0f kN/m²", p.Loads.SoilCapacity)},
	})
}

func (d *document) materials(r *estimate.Result) {
	m := r.Materials
	d.heading("Selected Materials")
	d.table(
		[]string{"Category", "Selection", "Price", "Life (years)"},
		[]float64{0.2, 0.4, 0.25, 0.15},
		[][]string{
			{"Bricks", m.Brick.Name, d.money(m.Brick.PricePerUnit) + " /unit", fmt.Sprint(m.Brick.LifecycleYears)},
			{"Cement", m.Cement.Name, d.money(m.Cement.PricePerBag) + " /bag", fmt.Sprint(m.Cement.LifecycleYears)},
			{"Steel", fmt.Sprintf("%s %d mm", m.Steel.Name, m.Steel.Diameter), d.money(m.Steel.PricePerKg) + " /kg", fmt.Sprint(m.Steel.LifecycleYears)},
			{"Roofing", m.Roofing.Name, d.money(m.Roofing.PricePerUnit) + " /unit", fmt.Sprint(m.Roofing.LifespanYears)},
			{"Door", m.Door.Name, d.money(m.Door.Price), fmt.Sprint(m.Door.LifecycleYears)},
			{"Window", m.Window.Name, d.money(m.Window.Price), fmt.Sprint(m.Window.LifecycleYears)},
			{"Insulation", m.Insulation.Name, d.money(m.Insulation.PricePerSqm) + " /m²", fmt.Sprint(m.Insulation.LifecycleYears)},
		},
	)
}

func (d *document) summary(r *estimate.Result) {
	s := r.Summary
	c := r.Calculations
	d.heading("Summary Estimate")
	d.table(
		[]string{"Item", "Quantity", "Cost"},
		[]float64{0.4, 0.3, 0.3},
		[][]string{
			{"Bricks", Count(s.Bricks) + " nos", d.money(c.BrickCost)},
			{"Cement", Count(s.CementBags) + " bags", d.money(c.CementCost)},
			{"Steel", Number(s.SteelTons, 2) + " t", d.money(c.SteelCost)},
			{"Sand", Number(s.Sand, 2) + " m³", "-"},
			{"Aggregate", Number(s.Aggregate, 2) + " m³", "-"},
			{"Roofing", fmt.Sprintf("%d units", s.RoofingUnits), d.money(c.RoofingCost)},
			{"Doors", fmt.Sprintf("%d", s.Doors), d.money(c.DoorCost)},
			{"Windows", fmt.Sprintf("%d", s.Windows), d.money(c.WindowCost)},
			{"Insulation", Number(c.WallArea, 2) + " m²", d.money(c.InsulationCost)},
			{"Labor", "", d.money(c.LaborCost)},
			{"Transport", Number(c.TransportMass, 2) + " t", d.money(c.TransportCost)},
			{"Total", "", d.money(s.TotalCost)},
		},
	)
	d.pdf.Ln(2)
	d.keyValues([][2]string{
		{"Construction time", Number(s.ConstructionDays, 1) + " days"},
		{"Wind load", fmt.Sprintf("%.3f kN/m²", s.WindLoad)},
		{"Seismic base shear", Number(s.SeismicShear, 2) + " kN"},
		{"Soil pressure", Number(s.SoilPressure, 2) + " kN/m²"},
		{"Embodied carbon", Number(s.EmbodiedCarbon, 0) + " kgCO2e"},
	})
}

func (d *document) labor(r *estimate.Result) {
	d.heading("Labor Breakdown")
	rows := make([][]string, 0, len(r.Calculations.Labor))
	for _, l := range r.Calculations.Labor {
		rows = append(rows, []string{
			l.Activity,
			Number(l.Quantity, 2) + " " + l.Unit,
			Number(l.Rate, 2),
			fmt.Sprintf("%.2f", l.ClimateFactor),
			d.money(l.Cost),
		})
	}
	d.table([]string{"Activity", "Quantity", "Rate", "Climate factor", "Cost"},
		[]float64{0.24, 0.22, 0.14, 0.16, 0.24}, rows)
}

func (d *document) structural(r *estimate.Result) {
	s := r.Structural
	d.heading("Structural Design")
	d.table(
		[]string{"Member", "Size", "Reinforcement", "Status"},
		[]float64{0.15, 0.3, 0.35, 0.2},
		[][]string{
			{"Beam", fmt.Sprintf("%.0f x %.0f mm", s.Beam.Width, s.Beam.Depth),
				fmt.Sprintf("%d-%dmm, stirrups %dmm @ %.0f", s.Beam.BarCount, s.Beam.BarDiameter, s.Beam.StirrupDiameter, s.Beam.StirrupSpacing),
				passFail(s.Beam.IsAdequate)},
			{"Column", fmt.Sprintf("%.0f x %.0f mm", s.Column.Size, s.Column.Size),
				fmt.Sprintf("%d-%dmm, ties %dmm @ %.0f", s.Column.BarCount, s.Column.BarDiameter, s.Column.TieDiameter, s.Column.TieSpacing),
				passFail(s.Column.IsAdequate)},
			{"Footing", fmt.Sprintf("%.2f x %.2f x %.2f m", s.Footing.Size, s.Footing.Size, s.Footing.Depth),
				fmt.Sprintf("%d-%dmm each way", s.Footing.BarsEachWay, s.Footing.BarDiameter),
				passFail(s.Footing.IsAdequate)},
		},
	)
	for _, msg := range []string{s.Beam.Message, s.Column.Message, s.Footing.Message} {
		d.paragraph("- " + msg)
	}
}

func (d *document) thermal(r *estimate.Result) {
	t := r.Thermal
	d.heading("Thermal Performance - " + t.Code.Name)
	d.table(
		[]string{"Element", "U-value (W/m²K)", "Limit", "Compliant"},
		[]float64{0.25, 0.25, 0.25, 0.25},
		[][]string{
			{"Walls", fmt.Sprintf("%.3f", t.WallUValue), fmt.Sprintf("%.2f", t.Code.MaxUValueWalls), yesNo(t.WallCompliant)},
			{"Roof", fmt.Sprintf("%.3f", t.RoofUValue), fmt.Sprintf("%.2f", t.Code.MaxUValueRoof), yesNo(t.RoofCompliant)},
			{"Windows", fmt.Sprintf("%.3f", t.WindowUValue), fmt.Sprintf("%.2f", t.Code.MaxUValueWindow), yesNo(t.WindowCompliant)},
			{"Doors", fmt.Sprintf("%.3f", t.DoorUValue), "-", "-"},
		},
	)
	d.paragraph(fmt.Sprintf("Wall R-value %.3f m²K/W (brick %.3f, plaster %.3f, insulation %.3f).",
		t.WallRValue, t.BrickLayerR, t.PlasterLayerR, t.InsulationLayerR))
}

func (d *document) lifecycle(r *estimate.Result) {
	lc := r.Lifecycle
	d.heading(fmt.Sprintf("Lifecycle Cost (%d years at %.2f%%)", lc.HorizonYears, lc.DiscountRate*100))
	rows := make([][]string, 0, len(lc.Lines)+1)
	for _, l := range lc.Lines {
		rows = append(rows, []string{l.Name, d.money(l.BaseCost), fmt.Sprint(l.LifecycleYears), fmt.Sprint(l.Replacements), d.money(l.DiscountedCost)})
	}
	rows = append(rows, []string{"Total", d.money(lc.InitialCost), "", "", d.money(lc.TotalCost)})
	d.table([]string{"Component", "Base cost", "Life", "Replacements", "Present value"},
		[]float64{0.22, 0.24, 0.12, 0.16, 0.26}, rows)
}

func (d *document) valueEngineering(r *estimate.Result) {
	d.heading("Value Engineering")
	if len(r.Suggestions) == 0 {
		d.paragraph("No cheaper alternatives meet the performance thresholds.")
		return
	}
	for _, s := range r.Suggestions {
		d.paragraph("- " + s.Text)
	}
	d.paragraph("Potential savings: " + d.money(valueeng.TotalSavings(r.Suggestions)))
}

func (d *document) cashFlow(r *estimate.Result) {
	d.heading("Cash Flow")
	if len(r.CashFlow) == 0 {
		d.paragraph("Project duration is under one month; no monthly cash flow.")
		return
	}
	rows := make([][]string, 0, len(r.CashFlow))
	for _, p := range r.CashFlow {
		rows = append(rows, []string{fmt.Sprint(p.Month), d.money(p.Amount), d.money(p.Cumulative), fmt.Sprintf("%.1f%%", p.CumulativeFraction*100)})
	}
	d.table([]string{"Month", "Amount", "Cumulative", "Progress"}, []float64{0.16, 0.3, 0.34, 0.2}, rows)
}

func (d *document) schedule(r *estimate.Result) {
	d.heading("CPM Schedule")
	rows := make([][]string, 0, len(r.Schedule.Activities))
	for _, a := range r.Schedule.Activities {
		rows = append(rows, []string{
			a.Name,
			fmt.Sprintf("%.1f", a.Duration),
			fmt.Sprintf("%.1f", a.EarlyStart),
			fmt.Sprintf("%.1f", a.EarlyFinish),
			fmt.Sprintf("%.1f", a.LateStart),
			fmt.Sprintf("%.1f", a.LateFinish),
			fmt.Sprintf("%.1f", a.TotalFloat),
		})
	}
	d.table([]string{"Activity", "Days", "ES", "EF", "LS", "LF", "Float"},
		[]float64{0.22, 0.13, 0.13, 0.13, 0.13, 0.13, 0.13}, rows)
	d.paragraph(fmt.Sprintf("Project duration %.1f days. Critical path: %s.",
		r.Schedule.ProjectDuration, strings.Join(r.Schedule.CriticalPath, " -> ")))
}

func (d *document) alternatives(r *estimate.Result) {
	d.heading("Alternative Materials")
	for _, group := range r.Alternatives {
		if len(group.Options) == 0 {
			continue
		}
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.CellFormat(0, lineHeight, d.tr(strings.ToUpper(string(group.Category))), "", 1, "L", false, 0, "")
		rows := make([][]string, 0, len(group.Options))
		for _, o := range group.Options {
			name := o.Name
			if o.Detail != "" {
				name += " (" + o.Detail + ")"
			}
			rows = append(rows, []string{
				name,
				d.money(o.Price),
				fmt.Sprintf("%g %s", o.Performance, o.PerformanceUnit),
				fmt.Sprint(o.LifecycleYears),
				fmt.Sprintf("%g", o.EmbodiedCarbon),
			})
		}
		d.table([]string{"Option", "Price", "Performance", "Life", "Carbon"},
			[]float64{0.32, 0.2, 0.2, 0.12, 0.16}, rows)
		d.pdf.Ln(2)
	}
}

func (d *document) charts(r *estimate.Result) error {
	type chart struct {
		name  string
		title string
		build func() (*plot.Plot, error)
	}
	charts := []chart{
		{"timeline", "Construction Timeline", func() (*plot.Plot, error) { return diagram.TimelinePlot(r.Timeline) }},
		{"schedule", "CPM Schedule", func() (*plot.Plot, error) { return diagram.SchedulePlot(r.Schedule) }},
	}
	if len(r.CashFlow) > 0 {
		charts = append(charts, chart{"cashflow", "Cash Flow", func() (*plot.Plot, error) { return diagram.CashFlowPlot(r.CashFlow) }})
	}

	for _, c := range charts {
		p, err := c.build()
		if err != nil {
			return fmt.Errorf("building %s chart: %w", c.name, err)
		}
		img, err := diagram.RenderPNG(p)
		if err != nil {
			return err
		}

		d.pdf.AddPage()
		d.heading(c.title)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		d.pdf.RegisterImageOptionsReader(c.name, opts, bytes.NewReader(img))
		d.pdf.ImageOptions(c.name, 15, d.pdf.GetY(), pageWidth, 0, true, opts, 0, "")
	}
	return d.pdf.Error()
}

func (d *document) notes(r *estimate.Result) {
	d.heading("Engineering Notes")
	d.paragraph("Quantities use a 1:2:4 nominal concrete mix and the wastage allowances of the selected catalog rows. " +
		"Structural members are sized with simplified single-case formulas for M20 concrete and Fe 415 steel " +
		"and must be verified by a licensed engineer before construction.")

	if r.Advisory == nil {
		return
	}
	d.heading("Warnings (" + r.Advisory.Summary() + ")")
	if len(r.Advisory.Warnings)+len(r.Advisory.Notices) == 0 {
		d.paragraph("None.")
	}
	for _, w := range r.Advisory.All() {
		d.paragraph(fmt.Sprintf("[%s] %s", w.Severity, w.Message))
	}
}
