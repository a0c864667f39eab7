package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexiusacademia/goestimate/internal/cashflow"
	"github.com/alexiusacademia/goestimate/internal/diagram"
	"github.com/alexiusacademia/goestimate/internal/estimate"
	"github.com/alexiusacademia/goestimate/internal/valueeng"
)

const rule = "───────────────────────────────────────────────────────────────"

// ConsoleOptions selects the optional console sections.
type ConsoleOptions struct {
	Gantt    bool
	CashFlow bool
}

type console struct {
	out      io.Writer
	currency string
	heading  lipgloss.Style
	good     lipgloss.Style
	bad      lipgloss.Style
	muted    lipgloss.Style
}

func newConsole(w io.Writer, currency string) *console {
	r := lipgloss.NewRenderer(w)
	return &console{
		out:      w,
		currency: currency,
		heading:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFD7")),
		good:     r.NewStyle().Foreground(lipgloss.Color("#00AA00")),
		bad:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4444")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#808080")),
	}
}

func (c *console) section(title string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.heading.Render(title+":"))
	fmt.Fprintln(c.out, rule)
}

func (c *console) table(rows [][2]string) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s:\t%s\n", r[0], r[1])
	}
	w.Flush()
}

func (c *console) money(v float64) string {
	return Money(c.currency, v)
}

// PrintSummary writes the console summary of an estimate to w.
func PrintSummary(w io.Writer, r *estimate.Result, opts ConsoleOptions) error {
	c := newConsole(w, r.Currency)
	p := r.Project
	s := r.Summary
	calc := r.Calculations

	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "     CONSTRUCTION ESTIMATE - "+strings.ToUpper(p.Name))
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")

	c.section("PROJECT")
	c.table([][2]string{
		{"Client", p.Client},
		{"Location", p.Location},
		{"Date", p.Date},
		{"Estimate ID", r.ID},
		{"Method", p.Construction.Method.String()},
		{"Building", fmt.Sprintf("%.2f x %.2f m, %d floors of %.2f m", p.Dimensions.Length, p.Dimensions.Width, p.Dimensions.Floors, p.Dimensions.Height)},
		{"Climate / seismic zone", r.Climate.Name + " / " + r.Seismic.Name},
	})

	c.section("SUMMARY ESTIMATE")
	c.table([][2]string{
		{"Cement", Count(s.CementBags) + " bags"},
		{"Steel", Number(s.SteelTons, 2) + " t"},
		{"Bricks", Count(s.Bricks) + " nos"},
		{"Sand", Number(s.Sand, 2) + " m³"},
		{"Aggregate", Number(s.Aggregate, 2) + " m³"},
		{"Roofing", fmt.Sprintf("%d units", s.RoofingUnits)},
		{"Doors / windows", fmt.Sprintf("%d / %d", s.Doors, s.Windows)},
		{"Construction time", Number(s.ConstructionDays, 1) + " days"},
		{"Wind load", fmt.Sprintf("%.3f kN/m²", s.WindLoad)},
		{"Seismic base shear", Number(s.SeismicShear, 2) + " kN"},
		{"Soil pressure", Number(s.SoilPressure, 2) + " kN/m²"},
		{"Embodied carbon", Number(s.EmbodiedCarbon, 0) + " kgCO2e"},
	})

	c.section("COST BREAKDOWN")
	c.table([][2]string{
		{"Bricks", c.money(calc.BrickCost)},
		{"Cement", c.money(calc.CementCost)},
		{"Steel", c.money(calc.SteelCost)},
		{"Roofing", c.money(calc.RoofingCost)},
		{"Doors", c.money(calc.DoorCost)},
		{"Windows", c.money(calc.WindowCost)},
		{"Insulation", c.money(calc.InsulationCost)},
		{"Labor", c.money(calc.LaborCost)},
		{"Transport", c.money(calc.TransportCost)},
	})
	fmt.Fprintln(w)
	fmt.Fprint(w, diagram.DrawSummaryBox("TOTAL COST: "+c.money(s.TotalCost), []string{
		"Per m² of floor area: " + c.money(s.TotalCost/calc.TotalFloorArea),
		fmt.Sprintf("Lifecycle (%d years): %s", r.Lifecycle.HorizonYears, c.money(r.Lifecycle.TotalCost)),
		"Duration: " + Number(s.ConstructionDays, 1) + " days",
	}))

	c.section("LABOR")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Activity\tQuantity\tRate\tCost")
	for _, l := range calc.Labor {
		fmt.Fprintf(tw, "  %s\t%s %s\t%s\t%s\n", l.Activity, Number(l.Quantity, 2), l.Unit, Number(l.Rate, 2), c.money(l.Cost))
	}
	tw.Flush()

	c.printStructural(r)
	c.printThermal(r)

	c.section("LIFECYCLE COST")
	lc := r.Lifecycle
	c.table([][2]string{
		{"Horizon", fmt.Sprintf("%d years", lc.HorizonYears)},
		{"Discount rate", fmt.Sprintf("%.2f%%", lc.DiscountRate*100)},
		{"Initial cost", c.money(lc.InitialCost)},
		{"Replacements (PV)", c.money(lc.ReplacementPV)},
		{"Lifecycle cost", c.money(lc.TotalCost)},
	})

	c.section("VALUE ENGINEERING")
	if len(r.Suggestions) == 0 {
		fmt.Fprintln(w, c.muted.Render("  No cheaper alternatives meet the performance thresholds."))
	}
	for _, sg := range r.Suggestions {
		fmt.Fprintf(w, "  • %s\n", sg.Text)
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintf(w, "  Potential savings: %s\n", c.money(valueeng.TotalSavings(r.Suggestions)))
	}

	c.section("CASH FLOW")
	peak := cashflow.Peak(r.CashFlow)
	c.table([][2]string{
		{"Duration", fmt.Sprintf("%d months", len(r.CashFlow))},
		{"Peak month", fmt.Sprintf("%d (%s)", peak.Month, c.money(peak.Amount))},
	})
	if opts.CashFlow {
		fmt.Fprintln(w)
		fmt.Fprint(w, diagram.DrawCashFlow(r.CashFlow, 10))
	}

	c.section("SCHEDULE")
	c.table([][2]string{
		{"Project duration", Number(r.Schedule.ProjectDuration, 1) + " days"},
		{"Critical path", strings.Join(r.Schedule.CriticalPath, " → ")},
	})
	if opts.Gantt {
		fmt.Fprint(w, diagram.DrawGantt(r.Schedule, diagram.GanttWidth))
	}

	c.printAdvisory(r)
	fmt.Fprintln(w)

	return nil
}

func (c *console) printStructural(r *estimate.Result) {
	d := r.Structural
	c.section("STRUCTURAL DESIGN")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam:\t%.0f x %.0f mm, %d-%dmm bars\t%s\n",
		d.Beam.Width, d.Beam.Depth, d.Beam.BarCount, d.Beam.BarDiameter, c.status(d.Beam.IsAdequate))
	fmt.Fprintf(w, "  Column:\t%.0f x %.0f mm, %d-%dmm bars\t%s\n",
		d.Column.Size, d.Column.Size, d.Column.BarCount, d.Column.BarDiameter, c.status(d.Column.IsAdequate))
	fmt.Fprintf(w, "  Footing:\t%.2f x %.2f x %.2f m, %d bars each way\t%s\n",
		d.Footing.Size, d.Footing.Size, d.Footing.Depth, d.Footing.BarsEachWay, c.status(d.Footing.IsAdequate))
	w.Flush()
}

func (c *console) printThermal(r *estimate.Result) {
	t := r.Thermal
	c.section("THERMAL PERFORMANCE (" + t.Code.Name + ")")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Wall U-value:\t%.3f W/m²K\t≤ %.2f\t%s\n", t.WallUValue, t.Code.MaxUValueWalls, c.status(t.WallCompliant))
	fmt.Fprintf(w, "  Roof U-value:\t%.3f W/m²K\t≤ %.2f\t%s\n", t.RoofUValue, t.Code.MaxUValueRoof, c.status(t.RoofCompliant))
	fmt.Fprintf(w, "  Window U-value:\t%.3f W/m²K\t≤ %.2f\t%s\n", t.WindowUValue, t.Code.MaxUValueWindow, c.status(t.WindowCompliant))
	fmt.Fprintf(w, "  Wall R-value:\t%.3f m²K/W\t≥ %.2f\t%s\n", t.WallRValue, t.Code.MinRValueWalls, yesNo(t.WallMeetsMinR))
	w.Flush()
}

func (c *console) printAdvisory(r *estimate.Result) {
	a := r.Advisory
	if a == nil {
		return
	}
	c.section("WARNINGS (" + a.Summary() + ")")
	if len(a.Warnings) == 0 && len(a.Notices) == 0 {
		fmt.Fprintln(c.out, c.good.Render("  None"))
		return
	}
	for _, wn := range a.Warnings {
		fmt.Fprintln(c.out, c.bad.Render("  ⚠ "+wn.String()))
	}
	for _, n := range a.Notices {
		fmt.Fprintln(c.out, c.muted.Render("  ℹ "+n.String()))
	}
}

func (c *console) status(ok bool) string {
	if ok {
		return c.good.Render("✓ " + passFail(ok))
	}
	return c.bad.Render("✗ " + passFail(ok))
}
