package diagram

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/goestimate/internal/cashflow"
	"github.com/alexiusacademia/goestimate/internal/schedule"
)

// Default chart size
const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 5 * vg.Inch
)

var (
	barColor      = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	criticalColor = color.RGBA{R: 205, G: 55, B: 55, A: 255}
	floatColor    = color.RGBA{R: 190, G: 190, B: 190, A: 255}
	lineColor     = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

// TimelinePlot builds a bar chart of activity durations.
func TimelinePlot(t schedule.Timeline) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Construction Timeline"
	p.Y.Label.Text = "Duration (days)"

	entries := t.Entries()
	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Days
		names[i] = e.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)

	return p, nil
}

// CashFlowPlot builds monthly spend bars with the cumulative spend drawn as
// a line on the same axis.
func CashFlowPlot(points []cashflow.Point) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no cash flow points to plot")
	}

	p := plot.New()
	p.Title.Text = "Project Cash Flow"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Amount"

	amounts := make(plotter.Values, len(points))
	cumulative := make(plotter.XYs, len(points))
	months := make([]string, len(points))
	for i, pt := range points {
		amounts[i] = pt.Amount
		cumulative[i] = plotter.XY{X: float64(i), Y: pt.Cumulative}
		months[i] = strconv.Itoa(pt.Month)
	}

	bars, err := plotter.NewBarChart(amounts, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	line, err := plotter.NewLine(cumulative)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor
	p.Add(line)

	marks, err := plotter.NewScatter(cumulative)
	if err != nil {
		return nil, err
	}
	marks.GlyphStyle.Color = lineColor
	marks.GlyphStyle.Radius = vg.Points(2.5)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(marks)

	p.Legend.Add("Monthly", bars)
	p.Legend.Add("Cumulative", line)
	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(months...)

	return p, nil
}

// SchedulePlot builds a Gantt chart of the CPM schedule. Each activity is
// drawn from its early start; critical activities in red, float in grey.
func SchedulePlot(s schedule.Schedule) (*plot.Plot, error) {
	if len(s.Activities) == 0 {
		return nil, fmt.Errorf("no activities to plot")
	}

	p := plot.New()
	p.Title.Text = "CPM Schedule"
	p.X.Label.Text = "Days"

	// Bars are drawn bottom-up; reverse so the first activity is on top.
	n := len(s.Activities)
	offsets := make(plotter.Values, n)
	critical := make(plotter.Values, n)
	normal := make(plotter.Values, n)
	slackDays := make(plotter.Values, n)
	names := make([]string, n)
	for i, a := range s.Activities {
		j := n - 1 - i
		offsets[j] = a.EarlyStart
		if a.Critical() {
			critical[j] = a.Duration
		} else {
			normal[j] = a.Duration
		}
		slackDays[j] = a.TotalFloat
		names[j] = a.Name
	}

	width := vg.Points(18)
	hidden, err := plotter.NewBarChart(offsets, width)
	if err != nil {
		return nil, err
	}
	hidden.Horizontal = true
	hidden.Color = color.Transparent
	hidden.LineStyle.Width = 0

	crit, err := plotter.NewBarChart(critical, width)
	if err != nil {
		return nil, err
	}
	crit.Horizontal = true
	crit.Color = criticalColor
	crit.LineStyle.Width = 0
	crit.StackOn(hidden)

	rest, err := plotter.NewBarChart(normal, width)
	if err != nil {
		return nil, err
	}
	rest.Horizontal = true
	rest.Color = barColor
	rest.LineStyle.Width = 0
	rest.StackOn(crit)

	slack, err := plotter.NewBarChart(slackDays, width)
	if err != nil {
		return nil, err
	}
	slack.Horizontal = true
	slack.Color = floatColor
	slack.LineStyle.Width = 0
	slack.StackOn(rest)

	p.Add(hidden, crit, rest, slack)
	p.Legend.Add("Critical", crit)
	p.Legend.Add("Activity", rest)
	p.Legend.Add("Float", slack)
	p.Legend.Top = true
	p.NominalY(names...)
	p.X.Min = 0

	return p, nil
}

// ExportTimelineChart writes the timeline bar chart to filename.
func ExportTimelineChart(t schedule.Timeline, filename string) error {
	p, err := TimelinePlot(t)
	if err != nil {
		return err
	}
	return save(p, filename)
}

// ExportCashFlowChart writes the cash flow chart to filename.
func ExportCashFlowChart(points []cashflow.Point, filename string) error {
	p, err := CashFlowPlot(points)
	if err != nil {
		return err
	}
	return save(p, filename)
}

// ExportScheduleChart writes the CPM Gantt chart to filename.
func ExportScheduleChart(s schedule.Schedule, filename string) error {
	p, err := SchedulePlot(s)
	if err != nil {
		return err
	}
	return save(p, filename)
}

// RenderPNG draws p at the default chart size and returns the PNG bytes.
func RenderPNG(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(ChartWidth, ChartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

// save writes p in the format named by the file extension. Unknown
// extensions get ".png" appended.
func save(p *plot.Plot, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating chart directory: %w", err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(ChartWidth, ChartHeight, filename)
	default:
		return p.Save(ChartWidth, ChartHeight, filename+".png")
	}
}
