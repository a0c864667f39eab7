// Package diagram renders estimate charts: gonum/plot images for files and
// reports, and text diagrams for the terminal.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/goestimate/internal/cashflow"
	"github.com/alexiusacademia/goestimate/internal/schedule"
)

// GanttWidth is the number of columns spanning the project duration.
const GanttWidth = 50

// DrawGantt creates a text Gantt chart of the CPM schedule. Critical
// activities are drawn with █, others with ▓ followed by their float in ░.
func DrawGantt(s schedule.Schedule, width int) string {
	if width <= 0 {
		width = GanttWidth
	}
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  CPM SCHEDULE\n")
	sb.WriteString("  ────────────\n\n")

	if s.ProjectDuration <= 0 || len(s.Activities) == 0 {
		sb.WriteString("  (no activities)\n")
		return sb.String()
	}

	nameWidth := 0
	for _, a := range s.Activities {
		nameWidth = max(nameWidth, len(a.Name))
	}

	scale := float64(width) / s.ProjectDuration
	col := func(days float64) int {
		return int(math.Round(days * scale))
	}

	for _, a := range s.Activities {
		start := col(a.EarlyStart)
		finish := max(col(a.EarlyFinish), start+1)
		slack := col(a.EarlyFinish+a.TotalFloat) - finish

		fill := "▓"
		if a.Critical() {
			fill = "█"
		}

		bar := strings.Repeat(" ", start) + strings.Repeat(fill, finish-start)
		if slack > 0 {
			bar += strings.Repeat("░", slack)
		}
		pad := width - utf8.RuneCountInString(bar)
		if pad > 0 {
			bar += strings.Repeat(" ", pad)
		}

		sb.WriteString(fmt.Sprintf("  %-*s │%s│ %6.1f d\n", nameWidth, a.Name, bar, a.Duration))
	}

	sb.WriteString(fmt.Sprintf("  %-*s └%s┘\n", nameWidth, "", strings.Repeat("─", width)))
	sb.WriteString(fmt.Sprintf("  %-*s  0%*.1f days\n", nameWidth, "", width-1, s.ProjectDuration))
	sb.WriteString("\n")
	sb.WriteString("  Legend: █ critical  ▓ activity  ░ float\n")
	sb.WriteString(fmt.Sprintf("  Critical path: %s\n", strings.Join(s.CriticalPath, " → ")))

	return sb.String()
}

// DrawCashFlow plots cumulative spend per month as a text line chart.
func DrawCashFlow(points []cashflow.Point, height int) string {
	if len(points) == 0 {
		return "  (no cash flow)\n"
	}
	if height <= 0 {
		height = 10
	}

	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = p.Cumulative
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("Cumulative spend over %d months", len(points))),
	)
	return graph + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	row := func(text string) {
		pad := maxLen - 4 - utf8.RuneCountInString(text)
		sb.WriteString(fmt.Sprintf("  ║  %s%s  ║\n", text, strings.Repeat(" ", pad)))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	row(title)
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		row(line)
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
