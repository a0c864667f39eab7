package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/cashflow"
	"github.com/alexiusacademia/goestimate/internal/diagram"
	"github.com/alexiusacademia/goestimate/internal/project"
	"github.com/alexiusacademia/goestimate/internal/report"
	"github.com/spf13/cobra"
)

var (
	cashflowTotal  float64
	cashflowMonths float64
	cashflowGraph  bool
	cashflowOutput string
)

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Spread a project cost over its duration along an S-curve",
	Long: `Distribute a total cost over whole months using the S-curve
f(x) = 3x² - 2x³ of cumulative spend.

Examples:
  goestimate cashflow --total 1500000 --months 12
  goestimate cashflow --total 1500000 --months 12 --graph -o cashflow.png`,
	Run: runCashflow,
}

func init() {
	rootCmd.AddCommand(cashflowCmd)

	cashflowCmd.Flags().Float64VarP(&cashflowTotal, "total", "t", 0, "Total project cost [required]")
	cashflowCmd.Flags().Float64VarP(&cashflowMonths, "months", "m", 0, "Duration in months [required]")
	cashflowCmd.MarkFlagRequired("total")
	cashflowCmd.MarkFlagRequired("months")

	cashflowCmd.Flags().BoolVar(&cashflowGraph, "graph", false, "Show a text graph of cumulative spend")
	cashflowCmd.Flags().StringVarP(&cashflowOutput, "output", "o", "", "Export chart to file (png, svg, pdf)")
}

func runCashflow(cmd *cobra.Command, args []string) {
	if math.IsNaN(cashflowMonths) || cashflowMonths > project.MaxDurationMonths {
		fmt.Printf("Error: duration must be at most %d months\n", project.MaxDurationMonths)
		return
	}
	if math.IsNaN(cashflowTotal) || math.IsInf(cashflowTotal, 0) {
		fmt.Println("Error: total cost must be a finite number")
		return
	}

	points := cashflow.Compute(cashflowTotal, cashflowMonths)
	if len(points) == 0 {
		fmt.Println("Error: duration must be at least one month")
		return
	}

	currency := appConfig.Report.Currency

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PROJECT CASH FLOW (S-CURVE)")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "  Month\tAmount\tCumulative\tProgress\t")
	for _, p := range points {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.1f%%\t\n", p.Month, report.Money(currency, p.Amount), report.Money(currency, p.Cumulative), p.CumulativeFraction*100)
	}
	w.Flush()

	peak := cashflow.Peak(points)
	fmt.Println()
	fmt.Printf("  Peak month: %d (%s)\n", peak.Month, report.Money(currency, peak.Amount))

	if cashflowGraph {
		fmt.Println()
		fmt.Print(diagram.DrawCashFlow(points, 12))
	}

	if cashflowOutput != "" {
		if err := diagram.ExportCashFlowChart(points, cashflowOutput); err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
			return
		}
		fmt.Printf("\n  ✓ Chart exported to %s\n", cashflowOutput)
	}
	fmt.Println()
}
