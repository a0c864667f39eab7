package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/structural"
	"github.com/spf13/cobra"
)

var (
	footingLoad     float64
	footingCapacity float64
)

var designFootingCmd = &cobra.Command{
	Use:   "footing",
	Short: "Size a square isolated footing",
	Long: `Size a square isolated footing for a column load on soil of the
given safe bearing capacity.

Examples:
  goestimate design footing --load 300 --capacity 150`,
	Run: runDesignFooting,
}

func init() {
	designCmd.AddCommand(designFootingCmd)

	designFootingCmd.Flags().Float64VarP(&footingLoad, "load", "P", 0, "Column load (kN) [required]")
	designFootingCmd.Flags().Float64VarP(&footingCapacity, "capacity", "q", 0, "Soil bearing capacity (kN/m²) [required]")

	designFootingCmd.MarkFlagRequired("load")
	designFootingCmd.MarkFlagRequired("capacity")
}

func runDesignFooting(cmd *cobra.Command, args []string) {
	f := structural.DesignFooting(footingLoad, footingCapacity)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ISOLATED FOOTING DESIGN")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Column load:\t%.2f kN\n", f.ColumnLoad)
	fmt.Fprintf(w, "  Soil capacity:\t%.2f kN/m²\n", f.SoilCapacity)
	w.Flush()
	fmt.Println()

	if f.Size > 0 {
		fmt.Println("FOOTING:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Area required:\t%.3f m²\n", f.AreaRequired)
		fmt.Fprintf(w, "  Size:\t%.2f x %.2f m\n", f.Size, f.Size)
		fmt.Fprintf(w, "  Depth:\t%.2f m\n", f.Depth)
		fmt.Fprintf(w, "  Steel area:\t%.2f mm²\n", f.SteelArea)
		fmt.Fprintf(w, "  Bars each way:\t%d - %dmm\n", f.BarsEachWay, f.BarDiameter)
		fmt.Fprintf(w, "  Soil pressure:\t%.2f kN/m²\n", f.SoilPressure)
		w.Flush()
		fmt.Println()
	}

	memberStatus(f.IsAdequate, f.Message)
}
