package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/structural"
	"github.com/spf13/cobra"
)

var (
	columnLoad   float64
	columnHeight float64
)

var designColumnCmd = &cobra.Command{
	Use:   "column",
	Short: "Size a square tied column",
	Long: `Size a square tied column for a service axial load.

The load is factored by 1.5, the gross area is Pu / (0.4·fck) rounded
up to a 50mm side, and 1% longitudinal steel is provided.

Examples:
  goestimate design column --load 300 --height 3`,
	Run: runDesignColumn,
}

func init() {
	designCmd.AddCommand(designColumnCmd)

	designColumnCmd.Flags().Float64VarP(&columnLoad, "load", "P", 0, "Service axial load (kN) [required]")
	designColumnCmd.Flags().Float64Var(&columnHeight, "height", 3, "Storey height (m)")

	designColumnCmd.MarkFlagRequired("load")
}

func runDesignColumn(cmd *cobra.Command, args []string) {
	c := structural.DesignColumn(columnLoad, columnHeight)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SQUARE TIED COLUMN DESIGN")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOADING:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Service load (P):\t%.2f kN\n", c.AxialLoad)
	fmt.Fprintf(w, "  Factored load (Pu):\t%.2f kN\n", c.FactoredLoad)
	fmt.Fprintf(w, "  Height:\t%.2f m\n", c.Height)
	w.Flush()
	fmt.Println()

	if c.Size > 0 {
		fmt.Println("SECTION AND REINFORCEMENT:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Gross area required:\t%.0f mm²\n", c.GrossAreaRequired)
		fmt.Fprintf(w, "  Size:\t%.0f x %.0f mm\n", c.Size, c.Size)
		fmt.Fprintf(w, "  Steel area (Asc):\t%.2f mm²\n", c.SteelArea)
		fmt.Fprintf(w, "  Main bars:\t%d - %dmm\n", c.BarCount, c.BarDiameter)
		fmt.Fprintf(w, "  Ties:\t%dmm @ %.0f mm c/c\n", c.TieDiameter, c.TieSpacing)
		fmt.Fprintf(w, "  Axial capacity:\t%.2f kN\n", c.AxialCapacity)
		w.Flush()
		fmt.Println()
	}

	memberStatus(c.IsAdequate, c.Message)
}
