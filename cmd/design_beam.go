package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/structural"
	"github.com/spf13/cobra"
)

var (
	beamSpan float64
	beamLive float64
	beamDead float64
)

var designBeamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Size a singly reinforced beam",
	Long: `Size a 300mm wide singly reinforced beam.

The floor load is taken as a triangular distribution on the beam,
w = (D+L)·span/2, with the design moment M = w·span²/10.

Examples:
  goestimate design beam --span 6 --live 2
  goestimate design beam --span 8 --live 3 --dead 4`,
	Run: runDesignBeam,
}

func init() {
	designCmd.AddCommand(designBeamCmd)

	designBeamCmd.Flags().Float64VarP(&beamSpan, "span", "s", 0, "Beam span (m) [required]")
	designBeamCmd.Flags().Float64VarP(&beamLive, "live", "l", 0, "Live load (kN/m²) [required]")
	designBeamCmd.Flags().Float64VarP(&beamDead, "dead", "d", structural.DefaultDeadLoad, "Dead load (kN/m²)")

	designBeamCmd.MarkFlagRequired("span")
	designBeamCmd.MarkFlagRequired("live")
}

func runDesignBeam(cmd *cobra.Command, args []string) {
	b := structural.DesignBeam(beamSpan, beamLive, beamDead)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SINGLY REINFORCED BEAM DESIGN")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOADING:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span:\t%.2f m\n", b.Span)
	fmt.Fprintf(w, "  Live load (L):\t%.2f kN/m²\n", b.LiveLoad)
	fmt.Fprintf(w, "  Dead load (D):\t%.2f kN/m²\n", b.DeadLoad)
	fmt.Fprintf(w, "  Line load (w):\t%.2f kN/m\n", b.LineLoad)
	fmt.Fprintf(w, "  Design moment (M):\t%.2f kN-m\n", b.DesignMoment)
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width (b):\t%.0f mm\n", b.Width)
	fmt.Fprintf(w, "  Effective depth (d):\t%.0f mm\n", b.EffectiveDepth)
	fmt.Fprintf(w, "  Total depth (D):\t%.0f mm\n", b.Depth)
	w.Flush()
	fmt.Println()

	if b.FormulaValid {
		fmt.Println("REINFORCEMENT:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Steel area (Ast):\t%.2f mm²\n", b.SteelArea)
		fmt.Fprintf(w, "  Main bars:\t%d - %dmm\n", b.BarCount, b.BarDiameter)
		fmt.Fprintf(w, "  Stirrups:\t%dmm @ %.0f mm c/c\n", b.StirrupDiameter, b.StirrupSpacing)
		w.Flush()
		fmt.Println()
	}

	memberStatus(b.IsAdequate, b.Message)
}
