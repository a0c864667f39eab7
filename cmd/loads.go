package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/loads"
	"github.com/spf13/cobra"
)

var loadsCmd = &cobra.Command{
	Use:   "loads",
	Short: "Environmental load calculations",
	Long: `Calculate the environmental loads used by the estimator.

Subcommands:
  wind     - Roof wind pressure (velocity pressure method)
  seismic  - Seismic base shear (equivalent static method)`,
}

var (
	windSpeed float64
	windAngle float64
)

var loadsWindCmd = &cobra.Command{
	Use:   "wind",
	Short: "Roof wind pressure for a design wind speed",
	Long: `Calculate the design roof wind pressure.

  qz = 0.613 · Kz · Kzt · Kd · V²   (N/m², V in m/s)
  p  = qz · Cp

Cp is -0.9 for a flat roof, -0.7 below 30° and -0.5 from 30°.
Negative pressures are uplift.

Examples:
  goestimate loads wind --speed 160 --angle 0`,
	Run: runLoadsWind,
}

var (
	seismicZoneFactor float64
	seismicImportance float64
	seismicResponse   float64
	seismicWeight     float64
)

var loadsSeismicCmd = &cobra.Command{
	Use:   "seismic",
	Short: "Seismic base shear for a building weight",
	Long: `Calculate the design seismic base shear.

  Ah = Z · I · (Sa/g) / 2R,  Sa/g = 2.5
  Vb = Ah · W · g

Examples:
  goestimate loads seismic --zone-factor 0.16 --weight 500`,
	Run: runLoadsSeismic,
}

func init() {
	rootCmd.AddCommand(loadsCmd)
	loadsCmd.AddCommand(loadsWindCmd)
	loadsCmd.AddCommand(loadsSeismicCmd)

	loadsWindCmd.Flags().Float64VarP(&windSpeed, "speed", "v", 0, "Design wind speed (km/h) [required]")
	loadsWindCmd.Flags().Float64VarP(&windAngle, "angle", "a", 0, "Roof angle (degrees)")
	loadsWindCmd.MarkFlagRequired("speed")

	loadsSeismicCmd.Flags().Float64VarP(&seismicZoneFactor, "zone-factor", "z", 0, "Seismic zone factor Z [required]")
	loadsSeismicCmd.Flags().Float64VarP(&seismicImportance, "importance", "i", 1.0, "Importance factor I")
	loadsSeismicCmd.Flags().Float64VarP(&seismicResponse, "response", "r", 3.0, "Response reduction factor R")
	loadsSeismicCmd.Flags().Float64VarP(&seismicWeight, "weight", "w", 0, "Seismic weight (tonnes) [required]")
	loadsSeismicCmd.MarkFlagRequired("zone-factor")
	loadsSeismicCmd.MarkFlagRequired("weight")
}

func runLoadsWind(cmd *cobra.Command, args []string) {
	qz := loads.VelocityPressure(windSpeed)
	cp := loads.PressureCoefficient(windAngle)
	p := loads.WindLoad(windSpeed, windAngle)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ROOF WIND PRESSURE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Wind speed:\t%.1f km/h (%.2f m/s)\n", windSpeed, loads.KmhToMs(windSpeed))
	fmt.Fprintf(w, "  Roof angle:\t%.1f°\n", windAngle)
	fmt.Fprintf(w, "  Kz / Kzt / Kd:\t%.2f / %.2f / %.2f\n", loads.Kz, loads.Kzt, loads.Kd)
	fmt.Fprintf(w, "  Velocity pressure (qz):\t%.2f N/m²\n", qz)
	fmt.Fprintf(w, "  Pressure coefficient (Cp):\t%.2f\n", cp)
	fmt.Fprintf(w, "  Design pressure (p):\t%.3f kN/m²\n", p)
	w.Flush()

	if p < 0 {
		fmt.Println()
		fmt.Println("  Note: negative pressure acts as uplift on the roof.")
	}
	fmt.Println()
}

func runLoadsSeismic(cmd *cobra.Command, args []string) {
	if seismicResponse <= 0 {
		fmt.Println("Error: response reduction factor must be positive")
		return
	}

	ah := loads.HorizontalCoefficient(seismicZoneFactor, seismicImportance, seismicResponse)
	vb := loads.SeismicBaseShear(seismicZoneFactor, seismicImportance, seismicResponse, seismicWeight)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SEISMIC BASE SHEAR")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Zone factor (Z):\t%.3f\n", seismicZoneFactor)
	fmt.Fprintf(w, "  Importance factor (I):\t%.2f\n", seismicImportance)
	fmt.Fprintf(w, "  Response reduction (R):\t%.2f\n", seismicResponse)
	fmt.Fprintf(w, "  Sa/g:\t%.2f\n", loads.SpectralAcceleration)
	fmt.Fprintf(w, "  Seismic weight (W):\t%.2f t\n", seismicWeight)
	fmt.Fprintf(w, "  Horizontal coefficient (Ah):\t%.4f\n", ah)
	fmt.Fprintf(w, "  Base shear (Vb):\t%.2f kN\n", vb)
	w.Flush()
	fmt.Println()
}
