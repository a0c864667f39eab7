package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/estimate"
	"github.com/alexiusacademia/goestimate/internal/thermal"
	"github.com/spf13/cobra"
)

var (
	thermalEnvelope thermal.Envelope
	thermalCode     string
)

var thermalCmd = &cobra.Command{
	Use:   "thermal",
	Short: "Check envelope U/R values against an energy code",
	Long: `Compute the wall, roof, window and door U-values of a building
envelope and check them against an energy code from the catalog.

Wall layers are the brick (thickness / conductivity), a fixed 20mm
plaster coat and the insulation R-value.

Examples:
  goestimate thermal --thickness 0.23 --conductivity 0.6 --insulation-r 2.5 \
      --roof-u 2.5 --window-u 2.8 --code "ASHRAE 90.1-2019"`,
	RunE: runThermal,
}

func init() {
	rootCmd.AddCommand(thermalCmd)

	f := thermalCmd.Flags()
	f.Float64Var(&thermalEnvelope.WallThickness, "thickness", 0.23, "Wall thickness (m)")
	f.Float64Var(&thermalEnvelope.BrickConductivity, "conductivity", 0, "Brick thermal conductivity (W/mK) [required]")
	f.Float64Var(&thermalEnvelope.InsulationRValue, "insulation-r", 0, "Insulation R-value (m²K/W)")
	f.Float64Var(&thermalEnvelope.RoofUValue, "roof-u", 0, "Roof U-value (W/m²K) [required]")
	f.Float64Var(&thermalEnvelope.RoofRValue, "roof-r", 0, "Roof R-value (m²K/W)")
	f.Float64Var(&thermalEnvelope.WindowUValue, "window-u", 0, "Window U-value (W/m²K) [required]")
	f.Float64Var(&thermalEnvelope.DoorUValue, "door-u", 0, "Door U-value (W/m²K)")
	f.StringVar(&thermalCode, "code", "", "Energy code name from the catalog (default limits when empty)")

	thermalCmd.MarkFlagRequired("conductivity")
	thermalCmd.MarkFlagRequired("roof-u")
	thermalCmd.MarkFlagRequired("window-u")
}

func runThermal(cmd *cobra.Command, args []string) error {
	code := thermal.DefaultCode
	if thermalCode != "" {
		ctx := cmd.Context()
		repo, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		c, err := repo.EnergyCode(ctx, thermalCode)
		if err != nil {
			return fmt.Errorf("energy code: %w", err)
		}
		code = estimate.ThermalCode(c)
	}

	r := thermal.Compute(thermalEnvelope, code)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     THERMAL PERFORMANCE - " + r.Code.Name)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("WALL LAYERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Brick:\t%.3f m²K/W\n", r.BrickLayerR)
	fmt.Fprintf(w, "  Plaster:\t%.3f m²K/W\n", r.PlasterLayerR)
	fmt.Fprintf(w, "  Insulation:\t%.3f m²K/W\n", r.InsulationLayerR)
	fmt.Fprintf(w, "  Total (R):\t%.3f m²K/W\n", r.WallRValue)
	w.Flush()
	fmt.Println()

	fmt.Println("COMPLIANCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Element\tU-value\tLimit\tStatus")
	fmt.Fprintf(w, "  Wall\t%.3f\t%.2f\t%s\n", r.WallUValue, r.Code.MaxUValueWalls, thermalStatus(r.WallCompliant))
	fmt.Fprintf(w, "  Roof\t%.3f\t%.2f\t%s\n", r.RoofUValue, r.Code.MaxUValueRoof, thermalStatus(r.RoofCompliant))
	fmt.Fprintf(w, "  Window\t%.3f\t%.2f\t%s\n", r.WindowUValue, r.Code.MaxUValueWindow, thermalStatus(r.WindowCompliant))
	fmt.Fprintf(w, "  Door\t%.3f\t-\t-\n", r.DoorUValue)
	w.Flush()
	fmt.Println()

	if !r.WallMeetsMinR {
		fmt.Printf("  Note: wall R-value below the recommended %.2f m²K/W\n\n", r.Code.MinRValueWalls)
	}
	if r.Compliant() {
		fmt.Println("  ✓ Envelope complies with " + r.Code.Name)
	} else {
		fmt.Println("  ✗ Envelope does not comply with " + r.Code.Name)
	}
	fmt.Println()
	return nil
}

func thermalStatus(ok bool) string {
	if ok {
		return "✓ PASS"
	}
	return "✗ FAIL"
}
