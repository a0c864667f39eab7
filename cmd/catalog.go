package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	catalogPath string
	catalogJSON bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [category]",
	Short: "List the reference catalog",
	Long: `List the rows of the reference catalog.

Without a category, every category is listed with its row count.

Categories:
  bricks, cement, steel, roofing, doors, windows, insulation,
  labor, climate, seismic, energy_codes

Examples:
  # Row counts per category
  goestimate catalog

  # Steel grades and diameters
  goestimate catalog steel

  # As JSON
  goestimate catalog roofing --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

var catalogInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the reference catalog to a SQLite file",
	Long: `Create (or upgrade) a SQLite catalog file from the embedded dataset.
Point [catalog] path in goestimate.toml at the file to edit prices locally.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := catalog.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer repo.Close()

		v, err := repo.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Catalog written to %s (schema version %d)\n", args[0], v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogInitCmd)

	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "SQLite catalog file (overrides [catalog] path)")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print rows as JSON")
}

// openCatalog opens the catalog named by --catalog or the configuration.
func openCatalog(ctx context.Context) (*catalog.Repository, error) {
	path := appConfig.Catalog.Path
	if catalogPath != "" {
		path = catalogPath
	}
	return catalog.Open(ctx, path)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  CATEGORY\tROWS")
		for _, c := range catalog.Categories {
			rows, err := repo.List(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s\t%d\n", c, rowCount(rows))
		}
		return w.Flush()
	}

	category, err := catalog.ParseCategory(args[0])
	if err != nil {
		return err
	}
	rows, err := repo.List(ctx, category)
	if err != nil {
		return err
	}

	if catalogJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printCatalogRows(w, rows)
	return w.Flush()
}

func rowCount(rows any) int {
	switch r := rows.(type) {
	case []catalog.Brick:
		return len(r)
	case []catalog.Cement:
		return len(r)
	case []catalog.Steel:
		return len(r)
	case []catalog.Roofing:
		return len(r)
	case []catalog.Door:
		return len(r)
	case []catalog.Window:
		return len(r)
	case []catalog.Insulation:
		return len(r)
	case []catalog.LaborRate:
		return len(r)
	case []catalog.ClimateZone:
		return len(r)
	case []catalog.SeismicZone:
		return len(r)
	case []catalog.EnergyCode:
		return len(r)
	}
	return 0
}

func printCatalogRows(w *tabwriter.Writer, rows any) {
	switch r := rows.(type) {
	case []catalog.Brick:
		fmt.Fprintln(w, "  NAME\tSIZE\tPER m²\tPRICE\tWASTE %\tMPa\tk (W/mK)\tLIFE")
		for _, b := range r {
			fmt.Fprintf(w, "  %s\t%s\t%g\t%.2f\t%g\t%g\t%g\t%d\n", b.Name, b.Size, b.PerSqm, b.PricePerUnit, b.WastagePercent, b.CompressiveStrength, b.ThermalConductivity, b.LifecycleYears)
		}
	case []catalog.Cement:
		fmt.Fprintln(w, "  NAME\tTYPE\tGRADE\tBAG kg\tPRICE\tWASTE %\tMPa\tLIFE")
		for _, c := range r {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%g\t%.2f\t%g\t%g\t%d\n", c.Name, c.Type, c.Grade, c.BagWeight, c.PricePerBag, c.WastagePercent, c.CompressiveStrength, c.LifecycleYears)
		}
	case []catalog.Steel:
		fmt.Fprintln(w, "  NAME\tDIA mm\tkg/m\tPRICE/kg\tWASTE %\tfy MPa\tLIFE")
		for _, s := range r {
			fmt.Fprintf(w, "  %s\t%d\t%g\t%.2f\t%g\t%g\t%d\n", s.Name, s.Diameter, s.WeightPerMeter, s.PricePerKg, s.WastagePercent, s.YieldStrength, s.LifecycleYears)
		}
	case []catalog.Roofing:
		fmt.Fprintln(w, "  NAME\tTYPE\tm²/UNIT\tPRICE\tWIND km/h\tU\tLIFE")
		for _, ro := range r {
			fmt.Fprintf(w, "  %s\t%s\t%g\t%.2f\t%g\t%g\t%d\n", ro.Name, ro.Type, ro.CoveragePerUnit, ro.PricePerUnit, ro.WindRating, ro.UValue, ro.LifespanYears)
		}
	case []catalog.Door:
		fmt.Fprintln(w, "  NAME\tMATERIAL\tSIZE\tPRICE\tU\tLIFE")
		for _, d := range r {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f\t%g\t%d\n", d.Name, d.Material, d.StandardSize, d.Price, d.UValue, d.LifecycleYears)
		}
	case []catalog.Window:
		fmt.Fprintln(w, "  NAME\tMATERIAL\tSIZE\tPRICE\tU\tSHGC\tLIFE")
		for _, wi := range r {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f\t%g\t%g\t%d\n", wi.Name, wi.Material, wi.StandardSize, wi.Price, wi.UValue, wi.SolarHeatGainCoeff, wi.LifecycleYears)
		}
	case []catalog.Insulation:
		fmt.Fprintln(w, "  NAME\tTYPE\tmm\tPRICE/m²\tR\tLIFE")
		for _, in := range r {
			fmt.Fprintf(w, "  %s\t%s\t%g\t%.2f\t%g\t%d\n", in.Name, in.Type, in.Thickness, in.PricePerSqm, in.RValue, in.LifecycleYears)
		}
	case []catalog.LaborRate:
		fmt.Fprintln(w, "  ACTIVITY\tRATE\tUNIT\tCLIMATE\tSKILL\tDAYS/UNIT")
		for _, l := range r {
			fmt.Fprintf(w, "  %s\t%.2f\t%s\t%g\t%s\t%g\n", l.Activity, l.Rate, l.Unit, l.ClimateFactor, l.SkillLevel, l.DurationPerUnit)
		}
	case []catalog.ClimateZone:
		fmt.Fprintln(w, "  NAME\tDESCRIPTION\tTEMP\tRAIN\tWIND\tENERGY CODE")
		for _, z := range r {
			fmt.Fprintf(w, "  %s\t%s\t%g\t%g\t%g\t%s\n", z.Name, z.Description, z.TemperatureFactor, z.RainfallFactor, z.WindFactor, z.EnergyCode)
		}
	case []catalog.SeismicZone:
		fmt.Fprintln(w, "  NAME\tZ\tI\tR")
		for _, z := range r {
			fmt.Fprintf(w, "  %s\t%g\t%g\t%g\n", z.Name, z.ZoneFactor, z.ImportanceFactor, z.ResponseReductionFactor)
		}
	case []catalog.EnergyCode:
		fmt.Fprintln(w, "  NAME\tMAX U WALL\tMAX U ROOF\tMAX U WINDOW\tMIN R WALL\tMIN R ROOF")
		for _, e := range r {
			fmt.Fprintf(w, "  %s\t%g\t%g\t%g\t%g\t%g\n", e.Name, e.MaxUValueWalls, e.MaxUValueRoof, e.MaxUValueWindow, e.MinRValueWalls, e.MinRValueRoof)
		}
	}
}
