package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/goestimate/internal/diagram"
	"github.com/alexiusacademia/goestimate/internal/estimate"
	"github.com/alexiusacademia/goestimate/internal/project"
	"github.com/alexiusacademia/goestimate/internal/report"
	"github.com/spf13/cobra"
)

var (
	estimateProject  string
	estimateJSON     bool
	estimatePDF      string
	estimateCharts   string
	estimateCurrency string
	estimateHorizon  int

	// Console options
	estimateGantt    bool
	estimateCashFlow bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate quantities, cost and engineering checks for a project",
	Long: `Run the full estimate for a project described in a YAML (or JSON) file.

The project's material, zone and energy code references are resolved
against the catalog, then quantities, costs, structural sizing, thermal
compliance, lifecycle cost, value engineering, cash flow and the CPM
schedule are computed.

Examples:
  # Console summary
  goestimate estimate -p examples/house.yaml

  # With text Gantt chart and cash flow graph
  goestimate estimate -p examples/house.yaml --gantt --cashflow

  # PDF report with embedded charts (written under [report] output_dir)
  goestimate estimate -p examples/house.yaml --pdf house.pdf

  # Chart images and JSON for another tool
  goestimate estimate -p examples/house.yaml --charts charts --json`,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&estimateProject, "project", "p", "", "Project file (YAML or JSON) [required]")
	estimateCmd.MarkFlagRequired("project")

	// Output
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "Print the full estimate as JSON instead of the summary")
	estimateCmd.Flags().StringVar(&estimatePDF, "pdf", "", "Write a PDF report to this file")
	estimateCmd.Flags().StringVar(&estimateCharts, "charts", "", "Export timeline, cash flow and schedule charts (PNG) to this directory")
	estimateCmd.Flags().BoolVar(&estimateGantt, "gantt", false, "Show a text Gantt chart of the schedule")
	estimateCmd.Flags().BoolVar(&estimateCashFlow, "cashflow", false, "Show a text graph of the cumulative cash flow")

	// Overrides
	estimateCmd.Flags().StringVar(&estimateCurrency, "currency", "", "Currency label (overrides [report] currency)")
	estimateCmd.Flags().IntVar(&estimateHorizon, "horizon", 0, "Lifecycle horizon in years (overrides [analysis])")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := project.Load(estimateProject)
	if err != nil {
		return err
	}

	repo, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	opts := estimate.Options{
		Currency:     appConfig.Report.Currency,
		HorizonYears: appConfig.Analysis.LifecycleHorizonYears,
	}
	if estimateCurrency != "" {
		opts.Currency = estimateCurrency
	}
	if estimateHorizon > 0 {
		opts.HorizonYears = estimateHorizon
	}

	res, err := estimate.Run(ctx, repo, p, opts)
	if err != nil {
		return err
	}

	if estimateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		if err := report.PrintSummary(os.Stdout, res, report.ConsoleOptions{Gantt: estimateGantt, CashFlow: estimateCashFlow}); err != nil {
			return err
		}
	}

	if estimateCharts != "" {
		if err := exportCharts(res, outputPath(estimateCharts)); err != nil {
			return err
		}
	}

	if estimatePDF != "" {
		path := outputPath(estimatePDF)
		if err := report.WritePDF(path, res, report.PDFOptions{Charts: appConfig.Report.Charts}); err != nil {
			return err
		}
		slog.Info("PDF report written", "path", path)
		if !estimateJSON {
			fmt.Printf("  ✓ PDF report written to %s\n", path)
		}
	}

	return nil
}

// outputPath places relative output paths under [report] output_dir.
func outputPath(name string) string {
	if filepath.IsAbs(name) || appConfig.Report.OutputDir == "" {
		return name
	}
	return filepath.Join(appConfig.Report.OutputDir, name)
}

func exportCharts(res *estimate.Result, dir string) error {
	files := map[string]func(string) error{
		"timeline.png": func(f string) error { return diagram.ExportTimelineChart(res.Timeline, f) },
		"schedule.png": func(f string) error { return diagram.ExportScheduleChart(res.Schedule, f) },
	}
	if len(res.CashFlow) > 0 {
		files["cashflow.png"] = func(f string) error { return diagram.ExportCashFlowChart(res.CashFlow, f) }
	}

	for name, export := range files {
		path := filepath.Join(dir, name)
		if err := export(path); err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}
		slog.Info("chart exported", "path", path)
	}
	return nil
}
