package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Size individual structural members",
	Long: `Size the standard reinforced concrete members used by the estimator
(M20 concrete, Fe 415 steel, 16mm main bars).

Subcommands:
  beam     - Singly reinforced beam for a span and floor loads
  column   - Square tied column for a service axial load
  footing  - Square isolated footing for a column load and soil capacity`,
}

func init() {
	rootCmd.AddCommand(designCmd)
}

// memberStatus prints the final design status line shared by the design
// subcommands.
func memberStatus(adequate bool, message string) {
	fmt.Println("DESIGN STATUS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if adequate {
		fmt.Printf("  ✓ %s\n", message)
	} else {
		fmt.Printf("  ✗ %s\n", message)
	}
	fmt.Println()
}
