package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goestimate/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goestimate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goestimate v%s\n", version.Version)
		fmt.Println("Construction Material, Cost and Engineering Estimator")
		fmt.Printf("Build: %s (%s)\n", version.BuildTime, version.GitCommit)
		fmt.Printf("© %s %s\n", version.Year, version.Author)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
