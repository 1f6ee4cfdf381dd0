package cmd

import (
	"fmt"

	"github.com/alexiusacademia/golam/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of golam",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "golam v%s\n", version.Version)
		fmt.Fprintln(out, "Composite Laminate and Stiffened Panel Analysis Tool")
		if version.GitCommit != "" {
			fmt.Fprintf(out, "Commit: %s\n", version.GitCommit)
		}
		if version.BuildTime != "" {
			fmt.Fprintf(out, "Built:  %s\n", version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
