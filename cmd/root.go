package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexiusacademia/golam/internal/config"
	"github.com/alexiusacademia/golam/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "golam",
	Short: "Composite Laminate and Stiffened Panel Analysis Tool",
	Long: `golam - Go Laminate Analyzer

A CLI tool for the analysis of composite laminates and
stringer-stiffened panels using classical lamination theory.

This tool helps structural engineers perform:
  - Laminate stiffness (ABD) and compliance calculation
  - Effective in-plane engineering constants (Ex, Ey, Gxy, NUxy)
  - Stringer section properties and effective skin thickness
  - Euler global buckling of stiffened panels
  - Rayleigh-Ritz local buckling of the skin bay

Settings are read from golam.yaml, GOLAM_* environment variables
and command-line flags, in increasing precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, used, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c

		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		if used != "" {
			logger.Debug("loaded config", "file", used)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   golam v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Laminate and Stiffened Panel Analyzer                ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for composite laminates and stiffened panels")
		fmt.Fprintln(out, "  based on classical lamination theory.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • ABD matrix and effective moduli of a ply stack")
		fmt.Fprintln(out, "    • Material presets for common ply systems")
		fmt.Fprintln(out, "    • Global (Euler) buckling of stringer-stiffened panels")
		fmt.Fprintln(out, "    • Local (Rayleigh-Ritz) buckling of the skin between stringers")
		fmt.Fprintln(out, "    • Limit and ultimate load cases")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'golam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default golam.yaml in the working directory)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Int("workers", 0, "Sections evaluated in parallel (0 = number of CPUs)")
	pf.String("output-dir", ".", "Directory for output tables")
	pf.String("format", "csv", "Output table format (csv|xlsx)")
	pf.Int("precision", 2, "Decimals of written values")
	pf.Int("ratio-precision", 1, "Decimals of the written area ratio percentage")
}
