// Package config loads golam settings from defaults, a YAML file, GOLAM_
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexiusacademia/golam/internal/loads"
	"github.com/alexiusacademia/golam/internal/panel"
	"github.com/alexiusacademia/golam/internal/table"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a double
// underscore: GOLAM_BUCKLING__STIFFNESS=bending.
const EnvPrefix = "GOLAM_"

// DefaultFiles are searched in the working directory when no file is given
var DefaultFiles = []string{"golam.yaml", "golam.yml"}

// Config holds all settings of a run
type Config struct {
	Verbose  bool           `koanf:"verbose"`
	Workers  int            `koanf:"workers"`
	Panel    PanelConfig    `koanf:"panel"`
	Buckling BucklingConfig `koanf:"buckling"`
	Output   OutputConfig   `koanf:"output"`
}

// PanelConfig holds analysis-wide panel settings. Zero pitches mean "take
// the value from the first row of the panel table".
type PanelConfig struct {
	StringerPitch float64 `koanf:"stringer_pitch"`
	RibPitch      float64 `koanf:"rib_pitch"`
	LoadCase      string  `koanf:"load_case"`
}

// BucklingConfig selects the variants of the buckling hand-calculation
type BucklingConfig struct {
	Stiffness  string `koanf:"stiffness"`
	BayWidth   string `koanf:"bay_width"`
	DoubleLegs bool   `koanf:"double_legs"`
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir            string `koanf:"dir"`
	LaminateFile   string `koanf:"laminate_file"`
	PanelFile      string `koanf:"panel_file"`
	Format         string `koanf:"format"`
	Precision      int    `koanf:"precision"`
	RatioPrecision int    `koanf:"ratio_precision"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"verbose":                false,
		"workers":                0,
		"panel.stringer_pitch":   0.0,
		"panel.rib_pitch":        0.0,
		"panel.load_case":        "limit",
		"buckling.stiffness":     string(panel.StiffnessLegacy),
		"buckling.bay_width":     string(panel.BayWidthCover),
		"buckling.double_legs":   false,
		"output.dir":             ".",
		"output.laminate_file":   "stiffness_matrix_output.csv",
		"output.panel_file":      "panel_analyzing_output.csv",
		"output.format":          "csv",
		"output.precision":       table.DefaultPrecision.Value,
		"output.ratio_precision": table.DefaultPrecision.Ratio,
	}
}

// FlagKeys maps command-line flag names to configuration keys. Flags not
// listed here are not part of the configuration.
var FlagKeys = map[string]string{
	"verbose":         "verbose",
	"workers":         "workers",
	"stringer-pitch":  "panel.stringer_pitch",
	"rib-pitch":       "panel.rib_pitch",
	"load-case":       "panel.load_case",
	"stiffness":       "buckling.stiffness",
	"bay-width":       "buckling.bay_width",
	"double-legs":     "buckling.double_legs",
	"output-dir":      "output.dir",
	"format":          "output.format",
	"precision":       "output.precision",
	"ratio-precision": "output.ratio_precision",
}

// Load reads the configuration. cfgFile may be empty, in which case the
// DefaultFiles are tried. flags may be nil; only flags that were explicitly
// set override lower layers. It returns the config file actually used.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// GOLAM_BUCKLING__BAY_WIDTH -> buckling.bay_width
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// findConfigFile returns the explicit path, or the first default file that
// exists, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Validate rejects unknown variants and negative values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Panel.StringerPitch < 0 || c.Panel.RibPitch < 0 {
		return fmt.Errorf("pitch overrides must not be negative (stringer=%g, rib=%g)",
			c.Panel.StringerPitch, c.Panel.RibPitch)
	}
	if _, err := loads.Lookup(c.Panel.LoadCase); err != nil {
		return err
	}

	switch panel.Stiffness(c.Buckling.Stiffness) {
	case panel.StiffnessLegacy, panel.StiffnessBending:
	default:
		return fmt.Errorf("unknown buckling.stiffness %q (legacy|bending)", c.Buckling.Stiffness)
	}
	switch panel.BayWidth(c.Buckling.BayWidth) {
	case panel.BayWidthCover, panel.BayWidthClearSpan:
	default:
		return fmt.Errorf("unknown buckling.bay_width %q (cover|clear-span)", c.Buckling.BayWidth)
	}

	switch c.Output.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("unknown output.format %q (csv|xlsx)", c.Output.Format)
	}
	if c.Output.Precision < 0 || c.Output.RatioPrecision < 0 {
		return fmt.Errorf("output precision must not be negative")
	}
	return nil
}

// PanelOptions converts the buckling settings for panel.Analyze
func (c *Config) PanelOptions() panel.Options {
	return panel.Options{
		Stiffness:  panel.Stiffness(c.Buckling.Stiffness),
		BayWidth:   panel.BayWidth(c.Buckling.BayWidth),
		DoubleLegs: c.Buckling.DoubleLegs,
		Workers:    c.Workers,
	}
}

// Pitches applies the configured overrides to the pitches read from a table
func (c *Config) Pitches(fromTable panel.Pitches) panel.Pitches {
	p := fromTable
	if c.Panel.StringerPitch > 0 {
		p.Stringer = c.Panel.StringerPitch
	}
	if c.Panel.RibPitch > 0 {
		p.Rib = c.Panel.RibPitch
	}
	return p
}

// Precision returns the output precision settings
func (c *Config) Precision() table.Precision {
	return table.Precision{Value: c.Output.Precision, Ratio: c.Output.RatioPrecision}
}
