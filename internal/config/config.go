// Package config loads the machine's runtime options from an optional
// YAML file, with command-line flags taking precedence over whatever the
// file specifies.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every option the core and its front ends need at startup.
type Config struct {
	ROMFilename          string `yaml:"rom_filename"`
	CPUSpeedHz           int    `yaml:"cpu_speed"`
	TerminalSpeedHz      int    `yaml:"terminal_speed"`
	ResolutionMultiplier int    `yaml:"resolution_multiplier"`
	Debug                bool   `yaml:"debug"`
}

// Default returns the baseline configuration used when neither a config
// file nor flags supply a value.
func Default() Config {
	return Config{
		ROMFilename:          "apple1.rom",
		CPUSpeedHz:           1_000_000,
		TerminalSpeedHz:      60,
		ResolutionMultiplier: 2,
		Debug:                false,
	}
}

// Load reads path (if non-empty) as YAML over the defaults. It does not
// apply command-line overrides; callers pass the result to Flags.Apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Flags holds pointers to the command-line overrides, registered against
// a flag.FlagSet so callers can parse os.Args themselves.
type Flags struct {
	ConfigPath           *string
	ROMFilename          *string
	CPUSpeedHz           *int
	TerminalSpeedHz      *int
	ResolutionMultiplier *int
	Debug                *bool
}

// RegisterFlags installs this module's flags on fs, matching the
// flag-based CLI convention used by every front end in this codebase.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		ConfigPath:           fs.String("config", "", "path to a YAML configuration file"),
		ROMFilename:          fs.String("rom", "", "ROM image path (overrides config file)"),
		CPUSpeedHz:           fs.Int("cpu_speed", 0, "simulated CPU clock rate in Hz (overrides config file)"),
		TerminalSpeedHz:      fs.Int("terminal_speed", 0, "terminal refresh rate in Hz (overrides config file)"),
		ResolutionMultiplier: fs.Int("resolution_multiplier", 0, "window pixel scale (overrides config file)"),
		Debug:                fs.Bool("debug", false, "enable verbose diagnostic logging"),
	}
}

// Apply overlays non-zero flag values onto cfg and returns the result.
func (f *Flags) Apply(cfg Config) Config {
	if f.ROMFilename != nil && *f.ROMFilename != "" {
		cfg.ROMFilename = *f.ROMFilename
	}
	if f.CPUSpeedHz != nil && *f.CPUSpeedHz != 0 {
		cfg.CPUSpeedHz = *f.CPUSpeedHz
	}
	if f.TerminalSpeedHz != nil && *f.TerminalSpeedHz != 0 {
		cfg.TerminalSpeedHz = *f.TerminalSpeedHz
	}
	if f.ResolutionMultiplier != nil && *f.ResolutionMultiplier != 0 {
		cfg.ResolutionMultiplier = *f.ResolutionMultiplier
	}
	if f.Debug != nil && *f.Debug {
		cfg.Debug = true
	}
	return cfg
}
