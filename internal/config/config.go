// Package config loads engine parameters from an optional YAML file (via
// viper, mirroring the teacher's FromYaml/OuterConfig pattern) and lets CLI
// flags override whatever the file provided.
package config

import (
	"flag"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OuterConfig is the top-level YAML envelope: {kind: sudoku-acs, def: {...}}.
// Wrapping the real config in a "def" key is the teacher's pattern for
// letting one file host more than one config "kind" down the line.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// EngineConfig carries every knob named in the CLI surface (§6): which
// algorithm to run, where the puzzle lives, and the ACS hyperparameters.
// The yaml tags are lowercase because viper lowercases every key it reads,
// so the re-marshaled "def" section only ever carries lowercase keys.
type EngineConfig struct {
	Algorithm   int     `mapstructure:"algorithm" yaml:"algorithm"`
	PuzzleFile  string  `mapstructure:"puzzleFile" yaml:"puzzlefile"`
	SubColonies int     `mapstructure:"subColonies" yaml:"subcolonies"`
	Ants        int     `mapstructure:"ants" yaml:"ants"`
	TimeoutSec  float64 `mapstructure:"timeoutSec" yaml:"timeoutsec"`
	Q0          float64 `mapstructure:"q0" yaml:"q0"`
	Rho         float64 `mapstructure:"rho" yaml:"rho"`
	RhoComm     float64 `mapstructure:"rhoComm" yaml:"rhocomm"`
	Evap        float64 `mapstructure:"evap" yaml:"evap"`
	Verbose     bool    `mapstructure:"verbose" yaml:"verbose"`
}

// Default returns the spec's documented CLI defaults (§6).
func Default() EngineConfig {
	return EngineConfig{
		Algorithm:   2,
		SubColonies: 4,
		Ants:        10,
		TimeoutSec:  120,
		Q0:          0.9,
		Rho:         0.9,
		RhoComm:     0.05,
		Evap:        0.005,
		Verbose:     true,
	}
}

// FromYaml reads path through viper and re-marshals its "def" section into
// an EngineConfig, the same indirection the teacher's reinforcement package
// uses so one file can carry differently-shaped configs under one "kind".
func FromYaml(path string) (EngineConfig, error) {
	cfg := Default()

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return cfg, fmt.Errorf("config: unmarshaling outer config: %w", err)
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return cfg, fmt.Errorf("config: remarshaling def section: %w", err)
	}
	if err := yaml.Unmarshal(spec, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshaling engine config: %w", err)
	}
	return cfg, nil
}

// ParseFlags registers the §6 CLI surface on fs, parses args against base
// (a Default() or FromYaml result), and returns the overlaid config. Only
// flags the caller actually passed override base; unpassed flags keep
// base's value, so a YAML file and the CLI can be combined.
func ParseFlags(fs *flag.FlagSet, args []string, base EngineConfig) (EngineConfig, error) {
	cfg := base

	fs.IntVar(&cfg.Algorithm, "alg", base.Algorithm, "2 selects the parallel ACS engine")
	fs.StringVar(&cfg.PuzzleFile, "file", base.PuzzleFile, "puzzle source path")
	fs.IntVar(&cfg.SubColonies, "subcolonies", base.SubColonies, "number of sub-colonies (K), clamped to >= 3")
	fs.IntVar(&cfg.Ants, "ants", base.Ants, "ants per sub-colony (M)")
	fs.Float64Var(&cfg.TimeoutSec, "timeout", base.TimeoutSec, "wall-clock timeout in seconds")
	fs.Float64Var(&cfg.Q0, "q0", base.Q0, "exploitation threshold")
	fs.Float64Var(&cfg.Rho, "rho", base.Rho, "standard update evaporation")
	fs.Float64Var(&cfg.RhoComm, "rhocomm", base.RhoComm, "communication update evaporation")
	fs.Float64Var(&cfg.Evap, "evap", base.Evap, "bestPher decay per non-communication iteration")
	fs.BoolVar(&cfg.Verbose, "verbose", base.Verbose, "print progress to stdout")

	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: parsing flags: %w", err)
	}
	return cfg, nil
}
