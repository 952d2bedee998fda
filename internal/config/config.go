// Package config provides configuration loading for the simulators.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the application.
type Config struct {
	Run    RunConfig    `yaml:"run"`
	Life   LifeConfig   `yaml:"life"`
	Ising  IsingConfig  `yaml:"ising"`
	Chart  ChartConfig  `yaml:"chart"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// RunConfig selects the simulation and how long headless runs last.
type RunConfig struct {
	Sim        string `yaml:"sim"`
	Seed       int64  `yaml:"seed"`
	Steps      int    `yaml:"steps"`       // 0 = until interrupted
	PrintEvery int    `yaml:"print_every"` // terminal redraw period in steps
}

// LifeConfig holds the Life rule and board settings.
type LifeConfig struct {
	Side         int     `yaml:"side"`
	Stay         []int   `yaml:"stay"`
	Born         []int   `yaml:"born"`
	AliveAtStart float64 `yaml:"alive_at_start"` // percent of cells alive after randomization
	IntervalMS   int     `yaml:"interval_ms"`
}

// IsingConfig holds the Ising model parameters.
type IsingConfig struct {
	Side        int     `yaml:"side"`
	Temperature float64 `yaml:"temperature"`
	Boltzmann   float64 `yaml:"boltzmann"`
	Coupling    float64 `yaml:"coupling"`
	Field       float64 `yaml:"field"`
	FPS         int     `yaml:"fps"`
}

// ChartConfig controls the visible metric window.
type ChartConfig struct {
	Window int `yaml:"window"`
}

// OutputConfig controls CSV export. An empty Dir disables output.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg; only keys present in data change.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// WriteYAML saves the configuration as YAML.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Life.Stay = append([]int(nil), c.Life.Stay...)
	out.Life.Born = append([]int(nil), c.Life.Born...)
	return &out
}

// ApplyOverride sets a single dotted key such as "life.stay" from its string
// form. Count sets accept "2,3", "23" or "" for the empty set.
func ApplyOverride(cfg *Config, key, value string) error {
	value = strings.TrimSpace(value)
	var err error
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "run.sim":
		cfg.Run.Sim = value
	case "run.seed":
		cfg.Run.Seed, err = strconv.ParseInt(value, 10, 64)
	case "run.steps":
		cfg.Run.Steps, err = strconv.Atoi(value)
	case "run.print_every":
		cfg.Run.PrintEvery, err = strconv.Atoi(value)
	case "life.side":
		cfg.Life.Side, err = strconv.Atoi(value)
	case "life.stay":
		cfg.Life.Stay, err = ParseCounts(value)
	case "life.born":
		cfg.Life.Born, err = ParseCounts(value)
	case "life.alive_at_start":
		cfg.Life.AliveAtStart, err = strconv.ParseFloat(value, 64)
	case "life.interval_ms":
		cfg.Life.IntervalMS, err = strconv.Atoi(value)
	case "ising.side":
		cfg.Ising.Side, err = strconv.Atoi(value)
	case "ising.temperature":
		cfg.Ising.Temperature, err = strconv.ParseFloat(value, 64)
	case "ising.boltzmann":
		cfg.Ising.Boltzmann, err = strconv.ParseFloat(value, 64)
	case "ising.coupling":
		cfg.Ising.Coupling, err = strconv.ParseFloat(value, 64)
	case "ising.field":
		cfg.Ising.Field, err = strconv.ParseFloat(value, 64)
	case "ising.fps":
		cfg.Ising.FPS, err = strconv.Atoi(value)
	case "chart.window":
		cfg.Chart.Window, err = strconv.Atoi(value)
	case "output.dir":
		cfg.Output.Dir = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if err != nil {
		return fmt.Errorf("config key %q: %w", key, err)
	}
	return nil
}

// ParseCounts parses a neighbour-count list. Both "2,3" and "23" forms are
// accepted; range checking is left to the rule.
func ParseCounts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	var fields []string
	if strings.ContainsAny(s, ", ") {
		fields = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	} else {
		fields = strings.Split(s, "")
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("neighbour count %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}
