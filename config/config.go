package config

import (
	"errors"
	"fmt"
	"os"

	"craftsearch/meta"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

const (
	PlannerBFS  = "bfs"
	PlannerMCTS = "mcts"
)

type Config struct {
	Planner     Planner `yaml:"planner"`
	Catalog     string  `yaml:"catalog"`
	MaxSteps    int     `yaml:"max_steps"`
	Episodes    int     `yaml:"episodes"`
	Parallelism int     `yaml:"parallelism"`
	OutDir      string  `yaml:"out_dir"`
	LogLevel    string  `yaml:"log_level"`
}

type Planner struct {
	Kind        string  `yaml:"kind"`
	MaxDepth    int     `yaml:"max_depth"`
	Simulations int     `yaml:"simulations"`
	Exploration float64 `yaml:"exploration"`
	Discount    float64 `yaml:"discount"`
	// Seed 0 means a fresh random seed per run.
	Seed uint64 `yaml:"seed"`
}

func Default() Config {
	return Config{
		Planner: Planner{
			Kind:        PlannerMCTS,
			MaxDepth:    meta.MAX_DEPTH,
			Simulations: meta.SIMULATIONS,
			Exploration: meta.EXPLORATION,
			Discount:    meta.DISCOUNT,
		},
		MaxSteps:    meta.MAX_STEPS,
		Episodes:    meta.EPISODES,
		Parallelism: meta.PARALLELISM,
		OutDir:      "experiments/out",
		LogLevel:    "info",
	}
}

// Load reads a YAML config on top of the defaults.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Planner.Kind {
	case PlannerBFS, PlannerMCTS:
	default:
		return fmt.Errorf("%w: unknown planner %q", ErrInvalid, c.Planner.Kind)
	}
	if c.Planner.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth %d is negative", ErrInvalid, c.Planner.MaxDepth)
	}
	if c.Planner.Simulations < 0 {
		return fmt.Errorf("%w: simulations %d is negative", ErrInvalid, c.Planner.Simulations)
	}
	if c.Planner.Exploration < 0 {
		return fmt.Errorf("%w: exploration %v is negative", ErrInvalid, c.Planner.Exploration)
	}
	if c.Planner.Discount <= 0 || c.Planner.Discount > 1 {
		return fmt.Errorf("%w: discount %v is outside (0,1]", ErrInvalid, c.Planner.Discount)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max_steps must be positive", ErrInvalid)
	}
	if c.Episodes <= 0 || c.Parallelism <= 0 {
		return fmt.Errorf("%w: episodes and parallelism must be positive", ErrInvalid)
	}
	return nil
}
