// Package config holds every empirically tuned constant in the engine:
// the heuristic feature weights, the probability-pruning threshold, the
// transposition table sizing, and the depth the driver should request
// per position. None of these are derivable from first principles; they
// are configuration to be tuned against observed win rate, so they are
// loadable from a yaml file and TWENTY48_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Weights are the positional evaluator's feature weights. The defaults
// are the CMA-ES-optimized values the heuristic was originally tuned
// to. Only the signs are load-bearing: Lost must dominate so that the
// worst playable position still beats the terminal score of zero.
type Weights struct {
	Lost   float64 `yaml:"lost" mapstructure:"lost"`
	Empty  float64 `yaml:"empty" mapstructure:"empty"`
	Merges float64 `yaml:"merges" mapstructure:"merges"`
	Mono   float64 `yaml:"mono" mapstructure:"mono"`
	Sum    float64 `yaml:"sum" mapstructure:"sum"`
	// Exponents applied to tile ranks inside the monotonicity and
	// accumulation penalties.
	MonoPow float64 `yaml:"mono-pow" mapstructure:"mono-pow"`
	SumPow  float64 `yaml:"sum-pow" mapstructure:"sum-pow"`
	// Board-level adjustment for where the largest tile sits. Zeroing
	// all three reduces evaluation to the pure 8-lookup form.
	Corner float64 `yaml:"corner" mapstructure:"corner"`
	Edge   float64 `yaml:"edge" mapstructure:"edge"`
	Center float64 `yaml:"center" mapstructure:"center"`
}

// Search parameterizes the expectimax solver.
type Search struct {
	// PruneThreshold is the cumulative-probability cutoff below which a
	// chance node returns the static evaluation instead of recursing.
	// Zero disables probability pruning.
	PruneThreshold float64 `yaml:"prune-threshold" mapstructure:"prune-threshold"`
	// TableMemFraction is the fraction of system memory the
	// transposition table may claim.
	TableMemFraction float64 `yaml:"table-mem-fraction" mapstructure:"table-mem-fraction"`
	// ParallelRoot searches each legal root direction on its own
	// goroutine with a private transposition table.
	ParallelRoot bool `yaml:"parallel-root" mapstructure:"parallel-root"`
}

// Autoplay parameterizes the self-play runner.
type Autoplay struct {
	Games int `yaml:"games" mapstructure:"games"`
	// Depth of 0 means use the adaptive per-position recommendation.
	Depth  int    `yaml:"depth" mapstructure:"depth"`
	DBPath string `yaml:"db-path" mapstructure:"db-path"`
}

type Config struct {
	Weights  Weights  `yaml:"weights" mapstructure:"weights"`
	Search   Search   `yaml:"search" mapstructure:"search"`
	Autoplay Autoplay `yaml:"autoplay" mapstructure:"autoplay"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Lost:    200000.0,
			Empty:   270.0,
			Merges:  700.0,
			Mono:    47.0,
			Sum:     11.0,
			MonoPow: 4.0,
			SumPow:  3.5,
			Corner:  100.0,
			Edge:    200.0,
			Center:  500.0,
		},
		Search: Search{
			PruneThreshold:   1e-4,
			TableMemFraction: 0.01,
			ParallelRoot:     false,
		},
		Autoplay: Autoplay{
			Games: 10,
		},
	}
}

// Load reads configuration from the given yaml file (optional) and the
// environment, layered over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("twenty48")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("weights.lost", cfg.Weights.Lost)
	v.SetDefault("weights.empty", cfg.Weights.Empty)
	v.SetDefault("weights.merges", cfg.Weights.Merges)
	v.SetDefault("weights.mono", cfg.Weights.Mono)
	v.SetDefault("weights.sum", cfg.Weights.Sum)
	v.SetDefault("weights.mono-pow", cfg.Weights.MonoPow)
	v.SetDefault("weights.sum-pow", cfg.Weights.SumPow)
	v.SetDefault("weights.corner", cfg.Weights.Corner)
	v.SetDefault("weights.edge", cfg.Weights.Edge)
	v.SetDefault("weights.center", cfg.Weights.Center)
	v.SetDefault("search.prune-threshold", cfg.Search.PruneThreshold)
	v.SetDefault("search.table-mem-fraction", cfg.Search.TableMemFraction)
	v.SetDefault("search.parallel-root", cfg.Search.ParallelRoot)
	v.SetDefault("autoplay.games", cfg.Autoplay.Games)
	v.SetDefault("autoplay.depth", cfg.Autoplay.Depth)
	v.SetDefault("autoplay.db-path", cfg.Autoplay.DBPath)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Dump renders the config as yaml, for the shell's `config` command.
func (c *Config) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
