package partition

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/BurntSushi/toml"
)

// ToolConfig is the top-level TOML configuration shared by the cmd
// tools.
type ToolConfig struct {
	Persistence *PersistenceConfig `toml:"persistence"`
	Solvers     *SolverConfig      `toml:"solvers"`
}

// ProblemConfig describes a random instance to generate. Kind selects
// the problem; the seed makes generation reproducible.
type ProblemConfig struct {
	Kind            string  `toml:"kind"`
	Size            int     `toml:"size"`
	Seed            int64   `toml:"seed"`
	EdgeProbability float64 `toml:"edge_probability"` // graph only
	WeightMin       float64 `toml:"weight_min"`       // graph only
	WeightMax       float64 `toml:"weight_max"`       // graph only
	Penalty         float64 `toml:"penalty"`          // graph only
	ValueMin        float64 `toml:"value_min"`        // numbers only
	ValueMax        float64 `toml:"value_max"`        // numbers only
}

// LoadToolConfig decodes a ToolConfig from a TOML file.
func LoadToolConfig(path string) (*ToolConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load tool config: %w", err)
	}
	defer f.Close()

	var config ToolConfig
	if _, err := toml.NewDecoder(f).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool config: %w", err)
	}
	return &config, nil
}

// GenerateInstance builds a random instance from a problem config.
// The RNG is scoped to this call and seeded from the config, so the
// same config always generates the same instance.
func GenerateInstance(cfg *ProblemConfig) (*Instance, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("problem size must be positive, got %d", cfg.Size)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	switch cfg.Kind {
	case KindGraphPartition:
		edgeProb := cfg.EdgeProbability
		if edgeProb == 0 {
			edgeProb = 0.5
		}
		wmin, wmax := cfg.WeightMin, cfg.WeightMax
		if wmin == 0 && wmax == 0 {
			wmin, wmax = -10, 10
		}
		penalty := cfg.Penalty
		if penalty == 0 {
			// Large enough that violating the balance constraint
			// always costs more than any crossing-edge saving.
			penalty = float64(cfg.Size * cfg.Size)
		}
		g, err := NewRandomGraph(rng, cfg.Size, edgeProb, wmin, wmax)
		if err != nil {
			return nil, err
		}
		return NewGraphPartitionInstance(g, penalty)
	case KindNumberPartition:
		vmin, vmax := cfg.ValueMin, cfg.ValueMax
		if vmin == 0 && vmax == 0 {
			vmin, vmax = 1, 100
		}
		nl, err := NewRandomNumberList(rng, cfg.Size, vmin, vmax)
		if err != nil {
			return nil, err
		}
		return NewNumberPartitionInstance(nl)
	}
	return nil, fmt.Errorf("unknown problem kind %q", cfg.Kind)
}

// LoadProblemConfig decodes a ProblemConfig from a TOML file.
func LoadProblemConfig(path string) (*ProblemConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load problem config: %w", err)
	}
	defer f.Close()

	var config ProblemConfig
	if _, err := toml.NewDecoder(f).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal problem config: %w", err)
	}
	return &config, nil
}
