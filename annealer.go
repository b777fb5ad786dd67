package partition

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// AnnealerConfig tunes the simulated-annealing solver.
type AnnealerConfig struct {
	Restarts int     `toml:"restarts"` // independent chains; 0 means 8
	Sweeps   int     `toml:"sweeps"`   // sweeps per restart; 0 means 200
	TStart   float64 `toml:"t_start"`  // initial temperature; 0 means 10
	TEnd     float64 `toml:"t_end"`    // final temperature; 0 means 0.05
	Seed     int64   `toml:"seed"`     // base seed; restarts derive their own
}

func (c *AnnealerConfig) withDefaults() AnnealerConfig {
	out := AnnealerConfig{Restarts: 8, Sweeps: 200, TStart: 10, TEnd: 0.05, Seed: 1}
	if c == nil {
		return out
	}
	if c.Restarts > 0 {
		out.Restarts = c.Restarts
	}
	if c.Sweeps > 0 {
		out.Sweeps = c.Sweeps
	}
	if c.TStart > 0 {
		out.TStart = c.TStart
	}
	if c.TEnd > 0 {
		out.TEnd = c.TEnd
	}
	if c.Seed != 0 {
		out.Seed = c.Seed
	}
	return out
}

// Annealer approximately minimizes the spin Hamiltonian by simulated
// annealing: single-spin-flip moves under a geometric cooling
// schedule, restarted from independent random states. It satisfies the
// same contract an external variational or annealing backend would:
// given the coefficients and offset, return a candidate minimizer, its
// energy, and iteration metadata. Results are reproducible for a given
// seed; the best chain wins, ties to the lowest restart index.
type Annealer struct {
	Config *AnnealerConfig
}

func NewAnnealer(config *AnnealerConfig) *Annealer {
	return &Annealer{Config: config}
}

func (s *Annealer) Name() string { return SolverAnnealer }

// chainResult is one restart's best-seen state.
type chainResult struct {
	energy float64
	spins  []int8
	evals  uint64
	err    error
}

func (s *Annealer) Solve(ctx context.Context, in *Instance) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	cfg := s.Config.withDefaults()
	h, err := in.Hamiltonian()
	if err != nil {
		return nil, err
	}
	obj, err := in.Objective()
	if err != nil {
		return nil, err
	}
	n := in.Size()
	fields, couplings := neighborTables(h, n)

	start := time.Now()
	results := make([]chainResult, cfg.Restarts)
	var wg sync.WaitGroup
	for r := 0; r < cfg.Restarts; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(deriveSeed(cfg.Seed, int64(r))))
			results[r] = annealChain(ctx, h, fields, couplings, n, cfg, rng)
		}(r)
	}
	wg.Wait()

	best := chainResult{energy: math.Inf(1)}
	var evals uint64
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		evals += r.evals
		if r.energy < best.energy {
			best = r
		}
	}

	assignment := SpinsToAssignment(best.spins)
	return &Result{
		Solver:      s.Name(),
		Assignment:  assignment,
		Value:       obj(assignment),
		Energy:      best.energy,
		Evaluations: evals,
		Iterations:  uint64(cfg.Restarts) * uint64(cfg.Sweeps),
		Duration:    time.Since(start),
	}, nil
}

// coupling is one neighbor entry in the flip tables.
type coupling struct {
	j int
	w float64
}

// neighborTables splits a canonicalized Hamiltonian into per-spin
// fields and adjacency lists so the energy change of a single flip is
// O(degree).
func neighborTables(h *Hamiltonian, n int) ([]float64, [][]coupling) {
	fields := make([]float64, n)
	couplings := make([][]coupling, n)
	for _, t := range h.Terms.Canonicalize() {
		if t.I == t.J {
			fields[t.I] += t.Value
			continue
		}
		couplings[t.I] = append(couplings[t.I], coupling{j: t.J, w: t.Value})
		couplings[t.J] = append(couplings[t.J], coupling{j: t.I, w: t.Value})
	}
	return fields, couplings
}

func annealChain(ctx context.Context, h *Hamiltonian, fields []float64, couplings [][]coupling, n int, cfg AnnealerConfig, rng *rand.Rand) chainResult {
	spins := make([]int8, n)
	for i := range spins {
		if rng.Intn(2) == 0 {
			spins[i] = 1
		} else {
			spins[i] = -1
		}
	}
	energy := h.Energy(spins)
	best := chainResult{energy: energy, spins: append([]int8(nil), spins...), evals: 1}

	cooling := 1.0
	if cfg.Sweeps > 1 {
		cooling = math.Pow(cfg.TEnd/cfg.TStart, 1/float64(cfg.Sweeps-1))
	}
	temp := cfg.TStart
	for sweep := 0; sweep < cfg.Sweeps; sweep++ {
		select {
		case <-ctx.Done():
			best.err = ctx.Err()
			return best
		default:
		}
		for move := 0; move < n; move++ {
			k := rng.Intn(n)
			local := fields[k]
			for _, c := range couplings[k] {
				local += c.w * float64(spins[c.j])
			}
			delta := -2 * float64(spins[k]) * local
			best.evals++
			if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
				spins[k] = -spins[k]
				energy += delta
				if energy < best.energy {
					best.energy = energy
					copy(best.spins, spins)
				}
			}
		}
		temp *= cooling
	}
	return best
}
