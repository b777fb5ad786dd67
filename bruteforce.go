package partition

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"
)

// ErrNoBalancedAssignment is returned when the balance constraint is
// unsatisfiable, e.g. an odd number of vertices or a single vertex.
var ErrNoBalancedAssignment = errors.New("no balanced assignment exists for this instance size")

// ErrInstanceTooLarge guards the exponential enumeration. Brute force
// is a correctness oracle for small instances, not a production solver.
var ErrInstanceTooLarge = errors.New("instance too large for brute-force enumeration")

// BruteForceConfig tunes the exhaustive solver.
type BruteForceConfig struct {
	Workers int `toml:"workers"`  // enumeration shards; 0 means NumCPU
	MaxSize int `toml:"max_size"` // refuse instances above this; 0 means 26
}

// BruteForceSolver enumerates every assignment and returns the true
// minimum. Candidates are conceptually visited in increasing integer
// order; ties go to the first-encountered minimizer, and the sharded
// scan preserves that by merging shard minima on (value, lowest index).
type BruteForceSolver struct {
	Config *BruteForceConfig
}

func NewBruteForceSolver(config *BruteForceConfig) *BruteForceSolver {
	if config == nil {
		config = &BruteForceConfig{}
	}
	return &BruteForceSolver{Config: config}
}

func (s *BruteForceSolver) Name() string { return SolverBruteForce }

type shardBest struct {
	value float64
	index uint64
	evals uint64
	found bool
	err   error
}

// Solve scans all 2^n assignments, skipping unbalanced candidates when
// the instance requires balanced halves.
func (s *BruteForceSolver) Solve(ctx context.Context, in *Instance) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	n := in.Size()
	maxSize := s.Config.MaxSize
	if maxSize == 0 {
		maxSize = 26
	}
	if n > maxSize {
		return nil, fmt.Errorf("%w: %d variables, limit %d", ErrInstanceTooLarge, n, maxSize)
	}
	balanced := in.BalanceRequired()
	if balanced && n%2 != 0 {
		return nil, ErrNoBalancedAssignment
	}
	obj, err := in.Objective()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	total := uint64(1) << uint(n)
	workers := s.Config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if uint64(workers) > total {
		workers = int(total)
	}

	results := make([]shardBest, workers)
	chunk := total / uint64(workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := uint64(w) * chunk
		hi := lo + chunk
		if w == workers-1 {
			hi = total
		}
		wg.Add(1)
		go func(w int, lo, hi uint64) {
			defer wg.Done()
			results[w] = scanRange(ctx, obj, n, balanced, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	best := shardBest{value: math.Inf(1)}
	var evals uint64
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		evals += r.evals
		if !r.found {
			continue
		}
		if !best.found || r.value < best.value || (r.value == best.value && r.index < best.index) {
			best = r
		}
	}
	if !best.found {
		if balanced {
			return nil, ErrNoBalancedAssignment
		}
		return nil, fmt.Errorf("enumeration produced no candidates for %d variables", n)
	}

	value := best.value
	return &Result{
		Solver:      s.Name(),
		Assignment:  AssignmentFromIndex(best.index, n),
		Value:       value,
		Energy:      value,
		Evaluations: evals,
		Iterations:  total,
		Duration:    time.Since(start),
	}, nil
}

// scanRange evaluates indices in [lo, hi) and keeps the minimum. The
// context is polled every few thousand candidates so a cancelled solve
// stops promptly.
func scanRange(ctx context.Context, obj Objective, n int, balanced bool, lo, hi uint64) shardBest {
	best := shardBest{value: math.Inf(1)}
	for idx := lo; idx < hi; idx++ {
		if idx&0x1fff == 0 {
			select {
			case <-ctx.Done():
				best.err = ctx.Err()
				return best
			default:
			}
		}
		if balanced && !balancedPopcount(idx, n) {
			continue
		}
		v := obj(AssignmentFromIndex(idx, n))
		best.evals++
		if v < best.value {
			best.value = v
			best.index = idx
			best.found = true
		}
	}
	return best
}
