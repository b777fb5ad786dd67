package partition

import (
	"context"
	"fmt"
	"time"
)

// A Result is what any solver, exact or approximate, hands back: the
// assignment it settled on, its binary objective value, the spin
// energy of that assignment, and bookkeeping about the search.
type Result struct {
	Solver      string
	Assignment  Assignment
	Value       float64
	Energy      float64
	Evaluations uint64
	Iterations  uint64
	Duration    time.Duration
}

// A Solver minimizes an instance's objective. Exact solvers return the
// true minimum; approximate solvers return the best candidate found.
type Solver interface {
	Name() string
	Solve(ctx context.Context, in *Instance) (*Result, error)
}

// A Registration is one slot in the registry: either an available
// solver or a placeholder recording why the solver is absent.
type Registration struct {
	Name   string
	Solver Solver // nil when unavailable
	Reason string // populated when unavailable
}

// Available reports whether the slot holds a usable solver.
func (r Registration) Available() bool {
	return r.Solver != nil
}

// A Registry is the set of solvers resolved once at startup. Optional
// solvers that cannot be configured register as unavailable instead of
// failing at call sites; callers skip them and continue.
type Registry struct {
	entries []Registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an available solver, preserving registration order.
func (r *Registry) Register(s Solver) {
	r.entries = append(r.entries, Registration{Name: s.Name(), Solver: s})
}

// RegisterUnavailable records a solver that could not be resolved.
func (r *Registry) RegisterUnavailable(name, reason string) {
	r.entries = append(r.entries, Registration{Name: name, Reason: reason})
}

// Entries returns all registrations in order.
func (r *Registry) Entries() []Registration {
	return r.entries
}

// Available returns the usable solvers in registration order.
func (r *Registry) Available() []Solver {
	var solvers []Solver
	for _, e := range r.entries {
		if e.Available() {
			solvers = append(solvers, e.Solver)
		}
	}
	return solvers
}

// Lookup finds a registration by name.
func (r *Registry) Lookup(name string) (Registration, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Registration{}, false
}

// DefaultRegistry resolves the standard solver set: brute force, the
// classical eigensolver, the annealer, and, when configured, the
// remote solver. A nil config uses defaults throughout.
func DefaultRegistry(cfg *SolverConfig) *Registry {
	if cfg == nil {
		cfg = &SolverConfig{}
	}
	reg := NewRegistry()
	reg.Register(NewBruteForceSolver(cfg.BruteForce))
	reg.Register(NewEigensolver())
	reg.Register(NewAnnealer(cfg.Annealer))

	remote, err := NewRemoteSolver(cfg.Remote)
	if err != nil {
		reg.RegisterUnavailable(SolverRemote, err.Error())
	} else {
		reg.Register(remote)
	}
	return reg
}

// SolverConfig gathers per-solver settings for registry resolution.
type SolverConfig struct {
	Tolerance  float64           `toml:"tolerance"`
	BruteForce *BruteForceConfig `toml:"brute_force"`
	Annealer   *AnnealerConfig   `toml:"annealer"`
	Remote     *RemoteConfig     `toml:"remote"`
}

func (c *SolverConfig) String() string {
	return fmt.Sprintf("SolverConfig{tolerance=%g}", c.Tolerance)
}
