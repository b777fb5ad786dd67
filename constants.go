package partition

// Instance kinds.
const (
	KindGraphPartition  = "graph-partition"
	KindNumberPartition = "number-partition"
)

// Registered solver names.
const (
	SolverBruteForce  = "brute-force"
	SolverEigensolver = "eigensolver"
	SolverAnnealer    = "annealer"
	SolverRemote      = "remote"
)

// A Verdict classifies a solver run against the brute-force oracle.
type Verdict string

const (
	VerdictOptimal    Verdict = "optimal"
	VerdictSuboptimal Verdict = "suboptimal"
	VerdictInfeasible Verdict = "infeasible"
	VerdictFailed     Verdict = "failed"
	VerdictSkipped    Verdict = "skipped"
)

// deriveSeed produces a distinct, reproducible seed for a numbered
// stream (annealer restart, enumeration shard) from a base seed.
// Callers pass seeds around explicitly; there is no package-level RNG.
func deriveSeed(base, stream int64) int64 {
	const mix = -0x61c8864680b583eb // golden-ratio increment
	return base + (stream+1)*mix
}
