package partition

import (
	"fmt"
)

// An Objective is a pure function from an assignment to the scalar
// being minimized. Builders validate their input once; the returned
// function is deterministic and has no side effects.
type Objective func(Assignment) float64

// GraphPartitionObjective builds the graph-partition objective: the
// number of distinct edges crossing the two halves. Weights determine
// edge presence only; the weighted cut is available via
// Graph.CutWeight.
func GraphPartitionObjective(g *Graph) (Objective, error) {
	if g == nil || g.Size() == 0 {
		return nil, fmt.Errorf("graph partition objective requires a non-empty graph")
	}
	return func(a Assignment) float64 {
		return float64(g.CrossingEdges(a))
	}, nil
}

// NumberPartitionObjective builds the number-partitioning objective:
// the squared difference of the two subset sums.
func NumberPartitionObjective(nl NumberList) (Objective, error) {
	if len(nl) == 0 {
		return nil, fmt.Errorf("number partition objective requires a non-empty list")
	}
	return func(a Assignment) float64 {
		zero, one := nl.SubsetSums(a)
		diff := zero - one
		return diff * diff
	}, nil
}

// GraphPartitionHamiltonian expresses the crossing-edge objective in
// spin form. Each present edge contributes the QUBO terms of
// b_i XOR b_j, which ToIsing turns into (1 - s_i*s_j)/2. A positive
// penalty adds penalty*(sum s_i)^2, which vanishes exactly on balanced
// assignments and penalizes unbalanced ones; penalty 0 leaves the
// objective unconstrained.
func GraphPartitionHamiltonian(g *Graph, penalty float64) (*Hamiltonian, error) {
	if g == nil || g.Size() == 0 {
		return nil, fmt.Errorf("graph partition Hamiltonian requires a non-empty graph")
	}
	if penalty < 0 {
		return nil, fmt.Errorf("balance penalty must be non-negative, got %v", penalty)
	}
	n := g.Size()
	var qubo Terms
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.Weights[i][j] == 0 {
				continue
			}
			// b_i + b_j - 2*b_i*b_j counts the edge iff it crosses.
			qubo = append(qubo,
				Term{I: i, J: i, Value: 1},
				Term{I: j, J: j, Value: 1},
				Term{I: i, J: j, Value: -2})
		}
	}
	terms, offset := qubo.ToIsing()

	if penalty > 0 {
		// penalty*(sum s_i)^2 == penalty*n + 2*penalty*sum_{i<j} s_i*s_j
		offset += penalty * float64(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				terms = append(terms, Term{I: i, J: j, Value: 2 * penalty})
			}
		}
		terms = terms.Canonicalize()
	}
	return &Hamiltonian{Terms: terms, Offset: offset}, nil
}

// NumberPartitionHamiltonian expresses the squared subset-sum
// difference in spin form. With s = 1-2b the difference of the two
// subset sums is sum(n_i*s_i), so the objective is its square.
func NumberPartitionHamiltonian(nl NumberList) (*Hamiltonian, error) {
	if len(nl) == 0 {
		return nil, fmt.Errorf("number partition Hamiltonian requires a non-empty list")
	}
	total := nl.Sum()
	var qubo Terms
	for i, v := range nl {
		// (total - 2*sum n_i b_i)^2 expanded; b^2 == b folds the
		// squared linear part into the diagonal.
		qubo = append(qubo, Term{I: i, J: i, Value: 4*v*v - 4*total*v})
		for j := i + 1; j < len(nl); j++ {
			qubo = append(qubo, Term{I: i, J: j, Value: 8 * v * nl[j]})
		}
	}
	terms, offset := qubo.ToIsing()
	return &Hamiltonian{Terms: terms, Offset: offset + total*total}, nil
}

// An Instance is a problem handed to solvers: one of the two supported
// kinds plus the balance-penalty weight used by spin-space solvers on
// graph instances.
type Instance struct {
	Kind    string
	Graph   *Graph
	Numbers NumberList
	Penalty float64
}

// NewGraphPartitionInstance wraps a graph. Spin-space solvers enforce
// the balanced-halves constraint through the penalty weight; the
// brute-force solver enforces it exactly.
func NewGraphPartitionInstance(g *Graph, penalty float64) (*Instance, error) {
	if g == nil || g.Size() == 0 {
		return nil, fmt.Errorf("graph instance requires a non-empty graph")
	}
	if penalty < 0 {
		return nil, fmt.Errorf("balance penalty must be non-negative, got %v", penalty)
	}
	return &Instance{Kind: KindGraphPartition, Graph: g, Penalty: penalty}, nil
}

// NewNumberPartitionInstance wraps a number list.
func NewNumberPartitionInstance(nl NumberList) (*Instance, error) {
	if len(nl) == 0 {
		return nil, fmt.Errorf("number instance requires a non-empty list")
	}
	return &Instance{Kind: KindNumberPartition, Numbers: nl}, nil
}

// Size returns the number of binary variables.
func (in *Instance) Size() int {
	switch in.Kind {
	case KindGraphPartition:
		return in.Graph.Size()
	case KindNumberPartition:
		return len(in.Numbers)
	}
	return 0
}

// BalanceRequired reports whether only balanced assignments are valid
// solutions. Graph partition requires equal halves; number
// partitioning does not.
func (in *Instance) BalanceRequired() bool {
	return in.Kind == KindGraphPartition
}

// Objective builds the instance's binary objective.
func (in *Instance) Objective() (Objective, error) {
	switch in.Kind {
	case KindGraphPartition:
		return GraphPartitionObjective(in.Graph)
	case KindNumberPartition:
		return NumberPartitionObjective(in.Numbers)
	}
	return nil, fmt.Errorf("unknown instance kind %q", in.Kind)
}

// Hamiltonian builds the instance's spin-form objective.
func (in *Instance) Hamiltonian() (*Hamiltonian, error) {
	switch in.Kind {
	case KindGraphPartition:
		return GraphPartitionHamiltonian(in.Graph, in.Penalty)
	case KindNumberPartition:
		return NumberPartitionHamiltonian(in.Numbers)
	}
	return nil, fmt.Errorf("unknown instance kind %q", in.Kind)
}

// Validate checks the instance is well formed.
func (in *Instance) Validate() error {
	switch in.Kind {
	case KindGraphPartition:
		if in.Graph == nil || in.Graph.Size() == 0 {
			return fmt.Errorf("graph instance has no graph")
		}
		_, err := NewGraph(in.Graph.Weights)
		return err
	case KindNumberPartition:
		if len(in.Numbers) == 0 {
			return fmt.Errorf("number instance has no values")
		}
		return nil
	}
	return fmt.Errorf("unknown instance kind %q", in.Kind)
}
