package partition

import (
	"fmt"
	"math/rand"
	"strings"

	cp "github.com/jinzhu/copier"
)

// A Graph is an n-by-n symmetric weight matrix. Weights[i][j] is the
// weight of the edge between vertices i and j; zero means no edge.
// Graphs are immutable once built.
type Graph struct {
	Weights [][]float64
}

// NewGraph validates a weight matrix and wraps it in a Graph. The
// matrix must be square and symmetric.
func NewGraph(weights [][]float64) (*Graph, error) {
	n := len(weights)
	if n == 0 {
		return nil, fmt.Errorf("graph must have at least one vertex")
	}
	for i, row := range weights {
		if len(row) != n {
			return nil, fmt.Errorf("weight matrix is not square: row %d has %d columns, want %d", i, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if weights[i][j] != weights[j][i] {
				return nil, fmt.Errorf("weight matrix is not symmetric at (%d,%d): %v != %v", i, j, weights[i][j], weights[j][i])
			}
		}
	}
	return &Graph{Weights: weights}, nil
}

// NewRandomGraph generates a graph on n vertices where each edge is
// present with probability edgeProb and carries a weight drawn
// uniformly from [wmin, wmax). The caller supplies the random source,
// so the same source state always yields the same graph.
func NewRandomGraph(rng *rand.Rand, n int, edgeProb, wmin, wmax float64) (*Graph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vertex count must be positive, got %d", n)
	}
	if edgeProb < 0 || edgeProb > 1 {
		return nil, fmt.Errorf("edge probability must be in [0,1], got %v", edgeProb)
	}
	if wmax < wmin {
		return nil, fmt.Errorf("weight range is inverted: [%v, %v)", wmin, wmax)
	}
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() >= edgeProb {
				continue
			}
			weight := wmin + rng.Float64()*(wmax-wmin)
			w[i][j] = weight
			w[j][i] = weight
		}
	}
	return &Graph{Weights: w}, nil
}

// Size returns the vertex count.
func (g *Graph) Size() int {
	return len(g.Weights)
}

// Weight returns the weight of edge (i, j), zero if absent.
func (g *Graph) Weight(i, j int) float64 {
	return g.Weights[i][j]
}

// EdgeCount tallies the edges with nonzero weight.
func (g *Graph) EdgeCount() int {
	count := 0
	for i := range g.Weights {
		for j := i + 1; j < len(g.Weights); j++ {
			if g.Weights[i][j] != 0 {
				count++
			}
		}
	}
	return count
}

// CrossingEdges counts the edges whose endpoints land in different
// halves of the assignment. Weights only determine edge presence here;
// this is the graph-partition objective.
func (g *Graph) CrossingEdges(a Assignment) int {
	count := 0
	for i := range g.Weights {
		for j := i + 1; j < len(g.Weights); j++ {
			if g.Weights[i][j] != 0 && a[i] != a[j] {
				count++
			}
		}
	}
	return count
}

// CutWeight sums the weights of crossing edges.
func (g *Graph) CutWeight(a Assignment) float64 {
	total := 0.0
	for i := range g.Weights {
		for j := i + 1; j < len(g.Weights); j++ {
			if a[i] != a[j] {
				total += g.Weights[i][j]
			}
		}
	}
	return total
}

// Clone deep-copies the graph.
func (g *Graph) Clone() *Graph {
	clone := &Graph{}
	cp.CopyWithOption(clone, g, cp.Option{DeepCopy: true})
	return clone
}

func (g *Graph) String() string {
	var sb strings.Builder
	for _, row := range g.Weights {
		for j, w := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", w)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
