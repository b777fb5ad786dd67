package partition

import (
	rnd "math/rand"
	"reflect"
	"testing"
)

func TestNewGraphValidation(t *testing.T) {
	if _, err := NewGraph(nil); err == nil {
		t.Errorf("NewGraph(nil) did not fail")
	}
	if _, err := NewGraph([][]float64{{0, 1}, {1}}); err == nil {
		t.Errorf("NewGraph did not reject a non-square matrix")
	}
	if _, err := NewGraph([][]float64{{0, 1}, {2, 0}}); err == nil {
		t.Errorf("NewGraph did not reject an asymmetric matrix")
	}
	g, err := NewGraph([][]float64{{0, 1}, {1, 0}})
	if err != nil {
		t.Fatalf("NewGraph failed on a valid matrix: %v", err)
	}
	if g.Size() != 2 {
		t.Errorf("Size [%v] is not expected value [2]", g.Size())
	}
}

func TestNewRandomGraphDeterminism(t *testing.T) {
	g1, err := NewRandomGraph(rnd.New(rnd.NewSource(42)), 8, 0.5, -10, 10)
	if err != nil {
		t.Fatalf("NewRandomGraph failed: %v", err)
	}
	g2, err := NewRandomGraph(rnd.New(rnd.NewSource(42)), 8, 0.5, -10, 10)
	if err != nil {
		t.Fatalf("NewRandomGraph failed: %v", err)
	}
	if !reflect.DeepEqual(g1.Weights, g2.Weights) {
		t.Errorf("Same seed produced different graphs:\n%v\n%v", g1, g2)
	}
	for i := 0; i < g1.Size(); i++ {
		for j := 0; j < g1.Size(); j++ {
			if g1.Weight(i, j) != g1.Weight(j, i) {
				t.Errorf("Random graph is asymmetric at (%v,%v)", i, j)
			}
		}
	}
}

func TestNewRandomGraphRejectsBadArgs(t *testing.T) {
	rng := rnd.New(rnd.NewSource(1))
	if _, err := NewRandomGraph(rng, 0, 0.5, 0, 1); err == nil {
		t.Errorf("NewRandomGraph did not reject n=0")
	}
	if _, err := NewRandomGraph(rng, 4, 1.5, 0, 1); err == nil {
		t.Errorf("NewRandomGraph did not reject edge probability > 1")
	}
	if _, err := NewRandomGraph(rng, 4, 0.5, 1, 0); err == nil {
		t.Errorf("NewRandomGraph did not reject an inverted weight range")
	}
}

func TestCrossingEdgesAndCutWeight(t *testing.T) {
	g := makeTestGraph(t)

	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount [%v] is not expected value [5]", g.EdgeCount())
	}

	a := Assignment{1, 0, 1, 0}
	// Vertices {0,2} versus {1,3}: edges (0,1), (0,3), (1,2) cross.
	if got := g.CrossingEdges(a); got != 3 {
		t.Errorf("CrossingEdges(%v) = [%v], want [3]", a, got)
	}
	if got := g.CutWeight(a); got != 4+3-5 {
		t.Errorf("CutWeight(%v) = [%v], want [2]", a, got)
	}

	// Both quantities are invariant under complement.
	c := a.Complement()
	if g.CrossingEdges(c) != g.CrossingEdges(a) {
		t.Errorf("CrossingEdges is not complement-invariant: [%v] vs [%v]",
			g.CrossingEdges(c), g.CrossingEdges(a))
	}
	if g.CutWeight(c) != g.CutWeight(a) {
		t.Errorf("CutWeight is not complement-invariant: [%v] vs [%v]",
			g.CutWeight(c), g.CutWeight(a))
	}
}

func TestGraphClone(t *testing.T) {
	g := makeTestGraph(t)
	clone := g.Clone()
	if !reflect.DeepEqual(g.Weights, clone.Weights) {
		t.Errorf("Clone differs from original:\n%v\n%v", g, clone)
	}
	clone.Weights[0][1] = 99
	if g.Weights[0][1] == 99 {
		t.Errorf("Clone shares backing storage with the original")
	}
}
