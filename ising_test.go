package partition

import (
	"math"
	"reflect"
	"testing"
)

// evalQubo evaluates QUBO terms on an assignment's bits.
func evalQubo(terms Terms, a Assignment) float64 {
	e := 0.0
	for _, t := range terms {
		if t.I == t.J {
			e += t.Value * float64(a[t.I])
		} else {
			e += t.Value * float64(a[t.I]) * float64(a[t.J])
		}
	}
	return e
}

// evalIsing evaluates spin terms on an assignment's spin image.
func evalIsing(terms Terms, a Assignment) float64 {
	s := a.Spins()
	e := 0.0
	for _, t := range terms {
		if t.I == t.J {
			e += t.Value * float64(s[t.I])
		} else {
			e += t.Value * float64(s[t.I]) * float64(s[t.J])
		}
	}
	return e
}

func TestCanonicalize(t *testing.T) {
	terms := Terms{
		{I: 2, J: 1, Value: 3},
		{I: 0, J: 0, Value: 1},
		{I: 1, J: 2, Value: 4},
		{I: 0, J: 0, Value: 2},
	}
	got := terms.Canonicalize()
	want := Terms{
		{I: 0, J: 0, Value: 3},
		{I: 1, J: 2, Value: 7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Canonicalize = [%v], want [%v]", got, want)
	}
	if again := got.Canonicalize(); !reflect.DeepEqual(again, got) {
		t.Errorf("Canonicalize is not idempotent: [%v] vs [%v]", again, got)
	}
}

func TestNumVars(t *testing.T) {
	terms := Terms{{I: 0, J: 3, Value: 1}, {I: 1, J: 1, Value: 2}}
	if terms.NumVars() != 4 {
		t.Errorf("NumVars [%v] is not expected value [4]", terms.NumVars())
	}
	if (Terms{}).NumVars() != 0 {
		t.Errorf("NumVars of empty terms is not 0")
	}
}

func TestToIsingPreservesEnergy(t *testing.T) {
	qubo := Terms{
		{I: 0, J: 0, Value: 2},
		{I: 1, J: 1, Value: -3},
		{I: 0, J: 1, Value: 5},
		{I: 1, J: 2, Value: -1},
		{I: 2, J: 2, Value: 4},
		{I: 0, J: 2, Value: 7},
	}
	ising, offset := qubo.ToIsing()
	for idx := uint64(0); idx < 8; idx++ {
		a := AssignmentFromIndex(idx, 3)
		q := evalQubo(qubo, a)
		i := evalIsing(ising, a) + offset
		if math.Abs(q-i) > 1e-12 {
			t.Errorf("Energies disagree on %v: qubo [%v], ising [%v]", a, q, i)
		}
	}
}

func TestToIsingWithoutDiagonalEntries(t *testing.T) {
	// Coupled variables with no field term still acquire one in spin
	// space; the energies must agree regardless.
	qubo := Terms{
		{I: 0, J: 1, Value: 3},
		{I: 1, J: 2, Value: -2},
	}
	ising, offset := qubo.ToIsing()
	for idx := uint64(0); idx < 8; idx++ {
		a := AssignmentFromIndex(idx, 3)
		q := evalQubo(qubo, a)
		i := evalIsing(ising, a) + offset
		if math.Abs(q-i) > 1e-12 {
			t.Errorf("Energies disagree on %v: qubo [%v], ising [%v]", a, q, i)
		}
	}
}

func TestToQuboRoundtrip(t *testing.T) {
	qubo := Terms{
		{I: 0, J: 0, Value: 2},
		{I: 1, J: 1, Value: -3},
		{I: 0, J: 1, Value: 5},
		{I: 1, J: 2, Value: -1},
	}
	ising, offset1 := qubo.ToIsing()
	back, offset2 := ising.ToQubo()

	if math.Abs(offset1+offset2) > 1e-12 {
		t.Errorf("Roundtrip offsets do not cancel: [%v] and [%v]", offset1, offset2)
	}
	canon := qubo.Canonicalize()
	for idx := uint64(0); idx < 8; idx++ {
		a := AssignmentFromIndex(idx, 3)
		q1 := evalQubo(canon, a)
		q2 := evalQubo(back, a) + offset1 + offset2
		if math.Abs(q1-q2) > 1e-12 {
			t.Errorf("Roundtrip energy disagrees on %v: [%v] vs [%v]", a, q1, q2)
		}
	}
}

func TestHamiltonianEnergy(t *testing.T) {
	h := &Hamiltonian{
		Terms:  Terms{{I: 0, J: 0, Value: 1}, {I: 0, J: 1, Value: 2}},
		Offset: 3,
	}
	if h.NumSpins() != 2 {
		t.Errorf("NumSpins [%v] is not expected value [2]", h.NumSpins())
	}
	// spins (+1, -1): 1*1 + 2*(1*-1) + 3 = 2
	if got := h.Energy([]int8{1, -1}); got != 2 {
		t.Errorf("Energy [%v] is not expected value [2]", got)
	}
	if got := h.Eval(Assignment{0, 1}); got != 2 {
		t.Errorf("Eval [%v] is not expected value [2]", got)
	}
}
