package partition

import (
	"fmt"
	"sort"
)

// A Term is a single coefficient in a quadratic problem. If I == J the
// Term is a linear (field) coefficient, otherwise a pairwise coupling.
// The same representation serves both the binary (QUBO) and the spin
// (Ising) form; which one a Terms list means is up to the holder.
type Term struct {
	I     int
	J     int
	Value float64
}

// Terms is a list of Term coefficients.
type Terms []Term

// Canonicalize ensures each Term has I <= J, sorts by (I, J), and
// merges duplicate index pairs by summing their values.
func (p Terms) Canonicalize() Terms {
	p1 := make(Terms, len(p))
	for i, t := range p {
		if t.I > t.J {
			t.I, t.J = t.J, t.I
		}
		p1[i] = t
	}

	sort.Slice(p1, func(i, j int) bool {
		if p1[i].I != p1[j].I {
			return p1[i].I < p1[j].I
		}
		return p1[i].J < p1[j].J
	})

	p2 := make(Terms, 0, len(p1))
	for i, t := range p1 {
		if i > 0 && t.I == p1[i-1].I && t.J == p1[i-1].J {
			p2[len(p2)-1].Value += t.Value
		} else {
			p2 = append(p2, t)
		}
	}
	return p2
}

// NumVars returns one past the largest variable index referenced.
func (p Terms) NumVars() int {
	max := -1
	for _, t := range p {
		if t.I > max {
			max = t.I
		}
		if t.J > max {
			max = t.J
		}
	}
	return max + 1
}

// couplerMap maps each variable to the couplings that touch it. Field
// terms are skipped.
func (p Terms) couplerMap() map[int]Terms {
	cMap := make(map[int]Terms, len(p))
	for _, t := range p {
		if t.I == t.J {
			continue
		}
		cMap[t.I] = append(cMap[t.I], t)
		t.I, t.J = t.J, t.I
		cMap[t.I] = append(cMap[t.I], t)
	}
	return cMap
}

// ToIsing reinterprets the receiver as QUBO coefficients over bits and
// converts them to spin coefficients under s = 1 - 2b (bit 0 maps to
// spin +1). The returned offset makes the energies agree:
//
//	qubo(b) == ising(spins(b)) + offset
func (p Terms) ToIsing() (Terms, float64) {
	cp := p.Canonicalize()
	cMap := cp.couplerMap()
	ip := make(Terms, 0, len(cp))
	offset := 0.0
	hasField := make(map[int]bool)

	for _, t := range cp {
		if t.I == t.J {
			v := 0.0
			for _, c := range cMap[t.I] {
				v += c.Value
			}
			offset += t.Value / 2.0
			t.Value = -t.Value/2.0 - v/4.0
			hasField[t.I] = true
		} else {
			offset += t.Value / 4.0
			t.Value /= 4.0
		}
		ip = append(ip, t)
	}

	// Coupled variables without a field entry still acquire one in
	// spin space.
	for i, coup := range cMap {
		if hasField[i] {
			continue
		}
		v := 0.0
		for _, c := range coup {
			v += c.Value
		}
		if v != 0 {
			ip = append(ip, Term{I: i, J: i, Value: -v / 4.0})
		}
	}
	return ip.Canonicalize(), offset
}

// ToQubo is the inverse of ToIsing: it reinterprets the receiver as
// spin coefficients and converts them to QUBO coefficients over bits,
// again with ising(s) == qubo(bits(s)) + offset.
func (p Terms) ToQubo() (Terms, float64) {
	cp := p.Canonicalize()
	cMap := cp.couplerMap()
	qp := make(Terms, 0, len(cp))
	offset := 0.0
	hasField := make(map[int]bool)

	for _, t := range cp {
		if t.I == t.J {
			v := 0.0
			for _, c := range cMap[t.I] {
				v += c.Value
			}
			offset += t.Value
			t.Value = -t.Value*2.0 - v*2.0
			hasField[t.I] = true
		} else {
			offset += t.Value
			t.Value *= 4.0
		}
		qp = append(qp, t)
	}

	for i, coup := range cMap {
		if hasField[i] {
			continue
		}
		v := 0.0
		for _, c := range coup {
			v += c.Value
		}
		if v != 0 {
			qp = append(qp, Term{I: i, J: i, Value: -v * 2.0})
		}
	}
	return qp.Canonicalize(), offset
}

// A Hamiltonian is a spin-form quadratic objective: pairwise couplings
// and fields over ±1 variables plus a constant offset. Its energy on
// the spin image of an assignment equals the binary objective exactly.
type Hamiltonian struct {
	Terms  Terms
	Offset float64
}

// NumSpins returns the number of spin variables.
func (h *Hamiltonian) NumSpins() int {
	return h.Terms.NumVars()
}

// Energy evaluates the Hamiltonian on a spin vector, offset included.
func (h *Hamiltonian) Energy(spins []int8) float64 {
	e := h.Offset
	for _, t := range h.Terms {
		if t.I == t.J {
			e += t.Value * float64(spins[t.I])
		} else {
			e += t.Value * float64(spins[t.I]) * float64(spins[t.J])
		}
	}
	return e
}

// Eval evaluates the Hamiltonian on the spin image of an assignment.
func (h *Hamiltonian) Eval(a Assignment) float64 {
	return h.Energy(a.Spins())
}

func (h *Hamiltonian) String() string {
	return fmt.Sprintf("Hamiltonian{%d terms, offset %g}", len(h.Terms), h.Offset)
}
