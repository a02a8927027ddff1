package pauli

import (
	"math"
	"math/cmplx"
	"sort"
	"strings"
)

// DefaultTol is the magnitude below which Cleanup drops a coefficient.
const DefaultTol = 1e-12

// PauliSum is an ordered collection of Pauli terms with complex coefficients.
//
// Internally each term is a row in two boolean blocks: x (X-support) and
// z (Z-support), both of width NQubits. The represented operator of row t is
//
//	coeff[t] · i^(x_t·z_t) · X^{x_t} Z^{z_t}
//
// which makes single-qubit labels map exactly: X=(1,0), Z=(0,1), Y=(1,1).
//
// The zero value is unusable; construct via FromStrings, FromMap, Empty or
// Identity. Treat a PauliSum as immutable unless a method documents an
// in-place effect (the two Sort methods).
type PauliSum struct {
	n     int
	x     [][]bool
	z     [][]bool
	coeff []complex128
}

// Empty returns a PauliSum over n qubits with no terms.
// Complexity: O(1).
func Empty(n int) *PauliSum {
	return &PauliSum{n: n}
}

// Identity returns the single-term identity operator over n qubits with
// coefficient c.
// Complexity: O(n).
func Identity(n int, c complex128) *PauliSum {
	p := Empty(n)
	p.x = append(p.x, make([]bool, n))
	p.z = append(p.z, make([]bool, n))
	p.coeff = append(p.coeff, c)
	return p
}

// FromStrings builds a PauliSum from parallel label/coefficient slices.
// Labels must share one length n over the alphabet {I,X,Y,Z}.
//
// Errors: ErrEmptyOperator, ErrCoeffLength, ErrBadLabel, ErrQubitMismatch.
// Complexity: O(terms·n).
func FromStrings(labels []string, coeffs []complex128) (*PauliSum, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyOperator
	}
	if len(labels) != len(coeffs) {
		return nil, ErrCoeffLength
	}
	n := len(labels[0])
	p := Empty(n)
	for t, lab := range labels {
		if len(lab) != n {
			return nil, ErrQubitMismatch
		}
		xr := make([]bool, n)
		zr := make([]bool, n)
		for q := 0; q < n; q++ {
			switch lab[q] {
			case 'I':
			case 'X':
				xr[q] = true
			case 'Z':
				zr[q] = true
			case 'Y':
				xr[q] = true
				zr[q] = true
			default:
				return nil, ErrBadLabel
			}
		}
		p.x = append(p.x, xr)
		p.z = append(p.z, zr)
		p.coeff = append(p.coeff, coeffs[t])
	}
	return p, nil
}

// FromMap builds a PauliSum from a label→coefficient mapping.
// Keys are ingested in ascending lexicographic order so the result is
// deterministic regardless of map iteration order.
// Complexity: O(terms·(n + log terms)).
func FromMap(m map[string]complex128) (*PauliSum, error) {
	if len(m) == 0 {
		return nil, ErrEmptyOperator
	}
	labels := make([]string, 0, len(m))
	for lab := range m {
		labels = append(labels, lab)
	}
	sort.Strings(labels)
	coeffs := make([]complex128, len(labels))
	for i, lab := range labels {
		coeffs[i] = m[lab]
	}
	return FromStrings(labels, coeffs)
}

// NQubits reports the qubit count.
func (p *PauliSum) NQubits() int { return p.n }

// NTerms reports the term count.
func (p *PauliSum) NTerms() int { return len(p.coeff) }

// Coeff returns the coefficient of term t.
func (p *PauliSum) Coeff(t int) complex128 { return p.coeff[t] }

// SetCoeff overwrites the coefficient of term t. This is the one sanctioned
// mutation: solvers re-derive clique amplitudes in place after a sector fix.
func (p *PauliSum) SetCoeff(t int, c complex128) { p.coeff[t] = c }

// Coeffs returns a copy of the coefficient vector.
func (p *PauliSum) Coeffs() []complex128 {
	out := make([]complex128, len(p.coeff))
	copy(out, p.coeff)
	return out
}

// XBit reports the X-support of term t at qubit q; ZBit likewise for Z.
func (p *PauliSum) XBit(t, q int) bool { return p.x[t][q] }

// ZBit reports the Z-support of term t at qubit q.
func (p *PauliSum) ZBit(t, q int) bool { return p.z[t][q] }

// TermBits returns copies of the X/Z support rows of term t, in the shape
// MulTerms consumes.
func (p *PauliSum) TermBits(t int) (x, z []bool) {
	return cloneRow(p.x[t]), cloneRow(p.z[t])
}

// Label renders term t as a string over {I,X,Y,Z}.
// Complexity: O(n).
func (p *PauliSum) Label(t int) string {
	var b strings.Builder
	b.Grow(p.n)
	for q := 0; q < p.n; q++ {
		switch {
		case p.x[t][q] && p.z[t][q]:
			b.WriteByte('Y')
		case p.x[t][q]:
			b.WriteByte('X')
		case p.z[t][q]:
			b.WriteByte('Z')
		default:
			b.WriteByte('I')
		}
	}
	return b.String()
}

// ToMap serializes the operator as a label→coefficient mapping, summing
// duplicate labels.
// Complexity: O(terms·n).
func (p *PauliSum) ToMap() map[string]complex128 {
	out := make(map[string]complex128, p.NTerms())
	for t := 0; t < p.NTerms(); t++ {
		out[p.Label(t)] += p.coeff[t]
	}
	return out
}

// Clone returns a deep copy.
// Complexity: O(terms·n).
func (p *PauliSum) Clone() *PauliSum {
	q := Empty(p.n)
	q.x = cloneBits(p.x)
	q.z = cloneBits(p.z)
	q.coeff = make([]complex128, len(p.coeff))
	copy(q.coeff, p.coeff)
	return q
}

// Term returns term t as a fresh single-term PauliSum.
// Errors: ErrIndexRange.
func (p *PauliSum) Term(t int) (*PauliSum, error) {
	if t < 0 || t >= p.NTerms() {
		return nil, ErrIndexRange
	}
	return p.Select([]int{t})
}

// Select returns a new PauliSum containing the listed terms, in order.
// Errors: ErrIndexRange.
// Complexity: O(len(indices)·n).
func (p *PauliSum) Select(indices []int) (*PauliSum, error) {
	q := Empty(p.n)
	for _, t := range indices {
		if t < 0 || t >= p.NTerms() {
			return nil, ErrIndexRange
		}
		q.x = append(q.x, cloneRow(p.x[t]))
		q.z = append(q.z, cloneRow(p.z[t]))
		q.coeff = append(q.coeff, p.coeff[t])
	}
	return q, nil
}

// SelectMask returns the terms whose mask entry is keep (true ⇒ kept when
// keep==true, dropped when keep==false).
// Errors: ErrCoeffLength when the mask length differs from the term count.
func (p *PauliSum) SelectMask(mask []bool, keep bool) (*PauliSum, error) {
	if len(mask) != p.NTerms() {
		return nil, ErrCoeffLength
	}
	var idx []int
	for t, m := range mask {
		if m == keep {
			idx = append(idx, t)
		}
	}
	return p.Select(idx)
}

// AppendTerm appends one raw symplectic row in place (no cleanup). The rows
// are copied. This is the low-level building block for callers assembling an
// operator term by term, e.g. rotation generators and conjugation output.
// Errors: ErrQubitMismatch.
func (p *PauliSum) AppendTerm(x, z []bool, c complex128) error {
	if len(x) != p.n || len(z) != p.n {
		return ErrQubitMismatch
	}
	p.x = append(p.x, cloneRow(x))
	p.z = append(p.z, cloneRow(z))
	p.coeff = append(p.coeff, c)
	return nil
}

// Append concatenates the terms of other onto a copy of p (no cleanup).
// Errors: ErrQubitMismatch.
func (p *PauliSum) Append(other *PauliSum) (*PauliSum, error) {
	if p.n != other.n {
		return nil, ErrQubitMismatch
	}
	q := p.Clone()
	q.x = append(q.x, cloneBits(other.x)...)
	q.z = append(q.z, cloneBits(other.z)...)
	q.coeff = append(q.coeff, other.coeff...)
	return q, nil
}

// Add returns p + other with duplicates merged.
// Errors: ErrQubitMismatch.
func (p *PauliSum) Add(other *PauliSum) (*PauliSum, error) {
	q, err := p.Append(other)
	if err != nil {
		return nil, err
	}
	return q.Cleanup(DefaultTol), nil
}

// Sub returns p − other with duplicates merged.
// Errors: ErrQubitMismatch.
func (p *PauliSum) Sub(other *PauliSum) (*PauliSum, error) {
	return p.Add(other.Scale(-1))
}

// Scale returns c·p.
func (p *PauliSum) Scale(c complex128) *PauliSum {
	q := p.Clone()
	for t := range q.coeff {
		q.coeff[t] *= c
	}
	return q
}

// MulTerms multiplies two symplectic rows and reports the product row plus
// the accumulated i^k phase factor.
//
// Derivation: with P(x,z) = i^(x·z) X^x Z^z, the product of two such terms
// is i^g · P(x1⊕x2, z1⊕z2) where g = x1·z1 + x2·z2 + 2·(z1·x2) − x3·z3
// (integer dot products, reduced mod 4).
//
// Complexity: O(n).
func MulTerms(x1, z1, x2, z2 []bool) (x3, z3 []bool, phase complex128) {
	n := len(x1)
	x3 = make([]bool, n)
	z3 = make([]bool, n)
	g := 0
	for q := 0; q < n; q++ {
		if x1[q] && z1[q] {
			g++
		}
		if x2[q] && z2[q] {
			g++
		}
		if z1[q] && x2[q] {
			g += 2
		}
		x3[q] = x1[q] != x2[q]
		z3[q] = z1[q] != z2[q]
		if x3[q] && z3[q] {
			g += 3 // −1 mod 4
		}
	}
	switch g % 4 {
	case 0:
		phase = 1
	case 1:
		phase = 1i
	case 2:
		phase = -1
	default:
		phase = -1i
	}
	return x3, z3, phase
}

// Mul returns the full operator product p·other (all term pairs, phases
// accumulated, duplicates merged).
//
// Errors: ErrQubitMismatch.
// Complexity: O(n_p·n_other·n) before cleanup.
func (p *PauliSum) Mul(other *PauliSum) (*PauliSum, error) {
	if p.n != other.n {
		return nil, ErrQubitMismatch
	}
	out := Empty(p.n)
	for a := 0; a < p.NTerms(); a++ {
		for b := 0; b < other.NTerms(); b++ {
			x3, z3, ph := MulTerms(p.x[a], p.z[a], other.x[b], other.z[b])
			out.x = append(out.x, x3)
			out.z = append(out.z, z3)
			out.coeff = append(out.coeff, p.coeff[a]*other.coeff[b]*ph)
		}
	}
	return out.Cleanup(DefaultTol), nil
}

// Cleanup returns a copy with terms sorted lexicographically by symplectic
// bits, duplicate terms merged by coefficient addition, and coefficients of
// magnitude ≤ tol dropped. tol ≤ 0 means DefaultTol.
//
// Complexity: O(terms·n·log terms).
func (p *PauliSum) Cleanup(tol float64) *PauliSum {
	if tol <= 0 {
		tol = DefaultTol
	}
	type row struct {
		key   string
		t     int
		coeff complex128
	}
	rows := make([]row, p.NTerms())
	for t := 0; t < p.NTerms(); t++ {
		rows[t] = row{key: p.rowKey(t), t: t, coeff: p.coeff[t]}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	out := Empty(p.n)
	i := 0
	for i < len(rows) {
		j := i
		var sum complex128
		for j < len(rows) && rows[j].key == rows[i].key {
			sum += rows[j].coeff
			j++
		}
		if cmplx.Abs(sum) > tol {
			out.x = append(out.x, cloneRow(p.x[rows[i].t]))
			out.z = append(out.z, cloneRow(p.z[rows[i].t]))
			out.coeff = append(out.coeff, sum)
		}
		i = j
	}
	return out
}

// SortByMagnitude reorders terms in place by descending |coefficient|.
// The sort is stable: equal magnitudes keep their original relative order,
// which is the documented tie-break for greedy extraction strategies.
func (p *PauliSum) SortByMagnitude() {
	idx := make([]int, p.NTerms())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return cmplx.Abs(p.coeff[idx[a]]) > cmplx.Abs(p.coeff[idx[b]])
	})
	p.permute(idx)
}

// SortLexicographic reorders terms in place by ascending symplectic bit
// order (X-block bits first, big-endian over qubit positions).
func (p *PauliSum) SortLexicographic() {
	idx := make([]int, p.NTerms())
	for i := range idx {
		idx[i] = i
	}
	keys := make([]string, p.NTerms())
	for i := range keys {
		keys[i] = p.rowKey(i)
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
	p.permute(idx)
}

// Reordered returns a copy with terms permuted to the given order.
// Errors: ErrCoeffLength on length mismatch, ErrIndexRange on bad entries.
func (p *PauliSum) Reordered(order []int) (*PauliSum, error) {
	if len(order) != p.NTerms() {
		return nil, ErrCoeffLength
	}
	return p.Select(order)
}

// SupportWeight counts the non-identity qubit positions of term t.
func (p *PauliSum) SupportWeight(t int) int {
	w := 0
	for q := 0; q < p.n; q++ {
		if p.x[t][q] || p.z[t][q] {
			w++
		}
	}
	return w
}

// EqualTerms reports whether terms s of p and t of other share a bit-pattern.
func (p *PauliSum) EqualTerms(s int, other *PauliSum, t int) bool {
	if p.n != other.n {
		return false
	}
	for q := 0; q < p.n; q++ {
		if p.x[s][q] != other.x[t][q] || p.z[s][q] != other.z[t][q] {
			return false
		}
	}
	return true
}

// MaxAbsCoeff returns the largest coefficient magnitude (0 for empty sums).
func (p *PauliSum) MaxAbsCoeff() float64 {
	m := 0.0
	for _, c := range p.coeff {
		m = math.Max(m, cmplx.Abs(c))
	}
	return m
}

// AbsCoeffSum returns Σ|coeff| — the total weight used by extraction
// strategies when ranking candidate sub-operators.
func (p *PauliSum) AbsCoeffSum() float64 {
	s := 0.0
	for _, c := range p.coeff {
		s += cmplx.Abs(c)
	}
	return s
}

// rowKey packs the symplectic bits of term t into a comparable string.
func (p *PauliSum) rowKey(t int) string {
	b := make([]byte, 2*p.n)
	for q := 0; q < p.n; q++ {
		if p.x[t][q] {
			b[q] = 1
		}
		if p.z[t][q] {
			b[p.n+q] = 1
		}
	}
	return string(b)
}

// permute applies a precomputed index order in place.
func (p *PauliSum) permute(idx []int) {
	nx := make([][]bool, len(idx))
	nz := make([][]bool, len(idx))
	nc := make([]complex128, len(idx))
	for pos, t := range idx {
		nx[pos] = p.x[t]
		nz[pos] = p.z[t]
		nc[pos] = p.coeff[t]
	}
	p.x, p.z, p.coeff = nx, nz, nc
}

func cloneRow(r []bool) []bool {
	out := make([]bool, len(r))
	copy(out, r)
	return out
}

func cloneBits(b [][]bool) [][]bool {
	out := make([][]bool, len(b))
	for i, r := range b {
		out[i] = cloneRow(r)
	}
	return out
}
