package noncon

import (
	"math/cmplx"
	"strconv"

	"github.com/pauliverse/noncontext/cliquecover"
	"github.com/pauliverse/noncontext/partition"
	"github.com/pauliverse/noncontext/pauli"
)

// Operator is a noncontextual Pauli sum together with its eagerly derived
// structure: symmetry generators, commuting clique blocks, anticommuting
// clique representatives, and the Jordan-product reconstruction of every
// term against the combined generating set.
//
// The underlying sum is canonicalized (cleaned up and lexicographically
// ordered) at construction and never mutated afterwards; solver state lives
// in the eigenvalue vector, the clique amplitude operator and the cached
// partitioning recipe.
type Operator struct {
	sum *pauli.PauliSum

	symmetry    *pauli.PauliSum // independent universally commuting generators, unit coeffs
	eigenvalues []int           // per generator: -1, 0 (unassigned), +1

	symMask   []bool            // terms reconstructible from symmetry generators alone
	cliques   []*pauli.PauliSum // commuting blocks, ordered by smallest term index
	cliqueIdx [][]int           // term indices of each block
	reps      *pauli.PauliSum   // one representative per clique, unit coeffs (stable)
	cliqueOp  *pauli.PauliSum   // clique operator with current amplitudes

	gIdx   [][]bool // per term: selected symmetry generators
	cIdx   [][]bool // per term: selected clique representatives
	maskS0 []bool   // terms with an all-false cIdx row
	maskCi [][]bool // per clique: terms selecting exactly that clique
	signs  []float64

	symCache map[int]*pauli.PauliSum
	recipe   *partition.Recipe
}

// New wraps an existing Pauli sum as a noncontextual Operator. The input is
// cleaned up on a copy, checked for noncontextual structure and eagerly
// decomposed and reconstructed; any failure is fatal.
//
// Errors: pauli.ErrEmptyOperator, ErrContextual.
// Complexity: O(terms²·(n + |G|)).
func New(sum *pauli.PauliSum) (*Operator, error) {
	if sum == nil || sum.NTerms() == 0 {
		return nil, pauli.ErrEmptyOperator
	}
	canon := sum.Cleanup(pauli.DefaultTol)
	if canon.NTerms() == 0 {
		return nil, pauli.ErrEmptyOperator
	}
	if !CheckAdjacency(canon.Adjacency()) {
		return nil, ErrContextual
	}
	op := &Operator{sum: canon, symCache: make(map[int]*pauli.PauliSum)}
	if err := op.decompose(); err != nil {
		return nil, err
	}
	if err := op.reconstruct(); err != nil {
		return nil, err
	}
	op.eigenvalues = make([]int, op.symmetry.NTerms())
	return op, nil
}

// decompose extracts the symmetry generating set, masks the terms it spans,
// and covers the remainder by commuting cliques, choosing the largest
// magnitude term of each as its representative.
func (e *Operator) decompose() error {
	e.symmetry = pauli.SymmetryGenerators(e.sum)

	e.symMask = make([]bool, e.sum.NTerms())
	if e.symmetry.NTerms() > 0 {
		rec, err := pauli.GeneratorReconstruction(e.sum, e.symmetry)
		if err != nil {
			return err
		}
		copy(e.symMask, rec.Success)
	}

	rest := make([]int, 0, e.sum.NTerms())
	for t, inSym := range e.symMask {
		if !inSym {
			rest = append(rest, t)
		}
	}
	sub, err := e.sum.Select(rest)
	if err != nil {
		return err
	}
	blocks, err := cliquecover.Cover(sub.Adjacency())
	if err != nil {
		return err
	}

	e.reps = pauli.Empty(e.sum.NQubits())
	for _, block := range blocks {
		idx := make([]int, len(block))
		for i, v := range block {
			idx[i] = rest[v]
		}
		clique, err := e.sum.Select(idx)
		if err != nil {
			return err
		}
		e.cliques = append(e.cliques, clique)
		e.cliqueIdx = append(e.cliqueIdx, idx)

		rep := largestMagnitude(clique)
		x, z := clique.TermBits(rep)
		if err := e.reps.AppendTerm(x, z, 1); err != nil {
			return err
		}
	}
	e.cliqueOp = e.reps.Clone()
	return nil
}

// reconstruct runs the Jordan-product reconstruction of every term against
// the combined generating set G ∪ {C₁, …, C_M} and records the index
// matrices, block masks and per-term sign corrections.
func (e *Operator) reconstruct() error {
	gens, err := e.symmetry.Append(e.reps)
	if err != nil {
		return err
	}
	if gens.NTerms() == 0 {
		return ErrContextual
	}
	rec, err := pauli.JordanReconstruction(e.sum, gens)
	if err != nil {
		return err
	}

	nG := e.symmetry.NTerms()
	nC := e.reps.NTerms()
	T := e.sum.NTerms()
	e.gIdx = make([][]bool, T)
	e.cIdx = make([][]bool, T)
	e.maskS0 = make([]bool, T)
	e.signs = make([]float64, T)
	e.maskCi = make([][]bool, nC)
	for i := range e.maskCi {
		e.maskCi[i] = make([]bool, T)
	}

	for t := 0; t < T; t++ {
		if !rec.Success[t] {
			return ErrContextual
		}
		row := rec.Rows[t]
		e.gIdx[t] = append([]bool(nil), row[:nG]...)
		e.cIdx[t] = append([]bool(nil), row[nG:]...)
		e.maskS0[t] = true
		for i, set := range e.cIdx[t] {
			if set {
				e.maskS0[t] = false
				e.maskCi[i][t] = true
			}
		}
		// Products of commuting generators carry no complex phase, but can
		// still flip sign; evaluate the literal subset product to record it.
		e.signs[t] = subsetProductSign(gens, row)
	}
	return nil
}

// largestMagnitude returns the index of the term with the largest |coeff|,
// first occurrence on ties.
func largestMagnitude(p *pauli.PauliSum) int {
	best := 0
	bestMag := cmplx.Abs(p.Coeff(0))
	for t := 1; t < p.NTerms(); t++ {
		if m := cmplx.Abs(p.Coeff(t)); m > bestMag {
			best, bestMag = t, m
		}
	}
	return best
}

// subsetProductSign multiplies the selected generator terms together and
// returns the real part of the resulting coefficient (±1 for unit-coeff
// generators).
func subsetProductSign(gens *pauli.PauliSum, sel []bool) float64 {
	n := gens.NQubits()
	x := make([]bool, n)
	z := make([]bool, n)
	coeff := complex(1, 0)
	for g, set := range sel {
		if !set {
			continue
		}
		xg, zg := gens.TermBits(g)
		var ph complex128
		x, z, ph = pauli.MulTerms(x, z, xg, zg)
		coeff *= ph * gens.Coeff(g)
	}
	return real(coeff)
}

// Sum returns a deep copy of the canonicalized noncontextual operator.
func (e *Operator) Sum() *pauli.PauliSum { return e.sum.Clone() }

// NQubits reports the qubit count.
func (e *Operator) NQubits() int { return e.sum.NQubits() }

// NTerms reports the term count.
func (e *Operator) NTerms() int { return e.sum.NTerms() }

// NCliques reports the number of anticommuting clique representatives.
func (e *Operator) NCliques() int { return e.reps.NTerms() }

// SymmetryGenerators returns a deep copy of the symmetry generating set.
func (e *Operator) SymmetryGenerators() *pauli.PauliSum { return e.symmetry.Clone() }

// CliqueOperator returns a deep copy of the clique operator: placeholder
// unit amplitudes before a solve, the normalized s-vector after.
func (e *Operator) CliqueOperator() *pauli.PauliSum { return e.cliqueOp.Clone() }

// Eigenvalues returns a copy of the current sector assignment (0 means
// unassigned).
func (e *Operator) Eigenvalues() []int {
	return append([]int(nil), e.eigenvalues...)
}

// SetSector assigns every symmetry generator eigenvalue at once.
// Errors: ErrVectorLength, ErrBadEigenvalue.
func (e *Operator) SetSector(nu []int) error {
	if err := e.validateNu(nu); err != nil {
		return err
	}
	copy(e.eigenvalues, nu)
	return nil
}

// Recipe returns the unitary partitioning recipe derived by the most recent
// UpdateCliqueOperator call, or nil if none has run.
func (e *Operator) Recipe() *partition.Recipe { return e.recipe }

// Decomposition returns the named term blocks: "symmetry" holds the terms
// spanned by the symmetry generators, and "0", "1", … hold the commuting
// cliques. Summing all blocks reproduces the operator exactly.
func (e *Operator) Decomposition() map[string]*pauli.PauliSum {
	out := make(map[string]*pauli.PauliSum, 1+len(e.cliques))
	symBlock, _ := e.sum.SelectMask(e.symMask, true) // mask length matches by construction
	out["symmetry"] = symBlock
	for i, clique := range e.cliques {
		out[strconv.Itoa(i)] = clique.Clone()
	}
	return out
}

// UpdateCliqueOperator re-derives the clique amplitudes from the assigned
// sector and runs a fresh unitary partitioning with the given target clique
// (negative ⇒ least dense). The clique operator is replaced by the
// normalized, reordered form and the recipe is cached on the Operator.
//
// Errors: ErrNoCliques, ErrUnassignedSector, plus partition failures.
func (e *Operator) UpdateCliqueOperator(cliqueIndex int, method partition.Method) (*partition.Recipe, error) {
	if e.NCliques() == 0 {
		return nil, ErrNoCliques
	}
	for _, v := range e.eigenvalues {
		if v == 0 {
			return nil, ErrUnassignedSector
		}
	}
	_, si, err := e.SymmetryContributions(e.eigenvalues)
	if err != nil {
		return nil, err
	}
	amps := e.reps.Clone()
	for i, s := range si {
		amps.SetCoeff(i, complex(s, 0))
	}
	acOp, err := partition.FromPauliSum(amps)
	if err != nil {
		return nil, err
	}
	rec, err := partition.UnitaryPartitioning(acOp, cliqueIndex, method)
	if err != nil {
		return nil, err
	}
	e.cliqueOp = rec.Normalized.Clone()
	e.recipe = rec
	return rec, nil
}

func (e *Operator) validateNu(nu []int) error {
	if len(nu) != e.symmetry.NTerms() {
		return ErrVectorLength
	}
	for _, v := range nu {
		if v != 1 && v != -1 {
			return ErrBadEigenvalue
		}
	}
	return nil
}
