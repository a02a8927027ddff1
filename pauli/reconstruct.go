// Package pauli: generator reconstruction over GF(2).
//
// A Pauli term, phase aside, is its symplectic vector in GF(2)^{2n}; a
// product of terms is the XOR of their vectors. Reconstructing a target
// against a generating set is therefore linear algebra over GF(2): find a
// subset of generator vectors whose XOR equals the target vector.
//
// The Jordan-product variant restricts which subsets are admissible: the
// universally-commuting block plus at most one internally commuting clique
// of the remaining generators. A subset reaching across cliques mixes
// anticommuting factors, and A∘B = (AB+BA)/2 vanishes for those.

package pauli

import (
	"github.com/pauliverse/noncontext/cliquecover"
)

// Reconstruction is the result of reconstructing every term of a target
// operator against a generating set.
type Reconstruction struct {
	// Rows[t][g] is true iff generator g participates in the product that
	// reconstructs target term t. Width always equals the full generator
	// count, regardless of which subset a Jordan attempt used.
	Rows [][]bool

	// Success[t] reports whether target term t was reconstructible.
	Success []bool
}

// gf2Basis is an incrementally built, forward-reduced GF(2) basis with
// combination tracking over the original generator indices.
type gf2Basis struct {
	width int      // symplectic width 2n
	g     int      // original generator count (combo width)
	rows  [][]bool // reduced vectors; rows[k] has zeros at pivots of rows[<k]
	combo [][]bool // combo[k] over original generator indices
	pivot []int    // pivot column of rows[k]
}

func newGF2Basis(width, g int) *gf2Basis {
	return &gf2Basis{width: width, g: g}
}

// add reduces vector v (with original-generator combo c) against the basis
// and, if independent, inserts it. Reports whether the vector was inserted.
// v and c are consumed.
// Complexity: O(rank·width).
func (b *gf2Basis) add(v []bool, c []bool) bool {
	for k := range b.rows {
		if v[b.pivot[k]] {
			xorInto(v, b.rows[k])
			xorInto(c, b.combo[k])
		}
	}
	p := firstSet(v)
	if p < 0 {
		return false
	}
	b.rows = append(b.rows, v)
	b.combo = append(b.combo, c)
	b.pivot = append(b.pivot, p)
	return true
}

// solve expresses v in the basis. On success the returned combo selects the
// original generators whose product reproduces v; ok is false when v lies
// outside the span. v is not modified.
// Complexity: O(rank·width).
func (b *gf2Basis) solve(v []bool) (sel []bool, ok bool) {
	res := cloneRow(v)
	sel = make([]bool, b.g)
	for k := range b.rows {
		if res[b.pivot[k]] {
			xorInto(res, b.rows[k])
			xorInto(sel, b.combo[k])
		}
	}
	return sel, firstSet(res) < 0
}

// symplecticVector packs term t of p into a single GF(2)^{2n} row
// (X-block first).
func (p *PauliSum) symplecticVector(t int) []bool {
	v := make([]bool, 2*p.n)
	copy(v[:p.n], p.x[t])
	copy(v[p.n:], p.z[t])
	return v
}

// basisOf builds a gf2Basis from the listed generator indices of gens.
// Combos are indexed over the full generator list.
func basisOf(gens *PauliSum, indices []int) *gf2Basis {
	b := newGF2Basis(2*gens.n, gens.NTerms())
	for _, gi := range indices {
		c := make([]bool, gens.NTerms())
		c[gi] = true
		b.add(gens.symplecticVector(gi), c)
	}
	return b
}

// GeneratorReconstruction reconstructs every term of target against the
// full generating set, ignoring commutation structure. Each row reports the
// generator subset whose literal product reproduces that term's bit-pattern
// (up to sign), and Success marks rows inside the generators' GF(2) span.
//
// Errors: ErrQubitMismatch, ErrEmptyOperator (empty generating set).
// Complexity: O((|G| + terms)·|G|·n).
func GeneratorReconstruction(target, generators *PauliSum) (*Reconstruction, error) {
	if target.n != generators.n {
		return nil, ErrQubitMismatch
	}
	if generators.NTerms() == 0 {
		return nil, ErrEmptyOperator
	}
	all := make([]int, generators.NTerms())
	for i := range all {
		all[i] = i
	}
	b := basisOf(generators, all)

	rec := &Reconstruction{
		Rows:    make([][]bool, target.NTerms()),
		Success: make([]bool, target.NTerms()),
	}
	for t := 0; t < target.NTerms(); t++ {
		rec.Rows[t], rec.Success[t] = b.solve(target.symplecticVector(t))
	}
	return rec, nil
}

// JordanReconstruction reconstructs every term of target against the
// generating set under the Jordan product. Universally-commuting generators
// are always admissible; the remaining generators are partitioned into
// internally commuting cliques, and a target row succeeds only if the
// universal block plus a single such clique spans it. Rows that would need
// generators from two distinct cliques are marked unsuccessful, since their
// products mix anticommuting factors and vanish under A∘B = (AB+BA)/2;
// confining each attempt to one clique also keeps dependencies between the
// universal block and the cliques from leaking into the row vectors.
//
// Attempt order is deterministic: universal block alone, then
// universal ∪ clique_i in ascending clique order; the first success wins.
//
// Errors: ErrQubitMismatch, ErrEmptyOperator.
// Complexity: O(cliques·(|G| + terms)·|G|·n) worst case.
func JordanReconstruction(target, generators *PauliSum) (*Reconstruction, error) {
	if target.n != generators.n {
		return nil, ErrQubitMismatch
	}
	if generators.NTerms() == 0 {
		return nil, ErrEmptyOperator
	}
	universal, cliques, err := generatorCliques(generators)
	if err != nil {
		return nil, err
	}

	bases := make([]*gf2Basis, 0, 1+len(cliques))
	bases = append(bases, basisOf(generators, universal))
	for _, cl := range cliques {
		joint := append(append([]int{}, universal...), cl...)
		bases = append(bases, basisOf(generators, joint))
	}

	rec := &Reconstruction{
		Rows:    make([][]bool, target.NTerms()),
		Success: make([]bool, target.NTerms()),
	}
	for t := 0; t < target.NTerms(); t++ {
		v := target.symplecticVector(t)
		for _, b := range bases {
			if sel, ok := b.solve(v); ok {
				rec.Rows[t], rec.Success[t] = sel, true
				break
			}
		}
		if !rec.Success[t] {
			rec.Rows[t] = make([]bool, generators.NTerms())
		}
	}
	return rec, nil
}

// generatorCliques splits generator indices into the universally-commuting
// block and the internally commuting cliques of the remainder (a clique
// cover of the commutation sub-graph, blocks ordered by smallest index).
func generatorCliques(gens *PauliSum) (universal []int, cliques [][]int, err error) {
	adj := gens.Adjacency()
	n := len(adj)
	rest := make([]int, 0, n)
	for i := 0; i < n; i++ {
		all := true
		for j := 0; j < n; j++ {
			if !adj[i][j] {
				all = false
				break
			}
		}
		if all {
			universal = append(universal, i)
		} else {
			rest = append(rest, i)
		}
	}
	if len(rest) == 0 {
		return universal, nil, nil
	}

	sub := make([][]bool, len(rest))
	for a, i := range rest {
		sub[a] = make([]bool, len(rest))
		for b, j := range rest {
			sub[a][b] = adj[i][j]
		}
	}
	blocks, err := cliquecover.Cover(sub)
	if err != nil {
		return nil, nil, err
	}
	for _, block := range blocks {
		cl := make([]int, len(block))
		for k, v := range block {
			cl[k] = rest[v]
		}
		cliques = append(cliques, cl)
	}
	return universal, cliques, nil
}

// SymmetryGenerators extracts an independent generating subset of the terms
// of op that commute with every term of op. Generators keep their original
// relative order and are returned with unit coefficients.
//
// Complexity: O(terms²·n).
func SymmetryGenerators(op *PauliSum) *PauliSum {
	universal := op.CommutesUniversally()
	b := newGF2Basis(2*op.n, op.NTerms())
	var picked []int
	for t := 0; t < op.NTerms(); t++ {
		if !universal[t] {
			continue
		}
		v := op.symplecticVector(t)
		if firstSet(v) < 0 {
			continue // identity generates nothing
		}
		c := make([]bool, op.NTerms())
		c[t] = true
		if b.add(v, c) {
			picked = append(picked, t)
		}
	}
	out, _ := op.Select(picked) // indices come from the same operator
	for i := range out.coeff {
		out.coeff[i] = 1
	}
	return out
}

func xorInto(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] != src[i]
	}
}

func firstSet(v []bool) int {
	for i, b := range v {
		if b {
			return i
		}
	}
	return -1
}
