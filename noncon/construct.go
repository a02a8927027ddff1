package noncon

import (
	"math/cmplx"
	"math/rand"
	"sort"
	"time"

	"github.com/pauliverse/noncontext/pauli"
)

// FromHamiltonian extracts a noncontextual sub-operator from H by the
// configured strategy and wraps it as an Operator.
//
// Contracts:
//   - H is never mutated; every strategy works on ordered copies.
//   - Construction is deterministic for a fixed strategy, order, seed and
//     tie-break; magnitude sorts are stable, so equal-magnitude terms keep
//     their original relative order.
//
// Errors: ErrUnknownStrategy, ErrUnknownOrder, ErrUnderspecifiedBasis,
// pauli.ErrEmptyOperator (nothing extracted), ErrContextual (defensive;
// strategies only emit noncontextual candidates).
func FromHamiltonian(h *pauli.PauliSum, opts ...Option) (*Operator, error) {
	if h == nil || h.NTerms() == 0 {
		return nil, pauli.ErrEmptyOperator
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.budget <= 0 {
		cfg.budget = DefaultSweepBudget
	}
	if cfg.seed == 0 {
		cfg.seed = defaultSeed
	}

	var (
		sub *pauli.PauliSum
		err error
	)
	switch cfg.strategy {
	case Diagonal:
		sub, err = diagonalTerms(h)
	case DiagonalFirst:
		sub, err = diagonalFirst(h)
	case Greedy:
		sub, err = greedy(h, cfg.order, cfg.seed)
	case RepeatedSweep:
		sub, err = repeatedSweep(h, cfg.criterion, cfg.budget)
	case BasisProjection:
		sub, err = basisProjection(h, cfg.basis)
	default:
		return nil, ErrUnknownStrategy
	}
	if err != nil {
		return nil, err
	}
	return New(sub)
}

// diagonalTerms keeps the terms with empty X-support; these mutually commute
// and are trivially noncontextual.
func diagonalTerms(h *pauli.PauliSum) (*pauli.PauliSum, error) {
	var idx []int
	for t := 0; t < h.NTerms(); t++ {
		diag := true
		for q := 0; q < h.NQubits(); q++ {
			if h.XBit(t, q) {
				diag = false
				break
			}
		}
		if diag {
			idx = append(idx, t)
		}
	}
	return h.Select(idx)
}

// diagonalFirst sweeps the diagonal terms first (they are always accepted),
// then the off-diagonal terms by descending magnitude.
func diagonalFirst(h *pauli.PauliSum) (*pauli.PauliSum, error) {
	var diag, offDiag []int
	for t := 0; t < h.NTerms(); t++ {
		isDiag := true
		for q := 0; q < h.NQubits(); q++ {
			if h.XBit(t, q) {
				isDiag = false
				break
			}
		}
		if isDiag {
			diag = append(diag, t)
		} else {
			offDiag = append(offDiag, t)
		}
	}
	sort.SliceStable(offDiag, func(a, b int) bool {
		return cmplx.Abs(h.Coeff(offDiag[a])) > cmplx.Abs(h.Coeff(offDiag[b]))
	})
	ordered, err := h.Select(append(diag, offDiag...))
	if err != nil {
		return nil, err
	}
	return sweep(ordered)
}

// greedy runs a single ordered sweep.
func greedy(h *pauli.PauliSum, order Order, seed int64) (*pauli.PauliSum, error) {
	ordered, err := orderedBy(h, order, seed)
	if err != nil {
		return nil, err
	}
	return sweep(ordered)
}

// repeatedSweep repeats the greedy sweep from every cyclic rotation of the
// magnitude ordering under a wall-clock budget. The offset-0 sweep always
// completes; candidates finished before the budget expires are never
// discarded, and the best by the given criterion wins (earlier offset on
// ties).
func repeatedSweep(h *pauli.PauliSum, criterion Criterion, budget time.Duration) (*pauli.PauliSum, error) {
	switch criterion {
	case SelectWeight, SelectTerms:
	default:
		return nil, ErrUnknownCriterion
	}
	base := h.Clone()
	base.SortByMagnitude()

	deadline := time.Now().Add(budget)
	var best *pauli.PauliSum
	var bestScore float64
	for offset := 0; offset < base.NTerms(); offset++ {
		if offset > 0 && !time.Now().Before(deadline) {
			break
		}
		order := make([]int, base.NTerms())
		for i := range order {
			order[i] = (i + offset) % base.NTerms()
		}
		rotated, err := base.Reordered(order)
		if err != nil {
			return nil, err
		}
		candidate, err := sweep(rotated)
		if err != nil {
			return nil, err
		}
		var score float64
		switch criterion {
		case SelectWeight:
			score = candidate.AbsCoeffSum()
		case SelectTerms:
			score = float64(candidate.NTerms())
		}
		if best == nil || score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best, nil
}

// basisProjection keeps exactly the terms the Jordan-product reconstruction
// can express from the supplied generating set.
func basisProjection(h, basis *pauli.PauliSum) (*pauli.PauliSum, error) {
	if basis == nil || basis.NTerms() == 0 {
		return nil, ErrUnderspecifiedBasis
	}
	rec, err := pauli.JordanReconstruction(h, basis)
	if err != nil {
		return nil, err
	}
	return h.SelectMask(rec.Success, true)
}

// orderedBy returns a copy of h in the requested sweep order.
func orderedBy(h *pauli.PauliSum, order Order, seed int64) (*pauli.PauliSum, error) {
	switch order {
	case OrderMagnitude:
		c := h.Clone()
		c.SortByMagnitude()
		return c, nil
	case OrderRandom:
		perm := rand.New(rand.NewSource(seed)).Perm(h.NTerms())
		return h.Reordered(perm)
	case OrderCurrent:
		return h.Clone(), nil
	default:
		return nil, ErrUnknownOrder
	}
}

// sweep walks the terms in order, growing the accepted set whenever the
// incrementally padded adjacency matrix keeps its noncontextual structure.
func sweep(ordered *pauli.PauliSum) (*pauli.PauliSum, error) {
	if ordered.NTerms() == 0 {
		return ordered, nil
	}
	accepted := []int{0}
	adj := [][]bool{{true}}
	for t := 1; t < ordered.NTerms(); t++ {
		xt, zt := ordered.TermBits(t)
		candidate := make([]bool, len(accepted))
		for i, a := range accepted {
			xa, za := ordered.TermBits(a)
			candidate[i] = pauli.TermsCommute(xt, zt, xa, za)
		}
		if !CheckPadded(adj, candidate) {
			continue
		}
		adj = padAdjacency(adj, candidate)
		accepted = append(accepted, t)
	}
	return ordered.Select(accepted)
}

// padAdjacency appends one row/column (with a true diagonal) to adj.
func padAdjacency(adj [][]bool, candidate []bool) [][]bool {
	k := len(adj)
	padded := make([][]bool, k+1)
	for i := 0; i < k; i++ {
		padded[i] = make([]bool, k+1)
		copy(padded[i], adj[i])
		padded[i][k] = candidate[i]
	}
	padded[k] = make([]bool, k+1)
	copy(padded[k], candidate)
	padded[k][k] = true
	return padded
}
