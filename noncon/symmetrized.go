package noncon

import (
	"math"
	"strconv"

	"github.com/pauliverse/noncontext/pauli"
	"github.com/pauliverse/noncontext/spinopt"
)

// SymmetrizedOperator builds the surrogate S₀ − √(S₁² + … + S_M²) used by
// the spin-model solvers, with the square root expanded as an even power
// series truncated at the given order:
//
//	√S = √‖S‖ · Σ_{m=0}^{order} (−1)^m · binom(½, m) · (I − S/‖S‖)^m
//
// S₀ is the symmetry block; Sᵢ is the unit-coefficient representative of
// clique i multiplied against that clique's block. In the infinite-order
// limit the surrogate's ground sector coincides with the exact one; low
// orders keep the induced spin cost polynomial small.
//
// Results are memoized per order on the Operator; the memo survives because
// the underlying term set never changes after construction.
//
// Errors: ErrExpansionOrder.
// Complexity: O(order · terms² · n) from the repeated operator products.
func (e *Operator) SymmetrizedOperator(order int) (*pauli.PauliSum, error) {
	if order < 0 {
		return nil, ErrExpansionOrder
	}
	if cached, ok := e.symCache[order]; ok {
		return cached.Clone(), nil
	}

	symBlock, err := e.sum.SelectMask(e.symMask, true)
	if err != nil {
		return nil, err
	}
	if e.NCliques() == 0 {
		e.symCache[order] = symBlock
		return symBlock.Clone(), nil
	}

	n := e.sum.NQubits()
	sq := pauli.Empty(n)
	for i, clique := range e.cliques {
		rep, err := e.reps.Term(i)
		if err != nil {
			return nil, err
		}
		si, err := rep.Mul(clique)
		if err != nil {
			return nil, err
		}
		siSq, err := si.Mul(si)
		if err != nil {
			return nil, err
		}
		sq, err = sq.Add(siSq)
		if err != nil {
			return nil, err
		}
	}

	var norm float64
	for _, c := range sq.Coeffs() {
		norm += real(c)*real(c) + imag(c)*imag(c)
	}
	norm = math.Sqrt(norm)
	scaled := sq.Scale(complex(1/norm, 0))

	identity := pauli.Identity(n, 1)
	iMinusS, err := identity.Sub(scaled)
	if err != nil {
		return nil, err
	}

	series := pauli.Empty(n)
	power := identity
	sign := 1.0
	for m := 0; m <= order; m++ {
		series, err = series.Add(power.Scale(complex(sign*halfBinomial(m), 0)))
		if err != nil {
			return nil, err
		}
		if m < order {
			power, err = power.Mul(iMinusS)
			if err != nil {
				return nil, err
			}
		}
		sign = -sign
	}
	root := series.Scale(complex(math.Sqrt(norm), 0))

	out, err := symBlock.Sub(root)
	if err != nil {
		return nil, err
	}
	e.symCache[order] = out
	return out.Clone(), nil
}

// halfBinomial is the generalized binomial coefficient binom(1/2, m).
func halfBinomial(m int) float64 {
	b := 1.0
	for i := 0; i < m; i++ {
		b *= (0.5 - float64(i)) / float64(i+1)
	}
	return b
}

// costPolynomial reconstructs the symmetrized operator against the symmetry
// generators and renders it as a spin cost functional: each term contributes
// its real coefficient times the product of the spin variables of its
// selected free generators, with fixed generators substituted as constants.
// Free variables are named "x<g>" by absolute generator index and registered
// in index order, so the backend's enumeration matches ours.
func (e *Operator) costPolynomial(order int, s sector) (*spinopt.Polynomial, error) {
	symOp, err := e.SymmetrizedOperator(order)
	if err != nil {
		return nil, err
	}
	rec, err := pauli.GeneratorReconstruction(symOp, e.symmetry)
	if err != nil {
		return nil, err
	}

	poly := spinopt.NewPolynomial()
	for _, g := range s.free {
		poly.AddTerm(0, varName(g))
	}
	for t := 0; t < symOp.NTerms(); t++ {
		coeff := real(symOp.Coeff(t))
		var vars []string
		for g, set := range rec.Rows[t] {
			if !set {
				continue
			}
			if s.values[g] != 0 {
				coeff *= float64(s.values[g])
			} else {
				vars = append(vars, varName(g))
			}
		}
		poly.AddTerm(coeff, vars...)
	}
	return poly, nil
}

func varName(g int) string { return "x" + strconv.Itoa(g) }

// solveSpinModel delegates the symmetrized cost functional to the spin
// optimization backend in the requested mode and maps the returned
// assignment back onto the full sector vector. The reported energy is the
// exact noncontextual energy at that sector, not the surrogate value.
func (e *Operator) solveSpinModel(s sector, cfg solveConfig) (Result, error) {
	if len(s.free) == 0 {
		energy, err := e.Energy(s.values)
		if err != nil {
			return Result{}, err
		}
		return Result{Energy: energy, Nu: append([]int(nil), s.values...)}, nil
	}

	var (
		method spinopt.Method
		form   spinopt.Form
	)
	switch cfg.method {
	case BruteForcePUSO:
		method, form = spinopt.BruteForce, spinopt.PolynomialForm
	case BruteForceQUSO:
		method, form = spinopt.BruteForce, spinopt.QuadraticForm
	case AnnealingPUSO:
		method, form = spinopt.Annealing, spinopt.PolynomialForm
	case AnnealingQUSO:
		method, form = spinopt.Annealing, spinopt.QuadraticForm
	default:
		return Result{}, ErrUnknownMethod
	}

	poly, err := e.costPolynomial(cfg.expansionOrder, s)
	if err != nil {
		return Result{}, err
	}
	sol, err := spinopt.Solve(poly, spinopt.Options{
		Method:     method,
		Form:       form,
		NumAnneals: cfg.numAnneals,
		Seed:       cfg.annealSeed,
	})
	if err != nil {
		return Result{}, err
	}

	nu := append([]int(nil), s.values...)
	for _, g := range s.free {
		v, ok := sol.Assignment[varName(g)]
		if !ok {
			return Result{}, spinopt.ErrMissingVariable
		}
		nu[g] = v
	}
	energy, err := e.Energy(nu)
	if err != nil {
		return Result{}, err
	}
	return Result{Energy: energy, Nu: nu}, nil
}
