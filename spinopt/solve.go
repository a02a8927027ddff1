package spinopt

import (
	"errors"
	"math"
	"math/rand"
)

// Method selects the search algorithm.
type Method int

const (
	// BruteForce enumerates every ±1 assignment; exact, exponential.
	BruteForce Method = iota

	// Annealing runs seeded simulated annealing restarts; approximate,
	// polynomial per restart.
	Annealing
)

// Form selects the model shape handed to the search.
type Form int

const (
	// PolynomialForm solves the model as given (PUSO).
	PolynomialForm Form = iota

	// QuadraticForm quadratizes the model first (QUSO); ancillas are
	// stripped from the returned solution.
	QuadraticForm
)

// Defaults for zero-valued Options fields.
const (
	// DefaultNumAnneals is the annealing restart count.
	DefaultNumAnneals = 1000

	// DefaultAnnealSweeps is the number of full-variable sweeps per restart.
	DefaultAnnealSweeps = 100

	// defaultSeed keeps seed==0 runs reproducible.
	defaultSeed int64 = 1

	// maxBruteVars caps exact enumeration; beyond it the search space
	// (2^31 assignments) is no longer a realistic brute-force target.
	maxBruteVars = 30
)

// ErrTooManyVariables is returned when brute force is requested on a model
// with more than maxBruteVars free variables.
var ErrTooManyVariables = errors.New("spinopt: too many variables for brute force")

// Options configures Solve. The zero value selects exact polynomial brute
// force with default annealing parameters.
type Options struct {
	Method Method
	Form   Form

	// NumAnneals is the restart count for Annealing (0 ⇒ DefaultNumAnneals).
	NumAnneals int

	// Sweeps is the per-restart sweep count for Annealing (0 ⇒ DefaultAnnealSweeps).
	Sweeps int

	// Seed drives all randomness (0 ⇒ fixed default seed).
	Seed int64
}

// Solution is a minimizing assignment of the caller's variables.
type Solution struct {
	// Assignment maps every model variable name to ±1.
	Assignment map[string]int

	// Value is the original model evaluated at Assignment.
	Value float64
}

// Solve minimizes p in the requested mode.
//
// Contracts:
//   - Variable enumeration order is p's insertion order, so callers may rely
//     on a stable bijection between variables and their own index space.
//   - The reported Value is the original model at the returned assignment,
//     also under QuadraticForm.
//
// Errors: ErrUnknownMethod, ErrUnknownForm, ErrTooManyVariables.
func Solve(p *Polynomial, opts Options) (Solution, error) {
	switch opts.Form {
	case PolynomialForm, QuadraticForm:
	default:
		return Solution{}, ErrUnknownForm
	}
	switch opts.Method {
	case BruteForce, Annealing:
	default:
		return Solution{}, ErrUnknownMethod
	}

	model := p
	if opts.Form == QuadraticForm {
		model = p.Quadratize()
	}

	var (
		vals []int
		err  error
	)
	switch opts.Method {
	case BruteForce:
		vals, err = bruteForce(model)
	case Annealing:
		vals, err = anneal(model, opts)
	}
	if err != nil {
		return Solution{}, err
	}

	assign := make(map[string]int, p.NumVariables())
	for i, name := range p.names {
		assign[name] = vals[i] // ancillas sit past the original variables
	}
	value := p.evalVals(vals[:len(p.names)])
	return Solution{Assignment: assign, Value: value}, nil
}

// bruteForce enumerates all assignments and keeps the first minimum.
// Complexity: O(2^n·terms).
func bruteForce(p *Polynomial) ([]int, error) {
	n := p.NumVariables()
	if n > maxBruteVars {
		return nil, ErrTooManyVariables
	}
	terms := p.compile()
	vals := make([]int, n)
	best := make([]int, n)
	bestE := math.Inf(1)
	for mask := 0; mask < 1<<n; mask++ {
		for i := 0; i < n; i++ {
			if mask&(1<<i) == 0 {
				vals[i] = 1
			} else {
				vals[i] = -1
			}
		}
		e := evalCompiled(terms, vals)
		if e < bestE {
			bestE = e
			copy(best, vals)
		}
	}
	return best, nil
}

// anneal runs seeded simulated-annealing restarts with geometric cooling
// and single-spin Metropolis moves.
// Complexity: O(NumAnneals·Sweeps·n·terms_touched).
func anneal(p *Polynomial, opts Options) ([]int, error) {
	n := p.NumVariables()
	if n == 0 {
		return nil, nil
	}
	restarts := opts.NumAnneals
	if restarts <= 0 {
		restarts = DefaultNumAnneals
	}
	sweeps := opts.Sweeps
	if sweeps <= 0 {
		sweeps = DefaultAnnealSweeps
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	terms := p.compile()
	// varTerms[v] lists the term indices whose product flips with spin v.
	varTerms := make([][]int, n)
	for ti, t := range terms {
		for _, v := range t.vars {
			varTerms[v] = append(varTerms[v], ti)
		}
	}

	tempHigh := 1.0 + p.absCoeffSum()
	const tempLow = 1e-3
	steps := sweeps * n
	cool := math.Pow(tempLow/tempHigh, 1/float64(steps))

	vals := make([]int, n)
	best := make([]int, n)
	bestE := math.Inf(1)
	for r := 0; r < restarts; r++ {
		for i := range vals {
			if rng.Intn(2) == 0 {
				vals[i] = 1
			} else {
				vals[i] = -1
			}
		}
		energy := evalCompiled(terms, vals)
		temp := tempHigh
		for s := 0; s < steps; s++ {
			v := rng.Intn(n)
			// Flipping v negates exactly the products of the terms it occurs
			// in (odd multiplicity is guaranteed by the squarefree form).
			delta := 0.0
			for _, ti := range varTerms[v] {
				delta -= 2 * terms[ti].coeff * float64(termSign(terms[ti], vals))
			}
			if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
				vals[v] = -vals[v]
				energy += delta
			}
			temp *= cool
		}
		if energy < bestE {
			bestE = energy
			copy(best, vals)
		}
	}
	return best, nil
}

func termSign(t compiledTerm, vals []int) int {
	sign := 1
	for _, v := range t.vars {
		sign *= vals[v]
	}
	return sign
}

func evalCompiled(terms []compiledTerm, vals []int) float64 {
	total := 0.0
	for _, t := range terms {
		total += t.coeff * float64(termSign(t, vals))
	}
	return total
}
