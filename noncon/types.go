package noncon

import (
	"errors"
	"time"

	"github.com/pauliverse/noncontext/partition"
	"github.com/pauliverse/noncontext/pauli"
)

var (
	// ErrContextual is returned when an operator fails the noncontextuality
	// test, or when the generator reconstruction fails for any of its terms.
	ErrContextual = errors.New("noncon: operator is contextual")

	// ErrUnderspecifiedBasis is returned when the BasisProjection strategy
	// runs without a candidate generating set.
	ErrUnderspecifiedBasis = errors.New("noncon: basis projection requires a generating set")

	// ErrUnknownStrategy is returned for a Strategy outside the closed set.
	ErrUnknownStrategy = errors.New("noncon: unknown construction strategy")

	// ErrUnknownOrder is returned for an Order outside the closed set.
	ErrUnknownOrder = errors.New("noncon: unknown term ordering")

	// ErrUnknownCriterion is returned for a Criterion outside the closed set.
	ErrUnknownCriterion = errors.New("noncon: unknown selection criterion")

	// ErrUnknownMethod is returned for a solve Method outside the closed set.
	ErrUnknownMethod = errors.New("noncon: unknown solve method")

	// ErrVectorLength is returned when an eigenvalue vector's length does not
	// match the symmetry generator count.
	ErrVectorLength = errors.New("noncon: eigenvalue vector length mismatch")

	// ErrBadEigenvalue is returned when a sector eigenvalue is not ±1.
	ErrBadEigenvalue = errors.New("noncon: eigenvalue must be -1 or +1")

	// ErrFixedSector is returned when the fixed-sector mask and value slices
	// are inconsistent.
	ErrFixedSector = errors.New("noncon: fixed sector mask does not match values")

	// ErrTooManyGenerators is returned when brute force is requested over
	// more free generators than maxBruteGenerators.
	ErrTooManyGenerators = errors.New("noncon: too many free generators for brute force")

	// ErrNoCliques is returned by clique-amplitude operations on an operator
	// whose decomposition has no anticommuting cliques.
	ErrNoCliques = errors.New("noncon: operator has no cliques")

	// ErrUnassignedSector is returned when clique amplitudes are requested
	// before every symmetry generator eigenvalue has been assigned.
	ErrUnassignedSector = errors.New("noncon: symmetry sector not fully assigned")

	// ErrExpansionOrder is returned for a negative power-series order.
	ErrExpansionOrder = errors.New("noncon: expansion order must be non-negative")
)

// Strategy selects how FromHamiltonian extracts a noncontextual sub-operator.
type Strategy int

const (
	// Diagonal keeps only the terms with empty X-support.
	Diagonal Strategy = iota

	// DiagonalFirst seeds with the diagonal terms, then greedily appends
	// off-diagonal terms by descending coefficient magnitude.
	DiagonalFirst

	// Greedy performs a single ordered sweep, accepting each term that keeps
	// the running set noncontextual.
	Greedy

	// RepeatedSweep repeats the greedy sweep from every cyclic rotation of
	// the magnitude ordering, under a wall-clock budget, and keeps the best
	// completed candidate.
	RepeatedSweep

	// BasisProjection keeps exactly the terms the Jordan-product
	// reconstruction can express from a caller-supplied generating set.
	BasisProjection
)

// Order selects the term ordering for the Greedy sweep.
type Order int

const (
	// OrderMagnitude sorts by descending coefficient magnitude (stable).
	OrderMagnitude Order = iota

	// OrderRandom applies a seeded random permutation.
	OrderRandom

	// OrderCurrent keeps the caller's term order.
	OrderCurrent
)

// Criterion ranks the candidates of a RepeatedSweep run.
type Criterion int

const (
	// SelectWeight prefers the candidate with the largest Σ|coeff|.
	SelectWeight Criterion = iota

	// SelectTerms prefers the candidate with the most terms.
	SelectTerms
)

// Method selects the solver minimizing the noncontextual energy.
type Method int

const (
	// BruteForce enumerates every free sector assignment in parallel.
	BruteForce Method = iota

	// BinaryRelaxation substitutes ν = cos θ and runs a deterministic
	// multistart coordinate descent over θ ∈ [0,π]^k, rounding the optimum.
	BinaryRelaxation

	// BruteForcePUSO solves the symmetrized spin model exactly in
	// polynomial form.
	BruteForcePUSO

	// BruteForceQUSO solves the symmetrized spin model exactly after
	// quadratization.
	BruteForceQUSO

	// AnnealingPUSO anneals the symmetrized spin model in polynomial form.
	AnnealingPUSO

	// AnnealingQUSO anneals the symmetrized spin model after quadratization.
	AnnealingQUSO
)

// Defaults resolved by the option constructors.
const (
	// DefaultStrategy extracts the diagonal sub-operator.
	DefaultStrategy = Diagonal

	// DefaultOrder is the Greedy sweep ordering.
	DefaultOrder = OrderMagnitude

	// DefaultCriterion ranks RepeatedSweep candidates by weight.
	DefaultCriterion = SelectWeight

	// DefaultSweepBudget bounds the RepeatedSweep wall-clock time.
	DefaultSweepBudget = 10 * time.Second

	// DefaultExpansionOrder truncates the square-root power series of the
	// symmetrized operator. Higher orders trade cost-model degree for
	// accuracy; this is deliberately a tunable, not a fixed constant.
	DefaultExpansionOrder = 1

	// defaultSeed keeps seed==0 runs reproducible.
	defaultSeed int64 = 1

	// maxBruteGenerators caps exact sector enumeration at 2^30 assignments.
	maxBruteGenerators = 30
)

// Option configures FromHamiltonian.
type Option func(*config)

type config struct {
	strategy  Strategy
	order     Order
	criterion Criterion
	budget    time.Duration
	seed      int64
	basis     *pauli.PauliSum
}

func defaultConfig() config {
	return config{
		strategy:  DefaultStrategy,
		order:     DefaultOrder,
		criterion: DefaultCriterion,
		budget:    DefaultSweepBudget,
		seed:      defaultSeed,
	}
}

// WithStrategy selects the extraction strategy.
func WithStrategy(s Strategy) Option { return func(c *config) { c.strategy = s } }

// WithOrder selects the Greedy sweep term ordering.
func WithOrder(o Order) Option { return func(c *config) { c.order = o } }

// WithSelection selects the RepeatedSweep ranking criterion.
func WithSelection(cr Criterion) Option { return func(c *config) { c.criterion = cr } }

// WithBudget bounds the RepeatedSweep wall-clock time (≤ 0 restores the
// default).
func WithBudget(d time.Duration) Option { return func(c *config) { c.budget = d } }

// WithSeed drives the OrderRandom permutation (0 restores the fixed default).
func WithSeed(seed int64) Option { return func(c *config) { c.seed = seed } }

// WithBasis supplies the generating set for BasisProjection.
func WithBasis(gens *pauli.PauliSum) Option { return func(c *config) { c.basis = gens } }

// SolveOption configures Operator.Solve.
type SolveOption func(*solveConfig)

type solveConfig struct {
	method          Method
	fixedMask       []bool
	fixedVals       []int
	numAnneals      int
	annealSeed      int64
	expansionOrder  int
	partitionMethod partition.Method
	relaxSeed       int64
}

func defaultSolveConfig() solveConfig {
	return solveConfig{
		method:          BruteForce,
		expansionOrder:  DefaultExpansionOrder,
		annealSeed:      defaultSeed,
		relaxSeed:       defaultSeed,
		partitionMethod: partition.SeqRot,
	}
}

// WithMethod selects the solver.
func WithMethod(m Method) SolveOption { return func(c *solveConfig) { c.method = m } }

// WithFixedSector holds a subset of generator eigenvalues fixed: mask marks
// the fixed generators (length |G|) and values lists their ±1 eigenvalues in
// mask order.
func WithFixedSector(mask []bool, values []int) SolveOption {
	return func(c *solveConfig) {
		c.fixedMask = append([]bool(nil), mask...)
		c.fixedVals = append([]int(nil), values...)
	}
}

// WithNumAnneals sets the annealing restart count for the spin-model
// methods (0 keeps the backend default).
func WithNumAnneals(n int) SolveOption { return func(c *solveConfig) { c.numAnneals = n } }

// WithAnnealSeed seeds the spin-model backend and the relaxation multistart
// (0 restores the fixed default).
func WithAnnealSeed(seed int64) SolveOption {
	return func(c *solveConfig) {
		c.annealSeed = seed
		c.relaxSeed = seed
	}
}

// WithExpansionOrder sets the square-root power-series truncation used by
// the spin-model methods.
func WithExpansionOrder(order int) SolveOption {
	return func(c *solveConfig) { c.expansionOrder = order }
}

// WithPartitionMethod selects the unitary partitioning construction applied
// to the clique operator after a successful solve.
func WithPartitionMethod(m partition.Method) SolveOption {
	return func(c *solveConfig) { c.partitionMethod = m }
}

// Result is a solver outcome: the minimal noncontextual energy and the
// sector assignment that attains it.
type Result struct {
	Energy float64
	Nu     []int
}
