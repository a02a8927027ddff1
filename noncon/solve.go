package noncon

import (
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Solve minimizes the noncontextual energy over the free sector assignments
// and commits the optimum: the symmetry generator eigenvalues are set to the
// minimizing nu and, when cliques are present, the clique amplitudes are
// re-derived and a fresh unitary partitioning recipe is cached (target
// clique 0, in the configured partitioning method).
//
// Fixed eigenvalues supplied via WithFixedSector are held constant by every
// method; only the remaining generators are searched.
//
// Errors: ErrUnknownMethod, ErrFixedSector, ErrTooManyGenerators, plus
// backend and partitioning failures.
func (e *Operator) Solve(opts ...SolveOption) (Result, error) {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.annealSeed == 0 {
		cfg.annealSeed = defaultSeed
	}
	if cfg.relaxSeed == 0 {
		cfg.relaxSeed = defaultSeed
	}
	fixed, err := e.resolveFixed(cfg)
	if err != nil {
		return Result{}, err
	}

	var res Result
	switch cfg.method {
	case BruteForce:
		res, err = e.solveBruteForce(fixed)
	case BinaryRelaxation:
		res, err = e.solveRelaxation(fixed, cfg.relaxSeed)
	case BruteForcePUSO, BruteForceQUSO, AnnealingPUSO, AnnealingQUSO:
		res, err = e.solveSpinModel(fixed, cfg)
	default:
		return Result{}, ErrUnknownMethod
	}
	if err != nil {
		return Result{}, err
	}

	copy(e.eigenvalues, res.Nu)
	if e.NCliques() > 0 {
		if _, err := e.UpdateCliqueOperator(0, cfg.partitionMethod); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// sector describes the fixed/free split of the generator eigenvalues.
type sector struct {
	values []int // fixed eigenvalues in place, 0 for free slots
	free   []int // indices of the free generators
}

func (e *Operator) resolveFixed(cfg solveConfig) (sector, error) {
	nG := e.symmetry.NTerms()
	s := sector{values: make([]int, nG)}
	if cfg.fixedMask == nil {
		for g := 0; g < nG; g++ {
			s.free = append(s.free, g)
		}
		return s, nil
	}
	if len(cfg.fixedMask) != nG {
		return sector{}, ErrFixedSector
	}
	vi := 0
	for g, isFixed := range cfg.fixedMask {
		if !isFixed {
			s.free = append(s.free, g)
			continue
		}
		if vi >= len(cfg.fixedVals) {
			return sector{}, ErrFixedSector
		}
		v := cfg.fixedVals[vi]
		vi++
		if v != 1 && v != -1 {
			return sector{}, ErrBadEigenvalue
		}
		s.values[g] = v
	}
	if vi != len(cfg.fixedVals) {
		return sector{}, ErrFixedSector
	}
	return s, nil
}

// assemble fills the free slots of the sector from an enumeration index:
// free generator j reads bit (k−1−j), cleared ⇒ −1, so index 0 is the
// all-(−1) assignment and enumeration order is deterministic.
func (s sector) assemble(index int) []int {
	nu := append([]int(nil), s.values...)
	k := len(s.free)
	for j, g := range s.free {
		if index&(1<<(k-1-j)) == 0 {
			nu[g] = -1
		} else {
			nu[g] = 1
		}
	}
	return nu
}

// solveBruteForce evaluates every free assignment, fanned out across
// workers; each candidate is independent and the results are reduced by a
// single minimum pass (smaller enumeration index on ties).
func (e *Operator) solveBruteForce(s sector) (Result, error) {
	k := len(s.free)
	if k > maxBruteGenerators {
		return Result{}, ErrTooManyGenerators
	}
	if k == 0 {
		energy, err := e.Energy(s.values)
		if err != nil {
			return Result{}, err
		}
		return Result{Energy: energy, Nu: append([]int(nil), s.values...)}, nil
	}

	total := 1 << k
	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	type best struct {
		energy float64
		index  int
	}
	found := make([]best, workers)

	var g errgroup.Group
	chunk := (total + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > total {
			end = total
		}
		g.Go(func() error {
			local := best{energy: math.Inf(1), index: -1}
			for index := start; index < end; index++ {
				energy, err := e.Energy(s.assemble(index))
				if err != nil {
					return err
				}
				if energy < local.energy {
					local = best{energy: energy, index: index}
				}
			}
			found[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	winner := best{energy: math.Inf(1), index: -1}
	for _, b := range found {
		if b.index < 0 {
			continue
		}
		if b.energy < winner.energy || (b.energy == winner.energy && b.index < winner.index) {
			winner = b
		}
	}
	return Result{Energy: winner.energy, Nu: s.assemble(winner.index)}, nil
}

// Relaxation parameters: a handful of fixed corner starts plus seeded random
// restarts, coordinate descent with golden-section line minimization.
const (
	relaxRandomStarts = 5
	relaxMaxSweeps    = 60
	relaxLineIters    = 48
	relaxConvergence  = 1e-12
)

// solveRelaxation substitutes ν_g = cos θ_g for the free generators and
// minimizes the multilinear relaxation of the energy over θ ∈ [0,π]^k by
// deterministic multistart coordinate descent. The continuous optimum is
// rounded to signs and the reported energy is the exact discrete energy at
// the rounded assignment, so it can never undercut the brute-force minimum.
func (e *Operator) solveRelaxation(s sector, seed int64) (Result, error) {
	k := len(s.free)
	if k == 0 {
		energy, err := e.Energy(s.values)
		if err != nil {
			return Result{}, err
		}
		return Result{Energy: energy, Nu: append([]int(nil), s.values...)}, nil
	}

	evalAngles := func(theta []float64) float64 {
		nu := make([]float64, len(s.values))
		for g, v := range s.values {
			nu[g] = float64(v)
		}
		for j, g := range s.free {
			nu[g] = math.Cos(theta[j])
		}
		s0, si := e.contributions(nu)
		return s0 - norm2(si)
	}

	rng := rand.New(rand.NewSource(seed))
	// Corner starts cover the all-(±1) sectors; the midpoint start is nudged
	// off the exact saddle.
	starts := [][]float64{
		uniformAngles(k, 0),
		uniformAngles(k, math.Pi),
		uniformAngles(k, math.Pi/2+1e-3),
	}
	for r := 0; r < relaxRandomStarts; r++ {
		theta := make([]float64, k)
		for j := range theta {
			theta[j] = rng.Float64() * math.Pi
		}
		starts = append(starts, theta)
	}

	bestTheta := starts[0]
	bestVal := evalAngles(bestTheta)
	for _, start := range starts {
		theta := append([]float64(nil), start...)
		val := evalAngles(theta)
		for sweepN := 0; sweepN < relaxMaxSweeps; sweepN++ {
			prev := val
			for j := 0; j < k; j++ {
				theta[j] = goldenSection(func(x float64) float64 {
					old := theta[j]
					theta[j] = x
					v := evalAngles(theta)
					theta[j] = old
					return v
				}, 0, math.Pi, relaxLineIters)
			}
			val = evalAngles(theta)
			if prev-val < relaxConvergence {
				break
			}
		}
		if val < bestVal {
			bestVal, bestTheta = val, theta
		}
	}

	nu := append([]int(nil), s.values...)
	for j, g := range s.free {
		if math.Cos(bestTheta[j]) < 0 {
			nu[g] = -1
		} else {
			nu[g] = 1
		}
	}
	energy, err := e.Energy(nu)
	if err != nil {
		return Result{}, err
	}
	return Result{Energy: energy, Nu: nu}, nil
}

func uniformAngles(k int, v float64) []float64 {
	out := make([]float64, k)
	for i := range out {
		out[i] = v
	}
	return out
}

// goldenSection minimizes f over [lo, hi] with a fixed iteration count;
// unimodality is not guaranteed here, which is exactly why the caller
// multistarts.
func goldenSection(f func(float64) float64, lo, hi float64, iters int) float64 {
	const invPhi = 0.6180339887498949
	a, b := lo, hi
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < iters; i++ {
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	if f1 < f2 {
		return x1
	}
	return x2
}
