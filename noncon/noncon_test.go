package noncon_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pauliverse/noncontext/noncon"
	"github.com/pauliverse/noncontext/partition"
	"github.com/pauliverse/noncontext/pauli"
)

func mustSum(t *testing.T, m map[string]complex128) *pauli.PauliSum {
	t.Helper()
	p, err := pauli.FromMap(m)
	require.NoError(t, err)
	return p
}

// contextualSum is a minimal contextual fixture: IZ commutes with both ZI
// and XI while ZI and XI anticommute, so commutation is not transitive on
// the non-universal terms once XX ties them together.
func contextualSum(t *testing.T) *pauli.PauliSum {
	t.Helper()
	return mustSum(t, map[string]complex128{
		"ZI": 0.2, "XI": 0.9, "IZ": 0.3, "XX": 0.8,
	})
}

// twoCliqueSum has symmetry generators {IIZ, ZZI} and two singleton cliques
// {XXI}, {YXI}; its exact ground energy is −0.8 − √0.2.
func twoCliqueSum(t *testing.T) *pauli.PauliSum {
	t.Helper()
	return mustSum(t, map[string]complex128{
		"ZZI": 0.5, "IIZ": 0.3, "XXI": 0.4, "YXI": 0.2,
	})
}

func TestCheckAdjacency(t *testing.T) {
	// All-commuting: trivially noncontextual.
	all := [][]bool{{true, true}, {true, true}}
	require.True(t, noncon.CheckAdjacency(all))

	// Two mutually anticommuting classes.
	two := [][]bool{
		{true, true, false},
		{true, true, false},
		{false, false, true},
	}
	require.True(t, noncon.CheckAdjacency(two))

	// Non-transitive commutation: contextual.
	bad := [][]bool{
		{true, false, true, false},
		{false, true, true, true},
		{true, true, true, false},
		{false, true, false, true},
	}
	require.False(t, noncon.CheckAdjacency(bad))
}

func TestCheckPadded_MatchesGlobalCheck(t *testing.T) {
	op := contextualSum(t)
	adj := op.Adjacency()

	// Pad the noncontextual 3-term prefix with the fourth term and compare
	// against the full-matrix verdict.
	prefix := [][]bool{
		{adj[0][0], adj[0][1], adj[0][2]},
		{adj[1][0], adj[1][1], adj[1][2]},
		{adj[2][0], adj[2][1], adj[2][2]},
	}
	candidate := []bool{adj[3][0], adj[3][1], adj[3][2]}
	require.Equal(t, noncon.CheckAdjacency(adj), noncon.CheckPadded(prefix, candidate))
}

func TestIsNoncontextual(t *testing.T) {
	require.True(t, noncon.IsNoncontextual(mustSum(t, map[string]complex128{
		"X": 1, "Y": 0.5, "Z": 0.2,
	})))
	require.False(t, noncon.IsNoncontextual(contextualSum(t)))
	require.False(t, noncon.IsNoncontextual(nil))
}

func TestNew_RejectsContextual(t *testing.T) {
	_, err := noncon.New(contextualSum(t))
	require.ErrorIs(t, err, noncon.ErrContextual)

	_, err = noncon.New(nil)
	require.ErrorIs(t, err, pauli.ErrEmptyOperator)
}

func TestFromHamiltonian_DiagonalKeepsDiagonalTerms(t *testing.T) {
	op, err := noncon.FromHamiltonian(mustSum(t, map[string]complex128{
		"ZI": 1, "XI": 1,
	}))
	require.NoError(t, err)
	require.Equal(t, map[string]complex128{"ZI": 1}, op.Sum().ToMap())
}

func TestFromHamiltonian_GreedyCurrentOrder(t *testing.T) {
	op, err := noncon.FromHamiltonian(contextualSum(t),
		noncon.WithStrategy(noncon.Greedy),
		noncon.WithOrder(noncon.OrderCurrent),
	)
	require.NoError(t, err)
	require.Equal(t, 3, op.NTerms())
	require.True(t, noncon.IsNoncontextual(op.Sum()))
}

func TestFromHamiltonian_GreedyDeterministic(t *testing.T) {
	build := func() map[string]complex128 {
		op, err := noncon.FromHamiltonian(contextualSum(t),
			noncon.WithStrategy(noncon.Greedy),
			noncon.WithOrder(noncon.OrderMagnitude),
		)
		require.NoError(t, err)
		return op.Sum().ToMap()
	}
	require.Equal(t, build(), build())

	seeded := func(seed int64) map[string]complex128 {
		op, err := noncon.FromHamiltonian(contextualSum(t),
			noncon.WithStrategy(noncon.Greedy),
			noncon.WithOrder(noncon.OrderRandom),
			noncon.WithSeed(seed),
		)
		require.NoError(t, err)
		return op.Sum().ToMap()
	}
	require.Equal(t, seeded(3), seeded(3))
}

func TestFromHamiltonian_RepeatedSweepPicksHeaviest(t *testing.T) {
	op, err := noncon.FromHamiltonian(contextualSum(t),
		noncon.WithStrategy(noncon.RepeatedSweep),
		noncon.WithSelection(noncon.SelectWeight),
		noncon.WithBudget(time.Second),
	)
	require.NoError(t, err)

	// Starting from the largest term keeps XI (0.9) and XX (0.8) plus IZ.
	got := op.Sum().ToMap()
	require.Contains(t, got, "XI")
	require.Contains(t, got, "XX")
	require.InDelta(t, 2.0, op.Sum().AbsCoeffSum(), 1e-12)
}

func TestFromHamiltonian_RepeatedSweepAlwaysCompletesFirstSweep(t *testing.T) {
	op, err := noncon.FromHamiltonian(contextualSum(t),
		noncon.WithStrategy(noncon.RepeatedSweep),
		noncon.WithSelection(noncon.SelectTerms),
		noncon.WithBudget(time.Nanosecond),
	)
	require.NoError(t, err)
	require.Equal(t, 3, op.NTerms())
}

func TestFromHamiltonian_DiagonalFirst(t *testing.T) {
	op, err := noncon.FromHamiltonian(mustSum(t, map[string]complex128{
		"ZI": 0.5, "IZ": 0.4, "XI": 0.9, "XX": 0.3,
	}), noncon.WithStrategy(noncon.DiagonalFirst))
	require.NoError(t, err)

	got := op.Sum().ToMap()
	require.Contains(t, got, "ZI")
	require.Contains(t, got, "IZ")
	require.Equal(t, 3, op.NTerms())
}

func TestFromHamiltonian_BasisProjectionDropsAnticommutingProducts(t *testing.T) {
	// Z lies in the GF(2) span of {X, Y}, but X and Y anticommute, so the
	// Jordan-product reconstruction must not keep it.
	h := mustSum(t, map[string]complex128{"X": 1, "Y": 0.5, "Z": 0.25})
	basis, err := pauli.FromStrings([]string{"X", "Y"}, []complex128{1, 1})
	require.NoError(t, err)

	op, err := noncon.FromHamiltonian(h,
		noncon.WithStrategy(noncon.BasisProjection),
		noncon.WithBasis(basis),
	)
	require.NoError(t, err)
	require.Equal(t, map[string]complex128{"X": 1, "Y": 0.5}, op.Sum().ToMap())
}

func TestFromHamiltonian_BasisProjection(t *testing.T) {
	h := mustSum(t, map[string]complex128{
		"ZI": 0.5, "IZ": 0.4, "XX": 0.3, "XI": 0.9,
	})
	basis, err := pauli.FromStrings([]string{"ZI", "IZ"}, []complex128{1, 1})
	require.NoError(t, err)

	op, err := noncon.FromHamiltonian(h,
		noncon.WithStrategy(noncon.BasisProjection),
		noncon.WithBasis(basis),
	)
	require.NoError(t, err)
	require.Equal(t, map[string]complex128{"ZI": 0.5, "IZ": 0.4}, op.Sum().ToMap())

	_, err = noncon.FromHamiltonian(h, noncon.WithStrategy(noncon.BasisProjection))
	require.ErrorIs(t, err, noncon.ErrUnderspecifiedBasis)
}

func TestFromHamiltonian_UnknownSelectors(t *testing.T) {
	h := contextualSum(t)

	_, err := noncon.FromHamiltonian(h, noncon.WithStrategy(noncon.Strategy(99)))
	require.ErrorIs(t, err, noncon.ErrUnknownStrategy)

	_, err = noncon.FromHamiltonian(h,
		noncon.WithStrategy(noncon.Greedy), noncon.WithOrder(noncon.Order(99)))
	require.ErrorIs(t, err, noncon.ErrUnknownOrder)

	_, err = noncon.FromHamiltonian(h,
		noncon.WithStrategy(noncon.RepeatedSweep), noncon.WithSelection(noncon.Criterion(99)))
	require.ErrorIs(t, err, noncon.ErrUnknownCriterion)
}

func TestDecomposition_BlockSumRoundTrip(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)
	require.Equal(t, 2, op.NCliques())
	require.Equal(t, 2, op.SymmetryGenerators().NTerms())

	blocks := op.Decomposition()
	require.Contains(t, blocks, "symmetry")
	require.Contains(t, blocks, "0")
	require.Contains(t, blocks, "1")

	total := make(map[string]complex128)
	terms := 0
	for _, block := range blocks {
		for label, c := range block.ToMap() {
			_, dup := total[label]
			require.False(t, dup, "term %s appears in two blocks", label)
			total[label] = c
		}
		terms += block.NTerms()
	}
	require.Equal(t, op.NTerms(), terms)
	require.Equal(t, op.Sum().ToMap(), total)
}

func TestEnergy_HandComputed(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	// Generators in canonical order: IIZ then ZZI.
	e, err := op.Energy([]int{1, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.8-math.Sqrt(0.2), e, 1e-12)

	e, err = op.Energy([]int{-1, -1})
	require.NoError(t, err)
	require.InDelta(t, -0.8-math.Sqrt(0.2), e, 1e-12)

	_, err = op.Energy([]int{1})
	require.ErrorIs(t, err, noncon.ErrVectorLength)
	_, err = op.Energy([]int{0, 1})
	require.ErrorIs(t, err, noncon.ErrBadEigenvalue)
}

func TestEnergy_SignCorrectedReconstruction(t *testing.T) {
	// YY = −ZZ·XX, so the YY row carries a −1 sign correction that the
	// energy must apply on top of the ν mismatch factor.
	op, err := noncon.New(mustSum(t, map[string]complex128{
		"IZ": 0.5, "ZI": 0.4, "ZZ": 0.3, "XX": 0.2, "YY": 0.1,
	}))
	require.NoError(t, err)
	require.Equal(t, 1, op.SymmetryGenerators().NTerms())

	e, err := op.Energy([]int{1})
	require.NoError(t, err)
	require.InDelta(t, 0.3-math.Sqrt(0.82), e, 1e-12)

	e, err = op.Energy([]int{-1})
	require.NoError(t, err)
	require.InDelta(t, -0.3-math.Sqrt(0.1), e, 1e-12)
}

func TestEnergy_MutuallyAnticommutingTerms(t *testing.T) {
	// Three pairwise anticommuting terms decompose into three singleton
	// cliques with no symmetry generators: every term must land in exactly
	// one clique sum, giving E = −‖(1,1,1)‖ = −√3 (not −√2, which is what
	// double-counting a dependent term across cliques would produce).
	op, err := noncon.New(mustSum(t, map[string]complex128{
		"X": 1, "Y": 1, "Z": 1,
	}))
	require.NoError(t, err)
	require.Equal(t, 0, op.SymmetryGenerators().NTerms())
	require.Equal(t, 3, op.NCliques())

	e, err := op.Energy([]int{})
	require.NoError(t, err)
	require.InDelta(t, -math.Sqrt(3), e, 1e-12)

	res, err := op.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)
	require.InDelta(t, -math.Sqrt(3), res.Energy, 1e-12)
	require.Empty(t, res.Nu)
	require.InDelta(t, math.Sqrt(3), op.Recipe().Gamma, 1e-12)
}

func TestEnergy_InvariantUnderGeneratorPermutation(t *testing.T) {
	// Reversing the qubit order relabels every term and swaps the discovery
	// order of the two symmetry generators, so sectors carry across with
	// their entries transposed; energies must agree entry for entry.
	orig, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)
	mirror, err := noncon.New(mustSum(t, map[string]complex128{
		"IZZ": 0.5, "ZII": 0.3, "IXX": 0.4, "IXY": 0.2,
	}))
	require.NoError(t, err)

	oGens := orig.SymmetryGenerators()
	mGens := mirror.SymmetryGenerators()
	require.Equal(t, []string{"IIZ", "ZZI"}, []string{oGens.Label(0), oGens.Label(1)})
	require.Equal(t, []string{"IZZ", "ZII"}, []string{mGens.Label(0), mGens.Label(1)})

	for _, nu := range [][]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		eo, err := orig.Energy(nu)
		require.NoError(t, err)
		em, err := mirror.Energy([]int{nu[1], nu[0]})
		require.NoError(t, err)
		require.InDelta(t, eo, em, 1e-12)
	}

	bo, err := orig.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)
	bm, err := mirror.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)
	require.InDelta(t, bo.Energy, bm.Energy, 1e-12)
}

func TestSolve_BruteForceMatchesExhaustiveEnumeration(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	res, err := op.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)

	// Literal enumeration over all four sign assignments.
	best := math.Inf(1)
	for _, nu := range [][]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		e, err := op.Energy(nu)
		require.NoError(t, err)
		if e < best {
			best = e
		}
	}
	require.InDelta(t, best, res.Energy, 1e-12)
	require.InDelta(t, -0.8-math.Sqrt(0.2), res.Energy, 1e-12)
	require.Equal(t, []int{-1, -1}, res.Nu)
	require.Equal(t, res.Nu, op.Eigenvalues())
}

func TestSolve_CommitsCliqueAmplitudesAndRecipe(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	_, err = op.Solve(noncon.WithMethod(noncon.BruteForce),
		noncon.WithPartitionMethod(partition.SeqRot))
	require.NoError(t, err)

	rec := op.Recipe()
	require.NotNil(t, rec)
	require.InDelta(t, math.Sqrt(0.2), rec.Gamma, 1e-12)

	// Post-solve amplitudes are the normalized s-vector (0.4, 0.2)/√0.2.
	clique := op.CliqueOperator().ToMap()
	require.InDelta(t, 0.4/math.Sqrt(0.2), real(clique["XXI"]), 1e-9)
	require.InDelta(t, 0.2/math.Sqrt(0.2), real(clique["YXI"]), 1e-9)
}

func TestSolve_FixedSector(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	// Fix ν(IIZ) = +1; only ν(ZZI) is searched.
	res, err := op.Solve(
		noncon.WithMethod(noncon.BruteForce),
		noncon.WithFixedSector([]bool{true, false}, []int{1}),
	)
	require.NoError(t, err)
	require.Equal(t, []int{1, -1}, res.Nu)
	require.InDelta(t, -0.2-math.Sqrt(0.2), res.Energy, 1e-12)

	_, err = op.Solve(noncon.WithFixedSector([]bool{true}, []int{1}))
	require.ErrorIs(t, err, noncon.ErrFixedSector)
	_, err = op.Solve(noncon.WithFixedSector([]bool{true, false}, []int{0}))
	require.ErrorIs(t, err, noncon.ErrBadEigenvalue)
}

func TestSolve_RelaxationNeverUndercutsBruteForce(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	brute, err := op.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)
	relaxed, err := op.Solve(noncon.WithMethod(noncon.BinaryRelaxation))
	require.NoError(t, err)

	require.GreaterOrEqual(t, relaxed.Energy, brute.Energy-1e-9)
	// On this landscape the corner start lands exactly on the optimum.
	require.InDelta(t, brute.Energy, relaxed.Energy, 1e-9)
}

func TestSolve_SpinModelModes(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	brute, err := op.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)

	for _, method := range []noncon.Method{
		noncon.BruteForcePUSO,
		noncon.BruteForceQUSO,
		noncon.AnnealingPUSO,
		noncon.AnnealingQUSO,
	} {
		res, err := op.Solve(
			noncon.WithMethod(method),
			noncon.WithNumAnneals(50),
			noncon.WithAnnealSeed(7),
		)
		require.NoError(t, err, "method %d", method)
		require.InDelta(t, brute.Energy, res.Energy, 1e-9, "method %d", method)
		for _, v := range res.Nu {
			require.Contains(t, []int{-1, 1}, v)
		}
	}
}

func TestSolve_NoCliquesSkipsPartitioning(t *testing.T) {
	op, err := noncon.New(mustSum(t, map[string]complex128{
		"ZI": -0.5, "IZ": 0.3, "ZZ": 0.2,
	}))
	require.NoError(t, err)
	require.Equal(t, 0, op.NCliques())

	res, err := op.Solve(noncon.WithMethod(noncon.BruteForce))
	require.NoError(t, err)
	require.InDelta(t, -1.0, res.Energy, 1e-12)
	require.Equal(t, []int{-1, 1}, res.Nu) // ν(IZ), ν(ZI)
	require.Nil(t, op.Recipe())
}

func TestSolve_UnknownMethod(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)
	_, err = op.Solve(noncon.WithMethod(noncon.Method(99)))
	require.ErrorIs(t, err, noncon.ErrUnknownMethod)
}

func TestSymmetrizedOperator(t *testing.T) {
	// Without cliques the surrogate is the operator itself.
	flat, err := noncon.New(mustSum(t, map[string]complex128{
		"ZI": 0.5, "IZ": 0.3, "ZZ": 0.2,
	}))
	require.NoError(t, err)
	sym, err := flat.SymmetrizedOperator(1)
	require.NoError(t, err)
	require.Equal(t, flat.Sum().ToMap(), sym.ToMap())

	// With singleton cliques the norm term is exactly √(Σ sᵢ²)·I.
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)
	sym, err = op.SymmetrizedOperator(1)
	require.NoError(t, err)
	got := sym.ToMap()
	require.InDelta(t, 0.5, real(got["ZZI"]), 1e-12)
	require.InDelta(t, 0.3, real(got["IIZ"]), 1e-12)
	require.InDelta(t, -math.Sqrt(0.2), real(got["III"]), 1e-12)

	_, err = op.SymmetrizedOperator(-1)
	require.ErrorIs(t, err, noncon.ErrExpansionOrder)

	// The memo returns copies: mutating one result must not leak.
	a, err := op.SymmetrizedOperator(2)
	require.NoError(t, err)
	a.SetCoeff(0, 999)
	b, err := op.SymmetrizedOperator(2)
	require.NoError(t, err)
	require.NotEqual(t, complex128(999), b.Coeff(0))
}

func TestUpdateCliqueOperator(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	_, err = op.UpdateCliqueOperator(0, partition.SeqRot)
	require.ErrorIs(t, err, noncon.ErrUnassignedSector)

	require.NoError(t, op.SetSector([]int{-1, -1}))
	rec, err := op.UpdateCliqueOperator(0, partition.SeqRot)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(0.2), rec.Gamma, 1e-12)
	require.Equal(t, "XXI", rec.Ps.Label(0))

	flat, err := noncon.New(mustSum(t, map[string]complex128{"ZZ": 1}))
	require.NoError(t, err)
	require.NoError(t, flat.SetSector([]int{1}))
	_, err = flat.UpdateCliqueOperator(0, partition.SeqRot)
	require.ErrorIs(t, err, noncon.ErrNoCliques)
}

func TestSetSector_Validation(t *testing.T) {
	op, err := noncon.New(twoCliqueSum(t))
	require.NoError(t, err)

	require.ErrorIs(t, op.SetSector([]int{1}), noncon.ErrVectorLength)
	require.ErrorIs(t, op.SetSector([]int{2, 1}), noncon.ErrBadEigenvalue)
	require.NoError(t, op.SetSector([]int{1, -1}))
	require.Equal(t, []int{1, -1}, op.Eigenvalues())
}

func TestConstruction_DeterministicAcrossInputOrder(t *testing.T) {
	// The same term set supplied in different orders canonicalizes to the
	// same decomposition and energies.
	a, err := noncon.New(mustSum(t, map[string]complex128{
		"IZ": 0.5, "ZI": 0.4, "ZZ": 0.3, "XX": 0.2, "YY": 0.1,
	}))
	require.NoError(t, err)
	shuffled, err := pauli.FromStrings(
		[]string{"YY", "XX", "ZZ", "ZI", "IZ"},
		[]complex128{0.1, 0.2, 0.3, 0.4, 0.5},
	)
	require.NoError(t, err)
	b, err := noncon.New(shuffled)
	require.NoError(t, err)

	require.Equal(t, a.Sum().ToMap(), b.Sum().ToMap())
	for _, nu := range [][]int{{1}, {-1}} {
		ea, err := a.Energy(nu)
		require.NoError(t, err)
		eb, err := b.Energy(nu)
		require.NoError(t, err)
		require.InDelta(t, ea, eb, 1e-12)
	}
}
