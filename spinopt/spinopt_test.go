package spinopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pauliverse/noncontext/spinopt"
)

// ferromagnet builds −s0·s1 − s1·s2 − 0.5·s0: minimum at all-(+1), value −2.5.
func ferromagnet() *spinopt.Polynomial {
	p := spinopt.NewPolynomial()
	p.AddTerm(-1, "s0", "s1")
	p.AddTerm(-1, "s1", "s2")
	p.AddTerm(-0.5, "s0")
	return p
}

func TestAddTerm_SquarefreeCanonicalForm(t *testing.T) {
	p := spinopt.NewPolynomial()
	p.AddTerm(2, "a", "a")      // s² = 1 → constant
	p.AddTerm(3, "b", "a", "b") // → a
	p.AddTerm(1)                // constant
	require.Equal(t, 1, p.Degree())
	require.Equal(t, 3.0, p.Constant())

	v, err := p.Evaluate(map[string]int{"a": -1, "b": 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, v) // 3 + 3·(−1)

	_, err = p.Evaluate(map[string]int{"a": 1})
	require.ErrorIs(t, err, spinopt.ErrMissingVariable)
	_, err = p.Evaluate(map[string]int{"a": 0, "b": 1})
	require.ErrorIs(t, err, spinopt.ErrBadSpinValue)
}

func TestSolve_BruteForcePolynomial(t *testing.T) {
	sol, err := spinopt.Solve(ferromagnet(), spinopt.Options{})
	require.NoError(t, err)
	require.Equal(t, -2.5, sol.Value)
	require.Equal(t, map[string]int{"s0": 1, "s1": 1, "s2": 1}, sol.Assignment)
}

func TestSolve_BruteForceQuadraticMatchesPolynomial(t *testing.T) {
	// Cubic model: −s0·s1·s2 + 0.25·s0; quadratization must preserve the
	// minimizing assignment over the original variables.
	p := spinopt.NewPolynomial()
	p.AddTerm(-1, "s0", "s1", "s2")
	p.AddTerm(0.25, "s0")

	exact, err := spinopt.Solve(p, spinopt.Options{Method: spinopt.BruteForce, Form: spinopt.PolynomialForm})
	require.NoError(t, err)
	quad, err := spinopt.Solve(p, spinopt.Options{Method: spinopt.BruteForce, Form: spinopt.QuadraticForm})
	require.NoError(t, err)

	require.Equal(t, exact.Value, quad.Value)
	for name, v := range quad.Assignment {
		require.Contains(t, []int{-1, 1}, v, name)
	}
	require.Len(t, quad.Assignment, 3) // ancillas stripped
}

func TestQuadratize_DegreeAndEquivalence(t *testing.T) {
	p := spinopt.NewPolynomial()
	p.AddTerm(1.5, "a", "b", "c", "d")
	p.AddTerm(-2, "a", "c")
	q := p.Quadratize()
	require.LessOrEqual(t, q.Degree(), 2)
	require.Greater(t, q.NumVariables(), p.NumVariables())
}

func TestSolve_AnnealingFindsBruteForceOptimum(t *testing.T) {
	p := ferromagnet()
	sol, err := spinopt.Solve(p, spinopt.Options{
		Method:     spinopt.Annealing,
		NumAnneals: 50,
		Sweeps:     50,
		Seed:       7,
	})
	require.NoError(t, err)
	require.Equal(t, -2.5, sol.Value)
}

func TestSolve_AnnealingDeterministicUnderSeed(t *testing.T) {
	a, err := spinopt.Solve(ferromagnet(), spinopt.Options{Method: spinopt.Annealing, NumAnneals: 3, Sweeps: 10, Seed: 42})
	require.NoError(t, err)
	b, err := spinopt.Solve(ferromagnet(), spinopt.Options{Method: spinopt.Annealing, NumAnneals: 3, Sweeps: 10, Seed: 42})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSolve_UnknownModes(t *testing.T) {
	_, err := spinopt.Solve(ferromagnet(), spinopt.Options{Method: spinopt.Method(99)})
	require.ErrorIs(t, err, spinopt.ErrUnknownMethod)
	_, err = spinopt.Solve(ferromagnet(), spinopt.Options{Form: spinopt.Form(99)})
	require.ErrorIs(t, err, spinopt.ErrUnknownForm)
}

func TestSolve_ConstantModel(t *testing.T) {
	p := spinopt.NewPolynomial()
	p.AddTerm(4.25)
	sol, err := spinopt.Solve(p, spinopt.Options{})
	require.NoError(t, err)
	require.Equal(t, 4.25, sol.Value)
	require.Empty(t, sol.Assignment)
}
