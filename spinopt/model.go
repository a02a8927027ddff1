package spinopt

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownMethod is returned for a Method outside the closed set.
	ErrUnknownMethod = errors.New("spinopt: unknown solve method")

	// ErrUnknownForm is returned for a Form outside the closed set.
	ErrUnknownForm = errors.New("spinopt: unknown model form")

	// ErrMissingVariable is returned when an assignment lacks a model variable.
	ErrMissingVariable = errors.New("spinopt: assignment missing variable")

	// ErrBadSpinValue is returned when an assignment value is not ±1.
	ErrBadSpinValue = errors.New("spinopt: spin value must be -1 or +1")
)

// ancPrefix marks quadratization ancilla variables; they are internal and
// stripped from solutions. User variable names must not collide with it.
const ancPrefix = "__anc"

// Polynomial is a cost functional over named spin variables.
// The zero value is not usable; construct with NewPolynomial.
type Polynomial struct {
	names []string       // insertion order; enumeration follows it
	index map[string]int // name → position in names

	// terms maps a canonical monomial key (sorted variable indices) to its
	// coefficient; the empty key is the constant offset.
	terms map[string]float64
}

// NewPolynomial returns an empty model.
func NewPolynomial() *Polynomial {
	return &Polynomial{index: make(map[string]int), terms: make(map[string]float64)}
}

// AddTerm accumulates coeff·Π vars onto the model. Repeated variables in a
// single monomial cancel pairwise (s² = 1); an empty vars list adds to the
// constant offset. Unknown variable names are registered in call order.
func (p *Polynomial) AddTerm(coeff float64, vars ...string) {
	idx := make([]int, 0, len(vars))
	for _, v := range vars {
		i, ok := p.index[v]
		if !ok {
			i = len(p.names)
			p.index[v] = i
			p.names = append(p.names, v)
		}
		idx = append(idx, i)
	}
	p.terms[monomialKey(squarefree(idx))] += coeff
}

// Variables returns the variable names in insertion order.
func (p *Polynomial) Variables() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// NumVariables reports the variable count.
func (p *Polynomial) NumVariables() int { return len(p.names) }

// Degree reports the largest monomial degree (0 for constant models).
func (p *Polynomial) Degree() int {
	d := 0
	for key := range p.terms {
		if n := monomialLen(key); n > d {
			d = n
		}
	}
	return d
}

// Constant returns the coefficient of the empty monomial.
func (p *Polynomial) Constant() float64 { return p.terms[""] }

// Evaluate computes the model at a full ±1 assignment.
// Errors: ErrMissingVariable, ErrBadSpinValue.
// Complexity: O(terms·degree).
func (p *Polynomial) Evaluate(assign map[string]int) (float64, error) {
	vals := make([]int, len(p.names))
	for i, name := range p.names {
		v, ok := assign[name]
		if !ok {
			return 0, ErrMissingVariable
		}
		if v != 1 && v != -1 {
			return 0, ErrBadSpinValue
		}
		vals[i] = v
	}
	return p.evalVals(vals), nil
}

// evalVals evaluates against positional values (internal hot path).
func (p *Polynomial) evalVals(vals []int) float64 {
	total := 0.0
	for key, coeff := range p.terms {
		sign := 1
		for _, i := range monomialVars(key) {
			sign *= vals[i]
		}
		total += coeff * float64(sign)
	}
	return total
}

// compiled is the flat term list used by the annealer to avoid map walks.
type compiledTerm struct {
	vars  []int
	coeff float64
}

// compile flattens the term map deterministically (sorted keys).
func (p *Polynomial) compile() []compiledTerm {
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]compiledTerm, 0, len(keys))
	for _, k := range keys {
		out = append(out, compiledTerm{vars: monomialVars(k), coeff: p.terms[k]})
	}
	return out
}

// absCoeffSum is the Σ|coeff| bound used for quadratization penalties.
func (p *Polynomial) absCoeffSum() float64 {
	s := 0.0
	for _, c := range p.terms {
		if c < 0 {
			s -= c
		} else {
			s += c
		}
	}
	return s
}

// squarefree sorts indices and cancels equal pairs (spin algebra s² = 1).
func squarefree(idx []int) []int {
	sort.Ints(idx)
	out := idx[:0]
	i := 0
	for i < len(idx) {
		j := i
		for j < len(idx) && idx[j] == idx[i] {
			j++
		}
		if (j-i)%2 == 1 {
			out = append(out, idx[i])
		}
		i = j
	}
	return out
}

func monomialKey(idx []int) string {
	if len(idx) == 0 {
		return ""
	}
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func monomialVars(key string) []int {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, ",")
	out := make([]int, len(parts))
	for i, s := range parts {
		out[i], _ = strconv.Atoi(s) // keys are produced internally
	}
	return out
}

func monomialLen(key string) int {
	if key == "" {
		return 0
	}
	return strings.Count(key, ",") + 1
}
