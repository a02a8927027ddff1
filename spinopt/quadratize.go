package spinopt

import (
	"sort"
	"strconv"
)

// Quadratize reduces the model to degree ≤ 2 over an extended variable set.
//
// Pipeline:
//  1. substitute s = 1 − 2b to obtain a boolean polynomial (b² = b);
//  2. while any monomial has degree ≥ 3, collapse the most frequent
//     variable pair (i,j) of the high-degree monomials into an ancilla
//     a = b_i·b_j, adding the Rosenberg penalty
//     M·(b_i b_j − 2 b_i a − 2 b_j a + 3a) with M = 1 + Σ|coeff|,
//     which vanishes exactly when a = b_i·b_j and dominates otherwise;
//  3. substitute b = (1 − s)/2 back to spin form.
//
// The returned model lists the original variables first, in their original
// order, followed by "__anc0", "__anc1", … ancillas. Minima of the
// quadratized model, restricted to the original variables, coincide with
// minima of the receiver.
//
// Complexity: O(terms·2^degree) for the substitutions plus O(pairs·terms)
// per collapsed pair.
func (p *Polynomial) Quadratize() *Polynomial {
	if p.Degree() <= 2 {
		return p.cloneModel()
	}

	names := make([]string, len(p.names))
	copy(names, p.names)

	// Stage 1: spin → boolean. Π s_i = Π (1−2b_i) = Σ_{T⊆S} (−2)^|T| Π_T b.
	bterms := make(map[string]float64)
	for key, coeff := range p.terms {
		vars := monomialVars(key)
		forEachSubset(vars, func(sub []int) {
			c := coeff
			for range sub {
				c *= -2
			}
			bterms[monomialKey(append([]int{}, sub...))] += c
		})
	}

	// Stage 2: Rosenberg pair collapsing.
	nextAnc := 0
	for {
		high := highDegreeKeys(bterms)
		if len(high) == 0 {
			break
		}
		i, j := mostFrequentPair(high)

		anc := len(names)
		names = append(names, ancPrefix+strconv.Itoa(nextAnc))
		nextAnc++

		penalty := 1.0
		for _, c := range bterms {
			if c < 0 {
				penalty -= c
			} else {
				penalty += c
			}
		}

		for _, key := range high {
			vars := monomialVars(key)
			if !containsBoth(vars, i, j) {
				continue
			}
			coeff := bterms[key]
			delete(bterms, key)
			repl := make([]int, 0, len(vars)-1)
			for _, v := range vars {
				if v != i && v != j {
					repl = append(repl, v)
				}
			}
			repl = append(repl, anc)
			sort.Ints(repl)
			bterms[monomialKey(repl)] += coeff
		}

		bterms[monomialKey([]int{i, j})] += penalty
		bterms[monomialKey([]int{min2(i, anc), max2(i, anc)})] += -2 * penalty
		bterms[monomialKey([]int{min2(j, anc), max2(j, anc)})] += -2 * penalty
		bterms[monomialKey([]int{anc})] += 3 * penalty
	}

	// Stage 3: boolean → spin. Π b_i = Π (1−s_i)/2 = 2^{−|T|} Σ_{U⊆T} (−1)^|U| Π_U s.
	out := NewPolynomial()
	out.names = names
	for idx, name := range names {
		out.index[name] = idx
	}
	for key, coeff := range bterms {
		vars := monomialVars(key)
		base := coeff
		for range vars {
			base /= 2
		}
		forEachSubset(vars, func(sub []int) {
			c := base
			if len(sub)%2 == 1 {
				c = -c
			}
			out.terms[monomialKey(append([]int{}, sub...))] += c
		})
	}
	// Drop exact zeros introduced by cancellation.
	for key, c := range out.terms {
		if c == 0 {
			delete(out.terms, key)
		}
	}
	return out
}

func (p *Polynomial) cloneModel() *Polynomial {
	out := NewPolynomial()
	out.names = append(out.names, p.names...)
	for k, v := range p.index {
		out.index[k] = v
	}
	for k, v := range p.terms {
		out.terms[k] = v
	}
	return out
}

// highDegreeKeys lists monomial keys of degree ≥ 3 in sorted order.
func highDegreeKeys(terms map[string]float64) []string {
	var keys []string
	for k := range terms {
		if monomialLen(k) >= 3 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// mostFrequentPair returns the variable pair occurring in the most
// high-degree monomials; ties break on the lexicographically smallest pair.
func mostFrequentPair(keys []string) (int, int) {
	count := make(map[[2]int]int)
	for _, key := range keys {
		vars := monomialVars(key)
		for a := 0; a < len(vars); a++ {
			for b := a + 1; b < len(vars); b++ {
				count[[2]int{vars[a], vars[b]}]++
			}
		}
	}
	best := [2]int{-1, -1}
	bestN := 0
	for pair, n := range count {
		if n > bestN || (n == bestN && lessPair(pair, best)) {
			best = pair
			bestN = n
		}
	}
	return best[0], best[1]
}

func lessPair(a, b [2]int) bool {
	if b[0] < 0 {
		return true
	}
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func containsBoth(vars []int, i, j int) bool {
	foundI, foundJ := false, false
	for _, v := range vars {
		if v == i {
			foundI = true
		}
		if v == j {
			foundJ = true
		}
	}
	return foundI && foundJ
}

// forEachSubset invokes fn on every subset of vars (including the empty
// one). Monomial degrees are small, so the 2^k walk is cheap.
func forEachSubset(vars []int, fn func(sub []int)) {
	n := len(vars)
	sub := make([]int, 0, n)
	for mask := 0; mask < 1<<n; mask++ {
		sub = sub[:0]
		for b := 0; b < n; b++ {
			if mask&(1<<b) != 0 {
				sub = append(sub, vars[b])
			}
		}
		fn(sub)
	}
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
