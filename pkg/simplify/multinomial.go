package simplify

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Multinomial expands (t₁ + … + t_k)^n.
func Multinomial(terms []Monomial, n int) []Monomial {
	var out []Monomial
	for _, parts := range Compositions(len(terms), n) {
		m := Monomial{Coefficient: MultinomialCoefficient(parts)}
		for j, p := range parts {
			if p > 0 {
				m = m.times(powMonomial(terms[j], p))
			}
		}
		out = append(out, m)
	}
	return groupTogether(out)
}

// Compositions returns every way to write n as an ordered sum of k
// non-negative integers. It starts from all zeros and repeatedly hands one
// more unit to each slot, discarding duplicates.
func Compositions(k, n int) [][]int {
	if k <= 0 || n < 0 {
		return nil
	}

	level := [][]int{make([]int, k)}
	for step := 0; step < n; step++ {
		seen := make(map[string]bool)
		var next [][]int
		for _, c := range level {
			for j := 0; j < k; j++ {
				grown := append([]int(nil), c...)
				grown[j]++
				key := compositionKey(grown)
				if seen[key] {
					continue
				}
				seen[key] = true
				next = append(next, grown)
			}
		}
		level = next
	}

	sort.Slice(level, func(a, b int) bool {
		for j := range level[a] {
			if level[a][j] != level[b][j] {
				return level[a][j] > level[b][j]
			}
		}
		return false
	})
	return level
}

func compositionKey(c []int) string {
	var b strings.Builder
	for _, v := range c {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}

// MultinomialCoefficient returns n!/(i₁!·…·i_k!) with n the sum of parts,
// computed as a product of binomial coefficients.
func MultinomialCoefficient(parts []int) float64 {
	coeff := 1.0
	total := 0
	for _, p := range parts {
		total += p
		coeff *= binomial(total, p)
	}
	return coeff
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	b := 1.0
	for i := 1; i <= k; i++ {
		b = b * float64(n-k+i) / float64(i)
	}
	if b < 1<<53 {
		return math.Round(b)
	}
	return b
}
