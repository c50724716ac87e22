// SPDX-License-Identifier: MIT

package weights

import (
	"sort"
)

// ProjectSimplex returns the Euclidean projection of v onto the probability
// simplex {w : wᵢ ≥ 0, Σwᵢ = 1}.
//
// Implementation:
//   - Sort a copy of v in decreasing order u.
//   - ρ = max{ j : u_j − (Σ_{i≤j} u_i − 1)/(j+1) > 0 }.
//   - θ = (Σ_{i≤ρ} u_i − 1)/(ρ+1); wᵢ = max(vᵢ − θ, 0).
//
// v is not modified. An empty input yields nil.
//
// Complexity: O(m log m).
func ProjectSimplex(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	u := append([]float64(nil), v...)
	sort.Sort(sort.Reverse(sort.Float64Slice(u)))

	var css, theta float64
	for j, uj := range u {
		css += uj
		if t := (css - 1) / float64(j+1); uj-t > 0 {
			theta = t
		}
	}

	w := make([]float64, len(v))
	for i, vi := range v {
		if vi > theta {
			w[i] = vi - theta
		}
	}

	return w
}
