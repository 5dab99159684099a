// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// MannWhitneyExactLimit is the largest sample size for which
// MannWhitneyUTest computes an exact p-value.
var MannWhitneyExactLimit = 50

// A MannWhitneyUTestResult is the result of a Mann-Whitney U-test.
type MannWhitneyUTestResult struct {
	// N1 and N2 are the sizes of the input samples.
	N1, N2 int

	// U is the Mann-Whitney U statistic, counting ties as 0.5.
	// It is the smaller of the two possible values of U; the
	// other is N1*N2 - U.
	U float64

	// P is the two-tailed p-value of the test.
	P float64
}

// MannWhitneyUTest performs a Mann-Whitney U-test of the null
// hypothesis that two samples come from the same population against
// the alternative that one tends to have larger or smaller values
// than the other. Charges are far from normal, so this is used in
// place of a t-test when comparing groups.
//
// For samples of at most MannWhitneyExactLimit values with no ties,
// the p-value is exact. Otherwise it comes from the normal
// approximation of the U distribution with both the tie correction
// and the continuity correction.
//
// This fails with an error wrapping ErrInsufficientData if either
// sample is empty or ErrSamplesEqual if all values are equal.
func MannWhitneyUTest(x1, x2 []float64) (*MannWhitneyUTestResult, error) {
	n1, n2 := len(x1), len(x2)
	if n1 == 0 || n2 == 0 {
		return nil, ErrInsufficientData
	}

	x1 = append([]float64(nil), x1...)
	x2 = append([]float64(nil), x2...)
	sort.Float64s(x1)
	sort.Float64s(x2)
	merged, labels := labeledMerge(x1, x2)

	// Sum the ranks of x1, giving tied runs their average rank.
	R1 := 0.0
	for i := 0; i < len(merged); {
		rank1, nx1, v1 := i+1, 0, merged[i]
		for ; i < len(merged) && merged[i] == v1; i++ {
			if labels[i] == 1 {
				nx1++
			}
		}
		R1 += float64(i+rank1) / 2 * float64(nx1)
	}
	U1 := R1 - float64(n1*(n1+1))/2
	U2 := float64(n1*n2) - U1
	if U2 < U1 {
		U1 = U2
	}

	t := tieCorrection(merged)
	if t == 0 && n1 <= MannWhitneyExactLimit && n2 <= MannWhitneyExactLimit {
		p := math.Min(2*uCDF(n1, n2, int(math.Round(U1))), 1)
		return &MannWhitneyUTestResult{N1: n1, N2: n2, U: U1, P: p}, nil
	}

	N := float64(n1 + n2)
	μ_U := float64(n1*n2) / 2
	σ_U := math.Sqrt(float64(n1*n2) * ((N + 1) - t/(N*(N-1))) / 12)
	if σ_U == 0 || math.IsNaN(σ_U) {
		return nil, ErrSamplesEqual
	}
	numer := U1 - μ_U
	numer -= sign(numer) * 0.5 // Continuity correction
	z := numer / σ_U
	p := 2 * math.Min(distuv.UnitNormal.CDF(z), distuv.UnitNormal.Survival(z))
	if p > 1 {
		p = 1
	}

	return &MannWhitneyUTestResult{N1: n1, N2: n2, U: U1, P: p}, nil
}

// uCDF returns P(U <= u) for samples of sizes n1 and n2 with no ties.
//
// The number of orderings with U = u satisfies
// f(u; i, j) = f(u-j; i-1, j) + f(u; i, j-1), depending on whether
// the largest value comes from the first or the second sample.
func uCDF(n1, n2, u int) float64 {
	if u < 0 {
		return 0
	}
	if u >= n1*n2 {
		return 1
	}
	// prev[j][v] and cur[j][v] hold f(v; i-1, j) and f(v; i, j)
	// for v <= u.
	newRow := func() [][]float64 {
		row := make([][]float64, n2+1)
		for j := range row {
			row[j] = make([]float64, u+1)
		}
		return row
	}
	prev := newRow()
	for j := range prev {
		prev[j][0] = 1
	}
	for i := 1; i <= n1; i++ {
		cur := newRow()
		cur[0][0] = 1
		for j := 1; j <= n2; j++ {
			for v := 0; v <= u; v++ {
				cur[j][v] = cur[j-1][v]
				if v >= j {
					cur[j][v] += prev[j][v-j]
				}
			}
		}
		prev = cur
	}
	return floats.Sum(prev[n2]) / combin.GeneralizedBinomial(float64(n1+n2), float64(n1))
}

// labeledMerge merges sorted lists x1 and x2 into sorted list merged.
// labels[i] is 1 or 2 depending on whether merged[i] is a value from
// x1 or x2, respectively.
func labeledMerge(x1, x2 []float64) (merged []float64, labels []byte) {
	merged = make([]float64, 0, len(x1)+len(x2))
	labels = make([]byte, 0, len(x1)+len(x2))

	i, j := 0, 0
	for i < len(x1) || j < len(x2) {
		if j == len(x2) || i < len(x1) && x1[i] < x2[j] {
			merged, labels = append(merged, x1[i]), append(labels, 1)
			i++
		} else {
			merged, labels = append(merged, x2[j]), append(labels, 2)
			j++
		}
	}
	return
}

// tieCorrection computes the tie correction factor Σ_j (t_j³ - t_j)
// where t_j is the number of ties in the j'th rank.
func tieCorrection(xs []float64) float64 {
	t := 0
	for i := 0; i < len(xs); {
		i1, v1 := i, xs[i]
		for ; i < len(xs) && xs[i] == v1; i++ {
		}
		run := i - i1
		t += run*run*run - run
	}
	return float64(t)
}

func sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
