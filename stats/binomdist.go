// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// BinomialDist is a binomial distribution. It is the sampling
// distribution of order statistics used by QuantileCI.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

func (d BinomialDist) dist() distuv.Binomial {
	return distuv.Binomial{N: float64(d.N), P: d.P}
}

// PMF is the probability of getting exactly int(k) successes.
func (d BinomialDist) PMF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 || k > float64(d.N) {
		return 0
	}
	// k*log(P) is NaN at the degenerate endpoints.
	switch d.P {
	case 0:
		if k == 0 {
			return 1
		}
		return 0
	case 1:
		if k == float64(d.N) {
			return 1
		}
		return 0
	}
	// Taking the binomial coefficient from the smaller tail keeps
	// PMF(k) and PMF(N-k) bit-identical when P is 0.5.
	n := float64(d.N)
	lc := combin.LogGeneralizedBinomial(n, math.Min(k, n-k))
	return math.Exp(lc + k*math.Log(d.P) + (n-k)*math.Log(1-d.P))
}

// CDF is the probability of getting k or fewer successes.
func (d BinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 {
		return 0
	} else if k >= float64(d.N) || d.P == 0 {
		return 1
	} else if d.P == 1 {
		return 0
	}
	return d.dist().CDF(k)
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal approximation of d. Callers must
// apply a continuity correction: b.CDF(k) maps to n.CDF(k+0.5).
func (d BinomialDist) NormalApprox() distuv.Normal {
	return distuv.Normal{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}
