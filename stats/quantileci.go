// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"
)

// QuantileCIResult is the confidence interval for a quantile.
type QuantileCIResult struct {
	// Quantile is the argument to QuantileCI.
	Quantile float64

	// N is the sample size.
	N int

	// Confidence is the actual confidence level of this interval.
	// This will be >= the requested confidence.
	Confidence float64

	// LoOrder and HiOrder are the 1-based order statistics that
	// bound the interval: given sorted xs, the interval is
	// xs[LoOrder-1] to xs[HiOrder-1]. An order outside [1, N]
	// means that bound is infinite.
	LoOrder, HiOrder int

	// Ambiguous indicates that the interval LoOrder+1 to
	// HiOrder+1 has equivalent confidence.
	Ambiguous bool
}

// Bounds returns the interval in terms of the sorted sample xs, which
// must have length q.N.
func (q QuantileCIResult) Bounds(sorted []float64) (lo, hi float64) {
	if len(sorted) != q.N {
		panic("sample size differs from computed quantile CI")
	}
	lo, hi = math.Inf(-1), inf
	if q.LoOrder >= 1 {
		lo = sorted[q.LoOrder-1]
	}
	if q.HiOrder <= len(sorted) {
		hi = sorted[q.HiOrder-1]
	}
	return
}

// quantileCIApproxThreshold is the sample size above which a normal
// approximation is used.
const quantileCIApproxThreshold = 30

// QuantileCI returns the bounds of the confidence interval of the
// q'th quantile in a sample of size n.
//
// The number of samples below the population quantile follows
// Binomial(n, q), so PMF(k) is the probability the quantile falls
// between the k'th and (k+1)'th order statistics.
func QuantileCI(n int, q, confidence float64) QuantileCIResult {
	res := QuantileCIResult{N: n, Quantile: q}
	if confidence >= 1 {
		res.Confidence, res.LoOrder, res.HiOrder = 1, 0, n+1
		return res
	}

	samp := BinomialDist{N: n, P: q}
	var l, r int
	if n <= quantileCIApproxThreshold {
		l, r = exactOrderCI(samp, confidence, &res)
	} else {
		l, r = approxOrderCI(samp, confidence, &res)
	}

	res.LoOrder, res.HiOrder = max(l, 0), min(r, n+1)
	return res
}

// exactOrderCI grows an interval [l, r) of binomial outcomes outward
// from the lower mode, always taking the more probable neighbor
// (left on ties), until it holds the requested confidence.
func exactOrderCI(samp BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	x := int(math.Ceil(float64(samp.N+1)*samp.P) - 1)
	if samp.P == 0 {
		x = 0
	}
	accum := samp.PMF(float64(x))
	l, r = x, x+1
	lp, rp := samp.PMF(float64(l-1)), samp.PMF(float64(r))
	res.Ambiguous = rp == accum

	// Stop if there's nothing left to accumulate, in case of
	// rounding error.
	for accum < confidence && (lp > 0 || rp > 0) {
		res.Ambiguous = lp == rp
		if lp >= rp {
			accum += lp
			l--
			lp = samp.PMF(float64(l - 1))
		} else {
			accum += rp
			r++
			rp = samp.PMF(float64(r))
		}
	}
	res.Confidence = accum
	return l, r
}

// approxOrderCI finds the band of the binomial distribution covering
// the central confidence mass of its normal approximation, then tries
// a left-biased band that is tighter but still sufficient.
func approxOrderCI(samp BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	norm := samp.NormalApprox()
	l1 := norm.Quantile((1 - confidence) / 2)
	r1 := 2*norm.Mu - l1

	// Outcome k covers [k-0.5, k+0.5] under the continuity
	// correction, so round out to half-integers and recover k.
	l = int(math.Floor(math.Floor(l1-0.5)+0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5)+0.5)) + 1

	cdf := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	res.Confidence = cdf(l, r)
	if biased := cdf(l, r-1); biased >= confidence && biased < res.Confidence {
		res.Confidence, res.Ambiguous = biased, true
		r--
	}
	if l <= 0 && r >= samp.N+1 {
		// The normal approximation has infinite support, but
		// the quantile certainly lies in (-inf, inf).
		res.Confidence, res.Ambiguous = 1, false
	}
	return l, r
}

// MedianCI returns the median of xs and a distribution-free
// confidence interval around it at the given confidence level. It
// returns ErrInsufficientData if xs is empty.
func MedianCI(xs []float64, confidence float64) (median, lo, hi float64, err error) {
	if len(xs) == 0 {
		return nan, nan, nan, ErrInsufficientData
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	lo, hi = QuantileCI(n, 0.5, confidence).Bounds(sorted)
	return median, lo, hi, nil
}
