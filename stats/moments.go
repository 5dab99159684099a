// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// MeanStdDev returns the mean and population standard deviation of
// xs, both rounded to two decimal places.
//
// The standard deviation is computed as sqrt(E[x²] - E[x]²). When
// the variance is zero, cancellation can leave the radicand slightly
// negative; it is clamped to 0.
//
// MeanStdDev returns ErrDivisionByZero if xs is empty.
func MeanStdDev(xs []float64) (mean, stddev float64, err error) {
	if len(xs) == 0 {
		return nan, nan, ErrDivisionByZero
	}
	n := float64(len(xs))
	mean = floats.Sum(xs) / n
	meanSq := floats.Dot(xs, xs) / n
	variance := math.Max(meanSq-mean*mean, 0)
	return Round(mean, 2), Round(math.Sqrt(variance), 2), nil
}

// Round rounds x to the given number of decimal digits, with halves
// rounded away from zero.
func Round(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return scalar.Round(x, digits)
}
