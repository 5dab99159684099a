// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquared returns Pearson's chi-squared statistic
//
//	Σ (observed[i] - expected[i])² / expected[i]
//
// It returns an error wrapping ErrDivisionByZero if any expected
// value is 0 and one wrapping ErrInsufficientData if the slices
// differ in length.
func ChiSquared(observed, expected []float64) (float64, error) {
	if len(observed) != len(expected) {
		return nan, fmt.Errorf("%w: %d observed but %d expected values", ErrInsufficientData, len(observed), len(expected))
	}
	for i, e := range expected {
		if e == 0 {
			return nan, fmt.Errorf("%w: expected value %d is 0", ErrDivisionByZero, i)
		}
	}
	return stat.ChiSquare(observed, expected), nil
}

// A ChiSquaredResult is a chi-squared statistic normalized by its
// degrees of freedom.
type ChiSquaredResult struct {
	// ChiSquared is the raw statistic.
	ChiSquared float64

	// DoF is the number of degrees of freedom: the number of
	// observations less the number of fitted parameters.
	DoF int

	// PerDoF is ChiSquared / DoF.
	PerDoF float64

	// P is the probability of a statistic at least this large
	// under a chi-squared distribution with DoF degrees of
	// freedom.
	P float64
}

// ChiSquaredTest computes the chi-squared statistic of observed
// against expected, where expected came from a model with params
// fitted parameters.
func ChiSquaredTest(observed, expected []float64, params int) (*ChiSquaredResult, error) {
	dof := len(observed) - params
	if dof <= 0 {
		return nil, fmt.Errorf("%w: %d observations leave no degrees of freedom for %d parameters", ErrInsufficientData, len(observed), params)
	}
	chi2, err := ChiSquared(observed, expected)
	if err != nil {
		return nil, err
	}
	p := nan
	if chi2 >= 0 {
		p = distuv.ChiSquared{K: float64(dof)}.Survival(chi2)
	}
	return &ChiSquaredResult{
		ChiSquared: chi2,
		DoF:        dof,
		PerDoF:     chi2 / float64(dof),
		P:          p,
	}, nil
}
