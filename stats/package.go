// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stats holds the numeric routines behind the insurance analysis:
// summary moments, least-squares polynomial fits, goodness of fit,
// and the rank and order-statistic tools used to compare groups.
package stats // import "github.com/aclements/insurancecost/stats"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

var (
	// ErrInsufficientData is returned when a computation needs
	// more (or more distinct) observations than it was given.
	ErrInsufficientData = errors.New("stats: insufficient data")

	// ErrDivisionByZero is returned when a statistic would divide
	// by zero, such as the mean of an empty sample or a
	// chi-squared term with a zero expected value.
	ErrDivisionByZero = errors.New("stats: division by zero")

	// ErrSamplesEqual is returned by rank tests when every value
	// in both samples is identical.
	ErrSamplesEqual = errors.New("stats: all samples are equal")
)
