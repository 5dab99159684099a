// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// A Poly is a polynomial with real coefficients, ordered from the
// highest degree term down to the constant term.
type Poly []float64

// Eval returns p(x).
func (p Poly) Eval(x float64) float64 {
	y := 0.0
	for _, c := range p {
		y = y*x + c
	}
	return y
}

// EvalEach returns p(xs[i]) for each i.
func (p Poly) EvalEach(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = p.Eval(x)
	}
	return ys
}

// Format renders p in terms of the variable name v with coefficients
// rounded to the given number of digits, for example
// "2.92*age**2 + 35.15*age - 501.62". Terms whose rounded
// coefficient is zero are omitted.
func (p Poly) Format(v string, digits int) string {
	var b strings.Builder
	for i, c := range p {
		c = Round(c, digits)
		if c == 0 {
			continue
		}
		first := b.Len() == 0
		switch {
		case first && c < 0:
			b.WriteString("-")
		case c < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		b.WriteString(strconv.FormatFloat(math.Abs(c), 'f', -1, 64))
		switch pow := len(p) - 1 - i; pow {
		case 0:
		case 1:
			b.WriteString("*" + v)
		default:
			fmt.Fprintf(&b, "*%s**%d", v, pow)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func (p Poly) String() string {
	return p.Format("x", 6)
}

// PolyFit returns the degree-n polynomial that minimizes the squared
// error sum over the points (xs[i], ys[i]).
//
// The fit is under-determined unless there are at least degree+1
// distinct x values; in that case, or if xs and ys differ in length,
// PolyFit returns an error wrapping ErrInsufficientData.
func PolyFit(xs, ys []float64, degree int) (Poly, error) {
	if degree < 0 {
		return nil, fmt.Errorf("stats: negative polynomial degree %d", degree)
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values but %d y values", ErrInsufficientData, len(xs), len(ys))
	}
	cols := degree + 1
	if d := distinct(xs); d < cols {
		return nil, fmt.Errorf("%w: degree %d fit needs %d distinct x values, have %d", ErrInsufficientData, degree, cols, d)
	}

	// Build the Vandermonde matrix, highest power in column 0, and
	// normalize each column so powers of large x don't swamp the
	// constant term.
	a := mat.NewDense(len(xs), cols, nil)
	for i, x := range xs {
		v := 1.0
		for j := cols - 1; j >= 0; j-- {
			a.Set(i, j, v)
			v *= x
		}
	}
	scale := make([]float64, cols)
	for j := range scale {
		col := mat.Col(nil, j, a)
		scale[j] = floats.Norm(col, 2)
		if scale[j] == 0 {
			scale[j] = 1
		}
		floats.Scale(1/scale[j], col)
		a.SetCol(j, col)
	}

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, mat.NewVecDense(len(ys), append([]float64(nil), ys...))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	p := make(Poly, cols)
	for j := range p {
		p[j] = coef.AtVec(j) / scale[j]
	}
	return p, nil
}

// distinct returns the number of distinct values in xs.
func distinct(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}
