// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"sort"

	"github.com/aclements/insurancecost/stats"
)

// A Point is one (x, y) pair of a chart series.
type Point struct {
	X, Y float64
}

// A Series is a named sequence of points.
type Series struct {
	Name   string
	Points []Point
}

// A Chart is a scatter plot with fitted curves overlaid. Rendering
// it is up to a Plotter.
type Chart struct {
	// Name is a short identifier suitable for a file name.
	Name string

	Title, XLabel, YLabel string

	Scatter []Series
	Curves  []Series
}

// A Plotter presents charts.
type Plotter interface {
	Plot(Chart) error
}

// scatter pairs xs and ys into a series.
func scatter(name string, xs, ys []float64) Series {
	s := Series{Name: name, Points: make([]Point, len(xs))}
	for i := range xs {
		s.Points[i] = Point{xs[i], ys[i]}
	}
	return s
}

// curve evaluates p at the sorted distinct values of xs.
func curve(name string, p stats.Poly, xs []float64) Series {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s := Series{Name: name}
	for i, x := range sorted {
		if i > 0 && x == sorted[i-1] {
			continue
		}
		s.Points = append(s.Points, Point{x, p.Eval(x)})
	}
	return s
}
