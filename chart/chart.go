// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders analysis charts as images.
package chart // import "github.com/aclements/insurancecost/chart"

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aclements/insurancecost/analysis"
)

// PNG writes each chart to Dir/<name>.png.
type PNG struct {
	Dir string

	// Width and Height default to 6in by 4in.
	Width, Height vg.Length
}

func (p PNG) Plot(c analysis.Chart) error {
	pl, err := Build(c)
	if err != nil {
		return err
	}
	w, h := p.Width, p.Height
	if w == 0 {
		w = 6 * vg.Inch
	}
	if h == 0 {
		h = 4 * vg.Inch
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return err
	}
	return pl.Save(w, h, p.Path(c))
}

// Path returns the file c is written to.
func (p PNG) Path(c analysis.Chart) string {
	return filepath.Join(p.Dir, c.Name+".png")
}

// Discard is a Plotter that drops every chart.
var Discard analysis.Plotter = discard{}

type discard struct{}

func (discard) Plot(analysis.Chart) error { return nil }

// curveColor is the color of fitted curves.
var curveColor = color.RGBA{R: 220, A: 255}

// Build lays out c as a gonum plot: scatter series as point clouds,
// curves as lines, all named in the legend. Empty series are
// skipped.
func Build(c analysis.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range c.Scatter {
		if len(s.Points) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys(s))
		if err != nil {
			return nil, fmt.Errorf("chart %s: series %q: %w", c.Name, s.Name, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	for _, s := range c.Curves {
		if len(s.Points) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys(s))
		if err != nil {
			return nil, fmt.Errorf("chart %s: curve %q: %w", c.Name, s.Name, err)
		}
		l.LineStyle.Color = curveColor
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}
	return p, nil
}

func xys(s analysis.Series) plotter.XYs {
	pts := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		pts[i].X, pts[i].Y = pt.X, pt.Y
	}
	return pts
}
