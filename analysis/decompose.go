// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"strconv"

	"github.com/aclements/insurancecost/dataset"
	"github.com/aclements/insurancecost/stats"
)

// Options holds the constants of the smoker/BMI stage. They were
// chosen by inspecting one dataset's residual plot.
type Options struct {
	// BMIThreshold splits smokers into two independently fitted
	// groups: BMI <= BMIThreshold and BMI > BMIThreshold.
	BMIThreshold float64

	// LeanCutoff and ObeseCutoff exclude outliers from the fits of
	// the two smoker groups: only residual charges strictly below
	// the cutoff are fitted.
	LeanCutoff  float64
	ObeseCutoff float64

	// Confidence is the level of the median confidence interval
	// reported for the non-smoker baseline.
	Confidence float64
}

// DefaultOptions returns the constants read off the reference
// dataset.
func DefaultOptions() Options {
	return Options{
		BMIThreshold: 30,
		LeanCutoff:   18000,
		ObeseCutoff:  43000,
		Confidence:   0.95,
	}
}

// A Stage is one fitted factor of the decomposition.
type Stage struct {
	// Field is the independent variable of the fit.
	Field dataset.Field

	// Envelope is the minimum-charge envelope that was fitted, or
	// nil if the stage fitted individual records.
	Envelope *Envelope

	// Xs and Ys are the points passed to the fit.
	Xs, Ys []float64

	// Fit is the fitted polynomial.
	Fit stats.Poly
}

// fitStage fits a polynomial of the given degree to the points.
func fitStage(f dataset.Field, env *Envelope, xs, ys []float64, degree int) (Stage, error) {
	p, err := stats.PolyFit(xs, ys, degree)
	if err != nil {
		return Stage{}, err
	}
	return Stage{Field: f, Envelope: env, Xs: xs, Ys: ys, Fit: p}, nil
}

// A Decomposition splits charges into additive age, children and
// smoker/BMI terms, each fitted after subtracting the ones before.
type Decomposition struct {
	Options Options

	// Age is the quadratic a·age² + b·age + c fitted to the
	// per-age minimum charges.
	Age Stage

	// Children is the line d·children + e fitted to the
	// per-children minima of AgeAdjusted.
	Children Stage

	// LeanSmokers and ObeseSmokers are the lines f·bmi + g and
	// h·bmi + j fitted to the ChildAdjusted charges of smokers on
	// either side of Options.BMIThreshold.
	LeanSmokers, ObeseSmokers Stage

	// NonSmokers summarizes the ChildAdjusted charges of
	// non-smokers, which should sit near zero.
	NonSmokers Summary

	// AgeAdjusted is the input with the age term subtracted from
	// every record; ChildAdjusted additionally has the children
	// term subtracted; Residual has all three terms subtracted.
	AgeAdjusted, ChildAdjusted, Residual *dataset.Dataset
}

// Decompose runs the three stages on d. Each stage works on a fresh
// copy of the previous stage's data, so d is never modified.
//
// The smoker stage needs non-smokers as its baseline; without any it
// fails with an error wrapping stats.ErrDivisionByZero.
func Decompose(d *dataset.Dataset, opts Options) (*Decomposition, error) {
	dc := &Decomposition{Options: opts}

	// Stage 1: the charge floor as a function of age.
	env, err := MinimaBy(d, dataset.Age)
	if err != nil {
		return nil, err
	}
	xs, ys := env.Points()
	if dc.Age, err = fitStage(dataset.Age, env, xs, ys, 2); err != nil {
		return nil, fmt.Errorf("age stage: %w", err)
	}
	dc.AgeAdjusted = d.SubtractCharges(func(r dataset.Record) float64 {
		return dc.Age.Fit.Eval(r.Age)
	})

	// Stage 2: with age removed, the floor rises with children.
	env, err = MinimaBy(dc.AgeAdjusted, dataset.Children)
	if err != nil {
		return nil, err
	}
	xs, ys = env.Points()
	if dc.Children, err = fitStage(dataset.Children, env, xs, ys, 1); err != nil {
		return nil, fmt.Errorf("children stage: %w", err)
	}
	dc.ChildAdjusted = dc.AgeAdjusted.SubtractCharges(func(r dataset.Record) float64 {
		return dc.Children.Fit.Eval(float64(r.Children))
	})

	// Stage 3: non-smokers form a flat band; smokers form two
	// sloped bands with a jump at the BMI threshold.
	nonSmokers, err := dc.ChildAdjusted.Where("smoker == 'no'")
	if err != nil {
		return nil, err
	}
	charges, _ := nonSmokers.Floats(dataset.Charges)
	if dc.NonSmokers, err = Summarize("non-smokers", charges, opts.Confidence); err != nil {
		return nil, fmt.Errorf("smoker stage baseline: %w", err)
	}
	threshold := formatFloat(opts.BMIThreshold)
	if dc.LeanSmokers, err = dc.fitSmokers("bmi <= "+threshold, opts.LeanCutoff); err != nil {
		return nil, fmt.Errorf("smoker stage, BMI <= %s: %w", threshold, err)
	}
	if dc.ObeseSmokers, err = dc.fitSmokers("bmi > "+threshold, opts.ObeseCutoff); err != nil {
		return nil, fmt.Errorf("smoker stage, BMI > %s: %w", threshold, err)
	}
	dc.Residual = dc.ChildAdjusted.SubtractCharges(dc.smokerTerm)

	return dc, nil
}

// fitSmokers fits a line to the ChildAdjusted charges of smokers
// matching bmiPredicate with charges below cutoff.
func (dc *Decomposition) fitSmokers(bmiPredicate string, cutoff float64) (Stage, error) {
	group, err := dc.ChildAdjusted.Where(fmt.Sprintf("smoker == 'yes' and %s and charges < %s", bmiPredicate, formatFloat(cutoff)))
	if err != nil {
		return Stage{}, err
	}
	xs, _ := group.Floats(dataset.BMI)
	ys, _ := group.Floats(dataset.Charges)
	return fitStage(dataset.BMI, nil, xs, ys, 1)
}

// smokerTerm returns the stage 3 contribution to r's charges.
func (dc *Decomposition) smokerTerm(r dataset.Record) float64 {
	switch {
	case !r.IsSmoker():
		return 0
	case r.BMI <= dc.Options.BMIThreshold:
		return dc.LeanSmokers.Fit.Eval(r.BMI)
	default:
		return dc.ObeseSmokers.Fit.Eval(r.BMI)
	}
}

// Formula returns the predictive formula assembled from the fitted
// stages.
func (dc *Decomposition) Formula() Formula {
	return Formula{
		Age:          dc.Age.Fit,
		Children:     dc.Children.Fit,
		LeanSmoker:   dc.LeanSmokers.Fit,
		ObeseSmoker:  dc.ObeseSmokers.Fit,
		BMIThreshold: dc.Options.BMIThreshold,
	}
}

// Charts returns the scatter plots behind each stage with the fitted
// curves overlaid.
func (dc *Decomposition) Charts(d *dataset.Dataset) []Chart {
	col := func(d *dataset.Dataset, f dataset.Field) []float64 {
		xs, _ := d.Floats(f)
		return xs
	}

	ageKeys, ageMin := dc.Age.Envelope.Points()
	childKeys, childMin := dc.Children.Envelope.Points()
	return []Chart{
		{
			Name:   "age",
			Title:  "Charges versus age",
			XLabel: "age", YLabel: "charges",
			Scatter: []Series{
				scatter("records", col(d, dataset.Age), col(d, dataset.Charges)),
				scatter("minimum by age", ageKeys, ageMin),
			},
			Curves: []Series{curve(dc.Age.Fit.Format("age", 2), dc.Age.Fit, ageKeys)},
		},
		{
			Name:   "children",
			Title:  "Charges less age term versus children",
			XLabel: "children", YLabel: "charges",
			Scatter: []Series{
				scatter("records", col(dc.AgeAdjusted, dataset.Children), col(dc.AgeAdjusted, dataset.Charges)),
				scatter("minimum by children", childKeys, childMin),
			},
			Curves: []Series{curve(dc.Children.Fit.Format("children", 2), dc.Children.Fit, childKeys)},
		},
		{
			Name:   "bmi",
			Title:  "Charges less age and children terms versus BMI",
			XLabel: "bmi", YLabel: "charges",
			Scatter: []Series{
				scatter("records", col(dc.ChildAdjusted, dataset.BMI), col(dc.ChildAdjusted, dataset.Charges)),
			},
			Curves: []Series{
				curve(dc.LeanSmokers.Fit.Format("bmi", 2), dc.LeanSmokers.Fit, dc.LeanSmokers.Xs),
				curve(dc.ObeseSmokers.Fit.Format("bmi", 2), dc.ObeseSmokers.Fit, dc.ObeseSmokers.Xs),
			},
		},
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
