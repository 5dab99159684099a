// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aclements/insurancecost/analysis"
	"github.com/aclements/insurancecost/stats"
)

func printSurvey(w io.Writer, sv *analysis.Survey, confidence float64) {
	fmt.Fprintf(w, "The average age of patients in the dataset is %v with a standard deviation of %v\n", sv.Age.Mean, sv.Age.StdDev)

	for _, c := range sv.Comparisons {
		fmt.Fprintf(w, "\nLet's see how %s affects the cost of insurance:\n", c.Topic)
		for _, s := range []analysis.Summary{c.Base, c.Other} {
			printCharges(w, s, confidence)
		}
		fmt.Fprintf(w, "On average, %s pay $%v more than %s", c.Other.Name, c.Increase, c.Base.Name)
		fmt.Fprintf(w, " (Mann-Whitney U=%v, p=%.3g)\n", c.UTest.U, c.UTest.P)
	}

	fmt.Fprintln(w, "\nNon-smoker charges by region:")
	for _, s := range sv.Regions {
		printCharges(w, s, confidence)
	}
	fmt.Fprintln(w)
}

func printCharges(w io.Writer, s analysis.Summary, confidence float64) {
	fmt.Fprintf(w, "  %s (N %d): mean $%v, standard deviation $%v, median $%.2f (%g%% CI %s)\n",
		s.Name, s.N, s.Mean, s.StdDev, s.Median, confidence*100, interval(s.MedianLo, s.MedianHi))
}

// interval formats a confidence interval. Groups too small to bound
// the median at the requested confidence have infinite bounds.
func interval(lo, hi float64) string {
	if math.IsInf(lo, 0) && math.IsInf(hi, 0) {
		return "unbounded"
	}
	bound := func(x float64) string {
		if math.IsInf(x, 0) {
			return "unbounded"
		}
		return fmt.Sprintf("$%.2f", x)
	}
	return bound(lo) + " to " + bound(hi)
}

func printDecomposition(w io.Writer, dc *analysis.Decomposition) {
	fmt.Fprintln(w, "There seems to be a minimum insurance cost that varies smoothly with age.")
	fmt.Fprintf(w, "Fitting the %d per-age minima, the base insurance cost is\n  cost = %s\n\n",
		dc.Age.Envelope.Len(), dc.Age.Fit.Format("age", 2))

	fmt.Fprintln(w, "After removing the age term, the lowest charges increase with the number of children.")
	fmt.Fprintf(w, "The additional cost from children is\n  cost = %s\n\n", dc.Children.Fit.Format("children", 2))

	fmt.Fprintln(w, "After removing the age and children terms, non-smokers form a flat band")
	fmt.Fprintf(w, "(mean $%v, standard deviation $%v) and smokers form two sloped bands\n", dc.NonSmokers.Mean, dc.NonSmokers.StdDev)
	fmt.Fprintf(w, "with a jump at BMI %v. The extra cost a smoker incurs is\n", dc.Options.BMIThreshold)
	fmt.Fprintf(w, "  BMI <= %v: cost = %s (%d records below $%v)\n",
		dc.Options.BMIThreshold, dc.LeanSmokers.Fit.Format("bmi", 2), len(dc.LeanSmokers.Xs), dc.Options.LeanCutoff)
	fmt.Fprintf(w, "  BMI >  %v: cost = %s (%d records below $%v)\n\n",
		dc.Options.BMIThreshold, dc.ObeseSmokers.Fit.Format("bmi", 2), len(dc.ObeseSmokers.Xs), dc.Options.ObeseCutoff)
}

func printFit(w io.Writer, f analysis.Formula, which string, fit *stats.ChiSquaredResult) {
	terms := []string{f.Age.Format("age", 2), f.Children.Format("children", 2)}
	fmt.Fprintf(w, "Predicted charges (%s coefficients):\n  %s\n", which, strings.Join(terms, " + "))
	fmt.Fprintf(w, "  + smokers: %s if BMI <= %v, else %s\n", f.LeanSmoker.Format("bmi", 2), f.BMIThreshold, f.ObeseSmoker.Format("bmi", 2))
	fmt.Fprintf(w, "The chi-squared value is %.6g\n", fit.ChiSquared)
	fmt.Fprintf(w, "The chi-squared value per degree-of-freedom is %.6g (%d degrees of freedom, p=%.3g)\n", fit.PerDoF, fit.DoF, fit.P)
}
