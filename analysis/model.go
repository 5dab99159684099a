// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"

	"github.com/aclements/insurancecost/dataset"
	"github.com/aclements/insurancecost/stats"
)

// A Formula predicts a record's charges as the sum of an age term,
// a children term and, for smokers, a BMI term that jumps at
// BMIThreshold.
type Formula struct {
	Age          stats.Poly
	Children     stats.Poly
	LeanSmoker   stats.Poly // smokers with BMI <= BMIThreshold
	ObeseSmoker  stats.Poly // smokers with BMI > BMIThreshold
	BMIThreshold float64
}

// LiteralFormula returns the formula published from the reference
// run, with coefficients rounded to cents.
func LiteralFormula() Formula {
	return Formula{
		Age:          stats.Poly{2.92, 35.15, -501.62},
		Children:     stats.Poly{591.27, -169.89},
		LeanSmoker:   stats.Poly{465.15, 2705.79},
		ObeseSmoker:  stats.Poly{451.08, 18528.39},
		BMIThreshold: 30,
	}
}

// Predict returns the charges f predicts for r.
func (f Formula) Predict(r dataset.Record) float64 {
	charges := f.Age.Eval(r.Age) + f.Children.Eval(float64(r.Children))
	if r.IsSmoker() {
		if r.BMI <= f.BMIThreshold {
			charges += f.LeanSmoker.Eval(r.BMI)
		} else {
			charges += f.ObeseSmoker.Eval(r.BMI)
		}
	}
	return charges
}

// Params returns the number of coefficients in f.
func (f Formula) Params() int {
	return len(f.Age) + len(f.Children) + len(f.LeanSmoker) + len(f.ObeseSmoker)
}

// GoodnessOfFit compares the charges of d with f's predictions.
func GoodnessOfFit(d *dataset.Dataset, f Formula) (*stats.ChiSquaredResult, error) {
	observed, err := d.Floats(dataset.Charges)
	if err != nil {
		return nil, err
	}
	expected := make([]float64, d.Len())
	for i := range expected {
		expected[i] = f.Predict(d.Record(i))
	}
	res, err := stats.ChiSquaredTest(observed, expected, f.Params())
	if err != nil {
		return nil, fmt.Errorf("goodness of fit: %w", err)
	}
	return res, nil
}
