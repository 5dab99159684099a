// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/insurancecost/dataset"
	"github.com/aclements/insurancecost/stats"
)

// Planted model: every charge is exactly the sum of these terms.
var (
	plantedAge      = stats.Poly{3, 20, 100}
	plantedChildren = stats.Poly{500, 0}
	plantedLean     = stats.Poly{400, 2000}
	plantedObese    = stats.Poly{450, 15000}
)

func planted(age float64, sex string, bmi float64, children int, smoker, region string) dataset.Record {
	r := dataset.Record{Age: age, Sex: sex, BMI: bmi, Children: children, Smoker: smoker, Region: region}
	r.Charges = plantedAge.Eval(age) + plantedChildren.Eval(float64(children))
	if r.IsSmoker() {
		if bmi <= 30 {
			r.Charges += plantedLean.Eval(bmi)
		} else {
			r.Charges += plantedObese.Eval(bmi)
		}
	}
	return r
}

// plantedDataset is the smallest dataset from which every stage can
// recover its planted coefficients exactly: non-smokers without
// children set the age floor, non-smokers with children set the
// children floor, and two smokers sit on each side of the BMI
// threshold.
func plantedDataset() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		planted(20, "male", 20, 0, "no", "north"),
		planted(30, "female", 24, 0, "no", "south"),
		planted(40, "male", 28, 0, "no", "north"),
		planted(50, "female", 31, 0, "no", "south"),
		planted(30, "male", 22, 1, "no", "south"),
		planted(40, "female", 35, 2, "no", "north"),
		planted(20, "female", 22, 0, "yes", "north"),
		planted(30, "male", 26, 0, "yes", "south"),
		planted(40, "female", 32, 1, "yes", "north"),
		planted(50, "male", 36, 2, "yes", "south"),
	})
}

func assertPoly(t *testing.T, want, got stats.Poly) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "coefficient %d of %v", i, got)
	}
}

func TestMinimaBy(t *testing.T) {
	d := dataset.New([]dataset.Record{
		{Age: 20, Children: 0, Charges: 300},
		{Age: 20, Children: 1, Charges: 100},
		{Age: 30, Children: 1, Charges: 500},
		{Age: 20, Children: 2, Charges: 200},
	})
	env, err := MinimaBy(d, dataset.Age)
	require.NoError(t, err)
	keys, minima := env.Points()
	assert.Equal(t, []float64{20, 30}, keys)
	assert.Equal(t, []float64{100, 500}, minima)

	env, err = MinimaBy(d, dataset.Children)
	require.NoError(t, err)
	keys, minima = env.Points()
	assert.Equal(t, []float64{0, 1, 2}, keys)
	assert.Equal(t, []float64{300, 100, 200}, minima)

	_, err = MinimaBy(d, dataset.Region)
	assert.Error(t, err)
}

func TestEnvelopeAdd(t *testing.T) {
	env := NewEnvelope(dataset.Age)
	env.Add(40, 1000)
	env.Add(40, 1500) // higher charge at an existing key
	env.Add(40, 1000)
	m, ok := env.Min(40)
	require.True(t, ok)
	assert.Equal(t, 1000.0, m)
	assert.Equal(t, 1, env.Len())

	env.Add(40, 999)
	m, _ = env.Min(40)
	assert.Equal(t, 999.0, m)

	_, ok = env.Min(41)
	assert.False(t, ok)
}

func TestDecompose(t *testing.T) {
	d := plantedDataset()
	before := d.Records()

	dc, err := Decompose(d, DefaultOptions())
	require.NoError(t, err)

	assertPoly(t, plantedAge, dc.Age.Fit)
	assertPoly(t, plantedChildren, dc.Children.Fit)
	assertPoly(t, plantedLean, dc.LeanSmokers.Fit)
	assertPoly(t, plantedObese, dc.ObeseSmokers.Fit)
	assert.Equal(t, 4, dc.Age.Envelope.Len())
	assert.Equal(t, 3, dc.Children.Envelope.Len())
	assert.Len(t, dc.LeanSmokers.Xs, 2)
	assert.Len(t, dc.ObeseSmokers.Xs, 2)

	for i := 0; i < dc.Residual.Len(); i++ {
		assert.InDelta(t, 0, dc.Residual.Record(i).Charges, 1e-6, "record %d", i)
	}
	assert.Equal(t, 6, dc.NonSmokers.N)
	assert.Equal(t, 0.0, dc.NonSmokers.Mean)
	assert.Equal(t, 0.0, dc.NonSmokers.StdDev)

	// Every stage works on its own copy.
	assert.Equal(t, before, d.Records())
	r := d.Record(4) // non-smoker, age 30, one child
	assert.InDelta(t, r.Charges-plantedAge.Eval(30), dc.AgeAdjusted.Record(4).Charges, 1e-6)
	assert.InDelta(t, 0, dc.ChildAdjusted.Record(4).Charges, 1e-6)
}

func TestDecomposeOutlierCutoff(t *testing.T) {
	records := plantedDataset().Records()
	// A lean smoker far above the band would drag the fit.
	outlier := planted(50, "male", 24, 0, "yes", "north")
	outlier.Charges += 20000
	d := dataset.New(append(records, outlier))

	dc, err := Decompose(d, DefaultOptions())
	require.NoError(t, err)
	assertPoly(t, plantedLean, dc.LeanSmokers.Fit)
	assert.Len(t, dc.LeanSmokers.Xs, 2)

	// Without the cutoff the outlier makes three points that no
	// longer lie on a line.
	opts := DefaultOptions()
	opts.LeanCutoff = 1e9
	dc, err = Decompose(d, opts)
	require.NoError(t, err)
	assert.Len(t, dc.LeanSmokers.Xs, 3)
	assert.NotEqual(t, plantedLean[1], stats.Round(dc.LeanSmokers.Fit[1], 6))
}

func TestDecomposeInsufficient(t *testing.T) {
	// Only two distinct ages cannot determine a quadratic.
	d := dataset.New([]dataset.Record{
		planted(20, "male", 20, 0, "no", "north"),
		planted(30, "male", 20, 1, "no", "north"),
		planted(30, "male", 20, 2, "no", "north"),
	})
	_, err := Decompose(d, DefaultOptions())
	assert.ErrorIs(t, err, stats.ErrInsufficientData)

	// No smokers above the threshold.
	records := plantedDataset().Records()
	var lean []dataset.Record
	for _, r := range records {
		if !r.IsSmoker() || r.BMI <= 30 {
			lean = append(lean, r)
		}
	}
	_, err = Decompose(dataset.New(lean), DefaultOptions())
	assert.ErrorIs(t, err, stats.ErrInsufficientData)
	assert.Contains(t, err.Error(), "BMI > 30")
}

func TestDecomposeNoNonSmokers(t *testing.T) {
	records := plantedDataset().Records()
	for i := range records {
		records[i].Smoker = "yes"
	}
	dc, err := Decompose(dataset.New(records), DefaultOptions())
	assert.Nil(t, dc)
	assert.ErrorIs(t, err, stats.ErrDivisionByZero)
	assert.Contains(t, err.Error(), "non-smokers")
}

func TestGoodnessOfFit(t *testing.T) {
	d := plantedDataset()
	dc, err := Decompose(d, DefaultOptions())
	require.NoError(t, err)

	f := dc.Formula()
	assert.Equal(t, 9, f.Params())
	for _, r := range d.Records() {
		assert.InDelta(t, r.Charges, f.Predict(r), 1e-6)
	}

	res, err := GoodnessOfFit(d, f)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.ChiSquared, 1e-9)
	assert.Equal(t, 1, res.DoF)
	assert.InDelta(t, 1, res.P, 1e-6)

	// Too few records for nine parameters.
	_, err = GoodnessOfFit(dataset.New(d.Records()[:9]), f)
	assert.ErrorIs(t, err, stats.ErrInsufficientData)
}

func TestGoodnessOfFitZeroExpected(t *testing.T) {
	f := Formula{
		Age:          stats.Poly{0},
		Children:     stats.Poly{0},
		LeanSmoker:   stats.Poly{0},
		ObeseSmoker:  stats.Poly{0},
		BMIThreshold: 30,
	}
	d := dataset.New([]dataset.Record{{Age: 20, BMI: 20, Smoker: "no", Charges: 1}, {Age: 20, BMI: 20, Smoker: "no", Charges: 2}, {Age: 20, BMI: 20, Smoker: "no", Charges: 3}, {Age: 20, BMI: 20, Smoker: "no", Charges: 4}, {Age: 20, BMI: 20, Smoker: "no", Charges: 5}})
	_, err := GoodnessOfFit(d, f)
	assert.ErrorIs(t, err, stats.ErrDivisionByZero)
}

func TestLiteralFormula(t *testing.T) {
	f := LiteralFormula()
	assert.Equal(t, 9, f.Params())
	for _, test := range []struct {
		r    dataset.Record
		want float64
	}{
		{dataset.Record{Age: 30, BMI: 25, Children: 1, Smoker: "no"}, 3602.26},
		{dataset.Record{Age: 30, BMI: 25, Children: 0, Smoker: "yes"}, 17345.53},
		{dataset.Record{Age: 30, BMI: 30, Children: 0, Smoker: "yes"}, 19671.28},
		{dataset.Record{Age: 30, BMI: 35, Children: 0, Smoker: "yes"}, 37327.18},
	} {
		assert.InDelta(t, test.want, f.Predict(test.r), 1e-6, "%+v", test.r)
	}
}

func TestCharts(t *testing.T) {
	d := plantedDataset()
	dc, err := Decompose(d, DefaultOptions())
	require.NoError(t, err)

	charts := dc.Charts(d)
	require.Len(t, charts, 3)

	age := charts[0]
	assert.Equal(t, "age", age.Name)
	require.Len(t, age.Scatter, 2)
	assert.Len(t, age.Scatter[0].Points, d.Len())
	assert.Len(t, age.Scatter[1].Points, 4)
	require.Len(t, age.Curves, 1)
	assert.Equal(t, "3*age**2 + 20*age + 100", age.Curves[0].Name)
	// The curve runs through the sorted distinct ages.
	var xs []float64
	for _, p := range age.Curves[0].Points {
		xs = append(xs, p.X)
		assert.InDelta(t, plantedAge.Eval(p.X), p.Y, 1e-6)
	}
	assert.Equal(t, []float64{20, 30, 40, 50}, xs)

	bmi := charts[2]
	require.Len(t, bmi.Curves, 2)
	assert.Equal(t, Point{22, plantedLean.Eval(22)}, roundPoint(bmi.Curves[0].Points[0]))
	assert.Equal(t, 36.0, bmi.Curves[1].Points[1].X)
}

func TestSurvey(t *testing.T) {
	d := plantedDataset()
	sv, err := NewSurvey(d, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 10, sv.Age.N)
	assert.Equal(t, 35.0, sv.Age.Mean)

	require.Len(t, sv.Comparisons, 3)
	smoking := sv.Comparisons[0]
	assert.Equal(t, "smoking", smoking.Topic)
	assert.Equal(t, 6, smoking.Base.N)
	assert.Equal(t, 4, smoking.Other.N)
	assert.Equal(t, stats.Round(smoking.Other.Mean-smoking.Base.Mean, 2), smoking.Increase)
	assert.Greater(t, smoking.Increase, 0.0)
	require.NotNil(t, smoking.UTest)
	assert.True(t, smoking.UTest.P > 0 && smoking.UTest.P <= 1)

	sex := sv.Comparisons[1]
	assert.Equal(t, 3, sex.Base.N)
	assert.Equal(t, 3, sex.Other.N)

	bmi := sv.Comparisons[2]
	assert.Equal(t, 3, bmi.Base.N) // BMI 20, 24, 22
	assert.Equal(t, 3, bmi.Other.N)

	require.Len(t, sv.Regions, 2)
	assert.Equal(t, "north", sv.Regions[0].Name)
	assert.Equal(t, "south", sv.Regions[1].Name)
	assert.Equal(t, 3, sv.Regions[0].N)
}

func roundPoint(p Point) Point {
	return Point{stats.Round(p.X, 6), stats.Round(p.Y, 6)}
}
