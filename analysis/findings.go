// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"sort"

	"github.com/aclements/insurancecost/dataset"
	"github.com/aclements/insurancecost/stats"
)

// A Summary describes one sample of values.
type Summary struct {
	Name string
	N    int

	// Mean and StdDev are rounded to cents. StdDev is the
	// population standard deviation.
	Mean, StdDev float64

	// Median is the sample median and [MedianLo, MedianHi] a
	// distribution-free confidence interval for the population
	// median.
	Median, MedianLo, MedianHi float64
}

// Summarize describes xs. It fails if xs is empty.
func Summarize(name string, xs []float64, confidence float64) (Summary, error) {
	s := Summary{Name: name, N: len(xs)}
	var err error
	if s.Mean, s.StdDev, err = stats.MeanStdDev(xs); err != nil {
		return s, fmt.Errorf("%s: %w", name, err)
	}
	if s.Median, s.MedianLo, s.MedianHi, err = stats.MedianCI(xs, confidence); err != nil {
		return s, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// A Comparison contrasts the charges of two disjoint groups.
type Comparison struct {
	Topic       string
	Base, Other Summary

	// Increase is Other.Mean - Base.Mean, rounded to cents.
	Increase float64

	// UTest tests whether charges in the two groups come from
	// the same distribution.
	UTest *stats.MannWhitneyUTestResult
}

// A Subgroup is a named selection of records.
type Subgroup struct {
	Name      string
	Predicate string
}

// Compare summarizes the charges of base and other within d.
func Compare(topic string, d *dataset.Dataset, base, other Subgroup, confidence float64) (*Comparison, error) {
	bs, bx, err := describe(d, base, confidence)
	if err != nil {
		return nil, err
	}
	ot, ox, err := describe(d, other, confidence)
	if err != nil {
		return nil, err
	}
	u, err := stats.MannWhitneyUTest(bx, ox)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", topic, err)
	}
	return &Comparison{
		Topic:    topic,
		Base:     bs,
		Other:    ot,
		Increase: stats.Round(ot.Mean-bs.Mean, 2),
		UTest:    u,
	}, nil
}

func describe(d *dataset.Dataset, g Subgroup, confidence float64) (Summary, []float64, error) {
	sel, err := d.Where(g.Predicate)
	if err != nil {
		return Summary{}, nil, err
	}
	charges, err := sel.Floats(dataset.Charges)
	if err != nil {
		return Summary{}, nil, err
	}
	s, err := Summarize(g.Name, charges, confidence)
	return s, charges, err
}

// Comparisons are the subgroup contrasts computed by NewSurvey, each as
// (topic, base group, other group).
var Comparisons = []struct {
	Topic       string
	Base, Other Subgroup
}{
	{
		"smoking",
		Subgroup{"non-smokers", "smoker == 'no'"},
		Subgroup{"smokers", "smoker == 'yes'"},
	},
	{
		"sex",
		Subgroup{"male non-smokers", "sex == 'male' and smoker == 'no'"},
		Subgroup{"female non-smokers", "sex == 'female' and smoker == 'no'"},
	},
	{
		"BMI",
		Subgroup{"non-smokers with a BMI in the healthy range (18.5-24.9)", "bmi >= 18.5 and bmi <= 24.9 and smoker == 'no'"},
		Subgroup{"non-smokers with a BMI outside the healthy range", "(bmi < 18.5 or bmi > 24.9) and smoker == 'no'"},
	},
}

// A Survey is the descriptive part of the analysis.
type Survey struct {
	Age         Summary
	Comparisons []*Comparison

	// Regions summarizes non-smoker charges in each region,
	// sorted by region name.
	Regions []Summary
}

// NewSurvey computes the descriptive statistics of d.
func NewSurvey(d *dataset.Dataset, confidence float64) (*Survey, error) {
	ages, err := d.Floats(dataset.Age)
	if err != nil {
		return nil, err
	}
	sv := &Survey{}
	if sv.Age, err = Summarize("age", ages, confidence); err != nil {
		return nil, err
	}

	for _, c := range Comparisons {
		cmp, err := Compare(c.Topic, d, c.Base, c.Other, confidence)
		if err != nil {
			return nil, err
		}
		sv.Comparisons = append(sv.Comparisons, cmp)
	}

	regions, err := d.Strings(dataset.Region)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, r := range regions {
		if !seen[r] {
			seen[r] = true
			names = append(names, r)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		// Region names come from the data, so bind them with
		// a closure instead of quoting them into a predicate.
		var charges []float64
		for _, r := range d.Records() {
			if r.Region == name && !r.IsSmoker() {
				charges = append(charges, r.Charges)
			}
		}
		if len(charges) == 0 {
			continue
		}
		s, err := Summarize(name, charges, confidence)
		if err != nil {
			return nil, err
		}
		sv.Regions = append(sv.Regions, s)
	}
	return sv, nil
}
