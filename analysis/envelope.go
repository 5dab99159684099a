// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis decomposes insurance charges into additive age,
// children and smoker/BMI contributions, evaluates the resulting
// formula, and summarizes charges across subgroups.
package analysis // import "github.com/aclements/insurancecost/analysis"

import (
	"fmt"
	"sort"

	"github.com/aclements/insurancecost/dataset"
)

// An Envelope maps each distinct value of a grouping field to the
// smallest charge observed with that value. Across keys, the minima
// trace the floor of the charges as a function of the field.
type Envelope struct {
	Field dataset.Field
	min   map[float64]float64
}

// NewEnvelope returns an empty envelope keyed by f.
func NewEnvelope(f dataset.Field) *Envelope {
	return &Envelope{Field: f, min: make(map[float64]float64)}
}

// MinimaBy returns the minimum charge at each distinct value of the
// numeric field f in d.
func MinimaBy(d *dataset.Dataset, f dataset.Field) (*Envelope, error) {
	keys, err := d.Floats(f)
	if err != nil {
		return nil, fmt.Errorf("minima by %s: %w", f, err)
	}
	charges, err := d.Floats(dataset.Charges)
	if err != nil {
		return nil, fmt.Errorf("minima by %s: %w", f, err)
	}
	e := NewEnvelope(f)
	for i, k := range keys {
		e.Add(k, charges[i])
	}
	return e, nil
}

// Add records a charge at key. The first charge at a key sets its
// minimum; later charges replace it only if strictly smaller.
func (e *Envelope) Add(key, charge float64) {
	if m, ok := e.min[key]; !ok || charge < m {
		e.min[key] = charge
	}
}

// Min returns the minimum charge recorded at key.
func (e *Envelope) Min(key float64) (float64, bool) {
	m, ok := e.min[key]
	return m, ok
}

// Len returns the number of distinct keys.
func (e *Envelope) Len() int {
	return len(e.min)
}

// Points returns the envelope as parallel slices sorted by key.
func (e *Envelope) Points() (keys, minima []float64) {
	keys = make([]float64, 0, len(e.min))
	for k := range e.min {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	minima = make([]float64, len(keys))
	for i, k := range keys {
		minima[i] = e.min[k]
	}
	return keys, minima
}
