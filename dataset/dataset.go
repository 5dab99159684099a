// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds the insurance records under analysis.
//
// A Dataset is an ordered sequence of Records together with the set
// of fields it exposes. Derived datasets (selections, copies with
// adjusted charges) are always new values; nothing in this package
// mutates a Dataset after it is built.
package dataset // import "github.com/aclements/insurancecost/dataset"

import (
	"fmt"

	"github.com/aclements/insurancecost/query"
)

// A Dataset is an ordered collection of Records.
type Dataset struct {
	fields  []Field
	records []Record
}

// New returns a Dataset exposing all fields of a copy of records.
func New(records []Record) *Dataset {
	return &Dataset{fields: AllFields(), records: append([]Record(nil), records...)}
}

// Len returns the number of records in d.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Fields returns the fields d exposes.
func (d *Dataset) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Has reports whether d exposes field f.
func (d *Dataset) Has(f Field) bool {
	for _, g := range d.fields {
		if g == f {
			return true
		}
	}
	return false
}

// Record returns the i'th record of d.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns a copy of d's records in order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Floats projects numeric field f to a column.
func (d *Dataset) Floats(f Field) ([]float64, error) {
	if !d.Has(f) || !f.Numeric() {
		return nil, fmt.Errorf("dataset: no numeric field %s", f)
	}
	xs := make([]float64, len(d.records))
	for i, r := range d.records {
		xs[i], _ = r.Float(f)
	}
	return xs, nil
}

// Strings projects categorical field f to a column.
func (d *Dataset) Strings(f Field) ([]string, error) {
	if !d.Has(f) || f.Numeric() {
		return nil, fmt.Errorf("dataset: no categorical field %s", f)
	}
	ss := make([]string, len(d.records))
	for i, r := range d.records {
		ss[i], _ = r.Text(f)
	}
	return ss, nil
}

// Copy returns an independent copy of d.
func (d *Dataset) Copy() *Dataset {
	return &Dataset{fields: d.Fields(), records: d.Records()}
}

// SubtractCharges returns a copy of d in which every record's charge
// is reduced by model(record). d is unchanged.
func (d *Dataset) SubtractCharges(model func(Record) float64) *Dataset {
	out := d.Copy()
	for i := range out.records {
		out.records[i].Charges -= model(out.records[i])
	}
	return out
}

// Where returns the records of d satisfying predicate, exposing all
// of d's fields. See Select.
func (d *Dataset) Where(predicate string) (*Dataset, error) {
	return Select(d, names(d.fields), predicate)
}

// Select returns the records of d that satisfy predicate, in their
// original order, as a Dataset exposing only fields.
//
// fields must be non-empty and the predicate may refer only to
// fields present in d; otherwise Select returns a
// *query.SelectionError. An empty d yields an empty result.
func Select(d *Dataset, fields []string, predicate string) (*Dataset, error) {
	if len(fields) == 0 {
		return nil, &query.SelectionError{Expr: predicate, Pos: -1, Msg: "no fields selected"}
	}
	out := &Dataset{}
	for _, name := range fields {
		f, ok := ParseField(name)
		if !ok || !d.Has(f) {
			return nil, &query.SelectionError{Expr: predicate, Pos: -1, Msg: fmt.Sprintf("unknown field %q selected", name)}
		}
		if !out.Has(f) {
			out.fields = append(out.fields, f)
		}
	}

	expr, err := query.Parse(predicate)
	if err != nil {
		return nil, err
	}
	for _, name := range expr.Fields() {
		if f, ok := ParseField(name); !ok || !d.Has(f) {
			return nil, &query.SelectionError{Expr: predicate, Pos: -1, Msg: fmt.Sprintf("unknown field %q", name)}
		}
	}

	for _, r := range d.records {
		ok, err := expr.Eval(recordEnv{r})
		if err != nil {
			return nil, err
		}
		if ok {
			out.records = append(out.records, r)
		}
	}
	return out, nil
}

// recordEnv binds a record's fields for predicate evaluation.
type recordEnv struct {
	r Record
}

func (e recordEnv) Lookup(name string) (query.Value, bool) {
	f, ok := ParseField(name)
	if !ok {
		return query.Value{}, false
	}
	return e.r.Value(f), true
}

func names(fs []Field) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return names
}
