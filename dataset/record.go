// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"

	"github.com/aclements/insurancecost/query"
)

// A Field identifies one attribute of a Record.
type Field int

const (
	Age Field = iota
	Sex
	BMI
	Children
	Smoker
	Region
	Charges

	numFields
)

var fieldNames = [numFields]string{"age", "sex", "bmi", "children", "smoker", "region", "charges"}

// AllFields returns every field in canonical column order.
func AllFields() []Field {
	fs := make([]Field, numFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}

// ParseField returns the field with the given column name.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Numeric reports whether values of f are numbers.
func (f Field) Numeric() bool {
	switch f {
	case Age, BMI, Children, Charges:
		return true
	}
	return false
}

// A Record is one insured individual.
type Record struct {
	Age      float64
	Sex      string
	BMI      float64
	Children int
	Smoker   string
	Region   string
	Charges  float64
}

// IsSmoker reports whether r is a smoker.
func (r Record) IsSmoker() bool {
	return r.Smoker == "yes"
}

// Float returns the value of numeric field f, with children
// converted to a real number.
func (r Record) Float(f Field) (float64, bool) {
	switch f {
	case Age:
		return r.Age, true
	case BMI:
		return r.BMI, true
	case Children:
		return float64(r.Children), true
	case Charges:
		return r.Charges, true
	}
	return 0, false
}

// Text returns the value of categorical field f.
func (r Record) Text(f Field) (string, bool) {
	switch f {
	case Sex:
		return r.Sex, true
	case Smoker:
		return r.Smoker, true
	case Region:
		return r.Region, true
	}
	return "", false
}

// Value returns the value of f as a predicate operand.
func (r Record) Value(f Field) query.Value {
	if x, ok := r.Float(f); ok {
		return query.Number(x)
	}
	s, _ := r.Text(f)
	return query.String(s)
}
