// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query parses and evaluates record selection predicates
// such as
//
//	smoker == 'yes' and (bmi < 18.5 or bmi > 24.9)
//
// Predicates are comparisons between field names and literals joined
// by and, or and not. They are parsed into an expression tree and
// evaluated against an Env that binds field names to values; nothing
// in a predicate is ever executed as code.
package query // import "github.com/aclements/insurancecost/query"

import "strconv"

// A Kind is the type of a Value.
type Kind int

const (
	NumberKind Kind = iota
	StringKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Value is a number or a string bound to a field or written as a
// literal in a predicate.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric Value.
func Number(x float64) Value {
	return Value{kind: NumberKind, num: x}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: StringKind, str: s}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) String() string {
	if v.kind == StringKind {
		return strconv.Quote(v.str)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// compare returns -1, 0 or 1 as a is less than, equal to or greater
// than b. ok is false if a and b are of different kinds.
func compare(a, b Value) (c int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case NumberKind:
		switch {
		case a.num < b.num:
			return -1, true
		case a.num > b.num:
			return 1, true
		}
		return 0, true
	default:
		switch {
		case a.str < b.str:
			return -1, true
		case a.str > b.str:
			return 1, true
		}
		return 0, true
	}
}

// An Env binds field names to values for one record.
type Env interface {
	Lookup(field string) (Value, bool)
}

// MapEnv is an Env backed by a map.
type MapEnv map[string]Value

func (m MapEnv) Lookup(field string) (Value, bool) {
	v, ok := m[field]
	return v, ok
}
