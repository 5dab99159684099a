// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"strings"
)

// An Expr is a parsed predicate.
type Expr struct {
	src    string
	root   node
	fields []string
}

// Fields returns the distinct field names e refers to, in order of
// first appearance.
func (e *Expr) Fields() []string {
	return append([]string(nil), e.fields...)
}

// String returns e fully parenthesized.
func (e *Expr) String() string {
	var b strings.Builder
	e.root.format(&b)
	return b.String()
}

// Eval reports whether the record bound by env satisfies e. It
// returns a *SelectionError if env lacks a field e refers to or if
// an ordering comparison mixes strings and numbers.
func (e *Expr) Eval(env Env) (bool, error) {
	return e.root.eval(env, e)
}

func (e *Expr) errorf(pos int, format string, args ...any) error {
	return &SelectionError{Expr: e.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

type node interface {
	eval(env Env, e *Expr) (bool, error)
	format(b *strings.Builder)
}

type constant bool

func (c constant) eval(Env, *Expr) (bool, error) { return bool(c), nil }

func (c constant) format(b *strings.Builder) {
	fmt.Fprint(b, bool(c))
}

type negation struct {
	x node
}

func (n *negation) eval(env Env, e *Expr) (bool, error) {
	v, err := n.x.eval(env, e)
	return !v, err
}

func (n *negation) format(b *strings.Builder) {
	b.WriteString("(not ")
	n.x.format(b)
	b.WriteString(")")
}

// logical is a short-circuiting "and" or "or".
type logical struct {
	op   string
	x, y node
}

func (l *logical) eval(env Env, e *Expr) (bool, error) {
	v, err := l.x.eval(env, e)
	if err != nil {
		return false, err
	}
	if v == (l.op == "or") {
		return v, nil
	}
	return l.y.eval(env, e)
}

func (l *logical) format(b *strings.Builder) {
	b.WriteString("(")
	l.x.format(b)
	b.WriteString(" " + l.op + " ")
	l.y.format(b)
	b.WriteString(")")
}

type operand struct {
	field string // empty for literals
	lit   Value
	pos   int
}

func (o operand) value(env Env, e *Expr) (Value, error) {
	if o.field == "" {
		return o.lit, nil
	}
	v, ok := env.Lookup(o.field)
	if !ok {
		return Value{}, e.errorf(o.pos, "unknown field %q", o.field)
	}
	return v, nil
}

func (o operand) String() string {
	if o.field != "" {
		return o.field
	}
	return o.lit.String()
}

type comparison struct {
	op   string
	pos  int
	x, y operand
}

func (c *comparison) eval(env Env, e *Expr) (bool, error) {
	x, err := c.x.value(env, e)
	if err != nil {
		return false, err
	}
	y, err := c.y.value(env, e)
	if err != nil {
		return false, err
	}
	cmp, ok := compare(x, y)
	if !ok {
		switch c.op {
		case "==":
			return false, nil
		case "!=":
			return true, nil
		}
		return false, e.errorf(c.pos, "cannot compare %s with %s using %s", x.Kind(), y.Kind(), c.op)
	}
	switch c.op {
	case "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	panic("unknown comparison operator " + c.op)
}

func (c *comparison) format(b *strings.Builder) {
	fmt.Fprintf(b, "%s %s %s", c.x, c.op, c.y)
}
