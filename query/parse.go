// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "fmt"

// Parse parses a predicate. The grammar is
//
//	expr    = andExpr { "or" andExpr }
//	andExpr = unary { "and" unary }
//	unary   = "not" unary | primary
//	primary = "(" expr ")" | "true" | "false" | operand op operand
//	op      = "==" | "!=" | "<" | "<=" | ">" | ">="
//	operand = field | number | 'string' | "string"
//
// "True" and "False" are accepted as synonyms for true and false.
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t.pos, "unexpected %s after expression", describe(t))
	}
	return &Expr{src: src, root: root, fields: p.fields}, nil
}

// MustParse is like Parse but panics on error. It is for predicates
// fixed in the program text.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

var keywords = map[string]bool{
	"and": true, "or": true, "not": true,
	"true": true, "false": true, "True": true, "False": true,
}

type parser struct {
	src    string
	toks   []token
	i      int
	fields []string
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isKeyword(word string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == word
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &SelectionError{Expr: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (node, error) {
	x, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.next()
		y, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		x = &logical{op: "or", x: x, y: y}
	}
	return x, nil
}

func (p *parser) parseAnd() (node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.next()
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = &logical{op: "and", x: x, y: y}
	}
	return x, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.isKeyword("not") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &negation{x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.peek()
	switch {
	case t.kind == tokLParen:
		p.next()
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if t := p.next(); t.kind != tokRParen {
			return nil, p.errorf(t.pos, "expected ')', found %s", describe(t))
		}
		return x, nil
	case t.kind == tokIdent && (t.text == "true" || t.text == "True"):
		p.next()
		return constant(true), nil
	case t.kind == tokIdent && (t.text == "false" || t.text == "False"):
		p.next()
		return constant(false), nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	x, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op := p.next()
	if op.kind != tokOp {
		return nil, p.errorf(op.pos, "expected comparison operator, found %s", describe(op))
	}
	y, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &comparison{op: op.text, pos: op.pos, x: x, y: y}, nil
}

func (p *parser) parseOperand() (operand, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		if keywords[t.text] {
			return operand{}, p.errorf(t.pos, "expected field or literal, found keyword %q", t.text)
		}
		p.addField(t.text)
		return operand{field: t.text, pos: t.pos}, nil
	case tokNumber:
		return operand{lit: Number(t.num), pos: t.pos}, nil
	case tokString:
		return operand{lit: String(t.text), pos: t.pos}, nil
	}
	return operand{}, p.errorf(t.pos, "expected field or literal, found %s", describe(t))
}

func (p *parser) addField(name string) {
	for _, f := range p.fields {
		if f == name {
			return
		}
	}
	p.fields = append(p.fields, name)
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of expression"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}
