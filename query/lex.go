// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string // identifier, operator or unquoted string
	num  float64
	pos  int
}

// lex splits src into tokens, ending with a tokEOF token.
func lex(src string) ([]token, error) {
	var toks []token
	errorf := func(pos int, msg string) error {
		return &SelectionError{Expr: src, Pos: pos, Msg: msg}
	}

	for i := 0; i < len(src); {
		r, w := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += w

		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++

		case r == '=' || r == '!' || r == '<' || r == '>':
			op := src[i : i+1]
			if i+1 < len(src) && src[i+1] == '=' {
				op = src[i : i+2]
			}
			switch op {
			case "=":
				return nil, errorf(i, "unexpected '=' (use '==')")
			case "!":
				return nil, errorf(i, "unexpected '!' (use 'not' or '!=')")
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len(op)

		case r == '\'' || r == '"':
			end := i + 1
			for end < len(src) && rune(src[end]) != r {
				end++
			}
			if end == len(src) {
				return nil, errorf(i, "unterminated string")
			}
			toks = append(toks, token{kind: tokString, text: src[i+1 : end], pos: i})
			i = end + 1

		case isDigit(r) || r == '.' || r == '-' && i+1 < len(src) && (isDigit(rune(src[i+1])) || src[i+1] == '.'):
			end := i + 1
			for end < len(src) && isNumberByte(src[end], src[end-1]) {
				end++
			}
			x, err := strconv.ParseFloat(src[i:end], 64)
			if err != nil {
				return nil, errorf(i, "malformed number "+strconv.Quote(src[i:end]))
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:end], num: x, pos: i})
			i = end

		case r == '_' || unicode.IsLetter(r):
			end := i + w
			for end < len(src) {
				r, w := utf8.DecodeRuneInString(src[end:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				end += w
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:end], pos: i})
			i = end

		default:
			return nil, errorf(i, "unexpected character "+strconv.QuoteRune(r))
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isNumberByte reports whether c continues a numeric literal whose
// previous byte is prev. Signs are only allowed after an exponent.
func isNumberByte(c, prev byte) bool {
	switch {
	case isDigit(rune(c)), c == '.', c == 'e', c == 'E':
		return true
	case c == '+' || c == '-':
		return prev == 'e' || prev == 'E'
	}
	return false
}
