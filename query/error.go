// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "fmt"

// A SelectionError reports a malformed predicate, a predicate that
// refers to an unknown field, or a comparison that cannot be
// evaluated.
type SelectionError struct {
	// Expr is the predicate source.
	Expr string

	// Pos is the byte offset in Expr of the problem, or -1 if the
	// error is not tied to a position.
	Pos int

	Msg string
}

func (e *SelectionError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("selection %q: %s", e.Expr, e.Msg)
	}
	return fmt.Sprintf("selection %q: offset %d: %s", e.Expr, e.Pos, e.Msg)
}
