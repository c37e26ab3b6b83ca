// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import "strconv"

// String returns the string representation of a sequence:
// its sub-expressions separated by a single space, " ".
func (e *sequence) String() string { return joinExprs(e.nodes, " ") }

func (e *orderedChoice) String() string { return joinExprs(e.nodes, " / ") }

func (e *optional) String() string { return childString(&e.exprBase) + "?" }

func (e *zeroOrMore) String() string { return childString(&e.exprBase) + "*" }

func (e *oneOrMore) String() string { return childString(&e.exprBase) + "+" }

func (e *andPredicate) String() string { return "&" + childString(&e.exprBase) }

func (e *notPredicate) String() string { return "!" + childString(&e.exprBase) }

func (e *strMatch) String() string { return strconv.Quote(e.lit) }

func (e *regexMatch) String() string { return "RegExMatch(" + e.pattern + ")" }

func (e *endOfFile) String() string { return "EOF" }

func joinExprs(nodes []Expression, sep string) string {
	var s string
	for i, n := range nodes {
		if i > 0 {
			s += sep
		}
		s += n.String()
	}
	return s
}

func childString(e *exprBase) string {
	if len(e.nodes) == 0 {
		return "()"
	}
	return "(" + e.nodes[0].String() + ")"
}
