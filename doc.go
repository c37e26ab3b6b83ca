// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package arpeggio is a packrat parser interpreter for parsing expression
grammars (PEGs).

Grammars are written directly in Go as functions returning combinator
expressions; the function name becomes the rule name:

	func integer() any { return arpeggio.RegExMatch(`-?\d+`) }
	func list() any {
		return arpeggio.Sequence(
			"[", integer, arpeggio.ZeroOrMore(",", integer), "]",
			arpeggio.EOF())
	}

NewParser compiles such a description, resolving recursive rule
references, and the resulting Parser applies PEG semantics to input
strings: ordered choice, unlimited lookahead through backtracking, and
syntactic predicates, in linear time thanks to per-position rule
memoization. Parse produces a concrete parse tree of Terminal and
NonTerminal nodes, which ASG can rewrite into an abstract semantic
graph through user-supplied actions invoked in two passes.

Parse errors report the furthest input position reached by any
alternative, labeled with the most informative rule active there.
*/
package arpeggio
