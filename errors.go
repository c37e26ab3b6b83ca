// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import "fmt"

// A GrammarError reports static misuse of a grammar description,
// detected while the expression graph is built.
type GrammarError struct {
	Msg string
}

func (err *GrammarError) Error() string { return err.Msg }

func grammarErrorf(format string, args ...any) *GrammarError {
	return &GrammarError{Msg: fmt.Sprintf(format, args...)}
}

// A SemanticError reports a failure during semantic analysis.
// Rewriting actions return it, or wrap it, to abort an ASG build.
type SemanticError struct {
	Msg string
}

func (err *SemanticError) Error() string { return err.Msg }

func semanticErrorf(format string, args ...any) *SemanticError {
	return &SemanticError{Msg: fmt.Sprintf(format, args...)}
}

// A NoMatch reports that the input did not match the grammar.
// During a parse it is the value threaded through match attempts to
// drive backtracking; only the final, unrecovered NoMatch is surfaced
// to the caller. Its Position is the furthest byte offset reached by
// any alternative, and Expected is the label of the deepest enclosing
// rule that began its match at that offset.
type NoMatch struct {
	// Expected describes what was sought at the failure position.
	Expected string

	// Position is the byte offset into the input of the failure.
	Position int

	parser *Parser

	// up is true while the failure unwinds through expressions that
	// consumed no input at their start position. Enclosing rules rewrite
	// Expected to their own name while it holds; it is cleared as soon
	// as the engine descends into a new attempt.
	up bool
}

func (err *NoMatch) Error() string {
	line, col := err.parser.PosToLineCol(err.Position)
	return fmt.Sprintf("expected %s at %d:%d", err.Expected, line, col)
}
