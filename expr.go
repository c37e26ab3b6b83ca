// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import (
	"regexp"
	"strings"
)

// An Expression is a node of the compiled expression graph.
// Expressions are built once by NewParser and are read-only during
// parsing; all per-parse state lives in the parse context, keyed by the
// expression's identity, so one compiled grammar never carries scratch
// state between parses.
type Expression interface {
	// match runs the variant-specific body at the context's cursor.
	// The uniform prelude and postlude — whitespace skipping,
	// memoization, rule wrapping and error relabeling — are applied
	// around it by context.parse.
	match(c *context) (any, *NoMatch)

	// String returns a grammar-like rendering of the expression.
	String() string

	base() *exprBase
}

// exprBase carries the attributes common to every expression node.
type exprBase struct {
	// rule is the rule name if this node is the root expression of a
	// named rule. A root node wraps its list results in a NonTerminal
	// tagged with rule.
	rule string
	root bool

	// id is the node's identity within the graph, assigned by the
	// builder. The per-parse memo table is keyed on it.
	id int

	// elements is the raw description supplied by the grammar author;
	// the builder resolves it into nodes and never reads it again.
	elements []any
	nodes    []Expression
	resolved bool
}

func (e *exprBase) base() *exprBase { return e }

// nodeType is the parse-tree node type produced by this expression:
// the rule name for rule roots, the empty string otherwise.
func (e *exprBase) nodeType() string {
	if e.root {
		return e.rule
	}
	return ""
}

// matchExpr marks terminal-matching expressions. Only these take part
// in comment interleaving when they fail.
type matchExpr interface {
	Expression
	matchesInput()
}

// A sequence matches its child expressions in the exact order they are
// given.
type sequence struct{ exprBase }

// Sequence returns an expression matching the given elements in order.
// Elements may be rules, strings, or other expressions.
func Sequence(elements ...any) Expression {
	return &sequence{exprBase{elements: elements}}
}

func (e *sequence) match(c *context) (any, *NoMatch) {
	var results []Node
	for _, n := range e.nodes {
		r, nm := c.parse(n)
		if nm != nil {
			return nil, nm
		}
		results = appendNodes(results, r)
	}
	return results, nil
}

// An orderedChoice matches the first of its child expressions that
// succeeds, trying them in the order they are given.
type orderedChoice struct{ exprBase }

// OrderedChoice returns an expression matching the first succeeding
// alternative among elements.
func OrderedChoice(elements ...any) Expression {
	return &orderedChoice{exprBase{elements: elements}}
}

func (e *orderedChoice) match(c *context) (any, *NoMatch) {
	pos := c.pos
	var last *NoMatch
	for _, n := range e.nodes {
		r, nm := c.parse(n)
		if nm == nil {
			return r, nil
		}
		last = nm
		c.pos = pos
	}
	// Fail with the furthest failure seen anywhere in the parse, so the
	// reported error never regresses to an earlier alternative.
	if c.nm != nil && !c.inComment {
		return nil, c.nm
	}
	return nil, last
}

// An optional matches its child zero or one time. It never fails.
type optional struct{ exprBase }

// Optional returns an expression matching elements zero or one time.
// Multiple elements form an implicit sequence.
func Optional(elements ...any) Expression {
	return &optional{exprBase{elements: elements}}
}

func (e *optional) match(c *context) (any, *NoMatch) {
	pos := c.pos
	r, nm := c.parse(e.nodes[0])
	if nm != nil {
		c.pos = pos
		return nil, nil
	}
	return r, nil
}

// A zeroOrMore greedily matches its child any number of times.
// It never fails and never backtracks into completed repetitions.
type zeroOrMore struct{ exprBase }

// ZeroOrMore returns an expression greedily matching elements any
// number of times. Multiple elements form an implicit sequence.
func ZeroOrMore(elements ...any) Expression {
	return &zeroOrMore{exprBase{elements: elements}}
}

func (e *zeroOrMore) match(c *context) (any, *NoMatch) {
	return c.repeat(e.nodes[0], nil)
}

// A oneOrMore is a zeroOrMore that propagates the failure of its first
// attempt.
type oneOrMore struct{ exprBase }

// OneOrMore returns an expression greedily matching elements one or
// more times. Multiple elements form an implicit sequence.
func OneOrMore(elements ...any) Expression {
	return &oneOrMore{exprBase{elements: elements}}
}

func (e *oneOrMore) match(c *context) (any, *NoMatch) {
	pos := c.pos
	r, nm := c.parse(e.nodes[0])
	if nm != nil {
		c.pos = pos
		return nil, nm
	}
	return c.repeat(e.nodes[0], appendNodes(nil, r))
}

// repeat matches child greedily until it fails or stops consuming
// input, restoring the cursor after the failed attempt.
func (c *context) repeat(child Expression, results []Node) (any, *NoMatch) {
	for {
		pos := c.pos
		r, nm := c.parse(child)
		if nm != nil {
			c.pos = pos
			return results, nil
		}
		results = appendNodes(results, r)
		if c.pos == pos {
			return results, nil
		}
	}
}

// An andPredicate succeeds iff its child matches, consuming no input.
type andPredicate struct{ exprBase }

// And returns a syntactic predicate that succeeds if elements match at
// the cursor, without consuming input.
func And(elements ...any) Expression {
	return &andPredicate{exprBase{elements: elements}}
}

func (e *andPredicate) match(c *context) (any, *NoMatch) {
	pos := c.pos
	_, nm := c.parse(e.nodes[0])
	c.pos = pos
	if nm != nil {
		return nil, nm
	}
	return nil, nil
}

// A notPredicate succeeds iff its child fails, consuming no input.
type notPredicate struct{ exprBase }

// Not returns a syntactic predicate that succeeds if elements do not
// match at the cursor, without consuming input.
func Not(elements ...any) Expression {
	return &notPredicate{exprBase{elements: elements}}
}

func (e *notPredicate) match(c *context) (any, *NoMatch) {
	pos := c.pos
	_, nm := c.parse(e.nodes[0])
	c.pos = pos
	if nm != nil {
		return nil, nil
	}
	return nil, c.fail(e.String(), pos)
}

// A strMatch matches a fixed literal string.
type strMatch struct {
	exprBase
	lit string
}

// StrMatch returns an expression matching the literal string s.
// Plain strings in a grammar description are shorthand for StrMatch.
func StrMatch(s string) Expression {
	return &strMatch{lit: s}
}

// Kwd returns a keyword terminal: a string match whose parse-tree node
// is always of type "keyword".
func Kwd(s string) Expression {
	return &strMatch{exprBase: exprBase{rule: "keyword", root: true}, lit: s}
}

func (e *strMatch) matchesInput() {}

func (e *strMatch) match(c *context) (any, *NoMatch) {
	pos := c.pos
	if !strings.HasPrefix(c.input[pos:], e.lit) {
		return nil, c.fail(e.lit, pos)
	}
	c.pos += len(e.lit)
	return &Terminal{Rule: e.nodeType(), Pos: pos, Value: e.lit}, nil
}

// A regexMatch matches a regular expression anchored at the cursor.
type regexMatch struct {
	exprBase
	pattern string
	re      *regexp.Regexp
}

// RegExMatch returns an expression matching pattern at the cursor.
// The pattern is anchored: it matches only input beginning exactly at
// the current position, and the cursor advances by the length of the
// match. It is compiled when the parser is built; compile errors
// surface there as GrammarErrors.
func RegExMatch(pattern string) Expression {
	return &regexMatch{pattern: pattern}
}

func (e *regexMatch) matchesInput() {}

func (e *regexMatch) compile() error {
	re, err := regexp.Compile(`\A(?:` + e.pattern + `)`)
	if err != nil {
		return grammarErrorf("invalid pattern %q: %v", e.pattern, err)
	}
	e.re = re
	return nil
}

func (e *regexMatch) match(c *context) (any, *NoMatch) {
	pos := c.pos
	loc := e.re.FindStringIndex(c.input[pos:])
	if loc == nil {
		return nil, c.fail(e.expected(), pos)
	}
	c.pos += loc[1]
	return &Terminal{Rule: e.nodeType(), Pos: pos, Value: c.input[pos : pos+loc[1]]}, nil
}

func (e *regexMatch) expected() string {
	if e.root {
		return e.rule
	}
	return e.String()
}

// An endOfFile succeeds iff the cursor is at the end of the input.
type endOfFile struct{ exprBase }

// EOF returns an expression that succeeds only at the end of the input.
func EOF() Expression {
	return &endOfFile{}
}

func (e *endOfFile) matchesInput() {}

func (e *endOfFile) match(c *context) (any, *NoMatch) {
	if c.pos == len(c.input) {
		return &Terminal{Rule: e.nodeType(), Pos: c.pos, Value: "EOF"}, nil
	}
	return nil, c.fail("EOF", c.pos)
}
