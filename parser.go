// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import (
	"strings"

	"github.com/go-logr/logr"
)

// DefaultWS is the set of whitespace characters skipped between match
// attempts unless the parser is configured otherwise.
const DefaultWS = "\t\n\r "

// A Parser holds a compiled expression graph and applies it to input
// strings. The graph is read-only after NewParser returns; per-parse
// state lives in a parse context, so a Parser may be reused for any
// number of sequential parses. A single Parser must not run concurrent
// parses.
type Parser struct {
	model    Expression
	comments Expression

	skipWS     bool
	ws         string
	reduceTree bool
	memoize    bool
	log        logr.Logger

	commentDef Rule

	// ctx and tree are the context and result of the last Parse,
	// consumed by ASG and PosToLineCol.
	ctx  *context
	tree Node
}

// An Option configures a Parser built by NewParser.
type Option func(*Parser)

// Comments installs a comment grammar, compiled like the language
// grammar. Comments may then appear wherever a terminal is matched.
func Comments(r Rule) Option {
	return func(p *Parser) { p.commentDef = r }
}

// NoSkipWS disables implicit whitespace skipping before match attempts.
func NoSkipWS() Option {
	return func(p *Parser) { p.skipWS = false }
}

// WSChars sets the characters treated as skippable whitespace.
func WSChars(ws string) Option {
	return func(p *Parser) { p.ws = ws }
}

// ReduceTree collapses rule results holding a single node to that node,
// discarding the rule's own non-terminal.
func ReduceTree() Option {
	return func(p *Parser) { p.reduceTree = true }
}

// NoMemoize disables the packrat result cache. Parses still produce
// identical trees, only slower; the option exists to cross-check the
// cache and to measure its effect. The cache holds successful matches
// only; failed attempts are re-run and keep updating the furthest
// failure.
func NoMemoize() Option {
	return func(p *Parser) { p.memoize = false }
}

// WithLogger directs the parser's trace output to log. Rule-level
// events are logged at V(1), individual match attempts at V(2).
// The default logger discards everything.
func WithLogger(log logr.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// A context is the mutable state of one parse: the input, the cursor,
// the memo table, the furthest failure, and the comment re-entry guard.
// Lifting this state out of the expression nodes keeps the compiled
// graph reentrant across sequential parses.
type context struct {
	parser *Parser
	input  string
	pos    int

	// nm is the furthest failure observed so far. Backtracking never
	// clears it; the error finally reported is the deepest one reached
	// by any alternative.
	nm *NoMatch

	// inComment guards against comment parses recursing into
	// themselves and keeps comment failures out of nm.
	inComment bool

	memo map[memoKey]memoEntry

	// lineEnds is the sorted index of newline offsets, built lazily by
	// PosToLineCol.
	lineEnds     []int
	haveLineEnds bool

	trace    bool
	attempts int
}

type memoKey struct {
	id  int
	pos int
}

type memoEntry struct {
	result any
	pos    int
}

// Parse applies the grammar to input and returns the parse tree.
// On failure the error is a *NoMatch whose Position is the furthest
// offset reached by any alternative and whose Expected names the most
// informative rule active at that offset.
func (p *Parser) Parse(input string) (Node, error) {
	c := &context{
		parser: p,
		input:  input,
		memo:   make(map[memoKey]memoEntry),
		trace:  p.log.V(2).Enabled(),
	}
	p.ctx = c
	p.tree = nil
	result, nm := c.parse(p.model)
	if nm != nil {
		p.log.V(1).Info("no match", "expected", nm.Expected, "pos", nm.Position)
		return nil, nm
	}
	if node, ok := result.(Node); ok {
		p.tree = node
	}
	p.log.V(1).Info("parsed", "end", c.pos)
	return p.tree, nil
}

// parse wraps every match attempt with the engine prelude and postlude:
// whitespace skipping, memo lookup, the descent marker for error
// relabeling, rule wrapping, memoization, and comment interleaving for
// failed terminals.
func (c *context) parse(e Expression) (any, *NoMatch) {
	p := c.parser
	if p.skipWS && !c.inComment {
		c.skipWhitespace()
	}
	b := e.base()
	cPos := c.pos
	if p.memoize {
		if m, ok := c.memo[memoKey{b.id, cPos}]; ok {
			c.pos = m.pos
			return m.result, nil
		}
	}
	// Descending into a new attempt: the current best failure is no
	// longer unwinding, so enclosing rules stop relabeling it.
	if c.nm != nil {
		c.nm.up = false
	}
	c.attempts++
	if c.trace {
		p.log.V(2).Info("attempt", "expr", e.String(), "pos", cPos)
	}
	result, nm := e.match(c)
	if nm != nil && p.comments != nil && !c.inComment {
		if _, ok := e.(matchExpr); ok {
			result, nm = c.matchWithComments(e, cPos, nm)
		}
	}
	if nm != nil {
		// Report the most generic language element expected here: a
		// failure that consumed nothing of an enclosing rule takes the
		// rule's name as its label while it unwinds.
		if b.root && nm.Position == cPos && nm.up {
			nm.Expected = b.rule
		}
		return nil, nm
	}
	if b.root {
		if nodes, ok := result.([]Node); ok && len(nodes) > 0 {
			if p.reduceTree && len(nodes) == 1 {
				result = nodes[0]
			} else {
				result = &NonTerminal{Rule: b.rule, Pos: cPos, Nodes: nodes}
			}
			if log := p.log.V(1); log.Enabled() {
				log.Info("matched", "rule", b.rule, "pos", cPos, "end", c.pos)
			}
		}
	}
	if p.memoize {
		c.memo[memoKey{b.id, cPos}] = memoEntry{result: result, pos: c.pos}
	}
	return result, nil
}

// matchWithComments retries a failed terminal match after consuming the
// comments at the cursor. The comment grammar parses with the re-entry
// guard set, so comments never interleave inside comments and their
// failures never disturb the best-error state.
func (c *context) matchWithComments(e Expression, cPos int, orig *NoMatch) (any, *NoMatch) {
	c.inComment = true
	defer func() { c.inComment = false }()
	var comments []Node
	for {
		pos := c.pos
		r, nm := c.parse(c.parser.comments)
		if nm != nil {
			c.pos = pos
			break
		}
		comments = appendNodes(comments, r)
		if c.pos == pos {
			break
		}
		c.skipWhitespace()
	}
	if len(comments) == 0 {
		return nil, orig
	}
	result, nm := e.match(c)
	if nm != nil {
		return nil, orig
	}
	if t, ok := result.(*Terminal); ok {
		t.Comments = &NonTerminal{Rule: "comment", Pos: cPos, Nodes: comments}
	}
	return result, nil
}

func (c *context) skipWhitespace() {
	for c.pos < len(c.input) && strings.IndexByte(c.parser.ws, c.input[c.pos]) >= 0 {
		c.pos++
	}
}

// fail records a match failure at pos. The furthest failure wins, and
// the returned NoMatch is always the current furthest one, so the
// error that eventually surfaces has been relabeled by every rule it
// unwound through. Failures inside a comment parse are kept local.
func (c *context) fail(expected string, pos int) *NoMatch {
	if c.inComment {
		return &NoMatch{Expected: expected, Position: pos, parser: c.parser, up: true}
	}
	if c.nm == nil || pos > c.nm.Position {
		c.nm = &NoMatch{Expected: expected, Position: pos, parser: c.parser, up: true}
	}
	return c.nm
}
