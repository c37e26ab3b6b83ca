// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

// A Node is a node in a parse tree produced by Parser.Parse.
// Nodes are either Terminals, holding matched input text,
// or NonTerminals, holding an ordered list of child nodes.
type Node interface {
	// Type is the name of the rule that produced the node,
	// or the empty string for nodes produced by anonymous expressions.
	Type() string

	// Position is the byte offset into the input where the match began.
	Position() int
}

// A Terminal is a leaf of the parse tree. It represents a matched string.
type Terminal struct {
	// Rule is the name of the rule that produced the terminal,
	// or the empty string for anonymous terminal expressions.
	Rule string

	// Pos is the byte offset into the input of the match.
	Pos int

	// Value is the matched input text.
	Value string

	// Comments holds comment matches consumed immediately before this
	// terminal when the parser has a comment grammar installed.
	Comments *NonTerminal
}

func (t *Terminal) Type() string   { return t.Rule }
func (t *Terminal) Position() int  { return t.Pos }
func (t *Terminal) String() string { return t.Value }

// A NonTerminal is an inner node of the parse tree.
// It represents a language construction built by a named rule.
type NonTerminal struct {
	// Rule is the name of the rule that produced the node.
	Rule string

	// Pos is the byte offset into the input where the rule's match began.
	Pos int

	// Nodes are the immediate successors of this node.
	// The list is always flat; it never contains a nested list.
	Nodes []Node

	// Comments holds comment matches attached to this node.
	Comments *NonTerminal
}

func (n *NonTerminal) Type() string  { return n.Rule }
func (n *NonTerminal) Position() int { return n.Pos }

// appendNodes appends a match result to a flat node list.
// Results of anonymous composites arrive as node lists and are spliced
// element-wise, so a NonTerminal never holds a nested list.
// Empty results, such as those of predicates, are dropped.
func appendNodes(nodes []Node, result any) []Node {
	switch r := result.(type) {
	case nil:
		return nodes
	case []Node:
		return append(nodes, r...)
	case Node:
		return append(nodes, r)
	}
	return nodes
}
