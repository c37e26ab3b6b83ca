// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

// A SemanticAction rewrites the parse-tree nodes of one rule into
// values of the abstract semantic graph.
type SemanticAction interface {
	// FirstPass is called bottom-up with a node of the action's rule
	// and the already-rewritten products of the node's children.
	FirstPass(p *Parser, node Node, children []any) (any, error)
}

// A SecondPasser is a SemanticAction that must run again after the
// whole tree has been rewritten, for example to link references to
// declarations that were registered during the first pass.
type SecondPasser interface {
	SemanticAction
	SecondPass(p *Parser, product any) error
}

// ASG rewrites the most recent parse tree into an abstract semantic
// graph by applying actions keyed by rule name. Nodes without an
// action pass through: terminals unchanged, non-terminals rebuilt
// around their rewritten children, or handed up as a plain slice of
// those children when one of them is no longer a parse-tree node.
// After the walk, the second passes
// of actions that request one run in first-pass order.
func (p *Parser) ASG(actions map[string]SemanticAction) (any, error) {
	if p.tree == nil {
		return nil, semanticErrorf("parse tree is empty; Parse must succeed first")
	}
	if len(actions) == 0 {
		return nil, semanticErrorf("no semantic actions given")
	}
	type deferred struct {
		action  SecondPasser
		product any
	}
	var second []deferred
	var walk func(Node) (any, error)
	walk = func(n Node) (any, error) {
		var children []any
		if nt, ok := n.(*NonTerminal); ok {
			for _, kid := range nt.Nodes {
				product, err := walk(kid)
				if err != nil {
					return nil, err
				}
				children = append(children, product)
			}
		}
		action, ok := actions[n.Type()]
		if !ok {
			if nt, ok := n.(*NonTerminal); ok {
				return mirror(nt, children), nil
			}
			return n, nil
		}
		product, err := action.FirstPass(p, n, children)
		if err != nil {
			return nil, err
		}
		if sp, ok := action.(SecondPasser); ok {
			second = append(second, deferred{sp, product})
		}
		return product, nil
	}
	asg, err := walk(p.tree)
	if err != nil {
		return nil, err
	}
	for _, d := range second {
		if err := d.action.SecondPass(p, d.product); err != nil {
			return nil, err
		}
	}
	return asg, nil
}

// mirror rebuilds an actionless non-terminal around its rewritten
// children. When a child product is no longer a parse-tree node the
// children are handed up as a plain slice for an enclosing action to
// consume.
func mirror(n *NonTerminal, children []any) any {
	nodes := make([]Node, 0, len(children))
	for _, ch := range children {
		node, ok := ch.(Node)
		if !ok {
			return children
		}
		nodes = append(nodes, node)
	}
	return &NonTerminal{Rule: n.Rule, Pos: n.Pos, Nodes: nodes, Comments: n.Comments}
}
