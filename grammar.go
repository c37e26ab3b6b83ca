// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/go-logr/logr"
)

// A Rule is a grammar rule given as a function returning its body.
// The function's name becomes the rule name in the parse tree.
//
// A body may be a string literal (shorthand for StrMatch) or any
// expression built from the combinators: Sequence, OrderedChoice,
// Optional, ZeroOrMore, OneOrMore, And, Not, StrMatch, RegExMatch, Kwd
// and EOF. Other rules are referenced as elements of those combinators;
// a body that is just another rule is rejected with a *GrammarError.
type Rule func() any

// NewParser compiles the grammar rooted at language into an expression
// graph and returns a Parser for it. Malformed grammars are reported as
// *GrammarError.
func NewParser(language Rule, opts ...Option) (*Parser, error) {
	if language == nil {
		return nil, grammarErrorf("grammar has no root rule")
	}
	p := &Parser{skipWS: true, ws: DefaultWS, memoize: true, log: logr.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	b := &builder{}
	model, err := b.build(language)
	if err != nil {
		return nil, err
	}
	p.model = model
	if p.commentDef != nil {
		comments, err := b.build(p.commentDef)
		if err != nil {
			return nil, err
		}
		// The comment model always produces a rule node, even when its
		// body is a bare terminal.
		cb := comments.base()
		cb.root = true
		if cb.rule == "" {
			cb.rule = ruleName(p.commentDef)
		}
		p.comments = comments
	}
	return p, nil
}

// A builder compiles one grammar description into an expression graph.
// Rules are deposited in the cache under a crossRef placeholder before
// their bodies are built, so recursive references terminate; composites
// left holding placeholders are patched once the traversal completes.
type builder struct {
	nextID    int
	cache     map[string]Expression
	pending   []Expression
	crossRefs int
}

// A crossRef stands in for a rule whose body is not yet built.
// None survive a successful build.
type crossRef struct {
	exprBase
	name string
}

func (e *crossRef) match(*context) (any, *NoMatch) {
	panic("arpeggio: unresolved cross-reference to rule " + e.name)
}

func (e *crossRef) String() string { return e.name }

func (b *builder) build(r Rule) (Expression, error) {
	b.cache = make(map[string]Expression)
	b.pending = nil
	b.crossRefs = 0
	model, err := b.visit(r)
	if err != nil {
		return nil, err
	}
	if err := b.resolveCrossRefs(); err != nil {
		return nil, err
	}
	return model, nil
}

func (b *builder) visit(v any) (Expression, error) {
	switch v := v.(type) {
	case Rule:
		return b.visitRule(v)
	case func() any:
		return b.visitRule(Rule(v))
	case string:
		e := StrMatch(v)
		b.assign(e)
		return e, nil
	case Expression:
		return b.visitExpr(v)
	default:
		return nil, grammarErrorf("unrecognized grammar element %v (%T)", v, v)
	}
}

func (b *builder) visitRule(r Rule) (Expression, error) {
	name := ruleName(r)
	if cached, ok := b.cache[name]; ok {
		if _, ok := cached.(*crossRef); ok {
			b.crossRefs++
		}
		return cached, nil
	}
	body := r()
	switch body.(type) {
	case Rule, func() any:
		return nil, grammarErrorf("rule element can't be just another rule in %q", name)
	}
	// Deposit the placeholder first so recursive mentions of this rule
	// resolve to it instead of recursing forever.
	b.cache[name] = &crossRef{name: name}
	e, err := b.visit(body)
	if err != nil {
		return nil, err
	}
	eb := e.base()
	eb.rule = name
	eb.root = true
	b.cache[name] = e
	return e, nil
}

func (b *builder) visitExpr(e Expression) (Expression, error) {
	eb := e.base()
	b.assign(e)
	if eb.resolved {
		return e, nil
	}
	eb.resolved = true
	switch m := e.(type) {
	case *strMatch, *endOfFile, *crossRef:
		return e, nil
	case *regexMatch:
		if err := m.compile(); err != nil {
			return nil, err
		}
		return e, nil
	}
	if len(eb.elements) == 0 {
		return nil, grammarErrorf("grammar element %T has no sub-expressions", e)
	}
	switch e.(type) {
	case *sequence, *orderedChoice:
		for _, el := range eb.elements {
			n, err := b.visit(el)
			if err != nil {
				return nil, err
			}
			eb.nodes = append(eb.nodes, n)
		}
	default:
		// Repetitions and predicates take one child; multiple elements
		// form an implicit sequence.
		el := eb.elements[0]
		if len(eb.elements) > 1 {
			el = Sequence(eb.elements...)
		}
		n, err := b.visit(el)
		if err != nil {
			return nil, err
		}
		eb.nodes = []Expression{n}
	}
	for _, n := range eb.nodes {
		if _, ok := n.(*crossRef); ok {
			b.pending = append(b.pending, e)
			break
		}
	}
	return e, nil
}

func (b *builder) assign(e Expression) {
	eb := e.base()
	if eb.id == 0 {
		b.nextID++
		eb.id = b.nextID
	}
}

// resolveCrossRefs replaces every placeholder deposited during the
// traversal with the rule expression that is now in the cache.
func (b *builder) resolveCrossRefs() error {
	for _, e := range b.pending {
		nodes := e.base().nodes
		for i, n := range nodes {
			cr, ok := n.(*crossRef)
			if !ok {
				continue
			}
			resolved, ok := b.cache[cr.name]
			if !ok {
				return grammarErrorf("undefined rule %q", cr.name)
			}
			if _, still := resolved.(*crossRef); still {
				return grammarErrorf("rule %q was never built", cr.name)
			}
			nodes[i] = resolved
			b.crossRefs--
		}
	}
	if b.crossRefs != 0 {
		return grammarErrorf("grammar has %d unresolved cross-references", b.crossRefs)
	}
	return nil
}

// ruleName extracts a rule's name from its function symbol.
func ruleName(r Rule) string {
	f := runtime.FuncForPC(reflect.ValueOf(r).Pointer())
	if f == nil {
		return "rule"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
