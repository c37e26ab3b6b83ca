// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import (
	"errors"
	"strings"
	"testing"

	"github.com/eaburns/pretty"
	"github.com/google/go-cmp/cmp"
)

// The JSON toy grammar used throughout the tests.

func jsonString() any { return Sequence(`"`, RegExMatch(`[^"]*`), `"`) }

func jsonNumber() any { return RegExMatch(`-?\d+((\.\d*)?((e|E)(\+|-)?\d+)?)?`) }

func jsonValue() any {
	return OrderedChoice(
		jsonString, jsonNumber, jsonObject, jsonArray,
		"true", "false", "null")
}

func jsonArray() any { return Sequence("[", Optional(jsonElements), "]") }

func jsonElements() any { return Sequence(jsonValue, ZeroOrMore(",", jsonValue)) }

func memberDef() any { return Sequence(jsonString, ":", jsonValue) }

func jsonMembers() any { return Sequence(memberDef, ZeroOrMore(",", memberDef)) }

func jsonObject() any { return Sequence("{", Optional(jsonMembers), "}") }

func jsonFile() any { return Sequence(jsonObject, EOF()) }

func mustParser(t *testing.T, r Rule, opts ...Option) *Parser {
	t.Helper()
	p, err := NewParser(r, opts...)
	if err != nil {
		t.Fatalf("NewParser failed: %s", err)
	}
	return p
}

func mustParse(t *testing.T, p *Parser, input string) Node {
	t.Helper()
	tree, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %s", input, err)
	}
	return tree
}

// terminals returns all terminals of the given type in depth-first order.
func terminals(n Node, typ string) []*Terminal {
	var ts []*Terminal
	walkTree(n, func(n Node) {
		if t, ok := n.(*Terminal); ok && t.Rule == typ {
			ts = append(ts, t)
		}
	})
	return ts
}

func walkTree(n Node, f func(Node)) {
	f(n)
	if nt, ok := n.(*NonTerminal); ok {
		for _, kid := range nt.Nodes {
			walkTree(kid, f)
		}
	}
}

func TestParseJSON(t *testing.T) {
	p := mustParser(t, jsonFile)
	tree := mustParse(t, p, `{"a": [1, 2, 3]}`)

	root, ok := tree.(*NonTerminal)
	if !ok || root.Rule != "jsonFile" {
		t.Fatalf("root is %s, want jsonFile:\n%s", tree.Type(), Pretty(tree))
	}
	obj, ok := root.Nodes[0].(*NonTerminal)
	if !ok || obj.Rule != "jsonObject" {
		t.Fatalf("first child is %s, want jsonObject:\n%s", root.Nodes[0].Type(), Pretty(tree))
	}
	members := terminals(tree, "jsonNumber")
	var values []string
	for _, m := range members {
		values = append(values, m.Value)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, values); diff != "" {
		t.Errorf("number terminals mismatch (-want +got):\n%s\n%s", diff, Pretty(tree))
	}
}

func TestParseDeterminism(t *testing.T) {
	p := mustParser(t, jsonFile)
	input := `{"a": [1, 2, 3], "b": {"c": null}}`
	first := mustParse(t, p, input)
	second := mustParse(t, p, input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two parses differ (-first +second):\n%s", diff)
	}
}

func TestMemoizationSoundness(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"a": [1, 2, 3]}`,
		`{"a": {"b": [true, false, null, "x"]}}`,
	}
	memo := mustParser(t, jsonFile)
	plain := mustParser(t, jsonFile, NoMemoize())
	for _, input := range inputs {
		want := mustParse(t, memo, input)
		got := mustParse(t, plain, input)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) differs without memoization (-memo +plain):\n%s", input, diff)
		}
	}
}

func wsList() any { return Sequence("[", jsonNumber, ZeroOrMore(",", jsonNumber), "]", EOF()) }

func TestWhitespaceInvariance(t *testing.T) {
	p := mustParser(t, wsList)
	a := Pretty(mustParse(t, p, "[1,2]"))
	b := Pretty(mustParse(t, p, "[ 1 , 2 ]"))
	if a != b {
		t.Errorf("trees differ:\n%s\nvs:\n%s", a, b)
	}
}

func TestNoSkipWS(t *testing.T) {
	p := mustParser(t, wsList, NoSkipWS())
	if _, err := p.Parse("[ 1 , 2 ]"); err == nil {
		t.Error("Parse ok, want error with whitespace skipping disabled")
	}
	mustParse(t, p, "[1,2]")
}

func intLit() any { return RegExMatch(`\d+`) }

func ints() any { return Sequence(OneOrMore(intLit), EOF()) }

func blockComment() any { return RegExMatch(`/\*.*?\*/`) }

func TestCommentInterleaving(t *testing.T) {
	p := mustParser(t, ints, Comments(blockComment))
	tree := mustParse(t, p, "1 /* hi */ 2")

	nums := terminals(tree, "intLit")
	if len(nums) != 2 || nums[0].Value != "1" || nums[1].Value != "2" {
		t.Fatalf("got terminals %v, want [1 2]:\n%s", nums, Pretty(tree))
	}
	if nums[0].Comments != nil {
		t.Errorf("first terminal carries comments: %s", Pretty(nums[0].Comments))
	}
	c := nums[1].Comments
	if c == nil {
		t.Fatalf("second terminal carries no comments:\n%s", Pretty(tree))
	}
	if c.Rule != "comment" || len(c.Nodes) != 1 {
		t.Fatalf("comments node %s with %d kids, want comment with 1", c.Rule, len(c.Nodes))
	}
	if ct := c.Nodes[0].(*Terminal); ct.Value != "/* hi */" {
		t.Errorf("comment value %q, want %q", ct.Value, "/* hi */")
	}
}

func TestCommentOnly_NoMatchPropagates(t *testing.T) {
	p := mustParser(t, ints, Comments(blockComment))
	if _, err := p.Parse("/* hi */"); err == nil {
		t.Error("Parse ok, want error: comments alone are not input")
	}
}

func abChoice() any { return OrderedChoice("ab", "a") }

func TestOrderedChoicePriority(t *testing.T) {
	p := mustParser(t, abChoice)

	tree := mustParse(t, p, "ab")
	if term, ok := tree.(*Terminal); !ok || term.Value != "ab" {
		t.Errorf("got %s, want terminal %q", Pretty(tree), "ab")
	}

	tree = mustParse(t, p, "ac")
	if term, ok := tree.(*Terminal); !ok || term.Value != "a" {
		t.Errorf("got %s, want terminal %q", Pretty(tree), "a")
	}
	if p.ctx.pos != 1 {
		t.Errorf("cursor at %d after matching %q, want 1", p.ctx.pos, "a")
	}
}

func cond() any { return RegExMatch(`[a-z]+`) }

func body() any { return RegExMatch(`[a-z]+`) }

func stmt() any {
	return OrderedChoice(
		Sequence("if", cond, "then", body),
		Sequence("while", cond, "do", body))
}

func TestFurthestErrorLabel(t *testing.T) {
	p := mustParser(t, stmt)
	_, err := p.Parse("if x then 42")
	if err == nil {
		t.Fatal("Parse ok, want error")
	}
	var nm *NoMatch
	if !errors.As(err, &nm) {
		t.Fatalf("error is %T, want *NoMatch", err)
	}
	if nm.Position != strings.Index("if x then 42", "42") {
		t.Errorf("error position %d, want %d", nm.Position, strings.Index("if x then 42", "42"))
	}
	if nm.Expected != "body" {
		t.Errorf("expected label %q, want %q", nm.Expected, "body")
	}
	if got, want := err.Error(), "expected body at 1:11"; got != want {
		t.Errorf("error %q, want %q", got, want)
	}
}

func altsDepth() any {
	return OrderedChoice(
		Sequence("ab", "cd"),
		Sequence("a", "b", "c", "d", "e"))
}

func TestFurthestErrorPosition(t *testing.T) {
	p := mustParser(t, altsDepth)
	_, err := p.Parse("abcx")
	var nm *NoMatch
	if !errors.As(err, &nm) {
		t.Fatalf("error is %T, want *NoMatch", err)
	}
	// The second alternative reaches offset 3 before failing on "d";
	// the first stops at 2.
	if nm.Position != 3 {
		t.Errorf("error position %d, want 3", nm.Position)
	}
	if nm.Expected != "d" {
		t.Errorf("expected label %q, want %q", nm.Expected, "d")
	}
}

func predAnd() any { return Sequence(And("foo"), "foobar", EOF()) }

func predNot() any { return Sequence(Not("bar"), RegExMatch(`[a-z]+`), EOF()) }

func TestPredicates(t *testing.T) {
	p := mustParser(t, predAnd)
	tree := mustParse(t, p, "foobar")
	root := tree.(*NonTerminal)
	// The predicate consumed nothing and produced no node.
	if len(root.Nodes) != 2 || root.Nodes[0].(*Terminal).Value != "foobar" {
		t.Errorf("unexpected tree:\n%s", Pretty(tree))
	}
	if _, err := p.Parse("fobar"); err == nil {
		t.Error("Parse ok, want error: predicate must fail")
	}

	p = mustParser(t, predNot)
	mustParse(t, p, "foo")
	if _, err := p.Parse("bar"); err == nil {
		t.Error("Parse ok, want error: negative predicate must fail")
	}
}

func greedyAB() any { return Sequence(ZeroOrMore("a"), "ab", EOF()) }

func greedyB() any { return Sequence(ZeroOrMore("a"), "b", EOF()) }

func TestRepetitionGreediness(t *testing.T) {
	// The repetition consumes every "a"; there is no global re-try that
	// would give one back to let "ab" match.
	p := mustParser(t, greedyAB)
	if _, err := p.Parse("aaab"); err == nil {
		t.Error("Parse ok, want error: repetition must not backtrack")
	}
	p = mustParser(t, greedyB)
	mustParse(t, p, "aaab")
}

func TestOneOrMore(t *testing.T) {
	p := mustParser(t, ints)
	tree := mustParse(t, p, "1 2 3")
	if n := len(terminals(tree, "intLit")); n != 3 {
		t.Errorf("got %d terminals, want 3:\n%s", n, Pretty(tree))
	}
	if _, err := p.Parse(""); err == nil {
		t.Error("Parse ok, want error: one-or-more needs at least one match")
	}
}

func TestFlatNonTerminals(t *testing.T) {
	p := mustParser(t, jsonFile)
	tree := mustParse(t, p, `{"a": [1, [2, {"b": 3}]], "c": "d"}`)
	walkTree(tree, func(n Node) {
		nt, ok := n.(*NonTerminal)
		if !ok {
			return
		}
		for _, kid := range nt.Nodes {
			switch kid.(type) {
			case *Terminal, *NonTerminal:
			default:
				t.Errorf("%s holds non-node child %T", nt.Rule, kid)
			}
		}
	})
}

func TestReduceTree(t *testing.T) {
	p := mustParser(t, jsonFile, ReduceTree())
	tree := mustParse(t, p, `{"a": [1, 2, 3]}`)
	walkTree(tree, func(n Node) {
		if nt, ok := n.(*NonTerminal); ok && len(nt.Nodes) == 1 {
			t.Errorf("%s has exactly one child under reduce_tree:\n%s",
				nt.Rule, Pretty(tree))
		}
	})
}

func TestKeyword(t *testing.T) {
	p := mustParser(t, kwStmt)
	tree := mustParse(t, p, "return x")
	root := tree.(*NonTerminal)
	kw, ok := root.Nodes[0].(*Terminal)
	if !ok {
		t.Fatalf("first child is not a terminal:\n%s", Pretty(tree))
	}
	if kw.Rule != "keyword" || kw.Value != "return" {
		t.Errorf("keyword node is %s(%q), want keyword(%q):\n%s",
			kw.Rule, kw.Value, "return", Pretty(tree))
	}
}

func kwStmt() any { return Sequence(Kwd("return"), RegExMatch(`[a-z]+`), EOF()) }

func linT() any { return StrMatch("a") }

func linE() any {
	return OrderedChoice(
		Sequence(linT, "+", linE),
		Sequence(linT, "-", linE),
		linT)
}

func linChain(n int) string {
	return strings.Repeat("a-", n) + "a"
}

func TestPackratLinearity(t *testing.T) {
	attempts := func(input string) int {
		p := mustParser(t, linE)
		mustParse(t, p, input)
		return p.ctx.attempts
	}
	small := attempts(linChain(20))
	large := attempts(linChain(40))
	// Doubling the input must not much more than double the work.
	if large > 3*small {
		t.Errorf("attempts grew from %d to %d on doubled input", small, large)
	}
}

func BenchmarkParseChain(b *testing.B) {
	p, err := NewParser(linE)
	if err != nil {
		b.Fatal(err)
	}
	input := linChain(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}

func TestParseTwiceResetsState(t *testing.T) {
	p := mustParser(t, jsonFile)
	if _, err := p.Parse(`{"a": }`); err == nil {
		t.Fatal("Parse ok, want error")
	}
	tree := mustParse(t, p, `{"a": 1}`)
	if tree == nil {
		t.Error("second parse returned no tree")
	}
	if got := terminals(tree, "jsonNumber"); len(got) != 1 {
		t.Errorf("got %s, want a single number terminal", pretty.String(got))
	}
}

func TestWSChars(t *testing.T) {
	p := mustParser(t, wsList, WSChars(" ._"))
	mustParse(t, p, "[_1_,.2.]")
	if _, err := p.Parse("[\t1,2]"); err == nil {
		t.Error("Parse ok, want error: tab is not whitespace here")
	}
}
