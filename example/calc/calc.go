// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Calc is an example calculator program. It reads one expression per
// line from standard input, parses it with a PEG grammar, and
// evaluates the parse tree through first-pass semantic actions applied
// by Parser.ASG.
//
// With -debug, the parser's trace is written through logrus.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hfeeki/arpeggio"
	"github.com/hfeeki/arpeggio/adapter/logruslogr"
	"github.com/sirupsen/logrus"
)

func number() any { return arpeggio.RegExMatch(`\d+(\.\d+)?`) }

func factor() any {
	return arpeggio.OrderedChoice(
		arpeggio.Sequence("(", expression, ")"),
		number)
}

func term() any {
	return arpeggio.Sequence(
		factor,
		arpeggio.ZeroOrMore(arpeggio.OrderedChoice("*", "/"), factor))
}

func expression() any {
	return arpeggio.Sequence(
		term,
		arpeggio.ZeroOrMore(arpeggio.OrderedChoice("+", "-"), term))
}

func calculation() any { return arpeggio.Sequence(expression, arpeggio.EOF()) }

// numberAction turns a number terminal into a float64.
type numberAction struct{}

func (numberAction) FirstPass(p *arpeggio.Parser, node arpeggio.Node, children []any) (any, error) {
	t := node.(*arpeggio.Terminal)
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return nil, &arpeggio.SemanticError{Msg: "bad number " + t.Value}
	}
	return v, nil
}

// factorAction picks the value out of a parenthesized group.
type factorAction struct{}

func (factorAction) FirstPass(p *arpeggio.Parser, node arpeggio.Node, children []any) (any, error) {
	for _, ch := range children {
		if v, ok := ch.(float64); ok {
			return v, nil
		}
	}
	return nil, &arpeggio.SemanticError{Msg: "factor holds no value"}
}

// foldAction evaluates a left-associative operator chain:
// a value followed by operator/value pairs.
type foldAction struct{}

func (foldAction) FirstPass(p *arpeggio.Parser, node arpeggio.Node, children []any) (any, error) {
	var acc float64
	var op string
	seen := false
	for _, ch := range children {
		switch v := ch.(type) {
		case float64:
			if !seen {
				acc, seen = v, true
				continue
			}
			switch op {
			case "+":
				acc += v
			case "-":
				acc -= v
			case "*":
				acc *= v
			case "/":
				acc /= v
			}
		case *arpeggio.Terminal:
			op = v.Value
		}
	}
	if !seen {
		return nil, &arpeggio.SemanticError{Msg: "empty operator chain"}
	}
	return acc, nil
}

// calculationAction unwraps the final value, dropping the EOF terminal.
type calculationAction struct{}

func (calculationAction) FirstPass(p *arpeggio.Parser, node arpeggio.Node, children []any) (any, error) {
	for _, ch := range children {
		if v, ok := ch.(float64); ok {
			return v, nil
		}
	}
	return nil, &arpeggio.SemanticError{Msg: "no result"}
}

var actions = map[string]arpeggio.SemanticAction{
	"number":      numberAction{},
	"factor":      factorAction{},
	"term":        foldAction{},
	"expression":  foldAction{},
	"calculation": calculationAction{},
}

var debug = flag.Bool("debug", false, "trace parse attempts")

func main() {
	flag.Parse()
	opts := []arpeggio.Option{}
	if *debug {
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		opts = append(opts, arpeggio.WithLogger(logruslogr.New(l)))
	}
	p, err := arpeggio.NewParser(calculation, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if _, err := p.Parse(scanner.Text()); err != nil {
			fmt.Println(err)
			continue
		}
		result, err := p.ASG(actions)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(result)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
