// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Json parses a JSON document with a PEG grammar and prints the parse
// tree. The document is read from the first argument, or a built-in
// sample is used. With -debug, the parser's trace is written through
// zap.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hfeeki/arpeggio"
	"github.com/hfeeki/arpeggio/adapter/zaplogr"
	"go.uber.org/zap"
)

func jsonString() any {
	return arpeggio.Sequence(`"`, arpeggio.RegExMatch(`[^"]*`), `"`)
}

func jsonNumber() any {
	return arpeggio.RegExMatch(`-?\d+((\.\d*)?((e|E)(\+|-)?\d+)?)?`)
}

func jsonValue() any {
	return arpeggio.OrderedChoice(
		jsonString, jsonNumber, jsonObject, jsonArray,
		"true", "false", "null")
}

func jsonArray() any {
	return arpeggio.Sequence("[", arpeggio.Optional(jsonElements), "]")
}

func jsonElements() any {
	return arpeggio.Sequence(jsonValue, arpeggio.ZeroOrMore(",", jsonValue))
}

func memberDef() any {
	return arpeggio.Sequence(jsonString, ":", jsonValue)
}

func jsonMembers() any {
	return arpeggio.Sequence(memberDef, arpeggio.ZeroOrMore(",", memberDef))
}

func jsonObject() any {
	return arpeggio.Sequence("{", arpeggio.Optional(jsonMembers), "}")
}

func jsonFile() any {
	return arpeggio.Sequence(jsonObject, arpeggio.EOF())
}

const sample = `
{
	"glossary": {
		"title": "example glossary",
		"TrueValue": true,
		"Gravity": -9.8,
		"PrimesLessThan10": [2, 3, 5, 7],
		"EmptyDict": {},
		"EmptyList": []
	}
}
`

var debug = flag.Bool("debug", false, "trace parse attempts")

func main() {
	flag.Parse()
	opts := []arpeggio.Option{}
	if *debug {
		z, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer z.Sync()
		opts = append(opts, arpeggio.WithLogger(zaplogr.New(z)))
	}
	p, err := arpeggio.NewParser(jsonFile, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	input := sample
	if flag.NArg() > 0 {
		input = flag.Arg(0)
	}
	tree, err := p.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(arpeggio.Pretty(tree))
}
