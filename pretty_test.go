// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import "testing"

func TestPretty(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "anonymous terminal",
			node: &Terminal{Value: ","},
			want: `","`,
		},
		{
			name: "named terminal",
			node: &Terminal{Rule: "number", Value: "42"},
			want: `number("42")`,
		},
		{
			name: "single leaf collapses",
			node: &NonTerminal{
				Rule:  "value",
				Nodes: []Node{&Terminal{Rule: "number", Value: "1"}},
			},
			want: `value{number("1")}`,
		},
		{
			name: "nested",
			node: &NonTerminal{
				Rule: "list",
				Nodes: []Node{
					&Terminal{Value: "["},
					&NonTerminal{
						Rule: "elements",
						Nodes: []Node{
							&Terminal{Rule: "number", Value: "1"},
							&Terminal{Value: ","},
							&Terminal{Rule: "number", Value: "2"},
						},
					},
					&Terminal{Value: "]"},
				},
			},
			want: "list{\n\t\"[\",\n\telements{\n\t\tnumber(\"1\"),\n\t\t\",\",\n\t\tnumber(\"2\"),\n\t},\n\t\"]\",\n}",
		},
		{
			name: "empty non-terminal",
			node: &NonTerminal{Rule: "nothing"},
			want: "nothing{}",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Pretty(test.node); got != test.want {
				t.Errorf("Pretty() = %q, want %q", got, test.want)
			}
		})
	}
}
