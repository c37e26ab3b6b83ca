// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import (
	"bytes"
	"io"
)

// Pretty returns a human-readable string of a parse tree.
// The output looks like:
//
//	<n.Rule>{
//		<Pretty(n.Nodes[0])>,
//		<Pretty(n.Nodes[1])>,
//		…
//	}
//
// with terminals rendered as <Rule>("<Value>"), or just "<Value>" for
// anonymous terminals.
func Pretty(n Node) string {
	b := bytes.NewBuffer(nil)
	PrettyWrite(b, n)
	return b.String()
}

// PrettyWrite is like Pretty but outputs to an io.Writer.
func PrettyWrite(w io.Writer, n Node) error {
	return prettyWrite(w, "", n)
}

func prettyWrite(w io.Writer, tab string, n Node) error {
	if _, err := io.WriteString(w, tab); err != nil {
		return err
	}
	if t, ok := n.(*Terminal); ok {
		return prettyTerminal(w, t)
	}
	nt := n.(*NonTerminal)
	if _, err := io.WriteString(w, nt.Rule); err != nil {
		return err
	}
	if len(nt.Nodes) == 0 {
		_, err := io.WriteString(w, "{}")
		return err
	}
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	if len(nt.Nodes) == 1 {
		if t, ok := nt.Nodes[0].(*Terminal); ok {
			if err := prettyTerminal(w, t); err != nil {
				return err
			}
			_, err := io.WriteString(w, "}")
			return err
		}
	}
	for _, kid := range nt.Nodes {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := prettyWrite(w, tab+"\t", kid); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ","); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n"+tab+"}")
	return err
}

func prettyTerminal(w io.Writer, t *Terminal) error {
	if t.Rule != "" {
		if _, err := io.WriteString(w, t.Rule+"("); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `"`+t.Value+`"`); err != nil {
		return err
	}
	if t.Rule != "" {
		if _, err := io.WriteString(w, ")"); err != nil {
			return err
		}
	}
	return nil
}
