// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package arpeggio

import "sort"

// PosToLineCol converts a byte offset into the most recently parsed
// input to a 1-based line and column. The sorted newline index is
// built lazily on first use and reused by later conversions.
// It returns 0, 0 if nothing has been parsed yet.
func (p *Parser) PosToLineCol(pos int) (line, col int) {
	c := p.ctx
	if c == nil {
		return 0, 0
	}
	if !c.haveLineEnds {
		for i := 0; i < len(c.input); i++ {
			if c.input[i] == '\n' {
				c.lineEnds = append(c.lineEnds, i)
			}
		}
		c.haveLineEnds = true
	}
	line = sort.SearchInts(c.lineEnds, pos)
	col = pos
	if line > 0 {
		col -= c.lineEnds[line-1] + 1
	}
	return line + 1, col + 1
}
