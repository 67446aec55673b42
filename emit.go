// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pretty

import (
	"github.com/bufbuild/pretty/internal/ext/slicesx"
)

// emitter holds state for converting a scanned token stream into text.
type emitter struct {
	Options

	out   *writer
	sizes []int // See scan().

	indent int
	space  int // Columns left on the current line.
	groups []printGroup
}

// printGroup is a group that the emitter is currently inside of.
type printGroup struct {
	indent int // Indentation to restore when the group closes.
	broken bool
	style  Style
}

// emit writes tokens to the output, stopping at the first write error.
func (e *emitter) emit(tokens []Token) error {
	e.space = e.Margin

	for i, tok := range tokens {
		e.step(i, tok)
		if e.out.err != nil {
			return e.out.err
		}
	}

	// The end of the stream closes anything left open.
	for len(e.groups) > 0 {
		e.close("")
	}
	return e.out.Flush()
}

// step emits the i-th token.
func (e *emitter) step(i int, tok Token) {
	switch tok.Kind {
	case KindText:
		e.text(tok.Text)

	case KindOpen:
		e.text(tok.Text)
		g := printGroup{
			indent: e.indent,
			broken: !e.fits(e.sizes[i]),
			style:  tok.Style,
		}
		e.groups = append(e.groups, g)
		if g.broken {
			e.indent += e.Indent
		}

	case KindClose:
		e.close(tok.Text)

	case KindBreak:
		if e.shouldBreak(e.sizes[i]) {
			e.newline()
		} else {
			e.out.WriteSpaces(tok.Width)
			e.space -= tok.Width
		}

	case KindHardBreak:
		e.newline()
	}
}

// text writes literal text.
func (e *emitter) text(text string) {
	e.out.WriteString(text)
	e.space -= e.Measure(text)
}

// close ends the innermost group.
func (e *emitter) close(text string) {
	g, _ := slicesx.Pop(&e.groups)
	e.indent = g.indent
	if g.broken {
		e.newline()
	}
	e.text(text)
}

// newline starts a new line at the current indentation.
func (e *emitter) newline() {
	e.out.Newline(e.indent)
	e.space = e.Margin - e.indent
}

// shouldBreak decides whether a break of the given size is taken.
//
// In a consistent group, every direct break follows the group. Otherwise,
// including at the top level, the break is taken only if the content up to
// the next break does not fit on the rest of the line.
func (e *emitter) shouldBreak(size int) bool {
	if g, ok := slicesx.Last(e.groups); ok && g.style == Consistent {
		return g.broken
	}
	return !e.fits(size)
}

// fits returns whether something of the given size fits on the current line.
func (e *emitter) fits(size int) bool {
	return size != infinity && size <= e.space
}
