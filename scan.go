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
	"math"

	"github.com/bufbuild/pretty/internal/ext/slicesx"
)

// infinity is the size of anything that cannot be laid out flat: it contains
// a hard break, or it is wider than the margin.
const infinity = math.MaxInt

// scanner computes, for every [KindOpen] and [KindBreak] token, how wide the
// content it governs would be if it were laid out on a single line.
//
// For an open token, this is the width of the group's contents and closing
// text. For a break, it is the break's own width plus everything up to the
// next break in the same group, or the end of that group.
//
// Entries whose size is not yet known are held in a ring buffer. Once the
// distance between the oldest of them and the running total exceeds the
// margin, that entry can never fit, so it is resolved as infinite and
// dropped. This keeps the buffer proportional to the margin, but the buffer
// is allowed to grow, so deeply nested zero-width input cannot overflow it.
type scanner struct {
	Options

	sizes   []int
	right   int // Width of all text scanned so far.
	pending slicesx.Queue[entry]
	groups  []scanGroup
	pruned  int
}

// entry is an open or break token whose size is not yet known.
type entry struct {
	index int // Index into the token stream.
	start int // Value of scanner.right when this entry was pushed.
}

// scanGroup tracks an open group during scanning.
type scanGroup struct {
	open int  // Index of the group's open token.
	hard bool // Whether this group transitively contains a hard break.
}

// scan computes the sizes of each token in tokens.
//
// The returned slice has one element per token; only open, break and hard
// break tokens have meaningful values.
func scan(options Options, tokens []Token) []int {
	s := newScanner(options, len(tokens))
	for i, tok := range tokens {
		s.step(i, tok)
	}
	return s.finish()
}

// newScanner returns a scanner for a stream of n tokens.
func newScanner(options Options, n int) *scanner {
	s := &scanner{
		Options: options,
		sizes:   make([]int, n),
	}
	s.pending.Reserve(min(options.Margin, n))
	return s
}

// step scans the i-th token.
func (s *scanner) step(i int, tok Token) {
	switch tok.Kind {
	case KindText:
		s.advance(s.Measure(tok.Text))

	case KindBreak:
		s.resolveBreaks(s.innermost())
		s.pending.PushBack(entry{index: i, start: s.right})
		s.advance(tok.Width)

	case KindHardBreak:
		s.resolveBreaks(s.innermost())
		s.sizes[i] = infinity
		if g := slicesx.LastPointer(s.groups); g != nil {
			g.hard = true
		}

	case KindOpen:
		s.advance(s.Measure(tok.Text))
		s.pending.PushBack(entry{index: i, start: s.right})
		s.groups = append(s.groups, scanGroup{open: i})

	case KindClose:
		if len(s.groups) == 0 {
			panic("pretty: unbalanced close token in stream")
		}
		s.close(s.Measure(tok.Text))
	}
}

// finish closes anything left open at the end of the stream and returns the
// computed sizes.
func (s *scanner) finish() []int {
	for len(s.groups) > 0 {
		s.close(0)
	}
	s.resolveBreaks(-1)

	if s.pruned > 0 {
		tracer().Debugf("pretty: %d of %d tokens exceeded margin %d during scan",
			s.pruned, len(s.sizes), s.Margin)
	}
	return s.sizes
}

// close resolves the innermost open group, whose closing text is width wide.
func (s *scanner) close(width int) {
	g, _ := slicesx.Pop(&s.groups)

	// Breaks that are still pending belong to this group, and end here.
	s.resolveBreaks(g.open)
	s.advance(width)

	if back := s.pending.Back(); back != nil && back.index == g.open {
		e, _ := s.pending.PopBack()
		s.sizes[e.index] = s.size(e)
		if g.hard {
			s.sizes[e.index] = infinity
		}
	}
	// Otherwise, the open was already pruned as infinite.

	if g.hard {
		if parent := slicesx.LastPointer(s.groups); parent != nil {
			parent.hard = true
		}
	}
}

// innermost returns the index of the innermost open group's open token, or
// -1 at the top level.
func (s *scanner) innermost() int {
	if g, ok := slicesx.Last(s.groups); ok {
		return g.open
	}
	return -1
}

// resolveBreaks resolves all pending entries newer than boundary, which is
// the index of the open token of the group they belong to.
//
// Pending entries of enclosing groups are always older than that open token,
// and the entries of closed groups have already been popped, so every entry
// newer than it is one of the group's direct breaks.
func (s *scanner) resolveBreaks(boundary int) {
	for {
		back := s.pending.Back()
		if back == nil || back.index <= boundary {
			return
		}
		e, _ := s.pending.PopBack()
		s.sizes[e.index] = s.size(e)
	}
}

// advance adds width to the running total and prunes any pending entries
// that can no longer fit.
func (s *scanner) advance(width int) {
	s.right += width
	if s.unlimited() {
		return
	}

	for {
		front := s.pending.Front()
		if front == nil || s.right-front.start <= s.Margin {
			return
		}
		e, _ := s.pending.PopFront()
		s.sizes[e.index] = infinity
		s.pruned++
	}
}

// size computes the final size of a pending entry.
func (s *scanner) size(e entry) int {
	n := s.right - e.start
	if n > s.Margin {
		return infinity
	}
	return n
}
