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

// Printer is anything that knows how to append itself to a [Stream].
//
// Implementations are expected to delegate to their children recursively,
// and to close every group they open.
type Printer interface {
	Print(s *Stream)
}

// PrinterFunc adapts a function into a [Printer].
type PrinterFunc func(s *Stream)

// Print implements [Printer].
func (f PrinterFunc) Print(s *Stream) { f(s) }

// Stream is an append-only sequence of layout instructions.
//
// A zero Stream is empty and ready to use.
type Stream struct {
	tokens []Token
	depth  int
}

// Text appends literal text. The text is written to the output exactly, and
// is assumed not to contain newlines for the purpose of measuring.
//
// Empty text is discarded.
func (s *Stream) Text(text string) {
	if text == "" {
		return
	}
	s.tokens = append(s.tokens, Token{Kind: KindText, Text: text})
}

// Break appends a breakable space. If the break is not taken, it renders as
// width spaces; otherwise it renders as a newline followed by the current
// indentation.
func (s *Stream) Break(width int) {
	s.tokens = append(s.tokens, Token{Kind: KindBreak, Width: max(0, width)})
}

// HardBreak appends a newline that is always taken. Every group containing
// it is forced to break.
func (s *Stream) HardBreak() {
	s.tokens = append(s.tokens, Token{Kind: KindHardBreak})
}

// Open begins a group with the given style. The opening text is written
// immediately, before the group decides whether it breaks.
func (s *Stream) Open(style Style, text string) {
	s.tokens = append(s.tokens, Token{Kind: KindOpen, Style: style, Text: text})
	s.depth++
}

// Close ends the innermost open group. If the group is broken, the closing
// text is placed on its own line at the group's starting indentation.
//
// Panics if there is no open group.
func (s *Stream) Close(text string) {
	if s.depth == 0 {
		panic("pretty: Close called without a matching Open")
	}
	s.tokens = append(s.tokens, Token{Kind: KindClose, Text: text})
	s.depth--
}

// Group appends a whole group: it opens it, calls body, and closes it.
func (s *Stream) Group(style Style, open, close string, body func(*Stream)) {
	s.Open(style, open)
	if body != nil {
		body(s)
	}
	s.Close(close)
}

// Emit appends whatever p prints.
func (s *Stream) Emit(p Printer) {
	if p != nil {
		p.Print(s)
	}
}

// Len returns the number of tokens in this stream.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// Depth returns the number of groups that are currently open.
func (s *Stream) Depth() int {
	return s.depth
}

// Tokens returns the tokens appended so far.
//
// The returned slice must not be modified.
func (s *Stream) Tokens() []Token {
	return s.tokens
}
