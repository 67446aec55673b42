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
	"fmt"
	"strconv"
)

const (
	kindNone Kind = iota //nolint:unused

	KindText      // Literal text. See [Stream.Text].
	KindBreak     // A breakable space. See [Stream.Break].
	KindHardBreak // An unconditional newline. See [Stream.HardBreak].
	KindOpen      // The start of a group. See [Stream.Open].
	KindClose     // The end of a group. See [Stream.Close].
)

// Kind is a kind of [Token].
type Kind byte

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBreak:
		return "break"
	case KindHardBreak:
		return "hardbreak"
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

const (
	// Consistent groups break all of their direct breaks, or none of them.
	Consistent Style = iota
	// Inconsistent groups decide each direct break separately, based on
	// whether the content up to the next break still fits on the line.
	Inconsistent
)

// Style is the breaking discipline of a group.
type Style byte

// String implements [fmt.Stringer].
func (s Style) String() string {
	switch s {
	case Consistent:
		return "consistent"
	case Inconsistent:
		return "inconsistent"
	default:
		return fmt.Sprintf("Style(%d)", s)
	}
}

// Token is a single layout instruction in a [Stream].
type Token struct {
	Kind Kind

	// The literal text for KindText, the opening text for KindOpen, and the
	// closing text for KindClose.
	Text string

	// The number of spaces a KindBreak renders as when it does not break.
	Width int

	// The style of a KindOpen.
	Style Style
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	switch t.Kind {
	case KindText:
		return strconv.Quote(t.Text)
	case KindBreak:
		return fmt.Sprintf("break(%d)", t.Width)
	case KindHardBreak:
		return "hardbreak"
	case KindOpen:
		return fmt.Sprintf("open(%v, %q)", t.Style, t.Text)
	case KindClose:
		return fmt.Sprintf("close(%q)", t.Text)
	default:
		return t.Kind.String()
	}
}
