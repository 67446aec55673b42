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
	"github.com/muesli/reflow/ansi"
	"github.com/rivo/uniseg"
)

// Measure computes how many columns a piece of text occupies.
type Measure func(text string) int

// ByteWidth measures text by its length in bytes. This is exact for ASCII.
func ByteWidth(text string) int {
	return len(text)
}

// DisplayWidth measures text by the number of terminal cells its grapheme
// clusters occupy, so that wide and combining characters are accounted for.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// ANSIWidth is like [DisplayWidth], but ignores ANSI escape sequences, so
// that colorized text measures the same as plain text.
func ANSIWidth(text string) int {
	return ansi.PrintableRuneWidth(text)
}
