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
	"bytes"
	"io"
	"slices"

	"github.com/bufbuild/pretty/internal/ext/stringsx"
)

// writer is a line-buffering wrapper over an [io.Writer].
//
// The first error returned by the underlying writer is sticky: all writes
// after it are discarded, and it is reported by every subsequent flush.
type writer struct {
	out  io.Writer
	buf  []byte // Never contains a '\n' byte.
	err  error
	trim bool // Whether to trim trailing spaces from each line.
}

// WriteString appends data to the current line. Any newlines in data flush
// the lines they end.
func (w *writer) WriteString(data string) {
	first := true
	for line := range stringsx.Lines(data) {
		if !first {
			w.flush(true)
		}
		first = false
		if w.err == nil {
			w.buf = append(w.buf, line...)
		}
	}
}

// WriteSpaces appends n spaces to the current line.
func (w *writer) WriteSpaces(n int) {
	if w.err != nil || n <= 0 {
		return
	}
	w.buf = slices.Grow(w.buf, n)
	const spaces = "                                        "
	for n > len(spaces) {
		w.buf = append(w.buf, spaces...)
		n -= len(spaces)
	}
	w.buf = append(w.buf, spaces[:n]...)
}

// Newline ends the current line and starts a new one indented by indent
// spaces.
func (w *writer) Newline(indent int) {
	w.flush(true)
	w.WriteSpaces(indent)
}

// Flush writes out the current line, without ending it.
func (w *writer) Flush() error {
	return w.flush(false)
}

func (w *writer) flush(withNewline bool) error {
	if w.err != nil {
		return w.err
	}

	if w.trim && withNewline {
		w.buf = bytes.TrimRight(w.buf, " ")
	}
	if withNewline {
		w.buf = append(w.buf, '\n')
	}

	// NOTE: The contract for Write requires that it return len(buf) when
	// the error is nil, so the count only matters on error, which is fatal
	// anyways.
	if len(w.buf) > 0 {
		_, w.err = w.out.Write(w.buf)
	}
	w.buf = w.buf[:0]
	return w.err
}
