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
	"strings"
)

// Dump renders the scanned form of a stream as pseudo-HTML. Intended for
// debugging.
//
// Each token is printed on its own line, with groups indented by four spaces
// per level. Groups, breaks and hard breaks show the sizes the scanner
// computed for them; "inf" marks anything that cannot be laid out flat.
func Dump(options Options, s *Stream) (string, error) {
	if err := options.Validate(); err != nil {
		return "", err
	}
	options = options.WithDefaults()
	if s == nil {
		s = new(Stream)
	}

	tokens := s.Tokens()
	sizes := scan(options, tokens)

	var out strings.Builder
	var depth int
	line := func(format string, args ...any) {
		for range depth {
			out.WriteString("    ")
		}
		fmt.Fprintf(&out, format, args...)
		out.WriteByte('\n')
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case KindText:
			line("%q", tok.Text)
		case KindBreak:
			line("<br width=%v size=%v>", tok.Width, dumpSize(sizes[i]))
		case KindHardBreak:
			line("<hardbr>")
		case KindOpen:
			line("<group style=%v size=%v open=%q>", tok.Style, dumpSize(sizes[i]), tok.Text)
			depth++
		case KindClose:
			depth = max(0, depth-1)
			line("</group close=%q>", tok.Text)
		}
	}
	for depth > 0 {
		depth--
		line("</group>")
	}

	return out.String(), nil
}

func dumpSize(size int) string {
	if size == infinity {
		return "inf"
	}
	return strconv.Itoa(size)
}
