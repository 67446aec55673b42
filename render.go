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
	"io"
	"strings"
)

// Render renders a stream to a string.
//
// Rendering into memory cannot fail, so the only errors returned are from
// invalid options.
func Render(options Options, s *Stream) (string, error) {
	var out strings.Builder
	if err := Fprint(&out, options, s); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Sprint builds a stream by calling content, and then renders it.
func Sprint(options Options, content func(*Stream)) (string, error) {
	s := new(Stream)
	content(s)
	return Render(options, s)
}

// Fprint renders a stream to out.
//
// The first error returned by out aborts rendering and is returned as-is.
// Anything written before the failure is not rolled back.
func Fprint(out io.Writer, options Options, s *Stream) error {
	if err := options.Validate(); err != nil {
		return err
	}
	options = options.WithDefaults()
	if s == nil {
		s = new(Stream)
	}

	tokens := s.Tokens()
	e := &emitter{
		Options: options,
		out:     &writer{out: out, trim: options.TrimTrailingSpace},
		sizes:   scan(options, tokens),
	}

	err := e.emit(tokens)
	if err != nil {
		tracer().Errorf("pretty: write failed: %v", err)
	}
	return err
}
