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
	"errors"
	"fmt"
	"math"
)

// DefaultIndent is the indentation unit used when [Options.Indent] is zero.
const DefaultIndent = 2

// ErrInvalidOptions is returned when rendering with [Options] that fail
// [Options.Validate].
var ErrInvalidOptions = errors.New("pretty: invalid options")

// Options specifies configuration for rendering a [Stream].
//
// Options are fixed for the duration of a single render; separate renders may
// use different options concurrently.
type Options struct {
	// The maximum number of columns to render before triggering a break.
	// A value of zero implies an infinite width.
	Margin int

	// The number of spaces each broken group indents its contents by.
	// Defaults to [DefaultIndent].
	Indent int

	// Measures the width of text. Defaults to [ByteWidth].
	Measure Measure

	// If set, spaces at the end of a line are removed.
	TrimTrailingSpace bool
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.Margin == 0 {
		o.Margin = math.MaxInt
	}
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}
	if o.Measure == nil {
		o.Measure = ByteWidth
	}
	return o
}

// Validate checks that these options can be rendered with.
func (o Options) Validate() error {
	if o.Margin < 0 {
		return fmt.Errorf("%w: negative margin %d", ErrInvalidOptions, o.Margin)
	}
	if o.Indent < 0 {
		return fmt.Errorf("%w: negative indent %d", ErrInvalidOptions, o.Indent)
	}
	return nil
}

// unlimited returns whether the margin is infinite.
func (o Options) unlimited() bool {
	return o.Margin == math.MaxInt
}
