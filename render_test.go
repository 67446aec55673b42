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

package pretty_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pretty"
)

const long = "a_very_long_token_exceeding_the_margin_by_itself"

func render(t *testing.T, options pretty.Options, content func(*pretty.Stream)) string {
	t.Helper()
	out, err := pretty.Sprint(options, content)
	require.NoError(t, err)
	return out
}

func TestRenderBasics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options pretty.Options
		content func(*pretty.Stream)
		want    string
	}{
		{
			name:    "empty",
			content: func(*pretty.Stream) {},
			want:    "",
		},
		{
			name:    "text",
			content: func(s *pretty.Stream) { s.Text("x") },
			want:    "x",
		},
		{
			name:    "flat",
			options: pretty.Options{Margin: 100},
			content: func(s *pretty.Stream) {
				s.Group(pretty.Inconsistent, "", "", func(s *pretty.Stream) {
					s.Text("a")
					s.Break(1)
					s.Text("b")
				})
			},
			want: "a b",
		},
		{
			name:    "too long",
			options: pretty.Options{Margin: 10},
			content: func(s *pretty.Stream) {
				s.Group(pretty.Inconsistent, "", "", func(s *pretty.Stream) {
					s.Text(long)
					s.Break(1)
					s.Text(long)
				})
			},
			want: long + "\n  " + long + "\n",
		},
		{
			name:    "hard break",
			options: pretty.Options{Margin: 100},
			content: func(s *pretty.Stream) {
				s.Group(pretty.Inconsistent, "", "", func(s *pretty.Stream) {
					s.Text("a")
					s.HardBreak()
					s.Text("b")
				})
			},
			want: "a\n  b\n",
		},
		{
			name:    "hard break unlimited",
			content: func(s *pretty.Stream) {
				s.Group(pretty.Consistent, "", "", func(s *pretty.Stream) {
					s.Text("a")
					s.HardBreak()
					s.Text("b")
				})
			},
			want: "a\n  b\n",
		},
		{
			name:    "top level break",
			options: pretty.Options{Margin: 5},
			content: func(s *pretty.Stream) {
				s.Text("aaa")
				s.Break(1)
				s.Text("bbb")
			},
			want: "aaa\nbbb",
		},
		{
			name:    "custom indent",
			options: pretty.Options{Margin: 3, Indent: 4},
			content: func(s *pretty.Stream) {
				s.Group(pretty.Consistent, "{", "}", func(s *pretty.Stream) {
					s.Break(0)
					s.Text("abc")
				})
			},
			want: "{\n    abc\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.options, tt.content))
		})
	}
}

// list renders (aaaa bbbb cc) with the given style.
func list(style pretty.Style) func(*pretty.Stream) {
	return func(s *pretty.Stream) {
		s.Group(style, "(", ")", func(s *pretty.Stream) {
			s.Text("aaaa")
			s.Break(1)
			s.Text("bbbb")
			s.Break(1)
			s.Text("cc")
		})
	}
}

func TestConsistent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(aaaa bbbb cc)",
		render(t, pretty.Options{Margin: 80}, list(pretty.Consistent)))
	assert.Equal(t, "(aaaa\n  bbbb\n  cc\n)",
		render(t, pretty.Options{Margin: 10}, list(pretty.Consistent)))
}

func TestInconsistent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(aaaa bbbb cc)",
		render(t, pretty.Options{Margin: 80}, list(pretty.Inconsistent)))

	// The first break fits, the second does not.
	assert.Equal(t, "(aaaa bbbb\n  cc\n)",
		render(t, pretty.Options{Margin: 10}, list(pretty.Inconsistent)))
}

func TestHardBreakPropagates(t *testing.T) {
	t.Parallel()

	out := render(t, pretty.Options{Margin: 80}, func(s *pretty.Stream) {
		s.Group(pretty.Consistent, "[", "]", func(s *pretty.Stream) {
			s.Text("x")
			s.Break(1)
			s.Group(pretty.Consistent, "{", "}", func(s *pretty.Stream) {
				s.Text("y")
				s.HardBreak()
				s.Text("z")
			})
			s.Break(1)
			s.Text("w")
		})
	})

	// The indentation after the inner group closes is the same as before it
	// opened.
	assert.Equal(t, "[x\n  {y\n    z\n  }\n  w\n]", out)
}

func TestTrimTrailingSpace(t *testing.T) {
	t.Parallel()

	content := func(s *pretty.Stream) {
		s.Group(pretty.Inconsistent, "{", "}", func(s *pretty.Stream) {
			s.HardBreak()
			s.HardBreak()
			s.Text("x")
		})
	}

	assert.Equal(t, "{\n  \n  x\n}", render(t, pretty.Options{}, content))
	assert.Equal(t, "{\n\n  x\n}", render(t, pretty.Options{TrimTrailingSpace: true}, content))
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	content := func(s *pretty.Stream) {
		s.Group(pretty.Inconsistent, "", "", func(s *pretty.Stream) {
			s.Text("日本語")
			s.Break(1)
			s.Text("x")
		})
	}

	assert.Equal(t, "日本語\n  x\n", render(t, pretty.Options{Margin: 8}, content))
	assert.Equal(t, "日本語 x", render(t, pretty.Options{
		Margin:  8,
		Measure: pretty.DisplayWidth,
	}, content))

	assert.Equal(t, 3, pretty.ANSIWidth("\x1b[31mred\x1b[0m"))
	assert.Equal(t, 4, pretty.DisplayWidth("日本"))
	assert.Equal(t, 6, pretty.ByteWidth("日本"))
}

func TestInvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := pretty.Render(pretty.Options{Margin: -1}, nil)
	require.ErrorIs(t, err, pretty.ErrInvalidOptions)

	_, err = pretty.Render(pretty.Options{Indent: -1}, nil)
	require.ErrorIs(t, err, pretty.ErrInvalidOptions)

	out, err := pretty.Render(pretty.Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

var errBoom = errors.New("boom")

// failingWriter fails every write after the first n.
type failingWriter struct {
	n      int
	writes []string
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(w.writes) >= w.n {
		return 0, errBoom
	}
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestWriteFailure(t *testing.T) {
	t.Parallel()

	s := new(pretty.Stream)
	s.Text("a")
	s.HardBreak()
	s.Text("b")
	s.HardBreak()
	s.Text("c")

	w := &failingWriter{n: 1}
	err := pretty.Fprint(w, pretty.Options{}, s)
	assert.Same(t, errBoom, err)
	assert.Equal(t, []string{"a\n"}, w.writes)

	w = &failingWriter{n: 0}
	err = pretty.Fprint(w, pretty.Options{}, s)
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, w.writes)

	var out strings.Builder
	require.NoError(t, pretty.Fprint(io.MultiWriter(&out), pretty.Options{}, s))
	assert.Equal(t, "a\nb\nc", out.String())
}

func TestDump(t *testing.T) {
	t.Parallel()

	s := new(pretty.Stream)
	s.Group(pretty.Inconsistent, "", "", func(s *pretty.Stream) {
		s.Text("a")
		s.Break(1)
		s.Text("b")
		s.HardBreak()
	})
	s.Open(pretty.Consistent, "(")

	out, err := pretty.Dump(pretty.Options{Margin: 100}, s)
	require.NoError(t, err)
	assert.Equal(t, `<group style=inconsistent size=inf open="">
    "a"
    <br width=1 size=2>
    "b"
    <hardbr>
</group close="">
<group style=consistent size=0 open="(">
</group>
`, out)
}

func TestStream(t *testing.T) {
	t.Parallel()

	s := new(pretty.Stream)
	s.Text("")
	assert.Equal(t, 0, s.Len())

	s.Open(pretty.Consistent, "(")
	assert.Equal(t, 1, s.Depth())
	s.Emit(pretty.PrinterFunc(func(s *pretty.Stream) {
		s.Text("x")
		s.Break(-3)
	}))
	s.Emit(nil)
	s.Close(")")
	assert.Equal(t, 0, s.Depth())

	assert.Equal(t, []pretty.Token{
		{Kind: pretty.KindOpen, Style: pretty.Consistent, Text: "("},
		{Kind: pretty.KindText, Text: "x"},
		{Kind: pretty.KindBreak, Width: 0},
		{Kind: pretty.KindClose, Text: ")"},
	}, s.Tokens())
	assert.Equal(t, `open(consistent, "(")`, s.Tokens()[0].String())
	assert.Equal(t, "break(0)", s.Tokens()[2].String())

	assert.Panics(t, func() { s.Close("") })
}

func TestUnclosedGroup(t *testing.T) {
	t.Parallel()

	s := new(pretty.Stream)
	s.Open(pretty.Consistent, "(")
	s.Text("aaaa")
	s.Break(1)
	s.Text("bbbb")

	out, err := pretty.Render(pretty.Options{Margin: 5}, s)
	require.NoError(t, err)
	assert.Equal(t, "(aaaa\n  bbbb\n", out)
}
