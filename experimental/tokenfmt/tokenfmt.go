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

// Package tokenfmt parses a small textual language for writing [pretty.Stream]s
// by hand.
//
// A file consists of optional settings followed by items:
//
//	# Comments run to the end of the line.
//	margin 20
//	indent 4
//
//	group inconsistent "(" ")" {
//	    "a," break "b," break 2 "c"
//	    hardbreak
//	}
//
// Strings use Go syntax and become text tokens. "break" takes an optional
// fallback width, which defaults to 1. "group" takes an optional style
// (consistent, the default, or inconsistent) followed by optional opening and
// closing text.
package tokenfmt

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/bufbuild/pretty"
)

var (
	tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(tokenLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// File is a parsed token file.
type File struct {
	Pos      lexer.Position `parser:""`
	Settings []*Setting     `parser:"@@*"`
	Items    []*Item        `parser:"@@*"`
}

// Setting is a rendering option set at the top of a file.
type Setting struct {
	Pos   lexer.Position `parser:""`
	Name  string         `parser:"@('margin' | 'indent')"`
	Value int            `parser:"@Int"`
}

// Item is a single token or group.
type Item struct {
	Pos       lexer.Position `parser:""`
	Text      *string        `parser:"  @String"`
	Break     *Break         `parser:"| @@"`
	HardBreak bool           `parser:"| @'hardbreak'"`
	Group     *Group         `parser:"| @@"`
}

// Break is a breakable space.
type Break struct {
	Width *int `parser:"'break' @Int?"`
}

// Group is a nested group of items.
type Group struct {
	Style string  `parser:"'group' @('consistent' | 'inconsistent')?"`
	Open  string  `parser:"@String?"`
	Close string  `parser:"@String?"`
	Items []*Item `parser:"'{' @@* '}'"`
}

// Parse parses a token file. The filename is only used for error messages.
func Parse(filename, text string) (*File, error) {
	file, err := fileParser.ParseString(filename, text)
	if err != nil {
		return nil, fmt.Errorf("tokenfmt: %w", err)
	}
	return file, nil
}

// Options returns the rendering options set by this file. Later settings
// override earlier ones.
func (f *File) Options() pretty.Options {
	var options pretty.Options
	for _, setting := range f.Settings {
		switch setting.Name {
		case "margin":
			options.Margin = setting.Value
		case "indent":
			options.Indent = setting.Value
		}
	}
	return options
}

// Print implements [pretty.Printer].
func (f *File) Print(s *pretty.Stream) {
	printItems(s, f.Items)
}

// Stream returns a new stream containing this file's tokens.
func (f *File) Stream() *pretty.Stream {
	s := new(pretty.Stream)
	s.Emit(f)
	return s
}

func printItems(s *pretty.Stream, items []*Item) {
	for _, item := range items {
		item.Print(s)
	}
}

// Print implements [pretty.Printer].
func (i *Item) Print(s *pretty.Stream) {
	switch {
	case i.Text != nil:
		s.Text(*i.Text)
	case i.Break != nil:
		width := 1
		if i.Break.Width != nil {
			width = *i.Break.Width
		}
		s.Break(width)
	case i.HardBreak:
		s.HardBreak()
	case i.Group != nil:
		style := pretty.Consistent
		if i.Group.Style == "inconsistent" {
			style = pretty.Inconsistent
		}
		s.Group(style, i.Group.Open, i.Group.Close, func(s *pretty.Stream) {
			printItems(s, i.Group.Items)
		})
	}
}
