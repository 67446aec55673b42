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

// Package jsonfmt formats YAML or JSON data as JSON, using package pretty to
// decide where objects and arrays break.
//
// Objects and arrays are laid out flat when they fit, and otherwise with one
// member per line:
//
//	{"name": "pretty", "tags": ["a", "b"]}
//
//	{
//	  "name": "pretty",
//	  "tags": ["a", "b"]
//	}
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/pretty"
)

// maxAliasDepth bounds how many aliases may be followed while printing a
// single value.
const maxAliasDepth = 64

// Options controls the formatting behavior of the printer.
type Options struct {
	// MaxWidth is the maximum line width before the printer attempts
	// to break lines. A value of 0 means no limit.
	MaxWidth int

	// Indent is the number of spaces each nesting level is indented by.
	// Defaults to two.
	Indent int

	// Fill, when true, packs as many array elements on each line as fit,
	// instead of putting each one on its own line.
	Fill bool

	// Color, when true, highlights object keys and string values with ANSI
	// escapes.
	Color bool
}

// Layout returns the pretty.Options these options render with.
func (o Options) Layout() pretty.Options {
	options := pretty.Options{
		Margin:            o.MaxWidth,
		Indent:            o.Indent,
		Measure:           pretty.DisplayWidth,
		TrimTrailingSpace: true,
	}
	if o.Color {
		options.Measure = pretty.ANSIWidth
	}
	return options
}

// Format renders a YAML node as JSON.
func Format(options Options, node *yaml.Node) (string, error) {
	s := new(pretty.Stream)
	if err := newPrinter(options, s).document(node); err != nil {
		return "", err
	}
	return render(options, s)
}

// FormatBytes parses YAML or JSON data and renders it as JSON.
//
// Each document in a multi-document YAML stream is rendered on its own.
func FormatBytes(options Options, data []byte) (string, error) {
	s, err := Build(options, data)
	if err != nil {
		return "", err
	}
	return render(options, s)
}

// Build parses YAML or JSON data and returns the stream that [FormatBytes]
// would render.
func Build(options Options, data []byte) (*pretty.Stream, error) {
	s := new(pretty.Stream)
	p := newPrinter(options, s)

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for i := 0; ; i++ {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("jsonfmt: document %d: %w", i, err)
		}

		if i > 0 {
			s.HardBreak()
		}
		if err := p.document(&node); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func render(options Options, s *pretty.Stream) (string, error) {
	out, err := pretty.Render(options.Layout(), s)
	if err != nil {
		return "", err
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// printer appends JSON tokens for YAML nodes to a stream.
type printer struct {
	options Options
	s       *pretty.Stream

	key, str *color.Color
	aliases  int
}

func newPrinter(options Options, s *pretty.Stream) *printer {
	p := &printer{options: options, s: s}
	if options.Color {
		p.key = color.New(color.FgBlue, color.Bold)
		p.key.EnableColor()
		p.str = color.New(color.FgGreen)
		p.str.EnableColor()
	}
	return p
}

func (p *printer) document(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			p.s.Text("null")
			return nil
		}
		node = node.Content[0]
	}
	return p.value(node)
}

func (p *printer) value(node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		return p.document(node)

	case yaml.AliasNode:
		if p.aliases >= maxAliasDepth {
			return fmt.Errorf("jsonfmt: line %d: aliases nested too deeply", node.Line)
		}
		p.aliases++
		defer func() { p.aliases-- }()
		return p.value(node.Alias)

	case yaml.MappingNode:
		return p.object(node)

	case yaml.SequenceNode:
		return p.array(node)

	case yaml.ScalarNode:
		text, err := scalar(node)
		if err != nil {
			return err
		}
		if node.ShortTag() == "!!str" || node.ShortTag() == "!!timestamp" {
			text = paint(p.str, text)
		}
		p.s.Text(text)
		return nil

	default:
		return fmt.Errorf("jsonfmt: line %d: unsupported YAML node", node.Line)
	}
}

func (p *printer) object(node *yaml.Node) error {
	if len(node.Content) == 0 {
		p.s.Text("{}")
		return nil
	}

	p.s.Open(pretty.Consistent, "{")
	p.s.Break(0)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if i > 0 {
			p.s.Text(",")
			p.s.Break(1)
		}

		key := node.Content[i]
		for key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("jsonfmt: line %d: object keys must be scalars", key.Line)
		}
		name, err := quote(key.Value)
		if err != nil {
			return err
		}

		p.s.Text(paint(p.key, name))
		p.s.Text(": ")
		if err := p.value(node.Content[i+1]); err != nil {
			return err
		}
	}

	p.s.Close("}")
	return nil
}

func (p *printer) array(node *yaml.Node) error {
	if len(node.Content) == 0 {
		p.s.Text("[]")
		return nil
	}

	style := pretty.Consistent
	if p.options.Fill {
		style = pretty.Inconsistent
	}

	p.s.Open(style, "[")
	p.s.Break(0)
	for i, elem := range node.Content {
		if i > 0 {
			p.s.Text(",")
			p.s.Break(1)
		}
		if err := p.value(elem); err != nil {
			return err
		}
	}
	p.s.Close("]")
	return nil
}

// scalar converts a scalar node into JSON text.
func scalar(node *yaml.Node) (string, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return "", fmt.Errorf("jsonfmt: line %d: %w", node.Line, err)
	}
	text, err := marshal(v)
	if err != nil {
		return "", fmt.Errorf("jsonfmt: line %d: %w", node.Line, err)
	}
	return text, nil
}

// quote converts a string into a JSON string literal.
func quote(s string) (string, error) {
	return marshal(s)
}

func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// paint colors text with c, if it is non-nil.
func paint(c *color.Color, text string) string {
	if c == nil {
		return text
	}
	return c.Sprint(text)
}
