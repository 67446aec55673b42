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

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/pretty"
	"github.com/bufbuild/pretty/experimental/jsonfmt"
	"github.com/bufbuild/pretty/experimental/protofmt"
	"github.com/bufbuild/pretty/experimental/tokenfmt"
)

const (
	formatAuto          = "auto"
	formatJSON          = "json"
	formatYAML          = "yaml"
	formatTokens        = "tokens"
	formatDescriptorSet = "descriptor-set"
)

var formats = []string{formatAuto, formatJSON, formatYAML, formatTokens, formatDescriptorSet}

// config is the resolved command line configuration.
type config struct {
	width, indent int
	format        string
	fill, color   bool
	dump, trim    bool
}

// render lays out a single input.
func (c config) render(name string, data []byte) (string, error) {
	s, options, err := c.build(name, data)
	if err != nil {
		return "", err
	}

	var out string
	if c.dump {
		out, err = pretty.Dump(options, s)
	} else {
		out, err = pretty.Render(options, s)
	}
	if err != nil {
		return "", err
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// build parses an input into a stream, and returns the options to render it
// with.
func (c config) build(name string, data []byte) (*pretty.Stream, pretty.Options, error) {
	switch c.detect(name) {
	case formatTokens:
		file, err := tokenfmt.Parse(name, string(data))
		if err != nil {
			return nil, pretty.Options{}, err
		}

		// Settings in the file win over the command line.
		options := file.Options()
		if options.Margin == 0 {
			options.Margin = c.width
		}
		if options.Indent == 0 {
			options.Indent = c.indent
		}
		options.TrimTrailingSpace = c.trim
		return file.Stream(), options, nil

	case formatDescriptorSet:
		set := new(descriptorpb.FileDescriptorSet)
		if err := proto.Unmarshal(data, set); err != nil {
			return nil, pretty.Options{}, fmt.Errorf("invalid descriptor set: %w", err)
		}

		options := protofmt.Options{MaxWidth: c.width, Indent: c.indent}
		layout := options.Layout()
		layout.TrimTrailingSpace = c.trim
		return protofmt.Stream(set), layout, nil

	default:
		options := jsonfmt.Options{
			MaxWidth: c.width,
			Indent:   c.indent,
			Fill:     c.fill,
			Color:    c.color,
		}
		s, err := jsonfmt.Build(options, data)
		if err != nil {
			return nil, pretty.Options{}, err
		}
		layout := options.Layout()
		layout.TrimTrailingSpace = c.trim
		return s, layout, nil
	}
}

// detect returns the format of an input, guessing from its extension if the
// format is auto.
func (c config) detect(name string) string {
	if c.format != formatAuto {
		return c.format
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pp":
		return formatTokens
	case ".binpb", ".pb":
		return formatDescriptorSet
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}
