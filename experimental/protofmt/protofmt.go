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

// Package protofmt renders protobuf messages in the text format, using
// package pretty to decide where nested messages and lists break.
//
// Top-level fields are always printed one per line. Nested messages stay on
// one line when they fit:
//
//	name: "foo.proto"
//	message_type {name: "Foo" field {name: "bar" number: 1}}
package protofmt

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/pretty"
)

// Options controls the formatting behavior of the printer.
type Options struct {
	// MaxWidth is the maximum line width before the printer attempts
	// to break lines. A value of 0 means no limit.
	MaxWidth int

	// Indent is the number of spaces each nesting level is indented by.
	// Defaults to two.
	Indent int
}

// Layout returns the pretty.Options these options render with.
func (o Options) Layout() pretty.Options {
	return pretty.Options{
		Margin:            o.MaxWidth,
		Indent:            o.Indent,
		TrimTrailingSpace: true,
	}
}

// Format renders msg in the text format.
//
// Unknown fields are not printed.
func Format(options Options, msg proto.Message) (string, error) {
	out, err := pretty.Render(options.Layout(), Stream(msg))
	if err != nil {
		return "", err
	}
	if out != "" {
		out += "\n"
	}
	return out, nil
}

// Stream returns the tokens that [Format] renders.
func Stream(msg proto.Message) *pretty.Stream {
	s := new(pretty.Stream)
	s.Emit(Printer(msg))
	return s
}

// Printer returns a [pretty.Printer] that prints the fields of msg, one per
// line.
func Printer(msg proto.Message) pretty.Printer {
	return pretty.PrinterFunc(func(s *pretty.Stream) {
		if msg == nil {
			return
		}
		fields(s, msg.ProtoReflect(), s.HardBreak)
	})
}

// fields prints every populated field of m in field number order, calling
// sep between them.
func fields(s *pretty.Stream, m protoreflect.Message, sep func()) {
	type entry struct {
		fd protoreflect.FieldDescriptor
		v  protoreflect.Value
	}
	var entries []entry
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		entries = append(entries, entry{fd, v})
		return true
	})
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.fd.Number(), b.fd.Number())
	})

	first := true
	next := func() {
		if !first {
			sep()
		}
		first = false
	}

	for _, e := range entries {
		name := e.fd.TextName()
		switch {
		case e.fd.IsMap():
			mapEntries(s, e.fd, e.v.Map(), next)

		case e.fd.IsList() && isMessage(e.fd):
			list := e.v.List()
			for i := range list.Len() {
				next()
				message(s, name, list.Get(i).Message())
			}

		case e.fd.IsList():
			next()
			list := e.v.List()
			s.Text(name + ": ")
			s.Open(pretty.Inconsistent, "[")
			s.Break(0)
			for i := range list.Len() {
				if i > 0 {
					s.Text(",")
					s.Break(1)
				}
				s.Text(scalar(e.fd, list.Get(i)))
			}
			s.Close("]")

		case isMessage(e.fd):
			next()
			message(s, name, e.v.Message())

		default:
			next()
			s.Text(name + ": " + scalar(e.fd, e.v))
		}
	}
}

// message prints a nested message as a consistent group.
func message(s *pretty.Stream, name string, m protoreflect.Message) {
	if empty(m) {
		s.Text(name + " {}")
		return
	}

	s.Text(name + " ")
	s.Open(pretty.Consistent, "{")
	s.Break(0)
	fields(s, m, func() { s.Break(1) })
	s.Close("}")
}

// mapEntries prints each entry of a map field as a message with a key and a
// value, sorted by key.
func mapEntries(s *pretty.Stream, fd protoreflect.FieldDescriptor, m protoreflect.Map, next func()) {
	keys := make([]protoreflect.MapKey, 0, m.Len())
	m.Range(func(k protoreflect.MapKey, _ protoreflect.Value) bool {
		keys = append(keys, k)
		return true
	})
	slices.SortFunc(keys, compareKeys)

	kd, vd := fd.MapKey(), fd.MapValue()
	for _, k := range keys {
		next()
		v := m.Get(k)

		s.Text(fd.TextName() + " ")
		s.Open(pretty.Consistent, "{")
		s.Break(0)
		s.Text(kd.TextName() + ": " + scalar(kd, k.Value()))
		s.Break(1)
		if isMessage(vd) {
			message(s, vd.TextName(), v.Message())
		} else {
			s.Text(vd.TextName() + ": " + scalar(vd, v))
		}
		s.Close("}")
	}
}

// empty returns whether m has no populated fields.
func empty(m protoreflect.Message) bool {
	populated := false
	m.Range(func(protoreflect.FieldDescriptor, protoreflect.Value) bool {
		populated = true
		return false
	})
	return !populated
}

func compareKeys(a, b protoreflect.MapKey) int {
	switch v := a.Interface().(type) {
	case bool:
		return cmp.Compare(boolInt(v), boolInt(b.Bool()))
	case int32, int64:
		return cmp.Compare(a.Int(), b.Int())
	case uint32, uint64:
		return cmp.Compare(a.Uint(), b.Uint())
	default:
		return strings.Compare(a.String(), b.String())
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isMessage(fd protoreflect.FieldDescriptor) bool {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return true
	default:
		return false
	}
}

// scalar formats a non-message value.
func scalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) string {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return strconv.FormatBool(v.Bool())

	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return strconv.FormatInt(v.Int(), 10)

	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return strconv.FormatUint(v.Uint(), 10)

	case protoreflect.FloatKind:
		return formatFloat(v.Float(), 32)

	case protoreflect.DoubleKind:
		return formatFloat(v.Float(), 64)

	case protoreflect.StringKind:
		return strconv.Quote(v.String())

	case protoreflect.BytesKind:
		return strconv.Quote(string(v.Bytes()))

	case protoreflect.EnumKind:
		n := v.Enum()
		if ev := fd.Enum().Values().ByNumber(n); ev != nil {
			return string(ev.Name())
		}
		return strconv.Itoa(int(n))

	default:
		return v.String()
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	default:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
}
