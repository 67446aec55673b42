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

// Package pretty is a layout engine for pretty-printing, in the style of
// Oppen's "Prettyprinting" and its descendants.
//
// A document is described as a [Stream] of [Token]s: literal text, breaks
// that may become newlines, hard breaks that always do, and nested groups.
// The function [Render] is the primary entry point. It lays the stream out in
// two passes:
//
//  1. The scan pass computes, for every group and break, how wide the content
//     it governs would be if printed on one line.
//
//  2. The print pass walks the stream left to right and uses those widths to
//     decide whether each group breaks, and whether each break becomes a
//     newline plus indentation or a run of spaces.
//
// Each group has a [Style]. In a [Consistent] group, either all of the
// group's direct breaks are taken, or none are. In an [Inconsistent] group,
// each break is taken only when the content that follows it, up to the next
// break, would not fit on the current line. This produces "fill" layouts,
// such as long argument lists that wrap like prose.
//
// A hard break forces every group that contains it to break.
//
// Types which know how to print themselves can implement [Printer], and
// append their children recursively via [Stream.Emit]. For example:
//
//	out, err := pretty.Sprint(pretty.Options{Margin: 40}, func(s *pretty.Stream) {
//		s.Group(pretty.Inconsistent, "call(", ")", func(s *pretty.Stream) {
//			s.Text("a,")
//			s.Break(1)
//			s.Text("b")
//		})
//	})
//
// Rendering never fails except for invalid [Options] and errors from the
// [io.Writer] passed to [Fprint].
package pretty
