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

// Package slicesx contains extensions to Go's package slices.
package slicesx

// Last returns the last element of the slice, unless it is empty, in which
// case it returns the zero value and false.
func Last[S ~[]E, E any](s S) (element E, ok bool) {
	if len(s) == 0 {
		return element, false
	}
	return s[len(s)-1], true
}

// LastPointer is like [Last], but it returns a pointer to the last element
// instead, returning nil if s is empty.
func LastPointer[S ~[]E, E any](s S) *E {
	if len(s) == 0 {
		return nil
	}
	return &s[len(s)-1]
}

// Pop removes the last element of a slice and returns it.
//
// Returns the zero value and false if the slice is empty.
func Pop[S ~[]E, E any](s *S) (element E, ok bool) {
	element, ok = Last(*s)
	if !ok {
		return element, false
	}
	(*s)[len(*s)-1] = *new(E) // Release anything the element points to.
	*s = (*s)[:len(*s)-1]
	return element, true
}

// Take replaces s[i] with the zero value and returns what was there.
func Take[S ~[]E, E any](s S, i int) (element E, ok bool) {
	if i < 0 || i >= len(s) {
		return element, false
	}
	element, s[i] = s[i], *new(E)
	return element, true
}
