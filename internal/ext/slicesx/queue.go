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

package slicesx

import "github.com/bufbuild/pretty/internal/ext/bitsx"

// Queue is a growable ring buffer.
//
// Values are pushed at the back and popped from either end, so a Queue can
// serve as a stack whose oldest entries can be discarded from the bottom.
//
// A zero [Queue] is empty and ready to use.
type Queue[E any] struct {
	buf        []E // Invariant: len(buf) is always a power of 2, or zero.
	start, end int
}

// Len returns the number of elements currently in the buffer.
func (q *Queue[E]) Len() int {
	if q.start > q.end {
		// |xxx------xxxx|
		//     ^end  ^start
		return len(q.buf) - q.start + q.end
	}
	// |---xxxxxxx---|
	//     ^start ^end
	return q.end - q.start
}

// Cap returns the number of elements the buffer can hold before it grows.
func (q *Queue[E]) Cap() int {
	if len(q.buf) == 0 {
		return 0
	}
	return len(q.buf) - 1
}

// Reserve ensures that n more elements can be pushed without growing.
func (q *Queue[E]) Reserve(n int) {
	if q.Len()+n <= q.Cap() {
		return
	}
	q.resize(int(bitsx.CeilPowerOfTwo(uint(q.Len() + n + 1))))
}

// Front returns a pointer to the oldest element, or nil if the queue is
// empty.
func (q *Queue[E]) Front() *E {
	if q.start == q.end {
		return nil
	}
	return &q.buf[q.start]
}

// Back returns a pointer to the newest element, or nil if the queue is
// empty.
func (q *Queue[E]) Back() *E {
	if q.start == q.end {
		return nil
	}
	return &q.buf[q.mask(q.end-1)]
}

// PushBack appends v after the newest element.
func (q *Queue[E]) PushBack(v E) {
	q.Reserve(1)
	q.buf[q.end] = v
	q.end = q.mask(q.end + 1)
}

// PopFront removes and returns the oldest element.
func (q *Queue[E]) PopFront() (E, bool) {
	if q.start == q.end {
		var z E
		return z, false
	}
	v, _ := Take(q.buf, q.start)
	q.start = q.mask(q.start + 1)
	return v, true
}

// PopBack removes and returns the newest element.
func (q *Queue[E]) PopBack() (E, bool) {
	if q.start == q.end {
		var z E
		return z, false
	}
	q.end = q.mask(q.end - 1)
	return Take(q.buf, q.end)
}

// mask wraps an index into the buffer. len(q.buf) is a power of two, so
// this also handles i == -1.
func (q *Queue[E]) mask(i int) int {
	return i & (len(q.buf) - 1)
}

func (q *Queue[E]) resize(n int) {
	old := q.buf
	q.buf = make([]E, n)

	var count int
	if q.start > q.end {
		count = copy(q.buf, old[q.start:])
		count += copy(q.buf[count:], old[:q.end])
	} else {
		count = copy(q.buf, old[q.start:q.end])
	}
	q.start, q.end = 0, count
}
