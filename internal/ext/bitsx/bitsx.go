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

// Package bitsx contains extensions to Go's package math/bits.
package bitsx

import (
	"math"
	"math/bits"
)

// CeilPowerOfTwo rounds n up to a power of 2. Zero rounds up to 1.
func CeilPowerOfTwo(n uint) uint {
	if bits.OnesCount(n) == 1 {
		return n
	}
	// For n == 0, LeadingZeros returns 64 and the shift produces zero, so the
	// result is 1.
	return uint(math.MaxUint)>>uint(bits.LeadingZeros(n)) + 1
}
