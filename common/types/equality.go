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

package types

import (
	"math"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// This file implements the lossless numeric equality/comparison rules of
// §4.1: int, uint, and double only compare equal, or order against one
// another, when the comparison does not require a lossy conversion on
// either side. These helpers back Int/Uint/Double's Equal and Compare
// methods as well as the numeric-normalized map key lookup in map.go.

// intUintLosslessEqual reports whether a signed int and an unsigned int
// represent the same non-negative integer.
func intUintLosslessEqual(i int64, u uint64) bool {
	if i < 0 {
		return false
	}
	return uint64(i) == u
}

// intDoubleLosslessEqual reports whether an int64 and a float64 represent
// exactly the same mathematical value.
func intDoubleLosslessEqual(i int64, d float64) bool {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return false
	}
	if d != math.Trunc(d) {
		return false
	}
	if d < math.MinInt64 || d > math.MaxInt64 {
		return false
	}
	return int64(d) == i
}

// uintDoubleLosslessEqual reports whether a uint64 and a float64 represent
// exactly the same mathematical value.
func uintDoubleLosslessEqual(u uint64, d float64) bool {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return false
	}
	if d != math.Trunc(d) {
		return false
	}
	if d > math.MaxUint64 {
		return false
	}
	return uint64(d) == u
}

// compareIntUint performs a three-way comparison of a signed and unsigned
// integer without loss, returning IntNegOne/IntZero/IntOne.
func compareIntUint(i int64, u uint64) ref.Val {
	if i < 0 {
		return IntNegOne
	}
	iu := uint64(i)
	switch {
	case iu < u:
		return IntNegOne
	case iu > u:
		return IntOne
	default:
		return IntZero
	}
}

// compareIntDouble performs a three-way comparison of an int64 against a
// float64; NaN is incomparable and yields an Err (§4.1).
func compareIntDouble(i int64, d float64) ref.Val {
	if math.IsNaN(d) {
		return NewErr("NaN values cannot be ordered")
	}
	df := float64(i)
	switch {
	case df < d:
		return IntNegOne
	case df > d:
		return IntOne
	default:
		return IntZero
	}
}

// compareUintDouble performs a three-way comparison of a uint64 against a
// float64.
func compareUintDouble(u uint64, d float64) ref.Val {
	if math.IsNaN(d) {
		return NewErr("NaN values cannot be ordered")
	}
	df := float64(u)
	switch {
	case df < d:
		return IntNegOne
	case df > d:
		return IntOne
	default:
		return IntZero
	}
}

// negateCompare flips the sign of a three-way comparison result, used when
// a Compare implementation delegates to the mirror-image helper above. A
// non-Int result (an Err from an unordered comparison) passes through
// unchanged.
func negateCompare(cmp ref.Val) ref.Val {
	i, ok := cmp.(Int)
	if !ok {
		return cmp
	}
	switch i {
	case IntNegOne:
		return IntOne
	case IntOne:
		return IntNegOne
	default:
		return i
	}
}
