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

import "testing"

func TestIntUintLosslessEqual(t *testing.T) {
	if !intUintLosslessEqual(5, 5) {
		t.Error("5 == 5u should be lossless-equal")
	}
	if intUintLosslessEqual(-1, 1) {
		t.Error("-1 should never equal an unsigned value")
	}
}

func TestIntDoubleLosslessEqual(t *testing.T) {
	if !intDoubleLosslessEqual(5, 5.0) {
		t.Error("5 == 5.0 should be lossless-equal")
	}
	if intDoubleLosslessEqual(5, 5.5) {
		t.Error("5 should not equal 5.5")
	}
	if intDoubleLosslessEqual(5, nan()) {
		t.Error("NaN should never be lossless-equal to an int")
	}
}

func TestUintDoubleLosslessEqual(t *testing.T) {
	if !uintDoubleLosslessEqual(5, 5.0) {
		t.Error("5u == 5.0 should be lossless-equal")
	}
	if uintDoubleLosslessEqual(5, -1.0) {
		t.Error("a uint should never equal a negative double")
	}
}

func TestCompareIntUint(t *testing.T) {
	if compareIntUint(-1, 0) != IntNegOne {
		t.Error("a negative int must compare less than any uint")
	}
	if compareIntUint(5, 3) != IntOne {
		t.Error("5 should compare greater than 3u")
	}
	if compareIntUint(3, 3) != IntZero {
		t.Error("3 should compare equal to 3u")
	}
}

func TestCompareIntDoubleNaN(t *testing.T) {
	got := compareIntDouble(1, nan())
	if !IsError(got) {
		t.Errorf("comparing against NaN should yield an Err, got %v", got)
	}
}

func TestNegateCompare(t *testing.T) {
	if negateCompare(IntNegOne) != IntOne {
		t.Error("negateCompare(-1) should be 1")
	}
	if negateCompare(IntZero) != IntZero {
		t.Error("negateCompare(0) should be 0")
	}
	err := NewErr("boom")
	if negateCompare(err) != err {
		t.Error("negateCompare should pass a non-Int result through unchanged")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
