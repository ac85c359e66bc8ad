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

func TestDoubleArithmetic(t *testing.T) {
	if got := Double(1.5).Add(Double(2.5)); got != Double(4.0) {
		t.Errorf("1.5 + 2.5 = %v, want 4.0", got)
	}
	if got := Double(1.5).Negate(); got != Double(-1.5) {
		t.Errorf("Negate(1.5) = %v, want -1.5", got)
	}
}

func TestDoubleCompareNaN(t *testing.T) {
	if !IsError(Double(nan()).Compare(Double(1))) {
		t.Error("comparing NaN should be an Err")
	}
	if !IsError(Double(1).Compare(Double(nan()))) {
		t.Error("comparing against NaN should be an Err")
	}
}

func TestDoubleEqualNaNNeverEqual(t *testing.T) {
	if Double(nan()).Equal(Double(nan())) != False {
		t.Error("NaN should never equal anything, even another NaN")
	}
}

func TestDoubleEqualHeterogeneous(t *testing.T) {
	if Double(5.0).Equal(Int(5)) != True {
		t.Error("5.0 should equal 5")
	}
	if Double(5.5).Equal(Int(5)) != False {
		t.Error("5.5 should not equal 5")
	}
}

func TestDoubleConvertToTypeOutOfRange(t *testing.T) {
	if !IsError(Double(1e300).ConvertToType(IntType)) {
		t.Error("converting an out-of-range double to Int should overflow")
	}
	if !IsError(Double(-1.0).ConvertToType(UintType)) {
		t.Error("converting a negative double to Uint should overflow")
	}
}
