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

func TestStringAddConcatenates(t *testing.T) {
	if got := String("foo").Add(String("bar")); got != String("foobar") {
		t.Errorf("Add() = %v, want foobar", got)
	}
}

func TestStringSizeCountsRunes(t *testing.T) {
	if got := String("héllo").Size(); got != Int(5) {
		t.Errorf("Size(héllo) = %v, want 5 (rune count, not byte count)", got)
	}
}

func TestStringCompareAndEqual(t *testing.T) {
	if String("a").Compare(String("b")) != IntNegOne {
		t.Error("\"a\" should compare less than \"b\"")
	}
	if String("x").Equal(String("x")) != True {
		t.Error("identical strings should be equal")
	}
	if String("x").Equal(Int(1)) != False {
		t.Error("String.Equal against a non-String should be false")
	}
}

func TestStringConvertToType(t *testing.T) {
	if got := String("ab").ConvertToType(BytesType); string(got.(Bytes)) != "ab" {
		t.Errorf("string converted to bytes = %v, want ab", got)
	}
	if !IsError(String("ab").ConvertToType(IntType)) {
		t.Error("converting string to Int via ConvertToType should be an Err (no parsing overload here)")
	}
}
