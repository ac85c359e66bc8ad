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

func TestBytesAddConcatenates(t *testing.T) {
	got := Bytes("ab").Add(Bytes("cd"))
	if string(got.(Bytes)) != "abcd" {
		t.Errorf("Add() = %q, want \"abcd\"", got)
	}
}

func TestBytesAddWrongType(t *testing.T) {
	if !IsError(Bytes("ab").Add(Int(1))) {
		t.Error("Bytes.Add(Int) should be an Err")
	}
}

func TestBytesCompareAndEqual(t *testing.T) {
	if Bytes("a").Compare(Bytes("b")) != IntNegOne {
		t.Error("\"a\" should compare less than \"b\"")
	}
	if Bytes("ab").Equal(Bytes("ab")) != True {
		t.Error("identical byte strings should be equal")
	}
	if Bytes("ab").Equal(Bytes("cd")) != False {
		t.Error("different byte strings should not be equal")
	}
}

func TestBytesSize(t *testing.T) {
	if Bytes("abc").Size() != Int(3) {
		t.Errorf("Size() = %v, want 3", Bytes("abc").Size())
	}
}

func TestBytesConvertToType(t *testing.T) {
	if Bytes("ab").ConvertToType(StringType) != String("ab") {
		t.Error("bytes converted to string should preserve content")
	}
	if !IsError(Bytes("ab").ConvertToType(IntType)) {
		t.Error("converting bytes to Int should be an Err")
	}
}
