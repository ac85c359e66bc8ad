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

func TestBoolNegate(t *testing.T) {
	if True.Negate() != False {
		t.Error("!true should be false")
	}
}

func TestBoolEqual(t *testing.T) {
	if True.Equal(True) != True {
		t.Error("true == true should be true")
	}
	if True.Equal(Int(1)) != False {
		t.Error("Bool.Equal against a non-Bool should be false, not a type-coerced comparison")
	}
}

func TestBoolCompare(t *testing.T) {
	if False.Compare(True) != IntNegOne {
		t.Error("false should compare less than true")
	}
	if True.Compare(False) != IntOne {
		t.Error("true should compare greater than false")
	}
	if True.Compare(True) != IntZero {
		t.Error("true should compare equal to true")
	}
	if !IsError(True.Compare(Int(1))) {
		t.Error("comparing Bool against a non-Bool should be an Err")
	}
}

func TestBoolConvertToType(t *testing.T) {
	if True.ConvertToType(StringType) != String("true") {
		t.Error("true converted to string should be \"true\"")
	}
	if False.ConvertToType(StringType) != String("false") {
		t.Error("false converted to string should be \"false\"")
	}
	if !IsError(True.ConvertToType(IntType)) {
		t.Error("converting Bool to Int should be an Err")
	}
}
