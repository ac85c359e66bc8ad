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

func TestNullEqual(t *testing.T) {
	if NullValue.Equal(NullValue) != True {
		t.Error("null should equal null")
	}
	if NullValue.Equal(Int(0)) != False {
		t.Error("null should not equal 0")
	}
}

func TestNullConvertToType(t *testing.T) {
	if NullValue.ConvertToType(StringType) != String("null") {
		t.Error("null converted to string should be \"null\"")
	}
	if !IsError(NullValue.ConvertToType(IntType)) {
		t.Error("converting null to Int should be an Err")
	}
}

func TestNullString(t *testing.T) {
	if NullValue.String() != "null" {
		t.Errorf("String() = %q, want \"null\"", NullValue.String())
	}
}
