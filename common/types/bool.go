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
	"reflect"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
)

// Bool is the CEL boolean value.
type Bool bool

const (
	// True is the Bool singleton for true.
	True = Bool(true)
	// False is the Bool singleton for false.
	False = Bool(false)
)

// BoolType is the type of True/False.
var BoolType = NewTypeValue("bool", traits.ComparerType, traits.NegatorType)

func (b Bool) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Bool:
		return bool(b), nil
	case reflect.Interface:
		if reflect.TypeOf(b).Implements(typeDesc) {
			return b, nil
		}
	}
	return nil, conversionError(BoolType, typeDesc)
}

func (b Bool) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case BoolType:
		return b
	case StringType:
		if b {
			return String("true")
		}
		return String("false")
	case TypeType:
		return BoolType
	}
	return NewErr("type conversion error from 'bool' to '%s'", typeVal.TypeName())
}

func (b Bool) Equal(other ref.Val) ref.Val {
	o, ok := other.(Bool)
	return Bool(ok && b == o)
}

func (b Bool) Negate() ref.Val { return !b }

func (b Bool) Compare(other ref.Val) ref.Val {
	o, ok := other.(Bool)
	if !ok {
		return NewErr("no such overload: bool.compare(%s)", other.Type().TypeName())
	}
	if b == o {
		return IntZero
	}
	if !bool(b) && bool(o) {
		return IntNegOne
	}
	return IntOne
}

func (b Bool) Type() ref.Type { return BoolType }
func (b Bool) Value() any     { return bool(b) }
