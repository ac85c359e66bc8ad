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
	"google.golang.org/protobuf/types/known/structpb"
)

// Null is the CEL null literal, distinct from an absent optional (§3).
type Null struct{}

// NullValue is the Null singleton.
var NullValue = Null{}

func (n Null) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc {
	case jsonValueType:
		return structpb.NewNullValue(), nil
	}
	if typeDesc.Kind() == reflect.Ptr {
		return nil, nil
	}
	return nil, conversionError(NullType, typeDesc)
}

func (n Null) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case NullType:
		return n
	case StringType:
		return String("null")
	case TypeType:
		return NullType
	}
	return NewErr("type conversion error from 'null_type' to '%s'", typeVal.TypeName())
}

func (n Null) Equal(other ref.Val) ref.Val {
	_, ok := other.(Null)
	return Bool(ok)
}

func (n Null) Type() ref.Type { return NullType }
func (n Null) Value() any     { return nil }
func (n Null) String() string { return "null" }

var jsonValueType = reflect.TypeOf(&structpb.Value{})
