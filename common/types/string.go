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
	"strings"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
	"google.golang.org/protobuf/types/known/structpb"
)

// String is the CEL UTF-8 string value.
type String string

// StringType is the type of String.
var StringType = NewTypeValue("string",
	traits.AdderType, traits.ComparerType, traits.SizerType)

func (s String) Add(other ref.Val) ref.Val {
	o, ok := other.(String)
	if !ok {
		return noSuchOverload(StringType, "add", other)
	}
	return s + o
}

func (s String) Compare(other ref.Val) ref.Val {
	o, ok := other.(String)
	if !ok {
		return noSuchOverload(StringType, "compare", other)
	}
	return Int(strings.Compare(string(s), string(o)))
}

func (s String) Size() ref.Val {
	return Int(len([]rune(string(s))))
}

func (s String) Equal(other ref.Val) ref.Val {
	o, ok := other.(String)
	return Bool(ok && s == o)
}

func (s String) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.String:
		return string(s), nil
	case reflect.Ptr:
		if typeDesc == jsonValueType {
			return structpb.NewStringValue(string(s)), nil
		}
	}
	return nil, conversionError(StringType, typeDesc)
}

func (s String) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case StringType:
		return s
	case BytesType:
		return Bytes(s)
	case TypeType:
		return StringType
	}
	return NewErr("type conversion error from 'string' to '%s'", typeVal.TypeName())
}

func (s String) Type() ref.Type { return StringType }
func (s String) Value() any     { return string(s) }
func (s String) String() string { return string(s) }
