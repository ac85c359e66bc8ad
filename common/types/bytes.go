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
	"bytes"
	"encoding/base64"
	"reflect"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
)

// Bytes is the CEL byte-string value.
type Bytes []byte

// BytesType is the type of Bytes.
var BytesType = NewTypeValue("bytes", traits.AdderType, traits.ComparerType, traits.SizerType)

func (b Bytes) Add(other ref.Val) ref.Val {
	o, ok := other.(Bytes)
	if !ok {
		return noSuchOverload(BytesType, "add", other)
	}
	return append(append(Bytes{}, b...), o...)
}

func (b Bytes) Compare(other ref.Val) ref.Val {
	o, ok := other.(Bytes)
	if !ok {
		return noSuchOverload(BytesType, "compare", other)
	}
	return Int(bytes.Compare(b, o))
}

func (b Bytes) Size() ref.Val { return Int(len(b)) }

func (b Bytes) Equal(other ref.Val) ref.Val {
	o, ok := other.(Bytes)
	return Bool(ok && bytes.Equal(b, o))
}

func (b Bytes) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc.Kind() == reflect.Slice && typeDesc.Elem().Kind() == reflect.Uint8 {
		return []byte(b), nil
	}
	return nil, conversionError(BytesType, typeDesc)
}

func (b Bytes) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case BytesType:
		return b
	case StringType:
		return String(b)
	case TypeType:
		return BytesType
	}
	return NewErr("type conversion error from 'bytes' to '%s'", typeVal.TypeName())
}

func (b Bytes) Type() ref.Type { return BytesType }
func (b Bytes) Value() any     { return []byte(b) }
func (b Bytes) String() string { return base64.StdEncoding.EncodeToString(b) }
