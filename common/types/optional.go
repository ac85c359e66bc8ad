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
)

// Optional is the optional<T> wrapper value (§3): present-with-a-value or
// absent, distinct from Null which is always present.
type Optional struct {
	hasValue bool
	value    ref.Val
}

// OptionalOf wraps a present value.
func OptionalOf(v ref.Val) *Optional { return &Optional{hasValue: true, value: v} }

// OptionalNone is the absent singleton.
var OptionalNone = &Optional{}

// HasValue reports whether the optional carries a value.
func (o *Optional) HasValue() bool { return o.hasValue }

// GetValue returns the wrapped value, or an Err if absent.
func (o *Optional) GetValue() ref.Val {
	if !o.hasValue {
		return NewErr("optional.none() dereferenced")
	}
	return o.value
}

func (o *Optional) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if !o.hasValue {
		return nil, nil
	}
	return o.value.ConvertToNative(typeDesc)
}

func (o *Optional) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case OptionalType:
		return o
	case TypeType:
		return OptionalType
	}
	return NewErr("type conversion error from 'optional_type' to '%s'", typeVal.TypeName())
}

func (o *Optional) Equal(other ref.Val) ref.Val {
	oo, ok := other.(*Optional)
	if !ok {
		return False
	}
	if o.hasValue != oo.hasValue {
		return False
	}
	if !o.hasValue {
		return True
	}
	return o.value.Equal(oo.value)
}

func (o *Optional) Type() ref.Type { return OptionalType }
func (o *Optional) Value() any {
	if !o.hasValue {
		return nil
	}
	return o.value.Value()
}
