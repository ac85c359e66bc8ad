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

// Package types implements the CEL value model: the tagged Val union, its
// numeric coercion and equality rules, and the built-in container and
// wrapper representations (§3, §4.1, C1).
package types

import (
	"fmt"
	"reflect"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// typeValue is the concrete ref.Type implementation shared by every
// built-in type singleton and by struct types minted through a
// TypeProvider.
type typeValue struct {
	name      string
	traitMask int
}

// NewTypeValue constructs a named type with the given traits OR'd together.
func NewTypeValue(name string, traitBits ...int) ref.Type {
	mask := 0
	for _, t := range traitBits {
		mask |= t
	}
	return &typeValue{name: name, traitMask: mask}
}

func (t *typeValue) HasTrait(trait int) bool { return t.traitMask&trait == trait }
func (t *typeValue) TypeName() string        { return t.name }

// ConvertToNative implements ref.Val so that a Type can itself be held in
// a value slot (CEL's `type` is first-class, §3).
func (t *typeValue) ConvertToNative(typeDesc reflect.Type) (any, error) {
	return nil, fmt.Errorf("type conversion not supported for 'type'")
}

func (t *typeValue) ConvertToType(typeVal ref.Type) ref.Val {
	if typeVal == TypeType {
		return t
	}
	return NewErr("type conversion error from 'type' to '%s'", typeVal.TypeName())
}

func (t *typeValue) Equal(other ref.Val) ref.Val {
	o, ok := other.(*typeValue)
	return Bool(ok && o == t)
}

func (t *typeValue) Type() ref.Type { return TypeType }
func (t *typeValue) Value() any     { return t.name }
func (t *typeValue) String() string { return t.name }

var (
	// NullType is the type of the CEL null literal.
	NullType = NewTypeValue("null_type")
	// TypeType is the type of a first-class type value.
	TypeType = NewTypeValue("type")
	// ErrType is the type of an evaluation error carrier.
	ErrType = NewTypeValue("error")
	// UnknownType is the type of an unknown-marker value.
	UnknownType = NewTypeValue("unknown")
	// OptionalType is the type of optional<T> wrapper values.
	OptionalType = NewTypeValue("optional_type")
)

// TypeOf returns the ref.Type for any supported native Go value, used by
// the dispatcher to classify raw arguments before they have been adapted
// to Val (§4.3).
func TypeOf(v any) (ref.Type, bool) {
	switch v.(type) {
	case bool, Bool:
		return BoolType, true
	case int, int32, int64, Int:
		return IntType, true
	case uint, uint32, uint64, Uint:
		return UintType, true
	case float32, float64, Double:
		return DoubleType, true
	case string, String:
		return StringType, true
	case []byte, Bytes:
		return BytesType, true
	case Null:
		return NullType, true
	}
	if v == nil {
		return NullType, true
	}
	if val, ok := v.(ref.Val); ok {
		return val.Type(), true
	}
	return nil, false
}

// IsError returns whether elem represents the Err variant of Val.
func IsError(elem ref.Val) bool {
	if elem == nil {
		return false
	}
	_, ok := elem.(*Err)
	return ok
}

// IsErrorOrUnknown returns whether elem is an Err or Unknown.
func IsErrorOrUnknown(elem ref.Val) bool {
	return IsError(elem) || IsUnknown(elem)
}
