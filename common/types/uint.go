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
	"fmt"
	"math"
	"reflect"

	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
)

// Uint is the CEL unsigned 64-bit integer value, kept distinct from Int at
// the type-dispatch level per §3/§4.1.
type Uint uint64

// UintType is the type of Uint.
var UintType = NewTypeValue("uint",
	traits.AdderType, traits.ComparerType, traits.DividerType, traits.ModderType,
	traits.MultiplierType, traits.SubtractorType)

func (u Uint) Add(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return noSuchOverload(UintType, "add", other)
	}
	v, ok := addUint64Checked(uint64(u), uint64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "unsigned integer overflow")
	}
	return Uint(v)
}

func (u Uint) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return noSuchOverload(UintType, "subtract", other)
	}
	v, ok := subtractUint64Checked(uint64(u), uint64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "unsigned integer underflow")
	}
	return Uint(v)
}

func (u Uint) Multiply(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return noSuchOverload(UintType, "multiply", other)
	}
	v, ok := multiplyUint64Checked(uint64(u), uint64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "unsigned integer overflow")
	}
	return Uint(v)
}

func (u Uint) Divide(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return noSuchOverload(UintType, "divide", other)
	}
	if o == 0 {
		return NewErrKind(celerr.DivideByZero, "divide by zero")
	}
	return u / o
}

func (u Uint) Modulo(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return noSuchOverload(UintType, "modulo", other)
	}
	if o == 0 {
		return NewErrKind(celerr.DivideByZero, "modulus by zero")
	}
	return u % o
}

func (u Uint) Compare(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Uint:
		switch {
		case u < o:
			return IntNegOne
		case u > o:
			return IntOne
		default:
			return IntZero
		}
	case Int:
		cmp := compareIntUint(int64(o), uint64(u))
		return negateCompare(cmp)
	case Double:
		return compareUintDouble(uint64(u), float64(o))
	}
	return noSuchOverload(UintType, "compare", other)
}

func (u Uint) Equal(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Uint:
		return Bool(u == o)
	case Int:
		return Bool(intUintLosslessEqual(int64(o), uint64(u)))
	case Double:
		return Bool(uintDoubleLosslessEqual(uint64(u), float64(o)))
	}
	return False
}

func (u Uint) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(uint64(u)).Convert(typeDesc).Interface(), nil
	case reflect.Interface:
		if reflect.TypeOf(u).Implements(typeDesc) {
			return u, nil
		}
	}
	return nil, conversionError(UintType, typeDesc)
}

func (u Uint) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case UintType:
		return u
	case IntType:
		if u > Uint(math.MaxInt64) {
			return NewErrKind(celerr.Overflow, "range error converting %d to int", uint64(u))
		}
		return Int(u)
	case DoubleType:
		return Double(u)
	case StringType:
		return String(fmt.Sprintf("%d", uint64(u)))
	case TypeType:
		return UintType
	}
	return NewErr("type conversion error from 'uint' to '%s'", typeVal.TypeName())
}

func (u Uint) Type() ref.Type { return UintType }
func (u Uint) Value() any     { return uint64(u) }
