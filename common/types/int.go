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

// Int is the CEL signed 64-bit integer value (§3).
type Int int64

const (
	// IntZero, IntOne, IntNegOne are used as three-way comparison results
	// throughout the value model (§4.1) as well as ordinary Int literals.
	IntZero   = Int(0)
	IntOne    = Int(1)
	IntNegOne = Int(-1)

	intMin = Int(math.MinInt64)
)

// IntType is the type of Int.
var IntType = NewTypeValue("int",
	traits.AdderType, traits.ComparerType, traits.DividerType, traits.ModderType,
	traits.MultiplierType, traits.NegatorType, traits.SubtractorType)

func (i Int) Add(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return noSuchOverload(IntType, "add", other)
	}
	v, ok := addInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return noSuchOverload(IntType, "subtract", other)
	}
	v, ok := subtractInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Multiply(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return noSuchOverload(IntType, "multiply", other)
	}
	v, ok := multiplyInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Divide(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return noSuchOverload(IntType, "divide", other)
	}
	if o == IntZero {
		return NewErrKind(celerr.DivideByZero, "divide by zero")
	}
	v, ok := divideInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Modulo(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return noSuchOverload(IntType, "modulo", other)
	}
	if o == IntZero {
		return NewErrKind(celerr.DivideByZero, "modulus by zero")
	}
	v, ok := moduloInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(celerr.Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Negate() ref.Val {
	v, ok := negateInt64Checked(int64(i))
	if !ok {
		return NewErrKind(celerr.Overflow, "integer overflow")
	}
	return Int(v)
}

// Compare implements heterogeneous-with-Uint/Double comparison (§4.1) when
// the option is enabled at the call site; homogeneous Int comparison is
// always exact.
func (i Int) Compare(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Int:
		switch {
		case i < o:
			return IntNegOne
		case i > o:
			return IntOne
		default:
			return IntZero
		}
	case Uint:
		return compareIntUint(int64(i), uint64(o))
	case Double:
		return compareIntDouble(int64(i), float64(o))
	}
	return noSuchOverload(IntType, "compare", other)
}

func (i Int) Equal(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Int:
		return Bool(i == o)
	case Uint:
		return Bool(intUintLosslessEqual(int64(i), uint64(o)))
	case Double:
		return Bool(intDoubleLosslessEqual(int64(i), float64(o)))
	}
	return False
}

func (i Int) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(int64(i)).Convert(typeDesc).Interface(), nil
	case reflect.Interface:
		if reflect.TypeOf(i).Implements(typeDesc) {
			return i, nil
		}
	}
	return nil, conversionError(IntType, typeDesc)
}

func (i Int) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case IntType:
		return i
	case UintType:
		if i < 0 {
			return NewErrKind(celerr.Overflow, "range error converting %d to uint", int64(i))
		}
		return Uint(i)
	case DoubleType:
		return Double(i)
	case StringType:
		return String(fmt.Sprintf("%d", int64(i)))
	case TypeType:
		return IntType
	}
	return NewErr("type conversion error from 'int' to '%s'", typeVal.TypeName())
}

func (i Int) Type() ref.Type { return IntType }
func (i Int) Value() any     { return int64(i) }

func noSuchOverload(t ref.Type, op string, other ref.Val) ref.Val {
	return NewErrKind(celerr.NoSuchOverload, "no such overload: %s.%s(%s)", t.TypeName(), op, other.Type().TypeName())
}
