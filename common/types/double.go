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
	"strconv"

	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
)

// Double is the CEL double-precision floating point value.
type Double float64

// DoubleType is the type of Double.
var DoubleType = NewTypeValue("double",
	traits.AdderType, traits.ComparerType, traits.DividerType,
	traits.MultiplierType, traits.NegatorType, traits.SubtractorType)

func (d Double) Add(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return noSuchOverload(DoubleType, "add", other)
	}
	return d + o
}

func (d Double) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return noSuchOverload(DoubleType, "subtract", other)
	}
	return d - o
}

func (d Double) Multiply(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return noSuchOverload(DoubleType, "multiply", other)
	}
	return d * o
}

func (d Double) Divide(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return noSuchOverload(DoubleType, "divide", other)
	}
	return d / o
}

func (d Double) Negate() ref.Val { return -d }

// Compare implements NaN-is-incomparable ordered comparison and
// heterogeneous comparison against Int/Uint (§4.1).
func (d Double) Compare(other ref.Val) ref.Val {
	if math.IsNaN(float64(d)) {
		return NewErr("NaN values cannot be ordered")
	}
	switch o := other.(type) {
	case Double:
		if math.IsNaN(float64(o)) {
			return NewErr("NaN values cannot be ordered")
		}
		switch {
		case d < o:
			return IntNegOne
		case d > o:
			return IntOne
		default:
			return IntZero
		}
	case Int:
		return negateCompare(compareIntDouble(int64(o), float64(d)))
	case Uint:
		return negateCompare(compareUintDouble(uint64(o), float64(d)))
	}
	return noSuchOverload(DoubleType, "compare", other)
}

func (d Double) Equal(other ref.Val) ref.Val {
	if math.IsNaN(float64(d)) {
		return False
	}
	switch o := other.(type) {
	case Double:
		return Bool(!math.IsNaN(float64(o)) && d == o)
	case Int:
		return Bool(intDoubleLosslessEqual(int64(o), float64(d)))
	case Uint:
		return Bool(uintDoubleLosslessEqual(uint64(o), float64(d)))
	}
	return False
}

func (d Double) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(float64(d)).Convert(typeDesc).Interface(), nil
	case reflect.Interface:
		if reflect.TypeOf(d).Implements(typeDesc) {
			return d, nil
		}
	}
	return nil, conversionError(DoubleType, typeDesc)
}

func (d Double) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case DoubleType:
		return d
	case IntType:
		if d < math.MinInt64 || d > math.MaxInt64 || math.IsNaN(float64(d)) {
			return NewErrKind(celerr.Overflow, "range error converting %v to int", float64(d))
		}
		return Int(d)
	case UintType:
		if d < 0 || d > math.MaxUint64 || math.IsNaN(float64(d)) {
			return NewErrKind(celerr.Overflow, "range error converting %v to uint", float64(d))
		}
		return Uint(d)
	case StringType:
		return String(strconv.FormatFloat(float64(d), 'g', -1, 64))
	case TypeType:
		return DoubleType
	}
	return NewErr("type conversion error from 'double' to '%s'", typeVal.TypeName())
}

func (d Double) Type() ref.Type { return DoubleType }
func (d Double) Value() any     { return float64(d) }
func (d Double) String() string { return fmt.Sprintf("%v", float64(d)) }
