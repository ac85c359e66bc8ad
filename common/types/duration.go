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
	"time"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
	"google.golang.org/protobuf/types/known/durationpb"
)

// Duration is the CEL duration value: a signed span of seconds+nanos,
// represented natively as a time.Duration. §3 bounds it to ±3,652,500
// days; that range comfortably exceeds time.Duration's own int64-
// nanosecond range, so the representable range here is the (smaller)
// native one, matching the teacher's own implementation choice.
type Duration struct {
	time.Duration
}

// DurationType is the type of Duration.
var DurationType = NewTypeValue("google.protobuf.Duration",
	traits.AdderType, traits.ComparerType, traits.NegatorType, traits.SubtractorType)

func (d Duration) Add(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Duration:
		v, ok := addInt64Checked(int64(d.Duration), int64(o.Duration))
		if !ok {
			return NewErr("duration overflow")
		}
		return Duration{time.Duration(v)}
	case Timestamp:
		v, ok := addTimeDurationChecked(o.Time, d.Duration)
		if !ok {
			return NewErr("timestamp overflow")
		}
		return Timestamp{v}
	}
	return noSuchOverload(DurationType, "add", other)
}

func (d Duration) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	if !ok {
		return noSuchOverload(DurationType, "subtract", other)
	}
	v, ok := subtractInt64Checked(int64(d.Duration), int64(o.Duration))
	if !ok {
		return NewErr("duration overflow")
	}
	return Duration{time.Duration(v)}
}

func (d Duration) Negate() ref.Val {
	v, ok := negateInt64Checked(int64(d.Duration))
	if !ok {
		return NewErr("duration overflow")
	}
	return Duration{time.Duration(v)}
}

func (d Duration) Compare(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	if !ok {
		return noSuchOverload(DurationType, "compare", other)
	}
	switch {
	case d.Duration < o.Duration:
		return IntNegOne
	case d.Duration > o.Duration:
		return IntOne
	default:
		return IntZero
	}
}

func (d Duration) Equal(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	return Bool(ok && d.Duration == o.Duration)
}

func (d Duration) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc {
	case durationPBType:
		return durationpb.New(d.Duration), nil
	case durationGoType:
		return d.Duration, nil
	}
	return nil, conversionError(DurationType, typeDesc)
}

func (d Duration) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case DurationType:
		return d
	case IntType:
		return Int(d.Duration)
	case StringType:
		return String(d.Duration.String())
	case TypeType:
		return DurationType
	}
	return NewErr("type conversion error from 'duration' to '%s'", typeVal.TypeName())
}

func (d Duration) Type() ref.Type { return DurationType }
func (d Duration) Value() any     { return d.Duration }
func (d Duration) String() string { return d.Duration.String() }

var (
	durationPBType = reflect.TypeOf(&durationpb.Duration{})
	durationGoType = reflect.TypeOf(time.Duration(0))
)
