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
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Timestamp is the CEL timestamp value.
type Timestamp struct {
	time.Time
}

// TimestampType is the type of Timestamp.
var TimestampType = NewTypeValue("google.protobuf.Timestamp",
	traits.AdderType, traits.ComparerType, traits.SubtractorType)

// minUnixTime/maxUnixTime bound a timestamp to roughly ±3,652,500 days
// (§3), the same bound the teacher's own well-known-type conversion uses.
const (
	minUnixTime int64 = -62135596800
	maxUnixTime int64 = 253402300799
)

func (t Timestamp) Add(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	if !ok {
		return noSuchOverload(TimestampType, "add", other)
	}
	v, ok := addTimeDurationChecked(t.Time, o.Duration)
	if !ok {
		return NewErr("timestamp overflow")
	}
	return Timestamp{v}
}

func (t Timestamp) Subtract(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Duration:
		v, ok := subtractTimeDurationChecked(t.Time, o.Duration)
		if !ok {
			return NewErr("timestamp overflow")
		}
		return Timestamp{v}
	case Timestamp:
		v, ok := subtractTimeChecked(t.Time, o.Time)
		if !ok {
			return NewErr("timestamp overflow")
		}
		return Duration{v}
	}
	return noSuchOverload(TimestampType, "subtract", other)
}

func (t Timestamp) Compare(other ref.Val) ref.Val {
	o, ok := other.(Timestamp)
	if !ok {
		return noSuchOverload(TimestampType, "compare", other)
	}
	switch {
	case t.Time.Before(o.Time):
		return IntNegOne
	case t.Time.After(o.Time):
		return IntOne
	default:
		return IntZero
	}
}

func (t Timestamp) Equal(other ref.Val) ref.Val {
	o, ok := other.(Timestamp)
	return Bool(ok && t.Time.Equal(o.Time))
}

func (t Timestamp) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc {
	case timestampPBType:
		return timestamppb.New(t.Time), nil
	case timeGoType:
		return t.Time, nil
	}
	return nil, conversionError(TimestampType, typeDesc)
}

func (t Timestamp) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case TimestampType:
		return t
	case StringType:
		return String(t.Time.Format(time.RFC3339Nano))
	case TypeType:
		return TimestampType
	}
	return NewErr("type conversion error from 'timestamp' to '%s'", typeVal.TypeName())
}

func (t Timestamp) Type() ref.Type { return TimestampType }
func (t Timestamp) Value() any     { return t.Time }
func (t Timestamp) String() string { return t.Time.Format(time.RFC3339Nano) }

var (
	timestampPBType = reflect.TypeOf(&timestamppb.Timestamp{})
	timeGoType      = reflect.TypeOf(time.Time{})
)

// The following helpers break a time.Time/time.Duration pair into
// second+nanosecond components to perform overflow-checked arithmetic
// without risking intermediate int64 overflow, mirroring the teacher's
// common/types/overflow.go.

func addTimeDurationChecked(x time.Time, y time.Duration) (time.Time, bool) {
	sec1 := x.Truncate(time.Second).Unix()
	nsec1 := x.Sub(x.Truncate(time.Second)).Nanoseconds()

	sec2 := int64(y) / int64(time.Second)
	nsec2 := int64(y) % int64(time.Second)

	sec, ok := addInt64Checked(sec1, sec2)
	if !ok {
		return time.Time{}, false
	}
	nsec := nsec1 + nsec2
	if nsec < 0 || nsec >= int64(time.Second) {
		sec, ok = addInt64Checked(sec, nsec/int64(time.Second))
		if !ok {
			return time.Time{}, false
		}
		nsec -= (nsec / int64(time.Second)) * int64(time.Second)
		if nsec < 0 {
			sec, ok = addInt64Checked(sec, -1)
			if !ok {
				return time.Time{}, false
			}
			nsec += int64(time.Second)
		}
	}
	if sec < minUnixTime || sec > maxUnixTime {
		return time.Time{}, false
	}
	return time.Unix(sec, nsec).In(x.Location()), true
}

func subtractTimeChecked(x, y time.Time) (time.Duration, bool) {
	sec1 := x.Truncate(time.Second).Unix()
	nsec1 := x.Sub(x.Truncate(time.Second)).Nanoseconds()
	sec2 := y.Truncate(time.Second).Unix()
	nsec2 := y.Sub(y.Truncate(time.Second)).Nanoseconds()

	sec, ok := subtractInt64Checked(sec1, sec2)
	if !ok {
		return 0, false
	}
	nsec := nsec1 - nsec2
	if nsec < 0 || nsec >= int64(time.Second) {
		sec, ok = addInt64Checked(sec, nsec/int64(time.Second))
		if !ok {
			return 0, false
		}
		nsec -= (nsec / int64(time.Second)) * int64(time.Second)
		if nsec < 0 {
			sec, ok = addInt64Checked(sec, -1)
			if !ok {
				return 0, false
			}
			nsec += int64(time.Second)
		}
	}
	tsec, ok := multiplyInt64Checked(sec, int64(time.Second))
	if !ok {
		return 0, false
	}
	val, ok := addInt64Checked(tsec, nsec)
	if !ok {
		return 0, false
	}
	return time.Duration(val), true
}

func subtractTimeDurationChecked(x time.Time, y time.Duration) (time.Time, bool) {
	val, ok := negateInt64Checked(int64(y))
	if !ok {
		return time.Time{}, false
	}
	return addTimeDurationChecked(x, time.Duration(val))
}
