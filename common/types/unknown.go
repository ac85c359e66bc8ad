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

	"github.com/arcflow-dev/cel-rt/attribute"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// Unknown is the tri-valued algebra's third state (§3, C4): a value could
// not be produced because one or more of the attributes it depends on was
// declared unknown for this evaluation. It carries the Set of concrete
// attributes responsible, so a caller can inspect exactly what would need
// to be supplied to make the expression resolvable.
type Unknown struct {
	set *attribute.Set
}

// NewUnknown wraps a Set of contributing attributes as an Unknown value.
func NewUnknown(set *attribute.Set) *Unknown {
	return &Unknown{set: set}
}

// Set returns the attributes this Unknown is conditioned on.
func (u *Unknown) Set() *attribute.Set { return u.set }

// MergeUnknowns unions the Sets of two Unknown values, the rule used when
// a binary operator has to propagate unknown from both operands (§4.2).
func MergeUnknowns(a, b *Unknown) *Unknown {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return NewUnknown(a.set.Merge(b.set))
}

// IsUnknown reports whether val is the Unknown variant.
func IsUnknown(val ref.Val) bool {
	_, ok := val.(*Unknown)
	return ok
}

// ConvertToNative always fails: Unknown never escapes to a native Go
// value; a caller must check IsUnknown before attempting to materialize a
// result.
func (u *Unknown) ConvertToNative(typeDesc reflect.Type) (any, error) {
	return nil, conversionError(UnknownType, typeDesc)
}

// ConvertToType is the identity: like an error, Unknown cannot be coerced
// into some other CEL type and simply propagates (§4.5).
func (u *Unknown) ConvertToType(typeVal ref.Type) ref.Val { return u }

// Equal is the identity: Unknown participates in no equality comparison,
// it just propagates, mirroring how Err behaves (§4.1).
func (u *Unknown) Equal(other ref.Val) ref.Val { return u }

func (u *Unknown) Type() ref.Type { return UnknownType }
func (u *Unknown) Value() any     { return u.set }

func (u *Unknown) String() string {
	if u.set == nil {
		return "unknown{}"
	}
	return "unknown" + u.set.String()
}
