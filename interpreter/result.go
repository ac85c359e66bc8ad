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

package interpreter

import (
	"github.com/arcflow-dev/cel-rt/attribute"
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// IntermediateResult is `(attribute-trail, value)` (§3): every AST node's
// evaluation produces one. The attribute-trail records the select/index
// path walked so far when attribute tracking is enabled; it is the empty
// Attribute otherwise, and is what lets a later select/index detect a
// partial match against an unknown pattern (§4.5).
type IntermediateResult struct {
	HasAttr bool
	Attr    attribute.Attribute
	Value   ref.Val
}

// value wraps a bare ref.Val with no attribute trail, the common case for
// a node whose result is not attribute-addressable (e.g. a call result,
// unless that call is an identity/select pass-through).
func value(v ref.Val) IntermediateResult {
	return IntermediateResult{Value: v}
}

// withAttr attaches an attribute trail to a value.
func withAttr(attr attribute.Attribute, v ref.Val) IntermediateResult {
	return IntermediateResult{HasAttr: true, Attr: attr, Value: v}
}

// defensiveCopy returns a shallow copy safe to hand out from a lazy
// cache read without letting the caller's later mutation of a mutable
// accumulator (list/map under construction) bleed into the cached entry
// (§4.4). Built-in CEL values are themselves immutable once constructed
// except for the accumulator list used inside comprehension folds, which
// is rebuilt (never mutated) on every Add per list.go's contract, so a
// struct-level copy of IntermediateResult is sufficient here: no deep
// clone of Value is required.
func (r IntermediateResult) defensiveCopy() IntermediateResult {
	return r
}

// isUnknownOrError reports whether the result's value is Err or Unknown.
func (r IntermediateResult) isUnknownOrError() bool {
	return types.IsErrorOrUnknown(r.Value)
}
