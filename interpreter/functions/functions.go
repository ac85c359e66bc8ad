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

// Package functions defines the dispatcher's notion of an Overload (§4.3,
// C5): an opaque id, its declared parameter types, its strictness, and
// its implementation.
package functions

import (
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// UnaryOp implements a single-argument overload.
type UnaryOp func(value ref.Val) ref.Val

// BinaryOp implements a two-argument overload.
type BinaryOp func(lhs, rhs ref.Val) ref.Val

// FunctionOp implements an overload of any arity, including zero.
type FunctionOp func(values ...ref.Val) ref.Val

// Overload is `(overload_id, parameter_type_list, is_strict,
// implementation)` per §4.3. Exactly one of Unary, Binary, or Function
// should be set; the dispatcher prefers the most specific one present.
type Overload struct {
	// ID uniquely names the overload (e.g. "string_startsWith_string");
	// opaque to the dispatcher, used only for diagnostics and explicit
	// overload-id dispatch.
	ID string

	// ArgTypes declares the expected runtime type of each parameter,
	// used for the canHandle assignability check. A nil entry means "any
	// type", matching the behavior required for null-literal arguments.
	ArgTypes []ref.Type

	// NonStrict, when true, allows this overload's canHandle to accept
	// Err/Unknown arguments instead of rejecting the call outright. Only
	// the short-circuit primitives (&&, ||, @not_strictly_false) and a
	// handful of built-ins are non-strict; user overloads default to
	// strict (§4.3).
	NonStrict bool

	Unary    UnaryOp
	Binary   BinaryOp
	Function FunctionOp
}

// Arity returns the overload's declared parameter count.
func (o *Overload) Arity() int { return len(o.ArgTypes) }

// Invoke calls whichever of Unary/Binary/Function is set, matching the
// arity of args. Callers are expected to have already run CanHandle.
func (o *Overload) Invoke(args []ref.Val) ref.Val {
	switch {
	case o.Unary != nil && len(args) == 1:
		return o.Unary(args[0])
	case o.Binary != nil && len(args) == 2:
		return o.Binary(args[0], args[1])
	case o.Function != nil:
		return o.Function(args...)
	default:
		return nil
	}
}

// CanHandle implements the §4.3 canHandle predicate: arity match, then
// per-argument null/error-unknown/type-assignability checks.
func (o *Overload) CanHandle(args []ref.Val) bool {
	if len(args) != len(o.ArgTypes) {
		return false
	}
	for i, arg := range args {
		want := o.ArgTypes[i]
		if !argMatches(want, arg, o.NonStrict) {
			return false
		}
	}
	return true
}

// argMatches reports whether a single runtime argument satisfies a
// declared parameter type per the §4.3 rules.
func argMatches(want ref.Type, arg ref.Val, nonStrict bool) bool {
	if arg == nil {
		return false
	}
	if _, isNull := arg.(types.Null); isNull {
		return want == nil || want == types.MapType || want == types.OptionalType
	}
	if types.IsErrorOrUnknown(arg) {
		return nonStrict
	}
	if want == nil {
		return true
	}
	return arg.Type() == want
}
