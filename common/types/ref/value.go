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

// Package ref defines the contracts that the value model and the external
// collaborators (type providers, value providers) are built against.
package ref

import "reflect"

// Type represents the runtime type tag of a Val.
//
// Types are compared by identity: two Vals share a type iff their Type()
// values are ==, which holds for all of the built-in singletons and for
// every struct type name registered through a TypeProvider.
type Type interface {
	// HasTrait reports whether the type supports the given trait mask bit.
	HasTrait(trait int) bool

	// TypeName returns the fully qualified name of the type, e.g. "int" or
	// "google.protobuf.Duration".
	TypeName() string
}

// Val is the tagged-union runtime representation of a CEL value (§3, C1).
//
// Every concrete value variant (Int, Uint, Double, String, ...) as well as
// the non-value carriers Err and Unknown implement Val, so that the
// evaluator never needs a type switch to decide whether a slot holds data,
// an error, or an unknown: the tri-valued algebra (§4.5) operates uniformly
// on Val.
type Val interface {
	// ConvertToNative adapts the value to a native Go representation
	// matching typeDesc, e.g. for bridging into a ValueProvider or for
	// well-known-type (structpb/timestamppb/durationpb) adaptation.
	ConvertToNative(typeDesc reflect.Type) (any, error)

	// ConvertToType attempts a CEL-level conversion, such as `int(x)`.
	// Returns an Err value (never a Go error) on failure.
	ConvertToType(typeVal Type) Val

	// Equal implements CEL's homogeneous-with-numeric-exception equality
	// (§4.1). Returns a Bool, or an Err/Unknown if the comparison itself
	// could not be carried out.
	Equal(other Val) Val

	// Type returns the runtime type tag of the value.
	Type() Type

	// Value returns the unwrapped native Go value backing this Val.
	Value() any
}
