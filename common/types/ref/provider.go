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

package ref

// TypeProvider resolves named struct/enum types for `type(x)` and for
// type-literal references in a checked AST's reference map (§6).
//
// Descriptor resolution and message construction internals are explicitly
// out of scope for the evaluation core (§1); the core only ever consumes
// this interface.
type TypeProvider interface {
	// FindType looks up a named type, returning false if unknown.
	FindType(typeName string) (Type, bool)

	// FindFieldType returns the field's type and presence-support flag for
	// a struct type, or false if the field does not exist.
	FindFieldType(structType, fieldName string) (*FieldType, bool)
}

// ValueProvider constructs struct-typed values and performs field selection
// and presence-testing on them (§6).
type ValueProvider interface {
	// NewValue builds a new struct instance from a type name and a map of
	// field initializers, or an Err value if construction fails.
	NewValue(typeName string, fields map[string]Val) Val

	// SelectField returns the value of a field on a struct-typed value.
	SelectField(obj Val, field string) Val

	// HasField reports whether a field on a struct-typed value is set.
	HasField(obj Val, field string) (bool, error)
}

// TypeAdapter converts native Go values into their CEL Val representation.
// Every built-in container and struct bridge in this module implements or
// consumes a TypeAdapter so heterogeneous native inputs (maps, slices,
// protobuf well-known types) are normalized to Val. Conversion happens
// when NativeToValue is called, not on access: the default adapter
// converts nested slices and maps in full, and NewActivationFromMap
// adapts every binding up front.
type TypeAdapter interface {
	NativeToValue(value any) Val
}

// FieldType describes a struct field's declared type and whether
// presence-testing (`has(x.f)`) is supported for it.
type FieldType struct {
	// SupportsPresence indicates whether has() is meaningful for the field.
	SupportsPresence bool

	// Type is the declared CEL type of the field.
	Type Type
}
