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

// Package traits defines the optional capability interfaces a ref.Val may
// implement, and the bitmask used to advertise them on a ref.Type without
// reflection.
package traits

import "github.com/arcflow-dev/cel-rt/common/types/ref"

// Trait bitmask values, combined on a ref.Type via HasTrait.
const (
	AdderType = 1 << iota
	ComparerType
	DividerType
	IndexerType
	IterableType
	ModderType
	MultiplierType
	NegatorType
	SizerType
	SubtractorType
	ContainerType
	FieldTesterType
	MapperType
)

// Adder supports `+`.
type Adder interface {
	Add(other ref.Val) ref.Val
}

// Subtractor supports `-`.
type Subtractor interface {
	Subtract(subtrahend ref.Val) ref.Val
}

// Negator supports unary `-`.
type Negator interface {
	Negate() ref.Val
}

// Multiplier supports `*`.
type Multiplier interface {
	Multiply(other ref.Val) ref.Val
}

// Divider supports `/`.
type Divider interface {
	Divide(other ref.Val) ref.Val
}

// Modder supports `%`.
type Modder interface {
	Modulo(other ref.Val) ref.Val
}

// Comparer supports `<`, `<=`, `>`, `>=` via a three-way Compare. A return
// value outside {IntNegOne, IntZero, IntOne} (i.e. an Err) indicates the
// values are not comparable.
type Comparer interface {
	Compare(other ref.Val) ref.Val
}

// Indexer supports `x[i]` for list-like or map-like values.
type Indexer interface {
	Get(index ref.Val) ref.Val
}

// Sizer supports `size(x)`.
type Sizer interface {
	Size() ref.Val
}

// Container supports `x in y`.
type Container interface {
	Contains(elem ref.Val) ref.Val
}

// FieldTester supports `has(x.f)` presence testing.
type FieldTester interface {
	IsSet(field ref.Val) ref.Val
}

// Iterable produces an Iterator over a list or map value.
type Iterable interface {
	Iterator() Iterator
}

// Iterator walks the elements of a list (values) or map (keys).
type Iterator interface {
	HasNext() ref.Val
	Next() ref.Val
}

// Lister is the full capability set of a CEL list value.
type Lister interface {
	ref.Val
	Adder
	Container
	Indexer
	Iterable
	Sizer
}

// Mapper is the full capability set of a CEL map value.
type Mapper interface {
	ref.Val
	Container
	Indexer
	Iterable
	Sizer

	// Find performs the numeric-normalized key lookup described in §4.1.
	Find(key ref.Val) (ref.Val, bool)
}
