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

	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
)

// ListType is the type of a CEL list value.
var ListType = NewTypeValue("list",
	traits.AdderType, traits.ContainerType, traits.IndexerType,
	traits.IterableType, traits.SizerType)

// List is a concrete traits.Lister backed by a plain []ref.Val slice. It
// may be appended to via Add, which is how list comprehensions and
// `create-list` accumulation (§4.6) build up results; append never
// mutates the receiver, matching the value-semantics the checker assumes.
type List struct {
	elems []ref.Val
}

// NewList wraps an already-adapted slice of values as a CEL list.
func NewList(elems []ref.Val) traits.Lister {
	return &List{elems: elems}
}

var _ traits.Lister = &List{}

func (l *List) Add(other ref.Val) ref.Val {
	o, ok := other.(traits.Lister)
	if !ok {
		if types_isErrOrUnk(other) {
			return other
		}
		return noSuchOverload(ListType, "add", other)
	}
	out := make([]ref.Val, 0, l.len()+listLen(o))
	out = append(out, l.elems...)
	it := o.Iterator()
	for it.HasNext() == True {
		out = append(out, it.Next())
	}
	return NewList(out)
}

func (l *List) Contains(elem ref.Val) ref.Val {
	if types_isErrOrUnk(elem) {
		return elem
	}
	for _, e := range l.elems {
		if b, ok := e.Equal(elem).(Bool); ok && b {
			return True
		}
	}
	return False
}

func (l *List) Get(index ref.Val) ref.Val {
	i, ok := indexAsInt(index)
	if !ok {
		return NewErrKind(celerr.TypeMismatch, "unsupported index type '%s' for list", index.Type().TypeName())
	}
	if i < 0 || i >= int64(len(l.elems)) {
		return NewErrKind(celerr.IndexOutOfBounds, "index out of bounds: %d", i)
	}
	return l.elems[i]
}

func (l *List) Size() ref.Val { return Int(len(l.elems)) }
func (l *List) len() int      { return len(l.elems) }

func (l *List) Iterator() traits.Iterator {
	return &listIterator{elems: l.elems}
}

func (l *List) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc.Kind() != reflect.Slice {
		return nil, conversionError(ListType, typeDesc)
	}
	out := reflect.MakeSlice(typeDesc, len(l.elems), len(l.elems))
	for i, e := range l.elems {
		native, err := e.ConvertToNative(typeDesc.Elem())
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(reflect.ValueOf(native))
	}
	return out.Interface(), nil
}

func (l *List) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case ListType:
		return l
	case TypeType:
		return ListType
	}
	return NewErr("type conversion error from 'list' to '%s'", typeVal.TypeName())
}

func (l *List) Equal(other ref.Val) ref.Val {
	o, ok := other.(traits.Lister)
	if !ok {
		return False
	}
	if l.Size().(Int) != o.Size().(Int) {
		return False
	}
	it := o.Iterator()
	for _, e := range l.elems {
		if !it.HasNext().(Bool) {
			return False
		}
		oe := it.Next()
		if b, ok := e.Equal(oe).(Bool); !ok || !b {
			return False
		}
	}
	return True
}

func (l *List) Type() ref.Type { return ListType }
func (l *List) Value() any {
	vals := make([]any, len(l.elems))
	for i, e := range l.elems {
		vals[i] = e.Value()
	}
	return vals
}

type listIterator struct {
	elems []ref.Val
	idx   int
}

func (it *listIterator) HasNext() ref.Val { return Bool(it.idx < len(it.elems)) }
func (it *listIterator) Next() ref.Val {
	v := it.elems[it.idx]
	it.idx++
	return v
}

func listLen(l traits.Lister) int {
	return int(l.Size().(Int))
}

func types_isErrOrUnk(v ref.Val) bool { return IsErrorOrUnknown(v) }

// indexAsInt normalizes a list-index Val to an int64, accepting Int, Uint
// (if representable), or an exactly-integral Double (§4.6).
func indexAsInt(index ref.Val) (int64, bool) {
	switch v := index.(type) {
	case Int:
		return int64(v), true
	case Uint:
		if v > Uint(1<<63-1) {
			return 0, false
		}
		return int64(v), true
	case Double:
		if float64(v) != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}
