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

// MapType is the type of a CEL map value.
var MapType = NewTypeValue("map",
	traits.ContainerType, traits.IndexerType, traits.IterableType, traits.SizerType)

// mapKey is the internal, hashable normal form a Val key is reduced to
// before being used as a Go map key: every one of {int, uint, exact
// integral double} collapses to the same mapKey so that `{1u: "a"}[1]`,
// `[1u]`, and `[1.0]` all observe the same entry (§4.1).
type mapKey struct {
	kind byte // 'n' int-range numeric, 'u' uint64 beyond int64 range, 's' string, 'b' bool
	num  int64
	unum uint64
	str  string
	b    bool
}

func keyOf(v ref.Val) (mapKey, bool) {
	switch k := v.(type) {
	case Int:
		return mapKey{kind: 'n', num: int64(k)}, true
	case Uint:
		if k <= Uint(1<<63-1) {
			return mapKey{kind: 'n', num: int64(k)}, true
		}
		return mapKey{kind: 'u', unum: uint64(k)}, true
	case Double:
		f := float64(k)
		if f != float64(int64(f)) {
			return mapKey{}, false
		}
		if f < 0 {
			return mapKey{kind: 'n', num: int64(f)}, true
		}
		if f <= float64(1<<63-1) {
			return mapKey{kind: 'n', num: int64(f)}, true
		}
		return mapKey{kind: 'u', unum: uint64(f)}, true
	case String:
		return mapKey{kind: 's', str: string(k)}, true
	case Bool:
		return mapKey{kind: 'b', b: bool(k)}, true
	}
	return mapKey{}, false
}

// Map is a concrete traits.Mapper with numeric-key normalization.
type Map struct {
	entries map[mapKey]mapEntry
	order   []mapKey
}

type mapEntry struct {
	key ref.Val
	val ref.Val
}

var _ traits.Mapper = &Map{}

// NewMap builds a Map from already-adapted key/value pairs, preserving
// insertion order for Iterator (§5 notes map iteration order is
// implementation-defined but stable within one evaluation).
func NewMap(keys, vals []ref.Val) (traits.Mapper, error) {
	m := &Map{entries: make(map[mapKey]mapEntry, len(keys))}
	for i, k := range keys {
		mk, ok := keyOf(k)
		if !ok {
			return nil, NewErrKind(celerr.TypeMismatch, "invalid map key type: %s", k.Type().TypeName())
		}
		if _, exists := m.entries[mk]; !exists {
			m.order = append(m.order, mk)
		}
		m.entries[mk] = mapEntry{key: k, val: vals[i]}
	}
	return m, nil
}

func (m *Map) Find(key ref.Val) (ref.Val, bool) {
	mk, ok := keyOf(key)
	if !ok {
		return nil, false
	}
	e, found := m.entries[mk]
	if !found {
		return nil, false
	}
	return e.val, true
}

func (m *Map) Get(index ref.Val) ref.Val {
	v, found := m.Find(index)
	if !found {
		return NewErrKind(celerr.NoSuchAttribute, "no such key: %v", index.Value())
	}
	return v
}

func (m *Map) Contains(key ref.Val) ref.Val {
	if types_isErrOrUnk(key) {
		return key
	}
	_, found := m.Find(key)
	return Bool(found)
}

func (m *Map) Size() ref.Val { return Int(len(m.order)) }

func (m *Map) Iterator() traits.Iterator {
	return &mapKeyIterator{m: m}
}

func (m *Map) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc.Kind() != reflect.Map {
		return nil, conversionError(MapType, typeDesc)
	}
	out := reflect.MakeMapWithSize(typeDesc, len(m.order))
	for _, mk := range m.order {
		e := m.entries[mk]
		nk, err := e.key.ConvertToNative(typeDesc.Key())
		if err != nil {
			return nil, err
		}
		nv, err := e.val.ConvertToNative(typeDesc.Elem())
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(reflect.ValueOf(nk), reflect.ValueOf(nv))
	}
	return out.Interface(), nil
}

func (m *Map) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case MapType:
		return m
	case TypeType:
		return MapType
	}
	return NewErr("type conversion error from 'map' to '%s'", typeVal.TypeName())
}

// Equal implements §4.1: same size, and for every key in the receiver the
// other map contains an equal value, using the same normalized lookup.
func (m *Map) Equal(other ref.Val) ref.Val {
	o, ok := other.(traits.Mapper)
	if !ok {
		return False
	}
	if m.Size().(Int) != o.Size().(Int) {
		return False
	}
	for _, mk := range m.order {
		e := m.entries[mk]
		ov, found := o.Find(e.key)
		if !found {
			return False
		}
		if b, ok := e.val.Equal(ov).(Bool); !ok || !b {
			return False
		}
	}
	return True
}

func (m *Map) Type() ref.Type { return MapType }
func (m *Map) Value() any {
	out := make(map[any]any, len(m.order))
	for _, mk := range m.order {
		e := m.entries[mk]
		out[e.key.Value()] = e.val.Value()
	}
	return out
}

type mapKeyIterator struct {
	m   *Map
	idx int
}

func (it *mapKeyIterator) HasNext() ref.Val { return Bool(it.idx < len(it.m.order)) }
func (it *mapKeyIterator) Next() ref.Val {
	mk := it.m.order[it.idx]
	it.idx++
	return it.m.entries[mk].key
}
