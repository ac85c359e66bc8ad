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
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// defaultAdapter is the zero-configuration ref.TypeAdapter every Program
// falls back to: it recognizes the built-in Go primitives a constant
// literal or an unadapted activation binding may arrive as, plus
// []any/map[string]any for nested list/map literals. Any other native
// value, struct-typed ones included, comes back as an Err; this adapter
// consults no ValueProvider.
type defaultAdapter struct{}

// DefaultTypeAdapter is the shared zero-value adapter instance.
var DefaultTypeAdapter ref.TypeAdapter = defaultAdapter{}

func (defaultAdapter) NativeToValue(value any) ref.Val {
	switch v := value.(type) {
	case nil:
		return NullValue
	case ref.Val:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case int32:
		return Int(v)
	case int64:
		return Int(v)
	case uint:
		return Uint(v)
	case uint32:
		return Uint(v)
	case uint64:
		return Uint(v)
	case float32:
		return Double(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	case []byte:
		return Bytes(v)
	case []any:
		elems := make([]ref.Val, len(v))
		for i, e := range v {
			elems[i] = DefaultTypeAdapter.NativeToValue(e)
		}
		return NewList(elems)
	case map[string]any:
		keys := make([]ref.Val, 0, len(v))
		vals := make([]ref.Val, 0, len(v))
		for k, e := range v {
			keys = append(keys, String(k))
			vals = append(vals, DefaultTypeAdapter.NativeToValue(e))
		}
		m, err := NewMap(keys, vals)
		if err != nil {
			return WrapErr(err)
		}
		return m
	}
	return NewErr("unsupported native value of type %T", value)
}
