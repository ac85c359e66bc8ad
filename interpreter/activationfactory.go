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
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// NewActivationFromMap adapts a map of raw native Go values into an
// Activation (§4.4, C8), the binding shape a Program's `eval(map)` entry
// point accepts. Keys mapping to a Go nil are skipped, matching
// FromMap's null-skipping contract; adapter defaults to
// types.DefaultTypeAdapter when nil.
func NewActivationFromMap(adapter ref.TypeAdapter, bindings map[string]any) Activation {
	if adapter == nil {
		adapter = types.DefaultTypeAdapter
	}
	out := make(map[string]ref.Val, len(bindings))
	for k, v := range bindings {
		if k == "" || v == nil {
			continue
		}
		out[k] = adapter.NativeToValue(v)
	}
	return NewMapActivation(out)
}

// structActivation resolves variable names as field selections against a
// single struct-typed value, the binding shape used when a caller passes
// a whole message as the evaluation's top-level activation (§4.4, C8).
type structActivation struct {
	msg      ref.Val
	provider ref.ValueProvider
}

var _ Activation = &structActivation{}

// NewStructActivation builds an Activation that resolves every name as a
// field of msg via provider.
func NewStructActivation(msg ref.Val, provider ref.ValueProvider) Activation {
	return &structActivation{msg: msg, provider: provider}
}

func (s *structActivation) ResolveName(name string) (ref.Val, bool) {
	if s.provider == nil {
		return nil, false
	}
	ok, err := s.provider.HasField(s.msg, name)
	if err != nil || !ok {
		return nil, false
	}
	return s.provider.SelectField(s.msg, name), true
}

func (s *structActivation) Parent() Activation { return nil }
