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
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// Activation is the per-evaluation variable resolver (§4.4, C2): any
// object answering find(name) -> Option<Value>.
type Activation interface {
	// ResolveName returns the bound value for name, or false if unbound.
	ResolveName(name string) (ref.Val, bool)

	// Parent returns the enclosing activation, or nil at the root.
	Parent() Activation
}

// EmptyActivation resolves nothing (§4.4 "empty").
type EmptyActivation struct{}

func (EmptyActivation) ResolveName(string) (ref.Val, bool) { return nil, false }
func (EmptyActivation) Parent() Activation                 { return nil }

// NewEmptyActivation returns the shared empty activation.
func NewEmptyActivation() Activation { return EmptyActivation{} }

// lazyBinding defers computation of a bound value until first read.
type lazyBinding func() ref.Val

// MapActivation binds a fixed map of name -> Value, or name -> a lazy
// thunk (§4.4 "bind(name, value)" / "bind(name, lazy)").
type MapActivation struct {
	bindings map[string]any // ref.Val or lazyBinding
}

var _ Activation = &MapActivation{}

// NewMapActivation builds an activation over already-adapted values.
func NewMapActivation(bindings map[string]ref.Val) *MapActivation {
	m := &MapActivation{bindings: make(map[string]any, len(bindings))}
	for k, v := range bindings {
		m.bindings[k] = v
	}
	return m
}

// NewActivation is an alias of NewMapActivation kept for call-site
// parity with the Program façade's eval(map) entry point.
func NewActivation(bindings map[string]ref.Val) *MapActivation {
	return NewMapActivation(bindings)
}

// BindLazy adds a deferred binding; the thunk runs once, on first read.
func (a *MapActivation) BindLazy(name string, thunk func() ref.Val) {
	if a.bindings == nil {
		a.bindings = make(map[string]any)
	}
	a.bindings[name] = lazyBinding(thunk)
}

func (a *MapActivation) ResolveName(name string) (ref.Val, bool) {
	v, found := a.bindings[name]
	if !found {
		return nil, false
	}
	switch t := v.(type) {
	case lazyBinding:
		result := t()
		a.bindings[name] = result
		return result, true
	case ref.Val:
		return t, true
	default:
		return nil, false
	}
}

func (a *MapActivation) Parent() Activation { return nil }

// HierarchicalActivation chains a child over a parent, the child
// shadowing the parent on name collision (§4.4 "extend(outer, inner)").
type HierarchicalActivation struct {
	parent Activation
	child  Activation
}

var _ Activation = &HierarchicalActivation{}

// ExtendActivation builds a hierarchical activation where child entries
// shadow parent entries.
func ExtendActivation(parent, child Activation) Activation {
	return &HierarchicalActivation{parent: parent, child: child}
}

func (a *HierarchicalActivation) ResolveName(name string) (ref.Val, bool) {
	if v, found := a.child.ResolveName(name); found {
		return v, true
	}
	if a.parent == nil {
		return nil, false
	}
	return a.parent.ResolveName(name)
}

func (a *HierarchicalActivation) Parent() Activation { return a.parent }

// FromMap builds a MapActivation from a map of already-adapted values,
// skipping null keys/values (§4.4 "from_map(map)"); a nil value (Go nil,
// not types.Null) is treated as absent.
func FromMap(bindings map[string]ref.Val) Activation {
	out := make(map[string]ref.Val, len(bindings))
	for k, v := range bindings {
		if k == "" || v == nil {
			continue
		}
		out[k] = v
	}
	return NewMapActivation(out)
}

// lazySlot is the bookkeeping record for one declare_lazy'd name within a
// ScopedActivation: whether it has been computed yet, the thunk that
// computes it on first read, and its cached IntermediateResult once it
// has been (§4.4).
type lazySlot struct {
	declared bool
	thunk    func() IntermediateResult
	cached   bool
	result   IntermediateResult
}

// ScopedActivation is the resolver used to enter a cel.bind block or a
// comprehension scope (§4.4): it layers a map of shadowed bindings plus a
// lazy-evaluation cache over a parent activation. declare_lazy marks a
// slot; the first read computes and caches it; cache writes walk up to
// the scope that declared the slot, so a lazy value produced inside a
// nested comprehension is cached at the binding's own scope rather than
// the comprehension's.
type ScopedActivation struct {
	parent   Activation
	bindings map[string]ref.Val
	lazy     map[string]*lazySlot
	outer    *ScopedActivation // nearest enclosing ScopedActivation, for slot walk-up
}

var _ Activation = &ScopedActivation{}

// NewScopedActivation opens a new scope over parent. If parent is itself
// a *ScopedActivation, lazy-slot walk-up chains through it.
func NewScopedActivation(parent Activation) *ScopedActivation {
	s := &ScopedActivation{parent: parent, bindings: map[string]ref.Val{}}
	if outer, ok := parent.(*ScopedActivation); ok {
		s.outer = outer
	}
	return s
}

// Bind sets a concrete binding visible for the life of this scope.
func (s *ScopedActivation) Bind(name string, v ref.Val) {
	s.bindings[name] = v
}

// DeclareLazy marks name as a slot whose value is computed by thunk on
// first read within this scope (or an enclosing one that declared it).
// thunk may be nil for a slot that is only ever populated via CacheLazy
// (e.g. a test driving the cache directly).
func (s *ScopedActivation) DeclareLazy(name string, thunk func() IntermediateResult) {
	if s.lazy == nil {
		s.lazy = map[string]*lazySlot{}
	}
	s.lazy[name] = &lazySlot{declared: true, thunk: thunk}
}

// LazySlotOwner returns the ScopedActivation (this one or an ancestor)
// that declared name as a lazy slot, or nil if none did.
func (s *ScopedActivation) LazySlotOwner(name string) *ScopedActivation {
	for cur := s; cur != nil; cur = cur.outer {
		if slot, ok := cur.lazy[name]; ok && slot.declared {
			return cur
		}
	}
	return nil
}

// CacheLazy stores result for name at the scope that declared it (walk-up
// semantics), defensively copying mutable accumulator content so that a
// later iteration cannot observe a later mutation through the cache
// (§4.4).
func (s *ScopedActivation) CacheLazy(name string, result IntermediateResult) {
	owner := s.LazySlotOwner(name)
	if owner == nil {
		owner = s
		owner.DeclareLazy(name, nil)
	}
	owner.lazy[name].cached = true
	owner.lazy[name].result = result.defensiveCopy()
}

// ReadLazy returns the cached result for name if present anywhere in the
// scope chain that declared it.
func (s *ScopedActivation) ReadLazy(name string) (IntermediateResult, bool) {
	owner := s.LazySlotOwner(name)
	if owner == nil {
		return IntermediateResult{}, false
	}
	slot := owner.lazy[name]
	if !slot.cached {
		return IntermediateResult{}, false
	}
	return slot.result.defensiveCopy(), true
}

func (s *ScopedActivation) ResolveName(name string) (ref.Val, bool) {
	if v, found := s.bindings[name]; found {
		return v, true
	}
	if owner := s.LazySlotOwner(name); owner != nil {
		if cached, found := s.ReadLazy(name); found {
			return cached.Value, true
		}
		if slot := owner.lazy[name]; slot.thunk != nil {
			result := slot.thunk()
			s.CacheLazy(name, result)
			return result.Value, true
		}
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.ResolveName(name)
}

func (s *ScopedActivation) Parent() Activation { return s.parent }
