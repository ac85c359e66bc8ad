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
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/interpreter/functions"
)

// Dispatcher is the registry of function overloads consulted by the
// driver's Call handling (§4.3, C5). A Program's Dispatcher is built once
// at program-construction time and never mutated during evaluation; a
// late-bound resolver may be layered on top per-evaluation (§4.7).
type Dispatcher struct {
	byID   map[string]*functions.Overload
	byName map[string][]*functions.Overload
}

// NewDispatcher builds an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byID: map[string]*functions.Overload{}, byName: map[string][]*functions.Overload{}}
}

// NewStandardDispatcher builds a Dispatcher pre-populated with the
// built-in operator overloads (§4.3); every built-in's ID doubles as its
// dynamic-dispatch name.
func NewStandardDispatcher() *Dispatcher {
	d := NewDispatcher()
	for _, o := range functions.Standard() {
		d.Add(o.ID, o)
	}
	return d
}

// AddFunction registers a custom function's overloads under name for
// both id-based and dynamic-dispatch resolution (§4.3, C5), the
// extension point a Program's builder uses to add domain functions
// beyond the built-ins.
func (d *Dispatcher) AddFunction(name string, overloads ...*functions.Overload) {
	for _, o := range overloads {
		d.Add(name, o)
	}
}

// Add registers an overload both under its own id and under name for
// dynamic-dispatch aggregation (§4.3).
func (d *Dispatcher) Add(name string, o *functions.Overload) {
	d.byID[o.ID] = o
	d.byName[name] = append(d.byName[name], o)
}

// FindOverload looks up an overload by its opaque id.
func (d *Dispatcher) FindOverload(id string) (*functions.Overload, bool) {
	o, found := d.byID[id]
	return o, found
}

// LateBound is the per-evaluation function resolver layered on top of a
// program's built-in Dispatcher (§4.7 "eval(..., late_bound_functions)").
type LateBound interface {
	// FindLateBound returns an overload registered only for this
	// evaluation, if any.
	FindLateBound(id string) (*functions.Overload, bool)
}

// Resolve implements the §4.3 algorithm: given the function name (for
// diagnostics), the candidate overload ids from the checked AST's
// reference map, and the runtime argument array, find exactly one
// matching overload and invoke it.
func (d *Dispatcher) Resolve(name string, candidateIDs []string, args []ref.Val, late LateBound) (ref.Val, error) {
	var matches []*functions.Overload
	for _, id := range candidateIDs {
		o, found := d.FindOverload(id)
		if !found && late != nil {
			o, found = late.FindLateBound(id)
		}
		if !found {
			// May refer to a late-bound function resolved elsewhere;
			// not registering here is not itself an error (§4.3 step 1).
			continue
		}
		if o.CanHandle(args) {
			matches = append(matches, o)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].Invoke(args), nil
	case 0:
		// fall through to dynamic dispatch by name.
	default:
		return nil, ambiguousOverloadErr(name, matches)
	}

	// Dynamic-dispatch aggregation: every overload registered under name
	// is checked, and more than one match is ambiguous exactly as the
	// candidate-ID branch above treats it — dispatch never silently
	// picks among candidates (§8 Testable Property 5, §9).
	var byNameMatches []*functions.Overload
	for _, o := range d.byName[name] {
		if o.CanHandle(args) {
			byNameMatches = append(byNameMatches, o)
		}
	}
	switch len(byNameMatches) {
	case 1:
		return byNameMatches[0].Invoke(args), nil
	case 0:
		return nil, celerr.New(celerr.NoSuchOverload, "no matching overload for function '%s'", name)
	default:
		return nil, ambiguousOverloadErr(name, byNameMatches)
	}
}

func ambiguousOverloadErr(name string, matches []*functions.Overload) error {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	sort.Strings(ids)
	if glog.V(2) {
		glog.Infof("ambiguous overload for function '%s': candidates [%s]", name, strings.Join(ids, ", "))
	}
	return celerr.New(celerr.AmbiguousOverload, "ambiguous overload for function '%s': candidates [%s]", name, strings.Join(ids, ", "))
}
