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

package cel

import (
	"github.com/arcflow-dev/cel-rt/attribute"
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/interpreter"
)

// ResolvableAttributePattern couples a declared-unknown Pattern with a
// callback an iterative driver can invoke to fetch its value between
// rounds (§6). Resolve may be nil for a pattern the caller only wants
// reported, never auto-resolved.
type ResolvableAttributePattern struct {
	Pattern *attribute.Pattern
	Resolve func() (ref.Val, error)
}

// UnknownContext is the per-round state AdvanceEvaluation consumes and
// produces (§4.7 "advance_evaluation(context)"): the base variable input,
// the patterns still declared unknown, and the root variables resolved to
// concrete values since the context was first built. Resolution is
// tracked at the attribute's root variable; a pattern naming a nested
// qualifier path is only as resolvable as the ResolvableAttributePattern
// callback that backs it.
type UnknownContext struct {
	vars     map[string]any
	unknowns []*ResolvableAttributePattern
	resolved map[string]ref.Val
}

// NewUnknownContext builds the initial round's context.
func NewUnknownContext(vars map[string]any, unknowns ...*ResolvableAttributePattern) *UnknownContext {
	return &UnknownContext{vars: vars, unknowns: unknowns, resolved: map[string]ref.Val{}}
}

// WithResolvedAttributes returns a new context with resolved folded in as
// concrete variable overrides and dropped from the set of still-unknown
// patterns, the call a caller makes between AdvanceEvaluation rounds once
// it has fetched some of the previously-reported unknowns itself (§4.7).
func (c *UnknownContext) WithResolvedAttributes(resolved map[string]ref.Val) *UnknownContext {
	out := &UnknownContext{
		vars:     c.vars,
		resolved: make(map[string]ref.Val, len(c.resolved)+len(resolved)),
	}
	for k, v := range c.resolved {
		out.resolved[k] = v
	}
	for k, v := range resolved {
		out.resolved[k] = v
	}
	for _, u := range c.unknowns {
		if _, done := out.resolved[u.Pattern.Variable()]; !done {
			out.unknowns = append(out.unknowns, u)
		}
	}
	return out
}

func (c *UnknownContext) remainingPatterns() []*attribute.Pattern {
	patterns := make([]*attribute.Pattern, len(c.unknowns))
	for i, u := range c.unknowns {
		patterns[i] = u.Pattern
	}
	return patterns
}

func (c *UnknownContext) activation(adapter ref.TypeAdapter) interpreter.Activation {
	act := interpreter.NewActivationFromMap(adapter, c.vars)
	if len(c.resolved) == 0 {
		return act
	}
	return interpreter.ExtendActivation(act, interpreter.NewMapActivation(c.resolved))
}

// resolveRound invokes every still-unresolved pattern's Resolve callback
// whose attribute is named by unk's witness set, returning the new
// resolutions and whether any progress was made this round.
func (c *UnknownContext) resolveRound(unk *types.Unknown) (map[string]ref.Val, bool) {
	resolved := map[string]ref.Val{}
	for _, u := range c.unknowns {
		if u.Resolve == nil {
			continue
		}
		for _, attr := range unk.Set().Attributes() {
			if u.Pattern.IsMatch(attr) || u.Pattern.IsPartialMatch(attr) {
				if v, err := u.Resolve(); err == nil {
					resolved[u.Pattern.Variable()] = v
				}
				break
			}
		}
	}
	return resolved, len(resolved) > 0
}

// AdvanceEvaluation re-evaluates the Program against ctx, auto-resolving
// reported unknowns through their ResolvableAttributePattern callbacks and
// looping until a concrete value is produced or a round makes no further
// progress, in which case the remaining UnknownSet and the context as of
// that round are returned for the caller to resolve externally and call
// again (§4.7).
func (p *Program) AdvanceEvaluation(ctx *UnknownContext) (ref.Val, *UnknownContext, error) {
	cur := ctx
	for {
		opts := p.opts
		opts.TrackUnknowns = true
		act := cur.activation(p.adapter)
		if p.defaultVars != nil {
			act = interpreter.ExtendActivation(p.defaultVars, act)
		}
		val, err := p.it.Eval(p.ast, act, opts, cur.remainingPatterns(), nil, nil)
		if err != nil {
			return nil, cur, err
		}
		unk, ok := val.(*types.Unknown)
		if !ok {
			return val, cur, nil
		}
		resolved, progressed := cur.resolveRound(unk)
		if !progressed {
			return val, cur, nil
		}
		cur = cur.WithResolvedAttributes(resolved)
	}
}
