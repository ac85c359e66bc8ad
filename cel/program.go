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

// Package cel is the public façade over the evaluation core: a Program is
// a planned, immutable AST plus its evaluation options, exposing the
// multiple eval entry points described in §4.7 (C9) on top of the
// interpreter, attribute, and common/types packages.
package cel

import (
	"github.com/arcflow-dev/cel-rt/attribute"
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/interpreter"
)

// Program is an evaluable, immutable view of a checked AST (§3, §4.7,
// C9): a frozen dispatcher, type/value providers, adapter, and options.
// A Program is safe to call concurrently from multiple goroutines; every
// Eval* method opens its own resolver stack and (when unknown tracking
// is on) its own attribute accumulator, so no evaluation observes another
// one's state (§5).
type Program struct {
	ast         *interpreter.CheckedAST
	it          *interpreter.Interpreter
	adapter     ref.TypeAdapter
	opts        interpreter.Options
	defaultVars interpreter.Activation
}

// ProgramOption configures a Program at construction time.
type ProgramOption func(*Program)

// WithEvalOptions sets the interpreter.Options a Program evaluates under
// (unknown tracking, exhaustive evaluation, heterogeneous comparison, the
// unknown-set size cap, and an optional CostTracker).
func WithEvalOptions(opts interpreter.Options) ProgramOption {
	return func(p *Program) { p.opts = opts }
}

// WithDefaultVars layers a fixed activation beneath every evaluation's
// own input, the binding shape a caller uses to supply request-scoped
// constants shared across many evaluations of the same Program.
func WithDefaultVars(vars interpreter.Activation) ProgramOption {
	return func(p *Program) { p.defaultVars = vars }
}

// NewProgram plans ast against dispatcher, typeProvider, valueProvider,
// and adapter (any may be nil; a nil adapter defaults to
// types.DefaultTypeAdapter, matching interpreter.NewInterpreter). The
// returned Program never mutates its configuration again.
func NewProgram(ast *interpreter.CheckedAST, dispatcher *interpreter.Dispatcher, typeProvider ref.TypeProvider, valueProvider ref.ValueProvider, adapter ref.TypeAdapter, options ...ProgramOption) *Program {
	if adapter == nil {
		adapter = types.DefaultTypeAdapter
	}
	p := &Program{
		ast:     ast,
		it:      interpreter.NewInterpreter(dispatcher, typeProvider, valueProvider, adapter),
		adapter: adapter,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Eval evaluates with an empty activation (§4.7 "eval()").
func (p *Program) Eval() (ref.Val, error) {
	return p.eval(interpreter.NewEmptyActivation(), nil, nil, nil)
}

// EvalMap evaluates against a map of variables, adapted via the
// Program's configured TypeAdapter (§4.7 "eval(map)").
func (p *Program) EvalMap(vars map[string]any) (ref.Val, error) {
	return p.eval(interpreter.NewActivationFromMap(p.adapter, vars), nil, nil, nil)
}

// EvalResolver evaluates against a caller-supplied Activation (§4.7
// "eval(resolver)"), e.g. a interpreter.NewStructActivation for a
// whole-message input.
func (p *Program) EvalResolver(act interpreter.Activation) (ref.Val, error) {
	return p.eval(act, nil, nil, nil)
}

// EvalLateBound evaluates with a per-call function resolver layered atop
// the Program's own Dispatcher (§4.7 "eval(..., late_bound_functions)").
func (p *Program) EvalLateBound(act interpreter.Activation, late interpreter.LateBound) (ref.Val, error) {
	return p.eval(act, nil, late, nil)
}

// EvalPartial evaluates against act with patterns declared unknown,
// forcing unknown-tracking on for this call regardless of the Program's
// configured Options (the shape PartialVars/AttributePattern produce).
func (p *Program) EvalPartial(act interpreter.Activation, patterns ...*attribute.Pattern) (ref.Val, error) {
	return p.eval(act, patterns, nil, nil)
}

// Trace evaluates with a listener invoked synchronously in AST
// post-order for every node's concrete result (§4.7 "trace(...,
// listener)", §5 "Listeners").
func (p *Program) Trace(act interpreter.Activation, listener interpreter.EvalListener) (ref.Val, error) {
	return p.eval(act, nil, nil, listener)
}

func (p *Program) eval(act interpreter.Activation, patterns []*attribute.Pattern, late interpreter.LateBound, listener interpreter.EvalListener) (ref.Val, error) {
	if p.defaultVars != nil {
		act = interpreter.ExtendActivation(p.defaultVars, act)
	}
	opts := p.opts
	if len(patterns) > 0 {
		opts.TrackUnknowns = true
	}
	return p.it.Eval(p.ast, act, opts, patterns, late, listener)
}

// NoVars returns the empty Activation, the resolver every expression with
// no free variables can be evaluated against.
func NoVars() interpreter.Activation {
	return interpreter.NewEmptyActivation()
}

// PartialVars builds an Activation over vars plus the set of attribute
// patterns that are unknown for this evaluation, the input shape
// EvalPartial expects.
func PartialVars(vars map[string]any, adapter ref.TypeAdapter, unknowns ...*attribute.Pattern) (interpreter.Activation, []*attribute.Pattern, error) {
	if adapter == nil {
		adapter = types.DefaultTypeAdapter
	}
	return interpreter.NewActivationFromMap(adapter, vars), unknowns, nil
}

// AttributePattern returns a mutable Pattern rooted at varName; chain its
// Field/Index/Wildcard methods to describe a nested unknown (§4.2).
func AttributePattern(varName string) *attribute.Pattern {
	return attribute.NewPattern(varName)
}
