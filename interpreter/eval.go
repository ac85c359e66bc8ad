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
	"github.com/golang/glog"

	"github.com/arcflow-dev/cel-rt/attribute"
	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
	"github.com/arcflow-dev/cel-rt/operators"
)

// Options governs the tunable behaviors an evaluation entry point can turn
// on (§4.7, §9): unknown-attribute tracking, exhaustive (non-short-
// circuiting) evaluation for full trace coverage, heterogeneous-type
// comparison, and the unknown-set size cap.
type Options struct {
	TrackUnknowns           bool
	ExhaustiveEval          bool
	HeterogeneousComparison bool
	MaxUnknownSetSize       int
	CostTracker             *CostTracker
}

// Interpreter drives a single Program's evaluations against the built-in
// and custom overloads registered in its Dispatcher (§4.6, C7). It holds
// no per-evaluation state; every call to Eval opens a fresh evalCtx.
type Interpreter struct {
	dispatcher    *Dispatcher
	typeProvider  ref.TypeProvider
	valueProvider ref.ValueProvider
	adapter       ref.TypeAdapter
}

// NewInterpreter builds an Interpreter. typeProvider and valueProvider may
// be nil (struct-typed values and `type(x)` on them then become
// unsupported); adapter defaults to types.DefaultTypeAdapter.
func NewInterpreter(dispatcher *Dispatcher, typeProvider ref.TypeProvider, valueProvider ref.ValueProvider, adapter ref.TypeAdapter) *Interpreter {
	if adapter == nil {
		adapter = types.DefaultTypeAdapter
	}
	return &Interpreter{
		dispatcher:    dispatcher,
		typeProvider:  typeProvider,
		valueProvider: valueProvider,
		adapter:       adapter,
	}
}

// evalCtx is the state threaded through one call to Eval: the checked
// AST being walked, the collaborators an Interpreter was built with, the
// per-evaluation options/patterns/late-bound resolver/listener, and (when
// unknown tracking is enabled) the attribute accumulator.
type evalCtx struct {
	ast           *CheckedAST
	dispatcher    *Dispatcher
	typeProvider  ref.TypeProvider
	valueProvider ref.ValueProvider
	adapter       ref.TypeAdapter
	opts          Options
	patterns      []*attribute.Pattern
	late          LateBound
	listener      EvalListener
	accum         *attribute.Accumulator
}

// abortEval is panicked from deep within the tree walk to unwind straight
// to Eval's recover point for the closed set of failures that abort
// evaluation outright rather than propagate as an in-band Err value (§7):
// an overload resolution that finds no matching overload or more than
// one, or an unknown-set size overflow.
type abortEval struct{ err error }

// Eval walks ast.Expr under act, returning the resulting CEL value (which
// may itself be an Unknown) or an error for an outright-aborting failure
// or an unhandled in-band Err (§4.6, §7).
func (it *Interpreter) Eval(ast *CheckedAST, act Activation, opts Options, patterns []*attribute.Pattern, late LateBound, listener EvalListener) (ref.Val, error) {
	if act == nil {
		act = NewEmptyActivation()
	}
	if listener == nil {
		listener = noopListener
	}
	ctx := &evalCtx{
		ast:           ast,
		dispatcher:    it.dispatcher,
		typeProvider:  it.typeProvider,
		valueProvider: it.valueProvider,
		adapter:       it.adapter,
		opts:          opts,
		patterns:      patterns,
		late:          late,
		listener:      listener,
	}
	if opts.TrackUnknowns {
		ctx.accum = attribute.NewAccumulator(opts.MaxUnknownSetSize)
	}

	result, abortErr := ctx.run(ast.Expr, act)
	if abortErr != nil {
		if glog.V(2) {
			glog.Infof("evaluation of %s aborted: %v", ast.SourceName, abortErr)
		}
		return nil, abortErr
	}
	if e, ok := result.Value.(*types.Err); ok {
		return nil, formatError(ast, e)
	}
	return result.Value, nil
}

// run guards the recursive walk with a panic/recover so an abortEval can
// unwind the call stack from anywhere in the tree without threading a
// second error return through every evalExpr case.
func (c *evalCtx) run(expr *Expr, act Activation) (result IntermediateResult, abortErr error) {
	defer func() {
		if r := recover(); r != nil {
			if a, ok := r.(abortEval); ok {
				abortErr = a.err
				return
			}
			panic(r)
		}
	}()
	result = c.evalExpr(expr, act)
	return result, nil
}

// formatError builds the user-visible EvaluationError for an unhandled
// in-band Err reaching the program's root, including the source offset of
// the failing sub-expression when the checked AST recorded one (§6, §7).
func formatError(ast *CheckedAST, e *types.Err) error {
	id, hasID := e.ExprID()
	if !hasID {
		return celerr.New(e.Kind(), "%s", e.Error())
	}
	if off, found := ast.OffsetFor(id); found {
		return celerr.NewAt(e.Kind(), id, "%s:%d: %s", ast.SourceName, off, e.Error())
	}
	return celerr.NewAt(e.Kind(), id, "%s", e.Error())
}

// evalExpr is the single recursive dispatch point (§4.6): every node kind
// is handled by its own evalX helper, but only evalExpr tags a freshly
// surfaced Err with its origin expression id and invokes the listener, so
// every other helper must recurse through it rather than calling a evalX
// helper directly.
func (c *evalCtx) evalExpr(expr *Expr, act Activation) IntermediateResult {
	var result IntermediateResult
	switch expr.Kind {
	case KindConst:
		result = value(c.adapter.NativeToValue(expr.ConstValue))
	case KindIdent:
		result = c.evalIdent(expr, act)
	case KindSelect:
		result = c.evalSelect(expr, act)
	case KindCall:
		result = c.evalCall(expr, act)
	case KindCreateList:
		result = c.evalCreateList(expr, act)
	case KindCreateStruct:
		result = c.evalCreateStruct(expr, act)
	case KindComprehension:
		result = c.evalComprehension(expr, act)
	default:
		result = value(types.NewErrKind(celerr.Internal, "unhandled expression kind %d", expr.Kind))
	}
	if e, ok := result.Value.(*types.Err); ok {
		e.AtExpr(expr.ID)
	}
	c.listener(expr, result)
	return result
}

func (c *evalCtx) evalIdent(expr *Expr, act Activation) IntermediateResult {
	name := expr.IdentName
	if info, ok := c.ast.ReferenceFor(expr.ID); ok {
		if info.Value != nil {
			return value(c.adapter.NativeToValue(info.Value))
		}
		if info.Name != "" {
			name = info.Name
		}
	}
	candidate := attribute.New(name)
	if u, matched := c.unknownFor(candidate, expr.ID); matched {
		return withAttr(candidate, u)
	}
	if v, found := act.ResolveName(name); found {
		return withAttr(candidate, v)
	}
	return withAttr(candidate, types.NewErrKind(celerr.NoSuchAttribute, "no such attribute: %s", name))
}

func (c *evalCtx) evalSelect(expr *Expr, act Activation) IntermediateResult {
	opRes := c.evalExpr(expr.SelectOperand, act)
	if opRes.isUnknownOrError() {
		return opRes
	}

	var candidate attribute.Attribute
	hasCandidate := opRes.HasAttr
	if hasCandidate {
		candidate, _ = opRes.Attr.Qualify(attribute.String(expr.SelectField))
		if u, matched := c.unknownFor(candidate, expr.ID); matched {
			return withAttr(candidate, u)
		}
	}

	var result ref.Val
	if expr.SelectTestOnly {
		result = c.testField(opRes.Value, expr.SelectField)
	} else {
		result = c.selectField(opRes.Value, expr.SelectField)
	}
	if hasCandidate {
		return withAttr(candidate, result)
	}
	return value(result)
}

func (c *evalCtx) testField(operand ref.Val, field string) ref.Val {
	if operand.Type() == types.MapType {
		return operand.(traits.Container).Contains(types.String(field))
	}
	if c.valueProvider != nil {
		ok, err := c.valueProvider.HasField(operand, field)
		if err != nil {
			return types.WrapErr(err)
		}
		return types.Bool(ok)
	}
	return types.NewErrKind(celerr.TypeMismatch, "invalid operand in has(): %s", operand.Type().TypeName())
}

func (c *evalCtx) selectField(operand ref.Val, field string) ref.Val {
	if operand.Type() == types.MapType {
		return operand.(traits.Indexer).Get(types.String(field))
	}
	if c.valueProvider != nil {
		return c.valueProvider.SelectField(operand, field)
	}
	return types.NewErrKind(celerr.TypeMismatch, "invalid operand in select: %s", operand.Type().TypeName())
}

func (c *evalCtx) evalCall(expr *Expr, act Activation) IntermediateResult {
	switch expr.CallFunction {
	case operators.LogicalAnd:
		return c.evalLogical(expr, act, true)
	case operators.LogicalOr:
		return c.evalLogical(expr, act, false)
	case operators.Conditional:
		return c.evalConditional(expr, act)
	case operators.NotStrictlyFalse:
		return c.evalNotStrictlyFalse(expr, act)
	case operators.Index:
		return c.evalIndex(expr, act)
	case operators.TypeConvert:
		return c.evalTypeOf(expr, act)
	}
	return c.evalGenericCall(expr, act)
}

// evalLogical implements the short-circuit semantics of `&&`/`||` (§4.3,
// §4.5): the right operand is only evaluated when the left side cannot
// decide the result on its own, unless ExhaustiveEval asks for full-tree
// tracing coverage. Once both sides are known the existing non-strict
// overload is reused to apply the exact masking rules (a concrete false/
// true on either side wins outright, even over an error or unknown on the
// other side).
func (c *evalCtx) evalLogical(expr *Expr, act Activation, isAnd bool) IntermediateResult {
	lhs := c.evalExpr(expr.CallArgs[0], act)
	if !c.opts.ExhaustiveEval {
		if b, ok := lhs.Value.(types.Bool); ok {
			if isAnd && !bool(b) {
				return value(types.False)
			}
			if !isAnd && bool(b) {
				return value(types.True)
			}
		}
	}
	rhs := c.evalExpr(expr.CallArgs[1], act)
	id := operators.LogicalAnd
	if !isAnd {
		id = operators.LogicalOr
	}
	ov, _ := c.dispatcher.FindOverload(id)
	return value(ov.Invoke([]ref.Val{lhs.Value, rhs.Value}))
}

// evalConditional implements `_?_:_` (§4.3): only the taken branch is
// evaluated unless ExhaustiveEval is set, and an error/unknown condition
// short-circuits to itself without evaluating either branch.
func (c *evalCtx) evalConditional(expr *Expr, act Activation) IntermediateResult {
	condRes := c.evalExpr(expr.CallArgs[0], act)
	cond, isBool := condRes.Value.(types.Bool)
	if !isBool {
		if c.opts.ExhaustiveEval {
			c.evalExpr(expr.CallArgs[1], act)
			c.evalExpr(expr.CallArgs[2], act)
		}
		if types.IsErrorOrUnknown(condRes.Value) {
			return condRes
		}
		return value(types.NewErrKind(celerr.TypeMismatch, "no such overload: conditional requires bool, got '%s'", condRes.Value.Type().TypeName()))
	}
	if cond {
		trueRes := c.evalExpr(expr.CallArgs[1], act)
		if c.opts.ExhaustiveEval {
			c.evalExpr(expr.CallArgs[2], act)
		}
		return trueRes
	}
	falseRes := c.evalExpr(expr.CallArgs[2], act)
	if c.opts.ExhaustiveEval {
		c.evalExpr(expr.CallArgs[1], act)
	}
	return falseRes
}

// evalNotStrictlyFalse implements the comprehension loop guard (§4.6): it
// must reach the non-strict overload without first applying the generic
// strict error/unknown pre-check, since masking error/unknown conditions
// to true is exactly what the overload does.
func (c *evalCtx) evalNotStrictlyFalse(expr *Expr, act Activation) IntermediateResult {
	argRes := c.evalExpr(expr.CallArgs[0], act)
	ov, _ := c.dispatcher.FindOverload(operators.NotStrictlyFalse)
	return value(ov.Invoke([]ref.Val{argRes.Value}))
}

// evalTypeOf implements `type(x)` (§4.1, §6), delegating struct-type
// identity lookups to the configured TypeProvider.
func (c *evalCtx) evalTypeOf(expr *Expr, act Activation) IntermediateResult {
	argRes := c.evalExpr(expr.CallArgs[0], act)
	if argRes.isUnknownOrError() {
		return argRes
	}
	return value(resolveRuntimeType(argRes.Value, c.typeProvider))
}

// evalIndex implements `x[i]` (§4.3, §4.5): like a select, a partially- or
// fully-unknown operand attribute is checked against the declared
// patterns before a concrete Get is attempted.
func (c *evalCtx) evalIndex(expr *Expr, act Activation) IntermediateResult {
	opRes := c.evalExpr(expr.CallArgs[0], act)
	keyRes := c.evalExpr(expr.CallArgs[1], act)
	if v, short := combineStrict([]ref.Val{opRes.Value, keyRes.Value}); short {
		return value(v)
	}

	if opRes.HasAttr {
		if q, ok := qualifierOf(keyRes.Value); ok {
			candidate, _ := opRes.Attr.Qualify(q)
			if u, matched := c.unknownFor(candidate, expr.ID); matched {
				return withAttr(candidate, u)
			}
			idx, ok := opRes.Value.(traits.Indexer)
			if !ok {
				return value(noSuchOverloadVal(operators.Index, opRes.Value, keyRes.Value))
			}
			return withAttr(candidate, idx.Get(keyRes.Value))
		}
	}
	idx, ok := opRes.Value.(traits.Indexer)
	if !ok {
		return value(noSuchOverloadVal(operators.Index, opRes.Value, keyRes.Value))
	}
	return value(idx.Get(keyRes.Value))
}

// evalGenericCall handles every strict function/operator call (§4.3,
// §4.5): all arguments are evaluated eagerly, unknowns across all of them
// are unioned, else the first error left-to-right wins, else the
// Dispatcher resolves and invokes the matching overload.
func (c *evalCtx) evalGenericCall(expr *Expr, act Activation) IntermediateResult {
	var argResults []IntermediateResult
	if expr.CallTarget != nil {
		argResults = append(argResults, c.evalExpr(expr.CallTarget, act))
	}
	for _, a := range expr.CallArgs {
		argResults = append(argResults, c.evalExpr(a, act))
	}
	vals := make([]ref.Val, len(argResults))
	for i, r := range argResults {
		vals[i] = r.Value
	}

	if v, short := combineStrict(vals); short {
		return value(v)
	}

	switch expr.CallFunction {
	case operators.Less, operators.LessEquals, operators.Greater, operators.GreaterEquals:
		// Ordering across operands of different types is only dispatched
		// when HeterogeneousComparison is set.
		if !c.opts.HeterogeneousComparison && len(vals) == 2 && vals[0].Type() != vals[1].Type() {
			return value(noSuchOverloadVal(expr.CallFunction, vals[0], vals[1]))
		}
	}

	candidateIDs := c.candidateIDsFor(expr)
	result, err := c.dispatcher.Resolve(expr.CallFunction, candidateIDs, vals, c.late)
	if err != nil {
		panic(abortEval{err})
	}
	if c.opts.CostTracker != nil {
		c.opts.CostTracker.track(costOverloadID(expr.CallFunction, candidateIDs), vals)
	}
	return value(result)
}

func (c *evalCtx) candidateIDsFor(expr *Expr) []string {
	if r, ok := c.ast.ReferenceFor(expr.ID); ok {
		return r.OverloadIDs
	}
	return nil
}

func (c *evalCtx) evalCreateList(expr *Expr, act Activation) IntermediateResult {
	elems := make([]ref.Val, len(expr.ListElems))
	for i, e := range expr.ListElems {
		elems[i] = c.evalExpr(e, act).Value
	}
	if v, short := combineStrict(elems); short {
		return value(v)
	}
	return value(types.NewList(elems))
}

func (c *evalCtx) evalCreateStruct(expr *Expr, act Activation) IntermediateResult {
	if expr.StructTypeName != "" {
		return c.evalStructLiteral(expr, act)
	}
	return c.evalMapLiteral(expr, act)
}

func (c *evalCtx) evalMapLiteral(expr *Expr, act Activation) IntermediateResult {
	keys := make([]ref.Val, len(expr.StructKeys))
	vals := make([]ref.Val, len(expr.StructValues))
	all := make([]ref.Val, 0, len(keys)+len(vals))
	for i := range expr.StructKeys {
		keys[i] = c.evalExpr(expr.StructKeys[i], act).Value
		vals[i] = c.evalExpr(expr.StructValues[i], act).Value
		all = append(all, keys[i], vals[i])
	}
	if v, short := combineStrict(all); short {
		return value(v)
	}
	m, err := types.NewMap(keys, vals)
	if err != nil {
		return value(types.WrapErr(err))
	}
	return value(m)
}

// evalStructLiteral builds a message-typed value (§6): field names are
// always constant expressions in a checked AST, never computed, so each
// key is expected to evaluate to a String.
func (c *evalCtx) evalStructLiteral(expr *Expr, act Activation) IntermediateResult {
	if c.valueProvider == nil {
		return value(types.NewErrKind(celerr.InvalidArgument, "no value provider configured for struct type '%s'", expr.StructTypeName))
	}
	names := make([]string, len(expr.StructKeys))
	vals := make([]ref.Val, len(expr.StructValues))
	all := make([]ref.Val, 0, len(names)+len(vals))
	for i := range expr.StructKeys {
		keyRes := c.evalExpr(expr.StructKeys[i], act)
		vals[i] = c.evalExpr(expr.StructValues[i], act).Value
		all = append(all, keyRes.Value, vals[i])
		if name, ok := keyRes.Value.(types.String); ok {
			names[i] = string(name)
		}
	}
	if v, short := combineStrict(all); short {
		return value(v)
	}
	fields := make(map[string]ref.Val, len(names))
	for i, name := range names {
		fields[name] = vals[i]
	}
	return value(c.valueProvider.NewValue(expr.StructTypeName, fields))
}

// unknownFor checks candidate against the declared patterns (§4.2): an
// exact match records candidate itself, a partial match (candidate is a
// strict prefix of some pattern match) records the pattern's simplified
// witness instead. Either accumulates into the run's Accumulator and
// aborts evaluation outright if doing so would exceed its configured
// size (§5, §7).
func (c *evalCtx) unknownFor(candidate attribute.Attribute, exprID int64) (*types.Unknown, bool) {
	if !c.opts.TrackUnknowns || len(c.patterns) == 0 {
		return nil, false
	}
	matched := false
	for _, p := range c.patterns {
		switch {
		case p.IsMatch(candidate):
			c.addUnknown(candidate, exprID)
			matched = true
		case p.IsPartialMatch(candidate):
			c.addUnknown(p.Simplify(candidate), exprID)
			matched = true
		}
	}
	if !matched {
		return nil, false
	}
	return types.NewUnknown(c.accum.Set()), true
}

func (c *evalCtx) addUnknown(attr attribute.Attribute, exprID int64) {
	if !c.accum.Add(attr, exprID) && c.accum.Overflowed() {
		panic(abortEval{celerr.New(celerr.Overflow, "unknown attribute set exceeded its configured maximum entries")})
	}
}

// combineStrict applies the §4.5 tri-valued propagation rule shared by
// every strict multi-argument construct (calls, list/struct literals): if
// any value is unknown, the result is the union of all unknowns; else if
// any is an error, the result is the first one, left to right; else the
// caller should proceed with concrete values.
func combineStrict(vals []ref.Val) (ref.Val, bool) {
	var u *types.Unknown
	for _, v := range vals {
		if uv, ok := v.(*types.Unknown); ok {
			u = types.MergeUnknowns(u, uv)
		}
	}
	if u != nil {
		return u, true
	}
	for _, v := range vals {
		if types.IsError(v) {
			return v, true
		}
	}
	return nil, false
}

func noSuchOverloadVal(op string, lhs, rhs ref.Val) ref.Val {
	return types.NewErrKind(celerr.NoSuchOverload, "no such overload: %s(%s, %s)", op, lhs.Type().TypeName(), rhs.Type().TypeName())
}

// qualifierOf converts a concrete index key Val into the attribute.
// Qualifier used to extend an attribute trail through `x[i]` (§4.2).
func qualifierOf(v ref.Val) (attribute.Qualifier, bool) {
	switch k := v.(type) {
	case types.Int:
		return attribute.Int(int64(k)), true
	case types.Uint:
		return attribute.Uint(uint64(k)), true
	case types.Bool:
		return attribute.Bool(bool(k)), true
	case types.String:
		return attribute.String(string(k)), true
	}
	return attribute.Qualifier{}, false
}
