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
	"testing"

	"github.com/arcflow-dev/cel-rt/attribute"
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/operators"
)

func newTestInterpreter() *Interpreter {
	return NewInterpreter(NewStandardDispatcher(), nil, nil, nil)
}

func constExpr(id int64, v any) *Expr {
	return &Expr{ID: id, Kind: KindConst, ConstValue: v}
}

func identExpr(id int64, name string) *Expr {
	return &Expr{ID: id, Kind: KindIdent, IdentName: name}
}

func callExpr(id int64, fn string, args ...*Expr) *Expr {
	return &Expr{ID: id, Kind: KindCall, CallFunction: fn, CallArgs: args}
}

func astOf(root *Expr) *CheckedAST {
	return &CheckedAST{Expr: root, SourceName: "test"}
}

func TestEvalArithmetic(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(callExpr(1, operators.Add, constExpr(2, int64(2)), constExpr(3, int64(3))))
	v, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.(types.Int) != types.Int(5) {
		t.Errorf("got %v, want 5", v)
	}
}

func TestEvalDivideByZero(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(callExpr(1, operators.Divide, constExpr(2, int64(1)), constExpr(3, int64(0))))
	_, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected divide-by-zero error, got nil")
	}
}

func TestEvalLogicalShortCircuit(t *testing.T) {
	it := newTestInterpreter()
	// false && (1/0 == 0) must short-circuit without evaluating the RHS.
	rhs := callExpr(4, operators.Equals,
		callExpr(5, operators.Divide, constExpr(6, int64(1)), constExpr(7, int64(0))),
		constExpr(8, int64(0)))
	ast := astOf(callExpr(1, operators.LogicalAnd, constExpr(2, false), rhs))
	v, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v != types.False {
		t.Errorf("got %v, want false", v)
	}
}

func TestEvalLogicalExhaustiveVisitsBothSides(t *testing.T) {
	it := newTestInterpreter()
	rhs := callExpr(4, operators.Equals, constExpr(5, int64(1)), constExpr(6, int64(1)))
	ast := astOf(callExpr(1, operators.LogicalAnd, constExpr(2, false), rhs))
	state := NewEvalState()
	v, err := it.Eval(ast, nil, Options{ExhaustiveEval: true}, nil, nil, State(state))
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v != types.False {
		t.Errorf("got %v, want false", v)
	}
	if _, found := state.Value(4); !found {
		t.Error("exhaustive eval should have visited the RHS of a short-circuited &&")
	}
}

func TestEvalConditional(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(callExpr(1, operators.Conditional,
		constExpr(2, true), constExpr(3, int64(10)), constExpr(4, int64(20))))
	v, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.(types.Int) != types.Int(10) {
		t.Errorf("got %v, want 10", v)
	}
}

func TestEvalIdentFromActivation(t *testing.T) {
	it := newTestInterpreter()
	act := NewActivationFromMap(nil, map[string]any{"x": int64(42)})
	ast := astOf(identExpr(1, "x"))
	v, err := it.Eval(ast, act, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.(types.Int) != types.Int(42) {
		t.Errorf("got %v, want 42", v)
	}
}

func TestEvalSelectOnMap(t *testing.T) {
	it := newTestInterpreter()
	act := NewActivationFromMap(nil, map[string]any{
		"req": map[string]any{"id": "abc"},
	})
	ast := astOf(&Expr{ID: 1, Kind: KindSelect, SelectOperand: identExpr(2, "req"), SelectField: "id"})
	v, err := it.Eval(ast, act, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.(types.String) != types.String("abc") {
		t.Errorf("got %v, want abc", v)
	}
}

func TestEvalIndexOutOfBounds(t *testing.T) {
	it := newTestInterpreter()
	list := &Expr{ID: 2, Kind: KindCreateList, ListElems: []*Expr{constExpr(3, int64(1))}}
	ast := astOf(callExpr(1, operators.Index, list, constExpr(4, int64(5))))
	_, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected index-out-of-bounds error, got nil")
	}
}

func TestEvalUnknownTracking(t *testing.T) {
	it := newTestInterpreter()
	act := NewActivationFromMap(nil, map[string]any{"x": int64(1)})
	ast := astOf(callExpr(1, operators.Add, identExpr(2, "x"), constExpr(3, int64(1))))
	patterns := []*attribute.Pattern{attribute.NewPattern("x")}
	v, err := it.Eval(ast, act, Options{TrackUnknowns: true}, patterns, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	unk, ok := v.(*types.Unknown)
	if !ok {
		t.Fatalf("got %T, want *types.Unknown", v)
	}
	attrs := unk.Set().Attributes()
	if len(attrs) != 1 || attrs[0].Root() != "x" {
		t.Errorf("unexpected unknown witness set: %v", attrs)
	}
}

func TestEvalComprehensionExists(t *testing.T) {
	it := newTestInterpreter()
	list := &Expr{ID: 1, Kind: KindCreateList, ListElems: []*Expr{
		constExpr(2, int64(1)), constExpr(3, int64(2)), constExpr(4, int64(3)),
	}}
	// exists(x in list, x == 2) expanded by hand as a fold over a bool accumulator.
	ast := astOf(&Expr{
		ID:        10,
		Kind:      KindComprehension,
		IterRange: list,
		IterVar:   "x",
		AccuVar:   "found",
		AccuInit:  constExpr(11, false),
		LoopCond: callExpr(12, operators.NotStrictlyFalse,
			callExpr(13, operators.LogicalNot, identExpr(14, "found"))),
		LoopStep: callExpr(15, operators.LogicalOr,
			identExpr(16, "found"),
			callExpr(17, operators.Equals, identExpr(18, "x"), constExpr(19, int64(2)))),
		Result: identExpr(20, "found"),
	})
	v, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v != types.True {
		t.Errorf("got %v, want true", v)
	}
}

func TestPruneFoldsConstantSubexpression(t *testing.T) {
	it := newTestInterpreter()
	sum := callExpr(2, operators.Add, constExpr(3, int64(2)), constExpr(4, int64(3)))
	ast := astOf(callExpr(1, operators.Add, sum, constExpr(5, int64(1))))
	state := NewEvalState()
	if _, err := it.Eval(ast, nil, Options{}, nil, nil, State(state)); err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	Prune(ast, state)
	if ast.Expr.CallArgs[0].Kind != KindConst {
		t.Fatalf("expected the Add subexpression to be pruned to a constant, got kind %v", ast.Expr.CallArgs[0].Kind)
	}
	if ast.Expr.CallArgs[0].ConstValue.(int64) != 5 {
		t.Errorf("pruned constant = %v, want 5", ast.Expr.CallArgs[0].ConstValue)
	}
}
