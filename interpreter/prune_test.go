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

	"github.com/arcflow-dev/cel-rt/operators"
)

func TestPruneLeavesIdentUntouched(t *testing.T) {
	it := newTestInterpreter()
	act := NewActivationFromMap(nil, map[string]any{"x": int64(1)})
	ast := astOf(callExpr(1, operators.Add, identExpr(2, "x"), constExpr(3, int64(1))))
	state := NewEvalState()
	if _, err := it.Eval(ast, act, Options{}, nil, nil, State(state)); err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	Prune(ast, state)
	// The root call depends on a variable; it must not be folded even
	// though its own value was recorded, since its ident child isn't a
	// constant.
	if ast.Expr.Kind == KindConst {
		t.Error("expression referencing a variable should not be pruned to a constant")
	}
	if ast.Expr.CallArgs[0].Kind != KindIdent {
		t.Error("the ident child should be left untouched by pruning")
	}
}

func TestPruneRecursesIntoListElements(t *testing.T) {
	it := newTestInterpreter()
	sum := callExpr(2, operators.Add, constExpr(3, int64(1)), constExpr(4, int64(1)))
	list := &Expr{ID: 1, Kind: KindCreateList, ListElems: []*Expr{sum, constExpr(5, int64(9))}}
	ast := astOf(list)
	state := NewEvalState()
	if _, err := it.Eval(ast, nil, Options{}, nil, nil, State(state)); err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	Prune(ast, state)
	if ast.Expr.ListElems[0].Kind != KindConst {
		t.Errorf("expected the nested Add to be folded, got kind %v", ast.Expr.ListElems[0].Kind)
	}
	if ast.Expr.ListElems[0].ConstValue.(int64) != 2 {
		t.Errorf("pruned constant = %v, want 2", ast.Expr.ListElems[0].ConstValue)
	}
}

func TestPruneDoesNotFoldWhenStateHasNoRecordedValue(t *testing.T) {
	ast := astOf(callExpr(1, operators.Add, constExpr(2, int64(1)), constExpr(3, int64(1))))
	state := NewEvalState() // nothing recorded; Eval was never run
	Prune(ast, state)
	if ast.Expr.Kind == KindConst {
		t.Error("pruning without a recorded evaluation result should leave the expression unchanged")
	}
}
