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

	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/operators"
)

func rangeOf(vals ...int64) *Expr {
	elems := make([]*Expr, len(vals))
	for i, v := range vals {
		elems[i] = constExpr(int64(100+i), v)
	}
	return &Expr{ID: 1, Kind: KindCreateList, ListElems: elems}
}

// map(x, x + 1) over [1, 2, 3], folded into a list accumulator.
func TestEvalComprehensionMapFold(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(&Expr{
		ID:        10,
		Kind:      KindComprehension,
		IterRange: rangeOf(1, 2, 3),
		IterVar:   "x",
		AccuVar:   "out",
		AccuInit:  &Expr{ID: 11, Kind: KindCreateList},
		LoopCond:  constExpr(12, true),
		LoopStep: callExpr(13, operators.Add,
			identExpr(14, "out"),
			&Expr{ID: 15, Kind: KindCreateList, ListElems: []*Expr{
				callExpr(16, operators.Add, identExpr(17, "x"), constExpr(18, int64(1))),
			}}),
		Result: identExpr(19, "out"),
	})
	v, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	lst, ok := v.(*types.List)
	if !ok {
		t.Fatalf("got %T, want *types.List", v)
	}
	if lst.Size().(types.Int) != types.Int(3) {
		t.Fatalf("Size() = %v, want 3", lst.Size())
	}
	for i, want := range []int64{2, 3, 4} {
		elem := lst.Get(types.Int(i))
		if elem.(types.Int) != types.Int(want) {
			t.Errorf("Get(%d) = %v, want %v", i, elem, want)
		}
	}
}

// LoopCond turns false after the second element; later elements must
// never be visited, proving the loop actually breaks early rather than
// just ignoring the remaining LoopStep results.
func TestEvalComprehensionEarlyBreak(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(&Expr{
		ID:        10,
		Kind:      KindComprehension,
		IterRange: rangeOf(1, 2, 3, 4),
		IterVar:   "x",
		AccuVar:   "count",
		AccuInit:  constExpr(11, int64(0)),
		LoopCond: callExpr(12, operators.Less,
			identExpr(13, "count"), constExpr(14, int64(2))),
		LoopStep: callExpr(15, operators.Add, identExpr(16, "count"), constExpr(17, int64(1))),
		Result:   identExpr(18, "count"),
	})
	v, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.(types.Int) != types.Int(2) {
		t.Errorf("got %v, want 2 (loop should have stopped once count reached 2)", v)
	}
}

// AccuInit (id 11) must not be evaluated until the first expression that
// actually references AccuVar — here LoopCond (id 12) on the first
// iteration — rather than unconditionally before the range is walked.
// The listener call order is the only way to observe this: IterRange's
// elements (ids 100, 101) must be visited before AccuInit's id ever
// appears.
func TestEvalComprehensionAccuInitIsLazilyEvaluated(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(&Expr{
		ID:        10,
		Kind:      KindComprehension,
		IterRange: rangeOf(1, 2),
		IterVar:   "x",
		AccuVar:   "acc",
		AccuInit:  constExpr(11, int64(0)),
		LoopCond:  callExpr(12, operators.Less, identExpr(13, "acc"), constExpr(14, int64(5))),
		LoopStep:  callExpr(15, operators.Add, identExpr(16, "acc"), identExpr(17, "x")),
		Result:    identExpr(18, "acc"),
	})
	var order []int64
	listener := func(expr *Expr, _ IntermediateResult) {
		order = append(order, expr.ID)
	}
	v, err := it.Eval(ast, nil, Options{}, nil, nil, listener)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v.(types.Int) != types.Int(3) {
		t.Fatalf("got %v, want 3", v)
	}
	accuInitPos, rangeElemPos := -1, -1
	for i, id := range order {
		if id == 11 && accuInitPos == -1 {
			accuInitPos = i
		}
		if id == 100 && rangeElemPos == -1 {
			rangeElemPos = i
		}
	}
	if accuInitPos == -1 {
		t.Fatal("AccuInit (id 11) was never evaluated")
	}
	if rangeElemPos == -1 {
		t.Fatal("first range element (id 100) was never evaluated")
	}
	if accuInitPos < rangeElemPos {
		t.Errorf("AccuInit evaluated at listener position %d, before the range it should follow (position %d); expected lazy evaluation on first AccuVar reference", accuInitPos, rangeElemPos)
	}
}

func TestEvalComprehensionNonBoolLoopCondIsTypeMismatch(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(&Expr{
		ID:        10,
		Kind:      KindComprehension,
		IterRange: rangeOf(1, 2),
		IterVar:   "x",
		AccuVar:   "acc",
		AccuInit:  constExpr(11, int64(0)),
		LoopCond:  constExpr(12, int64(1)), // not a bool
		LoopStep:  identExpr(13, "acc"),
		Result:    identExpr(14, "acc"),
	})
	_, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected a type-mismatch error for a non-bool loop condition, got nil")
	}
}

func TestEvalComprehensionNonIterableRangeIsError(t *testing.T) {
	it := newTestInterpreter()
	ast := astOf(&Expr{
		ID:        10,
		Kind:      KindComprehension,
		IterRange: constExpr(1, int64(5)), // not iterable
		IterVar:   "x",
		AccuVar:   "acc",
		AccuInit:  constExpr(11, int64(0)),
		LoopCond:  constExpr(12, true),
		LoopStep:  identExpr(13, "acc"),
		Result:    identExpr(14, "acc"),
	})
	_, err := it.Eval(ast, nil, Options{}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected an error for a non-iterable comprehension range, got nil")
	}
}
