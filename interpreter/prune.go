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

// Prune rewrites ast in place using the recorded results of a prior
// evaluation: every call whose operands are all constant literals and
// whose id resolved to a concrete literal value (never an error or
// unknown) is collapsed into a KindConst node carrying that value.
// Operands are checked as they stand before the rewrite, so a fold does
// not cascade to the enclosing call within one pass; identifiers,
// selects, and calls with any non-constant operand are never collapsed,
// only descended into. Re-evaluating the pruned tree
// against the same inputs yields the same result while visiting fewer
// nodes; this is the constant-folding companion to tracing (§4.6).
//
// state must have been populated by a run that used State(state) as its
// listener. Branches that were never visited (the untaken side of a
// short-circuited `&&`/`||`/`?:`, for instance) are left untouched.
func Prune(ast *CheckedAST, state EvalState) {
	pruneExpr(ast.Expr, state)
}

func pruneExpr(expr *Expr, state EvalState) {
	if expr == nil {
		return
	}
	if v, found := state.Value(expr.ID); found && isPrunableLiteral(v) && expr.Kind == KindCall {
		operandsConst := expr.CallTarget == nil || expr.CallTarget.Kind == KindConst
		for _, a := range expr.CallArgs {
			operandsConst = operandsConst && a.Kind == KindConst
		}
		if operandsConst {
			collapseToConst(expr, v)
			return
		}
	}

	// Not a foldable call (no recorded value, a non-literal value such as
	// error/unknown/struct/list/map, a non-call node, or a non-constant
	// operand); drill into children so a prunable sub-expression deeper
	// in an otherwise-unprunable tree still gets folded.
	switch expr.Kind {
	case KindSelect:
		pruneExpr(expr.SelectOperand, state)
	case KindCall:
		if expr.CallTarget != nil {
			pruneExpr(expr.CallTarget, state)
		}
		for _, a := range expr.CallArgs {
			pruneExpr(a, state)
		}
	case KindCreateList:
		for _, e := range expr.ListElems {
			pruneExpr(e, state)
		}
	case KindCreateStruct:
		for i := range expr.StructKeys {
			pruneExpr(expr.StructKeys[i], state)
			pruneExpr(expr.StructValues[i], state)
		}
	case KindComprehension:
		pruneExpr(expr.IterRange, state)
	}
}

// isPrunableLiteral reports whether v is one of the scalar kinds safe to
// fold back into a ConstValue; lists, maps, and structs are left alone
// since a checked AST's create-list/create-struct opcodes have no
// constant-literal counterpart in this evaluator's Expr shape.
func isPrunableLiteral(v ref.Val) bool {
	switch v.(type) {
	case types.Bool, types.Int, types.Uint, types.Double, types.String, types.Bytes, types.Null:
		return true
	}
	return false
}

func collapseToConst(expr *Expr, v ref.Val) {
	expr.Kind = KindConst
	expr.ConstValue = v.Value()
	expr.SelectOperand = nil
	expr.CallTarget = nil
	expr.CallArgs = nil
	expr.ListElems = nil
	expr.StructKeys = nil
	expr.StructValues = nil
	expr.IterRange = nil
	expr.AccuInit = nil
	expr.LoopCond = nil
	expr.LoopStep = nil
	expr.Result = nil
}
