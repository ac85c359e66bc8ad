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
	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
)

// evalComprehension implements the fold-loop primitive the `all`/
// `exists`/`map`/`filter` macros expand into (§4.6): IterRange is walked
// once, AccuVar starts at AccuInit, each step evaluates LoopCond as a
// continue/break gate over the current accumulator and binds the result
// of LoopStep back into it, and Result is evaluated once the loop ends.
// LoopCond is evaluated exactly like any other call: when a macro wraps
// it in `@not_strictly_false`, that overload's own masking is what keeps
// an error/unknown accumulator from stopping the fold early; the driver
// applies no special casing here beyond the ordinary tri-valued rule.
func (c *evalCtx) evalComprehension(expr *Expr, act Activation) IntermediateResult {
	rangeRes := c.evalExpr(expr.IterRange, act)
	if rangeRes.isUnknownOrError() {
		return rangeRes
	}
	iterable, ok := rangeRes.Value.(traits.Iterable)
	if !ok {
		return value(types.NewErrKind(celerr.TypeMismatch, "comprehension range is not iterable: %s", rangeRes.Value.Type().TypeName()))
	}

	// AccuInit is declared as a lazy slot rather than evaluated eagerly: it
	// is only computed on the first reference to AccuVar (typically the
	// first LoopCond), and cached from then on (§4.4).
	scope := NewScopedActivation(act)
	scope.DeclareLazy(expr.AccuVar, func() IntermediateResult {
		return c.evalExpr(expr.AccuInit, act)
	})

	it := iterable.Iterator()
	for it.HasNext() == types.True {
		scope.Bind(expr.IterVar, it.Next())

		condRes := c.evalExpr(expr.LoopCond, scope)
		if condRes.isUnknownOrError() {
			return condRes
		}
		gate, ok := condRes.Value.(types.Bool)
		if !ok {
			return value(types.NewErrKind(celerr.TypeMismatch, "loop condition must be bool, got '%s'", condRes.Value.Type().TypeName()))
		}
		if !bool(gate) {
			break
		}

		stepRes := c.evalExpr(expr.LoopStep, scope)
		if stepRes.isUnknownOrError() {
			return stepRes
		}
		scope.Bind(expr.AccuVar, stepRes.Value)
	}

	return c.evalExpr(expr.Result, scope)
}
