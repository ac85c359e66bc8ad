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

import "github.com/arcflow-dev/cel-rt/common/types/ref"

// EvalState records the per-expression-id result of a single evaluation
// run (§4.6 "Tracing"). It is the substrate Prune and CostTracker are
// built on: obtain one with NewEvalState, pass State(state) as the
// EvalListener argument to Interpreter.Eval, then query it once
// evaluation completes.
type EvalState interface {
	// Value returns the recorded result for expr id, if the node was
	// visited during the run that populated this state.
	Value(id int64) (ref.Val, bool)
	// SetValue records id's result, overwriting any prior entry.
	SetValue(id int64, v ref.Val)
	// IDs returns every expression id with a recorded value, in no
	// particular order.
	IDs() []int64
}

type evalState struct {
	values map[int64]ref.Val
}

// NewEvalState builds an empty EvalState.
func NewEvalState() EvalState {
	return &evalState{values: map[int64]ref.Val{}}
}

func (s *evalState) Value(id int64) (ref.Val, bool) {
	v, found := s.values[id]
	return v, found
}

func (s *evalState) SetValue(id int64, v ref.Val) {
	s.values[id] = v
}

func (s *evalState) IDs() []int64 {
	ids := make([]int64, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	return ids
}

// State adapts an EvalState into the EvalListener shape Interpreter.Eval
// accepts, recording every node's concrete result (including errors and
// unknowns) as it is produced in AST post-order. A listener may be
// invoked more than once for the same id under ExhaustiveEval; the later
// write wins.
func State(state EvalState) EvalListener {
	return func(expr *Expr, result IntermediateResult) {
		state.SetValue(expr.ID, result.Value)
	}
}
