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

import "github.com/arcflow-dev/cel-rt/interpreter"

// EvalOption is a bit flag selecting optional evaluation behavior (§4.7,
// §9), combined with bitwise OR and passed to EvalOptions.
type EvalOption int

const (
	// OptExhaustiveEval disables short-circuiting so every sub-expression
	// is visited, giving a listener/EvalState full-tree coverage.
	OptExhaustiveEval EvalOption = 1 << iota

	// OptTrackUnknowns enables the attribute-based unknown-tracking
	// sub-evaluator (§4.5 "Unknown-tracking" mode). EvalPartial and
	// AdvanceEvaluation turn tracking on by themselves whenever patterns
	// are supplied; with no patterns, no unknowns arise whether or not
	// this flag is set.
	OptTrackUnknowns

	// OptHeterogeneousComparison enables numeric comparison (`<`, `<=`,
	// `>`, `>=`) across mixed int/uint/double operand pairs (§4.1).
	OptHeterogeneousComparison
)

// EvalOptions folds one or more EvalOption flags into a ProgramOption.
func EvalOptions(flags ...EvalOption) ProgramOption {
	var combined EvalOption
	for _, f := range flags {
		combined |= f
	}
	return func(p *Program) {
		p.opts.ExhaustiveEval = combined&OptExhaustiveEval != 0
		p.opts.TrackUnknowns = combined&OptTrackUnknowns != 0
		p.opts.HeterogeneousComparison = combined&OptHeterogeneousComparison != 0
	}
}

// MaxUnknownSetSize caps the number of distinct attributes an evaluation's
// unknown accumulator will track before reporting Overflow (§5); zero
// keeps attribute.DefaultMaxEntries.
func MaxUnknownSetSize(max int) ProgramOption {
	return func(p *Program) { p.opts.MaxUnknownSetSize = max }
}

// WithCostTracking attaches a CostTracker so every call dispatched during
// evaluation accrues an estimated runtime cost (§9 supplement), queryable
// via tracker.ActualCost() once Eval returns.
func WithCostTracking(tracker *interpreter.CostTracker) ProgramOption {
	return func(p *Program) { p.opts.CostTracker = tracker }
}
