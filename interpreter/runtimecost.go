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
	"math"
	"reflect"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/operators"
)

// ActualCostEstimator lets a caller override the driver's built-in,
// size-based cost guesses for individual overloads. CallCost returns nil
// to fall back to the default estimate for that overload id.
type ActualCostEstimator interface {
	CallCost(overloadID string, args []ref.Val) *uint64
}

// CostTracker accumulates an estimate of runtime cost as a program
// evaluates, attached through Options.CostTracker (which
// cel.WithCostTracking sets). It has no
// bearing on the evaluated result; a caller consults ActualCost once
// Eval returns to decide whether the expression ran cheaply enough to be
// worth the trust it was given (e.g. admission-control budgets on
// user-supplied expressions).
type CostTracker struct {
	Estimator ActualCostEstimator
	cost      uint64
}

// NewCostTracker builds a CostTracker; estimator may be nil to use only
// the built-in per-overload size estimates.
func NewCostTracker(estimator ActualCostEstimator) *CostTracker {
	return &CostTracker{Estimator: estimator}
}

// ActualCost returns the accumulated estimate.
func (c *CostTracker) ActualCost() uint64 {
	return c.cost
}

// track is invoked by evalGenericCall after a successful dispatch (§4.3).
// It first gives the configured Estimator a chance to price the call,
// then falls back to a size-aware guess for the handful of overloads
// whose cost scales with operand size, and finally a flat unit cost for
// everything else.
func (c *CostTracker) track(overloadID string, args []ref.Val) {
	if c.Estimator != nil {
		if cost := c.Estimator.CallCost(overloadID, args); cost != nil {
			c.cost += *cost
			return
		}
	}
	c.cost += defaultCallCost(overloadID, args)
}

func defaultCallCost(overloadID string, args []ref.Val) uint64 {
	switch overloadID {
	case operators.Size, operators.In:
		if len(args) > 0 {
			return actualSize(args[len(args)-1])
		}
	case operators.Add:
		if len(args) == 2 {
			return uint64(math.Ceil(float64(actualSize(args[0])+actualSize(args[1])) * 0.1))
		}
	case operators.Matches:
		if len(args) == 2 {
			strCost := uint64(math.Ceil(float64(actualSize(args[0])) * 0.1))
			reCost := uint64(math.Ceil(float64(actualSize(args[1])) * 0.25))
			return strCost * reCost
		}
	case operators.Equals, operators.NotEquals, operators.Less, operators.LessEquals,
		operators.Greater, operators.GreaterEquals:
		if len(args) == 2 {
			l, r := actualSize(args[0]), actualSize(args[1])
			if l < r {
				return l
			}
			return r
		}
	}
	return 1
}

// costOverloadID picks the id to price a call under: the first checked
// candidate if the reference map supplied one, else the call's function
// name, which is what the built-in operators are keyed by (§4.3's "a
// built-in's ID doubles as its dynamic-dispatch name").
func costOverloadID(function string, candidateIDs []string) string {
	if len(candidateIDs) > 0 {
		return candidateIDs[0]
	}
	return function
}

// actualSize mirrors the value's length for the container/string/bytes
// kinds whose processing cost scales with size, 1 for everything else
// (scalar comparisons, bools, numbers).
func actualSize(v ref.Val) uint64 {
	rv := reflect.ValueOf(v.Value())
	switch rv.Kind() {
	case reflect.String, reflect.Array, reflect.Slice, reflect.Map:
		return uint64(rv.Len())
	}
	return 1
}
