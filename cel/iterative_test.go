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

import (
	"testing"

	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/operators"
)

func TestAdvanceEvaluationResolvesUnknownAndConverges(t *testing.T) {
	p := newAddProgram()
	resolved := false
	ctx := NewUnknownContext(map[string]any{}, &ResolvableAttributePattern{
		Pattern: AttributePattern("x"),
		Resolve: func() (ref.Val, error) {
			resolved = true
			return types.Int(41), nil
		},
	})
	v, _, err := p.AdvanceEvaluation(ctx)
	if err != nil {
		t.Fatalf("AdvanceEvaluation() error = %v", err)
	}
	if !resolved {
		t.Error("expected the Resolve callback to be invoked")
	}
	if v.(types.Int) != types.Int(42) {
		t.Errorf("got %v, want 42", v)
	}
}

func TestAdvanceEvaluationStopsWhenNoProgress(t *testing.T) {
	p := newAddProgram()
	ctx := NewUnknownContext(map[string]any{}, &ResolvableAttributePattern{
		Pattern: AttributePattern("x"),
		Resolve: nil,
	})
	v, remaining, err := p.AdvanceEvaluation(ctx)
	if err != nil {
		t.Fatalf("AdvanceEvaluation() error = %v", err)
	}
	if _, ok := v.(*types.Unknown); !ok {
		t.Fatalf("got %T, want *types.Unknown", v)
	}
	if len(remaining.remainingPatterns()) != 1 {
		t.Errorf("expected the unresolved pattern to still be reported, got %v", remaining.remainingPatterns())
	}
}

func TestWithResolvedAttributesDropsResolvedPattern(t *testing.T) {
	ctx := NewUnknownContext(map[string]any{}, &ResolvableAttributePattern{
		Pattern: AttributePattern("x"),
	}, &ResolvableAttributePattern{
		Pattern: AttributePattern("y"),
	})
	next := ctx.WithResolvedAttributes(map[string]ref.Val{"x": types.Int(1)})
	remaining := next.remainingPatterns()
	if len(remaining) != 1 || remaining[0].Variable() != "y" {
		t.Errorf("expected only 'y' to remain unresolved, got %v", remaining)
	}
}

func TestUnknownContextActivationLayersResolvedOverVars(t *testing.T) {
	ctx := NewUnknownContext(map[string]any{"x": int64(1)})
	ctx = ctx.WithResolvedAttributes(map[string]ref.Val{"y": types.Int(2)})
	act := ctx.activation(types.DefaultTypeAdapter)
	xv, found := act.ResolveName("x")
	if !found || xv.(types.Int) != types.Int(1) {
		t.Errorf("expected 'x' to resolve from the base vars, got %v, %v", xv, found)
	}
	yv, found := act.ResolveName("y")
	if !found || yv.(types.Int) != types.Int(2) {
		t.Errorf("expected 'y' to resolve from resolved attributes, got %v, %v", yv, found)
	}
}

func TestAdvanceEvaluationNoUnknownsReturnsConcreteValue(t *testing.T) {
	p := newAddProgram()
	ctx := NewUnknownContext(map[string]any{"x": int64(9)})
	v, _, err := p.AdvanceEvaluation(ctx)
	if err != nil {
		t.Fatalf("AdvanceEvaluation() error = %v", err)
	}
	if v.(types.Int) != types.Int(10) {
		t.Errorf("got %v, want 10", v)
	}
}

// sanity check that operators.Add is actually what newAddProgram builds on,
// guarding against the helper silently drifting from what these tests
// assume.
func TestNewAddProgramUsesAddOperator(t *testing.T) {
	p := newAddProgram()
	if p.ast.Expr.CallFunction != operators.Add {
		t.Fatalf("newAddProgram() built on %q, want %q", p.ast.Expr.CallFunction, operators.Add)
	}
}
