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

package celerr

import (
	"errors"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(DivideByZero, "divide %s by zero", "x")
	if err.Kind != DivideByZero {
		t.Errorf("Kind = %v, want DivideByZero", err.Kind)
	}
	want := "evaluation error[divide_by_zero]: divide x by zero"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNewAtIncludesExprID(t *testing.T) {
	err := NewAt(IndexOutOfBounds, 7, "index %d out of range", 5)
	want := "evaluation error[index_out_of_bounds at expr 7]: index 5 out of range"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Internal, 0, cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := NewAt(DivideByZero, 3, "whatever")
	sentinel := New(DivideByZero, "")
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match on Kind regardless of ExprID/Detail")
	}
	other := New(TypeMismatch, "")
	if errors.Is(err, other) {
		t.Error("errors.Is should not match a different Kind")
	}
}

func TestKindStringCoversAllValues(t *testing.T) {
	kinds := []Kind{
		Unspecified, NoSuchAttribute, NoSuchOverload, AmbiguousOverload,
		TypeMismatch, IndexOutOfBounds, DivideByZero, Overflow,
		InvalidArgument, Internal,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
		if seen[s] {
			t.Errorf("duplicate Kind.String() value %q", s)
		}
		seen[s] = true
	}
}
