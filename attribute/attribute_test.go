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

package attribute

import "testing"

func TestFromQualifiedIdentifier(t *testing.T) {
	a := FromQualifiedIdentifier("request.headers.id")
	if a.Root() != "request" {
		t.Errorf("Root() = %q, want request", a.Root())
	}
	if len(a.Qualifiers()) != 2 {
		t.Fatalf("len(Qualifiers()) = %d, want 2", len(a.Qualifiers()))
	}
	if a.Qualifiers()[0].StringValue() != "headers" || a.Qualifiers()[1].StringValue() != "id" {
		t.Errorf("unexpected qualifiers: %v", a.Qualifiers())
	}
}

func TestQualifyRejectsWildcard(t *testing.T) {
	a := New("x")
	if _, err := a.Qualify(Wildcard()); err == nil {
		t.Error("expected error qualifying a concrete attribute with a wildcard")
	}
}

func TestQualifyAppendsWithoutMutatingOriginal(t *testing.T) {
	a := New("x")
	b, err := a.Qualify(String("y"))
	if err != nil {
		t.Fatalf("Qualify() error = %v", err)
	}
	if len(a.Qualifiers()) != 0 {
		t.Errorf("original attribute mutated: %v", a.Qualifiers())
	}
	if len(b.Qualifiers()) != 1 || b.Qualifiers()[0].StringValue() != "y" {
		t.Errorf("unexpected result: %v", b.Qualifiers())
	}
}

func TestPrefix(t *testing.T) {
	a := New("x")
	a, _ = a.Qualify(String("a"))
	a, _ = a.Qualify(String("b"))
	a, _ = a.Qualify(String("c"))
	p := a.Prefix(2)
	if len(p.Qualifiers()) != 2 {
		t.Fatalf("len(Prefix(2).Qualifiers()) = %d, want 2", len(p.Qualifiers()))
	}
	if p.Prefix(10).String() != p.String() {
		t.Errorf("Prefix beyond length should return itself unchanged")
	}
}

func TestAttributeEqual(t *testing.T) {
	a := FromQualifiedIdentifier("x.y.z")
	b := FromQualifiedIdentifier("x.y.z")
	c := FromQualifiedIdentifier("x.y.w")
	if !a.Equal(b) {
		t.Error("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Error("expected !a.Equal(c)")
	}
}

func TestAttributeString(t *testing.T) {
	a := New("req")
	a, _ = a.Qualify(String("headers"))
	a, _ = a.Qualify(String("x-id"))
	a, _ = a.Qualify(Int(0))
	want := `req.headers["x-id"][0]`
	if a.String() != want {
		t.Errorf("String() = %q, want %q", a.String(), want)
	}
}

func TestQualifierEqualIgnoresCrossKind(t *testing.T) {
	if String("1").Equal(Int(1)) {
		t.Error("qualifiers of different kinds should never be equal")
	}
	if !Uint(5).Equal(Uint(5)) {
		t.Error("expected equal uint qualifiers to compare equal")
	}
}
