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

package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arcflow-dev/cel-rt/attribute"
)

// unknownSetCmpOpts lets cmp.Diff compare attribute.Set/Attribute/
// Qualifier values by their unexported fields, the same structural-diff
// need set_test.go has within the attribute package itself.
var unknownSetCmpOpts = cmp.AllowUnexported(attribute.Set{}, attribute.Attribute{}, attribute.Qualifier{})

func TestNewUnknownAndSet(t *testing.T) {
	set := attribute.NewSet(attribute.FromQualifiedIdentifier("x"))
	u := NewUnknown(set)
	if u.Set() != set {
		t.Error("Set() should return the exact set it was constructed with")
	}
	if !IsUnknown(u) {
		t.Error("IsUnknown(u) should be true")
	}
	if IsUnknown(Int(5)) {
		t.Error("IsUnknown(Int) should be false")
	}
}

func TestMergeUnknownsUnionsSets(t *testing.T) {
	a := NewUnknown(attribute.NewSet(attribute.FromQualifiedIdentifier("x")))
	b := NewUnknown(attribute.NewSet(attribute.FromQualifiedIdentifier("y")))
	merged := MergeUnknowns(a, b)
	want := attribute.NewSet(attribute.FromQualifiedIdentifier("x"), attribute.FromQualifiedIdentifier("y"))
	if diff := cmp.Diff(want, merged.Set(), unknownSetCmpOpts); diff != "" {
		t.Errorf("MergeUnknowns() set mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnknownsNilOperand(t *testing.T) {
	a := NewUnknown(attribute.NewSet(attribute.FromQualifiedIdentifier("x")))
	if MergeUnknowns(a, nil) != a {
		t.Error("MergeUnknowns(a, nil) should return a unchanged")
	}
	if MergeUnknowns(nil, a) != a {
		t.Error("MergeUnknowns(nil, a) should return a unchanged")
	}
}

func TestUnknownEqualAndConvertAreIdentity(t *testing.T) {
	u := NewUnknown(attribute.NewSet(attribute.FromQualifiedIdentifier("x")))
	if u.Equal(Int(5)) != u {
		t.Error("Unknown.Equal should always return itself")
	}
	if u.ConvertToType(IntType) != u {
		t.Error("Unknown.ConvertToType should always return itself")
	}
	if _, err := u.ConvertToNative(nil); err == nil {
		t.Error("Unknown.ConvertToNative should always fail")
	}
}
