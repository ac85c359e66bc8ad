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

// Package attribute implements the attribute-based symbolic layer used for
// unknown tracking (§4.2, C3): a path of qualifiers rooted at an
// identifier, and the wildcard-bearing patterns used to declare which
// inputs are unknown.
package attribute

import (
	"fmt"
	"strings"
	"unicode"
)

// Qualifier is a single step in an Attribute's path: a field/map-key
// string, or an int/uint/bool map key (§3).
type Qualifier struct {
	kind Kind
	str  string
	i    int64
	u    uint64
	b    bool
}

// Kind discriminates the qualifier's underlying type.
type Kind int

const (
	// KindString qualifies with a field name or string map key.
	KindString Kind = iota
	// KindInt qualifies with a signed index or int map key.
	KindInt
	// KindUint qualifies with an unsigned map key.
	KindUint
	// KindBool qualifies with a bool map key.
	KindBool
	// KindWildcard only appears in an AttributePattern (§4.2); it is
	// forbidden in a concrete Attribute.
	KindWildcard
)

// String builds a string-keyed Qualifier.
func String(s string) Qualifier { return Qualifier{kind: KindString, str: s} }

// Int builds an int-keyed Qualifier.
func Int(i int64) Qualifier { return Qualifier{kind: KindInt, i: i} }

// Uint builds a uint-keyed Qualifier.
func Uint(u uint64) Qualifier { return Qualifier{kind: KindUint, u: u} }

// Bool builds a bool-keyed Qualifier.
func Bool(b bool) Qualifier { return Qualifier{kind: KindBool, b: b} }

// Wildcard builds a pattern-only wildcard qualifier.
func Wildcard() Qualifier { return Qualifier{kind: KindWildcard} }

// Kind returns the qualifier's kind.
func (q Qualifier) Kind() Kind { return q.kind }

// StringValue returns the string payload (only meaningful for KindString).
func (q Qualifier) StringValue() string { return q.str }

// IntValue returns the int payload (only meaningful for KindInt).
func (q Qualifier) IntValue() int64 { return q.i }

// UintValue returns the uint payload (only meaningful for KindUint).
func (q Qualifier) UintValue() uint64 { return q.u }

// BoolValue returns the bool payload (only meaningful for KindBool).
func (q Qualifier) BoolValue() bool { return q.b }

// Equal compares two concrete qualifiers for elementwise equality; a
// wildcard is never equal to a concrete qualifier under this comparison
// (pattern matching goes through Pattern.IsMatch instead, see pattern.go).
func (q Qualifier) Equal(other Qualifier) bool {
	if q.kind != other.kind {
		return false
	}
	switch q.kind {
	case KindString:
		return q.str == other.str
	case KindInt:
		return q.i == other.i
	case KindUint:
		return q.u == other.u
	case KindBool:
		return q.b == other.b
	default:
		return true
	}
}

func (q Qualifier) String() string {
	switch q.kind {
	case KindString:
		if isIdentifier(q.str) {
			return "." + q.str
		}
		return fmt.Sprintf("[%q]", q.str)
	case KindInt:
		return fmt.Sprintf("[%d]", q.i)
	case KindUint:
		return fmt.Sprintf("[%du]", q.u)
	case KindBool:
		return fmt.Sprintf("[%v]", q.b)
	default:
		return "[*]"
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Attribute is a non-empty ordered sequence of Qualifiers rooted at an
// identifier (§3): e.g. `request.headers["x-id"][0]`.
type Attribute struct {
	root       string
	qualifiers []Qualifier
}

// FromQualifiedIdentifier splits a dotted identifier ("a.b.c") into an
// attribute with string qualifiers for each segment after the root
// (§4.2).
func FromQualifiedIdentifier(name string) Attribute {
	parts := strings.Split(name, ".")
	a := Attribute{root: parts[0]}
	for _, p := range parts[1:] {
		a.qualifiers = append(a.qualifiers, String(p))
	}
	return a
}

// New creates a bare root attribute with no qualifiers.
func New(root string) Attribute {
	return Attribute{root: root}
}

// Root returns the attribute's root identifier.
func (a Attribute) Root() string { return a.root }

// Qualifiers returns the attribute's qualifier path.
func (a Attribute) Qualifiers() []Qualifier { return a.qualifiers }

// Qualify returns a new Attribute with q appended; wildcards are rejected
// since they are only legal within a pattern (§4.2).
func (a Attribute) Qualify(q Qualifier) (Attribute, error) {
	if q.kind == KindWildcard {
		return Attribute{}, fmt.Errorf("wildcard qualifier not permitted on a concrete attribute")
	}
	out := Attribute{root: a.root, qualifiers: make([]Qualifier, len(a.qualifiers)+1)}
	copy(out.qualifiers, a.qualifiers)
	out.qualifiers[len(a.qualifiers)] = q
	return out, nil
}

// Prefix returns the attribute truncated to its first n qualifiers
// (n <= len(Qualifiers())). Used when simplifying a partial match (§4.2).
func (a Attribute) Prefix(n int) Attribute {
	if n >= len(a.qualifiers) {
		return a
	}
	return Attribute{root: a.root, qualifiers: append([]Qualifier{}, a.qualifiers[:n]...)}
}

// Equal compares two concrete attributes by root and qualifier path.
func (a Attribute) Equal(other Attribute) bool {
	if a.root != other.root || len(a.qualifiers) != len(other.qualifiers) {
		return false
	}
	for i, q := range a.qualifiers {
		if !q.Equal(other.qualifiers[i]) {
			return false
		}
	}
	return true
}

func (a Attribute) String() string {
	var b strings.Builder
	b.WriteString(a.root)
	for _, q := range a.qualifiers {
		b.WriteString(q.String())
	}
	return b.String()
}
