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

// Pattern is an Attribute that may contain wildcards (§4.2), declared by a
// caller to mark a variable (or part of it) as unknown for an evaluation.
type Pattern struct {
	variable   string
	qualifiers []Qualifier
}

// NewPattern builds a mutable-by-append Pattern rooted at variable.
func NewPattern(variable string) *Pattern {
	return &Pattern{variable: variable}
}

// Field appends a string qualifier pattern.
func (p *Pattern) Field(name string) *Pattern {
	p.qualifiers = append(p.qualifiers, String(name))
	return p
}

// Index appends an int qualifier pattern.
func (p *Pattern) Index(i int64) *Pattern {
	p.qualifiers = append(p.qualifiers, Int(i))
	return p
}

// IndexUint appends a uint qualifier pattern.
func (p *Pattern) IndexUint(u uint64) *Pattern {
	p.qualifiers = append(p.qualifiers, Uint(u))
	return p
}

// IndexBool appends a bool qualifier pattern.
func (p *Pattern) IndexBool(b bool) *Pattern {
	p.qualifiers = append(p.qualifiers, Bool(b))
	return p
}

// Wildcard appends a wildcard qualifier pattern, matching any single
// qualifier at that position.
func (p *Pattern) Wildcard() *Pattern {
	p.qualifiers = append(p.qualifiers, Wildcard())
	return p
}

// Variable returns the pattern's root variable name.
func (p *Pattern) Variable() string { return p.variable }

// Qualifiers returns the pattern's qualifier patterns.
func (p *Pattern) Qualifiers() []Qualifier { return p.qualifiers }

// qualifierMatches reports whether a concrete qualifier matches a pattern
// qualifier: a wildcard matches anything, otherwise the kinds and values
// must be equal.
func qualifierMatches(pat, concrete Qualifier) bool {
	if pat.kind == KindWildcard {
		return true
	}
	return pat.Equal(concrete)
}

// IsMatch reports whether attr matches the pattern exactly: same root,
// same qualifier-path length, and every qualifier equal or a wildcard
// (§4.2).
func (p *Pattern) IsMatch(attr Attribute) bool {
	if p.variable != attr.Root() {
		return false
	}
	if len(p.qualifiers) != len(attr.Qualifiers()) {
		return false
	}
	for i, pq := range p.qualifiers {
		if !qualifierMatches(pq, attr.Qualifiers()[i]) {
			return false
		}
	}
	return true
}

// IsPartialMatch reports whether attr is a strict prefix of some concrete
// attribute that would match the pattern: same root, attr's qualifiers no
// longer than the pattern's, and every qualifier attr does have matching
// elementwise (§4.2). This is what lets `x.y` on a partially-unknown `x`
// (whose attribute trail so far is a prefix) yield unknown rather than
// resolving against a concrete value.
func (p *Pattern) IsPartialMatch(attr Attribute) bool {
	if p.variable != attr.Root() {
		return false
	}
	if len(attr.Qualifiers()) >= len(p.qualifiers) {
		return false
	}
	for i, aq := range attr.Qualifiers() {
		if !qualifierMatches(p.qualifiers[i], aq) {
			return false
		}
	}
	return true
}

// Simplify produces the concrete attribute to report as the unknown
// witness when a partial match is hit: attr extended with the pattern's
// remaining non-wildcard qualifiers is unknowable beyond attr's own
// length, so the witness is simply attr itself, truncated to the depth
// the pattern actually constrains (§4.2).
func (p *Pattern) Simplify(attr Attribute) Attribute {
	n := len(attr.Qualifiers())
	if n > len(p.qualifiers) {
		n = len(p.qualifiers)
	}
	return attr.Prefix(n)
}

// Matches reports whether the pattern's variable equals the given name,
// the first test any resolver applies before walking qualifiers.
func (p *Pattern) Matches(variable string) bool {
	return p.variable == variable
}
