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

// Package operators names the canonical, opaque function identifiers an
// AST's call nodes carry for the built-in operators (§4.3).
package operators

const (
	Conditional   = "_?_:_"
	LogicalAnd    = "_&&_"
	LogicalOr     = "_||_"
	LogicalNot    = "!_"
	NotStrictlyFalse = "@not_strictly_false"
	In            = "@in"
	Equals        = "_==_"
	NotEquals     = "_!=_"
	Less          = "_<_"
	LessEquals    = "_<=_"
	Greater       = "_>_"
	GreaterEquals = "_>=_"
	Add           = "_+_"
	Subtract      = "_-_"
	Multiply      = "_*_"
	Divide        = "_/_"
	Modulo        = "_%_"
	Negate        = "-_"
	Index         = "_[_]"
	Size          = "size"
	Matches       = "matches"
	TypeConvert   = "type"
)

var textAliases = map[string]string{
	"+": Add, "-": Subtract, "*": Multiply, "/": Divide, "%": Modulo,
	"in": In, "==": Equals, "!=": NotEquals,
	"<": Less, "<=": LessEquals, ">": Greater, ">=": GreaterEquals,
}

// Find maps a surface-syntax operator token to its canonical function
// identifier.
func Find(text string) (string, bool) {
	op, found := textAliases[text]
	return op, found
}
