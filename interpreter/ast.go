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

// Package interpreter implements the AST-walking evaluation driver: a
// native Go expression tree, the dispatcher and resolver it consults,
// and the tri-valued propagation rules that drive a single evaluation
// (§4.3-§4.7, C2/C5/C7).
package interpreter

// Kind discriminates an Expr's shape (§4.6).
type Kind int

const (
	KindConst Kind = iota
	KindIdent
	KindSelect
	KindCall
	KindCreateList
	KindCreateStruct
	KindComprehension
)

// Expr is one node of a checked AST. The core never parses surface
// syntax: callers hand in an already-built tree carrying stable
// expression ids (§6 AST contract).
type Expr struct {
	ID   int64
	Kind Kind

	// KindConst
	ConstValue any

	// KindIdent
	IdentName string

	// KindSelect
	SelectOperand  *Expr
	SelectField    string
	SelectTestOnly bool // true for has(x.f)

	// KindCall
	CallFunction string
	CallTarget   *Expr // non-nil for receiver-style x.f(args)
	CallArgs     []*Expr

	// KindCreateList
	ListElems []*Expr

	// KindCreateStruct: a struct literal has TypeName set (possibly
	// empty for a map literal); entries are key/value expr pairs.
	StructTypeName string
	StructKeys     []*Expr
	StructValues   []*Expr

	// KindComprehension
	IterRange    *Expr
	IterVar      string
	AccuVar      string
	AccuInit     *Expr
	LoopCond     *Expr
	LoopStep     *Expr
	Result       *Expr
}

// ReferenceInfo is the reference-map entry for an Expr id: either a
// resolved identifier/field name, a constant value, or the candidate
// overload ids a call may dispatch to (§6).
type ReferenceInfo struct {
	Name        string
	OverloadIDs []string
	Value       any
}

// CheckedAST bundles a root Expr with the reference map and source-info
// map a type-checker would have attached (§6): `expr_id → resolved
// name/value/overload-ids` and `expr_id → byte offset` respectively. The
// core never builds these itself.
type CheckedAST struct {
	Expr          *Expr
	ReferenceMap  map[int64]*ReferenceInfo
	SourceInfo    map[int64]int32
	SourceName    string
}

// ReferenceFor looks up the reference-map entry for an expression id.
func (a *CheckedAST) ReferenceFor(id int64) (*ReferenceInfo, bool) {
	if a.ReferenceMap == nil {
		return nil, false
	}
	ref, found := a.ReferenceMap[id]
	return ref, found
}

// OffsetFor looks up the source byte offset for an expression id, used
// when formatting an EvaluationError (§6, §7).
func (a *CheckedAST) OffsetFor(id int64) (int32, bool) {
	if a.SourceInfo == nil {
		return 0, false
	}
	off, found := a.SourceInfo[id]
	return off, found
}
