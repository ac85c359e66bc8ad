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

package functions

import (
	"regexp"

	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
	"github.com/arcflow-dev/cel-rt/common/types/traits"
	"github.com/arcflow-dev/cel-rt/operators"
)

// Standard returns the built-in overload set (§4.3). Rather than
// enumerating one overload per concrete operand-type combination, each
// arithmetic/comparison/container operator is implemented once against
// the relevant trait interface (traits.Adder, traits.Comparer, ...) and
// left to the concrete value types in common/types to supply the
// type-specific behavior; this mirrors how the value model's capability
// bits (§4.1) are meant to be consumed by a dispatcher.
func Standard() []*Overload {
	return []*Overload{
		{
			ID:        overloadID(operators.LogicalNot),
			ArgTypes:  []ref.Type{types.BoolType},
			NonStrict: false,
			Unary: func(v ref.Val) ref.Val {
				b, ok := v.(types.Bool)
				if !ok {
					return noSuchOverload1(v, operators.LogicalNot)
				}
				return b.Negate()
			},
		},
		{
			ID:        overloadID(operators.LogicalAnd),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: true,
			Binary:    logicalAnd,
		},
		{
			ID:        overloadID(operators.LogicalOr),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: true,
			Binary:    logicalOr,
		},
		{
			ID:        overloadID(operators.NotStrictlyFalse),
			ArgTypes:  []ref.Type{nil},
			NonStrict: true,
			Unary:     notStrictlyFalse,
		},
		{
			ID:        overloadID(operators.Equals),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary:    func(lhs, rhs ref.Val) ref.Val { return lhs.Equal(rhs) },
		},
		{
			ID:        overloadID(operators.NotEquals),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				eq := lhs.Equal(rhs)
				b, ok := eq.(types.Bool)
				if !ok {
					return eq
				}
				return !b
			},
		},
		{
			ID:        overloadID(operators.Less),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary:    compareOp(operators.Less, func(c int64) bool { return c < 0 }),
		},
		{
			ID:        overloadID(operators.LessEquals),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary:    compareOp(operators.LessEquals, func(c int64) bool { return c <= 0 }),
		},
		{
			ID:        overloadID(operators.Greater),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary:    compareOp(operators.Greater, func(c int64) bool { return c > 0 }),
		},
		{
			ID:        overloadID(operators.GreaterEquals),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary:    compareOp(operators.GreaterEquals, func(c int64) bool { return c >= 0 }),
		},
		{
			ID:        overloadID(operators.Add),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				adder, ok := lhs.(traits.Adder)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.Add)
				}
				return adder.Add(rhs)
			},
		},
		{
			ID:        overloadID(operators.Subtract),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				s, ok := lhs.(traits.Subtractor)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.Subtract)
				}
				return s.Subtract(rhs)
			},
		},
		{
			ID:        overloadID(operators.Multiply),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				m, ok := lhs.(traits.Multiplier)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.Multiply)
				}
				return m.Multiply(rhs)
			},
		},
		{
			ID:        overloadID(operators.Divide),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				d, ok := lhs.(traits.Divider)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.Divide)
				}
				return d.Divide(rhs)
			},
		},
		{
			ID:        overloadID(operators.Modulo),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				m, ok := lhs.(traits.Modder)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.Modulo)
				}
				return m.Modulo(rhs)
			},
		},
		{
			ID:        overloadID(operators.Negate),
			ArgTypes:  []ref.Type{nil},
			NonStrict: false,
			Unary: func(v ref.Val) ref.Val {
				n, ok := v.(traits.Negator)
				if !ok {
					return noSuchOverload1(v, operators.Negate)
				}
				return n.Negate()
			},
		},
		{
			ID:        overloadID(operators.Index),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				idx, ok := lhs.(traits.Indexer)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.Index)
				}
				return idx.Get(rhs)
			},
		},
		{
			ID:        overloadID(operators.Size),
			ArgTypes:  []ref.Type{nil},
			NonStrict: false,
			Unary: func(v ref.Val) ref.Val {
				s, ok := v.(traits.Sizer)
				if !ok {
					return noSuchOverload1(v, operators.Size)
				}
				return s.Size()
			},
		},
		{
			ID:        overloadID(operators.In),
			ArgTypes:  []ref.Type{nil, nil},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				c, ok := rhs.(traits.Container)
				if !ok {
					return noSuchOverload2(lhs, rhs, operators.In)
				}
				return c.Contains(lhs)
			},
		},
		{
			ID:        overloadID(operators.Matches),
			ArgTypes:  []ref.Type{types.StringType, types.StringType},
			NonStrict: false,
			Binary: func(lhs, rhs ref.Val) ref.Val {
				text, ok1 := lhs.(types.String)
				pattern, ok2 := rhs.(types.String)
				if !ok1 || !ok2 {
					return noSuchOverload2(lhs, rhs, operators.Matches)
				}
				matched, err := regexp.MatchString(string(pattern), string(text))
				if err != nil {
					return types.NewErr("invalid regex %q: %v", string(pattern), err)
				}
				return types.Bool(matched)
			},
		},
		{
			ID:        overloadID(operators.Conditional),
			ArgTypes:  []ref.Type{nil, nil, nil},
			NonStrict: true,
			Function: func(values ...ref.Val) ref.Val {
				cond, ok := values[0].(types.Bool)
				if !ok {
					if types.IsErrorOrUnknown(values[0]) {
						return values[0]
					}
					return types.NewErr("no such overload: conditional requires bool, got '%s'", values[0].Type().TypeName())
				}
				if cond {
					return values[1]
				}
				return values[2]
			},
		},
	}
}

func overloadID(name string) string { return name }

func noSuchOverload1(v ref.Val, op string) ref.Val {
	if types.IsErrorOrUnknown(v) {
		return v
	}
	return types.NewErr("no such overload: %s(%s)", op, v.Type().TypeName())
}

func noSuchOverload2(lhs, rhs ref.Val, op string) ref.Val {
	if types.IsErrorOrUnknown(lhs) {
		return lhs
	}
	if types.IsErrorOrUnknown(rhs) {
		return rhs
	}
	return types.NewErr("no such overload: %s(%s, %s)", op, lhs.Type().TypeName(), rhs.Type().TypeName())
}

// compareOp builds a Binary from the Comparer trait's three-way Compare,
// translating the IntNegOne/IntZero/IntOne result with pred (§4.1).
func compareOp(op string, pred func(int64) bool) BinaryOp {
	return func(lhs, rhs ref.Val) ref.Val {
		c, ok := lhs.(traits.Comparer)
		if !ok {
			return noSuchOverload2(lhs, rhs, op)
		}
		cmp := c.Compare(rhs)
		i, ok := cmp.(types.Int)
		if !ok {
			// an Err (e.g. NaN, incomparable types) or Unknown propagates.
			return cmp
		}
		return types.Bool(pred(int64(i)))
	}
}

// logicalAnd implements §4.3/§4.5's short-circuit, non-strict `&&`: a
// concrete `false` on either side wins outright even if the other side is
// an error or unknown.
func logicalAnd(lhs, rhs ref.Val) ref.Val {
	lb, lok := lhs.(types.Bool)
	rb, rok := rhs.(types.Bool)
	if lok && !bool(lb) {
		return types.False
	}
	if rok && !bool(rb) {
		return types.False
	}
	if lok && rok {
		return lb && rb
	}
	if types.IsErrorOrUnknown(lhs) {
		return lhs
	}
	if types.IsErrorOrUnknown(rhs) {
		return rhs
	}
	if !lok {
		return types.NewErr("no such overload: _&&_ requires bool, got '%s'", lhs.Type().TypeName())
	}
	return types.NewErr("no such overload: _&&_ requires bool, got '%s'", rhs.Type().TypeName())
}

// logicalOr mirrors logicalAnd for `||`: a concrete `true` on either side
// wins outright.
func logicalOr(lhs, rhs ref.Val) ref.Val {
	lb, lok := lhs.(types.Bool)
	rb, rok := rhs.(types.Bool)
	if lok && bool(lb) {
		return types.True
	}
	if rok && bool(rb) {
		return types.True
	}
	if lok && rok {
		return lb || rb
	}
	if types.IsErrorOrUnknown(lhs) {
		return lhs
	}
	if types.IsErrorOrUnknown(rhs) {
		return rhs
	}
	if !lok {
		return types.NewErr("no such overload: _||_ requires bool, got '%s'", lhs.Type().TypeName())
	}
	return types.NewErr("no such overload: _||_ requires bool, got '%s'", rhs.Type().TypeName())
}

// notStrictlyFalse implements the comprehension loop guard (§4.6): an
// error/unknown condition does not stop the fold, only a concrete false
// does.
func notStrictlyFalse(v ref.Val) ref.Val {
	if b, ok := v.(types.Bool); ok {
		return b
	}
	return types.True
}
