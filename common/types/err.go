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
	"fmt"
	"reflect"

	"github.com/arcflow-dev/cel-rt/celerr"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// Err is the Val variant that carries an evaluation failure through the
// tri-valued algebra (§4.5, §7). Strict overloads propagate it untouched;
// only the top-level Program surfaces it as a raised error. It carries a
// closed-taxonomy Kind (mirroring celerr.Kind) so the driver can format
// the user-visible "evaluation error[kind at expr N]: source:offset: detail"
// message once it knows the failing expression's source position. The
// source:offset part follows the bracketed prefix rather than appearing
// inside it, and is left out when the checked AST records no offset.
type Err struct {
	kind      celerr.Kind
	cause     error
	exprID    int64
	hasExprID bool
}

// NewErr builds an Err from a formatted message with an unspecified
// Kind; used pervasively within the value model for overload mismatches
// where a more specific kind isn't yet known at the call site.
func NewErr(format string, args ...any) *Err {
	return &Err{kind: celerr.Unspecified, cause: fmt.Errorf(format, args...)}
}

// NewErrKind builds an Err tagged with a specific taxonomy Kind (§7).
func NewErrKind(kind celerr.Kind, format string, args ...any) *Err {
	return &Err{kind: kind, cause: fmt.Errorf(format, args...)}
}

// WrapErr lifts an existing Go error into the Val universe.
func WrapErr(err error) *Err {
	if err == nil {
		return nil
	}
	return &Err{kind: celerr.Unspecified, cause: err}
}

// Kind returns the error's taxonomy tag (§7).
func (e *Err) Kind() celerr.Kind { return e.kind }

// AtExpr tags the error with the id of the expression that first produced
// it, if it is not already tagged; repeated calls as the error propagates
// up through ancestor nodes are no-ops, so the reported location is
// always the innermost failing expression (§7).
func (e *Err) AtExpr(id int64) *Err {
	if !e.hasExprID {
		e.exprID = id
		e.hasExprID = true
	}
	return e
}

// ExprID returns the tagged expression id, if any.
func (e *Err) ExprID() (int64, bool) { return e.exprID, e.hasExprID }

func (e *Err) ConvertToNative(typeDesc reflect.Type) (any, error) { return nil, e.cause }

func (e *Err) ConvertToType(typeVal ref.Type) ref.Val { return e }

// Equal returns the error itself: an error is never equal to anything,
// including another error, which lets the propagation logic in §4.5
// forward it unchanged rather than collapse it to a bool.
func (e *Err) Equal(other ref.Val) ref.Val { return e }

func (e *Err) Type() ref.Type { return ErrType }
func (e *Err) Value() any     { return e.cause }
func (e *Err) Error() string  { return e.cause.Error() }
func (e *Err) Unwrap() error  { return e.cause }
func (e *Err) String() string { return e.cause.Error() }
