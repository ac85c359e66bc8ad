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

package interpreter

// EvalListener is invoked synchronously, in AST post-order, once each
// node has produced a concrete IntermediateResult (§4.6 "Tracing", §5
// "Listeners"). Implementations must be side-effect-safe: a listener may
// be invoked more than once for the same expr id under exhaustive-eval
// mode (§9).
type EvalListener func(expr *Expr, result IntermediateResult)

// noopListener stands in whenever Interpreter.Eval is given a nil
// listener.
func noopListener(*Expr, IntermediateResult) {}
