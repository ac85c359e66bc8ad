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

import (
	"github.com/arcflow-dev/cel-rt/common/types"
	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// resolveRuntimeType implements the `type(x)` built-in (§4.1, §6): with no
// TypeProvider the result is simply the value's Type(); with one, the
// value's type name (built-in or struct alike) is looked up there first so
// that enum/message type identity round-trips, falling back to Type() when
// the provider does not know the name.
func resolveRuntimeType(v ref.Val, provider ref.TypeProvider) ref.Val {
	if types.IsErrorOrUnknown(v) {
		return v
	}
	t := v.Type()
	if provider == nil {
		return t.(ref.Val)
	}
	if found, ok := provider.FindType(t.TypeName()); ok {
		return found.(ref.Val)
	}
	return t.(ref.Val)
}
