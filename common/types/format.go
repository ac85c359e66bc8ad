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
	"reflect"

	"github.com/arcflow-dev/cel-rt/common/types/ref"
)

// conversionError standardizes the "unsupported native conversion" error
// shape raised from ConvertToNative implementations across the value
// model.
func conversionError(from ref.Type, to reflect.Type) error {
	return NewErr("unsupported type conversion from '%s' to %v", from.TypeName(), to)
}
