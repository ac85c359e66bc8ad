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
	"time"
)

func TestDurationAddDuration(t *testing.T) {
	a := Duration{time.Second}
	b := Duration{2 * time.Second}
	got := a.Add(b)
	if got.(Duration).Duration != 3*time.Second {
		t.Errorf("1s + 2s = %v, want 3s", got)
	}
}

func TestDurationAddTimestamp(t *testing.T) {
	ts := Timestamp{time.Unix(1000, 0).UTC()}
	d := Duration{10 * time.Second}
	got := d.Add(ts)
	out, ok := got.(Timestamp)
	if !ok || out.Time.Unix() != 1010 {
		t.Errorf("duration + timestamp = %v, want unix 1010", got)
	}
}

func TestDurationSubtract(t *testing.T) {
	a := Duration{5 * time.Second}
	b := Duration{2 * time.Second}
	got := a.Subtract(b)
	if got.(Duration).Duration != 3*time.Second {
		t.Errorf("5s - 2s = %v, want 3s", got)
	}
}

func TestDurationNegate(t *testing.T) {
	got := Duration{5 * time.Second}.Negate()
	if got.(Duration).Duration != -5*time.Second {
		t.Errorf("Negate(5s) = %v, want -5s", got)
	}
}

func TestDurationCompareAndEqual(t *testing.T) {
	a := Duration{1 * time.Second}
	b := Duration{2 * time.Second}
	if a.Compare(b) != IntNegOne {
		t.Error("1s should compare less than 2s")
	}
	if a.Equal(Duration{1 * time.Second}) != True {
		t.Error("1s should equal 1s")
	}
}

func TestDurationConvertToType(t *testing.T) {
	d := Duration{90 * time.Second}
	if d.ConvertToType(IntType) != Int(90*time.Second) {
		t.Error("converting duration to Int should yield its nanosecond count")
	}
}
