// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import "testing"

func TestTruncDiv_1(t *testing.T) {
	if TruncDiv(-7, 2) != -3 {
		t.Errorf("truncated division rounds towards zero")
	}
}

func TestTruncMod_1(t *testing.T) {
	if TruncMod(-7, 2) != -1 {
		t.Errorf("truncated remainder takes the dividend sign")
	}
}

func TestFloorDiv_1(t *testing.T) {
	if FloorDiv(-7, 2) != -4 {
		t.Errorf("floored division rounds towards negative infinity")
	}
}

func TestFloorDiv_2(t *testing.T) {
	if FloorDiv(7, 2) != 3 || FloorDiv(8, 2) != 4 {
		t.Errorf("floored division agrees with truncation for positive operands")
	}
}

func TestFloorMod_1(t *testing.T) {
	if FloorMod(-7, 2) != 1 {
		t.Errorf("floored remainder takes the divisor sign")
	}
}

func TestFloorMod_2(t *testing.T) {
	if FloorMod(7, -2) != -1 {
		t.Errorf("floored remainder takes the divisor sign")
	}
}

func TestFloorIdentity_1(t *testing.T) {
	for x := int64(-20); x <= 20; x++ {
		for y := int64(-5); y <= 5; y++ {
			if y == 0 {
				continue
			}

			if FloorDiv(x, y)*y+FloorMod(x, y) != x {
				t.Fatalf("floor identity failed for %d, %d", x, y)
			}

			if TruncDiv(x, y)*y+TruncMod(x, y) != x {
				t.Fatalf("trunc identity failed for %d, %d", x, y)
			}
		}
	}
}
