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

func TestInterval_Add_1(t *testing.T) {
	CheckInterval(t, NewInterval(1, 2).Add(NewInterval(3, 4)), 4, 6)
}

func TestInterval_Add_2(t *testing.T) {
	CheckInterval(t, NewInterval(NegInf, 2).Add(NewInterval(3, 4)), NegInf, 6)
}

func TestInterval_Sub_1(t *testing.T) {
	CheckInterval(t, NewInterval(1, 2).Sub(NewInterval(3, 4)), -3, -1)
}

func TestInterval_Mul_1(t *testing.T) {
	CheckInterval(t, NewInterval(-2, 3).Mul(NewInterval(4, 5)), -10, 15)
}

func TestInterval_Mul_2(t *testing.T) {
	CheckInterval(t, NewInterval(0, PosInf).Mul(NewInterval(-1, -1)), NegInf, 0)
}

func TestInterval_Negate_1(t *testing.T) {
	CheckInterval(t, NewInterval(NegInf, 5).Negate(), -5, PosInf)
}

func TestInterval_Intersect_1(t *testing.T) {
	iv, ok := NewInterval(0, 10).Intersect(NewInterval(5, 20))
	if !ok {
		t.Fatalf("expected non-empty intersection")
	}

	CheckInterval(t, iv, 5, 10)
}

func TestInterval_Intersect_2(t *testing.T) {
	if _, ok := NewInterval(0, 1).Intersect(NewInterval(5, 20)); ok {
		t.Errorf("expected empty intersection")
	}
}

func TestAddSat_1(t *testing.T) {
	if AddSat(PosInf, -1) != PosInf {
		t.Errorf("infinity should absorb finite addition")
	}
}

func TestAddSat_2(t *testing.T) {
	if AddSat(PosInf-1, 5) != PosInf {
		t.Errorf("overflow should saturate")
	}
}

func TestMulSat_1(t *testing.T) {
	if MulSat(NegInf, -2) != PosInf {
		t.Errorf("negative times negative infinity should be positive infinity")
	}
}

func TestMulSat_2(t *testing.T) {
	if MulSat(1<<40, 1<<40) != PosInf {
		t.Errorf("overflow should saturate")
	}
}

// ===================================================================

func CheckInterval(t *testing.T, iv Interval, lo int64, hi int64) {
	if iv.Min != lo || iv.Max != hi {
		t.Errorf("expected [%d, %d], got %s", lo, hi, iv.String())
	}
}
