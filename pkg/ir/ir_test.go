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
package ir

import (
	"testing"
)

func TestFoldAdd_1(t *testing.T) {
	CheckConst(t, NewAdd(Index(1), Index(2)), 3)
}

func TestFoldAdd_2(t *testing.T) {
	// identity element
	x := IndexVar("x")
	//
	if NewAdd(x, Index(0)) != Expr(x) {
		t.Errorf("x + 0 should fold to x")
	}
}

func TestFoldAdd_3(t *testing.T) {
	// wrap on the declared width
	CheckConst(t, NewAdd(Const64(Int8, 127), Const64(Int8, 1)), -128)
}

func TestFoldMul_1(t *testing.T) {
	x := IndexVar("x")
	//
	if NewMul(x, Index(1)) != Expr(x) {
		t.Errorf("x * 1 should fold to x")
	}
}

func TestFoldDiv_1(t *testing.T) {
	// division by zero must not fold
	e := NewDiv(Index(1), Index(0))
	//
	if _, ok := e.(*Div); !ok {
		t.Errorf("1 / 0 should remain a division node")
	}
}

func TestFoldDiv_2(t *testing.T) {
	CheckConst(t, NewDiv(Index(-7), Index(2)), -3)
	CheckConst(t, NewFloorDiv(Index(-7), Index(2)), -4)
	CheckConst(t, NewMod(Index(-7), Index(2)), -1)
	CheckConst(t, NewFloorMod(Index(-7), Index(2)), 1)
}

func TestFoldCompare_1(t *testing.T) {
	CheckBool(t, NewLT(Index(1), Index(2)), true)
	CheckBool(t, NewGE(Index(1), Index(2)), false)
}

func TestFoldLogical_1(t *testing.T) {
	b := NewVar("b", Bool)
	//
	if NewAnd(ConstBool(true), b) != Expr(b) {
		t.Errorf("true && b should fold to b")
	}
	//
	CheckBool(t, NewOr(ConstBool(true), b), true)
}

func TestEqual_1(t *testing.T) {
	a := NewAdd(IndexVar("x"), Index(1))
	b := NewAdd(IndexVar("x"), Index(1))
	//
	if !Equal(a, b) {
		t.Errorf("structurally identical expressions should be equal")
	}
}

func TestEqual_2(t *testing.T) {
	a := NewAdd(IndexVar("x"), Index(1))
	b := NewAdd(IndexVar("y"), Index(1))
	//
	if Equal(a, b) {
		t.Errorf("distinct variables should not be equal")
	}
}

func TestEqual_3(t *testing.T) {
	// dtype participates in equality
	if Equal(Const64(Int32, 1), Const64(Int64, 1)) {
		t.Errorf("literals of different widths should not be equal")
	}
}

func TestSideEffect_1(t *testing.T) {
	pure := NewAdd(IndexVar("x"), Index(1))
	//
	if SideEffect(pure) != EffectPure {
		t.Errorf("arithmetic should be pure")
	}
}

func TestSideEffect_2(t *testing.T) {
	opaque := NewCall(Int32, "load_state", IndexVar("x"))
	//
	if SideEffect(opaque) != EffectUpdateState {
		t.Errorf("unknown calls should default to updating state")
	}
}

func TestLaneCount_1(t *testing.T) {
	bcast := NewBroadcast(Index(1), Index(4))
	//
	if bcast.Type().Lanes != 4 {
		t.Errorf("expected 4 lanes")
	}
}

func TestLaneCount_2(t *testing.T) {
	vscale := NewCall(Int32, "vscale")
	ramp := NewRamp(Index(0), Index(1), NewMul(vscale, Index(4)))
	//
	if !ramp.Type().IsScalable() {
		t.Errorf("expected a scalable vector")
	}
	//
	if !ContainsVscaleCall(ramp.(*Ramp).Lanes) {
		t.Errorf("expected lanes to contain vscale")
	}
}

// ===================================================================

func CheckConst(t *testing.T, e Expr, val int64) {
	c, ok := e.(*IntLit)
	//
	if !ok {
		t.Errorf("expected %s to fold to a literal", e)
	} else if c.Value != val {
		t.Errorf("expected %s to fold to %d", e, val)
	}
}

func CheckBool(t *testing.T, e Expr, val bool) {
	c, ok := e.(*IntLit)
	//
	if !ok || !c.DType.IsBool() {
		t.Errorf("expected %s to fold to a boolean literal", e)
	} else if (c.Value != 0) != val {
		t.Errorf("expected %s to fold to %v", e, val)
	}
}
