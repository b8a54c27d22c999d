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
package arith

import (
	"testing"

	"github.com/consensys/go-arith/pkg/ir"
	"github.com/consensys/go-arith/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundOfLiteral(t *testing.T) {
	a := NewBoundAnalyzer()
	assert.Equal(t, SinglePoint(5), a.Bound(ir.Index(5)))
}

func TestBoundOfArithmetic(t *testing.T) {
	a := NewBoundAnalyzer()
	x := ir.IndexVar("x")
	//
	exit := a.EnterScopedConstraint(syntax.MustParse("0 <= x && x <= 10"))
	defer exit()
	//
	assert.Equal(t, ConstIntBound{0, 10}, a.Bound(x))
	assert.Equal(t, ConstIntBound{2, 22}, a.Bound(syntax.MustParse("x * 2 + 2")))
	assert.Equal(t, ConstIntBound{-10, 0}, a.Bound(syntax.MustParse("0 - x")))
	assert.Equal(t, ConstIntBound{0, 5}, a.Bound(syntax.MustParse("truncdiv(x, 2)")))
	assert.Equal(t, ConstIntBound{0, 3}, a.Bound(syntax.MustParse("floormod(x, 4)")))
	assert.Equal(t, ConstIntBound{0, 7}, a.Bound(syntax.MustParse("min(x, 7)")))
}

func TestBoundConstraintScoping(t *testing.T) {
	a := NewBoundAnalyzer()
	x := ir.IndexVar("x")
	//
	exit := a.EnterScopedConstraint(syntax.MustParse("5 <= x"))
	assert.Equal(t, ConstIntBound{5, PosInf}, a.Bound(x))
	//
	inner := a.EnterScopedConstraint(syntax.MustParse("x < 8"))
	assert.Equal(t, ConstIntBound{5, 7}, a.Bound(x))
	//
	inner()
	assert.Equal(t, ConstIntBound{5, PosInf}, a.Bound(x))
	//
	exit()
	assert.Equal(t, Everything(), a.Bound(x))
}

func TestBoundOffsetConstraint(t *testing.T) {
	a := NewBoundAnalyzer()
	// x + 2 <= 7 implies x <= 5
	exit := a.EnterScopedConstraint(syntax.MustParse("x + 2 <= 7"))
	defer exit()
	//
	assert.Equal(t, ConstIntBound{NegInf, 5}, a.Bound(ir.IndexVar("x")))
}

func TestBoundOfVscale(t *testing.T) {
	a := NewBoundAnalyzer()
	assert.Equal(t, ConstIntBound{1, PosInf}, a.Bound(ir.NewCall(ir.Int32, "vscale")))
}

func TestModularOfAffine(t *testing.T) {
	a := NewModularAnalyzer()
	// x*4 + 2 lies in 4Z + 2
	assert.Equal(t, ModularSet{4, 2}, a.Of(syntax.MustParse("x * 4 + 2")))
	// 6 is exactly 6
	assert.Equal(t, ModularSet{0, 6}, a.Of(ir.Index(6)))
	// x*6 - y*4 lies in 2Z
	assert.Equal(t, ModularSet{2, 0}, a.Of(syntax.MustParse("x * 6 - y * 4")))
}

func TestModularOfFloorOps(t *testing.T) {
	a := NewModularAnalyzer()
	// (x*8 + 4) / 2 lies in 4Z + 2
	assert.Equal(t, ModularSet{4, 2},
		a.Of(syntax.MustParse("floordiv(x * 8 + 4, 2)")))
	// (x*8 + 3) % 4 is exactly 3
	assert.Equal(t, ModularSet{0, 3},
		a.Of(syntax.MustParse("floormod(x * 8 + 3, 4)")))
}

func TestModularConstraint(t *testing.T) {
	a := NewModularAnalyzer()
	//
	exit := a.EnterScopedConstraint(syntax.MustParse("floormod(x, 4) == 1"))
	assert.Equal(t, ModularSet{4, 1}, a.Of(ir.IndexVar("x")))
	//
	exit()
	assert.Equal(t, TrivialModularSet(), a.Of(ir.IndexVar("x")))
}

func TestTransitiveDirectFact(t *testing.T) {
	a := NewTransitiveAnalyzer()
	x, y := ir.IndexVar("x"), ir.IndexVar("y")
	//
	exit := a.EnterScopedConstraint(&ir.LT{A: x, B: y})
	defer exit()
	//
	assert.Equal(t, CmpLT, a.Compare(x, y, false))
	assert.Equal(t, CmpGT, a.Compare(y, x, false))
	// offsets shift the recorded slack
	assert.Equal(t, CmpLT, a.Compare(x, ir.NewAdd(y, ir.Index(1)), false))
}

func TestTransitivePropagation(t *testing.T) {
	a := NewTransitiveAnalyzer()
	x, y, z := ir.IndexVar("x"), ir.IndexVar("y"), ir.IndexVar("z")
	//
	exit := a.EnterScopedConstraint(
		&ir.And{A: &ir.LE{A: x, B: y}, B: &ir.LE{A: y, B: z}})
	defer exit()
	// x <= z only follows by chaining through y
	assert.Equal(t, CmpUnknown, a.Compare(x, z, false))
	assert.Equal(t, CmpLE, a.Compare(x, z, true))
}

func TestAnalyzerCanProve(t *testing.T) {
	a := NewAnalyzer()
	//
	exit := a.EnterConstraint(syntax.MustParse("0 <= x"))
	defer exit()
	//
	assert.True(t, a.CanProve(syntax.MustParse("0 <= x + 1")))
	assert.True(t, a.CanProveGreaterEqual(syntax.MustParse("x * 4"), 0))
	assert.False(t, a.CanProve(syntax.MustParse("x < 100")))
}

func TestNullOraclesKnowNothing(t *testing.T) {
	var o NullOracles
	//
	x := ir.IndexVar("x")
	require.Equal(t, Everything(), o.ConstIntBound(x))
	require.Equal(t, TrivialModularSet(), o.ModularSet(x))
	require.Equal(t, CmpUnknown, o.Compare(x, x, true))
	assert.False(t, o.CanProve(&ir.LE{A: x, B: x}))
}
