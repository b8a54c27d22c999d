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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternBindsAnyExpression(t *testing.T) {
	x := anyVar()
	e := ir.NewAdd(ir.IndexVar("a"), ir.Index(1))
	//
	require.True(t, x.match(e))
	assert.True(t, ir.Equal(x.eval(), e))
}

func TestPatternBindingIsMonotone(t *testing.T) {
	x := anyVar()
	p := add(x, x)
	// x + x only matches when both operands unify
	assert.True(t, matchFresh(p, ir.NewAdd(ir.IndexVar("a"), ir.IndexVar("a"))))
	assert.False(t, matchFresh(p, ir.NewAdd(ir.IndexVar("a"), ir.IndexVar("b"))))
}

func TestTypedVariableRefusesNonLiteral(t *testing.T) {
	c1 := intVar()
	//
	assert.False(t, c1.match(ir.IndexVar("a")))
	assert.False(t, c1.match(ir.ConstBool(true)))
	assert.True(t, c1.match(ir.Index(3)))
}

func TestFloatVariableRefusesIntLiteral(t *testing.T) {
	c := floatVar()
	//
	assert.False(t, c.match(ir.Index(3)))
	assert.True(t, c.match(ir.ConstFloat(ir.Float32, 0.5)))
}

func TestPatternEvalSubstitutes(t *testing.T) {
	var (
		x, y = anyVar(), anyVar()
		src  = sub(add(x, y), y)
		e    = ir.NewSub(ir.NewAdd(ir.IndexVar("a"), ir.IndexVar("b")), ir.IndexVar("b"))
	)
	//
	require.True(t, matchFresh(src, e))
	assert.True(t, ir.Equal(x.eval(), ir.IndexVar("a")))
}

func TestPatternEvalFoldsConstants(t *testing.T) {
	var (
		x      = anyVar()
		c1, c2 = intVar(), intVar()
		src    = sub(add(x, c1), c2)
		res    = add(x, sub(c1, c2))
		e      = ir.NewSub(ir.NewAdd(ir.IndexVar("a"), ir.Index(5)), ir.Index(5))
	)
	//
	require.True(t, matchFresh(src, e))
	// (5 - 5) folds to zero and then x + 0 folds to x
	assert.True(t, ir.Equal(res.eval(), ir.IndexVar("a")))
}

func TestMatchesOneOfTriesAlternativesInOrder(t *testing.T) {
	var (
		x, y = anyVar(), anyVar()
		p    = matchesOneOf(add(mul(x, y), x), add(x, mul(x, y)))
	)
	// first alternative fails, second succeeds, bindings reset in between
	e := ir.NewAdd(ir.IndexVar("a"), ir.NewMul(ir.IndexVar("a"), ir.IndexVar("b")))
	require.True(t, matchFresh(p, e))
	assert.True(t, ir.Equal(x.eval(), ir.IndexVar("a")))
	assert.True(t, ir.Equal(y.eval(), ir.IndexVar("b")))
}

func TestMatchesOneOfResetsFailedBindings(t *testing.T) {
	var (
		x = anyVar()
		// the first alternative binds x before failing on the constant
		p = matchesOneOf(add(x, 2), add(x, 1))
		e = ir.NewAdd(ir.IndexVar("a"), ir.Index(1))
	)
	//
	require.True(t, matchFresh(p, e))
	assert.True(t, ir.Equal(x.eval(), ir.IndexVar("a")))
}

func TestBareConstantMatchesAnyWidth(t *testing.T) {
	p := floordiv(anyVar(), 2)
	//
	assert.True(t, matchFresh(p, ir.NewFloorDiv(ir.IndexVar("a"), ir.Index(2))))
	assert.True(t, matchFresh(p, ir.NewFloorDiv(
		ir.NewVar("a", ir.Int64), ir.Const64(ir.Int64, 2))))
	assert.False(t, matchFresh(p, ir.NewFloorDiv(ir.IndexVar("a"), ir.Index(3))))
}

func TestEvalOrDefaultsUnboundVariable(t *testing.T) {
	y := anyVar()
	//
	assert.True(t, ir.Equal(y.evalOr(ir.Index(0)), ir.Index(0)))
}

func TestZeroLikeTakesOperandType(t *testing.T) {
	x := anyVar()
	require.True(t, x.match(ir.NewVar("a", ir.Int64)))
	//
	z, ok := zeroLike(x).eval().(*ir.IntLit)
	require.True(t, ok)
	assert.Equal(t, ir.Int64, z.DType)
	assert.Equal(t, int64(0), z.Value)
}
