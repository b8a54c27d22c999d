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
package syntax

import (
	"testing"

	"github.com/consensys/go-arith/pkg/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiterals(t *testing.T) {
	assert.True(t, ir.Equal(MustParse("5"), ir.Index(5)))
	assert.True(t, ir.Equal(MustParse("-5"), ir.Index(-5)))
	assert.True(t, ir.Equal(MustParse("true"), ir.ConstBool(true)))
	assert.True(t, ir.Equal(MustParse("false"), ir.ConstBool(false)))
	assert.True(t, ir.Equal(MustParse("0.5"), ir.ConstFloat(ir.Float32, 0.5)))
	assert.True(t, ir.Equal(MustParse("i64(5)"), ir.Const64(ir.Int64, 5)))
}

func TestParsePrecedence(t *testing.T) {
	// multiplication binds tighter than addition
	expected := ir.NewAdd(ir.IndexVar("x"),
		ir.NewMul(ir.IndexVar("y"), ir.Index(2)))
	assert.True(t, ir.Equal(MustParse("x + y * 2"), expected))
	// comparison binds looser than arithmetic
	cmp := MustParse("x + 1 < y")
	_, ok := cmp.(*ir.LT)
	assert.True(t, ok)
	// conjunction binds looser than comparison
	conj := MustParse("x < y && y < x")
	_, ok = conj.(*ir.And)
	assert.True(t, ok)
}

func TestParseAssociativity(t *testing.T) {
	// subtraction chains associate to the left
	expected := ir.NewSub(ir.NewSub(ir.IndexVar("x"), ir.IndexVar("y")), ir.IndexVar("z"))
	assert.True(t, ir.Equal(MustParse("x - y - z"), expected))
}

func TestParseVariableTypes(t *testing.T) {
	e := MustParse("n:i64 + i64(1)")
	assert.Equal(t, ir.Int64, e.Type())
	// conflicting annotations are rejected; an unannotated mention of a
	// declared variable resolves to its declared type
	_, err := Parse("n:i64 + n:u64")
	assert.Error(t, err)
	assert.Equal(t, ir.Int64, MustParse("n:i64 + n").Type())
}

func TestParseCalls(t *testing.T) {
	e := MustParse("floordiv(x, 2)")
	_, ok := e.(*ir.FloorDiv)
	require.True(t, ok)
	//
	e = MustParse("min(x, max(y, z))")
	_, ok = e.(*ir.Min)
	require.True(t, ok)
	//
	e = MustParse("if_then_else(x < y, x, y)")
	call, ok := e.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, "if_then_else", call.Op)
	assert.Len(t, call.Args, 3)
}

func TestParseUnary(t *testing.T) {
	b := ir.NewVar("b", ir.Bool)
	assert.True(t, ir.Equal(MustParse("!!b:bool"), &ir.Not{A: &ir.Not{A: b}}))
}

func TestParseLet(t *testing.T) {
	e := MustParse("let t = x + y in t * 2")
	let, ok := e.(*ir.Let)
	require.True(t, ok)
	assert.Equal(t, "t", let.Var.Name)
}

func TestParseArityErrors(t *testing.T) {
	_, err := Parse("floordiv(x)")
	assert.Error(t, err)
	//
	_, err = Parse("select(x, y)")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"(x + 5) - 5",
		"min(x, x + 3)",
		"floormod(x * 4 + 2, 4)",
		"truncdiv(x, 2) < 3",
		"x < y && y < z",
		"x < y || !(y < x)",
		"select(x < y, x, y)",
		"broadcast(x, 4) + ramp(y, 1, 4)",
		"if_then_else(x < y, x, y)",
		"let t = x + y in t * 2",
		"shift_left(x, 2)",
		"n:i64 + i64(1)",
	}
	//
	for _, input := range inputs {
		e := MustParse(input)
		back, err := Parse(e.String())
		//
		require.NoError(t, err, "reparsing %q (printed as %q)", input, e)
		assert.True(t, ir.Equal(e, back),
			"%q failed to round-trip (printed as %q, reparsed as %q)", input, e, back)
	}
}
