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

func TestIsIndexType(t *testing.T) {
	assert.True(t, IsIndexType(ir.Int32))
	assert.True(t, IsIndexType(ir.Int64))
	assert.False(t, IsIndexType(ir.Bool))
	assert.False(t, IsIndexType(ir.Uint32))
	assert.False(t, IsIndexType(ir.Float32))
	assert.False(t, IsIndexType(ir.Int32.WithLanes(4)))
}

func TestConstFoldDivByZero(t *testing.T) {
	_, ok := tryConstFoldDiv(ir.Index(1), ir.Index(0))
	assert.False(t, ok, "division by zero must not fold")
	//
	_, ok = tryConstFoldFloorMod(ir.Index(1), ir.Index(0))
	assert.False(t, ok)
}

func TestConstFoldWrapsOnWidth(t *testing.T) {
	c, ok := tryConstFoldMul(ir.Const64(ir.Int8, 100), ir.Const64(ir.Int8, 2))
	require.True(t, ok)
	assert.Equal(t, int64(-56), c.(*ir.IntLit).Value)
}

func TestConstFoldMixedWidthsRefuse(t *testing.T) {
	_, ok := tryConstFoldAdd(ir.Const64(ir.Int32, 1), ir.Const64(ir.Int64, 1))
	assert.False(t, ok, "operands of different widths must not fold")
}

func TestExtractConstantOffset(t *testing.T) {
	x := ir.IndexVar("x")
	//
	base, c := ExtractConstantOffset(ir.NewAdd(x, ir.Index(3)))
	assert.True(t, ir.Equal(base, x))
	assert.Equal(t, int64(3), c)
	//
	base, c = ExtractConstantOffset(&ir.Sub{A: x, B: ir.Index(3)})
	assert.True(t, ir.Equal(base, x))
	assert.Equal(t, int64(-3), c)
	// the c-x form reports the base with a flipped sign
	base, c = ExtractConstantOffset(&ir.Sub{A: ir.Index(3), B: x})
	assert.True(t, ir.Equal(base, x))
	assert.Equal(t, int64(3), c)
	//
	base, c = ExtractConstantOffset(x)
	assert.True(t, ir.Equal(base, x))
	assert.Equal(t, int64(0), c)
}

func TestZeroAwareGCD(t *testing.T) {
	assert.Equal(t, int64(4), ZeroAwareGCD(8, 12))
	assert.Equal(t, int64(4), ZeroAwareGCD(-8, 12))
	assert.Equal(t, int64(5), ZeroAwareGCD(0, 5))
	assert.Equal(t, int64(5), ZeroAwareGCD(5, 0))
	assert.Equal(t, int64(0), ZeroAwareGCD(0, 0))
}
