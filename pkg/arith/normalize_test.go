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
)

func TestNormalizeBooleanOperators(t *testing.T) {
	var (
		x = ir.IndexVar("x")
		y = ir.IndexVar("y")
		a = ir.NewVar("a", ir.Bool)
		b = ir.NewVar("b", ir.Bool)
	)
	//
	cases := []struct {
		input    ir.Expr
		expected ir.Expr
	}{
		// !!a => a
		{&ir.Not{A: &ir.Not{A: a}}, a},
		// !(a || b) => !a && !b
		{&ir.Not{A: &ir.Or{A: a, B: b}},
			&ir.And{A: &ir.Not{A: a}, B: &ir.Not{A: b}}},
		// !(a && b) => !a || !b
		{&ir.Not{A: &ir.And{A: a, B: b}},
			&ir.Or{A: &ir.Not{A: a}, B: &ir.Not{A: b}}},
		// x >= y => y <= x
		{&ir.GE{A: x, B: y}, &ir.LE{A: y, B: x}},
		// !(x < y) => y <= x
		{&ir.Not{A: &ir.LT{A: x, B: y}}, &ir.LE{A: y, B: x}},
		// !(y > x) => y <= x
		{&ir.Not{A: &ir.GT{A: y, B: x}}, &ir.LE{A: y, B: x}},
		// x > y => y < x
		{&ir.GT{A: x, B: y}, &ir.LT{A: y, B: x}},
		// !(x <= y) => y < x
		{&ir.Not{A: &ir.LE{A: x, B: y}}, &ir.LT{A: y, B: x}},
		// !(x == y) => x != y
		{&ir.Not{A: &ir.EQ{A: x, B: y}}, &ir.NE{A: x, B: y}},
		// !(x != y) => x == y
		{&ir.Not{A: &ir.NE{A: x, B: y}}, &ir.EQ{A: x, B: y}},
		// fixed point on already-normal expressions
		{&ir.LT{A: x, B: y}, &ir.LT{A: x, B: y}},
	}
	//
	for _, tc := range cases {
		actual := NormalizeBooleanOperators(tc.input)
		assert.True(t, ir.Equal(actual, tc.expected),
			"normalize(%s) gave %s, expected %s", tc.input, actual, tc.expected)
	}
}

func TestExtractConstraints(t *testing.T) {
	var (
		a = ir.NewVar("a", ir.Bool)
		b = ir.NewVar("b", ir.Bool)
		c = ir.NewVar("c", ir.Bool)
	)
	// (a && b) && c splits into three leaves
	leaves := ExtractConstraints(&ir.And{A: &ir.And{A: a, B: b}, B: c})
	assert.Len(t, leaves, 3)
	assert.True(t, ir.Equal(leaves[0], a))
	assert.True(t, ir.Equal(leaves[1], b))
	assert.True(t, ir.Equal(leaves[2], c))
	// disjunctions are not split
	leaves = ExtractConstraints(&ir.Or{A: a, B: b})
	assert.Len(t, leaves, 1)
}
