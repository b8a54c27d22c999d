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

// corpus is a collection of well-typed index expressions over x, y and z,
// used by the driver-level property tests.
var corpus = []string{
	"(x + 5) - 5",
	"x + (y - x)",
	"5 + x",
	"5 * x",
	"min(x, x + 3)",
	"max(x, y) + min(x, y)",
	"truncdiv(x, 4) * 4 + truncmod(x, 4)",
	"floordiv(x, 2) * 2 + floormod(x, 2)",
	"floormod(x + 1, 2) + floormod(x, 2)",
	"floordiv(x + 1, 2) - floormod(x, 2)",
	"floordiv(floormod(x, 2) + 1, 2)",
	"x * 3 - x * 2",
	"(x + y) - (x + z)",
	"floordiv(x * 2 + y, 2)",
	"truncmod(x, -4)",
	"x - (y - z)",
	"min(x - y, x - z)",
	"max(x * 2, 4)",
	"floormod(x + 5, 2)",
	"select(x < y, x, y)",
	"x * 2 < 5",
	"truncdiv(x, 2) < 3",
	"x < y || y < x",
	"!(x < y)",
	"x < 10 || x == 10",
	"x - truncdiv(x, 3) * 3",
}

func TestSimplifyIsIdempotent(t *testing.T) {
	for _, input := range corpus {
		analyzer := NewAnalyzer()
		once := analyzer.Simplify(syntax.MustParse(input))
		twice := analyzer.Simplify(once)
		//
		assert.True(t, ir.Equal(once, twice),
			"simplify(%s) = %s is not a fixed point (gave %s)", input, once, twice)
	}
}

func TestSimplifyPreservesSemantics(t *testing.T) {
	for _, input := range corpus {
		var (
			expr       = syntax.MustParse(input)
			simplified = NewAnalyzer().Simplify(expr)
		)
		//
		for x := int64(-4); x <= 4; x++ {
			for y := int64(-4); y <= 4; y++ {
				for z := int64(-4); z <= 4; z++ {
					env := ir.Environment{"x": x, "y": y, "z": z}
					//
					expected, err := ir.Eval(expr, env)
					if err != nil {
						// the input is undefined here (e.g. division by
						// zero), so nothing is required of the output
						continue
					}
					//
					actual, err := ir.Eval(simplified, env)
					require.NoError(t, err,
						"simplify(%s) = %s undefined under %v", input, simplified, env)
					require.Equal(t, expected, actual,
						"simplify(%s) = %s disagrees under %v", input, simplified, env)
				}
			}
		}
	}
}

func TestSimplifyCanonicalizes(t *testing.T) {
	for _, input := range corpus {
		simplified := NewAnalyzer().Simplify(syntax.MustParse(input))
		//
		ir.Walk(simplified, func(e ir.Expr) {
			switch n := e.(type) {
			case *ir.Add:
				_, aConst := n.A.(*ir.IntLit)
				_, bConst := n.B.(*ir.IntLit)
				//
				assert.False(t, aConst && !bConst,
					"constant on the left of an addition in %s", simplified)
			case *ir.Mul:
				_, aConst := n.A.(*ir.IntLit)
				_, bConst := n.B.(*ir.IntLit)
				//
				assert.False(t, aConst && !bConst,
					"constant on the left of a multiplication in %s", simplified)
			case *ir.Sub:
				_, bConst := n.B.(*ir.IntLit)
				//
				assert.False(t, bConst,
					"literal subtrahend survived in %s", simplified)
			}
		})
	}
}

func TestSimplifyIsDeterministic(t *testing.T) {
	for _, input := range corpus {
		a := NewAnalyzer().Simplify(syntax.MustParse(input))
		b := NewAnalyzer().Simplify(syntax.MustParse(input))
		//
		assert.True(t, ir.Equal(a, b), "simplify(%s) is not deterministic", input)
	}
}

func TestRewriteStepBudget(t *testing.T) {
	s := NewSimplifier(nil)
	s.SetMaximumRewriteSteps(1)
	// a chain which would normally fire several rules
	s.Simplify(syntax.MustParse("((x + 1) + 2) + 3"))
	//
	assert.LessOrEqual(t, s.StatsCounters().RewritesPerformed, int64(1))
}

func TestStatsCounters(t *testing.T) {
	s := NewSimplifier(nil)
	s.Simplify(syntax.MustParse("(x + 5) - 5"))
	//
	stats := s.StatsCounters()
	assert.Positive(t, stats.NodesVisited)
	assert.Positive(t, stats.RewritesAttempted)
	assert.Positive(t, stats.RewritesPerformed)
	//
	s.ResetStatsCounters()
	assert.Equal(t, Stats{}, s.StatsCounters())
}

func TestConstraintStackDiscipline(t *testing.T) {
	s := NewSimplifier(nil)
	//
	restore1 := s.EnterConstraint(syntax.MustParse("x < y"))
	restore2 := s.EnterConstraint(syntax.MustParse("y < z"))
	// out-of-order restore is a programming error
	require.Panics(t, func() { restore1() })
	//
	restore2()
	restore1()
	// the stack is empty again: neither constraint matches
	assert.True(t, ir.Equal(
		s.Simplify(syntax.MustParse("x < y")), syntax.MustParse("x < y")))
}

func TestUpdateSubstitutesVariables(t *testing.T) {
	s := NewSimplifier(nil)
	s.Update(ir.IndexVar("x"), ir.Index(5), false)
	//
	assert.True(t, ir.Equal(s.Simplify(syntax.MustParse("x + 1")), ir.Index(6)))
}

func TestUpdateConflictPanics(t *testing.T) {
	s := NewSimplifier(nil)
	s.Update(ir.IndexVar("x"), ir.Index(5), false)
	// rebinding to an equal value is fine
	s.Update(ir.IndexVar("x"), ir.Index(5), false)
	// rebinding to a different value without override is not
	require.Panics(t, func() {
		s.Update(ir.IndexVar("x"), ir.Index(6), false)
	})
	// unless the override is explicit
	s.Update(ir.IndexVar("x"), ir.Index(6), true)
	assert.True(t, ir.Equal(s.Simplify(syntax.MustParse("x")), ir.Index(6)))
}

func TestExtensionFlagsRoundTrip(t *testing.T) {
	s := NewSimplifier(nil)
	assert.Equal(t, ExtNone, s.GetEnabledExtensions())
	//
	flags := ExtTransitivelyProveInequalities | ExtComparisonOfProductAndSum
	s.SetEnabledExtensions(flags)
	assert.Equal(t, flags, s.GetEnabledExtensions())
}

func TestTransitiveExtensionGatesPropagation(t *testing.T) {
	analyzer := NewAnalyzer()
	s := analyzer.Simplifier()
	//
	exit := analyzer.EnterConstraint(syntax.MustParse("x <= y && y <= z"))
	defer exit()
	// chaining x <= y <= z requires the transitive extension
	assert.True(t, ir.Equal(
		s.Simplify(syntax.MustParse("x <= z")), syntax.MustParse("x <= z")))
	//
	s.SetEnabledExtensions(ExtTransitivelyProveInequalities)
	assert.True(t, ir.Equal(
		s.Simplify(syntax.MustParse("x <= z")), ir.ConstBool(true)))
}
