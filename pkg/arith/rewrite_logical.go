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
	"github.com/consensys/go-arith/pkg/ir"
	"github.com/consensys/go-arith/pkg/util/math"
)

// visitBranches rewrites the two sides of a conjunction or disjunction.
// Without the branch-constraint extension the right side is simply visited
// under the left side's constraint.  With it, the sides alternate between
// being assumed and being simplified, with up to two visits each; the loop
// stops early once neither side has changed twice in a row.
func (s *Simplifier) visitBranches(a ir.Expr, b ir.Expr,
	assume func(ir.Expr) ir.Expr) (ir.Expr, ir.Expr) {
	//
	if s.enabledExtensions&ExtApplyConstraintsToBooleanBranches == 0 {
		va := s.VisitExpr(a)
		exit := s.oracles.EnterScopedConstraint(assume(va))
		vb := s.VisitExpr(b)
		exit()
		//
		return va, vb
	}
	//
	iterationsSinceUpdate := 0
	//
	for i := 0; i < 4; i++ {
		var toUpdate, constraint ir.Expr
		//
		if i%2 == 0 {
			toUpdate, constraint = a, b
		} else {
			toUpdate, constraint = b, a
		}
		//
		exit := s.oracles.EnterScopedConstraint(assume(constraint))
		updated := s.VisitExpr(toUpdate)
		exit()
		//
		if updated != toUpdate {
			iterationsSinceUpdate = 0
		} else {
			iterationsSinceUpdate++
			//
			if iterationsSinceUpdate >= 2 {
				break
			}
		}
		//
		if i%2 == 0 {
			a = updated
		} else {
			b = updated
		}
	}
	//
	return a, b
}

func (s *Simplifier) visitAnd(op *ir.And) ir.Expr {
	// each branch may assume the other branch holds
	va, vb := s.visitBranches(op.A, op.B, func(c ir.Expr) ir.Expr { return c })
	//
	if va != op.A || vb != op.B {
		op = &ir.And{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldAnd(op.A, op.B); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	//
	if s.enabledExtensions&ExtConvertBooleanToAndOfOrs != 0 &&
		!s.recursivelyVisitingBoolean && s.andOfOrs != nil {
		return s.andOfOrs(op, s.oracles)
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z = anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2, c3 = intVar(), intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes  = anyVar()
		cfalse = pconst(ir.ConstBool(false))
	)
	//
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, and(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(and(x, y), lanes)); ok {
			return r
		}
	}
	//
	if r, ok := s.tryRewrite(ret, and(eq(x, y), ne(x, y)), cfalse); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, and(ne(x, y), eq(x, y)), cfalse); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, and(x, not(x)), cfalse); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, and(le(x, y), lt(y, x)), cfalse); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, and(lt(y, x), le(x, y)), cfalse); ok {
		return r
	}
	//
	if r, ok := s.tryRewriteIf(ret, and(lt(x, c1), lt(c2, x)), cfalse,
		func() bool { return c2.val()+1 >= c1.val() }); ok {
		return r
	}
	if r, ok := s.tryRewriteIf(ret, and(lt(c2, x), lt(x, c1)), cfalse,
		func() bool { return c2.val()+1 >= c1.val() }); ok {
		return r
	}
	//
	emptyRange := func() bool { return c2.val() >= c1.val() }
	if r, ok := s.tryRewriteIf(ret, matchesOneOf(
		and(lt(x, c1), le(c2, x)), and(le(c2, x), lt(x, c1)),
		and(le(x, c1), lt(c2, x)), and(lt(c2, x), le(x, c1)),
	), cfalse, emptyRange); ok {
		return r
	}
	//
	if r, ok := s.tryRewriteIf(ret, matchesOneOf(
		and(le(x, c1), le(c2, x)), and(le(c2, x), le(x, c1)),
	), cfalse, func() bool { return c2.val() > c1.val() }); ok {
		return r
	}
	//
	if r, ok := s.tryRewrite(ret, and(eq(x, c1), eq(x, c2)),
		and(eq(x, c1), eq(c1, c2))); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, matchesOneOf(
		and(eq(x, c1), ne(x, c2)), and(ne(x, c2), eq(x, c1)),
	), and(eq(x, c1), ne(c1, c2))); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
		and(eq(floordiv(x, c2), c1), eq(floormod(x, c2), c3)),
		and(eq(floormod(x, c2), c3), eq(floordiv(x, c2), c1)),
	), eq(x, add(mul(c1, c2), c3))); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewriteIf(ret, matchesOneOf(
		and(le(0, sub(x, mul(y, c1))), lt(sub(x, mul(y, c1)), c1)),
		and(lt(sub(x, mul(y, c1)), c1), le(0, sub(x, mul(y, c1)))),
	), eq(y, floordiv(x, c1)), func() bool { return c1.val() > 0 }); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
		and(lt(c1, sub(x, mul(y, c1))), le(sub(x, mul(y, c1)), 0)),
		and(lt(sub(x, mul(y, c1)), c1), le(0, sub(x, mul(y, c1)))),
	), eq(y, floordiv(x, c1))); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewriteIf(ret, matchesOneOf(
		and(le(0, add(x, mul(y, c2))), lt(add(x, mul(y, c2)), c1)),
		and(lt(add(x, mul(y, c2)), c1), le(0, add(x, mul(y, c2)))),
	), eq(y, floordiv(x, c1)), func() bool { return c2.val() == -c1.val() }); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewriteIf(ret, and(lt(x, c1), lt(floormod(x, c2), c3)),
		and(lt(x, add(sub(c1, c2), c3)), lt(floormod(x, c2), c3)),
		func() bool { return c1.val()%c2.val() == 0 }); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewriteIf(ret, and(lt(x, c1), lt(floormod(x, c2), c3)),
		and(lt(x, add(sub(c1, floormod(c1, c2)), c3)), lt(floormod(x, c2), c3)),
		func() bool {
			return math.FloorMod(c1.val()%c2.val()+c2.val(), c2.val()) > c3.val()
		}); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewriteIf(ret, and(le(x, c1), lt(floormod(x, c2), c3)),
		and(lt(x, add(sub(add(c1, 1), c2), c3)), lt(floormod(x, c2), c3)),
		func() bool { return (c1.val()+1)%c2.val() == 0 }); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewriteIf(ret, and(le(x, c1), lt(floormod(x, c2), c3)),
		and(lt(x, add(sub(add(c1, 1), floormod(c1, c2)), c3)), lt(floormod(x, c2), c3)),
		func() bool {
			return math.FloorMod((c1.val()+1)%c2.val()+c2.val(), c2.val()) > c3.val()
		}); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
		and(eq(floordiv(x, c2), c1), lt(floormod(x, c2), c3)),
		and(lt(floormod(x, c2), c3), eq(floordiv(x, c2), c1)),
	), and(le(mul(c1, c2), x), lt(x, add(mul(c1, c2), c3)))); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
		and(eq(floordiv(x, c2), c1), le(floormod(x, c2), c3)),
		and(le(floormod(x, c2), c3), eq(floordiv(x, c2), c1)),
	), and(le(mul(c1, c2), x), le(x, add(mul(c1, c2), c3)))); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
		and(eq(floordiv(x, c2), c1), le(c3, floormod(x, c2))),
		and(le(c3, floormod(x, c2)), eq(floordiv(x, c2), c1)),
	), and(le(add(mul(c1, c2), c3), x), lt(x, mul(add(c1, 1), c2)))); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
		and(eq(floordiv(x, c2), c1), lt(c3, floormod(x, c2))),
		and(lt(c3, floormod(x, c2)), eq(floordiv(x, c2), c1)),
	), and(lt(add(mul(c1, c2), c3), x), lt(x, mul(add(c1, 1), c2)))); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, and(x, and(y, z)), and(and(x, y), z)); ok {
		return r
	}
	//
	return ret
}

func (s *Simplifier) visitOr(op *ir.Or) ir.Expr {
	// each branch may assume the negation of the other branch
	va, vb := s.visitBranches(op.A, op.B, func(c ir.Expr) ir.Expr {
		return NormalizeBooleanOperators(ir.NewNot(c))
	})
	//
	if va != op.A || vb != op.B {
		op = &ir.Or{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldOr(op.A, op.B); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	//
	if s.enabledExtensions&ExtConvertBooleanToAndOfOrs != 0 &&
		!s.recursivelyVisitingBoolean && s.andOfOrs != nil {
		return s.andOfOrs(op, s.oracles)
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z = anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
		ctrue = pconst(ir.ConstBool(true))
	)
	//
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, or(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(or(x, y), lanes)); ok {
			return r
		}
	}
	//
	if r, ok := s.tryRewrite(ret, or(eq(x, y), ne(x, y)), ctrue); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, or(ne(x, y), eq(x, y)), ctrue); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, or(x, not(x)), ctrue); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, or(le(x, y), lt(y, x)), ctrue); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, or(lt(y, x), le(x, y)), ctrue); ok {
		return r
	}
	//
	if r, ok := s.tryRewrite(ret, or(lt(x, y), lt(y, x)), ne(x, y)); ok {
		return r
	}
	//
	if r, ok := s.tryRewriteIf(ret, or(lt(x, c1), lt(c2, x)), ctrue,
		func() bool { return c2.val() < c1.val() }); ok {
		return r
	}
	if r, ok := s.tryRewriteIf(ret, or(lt(c2, x), lt(x, c1)), ctrue,
		func() bool { return c2.val() < c1.val() }); ok {
		return r
	}
	//
	fullRange := func() bool { return c2.val() <= c1.val() }
	if r, ok := s.tryRewriteIf(ret, or(le(x, c1), lt(c2, x)), ctrue, fullRange); ok {
		return r
	}
	if r, ok := s.tryRewriteIf(ret, or(lt(c2, x), le(x, c1)), ctrue, fullRange); ok {
		return r
	}
	if r, ok := s.tryRewriteIf(ret, or(lt(x, c1), le(c2, x)), ctrue, fullRange); ok {
		return r
	}
	if r, ok := s.tryRewriteIf(ret, or(le(c2, x), lt(x, c1)), ctrue, fullRange); ok {
		return r
	}
	//
	adjacent := func() bool { return c2.val() <= c1.val()+1 }
	if r, ok := s.tryRewriteIf(ret, or(le(x, c1), le(c2, x)), ctrue, adjacent); ok {
		return r
	}
	if r, ok := s.tryRewriteIf(ret, or(le(c2, x), le(x, c1)), ctrue, adjacent); ok {
		return r
	}
	//
	if r, ok := s.tryRewrite(ret, or(ne(x, c1), ne(x, c2)), or(ne(x, c1), ne(c1, c2))); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, or(ne(x, c1), eq(x, c2)), or(ne(x, c1), eq(c1, c2))); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, or(eq(x, c2), ne(x, c1)), or(ne(x, c1), eq(c1, c2))); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, or(lt(x, y), eq(x, y)), le(x, y)); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, or(lt(x, y), eq(y, x)), le(x, y)); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, or(eq(x, y), lt(x, y)), le(x, y)); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, or(eq(y, x), lt(x, y)), le(x, y)); ok {
		return r
	}
	//
	if r, ok := s.tryRecursiveRewrite(ret, or(x, or(y, z)), or(or(x, y), z)); ok {
		return r
	}
	//
	return ret
}
