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
)

func (s *Simplifier) visitEQ(op *ir.EQ) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.EQ{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldCompare(op.A, op.B,
		func(x, y int64) bool { return x == y },
		func(x, y float64) bool { return x == y }); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	//
	return s.applyEQRules(op)
}

func (s *Simplifier) applyEQRules(op *ir.EQ) ir.Expr {
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y = anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
		ctrue = pconst(ir.ConstBool(true))
	)
	// vector rule
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, eq(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(eq(x, y), lanes)); ok {
			return r
		}
	}
	//
	if IsIndexType(op.A.Type()) {
		switch s.TryCompare(op.A, op.B) {
		case CmpEQ:
			return ir.ConstBool(true)
		case CmpNE, CmpGT, CmpLT:
			return ir.ConstBool(false)
		}
		//
		if r, ok := s.tryRewrite(ret, eq(c1, x), eq(x, c1)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, eq(sub(x, c1), c2), eq(x, add(c2, c1))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, eq(sub(c1, x), c2), eq(x, sub(c1, c2))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, eq(add(x, c1), c2), eq(x, sub(c2, c1))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, eq(mul(x, y), 0), or(eq(x, 0), eq(y, 0))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, eq(x, x), ctrue); ok {
			return r
		}
	} else {
		// Mimics the cancellation rules for subtraction, which skip the
		// side-effect check on the index path.
		//
		// This simplification does not preserve NaN, since NaN != NaN.
		if r, ok := s.tryRewriteIf(ret, eq(x, x), ctrue, func() bool {
			return ir.SideEffect(x.eval()) <= ir.EffectReadState
		}); ok {
			return r
		}
	}
	//
	return ret
}

func (s *Simplifier) visitNE(op *ir.NE) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.NE{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldCompare(op.A, op.B,
		func(x, y int64) bool { return x != y },
		func(x, y float64) bool { return x != y }); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	//
	if IsIndexType(op.A.Type()) {
		switch s.TryCompare(op.A, op.B) {
		case CmpNE, CmpGT, CmpLT:
			return ir.ConstBool(true)
		case CmpEQ:
			return ir.ConstBool(false)
		case CmpGE:
			// Known: a >= b
			//
			// a != b
			// (a < b) or (b < a)
			// False or (b < a)
			// b < a
			return s.applyLTRules(&ir.LT{A: op.B, B: op.A})
		case CmpLE:
			// Known: a <= b
			//
			// a != b
			// (a < b) or (b < a)
			// (a < b) or False
			// a < b
			return s.applyLTRules(&ir.LT{A: op.A, B: op.B})
		}
	}
	//
	return s.applyNotRules(&ir.Not{A: s.applyEQRules(&ir.EQ{A: op.A, B: op.B})})
}

func (s *Simplifier) visitLE(op *ir.LE) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.LE{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldCompare(op.A, op.B,
		func(x, y int64) bool { return x <= y },
		func(x, y float64) bool { return x <= y }); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	// Check for applicable rewrites before attempting to prove or disprove
	// the inequality, so that (A <= B*x) still simplifies to
	// (ceildiv(A,B) <= x) when A % B != 0.  Proving first would yield the
	// equivalent (floordiv(A,B) < x) instead.
	ret := s.applyNotRules(&ir.Not{A: s.applyLTRules(&ir.LT{A: op.B, B: op.A})})
	//
	if le, ok := ret.(*ir.LE); ok && IsIndexType(le.A.Type()) {
		switch s.TryCompare(le.A, le.B) {
		case CmpLE, CmpLT, CmpEQ:
			return ir.ConstBool(true)
		case CmpGT:
			return ir.ConstBool(false)
		case CmpNE:
			// Known: a != b
			//
			// a <= b
			// (a < b) or (a == b)
			// (a < b) or False
			// a < b
			return s.applyLTRules(&ir.LT{A: le.A, B: le.B})
		case CmpGE:
			// Known: a >= b
			//
			// a <= b
			// (a < b) or (a == b)
			// False or (a == b)
			// a == b
			return s.applyEQRules(&ir.EQ{A: le.A, B: le.B})
		}
	}
	//
	return ret
}

func (s *Simplifier) visitLT(op *ir.LT) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.LT{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldCompare(op.A, op.B,
		func(x, y int64) bool { return x < y },
		func(x, y float64) bool { return x < y }); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	//
	return s.applyLTRules(op)
}

func (s *Simplifier) applyLTRules(op *ir.LT) ir.Expr {
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, s1 = anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, lt(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(lt(x, y), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(ramp(x, s1, lanes), ramp(y, s1, lanes)),
			broadcast(lt(x, y), lanes)); ok {
			return r
		}
	}
	//
	if IsIndexType(op.A.Type()) {
		switch s.TryCompare(op.A, op.B) {
		case CmpLT:
			return ir.ConstBool(true)
		case CmpEQ, CmpGT, CmpGE:
			return ir.ConstBool(false)
		}
		//
		if r, ok := s.tryRewrite(ret, lt(add(x, y), add(x, z)), lt(y, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(add(x, y), add(z, x)), lt(y, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(add(y, x), add(x, z)), lt(y, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(add(y, x), add(z, x)), lt(y, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(sub(y, x), sub(z, x)), lt(y, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(sub(x, y), sub(x, z)), lt(z, y)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, lt(x, add(x, z)), lt(0, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(x, add(z, x)), lt(0, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, lt(x, sub(x, z)), lt(z, 0)); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, lt(mul(x, c1), mul(y, c1)), lt(x, y),
			func() bool { return c1.val() > 0 }); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(x, c1), mul(y, c1)), lt(y, x),
			func() bool { return c1.val() < 0 }); ok {
			return r
		}
		// constant cancelation: only need to make use of one mod.
		// NOTE: truncated division is required by the negative rules; the
		// positive rules hold for any division mode.
		if r, ok := s.tryRewriteIf(ret, lt(mul(x, c2), c1),
			lt(x, add(truncdiv(sub(c1, 1), c2), 1)),
			func() bool { return c1.val() > 0 && c2.val() > 0 }); ok {
			return r
		}
		// NOTE: trunc div required
		if r, ok := s.tryRewriteIf(ret, lt(mul(x, c2), c1), lt(x, truncdiv(c1, c2)),
			func() bool { return c1.val() <= 0 && c2.val() > 0 }); ok {
			return r
		}
		// NOTE: trunc div required (euclidean is ok too, floored is not)
		if r, ok := s.tryRewriteIf(ret, lt(mul(x, c2), c1),
			lt(sub(truncdiv(sub(c1, 1), c2), 1), x),
			func() bool { return c1.val() > 0 && c2.val() < 0 }); ok {
			return r
		}
		// NOTE: trunc div required (floored is ok too, euclidean is not)
		if r, ok := s.tryRewriteIf(ret, lt(mul(x, c2), c1), lt(truncdiv(c1, c2), x),
			func() bool { return c1.val() <= 0 && c2.val() < 0 }); ok {
			return r
		}
		// NOTE: trunc div required
		if r, ok := s.tryRewriteIf(ret, lt(c1, mul(x, c2)),
			lt(sub(truncdiv(add(c1, 1), c2), 1), x),
			func() bool { return c1.val() < 0 && c2.val() > 0 }); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(c1, mul(x, c2)), lt(truncdiv(c1, c2), x),
			func() bool { return c1.val() >= 0 && c2.val() > 0 }); ok {
			return r
		}
		// NOTE: trunc div required (floored is ok too, euclidean is not)
		if r, ok := s.tryRewriteIf(ret, lt(c1, mul(x, c2)),
			lt(x, add(truncdiv(add(c1, 1), c2), 1)),
			func() bool { return c1.val() < 0 && c2.val() < 0 }); ok {
			return r
		}
		// NOTE: trunc div required (euclidean is ok too, floored is not)
		if r, ok := s.tryRewriteIf(ret, lt(c1, mul(x, c2)), lt(x, truncdiv(c1, c2)),
			func() bool { return c1.val() >= 0 && c2.val() < 0 }); ok {
			return r
		}
		// DivMod rules
		// truncdiv
		if r, ok := s.tryRewriteIf(ret, lt(truncdiv(x, c1), c2), lt(x, mul(c1, c2)),
			func() bool { return c1.val() > 0 && c2.val() > 0 }); ok {
			return r
		}
		// NOTE: trunc div required
		if r, ok := s.tryRewriteIf(ret, lt(truncdiv(x, c1), c2),
			lt(x, add(mul(c1, sub(c2, 1)), 1)),
			func() bool { return c1.val() > 0 && c2.val() <= 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, lt(c1, truncdiv(x, c2)),
			lt(sub(mul(add(c1, 1), c2), 1), x),
			func() bool { return c1.val() >= 0 && c2.val() > 0 }); ok {
			return r
		}
		// NOTE: trunc div required
		if r, ok := s.tryRewriteIf(ret, lt(c1, truncdiv(x, c2)), lt(mul(c1, c2), x),
			func() bool { return c1.val() < 0 && c2.val() > 0 }); ok {
			return r
		}
		// invariance for any div mod: x - (x / c1) * c1 == x % c1
		positiveC1 := func() bool { return c1.val() > 0 }
		if r, ok := s.tryRewriteIf(ret, lt(mul(truncdiv(x, c1), c1), x),
			lt(0, truncmod(x, c1)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(truncdiv(x, c1), c1), add(x, y)),
			lt(0, add(truncmod(x, c1), y)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(truncdiv(x, c1), c1), sub(x, y)),
			lt(y, truncmod(x, c1)), positiveC1); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, lt(mul(truncdiv(add(x, c2), c1), c1), x),
			lt(c2, truncmod(add(x, c2), c1)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(truncdiv(add(x, c2), c1), c1), add(x, y)),
			lt(c2, add(truncmod(add(x, c2), c1), y)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(truncdiv(add(x, c2), c1), c1), sub(x, y)),
			lt(y, add(truncmod(add(x, c2), c1), sub(0, c2))), positiveC1); ok {
			return r
		}
		// floordiv
		if r, ok := s.tryRewriteIf(ret, lt(floordiv(x, c1), c2), lt(x, mul(c1, c2)),
			positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(c1, floordiv(x, c2)),
			lt(sub(mul(add(c1, 1), c2), 1), x),
			func() bool { return c2.val() > 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, lt(mul(floordiv(x, c1), c1), x),
			lt(0, floormod(x, c1)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(floordiv(x, c1), c1), add(x, y)),
			lt(0, add(floormod(x, c1), y)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(floordiv(x, c1), c1), sub(x, y)),
			lt(y, floormod(x, c1)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(floordiv(add(x, c2), c1), c1), x),
			lt(c2, floormod(add(x, c2), c1)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(floordiv(add(x, c2), c1), c1), add(x, y)),
			lt(c2, add(floormod(add(x, c2), c1), y)), positiveC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, lt(mul(floordiv(add(x, c2), c1), c1), sub(x, y)),
			lt(y, add(floormod(add(x, c2), c1), sub(0, c2))), positiveC1); ok {
			return r
		}
		// canonicalization rules
		if r, ok := s.tryRecursiveRewrite(ret, lt(pmin(x, y), z), or(lt(x, z), lt(y, z))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(pmax(x, y), z), and(lt(x, z), lt(y, z))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(z, pmin(x, y)), and(lt(z, x), lt(z, y))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(z, pmax(x, y)), or(lt(z, x), lt(z, y))); ok {
			return r
		}
		//
		if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
			lt(c1, add(x, c2)), lt(sub(c1, x), c2),
		), lt(sub(c1, c2), x)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
			lt(c1, sub(c2, x)), lt(add(x, c1), c2),
		), lt(x, sub(c2, c1))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(c1, sub(x, c2)), lt(add(c1, c2), x)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(sub(x, c2), c1), lt(x, add(c1, c2))); ok {
			return r
		}
		//
		if r, ok := s.tryRecursiveRewrite(ret, lt(x, sub(c1, y)), lt(add(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(sub(c1, y), x), lt(c1, add(x, y))); ok {
			return r
		}
		//
		if r, ok := s.tryRecursiveRewrite(ret, lt(x, add(c1, y)), lt(sub(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, lt(add(c1, y), x), lt(c1, sub(x, y))); ok {
			return r
		}
		// merge constant offsets from the two sides
		node := ret.(*ir.LT)
		if merged, ok := mergeConstants(node.A, node.B); ok {
			return s.recursiveRewrite(merged)
		}
		// divide out a common modular factor
		commonFactor := func() int64 {
			modularA := s.oracles.ModularSet(node.A)
			modularB := s.oracles.ModularSet(node.B)
			gcdLHS := ZeroAwareGCD(modularA.Base, modularA.Coeff)
			gcdRHS := ZeroAwareGCD(modularB.Base, modularB.Coeff)
			//
			return ZeroAwareGCD(gcdLHS, gcdRHS)
		}()
		if commonFactor > 1 {
			factor := ir.Const64(node.A.Type(), commonFactor)
			//
			return s.recursiveRewrite(ir.NewLT(
				ir.NewFloorDiv(node.A, factor), ir.NewFloorDiv(node.B, factor)))
		}
	}
	//
	return ret
}

// mergeConstants folds the constant offsets of the two sides of a
// comparison into a single constant, e.g. x+3 < y+5 becomes x < y+2.
func mergeConstants(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	lhs, lhsOffset := ExtractConstantOffset(a)
	rhs, rhsOffset := ExtractConstantOffset(b)
	//
	if lhsOffset == 0 && rhsOffset == 0 {
		return nil, false
	}
	// NOTE: the c-x shapes reported by ExtractConstantOffset never reach
	// this point, since the canonicalization rules above have already moved
	// their negated bases across the comparison.
	diff := rhsOffset - lhsOffset
	//
	switch {
	case diff == 0:
		return ir.NewLT(lhs, rhs), true
	case diff == 1:
		return ir.NewLE(lhs, rhs), true
	case diff < 0 && rhsOffset != 0:
		return ir.NewLT(ir.NewAdd(lhs, ir.Const64(lhs.Type(), -diff)), rhs), true
	case diff > 0 && lhsOffset != 0:
		return ir.NewLT(lhs, ir.NewAdd(rhs, ir.Const64(rhs.Type(), diff))), true
	}
	//
	return nil, false
}

func (s *Simplifier) visitNot(op *ir.Not) ir.Expr {
	va := s.VisitExpr(op.A)
	//
	if va != op.A {
		op = &ir.Not{A: va}
	}
	//
	if c, ok := tryConstFoldNot(op.A); ok {
		return c
	}
	//
	if m, ok := s.TryMatchLiteralConstraint(op); ok {
		return m
	}
	//
	return s.applyNotRules(op)
}

func (s *Simplifier) applyNotRules(op *ir.Not) ir.Expr {
	if c, ok := tryConstFoldNot(op.A); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y = anyVar(), anyVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	//
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, not(broadcast(x, lanes)), broadcast(not(x), lanes)); ok {
			return r
		}
	}
	//
	if r, ok := s.tryRewrite(ret, not(not(x)), x); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, not(le(x, y)), lt(y, x)); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, not(ge(x, y)), lt(x, y)); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, not(lt(x, y)), le(y, x)); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, not(gt(x, y)), le(x, y)); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, not(eq(x, y)), ne(x, y)); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, not(ne(x, y)), eq(x, y)); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, not(or(x, y)), and(not(x), not(y))); ok {
		return r
	}
	if r, ok := s.tryRecursiveRewrite(ret, not(and(x, y)), or(not(x), not(y))); ok {
		return r
	}
	//
	return ret
}
