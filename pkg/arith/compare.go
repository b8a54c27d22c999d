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

// TryCompare determines the ordering between two expressions, layering
// constant bounds, recorded inequalities and the product-vs-sum heuristic.
// Each layer narrows the result; the search stops as soon as a single
// ordering is pinned down.
func (s *Simplifier) TryCompare(x ir.Expr, y ir.Expr) CompareResult {
	output := CmpUnknown
	//
	output = output.Intersect(s.tryCompareUsingConstIntBounds(x, y))
	if output.Decided() {
		return output
	}
	//
	output = output.Intersect(s.tryCompareUsingKnownInequalities(x, y))
	if output.Decided() {
		return output
	}
	//
	return output.Intersect(s.tryComparisonOfProductAndSum(x, y))
}

func (s *Simplifier) tryCompareUsingConstIntBounds(x ir.Expr, y ir.Expr) CompareResult {
	return s.tryCompareConst(ir.NewSub(x, y), 0)
}

func (s *Simplifier) tryCompareUsingKnownInequalities(x ir.Expr, y ir.Expr) CompareResult {
	propagate := s.enabledExtensions&ExtTransitivelyProveInequalities != 0
	return s.oracles.Compare(x, y, propagate)
}

// tryCompareConst compares an expression against a constant.  This is the
// hot path, called from the comparison visitors, so it stays lightweight:
// only the constant bound and modular set are consulted.
func (s *Simplifier) tryCompareConst(x ir.Expr, val int64) CompareResult {
	diff := s.VisitExpr(x)
	//
	if c, ok := ir.IsConstInt(diff); ok {
		switch {
		case c == val:
			return CmpEQ
		case c > val:
			return CmpGT
		default:
			return CmpLT
		}
	}
	//
	dbound := s.oracles.ConstIntBound(diff)
	//
	if dbound.MinValue == val && dbound.MaxValue == val {
		return CmpEQ
	} else if dbound.MinValue > val {
		return CmpGT
	} else if dbound.MaxValue < val {
		return CmpLT
	} else if dbound.MinValue >= val {
		return CmpGE
	} else if dbound.MaxValue <= val {
		return CmpLE
	}
	// modular analysis
	if val == 0 {
		dmod := s.oracles.ModularSet(diff)
		//
		if dmod.Base != 0 {
			return CmpNE
		}
	}
	//
	return CmpUnknown
}

// tryComparisonOfProductAndSum recognizes differences of the shape
// (A+B)*C - (A*B)*D and bounds them through the reciprocal inequality
// 1/(A*D) + 1/(B*D) vs 1/C, which is decidable when all four factors have
// known signs and suitable magnitudes.
func (s *Simplifier) tryComparisonOfProductAndSum(x ir.Expr, y ir.Expr) CompareResult {
	if s.enabledExtensions&ExtComparisonOfProductAndSum == 0 {
		return CmpUnknown
	}
	//
	var (
		pA, pB, pC, pD = anyVar(), anyVar(), anyVar(), anyVar()
		a, b, c, d     ir.Expr
		// diff is (A+B)*C - (A*B)*D
		diff = s.VisitExpr(ir.NewSub(x, y))
	)
	//
	if s.matches(matchesOneOf(
		add(mul(add(pA, pB), pC), mul(mul(pA, pB), pD)),
		add(mul(add(pA, pB), pC), mul(mul(pB, pA), pD)),
		add(mul(mul(pA, pB), pD), mul(add(pA, pB), pC)),
		add(mul(mul(pB, pA), pD), mul(add(pA, pB), pC)),
	), diff) {
		a, b, c = pA.eval(), pB.eval(), pC.eval()
		// the difference was matched as a sum, so D appears negated
		d = ir.NewSub(ir.Zero(pD.eval().Type()), pD.eval())
	} else if s.matches(matchesOneOf(
		add(mul(add(pA, pB), pC), mul(pA, pB)),
		add(mul(add(pA, pB), pC), mul(pB, pA)),
		add(mul(pA, pB), mul(add(pA, pB), pC)),
		add(mul(pB, pA), mul(add(pA, pB), pC)),
	), diff) {
		a, b, c = pA.eval(), pB.eval(), pC.eval()
		d = ir.Const64(a.Type().Elem(), -1)
	} else {
		return CmpUnknown
	}
	//
	var (
		aBound = s.oracles.ConstIntBound(a)
		bBound = s.oracles.ConstIntBound(b)
		cBound = s.oracles.ConstIntBound(c)
		dBound = s.oracles.ConstIntBound(d)
	)
	//
	negate := func(bound ConstIntBound) ConstIntBound {
		return ConstIntBound{-bound.MaxValue, -bound.MinValue}
	}
	isNegative := func(bound ConstIntBound) bool { return bound.MaxValue < 0 }
	isPositive := func(bound ConstIntBound) bool { return bound.MinValue > 0 }
	// If D is negative then we are providing an upper bound for (A*B)*D
	// rather than a lower bound.  Flip all the signs here, find a lower
	// bound, then flip back at the end.
	//
	// Before: (A+B)*C < (A*B)*D
	// After:  (A*B)*(-D) < (A+B)*(-C)
	isUpperBound := isNegative(dBound)
	if isUpperBound {
		cBound = negate(cBound)
		dBound = negate(dBound)
	}
	// Before: (A+B)*C < (A*B)*D
	// After:  ((-A) + (-B))*(-C) < ((-A)*(-B))*D
	if isNegative(cBound) {
		aBound = negate(aBound)
		bBound = negate(bBound)
		cBound = negate(cBound)
	}
	//
	if !isPositive(aBound) || !isPositive(bBound) || !isPositive(cBound) || !isPositive(dBound) {
		return CmpUnknown
	}
	// (A+B)*C < (A*B)*D
	// (A+B)*C / (A*B*C*D) < (A*B)*D / (A*B*C*D)
	// 1/(A*D) + 1/(B*D) < 1/C
	//
	// All four factors are strictly positive, so the comparison reduces to
	// the sign of the reciprocal term 1/(A*D) + 1/(B*D) - 1/C.
	reciprocalTermIsPositive := func() bool {
		if dBound.MaxValue == PosInf {
			// If D can grow without bound, the 1/(A*D) and 1/(B*D) terms
			// approach zero and the -1/C term determines the sign.
			return false
		}
		// 1/(A*D) + 1/(B*D) - 1/C is positive if 1/C < 1/(A*D) + 1/(B*D).
		// Since each term is positive, this holds if either A*D <= C or
		// B*D <= C.
		if math.MulSat(min(aBound.MaxValue, bBound.MaxValue), dBound.MaxValue) <= cBound.MinValue {
			return true
		}
		// Even if neither term is sufficient on its own, when both A and B
		// are bounded above the inequality may still be provable at the
		// extremes: maximal A, B, D and minimal C.
		//
		// 1/C_min < 1/(A_max*D_max) + 1/(B_max*D_max)
		// A_max*B_max*D_max < C_min*(A_max + B_max)
		if aBound.MaxValue != PosInf && bBound.MaxValue != PosInf {
			lhs := math.MulSat(math.MulSat(aBound.MaxValue, bBound.MaxValue), dBound.MaxValue)
			rhs := math.MulSat(cBound.MinValue, math.AddSat(aBound.MaxValue, bBound.MaxValue))
			//
			if lhs < rhs {
				return true
			}
		}
		//
		return false
	}()
	//
	if !reciprocalTermIsPositive {
		return CmpUnknown
	}
	//
	if isUpperBound {
		// the signs of the original expression were flipped, so flip the
		// resulting ordering
		return CmpLT
	}
	//
	return CmpGT
}
