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

func (s *Simplifier) visitSub(op *ir.Sub) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Sub{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldSub(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, b1, b2, s1, s2 = anyVar(), anyVar(), anyVar(), anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2, c3 = intVar(), intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// Vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, sub(ramp(b1, s1, lanes), ramp(b2, s2, lanes)),
			ramp(sub(b1, b2), sub(s1, s2), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, sub(ramp(b1, s1, lanes), broadcast(x, lanes)),
			ramp(sub(b1, x), s1, lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, sub(broadcast(x, lanes), ramp(b1, s1, lanes)),
			ramp(sub(x, b1), sub(0, s1), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, sub(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(sub(x, y), lanes)); ok {
			return r
		}
	}
	//
	if IsIndexType(op.Type()) {
		// Index rules
		// cancelation rules
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(add(x, y), y), sub(add(y, x), y)), x); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(x, add(y, x)), sub(x, add(x, y))),
			sub(0, y)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(pmin(x, y), y), sub(x, pmax(y, x))),
			pmin(sub(x, y), 0)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(x, pmax(x, y)), sub(pmin(y, x), y)),
			pmin(0, sub(x, y))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(pmax(x, y), y), sub(x, pmin(y, x))),
			pmax(sub(x, y), 0)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(x, pmin(x, y)), sub(pmax(y, x), y)),
			pmax(0, sub(x, y))); ok {
			return r
		}
		// mul co-efficient folding: prefer the co-efficient to stay on the rhs
		if r, ok := s.tryRewrite(ret, sub(x, x), zeroLike(x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(mul(x, y), x), sub(mul(y, x), x)),
			mul(sub(y, 1), x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(sub(x, mul(y, x)), sub(x, mul(x, y))),
			mul(sub(1, y), x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(mul(x, y), mul(x, z)), sub(mul(y, x), mul(x, z)),
			sub(mul(x, y), mul(z, x)), sub(mul(y, x), mul(z, x)),
		), mul(sub(y, z), x)); ok {
			return r
		}
		// constant cancelation
		if r, ok := s.tryRewrite(ret, sub(add(x, c1), c2), add(x, sub(c1, c2))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, sub(sub(c1, x), sub(c2, y)), add(sub(y, x), sub(c1, c2))); ok {
			return r
		}
		// cancelization rule involving 4 operands
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(add(x, y), add(x, z)), sub(add(x, y), add(z, x)),
			sub(add(y, x), add(z, x)), sub(add(y, x), add(x, z)),
		), sub(y, z)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(pmin(add(x, y), z), x), sub(pmin(add(y, x), z), x),
		), pmin(y, sub(z, x))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(pmin(z, add(x, y)), x), sub(pmin(z, add(y, x)), x),
		), pmin(sub(z, x), y)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(pmax(add(x, y), z), x), sub(pmax(add(y, x), z), x),
		), pmax(y, sub(z, x))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(pmax(z, add(x, y)), x), sub(pmax(z, add(y, x)), x),
		), pmax(sub(z, x), y)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(x, pmin(add(x, y), z)), sub(x, pmin(add(y, x), z)),
		), pmax(sub(0, y), sub(x, z))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(x, pmin(z, add(x, y))), sub(x, pmin(z, add(y, x))),
		), pmax(sub(x, z), sub(0, y))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(x, pmax(add(x, y), z)), sub(x, pmax(add(y, x), z)),
		), pmin(sub(0, y), sub(x, z))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			sub(x, pmax(z, add(x, y))), sub(x, pmax(z, add(y, x))),
		), pmin(sub(x, z), sub(0, y))); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, sub(pmin(x, y), pmin(y, x)), zeroLike(x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, sub(pmax(x, y), pmax(y, x)), zeroLike(x)); ok {
			return r
		}
		//
		pairwiseEqual := func() bool {
			return s.canProveEqual(
				ir.NewSub(ir.NewSub(b1.eval(), s1.eval()), ir.NewSub(b2.eval(), s2.eval())),
				ir.Zero(b1.eval().Type()))
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			sub(pmin(b1, b2), pmin(s1, s2)), sub(pmin(b1, b2), pmin(s2, s1)),
		), sub(b1, s1), pairwiseEqual); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			sub(pmax(b1, b2), pmax(s1, s2)), sub(pmax(b1, b2), pmax(s2, s1)),
		), sub(b1, s1), pairwiseEqual); ok {
			return r
		}
		// DivMod rules
		// truncdiv
		// NOTE: c*(x/c) + x % c == x is true for all division modes.
		nonZeroC1 := func() bool { return c1.val() != 0 }
		if r, ok := s.tryRewriteIf(ret, sub(x, mul(truncdiv(x, c1), c1)), truncmod(x, c1),
			nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(truncdiv(x, c1), c1), x), sub(0, truncmod(x, c1)),
			nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, mul(truncdiv(add(x, y), c1), c1)),
			sub(truncmod(add(x, y), c1), y), nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(truncdiv(add(x, y), c1), c1), x),
			sub(y, truncmod(add(x, y), c1)), nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, mul(truncdiv(sub(x, y), c1), c1)),
			add(truncmod(sub(x, y), c1), y), nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(truncdiv(sub(x, y), c1), c1), x),
			sub(sub(0, truncmod(sub(x, y), c1)), y), nonZeroC1); ok {
			return r
		}
		//
		scaled := func() bool {
			return c1.val() != 0 && c3.val() == c1.val()*c2.val()
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(x, c2), mul(truncdiv(x, c1), c3)),
			mul(truncmod(x, c1), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(truncdiv(x, c1), c3), mul(x, c2)),
			mul(sub(0, truncmod(x, c1)), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(x, c2), mul(truncdiv(add(x, y), c1), c3)),
			mul(sub(truncmod(add(x, y), c1), y), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(truncdiv(add(x, y), c1), c3), mul(x, c2)),
			mul(sub(y, truncmod(add(x, y), c1)), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(x, c2), mul(truncdiv(sub(x, y), c1), c3)),
			mul(add(truncmod(sub(x, y), c1), y), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(truncdiv(sub(x, y), c1), c3), mul(x, c2)),
			mul(sub(sub(0, truncmod(sub(x, y), c1)), y), c2), scaled); ok {
			return r
		}
		// Proof in the case of truncdiv needs a positive dividend.
		// let x = a * c3 + r, then (x + c1) / c3 - x / c3 => (r + c1) / c3.
		// NOTE: the use of floormod(c2, c3) is intentional, to simplify the
		// constant.
		if r, ok := s.tryRewriteIf(ret, sub(truncdiv(add(x, c1), c3), truncdiv(add(x, c2), c3)),
			truncdiv(add(truncmod(add(x, floormod(c2, c3)), c3), sub(c1, c2)), c3), func() bool {
				return s.canProveGreaterEqual(x.eval(), -c2.val()) &&
					c1.val() >= c2.val() && c3.val() > 0
			}); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(truncdiv(add(x, c1), c3), truncdiv(x, c3)),
			truncdiv(add(truncmod(x, c3), c1), c3), func() bool {
				return s.canProveGreaterEqual(x.eval(), 0) && c1.val() >= 0 && c3.val() > 0
			}); ok {
			return r
		}
		// floordiv
		if r, ok := s.tryRewriteIf(ret, sub(x, mul(floordiv(x, c1), c1)), floormod(x, c1),
			nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(floordiv(x, c1), c1), x), sub(0, floormod(x, c1)),
			nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, mul(floordiv(add(x, y), c1), c1)),
			sub(floormod(add(x, y), c1), y), nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(floordiv(add(x, y), c1), c1), x),
			sub(y, floormod(add(x, y), c1)), nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, mul(floordiv(sub(x, y), c1), c1)),
			add(floormod(sub(x, y), c1), y), nonZeroC1); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(floordiv(sub(x, y), c1), c1), x),
			sub(sub(0, floormod(sub(x, y), c1)), y), nonZeroC1); ok {
			return r
		}
		//
		if r, ok := s.tryRecursiveRewrite(ret, sub(floordiv(add(x, c1), 2), floordiv(add(x, c2), 2)),
			add(mul(floormod(x, 2), sub(floormod(c1, 2), floormod(c2, 2))),
				sub(floordiv(c1, 2), floordiv(c2, 2)))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, sub(floordiv(x, 2), floordiv(add(x, c2), 2)),
			sub(mul(floormod(x, 2), sub(0, floormod(c2, 2))), floordiv(c2, 2))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, sub(floordiv(add(x, c1), 2), floordiv(x, 2)),
			add(mul(floormod(x, 2), floormod(c1, 2)), floordiv(c1, 2))); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, sub(mul(x, c2), mul(floordiv(x, c1), c3)),
			mul(floormod(x, c1), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(floordiv(x, c1), c3), mul(x, c2)),
			mul(sub(0, floormod(x, c1)), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(x, c2), mul(floordiv(add(x, y), c1), c3)),
			mul(sub(floormod(add(x, y), c1), y), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(floordiv(add(x, y), c1), c3), mul(x, c2)),
			mul(sub(y, floormod(add(x, y), c1)), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(x, c2), mul(floordiv(sub(x, y), c1), c3)),
			mul(add(floormod(sub(x, y), c1), y), c2), scaled); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(mul(floordiv(sub(x, y), c1), c3), mul(x, c2)),
			mul(sub(sub(0, floormod(sub(x, y), c1)), y), c2), scaled); ok {
			return r
		}
		//
		if r, ok := s.tryRecursiveRewrite(ret, sub(floordiv(add(x, 1), 2), floormod(x, 2)),
			floordiv(x, 2)); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, sub(floordiv(add(x, c1), c3), floordiv(add(x, c2), c3)),
			floordiv(add(floormod(add(x, floormod(c2, c3)), c3), sub(c1, c2)), c3),
			func() bool { return c3.val() > 0 }); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(floordiv(add(x, c1), c3), floordiv(x, c3)),
			floordiv(add(floormod(x, c3), c1), c3),
			func() bool { return c3.val() > 0 }); ok {
			return r
		}
		// canonicalization rules
		// will try rewrite again after canonicalization.
		if r, ok := s.tryRewrite(ret, sub(x, c1), add(x, sub(0, c1))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, sub(add(x, c1), y), add(sub(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, sub(x, add(y, c1)), add(sub(x, y), sub(0, c1))); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, sub(x, sub(y, z)), sub(add(x, z), y)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, sub(x, mul(y, c1)), add(x, mul(y, sub(0, c1)))); ok {
			return r
		}
	} else {
		// Cancellation rules.  Deliberately off the integer path, to avoid
		// introducing checks on the side effects for the fast path.
		//
		// These simplifications do not preserve NaN/Inf that may occur in
		// the inputs.  For IEEE floats, `NaN - NaN` is `NaN`, and does not
		// cancel out.
		atMostRead := func(p *exprPVar) func() bool {
			return func() bool { return ir.SideEffect(p.eval()) <= ir.EffectReadState }
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, x), zeroLike(x), atMostRead(x)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(add(x, y), y), x, atMostRead(y)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(add(x, y), x), y, atMostRead(x)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, add(y, x)), sub(0, y), atMostRead(x)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, sub(x, add(x, y)), sub(0, y), atMostRead(x)); ok {
			return r
		}
	}
	// condition rules
	if r, ok := s.tryRewrite(ret, sub(sel(x, b1, b2), sel(x, s1, s2)),
		sel(x, sub(b1, s1), sub(b2, s2))); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, sub(sel(x, y, z), z), sel(x, sub(y, z), zeroLike(z))); ok {
		return r
	}
	if r, ok := s.tryRewrite(ret, sub(sel(x, y, z), y), sel(x, zeroLike(y), sub(z, y))); ok {
		return r
	}
	//
	return ret
}
