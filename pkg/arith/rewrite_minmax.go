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

func (s *Simplifier) visitMin(op *ir.Min) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Min{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldMin(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, s1, s2 = anyVar(), anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, pmin(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(pmin(x, y), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmin(pmin(x, broadcast(y, lanes)), broadcast(z, lanes)),
			pmin(x, broadcast(pmin(y, z), lanes))); ok {
			return r
		}
	}
	//
	if IsIndexType(op.Type()) {
		if r, ok := s.tryRewrite(ret, pmin(x, x), x); ok {
			return r
		}
		// constant int bound
		aBound := s.oracles.ConstIntBound(op.A)
		bBound := s.oracles.ConstIntBound(op.B)
		//
		if aBound.MaxValue <= bBound.MinValue {
			return op.A
		}
		//
		if bBound.MaxValue <= aBound.MinValue {
			return op.B
		}
		// constant comparison
		if s.matches(pmin(add(x, c1), add(x, c2)), ret) {
			if c1.val() < c2.val() {
				return add(x, c1).eval()
			}
			//
			return add(x, c2).eval()
		}
		//
		if s.matches(pmin(add(x, c1), x), ret) || s.matches(pmin(x, add(x, c1)), ret) {
			if c1.val() < 0 {
				return add(x, c1).eval()
			}
			//
			return x.eval()
		}
		//
		if s.matches(pmin(sub(c1, x), sub(c2, x)), ret) {
			if c1.val() < c2.val() {
				return sub(c1, x).eval()
			}
			//
			return sub(c2, x).eval()
		}
		// DivMod rules
		// NOTE: truncdiv(x, y) >= floordiv(x, y)
		roundTrip := func() bool {
			return c2.val() > 0 && c1.val()+1 == c2.val()
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			pmin(mul(truncdiv(add(x, c1), c2), c2), x), pmin(x, mul(truncdiv(add(x, c1), c2), c2)),
			pmin(mul(floordiv(add(x, c1), c2), c2), x), pmin(x, mul(floordiv(add(x, c1), c2), c2)),
		), x, roundTrip); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			pmin(mul(truncdiv(add(x, c1), c2), c2), pmax(x, c2)),
			pmin(pmax(x, c2), mul(truncdiv(add(x, c1), c2), c2)),
			pmin(mul(floordiv(add(x, c1), c2), c2), pmax(x, c2)),
			pmin(pmax(x, c2), mul(floordiv(add(x, c1), c2), c2)),
		), pmax(x, c2), func() bool {
			return roundTrip() && s.canProveGreaterEqual(x.eval(), 1)
		}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			pmin(x, mul(floordiv(x, c2), c2)), pmin(mul(floordiv(x, c2), c2), x),
		), mul(floordiv(x, c2), c2), func() bool { return c2.val() > 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmin(pmax(x, y), pmin(x, y)), pmin(pmax(x, y), pmin(y, x)),
			pmin(pmin(x, y), pmax(x, y)), pmin(pmin(x, y), pmax(y, x)),
			pmin(pmin(x, y), x), pmin(pmin(x, y), y),
			pmin(x, pmin(x, y)), pmin(y, pmin(x, y)),
		), pmin(x, y)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmin(pmax(x, y), x), pmin(pmax(y, x), x),
			pmin(x, pmax(x, y)), pmin(x, pmax(y, x)),
		), x); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, pmin(pmin(pmin(x, y), z), y),
			pmin(pmin(x, y), z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmin(pmin(pmin(pmin(x, y), z), s1), y),
			pmin(pmin(pmin(x, y), z), s1)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmin(pmin(pmin(pmin(pmin(x, y), z), s1), s2), y),
			pmin(pmin(pmin(pmin(x, y), z), s1), s2)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmin(pmax(x, y), pmax(x, z)), pmin(pmax(x, y), pmax(z, x)),
			pmin(pmax(y, x), pmax(x, z)), pmin(pmax(y, x), pmax(z, x)),
		), pmax(pmin(y, z), x)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmin(pmin(x, y), pmin(x, z)), pmin(pmin(x, y), pmin(z, x)),
			pmin(pmin(y, x), pmin(x, z)), pmin(pmin(y, x), pmin(z, x)),
		), pmin(pmin(y, z), x)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmin(add(y, x), add(z, x)), pmin(add(y, x), add(x, z)),
			pmin(add(x, y), add(x, z)), pmin(add(x, y), add(z, x)),
		), add(pmin(y, z), x)); ok {
			return r
		}
		// sub distribution
		if r, ok := s.tryRewrite(ret, pmin(sub(y, x), sub(z, x)), sub(pmin(y, z), x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmin(sub(x, y), sub(x, z)), sub(x, pmax(y, z))); ok {
			return r
		}
		// constant folding rule
		if r, ok := s.tryRewrite(ret, pmin(pmin(x, c1), c2), pmin(x, pmin(c1, c2))); ok {
			return r
		}
		// scaling rules
		if s.matches(pmin(truncdiv(x, c1), truncdiv(y, c1)), ret) {
			if c1.val() > 0 {
				return truncdiv(pmin(x, y), c1).eval()
			}
			//
			return truncdiv(pmax(x, y), c1).eval()
		}
		//
		if s.matches(pmin(floordiv(x, c1), floordiv(y, c1)), ret) {
			if c1.val() > 0 {
				return floordiv(pmin(x, y), c1).eval()
			}
			//
			return floordiv(pmax(x, y), c1).eval()
		}
		//
		if s.matches(pmin(mul(x, c1), mul(y, c1)), ret) {
			if c1.val() > 0 {
				return mul(pmin(x, y), c1).eval()
			}
			//
			return mul(pmax(x, y), c1).eval()
		}
		//
		if s.matches(pmin(mul(x, c1), c2), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c1val == 0 {
				if c2val < 0 {
					return c2.eval()
				}
				//
				return c1.eval()
			}
			//
			if c2val%c1val == 0 {
				if c1val > 0 {
					return mul(pmin(x, c2val/c1val), c1).eval()
				}
				//
				return mul(pmax(x, c2val/c1val), c1).eval()
			}
		}
		// vscale expression comparison
		if ir.ContainsVscaleCall(op.A) || ir.ContainsVscaleCall(op.B) {
			if s.canProve(ir.NewLE(op.A, op.B)) {
				return op.A
			}
			//
			if s.canProve(ir.NewLE(op.B, op.A)) {
				return op.B
			}
		}
		// canonicalization
		if r, ok := s.tryRecursiveRewrite(ret, pmin(pmin(x, c1), y), pmin(pmin(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewriteIf(ret, pmin(sub(c1, x), c2),
			sub(c1, pmax(x, sub(c1, c2))),
			func() bool { return c2.val() != 0 }); ok {
			return r
		}
	}
	// condition rules
	if r, ok := s.tryRewrite(ret, pmin(sel(x, y, z), sel(x, s1, s2)),
		sel(x, pmin(y, s1), pmin(z, s2))); ok {
		return r
	}
	//
	return ret
}

func (s *Simplifier) visitMax(op *ir.Max) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Max{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldMax(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, s1, s2 = anyVar(), anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, pmax(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(pmax(x, y), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmax(pmax(x, broadcast(y, lanes)), broadcast(z, lanes)),
			pmax(x, broadcast(pmax(y, z), lanes))); ok {
			return r
		}
	}
	//
	if IsIndexType(op.Type()) {
		if r, ok := s.tryRewrite(ret, pmax(x, x), x); ok {
			return r
		}
		// constant int bound
		aBound := s.oracles.ConstIntBound(op.A)
		bBound := s.oracles.ConstIntBound(op.B)
		//
		if aBound.MinValue >= bBound.MaxValue {
			return op.A
		}
		//
		if bBound.MinValue >= aBound.MaxValue {
			return op.B
		}
		// constant comparison
		if s.matches(pmax(add(x, c1), add(x, c2)), ret) {
			if c1.val() > c2.val() {
				return add(x, c1).eval()
			}
			//
			return add(x, c2).eval()
		}
		//
		if s.matches(pmax(add(x, c1), x), ret) || s.matches(pmax(x, add(x, c1)), ret) {
			if c1.val() > 0 {
				return add(x, c1).eval()
			}
			//
			return x.eval()
		}
		//
		if s.matches(pmax(sub(c1, x), sub(c2, x)), ret) {
			if c1.val() > c2.val() {
				return sub(c1, x).eval()
			}
			//
			return sub(c2, x).eval()
		}
		// DivMod rules
		// Divide-up rounding: truncdiv
		// NOTE: truncdiv(x, y) >= floordiv(x, y)
		roundTrip := func() bool {
			return c2.val() > 0 && c1.val()+1 == c2.val()
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			pmax(mul(truncdiv(add(x, c1), c2), c2), x), pmax(x, mul(truncdiv(add(x, c1), c2), c2)),
		), mul(truncdiv(add(x, c1), c2), c2), roundTrip); ok {
			return r
		}
		// Divide-up rounding: floordiv
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			pmax(mul(floordiv(add(x, c1), c2), c2), x), pmax(x, mul(floordiv(add(x, c1), c2), c2)),
		), mul(floordiv(add(x, c1), c2), c2), roundTrip); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			pmax(mul(floordiv(x, c2), c2), x), pmax(x, mul(floordiv(x, c2), c2)),
		), x, func() bool { return c2.val() > 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmax(pmin(x, y), x), pmax(pmin(y, x), x),
			pmax(x, pmin(x, y)), pmax(x, pmin(y, x)),
		), x); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmax(pmin(x, y), pmax(x, y)), pmax(pmin(x, y), pmax(y, x)),
			pmax(pmax(x, y), pmin(x, y)), pmax(pmax(x, y), pmin(y, x)),
			pmax(pmax(x, y), x), pmax(pmax(x, y), y),
			pmax(x, pmax(x, y)), pmax(y, pmax(x, y)),
		), pmax(x, y)); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, pmax(pmax(pmax(x, y), z), y),
			pmax(pmax(x, y), z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmax(pmax(pmax(pmax(x, y), z), s1), y),
			pmax(pmax(pmax(x, y), z), s1)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmax(pmax(pmax(pmax(pmax(x, y), z), s1), s2), y),
			pmax(pmax(pmax(pmax(x, y), z), s1), s2)); ok {
			return r
		}
		// max/max cancelation
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmax(pmax(x, y), pmax(x, z)), pmax(pmax(x, y), pmax(z, x)),
			pmax(pmax(y, x), pmax(x, z)), pmax(pmax(y, x), pmax(z, x)),
		), pmax(pmax(y, z), x)); ok {
			return r
		}
		// max/min distribution
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmax(pmin(x, y), pmin(x, z)), pmax(pmin(x, y), pmin(z, x)),
			pmax(pmin(y, x), pmin(x, z)), pmax(pmin(y, x), pmin(z, x)),
		), pmin(pmax(y, z), x)); ok {
			return r
		}
		// add distribution
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			pmax(add(y, x), add(z, x)), pmax(add(y, x), add(x, z)),
			pmax(add(x, y), add(x, z)), pmax(add(x, y), add(z, x)),
		), add(pmax(y, z), x)); ok {
			return r
		}
		// sub distribution
		if r, ok := s.tryRewrite(ret, pmax(sub(y, x), sub(z, x)), sub(pmax(y, z), x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, pmax(sub(x, y), sub(x, z)), sub(x, pmin(y, z))); ok {
			return r
		}
		// constant folding rule
		if r, ok := s.tryRewrite(ret, pmax(pmax(x, c1), c2), pmax(x, pmax(c1, c2))); ok {
			return r
		}
		// scaling rules
		if s.matches(pmax(truncdiv(x, c1), truncdiv(y, c1)), ret) {
			if c1.val() > 0 {
				return truncdiv(pmax(x, y), c1).eval()
			}
			//
			return truncdiv(pmin(x, y), c1).eval()
		}
		//
		if s.matches(pmax(floordiv(x, c1), floordiv(y, c1)), ret) {
			if c1.val() > 0 {
				return floordiv(pmax(x, y), c1).eval()
			}
			//
			return floordiv(pmin(x, y), c1).eval()
		}
		//
		if s.matches(pmax(mul(x, c1), mul(y, c1)), ret) {
			if c1.val() > 0 {
				return mul(pmax(x, y), c1).eval()
			}
			//
			return mul(pmin(x, y), c1).eval()
		}
		//
		if s.matches(pmax(mul(x, c1), c2), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c1val == 0 {
				if c2val > 0 {
					return c2.eval()
				}
				//
				return c1.eval()
			}
			//
			if c2val%c1val == 0 {
				if c1val > 0 {
					return mul(pmax(x, c2val/c1val), c1).eval()
				}
				//
				return mul(pmin(x, c2val/c1val), c1).eval()
			}
		}
		// vscale expression comparison
		if ir.ContainsVscaleCall(op.A) || ir.ContainsVscaleCall(op.B) {
			if s.canProve(ir.NewGE(op.A, op.B)) {
				return op.A
			}
			//
			if s.canProve(ir.NewGE(op.B, op.A)) {
				return op.B
			}
		}
		// canonicalization
		if r, ok := s.tryRecursiveRewrite(ret, pmax(pmax(x, c1), y), pmax(pmax(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewriteIf(ret, pmax(sub(c1, x), c2),
			sub(c1, pmin(x, sub(c1, c2))),
			func() bool { return c2.val() != 0 }); ok {
			return r
		}
	}
	// condition rules
	if r, ok := s.tryRewrite(ret, pmax(sel(x, y, z), sel(x, s1, s2)),
		sel(x, pmax(y, s1), pmax(z, s2))); ok {
		return r
	}
	//
	return ret
}
