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

func (s *Simplifier) visitFloorDiv(op *ir.FloorDiv) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.FloorDiv{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldFloorDiv(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, b1 = anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2, c3 = intVar(), intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// Vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, floordiv(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(floordiv(x, y), lanes)); ok {
			return r
		}
		// ramp // bcast
		if s.matches(floordiv(ramp(b1, c1, lanes), broadcast(c2, lanes)), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c2val == 0 {
				panic("division by zero")
			}
			//
			if c1val%c2val == 0 {
				return ramp(floordiv(b1, c2), floordiv(c1, c2), lanes).eval()
			}
			// If all possible indices in the ramp are the same.
			if _, scalable := ir.ExtractVscaleFactor(lanes.eval()); !scalable {
				bmod := s.oracles.ModularSet(b1.eval())
				lanesInt, _ := ir.IsConstInt(lanes.eval())
				rampMin := math.FloorDiv(bmod.Base, c2val)
				rampMax := math.FloorDiv(bmod.Base+(lanesInt-1)*c1val, c2val)
				//
				if rampMin == rampMax {
					// the base divides the broadcast divisor
					if bmod.Coeff%c2val == 0 {
						return broadcast(floordiv(b1, c2), lanes).eval()
					}
					// all indices settle inside one coeff range
					if c2val%bmod.Coeff == 0 && bmod.Base+(lanesInt-1)*c1val < bmod.Coeff {
						return broadcast(floordiv(b1, c2), lanes).eval()
					}
				}
			}
		}
	}
	//
	if IsIndexType(op.Type()) {
		// Be aware of the division semantics: this is floored division.
		if r, ok := s.tryRewriteIf(ret, floordiv(floordiv(x, c1), c2), floordiv(x, mul(c1, c2)),
			func() bool { return c1.val() > 0 && c2.val() > 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floordiv(add(floordiv(x, c1), c2), c3),
			floordiv(add(x, mul(c1, c2)), mul(c1, c3)),
			func() bool { return c1.val() > 0 && c3.val() > 0 }); ok {
			return r
		}
		//
		if s.matches(floordiv(add(mul(x, c1), y), c2), ret) ||
			s.matches(floordiv(mul(x, c1), c2), ret) ||
			s.matches(floordiv(add(y, mul(x, c1)), c2), ret) {
			//
			c1val, c2val := c1.val(), c2.val()
			yval := y.evalOr(ir.Zero(x.eval().Type()))
			//
			if c2val != 0 {
				// try eliminating the residue part
				residue := ir.NewFloorDiv(
					ir.NewAdd(
						ir.NewMul(x.eval(), ir.Const64(c1.eval().Type(), math.FloorMod(c1val, c2val))),
						ir.NewFloorMod(yval, ir.Const64(yval.Type(), c2val))),
					c2.eval())
				yDiv := ir.NewFloorDiv(yval, c2.eval())
				//
				if s.canProveEqual(yDiv, ir.Zero(yDiv.Type())) {
					yDiv = ir.Zero(yDiv.Type())
				}
				//
				bound := s.oracles.ConstIntBound(residue)
				if bound.MinValue == bound.MaxValue && bound.MinValue != NegInf {
					return ir.NewAdd(
						ir.NewMul(x.eval(), ir.Const64(c1.eval().Type(), math.FloorDiv(c1val, c2val))),
						ir.NewAdd(yDiv, ir.Const64(c1.eval().Type(), bound.MaxValue)))
				}
				// try simplifying the divisor
				if c1val > 0 && c2val > 0 && c2val%c1val == 0 &&
					s.canProveLess(ir.NewFloorMod(yval, ir.Const64(yval.Type(), c2val)), c1val) {
					// assume c2 == a * c1, x == a * x' + b, y = d * c2 + e, then
					// (x * c1 + y) // c2
					// ==> ((a * x' + b) * c1 + d * a * c1 + e) // (a * c1)
					// ==> x' + d + (b * c1 + e) // c2
					// ==> x' + d  since 0 <= b * c1 <= (a-1) * c1 and 0 <= e < c1
					// ==> x // (c2 // c1) + (y // c2)
					return ir.NewAdd(
						ir.NewFloorDiv(x.eval(), ir.Const64(c1.eval().Type(), c2val/c1val)), yDiv)
				}
			}
		}
		//
		if r, ok := s.tryRewrite(ret, floordiv(x, x), oneLike(x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			floordiv(mul(x, c1), x), floordiv(mul(c1, x), x),
		), c1); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, floordiv(add(floormod(x, 2), 1), 2), floormod(x, 2)); ok {
			return r
		}
		// Rules involving 2 operands.
		divisible := func() bool {
			return c2.val() > 0 && c1.val()%c2.val() == 0
		}
		if r, ok := s.tryRewriteIf(ret, floordiv(pmin(mul(x, c1), y), c2),
			pmin(mul(x, floordiv(c1, c2)), floordiv(y, c2)), divisible); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, floordiv(pmax(mul(x, c1), y), c2),
			pmax(mul(x, floordiv(c1, c2)), floordiv(y, c2)), divisible); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, floordiv(pmin(y, mul(x, c1)), c2),
			pmin(floordiv(y, c2), mul(x, floordiv(c1, c2))), divisible); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, floordiv(pmax(y, mul(x, c1)), c2),
			pmax(floordiv(y, c2), mul(x, floordiv(c1, c2))), divisible); ok {
			return r
		}
		// Rules involving 3 operands.
		if r, ok := s.tryRewriteIf(ret, floordiv(add(add(mul(x, c1), y), z), c2),
			add(mul(x, floordiv(c1, c2)), floordiv(add(y, z), c2)), divisible); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, floordiv(add(add(mul(x, c1), y), z), c2),
			floordiv(x, floordiv(c2, c1)), func() bool {
				return c1.val() > 0 && c2.val() > 0 && c2.val()%c1.val() == 0 &&
					s.canProveEqual(
						ir.NewFloorDiv(ir.NewAdd(y.eval(), z.eval()), c1.eval()),
						ir.Zero(y.eval().Type()))
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floordiv(add(sub(mul(x, c1), y), z), c2), floordiv(sub(add(mul(x, c1), z), y), c2),
		), add(mul(x, floordiv(c1, c2)), floordiv(sub(z, y), c2)), divisible); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floordiv(add(add(y, mul(x, c1)), z), c2),
			add(mul(x, floordiv(c1, c2)), floordiv(add(y, z), c2)), divisible); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floordiv(add(x, c1), c2),
			add(floordiv(x, c2), floordiv(c1, c2)), divisible); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floordiv(mul(x, c1), mul(x, c2)), floordiv(c1, c2),
			func() bool { return c2.val() > 0 }); ok {
			return r
		}
		//
		xNonNeg := func() bool { return s.canProveGreaterEqual(x.eval(), 0) }
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floordiv(add(x, y), x), floordiv(add(y, x), x),
		), add(floordiv(y, x), 1), xNonNeg); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floordiv(add(add(x, y), z), x), floordiv(add(add(y, x), z), x),
			floordiv(add(y, add(z, x)), x), floordiv(add(y, add(x, z)), x),
		), add(floordiv(add(y, z), x), 1), xNonNeg); ok {
			return r
		}
		//
		yNonNeg := func() bool { return s.canProveGreaterEqual(y.eval(), 0) }
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floordiv(mul(x, y), y), floordiv(mul(y, x), y),
		), x, yNonNeg); ok {
			return r
		}
		//
		zNonNeg := func() bool { return s.canProveGreaterEqual(z.eval(), 0) }
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floordiv(add(mul(x, z), y), z), floordiv(add(mul(z, x), y), z),
		), add(x, floordiv(y, z)), zNonNeg); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floordiv(add(y, mul(x, z)), z), floordiv(add(y, mul(z, x)), z),
		), add(floordiv(y, z), x), zNonNeg); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floordiv(add(mul(mul(x, z), c1), y), mul(z, c1)),
			add(x, floordiv(y, mul(z, c1))), func() bool {
				return s.canProveGreaterEqual(ir.NewMul(z.eval(), c1.eval()), 0)
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floordiv(sub(x, floormod(x, c1)), c1), floordiv(x, c1),
			func() bool { return c1.val() != 0 }); ok {
			return r
		}
		// Scalable divisor
		if r, ok := s.tryRewriteIf(ret, floordiv(x, y), zeroLike(x), func() bool {
			return ir.ContainsVscaleCall(y.eval()) &&
				s.canProveGreaterEqual(x.eval(), 0) &&
				s.canProveGreaterEqual(y.eval(), 0) &&
				s.canProve(ir.NewLT(x.eval(), y.eval()))
		}); ok {
			return r
		}
	}
	//
	return ret
}
