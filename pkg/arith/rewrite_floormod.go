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

func (s *Simplifier) visitFloorMod(op *ir.FloorMod) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.FloorMod{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldFloorMod(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, b1 = anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// Vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, floormod(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(floormod(x, y), lanes)); ok {
			return r
		}
		// floormod(ramp, bcast)
		if s.matches(floormod(ramp(b1, c1, lanes), broadcast(c2, lanes)), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c2val == 0 {
				panic("division by zero")
			}
			//
			if c1val%c2val == 0 {
				return broadcast(floormod(b1, c2), lanes).eval()
			}
			// If all possible indices in the ramp are the same.
			bmod := s.oracles.ModularSet(b1.eval())
			base := pconst(ir.Const64(b1.eval().Type(), bmod.Base))
			//
			if _, scalable := ir.ExtractVscaleFactor(lanes.eval()); !scalable {
				lanesInt, _ := ir.IsConstInt(lanes.eval())
				rampMin := math.FloorDiv(bmod.Base, c2val)
				rampMax := math.FloorDiv(bmod.Base+(lanesInt-1)*c1val, c2val)
				//
				if rampMin == rampMax {
					// the base divides the broadcast divisor
					if bmod.Coeff%c2val == 0 {
						return ramp(floormod(base, c2), c1, lanes).eval()
					}
					// all indices settle inside one coeff range
					if c2val%bmod.Coeff == 0 && bmod.Base+(lanesInt-1)*c1val < bmod.Coeff {
						return ramp(floormod(b1, c2), c1, lanes).eval()
					}
				}
				// the base divides the broadcast divisor
				if bmod.Coeff%c2val == 0 {
					return floormod(ramp(floormod(base, c2), c1, lanes),
						broadcast(c2, lanes)).eval()
				}
			} else if bmod.Coeff%c2val == 0 {
				// scalable vectors
				return floormod(ramp(floormod(base, c2), c1, lanes),
					broadcast(c2, lanes)).eval()
			}
		}
	}
	//
	if IsIndexType(op.Type()) {
		// Be aware of the division semantics: these are floored
		// divisions, which are linear over multiples of the divisor.
		if r, ok := s.tryRewriteIf(ret, floormod(mul(x, c1), c2),
			floormod(mul(x, floormod(c1, c2)), c2),
			func() bool { return c2.val() != 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floormod(add(mul(x, c1), y), c2),
			add(mul(floormod(x, floordiv(c2, c1)), c1), y), func() bool {
				return c1.val() > 0 && c2.val() > 0 && c2.val()%c1.val() == 0 &&
					s.canProveEqual(
						ir.NewFloorDiv(y.eval(), c1.eval()), ir.Zero(y.eval().Type()))
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floormod(add(mul(x, c1), y), c2),
			floormod(add(mul(x, floormod(c1, c2)), y), c2),
			func() bool { return c2.val() > 0 }); ok {
			return r
		}
		// (x + 5) % 2 -> (x + 1) % 2, (x + 3) % 3 -> x % 3
		if r, ok := s.tryRewriteIf(ret, floormod(add(x, c1), c2),
			floormod(add(x, floormod(c1, c2)), c2), func() bool {
				return c2.val() > 0 && (c1.val() >= c2.val() || c1.val() < 0)
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floormod(add(x, mul(y, c1)), c2),
			floormod(add(x, mul(y, floormod(c1, c2))), c2),
			func() bool { return c2.val() > 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floormod(mul(x, c1), mul(x, c2)),
			mul(x, floormod(c1, c2)),
			func() bool { return c2.val() != 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			floormod(mul(x, y), y), floormod(mul(y, x), y),
		), zeroLike(y)); ok {
			return r
		}
		// x = ay + b, then (ay + b + (ny - ay - b) % y) % y -> (b + (-b) % y) % y -> 0
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floormod(add(x, floormod(z, y)), y), floormod(add(floormod(z, y), x), y),
		), zeroLike(x), func() bool {
			return s.canProveEqual(
				ir.NewFloorMod(ir.NewAdd(x.eval(), z.eval()), y.eval()),
				ir.Zero(x.eval().Type()))
		}); ok {
			return r
		}
		// x = ay + b, then (ay + b - (ay + b) % +-y) % y -> (b - b % +-y) % y -> 0
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			floormod(sub(x, floormod(x, z)), y), floormod(sub(floormod(x, z), x), y),
		), zeroLike(x), func() bool {
			return s.canProveEqual(ir.NewSub(y.eval(), z.eval()), ir.Zero(y.eval().Type())) ||
				s.canProveEqual(ir.NewAdd(y.eval(), z.eval()), ir.Zero(y.eval().Type()))
		}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, floormod(add(mul(mul(x, z), c1), y), mul(z, c1)),
			floormod(y, mul(z, c1)), func() bool {
				return s.canProveGreaterEqual(ir.NewMul(z.eval(), c1.eval()), 0)
			}); ok {
			return r
		}
		// Scalable divisor
		if r, ok := s.tryRewriteIf(ret, floormod(x, y), x, func() bool {
			return ir.ContainsVscaleCall(y.eval()) &&
				s.canProveGreaterEqual(x.eval(), 0) &&
				s.canProveGreaterEqual(y.eval(), 0) &&
				s.canProve(ir.NewLT(x.eval(), y.eval()))
		}); ok {
			return r
		}
		//
		if s.matches(floormod(x, c1), ret) {
			c1val := c1.val()
			//
			if c1val > 0 {
				// try modular analysis
				mod := s.oracles.ModularSet(x.eval())
				//
				if mod.Coeff%c1val == 0 {
					return floormod(pconst(ir.Const64(x.eval().Type(), mod.Base)), c1).eval()
				}
				// floormod(x, c1) is a no-op when x is already in the
				// appropriate range
				bound := s.oracles.ConstIntBound(x.eval())
				//
				if bound.MinValue >= 0 && bound.MaxValue < c1val {
					return x.eval()
				}
			}
		}
	}
	//
	return ret
}
