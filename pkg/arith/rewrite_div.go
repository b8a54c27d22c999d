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

func (s *Simplifier) visitDiv(op *ir.Div) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Div{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldDiv(op.A, op.B); ok {
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
	// x / 2.0 = x * 0.5
	if fb, ok := op.B.(*ir.FloatLit); ok {
		return s.VisitExpr(ir.NewMul(op.A, ir.ConstFloat(fb.DType, 1.0/fb.Value)))
	}
	// Vector rules
	if op.Type().IsVector() {
		// NOTE: the div pattern also covers the float case.
		if r, ok := s.tryRewrite(ret, truncdiv(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(truncdiv(x, y), lanes)); ok {
			return r
		}
		// ramp / bcast
		if s.matches(truncdiv(ramp(b1, c1, lanes), broadcast(c2, lanes)), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c2val == 0 {
				panic("division by zero")
			}
			//
			if c1val%c2val == 0 {
				return ramp(truncdiv(b1, c2), truncdiv(c1, c2), lanes).eval()
			}
			// If all possible indices in the ramp are the same.
			if _, scalable := ir.ExtractVscaleFactor(lanes.eval()); !scalable &&
				s.canProveGreaterEqual(b1.eval(), 0) {
				//
				bmod := s.oracles.ModularSet(b1.eval())
				lanesInt, _ := ir.IsConstInt(lanes.eval())
				rampMin := bmod.Base / c2val
				rampMax := (bmod.Base + (lanesInt-1)*c1val) / c2val
				//
				if bmod.Coeff%c2val == 0 && rampMin == rampMax {
					return broadcast(truncdiv(b1, c2), lanes).eval()
				}
			}
		}
	}
	//
	if IsIndexType(op.Type()) {
		// Be aware of the division semantics: this is truncated division,
		// which rounds towards zero, so most rules must check the
		// non-negativeness of the operands.
		if r, ok := s.tryRewriteIf(ret, truncdiv(truncdiv(x, c1), c2), truncdiv(x, mul(c1, c2)),
			func() bool { return c1.val() > 0 && c2.val() > 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(truncdiv(x, c1), c2), c3),
			truncdiv(add(x, mul(c1, c2)), mul(c1, c3)), func() bool {
				return c1.val() > 0 && c2.val() >= 0 && c3.val() > 0 &&
					s.canProveGreaterEqual(x.eval(), 0)
			}); ok {
			return r
		}
		//
		if s.matches(truncdiv(mul(x, c1), c2), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c1val > 0 && c2val > 0 {
				if c1val%c2val == 0 {
					return mul(x, truncdiv(c1, c2)).eval()
				}
				//
				if c2val%c1val == 0 {
					return truncdiv(x, truncdiv(c2, c1)).eval()
				}
			}
		}
		//
		if r, ok := s.tryRewrite(ret, truncdiv(x, x), oneLike(x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			truncdiv(mul(x, c1), x), truncdiv(mul(c1, x), x),
		), c1); ok {
			return r
		}
		// Rules involving 2 operands.
		divisible2 := func() bool {
			return c1.val() >= 0 && c2.val() > 0 && c1.val()%c2.val() == 0 &&
				s.canProveGreaterEqual(x.eval(), 0) && s.canProveGreaterEqual(y.eval(), 0)
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(mul(x, c1), y), c2),
			add(mul(x, truncdiv(c1, c2)), truncdiv(y, c2)), divisible2); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(pmin(mul(x, c1), y), c2),
			pmin(mul(x, truncdiv(c1, c2)), truncdiv(y, c2)), divisible2); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(pmax(mul(x, c1), y), c2),
			pmax(mul(x, truncdiv(c1, c2)), truncdiv(y, c2)), divisible2); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(y, mul(x, c1)), c2),
			add(truncdiv(y, c2), mul(x, truncdiv(c1, c2))), divisible2); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(pmin(y, mul(x, c1)), c2),
			pmin(truncdiv(y, c2), mul(x, truncdiv(c1, c2))), divisible2); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(pmax(y, mul(x, c1)), c2),
			pmax(truncdiv(y, c2), mul(x, truncdiv(c1, c2))), divisible2); ok {
			return r
		}
		// Rules involving 3 operands.
		divisible3 := func(sum func() ir.Expr) func() bool {
			return func() bool {
				return c1.val() >= 0 && c2.val() > 0 && c1.val()%c2.val() == 0 &&
					s.canProveGreaterEqual(x.eval(), 0) && s.canProveGreaterEqual(sum(), 0)
			}
		}
		yPlusZ := func() ir.Expr { return ir.NewAdd(y.eval(), z.eval()) }
		zMinusY := func() ir.Expr { return ir.NewSub(z.eval(), y.eval()) }
		yMinusZ := func() ir.Expr { return ir.NewSub(y.eval(), z.eval()) }
		//
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(add(mul(x, c1), y), z), c2),
			add(mul(x, truncdiv(c1, c2)), truncdiv(add(y, z), c2)), divisible3(yPlusZ)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(sub(mul(x, c1), y), z), c2),
			add(mul(x, truncdiv(c1, c2)), truncdiv(sub(z, y), c2)), divisible3(zMinusY)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(sub(add(mul(x, c1), y), z), c2),
			add(mul(x, truncdiv(c1, c2)), truncdiv(sub(y, z), c2)), divisible3(yMinusZ)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(add(y, mul(x, c1)), z), c2),
			add(mul(x, truncdiv(c1, c2)), truncdiv(add(y, z), c2)), func() bool {
				return c1.val() > 0 && c2.val() > 0 && c1.val()%c2.val() == 0 &&
					s.canProveGreaterEqual(x.eval(), 0) &&
					s.canProveGreaterEqual(yPlusZ(), 0)
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, truncdiv(add(x, c1), c2),
			add(truncdiv(x, c2), truncdiv(c1, c2)), func() bool {
				return c1.val() > 0 && c2.val() > 0 && c1.val()%c2.val() == 0 &&
					s.canProveGreaterEqual(x.eval(), 0)
			}); ok {
			return r
		}
		//
		bothNonNeg := func() bool {
			return s.canProveGreaterEqual(x.eval(), 0) && s.canProveGreaterEqual(y.eval(), 0)
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			truncdiv(add(x, y), x), truncdiv(add(y, x), x),
		), add(truncdiv(y, x), 1), bothNonNeg); ok {
			return r
		}
		//
		sumNonNeg := func() bool {
			return s.canProveGreaterEqual(x.eval(), 0) &&
				s.canProveGreaterEqual(ir.NewAdd(y.eval(), z.eval()), 0)
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			truncdiv(add(add(x, y), z), x), truncdiv(add(add(y, x), z), x),
			truncdiv(add(y, add(z, x)), x), truncdiv(add(y, add(x, z)), x),
		), add(truncdiv(add(y, z), x), 1), sumNonNeg); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			truncdiv(mul(x, y), y), truncdiv(mul(y, x), y),
		), x, bothNonNeg); ok {
			return r
		}
		//
		allNonNeg := func() bool {
			return s.canProveGreaterEqual(x.eval(), 0) && s.canProveGreaterEqual(y.eval(), 0) &&
				s.canProveGreaterEqual(z.eval(), 0)
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			truncdiv(add(mul(x, z), y), z), truncdiv(add(mul(z, x), y), z),
		), add(x, truncdiv(y, z)), allNonNeg); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, matchesOneOf(
			truncdiv(add(y, mul(x, z)), z), truncdiv(add(y, mul(z, x)), z),
		), add(truncdiv(y, z), x), allNonNeg); ok {
			return r
		}
	}
	//
	return ret
}

func (s *Simplifier) visitMod(op *ir.Mod) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Mod{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldMod(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, b1 = anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// Vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, truncmod(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(truncmod(x, y), lanes)); ok {
			return r
		}
		// ramp % bcast
		if s.matches(truncmod(ramp(b1, c1, lanes), broadcast(c2, lanes)), ret) {
			c1val, c2val := c1.val(), c2.val()
			//
			if c2val == 0 {
				panic("division by zero")
			}
			//
			if c1val%c2val == 0 {
				return broadcast(truncmod(b1, c2), lanes).eval()
			}
			// If all possible indices in the ramp are the same.
			if s.canProveGreaterEqual(b1.eval(), 0) {
				bmod := s.oracles.ModularSet(b1.eval())
				//
				if _, scalable := ir.ExtractVscaleFactor(lanes.eval()); !scalable {
					lanesInt, _ := ir.IsConstInt(lanes.eval())
					rampMin := bmod.Base / c2val
					rampMax := (bmod.Base + (lanesInt-1)*c1val) / c2val
					//
					if bmod.Coeff%c2val == 0 {
						base := pconst(ir.Const64(b1.eval().Type(), bmod.Base))
						//
						if rampMin == rampMax {
							return ramp(truncmod(base, c2), c1, lanes).eval()
						}
						//
						return truncmod(ramp(truncmod(base, c2), c1, lanes),
							broadcast(c2, lanes)).eval()
					}
				} else if bmod.Coeff%c2val == 0 {
					// special case for scalable vectors
					base := pconst(ir.Const64(b1.eval().Type(), bmod.Base))
					//
					return truncmod(ramp(truncmod(base, c2), c1, lanes),
						broadcast(c2, lanes)).eval()
				}
			}
		}
	}
	//
	if IsIndexType(op.Type()) {
		// Be aware of the division semantics: this is the remainder of
		// truncated division, so most rules must check the
		// non-negativeness of the operands.
		if r, ok := s.tryRewriteIf(ret, truncmod(mul(x, c1), c2), zeroLike(x),
			func() bool { return c2.val() != 0 && c1.val()%c2.val() == 0 }); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, truncmod(add(mul(x, c1), y), c2), truncmod(y, c2),
			func() bool {
				return c2.val() > 0 && c1.val()%c2.val() == 0 &&
					s.canProveGreaterEqual(ir.NewMul(x.eval(), c1.eval()), 0) &&
					s.canProveGreaterEqual(y.eval(), 0)
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, truncmod(add(x, c1), c2), truncmod(x, c2),
			func() bool {
				return c2.val() > 0 && c1.val() >= 0 && c1.val()%c2.val() == 0 &&
					s.canProveGreaterEqual(x.eval(), 0)
			}); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, truncmod(add(x, mul(y, c1)), c2), truncmod(x, c2),
			func() bool {
				return c2.val() > 0 && c1.val()%c2.val() == 0 &&
					s.canProveGreaterEqual(x.eval(), 0) &&
					s.canProveGreaterEqual(ir.NewMul(y.eval(), c1.eval()), 0)
			}); ok {
			return r
		}
		// canonicalization: x % c == x % (-c) for truncated division
		if s.matches(truncmod(x, c1), ret) && c1.val() < 0 {
			s.stats.RewritesPerformed++
			//
			return s.recursiveRewrite(ir.NewMod(x.eval(),
				ir.Const64(c1.eval().Type(), -c1.val())))
		}
		// try modular analysis
		if s.matches(truncmod(x, c1), ret) {
			mod := s.oracles.ModularSet(x.eval())
			c1val := c1.val()
			//
			if c1val > 0 && mod.Coeff%c1val == 0 && s.canProveGreaterEqual(x.eval(), 0) {
				return truncmod(pconst(ir.Const64(x.eval().Type(), mod.Base)), c1).eval()
			}
		}
	}
	//
	return ret
}
