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

func (s *Simplifier) visitMul(op *ir.Mul) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Mul{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldMul(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, b1, s1 = anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var to match float literals
		c3 = floatVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// Vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, mul(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(mul(x, y), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			mul(ramp(b1, s1, lanes), broadcast(x, lanes)),
			mul(broadcast(x, lanes), ramp(b1, s1, lanes)),
		), ramp(mul(b1, x), mul(s1, x), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, mul(broadcast(c3, lanes), x), broadcast(c3, lanes),
			func() bool { return c3.val() == 0.0 }); ok {
			return r
		}
	}
	//
	if IsIndexType(op.Type()) {
		// constant simplification rules
		if r, ok := s.tryRewrite(ret, mul(add(x, c1), c2), add(mul(x, c2), mul(c1, c2))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, mul(mul(x, c1), c2), mul(x, mul(c1, c2))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			mul(pmin(x, y), pmax(x, y)), mul(pmax(x, y), pmin(x, y)),
		), mul(x, y)); ok {
			return r
		}
		// two representations of const*ceildiv(x, c2)
		if r, ok := s.tryRewriteIf(ret, mul(floordiv(sub(x, floormod(x, c2)), c1), c1),
			sub(x, floormod(x, c2)),
			func() bool { return c1.val() == -c2.val() }); ok {
			return r
		}
		// canonicalization
		if r, ok := s.tryRecursiveRewrite(ret, mul(x, mul(c1, y)), mul(mul(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, mul(c1, x), mul(x, c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewriteIf(ret, mul(sub(x, y), c1), mul(sub(y, x), sub(0, c1)),
			func() bool { return c1.val() < 0 }); ok {
			return r
		}
	}
	//
	return ret
}
