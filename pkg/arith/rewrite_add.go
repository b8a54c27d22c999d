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

func (s *Simplifier) visitAdd(op *ir.Add) ir.Expr {
	va, vb := s.VisitExpr(op.A), s.VisitExpr(op.B)
	//
	if va != op.A || vb != op.B {
		op = &ir.Add{A: va, B: vb}
	}
	//
	if c, ok := tryConstFoldAdd(op.A, op.B); ok {
		return c
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y, z, b1, b2, s1, s2 = anyVar(), anyVar(), anyVar(), anyVar(), anyVar(), anyVar(), anyVar()
		// pattern vars to match integer literals
		c1, c2 = intVar(), intVar()
		// pattern var to match float literals
		c4 = floatVar()
		// pattern var for lanes in broadcast and ramp
		lanes = anyVar()
	)
	// Vector rules
	if op.Type().IsVector() {
		if r, ok := s.tryRewrite(ret, add(ramp(b1, s1, lanes), ramp(b2, s2, lanes)),
			ramp(add(b1, b2), add(s1, s2), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(ramp(b1, s1, lanes), broadcast(x, lanes)),
			ramp(add(b1, x), s1, lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(broadcast(x, lanes), ramp(b1, s1, lanes)),
			ramp(add(x, b1), s1, lanes)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(broadcast(x, lanes), broadcast(y, lanes)),
			broadcast(add(x, y), lanes)); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(x, broadcast(c4, lanes)), x,
			func() bool { return c4.val() == 0.0 }); ok {
			return r
		}
	}
	//
	if IsIndexType(op.Type()) {
		// Index rules
		// cancelation rules
		if r, ok := s.tryRewrite(ret, add(sub(x, y), y), x); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(x, sub(y, x)), y); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(sub(x, y), sub(y, z)), sub(x, z)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(sub(x, y), sub(z, x)), sub(z, y)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(pmin(x, sub(y, z)), z), pmin(add(x, z), y)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(pmin(sub(x, z), y), z), pmin(x, add(y, z))); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(pmax(x, sub(y, z)), z), pmax(add(x, z), y)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, add(pmax(sub(x, z), y), z), pmax(x, add(y, z))); ok {
			return r
		}
		//
		negated := func() bool { return c1.val() == -c2.val() }
		if r, ok := s.tryRewriteIf(ret, add(pmin(x, add(y, mul(z, c1))), mul(z, c2)),
			pmin(add(x, mul(z, c2)), y), negated); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(pmax(x, add(y, mul(z, c1))), mul(z, c2)),
			pmax(add(x, mul(z, c2)), y), negated); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(pmin(add(y, mul(z, c1)), x), mul(z, c2)),
			pmin(add(x, mul(z, c2)), y), negated); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(pmax(add(y, mul(z, c1)), x), mul(z, c2)),
			pmax(add(x, mul(z, c2)), y), negated); ok {
			return r
		}
		//
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			add(pmax(x, y), pmin(x, y)),
			add(pmin(x, y), pmax(x, y)),
			add(pmax(x, y), pmin(y, x)),
			add(pmin(x, y), pmax(y, x)),
		), add(x, y)); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, add(pmin(x, add(y, c1)), c2), pmin(add(x, c2), y), negated); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(pmin(add(x, c1), y), c2), pmin(x, add(y, c2)), negated); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(pmax(x, add(y, c1)), c2), pmax(add(x, c2), y), negated); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(pmax(add(x, c1), y), c2), pmax(x, add(y, c2)), negated); ok {
			return r
		}
		// constant folding
		// NOTE: canonicalization might do better at this.
		if r, ok := s.tryRewrite(ret, add(add(x, c1), c2), add(x, add(c1, c2))); ok {
			return r
		}
		// mul co-efficient folding
		if r, ok := s.tryRewrite(ret, add(x, x), mul(x, 2)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			add(mul(x, y), x), add(mul(y, x), x), add(x, mul(y, x)), add(x, mul(x, y)),
		), mul(add(y, 1), x)); ok {
			return r
		}
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			add(mul(x, y), mul(x, z)), add(mul(y, x), mul(x, z)),
			add(mul(x, y), mul(z, x)), add(mul(y, x), mul(z, x)),
		), mul(add(y, z), x)); ok {
			return r
		}
		// DivMod rules
		// truncdiv
		if r, ok := s.tryRewrite(ret, add(mul(truncdiv(x, c1), c1), truncmod(x, c1)), x); ok {
			return r
		}
		// floordiv
		if r, ok := s.tryRewrite(ret, matchesOneOf(
			add(mul(floordiv(x, y), y), floormod(x, y)),
			add(mul(y, floordiv(x, y)), floormod(x, y)),
			add(floormod(x, y), mul(floordiv(x, y), y)),
			add(floormod(x, y), mul(y, floordiv(x, y))),
		), x); ok {
			return r
		}
		//
		if r, ok := s.tryRewriteIf(ret, add(floordiv(add(floormod(x, c2), c1), c2), floordiv(x, c2)),
			floordiv(add(x, c1), c2), func() bool { return c2.val() > 0 }); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, add(floordiv(x, 2), floormod(x, 2)),
			floordiv(add(x, 1), 2)); ok {
			return r
		}
		// Simplify (x + 1) % 2 + x % 2 => 1.
		// NOTE: we should avoid simplifying (x + 1) % 2 => 1 - x % 2, since
		// introducing extra negative signs harms iterator analysis, which
		// relies on positive iterator co-efficients.
		odd := func() bool { return math.FloorMod(c1.val(), 2) == 1 }
		if r, ok := s.tryRewriteIf(ret, add(floormod(add(x, c1), 2), floormod(x, 2)),
			oneLike(x), odd); ok {
			return r
		}
		if r, ok := s.tryRewriteIf(ret, add(floormod(x, 2), floormod(add(x, c1), 2)),
			oneLike(x), odd); ok {
			return r
		}
		// canonicalization rules
		// will try rewrite again after canonicalization.
		if r, ok := s.tryRecursiveRewrite(ret, add(c1, x), add(x, c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
			add(x, sub(c1, y)), add(sub(c1, y), x),
		), add(sub(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, matchesOneOf(
			add(add(x, c1), y), add(x, add(c1, y)), add(x, add(y, c1)),
		), add(add(x, y), c1)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, add(x, pmax(y, z)), add(pmax(y, z), x)); ok {
			return r
		}
		if r, ok := s.tryRecursiveRewrite(ret, add(x, pmin(y, z)), add(pmin(y, z), x)); ok {
			return r
		}
		// DivMod rules
		// truncdiv
		if r, ok := s.tryRecursiveRewrite(ret, add(truncmod(y, c1), mul(x, c1)),
			add(mul(x, c1), truncmod(y, c1))); ok {
			return r
		}
		// floordiv
		if r, ok := s.tryRecursiveRewrite(ret, add(floormod(y, c1), mul(x, c1)),
			add(mul(x, c1), floormod(y, c1))); ok {
			return r
		}
	}
	// condition rules
	if r, ok := s.tryRewrite(ret, add(sel(x, b1, b2), sel(x, s1, s2)),
		sel(x, add(b1, s1), add(b2, s2))); ok {
		return r
	}
	// default value
	return ret
}
