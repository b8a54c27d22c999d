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

// IsIndexType determines whether a datatype can address tensors: a scalar
// signed integer no wider than the machine index.  Index types enable the
// full algebraic rule set; other types get only the conservative subset.
func IsIndexType(dtype ir.DataType) bool {
	return dtype.IsInt() && !dtype.IsVector() && dtype.Bits <= 64
}

// ExtractConstantOffset decomposes x+c, x-c and c-x into a base expression
// and a signed constant offset.  Note that for c-x the base is returned
// negated relative to the expression, i.e. the caller must account for the
// sign flip.  Expressions with no constant offset return themselves with a
// zero offset.
func ExtractConstantOffset(e ir.Expr) (ir.Expr, int64) {
	var (
		x  = anyVar()
		c1 = intVar()
	)
	// Any (c1+x) terms are normalized into (x+c1), so there is no need to
	// check for them.
	if p := add(x, c1); matchFresh(p, e) {
		return x.eval(), c1.val()
	} else if p := sub(x, c1); matchFresh(p, e) {
		return x.eval(), -c1.val()
	} else if p := sub(c1, x); matchFresh(p, e) {
		return x.eval(), c1.val()
	}
	//
	return e, 0
}

// matchFresh resets a pattern and matches it against an expression.
func matchFresh(p pattern, e ir.Expr) bool {
	p.reset()
	return p.match(e)
}

// ZeroAwareGCD returns the greatest common divisor of the magnitudes of two
// values, treating zero as divisible by everything: gcd(0, x) = |x| and
// gcd(0, 0) = 0.
func ZeroAwareGCD(a int64, b int64) int64 {
	if a < 0 {
		a = -a
	}
	//
	if b < 0 {
		b = -b
	}
	//
	for b != 0 {
		a, b = b, a%b
	}
	//
	return a
}

// intLits extracts both operands as scalar integer literals of the same
// non-boolean type.
func intLits(a ir.Expr, b ir.Expr) (int64, int64, ir.DataType, bool) {
	la, ok := a.(*ir.IntLit)
	//
	if !ok || la.DType.IsVector() || la.DType.IsBool() {
		return 0, 0, ir.DataType{}, false
	}
	//
	lb, ok := b.(*ir.IntLit)
	//
	if !ok || la.DType != lb.DType {
		return 0, 0, ir.DataType{}, false
	}
	//
	return la.Value, lb.Value, la.DType, true
}

func floatLits(a ir.Expr, b ir.Expr) (float64, float64, ir.DataType, bool) {
	fa, ok := a.(*ir.FloatLit)
	//
	if !ok || fa.DType.IsVector() {
		return 0, 0, ir.DataType{}, false
	}
	//
	fb, ok := b.(*ir.FloatLit)
	//
	if !ok || fa.DType != fb.DType {
		return 0, 0, ir.DataType{}, false
	}
	//
	return fa.Value, fb.Value, fa.DType, true
}

func isZero(e ir.Expr) bool {
	c, ok := e.(*ir.IntLit)
	return ok && !c.DType.IsVector() && !c.DType.IsBool() && c.Value == 0
}

func isOne(e ir.Expr) bool {
	c, ok := e.(*ir.IntLit)
	return ok && !c.DType.IsVector() && !c.DType.IsBool() && c.Value == 1
}

// tryConstFoldAdd folds an addition over literal operands, including the
// additive identity.
func tryConstFoldAdd(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok {
		return ir.Const64(dt, x+y), true
	} else if x, y, dt, ok := floatLits(a, b); ok {
		return ir.ConstFloat(dt, x+y), true
	} else if isZero(a) {
		return b, true
	} else if isZero(b) {
		return a, true
	}
	//
	return nil, false
}

func tryConstFoldSub(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok {
		return ir.Const64(dt, x-y), true
	} else if x, y, dt, ok := floatLits(a, b); ok {
		return ir.ConstFloat(dt, x-y), true
	} else if isZero(b) {
		return a, true
	}
	//
	return nil, false
}

func tryConstFoldMul(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok {
		return ir.Const64(dt, x*y), true
	} else if x, y, dt, ok := floatLits(a, b); ok {
		return ir.ConstFloat(dt, x*y), true
	} else if isOne(a) {
		return b, true
	} else if isOne(b) {
		return a, true
	} else if isZero(a) {
		return a, true
	} else if isZero(b) {
		return b, true
	}
	//
	return nil, false
}

// tryConstFoldDiv folds a truncated division.  Division by a zero literal
// does not fold: the node stays in the IR for a later pass to diagnose.
func tryConstFoldDiv(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok && y != 0 {
		return ir.Const64(dt, math.TruncDiv(x, y)), true
	} else if x, y, dt, ok := floatLits(a, b); ok {
		return ir.ConstFloat(dt, x/y), true
	} else if isOne(b) {
		return a, true
	}
	//
	return nil, false
}

func tryConstFoldMod(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok && y != 0 {
		return ir.Const64(dt, math.TruncMod(x, y)), true
	} else if isOne(b) {
		return ir.Zero(a.Type()), true
	}
	//
	return nil, false
}

func tryConstFoldFloorDiv(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok && y != 0 {
		return ir.Const64(dt, math.FloorDiv(x, y)), true
	} else if isOne(b) {
		return a, true
	}
	//
	return nil, false
}

func tryConstFoldFloorMod(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok && y != 0 {
		return ir.Const64(dt, math.FloorMod(x, y)), true
	} else if isOne(b) {
		return ir.Zero(a.Type()), true
	}
	//
	return nil, false
}

func tryConstFoldMin(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok {
		return ir.Const64(dt, min(x, y)), true
	} else if x, y, dt, ok := floatLits(a, b); ok {
		return ir.ConstFloat(dt, min(x, y)), true
	}
	//
	return nil, false
}

func tryConstFoldMax(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if x, y, dt, ok := intLits(a, b); ok {
		return ir.Const64(dt, max(x, y)), true
	} else if x, y, dt, ok := floatLits(a, b); ok {
		return ir.ConstFloat(dt, max(x, y)), true
	}
	//
	return nil, false
}

func tryConstFoldCompare(a ir.Expr, b ir.Expr,
	ifn func(int64, int64) bool, ffn func(float64, float64) bool) (ir.Expr, bool) {
	//
	if x, y, _, ok := intLits(a, b); ok {
		return ir.ConstBool(ifn(x, y)), true
	} else if x, y, _, ok := floatLits(a, b); ok {
		return ir.ConstBool(ffn(x, y)), true
	}
	//
	return nil, false
}

// tryConstFoldAnd collapses a conjunction with a literal operand.
func tryConstFoldAnd(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if v, ok := boolLitOf(a); ok {
		if v {
			return b, true
		}
		//
		return a, true
	} else if v, ok := boolLitOf(b); ok {
		if v {
			return a, true
		}
		//
		return b, true
	}
	//
	return nil, false
}

func tryConstFoldOr(a ir.Expr, b ir.Expr) (ir.Expr, bool) {
	if v, ok := boolLitOf(a); ok {
		if v {
			return a, true
		}
		//
		return b, true
	} else if v, ok := boolLitOf(b); ok {
		if v {
			return b, true
		}
		//
		return a, true
	}
	//
	return nil, false
}

func tryConstFoldNot(a ir.Expr) (ir.Expr, bool) {
	if v, ok := boolLitOf(a); ok {
		return ir.ConstBool(!v), true
	}
	//
	return nil, false
}

func boolLitOf(e ir.Expr) (bool, bool) {
	if c, ok := e.(*ir.IntLit); ok && c.DType.IsBool() && !c.DType.IsVector() {
		return c.Value != 0, true
	}
	//
	return false, false
}
