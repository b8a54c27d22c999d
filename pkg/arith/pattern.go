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

// pattern is a tree isomorphic to an expression tree, extended with pattern
// variables.  Matching binds the variables; a successful match allows the
// same (or another) pattern over the same variables to be evaluated into a
// new expression.  Patterns are not safe for concurrent use: every rule
// resets its source pattern before matching.
//
// A rule whose source is a matchesOneOf may only evaluate a result whose
// variables are bound in every alternative.
type pattern interface {
	// match attempts to unify this pattern against an expression, binding
	// variables along the way.  On failure, variables may be left partially
	// bound; callers reset before the next attempt.
	match(e ir.Expr) bool
	// eval materializes an expression by substituting bound variables.
	eval() ir.Expr
	// reset clears all variable bindings reachable from this pattern.
	reset()
}

// exprPVar is a pattern variable which binds any expression.  A variable
// seen twice within one match must unify with a structurally equal
// expression.
type exprPVar struct {
	value  ir.Expr
	filled bool
}

func anyVar() *exprPVar { return &exprPVar{} }

func (p *exprPVar) match(e ir.Expr) bool {
	if p.filled {
		return ir.Equal(p.value, e)
	}
	//
	p.value, p.filled = e, true
	//
	return true
}

func (p *exprPVar) eval() ir.Expr {
	if !p.filled {
		panic("evaluating unbound pattern variable")
	}
	//
	return p.value
}

// evalOr returns the bound value, or a default when this variable was not
// bound (e.g. because the alternative which matched does not mention it).
func (p *exprPVar) evalOr(def ir.Expr) ir.Expr {
	if p.filled {
		return p.value
	}
	//
	return def
}

func (p *exprPVar) reset() { p.filled = false }

// intPVar is a pattern variable which binds only scalar integer literals.
type intPVar struct {
	value  *ir.IntLit
	filled bool
}

func intVar() *intPVar { return &intPVar{} }

func (p *intPVar) match(e ir.Expr) bool {
	c, ok := e.(*ir.IntLit)
	//
	if !ok || c.DType.IsVector() || c.DType.IsBool() {
		return false
	} else if p.filled {
		return ir.Equal(p.value, c)
	}
	//
	p.value, p.filled = c, true
	//
	return true
}

func (p *intPVar) eval() ir.Expr {
	if !p.filled {
		panic("evaluating unbound pattern variable")
	}
	//
	return p.value
}

// val returns the bound literal value, for use in rule guards.
func (p *intPVar) val() int64 {
	if !p.filled {
		panic("evaluating unbound pattern variable")
	}
	//
	return p.value.Value
}

func (p *intPVar) reset() { p.filled = false }

// floatPVar is a pattern variable which binds only scalar float literals.
type floatPVar struct {
	value  *ir.FloatLit
	filled bool
}

func floatVar() *floatPVar { return &floatPVar{} }

func (p *floatPVar) match(e ir.Expr) bool {
	c, ok := e.(*ir.FloatLit)
	//
	if !ok || c.DType.IsVector() {
		return false
	} else if p.filled {
		return ir.Equal(p.value, c)
	}
	//
	p.value, p.filled = c, true
	//
	return true
}

func (p *floatPVar) eval() ir.Expr {
	if !p.filled {
		panic("evaluating unbound pattern variable")
	}
	//
	return p.value
}

func (p *floatPVar) val() float64 {
	if !p.filled {
		panic("evaluating unbound pattern variable")
	}
	//
	return p.value.Value
}

func (p *floatPVar) reset() { p.filled = false }

// autoConst is an integer constant written bare within a pattern, e.g. the
// "2" in floordiv(x, 2).  It matches a scalar integer literal of any width
// holding that value; on evaluation it takes the element type of a sibling,
// since a bare constant carries no type of its own.
type autoConst struct {
	value int64
}

func (p *autoConst) match(e ir.Expr) bool {
	c, ok := e.(*ir.IntLit)
	return ok && !c.DType.IsVector() && !c.DType.IsBool() && c.Value == p.value
}

func (p *autoConst) eval() ir.Expr {
	panic("evaluating untyped constant without context")
}

func (p *autoConst) reset() {}

// pconst matches (by deep equality) and evaluates to a fixed expression.
type pconstPat struct {
	value ir.Expr
}

func pconst(e ir.Expr) pattern { return &pconstPat{e} }

func (p *pconstPat) match(e ir.Expr) bool { return ir.Equal(p.value, e) }

func (p *pconstPat) eval() ir.Expr { return p.value }

func (p *pconstPat) reset() {}

// typedLike evaluates to a fixed constant of the same type as another
// (bound) pattern; it backs zeroLike and oneLike, which appear only in
// rule results.
type typedLike struct {
	of    pattern
	value int64
}

func zeroLike(of pattern) pattern { return &typedLike{of, 0} }

func oneLike(of pattern) pattern { return &typedLike{of, 1} }

func (p *typedLike) match(e ir.Expr) bool { return false }

func (p *typedLike) eval() ir.Expr {
	dtype := p.of.eval().Type()
	//
	if p.value == 0 {
		return ir.Zero(dtype)
	} else if p.value == 1 {
		return ir.One(dtype)
	}
	//
	return ir.Const64(dtype.Elem(), p.value)
}

func (p *typedLike) reset() { p.of.reset() }

// nodePat matches a specific node kind, recursing into its children, and
// evaluates through the corresponding (eagerly folding) constructor.
type nodePat struct {
	make func([]ir.Expr) ir.Expr
	test func(e ir.Expr) ([]ir.Expr, bool)
	args []pattern
}

func (p *nodePat) match(e ir.Expr) bool {
	children, ok := p.test(e)
	//
	if !ok || len(children) != len(p.args) {
		return false
	}
	//
	for i, arg := range p.args {
		if !arg.match(children[i]) {
			return false
		}
	}
	//
	return true
}

func (p *nodePat) eval() ir.Expr {
	var (
		vals   = make([]ir.Expr, len(p.args))
		anchor ir.DataType
		seen   bool
	)
	// materialize typed children, remembering the last as the type anchor
	// for any untyped constants
	for i, arg := range p.args {
		if _, auto := arg.(*autoConst); !auto {
			vals[i] = arg.eval()
			anchor, seen = vals[i].Type().Elem(), true
		}
	}
	//
	for i, arg := range p.args {
		if c, auto := arg.(*autoConst); auto {
			if !seen {
				panic("cannot type untyped constant")
			}
			//
			vals[i] = ir.Const64(anchor, c.value)
		}
	}
	//
	return p.make(vals)
}

func (p *nodePat) reset() {
	for _, arg := range p.args {
		arg.reset()
	}
}

// matchesOneOfPat tries each alternative in order, short-circuiting on the
// first success.  Alternatives share their pattern variables; each attempt
// resets the variables of the alternative about to be tried.
type matchesOneOfPat struct {
	alts []pattern
}

func matchesOneOf(alts ...pattern) pattern { return &matchesOneOfPat{alts} }

func (p *matchesOneOfPat) match(e ir.Expr) bool {
	for _, alt := range p.alts {
		alt.reset()
		//
		if alt.match(e) {
			return true
		}
	}
	//
	return false
}

func (p *matchesOneOfPat) eval() ir.Expr {
	panic("matchesOneOf cannot appear in a rule result")
}

func (p *matchesOneOfPat) reset() {
	for _, alt := range p.alts {
		alt.reset()
	}
}

// asPat admits bare integers (and expressions) wherever a pattern is
// expected.
func asPat(v any) pattern {
	switch v := v.(type) {
	case pattern:
		return v
	case int:
		return &autoConst{int64(v)}
	case int64:
		return &autoConst{v}
	case ir.Expr:
		return pconst(v)
	}
	//
	panic("invalid pattern operand")
}

func binaryPat(mk func(ir.Expr, ir.Expr) ir.Expr,
	test func(ir.Expr) ([]ir.Expr, bool), a, b any) pattern {
	//
	return &nodePat{
		make: func(vs []ir.Expr) ir.Expr { return mk(vs[0], vs[1]) },
		test: test,
		args: []pattern{asPat(a), asPat(b)},
	}
}

func add(a, b any) pattern {
	return binaryPat(ir.NewAdd, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Add); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func sub(a, b any) pattern {
	return binaryPat(ir.NewSub, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Sub); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func mul(a, b any) pattern {
	return binaryPat(ir.NewMul, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Mul); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func truncdiv(a, b any) pattern {
	return binaryPat(ir.NewDiv, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Div); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func truncmod(a, b any) pattern {
	return binaryPat(ir.NewMod, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Mod); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func floordiv(a, b any) pattern {
	return binaryPat(ir.NewFloorDiv, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.FloorDiv); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func floormod(a, b any) pattern {
	return binaryPat(ir.NewFloorMod, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.FloorMod); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func pmin(a, b any) pattern {
	return binaryPat(ir.NewMin, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Min); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func pmax(a, b any) pattern {
	return binaryPat(ir.NewMax, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Max); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func eq(a, b any) pattern {
	return binaryPat(ir.NewEQ, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.EQ); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func ne(a, b any) pattern {
	return binaryPat(ir.NewNE, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.NE); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func lt(a, b any) pattern {
	return binaryPat(ir.NewLT, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.LT); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func le(a, b any) pattern {
	return binaryPat(ir.NewLE, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.LE); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func gt(a, b any) pattern {
	return binaryPat(ir.NewGT, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.GT); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func ge(a, b any) pattern {
	return binaryPat(ir.NewGE, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.GE); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func and(a, b any) pattern {
	return binaryPat(ir.NewAnd, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.And); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func or(a, b any) pattern {
	return binaryPat(ir.NewOr, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Or); ok {
			return []ir.Expr{n.A, n.B}, true
		}
		return nil, false
	}, a, b)
}

func not(a any) pattern {
	return &nodePat{
		make: func(vs []ir.Expr) ir.Expr { return ir.NewNot(vs[0]) },
		test: func(e ir.Expr) ([]ir.Expr, bool) {
			if n, ok := e.(*ir.Not); ok {
				return []ir.Expr{n.A}, true
			}
			return nil, false
		},
		args: []pattern{asPat(a)},
	}
}

func sel(c, t, f any) pattern {
	return &nodePat{
		make: func(vs []ir.Expr) ir.Expr { return ir.NewSelect(vs[0], vs[1], vs[2]) },
		test: func(e ir.Expr) ([]ir.Expr, bool) {
			if n, ok := e.(*ir.Select); ok {
				return []ir.Expr{n.Cond, n.T, n.F}, true
			}
			return nil, false
		},
		args: []pattern{asPat(c), asPat(t), asPat(f)},
	}
}

func broadcast(v, lanes any) pattern {
	return binaryPat(ir.NewBroadcast, func(e ir.Expr) ([]ir.Expr, bool) {
		if n, ok := e.(*ir.Broadcast); ok {
			return []ir.Expr{n.Value, n.Lanes}, true
		}
		return nil, false
	}, v, lanes)
}

func ramp(base, stride, lanes any) pattern {
	return &nodePat{
		make: func(vs []ir.Expr) ir.Expr { return ir.NewRamp(vs[0], vs[1], vs[2]) },
		test: func(e ir.Expr) ([]ir.Expr, bool) {
			if n, ok := e.(*ir.Ramp); ok {
				return []ir.Expr{n.Base, n.Stride, n.Lanes}, true
			}
			return nil, false
		},
		args: []pattern{asPat(base), asPat(stride), asPat(lanes)},
	}
}
