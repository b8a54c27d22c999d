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

func (s *Simplifier) visitSelect(op *ir.Select) ir.Expr {
	cond := s.VisitExpr(op.Cond)
	// each arm may assume the condition's truth or falsehood
	exit := s.oracles.EnterScopedConstraint(cond)
	t := s.VisitExpr(op.T)
	exit()
	//
	exit = s.oracles.EnterScopedConstraint(NormalizeBooleanOperators(ir.NewNot(cond)))
	f := s.VisitExpr(op.F)
	exit()
	//
	if v, ok := ir.IsConstInt(cond); ok && cond.Type().IsBool() {
		if v != 0 {
			return t
		}
		//
		return f
	}
	//
	if cond != op.Cond || t != op.T || f != op.F {
		op = &ir.Select{Cond: cond, T: t, F: f}
	}
	//
	var (
		ret ir.Expr = op
		// pattern vars to match any expression
		x, y = anyVar(), anyVar()
	)
	//
	if r, ok := s.tryRewrite(ret, sel(x, y, y), y); ok {
		return r
	}
	//
	return ret
}

func (s *Simplifier) visitCall(op *ir.Call) ir.Expr {
	var args []ir.Expr
	//
	if op.Op == "if_then_else" && len(op.Args) == 3 {
		// add the condition context to if_then_else
		cond := s.VisitExpr(op.Args[0])
		//
		exit := s.oracles.EnterScopedConstraint(cond)
		t := s.VisitExpr(op.Args[1])
		exit()
		//
		exit = s.oracles.EnterScopedConstraint(NormalizeBooleanOperators(ir.NewNot(cond)))
		f := s.VisitExpr(op.Args[2])
		exit()
		//
		if v, ok := ir.IsConstInt(cond); ok && cond.Type().IsBool() {
			if v != 0 {
				return t
			}
			//
			return f
		}
		//
		args = []ir.Expr{cond, t, f}
	} else {
		args = make([]ir.Expr, len(op.Args))
		//
		for i, arg := range op.Args {
			args[i] = s.VisitExpr(arg)
		}
	}
	//
	changed := false
	for i := range args {
		if args[i] != op.Args[i] {
			changed = true
		}
	}
	//
	if changed {
		op = &ir.Call{DType: op.DType, Op: op.Op, Args: args}
	}
	//
	switch op.Op {
	case "likely":
		if ir.IsConstNumber(op.Args[0]) {
			return op.Args[0]
		}
	case "shift_right":
		if a, ok := op.Args[0].(*ir.IntLit); ok {
			if b, ok := op.Args[1].(*ir.IntLit); ok {
				return ir.Const64(a.DType, a.Value>>uint64(b.Value))
			}
		}
	case "shift_left":
		if a, ok := op.Args[0].(*ir.IntLit); ok {
			if b, ok := op.Args[1].(*ir.IntLit); ok {
				return ir.Const64(a.DType, a.Value<<uint64(b.Value))
			}
		}
	case "ceil":
		arg := op.Args[0]
		//
		if c, ok := arg.(*ir.IntLit); ok {
			return ir.NewCast(op.DType, c)
		} else if c, ok := arg.(*ir.FloatLit); ok {
			return ir.NewCast(op.DType, ir.ConstFloat(c.DType, ir.Ceil(c.Value)))
		} else if inner, ok := arg.(*ir.Call); ok && inner.Op == "log2" {
			// ceil(log2(n)) appears in iteration bounds and produces the
			// same integer result regardless of the target's rounding
			// conventions.
			if c, ok := inner.Args[0].(*ir.FloatLit); ok {
				return ir.ConstFloat(op.DType, ir.Ceil(ir.Log2(c.Value)))
			}
		}
	case "clz":
		if c, ok := op.Args[0].(*ir.IntLit); ok {
			return ir.Const64(op.DType, ir.Clz(c.DType, c.Value))
		}
	}
	//
	if op.Op == "likely" {
		// e.g. for (i, 0, bound) { if (likely(iter_var < bound)) { .. } }
		if m, ok := s.TryMatchLiteralConstraint(op.Args[0]); ok {
			return m
		}
	}
	//
	if op.Op == "if_then_else" && len(op.Args) == 3 {
		// Merge nested if_then_else:
		//   if (cond) { if (inner_cond) { inner_then } else { inner_else } } else { else }
		//   => if (cond && inner_cond) { inner_then } else { else }
		cond, thenExpr, elseExpr := op.Args[0], op.Args[1], op.Args[2]
		//
		if inner, ok := thenExpr.(*ir.Call); ok && inner.Op == "if_then_else" {
			innerCond, innerThen, innerElse := inner.Args[0], inner.Args[1], inner.Args[2]
			// only check constant cases, to avoid recursion
			if ir.IsConstNumber(innerElse) && ir.IsConstNumber(elseExpr) &&
				provablyEqualConsts(innerElse, elseExpr) {
				//
				return ir.NewCall(op.DType, "if_then_else",
					s.VisitExpr(ir.NewAnd(cond, innerCond)), innerThen, elseExpr)
			}
		}
	}
	//
	return op
}

// provablyEqualConsts determines whether two literal numbers are equal.
func provablyEqualConsts(a ir.Expr, b ir.Expr) bool {
	if v, ok := ir.IsConstInt(ir.NewEQ(a, b)); ok {
		return v != 0
	}
	//
	return false
}

func (s *Simplifier) visitVar(op *ir.Var) ir.Expr {
	if op.DType.IsBool() {
		if m, ok := s.TryMatchLiteralConstraint(op); ok {
			return m
		}
	}
	//
	if value, ok := s.varMap[op.Name]; ok {
		return value
	}
	//
	return op
}

func (s *Simplifier) visitCast(op *ir.Cast) ir.Expr {
	value := s.VisitExpr(op.Value)
	return ir.NewCast(op.DType, value)
}

// canInlineLet restricts inlining to trivial bindings, to avoid deep
// expression explosion when let is used to construct complicated
// expressions.
func canInlineLet(op *ir.Let) bool {
	if ir.IsConstNumber(op.Value) {
		return true
	}
	//
	_, isVar := op.Value.(*ir.Var)
	//
	return isVar
}

func (s *Simplifier) visitLet(op *ir.Let) ir.Expr {
	value := s.VisitExpr(op.Value)
	//
	if canInlineLet(op) {
		// it is fine to discard the binding here, since the value is
		// always inlined into the body
		s.oracles.Bind(op.Var, value)
		s.Update(op.Var, value, true)
		//
		return s.VisitExpr(op.Body)
	}
	//
	body := s.VisitExpr(op.Body)
	//
	if value == op.Value && body == op.Body {
		return op
	}
	//
	return &ir.Let{Var: op.Var, Value: value, Body: body}
}
