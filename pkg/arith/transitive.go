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

// knownFact records an inequality lhs <= rhs + offset learned from a scoped
// constraint.  Equalities are stored as a pair of facts.
type knownFact struct {
	lhs    ir.Expr
	rhs    ir.Expr
	offset int64
}

// TransitiveAnalyzer answers ordering queries between expressions using
// inequalities recorded from scoped constraints, optionally chaining
// through one intermediate expression.
type TransitiveAnalyzer struct {
	facts []knownFact
}

// NewTransitiveAnalyzer constructs an empty transitive analyzer.
func NewTransitiveAnalyzer() *TransitiveAnalyzer {
	return &TransitiveAnalyzer{}
}

// EnterScopedConstraint records the inequalities implied by a constraint,
// returning the function which forgets them again.
func (a *TransitiveAnalyzer) EnterScopedConstraint(c ir.Expr) func() {
	oldSize := len(a.facts)
	//
	for _, sub := range ExtractConstraints(c) {
		switch n := sub.(type) {
		case *ir.LT:
			a.record(n.A, n.B, -1)
		case *ir.LE:
			a.record(n.A, n.B, 0)
		case *ir.GT:
			a.record(n.B, n.A, -1)
		case *ir.GE:
			a.record(n.B, n.A, 0)
		case *ir.EQ:
			if !n.A.Type().IsBool() {
				a.record(n.A, n.B, 0)
				a.record(n.B, n.A, 0)
			}
		}
	}
	//
	newSize := len(a.facts)
	//
	return func() {
		if len(a.facts) != newSize {
			panic("constraint stack unwound out of order")
		}
		//
		a.facts = a.facts[:oldSize]
	}
}

// record stores lhs <= rhs + offset, folding constant offsets on either
// side into the offset itself.
func (a *TransitiveAnalyzer) record(lhs ir.Expr, rhs ir.Expr, offset int64) {
	lhsBase, lhsOffset := splitOffset(lhs)
	rhsBase, rhsOffset := splitOffset(rhs)
	// facts whose left-hand side is a constant are not recorded
	if _, ok := lhsBase.(*ir.IntLit); ok {
		return
	}
	//
	a.facts = append(a.facts, knownFact{lhsBase, rhsBase, offset + rhsOffset - lhsOffset})
}

// splitOffset separates a constant offset from an expression, leaving the
// c-x shape alone since its base is negated.
func splitOffset(e ir.Expr) (ir.Expr, int64) {
	if sn, ok := e.(*ir.Sub); ok {
		if _, lit := sn.A.(*ir.IntLit); lit {
			return e, 0
		}
	}
	//
	return ExtractConstantOffset(e)
}

// Compare determines the ordering of x and y from recorded facts.  With
// propagation enabled, facts may be chained through a single intermediate
// expression.
func (a *TransitiveAnalyzer) Compare(x ir.Expr, y ir.Expr, propagate bool) CompareResult {
	xBase, xOffset := splitOffset(x)
	yBase, yOffset := splitOffset(y)
	// x <= y + k  for the smallest known k
	result := CmpUnknown
	//
	if upper, ok := a.upperBound(xBase, yBase, propagate); ok {
		// x = xBase + xOffset <= yBase + upper + xOffset
		//                      = y + (upper + xOffset - yOffset)
		slack := upper + xOffset - yOffset
		//
		if slack < 0 {
			result = result.Intersect(CmpLT)
		} else if slack <= 0 {
			result = result.Intersect(CmpLE)
		}
	}
	//
	if upper, ok := a.upperBound(yBase, xBase, propagate); ok {
		slack := upper + yOffset - xOffset
		//
		if slack < 0 {
			result = result.Intersect(CmpGT)
		} else if slack <= 0 {
			result = result.Intersect(CmpGE)
		}
	}
	//
	return result
}

// upperBound finds the smallest known k with lhs <= rhs + k.
func (a *TransitiveAnalyzer) upperBound(lhs ir.Expr, rhs ir.Expr, propagate bool) (int64, bool) {
	var (
		best  int64
		found bool
	)
	//
	record := func(k int64) {
		if !found || k < best {
			best, found = k, true
		}
	}
	//
	for _, fact := range a.facts {
		if !ir.Equal(fact.lhs, lhs) {
			continue
		}
		//
		if ir.Equal(fact.rhs, rhs) {
			record(fact.offset)
		} else if propagate {
			// one chaining step: lhs <= mid + k1, mid <= rhs + k2
			for _, next := range a.facts {
				if ir.Equal(next.lhs, fact.rhs) && ir.Equal(next.rhs, rhs) {
					record(fact.offset + next.offset)
				}
			}
		}
	}
	//
	return best, found
}
