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

import "github.com/consensys/go-arith/pkg/ir"

// NormalizeBooleanOperators rewrites the boolean spine of an expression so
// that negations are pushed down onto comparisons and flipped comparisons
// are dualized.  It performs a subset of the full simplification, sufficient
// to negate an already-simplified expression:
//
//	!!x        => x
//	!(x || y)  => !x && !y
//	!(x && y)  => !x || !y
//	x >= y     => y <= x        (likewise !(x < y), !(y > x))
//	x > y      => y < x         (likewise !(x <= y), !(y >= x))
//	!(x == y)  => x != y
//	!(x != y)  => x == y
func NormalizeBooleanOperators(e ir.Expr) ir.Expr {
	x, y := anyVar(), anyVar()
	//
	for {
		if matchFresh(not(not(x)), e) {
			e = x.eval()
		} else if matchFresh(not(or(x, y)), e) {
			return ir.NewAnd(NormalizeBooleanOperators(ir.NewNot(x.eval())),
				NormalizeBooleanOperators(ir.NewNot(y.eval())))
		} else if matchFresh(not(and(x, y)), e) {
			return ir.NewOr(NormalizeBooleanOperators(ir.NewNot(x.eval())),
				NormalizeBooleanOperators(ir.NewNot(y.eval())))
		} else if matchFresh(ge(x, y), e) || matchFresh(not(lt(x, y)), e) ||
			matchFresh(not(gt(y, x)), e) {
			return ir.NewLE(y.eval(), x.eval())
		} else if matchFresh(gt(x, y), e) || matchFresh(not(le(x, y)), e) ||
			matchFresh(not(ge(y, x)), e) {
			return ir.NewLT(y.eval(), x.eval())
		} else if matchFresh(not(eq(x, y)), e) {
			return ir.NewNE(x.eval(), y.eval())
		} else if matchFresh(not(ne(x, y)), e) {
			return ir.NewEQ(x.eval(), y.eval())
		} else {
			return e
		}
	}
}

// ExtractConstraints splits a constraint on its top-level conjunctions,
// returning the leaves in source order.
func ExtractConstraints(e ir.Expr) []ir.Expr {
	if c, ok := e.(*ir.And); ok {
		return append(ExtractConstraints(c.A), ExtractConstraints(c.B)...)
	}
	//
	return []ir.Expr{e}
}
