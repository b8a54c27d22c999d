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

// Analyzer owns the default analyses and a rewrite simplifier wired to
// them.  Entering a constraint on the analyzer layers it into every
// sub-analysis for the duration of the scope.
//
// An analyzer is single-threaded; independent analyzers may run in parallel
// on shared expressions.
type Analyzer struct {
	bound      *BoundAnalyzer
	modular    *ModularAnalyzer
	transitive *TransitiveAnalyzer
	simplifier *Simplifier
}

// NewAnalyzer constructs an analyzer with empty analyses.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		bound:      NewBoundAnalyzer(),
		modular:    NewModularAnalyzer(),
		transitive: NewTransitiveAnalyzer(),
	}
	//
	a.simplifier = NewSimplifier(a)
	//
	return a
}

// Simplifier returns the rewrite simplifier owned by this analyzer.
func (a *Analyzer) Simplifier() *Simplifier { return a.simplifier }

// Simplify rewrites an expression under the current constraints.
func (a *Analyzer) Simplify(e ir.Expr) ir.Expr { return a.simplifier.Simplify(e) }

// ConstIntBound implementation for the Oracles interface.
func (a *Analyzer) ConstIntBound(e ir.Expr) ConstIntBound {
	return a.bound.Bound(e)
}

// ModularSet implementation for the Oracles interface.  Congruence algebra
// is valid over all of Z; the sign-sensitive truncated-division rewrites
// carry their own non-negativity guards.
func (a *Analyzer) ModularSet(e ir.Expr) ModularSet {
	return a.modular.Of(e)
}

// Compare implementation for the Oracles interface.
func (a *Analyzer) Compare(x ir.Expr, y ir.Expr, propagate bool) CompareResult {
	return a.transitive.Compare(x, y, propagate)
}

// Bind implementation for the Oracles interface.  Note that let inlining in
// the simplifier updates its own substitution map directly, so only the
// analyses are informed here.
func (a *Analyzer) Bind(v *ir.Var, value ir.Expr) {
	a.bound.Bind(v, value)
	a.modular.Bind(v, value)
}

// EnterScopedConstraint implementation for the Oracles interface.  The
// constraint is layered into every sub-analysis; the returned exit function
// unwinds them in reverse order and must be called in LIFO order relative
// to other scopes.
func (a *Analyzer) EnterScopedConstraint(c ir.Expr) func() {
	if !c.Type().IsBool() || c.Type().IsVector() {
		return func() {}
	}
	//
	exitBound := a.bound.EnterScopedConstraint(c)
	exitModular := a.modular.EnterScopedConstraint(c)
	exitTransitive := a.transitive.EnterScopedConstraint(c)
	exitLiterals := a.simplifier.EnterConstraint(c)
	//
	return func() {
		exitLiterals()
		exitTransitive()
		exitModular()
		exitBound()
	}
}

// EnterConstraint asserts a constraint until the returned restore function
// is called.  It is the public face of EnterScopedConstraint.
func (a *Analyzer) EnterConstraint(c ir.Expr) func() {
	return a.EnterScopedConstraint(c)
}

// CanProve determines whether a predicate always holds under the current
// constraints.
func (a *Analyzer) CanProve(e ir.Expr) bool {
	res := a.simplifier.Simplify(e)
	//
	if v, ok := ir.IsConstInt(res); ok && res.Type().IsBool() {
		return v != 0
	}
	//
	return false
}

// CanProveEqual determines whether two expressions are always equal.
func (a *Analyzer) CanProveEqual(x ir.Expr, y ir.Expr) bool {
	return a.CanProve(ir.NewEQ(x, y))
}

// CanProveGreaterEqual determines whether an expression is always at least
// a given value.
func (a *Analyzer) CanProveGreaterEqual(e ir.Expr, lower int64) bool {
	return a.simplifier.canProveGreaterEqual(e, lower)
}

// CanProveLess determines whether an expression is always below a given
// value.
func (a *Analyzer) CanProveLess(e ir.Expr, upper int64) bool {
	return a.simplifier.canProveLess(e, upper)
}
