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

// ModularAnalyzer computes congruence classes (coeff*Z + base) for integer
// expressions.  The base of a returned set is always normalized into
// [0, coeff) when the coefficient is positive.
type ModularAnalyzer struct {
	// per-variable sets, keyed by name
	sets map[string]ModularSet
}

// NewModularAnalyzer constructs an empty modular analyzer.
func NewModularAnalyzer() *ModularAnalyzer {
	return &ModularAnalyzer{sets: make(map[string]ModularSet)}
}

// Bind registers a variable as equal to a given value.
func (a *ModularAnalyzer) Bind(v *ir.Var, value ir.Expr) {
	a.sets[v.Name] = a.Of(value)
}

// EnterScopedConstraint refines variable congruences from constraints of
// the shape floormod(v, c) == r, returning the function which undoes the
// refinement.
func (a *ModularAnalyzer) EnterScopedConstraint(c ir.Expr) func() {
	saved := make(map[string]ModularSet)
	savedMissing := make(map[string]bool)
	//
	for _, sub := range ExtractConstraints(c) {
		eqn, ok := sub.(*ir.EQ)
		if !ok {
			continue
		}
		//
		m, ok := eqn.A.(*ir.FloorMod)
		if !ok {
			continue
		}
		//
		v, ok := m.A.(*ir.Var)
		if !ok {
			continue
		}
		//
		coeff, ok := ir.IsConstInt(m.B)
		if !ok || coeff <= 0 {
			continue
		}
		//
		base, ok := ir.IsConstInt(eqn.B)
		if !ok {
			continue
		}
		//
		if _, done := saved[v.Name]; !done && !savedMissing[v.Name] {
			if old, had := a.sets[v.Name]; had {
				saved[v.Name] = old
			} else {
				savedMissing[v.Name] = true
			}
		}
		//
		a.sets[v.Name] = normalizeModular(coeff, base)
	}
	//
	return func() {
		for name, old := range saved {
			a.sets[name] = old
		}
		//
		for name := range savedMissing {
			delete(a.sets, name)
		}
	}
}

// Of returns a sound congruence class for an integer expression.
func (a *ModularAnalyzer) Of(e ir.Expr) ModularSet {
	switch n := e.(type) {
	case *ir.IntLit:
		return ModularSet{0, n.Value}
	case *ir.Var:
		if m, ok := a.sets[n.Name]; ok {
			return m
		}
		//
		return TrivialModularSet()
	case *ir.Add:
		return unionAdd(a.Of(n.A), a.Of(n.B), 1)
	case *ir.Sub:
		return unionAdd(a.Of(n.A), a.Of(n.B), -1)
	case *ir.Mul:
		return mulModular(a.Of(n.A), a.Of(n.B))
	case *ir.FloorDiv:
		if c, ok := ir.IsConstInt(n.B); ok && c > 0 {
			m := a.Of(n.A)
			// (kc + b) / c is exact when c divides the coefficient
			if m.Coeff%c == 0 && m.Coeff > 0 {
				return normalizeModular(m.Coeff/c, math.FloorDiv(m.Base, c))
			}
			//
			if m.Coeff == 0 {
				return ModularSet{0, math.FloorDiv(m.Base, c)}
			}
		}
		//
		return TrivialModularSet()
	case *ir.FloorMod:
		if c, ok := ir.IsConstInt(n.B); ok && c > 0 {
			m := a.Of(n.A)
			//
			if m.Coeff == 0 {
				return ModularSet{0, math.FloorMod(m.Base, c)}
			}
			//
			if m.Coeff%c == 0 {
				return ModularSet{0, math.FloorMod(m.Base, c)}
			}
			//
			g := ZeroAwareGCD(m.Coeff, c)
			//
			return normalizeModular(g, m.Base)
		}
		//
		return TrivialModularSet()
	case *ir.Min:
		return joinModular(a.Of(n.A), a.Of(n.B))
	case *ir.Max:
		return joinModular(a.Of(n.A), a.Of(n.B))
	case *ir.Select:
		return joinModular(a.Of(n.T), a.Of(n.F))
	case *ir.Broadcast:
		return a.Of(n.Value)
	case *ir.Cast:
		// widening integer casts preserve congruences
		if n.DType.IsInt() && n.Value.Type().IsInt() && n.DType.Bits >= n.Value.Type().Bits {
			return a.Of(n.Value)
		}
		//
		return TrivialModularSet()
	}
	//
	return TrivialModularSet()
}

// normalizeModular reduces a base into [0, coeff) for positive
// coefficients.
func normalizeModular(coeff int64, base int64) ModularSet {
	if coeff < 0 {
		coeff = -coeff
	}
	//
	if coeff != 0 {
		base = math.FloorMod(base, coeff)
	}
	//
	return ModularSet{coeff, base}
}

// unionAdd combines the congruences of a sum (sign=1) or difference
// (sign=-1).
func unionAdd(x ModularSet, y ModularSet, sign int64) ModularSet {
	base := x.Base + sign*y.Base
	//
	if x.Coeff == 0 && y.Coeff == 0 {
		return ModularSet{0, base}
	}
	//
	coeff := ZeroAwareGCD(x.Coeff, y.Coeff)
	//
	return normalizeModular(coeff, base)
}

// mulModular combines the congruences of a product:
// (c1*k + b1) * (c2*l + b2) expands to terms divisible by
// gcd(c1*c2, c1*b2, c2*b1) plus b1*b2.
func mulModular(x ModularSet, y ModularSet) ModularSet {
	if x.Coeff == 0 && y.Coeff == 0 {
		return ModularSet{0, x.Base * y.Base}
	}
	//
	coeff := ZeroAwareGCD(ZeroAwareGCD(x.Coeff*y.Coeff, x.Coeff*y.Base), y.Coeff*x.Base)
	//
	return normalizeModular(coeff, x.Base*y.Base)
}

// joinModular returns a congruence satisfied by both arguments.
func joinModular(x ModularSet, y ModularSet) ModularSet {
	if x.Coeff == 0 && y.Coeff == 0 && x.Base == y.Base {
		return x
	}
	//
	coeff := ZeroAwareGCD(ZeroAwareGCD(x.Coeff, y.Coeff), abs64(x.Base-y.Base))
	//
	return normalizeModular(coeff, x.Base)
}
