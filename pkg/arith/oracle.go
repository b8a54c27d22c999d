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
	"fmt"

	"github.com/consensys/go-arith/pkg/ir"
	"github.com/consensys/go-arith/pkg/util/math"
)

// PosInf is the sentinel for an unbounded maximum in a ConstIntBound.
const PosInf = math.PosInf

// NegInf is the sentinel for an unbounded minimum in a ConstIntBound.
const NegInf = math.NegInf

// ConstIntBound is a sound enclosing range for the values an integer
// expression can take.  Either end may be infinite.
type ConstIntBound struct {
	MinValue int64
	MaxValue int64
}

// Everything is the bound which says nothing.
func Everything() ConstIntBound {
	return ConstIntBound{NegInf, PosInf}
}

// SinglePoint is the bound of an expression known to be an exact value.
func SinglePoint(val int64) ConstIntBound {
	return ConstIntBound{val, val}
}

func (b ConstIntBound) String() string {
	return math.Interval{Min: b.MinValue, Max: b.MaxValue}.String()
}

// ModularSet describes the congruence class coeff*Z + base.  A coefficient
// of zero means the expression is exactly base; a coefficient of one says
// nothing.
type ModularSet struct {
	Coeff int64
	Base  int64
}

// TrivialModularSet is the modular set which says nothing.
func TrivialModularSet() ModularSet {
	return ModularSet{1, 0}
}

func (m ModularSet) String() string {
	return fmt.Sprintf("%d*Z + %d", m.Coeff, m.Base)
}

// CompareResult is a bitset over the three mutually exclusive orderings of
// two integers.  Intersecting two results is bitwise AND; CmpUnknown is the
// top of the lattice and CmpEQ/CmpLT/CmpGT are maximally informative.
type CompareResult uint8

const (
	// CmpInconsistent is the empty set of orderings.
	CmpInconsistent CompareResult = 0
	// CmpEQ means the operands are equal.
	CmpEQ CompareResult = 1
	// CmpLT means the left operand is strictly less.
	CmpLT CompareResult = 2
	// CmpLE means the left operand is less or equal.
	CmpLE CompareResult = 3
	// CmpGT means the left operand is strictly greater.
	CmpGT CompareResult = 4
	// CmpGE means the left operand is greater or equal.
	CmpGE CompareResult = 5
	// CmpNE means the operands differ.
	CmpNE CompareResult = 6
	// CmpUnknown places no constraint on the ordering.
	CmpUnknown CompareResult = 7
)

// Intersect combines two comparison results, keeping only orderings allowed
// by both.
func (r CompareResult) Intersect(o CompareResult) CompareResult {
	return r & o
}

// Decided determines whether this result pins down a single ordering.
func (r CompareResult) Decided() bool {
	return r == CmpEQ || r == CmpLT || r == CmpGT
}

func (r CompareResult) String() string {
	switch r {
	case CmpInconsistent:
		return "inconsistent"
	case CmpEQ:
		return "=="
	case CmpLT:
		return "<"
	case CmpLE:
		return "<="
	case CmpGT:
		return ">"
	case CmpGE:
		return ">="
	case CmpNE:
		return "!="
	default:
		return "?"
	}
}

// Oracles is the contract between the rewrite simplifier and the analyses
// owned by its enclosing analyzer.  Every method may answer "don't know"
// (the trivial bound, the trivial modular set, CmpUnknown, false); the
// simplifier treats such answers as "rule does not fire".
type Oracles interface {
	// ConstIntBound returns a sound range for an integer expression.
	ConstIntBound(e ir.Expr) ConstIntBound
	// ModularSet returns a sound congruence class for an integer expression.
	ModularSet(e ir.Expr) ModularSet
	// Compare consults recorded inequalities between two expressions,
	// optionally propagating through intermediate expressions.
	Compare(x ir.Expr, y ir.Expr, propagate bool) CompareResult
	// Bind registers a variable as equal to a given value, for example when
	// a trivial let binding is inlined.
	Bind(v *ir.Var, value ir.Expr)
	// EnterScopedConstraint asserts a constraint for the duration of a
	// scope, returning the function which exits the scope.  Scopes must be
	// exited in LIFO order.
	EnterScopedConstraint(c ir.Expr) func()
	// CanProve determines whether a predicate is known to always hold.
	CanProve(e ir.Expr) bool
}

// NullOracles is the oracle set which knows nothing.  It backs simplifier
// instances constructed without an analyzer, and keeps unit tests of the
// rewrite rules independent of the default analyses.
type NullOracles struct{}

// ConstIntBound implementation for the Oracles interface.
func (p NullOracles) ConstIntBound(e ir.Expr) ConstIntBound {
	if c, ok := ir.IsConstInt(e); ok {
		return SinglePoint(c)
	}
	//
	return Everything()
}

// ModularSet implementation for the Oracles interface.
func (p NullOracles) ModularSet(e ir.Expr) ModularSet {
	if c, ok := ir.IsConstInt(e); ok {
		return ModularSet{0, c}
	}
	//
	return TrivialModularSet()
}

// Compare implementation for the Oracles interface.
func (p NullOracles) Compare(x ir.Expr, y ir.Expr, propagate bool) CompareResult {
	return CmpUnknown
}

// Bind implementation for the Oracles interface.
func (p NullOracles) Bind(v *ir.Var, value ir.Expr) {}

// EnterScopedConstraint implementation for the Oracles interface.
func (p NullOracles) EnterScopedConstraint(c ir.Expr) func() {
	return func() {}
}

// CanProve implementation for the Oracles interface.
func (p NullOracles) CanProve(e ir.Expr) bool {
	c, ok := ir.IsConstInt(e)
	return ok && c != 0
}
