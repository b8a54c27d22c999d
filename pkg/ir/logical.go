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
package ir

import "fmt"

// And represents logical conjunction.
type And struct{ A, B Expr }

// NewAnd constructs a conjunction, eagerly folding literal operands.  A
// literal operand collapses the conjunction to the other side, or to false.
func NewAnd(a Expr, b Expr) Expr {
	if v, ok := boolLit(a); ok {
		if v {
			return b
		}
		//
		return a
	} else if v, ok := boolLit(b); ok {
		if v {
			return a
		}
		//
		return b
	}
	//
	return &And{a, b}
}

// Type implementation for the Expr interface.
func (p *And) Type() DataType { return p.A.Type() }

func (p *And) String() string { return fmt.Sprintf("(%s && %s)", p.A, p.B) }

// Or represents logical disjunction.
type Or struct{ A, B Expr }

// NewOr constructs a disjunction, eagerly folding literal operands.
func NewOr(a Expr, b Expr) Expr {
	if v, ok := boolLit(a); ok {
		if v {
			return a
		}
		//
		return b
	} else if v, ok := boolLit(b); ok {
		if v {
			return b
		}
		//
		return a
	}
	//
	return &Or{a, b}
}

// Type implementation for the Expr interface.
func (p *Or) Type() DataType { return p.A.Type() }

func (p *Or) String() string { return fmt.Sprintf("(%s || %s)", p.A, p.B) }

// Not represents logical negation.
type Not struct{ A Expr }

// NewNot constructs a negation, eagerly folding a literal operand.
func NewNot(a Expr) Expr {
	if v, ok := boolLit(a); ok {
		return ConstBool(!v)
	}
	//
	return &Not{a}
}

// Type implementation for the Expr interface.
func (p *Not) Type() DataType { return p.A.Type() }

func (p *Not) String() string { return fmt.Sprintf("!%s", p.A) }

// boolLit extracts the value of a scalar boolean literal.
func boolLit(e Expr) (bool, bool) {
	if c, ok := e.(*IntLit); ok && c.DType.IsBool() && !c.DType.IsVector() {
		return c.Value != 0, true
	}
	//
	return false, false
}
