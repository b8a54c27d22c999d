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

// Mul represents the multiplication of two expressions.
type Mul struct{ A, B Expr }

// NewMul constructs a multiplication, eagerly folding literal operands and
// the multiplicative identity and absorber.
func NewMul(a Expr, b Expr) Expr {
	if c, ok := foldBinary(a, b, func(x, y int64) (int64, bool) { return x * y, true },
		func(x, y float64) (float64, bool) { return x * y, true }); ok {
		return c
	} else if isOneLit(a) {
		return b
	} else if isOneLit(b) {
		return a
	} else if isZeroLit(a) {
		return a
	} else if isZeroLit(b) {
		return b
	}
	//
	return &Mul{a, b}
}

// Type implementation for the Expr interface.
func (p *Mul) Type() DataType { return p.A.Type() }

func (p *Mul) String() string {
	return fmt.Sprintf("(%s * %s)", p.A, p.B)
}
