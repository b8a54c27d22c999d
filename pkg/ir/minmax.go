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

// Min represents the lesser of two expressions.
type Min struct{ A, B Expr }

// NewMin constructs a minimum, eagerly folding literal operands.
func NewMin(a Expr, b Expr) Expr {
	if c, ok := foldBinary(a, b, func(x, y int64) (int64, bool) { return min(x, y), true },
		func(x, y float64) (float64, bool) { return min(x, y), true }); ok {
		return c
	}
	//
	return &Min{a, b}
}

// Type implementation for the Expr interface.
func (p *Min) Type() DataType { return p.A.Type() }

func (p *Min) String() string {
	return fmt.Sprintf("min(%s, %s)", p.A, p.B)
}

// Max represents the greater of two expressions.
type Max struct{ A, B Expr }

// NewMax constructs a maximum, eagerly folding literal operands.
func NewMax(a Expr, b Expr) Expr {
	if c, ok := foldBinary(a, b, func(x, y int64) (int64, bool) { return max(x, y), true },
		func(x, y float64) (float64, bool) { return max(x, y), true }); ok {
		return c
	}
	//
	return &Max{a, b}
}

// Type implementation for the Expr interface.
func (p *Max) Type() DataType { return p.A.Type() }

func (p *Max) String() string {
	return fmt.Sprintf("max(%s, %s)", p.A, p.B)
}
