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

func compareType(a Expr) DataType {
	return DataType{KindBool, 1, a.Type().Lanes}
}

// EQ represents an equality comparison.
type EQ struct{ A, B Expr }

// NewEQ constructs an equality comparison, eagerly folding literal operands.
func NewEQ(a Expr, b Expr) Expr {
	if c, ok := foldCompare(a, b, func(x, y int64) bool { return x == y },
		func(x, y float64) bool { return x == y }); ok {
		return c
	}
	//
	return &EQ{a, b}
}

// Type implementation for the Expr interface.
func (p *EQ) Type() DataType { return compareType(p.A) }

func (p *EQ) String() string { return fmt.Sprintf("(%s == %s)", p.A, p.B) }

// NE represents a disequality comparison.
type NE struct{ A, B Expr }

// NewNE constructs a disequality comparison, eagerly folding literal
// operands.
func NewNE(a Expr, b Expr) Expr {
	if c, ok := foldCompare(a, b, func(x, y int64) bool { return x != y },
		func(x, y float64) bool { return x != y }); ok {
		return c
	}
	//
	return &NE{a, b}
}

// Type implementation for the Expr interface.
func (p *NE) Type() DataType { return compareType(p.A) }

func (p *NE) String() string { return fmt.Sprintf("(%s != %s)", p.A, p.B) }

// LT represents a strictly-less-than comparison.
type LT struct{ A, B Expr }

// NewLT constructs a strictly-less-than comparison, eagerly folding literal
// operands.
func NewLT(a Expr, b Expr) Expr {
	if c, ok := foldCompare(a, b, func(x, y int64) bool { return x < y },
		func(x, y float64) bool { return x < y }); ok {
		return c
	}
	//
	return &LT{a, b}
}

// Type implementation for the Expr interface.
func (p *LT) Type() DataType { return compareType(p.A) }

func (p *LT) String() string { return fmt.Sprintf("(%s < %s)", p.A, p.B) }

// LE represents a less-than-or-equal comparison.
type LE struct{ A, B Expr }

// NewLE constructs a less-than-or-equal comparison, eagerly folding literal
// operands.
func NewLE(a Expr, b Expr) Expr {
	if c, ok := foldCompare(a, b, func(x, y int64) bool { return x <= y },
		func(x, y float64) bool { return x <= y }); ok {
		return c
	}
	//
	return &LE{a, b}
}

// Type implementation for the Expr interface.
func (p *LE) Type() DataType { return compareType(p.A) }

func (p *LE) String() string { return fmt.Sprintf("(%s <= %s)", p.A, p.B) }

// GT represents a strictly-greater-than comparison.
type GT struct{ A, B Expr }

// NewGT constructs a strictly-greater-than comparison, eagerly folding
// literal operands.
func NewGT(a Expr, b Expr) Expr {
	if c, ok := foldCompare(a, b, func(x, y int64) bool { return x > y },
		func(x, y float64) bool { return x > y }); ok {
		return c
	}
	//
	return &GT{a, b}
}

// Type implementation for the Expr interface.
func (p *GT) Type() DataType { return compareType(p.A) }

func (p *GT) String() string { return fmt.Sprintf("(%s > %s)", p.A, p.B) }

// GE represents a greater-than-or-equal comparison.
type GE struct{ A, B Expr }

// NewGE constructs a greater-than-or-equal comparison, eagerly folding
// literal operands.
func NewGE(a Expr, b Expr) Expr {
	if c, ok := foldCompare(a, b, func(x, y int64) bool { return x >= y },
		func(x, y float64) bool { return x >= y }); ok {
		return c
	}
	//
	return &GE{a, b}
}

// Type implementation for the Expr interface.
func (p *GE) Type() DataType { return compareType(p.A) }

func (p *GE) String() string { return fmt.Sprintf("(%s >= %s)", p.A, p.B) }
