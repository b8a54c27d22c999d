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

// Broadcast represents a vector whose lanes all hold the same scalar value.
// The lane count is itself an expression, so that scalable vectors (whose
// length involves the runtime vscale) can be represented.
type Broadcast struct {
	Value Expr
	Lanes Expr
}

// NewBroadcast constructs a broadcast of a scalar value over a lane count.
func NewBroadcast(value Expr, lanes Expr) Expr {
	return &Broadcast{value, lanes}
}

// Type implementation for the Expr interface.
func (p *Broadcast) Type() DataType {
	return p.Value.Type().WithLanes(LaneCount(p.Lanes))
}

func (p *Broadcast) String() string {
	return fmt.Sprintf("broadcast(%s, %s)", p.Value, p.Lanes)
}

// Ramp represents a vector whose ith lane holds base + stride*i.
type Ramp struct {
	Base   Expr
	Stride Expr
	Lanes  Expr
}

// NewRamp constructs a ramp vector from a base, stride and lane count.
func NewRamp(base Expr, stride Expr, lanes Expr) Expr {
	return &Ramp{base, stride, lanes}
}

// Type implementation for the Expr interface.
func (p *Ramp) Type() DataType {
	return p.Base.Type().WithLanes(LaneCount(p.Lanes))
}

func (p *Ramp) String() string {
	return fmt.Sprintf("ramp(%s, %s, %s)", p.Base, p.Stride, p.Lanes)
}

// LaneCount determines the lane count described by a lanes expression: a
// positive count for a literal, or a negative count for a scalable multiple
// of vscale.
func LaneCount(lanes Expr) int {
	if n, ok := IsConstInt(lanes); ok {
		return int(n)
	} else if k, ok := ExtractVscaleFactor(lanes); ok {
		return -int(k)
	}
	// unknown lane shapes are treated as scalable
	return -1
}

// ExtractVscaleFactor matches a lanes expression of the form vscale or
// vscale*c, returning the multiplier.
func ExtractVscaleFactor(lanes Expr) (int64, bool) {
	switch e := lanes.(type) {
	case *Call:
		if e.Op == "vscale" {
			return 1, true
		}
	case *Mul:
		if c, ok := IsConstInt(e.B); ok {
			if f, ok := ExtractVscaleFactor(e.A); ok {
				return f * c, true
			}
		}
	}
	//
	return 0, false
}

// ContainsVscaleCall determines whether any sub-expression is a call to the
// vscale builtin.
func ContainsVscaleCall(e Expr) bool {
	found := false
	//
	Walk(e, func(e Expr) {
		if c, ok := e.(*Call); ok && c.Op == "vscale" {
			found = true
		}
	})
	//
	return found
}
