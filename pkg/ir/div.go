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

import (
	"fmt"

	"github.com/consensys/go-arith/pkg/util/math"
)

// Div represents truncated division, which rounds towards zero.
type Div struct{ A, B Expr }

// NewDiv constructs a truncated division, eagerly folding literal operands.
// Division by a zero literal does not fold; the node is kept for a later
// pass to diagnose.
func NewDiv(a Expr, b Expr) Expr {
	if c, ok := foldBinary(a, b, func(x, y int64) (int64, bool) {
		if y == 0 {
			return 0, false
		}
		//
		return math.TruncDiv(x, y), true
	}, func(x, y float64) (float64, bool) { return x / y, true }); ok {
		return c
	} else if isOneLit(b) {
		return a
	}
	//
	return &Div{a, b}
}

// Type implementation for the Expr interface.
func (p *Div) Type() DataType { return p.A.Type() }

func (p *Div) String() string {
	if p.Type().IsFloat() {
		return fmt.Sprintf("(%s / %s)", p.A, p.B)
	}
	//
	return fmt.Sprintf("truncdiv(%s, %s)", p.A, p.B)
}
