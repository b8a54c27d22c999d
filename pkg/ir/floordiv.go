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

// FloorDiv represents floored division, which rounds towards negative
// infinity.
type FloorDiv struct{ A, B Expr }

// NewFloorDiv constructs a floored division, eagerly folding literal
// operands.  A zero divisor does not fold.
func NewFloorDiv(a Expr, b Expr) Expr {
	if c, ok := foldBinary(a, b, func(x, y int64) (int64, bool) {
		if y == 0 {
			return 0, false
		}
		//
		return math.FloorDiv(x, y), true
	}, nil); ok {
		return c
	} else if isOneLit(b) {
		return a
	}
	//
	return &FloorDiv{a, b}
}

// Type implementation for the Expr interface.
func (p *FloorDiv) Type() DataType { return p.A.Type() }

func (p *FloorDiv) String() string {
	return fmt.Sprintf("floordiv(%s, %s)", p.A, p.B)
}
