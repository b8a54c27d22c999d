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

// Cast represents the conversion of a value to another datatype.  Integer
// narrowing wraps on the target width.
type Cast struct {
	DType DataType
	Value Expr
}

// NewCast constructs a cast, eagerly folding literal operands.  A cast to
// the value's own type is a no-op.
func NewCast(dtype DataType, value Expr) Expr {
	if value.Type() == dtype {
		return value
	}
	//
	switch c := value.(type) {
	case *IntLit:
		if !c.DType.IsVector() && !dtype.IsVector() {
			if dtype.IsFloat() {
				return ConstFloat(dtype, float64(c.Value))
			}
			//
			return Const64(dtype, c.Value)
		}
	case *FloatLit:
		if !c.DType.IsVector() && !dtype.IsVector() {
			if dtype.IsFloat() {
				return ConstFloat(dtype, c.Value)
			}
			//
			return Const64(dtype, int64(c.Value))
		}
	}
	//
	return &Cast{dtype, value}
}

// Type implementation for the Expr interface.
func (p *Cast) Type() DataType { return p.DType }

func (p *Cast) String() string {
	return fmt.Sprintf("%s(%s)", p.DType, p.Value)
}
