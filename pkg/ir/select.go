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

// Select represents the choice between two expressions based on a boolean
// condition.  Unlike if_then_else, both arms may be evaluated.
type Select struct {
	Cond Expr
	T    Expr
	F    Expr
}

// NewSelect constructs a selection, eagerly folding a literal condition.
func NewSelect(cond Expr, t Expr, f Expr) Expr {
	if v, ok := boolLit(cond); ok {
		if v {
			return t
		}
		//
		return f
	}
	//
	return &Select{cond, t, f}
}

// Type implementation for the Expr interface.
func (p *Select) Type() DataType { return p.T.Type() }

func (p *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", p.Cond, p.T, p.F)
}
