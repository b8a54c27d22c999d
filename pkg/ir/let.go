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

// Let binds a variable to a value within a body expression.
type Let struct {
	Var   *Var
	Value Expr
	Body  Expr
}

// NewLet constructs a let binding.
func NewLet(v *Var, value Expr, body Expr) Expr {
	return &Let{v, value, body}
}

// Type implementation for the Expr interface.
func (p *Let) Type() DataType { return p.Body.Type() }

func (p *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", p.Var, p.Value, p.Body)
}
