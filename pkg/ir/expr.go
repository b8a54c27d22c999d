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

// Expr represents an immutable expression tree.  Expressions are shared by
// reference and never mutated in place: passes which change an expression
// rebuild the affected spine, sharing unchanged children.
type Expr interface {
	// Type returns the datatype this expression evaluates to.
	Type() DataType
	// String returns the printable form of this expression.  The printable
	// form round-trips through the syntax package.
	String() string
}

// IsConstInt extracts the value of an integer (or boolean) literal, or
// returns false if the expression is not a scalar integer literal.
func IsConstInt(e Expr) (int64, bool) {
	if c, ok := e.(*IntLit); ok && !c.Type().IsVector() {
		return c.Value, true
	}
	//
	return 0, false
}

// IsConstNumber determines whether an expression is a scalar integer or
// floating point literal.
func IsConstNumber(e Expr) bool {
	switch e.(type) {
	case *IntLit, *FloatLit:
		return !e.Type().IsVector()
	}
	//
	return false
}
