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

// Equal determines whether two expressions are structurally identical,
// including the datatypes of their leaves.  Pointer-identical expressions
// are trivially equal.
func Equal(a Expr, b Expr) bool {
	if a == b {
		return true
	}
	//
	switch x := a.(type) {
	case *IntLit:
		y, ok := b.(*IntLit)
		return ok && x.DType == y.DType && x.Value == y.Value
	case *FloatLit:
		y, ok := b.(*FloatLit)
		return ok && x.DType == y.DType && x.Value == y.Value
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name && x.DType == y.DType
	case *Cast:
		y, ok := b.(*Cast)
		return ok && x.DType == y.DType && Equal(x.Value, y.Value)
	case *Let:
		y, ok := b.(*Let)
		return ok && Equal(x.Var, y.Var) && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *Call:
		y, ok := b.(*Call)
		//
		if !ok || x.Op != y.Op || x.DType != y.DType || len(x.Args) != len(y.Args) {
			return false
		}
		//
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		//
		return true
	}
	// remaining kinds are determined by their children
	if kindOf(a) != kindOf(b) {
		return false
	}
	//
	as, bs := Children(a), Children(b)
	//
	if len(as) != len(bs) || len(as) == 0 {
		return false
	}
	//
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	//
	return true
}

// kindOf maps an expression to a small tag identifying its node kind.
func kindOf(e Expr) int {
	switch e.(type) {
	case *IntLit:
		return 1
	case *FloatLit:
		return 2
	case *Var:
		return 3
	case *Add:
		return 4
	case *Sub:
		return 5
	case *Mul:
		return 6
	case *Div:
		return 7
	case *Mod:
		return 8
	case *FloorDiv:
		return 9
	case *FloorMod:
		return 10
	case *Min:
		return 11
	case *Max:
		return 12
	case *EQ:
		return 13
	case *NE:
		return 14
	case *LT:
		return 15
	case *LE:
		return 16
	case *GT:
		return 17
	case *GE:
		return 18
	case *And:
		return 19
	case *Or:
		return 20
	case *Not:
		return 21
	case *Select:
		return 22
	case *Broadcast:
		return 23
	case *Ramp:
		return 24
	case *Cast:
		return 25
	case *Let:
		return 26
	case *Call:
		return 27
	}
	//
	return 0
}
