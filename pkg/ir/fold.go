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

// foldBinary folds a binary operation whose operands are both scalar
// literals of the same type.  The integer (resp. float) function returns
// false when no fold is possible, e.g. on division by zero; integer results
// wrap on the declared width.
func foldBinary(a Expr, b Expr, ifn func(int64, int64) (int64, bool),
	ffn func(float64, float64) (float64, bool)) (Expr, bool) {
	//
	if la, ok := a.(*IntLit); ok && !la.DType.IsVector() {
		if lb, ok := b.(*IntLit); ok && la.DType == lb.DType {
			if v, ok := ifn(la.Value, lb.Value); ok {
				return Const64(la.DType, v), true
			}
		}
	} else if fa, ok := a.(*FloatLit); ok && ffn != nil && !fa.DType.IsVector() {
		if fb, ok := b.(*FloatLit); ok && fa.DType == fb.DType {
			if v, ok := ffn(fa.Value, fb.Value); ok {
				return ConstFloat(fa.DType, v), true
			}
		}
	}
	//
	return nil, false
}

// foldCompare folds a comparison whose operands are both scalar literals of
// the same type, producing a boolean literal.
func foldCompare(a Expr, b Expr, ifn func(int64, int64) bool,
	ffn func(float64, float64) bool) (Expr, bool) {
	//
	if la, ok := a.(*IntLit); ok && !la.DType.IsVector() {
		if lb, ok := b.(*IntLit); ok && la.DType == lb.DType {
			return ConstBool(ifn(la.Value, lb.Value)), true
		}
	} else if fa, ok := a.(*FloatLit); ok && !fa.DType.IsVector() {
		if fb, ok := b.(*FloatLit); ok && fa.DType == fb.DType {
			return ConstBool(ffn(fa.Value, fb.Value)), true
		}
	}
	//
	return nil, false
}

func isZeroLit(e Expr) bool {
	c, ok := e.(*IntLit)
	return ok && !c.DType.IsVector() && c.Value == 0 && !c.DType.IsBool()
}

func isOneLit(e Expr) bool {
	c, ok := e.(*IntLit)
	return ok && !c.DType.IsVector() && c.Value == 1 && !c.DType.IsBool()
}
