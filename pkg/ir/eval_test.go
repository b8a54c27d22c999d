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
	"testing"
)

func TestEvalConst_1(t *testing.T) {
	CheckEval(t, Index(1), nil, 1)
}

func TestEvalAdd_1(t *testing.T) {
	e := &Add{A: IndexVar("x"), B: Index(2)}
	CheckEval(t, e, Environment{"x": 3}, 5)
}

func TestEvalSub_1(t *testing.T) {
	e := &Sub{A: Index(1), B: IndexVar("x")}
	CheckEval(t, e, Environment{"x": 3}, -2)
}

func TestEvalDiv_1(t *testing.T) {
	e := &Div{A: Index(-7), B: Index(2)}
	CheckEval(t, e, nil, -3)
}

func TestEvalDiv_2(t *testing.T) {
	e := &Div{A: Index(1), B: Index(0)}
	//
	if _, err := Eval(e, nil); err == nil {
		t.Errorf("expected division by zero to be undefined")
	}
}

func TestEvalFloorDiv_1(t *testing.T) {
	e := &FloorDiv{A: Index(-7), B: Index(2)}
	CheckEval(t, e, nil, -4)
}

func TestEvalFloorMod_1(t *testing.T) {
	e := &FloorMod{A: Index(-7), B: Index(2)}
	CheckEval(t, e, nil, 1)
}

func TestEvalMinMax_1(t *testing.T) {
	e := &Min{A: IndexVar("x"), B: Index(2)}
	CheckEval(t, e, Environment{"x": 7}, 2)
}

func TestEvalSelect_1(t *testing.T) {
	e := &Select{Cond: &LT{A: IndexVar("x"), B: Index(0)}, T: Index(1), F: Index(2)}
	CheckEval(t, e, Environment{"x": -1}, 1)
	CheckEval(t, e, Environment{"x": 1}, 2)
}

func TestEvalLet_1(t *testing.T) {
	v := IndexVar("t")
	e := &Let{Var: v, Value: Index(5), Body: &Add{A: v, B: v}}
	CheckEval(t, e, nil, 10)
}

func TestEvalCast_1(t *testing.T) {
	e := &Cast{DType: Int8, Value: Index(200)}
	CheckEval(t, e, nil, -56)
}

func TestEvalNot_1(t *testing.T) {
	e := &Not{A: &LT{A: Index(1), B: Index(2)}}
	CheckEval(t, e, nil, 0)
}

func TestEvalClz_1(t *testing.T) {
	e := NewCall(Int32, "clz", Index(1))
	CheckEval(t, e, nil, 31)
}

func TestEvalUnbound_1(t *testing.T) {
	if _, err := Eval(IndexVar("x"), nil); err == nil {
		t.Errorf("expected unbound variable to be undefined")
	}
}

// ===================================================================

func CheckEval(t *testing.T, e Expr, env Environment, val int64) {
	actual, err := Eval(e, env)
	//
	if err != nil {
		t.Errorf("evaluation of %s failed: %s", e, err)
	} else if actual != val {
		t.Errorf("evaluation of %s gave %d, expected %d", e, actual, val)
	}
}
