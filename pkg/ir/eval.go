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
	gomath "math"

	"github.com/consensys/go-arith/pkg/util/math"
)

// Environment binds free variables to scalar integer values for evaluation.
type Environment map[string]int64

// Eval evaluates a scalar integer or boolean expression under a given
// environment.  It returns an error when the expression is undefined under
// the environment (division by zero, unbound variable) or falls outside the
// evaluable fragment (floats, vectors, opaque calls).
func Eval(e Expr, env Environment) (int64, error) {
	switch n := e.(type) {
	case *IntLit:
		return n.Value, nil
	case *Var:
		if val, ok := env[n.Name]; ok {
			return Wrap(n.DType, val), nil
		}
		//
		return 0, fmt.Errorf("unbound variable %q", n.Name)
	case *Add:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return x + y, nil })
	case *Sub:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return x - y, nil })
	case *Mul:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return x * y, nil })
	case *Div:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			//
			return math.TruncDiv(x, y), nil
		})
	case *Mod:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			//
			return math.TruncMod(x, y), nil
		})
	case *FloorDiv:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			//
			return math.FloorDiv(x, y), nil
		})
	case *FloorMod:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			//
			return math.FloorMod(x, y), nil
		})
	case *Min:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return min(x, y), nil })
	case *Max:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return max(x, y), nil })
	case *EQ:
		return evalCompare(n.A, n.B, env, func(x, y int64) bool { return x == y })
	case *NE:
		return evalCompare(n.A, n.B, env, func(x, y int64) bool { return x != y })
	case *LT:
		return evalCompare(n.A, n.B, env, func(x, y int64) bool { return x < y })
	case *LE:
		return evalCompare(n.A, n.B, env, func(x, y int64) bool { return x <= y })
	case *GT:
		return evalCompare(n.A, n.B, env, func(x, y int64) bool { return x > y })
	case *GE:
		return evalCompare(n.A, n.B, env, func(x, y int64) bool { return x >= y })
	case *And:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return x & y, nil })
	case *Or:
		return evalBinary(n.A, n.B, env, func(x, y int64) (int64, error) { return x | y, nil })
	case *Not:
		val, err := Eval(n.A, env)
		return 1 - val, err
	case *Select:
		return evalSelect(n.Cond, n.T, n.F, env)
	case *Cast:
		val, err := Eval(n.Value, env)
		//
		if err != nil {
			return 0, err
		}
		//
		return Wrap(n.DType, val), nil
	case *Let:
		val, err := Eval(n.Value, env)
		//
		if err != nil {
			return 0, err
		}
		//
		inner := Environment{}
		for k, v := range env {
			inner[k] = v
		}
		//
		inner[n.Var.Name] = val
		//
		return Eval(n.Body, inner)
	case *Call:
		return evalCall(n, env)
	}
	//
	return 0, fmt.Errorf("cannot evaluate %s", e)
}

func evalBinary(a Expr, b Expr, env Environment,
	fn func(int64, int64) (int64, error)) (int64, error) {
	//
	x, err := Eval(a, env)
	if err != nil {
		return 0, err
	}
	//
	y, err := Eval(b, env)
	if err != nil {
		return 0, err
	}
	//
	val, err := fn(x, y)
	if err != nil {
		return 0, err
	}
	//
	return Wrap(a.Type(), val), nil
}

func evalCompare(a Expr, b Expr, env Environment, fn func(int64, int64) bool) (int64, error) {
	x, err := Eval(a, env)
	if err != nil {
		return 0, err
	}
	//
	y, err := Eval(b, env)
	if err != nil {
		return 0, err
	}
	//
	if fn(x, y) {
		return 1, nil
	}
	//
	return 0, nil
}

func evalSelect(cond Expr, t Expr, f Expr, env Environment) (int64, error) {
	c, err := Eval(cond, env)
	//
	if err != nil {
		return 0, err
	}
	// both arms must be defined
	tv, err := Eval(t, env)
	if err != nil {
		return 0, err
	}
	//
	fv, err := Eval(f, env)
	if err != nil {
		return 0, err
	}
	//
	if c != 0 {
		return tv, nil
	}
	//
	return fv, nil
}

func evalCall(n *Call, env Environment) (int64, error) {
	switch n.Op {
	case "likely":
		return Eval(n.Args[0], env)
	case "shift_left":
		return evalBinary(n.Args[0], n.Args[1], env,
			func(x, y int64) (int64, error) { return x << uint(y), nil })
	case "shift_right":
		return evalBinary(n.Args[0], n.Args[1], env,
			func(x, y int64) (int64, error) { return x >> uint(y), nil })
	case "clz":
		val, err := Eval(n.Args[0], env)
		//
		if err != nil {
			return 0, err
		}
		//
		return Clz(n.Args[0].Type(), val), nil
	case "if_then_else":
		c, err := Eval(n.Args[0], env)
		//
		if err != nil {
			return 0, err
		}
		//
		if c != 0 {
			return Eval(n.Args[1], env)
		}
		//
		return Eval(n.Args[2], env)
	}
	//
	return 0, fmt.Errorf("cannot evaluate call to %q", n.Op)
}

// Clz counts the leading zero bits of a value at a given width.
func Clz(dtype DataType, val int64) int64 {
	bits := int64(dtype.Bits)
	//
	if val == 0 {
		return bits
	}
	//
	for i := bits - 1; i >= 0; i-- {
		if val&(int64(1)<<i) != 0 {
			return bits - i - 1
		}
	}
	// unreachable for non-zero values
	panic("unreachable")
}

// Ceil rounds a float up to the nearest integer, as used by the ceil
// builtin.
func Ceil(val float64) float64 { return gomath.Ceil(val) }

// Log2 returns the base-2 logarithm, as used by the log2 builtin.
func Log2(val float64) float64 { return gomath.Log2(val) }
