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
	"strconv"
	"strings"
)

// IntLit represents an integer literal of a given width.  Boolean literals
// are integer literals of the Bool datatype holding zero or one.
type IntLit struct {
	DType DataType
	Value int64
}

// Const64 constructs an integer literal of a given type, wrapping the value
// on the declared width.
func Const64(dtype DataType, val int64) *IntLit {
	return &IntLit{dtype, Wrap(dtype, val)}
}

// Index constructs a literal of the default index type.
func Index(val int64) *IntLit {
	return Const64(Int32, val)
}

// ConstBool constructs a boolean literal.
func ConstBool(val bool) *IntLit {
	if val {
		return &IntLit{Bool, 1}
	}
	//
	return &IntLit{Bool, 0}
}

// True is the boolean literal "true".
func True() *IntLit { return ConstBool(true) }

// False is the boolean literal "false".
func False() *IntLit { return ConstBool(false) }

// Zero constructs the zero value of a given type, broadcasting over vector
// types.
func Zero(dtype DataType) Expr {
	if dtype.IsFloat() {
		return splat(dtype, &FloatLit{dtype.Elem(), 0})
	}
	//
	return splat(dtype, &IntLit{dtype.Elem(), 0})
}

// One constructs the one value of a given type, broadcasting over vector
// types.
func One(dtype DataType) Expr {
	if dtype.IsFloat() {
		return splat(dtype, &FloatLit{dtype.Elem(), 1})
	}
	//
	return splat(dtype, &IntLit{dtype.Elem(), 1})
}

// splat lifts a scalar literal over the lanes of a vector type.
func splat(dtype DataType, val Expr) Expr {
	if !dtype.IsVector() {
		return val
	} else if dtype.Lanes > 0 {
		return NewBroadcast(val, Index(int64(dtype.Lanes)))
	}
	// scalable lanes reconstruct as vscale*k
	vscale := NewCall(Int32, "vscale")
	//
	if dtype.Lanes == -1 {
		return NewBroadcast(val, vscale)
	}
	//
	return NewBroadcast(val, NewMul(vscale, Index(int64(-dtype.Lanes))))
}

// Wrap reduces a value into the representable range of an integer datatype,
// following two's complement wrap-around semantics.
func Wrap(dtype DataType, val int64) int64 {
	switch {
	case dtype.Kind == KindBool:
		if val != 0 {
			return 1
		}
		//
		return 0
	case dtype.Bits >= 64:
		return val
	case dtype.Kind == KindUint:
		return val & (1<<dtype.Bits - 1)
	default:
		shift := 64 - dtype.Bits
		return (val << shift) >> shift
	}
}

// Type implementation for the Expr interface.
func (p *IntLit) Type() DataType { return p.DType }

func (p *IntLit) String() string {
	if p.DType.IsBool() {
		if p.Value != 0 {
			return "true"
		}
		//
		return "false"
	} else if p.DType == Int32 {
		return strconv.FormatInt(p.Value, 10)
	}
	//
	return fmt.Sprintf("%s(%d)", p.DType, p.Value)
}

// FloatLit represents a floating point literal of a given width.
type FloatLit struct {
	DType DataType
	Value float64
}

// ConstFloat constructs a floating point literal of a given type.
func ConstFloat(dtype DataType, val float64) *FloatLit {
	return &FloatLit{dtype, val}
}

// Type implementation for the Expr interface.
func (p *FloatLit) Type() DataType { return p.DType }

func (p *FloatLit) String() string {
	s := strconv.FormatFloat(p.Value, 'f', -1, 64)
	//
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	//
	if p.DType == Float32 {
		return s
	}
	//
	return fmt.Sprintf("%s(%s)", p.DType, s)
}
