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
	"strings"
)

// Call represents the application of a named builtin operation to zero or
// more arguments.
type Call struct {
	DType DataType
	Op    string
	Args  []Expr
}

// NewCall constructs a call to a named builtin.
func NewCall(dtype DataType, op string, args ...Expr) *Call {
	return &Call{dtype, op, args}
}

// Type implementation for the Expr interface.
func (p *Call) Type() DataType { return p.DType }

func (p *Call) String() string {
	var args []string
	//
	for _, arg := range p.Args {
		args = append(args, arg.String())
	}
	//
	return fmt.Sprintf("%s(%s)", p.Op, strings.Join(args, ", "))
}

// builtinEffects records the effect kind of each recognized builtin.  Calls
// to operations not listed here are assumed to update state, which prevents
// any rewrite from dropping or duplicating them.
var builtinEffects = map[string]Effect{
	"likely":       EffectPure,
	"shift_left":   EffectPure,
	"shift_right":  EffectPure,
	"ceil":         EffectPure,
	"log2":         EffectPure,
	"clz":          EffectPure,
	"if_then_else": EffectPure,
	"vscale":       EffectPure,
}

// CallEffect returns the effect kind of a named builtin.
func CallEffect(op string) Effect {
	if effect, ok := builtinEffects[op]; ok {
		return effect
	}
	//
	return EffectUpdateState
}
