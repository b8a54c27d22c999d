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

// Var represents a free variable.  Variables are identified by name: two Var
// nodes with the same name and type are interchangeable.
type Var struct {
	Name  string
	DType DataType
}

// NewVar constructs a variable of a given type.
func NewVar(name string, dtype DataType) *Var {
	return &Var{name, dtype}
}

// IndexVar constructs a variable of the default index type.
func IndexVar(name string) *Var {
	return NewVar(name, Int32)
}

// Type implementation for the Expr interface.
func (p *Var) Type() DataType { return p.DType }

func (p *Var) String() string {
	if p.DType == Int32 {
		return p.Name
	}
	//
	return p.Name + ":" + p.DType.String()
}
