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

// Package syntax parses the printable form of expressions back into the IR.
// The grammar mirrors what the IR printers emit, so expressions round-trip.
package syntax

// Expression is the grammar root: a disjunction of conjunctions.
type Expression struct {
	Lhs *Conjunction   `parser:"@@"`
	Rhs []*Conjunction `parser:"( '||' @@ )*"`
}

// Conjunction is a conjunction of comparisons.
type Conjunction struct {
	Lhs *Comparison   `parser:"@@"`
	Rhs []*Comparison `parser:"( '&&' @@ )*"`
}

// Comparison is an optional comparison between two sums.
type Comparison struct {
	Lhs *Sum    `parser:"@@"`
	Op  string  `parser:"( @( '==' | '!=' | '<=' | '>=' | '<' | '>' )"`
	Rhs *Sum    `parser:"  @@ )?"`
}

// Sum is a left-associative chain of additions and subtractions.
type Sum struct {
	Lhs *Term      `parser:"@@"`
	Rhs []*SumTail `parser:"@@*"`
}

// SumTail is one addition or subtraction in a Sum.
type SumTail struct {
	Op  string `parser:"@( '+' | '-' )"`
	Rhs *Term  `parser:"@@"`
}

// Term is a left-associative chain of multiplications and divisions.
type Term struct {
	Lhs *Unary      `parser:"@@"`
	Rhs []*TermTail `parser:"@@*"`
}

// TermTail is one multiplication or division in a Term.
type TermTail struct {
	Op  string `parser:"@( '*' | '/' )"`
	Rhs *Unary `parser:"@@"`
}

// Unary is a primary expression under zero or more prefix operators.
type Unary struct {
	Op   string   `parser:"( @( '!' | '-' )"`
	Expr *Unary   `parser:"  @@ )"`
	Atom *Primary `parser:"| @@"`
}

// Primary is a literal, let binding, call, variable or parenthesized
// expression.
type Primary struct {
	Float    *float64    `parser:"  @Float"`
	Int      *int64      `parser:"| @Int"`
	True     bool        `parser:"| @'true'"`
	False    bool        `parser:"| @'false'"`
	Let      *LetBinding `parser:"| @@"`
	Call     *CallExpr   `parser:"| @@"`
	Variable *VarRef     `parser:"| @@"`
	Paren    *Expression `parser:"| '(' @@ ')'"`
}

// LetBinding binds a variable within a body.
type LetBinding struct {
	Name  string      `parser:"'let' @Ident '=' "`
	Value *Expression `parser:"@@"`
	Body  *Expression `parser:"'in' @@"`
}

// CallExpr applies a named operation (builtin, min/max, division family or
// datatype cast) to arguments.
type CallExpr struct {
	Name string        `parser:"@Ident '('"`
	Args []*Expression `parser:"( @@ ( ',' @@ )* )? ')'"`
}

// VarRef references a variable with an optional datatype annotation.
type VarRef struct {
	Name  string `parser:"@Ident"`
	DType string `parser:"( ':' @Ident )?"`
}
