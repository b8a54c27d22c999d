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
package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/consensys/go-arith/pkg/ir"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `\|\||&&|==|!=|<=|>=|[-+*/%()<>!,:=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// datatypes names recognized as cast targets.
var datatypes = map[string]ir.DataType{
	"i8": ir.Int8, "i16": ir.Int16, "i32": ir.Int32, "i64": ir.Int64,
	"u32": ir.Uint32, "u64": ir.Uint64,
	"f32": ir.Float32, "f64": ir.Float64,
	"bool": ir.Bool,
}

// Parse converts the textual form of an expression into the IR.  Variables
// default to the i32 index type unless annotated (e.g. "n:i64"); repeated
// mentions of a variable must agree on its type.
func Parse(input string) (ir.Expr, error) {
	ast, err := exprParser.ParseString("", input)
	//
	if err != nil {
		return nil, err
	}
	//
	b := &builder{vars: make(map[string]*ir.Var)}
	//
	return b.expression(ast)
}

// MustParse is Parse for statically-known inputs, panicking on error.
func MustParse(input string) ir.Expr {
	e, err := Parse(input)
	//
	if err != nil {
		panic(err)
	}
	//
	return e
}

type builder struct {
	vars map[string]*ir.Var
}

func (b *builder) expression(n *Expression) (ir.Expr, error) {
	lhs, err := b.conjunction(n.Lhs)
	//
	if err != nil {
		return nil, err
	}
	//
	for _, r := range n.Rhs {
		rhs, err := b.conjunction(r)
		//
		if err != nil {
			return nil, err
		}
		//
		lhs = ir.NewOr(lhs, rhs)
	}
	//
	return lhs, nil
}

func (b *builder) conjunction(n *Conjunction) (ir.Expr, error) {
	lhs, err := b.comparison(n.Lhs)
	//
	if err != nil {
		return nil, err
	}
	//
	for _, r := range n.Rhs {
		rhs, err := b.comparison(r)
		//
		if err != nil {
			return nil, err
		}
		//
		lhs = ir.NewAnd(lhs, rhs)
	}
	//
	return lhs, nil
}

func (b *builder) comparison(n *Comparison) (ir.Expr, error) {
	lhs, err := b.sum(n.Lhs)
	//
	if err != nil || n.Op == "" {
		return lhs, err
	}
	//
	rhs, err := b.sum(n.Rhs)
	//
	if err != nil {
		return nil, err
	}
	//
	switch n.Op {
	case "==":
		return ir.NewEQ(lhs, rhs), nil
	case "!=":
		return ir.NewNE(lhs, rhs), nil
	case "<":
		return ir.NewLT(lhs, rhs), nil
	case "<=":
		return ir.NewLE(lhs, rhs), nil
	case ">":
		return ir.NewGT(lhs, rhs), nil
	default:
		return ir.NewGE(lhs, rhs), nil
	}
}

func (b *builder) sum(n *Sum) (ir.Expr, error) {
	lhs, err := b.term(n.Lhs)
	//
	if err != nil {
		return nil, err
	}
	//
	for _, tail := range n.Rhs {
		rhs, err := b.term(tail.Rhs)
		//
		if err != nil {
			return nil, err
		}
		//
		if tail.Op == "+" {
			lhs = ir.NewAdd(lhs, rhs)
		} else {
			lhs = ir.NewSub(lhs, rhs)
		}
	}
	//
	return lhs, nil
}

func (b *builder) term(n *Term) (ir.Expr, error) {
	lhs, err := b.unary(n.Lhs)
	//
	if err != nil {
		return nil, err
	}
	//
	for _, tail := range n.Rhs {
		rhs, err := b.unary(tail.Rhs)
		//
		if err != nil {
			return nil, err
		}
		//
		if tail.Op == "*" {
			lhs = ir.NewMul(lhs, rhs)
		} else {
			lhs = ir.NewDiv(lhs, rhs)
		}
	}
	//
	return lhs, nil
}

func (b *builder) unary(n *Unary) (ir.Expr, error) {
	if n.Atom != nil {
		return b.primary(n.Atom)
	}
	//
	inner, err := b.unary(n.Expr)
	//
	if err != nil {
		return nil, err
	}
	//
	if n.Op == "!" {
		return ir.NewNot(inner), nil
	}
	//
	return ir.NewSub(ir.Zero(inner.Type()), inner), nil
}

func (b *builder) primary(n *Primary) (ir.Expr, error) {
	switch {
	case n.Float != nil:
		return ir.ConstFloat(ir.Float32, *n.Float), nil
	case n.Int != nil:
		return ir.Index(*n.Int), nil
	case n.True:
		return ir.ConstBool(true), nil
	case n.False:
		return ir.ConstBool(false), nil
	case n.Let != nil:
		return b.letBinding(n.Let)
	case n.Call != nil:
		return b.call(n.Call)
	case n.Variable != nil:
		return b.variable(n.Variable)
	default:
		return b.expression(n.Paren)
	}
}

func (b *builder) letBinding(n *LetBinding) (ir.Expr, error) {
	value, err := b.expression(n.Value)
	//
	if err != nil {
		return nil, err
	}
	//
	v, err := b.declare(n.Name, value.Type())
	//
	if err != nil {
		return nil, err
	}
	//
	body, err := b.expression(n.Body)
	//
	if err != nil {
		return nil, err
	}
	//
	return ir.NewLet(v, value, body), nil
}

func (b *builder) variable(n *VarRef) (ir.Expr, error) {
	dtype := ir.Int32
	//
	if n.DType != "" {
		var ok bool
		//
		if dtype, ok = datatypes[n.DType]; !ok {
			return nil, fmt.Errorf("unknown datatype %q", n.DType)
		}
	}
	//
	return b.declare(n.Name, dtype)
}

// declare resolves a variable name, enforcing one type per name.
func (b *builder) declare(name string, dtype ir.DataType) (*ir.Var, error) {
	if v, ok := b.vars[name]; ok {
		if v.DType != dtype && dtype != ir.Int32 {
			return nil, fmt.Errorf("variable %q used at both %s and %s", name, v.DType, dtype)
		}
		//
		return v, nil
	}
	//
	v := ir.NewVar(name, dtype)
	b.vars[name] = v
	//
	return v, nil
}

func (b *builder) call(n *CallExpr) (ir.Expr, error) {
	args := make([]ir.Expr, len(n.Args))
	//
	for i, arg := range n.Args {
		a, err := b.expression(arg)
		//
		if err != nil {
			return nil, err
		}
		//
		args[i] = a
	}
	//
	arity := func(want int) error {
		if len(args) != want {
			return fmt.Errorf("%s expects %d arguments, got %d", n.Name, want, len(args))
		}
		//
		return nil
	}
	//
	if dtype, ok := datatypes[n.Name]; ok {
		if err := arity(1); err != nil {
			return nil, err
		}
		//
		return ir.NewCast(dtype, args[0]), nil
	}
	//
	switch n.Name {
	case "min":
		return binaryCall(n.Name, args, ir.NewMin)
	case "max":
		return binaryCall(n.Name, args, ir.NewMax)
	case "truncdiv":
		return binaryCall(n.Name, args, ir.NewDiv)
	case "truncmod":
		return binaryCall(n.Name, args, ir.NewMod)
	case "floordiv":
		return binaryCall(n.Name, args, ir.NewFloorDiv)
	case "floormod":
		return binaryCall(n.Name, args, ir.NewFloorMod)
	case "select":
		if err := arity(3); err != nil {
			return nil, err
		}
		//
		return ir.NewSelect(args[0], args[1], args[2]), nil
	case "broadcast":
		if err := arity(2); err != nil {
			return nil, err
		}
		//
		return ir.NewBroadcast(args[0], args[1]), nil
	case "ramp":
		if err := arity(3); err != nil {
			return nil, err
		}
		//
		return ir.NewRamp(args[0], args[1], args[2]), nil
	case "likely":
		if err := arity(1); err != nil {
			return nil, err
		}
		//
		return ir.NewCall(args[0].Type(), "likely", args...), nil
	case "shift_left", "shift_right":
		if err := arity(2); err != nil {
			return nil, err
		}
		//
		return ir.NewCall(args[0].Type(), n.Name, args...), nil
	case "ceil", "log2":
		if err := arity(1); err != nil {
			return nil, err
		}
		//
		return ir.NewCall(args[0].Type(), n.Name, args...), nil
	case "clz":
		if err := arity(1); err != nil {
			return nil, err
		}
		//
		return ir.NewCall(args[0].Type(), "clz", args...), nil
	case "if_then_else":
		if err := arity(3); err != nil {
			return nil, err
		}
		//
		return ir.NewCall(args[1].Type(), "if_then_else", args...), nil
	case "vscale":
		if err := arity(0); err != nil {
			return nil, err
		}
		//
		return ir.NewCall(ir.Int32, "vscale"), nil
	default:
		// opaque calls keep their arguments but are never rewritten
		dtype := ir.Int32
		//
		if len(args) > 0 {
			dtype = args[0].Type()
		}
		//
		return ir.NewCall(dtype, n.Name, args...), nil
	}
}

func binaryCall(name string, args []ir.Expr,
	mk func(ir.Expr, ir.Expr) ir.Expr) (ir.Expr, error) {
	//
	if len(args) != 2 {
		return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
	}
	//
	return mk(args[0], args[1]), nil
}
