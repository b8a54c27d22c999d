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
package arith

import (
	"github.com/consensys/go-arith/pkg/ir"
	"github.com/consensys/go-arith/pkg/util/math"
)

// BoundAnalyzer computes sound integer ranges for expressions, refined by
// variable bindings and scoped constraints.  Results may be loose but never
// exclude an attainable value.
type BoundAnalyzer struct {
	// per-variable ranges, keyed by name
	bounds map[string]math.Interval
}

// NewBoundAnalyzer constructs an empty bound analyzer.
func NewBoundAnalyzer() *BoundAnalyzer {
	return &BoundAnalyzer{bounds: make(map[string]math.Interval)}
}

// Bind registers a variable as equal to a given value.
func (a *BoundAnalyzer) Bind(v *ir.Var, value ir.Expr) {
	a.bounds[v.Name] = a.intervalOf(value)
}

// UpdateBound registers a sound range for a variable, intersecting any
// range already known.
func (a *BoundAnalyzer) UpdateBound(v *ir.Var, bound ConstIntBound) {
	a.refineVar(v.Name, math.Interval{Min: bound.MinValue, Max: bound.MaxValue})
}

// Bound returns a sound range for an integer expression.
func (a *BoundAnalyzer) Bound(e ir.Expr) ConstIntBound {
	iv := a.intervalOf(e)
	return ConstIntBound{iv.Min, iv.Max}
}

// EnterScopedConstraint refines variable ranges according to a constraint,
// returning the function which undoes the refinement.
func (a *BoundAnalyzer) EnterScopedConstraint(c ir.Expr) func() {
	saved := make(map[string]math.Interval)
	savedMissing := make(map[string]bool)
	save := func(name string) {
		if _, done := saved[name]; done || savedMissing[name] {
			return
		}
		//
		if old, ok := a.bounds[name]; ok {
			saved[name] = old
		} else {
			savedMissing[name] = true
		}
	}
	//
	for _, sub := range ExtractConstraints(c) {
		a.applyConstraint(sub, save)
	}
	//
	return func() {
		for name, old := range saved {
			a.bounds[name] = old
		}
		//
		for name := range savedMissing {
			delete(a.bounds, name)
		}
	}
}

// applyConstraint narrows variable ranges using a single comparison of a
// variable (plus constant offset) against a constant.
func (a *BoundAnalyzer) applyConstraint(c ir.Expr, save func(string)) {
	refine := func(e ir.Expr, iv math.Interval) {
		base, offset := ExtractConstantOffset(e)
		// the c-x shape flips the base sign; skip it
		if sn, ok := e.(*ir.Sub); ok {
			if _, lit := sn.A.(*ir.IntLit); lit {
				return
			}
		}
		//
		if v, ok := base.(*ir.Var); ok {
			save(v.Name)
			a.refineVar(v.Name, math.Interval{
				Min: math.AddSat(iv.Min, -offset),
				Max: math.AddSat(iv.Max, -offset),
			})
		}
	}
	//
	switch n := c.(type) {
	case *ir.LT:
		if val, ok := ir.IsConstInt(n.B); ok {
			refine(n.A, math.Interval{Min: math.NegInf, Max: val - 1})
		} else if val, ok := ir.IsConstInt(n.A); ok {
			refine(n.B, math.Interval{Min: val + 1, Max: math.PosInf})
		}
	case *ir.LE:
		if val, ok := ir.IsConstInt(n.B); ok {
			refine(n.A, math.Interval{Min: math.NegInf, Max: val})
		} else if val, ok := ir.IsConstInt(n.A); ok {
			refine(n.B, math.Interval{Min: val, Max: math.PosInf})
		}
	case *ir.GT:
		if val, ok := ir.IsConstInt(n.B); ok {
			refine(n.A, math.Interval{Min: val + 1, Max: math.PosInf})
		} else if val, ok := ir.IsConstInt(n.A); ok {
			refine(n.B, math.Interval{Min: math.NegInf, Max: val - 1})
		}
	case *ir.GE:
		if val, ok := ir.IsConstInt(n.B); ok {
			refine(n.A, math.Interval{Min: val, Max: math.PosInf})
		} else if val, ok := ir.IsConstInt(n.A); ok {
			refine(n.B, math.Interval{Min: math.NegInf, Max: val})
		}
	case *ir.EQ:
		if val, ok := ir.IsConstInt(n.B); ok && !n.A.Type().IsBool() {
			refine(n.A, math.Point(val))
		} else if val, ok := ir.IsConstInt(n.A); ok && !n.B.Type().IsBool() {
			refine(n.B, math.Point(val))
		}
	}
}

func (a *BoundAnalyzer) refineVar(name string, iv math.Interval) {
	if old, ok := a.bounds[name]; ok {
		if narrowed, ok := old.Intersect(iv); ok {
			a.bounds[name] = narrowed
			return
		}
		// contradictory constraints; keep the older range
		return
	}
	//
	a.bounds[name] = iv
}

func (a *BoundAnalyzer) intervalOf(e ir.Expr) math.Interval {
	switch n := e.(type) {
	case *ir.IntLit:
		return math.Point(n.Value)
	case *ir.Var:
		if iv, ok := a.bounds[n.Name]; ok {
			return iv
		}
		//
		if n.DType.IsUint() || n.DType.IsBool() {
			return math.Interval{Min: 0, Max: typeRange(n.DType).Max}
		}
		// Index arithmetic is assumed not to overflow, so unbound
		// variables range over all of Z rather than their storage range.
		return math.INFINITY
	case *ir.Add:
		return a.intervalOf(n.A).Add(a.intervalOf(n.B))
	case *ir.Sub:
		return a.intervalOf(n.A).Sub(a.intervalOf(n.B))
	case *ir.Mul:
		return a.intervalOf(n.A).Mul(a.intervalOf(n.B))
	case *ir.Div:
		return a.divInterval(n.A, n.B, math.TruncDiv)
	case *ir.FloorDiv:
		return a.divInterval(n.A, n.B, math.FloorDiv)
	case *ir.Mod:
		return a.truncModInterval(n.A, n.B)
	case *ir.FloorMod:
		return a.floorModInterval(n.A, n.B)
	case *ir.Min:
		x, y := a.intervalOf(n.A), a.intervalOf(n.B)
		return math.Interval{Min: min(x.Min, y.Min), Max: min(x.Max, y.Max)}
	case *ir.Max:
		x, y := a.intervalOf(n.A), a.intervalOf(n.B)
		return math.Interval{Min: max(x.Min, y.Min), Max: max(x.Max, y.Max)}
	case *ir.Select:
		return a.intervalOf(n.T).Union(a.intervalOf(n.F))
	case *ir.Cast:
		inner := a.intervalOf(n.Value)
		//
		if inner.Within(typeRange(n.DType)) {
			return inner
		}
		//
		return typeRange(n.DType)
	case *ir.Broadcast:
		return a.intervalOf(n.Value)
	case *ir.Ramp:
		if lanes, ok := ir.IsConstInt(n.Lanes); ok {
			base, stride := a.intervalOf(n.Base), a.intervalOf(n.Stride)
			last := base.Add(stride.Mul(math.Interval{Min: 0, Max: lanes - 1}))
			//
			return base.Union(last)
		}
		//
		return math.INFINITY
	case *ir.Let:
		old, had := a.bounds[n.Var.Name]
		a.bounds[n.Var.Name] = a.intervalOf(n.Value)
		iv := a.intervalOf(n.Body)
		//
		if had {
			a.bounds[n.Var.Name] = old
		} else {
			delete(a.bounds, n.Var.Name)
		}
		//
		return iv
	case *ir.Call:
		switch n.Op {
		case "vscale":
			return math.Interval{Min: 1, Max: math.PosInf}
		case "clz":
			return math.Interval{Min: 0, Max: int64(n.Args[0].Type().Bits)}
		case "likely":
			return a.intervalOf(n.Args[0])
		case "if_then_else":
			return a.intervalOf(n.Args[1]).Union(a.intervalOf(n.Args[2]))
		}
		//
		return math.INFINITY
	}
	// booleans and unhandled kinds
	if e.Type().IsBool() {
		return math.Interval{Min: 0, Max: 1}
	}
	//
	return math.INFINITY
}

func (a *BoundAnalyzer) divInterval(ae ir.Expr, be ir.Expr,
	div func(int64, int64) int64) math.Interval {
	//
	x, y := a.intervalOf(ae), a.intervalOf(be)
	// a divisor whose range includes zero proves nothing
	if y.Contains(0) {
		return math.INFINITY
	}
	//
	combine := func(lo, hi int64) math.Interval {
		var (
			a1 = divSat(x.Min, lo, div)
			a2 = divSat(x.Min, hi, div)
			a3 = divSat(x.Max, lo, div)
			a4 = divSat(x.Max, hi, div)
		)
		//
		return math.Interval{
			Min: min(min(a1, a2), min(a3, a4)),
			Max: max(max(a1, a2), max(a3, a4)),
		}
	}
	//
	return combine(y.Min, y.Max)
}

// divSat divides a possibly-infinite bound by a non-zero, possibly-infinite
// divisor.
func divSat(x int64, y int64, div func(int64, int64) int64) int64 {
	positive := (x > 0) == (y > 0)
	//
	if x == math.PosInf || x == math.NegInf {
		if positive {
			return math.PosInf
		}
		//
		return math.NegInf
	}
	//
	if y == math.PosInf || y == math.NegInf {
		// finite / infinite rounds to 0 or -1 depending on the mode; both
		// are enclosed by [-1, 0]
		return div(x, y)
	}
	//
	return div(x, y)
}

func (a *BoundAnalyzer) truncModInterval(ae ir.Expr, be ir.Expr) math.Interval {
	x, y := a.intervalOf(ae), a.intervalOf(be)
	//
	if y.Contains(0) {
		return math.INFINITY
	}
	// |a truncmod b| < |b|, with the sign of the dividend
	bcap := max(abs64(y.Min), abs64(y.Max))
	//
	if bcap == math.PosInf {
		return math.INFINITY
	}
	//
	iv := math.Interval{Min: -(bcap - 1), Max: bcap - 1}
	//
	if x.Min >= 0 {
		iv.Min = 0
		iv.Max = min(iv.Max, x.Max)
	} else if x.Max <= 0 {
		iv.Max = 0
		iv.Min = max(iv.Min, x.Min)
	}
	//
	return iv
}

func (a *BoundAnalyzer) floorModInterval(ae ir.Expr, be ir.Expr) math.Interval {
	x, y := a.intervalOf(ae), a.intervalOf(be)
	//
	if y.Contains(0) {
		return math.INFINITY
	}
	// a floormod b takes the sign of the divisor
	if y.Min > 0 {
		if y.Max == math.PosInf {
			return math.Interval{Min: 0, Max: math.PosInf}
		}
		//
		iv := math.Interval{Min: 0, Max: y.Max - 1}
		// already-reduced dividends pass through
		if x.Min >= 0 {
			iv.Max = min(iv.Max, x.Max)
		}
		//
		return iv
	}
	//
	if y.Min == math.NegInf {
		return math.Interval{Min: math.NegInf, Max: 0}
	}
	//
	return math.Interval{Min: y.Min + 1, Max: 0}
}

func abs64(x int64) int64 {
	if x == math.NegInf || x == math.PosInf {
		return math.PosInf
	} else if x < 0 {
		return -x
	}
	//
	return x
}

// typeRange returns the representable range of an integer datatype, or the
// infinite interval for anything else.
func typeRange(dtype ir.DataType) math.Interval {
	if dtype.IsFloat() {
		return math.INFINITY
	} else if dtype.Bits >= 64 {
		if dtype.IsUint() {
			return math.Interval{Min: 0, Max: math.PosInf}
		}
		//
		return math.INFINITY
	}
	//
	return math.Interval{Min: dtype.MinValue(), Max: dtype.MaxValue()}
}

// clampToType widens a computed interval to the full type range when the
// computation could have wrapped.
func clampToType(dtype ir.DataType, iv math.Interval) math.Interval {
	tr := typeRange(dtype.Elem())
	//
	if iv.Within(tr) {
		return iv
	}
	//
	return tr
}
