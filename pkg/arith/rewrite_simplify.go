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
	"fmt"

	"github.com/consensys/go-arith/pkg/ir"
)

// Extension is a bitset of optional simplifier behaviours.
type Extension uint32

const (
	// ExtNone enables no optional behaviour.
	ExtNone Extension = 0
	// ExtTransitivelyProveInequalities enables the transitive layer of
	// TryCompare.
	ExtTransitivelyProveInequalities Extension = 1 << 0
	// ExtComparisonOfProductAndSum enables the (A+B)*C vs (A*B)*D layer of
	// TryCompare.
	ExtComparisonOfProductAndSum Extension = 1 << 1
	// ExtApplyConstraintsToBooleanBranches makes each branch of a
	// conjunction or disjunction be simplified under the assumption of the
	// other branch.
	ExtApplyConstraintsToBooleanBranches Extension = 1 << 2
	// ExtConvertBooleanToAndOfOrs hands stabilized boolean expressions to
	// an external and-of-ors normalizer.
	ExtConvertBooleanToAndOfOrs Extension = 1 << 3
)

// Stats counts the work performed by a simplifier since its construction or
// the last reset.
type Stats struct {
	NodesVisited         int64
	ConstraintsEntered   int64
	RewritesAttempted    int64
	RewritesPerformed    int64
	MaxRecursiveDepth    int64
	NumRecursiveRewrites int64
}

func (p Stats) String() string {
	return fmt.Sprintf(
		"nodes_visited = %d, constraints_entered = %d, rewrites_attempted = %d, "+
			"rewrites_performed = %d, max_recursive_depth = %d, num_recursive_rewrites = %d",
		p.NodesVisited, p.ConstraintsEntered, p.RewritesAttempted,
		p.RewritesPerformed, p.MaxRecursiveDepth, p.NumRecursiveRewrites)
}

// maxRecurDepth bounds how deeply recursive-rewrite rules may re-enter the
// simplifier.
const maxRecurDepth = 5

// Simplifier rewrites expressions into equivalent, canonical and typically
// smaller forms by applying algebraic identities bottom-up until a fixed
// point.  A simplifier is single-threaded and non-reentrant; independent
// instances may run in parallel on shared (immutable) expressions provided
// each owns its oracle set.
type Simplifier struct {
	oracles Oracles
	// substitutions recorded via Update, keyed by variable name
	varMap map[string]ir.Expr
	// scoped literal constraints, matched by deep equality
	literalConstraints []ir.Expr
	//
	enabledExtensions Extension
	stats             Stats
	// maximum number of rule firings; zero means unlimited
	maxRewriteSteps int64
	recurDepth      int
	// set while a recursive rewrite is visiting a boolean, to stop the
	// and-of-ors conversion from re-entering itself
	recursivelyVisitingBoolean bool
	// optional external and-of-ors normalizer, consulted only when
	// ExtConvertBooleanToAndOfOrs is enabled
	andOfOrs func(ir.Expr, Oracles) ir.Expr
}

// NewSimplifier constructs a simplifier over a given oracle set.  Passing
// nil oracles yields a simplifier which still performs all structural
// rewrites but proves nothing.
func NewSimplifier(oracles Oracles) *Simplifier {
	if oracles == nil {
		oracles = NullOracles{}
	}
	//
	return &Simplifier{
		oracles: oracles,
		varMap:  make(map[string]ir.Expr),
	}
}

// Simplify rewrites an expression to a fixed point, running the bottom-up
// mutator at most twice.  The result is deterministic and equivalent to the
// input for every environment under which the input is defined.
func (s *Simplifier) Simplify(e ir.Expr) ir.Expr {
	res := e
	// two passes suffice in practice
	for i := 0; i < 2; i++ {
		next := s.VisitExpr(res)
		//
		if next == res || ir.Equal(next, res) {
			return res
		}
		//
		res = next
	}
	//
	return res
}

// Update records a substitution for a variable.  Unless canOverride is set,
// rebinding a variable to a structurally different value is an invariant
// violation.
func (s *Simplifier) Update(v *ir.Var, value ir.Expr, canOverride bool) {
	if !canOverride {
		if old, ok := s.varMap[v.Name]; ok && !ir.Equal(old, value) {
			panic(fmt.Sprintf("conflicting update of %q: original=%s, new=%s",
				v.Name, old, value))
		}
	}
	//
	s.varMap[v.Name] = value
}

// EnterConstraint asserts a constraint for a scope, returning the function
// which restores the prior constraint stack.  The restore function must be
// called exactly once, before any enclosing restore.
func (s *Simplifier) EnterConstraint(constraint ir.Expr) func() {
	oldSize := len(s.literalConstraints)
	// the constraint will be compared against already-simplified
	// expressions, so simplify it as well
	newConstraint := s.Simplify(constraint)
	//
	for _, sub := range ExtractConstraints(newConstraint) {
		if ir.SideEffect(sub) > ir.EffectPure {
			continue
		}
		//
		s.literalConstraints = append(s.literalConstraints, sub)
		//
		var negation ir.Expr
		if sub.Type().IsBool() {
			// Negations are normalized once per constraint entered, rather
			// than normalizing each expression checked against the stack.
			negation = NormalizeBooleanOperators(ir.NewNot(sub))
		} else {
			negation = ir.NewEQ(sub, ir.Zero(sub.Type()))
		}
		//
		s.literalConstraints = append(s.literalConstraints, ir.NewNot(negation))
	}
	//
	s.stats.ConstraintsEntered++
	newSize := len(s.literalConstraints)
	//
	return func() {
		if len(s.literalConstraints) != newSize {
			panic("constraint stack unwound out of order")
		}
		//
		s.literalConstraints = s.literalConstraints[:oldSize]
	}
}

// TryMatchLiteralConstraint checks an expression against the constraint
// stack, resolving it to true when it deep-equals an entered constraint and
// to false when its negation does.
func (s *Simplifier) TryMatchLiteralConstraint(e ir.Expr) (ir.Expr, bool) {
	negation := ir.NewNot(e)
	//
	for _, constraint := range s.literalConstraints {
		if ir.Equal(constraint, e) {
			return ir.ConstBool(true), true
		}
		//
		if ir.Equal(constraint, negation) {
			return ir.ConstBool(false), true
		}
	}
	//
	return nil, false
}

// SetEnabledExtensions replaces the set of enabled extensions.
func (s *Simplifier) SetEnabledExtensions(flags Extension) {
	s.enabledExtensions = flags
}

// GetEnabledExtensions returns the currently enabled extensions.
func (s *Simplifier) GetEnabledExtensions() Extension {
	return s.enabledExtensions
}

// SetAndOfOrsConverter installs the external normalizer consulted under
// ExtConvertBooleanToAndOfOrs.  Without a converter the extension has no
// effect.
func (s *Simplifier) SetAndOfOrsConverter(fn func(ir.Expr, Oracles) ir.Expr) {
	s.andOfOrs = fn
}

// StatsCounters returns the current stats counters.
func (s *Simplifier) StatsCounters() Stats { return s.stats }

// ResetStatsCounters zeroes the stats counters.
func (s *Simplifier) ResetStatsCounters() { s.stats = Stats{} }

// SetMaximumRewriteSteps bounds the number of rule firings per simplifier;
// zero means unlimited.  On exhaustion the expression in hand is returned
// as-is.
func (s *Simplifier) SetMaximumRewriteSteps(n int64) { s.maxRewriteSteps = n }

// VisitExpr simplifies an expression bottom-up: children first, left to
// right, then the rule table of the rebuilt node.
func (s *Simplifier) VisitExpr(e ir.Expr) ir.Expr {
	s.stats.NodesVisited++
	//
	switch op := e.(type) {
	case *ir.Add:
		return s.visitAdd(op)
	case *ir.Sub:
		return s.visitSub(op)
	case *ir.Mul:
		return s.visitMul(op)
	case *ir.Div:
		return s.visitDiv(op)
	case *ir.Mod:
		return s.visitMod(op)
	case *ir.FloorDiv:
		return s.visitFloorDiv(op)
	case *ir.FloorMod:
		return s.visitFloorMod(op)
	case *ir.Min:
		return s.visitMin(op)
	case *ir.Max:
		return s.visitMax(op)
	case *ir.EQ:
		return s.visitEQ(op)
	case *ir.NE:
		return s.visitNE(op)
	case *ir.LT:
		return s.visitLT(op)
	case *ir.LE:
		return s.visitLE(op)
	case *ir.GT:
		// a > b  rewrites to  b < a
		return s.VisitExpr(&ir.LT{A: op.B, B: op.A})
	case *ir.GE:
		// a >= b  rewrites to  b <= a
		return s.VisitExpr(&ir.LE{A: op.B, B: op.A})
	case *ir.And:
		return s.visitAnd(op)
	case *ir.Or:
		return s.visitOr(op)
	case *ir.Not:
		return s.visitNot(op)
	case *ir.Select:
		return s.visitSelect(op)
	case *ir.Call:
		return s.visitCall(op)
	case *ir.Cast:
		return s.visitCast(op)
	case *ir.Let:
		return s.visitLet(op)
	case *ir.Var:
		return s.visitVar(op)
	case *ir.Broadcast:
		value, lanes := s.VisitExpr(op.Value), s.VisitExpr(op.Lanes)
		//
		if value != op.Value || lanes != op.Lanes {
			return &ir.Broadcast{Value: value, Lanes: lanes}
		}
		//
		return op
	case *ir.Ramp:
		base, stride := s.VisitExpr(op.Base), s.VisitExpr(op.Stride)
		lanes := s.VisitExpr(op.Lanes)
		//
		if base != op.Base || stride != op.Stride || lanes != op.Lanes {
			return &ir.Ramp{Base: base, Stride: stride, Lanes: lanes}
		}
		//
		return op
	}
	// all other kinds pass through unchanged
	return e
}

// recursiveRewrite re-enters the simplifier on the result of a rule, up to
// a fixed depth.
func (s *Simplifier) recursiveRewrite(e ir.Expr) ir.Expr {
	s.stats.NumRecursiveRewrites++
	//
	if s.recurDepth >= maxRecurDepth {
		return e
	}
	//
	s.recurDepth++
	s.stats.MaxRecursiveDepth = max(s.stats.MaxRecursiveDepth, int64(s.recurDepth))
	// remember whether this recursion is within a boolean, so that the
	// and-of-ors conversion does not re-enter itself
	cached := s.recursivelyVisitingBoolean
	s.recursivelyVisitingBoolean = e.Type().IsBool()
	//
	defer func() {
		s.recurDepth--
		s.recursivelyVisitingBoolean = cached
	}()
	//
	return s.VisitExpr(e)
}

// exhausted determines whether the rewrite-step budget has run out, in
// which case no further rules fire and the current expression is returned
// unchanged.
func (s *Simplifier) exhausted() bool {
	return s.maxRewriteSteps > 0 && s.stats.RewritesPerformed >= s.maxRewriteSteps
}

// tryRewrite attempts a single rewrite rule: if the source pattern matches,
// the result pattern is evaluated and returned.
func (s *Simplifier) tryRewrite(e ir.Expr, src pattern, res pattern) (ir.Expr, bool) {
	s.stats.RewritesAttempted++
	//
	if s.exhausted() {
		return nil, false
	}
	//
	src.reset()
	//
	if src.match(e) {
		s.stats.RewritesPerformed++
		return res.eval(), true
	}
	//
	return nil, false
}

// tryRewriteIf attempts a rewrite rule whose firing is guarded by a
// condition over the bound pattern variables.
func (s *Simplifier) tryRewriteIf(e ir.Expr, src pattern, res pattern,
	cond func() bool) (ir.Expr, bool) {
	//
	s.stats.RewritesAttempted++
	//
	if s.exhausted() {
		return nil, false
	}
	//
	src.reset()
	//
	if src.match(e) && cond() {
		s.stats.RewritesPerformed++
		return res.eval(), true
	}
	//
	return nil, false
}

// tryRecursiveRewrite attempts a rewrite rule whose result re-enters the
// simplifier.
func (s *Simplifier) tryRecursiveRewrite(e ir.Expr, src pattern, res pattern) (ir.Expr, bool) {
	if r, ok := s.tryRewrite(e, src, res); ok {
		return s.recursiveRewrite(r), true
	}
	//
	return nil, false
}

func (s *Simplifier) tryRecursiveRewriteIf(e ir.Expr, src pattern, res pattern,
	cond func() bool) (ir.Expr, bool) {
	//
	if r, ok := s.tryRewriteIf(e, src, res, cond); ok {
		return s.recursiveRewrite(r), true
	}
	//
	return nil, false
}

// matches resets a pattern and matches it against an expression, for rules
// whose result requires imperative logic over the bindings.
func (s *Simplifier) matches(src pattern, e ir.Expr) bool {
	return matchFresh(src, e)
}

// canProve delegates a general predicate to the enclosing analyzer.
func (s *Simplifier) canProve(e ir.Expr) bool {
	return s.oracles.CanProve(e)
}

// canProveEqual determines whether two expressions always take the same
// value.
func (s *Simplifier) canProveEqual(a ir.Expr, b ir.Expr) bool {
	return s.tryCompareConst(ir.NewSub(a, b), 0) == CmpEQ
}

// canProveGreaterEqual determines whether an expression is always at least
// a given value.
func (s *Simplifier) canProveGreaterEqual(a ir.Expr, val int64) bool {
	switch s.tryCompareConst(a, val) {
	case CmpEQ, CmpGT, CmpGE:
		return true
	}
	//
	return false
}

// canProveLess determines whether an expression is always below a given
// value.
func (s *Simplifier) canProveLess(a ir.Expr, val int64) bool {
	return s.tryCompareConst(a, val) == CmpLT
}
