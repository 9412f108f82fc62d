// Copyright 2018 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package predicate

import "github.com/cubrid-go/rewriter/sql/graph"

// ReduceEqualityTerms implements qo_reduce_equality_terms (§4.B.2): for
// every top-level single-conjunct `attr = const` (or, on a second
// application, `attr RANGE (const EQ_NA)`, for idempotence — P7), every
// later occurrence of attr in the statement is rewritten to const. CAST
// around the attribute is transparent; PRIOR is transparent (the
// hierarchical operator never blocks reduction, it is carried along). A
// later occurrence that was itself a join term `attr op other_attr` is
// special-cased: the original join term is retained (a copy is appended at
// the end of WHERE flagged TRANSITIVE) so downstream join-rewriting still
// sees it even though the in-place occurrence was substituted to a
// constant.
func ReduceEqualityTerms(c *graph.ParserContext, q *graph.QueryInfo) {
	conjuncts := graph.CNFToSlice(c, q.Where)
	var transitiveCopies []graph.NodeId
	// derived holds the join terms this pass has already rewritten (e.g.
	// `x.a = y.b` turned into `5 = y.b`); they are not reduction sources.
	derived := map[graph.NodeId]bool{}

	for i, cid := range conjuncts {
		if derived[cid] {
			continue
		}
		attrName, specID, constID, ok := equalityCandidate(c, cid)
		if !ok {
			continue
		}
		srcNode := c.Get(cid)
		loc := srcNode.Location

		for j := i + 1; j < len(conjuncts); j++ {
			if cp := substituteConjunct(c, conjuncts[j], attrName, specID, constID); cp != graph.InvalidID {
				transitiveCopies = append(transitiveCopies, cp)
				derived[conjuncts[j]] = true
			}
		}

		if loc == 0 {
			for k, sel := range q.SelectList {
				q.SelectList[k] = substituteExpr(c, sel, attrName, specID, constID)
			}
		}
	}

	head := graph.SliceToCNF(c, conjuncts)
	for _, tc := range transitiveCopies {
		head = graph.AppendCNF(c, head, tc)
	}
	q.Where = head
}

// equalityCandidate reports whether conjunct cid is a reducible
// single-attribute equality and, if so, the attribute's identity and the
// constant id it reduces to.
func equalityCandidate(c *graph.ParserContext, cid graph.NodeId) (attrName string, specID graph.NodeId, constID graph.NodeId, ok bool) {
	n := c.Get(cid)
	if n == nil || n.OrNext != graph.InvalidID || n.Kind != graph.KindExpr || n.Expr == nil {
		return "", 0, 0, false
	}

	// RANGE (const EQ_NA) form, accepted for idempotence (P7).
	if n.Expr.Op == graph.OpRange && len(n.Expr.SubRanges) == 1 && n.Expr.SubRanges[0].Op == graph.SubEqNA {
		attr := c.Get(n.Expr.Arg1)
		if !c.IsAttr(attr) {
			return "", 0, 0, false
		}
		base := c.StripPrior(attr)
		return base.Name.ColumnName, base.Name.SpecID, n.Expr.SubRanges[0].Lo, true
	}

	if n.Expr.Op != graph.OpEq {
		return "", 0, 0, false
	}
	arg1, arg2 := stripCast(c, n.Expr.Arg1), stripCast(c, n.Expr.Arg2)
	a1, a2 := c.Get(arg1), c.Get(arg2)
	switch {
	case c.IsAttr(a1) && c.IsConstant(a2):
		base := c.StripPrior(a1)
		return base.Name.ColumnName, base.Name.SpecID, arg2, true
	case c.IsAttr(a2) && c.IsConstant(a1):
		base := c.StripPrior(a2)
		return base.Name.ColumnName, base.Name.SpecID, arg1, true
	default:
		return "", 0, 0, false
	}
}

// stripCast unwraps a CAST(attr) wrapper, per "CAST around the attr is
// transparent" (§4.B.2).
func stripCast(c *graph.ParserContext, id graph.NodeId) graph.NodeId {
	n := c.Get(id)
	if n != nil && n.Kind == graph.KindExpr && n.Expr != nil && n.Expr.Op == graph.OpCast {
		return n.Expr.Arg1
	}
	return id
}

func isTargetAttr(c *graph.ParserContext, n *graph.Node, attrName string, specID graph.NodeId) bool {
	base := c.StripPrior(n)
	return base != nil && base.Kind == graph.KindName && base.Name.ColumnName == attrName && base.Name.SpecID == specID
}

// substituteConjunct substitutes attr -> const inside a single later
// conjunct (descending through its DNF disjuncts), returning a flagged
// TRANSITIVE copy of the original conjunct if it was a join term that lost
// its attr-attr shape by the substitution (InvalidID otherwise).
func substituteConjunct(c *graph.ParserContext, cid graph.NodeId, attrName string, specID, constID graph.NodeId) graph.NodeId {
	var transitiveCopy graph.NodeId = graph.InvalidID

	graph.ForEachDNF(c, cid, func(did graph.NodeId, d *graph.Node) bool {
		if isJoinTermOn(c, d, attrName, specID) {
			cp := c.CopyNode(d)
			cp.Flags.Set(graph.FlagTransitive)
			cp.Next = graph.InvalidID
			cp.OrNext = graph.InvalidID
			transitiveCopy = cp.ID
		}
		substituteExprInPlace(c, did, attrName, specID, constID)
		return true
	})
	return transitiveCopy
}

// isJoinTermOn reports whether d is `attr op other_attr` where attr matches
// (attrName, specID) and other_attr is a (different) attribute — the shape
// that needs its original retained per §4.B.2.
func isJoinTermOn(c *graph.ParserContext, d *graph.Node, attrName string, specID graph.NodeId) bool {
	if d.Kind != graph.KindExpr || d.Expr == nil || !d.Expr.Op.IsComparison() {
		return false
	}
	a1, a2 := c.Get(d.Expr.Arg1), c.Get(d.Expr.Arg2)
	m1 := isTargetAttr(c, a1, attrName, specID)
	m2 := isTargetAttr(c, a2, attrName, specID)
	return (m1 && c.IsAttr(a2)) || (m2 && c.IsAttr(a1))
}

// substituteExprInPlace rewrites occurrences of the target attribute inside
// the expression rooted at id by overwriting the matching child slot(s) of
// its parent(s) with constID; unlike substituteExpr it mutates rather than
// returning a (possibly new) root, since id is already linked into a chain
// whose parent we cannot see from here.
func substituteExprInPlace(c *graph.ParserContext, id graph.NodeId, attrName string, specID, constID graph.NodeId) {
	n := c.Get(id)
	if n == nil || n.Kind != graph.KindExpr || n.Expr == nil {
		return
	}
	for _, slot := range []*graph.NodeId{&n.Expr.Arg1, &n.Expr.Arg2, &n.Expr.Arg3} {
		if *slot == graph.InvalidID {
			continue
		}
		if isTargetAttr(c, c.Get(*slot), attrName, specID) {
			*slot = constID
			continue
		}
		substituteExprInPlace(c, *slot, attrName, specID, constID)
	}
}

// substituteExpr is substituteExprInPlace's expression-returning form, used
// for SELECT-list entries where the caller holds the slot itself.
func substituteExpr(c *graph.ParserContext, id graph.NodeId, attrName string, specID, constID graph.NodeId) graph.NodeId {
	n := c.Get(id)
	if isTargetAttr(c, n, attrName, specID) {
		return constID
	}
	substituteExprInPlace(c, id, attrName, specID, constID)
	return id
}
