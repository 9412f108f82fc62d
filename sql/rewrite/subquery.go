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

package rewrite

import "github.com/cubrid-go/rewriter/sql/graph"

// RewriteUncorrelatedSubquery implements §4.C.3: for each top-level WHERE
// conjunct shaped `attr op (subquery)`, `set_fn op (subquery)` or
// `attr IN (subquery)`, where the subquery has correlation level 0 and a
// single-column select list, a fresh spec wrapping the subquery is
// appended to FROM and the term is rewritten to `attr op new_attr`.
func RewriteUncorrelatedSubquery(c *graph.ParserContext, q *graph.QueryInfo) {
	conjuncts := graph.CNFToSlice(c, q.Where)
	for _, cid := range conjuncts {
		n := c.Get(cid)
		if n.OrNext != graph.InvalidID || n.Kind != graph.KindExpr || n.Expr == nil {
			continue
		}
		sub := subqueryOperand(c, n)
		if sub == graph.InvalidID || !isUncorrelatedSingleColumn(c, sub) {
			continue
		}

		sub = WrapAsDerivedTable(c, sub)
		if (n.Expr.Op == graph.OpAny || n.Expr.Op == graph.OpSome) && n.Expr.SubOp != graph.OpEq {
			rewriteAnySomeProjection(c, sub, n.Expr.SubOp)
		}
		specID, col := appendSubquerySpec(c, q, sub)
		rewriteTermToJoin(c, n, specID, col)
	}
}

func subqueryOperand(c *graph.ParserContext, n *graph.Node) graph.NodeId {
	switch n.Expr.Op {
	case graph.OpEq, graph.OpNe, graph.OpLt, graph.OpLe, graph.OpGt, graph.OpGe,
		graph.OpIn, graph.OpAny, graph.OpSome, graph.OpAll:
	default:
		return graph.InvalidID
	}
	arg2 := c.Get(n.Expr.Arg2)
	if arg2 != nil && arg2.Query != nil {
		return n.Expr.Arg2
	}
	return graph.InvalidID
}

func isUncorrelatedSingleColumn(c *graph.ParserContext, sub graph.NodeId) bool {
	n := c.Get(sub)
	if n == nil || n.Query == nil || n.Query.CorrelationLevel != 0 {
		return false
	}
	return len(innerSelectList(c, n)) == 1
}

// WrapAsDerivedTable implements qo_rewrite_query_as_derived
// (query_rewrite.c:5048), supplemented from original_source: it wraps
// query — which may be a composite UNION/DIFFERENCE/INTERSECTION, whose
// own select list lives on its operands rather than on itself — as a
// derived table presenting one ordinary select list, so callers like
// RewriteUncorrelatedSubquery never need to special-case composite shapes.
// A plain SELECT is already such a view and is returned unchanged.
func WrapAsDerivedTable(c *graph.ParserContext, query graph.NodeId) graph.NodeId {
	q := c.Get(query)
	if q == nil || q.Kind == graph.KindSelect {
		return query
	}

	cols := innerSelectList(c, q)
	spec := c.Alloc(graph.KindSpec)
	spec.Spec = &graph.SpecInfo{
		DerivedTable: query,
		DerivedType:  graph.DerivedSetExpr,
		RangeVar:     "derived",
	}

	outer := c.NewQuery(graph.KindSelect)
	outer.Query.FromSpecs = []graph.NodeId{spec.ID}
	for _, col := range cols {
		outer.Query.SelectList = append(outer.Query.SelectList, c.NewName(spec.ID, projectionName(c, col)).ID)
	}
	return outer.ID
}

func innerSelectList(c *graph.ParserContext, q *graph.Node) []graph.NodeId {
	switch q.Kind {
	case graph.KindUnion, graph.KindDifference, graph.KindIntersection:
		if left := c.Get(q.Query.Left); left != nil && left.Query != nil {
			return innerSelectList(c, left)
		}
		return nil
	case graph.KindSelect:
		return q.Query.SelectList
	default:
		return nil
	}
}

func projectionName(c *graph.ParserContext, id graph.NodeId) string {
	if n := c.Get(id); n != nil && n.Kind == graph.KindName && n.Name != nil {
		return n.Name.ColumnName
	}
	return "subq_col"
}

// rewriteAnySomeProjection replaces sub's sole projection with MIN() or
// MAX() of itself, per "For ANY/SOME comparisons other than =, the
// subquery's projection is first rewritten to MIN() or MAX()" (§4.C.3).
func rewriteAnySomeProjection(c *graph.ParserContext, sub graph.NodeId, cmp graph.ExprOp) {
	n := c.Get(sub)
	if n == nil || n.Query == nil || len(n.Query.SelectList) != 1 {
		return
	}
	fn := "MAX"
	if cmp == graph.OpGt || cmp == graph.OpGe {
		fn = "MIN"
	}
	n.Query.SelectList[0] = c.NewFunction(fn, n.Query.SelectList[0]).ID
}

// appendSubquerySpec adds sub to q's FROM list as a derived-table spec and
// returns the new spec's id and the name of its single projected column.
func appendSubquerySpec(c *graph.ParserContext, q *graph.QueryInfo, sub graph.NodeId) (specID graph.NodeId, col string) {
	col = "subq_col"
	if n := c.Get(sub); n != nil && n.Query != nil && len(n.Query.SelectList) == 1 {
		col = projectionName(c, n.Query.SelectList[0])
	}
	spec := c.Alloc(graph.KindSpec)
	spec.Spec = &graph.SpecInfo{
		DerivedTable: sub,
		DerivedType:  graph.DerivedSubquery,
		RangeVar:     "subq",
		AsAttrList:   []string{col},
	}
	q.FromSpecs = append(q.FromSpecs, spec.ID)
	return spec.ID, col
}

// rewriteTermToJoin rewrites n from `attr op (subquery)` to `attr op
// new_attr`: IN folds to plain equality against the new single-row join;
// ANY/SOME resolve to their underlying comparison now that MIN/MAX made it
// exact.
func rewriteTermToJoin(c *graph.ParserContext, n *graph.Node, specID graph.NodeId, col string) {
	op := n.Expr.Op
	switch op {
	case graph.OpIn:
		op = graph.OpEq
	case graph.OpAny, graph.OpSome:
		op = n.Expr.SubOp
	}
	n.Expr.Op = op
	n.Expr.Arg2 = c.NewName(specID, col).ID
	n.Expr.Arg3 = graph.InvalidID
}
