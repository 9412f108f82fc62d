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

// Package rewrite implements the join and subquery rewrite passes of §4.C:
// path-join classification, OID-equality-to-derived-table, uncorrelated
// subquery-to-join, outer-to-inner conversion, explicit-join flattening, and
// hidden-column derived-table wrapping.
package rewrite

import "github.com/cubrid-go/rewriter/sql/graph"

// RewriteQuery implements rewrite_query (§2): it recurses into every
// derived table bottom-up so an inner query is fully rewritten before its
// enclosing query's passes run against it, then applies this level's passes
// in the order the source fixes them — path-join classification needs the
// original outer-join shape before anything downgrades it, OID rewriting
// and subquery-to-join both add or remove FROM specs that later passes must
// see, and the two ORDER BY passes run last since they depend on whether
// this query ended up wrapped as someone else's derived table.
func RewriteQuery(c *graph.ParserContext, node graph.NodeId) {
	n := c.Get(node)
	if n == nil || n.Query == nil {
		return
	}
	if n.Kind == graph.KindUnion || n.Kind == graph.KindDifference || n.Kind == graph.KindIntersection {
		RewriteQuery(c, n.Query.Left)
		RewriteQuery(c, n.Query.Right)
		return
	}
	q := n.Query

	for _, specID := range q.FromSpecs {
		if spec := c.Get(specID); spec != nil && spec.Spec != nil && spec.Spec.DerivedTable != graph.InvalidID {
			RewriteQuery(c, spec.Spec.DerivedTable)
		}
	}

	AnalyzePathJoin(c, q)
	RewriteOidEquality(c, q)
	RewriteUncorrelatedSubquery(c, q)
	ConvertOuterToInner(c, q)
	FlattenExplicitJoins(c, q)

	for _, specID := range q.FromSpecs {
		if spec := c.Get(specID); spec != nil && spec.Spec != nil {
			WrapHiddenColumnDerived(c, spec.Spec)
		}
	}
	PruneUnnecessaryOrderBy(q)
}
