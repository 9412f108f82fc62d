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

// oidColumnName is the NAME.ColumnName used for a bare range-variable
// reference (`x`, as opposed to `x.a`) — the spec's object-id pseudocolumn.
const oidColumnName = ""

// RewriteOidEquality implements the OID-equality derived-table rewrite
// (§4.C.2): `FROM c x WHERE x = expr` becomes a derived table sourced from
// `expr`, with the conjunct excised from WHERE. Since every NAME already
// resolves to the spec's NodeId rather than to a surface-syntax class name,
// existing `x.a` references need no rewriting — they keep resolving to the
// same spec, which now happens to be backed by a derived set instead of a
// class scan. Specs accessed as meta-classes (`class c`) are skipped.
func RewriteOidEquality(c *graph.ParserContext, q *graph.QueryInfo) {
	for _, specID := range q.FromSpecs {
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil || spec.Spec.MetaClass == graph.MetaClassMetaClass {
			continue
		}
		expr, conjID, ok := findOidEqualityTerm(c, q.Where, specID)
		if !ok {
			continue
		}
		spec.Spec.DerivedTable = expr
		spec.Spec.DerivedType = graph.DerivedSetExpr
		q.Where = excise(c, q.Where, conjID)
	}
}

func findOidEqualityTerm(c *graph.ParserContext, where, specID graph.NodeId) (expr, conjID graph.NodeId, ok bool) {
	graph.ForEachCNF(c, where, func(id graph.NodeId, n *graph.Node) bool {
		if n.OrNext != graph.InvalidID || n.Kind != graph.KindExpr || n.Expr == nil || n.Expr.Op != graph.OpEq {
			return true
		}
		a1, a2 := c.Get(n.Expr.Arg1), c.Get(n.Expr.Arg2)
		switch {
		case isSpecOidRef(a1, specID) && isOidExpr(a2):
			expr, conjID, ok = n.Expr.Arg2, id, true
			return false
		case isSpecOidRef(a2, specID) && isOidExpr(a1):
			expr, conjID, ok = n.Expr.Arg1, id, true
			return false
		}
		return true
	})
	return expr, conjID, ok
}

func isSpecOidRef(n *graph.Node, specID graph.NodeId) bool {
	return n != nil && n.Kind == graph.KindName && n.Name != nil &&
		n.Name.SpecID == specID && n.Name.ColumnName == oidColumnName
}

// isOidExpr reports whether n is a shape the OID-equality rewrite accepts
// on the non-spec side: a literal, a host variable, or a function call (the
// sequence-literal case, e.g. a SERIAL's NEXT_VALUE). Domain-typing
// (confirming it actually resolves to an OID) belongs to the semantic
// layer upstream of this package.
func isOidExpr(n *graph.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case graph.KindValue, graph.KindHostVar, graph.KindFunction:
		return true
	default:
		return false
	}
}
