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

// PartitionKeyTest reports whether column on the attribute resolved to
// specID is a partition key, so AutoParameterize can leave its literal
// bound intact (pruning needs the literal, §4.B.9).
type PartitionKeyTest func(specID graph.NodeId, column string) bool

// AutoParameterize implements qo_auto_parameterize (§4.B.9): once every
// other pass has run, non-NULL constants in sargable positions (RANGE
// sub-range bounds, and the bare top-level `attr = const` the RANGE
// conversion leaves alone) are replaced with freshly
// numbered host-variable markers, so the XASL plan this predicate compiles
// to can be cached and reused with different literals (§4.E's PlanCache).
//
// No substitution happens when HostVarLateBinding is set (the caller wants
// literals bound at execution time instead) or when plan caching itself is
// disabled (there would be nothing to reuse the binding for).
func AutoParameterize(c *graph.ParserContext, head graph.NodeId, cfg NormalizeConfig, isPartitionKey PartitionKeyTest) graph.NodeId {
	if cfg.HostVarLateBinding || !cfg.PlanCacheEnabled {
		return head
	}
	if isPartitionKey == nil {
		isPartitionKey = func(graph.NodeId, string) bool { return false }
	}
	idx := 0
	conjuncts := graph.CNFToSlice(c, head)
	for _, cid := range conjuncts {
		graph.ForEachDNF(c, cid, func(did graph.NodeId, d *graph.Node) bool {
			parameterizeTerm(c, d, isPartitionKey, &idx)
			return true
		})
	}
	return graph.SliceToCNF(c, conjuncts)
}

func parameterizeTerm(c *graph.ParserContext, n *graph.Node, isPartitionKey PartitionKeyTest, idx *int) {
	if n.Kind != graph.KindExpr || n.Expr == nil {
		return
	}
	switch n.Expr.Op {
	case graph.OpRange:
		attr := c.StripPrior(c.Get(n.Expr.Arg1))
		if attr == nil || attr.Kind != graph.KindName || isPartitionKey(attr.Name.SpecID, attr.Name.ColumnName) {
			return
		}
		for i := range n.Expr.SubRanges {
			n.Expr.SubRanges[i].Lo = parameterizeBound(c, n.Expr.SubRanges[i].Lo, attr.Name.ColumnName, idx)
			n.Expr.SubRanges[i].Hi = parameterizeBound(c, n.Expr.SubRanges[i].Hi, attr.Name.ColumnName, idx)
		}
	case graph.OpEq:
		arg1, arg2 := c.Get(n.Expr.Arg1), c.Get(n.Expr.Arg2)
		if c.IsAttr(arg1) && c.IsConstant(arg2) {
			base := c.StripPrior(arg1)
			if !isPartitionKey(base.Name.SpecID, base.Name.ColumnName) {
				n.Expr.Arg2 = parameterizeBound(c, n.Expr.Arg2, base.Name.ColumnName, idx)
			}
		} else if c.IsAttr(arg2) && c.IsConstant(arg1) {
			base := c.StripPrior(arg2)
			if !isPartitionKey(base.Name.SpecID, base.Name.ColumnName) {
				n.Expr.Arg1 = parameterizeBound(c, n.Expr.Arg1, base.Name.ColumnName, idx)
			}
		}
	}
}

// parameterizeBound replaces id with a host-variable marker if id names a
// non-NULL literal; any other shape (already a host var, an unbound id, a
// NULL literal) is returned unchanged.
func parameterizeBound(c *graph.ParserContext, id graph.NodeId, column string, idx *int) graph.NodeId {
	n := c.Get(id)
	if n == nil || n.Kind != graph.KindValue || n.Value == nil || n.Value.IsNull() {
		return id
	}
	hv := c.NewHostVar(*idx, n.Value.Type, column)
	*idx++
	return hv.ID
}
