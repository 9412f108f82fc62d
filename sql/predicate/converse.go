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

import (
	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// ConverseSargTerms implements qo_converse_sarg_terms (§4.B.3).
//
// For `const op attr` it rewrites to `attr converse(op) const`. For
// `attr1 op attr2` it swaps sides so the more-referenced attribute ends up
// on the left, counting references *within the same CNF conjunct's DNF
// cluster only* — confirmed against the original source
// (query_rewrite.c:qo_converse_sarg_terms), which resets its attribute
// tally at the top of the per-conjunct loop and accumulates across that
// conjunct's or_next chain, not across the whole WHERE list. This resolves
// the open question in spec.md §9 in favor of the straightforward
// per-cluster reading.
//
// UNARY_MINUS wrappers are canonicalized first: `-a op -b -> a op b`,
// `-a op c -> a op -c`, `c op -a -> -c op a`, and a single-range
// `-attr BETWEEN a AND b -> -attr >= a AND -attr <= b` is split into two
// conjuncts before the rest of the pass runs.
func ConverseSargTerms(c *graph.ParserContext, head graph.NodeId) graph.NodeId {
	conjuncts := graph.CNFToSlice(c, head)
	for _, cid := range conjuncts {
		splitNegatedBetween(c, cid)
	}
	// re-flatten: splitNegatedBetween may have appended a sibling into the
	// Next chain of a conjunct that itself has no OrNext; re-walk to pick up
	// any newly appended nodes located off the end of the original slice.
	conjuncts = graph.CNFToSlice(c, head)

	for _, cid := range conjuncts {
		canonicalizeUnaryMinus(c, cid)
	}

	for _, cid := range conjuncts {
		counts := countClusterAttrs(c, cid)
		graph.ForEachDNF(c, cid, func(did graph.NodeId, d *graph.Node) bool {
			converseOneTerm(c, d, counts)
			return true
		})
	}
	return head
}

// clusterAttr is a (spec, column) key used to tally attribute occurrences
// within one DNF cluster.
type clusterAttr struct {
	spec graph.NodeId
	name string
}

func countClusterAttrs(c *graph.ParserContext, cnfHead graph.NodeId) map[clusterAttr]int {
	counts := map[clusterAttr]int{}
	graph.ForEachDNF(c, cnfHead, func(did graph.NodeId, d *graph.Node) bool {
		if d.Kind != graph.KindExpr || d.Expr == nil || d.Expr.Op == graph.OpAnd || d.Expr.Op == graph.OpOr {
			return true
		}
		tally(c, c.Get(d.Expr.Arg1), counts)
		tally(c, c.Get(d.Expr.Arg2), counts)
		return true
	})
	return counts
}

func tally(c *graph.ParserContext, n *graph.Node, counts map[clusterAttr]int) {
	base := c.StripPrior(unwrapUnaryMinus(c, n))
	if base != nil && base.Kind == graph.KindName {
		counts[clusterAttr{base.Name.SpecID, base.Name.ColumnName}]++
	}
}

func unwrapUnaryMinus(c *graph.ParserContext, n *graph.Node) *graph.Node {
	for n != nil && n.Kind == graph.KindExpr && n.Expr != nil && n.Expr.Op == graph.OpUnaryMinus {
		n = c.Get(n.Expr.Arg1)
	}
	return n
}

func converseOneTerm(c *graph.ParserContext, d *graph.Node, counts map[clusterAttr]int) {
	if d.Kind != graph.KindExpr || d.Expr == nil || !d.Expr.Op.IsComparison() {
		return
	}
	arg1, arg2 := c.Get(d.Expr.Arg1), c.Get(d.Expr.Arg2)
	a1IsAttr, a2IsAttr := c.IsAttr(arg1), c.IsAttr(arg2)

	switch {
	case !a1IsAttr && a2IsAttr:
		// const op attr -> attr converse(op) const
		if conv, ok := d.Expr.Op.Converse(); ok {
			d.Expr.Op = conv
			d.Expr.Arg1, d.Expr.Arg2 = d.Expr.Arg2, d.Expr.Arg1
		}
	case a1IsAttr && a2IsAttr:
		k1 := clusterAttr{c.StripPrior(arg1).Name.SpecID, c.StripPrior(arg1).Name.ColumnName}
		k2 := clusterAttr{c.StripPrior(arg2).Name.SpecID, c.StripPrior(arg2).Name.ColumnName}
		if counts[k2] > counts[k1] {
			if conv, ok := d.Expr.Op.Converse(); ok {
				d.Expr.Op = conv
				d.Expr.Arg1, d.Expr.Arg2 = d.Expr.Arg2, d.Expr.Arg1
			}
		}
	}
}

// canonicalizeUnaryMinus rewrites the three two-operand shapes named in
// §4.B.3 for every disjunct of the conjunct headed at cid.
func canonicalizeUnaryMinus(c *graph.ParserContext, cid graph.NodeId) {
	graph.ForEachDNF(c, cid, func(did graph.NodeId, d *graph.Node) bool {
		if d.Kind != graph.KindExpr || d.Expr == nil || !d.Expr.Op.IsComparison() {
			return true
		}
		a1, a2 := c.Get(d.Expr.Arg1), c.Get(d.Expr.Arg2)
		neg1, inner1 := isUnaryMinus(a1)
		neg2, inner2 := isUnaryMinus(a2)
		switch {
		case neg1 && neg2:
			// -a op -b -> a op b
			d.Expr.Arg1, d.Expr.Arg2 = inner1, inner2
		case neg1 && !neg2 && c.IsConstant(a2):
			// -a op c -> a op -c
			d.Expr.Arg1 = inner1
			d.Expr.Arg2 = negateConstant(c, d.Expr.Arg2)
		case neg2 && !neg1 && c.IsConstant(a1):
			// c op -a -> -c op a
			d.Expr.Arg1 = negateConstant(c, d.Expr.Arg1)
			d.Expr.Arg2 = inner2
		}
		return true
	})
}

func isUnaryMinus(n *graph.Node) (bool, graph.NodeId) {
	if n != nil && n.Kind == graph.KindExpr && n.Expr != nil && n.Expr.Op == graph.OpUnaryMinus {
		return true, n.Expr.Arg1
	}
	return false, graph.InvalidID
}

func negateConstant(c *graph.ParserContext, id graph.NodeId) graph.NodeId {
	n := c.Get(id)
	if n == nil || n.Value == nil {
		return c.NewExpr(graph.OpUnaryMinus, id, graph.InvalidID).ID
	}
	switch v := n.Value.Data.(type) {
	case int64:
		return c.NewLiteral(sql.NewInt(-v)).ID
	case float64:
		return c.NewLiteral(sql.NewFloat(-v)).ID
	default:
		return c.NewExpr(graph.OpUnaryMinus, id, graph.InvalidID).ID
	}
}

// splitNegatedBetween rewrites `-attr BETWEEN a AND b` into
// `-attr >= a AND -attr <= b` when cid is a lone conjunct (no OR siblings,
// per "check for one range spec" in the source).
func splitNegatedBetween(c *graph.ParserContext, cid graph.NodeId) {
	n := c.Get(cid)
	if n.OrNext != graph.InvalidID || n.Kind != graph.KindExpr || n.Expr == nil || n.Expr.Op != graph.OpBetweenAnd {
		return
	}
	neg, inner := isUnaryMinus(c.Get(n.Expr.Arg1))
	if !neg || !c.IsAttr(c.Get(inner)) {
		return
	}
	lo, hi := n.Expr.Arg2, n.Expr.Arg3
	innerCopy := c.CopyNode(c.Get(n.Expr.Arg1))

	n.Expr.Op = graph.OpGe
	n.Expr.Arg2 = lo
	n.Expr.Arg3 = graph.InvalidID

	second := c.NewExpr(graph.OpLe, innerCopy.ID, hi)
	second.Location = n.Location
	second.Next = n.Next
	n.Next = second.ID
}
