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

// ConvertToRange implements qo_convert_to_range (§4.B.7): every `=`, `<`,
// `<=`, `>`, `>=`, `BETWEEN`/`BETWEEN_AND`, and `IN (value-list)` whose left
// side is an attribute or INST_NUM() becomes a RANGE atom: one sub-range for
// a comparison or BETWEEN, one EQ_NA sub-range per value for an IN list.
// A lone top-level `=` (a conjunct with no OR'd siblings) that is not on
// INST_NUM is left alone (the planner handles bare equality directly);
// `IN (subquery)` is never convertible.
func ConvertToRange(c *graph.ParserContext, head graph.NodeId) graph.NodeId {
	conjuncts := graph.CNFToSlice(c, head)
	for _, cid := range conjuncts {
		lone := c.Get(cid).OrNext == graph.InvalidID
		graph.ForEachDNF(c, cid, func(did graph.NodeId, d *graph.Node) bool {
			convertTermToRange(c, d, lone)
			return true
		})
	}
	return graph.SliceToCNF(c, conjuncts)
}

// convertTermToRange converts one disjunct; lone reports whether the
// conjunct it belongs to has no OR'd siblings.
func convertTermToRange(c *graph.ParserContext, n *graph.Node, lone bool) {
	if n.Kind != graph.KindExpr || n.Expr == nil {
		return
	}
	left := c.Get(n.Expr.Arg1)
	sargable := c.IsAttr(left) || c.IsInstNum(left)
	if !sargable {
		return
	}

	switch n.Expr.Op {
	case graph.OpEq:
		if !c.IsInstNum(left) && lone {
			return // lone attr = const stays as-is
		}
		setRange(n, graph.SubRange{Op: graph.SubEqNA, Lo: n.Expr.Arg2})
	case graph.OpLt:
		setRange(n, graph.SubRange{Op: graph.SubInfLt, Hi: n.Expr.Arg2})
	case graph.OpLe:
		setRange(n, graph.SubRange{Op: graph.SubInfLe, Hi: n.Expr.Arg2})
	case graph.OpGt:
		setRange(n, graph.SubRange{Op: graph.SubGtInf, Lo: n.Expr.Arg2})
	case graph.OpGe:
		setRange(n, graph.SubRange{Op: graph.SubGeInf, Lo: n.Expr.Arg2})
	case graph.OpBetweenAnd:
		setRange(n, graph.SubRange{Op: graph.SubGeLe, Lo: n.Expr.Arg2, Hi: n.Expr.Arg3})
	case graph.OpIn:
		// Only a literal value list converts; IN (subquery) is left alone.
		if arg2 := c.Get(n.Expr.Arg2); arg2 != nil && arg2.Query != nil {
			return
		}
		if n.Expr.Arg3 != graph.InvalidID {
			return // Arg3 is not part of a literal IN list
		}
		values := collectInList(c, n)
		if values == nil {
			return
		}
		n.Expr.Op = graph.OpRange
		n.Expr.SubRanges = values
		n.Expr.Arg2 = graph.InvalidID
	}
}

func setRange(n *graph.Node, sr graph.SubRange) {
	n.Expr.Op = graph.OpRange
	n.Expr.Arg2 = graph.InvalidID
	n.Expr.Arg3 = graph.InvalidID
	n.Expr.SubRanges = []graph.SubRange{sr}
}

// collectInList reads the IN-list previously threaded through Arg2's
// sibling chain (the parser builds `IN (a, b, c)` as a Next-linked list
// rooted at Arg2) into one RANGE's worth of EQ_NA sub-ranges.
func collectInList(c *graph.ParserContext, n *graph.Node) []graph.SubRange {
	var out []graph.SubRange
	id := n.Expr.Arg2
	for id != graph.InvalidID {
		v := c.Get(id)
		if v == nil {
			return nil
		}
		out = append(out, graph.SubRange{Op: graph.SubEqNA, Lo: id})
		id = v.Next
	}
	return out
}
