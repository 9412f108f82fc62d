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

// FoldIsNullPairs implements qo_fold_is_and_not_null (§4.B.4): an
// `attr IS NULL` / `attr IS NOT NULL` top-level conjunct is meaningful only
// when no other top-level conjunct at the same location constrains the
// same attribute. PRIOR on either side excludes the pair from this rule.
func FoldIsNullPairs(c *graph.ParserContext, head graph.NodeId) graph.NodeId {
	conjuncts := graph.CNFToSlice(c, head)

	// Snapshot each conjunct's shape before any mutation: a decision for
	// conjunct i must see conjunct j's original op, not whatever j was
	// folded to earlier in this same pass (two IS NULL / IS NOT NULL peers
	// must each see the other's original test, not an already-folded FALSE).
	type shape struct {
		isNull   bool
		op       graph.ExprOp
		attr     *graph.Node
		cmpAttr  *graph.Node
		isCmp    bool
		location int
		prior    bool
	}
	shapes := make([]shape, len(conjuncts))
	for i, cid := range conjuncts {
		n := c.Get(cid)
		s := shape{location: n.Location, prior: hasPrior(c, n)}
		if attr, ok := nullTestAttr(c, n); ok {
			s.isNull, s.op, s.attr = true, n.Expr.Op, attr
		} else if attrOf, ok := comparisonAttr(c, n); ok {
			s.isCmp, s.cmpAttr = true, attrOf
		}
		shapes[i] = s
	}

	for i, cid := range conjuncts {
		n := c.Get(cid)
		s := shapes[i]
		if n.OrNext != graph.InvalidID || !s.isNull || s.prior {
			continue
		}
		for j, other := range shapes {
			if j == i || other.location != s.location || other.prior {
				continue
			}
			var sameAttr bool
			if other.isNull {
				sameAttr = c.NameEqual(s.attr, other.attr)
			} else if other.isCmp {
				sameAttr = c.NameEqual(s.attr, other.cmpAttr)
			}
			if !sameAttr {
				continue
			}
			if other.isNull {
				setConjunctLiteral(n, s.op == other.op)
			} else {
				setConjunctLiteral(n, s.op == graph.OpIsNotNull)
			}
			break
		}
	}
	return graph.SliceToCNF(c, conjuncts)
}

func isNullTest(n *graph.Node) bool {
	return n != nil && n.Kind == graph.KindExpr && n.Expr != nil &&
		(n.Expr.Op == graph.OpIsNull || n.Expr.Op == graph.OpIsNotNull)
}

func nullTestAttr(c *graph.ParserContext, n *graph.Node) (*graph.Node, bool) {
	if !isNullTest(n) {
		return nil, false
	}
	return c.Get(n.Expr.Arg1), true
}

func comparisonAttr(c *graph.ParserContext, n *graph.Node) (*graph.Node, bool) {
	if n.Kind != graph.KindExpr || n.Expr == nil || !n.Expr.Op.IsComparison() {
		return nil, false
	}
	a1, a2 := c.Get(n.Expr.Arg1), c.Get(n.Expr.Arg2)
	if c.IsAttr(a1) {
		return a1, true
	}
	if c.IsAttr(a2) {
		return a2, true
	}
	return nil, false
}

func hasPrior(c *graph.ParserContext, n *graph.Node) bool {
	if n.Expr == nil {
		return false
	}
	for _, arg := range []graph.NodeId{n.Expr.Arg1, n.Expr.Arg2} {
		a := c.Get(arg)
		if a != nil && a.Kind == graph.KindExpr && a.Expr != nil && a.Expr.Op == graph.OpPrior {
			return true
		}
	}
	return false
}

func setConjunctLiteral(n *graph.Node, truth bool) {
	if truth {
		n.Expr.Op = graph.OpTrue
	} else {
		n.Expr.Op = graph.OpFalse
	}
	n.Expr.Arg1, n.Expr.Arg2, n.Expr.Arg3 = graph.InvalidID, graph.InvalidID, graph.InvalidID
}
