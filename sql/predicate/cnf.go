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

// Package predicate implements Component B: the predicate normalizer. Each
// file implements one pass from spec.md §4.B, in the order Normalize runs
// them. Passes operate on a *graph.ParserContext and a predicate head
// (graph.NodeId), returning the rewritten head — never mutating through a
// stale id, since a pass may replace its own root (e.g. folding to FALSE).
package predicate

import "github.com/cubrid-go/rewriter/sql/graph"

// ToCNF rewrites an arbitrary boolean expression tree into the CNF-list /
// DNF-chain shape: the result is a Next-chain of conjuncts, each itself an
// OrNext-chain of disjuncts, with NOT pushed to the atoms (§4.B.1).
//
// This is a direct distribution implementation, matching the source's
// approach for ordinary WHERE clauses (no Tseitin transformation): OR of
// two CNF results is their cross product. Statements pathological enough to
// blow this up are outside the scope the source itself optimizes for.
func ToCNF(c *graph.ParserContext, root graph.NodeId) graph.NodeId {
	if root == graph.InvalidID {
		return graph.InvalidID
	}
	clauses := toCNFList(c, root, false)

	kept := make([][]graph.NodeId, 0, len(clauses))
	for _, disjuncts := range clauses {
		if isLiteralDisjunct(c, disjuncts, graph.OpTrue) {
			continue // TRUE conjunct collapsed away
		}
		if isLiteralDisjunct(c, disjuncts, graph.OpFalse) {
			return litFalse(c) // FALSE conjunct collapses the whole predicate
		}
		kept = append(kept, disjuncts)
	}

	conjuncts := make([]graph.NodeId, 0, len(kept))
	for _, disjuncts := range kept {
		conjuncts = append(conjuncts, graph.SliceToDNF(c, disjuncts))
	}
	return graph.SliceToCNF(c, conjuncts)
}

func isLiteralDisjunct(c *graph.ParserContext, d []graph.NodeId, op graph.ExprOp) bool {
	if len(d) != 1 {
		return false
	}
	n := c.Get(d[0])
	return n != nil && n.Kind == graph.KindExpr && n.Expr != nil && n.Expr.Op == op
}

// toCNFList returns the CNF form of root (optionally negated) as a list of
// conjuncts, each a list of disjunct node ids. Literal TRUE/FALSE conjuncts
// stay in the list; ToCNF collapses them per §4.B.1 (a FALSE conjunct
// collapses the whole predicate to FALSE, a TRUE conjunct is dropped).
func toCNFList(c *graph.ParserContext, n graph.NodeId, negate bool) [][]graph.NodeId {
	node := c.Get(n)
	if node == nil {
		return nil
	}

	if node.Kind == graph.KindExpr && node.Expr != nil {
		switch node.Expr.Op {
		case graph.OpAnd, graph.OpOr:
			left := toCNFList(c, node.Expr.Arg1, negate)
			right := toCNFList(c, node.Expr.Arg2, negate)
			isAnd := node.Expr.Op == graph.OpAnd
			if negate {
				isAnd = !isAnd // De Morgan
			}
			if isAnd {
				return mergeAnd(left, right)
			}
			return distributeOr(c, left, right)
		case graph.OpNot:
			return toCNFList(c, node.Expr.Arg1, !negate)
		case graph.OpTrue:
			if negate {
				return [][]graph.NodeId{{litFalse(c)}}
			}
			return nil
		case graph.OpFalse:
			if negate {
				return nil
			}
			return [][]graph.NodeId{{litFalse(c)}}
		}
	}

	// Atom: leave as-is or negate it in place.
	atom := n
	if negate {
		atom = negateAtom(c, n)
	}
	return [][]graph.NodeId{{atom}}
}

func mergeAnd(a, b [][]graph.NodeId) [][]graph.NodeId {
	out := make([][]graph.NodeId, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func distributeOr(c *graph.ParserContext, a, b [][]graph.NodeId) [][]graph.NodeId {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([][]graph.NodeId, 0, len(a)*len(b))
	for _, da := range a {
		for _, db := range b {
			combined := make([]graph.NodeId, 0, len(da)+len(db))
			combined = append(combined, da...)
			combined = append(combined, db...)
			out = append(out, combined)
		}
	}
	return out
}

func litTrue(c *graph.ParserContext) graph.NodeId {
	return c.NewExpr(graph.OpTrue, graph.InvalidID, graph.InvalidID).ID
}

func litFalse(c *graph.ParserContext) graph.NodeId {
	return c.NewExpr(graph.OpFalse, graph.InvalidID, graph.InvalidID).ID
}

// negateAtom negates a single comparison/LIKE/IS-NULL/BETWEEN atom in
// place, choosing the syntactic converse when one exists (so later passes
// see a plain comparison rather than a NOT_TERM wrapper) and falling back
// to an explicit NOT wrapper otherwise.
func negateAtom(c *graph.ParserContext, n graph.NodeId) graph.NodeId {
	node := c.Get(n)
	if node == nil || node.Kind != graph.KindExpr || node.Expr == nil {
		return wrapNot(c, n)
	}
	switch node.Expr.Op {
	case graph.OpEq:
		node.Expr.Op = graph.OpNe
		return n
	case graph.OpNe:
		node.Expr.Op = graph.OpEq
		return n
	case graph.OpLt:
		node.Expr.Op = graph.OpGe
		return n
	case graph.OpLe:
		node.Expr.Op = graph.OpGt
		return n
	case graph.OpGt:
		node.Expr.Op = graph.OpLe
		return n
	case graph.OpGe:
		node.Expr.Op = graph.OpLt
		return n
	case graph.OpIsNull:
		node.Expr.Op = graph.OpIsNotNull
		return n
	case graph.OpIsNotNull:
		node.Expr.Op = graph.OpIsNull
		return n
	default:
		return wrapNot(c, n)
	}
}

func wrapNot(c *graph.ParserContext, n graph.NodeId) graph.NodeId {
	return c.NewExpr(graph.OpNot, n, graph.InvalidID).ID
}
