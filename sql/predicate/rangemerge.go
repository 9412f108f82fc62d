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

// ApplyRangeIntersection implements qo_apply_range_intersection (§4.B.8):
// every pair of whole top-level conjuncts that are themselves bare RANGE
// atoms (no internal OR) on the same attribute at the same location is an
// implicit AND, so they are merged into one, by intersecting their
// sub-range sets. A merge that yields no sub-ranges flags the result
// EMPTY_RANGE and propagates FALSE exactly as comparison-pair folding does
// (§7). RANGE atoms that are themselves OR'd disjuncts within one conjunct
// are never merged this way — that OR is a union, not an AND, and
// intersecting it would change the predicate's meaning.
//
// This satisfies P3 (at most one RANGE atom per attribute per location) and
// P4 (sub-ranges within one RANGE are pairwise disjoint after merging,
// since any overlap between two inputs' sub-ranges is itself collapsed into
// a single merged sub-range by intersectSubRange).
func ApplyRangeIntersection(c *graph.ParserContext, head graph.NodeId) graph.NodeId {
	conjuncts := graph.CNFToSlice(c, head)
	groups := map[locAttr]int{}
	var kept []graph.NodeId

	for _, cid := range conjuncts {
		n := c.Get(cid)
		key, ok := rangeLocAttr(c, n)
		if !ok {
			kept = append(kept, cid)
			continue
		}
		if idx, exists := groups[key]; exists {
			mergeRangeNodes(c, c.Get(kept[idx]), n)
			continue // dropped; merged into the first occurrence
		}
		groups[key] = len(kept)
		kept = append(kept, cid)
	}
	return CollapseFalseLocations(c, graph.SliceToCNF(c, kept))
}

// locAttr groups RANGE atoms eligible for merging: same attribute, same
// location (P3 is scoped per-location, not per-conjunct).
type locAttr struct {
	specID   graph.NodeId
	column   string
	location int
}

func rangeLocAttr(c *graph.ParserContext, n *graph.Node) (locAttr, bool) {
	if n.OrNext != graph.InvalidID || n.Kind != graph.KindExpr || n.Expr == nil || n.Expr.Op != graph.OpRange {
		return locAttr{}, false
	}
	attr := c.StripPrior(c.Get(n.Expr.Arg1))
	if attr == nil || attr.Kind != graph.KindName {
		return locAttr{}, false
	}
	return locAttr{attr.Name.SpecID, attr.Name.ColumnName, n.Location}, true
}

// mergeRangeNodes intersects b's sub-ranges into a in place.
func mergeRangeNodes(c *graph.ParserContext, a, b *graph.Node) {
	var merged []graph.SubRange
	for _, sa := range a.Expr.SubRanges {
		for _, sb := range b.Expr.SubRanges {
			if sr, ok := intersectSubRange(c, sa, sb); ok {
				merged = append(merged, sr)
			}
		}
	}
	a.Expr.SubRanges = merged
	if len(merged) == 0 {
		a.Flags.Set(graph.FlagEmptyRange)
		a.Expr.Op = graph.OpFalse
		a.Expr.Arg1, a.Expr.Arg2, a.Expr.SubRanges = graph.InvalidID, graph.InvalidID, nil
	}
}

// intersectSubRange computes the intersection of two sub-ranges. Bounds
// that are not literal values are assumed compatible with the other side's
// matching bound (the source's mini-evaluator would fold them; this
// package only normalizes, it does not evaluate host variables), so when
// two bounds on the same side are not both literals, a's bound is kept
// (see tighterLower/tighterUpper).
func intersectSubRange(c *graph.ParserContext, a, b graph.SubRange) (graph.SubRange, bool) {
	a, b = closeEqNA(a), closeEqNA(b)
	loId, loIncl, hasLo := tighterLower(c, a, b)
	hiId, hiIncl, hasHi := tighterUpper(c, a, b)

	if hasLo && hasHi {
		av, aok := literalOf(c, loId)
		bv, bok := literalOf(c, hiId)
		if aok && bok {
			switch sql.Compare(av, bv) {
			case sql.Greater, sql.GreaterAdjacent:
				return graph.SubRange{}, false // empty: lower bound above upper bound
			case sql.Equal:
				if !(loIncl && hiIncl) {
					return graph.SubRange{}, false // empty: single point excluded by a strict endpoint
				}
			}
		}
	}

	op := rangeOpFor(hasLo, loIncl, hasHi, hiIncl)
	return graph.SubRange{Op: op, Lo: loId, Hi: hiId}, true
}

// closeEqNA mirrors an EQ_NA sub-range's Lo into Hi, matching
// rangeprune.go's treatment of EQ_NA as a closed, degenerate [lo, lo]
// range. EQ_NA only ever populates Lo (rangeconv.go:50,94), so without this
// tighterLower/tighterUpper would derive bound presence from Op.HasLower()/
// HasUpper() and end up trusting an Hi that was never actually set.
func closeEqNA(sr graph.SubRange) graph.SubRange {
	if sr.Op == graph.SubEqNA {
		sr.Hi = sr.Lo
	}
	return sr
}

// tighterLower picks whichever of a/b's lower bound is more restrictive
// (the larger value), falling back to a's bound when the two are not both
// literal constants (host variables are left for the plan-cache's late
// binding, per SPEC_FULL.md's ambient config).
func tighterLower(c *graph.ParserContext, a, b graph.SubRange) (graph.NodeId, bool, bool) {
	aHas, bHas := a.Lo != graph.InvalidID, b.Lo != graph.InvalidID
	switch {
	case aHas && !bHas:
		return a.Lo, a.Op.LowerInclusive(), true
	case bHas && !aHas:
		return b.Lo, b.Op.LowerInclusive(), true
	case !aHas && !bHas:
		return graph.InvalidID, false, false
	default:
		av, aok := literalOf(c, a.Lo)
		bv, bok := literalOf(c, b.Lo)
		if aok && bok {
			switch sql.Compare(av, bv) {
			case sql.Greater, sql.GreaterAdjacent:
				return a.Lo, a.Op.LowerInclusive(), true
			case sql.Equal:
				if a.Op.LowerInclusive() && !b.Op.LowerInclusive() {
					return b.Lo, false, true
				}
				return a.Lo, a.Op.LowerInclusive(), true
			}
			return b.Lo, b.Op.LowerInclusive(), true
		}
		return a.Lo, a.Op.LowerInclusive(), true
	}
}

func tighterUpper(c *graph.ParserContext, a, b graph.SubRange) (graph.NodeId, bool, bool) {
	aHas, bHas := a.Hi != graph.InvalidID, b.Hi != graph.InvalidID
	switch {
	case aHas && !bHas:
		return a.Hi, a.Op.UpperInclusive(), true
	case bHas && !aHas:
		return b.Hi, b.Op.UpperInclusive(), true
	case !aHas && !bHas:
		return graph.InvalidID, false, false
	default:
		av, aok := literalOf(c, a.Hi)
		bv, bok := literalOf(c, b.Hi)
		if aok && bok {
			switch sql.Compare(av, bv) {
			case sql.Less, sql.LessAdjacent:
				return a.Hi, a.Op.UpperInclusive(), true
			case sql.Equal:
				if a.Op.UpperInclusive() && !b.Op.UpperInclusive() {
					return b.Hi, false, true
				}
				return a.Hi, a.Op.UpperInclusive(), true
			}
			return b.Hi, b.Op.UpperInclusive(), true
		}
		return a.Hi, a.Op.UpperInclusive(), true
	}
}

// literalOf returns the constant value held at id, if id names a KindValue
// node.
func literalOf(c *graph.ParserContext, id graph.NodeId) (sql.Value, bool) {
	n := c.Get(id)
	if n == nil || n.Value == nil {
		return sql.Value{}, false
	}
	return *n.Value, true
}

func rangeOpFor(hasLo, loIncl, hasHi, hiIncl bool) graph.SubRangeOp {
	switch {
	case hasLo && hasHi && loIncl && hiIncl:
		return graph.SubGeLe
	case hasLo && hasHi && loIncl && !hiIncl:
		return graph.SubGeLt
	case hasLo && hasHi && !loIncl && hiIncl:
		return graph.SubGtLe
	case hasLo && hasHi:
		return graph.SubGtLt
	case hasLo && loIncl:
		return graph.SubGeInf
	case hasLo:
		return graph.SubGtInf
	case hasHi && hiIncl:
		return graph.SubInfLe
	case hasHi:
		return graph.SubInfLt
	default:
		return graph.SubInvalid
	}
}
