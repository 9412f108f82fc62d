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

package partition

import (
	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// evaluatedSubRange is one RANGE sub-range with its bounds already folded
// to constants, the shape the HASH/RANGE/LIST branches of §4.D dispatch on.
type evaluatedSubRange struct {
	op    graph.SubRangeOp
	lo    sql.Value
	hi    sql.Value
	hasLo bool
	hasHi bool
}

// Prune implements §4.D end to end for one partitioned spec: it mutates
// spec.FlatEntityList/PartitionPruned in place when the predicate rooted at
// where provably restricts the row set to fewer children than d's full
// list. It returns cannotPrepare=true (§7's soft CANNOT_PREPARE row) the
// moment an unbound host variable or an operator outside the mini
// evaluator's closed set shows up in a term that otherwise matched the
// partition key — at that point pruning for the whole statement aborts
// rather than falling back to "keep every partition" for just that term.
func Prune(c *graph.ParserContext, specID graph.NodeId, spec *graph.SpecInfo, d Descriptor, where graph.NodeId) (cannotPrepare bool) {
	result := fullSet(len(d.Parts))
	sawConstraint := false

	graph.ForEachCNF(c, where, func(_ graph.NodeId, n *graph.Node) bool {
		conjSet, matched, abort := conjunctPartitionSet(c, specID, d, n)
		if abort {
			cannotPrepare = true
			return false
		}
		if !matched {
			return true
		}
		sawConstraint = true
		result = result.intersect(conjSet)
		return true
	})
	if cannotPrepare || !sawConstraint {
		return cannotPrepare
	}

	if indices := result.indices(); len(indices) < len(d.Parts) {
		applyPrune(spec, d, indices)
	}
	return false
}

func applyPrune(spec *graph.SpecInfo, d Descriptor, indices []int) {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = d.Parts[idx].Name
	}
	spec.FlatEntityList = names
	spec.PartitionPruned = true
}

// conjunctPartitionSet unions the partition sets of every disjunct in the
// conjunct headed at n that references the partition key. If any disjunct
// in the OR-chain does not reference the key at all, the disjunction as a
// whole can be satisfied regardless of partition, so the conjunct
// contributes no constraint (matched=false) rather than a partial union.
func conjunctPartitionSet(c *graph.ParserContext, specID graph.NodeId, d Descriptor, n *graph.Node) (result set, matched bool, abort bool) {
	result = newSet()
	allMatched := true
	graph.ForEachDNF(c, n.ID, func(_ graph.NodeId, dn *graph.Node) bool {
		s, ok, mustAbort := termPartitionSet(c, specID, d, dn)
		if mustAbort {
			abort = true
			return false
		}
		if !ok {
			allMatched = false
			return true
		}
		matched = true
		result = result.union(s)
		return true
	})
	if abort {
		return nil, false, true
	}
	if !allMatched {
		return nil, false, false
	}
	return result, matched, false
}

func termPartitionSet(c *graph.ParserContext, specID graph.NodeId, d Descriptor, n *graph.Node) (s set, matched bool, abort bool) {
	if n.Kind != graph.KindExpr || n.Expr == nil {
		return nil, false, false
	}
	left := c.Get(n.Expr.Arg1)
	if left == nil || left.Kind != graph.KindName || left.Name == nil ||
		left.Name.SpecID != specID || left.Name.ColumnName != d.KeyAttr {
		return nil, false, false
	}

	var subs []evaluatedSubRange
	switch n.Expr.Op {
	case graph.OpRange:
		for _, sr := range n.Expr.SubRanges {
			esr, ok := evalSubRange(c, sr)
			if !ok {
				return nil, true, true
			}
			subs = append(subs, esr)
		}
	case graph.OpEq:
		v, ok := evalConstant(c, n.Expr.Arg2)
		if !ok {
			return nil, true, true
		}
		subs = []evaluatedSubRange{{op: graph.SubEqNA, lo: v, hasLo: true}}
	default:
		return nil, false, false
	}

	result := newSet()
	for _, esr := range subs {
		result = result.union(dispatchSubRange(d, esr))
	}
	return result, true, false
}

func dispatchSubRange(d Descriptor, sr evaluatedSubRange) set {
	switch d.Type {
	case TypeHash:
		return hashSubRangeSet(d, sr)
	case TypeRange:
		return rangeSubRangeSet(d, sr)
	case TypeList:
		return listSubRangeSet(d, sr)
	default:
		return fullSet(len(d.Parts))
	}
}

func evalSubRange(c *graph.ParserContext, sr graph.SubRange) (evaluatedSubRange, bool) {
	out := evaluatedSubRange{op: sr.Op}
	if sr.Lo != graph.InvalidID {
		v, ok := evalConstant(c, sr.Lo)
		if !ok {
			return out, false
		}
		out.lo, out.hasLo = v, true
	}
	if sr.Hi != graph.InvalidID {
		v, ok := evalConstant(c, sr.Hi)
		if !ok {
			return out, false
		}
		out.hi, out.hasHi = v, true
	}
	return out, true
}
