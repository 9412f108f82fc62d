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

// CollapseFalseLocations implements the FALSE-propagation rule of §7: if a
// literal FALSE conjunct sits at location 0, the whole predicate collapses
// to FALSE; if it sits at a non-zero location (an ON-clause group), every
// conjunct at that location is deleted and a single FALSE at that location
// is appended in their place (the outer-join group degenerates to
// null-extension only).
//
// Passes that fold a term to FALSE in place (comparison-pair folding,
// range intersection) call this once they are done splicing, rather than
// each re-implementing the location-wide cleanup.
func CollapseFalseLocations(c *graph.ParserContext, head graph.NodeId) graph.NodeId {
	conjuncts := graph.CNFToSlice(c, head)

	for _, cid := range conjuncts {
		n := c.Get(cid)
		if n.OrNext == graph.InvalidID && n.Kind == graph.KindExpr && n.Expr != nil && n.Expr.Op == graph.OpFalse && n.Location == 0 {
			return cid
		}
	}

	falseLocations := map[int]bool{}
	for _, cid := range conjuncts {
		n := c.Get(cid)
		if n.OrNext == graph.InvalidID && n.Kind == graph.KindExpr && n.Expr != nil && n.Expr.Op == graph.OpFalse && n.Location != 0 {
			falseLocations[n.Location] = true
		}
	}
	if len(falseLocations) == 0 {
		return head
	}

	var kept []graph.NodeId
	appended := map[int]bool{}
	for _, cid := range conjuncts {
		n := c.Get(cid)
		if falseLocations[n.Location] {
			if !appended[n.Location] {
				f := c.NewExpr(graph.OpFalse, graph.InvalidID, graph.InvalidID)
				f.Location = n.Location
				kept = append(kept, f.ID)
				appended[n.Location] = true
			}
			continue
		}
		kept = append(kept, cid)
	}
	return graph.SliceToCNF(c, kept)
}
