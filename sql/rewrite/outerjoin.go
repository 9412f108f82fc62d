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

// ConvertOuterToInner implements §4.C.4: a LEFT/RIGHT OUTER spec is
// downgraded to INNER when top-level WHERE (location 0) has a
// disjunction-free conjunct that references the spec and contains no
// construct that could let a null-extended row slip through (IS NULL,
// CASE, COALESCE, NVL, NVL2, DECODE, IF, IFNULL, ISNULL). Converting one
// spec can expose the next RIGHT OUTER spec in the FROM list to the same
// proof, so a successful conversion propagates forward through any
// immediately following RIGHT OUTER specs.
func ConvertOuterToInner(c *graph.ParserContext, q *graph.QueryInfo) {
	for i, specID := range q.FromSpecs {
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil {
			continue
		}
		if spec.Spec.JoinType != graph.JoinLeftOuter && spec.Spec.JoinType != graph.JoinRightOuter {
			continue
		}
		if !hasRejectingConjunct(c, q.Where, specID) {
			continue
		}
		spec.Spec.JoinType = graph.JoinInner
		for j := i + 1; j < len(q.FromSpecs); j++ {
			next := c.Get(q.FromSpecs[j])
			if next == nil || next.Spec == nil || next.Spec.JoinType != graph.JoinRightOuter {
				break
			}
			next.Spec.JoinType = graph.JoinInner
		}
	}
}

func hasRejectingConjunct(c *graph.ParserContext, where, specID graph.NodeId) bool {
	found := false
	graph.ForEachCNF(c, where, func(id graph.NodeId, n *graph.Node) bool {
		if n.Location != 0 || n.OrNext != graph.InvalidID {
			return true // only whole, disjunction-free, top-level conjuncts qualify
		}
		if termReferencesSpec(c, id, specID) && !termContainsNullable(c, id) {
			found = true
			return false
		}
		return true
	})
	return found
}
