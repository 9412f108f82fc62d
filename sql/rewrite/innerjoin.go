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

// FlattenExplicitJoins implements §4.C.5: when no outer join is present
// and the ORDERED hint is absent, explicit INNER joins are downgraded to
// NONE (the optimizer is then free to reorder the FROM list), and their ON
// conditions are reset to location 0 so the predicate normalizer treats
// them as ordinary WHERE conjuncts instead of join-scoped ones.
func FlattenExplicitJoins(c *graph.ParserContext, q *graph.QueryInfo) {
	if q.OrderedHint || hasOuterJoin(c, q) {
		return
	}
	for _, specID := range q.FromSpecs {
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil || spec.Spec.JoinType != graph.JoinInner {
			continue
		}
		spec.Spec.JoinType = graph.JoinNone
		if spec.Spec.OnCond != graph.InvalidID {
			resetLocations(c, spec.Spec.OnCond, 0)
		}
	}
}

func hasOuterJoin(c *graph.ParserContext, q *graph.QueryInfo) bool {
	for _, specID := range q.FromSpecs {
		spec := c.Get(specID)
		if spec != nil && spec.Spec != nil &&
			(spec.Spec.JoinType == graph.JoinLeftOuter || spec.Spec.JoinType == graph.JoinRightOuter) {
			return true
		}
	}
	return false
}

func resetLocations(c *graph.ParserContext, head graph.NodeId, loc int) {
	graph.ForEachCNF(c, head, func(id graph.NodeId, n *graph.Node) bool {
		graph.ForEachDNF(c, id, func(_ graph.NodeId, d *graph.Node) bool {
			d.Location = loc
			return true
		})
		return true
	})
}
