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

// WrapHiddenColumnDerived implements the first half of §4.C.6: a subquery
// whose ORDER BY reaches a hidden column (a pseudocolumn like the OID that
// never belongs in an outer projection) is passed to WrapAsDerivedTable,
// so the hidden column stays visible to the ORDER BY inside the wrapper
// while disappearing from whatever the outer query can select.
// WrapAsDerivedTable wraps only a UNION/DIFFERENCE/INTERSECTION query; a
// plain SELECT whose ORDER BY reaches a hidden column is returned unchanged
// and is not wrapped.
func WrapHiddenColumnDerived(c *graph.ParserContext, spec *graph.SpecInfo) {
	if spec == nil || spec.DerivedTable == graph.InvalidID {
		return
	}
	sub := c.Get(spec.DerivedTable)
	if sub == nil || sub.Query == nil || !orderByReferencesHidden(c, sub.Query) {
		return
	}
	spec.DerivedTable = WrapAsDerivedTable(c, spec.DerivedTable)
}

func orderByReferencesHidden(c *graph.ParserContext, q *graph.QueryInfo) bool {
	for _, ob := range q.OrderBy {
		hidden := false
		termWalk(c, ob, func(n *graph.Node) bool {
			if n.Flags.Has(graph.FlagHiddenColumn) {
				hidden = true
				return false
			}
			return true
		})
		if hidden {
			return true
		}
	}
	return false
}

// PruneUnnecessaryOrderBy implements the second half of §4.C.6: an ORDER BY
// that nothing downstream can observe is dropped rather than carried
// through the plan. It is observable only if q is itself the top-level
// result producer, its select list contains ORDERBY_NUM(), or it carries a
// limit (ORDER BY ... FOR n) that depends on the ordering to pick rows.
func PruneUnnecessaryOrderBy(q *graph.QueryInfo) {
	if q.IsTopLevel || q.HasOrderByNum || q.OrderByLimited {
		return
	}
	q.OrderBy = nil
}
