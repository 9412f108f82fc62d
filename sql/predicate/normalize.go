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
	"github.com/cubrid-go/rewriter/sql/log"
)

// NormalizeConfig gates the behavior spec.md §4.B.9 makes conditional.
// Loaded from YAML as part of analyzer.Config (SPEC_FULL.md's ambient
// config section); the zero value runs every pass including
// auto-parameterization-off-by-default (PlanCacheEnabled false), matching
// the conservative default a fresh installation would have.
type NormalizeConfig struct {
	HostVarLateBinding bool
	PlanCacheEnabled   bool
}

// Normalize runs the full predicate-normalizer pipeline (§4.B.1–§4.B.9) over
// one predicate chain — WHERE, HAVING, START WITH, CONNECT BY or the
// after-CONNECT-BY filter, each normalized independently by the orchestrator
// in sql/analyzer — and returns the new chain head.
//
// Passes run in the fixed order the source applies them: CNF conversion
// first so every later pass can assume a flat conjunct/disjunct shape, then
// the rewrites that only ever narrow or fold terms (converse
// normalization, IS NULL folding, comparison-pair folding, LIKE rewrite),
// then the two passes that produce and then consolidate RANGE atoms (RANGE
// conversion, range intersection), and finally auto-parameterization, which
// must see the fully-folded constant set or it would parameterize a bound a
// later pass was about to prove unreachable. Equality reduction is not run
// here: NormalizeQuery runs ReduceEqualityTerms on the WHERE clause before
// calling Normalize.
func Normalize(ctx *sql.Context, c *graph.ParserContext, head graph.NodeId, cfg NormalizeConfig, isPartitionKey PartitionKeyTest) graph.NodeId {
	if head == graph.InvalidID {
		return head
	}

	head = ToCNF(c, head)
	log.Infof("predicate: normalized to %d conjuncts", graph.CNFLen(c, head))
	if c.Aborted() {
		return head
	}

	head = ConverseSargTerms(c, head)
	head = FoldIsNullPairs(c, head)
	head = ReduceComparisonPairs(c, head)
	head = RewriteLikeTerms(c, head)
	head = ConvertToRange(c, head)
	head = ApplyRangeIntersection(c, head)
	head = AutoParameterize(c, head, cfg, isPartitionKey)

	return head
}

// NormalizeQuery runs Normalize over q's WHERE chain (including the
// equality-reduction pass, which needs the SELECT list alongside WHERE) and
// its HAVING, START WITH, CONNECT BY and after-CONNECT-BY-filter chains.
// Equality reduction runs once, first, against the raw (pre-CNF) WHERE
// list, matching the source's pass ordering where substitution happens
// before the tree is flattened.
func NormalizeQuery(ctx *sql.Context, c *graph.ParserContext, q *graph.QueryInfo, cfg NormalizeConfig, isPartitionKey PartitionKeyTest) {
	ReduceEqualityTerms(c, q)

	q.Where = Normalize(ctx, c, q.Where, cfg, isPartitionKey)
	q.Having = Normalize(ctx, c, q.Having, cfg, isPartitionKey)
	q.StartWith = Normalize(ctx, c, q.StartWith, cfg, isPartitionKey)
	q.ConnectBy = Normalize(ctx, c, q.ConnectBy, cfg, isPartitionKey)
	q.AfterCBFilter = Normalize(ctx, c, q.AfterCBFilter, cfg, isPartitionKey)
}
