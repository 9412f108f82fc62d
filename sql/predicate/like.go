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
	"strings"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// RewriteLikeTerms implements qo_compress_wildcards_in_like_pattern plus
// qo_rewrite_like_terms (§4.B.6): `attr LIKE pattern` for a literal string
// pattern is rewritten to the cheapest equivalent the planner can use
// directly, trying each special case in order.
func RewriteLikeTerms(c *graph.ParserContext, head graph.NodeId) graph.NodeId {
	graph.Walk(c, head, func(id graph.NodeId, n *graph.Node) graph.Control {
		if n.Kind != graph.KindExpr || n.Expr == nil || n.Expr.Op != graph.OpLike {
			return graph.Continue
		}
		attr, pat := c.Get(n.Expr.Arg1), c.Get(n.Expr.Arg2)
		if !c.IsAttr(attr) || pat == nil || pat.Value == nil {
			return graph.Continue
		}
		s, ok := pat.Value.Data.(string)
		if !ok {
			return graph.Continue
		}
		rewriteLikeNode(c, n, attr.ID, compressWildcards(s))
		return graph.Continue
	}, nil)
	return head
}

// compressWildcards collapses runs of '%' into one, per the source's
// qo_compress_wildcards_in_like_pattern.
func compressWildcards(pattern string) string {
	var b strings.Builder
	prevPct := false
	for _, r := range pattern {
		if r == '%' {
			if prevPct {
				continue
			}
			prevPct = true
		} else {
			prevPct = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func rewriteLikeNode(c *graph.ParserContext, n *graph.Node, attr graph.NodeId, pattern string) {
	switch {
	case pattern == "%":
		n.Expr.Op = graph.OpIsNotNull
		n.Expr.Arg2 = graph.InvalidID
	case !strings.ContainsAny(pattern, "%_"):
		if strings.HasSuffix(pattern, " ") {
			return // trailing blank defeats the optimization
		}
		n.Expr.Op = graph.OpEq
		n.Expr.Arg2 = c.NewLiteral(sql.NewString(pattern)).ID
	case strings.HasSuffix(pattern, "%") && !strings.ContainsAny(pattern[:len(pattern)-1], "%_"):
		prefix := pattern[:len(pattern)-1]
		if strings.HasSuffix(prefix, " ") {
			return
		}
		lo := c.NewLiteral(sql.NewString(prefix)).ID
		hi := c.NewLiteral(sql.NewString(sql.IncrementString(prefix))).ID
		n.Expr.Op = graph.OpRange
		n.Expr.Arg2 = graph.InvalidID
		n.Expr.SubRanges = []graph.SubRange{{Op: graph.SubGeLt, Lo: lo, Hi: hi}}
	}
}
