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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// TestRewriteLikeTerms_PrefixBecomesRange reproduces spec.md §8 scenario 1:
// `s LIKE 'abc%'` rewrites to `s RANGE ('abc' GE_LT 'abd')`.
func TestRewriteLikeTerms_PrefixBecomesRange(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("t", "t").ID
	like := c.NewExpr(graph.OpLike, c.NewName(x, "s").ID, c.NewLiteral(sql.NewString("abc%")).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{like})

	head = RewriteLikeTerms(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	require.Len(t, n.Expr.SubRanges, 1)
	sr := n.Expr.SubRanges[0]
	require.Equal(t, graph.SubGeLt, sr.Op)
	require.Equal(t, "abc", c.Get(sr.Lo).Value.Data)
	require.Equal(t, "abd", c.Get(sr.Hi).Value.Data)
}

func TestRewriteLikeTerms_NoWildcardBecomesEquality(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("t", "t").ID
	like := c.NewExpr(graph.OpLike, c.NewName(x, "s").ID, c.NewLiteral(sql.NewString("exact")).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{like})

	head = RewriteLikeTerms(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpEq, n.Expr.Op)
	require.Equal(t, "exact", c.Get(n.Expr.Arg2).Value.Data)
}

func TestRewriteLikeTerms_BareWildcardBecomesIsNotNull(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("t", "t").ID
	like := c.NewExpr(graph.OpLike, c.NewName(x, "s").ID, c.NewLiteral(sql.NewString("%")).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{like})

	head = RewriteLikeTerms(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpIsNotNull, n.Expr.Op)
}

func TestCompressWildcards(t *testing.T) {
	require.Equal(t, "a%b", compressWildcards("a%%%b"))
	require.Equal(t, "%", compressWildcards("%%%%"))
	require.Equal(t, "abc", compressWildcards("abc"))
}
