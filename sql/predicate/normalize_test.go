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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// TestNormalize_LikeToRange is spec.md §8 scenario 1 end to end through the
// full pipeline, confirming LIKE rewrite survives CNF conversion and
// auto-parameterization (disabled here) leaves it a plain literal RANGE.
func TestNormalize_LikeToRange(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	c := graph.NewParserContext()
	x := c.NewSpec("t", "t").ID
	like := c.NewExpr(graph.OpLike, c.NewName(x, "s").ID, c.NewLiteral(sql.NewString("abc%")).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{like})

	head = Normalize(ctx, c, head, NormalizeConfig{}, nil)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	sr := n.Expr.SubRanges[0]
	require.Equal(t, graph.SubGeLt, sr.Op)
	require.Equal(t, "abc", c.Get(sr.Lo).Value.Data)
	require.Equal(t, "abd", c.Get(sr.Hi).Value.Data)
}

// TestNormalize_ComparisonPairToRange is spec.md §8 scenario 2.
func TestNormalize_ComparisonPairToRange(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	lo := c.NewExpr(graph.OpGe, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(10)).ID).ID
	hi := c.NewExpr(graph.OpLe, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(20)).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{lo, hi})

	head = Normalize(ctx, c, head, NormalizeConfig{}, nil)

	conjuncts := graph.CNFToSlice(c, head)
	require.Len(t, conjuncts, 1)
	n := c.Get(conjuncts[0])
	require.Equal(t, graph.OpRange, n.Expr.Op)
	sr := n.Expr.SubRanges[0]
	require.Equal(t, graph.SubGeLe, sr.Op)
	require.EqualValues(t, int64(10), c.Get(sr.Lo).Value.Data)
	require.EqualValues(t, int64(20), c.Get(sr.Hi).Value.Data)
}

// TestNormalize_TransitiveJoinEquality is spec.md §8 scenario 3: equality
// reduction runs before CNF conversion via NormalizeQuery, substituting
// `x.a` with the literal `5` in the select list and appending a
// TRANSITIVE-flagged copy of the join term.
func TestNormalize_TransitiveJoinEquality(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	y := c.NewSpec("y", "y").ID

	eqConst := c.NewExpr(graph.OpEq, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(5)).ID).ID
	eqJoin := c.NewExpr(graph.OpEq, c.NewName(x, "a").ID, c.NewName(y, "b").ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{eqConst, eqJoin})

	selXA := c.NewName(x, "a")
	q := &graph.QueryInfo{Where: where, SelectList: []graph.NodeId{selXA.ID}}

	NormalizeQuery(ctx, c, q, NormalizeConfig{}, nil)

	sel := c.Get(q.SelectList[0])
	require.Equal(t, graph.KindValue, sel.Kind)
	require.EqualValues(t, int64(5), sel.Value.Data)

	conjuncts := graph.CNFToSlice(c, q.Where)
	require.GreaterOrEqual(t, len(conjuncts), 2)
	var sawTransitive bool
	for _, cid := range conjuncts {
		if c.Get(cid).Flags.Has(graph.FlagTransitive) {
			sawTransitive = true
		}
	}
	require.True(t, sawTransitive)
}

// TestNormalize_RangeIntersectionToFalse is spec.md §8 scenario 6.
func TestNormalize_RangeIntersectionToFalse(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID

	t1 := c.NewExpr(graph.OpBetweenAnd, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(10)).ID).ID
	c.Get(t1).Expr.Arg3 = c.NewLiteral(sql.NewInt(20)).ID
	t2 := c.NewExpr(graph.OpBetweenAnd, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(30)).ID).ID
	c.Get(t2).Expr.Arg3 = c.NewLiteral(sql.NewInt(40)).ID
	head := graph.SliceToCNF(c, []graph.NodeId{t1, t2})

	head = Normalize(ctx, c, head, NormalizeConfig{}, nil)

	n := c.Get(head)
	require.Equal(t, graph.OpFalse, n.Expr.Op)
}

func TestNormalize_AutoParameterizeEndToEnd(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	term := c.NewExpr(graph.OpGe, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(10)).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{term})

	head = Normalize(ctx, c, head, NormalizeConfig{PlanCacheEnabled: true}, nil)

	n := c.Get(head)
	lo := c.Get(n.Expr.SubRanges[0].Lo)
	require.Equal(t, graph.KindHostVar, lo.Kind)
}
