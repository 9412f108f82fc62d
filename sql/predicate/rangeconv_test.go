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

func TestConvertToRange_LessThan(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	term := c.NewExpr(graph.OpLt, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(10)).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{term})

	head = ConvertToRange(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	require.Len(t, n.Expr.SubRanges, 1)
	require.Equal(t, graph.SubInfLt, n.Expr.SubRanges[0].Op)
}

func TestConvertToRange_BetweenAnd(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	term := c.NewExpr(graph.OpBetweenAnd, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	c.Get(term).Expr.Arg3 = c.NewLiteral(sql.NewInt(9)).ID
	head := graph.SliceToCNF(c, []graph.NodeId{term})

	head = ConvertToRange(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	sr := n.Expr.SubRanges[0]
	require.Equal(t, graph.SubGeLe, sr.Op)
	require.EqualValues(t, int64(1), c.Get(sr.Lo).Value.Data)
	require.EqualValues(t, int64(9), c.Get(sr.Hi).Value.Data)
}

func TestConvertToRange_InList(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	v1 := c.NewLiteral(sql.NewInt(1))
	v2 := c.NewLiteral(sql.NewInt(2))
	v1.Next = v2.ID
	term := c.NewExpr(graph.OpIn, c.NewName(x, "a").ID, v1.ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{term})

	head = ConvertToRange(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	require.Len(t, n.Expr.SubRanges, 2)
	require.Equal(t, graph.SubEqNA, n.Expr.SubRanges[0].Op)
	require.Equal(t, graph.SubEqNA, n.Expr.SubRanges[1].Op)
}

func TestConvertToRange_BareEqualityUnconverted(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	term := c.NewExpr(graph.OpEq, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(5)).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{term})

	head = ConvertToRange(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpEq, n.Expr.Op) // bare attr = const is left alone
}

func TestConvertToRange_OredEqualityConverted(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x").ID
	t1 := c.NewExpr(graph.OpEq, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(1)).ID)
	t2 := c.NewExpr(graph.OpEq, c.NewName(x, "a").ID, c.NewLiteral(sql.NewInt(2)).ID)
	disjunct := graph.SliceToDNF(c, []graph.NodeId{t1.ID, t2.ID})
	head := graph.SliceToCNF(c, []graph.NodeId{disjunct})

	head = ConvertToRange(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	require.Equal(t, graph.SubEqNA, n.Expr.SubRanges[0].Op)
	require.NotEqual(t, graph.InvalidID, n.OrNext)

	n2 := c.Get(n.OrNext)
	require.Equal(t, graph.OpRange, n2.Expr.Op)
	require.Equal(t, graph.SubEqNA, n2.Expr.SubRanges[0].Op)
}

func TestConvertToRange_InstNumEquality(t *testing.T) {
	c := graph.NewParserContext()
	instNum := c.NewFunction("INST_NUM")
	term := c.NewExpr(graph.OpEq, instNum.ID, c.NewLiteral(sql.NewInt(3)).ID).ID
	head := graph.SliceToCNF(c, []graph.NodeId{term})

	head = ConvertToRange(c, head)

	n := c.Get(head)
	require.Equal(t, graph.OpRange, n.Expr.Op)
	require.Equal(t, graph.SubEqNA, n.Expr.SubRanges[0].Op)
}
