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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// spec.md §8 scenario 4: `FROM x LEFT OUTER JOIN y ON x.a = y.a WHERE y.b =
// 1` rejects every null-extended row, so the LEFT OUTER JOIN converts to
// INNER.
func TestConvertOuterToInner_RejectingConjunctConverts(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinLeftOuter

	term := c.NewExpr(graph.OpEq, c.NewName(y.ID, "b").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{term})
	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}, Where: where}

	ConvertOuterToInner(c, q)

	require.Equal(t, graph.JoinInner, y.Spec.JoinType)
}

func TestConvertOuterToInner_IsNullGuardPreventsConversion(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinLeftOuter

	term := c.NewExpr(graph.OpIsNull, c.NewName(y.ID, "b").ID, graph.InvalidID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{term})
	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}, Where: where}

	ConvertOuterToInner(c, q)

	require.Equal(t, graph.JoinLeftOuter, y.Spec.JoinType)
}

func TestConvertOuterToInner_PropagatesToFollowingRightOuter(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	z := c.NewSpec("z", "z")
	y.Spec.JoinType = graph.JoinLeftOuter
	z.Spec.JoinType = graph.JoinRightOuter

	term := c.NewExpr(graph.OpEq, c.NewName(y.ID, "b").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{term})
	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID, z.ID}, Where: where}

	ConvertOuterToInner(c, q)

	require.Equal(t, graph.JoinInner, y.Spec.JoinType)
	require.Equal(t, graph.JoinInner, z.Spec.JoinType)
}
