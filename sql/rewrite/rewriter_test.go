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

// spec.md §8 scenario 4, end to end: `SELECT * FROM x LEFT OUTER JOIN y ON
// x.a = y.a WHERE y.b = 1` rejects every null-extended row of y, so
// RewriteQuery downgrades the join to INNER and, with no outer join left
// and no ORDERED hint, further flattens it to NONE.
func TestRewriteQuery_OuterToInnerThenFlattened(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinLeftOuter
	y.Spec.OnCond = c.NewExpr(graph.OpEq, c.NewName(x.ID, "a").ID, c.NewName(y.ID, "a").ID).ID

	rejecting := c.NewExpr(graph.OpEq, c.NewName(y.ID, "b").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{rejecting})

	top := c.NewQuery(graph.KindSelect)
	top.Query.FromSpecs = []graph.NodeId{x.ID, y.ID}
	top.Query.Where = where
	top.Query.IsTopLevel = true

	RewriteQuery(c, top.ID)

	require.Equal(t, graph.JoinNone, y.Spec.JoinType)
	require.Equal(t, 0, c.Get(y.Spec.OnCond).Location)
}

func TestRewriteQuery_RecursesIntoDerivedTableBeforeOuterLevel(t *testing.T) {
	c := graph.NewParserContext()
	innerX := c.NewSpec("x", "x")
	innerY := c.NewSpec("y", "y")
	innerY.Spec.JoinType = graph.JoinLeftOuter
	innerRejecting := c.NewExpr(graph.OpEq, c.NewName(innerY.ID, "b").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	innerWhere := graph.SliceToCNF(c, []graph.NodeId{innerRejecting})

	inner := c.NewQuery(graph.KindSelect)
	inner.Query.FromSpecs = []graph.NodeId{innerX.ID, innerY.ID}
	inner.Query.Where = innerWhere
	inner.Query.SelectList = []graph.NodeId{c.NewName(innerX.ID, "a").ID}

	derivedSpec := c.Alloc(graph.KindSpec)
	derivedSpec.Spec = &graph.SpecInfo{DerivedTable: inner.ID, DerivedType: graph.DerivedSetExpr, RangeVar: "d"}

	outer := c.NewQuery(graph.KindSelect)
	outer.Query.FromSpecs = []graph.NodeId{derivedSpec.ID}
	outer.Query.IsTopLevel = true

	RewriteQuery(c, outer.ID)

	// the inner query runs its own full pipeline before the outer level
	// does anything, so the converted INNER join is also flattened to
	// NONE by the same pass that would apply at the top level.
	require.Equal(t, graph.JoinNone, innerY.Spec.JoinType)
}
