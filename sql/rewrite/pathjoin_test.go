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

func TestAnalyzePathJoin_RejectingPredicateBecomesInner(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinLeftOuter

	// WHERE y.a = 1 is only satisfiable for matched rows: a LEFT OUTER
	// JOIN whose null-extended side this predicate rejects degrades to
	// PATH_INNER.
	term := c.NewExpr(graph.OpEq, c.NewName(y.ID, "a").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{term})

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}, Where: where}
	AnalyzePathJoin(c, q)

	require.Equal(t, graph.MetaClassPathInner, y.Spec.MetaClass)
	require.Equal(t, graph.JoinInner, y.Spec.JoinType)
}

func TestAnalyzePathJoin_IsNullGuardStaysOuter(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinLeftOuter

	// WHERE y.a IS NULL OR y.a > 1 tolerates the null-extended row, so
	// the outer join cannot be downgraded to INNER; since y is
	// referenced it classifies as the weasel variant rather than plain
	// PATH_OUTER.
	isNull := c.NewExpr(graph.OpIsNull, c.NewName(y.ID, "a").ID, graph.InvalidID).ID
	gt := c.NewExpr(graph.OpGt, c.NewName(y.ID, "a").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	c.Get(isNull).OrNext = gt
	where := graph.SliceToCNF(c, []graph.NodeId{isNull})

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}, Where: where}
	AnalyzePathJoin(c, q)

	require.Equal(t, graph.MetaClassPathOuterWeasel, y.Spec.MetaClass)
	require.Equal(t, graph.JoinLeftOuter, y.Spec.JoinType)
}

func TestAnalyzePathJoin_UnreferencedStaysPlainOuter(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinLeftOuter

	term := c.NewExpr(graph.OpEq, c.NewName(x.ID, "a").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{term})

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}, Where: where}
	AnalyzePathJoin(c, q)

	require.Equal(t, graph.MetaClassPathOuter, y.Spec.MetaClass)
	require.Equal(t, graph.JoinLeftOuter, y.Spec.JoinType)
}
