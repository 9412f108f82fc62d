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

	"github.com/cubrid-go/rewriter/sql/graph"
)

func TestFlattenExplicitJoins_DowngradesInnerAndResetsLocation(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinInner

	onCond := c.NewExpr(graph.OpEq, c.NewName(x.ID, "a").ID, c.NewName(y.ID, "a").ID).ID
	c.Get(onCond).Location = 1
	y.Spec.OnCond = onCond

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}}
	FlattenExplicitJoins(c, q)

	require.Equal(t, graph.JoinNone, y.Spec.JoinType)
	require.Equal(t, 0, c.Get(onCond).Location)
}

func TestFlattenExplicitJoins_SkippedWhenOuterJoinPresent(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	z := c.NewSpec("z", "z")
	y.Spec.JoinType = graph.JoinInner
	z.Spec.JoinType = graph.JoinLeftOuter

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID, z.ID}}
	FlattenExplicitJoins(c, q)

	require.Equal(t, graph.JoinInner, y.Spec.JoinType)
}

func TestFlattenExplicitJoins_SkippedWhenOrderedHint(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	y := c.NewSpec("y", "y")
	y.Spec.JoinType = graph.JoinInner

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID, y.ID}, OrderedHint: true}
	FlattenExplicitJoins(c, q)

	require.Equal(t, graph.JoinInner, y.Spec.JoinType)
}
