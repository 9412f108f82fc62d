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

func TestWrapHiddenColumnDerived_WrapsWhenOrderByTouchesHidden(t *testing.T) {
	c := graph.NewParserContext()
	y := c.NewSpec("y", "y")
	hiddenCol := c.NewName(y.ID, "oid_col")
	hiddenCol.Flags.Set(graph.FlagHiddenColumn)

	sub := c.NewQuery(graph.KindUnion)
	left := c.NewQuery(graph.KindSelect)
	left.Query.FromSpecs = []graph.NodeId{y.ID}
	left.Query.SelectList = []graph.NodeId{c.NewName(y.ID, "b").ID}
	right := c.NewQuery(graph.KindSelect)
	right.Query.FromSpecs = []graph.NodeId{y.ID}
	right.Query.SelectList = []graph.NodeId{c.NewName(y.ID, "b").ID}
	sub.Query.Left, sub.Query.Right = left.ID, right.ID
	sub.Query.OrderBy = []graph.NodeId{hiddenCol.ID}

	spec := &graph.SpecInfo{DerivedTable: sub.ID, DerivedType: graph.DerivedSetExpr}
	WrapHiddenColumnDerived(c, spec)

	require.NotEqual(t, sub.ID, spec.DerivedTable)
	outer := c.Get(spec.DerivedTable)
	require.Equal(t, graph.KindSelect, outer.Kind)
}

func TestWrapHiddenColumnDerived_LeavesOrdinaryOrderByAlone(t *testing.T) {
	c := graph.NewParserContext()
	y := c.NewSpec("y", "y")
	sub := c.NewQuery(graph.KindSelect)
	sub.Query.FromSpecs = []graph.NodeId{y.ID}
	sub.Query.SelectList = []graph.NodeId{c.NewName(y.ID, "b").ID}
	sub.Query.OrderBy = []graph.NodeId{c.NewName(y.ID, "b").ID}

	spec := &graph.SpecInfo{DerivedTable: sub.ID, DerivedType: graph.DerivedSubquery}
	WrapHiddenColumnDerived(c, spec)

	require.Equal(t, sub.ID, spec.DerivedTable)
}

func TestPruneUnnecessaryOrderBy_DropsWhenNotObservable(t *testing.T) {
	q := &graph.QueryInfo{OrderBy: []graph.NodeId{1}}
	PruneUnnecessaryOrderBy(q)
	require.Nil(t, q.OrderBy)
}

func TestPruneUnnecessaryOrderBy_KeptForTopLevel(t *testing.T) {
	q := &graph.QueryInfo{OrderBy: []graph.NodeId{1}, IsTopLevel: true}
	PruneUnnecessaryOrderBy(q)
	require.Len(t, q.OrderBy, 1)
}

func TestPruneUnnecessaryOrderBy_KeptForOrderByNum(t *testing.T) {
	q := &graph.QueryInfo{OrderBy: []graph.NodeId{1}, HasOrderByNum: true}
	PruneUnnecessaryOrderBy(q)
	require.Len(t, q.OrderBy, 1)
}

func TestPruneUnnecessaryOrderBy_KeptWhenLimited(t *testing.T) {
	q := &graph.QueryInfo{OrderBy: []graph.NodeId{1}, OrderByLimited: true}
	PruneUnnecessaryOrderBy(q)
	require.Len(t, q.OrderBy, 1)
}
