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

func TestRewriteOidEquality_ExcisesTermAndWrapsDerivedTable(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")

	hv := c.NewHostVar(0, 0, "")
	oidRef := c.NewName(x.ID, oidColumnName)
	other := c.NewExpr(graph.OpGt, c.NewName(x.ID, "a").ID, c.NewLiteral(sql.NewInt(1)).ID).ID
	eqTerm := c.NewExpr(graph.OpEq, oidRef.ID, hv.ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{eqTerm, other})

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID}, Where: where}
	RewriteOidEquality(c, q)

	require.Equal(t, hv.ID, x.Spec.DerivedTable)
	require.Equal(t, graph.DerivedSetExpr, x.Spec.DerivedType)

	remaining := graph.CNFToSlice(c, q.Where)
	require.Len(t, remaining, 1)
	require.Equal(t, other, remaining[0])
}

func TestRewriteOidEquality_SkipsMetaClassSpec(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("x", "x")
	x.Spec.MetaClass = graph.MetaClassMetaClass

	hv := c.NewHostVar(0, 0, "")
	oidRef := c.NewName(x.ID, oidColumnName)
	eqTerm := c.NewExpr(graph.OpEq, oidRef.ID, hv.ID).ID
	where := graph.SliceToCNF(c, []graph.NodeId{eqTerm})

	q := &graph.QueryInfo{FromSpecs: []graph.NodeId{x.ID}, Where: where}
	RewriteOidEquality(c, q)

	require.Equal(t, graph.InvalidID, x.Spec.DerivedTable)
	require.Len(t, graph.CNFToSlice(c, q.Where), 1)
}
