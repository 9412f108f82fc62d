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

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
	"github.com/cubrid-go/rewriter/sql/partition"
)

// newSelect builds a one-table `SELECT ... FROM t WHERE k = 7` statement.
func newSelect(c *graph.ParserContext, entity, keyCol string, keyVal int64) (*graph.Node, *graph.Node) {
	x := c.NewSpec(entity, entity)
	sel := c.NewQuery(graph.KindSelect)
	sel.Query.FromSpecs = []graph.NodeId{x.ID}
	sel.Query.IsTopLevel = true

	term := c.NewExpr(graph.OpEq, c.NewName(x.ID, keyCol).ID, c.NewLiteral(sql.NewInt(keyVal)).ID).ID
	sel.Query.Where = graph.SliceToCNF(c, []graph.NodeId{term})
	return sel, x
}

func TestAnalyze_PrunesHashPartitionedSpec(t *testing.T) {
	c := graph.NewParserContext()
	sel, x := newSelect(c, "t", "k", 7)

	catalog := partition.NewMemCatalog()
	parts := make([]partition.Part, 4)
	for i := range parts {
		parts[i] = partition.Part{Name: "p" + string(rune('0'+i))}
	}
	catalog.AddTable("t", partition.Descriptor{Type: partition.TypeHash, KeyAttr: "k", Size: 4, Parts: parts})

	a := NewAnalyzer(DefaultConfig(), catalog)
	ctx := sql.NewEmptyContext()

	err := a.RewriteQueries(ctx, c, sel.ID)

	require.NoError(t, err)
	require.True(t, x.Spec.PartitionPruned)
	require.Len(t, x.Spec.FlatEntityList, 1)
}

func TestAnalyze_NilCatalogSkipsPruneWithoutError(t *testing.T) {
	c := graph.NewParserContext()
	sel, x := newSelect(c, "t", "k", 7)

	a := NewAnalyzer(DefaultConfig(), nil)
	ctx := sql.NewEmptyContext()

	err := a.RewriteQueries(ctx, c, sel.ID)

	require.NoError(t, err)
	require.False(t, x.Spec.PartitionPruned)
}

func TestAnalyze_AbortedContextStopsPipeline(t *testing.T) {
	c := graph.NewParserContext()
	sel, _ := newSelect(c, "t", "k", 7)
	c.Abort(sql.ErrAborted.New("client disconnected"))

	a := NewAnalyzer(DefaultConfig(), nil)
	ctx := sql.NewEmptyContext()

	err := a.RewriteQueries(ctx, c, sel.ID)

	require.Error(t, err)
	require.True(t, sql.ErrAborted.Is(err))
}

func TestAnalyze_UnboundHostVarOnPartitionKeySetsCannotPrepare(t *testing.T) {
	c := graph.NewParserContext()
	x := c.NewSpec("t", "t")
	sel := c.NewQuery(graph.KindSelect)
	sel.Query.FromSpecs = []graph.NodeId{x.ID}
	sel.Query.IsTopLevel = true

	hv := c.NewHostVar(0, sql.TypeBigint, "k")
	term := c.NewExpr(graph.OpEq, c.NewName(x.ID, "k").ID, hv.ID).ID
	sel.Query.Where = graph.SliceToCNF(c, []graph.NodeId{term})

	catalog := partition.NewMemCatalog()
	catalog.AddTable("t", partition.Descriptor{
		Type: partition.TypeHash, KeyAttr: "k", Size: 4,
		Parts: []partition.Part{{Name: "p0"}, {Name: "p1"}, {Name: "p2"}, {Name: "p3"}},
	})

	a := NewAnalyzer(DefaultConfig(), catalog)
	ctx := sql.NewEmptyContext()

	err := a.RewriteQueries(ctx, c, sel.ID)

	require.NoError(t, err)
	require.True(t, sel.Query.CannotPrepare)
	require.False(t, x.Spec.PartitionPruned)
}
