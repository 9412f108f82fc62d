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

func eqTerm(c *graph.ParserContext, spec graph.NodeId, col string, v sql.Value) graph.NodeId {
	return c.NewExpr(graph.OpEq, c.NewName(spec, col).ID, c.NewLiteral(v).ID).ID
}

func TestToCNF_DistributesOrOverAnd(t *testing.T) {
	c := graph.NewParserContext()
	spec := c.NewSpec("t", "t").ID
	a := eqTerm(c, spec, "a", sql.NewInt(1))
	b := eqTerm(c, spec, "b", sql.NewInt(2))
	cc := eqTerm(c, spec, "c", sql.NewInt(3))

	// a AND (b OR c)
	and := c.NewExpr(graph.OpAnd, a, c.NewExpr(graph.OpOr, b, cc).ID).ID

	head := ToCNF(c, and)
	require.Equal(t, 2, graph.CNFLen(c, head))
	disjuncts := graph.DNFToSlice(c, head)
	require.Len(t, disjuncts, 1) // only the `a` conjunct survives as a direct list

	// The result should still logically be `a AND (b OR c)`: one conjunct with
	// a single disjunct (a) and a second conjunct with two disjuncts (b, c).
	conjuncts := graph.CNFToSlice(c, head)
	require.Len(t, conjuncts, 2)
	require.Len(t, graph.DNFToSlice(c, conjuncts[1]), 2)
}

func TestToCNF_FalseConjunctShortCircuits(t *testing.T) {
	c := graph.NewParserContext()
	spec := c.NewSpec("t", "t").ID
	a := eqTerm(c, spec, "a", sql.NewInt(1))
	f := c.NewExpr(graph.OpFalse, graph.InvalidID, graph.InvalidID).ID
	and := c.NewExpr(graph.OpAnd, a, f).ID

	head := ToCNF(c, and)
	require.Equal(t, 1, graph.CNFLen(c, head))
	n := c.Get(head)
	require.Equal(t, graph.OpFalse, n.Expr.Op)
}

func TestToCNF_TrueConjunctDropped(t *testing.T) {
	c := graph.NewParserContext()
	spec := c.NewSpec("t", "t").ID
	a := eqTerm(c, spec, "a", sql.NewInt(1))
	tr := c.NewExpr(graph.OpTrue, graph.InvalidID, graph.InvalidID).ID
	and := c.NewExpr(graph.OpAnd, a, tr).ID

	head := ToCNF(c, and)
	require.Equal(t, 1, graph.CNFLen(c, head))
	n := c.Get(head)
	require.Equal(t, graph.OpEq, n.Expr.Op)
}

func TestToCNF_NotPushedToAtoms(t *testing.T) {
	c := graph.NewParserContext()
	spec := c.NewSpec("t", "t").ID
	a := eqTerm(c, spec, "a", sql.NewInt(1))
	not := c.NewExpr(graph.OpNot, a, graph.InvalidID).ID

	head := ToCNF(c, not)
	n := c.Get(head)
	require.Equal(t, graph.OpNe, n.Expr.Op)
}

func TestToCNF_DeMorganOverAnd(t *testing.T) {
	c := graph.NewParserContext()
	spec := c.NewSpec("t", "t").ID
	a := eqTerm(c, spec, "a", sql.NewInt(1))
	b := eqTerm(c, spec, "b", sql.NewInt(2))
	not := c.NewExpr(graph.OpNot, c.NewExpr(graph.OpAnd, a, b).ID, graph.InvalidID).ID

	head := ToCNF(c, not)
	// NOT (a AND b) -> (NOT a) OR (NOT b): a single conjunct with two disjuncts.
	require.Equal(t, 1, graph.CNFLen(c, head))
	require.Len(t, graph.DNFToSlice(c, head), 2)
}
