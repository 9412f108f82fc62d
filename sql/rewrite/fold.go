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

import "github.com/cubrid-go/rewriter/sql/graph"

// foldValue is the result of trying to constant-fold a predicate term after
// substituting one spec's attributes with NULL (§4.C.1). SQL's three-valued
// logic (true/false/unknown) isn't enough on its own here: most terms touch
// attributes this pass has no value for at all, so a fourth state —
// opaque — marks "not determined", distinct from the SQL NULL produced by
// the substitution itself.
type foldValue int

const (
	foldOpaque foldValue = iota
	foldTrue
	foldFalse
	foldNull
)

// foldsToExcluded reports whether substituting specID's attributes with
// NULL throughout the CNF/DNF predicate rooted at head makes the predicate
// provably never satisfied: literal FALSE, or SQL NULL (which excludes the
// row from WHERE exactly as FALSE does, so qo_analyze_path_join's "becomes
// FALSE" is read here as "becomes not-TRUE").
func foldsToExcluded(c *graph.ParserContext, head graph.NodeId, specID graph.NodeId) bool {
	result := foldTrue
	graph.ForEachCNF(c, head, func(_ graph.NodeId, n *graph.Node) bool {
		conj := foldFalse
		graph.ForEachDNF(c, n.ID, func(_ graph.NodeId, d *graph.Node) bool {
			conj = foldOr(conj, evalWithNull(c, d, specID))
			return true
		})
		result = foldAnd(result, conj)
		return true
	})
	return result == foldFalse || result == foldNull
}

func evalWithNull(c *graph.ParserContext, n *graph.Node, specID graph.NodeId) foldValue {
	if n == nil {
		return foldOpaque
	}
	switch n.Kind {
	case graph.KindValue:
		if n.Value != nil && n.Value.IsNull() {
			return foldNull
		}
		return foldOpaque
	case graph.KindName:
		if n.Name != nil && n.Name.SpecID == specID {
			return foldNull
		}
		return foldOpaque
	case graph.KindExpr:
		return evalExprWithNull(c, n, specID)
	default:
		return foldOpaque
	}
}

func evalExprWithNull(c *graph.ParserContext, n *graph.Node, specID graph.NodeId) foldValue {
	e := n.Expr
	switch e.Op {
	case graph.OpTrue:
		return foldTrue
	case graph.OpFalse:
		return foldFalse
	case graph.OpIsNull:
		switch evalWithNull(c, c.Get(e.Arg1), specID) {
		case foldNull:
			return foldTrue
		case foldOpaque:
			return foldOpaque
		default:
			return foldFalse
		}
	case graph.OpIsNotNull:
		switch evalWithNull(c, c.Get(e.Arg1), specID) {
		case foldNull:
			return foldFalse
		case foldOpaque:
			return foldOpaque
		default:
			return foldTrue
		}
	case graph.OpEq, graph.OpNe, graph.OpLt, graph.OpLe, graph.OpGt, graph.OpGe:
		a, b := evalWithNull(c, c.Get(e.Arg1), specID), evalWithNull(c, c.Get(e.Arg2), specID)
		if a == foldNull || b == foldNull {
			return foldNull
		}
		return foldOpaque
	case graph.OpAnd:
		return foldAnd(evalWithNull(c, c.Get(e.Arg1), specID), evalWithNull(c, c.Get(e.Arg2), specID))
	case graph.OpOr:
		return foldOr(evalWithNull(c, c.Get(e.Arg1), specID), evalWithNull(c, c.Get(e.Arg2), specID))
	case graph.OpNot:
		return foldNot(evalWithNull(c, c.Get(e.Arg1), specID))
	default:
		return foldOpaque
	}
}

func foldAnd(a, b foldValue) foldValue {
	if a == foldFalse || b == foldFalse {
		return foldFalse
	}
	if a == foldOpaque || b == foldOpaque {
		return foldOpaque
	}
	if a == foldNull || b == foldNull {
		return foldNull
	}
	return foldTrue
}

func foldOr(a, b foldValue) foldValue {
	if a == foldTrue || b == foldTrue {
		return foldTrue
	}
	if a == foldOpaque || b == foldOpaque {
		return foldOpaque
	}
	if a == foldNull || b == foldNull {
		return foldNull
	}
	return foldFalse
}

func foldNot(a foldValue) foldValue {
	switch a {
	case foldTrue:
		return foldFalse
	case foldFalse:
		return foldTrue
	default:
		return a
	}
}
