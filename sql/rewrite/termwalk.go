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

// termWalk visits the structural subtree rooted at id — a single
// predicate term's Arg1/Arg2/Arg3, RANGE bounds, and function arguments —
// without crossing into Next or OrNext. graph.Walk is built around the
// CNF/DNF chains and would keep walking past this one term's boundary;
// several §4.C passes need to ask questions scoped to exactly one
// conjunct, so they use this instead.
func termWalk(c *graph.ParserContext, id graph.NodeId, visit func(*graph.Node) bool) bool {
	n := c.Get(id)
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	switch n.Kind {
	case graph.KindExpr:
		if n.Expr == nil {
			return true
		}
		for _, child := range []graph.NodeId{n.Expr.Arg1, n.Expr.Arg2, n.Expr.Arg3} {
			if child != graph.InvalidID && !termWalk(c, child, visit) {
				return false
			}
		}
		for _, sr := range n.Expr.SubRanges {
			for _, b := range []graph.NodeId{sr.Lo, sr.Hi} {
				if b != graph.InvalidID && !termWalk(c, b, visit) {
					return false
				}
			}
		}
	case graph.KindFunction:
		if n.Function == nil {
			return true
		}
		for _, a := range n.Function.Args {
			if !termWalk(c, a, visit) {
				return false
			}
		}
	}
	return true
}

func termReferencesSpec(c *graph.ParserContext, id, specID graph.NodeId) bool {
	found := false
	termWalk(c, id, func(n *graph.Node) bool {
		if n.Kind == graph.KindName && n.Name != nil && n.Name.SpecID == specID {
			found = true
			return false
		}
		return true
	})
	return found
}

// nullableFunctionNames are function calls that can turn a non-NULL input
// into NULL or vice versa, so their presence defeats the "this conjunct
// rejects every null-extended row" proof in §4.C.4. CASE is modeled here
// as a function call named "CASE" since this graph has no dedicated CASE
// node kind.
var nullableFunctionNames = map[string]bool{
	"CASE": true, "COALESCE": true, "NVL": true, "NVL2": true,
	"DECODE": true, "IF": true, "IFNULL": true, "ISNULL": true,
}

func termContainsNullable(c *graph.ParserContext, id graph.NodeId) bool {
	found := false
	termWalk(c, id, func(n *graph.Node) bool {
		switch n.Kind {
		case graph.KindExpr:
			if n.Expr != nil && n.Expr.Op == graph.OpIsNull {
				found = true
				return false
			}
		case graph.KindFunction:
			if n.Function != nil && nullableFunctionNames[n.Function.Name] {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
