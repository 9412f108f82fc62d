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

package graph

// Control is a pre-order walk callback's instruction to the walker,
// replacing the teacher's `Visitor`-returns-`nil`-to-stop convention (§9:
// "best expressed as an enum return rather than a bool* out-parameter").
type Control int

const (
	// Continue descends into the node's children and its own Next chain.
	Continue Control = iota
	// SkipSiblings descends into children but not into Next/OrNext.
	SkipSiblings
	// Stop aborts the entire walk immediately.
	Stop
)

// PreFunc is called before a node's children are visited.
type PreFunc func(id NodeId, n *Node) Control

// PostFunc is called after a node's subtree finishes, unless the walk was
// stopped from within it.
type PostFunc func(id NodeId, n *Node)

// Walk performs the pre-order/post-order walk named in §4.A's contract. It
// follows Next-chains (CNF conjuncts, FROM-list, SELECT-list, ...) and
// OrNext-chains (DNF disjuncts) in addition to each node's structural
// children, and captures Next before descending into a node so that a pass
// which detaches or relinks `next` mid-walk (the "cyclic temporary
// references" pattern, §9) does not derail the walk.
func Walk(c *ParserContext, root NodeId, pre PreFunc, post PostFunc) bool {
	id := root
	for id != InvalidID {
		n := c.Get(id)
		if n == nil {
			return true
		}
		next := n.Next // capture before descending: next may be rewritten below us
		ctrl := Continue
		if pre != nil {
			ctrl = pre(id, n)
		}
		if ctrl == Stop {
			return false
		}
		if !walkChildren(c, n, pre, post) {
			return false
		}
		if ctrl != SkipSiblings && n.OrNext != InvalidID {
			if !Walk(c, n.OrNext, pre, post) {
				return false
			}
		}
		if post != nil {
			post(id, n)
		}
		if ctrl == SkipSiblings {
			return true
		}
		id = next
	}
	return true
}

func walkChildren(c *ParserContext, n *Node, pre PreFunc, post PostFunc) bool {
	switch n.Kind {
	case KindExpr:
		if n.Expr == nil {
			return true
		}
		for _, child := range []NodeId{n.Expr.Arg1, n.Expr.Arg2, n.Expr.Arg3} {
			if child != InvalidID {
				if !Walk(c, child, pre, post) {
					return false
				}
			}
		}
		for _, sr := range n.Expr.SubRanges {
			for _, b := range []NodeId{sr.Lo, sr.Hi} {
				if b != InvalidID {
					if !Walk(c, b, pre, post) {
						return false
					}
				}
			}
		}
	case KindSpec:
		if n.Spec == nil {
			return true
		}
		if n.Spec.DerivedTable != InvalidID {
			if !Walk(c, n.Spec.DerivedTable, pre, post) {
				return false
			}
		}
		if n.Spec.OnCond != InvalidID {
			if !Walk(c, n.Spec.OnCond, pre, post) {
				return false
			}
		}
		for _, p := range n.Spec.PathEntities {
			if !Walk(c, p, pre, post) {
				return false
			}
		}
	case KindSelect, KindUpdate, KindDelete, KindInsert:
		if n.Query == nil {
			return true
		}
		for _, s := range n.Query.FromSpecs {
			if !Walk(c, s, pre, post) {
				return false
			}
		}
		for _, chain := range []NodeId{n.Query.Where, n.Query.Having, n.Query.StartWith, n.Query.ConnectBy, n.Query.AfterCBFilter} {
			if chain != InvalidID {
				if !Walk(c, chain, pre, post) {
					return false
				}
			}
		}
		for _, s := range n.Query.SelectList {
			if !Walk(c, s, pre, post) {
				return false
			}
		}
	case KindUnion, KindDifference, KindIntersection:
		if n.Query == nil {
			return true
		}
		if !Walk(c, n.Query.Left, pre, post) {
			return false
		}
		if !Walk(c, n.Query.Right, pre, post) {
			return false
		}
	}
	return true
}

// Inspect is the Boolean-returning convenience wrapper used throughout the
// rewriter (e.g. §4.C.1's "the path spec's id appears in WHERE at all").
func Inspect(c *ParserContext, root NodeId, f func(NodeId, *Node) bool) {
	Walk(c, root, func(id NodeId, n *Node) Control {
		if f(id, n) {
			return Continue
		}
		return SkipSiblings
	}, nil)
}

// ForEachCNF iterates the top-level Next-chain of a normalized predicate
// (each element a CNF conjunct), without descending into it. Many passes
// only need this level, not a full Walk.
func ForEachCNF(c *ParserContext, head NodeId, f func(id NodeId, n *Node) bool) {
	for id := head; id != InvalidID; {
		n := c.Get(id)
		if n == nil {
			return
		}
		next := n.Next
		if !f(id, n) {
			return
		}
		id = next
	}
}

// ForEachDNF iterates the OrNext-chain of a single CNF conjunct.
func ForEachDNF(c *ParserContext, head NodeId, f func(id NodeId, n *Node) bool) {
	for id := head; id != InvalidID; {
		n := c.Get(id)
		if n == nil {
			return
		}
		next := n.OrNext
		if !f(id, n) {
			return
		}
		id = next
	}
}
