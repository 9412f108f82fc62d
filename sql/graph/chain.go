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

// Chain helpers. The predicate normalizer spends most of its time splicing
// Next/OrNext lists; centralizing that here keeps the splice logic in one
// place instead of re-derived per pass.

// CNFToSlice materializes a Next-chain into a slice of ids, in order.
func CNFToSlice(c *ParserContext, head NodeId) []NodeId {
	var out []NodeId
	ForEachCNF(c, head, func(id NodeId, n *Node) bool {
		out = append(out, id)
		return true
	})
	return out
}

// DNFToSlice materializes an OrNext-chain into a slice of ids, in order.
func DNFToSlice(c *ParserContext, head NodeId) []NodeId {
	var out []NodeId
	ForEachDNF(c, head, func(id NodeId, n *Node) bool {
		out = append(out, id)
		return true
	})
	return out
}

// SliceToCNF relinks ids into a Next-chain and returns its head. Each node's
// OrNext is left untouched. It is an error (the caller's bug) to pass
// duplicate ids.
func SliceToCNF(c *ParserContext, ids []NodeId) NodeId {
	return sliceToChain(c, ids, func(n *Node) *NodeId { return &n.Next })
}

// SliceToDNF relinks ids into an OrNext-chain and returns its head.
func SliceToDNF(c *ParserContext, ids []NodeId) NodeId {
	return sliceToChain(c, ids, func(n *Node) *NodeId { return &n.OrNext })
}

func sliceToChain(c *ParserContext, ids []NodeId, link func(*Node) *NodeId) NodeId {
	if len(ids) == 0 {
		return InvalidID
	}
	for i, id := range ids {
		n := c.Get(id)
		if i+1 < len(ids) {
			*link(n) = ids[i+1]
		} else {
			*link(n) = InvalidID
		}
	}
	return ids[0]
}

// AppendCNF appends tail onto the end of the Next-chain headed by head and
// returns the (possibly new) head.
func AppendCNF(c *ParserContext, head, tail NodeId) NodeId {
	if head == InvalidID {
		return tail
	}
	if tail == InvalidID {
		return head
	}
	n := c.Get(head)
	for n.Next != InvalidID {
		n = c.Get(n.Next)
	}
	n.Next = tail
	return head
}

// CNFLen counts the conjuncts in a Next-chain.
func CNFLen(c *ParserContext, head NodeId) int {
	n := 0
	ForEachCNF(c, head, func(NodeId, *Node) bool { n++; return true })
	return n
}
