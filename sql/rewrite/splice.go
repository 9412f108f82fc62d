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

// excise removes the top-level conjunct remove from the CNF chain headed at
// head, returning the (possibly new) head.
func excise(c *graph.ParserContext, head, remove graph.NodeId) graph.NodeId {
	conjuncts := graph.CNFToSlice(c, head)
	kept := conjuncts[:0]
	for _, cid := range conjuncts {
		if cid != remove {
			kept = append(kept, cid)
		}
	}
	return graph.SliceToCNF(c, kept)
}
