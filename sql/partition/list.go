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

package partition

import (
	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// listSubRangeSet implements the LIST branch of §4.D: each of a partition's
// member values is tried against the sub-range as a single-row predicate
// substitution; the partition is admitted iff any member satisfies it.
func listSubRangeSet(d Descriptor, sr evaluatedSubRange) set {
	out := newSet()
	for i, part := range d.Parts {
		for _, v := range part.Values {
			if subRangeAdmits(sr, v) {
				out.add(i)
				break
			}
		}
	}
	return out
}

func subRangeAdmits(sr evaluatedSubRange, v sql.Value) bool {
	if sr.op == graph.SubEqNA {
		return sql.Compare(v, sr.lo) == sql.Equal
	}
	if sr.hasLo && sr.hasHi {
		loCmp, hiCmp := sql.Compare(v, sr.lo), sql.Compare(v, sr.hi)
		loOK := loCmp == sql.Greater || loCmp == sql.GreaterAdjacent || (loCmp == sql.Equal && sr.op.LowerInclusive())
		hiOK := hiCmp == sql.Less || hiCmp == sql.LessAdjacent || (hiCmp == sql.Equal && sr.op.UpperInclusive())
		return loOK && hiOK
	}
	if sr.hasLo {
		cmp := sql.Compare(v, sr.lo)
		if cmp == sql.Equal {
			return sr.op.LowerInclusive()
		}
		return cmp == sql.Greater || cmp == sql.GreaterAdjacent
	}
	if sr.hasHi {
		cmp := sql.Compare(v, sr.hi)
		if cmp == sql.Equal {
			return sr.op.UpperInclusive()
		}
		return cmp == sql.Less || cmp == sql.LessAdjacent
	}
	return false
}
