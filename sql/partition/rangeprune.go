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

// rangeSubRangeSet implements the RANGE branch of §4.D for one sub-range:
// test every partition for non-disjoint overlap with [lo, hi] using the
// same Less/LessAdjacent/Equal/GreaterAdjacent/Greater classification
// §4.B.8 uses to detect adjacency, and admit only the overlapping ones.
func rangeSubRangeSet(d Descriptor, sr evaluatedSubRange) set {
	out := newSet()
	for i, part := range d.Parts {
		if rangeOverlapsPart(sr, part) {
			out.add(i)
		}
	}
	return out
}

func rangeOverlapsPart(sr evaluatedSubRange, part Part) bool {
	lo, hasLo := sr.lo, sr.hasLo
	hi, hasHi := sr.hi, sr.hasHi
	loIncl, hiIncl := sr.op.LowerInclusive(), sr.op.UpperInclusive()
	if sr.op == graph.SubEqNA {
		// EQ_NA carries a single point in Lo; treat it as a closed,
		// degenerate [lo, lo] range.
		hi, hasHi = lo, hasLo
	}

	if hasLo && !part.Max.IsNull() {
		switch sql.Compare(lo, part.Max) {
		case sql.Greater, sql.GreaterAdjacent:
			return false
		case sql.Equal:
			if !loIncl {
				return false
			}
		}
	}
	if hasHi && !part.Min.IsNull() {
		switch sql.Compare(hi, part.Min) {
		case sql.Less, sql.LessAdjacent:
			return false
		case sql.Equal:
			if !hiIncl {
				return false
			}
		}
	}
	return true
}
