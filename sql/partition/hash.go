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
	"github.com/mitchellh/hashstructure"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// hashIndex computes hash(value) mod size for §4.D's HASH rule. It reuses
// the hashstructure dependency the plan cache (sql/xasl) keys its entries
// with, rather than a second ad hoc hash primitive.
func hashIndex(v sql.Value, size int) (int, bool) {
	if size <= 0 || v.IsNull() {
		return 0, false
	}
	h, err := hashstructure.Hash(v.Data, nil)
	if err != nil {
		return 0, false
	}
	return int(h % uint64(size)), true
}

// hashSubRangeSet implements the HASH branch of §4.D for one sub-range: a
// bare equality or an IN-list member (EQ_NA, exactly one bound) contributes
// exactly its index; a bounded lo/hi range is accepted only if both bounds
// hash to the same partition; any other shape — an open-ended range, since
// hashing gives no ordering to exploit — gives up and returns every
// partition for this sub-range.
func hashSubRangeSet(d Descriptor, sr evaluatedSubRange) set {
	switch {
	case sr.op == graph.SubEqNA && sr.hasLo:
		idx, ok := hashIndex(sr.lo, d.Size)
		if !ok {
			return fullSet(len(d.Parts))
		}
		return setOf(idx)
	case sr.hasLo && sr.hasHi:
		loIdx, loOk := hashIndex(sr.lo, d.Size)
		hiIdx, hiOk := hashIndex(sr.hi, d.Size)
		if !loOk || !hiOk || loIdx != hiIdx {
			return fullSet(len(d.Parts))
		}
		return setOf(loIdx)
	default:
		return fullSet(len(d.Parts))
	}
}
