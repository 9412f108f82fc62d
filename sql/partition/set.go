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

// set is a partition-index set, the unit §4.D's conjuncts (intersection)
// and disjuncts (union) combine.
type set map[int]struct{}

func newSet() set { return make(set) }

func setOf(indices ...int) set {
	s := newSet()
	for _, i := range indices {
		s.add(i)
	}
	return s
}

// fullSet is "give up, keep every partition" — the safe answer whenever a
// disjunct or sub-range can't be proven to exclude any partition.
func fullSet(size int) set {
	s := newSet()
	for i := 0; i < size; i++ {
		s.add(i)
	}
	return s
}

func (s set) add(i int) { s[i] = struct{}{} }

func (s set) union(o set) set {
	out := newSet()
	for i := range s {
		out.add(i)
	}
	for i := range o {
		out.add(i)
	}
	return out
}

func (s set) intersect(o set) set {
	out := newSet()
	for i := range s {
		if _, ok := o[i]; ok {
			out.add(i)
		}
	}
	return out
}

func (s set) indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	return out
}
