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

package xasl

import "unsafe"

// dedupBucketCount is the pointer-dedup table's bucket count.
const dedupBucketCount = 256

// dedupInitialCap is a bucket's starting backing-array size, before it
// doubles.
const dedupInitialCap = 15

const wordSize = unsafe.Sizeof(uintptr(0))

type dedupEntry struct {
	ptr    uintptr
	offset int32
}

// dedupTable is the pointer-dedup hash table: original pointer value maps
// to the byte offset already written for the object it points to. Buckets
// are chosen by (ptr / word_size) mod 256, and each bucket's backing array
// grows on demand starting at 15 entries and doubling — modeled explicitly
// rather than with a plain Go map, since the bucket/grow shape is itself
// part of what this component exists to demonstrate.
type dedupTable struct {
	buckets [dedupBucketCount][]dedupEntry
}

func newDedupTable() *dedupTable {
	return &dedupTable{}
}

func dedupBucket(ptr uintptr) int {
	return int((ptr / uintptr(wordSize)) % dedupBucketCount)
}

// lookup returns the offset already recorded for ptr, if any.
func (t *dedupTable) lookup(ptr uintptr) (int32, bool) {
	for _, e := range t.buckets[dedupBucket(ptr)] {
		if e.ptr == ptr {
			return e.offset, true
		}
	}
	return 0, false
}

// record stores offset for ptr, growing the bucket's backing array on
// demand.
func (t *dedupTable) record(ptr uintptr, offset int32) {
	idx := dedupBucket(ptr)
	b := t.buckets[idx]
	if len(b) == cap(b) {
		newCap := dedupInitialCap
		if cap(b) > 0 {
			newCap = cap(b) * 2
		}
		grown := make([]dedupEntry, len(b), newCap)
		copy(grown, b)
		b = grown
	}
	t.buckets[idx] = append(b, dedupEntry{ptr: ptr, offset: offset})
}
