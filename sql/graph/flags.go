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

// Flags is the node bit set named in §3.
type Flags uint32

const (
	FlagHiddenColumn Flags = 1 << iota
	FlagConstant
	FlagDescOrder
	FlagFullRange
	FlagEmptyRange
	FlagCopyPush
	FlagTransitive
	FlagInstnumC
	FlagOrderbynumC
	FlagPrior
	FlagPartitionPruned
)

func (f Flags) Has(bit Flags) bool  { return f&bit != 0 }
func (f *Flags) Set(bit Flags)      { *f |= bit }
func (f *Flags) Clear(bit Flags)    { *f &^= bit }
