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

// Package partition implements Component D: given a normalized predicate
// and a table's partitioning scheme, compute the minimal set of partition
// children that can satisfy it.
package partition

import "github.com/cubrid-go/rewriter/sql"

// Type is the partitioning scheme named in §4.D.
type Type int

const (
	TypeHash Type = iota
	TypeRange
	TypeList
)

// Part is one child partition: its catalog name plus the bound information
// needed to test membership, shaped per the active Type (Min/Max for RANGE,
// Values for LIST; HASH partitions carry neither, membership is purely
// index-based).
type Part struct {
	Name   string
	Min    sql.Value
	Max    sql.Value
	Values []sql.Value
}

// Descriptor is the catalog's partitioning description for one table, the
// fetch-class result of §6.3 flattened into a single struct.
type Descriptor struct {
	Type       Type
	KeyAttr    string
	Size       int // partition count; authoritative for HASH's mod arithmetic
	Parts      []Part
}
