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

package sql

import "fmt"

// TypeEnum is the semantic type of a value a node produces. It mirrors the
// closed set named in the data model (§3): scalar domains plus the few
// object/collection domains the rewriter needs to reason about (it never
// needs the full catalog type system — only enough to drive CAST
// transparency, RANGE comparisons and partition-key coercion).
type TypeEnum int

const (
	TypeNull TypeEnum = iota
	TypeInteger
	TypeBigint
	TypeFloat
	TypeDouble
	TypeChar
	TypeVarchar
	TypeDate
	TypeTime
	TypeDatetime
	TypeLogical
	TypeObject
	TypeSequence
)

func (t TypeEnum) String() string {
	switch t {
	case TypeNull:
		return "NULL"
	case TypeInteger:
		return "INTEGER"
	case TypeBigint:
		return "BIGINT"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeChar:
		return "CHAR"
	case TypeVarchar:
		return "VARCHAR"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	case TypeDatetime:
		return "DATETIME"
	case TypeLogical:
		return "LOGICAL"
	case TypeObject:
		return "OBJECT"
	case TypeSequence:
		return "SEQUENCE"
	default:
		return fmt.Sprintf("TYPE(%d)", int(t))
	}
}

// DataType attaches precision/scale/element information to TypeEnum ==
// TypeVarchar/TypeChar (Precision) or to a parameterized domain. Left zero
// for types that do not carry one.
type DataType struct {
	Enum      TypeEnum
	Precision int // e.g. VARCHAR(n)
	Scale     int
}

// DBMaxLiteralPrecision bounds the precision a literal's CAST domain may
// have for equality-reduction's CAST-around-the-constant case (§4.B.2).
const DBMaxLiteralPrecision = 255
