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

import (
	"fmt"
	"time"
)

// Value is the rewriter's equivalent of a DB_VALUE: a self-describing
// (type, payload) pair. The XASL wire format (§6.2) packs this as a type
// tag, a length and a payload; Value is the in-memory shape that packing
// serializes.
type Value struct {
	Type TypeEnum
	Data interface{}
}

// IsNull reports whether the value is the SQL NULL.
func (v Value) IsNull() bool {
	return v.Type == TypeNull || v.Data == nil
}

func NewNull() Value { return Value{Type: TypeNull} }

func NewInt(i int64) Value      { return Value{Type: TypeBigint, Data: i} }
func NewFloat(f float64) Value  { return Value{Type: TypeDouble, Data: f} }
func NewString(s string) Value  { return Value{Type: TypeVarchar, Data: s} }
func NewDate(t time.Time) Value { return Value{Type: TypeDate, Data: t} }

func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	return fmt.Sprintf("%v", v.Data)
}

// Ordering is the three-way result of comparing two non-null values of
// compatible domain, with the two "adjacent" outcomes the range-merge
// algorithm (§4.B.8) needs to detect mergeable boundaries.
type Ordering int

const (
	Less Ordering = iota
	LessAdjacent
	Equal
	GreaterAdjacent
	Greater
	Incomparable
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case LessAdjacent:
		return "LessAdjacent"
	case Equal:
		return "Equal"
	case GreaterAdjacent:
		return "GreaterAdjacent"
	case Greater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

// Compare orders two values of the same underlying domain, classifying
// immediate-neighbor relationships ("adjacent") for integer, date and
// char/varchar-with-fixed-collation domains, per §4.B.8's "immediate
// neighbor under the attribute's domain ordering" requirement. Unsupported
// or mixed domains return Incomparable.
func Compare(a, b Value) Ordering {
	if a.IsNull() || b.IsNull() {
		return Incomparable
	}
	switch x := a.Data.(type) {
	case int64:
		y, ok := toInt64(b.Data)
		if !ok {
			return Incomparable
		}
		return compareInt(x, y)
	case float64:
		y, ok := toFloat64(b.Data)
		if !ok {
			return Incomparable
		}
		return compareFloat(x, y)
	case string:
		y, ok := b.Data.(string)
		if !ok {
			return Incomparable
		}
		return compareString(x, y)
	case time.Time:
		y, ok := b.Data.(time.Time)
		if !ok {
			return Incomparable
		}
		return compareTime(x, y)
	default:
		return Incomparable
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}

func compareInt(a, b int64) Ordering {
	switch {
	case a == b:
		return Equal
	case a+1 == b:
		return LessAdjacent
	case a-1 == b:
		return GreaterAdjacent
	case a < b:
		return Less
	default:
		return Greater
	}
}

func compareFloat(a, b float64) Ordering {
	switch {
	case a == b:
		return Equal
	case a < b:
		return Less
	default:
		return Greater
	}
}

func compareString(a, b string) Ordering {
	switch {
	case a == b:
		return Equal
	case a < b:
		if IncrementString(a) == b {
			return LessAdjacent
		}
		return Less
	default:
		if IncrementString(b) == a {
			return GreaterAdjacent
		}
		return Greater
	}
}

func compareTime(a, b time.Time) Ordering {
	switch {
	case a.Equal(b):
		return Equal
	case a.Before(b):
		if a.Add(24 * time.Hour).Equal(b) {
			return LessAdjacent
		}
		return Less
	default:
		if b.Add(24 * time.Hour).Equal(a) {
			return GreaterAdjacent
		}
		return Greater
	}
}

// IncrementString returns the lexicographically next string after s by
// incrementing its final byte, used both by the LIKE-to-BETWEEN rewrite
// (§4.B.6) and by compareString's adjacency test. The empty string has no
// successor under this scheme and is returned unchanged.
func IncrementString(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	b[len(b)-1]++
	return string(b)
}
