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
	"time"

	"github.com/spf13/cast"

	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// evalConstant is the mini-evaluator named in §4.D and the design notes'
// "closed-form interpreter over the arithmetic/string/date operator set":
// it folds id to a constant sql.Value without consulting any row data. ok
// is false when id contains an unbound host variable or an operator
// outside that closed set — per §4.D and §7's CANNOT_PREPARE row, either
// condition must abort pruning for the whole statement, not just retreat
// to "keep every partition" for this conjunct.
func evalConstant(c *graph.ParserContext, id graph.NodeId) (sql.Value, bool) {
	n := c.Get(id)
	if n == nil {
		return sql.Value{}, false
	}
	switch n.Kind {
	case graph.KindValue:
		return *n.Value, true
	case graph.KindHostVar:
		return sql.Value{}, false
	case graph.KindFunction:
		return evalFunction(c, n)
	case graph.KindExpr:
		return evalExpr(c, n)
	default:
		return sql.Value{}, false
	}
}

func evalExpr(c *graph.ParserContext, n *graph.Node) (sql.Value, bool) {
	e := n.Expr
	if e.Op == graph.OpCast {
		v, ok := evalConstant(c, e.Arg1)
		if !ok {
			return sql.Value{}, false
		}
		return castValue(v, n.TypeEnum)
	}

	a, ok := evalConstant(c, e.Arg1)
	if !ok {
		return sql.Value{}, false
	}
	b, ok := evalConstant(c, e.Arg2)
	if !ok {
		return sql.Value{}, false
	}

	switch e.Op {
	case graph.OpAdd:
		return arith(a, b, func(x, y float64) float64 { return x + y })
	case graph.OpSub:
		return arith(a, b, func(x, y float64) float64 { return x - y })
	case graph.OpMul:
		return arith(a, b, func(x, y float64) float64 { return x * y })
	case graph.OpDiv:
		return arith(a, b, func(x, y float64) float64 { return x / y })
	case graph.OpConcat:
		return sql.NewString(cast.ToString(a.Data) + cast.ToString(b.Data)), true
	default:
		return sql.Value{}, false
	}
}

func arith(a, b sql.Value, f func(x, y float64) float64) (sql.Value, bool) {
	x, err1 := cast.ToFloat64E(a.Data)
	y, err2 := cast.ToFloat64E(b.Data)
	if err1 != nil || err2 != nil {
		return sql.Value{}, false
	}
	result := f(x, y)
	if a.Type == sql.TypeBigint && b.Type == sql.TypeBigint {
		return sql.NewInt(int64(result)), true
	}
	return sql.NewFloat(result), true
}

func castValue(v sql.Value, to sql.TypeEnum) (sql.Value, bool) {
	switch to {
	case sql.TypeBigint:
		i, err := cast.ToInt64E(v.Data)
		if err != nil {
			return sql.Value{}, false
		}
		return sql.NewInt(i), true
	case sql.TypeDouble:
		f, err := cast.ToFloat64E(v.Data)
		if err != nil {
			return sql.Value{}, false
		}
		return sql.NewFloat(f), true
	case sql.TypeVarchar:
		return sql.NewString(cast.ToString(v.Data)), true
	case sql.TypeDate, sql.TypeDatetime:
		t, err := cast.ToTimeE(v.Data)
		if err != nil {
			return sql.Value{}, false
		}
		return sql.NewDate(t), true
	default:
		return sql.Value{}, false
	}
}

// evalFunction supports TRUNC(date[, unit]) date truncation, the one
// function §4.D calls out by name; anything else is an unsupported
// operator.
func evalFunction(c *graph.ParserContext, n *graph.Node) (sql.Value, bool) {
	f := n.Function
	if f.Name != "TRUNC" || len(f.Args) < 1 {
		return sql.Value{}, false
	}
	date, ok := evalConstant(c, f.Args[0])
	if !ok {
		return sql.Value{}, false
	}
	t, err := cast.ToTimeE(date.Data)
	if err != nil {
		return sql.Value{}, false
	}
	unit := "DAY"
	if len(f.Args) > 1 {
		if u, ok := evalConstant(c, f.Args[1]); ok {
			unit = cast.ToString(u.Data)
		}
	}
	return sql.NewDate(truncateTime(t, unit)), true
}

func truncateTime(t time.Time, unit string) time.Time {
	switch unit {
	case "YEAR":
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	case "MONTH":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}
