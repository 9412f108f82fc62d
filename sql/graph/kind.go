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

// Package graph implements Component A: the in-memory tagged-union parse
// and plan graph. Nodes are referenced by NodeId (an index into a
// ParserContext's arena) rather than by raw pointer, per the design note in
// spec.md §9 ("a safe target encoding is a typed arena with stable
// indices"); NodeId equality is the graph's notion of pointer-equality
// identity.
package graph

// Kind is the node's discriminant, the closed set named in §3.
type Kind int

const (
	KindInvalid Kind = iota
	KindSelect
	KindUnion
	KindDifference
	KindIntersection
	KindUpdate
	KindDelete
	KindInsert
	KindExpr
	KindName
	KindValue
	KindSpec
	KindSortSpec
	KindFunction
	KindHostVar
	KindDot
	KindMethodDef
	KindAttrDef
	KindDataDefault
	KindDataType
	KindResolution
	KindCreateEntity
	KindAlter
	KindDrop
	KindRename
	KindGrant
	KindRevoke
)

func (k Kind) String() string {
	names := [...]string{
		"INVALID", "SELECT", "UNION", "DIFFERENCE", "INTERSECTION",
		"UPDATE", "DELETE", "INSERT", "EXPR", "NAME", "VALUE", "SPEC",
		"SORT_SPEC", "FUNCTION", "HOST_VAR", "DOT", "METHOD_DEF",
		"ATTR_DEF", "DATA_DEFAULT", "DATA_TYPE", "RESOLUTION",
		"CREATE_ENTITY", "ALTER", "DROP", "RENAME", "GRANT", "REVOKE",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "KIND(?)"
	}
	return names[k]
}

// ExprOp is the operator discriminant for KindExpr nodes: the PRED/
// EVAL_TERM/NOT_TERM distinction of the predicate sub-model (§3), plus the
// comparison and arithmetic operators the normalizer rewrites.
type ExprOp int

const (
	OpInvalid ExprOp = iota
	OpAnd
	OpOr
	OpNot
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBetween
	// OpBetweenAnd is the canonical form GE_LE folds to (§4.B.5).
	OpBetweenAnd
	OpLike
	OpIn
	OpIsNull
	OpIsNotNull
	OpRange
	OpUnaryMinus
	OpPrior
	OpAny
	OpSome
	OpAll
	OpCast
	OpTrue
	OpFalse
	// OpAdd/OpSub/OpMul/OpDiv/OpConcat are the arithmetic and string
	// operators the partition pruner's mini constant-evaluator (§4.D)
	// supports; the predicate normalizer never produces them itself.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpConcat
)

func (op ExprOp) String() string {
	names := map[ExprOp]string{
		OpInvalid: "INVALID", OpAnd: "AND", OpOr: "OR", OpNot: "NOT",
		OpEq: "=", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
		OpBetween: "BETWEEN", OpBetweenAnd: "BETWEEN_AND", OpLike: "LIKE",
		OpIn: "IN", OpIsNull: "IS NULL", OpIsNotNull: "IS NOT NULL",
		OpRange: "RANGE", OpUnaryMinus: "-", OpPrior: "PRIOR",
		OpAny: "ANY", OpSome: "SOME", OpAll: "ALL", OpCast: "CAST",
		OpTrue: "TRUE", OpFalse: "FALSE",
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpConcat: "||",
	}
	if s, ok := names[op]; ok {
		return s
	}
	return "OP(?)"
}

// IsComparison reports whether op is a binary comparison this package's
// normalizer treats as sargable.
func (op ExprOp) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// Converse returns the converse comparison operator: converse(<) = >,
// converse(<=) = >=, and = / != are self-converse (§4.B.3).
func (op ExprOp) Converse() (ExprOp, bool) {
	switch op {
	case OpEq:
		return OpEq, true
	case OpNe:
		return OpNe, true
	case OpLt:
		return OpGt, true
	case OpLe:
		return OpGe, true
	case OpGt:
		return OpLt, true
	case OpGe:
		return OpLe, true
	default:
		return OpInvalid, false
	}
}

// SubRangeOp is one of the nine RANGE sub-operators (§3).
type SubRangeOp int

const (
	SubInvalid SubRangeOp = iota
	SubEqNA
	SubGeLe
	SubGeLt
	SubGtLe
	SubGtLt
	SubGeInf
	SubGtInf
	SubInfLe
	SubInfLt
)

func (s SubRangeOp) String() string {
	names := [...]string{"?", "EQ_NA", "GE_LE", "GE_LT", "GT_LE", "GT_LT", "GE_INF", "GT_INF", "INF_LE", "INF_LT"}
	if int(s) < 0 || int(s) >= len(names) {
		return "?"
	}
	return names[s]
}

// HasLower reports whether the sub-range carries a finite lower bound.
func (s SubRangeOp) HasLower() bool {
	switch s {
	case SubGeLe, SubGeLt, SubGeInf, SubGtLe, SubGtLt, SubGtInf, SubEqNA:
		return true
	}
	return false
}

// HasUpper reports whether the sub-range carries a finite upper bound.
func (s SubRangeOp) HasUpper() bool {
	switch s {
	case SubGeLe, SubGeLt, SubGtLe, SubGtLt, SubInfLe, SubInfLt, SubEqNA:
		return true
	}
	return false
}

// LowerInclusive/UpperInclusive report bound inclusivity.
func (s SubRangeOp) LowerInclusive() bool {
	switch s {
	case SubGeLe, SubGeLt, SubGeInf, SubEqNA:
		return true
	}
	return false
}

func (s SubRangeOp) UpperInclusive() bool {
	switch s {
	case SubGeLe, SubGtLe, SubInfLe, SubEqNA:
		return true
	}
	return false
}

// DerivedTableType classifies a SPEC's derived table, if any.
type DerivedTableType int

const (
	DerivedNone DerivedTableType = iota
	DerivedSubquery
	DerivedSetExpr
)

// MetaClass is the join semantics of a path link (§3, §4.C.1).
type MetaClass int

const (
	MetaClassNone MetaClass = iota
	MetaClassClass
	MetaClassMetaClass
	MetaClassPathInner
	MetaClassPathOuter
	MetaClassPathOuterWeasel
)

// JoinType is the join kind of a SPEC's link to its predecessor in FROM.
type JoinType int

const (
	JoinNone JoinType = iota
	JoinInner
	JoinLeftOuter
	JoinRightOuter
)
