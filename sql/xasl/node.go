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

// Package xasl implements the §4.E plan serializer: a self-describing byte
// stream of a finished plan tree, plus a cache keyed off the statement that
// produced it.
package xasl

import "github.com/cubrid-go/rewriter/sql"

// Kind is the XASL node variant discriminant.
type Kind int32

const (
	KindInvalid Kind = iota
	KindBuildList
	KindScan
	KindUnion
	KindDifference
	KindIntersection
	KindUpdate
	KindDelete
	KindInsert
)

// OID identifies a persistent object by volume, page and slot.
type OID struct {
	Volid  int32
	Pageid int32
	Slotid int16
}

// HFID identifies a heap file.
type HFID struct {
	Volid  int32
	Pageid int32
}

// ReguOp is the operator of an arithmetic REGU_VARIABLE sub-tree.
type ReguOp int32

const (
	ReguOpNone ReguOp = iota
	ReguOpAdd
	ReguOpSub
	ReguOpMul
	ReguOpDiv
)

// ReguKind discriminates a REGU_VARIABLE's shape.
type ReguKind int32

const (
	ReguConstant ReguKind = iota
	ReguAttribute
	ReguArith
)

// ReguVariable is a regu-variable: a leaf of the plan tree denoting a
// runtime-evaluable value, per the glossary.
type ReguVariable struct {
	Kind ReguKind

	Value *sql.Value // ReguConstant

	AttrID OID // ReguAttribute

	Op    ReguOp // ReguArith
	Left  *ReguVariable
	Right *ReguVariable
}

// KeyRangeKind classifies one key-range triple.
type KeyRangeKind int32

const (
	KeyRangeGeneral KeyRangeKind = iota
	KeyRangeEQ
	KeyRangeGTInf
	KeyRangeInfLT
)

// KeyRange is one (range_kind, key1, key2) triple of a spec's key-range
// array.
type KeyRange struct {
	Kind KeyRangeKind
	Key1 *ReguVariable
	Key2 *ReguVariable
}

// Spec is one access-spec entry of an XASL node: which class or derived
// result the node scans, and the key ranges it was pruned to.
type Spec struct {
	ClassOID  OID
	HFID      HFID
	KeyRanges []KeyRange
}

// Proc is the per-node-kind payload that follows an XASL node's common
// fields.
type Proc interface {
	ProcKind() Kind
}

// BuildListProc is the BUILDLIST proc variant: group/aggregate evaluation
// over the node's outptr list.
type BuildListProc struct {
	GroupedScanID int32
	EhIDs         []int32
}

// ProcKind implements Proc.
func (BuildListProc) ProcKind() Kind { return KindBuildList }

// UnionProc is the UNION/DIFFERENCE/INTERSECTION proc variant.
type UnionProc struct {
	Left  *Node
	Right *Node
}

// ProcKind implements Proc.
func (UnionProc) ProcKind() Kind { return KindUnion }

// Node is one XASL tree node. Field order mirrors the wire contract's
// payload order; the Go struct layout is kept in that order on purpose so
// the serializer in serialize.go reads as a straight transcription.
type Node struct {
	Kind  Kind
	Flags int32

	ListID        *ReguVariable
	AfterIscan    *ReguVariable
	OrderBy       []*ReguVariable
	OrdbynumPred  *ReguVariable
	OrdbynumVal   *sql.Value
	OrdbynumFlags int32
	SingleTuple   *ReguVariable
	IsSingleTuple bool
	Option        int32

	Outptr       []*ReguVariable
	RemoteOutptr []*ReguVariable
	SelectedUpd  *ReguVariable

	Specs      []*Spec
	MergeSpecs []*Spec

	ValList      []*ReguVariable
	MergeValList []*ReguVariable

	Aptr          *Node
	Bptr          *Node
	Dptr          *Node
	AfterJoinPred *ReguVariable
	IfPred        *ReguVariable
	InstnumPred   *ReguVariable
	InstnumVal    *sql.Value
	InstnumFlags  int32
	Fptr          *Node
	ScanPtr       *Node
	ConnectByPtr  *Node
	LevelVal      *sql.Value
	LevelRegu     *ReguVariable
	IsleafVal     *sql.Value
	IsleafRegu    *ReguVariable
	IscycleVal    *sql.Value
	IscycleRegu   *ReguVariable

	CurrSpecs []*Spec

	NextScanOn       bool
	NextScanBlockOn  bool
	CatFetched       bool
	CompositeLocking bool

	Proc Proc

	ProjectedSize int32
	Cardinality   float64
	IscanOidOrder bool
	Qstmt         string

	Next *Node
}
