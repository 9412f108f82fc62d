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

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/cubrid-go/rewriter/sql"
)

// Header is the fixed-shape header block that precedes the body stream.
type Header struct {
	DBValCount int32
	Creator    OID
	OIDs       []OID
	Repr       []int32
}

// Serializer drives the stream production: one dedup table, one Writer, and
// a sticky first error, since the contract aborts on the first failure
// rather than collecting every error.
type Serializer struct {
	w     *Writer
	dedup *dedupTable
	err   error
}

// NewSerializer returns an empty Serializer.
func NewSerializer() *Serializer {
	return &Serializer{w: NewWriter(), dedup: newDedupTable()}
}

func (s *Serializer) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error observed, if any.
func (s *Serializer) Err() error {
	return s.err
}

// Serialize produces the full [header_size][header][body_size][body] stream
// for root. Offsets inside the body are relative to the start of the body.
func Serialize(root *Node, header Header) ([]byte, error) {
	if root == nil {
		return nil, sql.ErrInvalidXASLNode.New("nil root")
	}

	hw := NewWriter()
	hw.WriteI32(header.DBValCount)
	hw.WriteOID(header.Creator)
	hw.WriteI32(int32(len(header.OIDs)))
	for _, o := range header.OIDs {
		hw.WriteOID(o)
	}
	for _, r := range header.Repr {
		hw.WriteI32(r)
	}
	headerBytes := hw.Bytes()

	s := NewSerializer()
	s.writeNode(root)
	if s.err != nil {
		return nil, s.err
	}
	bodyBytes := s.w.Bytes()

	out := NewWriter()
	out.WriteI32(int32(len(headerBytes)))
	out.WriteBytes(headerBytes)
	out.WriteI32(int32(len(bodyBytes)))
	out.WriteBytes(bodyBytes)
	return out.Bytes(), nil
}

func (s *Serializer) writeNodeOffset(n *Node) {
	if s.err != nil {
		return
	}
	if n == nil {
		s.w.WriteI32(-1)
		return
	}
	ptr := uintptr(unsafe.Pointer(n))
	if off, ok := s.dedup.lookup(ptr); ok {
		s.w.WriteI32(off)
		return
	}
	refPos, offset := s.w.ReserveAligned()
	s.w.PatchI32(refPos, offset)
	s.dedup.record(ptr, offset)
	s.writeNode(n)
}

func (s *Serializer) writeNode(n *Node) {
	if s.err != nil {
		return
	}
	if n.Kind == KindInvalid {
		s.fail(sql.ErrInvalidXASLNode.New("invalid kind"))
		return
	}

	s.w.WriteI32(int32(n.Kind))
	s.w.WriteI32(n.Flags)
	s.writeReguOffset(n.ListID)
	s.writeReguOffset(n.AfterIscan)
	s.writeReguListOffset(n.OrderBy)
	s.writeReguOffset(n.OrdbynumPred)
	s.writeDbValueOffset(n.OrdbynumVal)
	s.w.WriteI32(n.OrdbynumFlags)
	s.writeReguOffset(n.SingleTuple)
	s.w.WriteBool(n.IsSingleTuple)
	s.w.WriteI32(n.Option)
	s.writeReguListOffset(n.Outptr)
	s.writeReguListOffset(n.RemoteOutptr)
	s.writeReguOffset(n.SelectedUpd)
	s.writeSpecList(n.Specs)
	s.writeSpecList(n.MergeSpecs)
	s.writeReguListOffset(n.ValList)
	s.writeReguListOffset(n.MergeValList)
	s.writeNodeOffset(n.Aptr)
	s.writeNodeOffset(n.Bptr)
	s.writeNodeOffset(n.Dptr)
	s.writeReguOffset(n.AfterJoinPred)
	s.writeReguOffset(n.IfPred)
	s.writeReguOffset(n.InstnumPred)
	s.writeDbValueOffset(n.InstnumVal)
	s.w.WriteI32(n.InstnumFlags)
	s.writeNodeOffset(n.Fptr)
	s.writeNodeOffset(n.ScanPtr)
	s.writeNodeOffset(n.ConnectByPtr)
	s.writeDbValueOffset(n.LevelVal)
	s.writeReguOffset(n.LevelRegu)
	s.writeDbValueOffset(n.IsleafVal)
	s.writeReguOffset(n.IsleafRegu)
	s.writeDbValueOffset(n.IscycleVal)
	s.writeReguOffset(n.IscycleRegu)
	s.writeSpecList(n.CurrSpecs)
	s.w.WriteBool(n.NextScanOn)
	s.w.WriteBool(n.NextScanBlockOn)
	s.w.WriteBool(n.CatFetched)
	s.w.WriteBool(n.CompositeLocking)
	s.writeProc(n.Proc)
	s.w.WriteI32(n.ProjectedSize)
	s.w.WriteF64(n.Cardinality)
	s.w.WriteBool(n.IscanOidOrder)
	s.writeStringOffset(n.Qstmt)
	s.writeNodeOffset(n.Next)
}

func (s *Serializer) writeProc(p Proc) {
	if s.err != nil {
		return
	}
	if p == nil {
		s.w.WriteI32(int32(KindInvalid))
		return
	}
	switch proc := p.(type) {
	case BuildListProc:
		s.w.WriteI32(int32(proc.ProcKind()))
		s.w.WriteI32(proc.GroupedScanID)
		s.w.WriteI32(int32(len(proc.EhIDs)))
		for _, id := range proc.EhIDs {
			s.w.WriteI32(id)
		}
	case UnionProc:
		s.w.WriteI32(int32(proc.ProcKind()))
		s.writeNodeOffset(proc.Left)
		s.writeNodeOffset(proc.Right)
	default:
		s.fail(fmt.Errorf("xasl: unsupported proc variant %T", p))
	}
}

func (s *Serializer) writeReguOffset(r *ReguVariable) {
	if s.err != nil {
		return
	}
	if r == nil {
		s.w.WriteI32(-1)
		return
	}
	ptr := uintptr(unsafe.Pointer(r))
	if off, ok := s.dedup.lookup(ptr); ok {
		s.w.WriteI32(off)
		return
	}
	refPos, offset := s.w.ReserveAligned()
	s.w.PatchI32(refPos, offset)
	s.dedup.record(ptr, offset)
	s.writeReguPayload(r)
}

func (s *Serializer) writeReguPayload(r *ReguVariable) {
	s.w.WriteI32(int32(r.Kind))
	switch r.Kind {
	case ReguConstant:
		s.writeDbValueOffset(r.Value)
	case ReguAttribute:
		s.w.WriteOID(r.AttrID)
	case ReguArith:
		s.w.WriteI32(int32(r.Op))
		s.writeReguOffset(r.Left)
		s.writeReguOffset(r.Right)
	default:
		s.fail(fmt.Errorf("xasl: invalid regu variable kind %d", r.Kind))
	}
}

// writeReguListOffset emits the right-linear chain convention: an offset to
// a (count, off_1, ..., off_count) record.
func (s *Serializer) writeReguListOffset(list []*ReguVariable) {
	if s.err != nil {
		return
	}
	if list == nil {
		s.w.WriteI32(-1)
		return
	}
	refPos, offset := s.w.ReserveAligned()
	s.w.PatchI32(refPos, offset)
	s.w.WriteI32(int32(len(list)))
	for _, r := range list {
		s.writeReguOffset(r)
	}
}

func (s *Serializer) writeSpecOffset(sp *Spec) {
	if s.err != nil {
		return
	}
	if sp == nil {
		s.w.WriteI32(-1)
		return
	}
	ptr := uintptr(unsafe.Pointer(sp))
	if off, ok := s.dedup.lookup(ptr); ok {
		s.w.WriteI32(off)
		return
	}
	refPos, offset := s.w.ReserveAligned()
	s.w.PatchI32(refPos, offset)
	s.dedup.record(ptr, offset)

	s.w.WriteOID(sp.ClassOID)
	s.w.WriteI32(sp.HFID.Volid)
	s.w.WriteI32(sp.HFID.Pageid)
	s.w.WriteI32(int32(len(sp.KeyRanges)))
	for _, kr := range sp.KeyRanges {
		s.w.WriteI32(int32(kr.Kind))
		s.writeReguOffset(kr.Key1)
		s.writeReguOffset(kr.Key2)
	}
}

// writeSpecList emits the n_specs, specs… convention: a count followed by
// one dedup'd offset per entry, inline.
func (s *Serializer) writeSpecList(specs []*Spec) {
	if s.err != nil {
		return
	}
	s.w.WriteI32(int32(len(specs)))
	for _, sp := range specs {
		s.writeSpecOffset(sp)
	}
}

func (s *Serializer) writeDbValueOffset(v *sql.Value) {
	if s.err != nil {
		return
	}
	if v == nil || v.IsNull() {
		s.w.WriteI32(-1)
		return
	}
	refPos, offset := s.w.ReserveAligned()
	s.w.PatchI32(refPos, offset)
	s.writeDbValuePayload(*v)
}

// writeDbValuePayload packs a Value the way §6.2 packs a DB_VALUE on the
// wire: a type tag, a length, then the raw payload.
func (s *Serializer) writeDbValuePayload(v sql.Value) {
	s.w.WriteI32(int32(v.Type))
	switch d := v.Data.(type) {
	case int64:
		s.w.WriteI32(8)
		s.w.WriteI64(d)
	case float64:
		s.w.WriteI32(8)
		s.w.WriteF64(d)
	case string:
		s.w.WriteI32(int32(len(d)))
		s.w.WriteBytes([]byte(d))
	case time.Time:
		s.w.WriteI32(8)
		s.w.WriteI64(d.Unix())
	default:
		s.w.WriteI32(0)
	}
}

func (s *Serializer) writeStringOffset(str string) {
	if s.err != nil {
		return
	}
	if str == "" {
		s.w.WriteI32(-1)
		return
	}
	refPos, offset := s.w.ReserveAligned()
	s.w.PatchI32(refPos, offset)
	s.w.WriteString(str)
}
