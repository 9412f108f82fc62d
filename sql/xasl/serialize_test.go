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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubrid-go/rewriter/sql"
)

func minimalScanNode() *Node {
	return &Node{Kind: KindScan, Cardinality: 42}
}

func TestSerialize_DeterministicForFixedInput(t *testing.T) {
	header := Header{DBValCount: 0, Creator: OID{Volid: 1, Pageid: 2, Slotid: 3}}

	out1, err := Serialize(minimalScanNode(), header)
	require.NoError(t, err)
	out2, err := Serialize(minimalScanNode(), header)
	require.NoError(t, err)

	require.Equal(t, out1, out2)
}

func TestSerialize_HeaderAndBodySizesAreSelfDescribing(t *testing.T) {
	header := Header{DBValCount: 7, Creator: OID{Volid: 1}}
	out, err := Serialize(minimalScanNode(), header)
	require.NoError(t, err)

	headerSize := int32(binary.BigEndian.Uint32(out[0:4]))
	bodySizeOffset := 4 + int(headerSize)
	bodySize := int32(binary.BigEndian.Uint32(out[bodySizeOffset : bodySizeOffset+4]))
	require.Equal(t, len(out), bodySizeOffset+4+int(bodySize))
}

func TestSerialize_SharedPointerDedupedToSameOffset(t *testing.T) {
	v := sql.NewInt(5)
	shared := &ReguVariable{Kind: ReguConstant, Value: &v}

	s := NewSerializer()
	s.writeReguOffset(shared)
	first := int32(binary.BigEndian.Uint32(s.w.Bytes()[0:4]))

	lenBefore := s.w.Len()
	s.writeReguOffset(shared)
	require.NoError(t, s.Err())

	// A cache hit writes exactly one int32 (the cached offset) and nothing
	// else, so the buffer grows by exactly 4 bytes.
	buf := s.w.Bytes()
	require.Len(t, buf, lenBefore+4)
	second := int32(binary.BigEndian.Uint32(buf[lenBefore:]))

	require.Equal(t, first, second)
}

func TestSerialize_ChildRecordsStartAligned(t *testing.T) {
	v := sql.NewInt(5)
	left := &ReguVariable{Kind: ReguConstant, Value: &v}
	right := &ReguVariable{Kind: ReguAttribute, AttrID: OID{Volid: 1}}
	arith := &ReguVariable{Kind: ReguArith, Op: ReguOpAdd, Left: left, Right: right}

	s := NewSerializer()
	s.writeReguOffset(arith)
	require.NoError(t, s.Err())

	offset := int32(binary.BigEndian.Uint32(s.w.Bytes()[0:4]))
	require.Zero(t, offset%alignment)
}

func TestSerialize_InvalidKindAborts(t *testing.T) {
	_, err := Serialize(&Node{Kind: KindInvalid}, Header{})
	require.Error(t, err)
}

func TestSerialize_UnsupportedProcVariantAborts(t *testing.T) {
	n := &Node{Kind: KindScan, Proc: unsupportedProc{}}
	_, err := Serialize(n, Header{})
	require.Error(t, err)
}

type unsupportedProc struct{}

func (unsupportedProc) ProcKind() Kind { return KindInvalid }
