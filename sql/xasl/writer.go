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
	"math"
)

// alignment is the greater of 4 and the machine's double alignment; every
// record start is padded up to this boundary before it is written.
const alignment = 8

// Writer is the big-endian aligned byte-stream primitive the serializer
// writes through: one growable buffer, one cursor (len(buf)).
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the current write cursor.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteI16 appends a big-endian int16.
func (w *Writer) WriteI16(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteI32 appends a big-endian int32.
func (w *Writer) WriteI32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteI64 appends a big-endian int64.
func (w *Writer) WriteI64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteF64 appends a big-endian IEEE-754 double.
func (w *Writer) WriteF64(v float64) {
	w.WriteI64(int64(math.Float64bits(v)))
}

// WriteBool appends a single byte, 1 or 0.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

// WriteBytes appends b verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteI32(int32(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteOID appends an OID triple.
func (w *Writer) WriteOID(o OID) {
	w.WriteI32(o.Volid)
	w.WriteI32(o.Pageid)
	w.WriteI16(o.Slotid)
}

// Align pads the cursor with zero bytes up to the alignment boundary, with
// no effect if the cursor is already aligned.
func (w *Writer) Align() {
	if pad := (alignment - len(w.buf)%alignment) % alignment; pad > 0 {
		w.buf = append(w.buf, make([]byte, pad)...)
	}
}

// ReserveAligned writes a 4-byte placeholder for a forward offset reference
// at the current cursor, then pads the cursor up to the alignment boundary
// so the record the placeholder will point to starts aligned. It returns the
// placeholder's position (for PatchI32) and the aligned offset the record
// will be written at.
func (w *Writer) ReserveAligned() (refPos int, offset int32) {
	refPos = len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)
	w.Align()
	return refPos, int32(len(w.buf))
}

// PatchI32 overwrites the big-endian int32 at pos, previously reserved by
// ReserveAligned, with v.
func (w *Writer) PatchI32(pos int, v int32) {
	binary.BigEndian.PutUint32(w.buf[pos:pos+4], uint32(v))
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}
