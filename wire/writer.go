// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wire implements the canonical binary archive: LEB128 varints,
// varint-length-prefixed byte strings and collections, and one-byte variant
// discriminants. The byte stream is self-delimiting, so records need no
// top-level length prefix.
package wire

import (
	"encoding/binary"

	"github.com/quorax/quorax/quorax"
)

// Writer appends archive fields to an in-memory buffer.
// The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with some initial capacity.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// WriteUvarint appends an unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

// WriteTag appends a one-byte variant discriminant.
func (w *Writer) WriteTag(tag byte) {
	w.buf = append(w.buf, tag)
}

// WriteBool appends a bool as a single 0/1 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteRaw appends bytes without a length prefix.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteBytes appends a varint-length-prefixed byte string.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUvarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteBytes32 appends a fixed 32-byte value.
func (w *Writer) WriteBytes32(b quorax.Bytes32) {
	w.buf = append(w.buf, b[:]...)
}

// WriteUint32LE appends a fixed-width little-endian uint32.
func (w *Writer) WriteUint32LE(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Bytes returns the accumulated archive.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the accumulated size.
func (w *Writer) Len() int {
	return len(w.buf)
}
