// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wire

import (
	"encoding/binary"

	"github.com/quorax/quorax/quorax"
)

// Reader consumes an archive byte slice. It never copies the underlying
// buffer except where callers need owned data.
type Reader struct {
	data []byte
	off  int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.off
}

// Offset returns the number of consumed bytes.
func (r *Reader) Offset() int {
	return r.off
}

// ReadUvarint reads an unsigned varint. Encodings longer than needed are
// rejected, so every value has exactly one archive form.
func (r *Reader) ReadUvarint(field string) (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n == 0 {
		return 0, NewError(ErrUnexpectedEOF, field, r.off)
	}
	if n < 0 {
		return 0, NewError(ErrOverflow, field, r.off)
	}
	if n > 1 && r.data[r.off+n-1] == 0 {
		return 0, NewError(ErrNonCanonical, field, r.off)
	}
	r.off += n
	return v, nil
}

// ReadCount reads a collection count and sanity-checks it against the
// remaining archive length (every element takes at least one byte).
func (r *Reader) ReadCount(field string) (int, error) {
	v, err := r.ReadUvarint(field)
	if err != nil {
		return 0, err
	}
	if v > uint64(r.Len()) {
		return 0, NewError(ErrUnexpectedEOF, field, r.off)
	}
	return int(v), nil
}

// ReadTag reads a one-byte variant discriminant.
func (r *Reader) ReadTag(field string) (byte, error) {
	if r.Len() < 1 {
		return 0, NewError(ErrUnexpectedEOF, field, r.off)
	}
	tag := r.data[r.off]
	r.off++
	return tag, nil
}

// ReadBool reads a strict 0/1 byte.
func (r *Reader) ReadBool(field string) (bool, error) {
	b, err := r.ReadTag(field)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, NewError(ErrUnknownVariant, field, r.off-1)
	}
}

// ReadRaw reads n bytes without a length prefix. The returned slice is owned
// by the caller.
func (r *Reader) ReadRaw(n int, field string) ([]byte, error) {
	if r.Len() < n {
		return nil, NewError(ErrUnexpectedEOF, field, r.off)
	}
	b := append([]byte(nil), r.data[r.off:r.off+n]...)
	r.off += n
	return b, nil
}

// ReadBytes reads a varint-length-prefixed byte string.
func (r *Reader) ReadBytes(field string) ([]byte, error) {
	n, err := r.ReadCount(field)
	if err != nil {
		return nil, err
	}
	return r.ReadRaw(n, field)
}

// ReadBytes32 reads a fixed 32-byte value.
func (r *Reader) ReadBytes32(field string) (quorax.Bytes32, error) {
	if r.Len() < 32 {
		return quorax.Bytes32{}, NewError(ErrUnexpectedEOF, field, r.off)
	}
	var b quorax.Bytes32
	copy(b[:], r.data[r.off:])
	r.off += 32
	return b, nil
}

// ReadUint32LE reads a fixed-width little-endian uint32.
func (r *Reader) ReadUint32LE(field string) (uint32, error) {
	if r.Len() < 4 {
		return 0, NewError(ErrUnexpectedEOF, field, r.off)
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

// Finish asserts the archive is fully consumed.
func (r *Reader) Finish() error {
	if r.Len() != 0 {
		return NewError(ErrTrailingBytes, "end", r.off)
	}
	return nil
}
