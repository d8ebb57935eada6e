// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wire

import (
	"errors"
	"fmt"
)

// Decode error kinds. Malformed or unsupported archive data is always
// recoverable by rejecting the record, never fatal.
var (
	ErrUnexpectedEOF      = errors.New("unexpected end of archive")
	ErrOverflow           = errors.New("varint overflow")
	ErrNonCanonical       = errors.New("non-canonical varint")
	ErrInvalidVersion     = errors.New("invalid version")
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrUnknownType        = errors.New("unknown record type")
	ErrFieldCountMismatch = errors.New("field count mismatch")
	ErrSignatureCount     = errors.New("signature count mismatch")
	ErrTrailingBytes      = errors.New("trailing bytes after record")
)

// Error a decode failure, carrying the failing field and byte offset.
type Error struct {
	Kind   error
	Field  string
	Offset int
}

func (e *Error) Error() string {
	return fmt.Sprintf("wire: %v (field %q, offset %d)", e.Kind, e.Field, e.Offset)
}

// Unwrap makes errors.Is work against the kind sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates a decode error.
func NewError(kind error, field string, offset int) *Error {
	return &Error{Kind: kind, Field: field, Offset: offset}
}

// IsDecodeError reports whether err originated from archive decoding.
func IsDecodeError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
