// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorax

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
)

var errInvalidHexLength = errors.New("invalid hex length")

const (
	// PublicKeyLength length of a node/output public key in bytes.
	PublicKeyLength = 32
	// KeyImageLength length of a key image in bytes.
	KeyImageLength = 32
	// SignatureLength length of a signature in bytes.
	SignatureLength = 64
)

// PublicKey a service node or output public key.
type PublicKey [PublicKeyLength]byte

// String implements stringer
func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// Bytes returns byte slice form of the public key.
func (p PublicKey) Bytes() []byte {
	return p[:]
}

// IsZero returns if the key has all zero bytes.
func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// Compare lexicographically compares two public keys, returning -1, 0 or 1.
func (p PublicKey) Compare(other PublicKey) int {
	return bytes.Compare(p[:], other[:])
}

// MarshalJSON implements json.Marshaler.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return decodeFixedHex(s, p[:])
}

// BytesToPublicKey converts bytes slice into a public key.
func BytesToPublicKey(b []byte) PublicKey {
	var p PublicKey
	if len(b) > PublicKeyLength {
		b = b[len(b)-PublicKeyLength:]
	}
	copy(p[PublicKeyLength-len(b):], b)
	return p
}

// KeyImage one-time tag derived from a spent output's key pair.
// Globally unique across all committed transactions.
type KeyImage [KeyImageLength]byte

// String implements stringer
func (k KeyImage) String() string {
	return hex.EncodeToString(k[:])
}

// Bytes returns byte slice form of the key image.
func (k KeyImage) Bytes() []byte {
	return k[:]
}

// MarshalJSON implements json.Marshaler.
func (k KeyImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *KeyImage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return decodeFixedHex(s, k[:])
}

// Signature a detached signature.
type Signature [SignatureLength]byte

// String implements stringer
func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// Bytes returns byte slice form of the signature.
func (s Signature) Bytes() []byte {
	return s[:]
}

// MarshalJSON implements json.Marshaler.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return decodeFixedHex(str, s[:])
}

// BytesToSignature converts bytes slice into a signature.
func BytesToSignature(b []byte) Signature {
	var s Signature
	if len(b) > SignatureLength {
		b = b[:SignatureLength]
	}
	copy(s[:], b)
	return s
}

func decodeFixedHex(s string, dst []byte) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return errInvalidHexLength
	}
	copy(dst, b)
	return nil
}
