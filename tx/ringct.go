// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

// Ring-signature scheme identifiers. The payload layout behind each scheme
// is owned by the crypto provider's wire contract; the codec treats it as an
// opaque length-prefixed blob.
const (
	RingSchemeNull        byte = 0
	RingSchemeFull        byte = 1
	RingSchemeSimple      byte = 2
	RingSchemeBulletproof byte = 3
)

// RingSignature the embedded ring-confidential signature of a version >= 2
// transaction. Present exactly when the input list is non-empty.
type RingSignature struct {
	Scheme  byte
	Payload []byte
}

// Copy returns a deep copy.
func (r *RingSignature) Copy() *RingSignature {
	if r == nil {
		return nil
	}
	return &RingSignature{
		Scheme:  r.Scheme,
		Payload: append([]byte(nil), r.Payload...),
	}
}
