// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cry isolates all key material handling behind the Provider
// boundary. Consensus code never touches curve internals; it only consumes
// fixed-size keys, signatures and digests.
package cry

import (
	"github.com/quorax/quorax/quorax"
)

// SecretKey an opaque secret key. Its layout belongs to the provider.
type SecretKey []byte

// Provider the crypto boundary consumed by the consensus core.
// Failure is a boolean or error value, never a panic.
type Provider interface {
	// Sign signs msg with sk.
	Sign(msg []byte, sk SecretKey) (quorax.Signature, error)

	// Verify reports whether sig over msg was produced by the holder of pk.
	Verify(msg []byte, pk quorax.PublicKey, sig quorax.Signature) bool

	// Hash computes the canonical 32-byte digest of data.
	Hash(data ...[]byte) quorax.Bytes32

	// DeriveKeyImage derives the one-time double-spend tag for a key pair.
	DeriveKeyImage(pk quorax.PublicKey, sk SecretKey) (quorax.KeyImage, error)
}
