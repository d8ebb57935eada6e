// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"

	"github.com/quorax/quorax/quorax"
)

var keyImageDomain = []byte("quorax.keyimage")

// Ed25519Provider the default Provider: ed25519 signatures, blake2b digests.
type Ed25519Provider struct{}

var _ Provider = (*Ed25519Provider)(nil)

// NewEd25519Provider creates the default provider.
func NewEd25519Provider() *Ed25519Provider {
	return &Ed25519Provider{}
}

// GenerateKey creates a fresh key pair.
func (p *Ed25519Provider) GenerateKey() (quorax.PublicKey, SecretKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return quorax.PublicKey{}, nil, err
	}
	var pk quorax.PublicKey
	copy(pk[:], pub)
	return pk, SecretKey(priv), nil
}

// Sign signs msg with sk.
func (p *Ed25519Provider) Sign(msg []byte, sk SecretKey) (quorax.Signature, error) {
	if len(sk) != ed25519.PrivateKeySize {
		return quorax.Signature{}, errors.New("invalid secret key size")
	}
	sig := ed25519.Sign(ed25519.PrivateKey(sk), msg)
	return quorax.BytesToSignature(sig), nil
}

// Verify reports whether sig over msg was produced by the holder of pk.
func (p *Ed25519Provider) Verify(msg []byte, pk quorax.PublicKey, sig quorax.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pk[:]), msg, sig[:])
}

// Hash computes the canonical 32-byte digest of data.
func (p *Ed25519Provider) Hash(data ...[]byte) quorax.Bytes32 {
	return quorax.Blake2b(data...)
}

// DeriveKeyImage derives the one-time double-spend tag for a key pair.
// The tag binds the secret key, so independent outputs never collide, and
// re-derivation for the same pair is stable.
func (p *Ed25519Provider) DeriveKeyImage(pk quorax.PublicKey, sk SecretKey) (quorax.KeyImage, error) {
	if len(sk) != ed25519.PrivateKeySize {
		return quorax.KeyImage{}, errors.New("invalid secret key size")
	}
	seed := ed25519.PrivateKey(sk).Seed()
	digest := quorax.Blake2b(keyImageDomain, pk[:], seed)
	return quorax.KeyImage(digest), nil
}
