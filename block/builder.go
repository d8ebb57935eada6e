// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/tx"
)

// Builder to make it easy to build a block object.
type Builder struct {
	header   Header
	coinbase *tx.Transaction
	txHashes []quorax.Bytes32
}

// MajorVersion set major version.
func (b *Builder) MajorVersion(v uint64) *Builder {
	b.header.MajorVersion = v
	return b
}

// MinorVersion set minor version.
func (b *Builder) MinorVersion(v uint64) *Builder {
	b.header.MinorVersion = v
	return b
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(ts uint64) *Builder {
	b.header.Timestamp = ts
	return b
}

// PrevID set previous block id.
func (b *Builder) PrevID(id quorax.Bytes32) *Builder {
	b.header.PrevID = id
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint32) *Builder {
	b.header.Nonce = nonce
	return b
}

// Coinbase set the coinbase transaction.
func (b *Builder) Coinbase(coinbase *tx.Transaction) *Builder {
	b.coinbase = coinbase
	return b
}

// Tx add a committed transaction by hash.
func (b *Builder) Tx(hash quorax.Bytes32) *Builder {
	b.txHashes = append(b.txHashes, hash)
	return b
}

// Build build a block object.
func (b *Builder) Build() *Block {
	return Compose(b.header, b.coinbase, append([]quorax.Bytes32(nil), b.txHashes...))
}
