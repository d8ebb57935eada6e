// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package block defines the block record: a header, exactly one coinbase
// transaction, and the hashes of the transactions the block commits to.
// Blocks are immutable and content-addressed.
package block

import (
	"fmt"
	"sync/atomic"

	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/tx"
	"github.com/quorax/quorax/wire"
)

// Block an immutable block record.
type Block struct {
	header   Header
	coinbase *tx.Transaction
	txHashes []quorax.Bytes32

	cache struct {
		id atomic.Value // quorax.Bytes32
	}
}

// Compose composes a block from its parts. Takes ownership of txHashes.
func Compose(header Header, coinbase *tx.Transaction, txHashes []quorax.Bytes32) *Block {
	return &Block{
		header:   header,
		coinbase: coinbase,
		txHashes: txHashes,
	}
}

// Header returns the header.
func (b *Block) Header() Header {
	return b.header
}

// Coinbase returns the coinbase transaction.
func (b *Block) Coinbase() *tx.Transaction {
	return b.coinbase
}

// TxHashes returns hashes of the committed transactions.
func (b *Block) TxHashes() []quorax.Bytes32 {
	return append([]quorax.Bytes32(nil), b.txHashes...)
}

// ID computes the content-addressed identity of the block: the hash over the
// serialized header, coinbase and hash list. Cached after first call.
func (b *Block) ID() quorax.Bytes32 {
	if cached := b.cache.id.Load(); cached != nil {
		return cached.(quorax.Bytes32)
	}

	data, err := b.Encode()
	if err != nil {
		// blocks composed from valid parts always encode
		panic(fmt.Sprintf("block: hashing malformed block: %v", err))
	}
	id := quorax.Blake2b(data)
	b.cache.id.Store(id)
	return id
}

// Encode serializes the block into the canonical archive.
func (b *Block) Encode() ([]byte, error) {
	w := wire.NewWriter()
	b.header.encode(w)

	coinbaseData, err := b.coinbase.Encode()
	if err != nil {
		return nil, err
	}
	w.WriteRaw(coinbaseData)

	w.WriteUvarint(uint64(len(b.txHashes)))
	for _, h := range b.txHashes {
		w.WriteBytes32(h)
	}
	return w.Bytes(), nil
}

// Decode parses a block from the canonical archive.
//
// The coinbase is decoded in place: the transaction archive is
// self-delimiting, so no length prefix separates it from the hash list.
func Decode(data []byte) (*Block, error) {
	r := wire.NewReader(data)

	header, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	// hand the remainder to the tx codec, then resync
	coinbaseStart := r.Offset()
	coinbase, consumed, err := tx.DecodeNext(data[coinbaseStart:])
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadRaw(consumed, "coinbase"); err != nil {
		return nil, err
	}

	count, err := r.ReadCount("tx_hashes")
	if err != nil {
		return nil, err
	}
	hashes := make([]quorax.Bytes32, count)
	for i := range hashes {
		if hashes[i], err = r.ReadBytes32("tx_hashes"); err != nil {
			return nil, err
		}
	}

	if err := r.Finish(); err != nil {
		return nil, err
	}
	return Compose(header, coinbase, hashes), nil
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(%v) %v txs=%d", b.ID().AbbrevString(), &b.header, len(b.txHashes))
}
