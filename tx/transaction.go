// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx defines the versioned transaction record and its canonical
// archive. Records are immutable once built or decoded; all "mutations"
// return copies, so a cached hash can never go stale.
package tx

import (
	"fmt"
	"sync/atomic"

	"github.com/quorax/quorax/quorax"
)

// Transaction is an immutable versioned transaction record.
type Transaction struct {
	body body

	cache struct {
		hash atomic.Value // quorax.Bytes32
		size atomic.Value // uint64
	}
}

// body describes details of a tx.
type body struct {
	Version       Version
	UnlockTime    uint64   // versions 1..2 only
	OutputUnlocks []uint64 // versions >= 3, one entry per output
	Type          Type     // versions >= 3
	Inputs        []Input
	Outputs       []Output
	Extra         []byte
	Signatures    [][]quorax.Signature // version 1: one group per input
	RingSig       *RingSignature       // versions >= 2
	Pruned        bool
}

// Version returns the format version.
func (t *Transaction) Version() Version {
	return t.body.Version
}

// UnlockTime returns the global unlock height/timestamp. Meaningful only
// when Version() <= V2.
func (t *Transaction) UnlockTime() uint64 {
	return t.body.UnlockTime
}

// OutputUnlocks returns the per-output unlock times, one per output.
// Empty below V3.
func (t *Transaction) OutputUnlocks() []uint64 {
	return append([]uint64(nil), t.body.OutputUnlocks...)
}

// Type returns the transaction type. Standard below V3.
func (t *Transaction) Type() Type {
	return t.body.Type
}

// Inputs returns the input list.
func (t *Transaction) Inputs() []Input {
	return append([]Input(nil), t.body.Inputs...)
}

// Outputs returns the output list.
func (t *Transaction) Outputs() []Output {
	return append([]Output(nil), t.body.Outputs...)
}

// Extra returns the opaque extra blob.
func (t *Transaction) Extra() []byte {
	return append([]byte(nil), t.body.Extra...)
}

// Signatures returns the classic per-input signature groups (version 1).
func (t *Transaction) Signatures() [][]quorax.Signature {
	if t.body.Signatures == nil {
		return nil
	}
	groups := make([][]quorax.Signature, len(t.body.Signatures))
	for i, g := range t.body.Signatures {
		groups[i] = append([]quorax.Signature(nil), g...)
	}
	return groups
}

// RingSignature returns the embedded ring signature (version >= 2), or nil.
func (t *Transaction) RingSignature() *RingSignature {
	return t.body.RingSig.Copy()
}

// Pruned reports whether signature/proof data was stripped. A pruned record
// is unusable for consensus re-checks.
func (t *Transaction) Pruned() bool {
	return t.body.Pruned
}

// Hash returns the content hash of the record, computed lazily over the
// canonical encoding.
func (t *Transaction) Hash() quorax.Bytes32 {
	if cached := t.cache.hash.Load(); cached != nil {
		return cached.(quorax.Bytes32)
	}

	data, err := t.Encode()
	if err != nil {
		// records built through Builder/Decode always encode
		panic(fmt.Sprintf("tx: hashing malformed record: %v", err))
	}
	h := quorax.Blake2b(data)
	t.cache.hash.Store(h)
	return h
}

// BlobSize returns the canonical encoding size, computed lazily.
func (t *Transaction) BlobSize() uint64 {
	if cached := t.cache.size.Load(); cached != nil {
		return cached.(uint64)
	}

	data, err := t.Encode()
	if err != nil {
		panic(fmt.Sprintf("tx: sizing malformed record: %v", err))
	}
	size := uint64(len(data))
	t.cache.size.Store(size)
	return size
}

// IsCoinbase reports whether the record is a coinbase: a single generation
// input.
func (t *Transaction) IsCoinbase() bool {
	if len(t.body.Inputs) != 1 {
		return false
	}
	_, ok := t.body.Inputs[0].(GenerationInput)
	return ok
}

// WithSignatures creates a copy with classic signature groups set.
func (t *Transaction) WithSignatures(groups [][]quorax.Signature) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.Signatures = make([][]quorax.Signature, len(groups))
	for i, g := range groups {
		newTx.body.Signatures[i] = append([]quorax.Signature(nil), g...)
	}
	return &newTx
}

// WithRingSignature creates a copy with the ring signature set.
func (t *Transaction) WithRingSignature(rs *RingSignature) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.RingSig = rs.Copy()
	return &newTx
}

// Prune creates a proof-stripped copy. Pruned records re-encode without
// signatures and fail any re-validation.
func (t *Transaction) Prune() *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.Signatures = nil
	newTx.body.RingSig = nil
	newTx.body.Pruned = true
	return &newTx
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Tx(%v) %v type=%v inputs=%d outputs=%d pruned=%v",
		t.Hash().AbbrevString(), t.body.Version, t.body.Type,
		len(t.body.Inputs), len(t.body.Outputs), t.body.Pruned)
}
