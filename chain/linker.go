// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain provides the minimal chain linkage the consensus core needs:
// block-id-to-height resolution and unlock-time evaluation. Full blockchain
// storage and indexing belong to the embedding node.
package chain

import (
	"sync"

	"github.com/quorax/quorax/quorax"
)

// Linker resolves block linkage for unlock and expiry checks.
type Linker interface {
	// HeightOf resolves a block id to its height, if known.
	HeightOf(id quorax.Bytes32) (uint64, bool)
}

// IsOutputUnlocked evaluates an output unlock time. Values below
// quorax.MaxUnlockAsHeight are block-height thresholds; values at or above
// it are unix timestamps compared against now plus the allowed delta.
func IsOutputUnlocked(unlockTime, currentHeight, now uint64) bool {
	if unlockTime < quorax.MaxUnlockAsHeight {
		return currentHeight+quorax.LockedTxAllowedDeltaBlocks >= unlockTime
	}
	return now+quorax.LockedTxAllowedDeltaSeconds >= unlockTime
}

// MemLinker an in-memory Linker for chain generation and tests.
type MemLinker struct {
	mu      sync.RWMutex
	heights map[quorax.Bytes32]uint64
	tip     quorax.Bytes32
	height  uint64
}

var _ Linker = (*MemLinker)(nil)

// NewMemLinker creates an empty linker.
func NewMemLinker() *MemLinker {
	return &MemLinker{heights: make(map[quorax.Bytes32]uint64)}
}

// Extend records a block id at the next height and makes it the tip.
func (l *MemLinker) Extend(id quorax.Bytes32) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.heights) == 0 {
		l.height = 0
	} else {
		l.height++
	}
	l.heights[id] = l.height
	l.tip = id
	return l.height
}

// HeightOf resolves a block id to its height, if known.
func (l *MemLinker) HeightOf(id quorax.Bytes32) (uint64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h, ok := l.heights[id]
	return h, ok
}

// Tip returns the current tip id and height.
func (l *MemLinker) Tip() (quorax.Bytes32, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tip, l.height
}
