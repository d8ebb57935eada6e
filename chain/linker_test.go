// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quorax/quorax/chain"
	"github.com/quorax/quorax/quorax"
)

func TestIsOutputUnlocked(t *testing.T) {
	// height threshold
	assert.True(t, chain.IsOutputUnlocked(100, 100, 0))
	assert.True(t, chain.IsOutputUnlocked(100, 99, 0)) // within allowed delta
	assert.False(t, chain.IsOutputUnlocked(100, 98, 0))

	// timestamp threshold
	ts := quorax.MaxUnlockAsHeight + 1000
	assert.True(t, chain.IsOutputUnlocked(ts, 0, ts))
	assert.True(t, chain.IsOutputUnlocked(ts, 0, ts-quorax.LockedTxAllowedDeltaSeconds))
	assert.False(t, chain.IsOutputUnlocked(ts, 0, ts-quorax.LockedTxAllowedDeltaSeconds-1))
}

func TestMemLinker(t *testing.T) {
	l := chain.NewMemLinker()

	genesis := quorax.Blake2b([]byte("genesis"))
	assert.Equal(t, uint64(0), l.Extend(genesis))

	next := quorax.Blake2b([]byte("b1"))
	assert.Equal(t, uint64(1), l.Extend(next))

	h, ok := l.HeightOf(genesis)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), h)

	_, ok = l.HeightOf(quorax.Blake2b([]byte("unknown")))
	assert.False(t, ok)

	tip, height := l.Tip()
	assert.Equal(t, next, tip)
	assert.Equal(t, uint64(1), height)
}
