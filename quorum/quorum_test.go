// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorax/quorax/quorax"
)

func activeSet(n int) []quorax.PublicKey {
	keys := make([]quorax.PublicKey, n)
	for i := range keys {
		keys[i] = quorax.BytesToPublicKey([]byte{byte(i + 1)})
	}
	return keys
}

func TestGenerateDeterministic(t *testing.T) {
	hash := quorax.Blake2b([]byte("block"))
	active := activeSet(quorax.QuorumSize + 5)

	a, err := Generate(hash, active)
	require.NoError(t, err)
	b, err := Generate(hash, active)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same block hash and active set must derive identical quorums")

	c, err := Generate(quorax.Blake2b([]byte("other block")), active)
	require.NoError(t, err)
	assert.NotEqual(t, a.Voters, c.Voters, "a different block hash should reshuffle")
}

func TestGenerateSplit(t *testing.T) {
	hash := quorax.Blake2b([]byte("block"))
	active := activeSet(quorax.QuorumSize + 5)

	state, err := Generate(hash, active)
	require.NoError(t, err)

	assert.Len(t, state.Voters, quorax.QuorumSize)
	assert.Len(t, state.ToTest, 5)

	// positions run 0..n-1 across the split, each key appears once
	seen := make(map[quorax.PublicKey]bool)
	for i, m := range state.Voters {
		assert.Equal(t, uint32(i), m.Index)
		seen[m.PublicKey] = true
	}
	for i, m := range state.ToTest {
		assert.Equal(t, uint32(quorax.QuorumSize+i), m.Index)
		seen[m.PublicKey] = true
	}
	assert.Len(t, seen, len(active))
}

func TestGenerateInsufficientNodes(t *testing.T) {
	hash := quorax.Blake2b([]byte("block"))

	_, err := Generate(hash, activeSet(quorax.QuorumSize))
	assert.True(t, IsErrInsufficientNodes(err))

	_, err = Generate(hash, nil)
	assert.True(t, IsErrInsufficientNodes(err))

	_, err = Generate(hash, activeSet(quorax.QuorumSize+1))
	assert.NoError(t, err)
}

func TestStateLookups(t *testing.T) {
	hash := quorax.Blake2b([]byte("block"))
	state, err := Generate(hash, activeSet(quorax.QuorumSize+2))
	require.NoError(t, err)

	v, ok := state.Voter(0)
	require.True(t, ok)
	assert.Equal(t, state.Voters[0], v)

	_, ok = state.Voter(quorax.QuorumSize)
	assert.False(t, ok)

	tgt, ok := state.Target(quorax.QuorumSize)
	require.True(t, ok)
	assert.Equal(t, state.ToTest[0], tgt)

	_, ok = state.Target(0)
	assert.False(t, ok)
	_, ok = state.Target(quorax.QuorumSize + 2)
	assert.False(t, ok)
}

func TestCache(t *testing.T) {
	hash := quorax.Blake2b([]byte("block"))
	active := activeSet(quorax.QuorumSize + 3)

	c := NewCache(16)
	a, err := c.Get(hash, active)
	require.NoError(t, err)
	b, err := c.Get(hash, active)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = c.Get(quorax.Blake2b([]byte("tiny")), activeSet(2))
	assert.True(t, IsErrInsufficientNodes(err))
}
