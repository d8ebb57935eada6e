// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorax/quorax/quorax"
)

func key(n byte) quorax.PublicKey {
	return quorax.BytesToPublicKey([]byte{n})
}

func soleContributor(n byte) []Contributor {
	return []Contributor{{
		Address: quorax.BytesToAddress([]byte{n}),
		Portion: quorax.StakingPortions,
	}}
}

func TestRegister(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(key(1), soleContributor(1), 100))

	err := r.Register(key(1), soleContributor(1), 200)
	assert.True(t, IsErrDuplicateKey(err))

	// zero portion
	err = r.Register(key(2), []Contributor{{Address: quorax.BytesToAddress([]byte{2})}}, 100)
	assert.True(t, IsErrInvalidContribution(err))

	// portions not summing to the full stake unit
	err = r.Register(key(2), []Contributor{
		{Address: quorax.BytesToAddress([]byte{2}), Portion: quorax.StakingPortions / 2},
	}, 100)
	assert.True(t, IsErrInvalidContribution(err))

	// no contributors at all
	err = r.Register(key(2), nil, 100)
	assert.True(t, IsErrInvalidContribution(err))

	// split portions summing exactly
	err = r.Register(key(2), []Contributor{
		{Address: quorax.BytesToAddress([]byte{2}), Portion: quorax.StakingPortions / 2},
		{Address: quorax.BytesToAddress([]byte{3}), Portion: quorax.StakingPortions - quorax.StakingPortions/2},
	}, 100)
	assert.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestCanonicalOrder(t *testing.T) {
	// two ledgers built from the same events in different orders agree
	a := New()
	b := New()
	for _, n := range []byte{7, 3, 9, 1} {
		require.NoError(t, a.Register(key(n), soleContributor(n), 100))
	}
	for _, n := range []byte{1, 9, 3, 7} {
		require.NoError(t, b.Register(key(n), soleContributor(n), 100))
	}
	assert.Equal(t, a.Active(), b.Active())

	active := a.Active()
	for i := 1; i < len(active); i++ {
		assert.True(t, active[i-1].Compare(active[i]) < 0, "active set must be sorted")
	}
}

func TestTopUp(t *testing.T) {
	r := New()
	addr := quorax.BytesToAddress([]byte("solo"))
	require.NoError(t, r.Register(key(1), []Contributor{{Address: addr, Portion: quorax.StakingPortions}}, 100))

	err := r.TopUp(key(2), addr, 10)
	assert.True(t, IsErrUnknownNode(err))

	require.NoError(t, r.TopUp(key(1), addr, quorax.StakingRequirement/2))
	node, ok := r.Get(key(1))
	require.True(t, ok)
	assert.False(t, node.FullyStaked())

	require.NoError(t, r.TopUp(key(1), addr, quorax.StakingRequirement/2))
	node, _ = r.Get(key(1))
	assert.True(t, node.FullyStaked())

	err = r.TopUp(key(1), addr, 1)
	assert.True(t, IsErrNotAcceptingContributions(err))
}

func TestExpire(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(key(1), soleContributor(1), 50))
	require.NoError(t, r.Register(key(2), soleContributor(2), 100))
	require.NoError(t, r.Register(key(3), soleContributor(3), 100))

	// strictly-below rule: expiry at exactly the height survives
	removed := r.Expire(100)
	assert.Equal(t, []quorax.PublicKey{key(1)}, removed)
	assert.False(t, r.Has(key(1)))
	assert.True(t, r.Has(key(2)))

	// idempotent
	assert.Empty(t, r.Expire(100))

	removed = r.Expire(101)
	assert.Len(t, removed, 2)
	assert.Equal(t, 0, r.Len())
}

func TestRemove(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(key(1), soleContributor(1), 100))

	assert.True(t, r.Remove(key(1)))
	assert.False(t, r.Has(key(1)))
	assert.False(t, r.Remove(key(1)))
}

func TestGetReturnsSnapshot(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(key(1), soleContributor(1), 100))

	snap, ok := r.Get(key(1))
	require.True(t, ok)
	snap.Contributors[0].Locked = 999

	fresh, _ := r.Get(key(1))
	assert.Equal(t, uint64(0), fresh.Contributors[0].Locked)
}
