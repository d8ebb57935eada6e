// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorax/quorax/block"
	"github.com/quorax/quorax/cry"
	"github.com/quorax/quorax/dereg"
	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/quorum"
	"github.com/quorax/quorax/registry"
	"github.com/quorax/quorax/tx"
)

type harness struct {
	provider *cry.Ed25519Provider
	proc     *Processor
	secrets  map[quorax.PublicKey]cry.SecretKey
	prev     quorax.Bytes32
	nonce    uint32
}

func newHarness(t *testing.T, fork quorax.ForkConfig) *harness {
	provider := cry.NewEd25519Provider()
	return &harness{
		provider: provider,
		proc:     NewProcessor(fork, registry.New(), provider),
		secrets:  make(map[quorax.PublicKey]cry.SecretKey),
	}
}

// register adds count nodes with the given expiry and returns their keys
// in canonical order.
func (h *harness) register(t *testing.T, count int, expiry uint64) []quorax.PublicKey {
	keys := make([]quorax.PublicKey, 0, count)
	for i := 0; i < count; i++ {
		pk, sk, err := h.provider.GenerateKey()
		require.NoError(t, err)
		h.secrets[pk] = sk
		keys = append(keys, pk)
		require.NoError(t, h.proc.Registry().Register(pk, []registry.Contributor{{
			Address: quorax.BytesToAddress(pk[:]),
			Portion: quorax.StakingPortions,
		}}, expiry))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	return keys
}

func (h *harness) nextBlock(t *testing.T, winner quorax.PublicKey) *block.Block {
	h.nonce++
	_, tipHeight := h.proc.Chain().Tip()
	coinbase, err := tx.NewCoinbase(tx.V4, tipHeight+1, 1000, winner, winner, 0)
	require.NoError(t, err)
	blk := new(block.Builder).
		Timestamp(uint64(h.nonce) * quorax.BlockInterval).
		PrevID(h.prev).
		Nonce(h.nonce).
		Coinbase(coinbase).
		Build()
	h.prev = blk.ID()
	return blk
}

func (h *harness) advance(t *testing.T, n int) *Outcome {
	var out *Outcome
	for i := 0; i < n; i++ {
		var err error
		out, err = h.proc.ProcessBlock(h.nextBlock(t, quorax.PublicKey{}), nil)
		require.NoError(t, err)
	}
	return out
}

func (h *harness) signVote(t *testing.T, voter quorum.Member, height uint64, targetIndex uint32) tx.DeregVote {
	msg := dereg.VoteHash(h.provider, height, targetIndex)
	sig, err := h.provider.Sign(msg[:], h.secrets[voter.PublicKey])
	require.NoError(t, err)
	return tx.DeregVote{VoterIndex: voter.Index, Signature: sig}
}

func TestEndToEndDeregistration(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	h.register(t, quorax.QuorumSize+4, 100)

	out := h.advance(t, 51)
	require.Equal(t, uint64(50), out.Height)

	state, ok := h.proc.QuorumAt(50)
	require.True(t, ok)

	// vote out the first test target of height 50's quorum
	target := state.ToTest[0]
	payload := &tx.Deregistration{TargetHeight: 50, TargetIndex: target.Index}
	for i := 0; i < quorax.MinVotesToDeregister; i++ {
		payload.Votes = append(payload.Votes, h.signVote(t, state.Voters[i], 50, target.Index))
	}

	_, err := h.proc.ProcessBlock(h.nextBlock(t, quorax.PublicKey{}), []*tx.Deregistration{payload})
	require.NoError(t, err)
	assert.False(t, h.proc.Registry().Has(target.PublicKey), "target removed immediately after threshold payload")

	// natural expiry at the target's expiry height is a no-op for it
	removed := h.proc.Registry().Expire(100)
	assert.NotContains(t, removed, target.PublicKey)
	assert.Empty(t, removed, "expiry 100 survives expire(100)")
}

func TestProcessBlockExpiry(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	short := h.register(t, 1, 10)
	h.register(t, 2, 1000)

	out := h.advance(t, 10) // heights 0..9
	assert.Empty(t, out.Expired)

	out = h.advance(t, 1) // height 10: expire(10) keeps expiry 10
	assert.Empty(t, out.Expired)
	assert.True(t, h.proc.Registry().Has(short[0]))

	out = h.advance(t, 1) // height 11: expire(11) removes it
	assert.Equal(t, short, out.Expired)
	assert.False(t, h.proc.Registry().Has(short[0]))
}

func TestProcessBlockExpiryFork(t *testing.T) {
	// fork active from block 0: expiry is evaluated one height early
	h := newHarness(t, quorax.ForkConfig{ExpiryAligned: 0})
	short := h.register(t, 1, 10)

	out := h.advance(t, 10) // height 9: expire(10) keeps expiry 10
	assert.Empty(t, out.Expired)

	out = h.advance(t, 1) // height 10: expire(11) removes it
	assert.Equal(t, short, out.Expired)
}

func TestProcessBlockUnknownQuorum(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	h.register(t, quorax.QuorumSize+2, 1000)
	h.advance(t, 3)

	payload := &tx.Deregistration{TargetHeight: 999, TargetIndex: uint32(quorax.QuorumSize)}
	_, err := h.proc.ProcessBlock(h.nextBlock(t, quorax.PublicKey{}), []*tx.Deregistration{payload})
	assert.True(t, IsErrUnknownQuorum(err))
}

func TestProcessBlockRejectsInvalidPayloadBeforeApply(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	h.register(t, quorax.QuorumSize+4, 1000)
	h.advance(t, 2)

	state, ok := h.proc.QuorumAt(1)
	require.True(t, ok)

	good := &tx.Deregistration{TargetHeight: 1, TargetIndex: state.ToTest[0].Index}
	for i := 0; i < quorax.MinVotesToDeregister; i++ {
		good.Votes = append(good.Votes, h.signVote(t, state.Voters[i], 1, state.ToTest[0].Index))
	}
	bad := &tx.Deregistration{TargetHeight: 1, TargetIndex: state.ToTest[1].Index}

	_, err := h.proc.ProcessBlock(h.nextBlock(t, quorax.PublicKey{}), []*tx.Deregistration{good, bad})
	assert.True(t, dereg.IsErrInsufficientVotes(err))
	assert.True(t, h.proc.Registry().Has(state.ToTest[0].PublicKey), "no payload applied when any is invalid")
}

func TestSpeculate(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	h.register(t, quorax.QuorumSize+2, 1000)
	h.advance(t, 1)

	blk := h.nextBlock(t, quorax.PublicKey{})
	spec, err := h.proc.Speculate(blk.ID())
	require.NoError(t, err)

	out, err := h.proc.ProcessBlock(blk, nil)
	require.NoError(t, err)

	got, ok := h.proc.QuorumAt(out.Height)
	require.True(t, ok)
	assert.Same(t, spec, got, "speculative state is reused when the block materializes")
}

func TestQuorumStatePruned(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	h.register(t, quorax.QuorumSize+2, 1_000_000)

	h.advance(t, quorumLookback+2) // heights 0..quorumLookback+1

	_, ok := h.proc.QuorumAt(0)
	assert.False(t, ok, "states beyond the lookback are dropped")
	_, ok = h.proc.QuorumAt(1)
	assert.False(t, ok)
	_, ok = h.proc.QuorumAt(2)
	assert.True(t, ok, "states inside the lookback are kept")
	_, ok = h.proc.QuorumAt(quorumLookback + 1)
	assert.True(t, ok)

	// a payload referencing a pruned height is rejected
	payload := &tx.Deregistration{TargetHeight: 0, TargetIndex: uint32(quorax.QuorumSize)}
	_, err := h.proc.ProcessBlock(h.nextBlock(t, quorax.PublicKey{}), []*tx.Deregistration{payload})
	assert.True(t, IsErrUnknownQuorum(err))
}

func TestWinnerAcrossBlocks(t *testing.T) {
	h := newHarness(t, quorax.NoFork)
	keys := h.register(t, 3, 1000)

	winners := make([]quorax.PublicKey, 0, 3)
	for i := 0; i < 3; i++ {
		out := h.advance(t, 1)
		require.True(t, out.HasWin)
		winners = append(winners, out.Winner)
	}
	assert.ElementsMatch(t, keys, winners, "three blocks reward all three nodes once")
}
