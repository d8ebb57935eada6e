// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dereg collects quorum votes against underperforming nodes and
// removes a node from the ledger once enough distinct voters agree.
package dereg

import (
	"encoding/binary"
	"sync"

	"github.com/quorax/quorax/cry"
	"github.com/quorax/quorax/log"
	"github.com/quorax/quorax/metrics"
	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/quorum"
	"github.com/quorax/quorax/tx"
)

var (
	logger = log.WithContext("pkg", "dereg")

	metricVotesAccepted  = metrics.LazyLoadCounter("dereg_votes_accepted_count")
	metricVotesRejected  = metrics.LazyLoadCounter("dereg_votes_rejected_count")
	metricDeregistration = metrics.LazyLoadCounter("dereg_completed_count")
)

// Ledger is the slice of the stake registry the collector acts on.
type Ledger interface {
	Has(pubkey quorax.PublicKey) bool
	Remove(pubkey quorax.PublicKey) bool
}

// Vote one committee member's vote against a test target.
type Vote struct {
	VoterIndex uint32
	Signature  quorax.Signature
}

// VoteHash returns the message a voter signs: the digest of the target
// height and target index, both big-endian.
func VoteHash(provider cry.Provider, height uint64, targetIndex uint32) quorax.Bytes32 {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], height)
	binary.BigEndian.PutUint32(buf[8:], targetIndex)
	return provider.Hash(buf[:])
}

type poolKey struct {
	height uint64
	target quorax.PublicKey
}

type pool struct {
	votes map[uint32]quorax.Signature
	done  bool
}

// Collector accumulates deregistration votes per (height, target) and
// fires the ledger removal exactly once when the threshold is reached.
// The Deregistered state is terminal; late votes are ignored, never
// double-applied.
type Collector struct {
	mu       sync.Mutex
	provider cry.Provider
	ledger   Ledger
	pools    map[poolKey]*pool
}

// NewCollector creates a collector bound to a ledger and crypto provider.
func NewCollector(provider cry.Provider, ledger Ledger) *Collector {
	return &Collector{
		provider: provider,
		ledger:   ledger,
		pools:    make(map[poolKey]*pool),
	}
}

// AddVote validates one vote against the quorum derived for height and
// accumulates it. Reaching the vote threshold removes the target from
// the ledger. A rejected vote never aborts collection; the caller may
// keep feeding votes from other committee members.
func (c *Collector) AddVote(q *quorum.State, height uint64, targetIndex uint32, vote Vote) error {
	target, ok := q.Target(targetIndex)
	if !ok {
		metricVotesRejected().Add(1)
		return errTargetIndex
	}
	voter, ok := q.Voter(vote.VoterIndex)
	if !ok {
		metricVotesRejected().Add(1)
		return errVoterIndex
	}
	msg := VoteHash(c.provider, height, targetIndex)
	if !c.provider.Verify(msg[:], voter.PublicKey, vote.Signature) {
		metricVotesRejected().Add(1)
		return errInvalidSignature
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := poolKey{height, target.PublicKey}
	p := c.pools[key]
	if p != nil && p.done {
		// already deregistered, late votes are a no-op
		return nil
	}
	if !c.ledger.Has(target.PublicKey) {
		metricVotesRejected().Add(1)
		return errStaleTarget
	}
	if p == nil {
		p = &pool{votes: make(map[uint32]quorax.Signature)}
		c.pools[key] = p
	}
	if _, voted := p.votes[vote.VoterIndex]; voted {
		metricVotesRejected().Add(1)
		return errDuplicateVoter
	}
	p.votes[vote.VoterIndex] = vote.Signature
	metricVotesAccepted().Add(1)

	if len(p.votes) >= quorax.MinVotesToDeregister {
		p.done = true
		c.ledger.Remove(target.PublicKey)
		metricDeregistration().Add(1)
		logger.Info("node deregistered by quorum vote",
			"target", target.PublicKey,
			"height", height,
			"votes", len(p.votes))
	}
	return nil
}

// DiscardExpired drops vote pools whose targets left the ledger through
// natural expiry. Votes for them can never complete.
func (c *Collector) DiscardExpired(expired []quorax.PublicKey) {
	if len(expired) == 0 {
		return
	}
	gone := make(map[quorax.PublicKey]bool, len(expired))
	for _, pk := range expired {
		gone[pk] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, p := range c.pools {
		if gone[key.target] && !p.done {
			delete(c.pools, key)
		}
	}
}

// VerifyPayload checks a complete deregistration payload against the
// quorum derived for its target height: the target must still be
// registered, voters must be distinct committee members, every signature
// must verify, and the vote count must reach the threshold.
func (c *Collector) VerifyPayload(q *quorum.State, d *tx.Deregistration) error {
	target, ok := q.Target(d.TargetIndex)
	if !ok {
		return errTargetIndex
	}
	if !c.ledger.Has(target.PublicKey) {
		return errStaleTarget
	}
	if len(d.Votes) < quorax.MinVotesToDeregister {
		return errInsufficientVotes
	}

	msg := VoteHash(c.provider, d.TargetHeight, d.TargetIndex)
	seen := make(map[uint32]bool, len(d.Votes))
	for _, v := range d.Votes {
		if seen[v.VoterIndex] {
			return errDuplicateVoter
		}
		seen[v.VoterIndex] = true

		voter, ok := q.Voter(v.VoterIndex)
		if !ok {
			return errVoterIndex
		}
		if !c.provider.Verify(msg[:], voter.PublicKey, v.Signature) {
			return errInvalidSignature
		}
	}
	return nil
}

// ApplyPayload verifies a threshold payload and removes its target.
// Reapplying a payload whose target is already gone fails StaleTarget,
// matching block re-validation semantics.
func (c *Collector) ApplyPayload(q *quorum.State, d *tx.Deregistration) error {
	if err := c.VerifyPayload(q, d); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target, _ := q.Target(d.TargetIndex)
	key := poolKey{d.TargetHeight, target.PublicKey}
	if p := c.pools[key]; p == nil || !p.done {
		c.pools[key] = &pool{done: true}
	}
	c.ledger.Remove(target.PublicKey)
	metricDeregistration().Add(1)
	logger.Info("deregistration payload applied",
		"target", target.PublicKey,
		"height", d.TargetHeight)
	return nil
}
