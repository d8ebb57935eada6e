// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node ties the consensus components into the per-block processing
// step: reward selection, stake expiry and deregistration are applied as
// one atomic unit per block, in block order.
package node

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/quorax/quorax/block"
	"github.com/quorax/quorax/chain"
	"github.com/quorax/quorax/cry"
	"github.com/quorax/quorax/dereg"
	"github.com/quorax/quorax/log"
	"github.com/quorax/quorax/metrics"
	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/quorum"
	"github.com/quorax/quorax/registry"
	"github.com/quorax/quorax/tx"
)

var (
	logger = log.WithContext("pkg", "node")

	metricBlocksProcessed = metrics.LazyLoadCounter("node_blocks_processed_count")

	errUnknownQuorum = errors.New("no quorum known for the target height")
)

// quorumLookback how many recent heights keep their derived quorum.
// Deregistrations referencing older heights are stale by definition, so
// their states can be dropped.
const quorumLookback = 128

// IsErrUnknownQuorum returns whether the error means a deregistration
// referenced a height with no derivable quorum.
func IsErrUnknownQuorum(err error) bool {
	return errors.Cause(err) == errUnknownQuorum
}

// Outcome summarizes the ledger effects of one processed block.
type Outcome struct {
	Height  uint64
	Winner  quorax.PublicKey
	HasWin  bool
	Expired []quorax.PublicKey
}

// Processor owns the stake ledger for the duration of each per-block
// step. All mutation goes through ProcessBlock; partial application is
// never observable from outside.
type Processor struct {
	mu      sync.Mutex
	fork    quorax.ForkConfig
	reg     *registry.Registry
	coll    *dereg.Collector
	chain   *chain.MemLinker
	quorums *quorum.Cache
	states  map[uint64]*quorum.State
}

// NewProcessor creates a processor over a fresh chain and ledger.
func NewProcessor(fork quorax.ForkConfig, reg *registry.Registry, provider cry.Provider) *Processor {
	return &Processor{
		fork:    fork,
		reg:     reg,
		coll:    dereg.NewCollector(provider, reg),
		chain:   chain.NewMemLinker(),
		quorums: quorum.NewCache(128),
		states:  make(map[uint64]*quorum.State),
	}
}

// Registry returns the ledger the processor owns. Callers must not
// mutate it while blocks are being processed.
func (p *Processor) Registry() *registry.Registry { return p.reg }

// Collector returns the vote collector bound to the ledger.
func (p *Processor) Collector() *dereg.Collector { return p.coll }

// Chain returns the block linker.
func (p *Processor) Chain() *chain.MemLinker { return p.chain }

// ProcessBlock applies one block to the ledger under exclusive
// acquisition: quorum derivation for the new height, reward winner
// selection, stake expiry with the fork-dependent offset, then
// deregistration payloads. Payloads are all verified before any is
// applied, so an invalid one leaves no deregistration half-done.
func (p *Processor) ProcessBlock(blk *block.Block, payloads []*tx.Deregistration) (*Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := blk.ID()
	height := p.chain.Extend(id)

	// the quorum for a height is derived from the set active on entry,
	// so a speculatively derived state stays valid
	if active := p.reg.Active(); len(active) > quorax.QuorumSize {
		state, err := p.quorums.Get(id, active)
		if err != nil {
			return nil, err
		}
		p.states[height] = state
	}
	if height >= quorumLookback {
		delete(p.states, height-quorumLookback)
	}

	out := &Outcome{Height: height}
	out.Winner, out.HasWin = p.reg.PickWinner(height)

	out.Expired = p.reg.Expire(p.expiryHeight(height))
	p.coll.DiscardExpired(out.Expired)

	for _, d := range payloads {
		q, ok := p.states[d.TargetHeight]
		if !ok {
			return nil, errors.WithMessagef(errUnknownQuorum, "height %d", d.TargetHeight)
		}
		if err := p.coll.VerifyPayload(q, d); err != nil {
			return nil, err
		}
	}
	for _, d := range payloads {
		if err := p.coll.ApplyPayload(p.states[d.TargetHeight], d); err != nil {
			return nil, err
		}
	}

	metricBlocksProcessed().Add(1)
	logger.Debug("block processed",
		"height", height,
		"id", id,
		"expired", len(out.Expired),
		"deregs", len(payloads))
	return out, nil
}

// Speculate pre-derives the quorum for a candidate next block hash using
// the current active set. If the block materializes with that hash, the
// processing step reuses the cached state; otherwise it is simply evicted.
func (p *Processor) Speculate(candidateHash quorax.Bytes32) (*quorum.State, error) {
	p.mu.Lock()
	active := p.reg.Active()
	p.mu.Unlock()
	return p.quorums.Get(candidateHash, active)
}

// QuorumAt returns the quorum derived when the block at height was
// processed, if any.
func (p *Processor) QuorumAt(height uint64) (*quorum.State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	q, ok := p.states[height]
	return q, ok
}

// expiryHeight applies the off-by-one expiry fork: blocks before the
// fork evaluate expiry against their own height, blocks from the fork
// on against height+1.
func (p *Processor) expiryHeight(height uint64) uint64 {
	if height >= uint64(p.fork.ExpiryAligned) {
		return height + 1
	}
	return height
}
