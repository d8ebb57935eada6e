// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry tracks the active service-node set: stake contributions,
// expiry heights and reward-eligibility ordering. Internal storage is
// canonical (sorted by public key), so two ledgers built from the same event
// history are identical; quorum derivation depends on that order.
package registry

import (
	"sort"

	"github.com/quorax/quorax/log"
	"github.com/quorax/quorax/metrics"
	"github.com/quorax/quorax/quorax"
)

var (
	logger            = log.WithContext("pkg", "registry")
	metricActiveNodes = metrics.LazyLoadGauge("registry_active_nodes")
)

// Registry the stake-contribution ledger. Not safe for concurrent mutation;
// per-block processing must serialize access (see the node package).
type Registry struct {
	nodes []*Node // sorted by public key
	index map[quorax.PublicKey]*Node
	seq   uint64
}

// New creates an empty ledger.
func New() *Registry {
	return &Registry{index: make(map[quorax.PublicKey]*Node)}
}

// Register adds a node to the active set.
// Contributor portions must all be non-zero and sum to exactly
// quorax.StakingPortions.
func (r *Registry) Register(pubkey quorax.PublicKey, contributors []Contributor, expiryHeight uint64) error {
	if _, ok := r.index[pubkey]; ok {
		return errDuplicateKey
	}
	if len(contributors) == 0 {
		return errInvalidContribution
	}
	var sum uint64
	for _, c := range contributors {
		if c.Portion == 0 {
			return errInvalidContribution
		}
		next := sum + c.Portion
		if next < sum { // overflow means the sum can't be exact either
			return errInvalidContribution
		}
		sum = next
	}
	if sum != quorax.StakingPortions {
		return errInvalidContribution
	}

	node := &Node{
		PublicKey:    pubkey,
		Contributors: make([]Contributor, len(contributors)),
		ExpiryHeight: expiryHeight,
		regIndex:     r.seq,
	}
	copy(node.Contributors, contributors)
	r.seq++

	r.insert(node)
	logger.Info("node registered", "key", pubkey, "expiry", expiryHeight)
	metricActiveNodes().Set(int64(len(r.nodes)))
	return nil
}

// TopUp adds a locked contribution to a registered node.
func (r *Registry) TopUp(pubkey quorax.PublicKey, contributor quorax.Address, amount uint64) error {
	node, ok := r.index[pubkey]
	if !ok {
		return errUnknownNode
	}
	if node.FullyStaked() {
		return errNotAcceptingContributions
	}
	for i := range node.Contributors {
		if node.Contributors[i].Address == contributor {
			node.Contributors[i].Locked += amount
			return nil
		}
	}
	return errUnknownNode
}

// Expire removes every node whose expiry height is strictly below height.
// Unconditional, no reward, idempotent. Returns the removed keys in
// canonical order. The one-block fork rule lives with the caller.
func (r *Registry) Expire(height uint64) []quorax.PublicKey {
	var removed []quorax.PublicKey
	kept := r.nodes[:0]
	for _, node := range r.nodes {
		if node.ExpiryHeight < height {
			removed = append(removed, node.PublicKey)
			delete(r.index, node.PublicKey)
		} else {
			kept = append(kept, node)
		}
	}
	r.nodes = kept

	if len(removed) > 0 {
		logger.Info("nodes expired", "height", height, "count", len(removed))
		metricActiveNodes().Set(int64(len(r.nodes)))
	}
	return removed
}

// Remove unconditionally removes a node: the penalized path taken by a
// successful deregistration. No grace, no refund ordering concerns here.
func (r *Registry) Remove(pubkey quorax.PublicKey) bool {
	node, ok := r.index[pubkey]
	if !ok {
		return false
	}
	delete(r.index, pubkey)
	for i, n := range r.nodes {
		if n == node {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			break
		}
	}
	logger.Info("node removed", "key", pubkey)
	metricActiveNodes().Set(int64(len(r.nodes)))
	return true
}

// Get returns a snapshot of a registered node.
func (r *Registry) Get(pubkey quorax.PublicKey) (*Node, bool) {
	node, ok := r.index[pubkey]
	if !ok {
		return nil, false
	}
	return node.copy(), true
}

// Has reports whether the node is active.
func (r *Registry) Has(pubkey quorax.PublicKey) bool {
	_, ok := r.index[pubkey]
	return ok
}

// Active returns the active node keys in canonical (sorted) order.
func (r *Registry) Active() []quorax.PublicKey {
	keys := make([]quorax.PublicKey, len(r.nodes))
	for i, node := range r.nodes {
		keys[i] = node.PublicKey
	}
	return keys
}

// Len returns the active node count.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// insert keeps r.nodes sorted by public key.
func (r *Registry) insert(node *Node) {
	i := sort.Search(len(r.nodes), func(i int) bool {
		return r.nodes[i].PublicKey.Compare(node.PublicKey) >= 0
	})
	r.nodes = append(r.nodes, nil)
	copy(r.nodes[i+1:], r.nodes[i:])
	r.nodes[i] = node
	r.index[node.PublicKey] = node
}
