// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/quorax/quorax/quorax"

// PickWinner selects the node to receive the reward at height: the one with
// the smallest reward marker, ties broken by registration order (unreachable
// in practice once markers are set, since they are unique). A never-rewarded
// node always beats a rewarded one.
//
// On selection the winner's marker advances to (height, 0). That marker is
// the only state this operation mutates. Callers must pick before applying
// expiry for the same height.
//
// Returns false on an empty ledger; the caller then falls back to the null
// recipient.
func (r *Registry) PickWinner(height uint64) (quorax.PublicKey, bool) {
	if len(r.nodes) == 0 {
		return quorax.PublicKey{}, false
	}

	var winner *Node
	for _, node := range r.nodes {
		if winner == nil ||
			node.Marker.Less(winner.Marker) ||
			(node.Marker == winner.Marker && node.regIndex < winner.regIndex) {
			winner = node
		}
	}

	next := RewardMarker{Height: height, Rewarded: true}
	if winner.Marker.Rewarded && !winner.Marker.Less(next) {
		// marker would go backwards: blocks are being applied out of
		// order, which is a caller bug. Reject rather than corrupt the
		// eligibility ordering.
		logger.Error("reward marker regression", "key", winner.PublicKey,
			"marker", winner.Marker.Height, "height", height)
		return quorax.PublicKey{}, false
	}
	winner.Marker = next

	logger.Debug("reward winner", "key", winner.PublicKey, "height", height)
	return winner.PublicKey, true
}
