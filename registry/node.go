// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/quorax/quorax/quorax"

// RewardMarker records when a node last won the block reward: the height and
// the intra-block priority. Rewarded is tracked explicitly so that winning
// at height zero is distinguishable from never having won. Once set, the
// (height, priority) pair is strictly increasing across a node's lifetime.
type RewardMarker struct {
	Height   uint64
	Priority uint32
	Rewarded bool
}

// Less orders markers: never-rewarded first, then by height, then priority.
func (m RewardMarker) Less(other RewardMarker) bool {
	if m.Rewarded != other.Rewarded {
		return !m.Rewarded
	}
	if m.Height != other.Height {
		return m.Height < other.Height
	}
	return m.Priority < other.Priority
}

// Contributor one share of a node's stake.
type Contributor struct {
	Address quorax.Address
	Portion uint64 // fixed-point share of quorax.StakingPortions

	// Locked amount contributed so far, in atomic units.
	Locked uint64

	// LockedKeyImage ties the contribution to a specific staked output,
	// if the contributor chose to lock one.
	LockedKeyImage *quorax.KeyImage
}

// Node a registered service node.
type Node struct {
	PublicKey    quorax.PublicKey
	Contributors []Contributor
	ExpiryHeight uint64
	Marker       RewardMarker

	// regIndex registration order, breaks reward-marker ties.
	regIndex uint64
}

// Staked returns the total locked amount across contributors.
func (n *Node) Staked() uint64 {
	var total uint64
	for _, c := range n.Contributors {
		total += c.Locked
	}
	return total
}

// FullyStaked reports whether the node reached the staking requirement and
// stopped accepting contributions.
func (n *Node) FullyStaked() bool {
	return n.Staked() >= quorax.StakingRequirement
}

func (n *Node) copy() *Node {
	cpy := *n
	cpy.Contributors = make([]Contributor, len(n.Contributors))
	for i, c := range n.Contributors {
		cpy.Contributors[i] = c
		if c.LockedKeyImage != nil {
			img := *c.LockedKeyImage
			cpy.Contributors[i].LockedKeyImage = &img
		}
	}
	return &cpy
}
