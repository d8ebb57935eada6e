// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorax

// Constants of block chain.
const (
	BlockInterval uint64 = 120 // target time interval between two consecutive blocks, in seconds.

	// StakingPortions the fixed-point unit of a full stake. The portions of a
	// node's contributors must sum to exactly this value.
	StakingPortions uint64 = 0xfffffffffffffffc

	// StakingRequirement total locked amount (atomic units) a node needs
	// before it stops accepting contributions.
	StakingRequirement uint64 = 15_000_000_000_000

	// QuorumSize number of voters in a deregistration quorum.
	QuorumSize = 10

	// MinVotesToDeregister votes required to remove a node before its natural expiry.
	MinVotesToDeregister = 7

	// MaxUnlockAsHeight unlock_time values below this are block heights,
	// values at or above it are unix timestamps.
	MaxUnlockAsHeight uint64 = 500_000_000

	// LockedTxAllowedDeltaBlocks leeway when comparing a height-based unlock time.
	LockedTxAllowedDeltaBlocks uint64 = 1

	// LockedTxAllowedDeltaSeconds leeway when comparing a timestamp-based unlock time.
	LockedTxAllowedDeltaSeconds uint64 = BlockInterval * LockedTxAllowedDeltaBlocks
)
