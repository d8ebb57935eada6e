// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorum

import (
	"github.com/quorax/quorax/cache"
	"github.com/quorax/quorax/quorax"
)

// Cache memoizes derived quorums by block hash. Derivation is pure, so
// cached entries never invalidate.
type Cache struct {
	lru *cache.LRU[quorax.Bytes32, *State]
}

// NewCache creates a cache holding up to size quorums.
func NewCache(size int) *Cache {
	lru, err := cache.NewLRU[quorax.Bytes32, *State](size)
	if err != nil {
		panic(err)
	}
	return &Cache{lru}
}

// Get derives the quorum for the block, reusing a cached state when the
// same block was seen before.
func (c *Cache) Get(blockHash quorax.Bytes32, active []quorax.PublicKey) (*State, error) {
	return c.lru.GetOrLoad(blockHash, func(quorax.Bytes32) (*State, error) {
		return Generate(blockHash, active)
	})
}
