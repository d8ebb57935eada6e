// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package quorum derives deterministic testing quorums from block hashes.
//
// Every node that replays the same chain derives bit-identical quorums,
// so vote validation needs no coordination beyond the chain itself.
package quorum

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/quorax/quorax/quorax"
)

var errInsufficientNodes = errors.New("not enough active nodes to form a quorum")

// IsErrInsufficientNodes reports whether the active set was too small.
func IsErrInsufficientNodes(err error) bool {
	return errors.Cause(err) == errInsufficientNodes
}

// Member is a node assigned to a quorum, together with its shuffle
// position. The position identifies the voter in deregistration votes.
type Member struct {
	PublicKey quorax.PublicKey
	Index     uint32
}

// State is the quorum derived for one block: the voters plus the nodes
// they are to test.
type State struct {
	Voters []Member
	ToTest []Member
}

// Generate shuffles the active set with the block hash as seed and
// splits it into voters and test targets. The caller supplies the
// active set in canonical (sorted) order; any other order changes the
// outcome.
func Generate(blockHash quorax.Bytes32, active []quorax.PublicKey) (*State, error) {
	if len(active) <= quorax.QuorumSize {
		return nil, errors.WithMessagef(errInsufficientNodes, "have %d, need more than %d", len(active), quorax.QuorumSize)
	}

	shuffled := make([]quorax.PublicKey, len(active))
	copy(shuffled, active)

	r := rand.New(rand.NewSource(int64(quorax.SeedFromHash(blockHash))))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	state := &State{
		Voters: make([]Member, 0, quorax.QuorumSize),
		ToTest: make([]Member, 0, len(shuffled)-quorax.QuorumSize),
	}
	for i, pk := range shuffled {
		m := Member{PublicKey: pk, Index: uint32(i)}
		if i < quorax.QuorumSize {
			state.Voters = append(state.Voters, m)
		} else {
			state.ToTest = append(state.ToTest, m)
		}
	}
	return state, nil
}

// Voter returns the voter at the given shuffle position, if any.
func (s *State) Voter(index uint32) (Member, bool) {
	if int(index) >= len(s.Voters) {
		return Member{}, false
	}
	return s.Voters[index], true
}

// Target returns the test target at the given shuffle position, if any.
// Target positions start at QuorumSize.
func (s *State) Target(index uint32) (Member, bool) {
	i := int(index) - quorax.QuorumSize
	if i < 0 || i >= len(s.ToTest) {
		return Member{}, false
	}
	return s.ToTest[i], true
}
