// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dereg

import "github.com/pkg/errors"

var (
	errDuplicateVoter    = errors.New("voter already voted for this target")
	errStaleTarget       = errors.New("vote targets an already-removed node")
	errInvalidSignature  = errors.New("vote signature verification failed")
	errVoterIndex        = errors.New("voter index outside the quorum")
	errTargetIndex       = errors.New("target index does not name a testable node")
	errInsufficientVotes = errors.New("payload carries fewer votes than the deregistration threshold")
)

// IsErrDuplicateVoter returns whether the error means a repeated vote.
func IsErrDuplicateVoter(err error) bool {
	return errors.Cause(err) == errDuplicateVoter
}

// IsErrStaleTarget returns whether the error means the vote arrived too late.
func IsErrStaleTarget(err error) bool {
	return errors.Cause(err) == errStaleTarget
}

// IsErrInvalidSignature returns whether the error means a bad vote signature.
func IsErrInvalidSignature(err error) bool {
	return errors.Cause(err) == errInvalidSignature
}

// IsErrVoterIndex returns whether the error means an out-of-range voter.
func IsErrVoterIndex(err error) bool {
	return errors.Cause(err) == errVoterIndex
}

// IsErrTargetIndex returns whether the error means an out-of-range target.
func IsErrTargetIndex(err error) bool {
	return errors.Cause(err) == errTargetIndex
}

// IsErrInsufficientVotes returns whether the error means a below-threshold payload.
func IsErrInsufficientVotes(err error) bool {
	return errors.Cause(err) == errInsufficientVotes
}
