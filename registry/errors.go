// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/pkg/errors"

var (
	errDuplicateKey              = errors.New("node key already registered")
	errInvalidContribution       = errors.New("invalid contribution portions")
	errUnknownNode               = errors.New("unknown node")
	errNotAcceptingContributions = errors.New("node fully staked")
)

func IsErrDuplicateKey(err error) bool {
	return errors.Cause(err) == errDuplicateKey
}

func IsErrInvalidContribution(err error) bool {
	return errors.Cause(err) == errInvalidContribution
}

func IsErrUnknownNode(err error) bool {
	return errors.Cause(err) == errUnknownNode
}

func IsErrNotAcceptingContributions(err error) bool {
	return errors.Cause(err) == errNotAcceptingContributions
}
