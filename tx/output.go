// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/quorax/quorax/quorax"

// One-byte output-target discriminants on the wire.
const (
	tagTargetToScript     byte = 0x00
	tagTargetToScriptHash byte = 0x01
	tagTargetToKey        byte = 0x02
)

// Output amount plus a target variant.
type Output struct {
	Amount uint64
	Target OutputTarget
}

// OutputTarget a closed output-target variant set.
type OutputTarget interface {
	tag() byte
}

// KeyTarget pays a one-time output key.
type KeyTarget struct {
	Key quorax.PublicKey
}

func (KeyTarget) tag() byte { return tagTargetToKey }

// ScriptTarget pays a multikey script.
type ScriptTarget struct {
	Keys   []quorax.PublicKey
	Script []byte
}

func (ScriptTarget) tag() byte { return tagTargetToScript }

// ScriptHashTarget pays the hash of a script revealed on spend.
type ScriptHashTarget struct {
	Hash quorax.Bytes32
}

func (ScriptHashTarget) tag() byte { return tagTargetToScriptHash }
