// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/quorax/quorax/quorax"

// One-byte input discriminants on the wire.
const (
	tagInputToScript     byte = 0x00
	tagInputToScriptHash byte = 0x01
	tagInputToKey        byte = 0x02
	tagInputGeneration   byte = 0xff
)

// Input a transaction input variant. The set is closed; decode fails on any
// unrecognized discriminant.
type Input interface {
	tag() byte

	// SignatureArity number of classic (version 1) signatures this input
	// demands: the ring size for key inputs, zero for everything else.
	SignatureArity() int
}

// GenerationInput coinbase input minting the block reward at Height.
type GenerationInput struct {
	Height uint64
}

func (GenerationInput) tag() byte           { return tagInputGeneration }
func (GenerationInput) SignatureArity() int { return 0 }

// ScriptInput spends a script output.
type ScriptInput struct {
	Prev    quorax.Bytes32
	Prevout uint64
	SigSet  []byte
}

func (ScriptInput) tag() byte           { return tagInputToScript }
func (ScriptInput) SignatureArity() int { return 0 }

// ScriptHashInput spends a script-hash output, revealing the script.
type ScriptHashInput struct {
	Prev    quorax.Bytes32
	Prevout uint64
	Script  []byte
	SigSet  []byte
}

func (ScriptHashInput) tag() byte           { return tagInputToScriptHash }
func (ScriptHashInput) SignatureArity() int { return 0 }

// KeyInput spends a key output through a ring of decoys. KeyOffsets are
// relative output indices; KeyImage is the global double-spend tag.
type KeyInput struct {
	Amount     uint64
	KeyOffsets []uint64
	KeyImage   quorax.KeyImage
}

func (KeyInput) tag() byte { return tagInputToKey }

func (in KeyInput) SignatureArity() int { return len(in.KeyOffsets) }
