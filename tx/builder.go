// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/quorax/quorax/quorax"

// Builder to make it easy to build a transaction.
type Builder struct {
	body body
}

// NewBuilder creates a builder for the given format version.
func NewBuilder(version Version) *Builder {
	return &Builder{body: body{Version: version}}
}

// UnlockTime set the global unlock time (versions 1..2).
func (b *Builder) UnlockTime(v uint64) *Builder {
	b.body.UnlockTime = v
	return b
}

// Type set the transaction type (versions >= 3).
func (b *Builder) Type(tp Type) *Builder {
	b.body.Type = tp
	return b
}

// Input add an input.
func (b *Builder) Input(in Input) *Builder {
	b.body.Inputs = append(b.body.Inputs, in)
	return b
}

// Output add an output; unlock is its per-output unlock time, ignored below
// version 3.
func (b *Builder) Output(out Output, unlock uint64) *Builder {
	b.body.Outputs = append(b.body.Outputs, out)
	if b.body.Version >= V3 {
		b.body.OutputUnlocks = append(b.body.OutputUnlocks, unlock)
	}
	return b
}

// Extra set the opaque extra blob.
func (b *Builder) Extra(extra []byte) *Builder {
	b.body.Extra = append([]byte(nil), extra...)
	return b
}

// Signatures set classic per-input signature groups (version 1).
func (b *Builder) Signatures(groups [][]quorax.Signature) *Builder {
	b.body.Signatures = groups
	return b
}

// RingSignature set the embedded ring signature (versions >= 2).
func (b *Builder) RingSignature(rs *RingSignature) *Builder {
	b.body.RingSig = rs.Copy()
	return b
}

// Build builds the record, rejecting field combinations the version rules
// forbid.
func (b *Builder) Build() (*Transaction, error) {
	t := Transaction{body: b.body}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// MustBuild builds the record, panicking on invalid field combinations.
// For tests and generators working with known-good shapes.
func (b *Builder) MustBuild() *Transaction {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// NewCoinbase builds the canonical coinbase for a height: one generation
// input, one key output paying the reward, winner tag in extra.
func NewCoinbase(version Version, height uint64, reward uint64, outKey quorax.PublicKey, winner quorax.PublicKey, unlock uint64) (*Transaction, error) {
	var extra []byte
	if !winner.IsZero() {
		extra = AppendExtraWinner(extra, winner)
	}
	builder := NewBuilder(version).
		Input(GenerationInput{Height: height}).
		Output(Output{Amount: reward, Target: KeyTarget{Key: outKey}}, unlock).
		Extra(extra)
	if version <= V2 {
		builder.UnlockTime(unlock)
	}
	if version >= V2 {
		builder.RingSignature(&RingSignature{Scheme: RingSchemeNull})
	}
	return builder.Build()
}
