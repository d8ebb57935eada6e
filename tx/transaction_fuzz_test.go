// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"
	"testing"

	"github.com/quorax/quorax/quorax"
)

func FuzzTransactionRoundTrip(f *testing.F) {
	f.Add([]byte("seed"), uint8(1), uint64(100), uint8(2))
	f.Add([]byte{}, uint8(4), uint64(0), uint8(0))

	f.Fuzz(func(t *testing.T, blob []byte, v uint8, u uint64, ring uint8) {
		version := Version(v%4 + 1)
		ringSize := int(ring%8) + 1

		offsets := make([]uint64, ringSize)
		for i := range offsets {
			offsets[i] = u%1000 + uint64(i)
		}
		builder := NewBuilder(version).
			Input(KeyInput{
				Amount:     u,
				KeyOffsets: offsets,
				KeyImage:   quorax.KeyImage(quorax.Blake2b(blob, []byte("img"))),
			}).
			Output(Output{Amount: u / 2, Target: KeyTarget{Key: quorax.BytesToPublicKey(blob)}}, u).
			Extra(AppendExtraNonce(nil, blob))

		if version <= V2 {
			builder.UnlockTime(u)
		}
		if version == V1 {
			group := make([]quorax.Signature, ringSize)
			for i := range group {
				group[i] = quorax.BytesToSignature(quorax.Blake2b(blob, []byte{byte(i)}).Bytes())
			}
			builder.Signatures([][]quorax.Signature{group})
		} else {
			builder.RingSignature(&RingSignature{Scheme: RingSchemeSimple, Payload: blob})
		}

		original, err := builder.Build()
		if err != nil {
			t.Fatalf("building valid record: %v", err)
		}
		enc, err := original.Encode()
		if err != nil {
			t.Fatalf("encoding: %v", err)
		}
		decoded, err := Decode(enc)
		if err != nil {
			t.Fatalf("decoding own encoding: %v", err)
		}
		re, err := decoded.Encode()
		if err != nil {
			t.Fatalf("re-encoding: %v", err)
		}
		if !bytes.Equal(enc, re) {
			t.Fatalf("round trip not byte-exact")
		}
	})
}

func FuzzDecodeNoPanic(f *testing.F) {
	good, _ := NewBuilder(V2).MustBuild().Encode()
	f.Add(good)
	f.Add([]byte{1, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		// malformed input must yield an error, never a panic
		if record, err := Decode(data); err == nil {
			if _, err := record.Encode(); err != nil {
				t.Fatalf("decoded record fails to encode: %v", err)
			}
		}
		if record, err := DecodePruned(data); err == nil && !record.Pruned() {
			t.Fatal("pruned decode must force the pruned flag")
		}
	})
}
