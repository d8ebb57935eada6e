// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/tx"
)

func TestHashStable(t *testing.T) {
	record := sampleTx(t, tx.V4)
	h1 := record.Hash()
	h2 := record.Hash()
	assert.Equal(t, h1, h2)

	data, err := record.Encode()
	require.NoError(t, err)
	assert.Equal(t, quorax.Blake2b(data), h1)
	assert.Equal(t, uint64(len(data)), record.BlobSize())
}

func TestWithSignaturesIsCopy(t *testing.T) {
	unsigned := tx.NewBuilder(tx.V1).
		Input(sampleKeyInput(2)).
		Output(sampleOutput(1), 0).
		Signatures([][]quorax.Signature{sigGroup(2)}).
		MustBuild()
	h := unsigned.Hash()

	resigned := unsigned.WithSignatures([][]quorax.Signature{sigGroup(2)})
	assert.NotSame(t, unsigned, resigned)
	// original keeps its cached hash; it was never mutated
	assert.Equal(t, h, unsigned.Hash())
}

func TestPrune(t *testing.T) {
	full := sampleTx(t, tx.V2)
	pruned := full.Prune()

	assert.False(t, full.Pruned())
	assert.True(t, pruned.Pruned())
	assert.Nil(t, pruned.RingSignature())
	assert.NotEqual(t, full.Hash(), pruned.Hash())
}

func TestIsCoinbase(t *testing.T) {
	coinbase, err := tx.NewCoinbase(tx.V4, 42, 1_000_000,
		quorax.BytesToPublicKey([]byte("miner")),
		quorax.BytesToPublicKey([]byte("winner")), 42+30)
	require.NoError(t, err)
	assert.True(t, coinbase.IsCoinbase())

	winner, ok := tx.ExtraWinner(coinbase.Extra())
	require.True(t, ok)
	assert.Equal(t, quorax.BytesToPublicKey([]byte("winner")), winner)

	assert.False(t, sampleTx(t, tx.V2).IsCoinbase())
}

func TestJSONRoundTrip(t *testing.T) {
	for _, version := range []tx.Version{tx.V1, tx.V2, tx.V3, tx.V4} {
		original := sampleTx(t, version)
		data, err := json.Marshal(original)
		require.NoError(t, err, version)

		var decoded tx.Transaction
		require.NoError(t, json.Unmarshal(data, &decoded), version)

		// both archives express the same logical record
		binOriginal, err := original.Encode()
		require.NoError(t, err)
		binDecoded, err := decoded.Encode()
		require.NoError(t, err)
		assert.Equal(t, binOriginal, binDecoded, version)
	}
}

func TestJSONUnknownKinds(t *testing.T) {
	var decoded tx.Transaction
	err := json.Unmarshal([]byte(`{"version":1,"inputs":[{"kind":"mystery"}],"outputs":[]}`), &decoded)
	assert.Error(t, err)
}
