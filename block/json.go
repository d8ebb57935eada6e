// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"encoding/json"

	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/tx"
)

type jsonBlock struct {
	ID           quorax.Bytes32   `json:"id"`
	MajorVersion uint64           `json:"majorVersion"`
	MinorVersion uint64           `json:"minorVersion"`
	Timestamp    uint64           `json:"timestamp"`
	PrevID       quorax.Bytes32   `json:"prevId"`
	Nonce        uint32           `json:"nonce"`
	Coinbase     *tx.Transaction  `json:"coinbase"`
	TxHashes     []quorax.Bytes32 `json:"txHashes"`
}

// MarshalJSON implements json.Marshaler. The id field is derived and
// ignored on load.
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonBlock{
		ID:           b.ID(),
		MajorVersion: b.header.MajorVersion,
		MinorVersion: b.header.MinorVersion,
		Timestamp:    b.header.Timestamp,
		PrevID:       b.header.PrevID,
		Nonce:        b.header.Nonce,
		Coinbase:     b.coinbase,
		TxHashes:     b.txHashes,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Block) UnmarshalJSON(data []byte) error {
	var jb jsonBlock
	if err := json.Unmarshal(data, &jb); err != nil {
		return err
	}
	*b = *Compose(Header{
		MajorVersion: jb.MajorVersion,
		MinorVersion: jb.MinorVersion,
		Timestamp:    jb.Timestamp,
		PrevID:       jb.PrevID,
		Nonce:        jb.Nonce,
	}, jb.Coinbase, jb.TxHashes)
	return nil
}
