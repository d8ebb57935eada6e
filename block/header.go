// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"

	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/wire"
)

// Header the block header. Immutable.
type Header struct {
	MajorVersion uint64
	MinorVersion uint64
	Timestamp    uint64
	PrevID       quorax.Bytes32
	Nonce        uint32
}

func (h *Header) encode(w *wire.Writer) {
	w.WriteUvarint(h.MajorVersion)
	w.WriteUvarint(h.MinorVersion)
	w.WriteUvarint(h.Timestamp)
	w.WriteBytes32(h.PrevID)
	w.WriteUint32LE(h.Nonce)
}

func decodeHeader(r *wire.Reader) (Header, error) {
	var h Header
	var err error
	if h.MajorVersion, err = r.ReadUvarint("major_version"); err != nil {
		return Header{}, err
	}
	if h.MinorVersion, err = r.ReadUvarint("minor_version"); err != nil {
		return Header{}, err
	}
	if h.Timestamp, err = r.ReadUvarint("timestamp"); err != nil {
		return Header{}, err
	}
	if h.PrevID, err = r.ReadBytes32("prev_id"); err != nil {
		return Header{}, err
	}
	if h.Nonce, err = r.ReadUint32LE("nonce"); err != nil {
		return Header{}, err
	}
	return h, nil
}

func (h *Header) String() string {
	return fmt.Sprintf("Header(v%d.%d) prev=%v ts=%d nonce=%d",
		h.MajorVersion, h.MinorVersion, h.PrevID.AbbrevString(), h.Timestamp, h.Nonce)
}
