// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/wire"
)

func TestUvarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1, ^uint64(0)} {
		w := wire.NewWriter()
		w.WriteUvarint(v)

		r := wire.NewReader(w.Bytes())
		got, err := r.ReadUvarint("v")
		assert.NoError(t, err)
		assert.Equal(t, v, got)
		assert.NoError(t, r.Finish())
	}
}

func TestUvarintNonCanonical(t *testing.T) {
	// 0x80 0x00 is 0 spelled with two bytes
	r := wire.NewReader([]byte{0x80, 0x00})
	_, err := r.ReadUvarint("v")
	assert.ErrorIs(t, err, wire.ErrNonCanonical)
	assert.True(t, wire.IsDecodeError(err))
}

func TestUvarintTruncated(t *testing.T) {
	r := wire.NewReader([]byte{0x80})
	_, err := r.ReadUvarint("v")
	assert.ErrorIs(t, err, wire.ErrUnexpectedEOF)
}

func TestUvarintOverflow(t *testing.T) {
	r := wire.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	_, err := r.ReadUvarint("v")
	assert.ErrorIs(t, err, wire.ErrOverflow)
}

func TestBytesRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	w.WriteBytes([]byte("extra payload"))
	w.WriteBytes(nil)

	r := wire.NewReader(w.Bytes())
	b, err := r.ReadBytes("extra")
	assert.NoError(t, err)
	assert.Equal(t, []byte("extra payload"), b)

	b, err = r.ReadBytes("empty")
	assert.NoError(t, err)
	assert.Len(t, b, 0)
	assert.NoError(t, r.Finish())
}

func TestCountOverRemaining(t *testing.T) {
	w := wire.NewWriter()
	w.WriteUvarint(1000)
	w.WriteTag(0)

	r := wire.NewReader(w.Bytes())
	_, err := r.ReadCount("inputs")
	assert.ErrorIs(t, err, wire.ErrUnexpectedEOF)
}

func TestBoolStrict(t *testing.T) {
	r := wire.NewReader([]byte{2})
	_, err := r.ReadBool("flag")
	assert.ErrorIs(t, err, wire.ErrUnknownVariant)
}

func TestBytes32AndUint32(t *testing.T) {
	h := quorax.Blake2b([]byte("prev"))
	w := wire.NewWriter()
	w.WriteBytes32(h)
	w.WriteUint32LE(0xdeadbeef)
	w.WriteBool(true)

	r := wire.NewReader(w.Bytes())
	got, err := r.ReadBytes32("prev")
	assert.NoError(t, err)
	assert.Equal(t, h, got)

	n, err := r.ReadUint32LE("nonce")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), n)

	flag, err := r.ReadBool("flag")
	assert.NoError(t, err)
	assert.True(t, flag)
	assert.NoError(t, r.Finish())
}

func TestTrailingBytes(t *testing.T) {
	r := wire.NewReader([]byte{1, 2})
	_, err := r.ReadTag("tag")
	assert.NoError(t, err)
	assert.ErrorIs(t, r.Finish(), wire.ErrTrailingBytes)
}
