// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/wire"
)

// Sub-record tags inside the extra blob.
const (
	ExtraTagPadding    byte = 0x00
	ExtraTagPubKey     byte = 0x01
	ExtraTagNonce      byte = 0x02
	ExtraTagRegister   byte = 0x70
	ExtraTagDeregister byte = 0x71
	ExtraTagWinner     byte = 0x72
)

// Contribution one contributor's share of a node's stake.
type Contribution struct {
	Address quorax.Address
	Portion uint64 // fixed-point share of quorax.StakingPortions
}

// Registration the service-node registration payload carried in extra.
type Registration struct {
	NodeKey      quorax.PublicKey
	Contributors []Contribution
	Expiration   uint64 // unix timestamp the operator committed to
	Signature    quorax.Signature
}

// SigningHash the canonical hash the operator signs: everything but the
// signature itself.
func (r *Registration) SigningHash() quorax.Bytes32 {
	w := wire.NewWriter()
	r.encodeUnsigned(w)
	return quorax.Blake2b(w.Bytes())
}

func (r *Registration) encodeUnsigned(w *wire.Writer) {
	w.WriteRaw(r.NodeKey[:])
	w.WriteUvarint(uint64(len(r.Contributors)))
	for _, c := range r.Contributors {
		w.WriteRaw(c.Address[:])
		w.WriteUvarint(c.Portion)
	}
	w.WriteUvarint(r.Expiration)
}

func (r *Registration) encode() []byte {
	w := wire.NewWriter()
	r.encodeUnsigned(w)
	w.WriteRaw(r.Signature[:])
	return w.Bytes()
}

func decodeRegistration(data []byte) (*Registration, error) {
	r := wire.NewReader(data)
	var reg Registration

	raw, err := r.ReadRaw(quorax.PublicKeyLength, "register.key")
	if err != nil {
		return nil, err
	}
	reg.NodeKey = quorax.BytesToPublicKey(raw)

	count, err := r.ReadCount("register.contributors")
	if err != nil {
		return nil, err
	}
	reg.Contributors = make([]Contribution, count)
	for i := range reg.Contributors {
		addr, err := r.ReadRaw(quorax.AddressLength, "register.address")
		if err != nil {
			return nil, err
		}
		reg.Contributors[i].Address = quorax.BytesToAddress(addr)
		if reg.Contributors[i].Portion, err = r.ReadUvarint("register.portion"); err != nil {
			return nil, err
		}
	}
	if reg.Expiration, err = r.ReadUvarint("register.expiration"); err != nil {
		return nil, err
	}
	sig, err := r.ReadRaw(quorax.SignatureLength, "register.signature")
	if err != nil {
		return nil, err
	}
	reg.Signature = quorax.BytesToSignature(sig)

	if err := r.Finish(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// DeregVote one committee member's signed vote inside a deregistration payload.
type DeregVote struct {
	VoterIndex uint32
	Signature  quorax.Signature
}

// Deregistration the payload of a deregistration transaction: the voted
// target plus the quorum votes backing the removal.
type Deregistration struct {
	TargetHeight uint64
	TargetIndex  uint32 // position in the to-test list of the height's quorum
	Votes        []DeregVote
}

func (d *Deregistration) encode() []byte {
	w := wire.NewWriter()
	w.WriteUvarint(d.TargetHeight)
	w.WriteUvarint(uint64(d.TargetIndex))
	w.WriteUvarint(uint64(len(d.Votes)))
	for _, v := range d.Votes {
		w.WriteUvarint(uint64(v.VoterIndex))
		w.WriteRaw(v.Signature[:])
	}
	return w.Bytes()
}

func decodeDeregistration(data []byte) (*Deregistration, error) {
	r := wire.NewReader(data)
	var d Deregistration

	var err error
	if d.TargetHeight, err = r.ReadUvarint("dereg.height"); err != nil {
		return nil, err
	}
	idx, err := r.ReadUvarint("dereg.index")
	if err != nil {
		return nil, err
	}
	d.TargetIndex = uint32(idx)

	count, err := r.ReadCount("dereg.votes")
	if err != nil {
		return nil, err
	}
	d.Votes = make([]DeregVote, count)
	for i := range d.Votes {
		vi, err := r.ReadUvarint("dereg.voter_index")
		if err != nil {
			return nil, err
		}
		d.Votes[i].VoterIndex = uint32(vi)
		sig, err := r.ReadRaw(quorax.SignatureLength, "dereg.signature")
		if err != nil {
			return nil, err
		}
		d.Votes[i].Signature = quorax.BytesToSignature(sig)
	}

	if err := r.Finish(); err != nil {
		return nil, err
	}
	return &d, nil
}

// AppendExtraPubKey appends a tx public key sub-record to extra.
func AppendExtraPubKey(extra []byte, pk quorax.PublicKey) []byte {
	extra = append(extra, ExtraTagPubKey)
	return append(extra, pk[:]...)
}

// AppendExtraNonce appends a nonce sub-record to extra.
func AppendExtraNonce(extra []byte, nonce []byte) []byte {
	w := wire.NewWriter()
	w.WriteTag(ExtraTagNonce)
	w.WriteBytes(nonce)
	return append(extra, w.Bytes()...)
}

// AppendExtraRegistration appends a service-node registration payload to extra.
func AppendExtraRegistration(extra []byte, reg *Registration) []byte {
	w := wire.NewWriter()
	w.WriteTag(ExtraTagRegister)
	w.WriteBytes(reg.encode())
	return append(extra, w.Bytes()...)
}

// AppendExtraDeregistration appends a deregistration payload to extra.
func AppendExtraDeregistration(extra []byte, d *Deregistration) []byte {
	w := wire.NewWriter()
	w.WriteTag(ExtraTagDeregister)
	w.WriteBytes(d.encode())
	return append(extra, w.Bytes()...)
}

// AppendExtraWinner appends the reward-winner tag to a coinbase extra.
func AppendExtraWinner(extra []byte, winner quorax.PublicKey) []byte {
	extra = append(extra, ExtraTagWinner)
	return append(extra, winner[:]...)
}

// ExtraPubKey extracts the first tx public key sub-record.
func ExtraPubKey(extra []byte) (quorax.PublicKey, bool) {
	payload, ok := scanExtra(extra, ExtraTagPubKey)
	if !ok {
		return quorax.PublicKey{}, false
	}
	return quorax.BytesToPublicKey(payload), true
}

// ExtraNonce extracts the first nonce sub-record.
func ExtraNonce(extra []byte) ([]byte, bool) {
	return scanExtra(extra, ExtraTagNonce)
}

// ExtraWinner extracts the reward-winner tag.
func ExtraWinner(extra []byte) (quorax.PublicKey, bool) {
	payload, ok := scanExtra(extra, ExtraTagWinner)
	if !ok {
		return quorax.PublicKey{}, false
	}
	return quorax.BytesToPublicKey(payload), true
}

// ExtraRegistration extracts and decodes the registration payload.
func ExtraRegistration(extra []byte) (*Registration, error) {
	payload, ok := scanExtra(extra, ExtraTagRegister)
	if !ok {
		return nil, nil
	}
	return decodeRegistration(payload)
}

// ExtraDeregistration extracts and decodes the deregistration payload.
func ExtraDeregistration(extra []byte) (*Deregistration, error) {
	payload, ok := scanExtra(extra, ExtraTagDeregister)
	if !ok {
		return nil, nil
	}
	return decodeDeregistration(payload)
}

// scanExtra walks the extra blob looking for a sub-record with the wanted
// tag. The blob is opaque to consensus: an unknown tag just ends the scan.
func scanExtra(extra []byte, want byte) ([]byte, bool) {
	r := wire.NewReader(extra)
	for r.Len() > 0 {
		tag, err := r.ReadTag("extra_tag")
		if err != nil {
			return nil, false
		}
		var payload []byte
		switch tag {
		case ExtraTagPadding:
			// single padding byte, keep walking
			continue
		case ExtraTagPubKey, ExtraTagWinner:
			if payload, err = r.ReadRaw(quorax.PublicKeyLength, "extra_key"); err != nil {
				return nil, false
			}
		case ExtraTagNonce, ExtraTagRegister, ExtraTagDeregister:
			if payload, err = r.ReadBytes("extra_payload"); err != nil {
				return nil, false
			}
		default:
			return nil, false
		}
		if tag == want {
			return payload, true
		}
	}
	return nil, false
}
