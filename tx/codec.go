// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/pkg/errors"

	"github.com/quorax/quorax/quorax"
	"github.com/quorax/quorax/wire"
)

// Encode serializes the record into the canonical archive. The encoding is
// byte-exact: decoding the result yields an equal record.
func (t *Transaction) Encode() ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	w.WriteUvarint(uint64(t.body.Version))

	if t.body.Version <= V2 {
		w.WriteUvarint(t.body.UnlockTime)
	} else {
		w.WriteUvarint(uint64(len(t.body.OutputUnlocks)))
		for _, u := range t.body.OutputUnlocks {
			w.WriteUvarint(u)
		}
		if t.body.Version == V3 {
			// legacy flag occupying the type slot
			w.WriteBool(t.body.Type == TypeDeregister)
		} else {
			w.WriteUvarint(uint64(t.body.Type))
		}
	}

	w.WriteUvarint(uint64(len(t.body.Inputs)))
	for _, in := range t.body.Inputs {
		encodeInput(w, in)
	}

	w.WriteUvarint(uint64(len(t.body.Outputs)))
	for _, out := range t.body.Outputs {
		encodeOutput(w, out)
	}

	w.WriteBytes(t.body.Extra)

	if !t.body.Pruned {
		if t.body.Version == V1 {
			for _, group := range t.body.Signatures {
				for _, sig := range group {
					w.WriteRaw(sig[:])
				}
			}
		} else if len(t.body.Inputs) > 0 {
			w.WriteTag(t.body.RingSig.Scheme)
			w.WriteBytes(t.body.RingSig.Payload)
		}
	}
	return w.Bytes(), nil
}

// validate checks the version-gated field rules before encoding.
func (t *Transaction) validate() error {
	if !t.body.Version.Valid() {
		return errors.Errorf("tx: invalid version %d", t.body.Version)
	}
	if t.body.Version <= V2 {
		if len(t.body.OutputUnlocks) != 0 {
			return errors.Errorf("tx: per-output unlock times not allowed at %v", t.body.Version)
		}
		if t.body.Type != TypeStandard {
			return errors.Errorf("tx: type %v not expressible at %v", t.body.Type, t.body.Version)
		}
	} else {
		if len(t.body.OutputUnlocks) != len(t.body.Outputs) {
			return errors.Errorf("tx: %d unlock times for %d outputs", len(t.body.OutputUnlocks), len(t.body.Outputs))
		}
		if t.body.Type >= TypeCount {
			return errors.Errorf("tx: unknown type %d", t.body.Type)
		}
		if t.body.Version == V3 && t.body.Type == TypeKeyImageUnlock {
			// the legacy flag slot cannot spell this type
			return errors.Errorf("tx: type %v not expressible at %v", t.body.Type, t.body.Version)
		}
	}

	if t.body.Pruned {
		return nil
	}
	if t.body.Version == V1 {
		if t.body.Signatures == nil {
			// acceptable only when no input expects signatures
			for _, in := range t.body.Inputs {
				if in.SignatureArity() != 0 {
					return errors.New("tx: missing signature groups")
				}
			}
			return nil
		}
		if len(t.body.Signatures) != len(t.body.Inputs) {
			return errors.Errorf("tx: %d signature groups for %d inputs", len(t.body.Signatures), len(t.body.Inputs))
		}
		for i, in := range t.body.Inputs {
			if len(t.body.Signatures[i]) != in.SignatureArity() {
				return errors.Errorf("tx: input %d expects %d signatures, has %d", i, in.SignatureArity(), len(t.body.Signatures[i]))
			}
		}
	} else if len(t.body.Inputs) > 0 && t.body.RingSig == nil {
		return errors.New("tx: missing ring signature")
	}
	return nil
}

func encodeInput(w *wire.Writer, in Input) {
	w.WriteTag(in.tag())
	switch v := in.(type) {
	case GenerationInput:
		w.WriteUvarint(v.Height)
	case ScriptInput:
		w.WriteBytes32(v.Prev)
		w.WriteUvarint(v.Prevout)
		w.WriteBytes(v.SigSet)
	case ScriptHashInput:
		w.WriteBytes32(v.Prev)
		w.WriteUvarint(v.Prevout)
		w.WriteBytes(v.Script)
		w.WriteBytes(v.SigSet)
	case KeyInput:
		w.WriteUvarint(v.Amount)
		w.WriteUvarint(uint64(len(v.KeyOffsets)))
		for _, off := range v.KeyOffsets {
			w.WriteUvarint(off)
		}
		w.WriteRaw(v.KeyImage[:])
	}
}

func encodeOutput(w *wire.Writer, out Output) {
	w.WriteUvarint(out.Amount)
	w.WriteTag(out.Target.tag())
	switch v := out.Target.(type) {
	case KeyTarget:
		w.WriteRaw(v.Key[:])
	case ScriptTarget:
		w.WriteUvarint(uint64(len(v.Keys)))
		for _, k := range v.Keys {
			w.WriteRaw(k[:])
		}
		w.WriteBytes(v.Script)
	case ScriptHashTarget:
		w.WriteBytes32(v.Hash)
	}
}

// Decode parses a full (unpruned) record from the canonical archive.
func Decode(data []byte) (*Transaction, error) {
	return decode(data, false)
}

// DecodePruned parses a proof-stripped record. The result always reports
// Pruned() == true, regardless of the blob's origin.
func DecodePruned(data []byte) (*Transaction, error) {
	return decode(data, true)
}

// DecodeNext parses one record from the head of data, which may be followed
// by unrelated bytes (the archive is self-delimiting). Returns the record
// and the number of bytes consumed.
func DecodeNext(data []byte) (*Transaction, int, error) {
	r := wire.NewReader(data)
	t, err := decodeFrom(r, false)
	if err != nil {
		return nil, 0, err
	}
	return t, r.Offset(), nil
}

func decode(data []byte, pruned bool) (*Transaction, error) {
	r := wire.NewReader(data)
	t, err := decodeFrom(r, pruned)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeFrom(r *wire.Reader, pruned bool) (*Transaction, error) {
	var b body

	version, err := r.ReadUvarint("version")
	if err != nil {
		return nil, err
	}
	if version < uint64(MinVersion) || version > uint64(MaxVersion) {
		return nil, wire.NewError(wire.ErrInvalidVersion, "version", 0)
	}
	b.Version = Version(version)

	if b.Version <= V2 {
		if b.UnlockTime, err = r.ReadUvarint("unlock_time"); err != nil {
			return nil, err
		}
	} else {
		count, err := r.ReadCount("per_output_unlock_times")
		if err != nil {
			return nil, err
		}
		b.OutputUnlocks = make([]uint64, count)
		for i := range b.OutputUnlocks {
			if b.OutputUnlocks[i], err = r.ReadUvarint("per_output_unlock_times"); err != nil {
				return nil, err
			}
		}
		if b.Version == V3 {
			flag, err := r.ReadBool("deregister_flag")
			if err != nil {
				return nil, err
			}
			if flag {
				b.Type = TypeDeregister
			}
		} else {
			offset := r.Offset()
			typeTag, err := r.ReadUvarint("type")
			if err != nil {
				return nil, err
			}
			if typeTag >= uint64(TypeCount) {
				return nil, wire.NewError(wire.ErrUnknownType, "type", offset)
			}
			b.Type = Type(typeTag)
		}
	}

	inputCount, err := r.ReadCount("inputs")
	if err != nil {
		return nil, err
	}
	b.Inputs = make([]Input, inputCount)
	for i := range b.Inputs {
		if b.Inputs[i], err = decodeInput(r); err != nil {
			return nil, err
		}
	}

	outputCount, err := r.ReadCount("outputs")
	if err != nil {
		return nil, err
	}
	b.Outputs = make([]Output, outputCount)
	for i := range b.Outputs {
		if b.Outputs[i], err = decodeOutput(r); err != nil {
			return nil, err
		}
	}
	if b.Version >= V3 && len(b.OutputUnlocks) != outputCount {
		return nil, wire.NewError(wire.ErrFieldCountMismatch, "per_output_unlock_times", r.Offset())
	}

	if b.Extra, err = r.ReadBytes("extra"); err != nil {
		return nil, err
	}

	if pruned {
		b.Pruned = true
	} else if b.Version == V1 {
		if err := decodeSignatureGroups(r, &b); err != nil {
			return nil, err
		}
	} else if inputCount > 0 {
		rs := &RingSignature{}
		if rs.Scheme, err = r.ReadTag("ring_scheme"); err != nil {
			return nil, err
		}
		if rs.Payload, err = r.ReadBytes("ring_payload"); err != nil {
			return nil, err
		}
		b.RingSig = rs
	}

	// cached hash/size stay unset until first request
	return &Transaction{body: b}, nil
}

func decodeSignatureGroups(r *wire.Reader, b *body) error {
	if r.Len() == 0 {
		// signatures not expected: fine only when no input demands any
		for _, in := range b.Inputs {
			if in.SignatureArity() != 0 {
				return wire.NewError(wire.ErrSignatureCount, "signatures", r.Offset())
			}
		}
		return nil
	}
	b.Signatures = make([][]quorax.Signature, len(b.Inputs))
	for i, in := range b.Inputs {
		arity := in.SignatureArity()
		group := make([]quorax.Signature, arity)
		for s := range group {
			raw, err := r.ReadRaw(quorax.SignatureLength, "signatures")
			if err != nil {
				return err
			}
			group[s] = quorax.BytesToSignature(raw)
		}
		b.Signatures[i] = group
	}
	return nil
}

func decodeInput(r *wire.Reader) (Input, error) {
	offset := r.Offset()
	tag, err := r.ReadTag("input_tag")
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagInputGeneration:
		var in GenerationInput
		if in.Height, err = r.ReadUvarint("gen.height"); err != nil {
			return nil, err
		}
		return in, nil

	case tagInputToScript:
		var in ScriptInput
		if in.Prev, err = r.ReadBytes32("script.prev"); err != nil {
			return nil, err
		}
		if in.Prevout, err = r.ReadUvarint("script.prevout"); err != nil {
			return nil, err
		}
		if in.SigSet, err = r.ReadBytes("script.sigset"); err != nil {
			return nil, err
		}
		return in, nil

	case tagInputToScriptHash:
		var in ScriptHashInput
		if in.Prev, err = r.ReadBytes32("scripthash.prev"); err != nil {
			return nil, err
		}
		if in.Prevout, err = r.ReadUvarint("scripthash.prevout"); err != nil {
			return nil, err
		}
		if in.Script, err = r.ReadBytes("scripthash.script"); err != nil {
			return nil, err
		}
		if in.SigSet, err = r.ReadBytes("scripthash.sigset"); err != nil {
			return nil, err
		}
		return in, nil

	case tagInputToKey:
		var in KeyInput
		if in.Amount, err = r.ReadUvarint("key.amount"); err != nil {
			return nil, err
		}
		count, err := r.ReadCount("key.offsets")
		if err != nil {
			return nil, err
		}
		in.KeyOffsets = make([]uint64, count)
		for i := range in.KeyOffsets {
			if in.KeyOffsets[i], err = r.ReadUvarint("key.offsets"); err != nil {
				return nil, err
			}
		}
		raw, err := r.ReadRaw(quorax.KeyImageLength, "key.key_image")
		if err != nil {
			return nil, err
		}
		copy(in.KeyImage[:], raw)
		return in, nil

	default:
		return nil, wire.NewError(wire.ErrUnknownVariant, "input_tag", offset)
	}
}

func decodeOutput(r *wire.Reader) (Output, error) {
	var out Output
	amount, err := r.ReadUvarint("output.amount")
	if err != nil {
		return Output{}, err
	}
	out.Amount = amount

	offset := r.Offset()
	tag, err := r.ReadTag("output_tag")
	if err != nil {
		return Output{}, err
	}
	switch tag {
	case tagTargetToKey:
		raw, err := r.ReadRaw(quorax.PublicKeyLength, "target.key")
		if err != nil {
			return Output{}, err
		}
		out.Target = KeyTarget{Key: quorax.BytesToPublicKey(raw)}
		return out, nil

	case tagTargetToScript:
		var target ScriptTarget
		count, err := r.ReadCount("target.keys")
		if err != nil {
			return Output{}, err
		}
		target.Keys = make([]quorax.PublicKey, count)
		for i := range target.Keys {
			raw, err := r.ReadRaw(quorax.PublicKeyLength, "target.keys")
			if err != nil {
				return Output{}, err
			}
			target.Keys[i] = quorax.BytesToPublicKey(raw)
		}
		if target.Script, err = r.ReadBytes("target.script"); err != nil {
			return Output{}, err
		}
		out.Target = target
		return out, nil

	case tagTargetToScriptHash:
		hash, err := r.ReadBytes32("target.hash")
		if err != nil {
			return Output{}, err
		}
		out.Target = ScriptHashTarget{Hash: hash}
		return out, nil

	default:
		return Output{}, wire.NewError(wire.ErrUnknownVariant, "output_tag", offset)
	}
}
