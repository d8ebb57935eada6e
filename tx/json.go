// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/quorax/quorax/quorax"
)

// The JSON archive mirrors the binary schema with named variant tags. It is
// a tooling/debug format; the binary archive stays the consensus format.

type hexBytes []byte

func (h hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h))
}

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

type jsonInput struct {
	Kind       string           `json:"kind"`
	Height     uint64           `json:"height,omitempty"`
	Prev       *quorax.Bytes32  `json:"prev,omitempty"`
	Prevout    uint64           `json:"prevout,omitempty"`
	Script     hexBytes         `json:"script,omitempty"`
	SigSet     hexBytes         `json:"sigSet,omitempty"`
	Amount     uint64           `json:"amount,omitempty"`
	KeyOffsets []uint64         `json:"keyOffsets,omitempty"`
	KeyImage   *quorax.KeyImage `json:"keyImage,omitempty"`
}

type jsonOutput struct {
	Amount uint64             `json:"amount"`
	Kind   string             `json:"kind"`
	Key    *quorax.PublicKey  `json:"key,omitempty"`
	Keys   []quorax.PublicKey `json:"keys,omitempty"`
	Script hexBytes           `json:"script,omitempty"`
	Hash   *quorax.Bytes32    `json:"hash,omitempty"`
}

type jsonRingSig struct {
	Scheme  byte     `json:"scheme"`
	Payload hexBytes `json:"payload"`
}

type jsonTransaction struct {
	Version       byte                 `json:"version"`
	UnlockTime    uint64               `json:"unlockTime,omitempty"`
	OutputUnlocks []uint64             `json:"outputUnlocks,omitempty"`
	Type          string               `json:"type,omitempty"`
	Inputs        []jsonInput          `json:"inputs"`
	Outputs       []jsonOutput         `json:"outputs"`
	Extra         hexBytes             `json:"extra,omitempty"`
	Signatures    [][]quorax.Signature `json:"signatures,omitempty"`
	RingSignature *jsonRingSig         `json:"ringSignature,omitempty"`
	Pruned        bool                 `json:"pruned,omitempty"`
}

const (
	kindGeneration = "generation"
	kindScript     = "script"
	kindScriptHash = "scripthash"
	kindKey        = "key"
)

// MarshalJSON implements json.Marshaler.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	jt := jsonTransaction{
		Version:       byte(t.body.Version),
		OutputUnlocks: t.body.OutputUnlocks,
		Extra:         t.body.Extra,
		Signatures:    t.body.Signatures,
		Pruned:        t.body.Pruned,
	}
	if t.body.Version <= V2 {
		jt.UnlockTime = t.body.UnlockTime
	} else {
		jt.Type = t.body.Type.String()
	}
	if t.body.RingSig != nil {
		jt.RingSignature = &jsonRingSig{Scheme: t.body.RingSig.Scheme, Payload: t.body.RingSig.Payload}
	}

	jt.Inputs = make([]jsonInput, len(t.body.Inputs))
	for i, in := range t.body.Inputs {
		switch v := in.(type) {
		case GenerationInput:
			jt.Inputs[i] = jsonInput{Kind: kindGeneration, Height: v.Height}
		case ScriptInput:
			prev := v.Prev
			jt.Inputs[i] = jsonInput{Kind: kindScript, Prev: &prev, Prevout: v.Prevout, SigSet: v.SigSet}
		case ScriptHashInput:
			prev := v.Prev
			jt.Inputs[i] = jsonInput{Kind: kindScriptHash, Prev: &prev, Prevout: v.Prevout, Script: v.Script, SigSet: v.SigSet}
		case KeyInput:
			img := v.KeyImage
			jt.Inputs[i] = jsonInput{Kind: kindKey, Amount: v.Amount, KeyOffsets: v.KeyOffsets, KeyImage: &img}
		}
	}

	jt.Outputs = make([]jsonOutput, len(t.body.Outputs))
	for i, out := range t.body.Outputs {
		jo := jsonOutput{Amount: out.Amount}
		switch v := out.Target.(type) {
		case KeyTarget:
			key := v.Key
			jo.Kind = kindKey
			jo.Key = &key
		case ScriptTarget:
			jo.Kind = kindScript
			jo.Keys = v.Keys
			jo.Script = v.Script
		case ScriptHashTarget:
			hash := v.Hash
			jo.Kind = kindScriptHash
			jo.Hash = &hash
		}
		jt.Outputs[i] = jo
	}

	return json.Marshal(&jt)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var jt jsonTransaction
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}

	var b body
	b.Version = Version(jt.Version)
	b.UnlockTime = jt.UnlockTime
	b.OutputUnlocks = jt.OutputUnlocks
	b.Extra = jt.Extra
	b.Signatures = jt.Signatures
	b.Pruned = jt.Pruned
	if jt.RingSignature != nil {
		b.RingSig = &RingSignature{Scheme: jt.RingSignature.Scheme, Payload: jt.RingSignature.Payload}
	}
	if b.Version >= V3 {
		var ok bool
		if b.Type, ok = typeFromString(jt.Type); !ok {
			return errors.Errorf("tx: unknown type %q", jt.Type)
		}
	}

	b.Inputs = make([]Input, len(jt.Inputs))
	for i, ji := range jt.Inputs {
		switch ji.Kind {
		case kindGeneration:
			b.Inputs[i] = GenerationInput{Height: ji.Height}
		case kindScript:
			in := ScriptInput{Prevout: ji.Prevout, SigSet: ji.SigSet}
			if ji.Prev != nil {
				in.Prev = *ji.Prev
			}
			b.Inputs[i] = in
		case kindScriptHash:
			in := ScriptHashInput{Prevout: ji.Prevout, Script: ji.Script, SigSet: ji.SigSet}
			if ji.Prev != nil {
				in.Prev = *ji.Prev
			}
			b.Inputs[i] = in
		case kindKey:
			in := KeyInput{Amount: ji.Amount, KeyOffsets: ji.KeyOffsets}
			if ji.KeyImage != nil {
				in.KeyImage = *ji.KeyImage
			}
			b.Inputs[i] = in
		default:
			return errors.Errorf("tx: unknown input kind %q", ji.Kind)
		}
	}

	b.Outputs = make([]Output, len(jt.Outputs))
	for i, jo := range jt.Outputs {
		out := Output{Amount: jo.Amount}
		switch jo.Kind {
		case kindKey:
			var target KeyTarget
			if jo.Key != nil {
				target.Key = *jo.Key
			}
			out.Target = target
		case kindScript:
			out.Target = ScriptTarget{Keys: jo.Keys, Script: jo.Script}
		case kindScriptHash:
			var target ScriptHashTarget
			if jo.Hash != nil {
				target.Hash = *jo.Hash
			}
			out.Target = target
		default:
			return errors.Errorf("tx: unknown output kind %q", jo.Kind)
		}
		b.Outputs[i] = out
	}

	decoded := Transaction{body: b}
	if err := decoded.validate(); err != nil {
		return err
	}
	*t = decoded
	return nil
}

func typeFromString(s string) (Type, bool) {
	switch s {
	case TypeStandard.String():
		return TypeStandard, true
	case TypeDeregister.String():
		return TypeDeregister, true
	case TypeKeyImageUnlock.String():
		return TypeKeyImageUnlock, true
	default:
		return 0, false
	}
}
