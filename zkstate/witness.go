// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package zkstate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// WitnessKind tags the two witness variants the pipeline understands.
type WitnessKind uint8

const (
	WitnessStateProof WitnessKind = iota + 1
	WitnessData
)

// StateProof is a domain-tagged, opaque account/storage proof together
// with the trust anchor it must be checked against. The proof bytes are a
// serialized AccountResult; nothing here is trusted until the circuit has
// verified it.
type StateProof struct {
	Domain      string
	Payload     []byte
	Proof       []byte
	BlockNumber uint64
	StateRoot   common.Hash
}

// Witness is the tagged union fed to the trusted circuit. The pipeline
// consumes exactly two, in order [StateProof, Data]; making the variant
// explicit is what lets the circuit check that instead of assuming it.
type Witness struct {
	kind       WitnessKind
	stateProof *StateProof
	data       []byte
}

func NewStateProofWitness(proof StateProof) Witness {
	return Witness{kind: WitnessStateProof, stateProof: &proof}
}

func NewDataWitness(data []byte) Witness {
	return Witness{kind: WitnessData, data: data}
}

func (w Witness) Kind() WitnessKind {
	return w.kind
}

// AsStateProof returns the state proof variant, or false if the witness
// holds something else.
func (w Witness) AsStateProof() (*StateProof, bool) {
	if w.kind != WitnessStateProof {
		return nil, false
	}
	return w.stateProof, true
}

// AsData returns the raw data variant, or false if the witness holds
// something else.
func (w Witness) AsData() ([]byte, bool) {
	if w.kind != WitnessData {
		return nil, false
	}
	return w.data, true
}

// Wire format: an RLP list of [kind, body] pairs. For state proofs the
// body is itself RLP; for data witnesses it is the raw payload. Variant
// order and count are a protocol invariant checked by the circuit, not
// here.
type witnessEnvelope struct {
	Kind uint8
	Body []byte
}

type stateProofBody struct {
	Domain      string
	Payload     []byte
	Proof       []byte
	BlockNumber uint64
	StateRoot   common.Hash
}

// EncodeWitnesses serializes a witness list into the wire format consumed
// by the trusted circuit.
func EncodeWitnesses(witnesses []Witness) ([]byte, error) {
	envelopes := make([]witnessEnvelope, 0, len(witnesses))
	for i, w := range witnesses {
		switch w.kind {
		case WitnessStateProof:
			body, err := rlp.EncodeToBytes(&stateProofBody{
				Domain:      w.stateProof.Domain,
				Payload:     w.stateProof.Payload,
				Proof:       w.stateProof.Proof,
				BlockNumber: w.stateProof.BlockNumber,
				StateRoot:   w.stateProof.StateRoot,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "encoding state proof witness %d", i)
			}
			envelopes = append(envelopes, witnessEnvelope{Kind: uint8(WitnessStateProof), Body: body})
		case WitnessData:
			envelopes = append(envelopes, witnessEnvelope{Kind: uint8(WitnessData), Body: w.data})
		default:
			return nil, errors.Errorf("witness %d has unknown kind %d", i, w.kind)
		}
	}
	return rlp.EncodeToBytes(envelopes)
}

// DecodeWitnesses parses the wire format back into a witness list. It
// fails on malformed bytes or unknown variant tags and never panics.
func DecodeWitnesses(data []byte) ([]Witness, error) {
	var envelopes []witnessEnvelope
	if err := rlp.DecodeBytes(data, &envelopes); err != nil {
		return nil, errors.Wrap(err, "decoding witness list")
	}
	witnesses := make([]Witness, 0, len(envelopes))
	for i, env := range envelopes {
		switch WitnessKind(env.Kind) {
		case WitnessStateProof:
			var body stateProofBody
			if err := rlp.DecodeBytes(env.Body, &body); err != nil {
				return nil, errors.Wrapf(err, "decoding state proof witness %d", i)
			}
			witnesses = append(witnesses, NewStateProofWitness(StateProof{
				Domain:      body.Domain,
				Payload:     body.Payload,
				Proof:       body.Proof,
				BlockNumber: body.BlockNumber,
				StateRoot:   body.StateRoot,
			}))
		case WitnessData:
			witnesses = append(witnesses, NewDataWitness(env.Body))
		default:
			return nil, errors.Errorf("witness %d has unknown kind %d", i, env.Kind)
		}
	}
	return witnesses, nil
}
