// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

// Package circuit is the trusted half of the state-proof pipeline. It
// runs inside a deterministic execution environment with no I/O, no
// clock and no concurrency: given a witness list it either commits a
// public output or fails with a typed error, never anything in between.
package circuit

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coprocessor-labs/stateproof/zkstate"
)

// Run executes the full trusted pipeline: witness validation, proof
// verification, message construction, commitment. The returned bytes are
// the public output state_root || serialized(AuthorizationMessage).
func Run(params Params, witnesses []zkstate.Witness) ([]byte, error) {
	verified, err := Verify(params, witnesses)
	if err != nil {
		return nil, err
	}
	msg, err := BuildMintMessage(params, verified.Recipient, verified.Value)
	if err != nil {
		return nil, err
	}
	encoded, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	return Commit(verified.StateRoot, encoded), nil
}

// Commit binds a serialized message to the trust anchor it was verified
// against. The settlement layer only ever trusts these concatenated
// bytes.
func Commit(root common.Hash, message []byte) []byte {
	out := make([]byte, 0, common.HashLength+len(message))
	out = append(out, root.Bytes()...)
	return append(out, message...)
}

type rejection struct {
	Rejected string `json:"rejected"`
}

// CommitRejection produces the deterministic negative output for a failed
// verification, bound to the same trust anchor, so a retry is
// distinguishable from a forged acceptance.
func CommitRejection(root common.Hash, err error) []byte {
	payload, marshalErr := json.Marshal(rejection{Rejected: ErrorKind(err)})
	if marshalErr != nil {
		// cannot happen for a fixed struct of strings
		payload = []byte(`{"rejected":"unknown"}`)
	}
	return Commit(root, payload)
}

// AnchorRoot extracts the claimed trust anchor root from a witness list
// on a best-effort basis, for binding rejection outputs. A set too
// malformed to name a root yields the zero hash.
func AnchorRoot(witnesses []zkstate.Witness) common.Hash {
	if len(witnesses) == 0 {
		return common.Hash{}
	}
	if proof, ok := witnesses[0].AsStateProof(); ok {
		return proof.StateRoot
	}
	return common.Hash{}
}
