// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

// Package controller is the untrusted half of the state-proof pipeline.
// It assembles the witness list the trusted circuit expects: it resolves
// the trust anchor, derives the storage key, fetches the account/storage
// proof at the anchor height and packages everything in the fixed
// [StateProof, Data] order. Nothing it produces is trusted; the circuit
// re-checks all of it.
package controller

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/coprocessor-labs/stateproof/zkstate"
	"github.com/coprocessor-labs/stateproof/zkutil"
)

var (
	// ErrDomainUnavailable means the domain has no validated trust anchor
	// yet; callers retry with backoff.
	ErrDomainUnavailable = errors.New("domain unavailable")
	// ErrProofFetchFailed wraps transport and RPC failures from the proof
	// endpoint; callers retry with backoff.
	ErrProofFetchFailed = errors.New("proof fetch failed")
)

// Request is a single proof request: prove the depositor's balance in the
// token contract and authorize a mint to the destination identity.
type Request struct {
	Token       common.Address `json:"token"`
	Depositor   common.Address `json:"depositor"`
	Destination string         `json:"destination"`
}

// WitnessBuilder assembles witness lists for proof requests.
type WitnessBuilder struct {
	config  ConfigFetcher
	anchors AnchorReader
	proofs  ProofReader
}

func NewWitnessBuilder(config ConfigFetcher, anchors AnchorReader, proofs ProofReader) *WitnessBuilder {
	return &WitnessBuilder{
		config:  config,
		anchors: anchors,
		proofs:  proofs,
	}
}

// BuildWitnesses performs the single network round-trip of the pipeline
// and returns the witness pair in circuit order. At a fixed anchor height
// the result is semantically idempotent, though proof node encodings from
// an RPC may vary between calls.
func (b *WitnessBuilder) BuildWitnesses(ctx context.Context, req *Request) ([]zkstate.Witness, error) {
	config := b.config()

	anchor, err := b.anchors.LatestAnchor(ctx, config.Domain)
	if err != nil {
		return nil, errors.Wrap(ErrDomainUnavailable, err.Error())
	}
	if anchor == nil {
		return nil, errors.Wrapf(ErrDomainUnavailable, "no validated block for %q", config.Domain)
	}

	storageKey := zkutil.DeriveMappingKey(req.Depositor, config.SlotIndex)
	log.Info("building witnesses",
		"domain", anchor.Domain, "block", anchor.BlockNumber, "root", anchor.StateRoot,
		"token", req.Token, "depositor", req.Depositor, "storageKey", storageKey)

	result, err := b.proofs.GetProof(ctx, req.Token, storageKey, anchor.BlockNumber)
	if err != nil {
		return nil, err
	}
	// The verifier re-derives the storage key from this address; it is
	// carried in the bundle because eth_getProof does not echo it back.
	result.Recipient = req.Depositor

	proofBytes, err := zkstate.EncodeAccountResult(result)
	if err != nil {
		return nil, errors.Wrap(ErrProofFetchFailed, err.Error())
	}

	return []zkstate.Witness{
		zkstate.NewStateProofWitness(zkstate.StateProof{
			Domain:      anchor.Domain,
			Proof:       proofBytes,
			BlockNumber: anchor.BlockNumber,
			StateRoot:   anchor.StateRoot,
		}),
		zkstate.NewDataWitness([]byte(req.Destination)),
	}, nil
}
