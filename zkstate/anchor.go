// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package zkstate

import "github.com/ethereum/go-ethereum/common"

// TrustAnchor is the (domain, state root, block number) triple a verifier
// treats as ground truth. It is produced upstream by the domain's header
// validator and is immutable from this pipeline's point of view: the
// circuit only ever compares against it.
type TrustAnchor struct {
	Domain      string      `json:"domain"`
	StateRoot   common.Hash `json:"stateRoot"`
	BlockNumber uint64      `json:"blockNumber"`
}
