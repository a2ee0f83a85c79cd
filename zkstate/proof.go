// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package zkstate

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// AccountResult is the EIP-1186 eth_getProof response, extended with the
// recipient address the storage key was derived from. The recipient is
// untrusted controller input: the circuit re-derives the storage key from
// it, so lying about it cannot redirect a proof to someone else's slot.
type AccountResult struct {
	Address      common.Address  `json:"address"`
	Recipient    common.Address  `json:"recipient"`
	AccountProof []hexutil.Bytes `json:"accountProof"`
	Balance      *hexutil.Big    `json:"balance"`
	CodeHash     common.Hash     `json:"codeHash"`
	Nonce        hexutil.Uint64  `json:"nonce"`
	StorageHash  common.Hash     `json:"storageHash"`
	StorageProof []StorageResult `json:"storageProof"`
}

// StorageResult is a single storage slot proof within an AccountResult.
type StorageResult struct {
	Key   common.Hash     `json:"key"`
	Value *hexutil.Big    `json:"value"`
	Proof []hexutil.Bytes `json:"proof"`
}

// EncodeAccountResult serializes a proof bundle into the witness payload
// bytes. No cryptographic interpretation happens here.
func EncodeAccountResult(result *AccountResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, "encoding account proof")
	}
	return data, nil
}

// DecodeAccountResult parses witness payload bytes back into a proof
// bundle, failing on malformed input rather than panicking.
func DecodeAccountResult(data []byte) (*AccountResult, error) {
	result := new(AccountResult)
	if err := json.Unmarshal(data, result); err != nil {
		return nil, errors.Wrap(err, "decoding account proof")
	}
	return result, nil
}
