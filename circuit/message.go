// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package circuit

import (
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// AuthorizationMessage is the canonical instruction committed for the
// settlement chain: enqueue one atomic subroutine that mints the proven
// balance to the destination identity. Serialization must be
// byte-deterministic because the settlement layer uses the message bytes
// (or their hash) as its replay key; stdlib json with fixed struct order
// gives us that. Field order is therefore load-bearing.
type AuthorizationMessage struct {
	Registry    uint64         `json:"registry"`
	BlockNumber uint64         `json:"block_number"`
	Domain      string         `json:"domain"`
	Message     EnqueueMessage `json:"message"`
}

// EnqueueMessage carries the processor messages and the subroutine that
// executes them atomically on the settlement chain.
type EnqueueMessage struct {
	ID         uint64             `json:"id"`
	Messages   []ProcessorMessage `json:"msgs"`
	Subroutine AtomicSubroutine   `json:"subroutine"`
	Priority   string             `json:"priority"`
}

// ProcessorMessage wraps an execute message for the settlement-chain
// processor. Exactly one variant is set.
type ProcessorMessage struct {
	ExecuteMsg *ExecuteMsg `json:"execute_msg,omitempty"`
}

// ExecuteMsg holds the destination contract call, base64-encoded the way
// the settlement chain expects inner messages.
type ExecuteMsg struct {
	Msg []byte `json:"msg"`
}

// AtomicSubroutine executes its functions fully or not at all. Retry and
// expiration policy are deliberately absent: the message must hash the
// same no matter when it is built.
type AtomicSubroutine struct {
	Functions []AtomicFunction `json:"functions"`
}

// AtomicFunction names one callable function on a settlement-chain
// contract.
type AtomicFunction struct {
	Domain          string         `json:"domain"`
	MessageDetails  MessageDetails `json:"message_details"`
	ContractAddress string         `json:"contract_address"`
}

type MessageDetails struct {
	MessageType string `json:"message_type"`
	Name        string `json:"name"`
}

type mintMsg struct {
	Mint mintFields `json:"mint"`
}

type mintFields struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

const (
	settlementDomain = "main"
	mintFunction     = "mint"
	priorityMedium   = "medium"
	executeMsgType   = "execute_msg"
)

// BuildMintMessage maps a verified balance and destination identity into
// the canonical mint authorization. Pure and deterministic: identical
// inputs always produce the same message, byte for byte once encoded.
func BuildMintMessage(params Params, recipient string, amount *uint256.Int) (*AuthorizationMessage, error) {
	inner, err := json.Marshal(mintMsg{Mint: mintFields{
		Recipient: recipient,
		Amount:    amount.Dec(),
	}})
	if err != nil {
		return nil, errors.Wrap(ErrEncoding, err.Error())
	}

	return &AuthorizationMessage{
		Registry:    0,
		BlockNumber: 0,
		Domain:      settlementDomain,
		Message: EnqueueMessage{
			ID:       0,
			Messages: []ProcessorMessage{{ExecuteMsg: &ExecuteMsg{Msg: inner}}},
			Subroutine: AtomicSubroutine{
				Functions: []AtomicFunction{{
					Domain: settlementDomain,
					MessageDetails: MessageDetails{
						MessageType: executeMsgType,
						Name:        mintFunction,
					},
					ContractAddress: params.MintContract,
				}},
			},
			Priority: priorityMedium,
		},
	}, nil
}

// Encode serializes the message into the bytes bound to the trust anchor
// by the committer.
func (m *AuthorizationMessage) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(ErrEncoding, err.Error())
	}
	return data, nil
}

// DecodeAuthorizationMessage parses committed message bytes, mainly for
// tooling and tests on the untrusted side.
func DecodeAuthorizationMessage(data []byte) (*AuthorizationMessage, error) {
	msg := new(AuthorizationMessage)
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, errors.Wrap(ErrEncoding, err.Error())
	}
	return msg, nil
}
