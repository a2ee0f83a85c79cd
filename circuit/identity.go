// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package circuit

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Bech32 identity lengths on the settlement chain. Storage reads hand us
// fixed-width words, so an identity shorter than the word is
// right-padded with zeros; we cannot know how much padding occurred and
// instead trim down to the slot size of the string.
// TODO: confirm the contract-address length against chains whose bech32
// prefix is not 7 characters; both constants assume a "neutron" prefix.
const (
	contractIdentityLen = 66
	walletIdentityLen   = 46
)

// TrimIdentityPadding strips trailing zero bytes from a storage-encoded
// destination identity, stopping at the contract-address length when the
// receiver is a contract and at the wallet-address length otherwise.
func TrimIdentityPadding(data []byte, receiverContract bool) []byte {
	floor := walletIdentityLen
	if receiverContract {
		floor = contractIdentityLen
	}
	end := len(data)
	for end > floor && data[end-1] == 0x00 {
		end--
	}
	return data[:end]
}

// DecodeIdentity turns raw witness bytes into the destination identity
// string, rejecting anything that is not valid UTF-8.
func DecodeIdentity(data []byte, receiverContract bool) (string, error) {
	trimmed := TrimIdentityPadding(data, receiverContract)
	if !utf8.Valid(trimmed) {
		return "", errors.Wrap(ErrInvalidRecipientEncoding, "identity bytes are not valid UTF-8")
	}
	return string(trimmed), nil
}
