// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package zkutil

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// DeriveMappingKey computes the storage key holding the entry of a
// Solidity mapping(address => uint256) declared at slot slotIndex, per the
// standard storage layout: keccak256(pad32(key) || pad32(slot)).
func DeriveMappingKey(recipient common.Address, slotIndex uint64) common.Hash {
	var data [64]byte
	copy(data[12:32], recipient.Bytes())
	binary.BigEndian.PutUint64(data[56:64], slotIndex)
	return crypto.Keccak256Hash(data[:])
}

// DeriveOffsetKey returns keccak256(baseKey) + offset in 256-bit unsigned
// space, the key of the offset-th chunk of a dynamic array or long byte
// string rooted at baseKey. The addition is checked: a carry out of 256
// bits fails instead of wrapping, since real offsets are always tiny.
func DeriveOffsetKey(baseKey []byte, offset uint64) (common.Hash, error) {
	base := new(uint256.Int).SetBytes(crypto.Keccak256(baseKey))
	sum, carry := new(uint256.Int).AddOverflow(base, uint256.NewInt(offset))
	if carry {
		return common.Hash{}, errors.Errorf("offset %d overflows 256-bit key space", offset)
	}
	return common.Hash(sum.Bytes32()), nil
}
