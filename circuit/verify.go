// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package circuit

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/coprocessor-labs/stateproof/zkstate"
	"github.com/coprocessor-labs/stateproof/zkutil"
)

// Params are the protocol constants the verifier closes over. They are
// compiled into the trusted binary, never taken from witnesses.
type Params struct {
	// Domain the state proof witness must be tagged with.
	Domain string
	// SlotIndex of the token contract's balances mapping.
	SlotIndex uint64
	// MintContract receiving the authorization on the settlement chain.
	MintContract string
	// ReceiverContract marks destination identities as contract addresses
	// for padding truncation.
	ReceiverContract bool
}

// MainnetParams pins the production deployment: the balances mapping of
// the mainnet USDC contract lives at slot 9.
var MainnetParams = Params{
	Domain:       "ethereum-electra-alpha",
	SlotIndex:    9,
	MintContract: "neutron1e2cwhcqvpsw4vkpxw8k3681jtl5hcy3ps0ch6smgvo4f5wz9d4qs2y6lte",
}

// Verified is the result of a successful proof verification: the trust
// anchor root the proof was checked against, the proven balance (known to
// fit in 128 bits) and the decoded destination identity.
type Verified struct {
	StateRoot common.Hash
	Value     *uint256.Int
	Recipient string
}

// Verify runs the trusted verification pass over the witness list. It is
// a pure function: same witnesses, same outcome, no I/O and no partial
// results. Every failure maps to one of the sentinel error kinds.
func Verify(params Params, witnesses []zkstate.Witness) (*Verified, error) {
	if len(witnesses) != 2 {
		return nil, errors.Wrapf(ErrMalformedWitnessSet, "expected 2 witnesses, got %d", len(witnesses))
	}
	stateProof, ok := witnesses[0].AsStateProof()
	if !ok {
		return nil, errors.Wrap(ErrMalformedWitnessSet, "witness 0 is not a state proof")
	}
	identityBytes, ok := witnesses[1].AsData()
	if !ok {
		return nil, errors.Wrap(ErrMalformedWitnessSet, "witness 1 is not a data payload")
	}
	if stateProof.Domain != params.Domain {
		return nil, errors.Wrapf(ErrMalformedWitnessSet, "witness domain %q, expected %q", stateProof.Domain, params.Domain)
	}

	result, err := zkstate.DecodeAccountResult(stateProof.Proof)
	if err != nil {
		return nil, errors.Wrap(ErrProofDecode, err.Error())
	}
	if len(result.StorageProof) == 0 {
		return nil, errors.Wrap(ErrProofDecode, "missing storage proof")
	}

	recipient, err := DecodeIdentity(identityBytes, params.ReceiverContract)
	if err != nil {
		return nil, err
	}

	// The storage key is recomputed here, never taken from the proof: a
	// proof for any other slot fails right here no matter how valid it is.
	expectedKey := zkutil.DeriveMappingKey(result.Recipient, params.SlotIndex)
	if result.StorageProof[0].Key != expectedKey {
		return nil, errors.Wrapf(ErrStorageKeyMismatch, "proof key %v, derived %v", result.StorageProof[0].Key, expectedKey)
	}

	account, err := verifyAccountProof(stateProof.StateRoot, result)
	if err != nil {
		return nil, err
	}
	value, err := verifyStorageProof(account.Root, &result.StorageProof[0])
	if err != nil {
		return nil, err
	}
	if value.BitLen() > 128 {
		return nil, errors.Wrapf(ErrValueOverflow, "proven balance %s", value.Dec())
	}

	return &Verified{
		StateRoot: stateProof.StateRoot,
		Value:     value,
		Recipient: recipient,
	}, nil
}

// verifyAccountProof walks the account proof nodes from the state root
// down to the token contract's account leaf and cross-checks every field
// the bundle claims about the account.
func verifyAccountProof(root common.Hash, result *zkstate.AccountResult) (*types.StateAccount, error) {
	db := memorydb.New()
	for _, node := range result.AccountProof {
		if err := db.Put(crypto.Keccak256(node), node); err != nil {
			return nil, errors.Wrap(ErrProofVerification, err.Error())
		}
	}
	leaf, err := trie.VerifyProof(root, crypto.Keccak256(result.Address.Bytes()), db)
	if err != nil {
		return nil, errors.Wrapf(ErrProofVerification, "account proof: %v", err)
	}
	if len(leaf) == 0 {
		return nil, errors.Wrapf(ErrProofVerification, "account %v not present under root %v", result.Address, root)
	}

	account := new(types.StateAccount)
	if err := rlp.DecodeBytes(leaf, account); err != nil {
		return nil, errors.Wrapf(ErrProofVerification, "account leaf: %v", err)
	}
	if account.Root != result.StorageHash {
		return nil, errors.Wrapf(ErrProofVerification, "storage root %v, proof claims %v", account.Root, result.StorageHash)
	}
	if account.Nonce != uint64(result.Nonce) {
		return nil, errors.Wrapf(ErrProofVerification, "nonce %d, proof claims %d", account.Nonce, result.Nonce)
	}
	if !bytes.Equal(account.CodeHash, result.CodeHash.Bytes()) {
		return nil, errors.Wrapf(ErrProofVerification, "code hash %x, proof claims %v", account.CodeHash, result.CodeHash)
	}
	if result.Balance == nil || account.Balance.Cmp(result.Balance.ToInt()) != 0 {
		return nil, errors.Wrap(ErrProofVerification, "account balance mismatch")
	}
	return account, nil
}

// verifyStorageProof walks a storage proof from the account's storage
// root down to the slot value and checks it against the claimed value. An
// absent slot proves a zero balance, which is still a valid proof.
func verifyStorageProof(storageRoot common.Hash, entry *zkstate.StorageResult) (*uint256.Int, error) {
	db := memorydb.New()
	for _, node := range entry.Proof {
		if err := db.Put(crypto.Keccak256(node), node); err != nil {
			return nil, errors.Wrap(ErrProofVerification, err.Error())
		}
	}
	leaf, err := trie.VerifyProof(storageRoot, crypto.Keccak256(entry.Key.Bytes()), db)
	if err != nil {
		return nil, errors.Wrapf(ErrProofVerification, "storage proof: %v", err)
	}

	value := new(uint256.Int)
	if len(leaf) > 0 {
		var raw []byte
		if err := rlp.DecodeBytes(leaf, &raw); err != nil {
			return nil, errors.Wrapf(ErrProofVerification, "storage leaf: %v", err)
		}
		if len(raw) > 32 {
			return nil, errors.Wrapf(ErrProofVerification, "storage value is %d bytes", len(raw))
		}
		value.SetBytes(raw)
	}

	claimed := new(uint256.Int)
	if entry.Value != nil {
		var overflow bool
		claimed, overflow = uint256.FromBig(entry.Value.ToInt())
		if overflow {
			return nil, errors.Wrap(ErrProofVerification, "claimed value exceeds 256 bits")
		}
	}
	if !value.Eq(claimed) {
		return nil, errors.Wrapf(ErrProofVerification, "proven value %s, proof claims %s", value.Dec(), claimed.Dec())
	}
	return value, nil
}
