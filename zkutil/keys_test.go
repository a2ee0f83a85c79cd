// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package zkutil

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/go-cmp/cmp"
)

func TestDeriveMappingKey(t *testing.T) {
	for _, tc := range []struct {
		name      string
		recipient common.Address
		slot      uint64
		want      common.Hash
	}{
		{
			// isBatchPoster[addr], mainnet SequencerInbox slot 3
			name:      "slot3",
			recipient: common.HexToAddress("0xC1b634853Cb333D3aD8663715b08f41A3Aec47cc"),
			slot:      3,
			want:      common.HexToHash("0xa10aa54071443520884ed767b0684edf43acec528b7da83ab38ce60126562660"),
		},
		{
			// allowedContracts[msg.sender], slot 1
			name:      "slot1",
			recipient: common.HexToAddress("0x1c479675ad559DC151F6Ec7ed3FbF8ceE79582B6"),
			slot:      1,
			want:      common.HexToHash("0xe85fd79f89ff278fc57d40aecb7947873df9f0beac531c8f71a98f630e1eab62"),
		},
		{
			// allowedRefundees[refundee], slot 2
			name:      "slot2",
			recipient: common.HexToAddress("0xC1b634853Cb333D3aD8663715b08f41A3Aec47cc"),
			slot:      2,
			want:      common.HexToHash("0x7686888b19bb7b75e46bb1aa328b65150743f4899443d722f0adf8e252ccda41"),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveMappingKey(tc.recipient, tc.slot)
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("DeriveMappingKey(%v, %d) = %v, want %v", tc.recipient, tc.slot, got, tc.want)
			}
		})
	}
}

func TestDeriveMappingKeyInjective(t *testing.T) {
	seen := make(map[common.Hash]string)
	for i := 0; i < 64; i++ {
		var addr common.Address
		addr[19] = byte(i)
		for slot := uint64(0); slot < 16; slot++ {
			key := DeriveMappingKey(addr, slot)
			if prev, ok := seen[key]; ok {
				t.Fatalf("collision between %s and (%v, %d)", prev, addr, slot)
			}
			seen[key] = addr.Hex()
			if key != DeriveMappingKey(addr, slot) {
				t.Fatalf("derivation not deterministic for (%v, %d)", addr, slot)
			}
		}
	}
}

func TestDeriveOffsetKey(t *testing.T) {
	base := common.FromHex("0xdeadbeef")
	zero, err := DeriveOffsetKey(base, 0)
	if err != nil {
		t.Fatal(err)
	}
	if zero != crypto.Keccak256Hash(base) {
		t.Errorf("offset 0 must equal keccak256(base): got %v", zero)
	}

	for _, offset := range []uint64{1, 2, 31, 255, 1 << 40} {
		got, err := DeriveOffsetKey(base, offset)
		if err != nil {
			t.Fatal(err)
		}
		want := new(big.Int).SetBytes(crypto.Keccak256(base))
		want.Add(want, new(big.Int).SetUint64(offset))
		if got != common.BytesToHash(want.Bytes()) {
			t.Errorf("DeriveOffsetKey(base, %d) = %v, want %v", offset, got, common.BytesToHash(want.Bytes()))
		}
	}
}
