// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package circuit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func paddedIdentity(identity string, width int) []byte {
	data := make([]byte, width)
	copy(data, identity)
	return data
}

func TestTrimIdentityPadding(t *testing.T) {
	wallet := testDestination // 46 bytes
	require.Len(t, []byte(wallet), walletIdentityLen)
	contract := "neutron1" + strings.Repeat("q", contractIdentityLen-8)

	for _, tc := range []struct {
		name     string
		data     []byte
		contract bool
		want     []byte
	}{
		{
			name: "wallet padded to word boundary",
			data: paddedIdentity(wallet, 64),
			want: []byte(wallet),
		},
		{
			name: "wallet without padding",
			data: []byte(wallet),
			want: []byte(wallet),
		},
		{
			name:     "contract padded",
			data:     paddedIdentity(contract, 96),
			contract: true,
			want:     []byte(contract),
		},
		{
			name: "shorter than floor stays intact",
			data: []byte("cosmos1short"),
			want: []byte("cosmos1short"),
		},
		{
			name: "interior zeros survive",
			data: append(append([]byte(wallet), 0x00, 'x'), 0x00, 0x00),
			want: append([]byte(wallet), 0x00, 'x'),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimIdentityPadding(tc.data, tc.contract)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("TrimIdentityPadding(%q) = %q, want %q", tc.data, got, tc.want)
			}
		})
	}
}

func TestDecodeIdentity(t *testing.T) {
	got, err := DecodeIdentity(paddedIdentity(testDestination, 64), false)
	require.NoError(t, err)
	require.Equal(t, testDestination, got)

	_, err = DecodeIdentity([]byte{0xc3, 0x28}, false)
	require.ErrorIs(t, err, ErrInvalidRecipientEncoding)
}
