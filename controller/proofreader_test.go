// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package controller

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	calls    int
	response string
	err      error

	sawDeadline bool
}

func (c *fakeCaller) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	c.calls++
	if _, ok := ctx.Deadline(); ok {
		c.sawDeadline = true
	}
	if method != "eth_getProof" {
		return errors.Errorf("unexpected method %s", method)
	}
	if c.err != nil {
		return c.err
	}
	return json.Unmarshal([]byte(c.response), result)
}

const fakeProofResponse = `{
	"address": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
	"accountProof": ["0xf90211a0ff"],
	"balance": "0x0",
	"codeHash": "0xd0a06b12ac47863b5c7be4185c2deaad1c61557033f56c7d4ea74429cbb25e23",
	"nonce": "0x1",
	"storageHash": "0x3b8b8b72c457e74510d7ac2d3d77a9ce0d4bcf31ae93e24e77b5f59a3c4a2e27",
	"storageProof": [{"key": "0x01", "value": "0x3e8", "proof": ["0xe2a0beef"]}]
}`

func TestRPCProofReaderCaches(t *testing.T) {
	caller := &fakeCaller{response: fakeProofResponse}
	config := DefaultConfig
	reader, err := NewRPCProofReader(caller, &config)
	require.NoError(t, err)

	account := common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	key := common.HexToHash("0x01")

	first, err := reader.GetProof(context.Background(), account, key, 100)
	require.NoError(t, err)
	require.Equal(t, 1, caller.calls)
	require.True(t, caller.sawDeadline)

	second, err := reader.GetProof(context.Background(), account, key, 100)
	require.NoError(t, err)
	require.Equal(t, 1, caller.calls, "same height must be served from cache")
	require.Equal(t, first, second)

	_, err = reader.GetProof(context.Background(), account, key, 101)
	require.NoError(t, err)
	require.Equal(t, 2, caller.calls, "different height must refetch")
}

func TestRPCProofReaderErrors(t *testing.T) {
	caller := &fakeCaller{err: errors.New("dial tcp: connection refused")}
	config := DefaultConfig
	config.Timeout = time.Millisecond
	reader, err := NewRPCProofReader(caller, &config)
	require.NoError(t, err)

	_, err = reader.GetProof(context.Background(), common.Address{}, common.Hash{}, 1)
	require.ErrorIs(t, err, ErrProofFetchFailed)
}

func TestRPCProofReaderRejectsEmptyStorageProof(t *testing.T) {
	caller := &fakeCaller{response: `{"address": "0x0000000000000000000000000000000000000000", "storageProof": []}`}
	config := DefaultConfig
	reader, err := NewRPCProofReader(caller, &config)
	require.NoError(t, err)

	_, err = reader.GetProof(context.Background(), common.Address{}, common.Hash{}, 1)
	require.ErrorIs(t, err, ErrProofFetchFailed)
}
