// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package controller

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/coprocessor-labs/stateproof/util/testhelpers"
	"github.com/coprocessor-labs/stateproof/zkstate"
	"github.com/coprocessor-labs/stateproof/zkutil"
)

type stubProofReader struct {
	calls  int
	result *zkstate.AccountResult
	err    error

	gotAccount common.Address
	gotKey     common.Hash
	gotBlock   uint64
}

func (r *stubProofReader) GetProof(_ context.Context, account common.Address, key common.Hash, blockNumber uint64) (*zkstate.AccountResult, error) {
	r.calls++
	r.gotAccount = account
	r.gotKey = key
	r.gotBlock = blockNumber
	if r.err != nil {
		return nil, r.err
	}
	result := *r.result
	return &result, nil
}

func testConfigFetcher() *Config {
	config := DefaultConfig
	return &config
}

func testRequest() *Request {
	return &Request{
		Token:       common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		Depositor:   common.HexToAddress("0xC1b634853Cb333D3aD8663715b08f41A3Aec47cc"),
		Destination: "neutron1qqmr29hdvsmgfrtphvnvhme2qj5v2y0s2vpv9j",
	}
}

func TestBuildWitnesses(t *testing.T) {
	anchor := zkstate.TrustAnchor{
		Domain:      DefaultConfig.Domain,
		StateRoot:   testhelpers.RandomHash(),
		BlockNumber: 19_443_021,
	}
	proofs := &stubProofReader{result: &zkstate.AccountResult{
		Address:      testRequest().Token,
		StorageProof: []zkstate.StorageResult{{}},
	}}
	builder := NewWitnessBuilder(testConfigFetcher, &StaticAnchorReader{Anchor: anchor}, proofs)

	witnesses, err := builder.BuildWitnesses(context.Background(), testRequest())
	testhelpers.RequireImpl(t, err)
	require.Len(t, witnesses, 2)

	// fixed order: state proof first, destination identity second
	sp, ok := witnesses[0].AsStateProof()
	require.True(t, ok)
	require.Equal(t, anchor.Domain, sp.Domain)
	require.Equal(t, anchor.StateRoot, sp.StateRoot)
	require.Equal(t, anchor.BlockNumber, sp.BlockNumber)

	data, ok := witnesses[1].AsData()
	require.True(t, ok)
	require.Equal(t, testRequest().Destination, string(data))

	// the fetch must target the anchor height and the derived key
	require.Equal(t, anchor.BlockNumber, proofs.gotBlock)
	require.Equal(t, testRequest().Token, proofs.gotAccount)
	require.Equal(t, zkutil.DeriveMappingKey(testRequest().Depositor, DefaultConfig.SlotIndex), proofs.gotKey)

	// the recipient is stamped into the encoded bundle
	decoded, err := zkstate.DecodeAccountResult(sp.Proof)
	testhelpers.RequireImpl(t, err)
	require.Equal(t, testRequest().Depositor, decoded.Recipient)
}

func TestBuildWitnessesNoAnchor(t *testing.T) {
	anchor := zkstate.TrustAnchor{Domain: "some-other-domain"}
	builder := NewWitnessBuilder(testConfigFetcher, &StaticAnchorReader{Anchor: anchor}, &stubProofReader{})

	_, err := builder.BuildWitnesses(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrDomainUnavailable)
}

func TestBuildWitnessesFetchError(t *testing.T) {
	anchor := zkstate.TrustAnchor{Domain: DefaultConfig.Domain}
	proofs := &stubProofReader{err: errors.Wrap(ErrProofFetchFailed, "connection refused")}
	builder := NewWitnessBuilder(testConfigFetcher, &StaticAnchorReader{Anchor: anchor}, proofs)

	_, err := builder.BuildWitnesses(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrProofFetchFailed)
}
