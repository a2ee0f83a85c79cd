// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package controller

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/coprocessor-labs/stateproof/zkstate"
)

// ProofReader fetches an EIP-1186 account/storage proof for an account at
// a block height.
type ProofReader interface {
	GetProof(ctx context.Context, account common.Address, key common.Hash, blockNumber uint64) (*zkstate.AccountResult, error)
}

type rpcCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

var _ rpcCaller = (*rpc.Client)(nil)

type proofCacheKey struct {
	account common.Address
	key     common.Hash
	block   uint64
}

// RPCProofReader fetches proofs over eth_getProof. Proofs are immutable
// for a given (account, key, height), so results are cached: repeated
// witness builds at a fixed height skip the network round-trip.
type RPCProofReader struct {
	client  rpcCaller
	timeout time.Duration
	cache   *lru.Cache[proofCacheKey, *zkstate.AccountResult]
}

func NewRPCProofReader(client rpcCaller, config *Config) (*RPCProofReader, error) {
	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[proofCacheKey, *zkstate.AccountResult](cacheSize)
	if err != nil {
		return nil, err
	}
	return &RPCProofReader{
		client:  client,
		timeout: config.Timeout,
		cache:   cache,
	}, nil
}

func (r *RPCProofReader) GetProof(ctx context.Context, account common.Address, key common.Hash, blockNumber uint64) (*zkstate.AccountResult, error) {
	cacheKey := proofCacheKey{account: account, key: key, block: blockNumber}
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result := new(zkstate.AccountResult)
	err := r.client.CallContext(ctx, result, "eth_getProof", account, []common.Hash{key}, hexutil.EncodeUint64(blockNumber))
	if err != nil {
		return nil, errors.Wrap(ErrProofFetchFailed, err.Error())
	}
	if len(result.StorageProof) == 0 {
		return nil, errors.Wrap(ErrProofFetchFailed, "response carries no storage proof")
	}
	log.Debug("fetched storage proof", "account", account, "key", key, "block", blockNumber,
		"accountNodes", len(result.AccountProof), "storageNodes", len(result.StorageProof[0].Proof))

	r.cache.Add(cacheKey, result)
	return result, nil
}
