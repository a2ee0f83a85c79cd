// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package controller

import (
	"time"

	flag "github.com/spf13/pflag"
)

type Config struct {
	Domain    string        `koanf:"domain"`
	SlotIndex uint64        `koanf:"slot-index"`
	Timeout   time.Duration `koanf:"timeout"`
	CacheSize int           `koanf:"cache-size"`
}

type ConfigFetcher func() *Config

var DefaultConfig = Config{
	Domain:    "ethereum-electra-alpha",
	SlotIndex: 9,
	Timeout:   10 * time.Second,
	CacheSize: 64,
}

func ConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".domain", DefaultConfig.Domain, "domain the trust anchor and proofs are requested for")
	f.Uint64(prefix+".slot-index", DefaultConfig.SlotIndex, "storage slot index of the token contract's balances mapping")
	f.Duration(prefix+".timeout", DefaultConfig.Timeout, "per-request timeout for proof fetches (0-disabled)")
	f.Int(prefix+".cache-size", DefaultConfig.CacheSize, "number of fetched proof bundles kept in the LRU cache")
}
