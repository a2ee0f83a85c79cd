// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	flag "github.com/spf13/pflag"

	"github.com/coprocessor-labs/stateproof/circuit"
	"github.com/coprocessor-labs/stateproof/cmd/util"
	"github.com/coprocessor-labs/stateproof/controller"
	"github.com/coprocessor-labs/stateproof/zkstate"
)

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LvlInfo, true)))

	args := os.Args
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: prooftool [fetch|run] ...")
		os.Exit(2)
	}

	var err error
	switch strings.ToLower(args[1]) {
	case "fetch":
		err = startFetch(args[2:])
	case "run":
		err = startRun(args[2:])
	default:
		err = fmt.Errorf("unknown tool '%s', valid tools are 'fetch' and 'run'", args[1])
	}
	if err != nil {
		log.Error("prooftool failed", "err", err)
		os.Exit(1)
	}
}

// prooftool fetch: build a witness bundle against a fixed trust anchor.

type FetchConfig struct {
	RPCURL      string            `koanf:"rpc-url"`
	Token       string            `koanf:"token"`
	Depositor   string            `koanf:"depositor"`
	Destination string            `koanf:"destination"`
	StateRoot   string            `koanf:"state-root"`
	BlockNumber uint64            `koanf:"block-number"`
	OutFile     string            `koanf:"out-file"`
	ConfFile    string            `koanf:"conf-file"`
	Controller  controller.Config `koanf:"controller"`
}

func parseFetchConfig(args []string) (*FetchConfig, error) {
	f := flag.NewFlagSet("fetch", flag.ContinueOnError)
	f.String("rpc-url", "", "source chain RPC endpoint")
	f.String("token", "", "token contract address holding the balances mapping")
	f.String("depositor", "", "depositor address whose balance is proven")
	f.String("destination", "", "destination identity receiving the mint")
	f.String("state-root", "", "trusted state root the proof must verify against")
	f.Uint64("block-number", 0, "block height of the trust anchor")
	f.String("out-file", "witnesses.bin", "file the witness bundle is written to")
	f.String("conf-file", "", "JSON configuration file")
	controller.ConfigAddOptions("controller", f)

	k, err := util.BeginCommonParse(f, args)
	if err != nil {
		return nil, err
	}
	var config FetchConfig
	config.Controller = controller.DefaultConfig
	if err := util.EndCommonParse(k, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func startFetch(args []string) error {
	config, err := parseFetchConfig(args)
	if err != nil {
		return err
	}
	if config.RPCURL == "" {
		return fmt.Errorf("--rpc-url is required")
	}

	ctx := context.Background()
	client, err := rpc.DialContext(ctx, config.RPCURL)
	if err != nil {
		return err
	}
	defer client.Close()

	proofs, err := controller.NewRPCProofReader(client, &config.Controller)
	if err != nil {
		return err
	}
	anchors := &controller.StaticAnchorReader{Anchor: zkstate.TrustAnchor{
		Domain:      config.Controller.Domain,
		StateRoot:   common.HexToHash(config.StateRoot),
		BlockNumber: config.BlockNumber,
	}}
	builder := controller.NewWitnessBuilder(func() *controller.Config { return &config.Controller }, anchors, proofs)

	witnesses, err := builder.BuildWitnesses(ctx, &controller.Request{
		Token:       common.HexToAddress(config.Token),
		Depositor:   common.HexToAddress(config.Depositor),
		Destination: config.Destination,
	})
	if err != nil {
		return err
	}
	encoded, err := zkstate.EncodeWitnesses(witnesses)
	if err != nil {
		return err
	}
	if err := os.WriteFile(config.OutFile, encoded, 0o644); err != nil {
		return err
	}
	log.Info("witness bundle written", "file", config.OutFile, "bytes", len(encoded))
	return nil
}

// prooftool run: execute the trusted pipeline on a bundle, locally.

type RunConfig struct {
	WitnessFile string `koanf:"witness-file"`
	ConfFile    string `koanf:"conf-file"`
}

func parseRunConfig(args []string) (*RunConfig, error) {
	f := flag.NewFlagSet("run", flag.ContinueOnError)
	f.String("witness-file", "witnesses.bin", "witness bundle to verify")
	f.String("conf-file", "", "JSON configuration file")

	k, err := util.BeginCommonParse(f, args)
	if err != nil {
		return nil, err
	}
	var config RunConfig
	if err := util.EndCommonParse(k, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func startRun(args []string) error {
	config, err := parseRunConfig(args)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(config.WitnessFile)
	if err != nil {
		return err
	}
	witnesses, err := zkstate.DecodeWitnesses(raw)
	if err != nil {
		return err
	}

	output, err := circuit.Run(circuit.MainnetParams, witnesses)
	if err != nil {
		log.Warn("verification failed, committing rejection", "kind", circuit.ErrorKind(err), "err", err)
		output = circuit.CommitRejection(circuit.AnchorRoot(witnesses), err)
	}
	fmt.Println(hexutil.Encode(output))
	return nil
}
