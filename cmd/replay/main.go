// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

// The replay binary is the trusted entry point: it reads a witness
// bundle through zkvmio, runs the circuit and commits the public output.
// A failed verification still commits a rejection bound to the claimed
// trust anchor; only a host I/O failure aborts without committing.
package main

import (
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/coprocessor-labs/stateproof/circuit"
	"github.com/coprocessor-labs/stateproof/zkstate"
	"github.com/coprocessor-labs/stateproof/zkvmio"
)

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LvlInfo, false)))

	raw, err := zkvmio.ReadWitnessBundle()
	if err != nil {
		log.Crit("could not read witness bundle", "err", err)
	}

	params := circuit.MainnetParams
	output := run(params, raw)
	if err := zkvmio.CommitOutput(output); err != nil {
		log.Crit("could not commit output", "err", err)
	}
}

func run(params circuit.Params, raw []byte) []byte {
	witnesses, err := zkstate.DecodeWitnesses(raw)
	if err != nil {
		log.Error("witness bundle did not decode", "err", err)
		return circuit.CommitRejection(circuit.AnchorRoot(nil), circuit.ErrMalformedWitnessSet)
	}

	output, err := circuit.Run(params, witnesses)
	if err != nil {
		log.Error("verification failed", "err", err, "kind", circuit.ErrorKind(err))
		return circuit.CommitRejection(circuit.AnchorRoot(witnesses), err)
	}
	log.Info("verification succeeded", "outputBytes", len(output))
	return output
}
