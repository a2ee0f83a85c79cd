// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

// Package zkvmio is the host boundary of the trusted computation: the
// replay binary reads its witness bundle and commits its public output
// only through this package. Inside a zkVM these map to guest syscalls;
// outside one, file and stdio backed stubs let the same binary replay a
// computation locally.
package zkvmio

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Environment variables selecting the local stub's endpoints. When unset
// the bundle is read from stdin and the commitment written to stdout.
const (
	WitnessFileEnv = "STATEPROOF_WITNESS_FILE"
	CommitFileEnv  = "STATEPROOF_COMMIT_FILE"
)

// ReadWitnessBundle returns the serialized witness list for this
// execution.
func ReadWitnessBundle() ([]byte, error) {
	if path := os.Getenv(WitnessFileEnv); path != "" {
		data, err := os.ReadFile(path)
		return data, errors.Wrap(err, "reading witness bundle")
	}
	data, err := io.ReadAll(os.Stdin)
	return data, errors.Wrap(err, "reading witness bundle from stdin")
}

// CommitOutput publishes the public output of the trusted computation.
// It is called exactly once per execution: either with an authorization
// commitment or with a rejection commitment.
func CommitOutput(output []byte) error {
	if path := os.Getenv(CommitFileEnv); path != "" {
		return errors.Wrap(os.WriteFile(path, output, 0o644), "writing commitment")
	}
	_, err := os.Stdout.Write(output)
	return errors.Wrap(err, "writing commitment to stdout")
}
