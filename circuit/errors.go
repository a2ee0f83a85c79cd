// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package circuit

import "github.com/pkg/errors"

// Every failure of the trusted pipeline is one of these kinds. They are
// sentinels so callers can match with errors.Is; the circuit must never
// abort uncatchably on adversarial input, only return one of these.
var (
	ErrMalformedWitnessSet      = errors.New("malformed witness set")
	ErrProofDecode              = errors.New("proof decode failed")
	ErrInvalidRecipientEncoding = errors.New("invalid recipient encoding")
	ErrStorageKeyMismatch       = errors.New("storage key mismatch")
	ErrProofVerification        = errors.New("proof verification failed")
	ErrValueOverflow            = errors.New("value overflows 128 bits")
	ErrEncoding                 = errors.New("message encoding failed")
)

// ErrorKind returns the stable identifier committed in rejection outputs.
// It must stay deterministic across releases: the settlement layer keys
// replay decisions off committed bytes.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedWitnessSet):
		return "malformed_witness_set"
	case errors.Is(err, ErrProofDecode):
		return "proof_decode_error"
	case errors.Is(err, ErrInvalidRecipientEncoding):
		return "invalid_recipient_encoding"
	case errors.Is(err, ErrStorageKeyMismatch):
		return "storage_key_mismatch"
	case errors.Is(err, ErrProofVerification):
		return "proof_verification_failed"
	case errors.Is(err, ErrValueOverflow):
		return "value_overflow"
	case errors.Is(err, ErrEncoding):
		return "encoding_error"
	default:
		return "unknown"
	}
}
