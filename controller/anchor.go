// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package controller

import (
	"context"

	"github.com/coprocessor-labs/stateproof/zkstate"
)

// AnchorReader resolves the most recent trust anchor for a domain. The
// anchor comes from the domain's header validator, which this pipeline
// treats as an authoritative oracle; a nil anchor with nil error means
// the domain has no validated block yet.
type AnchorReader interface {
	LatestAnchor(ctx context.Context, domain string) (*zkstate.TrustAnchor, error)
}

// StaticAnchorReader serves one fixed anchor, for tooling and tests.
type StaticAnchorReader struct {
	Anchor zkstate.TrustAnchor
}

func (r *StaticAnchorReader) LatestAnchor(_ context.Context, domain string) (*zkstate.TrustAnchor, error) {
	if domain != r.Anchor.Domain {
		return nil, nil
	}
	anchor := r.Anchor
	return &anchor, nil
}
