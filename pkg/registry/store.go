package registry

import (
	"context"
)

// Store implementations know how to publish and retrieve signed
// registry entries.
//
// Typically this is a remote registry behind some transport.
// Implementations are responsible for signature handling: GetEntry
// must verify the returned entry before handing it out, and SetEntry
// signs on behalf of the caller. Retries, timeouts and backoff belong
// to the implementation, never to callers.
type Store interface {
	// GetEntry returns the current signed entry for the pair, or
	// status.ErrNotFound when no entry exists
	GetEntry(ctx context.Context, pk PublicKey, dataKey string) (SignedEntry, error)

	// SetEntry signs and publishes an entry. Implementations reject
	// writes whose revision is not strictly greater than the stored
	// one with status.ErrLowerRevision.
	SetEntry(ctx context.Context, sk PrivateKey, e Entry) error
}
