// Package status exports errors produced by the registry package.
package status

import (
	"github.com/skynetlabs/go-skydb/pkg/errors"
)

var (
	// ErrNotFound indicates no entry exists for the requested
	// (public key, data key) pair
	ErrNotFound = errors.New("registry entry not found")

	// ErrBadSignature indicates an entry whose signature does not
	// verify against its owner public key
	ErrBadSignature = errors.New("registry entry signature verification failed")

	// ErrLowerRevision indicates a write at a revision lower than or
	// equal to the stored one
	ErrLowerRevision = errors.New("registry entry revision is not higher than the stored revision")

	// ErrEntryTooLarge indicates entry data exceeding the maximum
	// registry payload size
	ErrEntryTooLarge = errors.New("registry entry data exceeds the maximum entry size")

	// ErrInvalidKey indicates a malformed public or private key
	ErrInvalidKey = errors.New("invalid registry key")

	// ErrInvalidDataKey indicates an empty or otherwise unusable data key
	ErrInvalidDataKey = errors.New("invalid data key")
)
