// Package status exports errors produced by the skydb package.
//
// Errors come in three categories, each a sentinel of its own:
// validation errors are raised synchronously before any I/O,
// consistency errors are fatal to the calling operation and leave the
// revision cache unchanged, and parse errors flag unexpected response
// shapes from collaborators. Concrete conditions wrap their category,
// so errors.Is works against either level.
package status

import (
	"github.com/skynetlabs/go-skydb/pkg/errors"
)

var (
	// ErrValidation is the category for malformed input, detected
	// before any I/O. Never retried.
	ErrValidation = errors.New("invalid input")

	// ErrConsistency is the category for revision cache violations
	ErrConsistency = errors.New("revision consistency violation")

	// ErrParse is the category for unexpected response shapes
	ErrParse = errors.New("unexpected response shape")
)

var (
	// ErrHigherRevisionCached indicates the registry returned an entry
	// at a lower revision than one already observed. The cache keeps
	// the higher value.
	ErrHigherRevisionCached = errors.New("a higher revision is already cached").Wrap(ErrConsistency)

	// ErrRevisionOverflow indicates a revision increment past the
	// maximum revision. Fatal, not retried.
	ErrRevisionOverflow = errors.New("revision increment exceeds the maximum revision").Wrap(ErrConsistency)

	// ErrDeletionSentinel indicates entry data equal to the deletion
	// sentinel written without explicit deletion semantics
	ErrDeletionSentinel = errors.New("entry data equals the deletion sentinel, use a delete operation instead").Wrap(ErrValidation)

	// ErrIncompleteUpload indicates an upload result missing its
	// skylink, merkle root or bitfield, or carrying inconsistent ones
	ErrIncompleteUpload = errors.New("upload did not return a complete content address").Wrap(ErrParse)

	// ErrNotObject indicates a downloaded JSON document whose top
	// level value is not an object
	ErrNotObject = errors.New("downloaded content is not a JSON object").Wrap(ErrParse)

	// ErrEnvelopeMissingPayload indicates an envelope bearing a
	// version but no payload field
	ErrEnvelopeMissingPayload = errors.New("JSON envelope carries no payload").Wrap(ErrParse)
)
