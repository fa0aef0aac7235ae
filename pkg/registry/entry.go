// Package registry implements the signed, revisioned registry entry
// model: a small mutable record mapping an (owner public key, data key)
// pair to an opaque payload, typically a skylink.
package registry

import (
	"bytes"
	"math"

	"github.com/skynetlabs/go-skydb/pkg/registry/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

const (
	// MaxEntrySize is the maximum length of a raw registry entry payload
	MaxEntrySize = 70

	// MaxRevision is the highest revision an entry may carry.
	// Incrementing past it is a precondition violation, not retried.
	MaxRevision = uint64(math.MaxUint64)
)

// DeletedEntryData is the deletion sentinel: an all-zero payload of
// skylink length, stored in place of a content address to mark logical
// deletion.
var DeletedEntryData = make([]byte, skylink.RawSize)

// Entry is a single registry record, before signing
type Entry struct {
	DataKey  string
	Data     []byte
	Revision uint64
}

// NewEntry builds a registry entry pointing at a skylink
func NewEntry(dataKey string, link skylink.Skylink, revision uint64) Entry {
	data := make([]byte, skylink.RawSize)
	copy(data, link[:])
	return Entry{
		DataKey:  dataKey,
		Data:     data,
		Revision: revision,
	}
}

// Validate checks the entry shape before any I/O is attempted
func (e Entry) Validate() error {
	if e.DataKey == "" {
		return status.ErrInvalidDataKey
	}
	if len(e.Data) > MaxEntrySize {
		return status.ErrEntryTooLarge.WrapMessage("got %d bytes, maximum is %d", len(e.Data), MaxEntrySize)
	}
	return nil
}

// IsDeleted tells whether the entry payload is the deletion sentinel,
// compared byte-for-byte
func (e Entry) IsDeleted() bool {
	return bytes.Equal(e.Data, DeletedEntryData)
}
