package skydb

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry"
	"github.com/skynetlabs/go-skydb/pkg/skydb/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// GetEntryData returns the raw registry payload stored under the
// owner's data key, without resolving it as a content address. Absent
// and deleted entries both yield nil data with no error.
func (db *DB) GetEntryData(ctx context.Context, owner registry.PublicKey, dataKey string) ([]byte, error) {
	entry, found, err := db.fetchEntry(ctx, owner, dataKey)
	if err != nil || !found {
		return nil, err
	}
	if entry.IsDeleted() {
		return nil, nil
	}
	data := make([]byte, len(entry.Data))
	copy(data, entry.Data)
	return data, nil
}

// SetEntryData stores raw bytes directly in the registry entry at the
// next revision. Data equal to the deletion sentinel is rejected
// unless deletion semantics are explicitly authorized.
func (db *DB) SetEntryData(ctx context.Context, sk registry.PrivateKey, dataKey string, data []byte, opts ...CallOption) error {
	o := db.mergeCallOptions(opts)

	// synchronous validation, before any I/O
	if err := sk.Validate(); err != nil {
		return err
	}
	entry := registry.Entry{DataKey: dataKey, Data: data}
	if err := entry.Validate(); err != nil {
		return errors.New("skydb: invalid entry data").Wrap(status.ErrValidation.Wrap(err))
	}
	if !o.AllowDeletionSentinel && bytes.Equal(data, registry.DeletedEntryData) {
		return status.ErrDeletionSentinel.WrapMessage("data key %q", dataKey)
	}
	owner := sk.PublicKey()

	revision, err := db.cache.reserve(owner, dataKey)
	if err != nil {
		return err
	}
	entry.Revision = revision

	if err := db.registry.SetEntry(ctx, sk, entry); err != nil {
		db.cache.rollback(owner, dataKey)
		return errors.Newf("skydb: set entry %q", dataKey).Wrap(err)
	}

	db.l.Debug("stored entry data",
		zap.String("data_key", dataKey),
		zap.Uint64("revision", revision),
		zap.Int("size", len(data)),
		zap.Bool("deleted", entry.IsDeleted()),
	)
	return nil
}

// RawBytesResponse is the result of a GetRawBytes call
type RawBytesResponse struct {
	// Data is the downloaded content, nil when no data exists or when
	// Cached is set
	Data []byte

	// DataLink is the content address the registry entry references
	DataLink skylink.Skylink

	// Cached reports that the caller-supplied data link is still
	// current, so the download was skipped
	Cached bool
}

// GetRawBytes resolves the owner's data key to a content address and
// downloads the referenced content without decoding it
func (db *DB) GetRawBytes(ctx context.Context, owner registry.PublicKey, dataKey string, opts ...CallOption) (RawBytesResponse, error) {
	o := db.mergeCallOptions(opts)

	link, found, err := db.resolveDataLink(ctx, owner, dataKey)
	if err != nil || !found {
		return RawBytesResponse{}, err
	}

	if o.CachedDataLink != nil && *o.CachedDataLink == link {
		return RawBytesResponse{DataLink: link, Cached: true}, nil
	}

	raw, err := db.downloader.FileContent(ctx, link, DownloadOptions{})
	if err != nil {
		return RawBytesResponse{}, errors.Newf("skydb: download %s", link).Wrap(err)
	}
	return RawBytesResponse{Data: raw, DataLink: link}, nil
}

// DeleteJSON marks the owner's data key as deleted. Deletion is a
// registry write like any other: the entry advances one revision and
// carries the deletion sentinel in place of a content address.
func (db *DB) DeleteJSON(ctx context.Context, sk registry.PrivateKey, dataKey string, opts ...CallOption) error {
	return db.deleteEntry(ctx, sk, dataKey, opts)
}

// DeleteEntryData marks the owner's data key as deleted
func (db *DB) DeleteEntryData(ctx context.Context, sk registry.PrivateKey, dataKey string, opts ...CallOption) error {
	return db.deleteEntry(ctx, sk, dataKey, opts)
}

func (db *DB) deleteEntry(ctx context.Context, sk registry.PrivateKey, dataKey string, opts []CallOption) error {
	sentinel := make([]byte, len(registry.DeletedEntryData))
	opts = append(opts[:len(opts):len(opts)], WithAllowDeletionSentinel())
	return db.SetEntryData(ctx, sk, dataKey, sentinel, opts...)
}
