// Package skydb implements a mutable, versioned key-value layer on top
// of an immutable content-addressed storage network.
//
// Every value lives behind a signed registry entry owned by an ed25519
// key pair. Writes are optimistic: the DB reserves the next revision
// from its in-process cache before any I/O, uploads the content, points
// the registry entry at it, and rolls the reservation back if anything
// fails. Reads cross-check the revision reported by the registry
// against the cache and refuse to go backwards.
//
// The DB performs no retries and no timeouts; those belong to the
// registry, uploader and downloader collaborators it composes.
package skydb

import (
	"go.uber.org/zap"

	"github.com/skynetlabs/go-skydb/pkg/registry"
)

// DB is a SkyDB client. All state it owns is the revision cache, whose
// lifetime equals the DB's.
type DB struct {
	registry   registry.Store
	uploader   Uploader
	downloader Downloader

	cache        *revisionCache
	l            *zap.Logger
	callDefaults []CallOption
}

// New composes a DB from its collaborators
func New(reg registry.Store, uploader Uploader, downloader Downloader, opts ...Option) *DB {
	db := &DB{
		registry:   reg,
		uploader:   uploader,
		downloader: downloader,
		cache:      newRevisionCache(),
		l:          zap.NewNop(),
	}
	for _, apply := range opts {
		apply(db)
	}
	return db
}

// CachedRevision reports the last revision this DB observed or wrote
// for a pair, if any
func (db *DB) CachedRevision(owner registry.PublicKey, dataKey string) (uint64, bool) {
	return db.cache.revision(owner, dataKey)
}
