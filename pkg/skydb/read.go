package skydb

import (
	"context"

	"go.uber.org/zap"

	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry"
	regstatus "github.com/skynetlabs/go-skydb/pkg/registry/status"
	"github.com/skynetlabs/go-skydb/pkg/skydb/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// fetchEntry runs the shared head of every read: fetch the signed
// entry, classify absence, and fold the reported revision into the
// cache. Collaborator failures propagate without touching the cache.
// found is false when no entry exists; the deleted classification is
// left to callers, after the cache update.
func (db *DB) fetchEntry(ctx context.Context, owner registry.PublicKey, dataKey string) (entry registry.SignedEntry, found bool, err error) {
	entry, err = db.registry.GetEntry(ctx, owner, dataKey)
	if err != nil {
		if errors.Is(err, regstatus.ErrNotFound) {
			return registry.SignedEntry{}, false, nil
		}
		return registry.SignedEntry{}, false, errors.Newf("skydb: get entry %q", dataKey).Wrap(err)
	}

	// the cache advances even when the entry marks a deletion;
	// deletion is a valid revision advance
	if err = db.cache.observe(owner, dataKey, entry.Revision); err != nil {
		return registry.SignedEntry{}, false, err
	}

	db.l.Debug("fetched registry entry",
		zap.String("data_key", dataKey),
		zap.Uint64("revision", entry.Revision),
		zap.Bool("deleted", entry.IsDeleted()),
	)
	return entry, true, nil
}

// resolveDataLink runs the read decision table up to content-address
// resolution: found is false for absent and deleted entries alike.
func (db *DB) resolveDataLink(ctx context.Context, owner registry.PublicKey, dataKey string) (link skylink.Skylink, found bool, err error) {
	entry, found, err := db.fetchEntry(ctx, owner, dataKey)
	if err != nil || !found {
		return skylink.Empty, false, err
	}
	if entry.IsDeleted() {
		return skylink.Empty, false, nil
	}

	link, err = skylink.DecodeEntryData(entry.Data)
	if err != nil {
		return skylink.Empty, false, errors.Newf("skydb: entry %q payload is not a content address", dataKey).Wrap(status.ErrParse.Wrap(err))
	}
	return link, true, nil
}
