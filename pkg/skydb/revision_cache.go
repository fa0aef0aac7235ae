package skydb

import (
	"sync"

	"github.com/skynetlabs/go-skydb/pkg/registry"
	"github.com/skynetlabs/go-skydb/pkg/skydb/status"
)

// revisionCache tracks the last known revision per (owner, data key)
// pair for the lifetime of its owning DB.
//
// A pair with no entry is "unknown", conceptually revision -1: the
// first reservation for it yields revision 0. The map itself is
// guarded by one mutex; each pair carries its own mutex so writers on
// unrelated pairs never serialize each other.
type revisionCache struct {
	mu    sync.Mutex
	pairs map[cacheKey]*cachedRevision
}

type cacheKey struct {
	owner   registry.PublicKey
	dataKey string
}

type cachedRevision struct {
	mu       sync.Mutex
	known    bool
	revision uint64
}

func newRevisionCache() *revisionCache {
	return &revisionCache{
		pairs: make(map[cacheKey]*cachedRevision),
	}
}

func (c *revisionCache) pair(owner registry.PublicKey, dataKey string) *cachedRevision {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{owner: owner, dataKey: dataKey}
	entry, ok := c.pairs[key]
	if !ok {
		entry = &cachedRevision{}
		c.pairs[key] = entry
	}
	return entry
}

// reserve atomically increments the cached revision and returns the
// reserved value. Concurrent callers for the same pair observe
// strictly increasing reservations, never the same one.
func (c *revisionCache) reserve(owner registry.PublicKey, dataKey string) (uint64, error) {
	entry := c.pair(owner, dataKey)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.known {
		entry.known = true
		entry.revision = 0
		return 0, nil
	}
	if entry.revision == registry.MaxRevision {
		return 0, status.ErrRevisionOverflow.WrapMessage("data key %q", dataKey)
	}
	entry.revision++
	return entry.revision, nil
}

// rollback undoes a prior reserve after a failed write. It is never
// used to discover a revision.
func (c *revisionCache) rollback(owner registry.PublicKey, dataKey string) {
	entry := c.pair(owner, dataKey)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.known {
		return
	}
	if entry.revision == 0 {
		entry.known = false
		return
	}
	entry.revision--
}

// observe records a revision reported by the registry. A cached value
// higher than the reported one means the registry went backwards: the
// cache is left untouched and a consistency error raised. Deletion is
// a valid revision advance, so deleted entries are observed too.
func (c *revisionCache) observe(owner registry.PublicKey, dataKey string, revision uint64) error {
	entry := c.pair(owner, dataKey)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.known && entry.revision > revision {
		return status.ErrHigherRevisionCached.WrapMessage(
			"data key %q: cached revision %d, registry returned %d", dataKey, entry.revision, revision)
	}
	entry.known = true
	entry.revision = revision
	return nil
}

// revision reports the cached revision for a pair, if any
func (c *revisionCache) revision(owner registry.PublicKey, dataKey string) (uint64, bool) {
	entry := c.pair(owner, dataKey)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.revision, entry.known
}
