package skydb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry"
	"github.com/skynetlabs/go-skydb/pkg/skydb/status"
)

func testOwner(t *testing.T) registry.PublicKey {
	t.Helper()
	pk, _, err := registry.GenerateKeyPair()
	require.NoError(t, err)
	return pk
}

func TestRevisionCache_ReserveSequence(t *testing.T) {
	cache := newRevisionCache()
	owner := testOwner(t)

	// unknown pair: first reservation is revision 0
	revision, err := cache.reserve(owner, "app")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), revision)

	for want := uint64(1); want < 5; want++ {
		revision, err = cache.reserve(owner, "app")
		require.NoError(t, err)
		assert.Equal(t, want, revision)
	}
}

func TestRevisionCache_RollbackRestoresExactly(t *testing.T) {
	cache := newRevisionCache()
	owner := testOwner(t)

	// rollback from revision 0 returns the pair to unknown
	_, err := cache.reserve(owner, "app")
	require.NoError(t, err)
	cache.rollback(owner, "app")
	_, known := cache.revision(owner, "app")
	assert.False(t, known)

	// and the next reservation is revision 0 again
	revision, err := cache.reserve(owner, "app")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), revision)

	// rollback from a higher revision steps back by one
	revision, err = cache.reserve(owner, "app")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), revision)
	cache.rollback(owner, "app")
	got, known := cache.revision(owner, "app")
	assert.True(t, known)
	assert.Equal(t, uint64(0), got)
}

func TestRevisionCache_Observe(t *testing.T) {
	cache := newRevisionCache()
	owner := testOwner(t)

	require.NoError(t, cache.observe(owner, "app", 7))
	got, known := cache.revision(owner, "app")
	require.True(t, known)
	assert.Equal(t, uint64(7), got)

	// equal and higher revisions are fine
	require.NoError(t, cache.observe(owner, "app", 7))
	require.NoError(t, cache.observe(owner, "app", 9))

	// a lower revision is a consistency violation, cache untouched
	err := cache.observe(owner, "app", 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrHigherRevisionCached))
	assert.True(t, errors.Is(err, status.ErrConsistency))
	got, _ = cache.revision(owner, "app")
	assert.Equal(t, uint64(9), got)
}

func TestRevisionCache_ReserveOverflow(t *testing.T) {
	cache := newRevisionCache()
	owner := testOwner(t)

	require.NoError(t, cache.observe(owner, "app", registry.MaxRevision))

	_, err := cache.reserve(owner, "app")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrRevisionOverflow))

	// the cache is left unchanged
	got, known := cache.revision(owner, "app")
	require.True(t, known)
	assert.Equal(t, registry.MaxRevision, got)
}

func TestRevisionCache_ConcurrentReservesAreDistinct(t *testing.T) {
	cache := newRevisionCache()
	owner := testOwner(t)

	const writers = 64
	revisions := make([]uint64, writers)

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			revision, err := cache.reserve(owner, "app")
			require.NoError(t, err)
			revisions[i] = revision
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, writers)
	for _, revision := range revisions {
		assert.False(t, seen[revision], "revision %d reserved twice", revision)
		seen[revision] = true
		assert.Less(t, revision, uint64(writers))
	}
}

func TestRevisionCache_PairsAreIndependent(t *testing.T) {
	cache := newRevisionCache()
	ownerA := testOwner(t)
	ownerB := testOwner(t)

	require.NoError(t, cache.observe(ownerA, "app", 10))

	revision, err := cache.reserve(ownerA, "other")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), revision)

	revision, err = cache.reserve(ownerB, "app")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), revision)
}
