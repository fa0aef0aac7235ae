package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skynetlabs/go-skydb/internal/rand"
	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

func TestEntry_Validate(t *testing.T) {
	e := Entry{DataKey: "app", Data: rand.Bytes(skylink.RawSize), Revision: 0}
	require.NoError(t, e.Validate())

	t.Run("empty data key", func(t *testing.T) {
		bad := e
		bad.DataKey = ""
		err := bad.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrInvalidDataKey))
	})

	t.Run("oversized data", func(t *testing.T) {
		bad := e
		bad.Data = rand.Bytes(MaxEntrySize + 1)
		err := bad.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrEntryTooLarge))
		assert.Contains(t, err.Error(), "71")
	})

	t.Run("maximum size is allowed", func(t *testing.T) {
		ok := e
		ok.Data = rand.Bytes(MaxEntrySize)
		require.NoError(t, ok.Validate())
	})
}

func TestEntry_IsDeleted(t *testing.T) {
	assert.True(t, Entry{DataKey: "app", Data: DeletedEntryData}.IsDeleted())
	assert.True(t, Entry{DataKey: "app", Data: make([]byte, skylink.RawSize)}.IsDeleted())

	almost := make([]byte, skylink.RawSize)
	almost[0] = 1
	assert.False(t, Entry{DataKey: "app", Data: almost}.IsDeleted())

	// the sentinel is length-sensitive
	assert.False(t, Entry{DataKey: "app", Data: make([]byte, skylink.RawSize-1)}.IsDeleted())
}

func TestNewEntry(t *testing.T) {
	link := skylink.MustFromBytes(rand.Bytes(skylink.RawSize))
	e := NewEntry("app", link, 3)
	assert.Equal(t, "app", e.DataKey)
	assert.Equal(t, link[:], e.Data)
	assert.Equal(t, uint64(3), e.Revision)

	// the entry owns its payload
	e.Data[0] ^= 0xff
	assert.NotEqual(t, link[0], e.Data[0])
	assert.Equal(t, link, skylink.MustFromBytes(link[:]))
}
