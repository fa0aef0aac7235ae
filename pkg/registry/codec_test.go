package registry

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference vectors, blake2b-256 over the length-prefixed encoding
const (
	testEntryDataHex = "00009014a3a6de6bd032b49a2d072716a72bbb20bbf8c44b6acad3f09cdf462d1621"

	wantHashedDataKey = "7c96a0537ab2aaac9cfe0eca217732f4e10791625b4ab4c17e4d91c8078713b9"
	wantEntryHash     = "140f0aafc9f038d249ce77e3b8102987b2942e16336223f8928a0bbcf444af53"
)

func TestHashDataKey(t *testing.T) {
	hashed := HashDataKey("app")
	assert.Equal(t, wantHashedDataKey, hex.EncodeToString(hashed[:]))

	// the hash covers the length prefix, not just the bytes
	other := HashDataKey("app\x00")
	assert.NotEqual(t, hashed, other)
}

func TestHashEntry(t *testing.T) {
	data, err := hex.DecodeString(testEntryDataHex)
	require.NoError(t, err)

	e := Entry{DataKey: "app", Data: data, Revision: 7}
	hash := HashEntry(e)
	assert.Equal(t, wantEntryHash, hex.EncodeToString(hash[:]))

	// every field participates in the hash
	bumped := e
	bumped.Revision++
	assert.NotEqual(t, hash, HashEntry(bumped))

	renamed := e
	renamed.DataKey = "app2"
	assert.NotEqual(t, hash, HashEntry(renamed))
}
