package registry

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// The registry signs a blake2b-256 hash over the length-prefixed
// binary encoding of an entry, the same encoding the reference storage
// network uses: every variable-length field is prefixed with its byte
// length as a little-endian uint64.

// HashSize is the length of registry hashes
const HashSize = blake2b.Size256

func encodeString(s string) []byte {
	return encodeBytes([]byte(s))
}

func encodeBytes(b []byte) []byte {
	out := make([]byte, 8+len(b))
	binary.LittleEndian.PutUint64(out[:8], uint64(len(b)))
	copy(out[8:], b)
	return out
}

func encodeUint64(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}

// HashDataKey hashes the length-prefixed data key. Registry lookups
// and storage paths are keyed by this hash, never by the raw string.
func HashDataKey(dataKey string) [HashSize]byte {
	return blake2b.Sum256(encodeString(dataKey))
}

// HashEntry computes the hash covered by an entry signature
func HashEntry(e Entry) [HashSize]byte {
	hashedKey := HashDataKey(e.DataKey)
	buf := make([]byte, 0, HashSize+8+len(e.Data)+8)
	buf = append(buf, hashedKey[:]...)
	buf = append(buf, encodeBytes(e.Data)...)
	buf = append(buf, encodeUint64(e.Revision)...)
	return blake2b.Sum256(buf)
}
