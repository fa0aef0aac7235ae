// Package rand provides random data generation helpers.
//
// Bytes is backed by crypto/rand and is suitable for nonces and key
// material. LetterString is backed by math/rand and is only meant to
// produce readable throwaway identifiers (e.g. test data keys).
package rand

import (
	crand "crypto/rand"
	mrand "math/rand"
	"sync"
	"time"
)

const letters = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	mu     sync.Mutex
	seeded = mrand.New(mrand.NewSource(time.Now().UnixNano()))
)

// Bytes returns n cryptographically random bytes, panicking if the
// system source of entropy fails.
func Bytes(n int) []byte {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		panic("rand: system entropy source failed: " + err.Error())
	}
	return b
}

// LetterString returns a random string of n characters in the
// [0-9]|[a-z] range
func LetterString(n int) string {
	b := make([]byte, n)
	mu.Lock()
	for i := range b {
		b[i] = letters[seeded.Intn(len(letters))]
	}
	mu.Unlock()
	return string(b)
}
