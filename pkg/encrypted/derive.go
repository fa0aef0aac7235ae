// Package encrypted implements the encrypted-file codec: a keyed
// derivation hierarchy scoped to logical paths, an authenticated
// encryption format for JSON documents, and deterministic size padding
// so ciphertext length does not leak plaintext length.
package encrypted

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// KeySize is the length of derived symmetric key material
const KeySize = 32

// Derivation keys for the blake2b keyed hashes below. Each derivation
// uses its own key so outputs from different derivations can never
// collide.
const (
	keyEntropyDerivation = "skydb/encrypted-file/key-entropy"
	fileSeedDerivation   = "skydb/encrypted-file/seed"
	tweakDerivation      = "skydb/encrypted-file/tweak"
)

func keyedHash(derivationKey string, chunks ...[]byte) [KeySize]byte {
	h, err := blake2b.New256([]byte(derivationKey))
	if err != nil {
		// blake2b only rejects keys longer than 64 bytes, and all
		// derivation keys above are shorter
		panic(err)
	}
	for _, chunk := range chunks {
		_, _ = h.Write(chunk)
	}
	var out [KeySize]byte
	copy(out[:], h.Sum(nil))
	return out
}

func encodeString(s string) []byte {
	out := make([]byte, 8+len(s))
	binary.LittleEndian.PutUint64(out[:8], uint64(len(s)))
	copy(out[8:], s)
	return out
}

// DeriveFileKeyEntropy derives the symmetric key material for the
// encrypted file at the path the seed is scoped to
func DeriveFileKeyEntropy(pathSeed string) [KeySize]byte {
	return keyedHash(keyEntropyDerivation, []byte(pathSeed))
}

// DeriveFileSeed derives the path seed for subPath below the directory
// pathSeed is scoped to. File and directory derivations for the same
// subPath yield distinct seeds.
func DeriveFileSeed(pathSeed, subPath string, isDirectory bool) string {
	discriminator := byte(0x00)
	if isDirectory {
		discriminator = 0x01
	}
	out := keyedHash(fileSeedDerivation,
		encodeString(pathSeed),
		encodeString(subPath),
		[]byte{discriminator},
	)
	return hex.EncodeToString(out[:])
}

// DeriveFileTweak derives the registry tweak indexing the encrypted
// object identified by seed
func DeriveFileTweak(seed string) string {
	out := keyedHash(tweakDerivation, []byte(seed))
	return hex.EncodeToString(out[:])
}
