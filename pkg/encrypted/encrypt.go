package encrypted

import (
	"bytes"
	"encoding/json"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/skynetlabs/go-skydb/internal/rand"
	"github.com/skynetlabs/go-skydb/pkg/errors"
)

const (
	// NonceSize is the length of the random nonce prepended to every
	// encrypted file
	NonceSize = 24

	// Overhead is the length of the authentication tag appended by
	// the cipher
	Overhead = secretbox.Overhead

	// totalOverhead is everything in an encrypted file that is not
	// padded plaintext
	totalOverhead = NonceSize + MetadataSize + Overhead
)

var (
	// ErrNotPadded is returned for a blob whose length is not a valid
	// padded block, before any decryption is attempted
	ErrNotPadded = errors.New("encrypted file is not padded correctly")

	// ErrVersionMismatch is returned when the metadata region encodes
	// a different format version than this codec expects
	ErrVersionMismatch = errors.New("encrypted file version mismatch")

	// ErrCouldNotDecrypt is returned on any authenticated decryption
	// failure. It deliberately does not distinguish tampering from a
	// wrong key, so the codec cannot be used as a decryption oracle.
	ErrCouldNotDecrypt = errors.New("could not decrypt encrypted file")
)

// EncryptJSON serializes v, pads it so the encrypted file lands on a
// padded block boundary, and seals it under key with a fresh random
// nonce. The output layout is nonce, hidden metadata, ciphertext.
func EncryptJSON(v interface{}, key [KeySize]byte) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	paddedTotal, err := PadFileSize(uint64(len(data)) + totalOverhead)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, paddedTotal-totalOverhead)
	copy(plaintext, data)

	metadata, err := EncodeMetadata(Metadata{Version: Version})
	if err != nil {
		return nil, err
	}

	var nonce [NonceSize]byte
	copy(nonce[:], rand.Bytes(NonceSize))

	out := make([]byte, 0, paddedTotal)
	out = append(out, nonce[:]...)
	out = append(out, metadata...)
	out = secretbox.Seal(out, plaintext, &nonce, &key)
	return out, nil
}

// DecryptJSON opens an encrypted file and unmarshals the contained
// JSON document into out.
func DecryptJSON(blob []byte, key [KeySize]byte, out interface{}) error {
	padded, err := CheckPaddedBlock(uint64(len(blob)))
	if err != nil {
		return err
	}
	if !padded || len(blob) < totalOverhead {
		return ErrNotPadded.WrapMessage("length is %d", len(blob))
	}

	var nonce [NonceSize]byte
	copy(nonce[:], blob[:NonceSize])

	metadata, err := DecodeMetadata(blob[NonceSize : NonceSize+MetadataSize])
	if err != nil {
		return err
	}
	if metadata.Version != Version {
		return ErrVersionMismatch.WrapMessage("got version %d, expected %d", metadata.Version, Version)
	}

	plaintext, ok := secretbox.Open(nil, blob[NonceSize+MetadataSize:], &nonce, &key)
	if !ok {
		return ErrCouldNotDecrypt
	}

	// JSON never ends in a NUL byte, so stripping the zero padding is
	// unambiguous
	plaintext = bytes.TrimRight(plaintext, "\x00")
	if err := json.Unmarshal(plaintext, out); err != nil {
		return errors.New("encrypted file does not contain valid JSON").Wrap(err)
	}
	return nil
}
