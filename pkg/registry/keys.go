package registry

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"

	"github.com/skynetlabs/go-skydb/pkg/registry/status"
)

const (
	// PublicKeySize is the length of a raw ed25519 public key
	PublicKeySize = ed25519.PublicKeySize

	// PrivateKeySize is the length of a raw ed25519 private key
	// (seed plus public half)
	PrivateKeySize = ed25519.PrivateKeySize
)

// PublicKey identifies an entry owner
type PublicKey [PublicKeySize]byte

// ParsePublicKey decodes a hex encoded public key
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	raw, err := hex.DecodeString(s)
	if err != nil {
		return pk, status.ErrInvalidKey.WrapMessage("public key is not hex encoded: %v", err)
	}
	if len(raw) != PublicKeySize {
		return pk, status.ErrInvalidKey.WrapMessage("public key has %d bytes, expected %d", len(raw), PublicKeySize)
	}
	copy(pk[:], raw)
	return pk, nil
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// PrivateKey signs registry entries on behalf of its owner
type PrivateKey []byte

// ParsePrivateKey decodes a hex encoded private key
func ParsePrivateKey(s string) (PrivateKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, status.ErrInvalidKey.WrapMessage("private key is not hex encoded: %v", err)
	}
	if len(raw) != PrivateKeySize {
		return nil, status.ErrInvalidKey.WrapMessage("private key has %d bytes, expected %d", len(raw), PrivateKeySize)
	}
	return PrivateKey(raw), nil
}

// Validate checks the key length
func (sk PrivateKey) Validate() error {
	if len(sk) != PrivateKeySize {
		return status.ErrInvalidKey.WrapMessage("private key has %d bytes, expected %d", len(sk), PrivateKeySize)
	}
	return nil
}

// PublicKey derives the owner public key from the private key
func (sk PrivateKey) PublicKey() PublicKey {
	var pk PublicKey
	copy(pk[:], ed25519.PrivateKey(sk).Public().(ed25519.PublicKey))
	return pk
}

func (sk PrivateKey) String() string {
	return hex.EncodeToString(sk)
}

// GenerateKeyPair creates a fresh owner identity
func GenerateKeyPair() (PublicKey, PrivateKey, error) {
	var pk PublicKey
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return pk, nil, err
	}
	copy(pk[:], pub)
	return pk, PrivateKey(priv), nil
}
