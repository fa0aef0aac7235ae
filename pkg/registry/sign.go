package registry

import (
	"crypto/ed25519"

	"github.com/skynetlabs/go-skydb/pkg/registry/status"
)

// SignatureSize is the length of an entry signature
const SignatureSize = ed25519.SignatureSize

// SignedEntry is an entry together with its owner and signature, as
// published to and returned by a registry store
type SignedEntry struct {
	Entry

	PublicKey PublicKey
	Signature [SignatureSize]byte
}

// Sign validates and signs an entry with the owner private key
func Sign(sk PrivateKey, e Entry) (SignedEntry, error) {
	if err := sk.Validate(); err != nil {
		return SignedEntry{}, err
	}
	if err := e.Validate(); err != nil {
		return SignedEntry{}, err
	}
	hash := HashEntry(e)
	signed := SignedEntry{
		Entry:     e,
		PublicKey: sk.PublicKey(),
	}
	copy(signed.Signature[:], ed25519.Sign(ed25519.PrivateKey(sk), hash[:]))
	return signed, nil
}

// Verify checks the entry signature against its owner public key.
// Any mismatch, whether from tampered fields or a wrong owner, yields
// status.ErrBadSignature.
func (s SignedEntry) Verify() error {
	hash := HashEntry(s.Entry)
	if !ed25519.Verify(s.PublicKey[:], hash[:], s.Signature[:]) {
		return status.ErrBadSignature.WrapMessage("data key %q revision %d", s.DataKey, s.Revision)
	}
	return nil
}
