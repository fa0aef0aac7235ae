// Package skylink implements the binary skylink codec.
//
// A skylink is the fixed-length content address handed out by the
// immutable storage layer: a 2 byte little-endian bitfield followed by
// a 32 byte merkle root. Its canonical string form is the unpadded
// base64url encoding of those 34 bytes, prefixed with "sia://".
package skylink

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// RawSize is the length of a skylink in its binary form
	RawSize = 34

	// EncodedSize is the length of a skylink string, without the
	// URI prefix
	EncodedSize = 46

	// Prefix is the URI scheme prepended to formatted skylinks
	Prefix = "sia://"

	merkleRootSize = 32
)

// Empty is the all-zero skylink, used as the deletion sentinel by the
// registry layer.
var Empty Skylink

// Skylink is a fixed-length content address
type Skylink [RawSize]byte

// New builds a skylink from a bitfield and a merkle root
func New(bitfield uint16, root [merkleRootSize]byte) Skylink {
	var s Skylink
	binary.LittleEndian.PutUint16(s[:2], bitfield)
	copy(s[2:], root[:])
	return s
}

// FromBytes builds a skylink from its exact binary representation
func FromBytes(data []byte) (Skylink, error) {
	if len(data) != RawSize {
		return Empty, &BadSizeError{Size: len(data), Expected: []int{RawSize}}
	}
	var s Skylink
	copy(s[:], data)
	return s, nil
}

// MustFromBytes builds a skylink from bytes but panics if there is an error
func MustFromBytes(data []byte) Skylink {
	s, err := FromBytes(data)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// Parse decodes a skylink string. The "sia://" prefix is optional.
// Both the canonical base64url form and the legacy standard-base64
// form are accepted; any other length is rejected.
func Parse(s string) (Skylink, error) {
	s = strings.TrimPrefix(s, Prefix)
	if len(s) != EncodedSize {
		return Empty, &BadSizeError{Size: len(s), Expected: []int{EncodedSize}}
	}
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		// legacy encoding with the standard alphabet
		decoded, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return Empty, fmt.Errorf("skylink %q is not base64 encoded: %v", s, err)
		}
	}
	return FromBytes(decoded)
}

// DecodeEntryData classifies a registry entry payload as a skylink.
//
// A payload of RawSize bytes is the binary form. A payload of
// EncodedSize bytes is a legacy skylink string stored as raw bytes.
// Any other length is rejected, naming the expected lengths.
func DecodeEntryData(data []byte) (Skylink, error) {
	switch len(data) {
	case RawSize:
		return FromBytes(data)
	case EncodedSize:
		return Parse(string(data))
	default:
		return Empty, &BadSizeError{Size: len(data), Expected: []int{RawSize, EncodedSize}}
	}
}

// Bitfield returns the version and fetch-size bits of the skylink
func (s Skylink) Bitfield() uint16 {
	return binary.LittleEndian.Uint16(s[:2])
}

// MerkleRoot returns the merkle root the skylink points to
func (s Skylink) MerkleRoot() [merkleRootSize]byte {
	var root [merkleRootSize]byte
	copy(root[:], s[2:])
	return root
}

// IsEmpty tells whether the skylink is the all-zero sentinel, compared
// byte-for-byte
func (s Skylink) IsEmpty() bool {
	return bytes.Equal(s[:], Empty[:])
}

// String returns the canonical base64url encoding, without prefix
func (s Skylink) String() string {
	return base64.RawURLEncoding.EncodeToString(s[:])
}

// Format returns the canonical prefixed string form
func (s Skylink) Format() string {
	return Prefix + s.String()
}

// Format normalizes a skylink string to its canonical prefixed form.
// Formatting an already formatted string is a no-op.
func Format(s string) (string, error) {
	parsed, err := Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.Format(), nil
}

// BadSizeError is returned when decoding data of an unexpected length
type BadSizeError struct {
	Size     int
	Expected []int
}

func (b *BadSizeError) Error() string {
	expected := make([]string, 0, len(b.Expected))
	for _, e := range b.Expected {
		expected = append(expected, fmt.Sprintf("%d", e))
	}
	return fmt.Sprintf("invalid skylink size %d, expected %s", b.Size, strings.Join(expected, " or "))
}
