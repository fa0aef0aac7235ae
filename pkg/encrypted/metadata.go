package encrypted

import (
	"github.com/skynetlabs/go-skydb/pkg/errors"
)

const (
	// MetadataSize is the length of the hidden metadata region:
	// one version byte followed by reserved zero bytes
	MetadataSize = 16

	// Version is the current encrypted file format version
	Version = 1
)

// ErrVersionOutOfRange is returned when a version does not fit the
// single metadata byte
var ErrVersionOutOfRange = errors.New("encrypted file version must fit in a single byte")

// Metadata is the hidden metadata carried inside every encrypted file
type Metadata struct {
	Version int
}

// EncodeMetadata packs the metadata into its fixed-length binary form
func EncodeMetadata(md Metadata) ([]byte, error) {
	if md.Version < 0 || md.Version > 255 {
		return nil, ErrVersionOutOfRange.WrapMessage("got %d", md.Version)
	}
	out := make([]byte, MetadataSize)
	out[0] = byte(md.Version)
	return out, nil
}

// DecodeMetadata unpacks the fixed-length binary metadata form
func DecodeMetadata(data []byte) (Metadata, error) {
	if len(data) != MetadataSize {
		return Metadata{}, errors.Newf("encrypted file metadata has %d bytes, expected %d", len(data), MetadataSize)
	}
	// reserved bytes are written as zero; anything else is corruption
	for _, b := range data[1:] {
		if b != 0 {
			return Metadata{}, errors.New("encrypted file metadata has non-zero reserved bytes")
		}
	}
	return Metadata{Version: int(data[0])}, nil
}
