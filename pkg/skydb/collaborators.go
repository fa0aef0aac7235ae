package skydb

import (
	"context"
	"io"

	"github.com/skynetlabs/go-skydb/pkg/skydb/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// Uploader implementations store immutable content and hand back its
// content address. Retries and timeouts are theirs to handle.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (UploadResult, error)
}

// Downloader implementations fetch immutable content by its address
type Downloader interface {
	FileContent(ctx context.Context, link skylink.Skylink, opts DownloadOptions) ([]byte, error)
}

// UploadOptions carries per-upload knobs passed through to the uploader
type UploadOptions struct {
	// FileName labels the uploaded content
	FileName string
}

// DownloadOptions carries per-download knobs passed through to the
// downloader. Empty for now, kept for interface stability.
type DownloadOptions struct{}

// UploadResult is the content address handed back by an uploader
type UploadResult struct {
	Skylink    skylink.Skylink
	MerkleRoot [32]byte
	Bitfield   uint16
}

// Validate rejects incomplete or internally inconsistent results:
// the skylink must be present and must itself encode the reported
// merkle root and bitfield.
func (r UploadResult) Validate() error {
	if r.Skylink.IsEmpty() {
		return status.ErrIncompleteUpload.WrapMessage("missing skylink")
	}
	if r.MerkleRoot == [32]byte{} {
		return status.ErrIncompleteUpload.WrapMessage("missing merkle root")
	}
	if r.Skylink.MerkleRoot() != r.MerkleRoot {
		return status.ErrIncompleteUpload.WrapMessage("skylink does not match the reported merkle root")
	}
	if r.Skylink.Bitfield() != r.Bitfield {
		return status.ErrIncompleteUpload.WrapMessage("skylink does not match the reported bitfield")
	}
	return nil
}
