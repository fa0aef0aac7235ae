// Package localfs implements the upload and download collaborators on
// top of a local file system.
//
// Uploaded content is stored immutably under its blake2b merkle root,
// the same way a portal's storage backend would address it. Like the
// registry counterpart, this is a development and test backend: no
// transport, no retries.
package localfs

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/skydb"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// ErrNotFound indicates no content is stored under the requested
// content address
var ErrNotFound = errors.New("content not found")

const sectorPrefix = "sectors"

// New creates an upload/download store on top of the given file system
func New(fs afero.Fs, opts ...Option) *Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".skydb", "sectors"))
	}
	s := &Store{
		fs: fs,
		l:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Option to configure the store
type Option func(*Store)

// Logger sets a logger for this store
func Logger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.l = l
		}
	}
}

// Store addresses immutable content by its merkle root
type Store struct {
	fs afero.Fs
	l  *zap.Logger
}

var (
	_ skydb.Uploader   = &Store{}
	_ skydb.Downloader = &Store{}
)

func sectorPath(root [32]byte) string {
	return filepath.Join(sectorPrefix, hex.EncodeToString(root[:]))
}

// Upload stores the content of r and returns its content address
func (s *Store) Upload(_ context.Context, r io.Reader, opts skydb.UploadOptions) (skydb.UploadResult, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(r); err != nil {
		return skydb.UploadResult{}, err
	}

	root := blake2b.Sum256(buf.Bytes())
	pth := sectorPath(root)
	if err := s.fs.MkdirAll(filepath.Dir(pth), 0700); err != nil {
		return skydb.UploadResult{}, err
	}
	if err := afero.WriteFile(s.fs, pth, buf.Bytes(), 0600); err != nil {
		return skydb.UploadResult{}, err
	}

	const bitfield = uint16(0) // v1 skylink, full base sector
	link := skylink.New(bitfield, root)
	s.l.Debug("uploaded content",
		zap.String("file_name", opts.FileName),
		zap.Int("size", buf.Len()),
		zap.String("skylink", link.String()),
	)
	return skydb.UploadResult{
		Skylink:    link,
		MerkleRoot: root,
		Bitfield:   bitfield,
	}, nil
}

// FileContent returns the content stored under the given address
func (s *Store) FileContent(_ context.Context, link skylink.Skylink, _ skydb.DownloadOptions) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, sectorPath(link.MerkleRoot()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound.WrapMessage("skylink %s", link)
		}
		return nil, err
	}
	return data, nil
}
