// Package localfs implements a registry store backed by a local
// file system.
//
// Entries are persisted as YAML descriptors under
// <ownerHex>/<hashedDataKeyHex>.yaml. This is a development and test
// backend: it enforces the same contract as a remote registry
// (signature verification on read, strictly increasing revisions on
// write) without any transport.
package localfs

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry"
	"github.com/skynetlabs/go-skydb/pkg/registry/status"
)

// New creates a registry store on top of the given file system
func New(fs afero.Fs, opts ...Option) registry.Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".skydb", "registry"))
	}
	s := &localFS{
		fs: fs,
		l:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Option to configure the store
type Option func(*localFS)

// Logger sets a logger for this store
func Logger(l *zap.Logger) Option {
	return func(s *localFS) {
		if l != nil {
			s.l = l
		}
	}
}

type localFS struct {
	mu sync.Mutex // serializes read-modify-write cycles in SetEntry
	fs afero.Fs
	l  *zap.Logger
}

// entryDescriptor is the on-disk form of a signed entry
type entryDescriptor struct {
	DataKey   string  `yaml:"dataKey" json:"dataKey"`
	Data      string  `yaml:"data" json:"data"`
	Revision  *uint64 `yaml:"revision,omitempty" json:"revision,omitempty"`
	PublicKey string  `yaml:"publicKey" json:"publicKey"`
	Signature string  `yaml:"signature" json:"signature"`
}

func entryPath(pk registry.PublicKey, dataKey string) string {
	hashedKey := registry.HashDataKey(dataKey)
	return filepath.Join(pk.String(), hex.EncodeToString(hashedKey[:])+".yaml")
}

func (s *localFS) GetEntry(_ context.Context, pk registry.PublicKey, dataKey string) (registry.SignedEntry, error) {
	signed, err := s.readEntry(pk, dataKey)
	if err != nil {
		return registry.SignedEntry{}, err
	}
	if err := signed.Verify(); err != nil {
		return registry.SignedEntry{}, err
	}
	if signed.PublicKey != pk {
		return registry.SignedEntry{}, status.ErrBadSignature.WrapMessage(
			"entry for data key %q is owned by %s, not %s", dataKey, signed.PublicKey, pk)
	}
	return signed, nil
}

func (s *localFS) SetEntry(_ context.Context, sk registry.PrivateKey, e registry.Entry) error {
	signed, err := registry.Sign(sk, e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readEntry(signed.PublicKey, e.DataKey)
	switch {
	case err == nil:
		if e.Revision <= current.Revision {
			return status.ErrLowerRevision.WrapMessage(
				"data key %q: revision %d, stored revision is %d", e.DataKey, e.Revision, current.Revision)
		}
	case errors.Is(err, status.ErrNotFound):
		// first write for this pair
	default:
		return err
	}

	return s.writeEntry(signed)
}

func (s *localFS) readEntry(pk registry.PublicKey, dataKey string) (registry.SignedEntry, error) {
	pth := entryPath(pk, dataKey)
	buf, err := afero.ReadFile(s.fs, pth)
	if err != nil {
		if os.IsNotExist(err) {
			return registry.SignedEntry{}, status.ErrNotFound.WrapMessage("data key %q", dataKey)
		}
		return registry.SignedEntry{}, err
	}

	var desc entryDescriptor
	if err := yaml.Unmarshal(buf, &desc); err != nil {
		return registry.SignedEntry{}, errors.New("corrupt registry entry descriptor").Wrap(err)
	}
	return s.descriptorToEntry(desc)
}

func (s *localFS) writeEntry(signed registry.SignedEntry) error {
	revision := signed.Revision
	desc := entryDescriptor{
		DataKey:   signed.DataKey,
		Data:      hex.EncodeToString(signed.Data),
		Revision:  &revision,
		PublicKey: signed.PublicKey.String(),
		Signature: hex.EncodeToString(signed.Signature[:]),
	}
	buf, err := yaml.Marshal(desc)
	if err != nil {
		return err
	}

	pth := entryPath(signed.PublicKey, signed.DataKey)
	if err := s.fs.MkdirAll(filepath.Dir(pth), 0700); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, pth, buf, 0600); err != nil {
		return err
	}
	s.l.Debug("stored registry entry",
		zap.String("data_key", signed.DataKey),
		zap.Uint64("revision", signed.Revision),
		zap.String("path", pth),
	)
	return nil
}

func (s *localFS) descriptorToEntry(desc entryDescriptor) (registry.SignedEntry, error) {
	data, err := hex.DecodeString(desc.Data)
	if err != nil {
		return registry.SignedEntry{}, errors.New("corrupt registry entry data").Wrap(err)
	}
	pk, err := registry.ParsePublicKey(desc.PublicKey)
	if err != nil {
		return registry.SignedEntry{}, err
	}
	sig, err := hex.DecodeString(desc.Signature)
	if err != nil || len(sig) != registry.SignatureSize {
		return registry.SignedEntry{}, errors.New("corrupt registry entry signature").Wrap(err)
	}

	var revision uint64
	if desc.Revision != nil {
		revision = *desc.Revision
	} else {
		// A descriptor without a revision is malformed. The reference
		// behavior is to treat it as revision 0, so keep that, but
		// loudly.
		s.l.Warn("registry entry descriptor has no revision, defaulting to 0",
			zap.String("data_key", desc.DataKey))
	}

	signed := registry.SignedEntry{
		Entry: registry.Entry{
			DataKey:  desc.DataKey,
			Data:     data,
			Revision: revision,
		},
		PublicKey: pk,
	}
	copy(signed.Signature[:], sig)
	return signed, nil
}
