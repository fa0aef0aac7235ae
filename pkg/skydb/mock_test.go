package skydb

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/skynetlabs/go-skydb/pkg/registry"
	regstatus "github.com/skynetlabs/go-skydb/pkg/registry/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// mockRegistry is an in-memory registry store with failure injection.
// It does not verify signatures: contract enforcement is tested
// against the real stores, these tests exercise the orchestrator.
type mockRegistry struct {
	mu      sync.Mutex
	entries map[string]registry.SignedEntry

	getErr error
	setErr error
	sets   int
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{entries: make(map[string]registry.SignedEntry)}
}

func regKey(pk registry.PublicKey, dataKey string) string {
	return pk.String() + "/" + dataKey
}

func (m *mockRegistry) GetEntry(_ context.Context, pk registry.PublicKey, dataKey string) (registry.SignedEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return registry.SignedEntry{}, m.getErr
	}
	entry, ok := m.entries[regKey(pk, dataKey)]
	if !ok {
		return registry.SignedEntry{}, regstatus.ErrNotFound
	}
	return entry, nil
}

func (m *mockRegistry) SetEntry(_ context.Context, sk registry.PrivateKey, e registry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	pk := sk.PublicKey()
	m.entries[regKey(pk, e.DataKey)] = registry.SignedEntry{Entry: e, PublicKey: pk}
	return nil
}

// put injects an entry as if previously published
func (m *mockRegistry) put(pk registry.PublicKey, e registry.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[regKey(pk, e.DataKey)] = registry.SignedEntry{Entry: e, PublicKey: pk}
}

// mockPortal is an in-memory content-addressed uploader/downloader
// with failure injection
type mockPortal struct {
	mu      sync.Mutex
	content map[skylink.Skylink][]byte

	uploadErr   error
	downloadErr error
	// tamper lets a test corrupt the upload result before the
	// orchestrator validates it
	tamper func(*UploadResult)
}

func newMockPortal() *mockPortal {
	return &mockPortal{content: make(map[skylink.Skylink][]byte)}
}

func (m *mockPortal) Upload(_ context.Context, r io.Reader, _ UploadOptions) (UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return UploadResult{}, m.uploadErr
	}
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(r); err != nil {
		return UploadResult{}, err
	}
	root := blake2b.Sum256(buf.Bytes())
	link := skylink.New(0, root)
	m.content[link] = buf.Bytes()
	result := UploadResult{Skylink: link, MerkleRoot: root, Bitfield: 0}
	if m.tamper != nil {
		m.tamper(&result)
	}
	return result, nil
}

func (m *mockPortal) FileContent(_ context.Context, link skylink.Skylink, _ DownloadOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	content, ok := m.content[link]
	if !ok {
		return nil, regstatus.ErrNotFound
	}
	return content, nil
}

type testEnv struct {
	db     *DB
	reg    *mockRegistry
	portal *mockPortal
	pk     registry.PublicKey
	sk     registry.PrivateKey
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	pk, sk, err := registry.GenerateKeyPair()
	require.NoError(t, err)
	reg := newMockRegistry()
	portal := newMockPortal()
	return &testEnv{
		db:     New(reg, portal, portal, opts...),
		reg:    reg,
		portal: portal,
		pk:     pk,
		sk:     sk,
	}
}
