package cmd

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/skynetlabs/go-skydb/pkg/registry"
)

type exitMocks struct {
	fatalCalls int
	exitCalls  int
	lastCode   int
}

func (m *exitMocks) Fatalf(format string, v ...interface{}) {
	m.fatalCalls++
}

func (m *exitMocks) Fatalln(v ...interface{}) {
	m.fatalCalls++
}

func (m *exitMocks) Exit(code int) {
	m.exitCalls++
	m.lastCode = code
}

func setupCLITest(t *testing.T) *exitMocks {
	t.Helper()
	mocks := new(exitMocks)
	logFatalf = mocks.Fatalf
	logFatalln = mocks.Fatalln
	osExit = mocks.Exit
	t.Cleanup(func() {
		logFatalf = log.Fatalf
		logFatalln = log.Fatalln
		osExit = os.Exit
		params = paramsT{}
	})
	return mocks
}

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	params.entry = entryFlags{}
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestCLIKeygen(t *testing.T) {
	mocks := setupCLITest(t)
	keyFile := filepath.Join(t.TempDir(), "identity.yaml")

	runCLI(t, "keygen", "--output", keyFile)
	require.Equal(t, 0, mocks.fatalCalls)

	b, err := os.ReadFile(keyFile)
	require.NoError(t, err)
	var desc keyDescriptor
	require.NoError(t, yaml.Unmarshal(b, &desc))

	pk, err := registry.ParsePublicKey(desc.PublicKey)
	require.NoError(t, err)
	sk, err := registry.ParsePrivateKey(desc.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, pk, sk.PublicKey())
}

func TestCLIRoundTrip(t *testing.T) {
	mocks := setupCLITest(t)
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	keyFile := filepath.Join(dir, "identity.yaml")
	docFile := filepath.Join(dir, "doc.json")
	outFile := filepath.Join(dir, "out.json")

	runCLI(t, "keygen", "--output", keyFile)
	require.NoError(t, os.WriteFile(docFile, []byte(`{"greeting":"hello","n":1}`), 0600))

	runCLI(t, "set",
		"--store", storeDir,
		"--keyfile", keyFile,
		"--key", "app",
		"--file", docFile,
	)
	require.Equal(t, 0, mocks.fatalCalls)

	runCLI(t, "get",
		"--store", storeDir,
		"--keyfile", keyFile,
		"--key", "app",
		"--output", outFile,
	)
	require.Equal(t, 0, mocks.fatalCalls)
	require.Equal(t, 0, mocks.exitCalls)

	b, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Equal(t, map[string]interface{}{"greeting": "hello", "n": float64(1)}, doc)
}

func TestCLIGetMissing(t *testing.T) {
	mocks := setupCLITest(t)
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "identity.yaml")

	runCLI(t, "keygen", "--output", keyFile)
	runCLI(t, "get",
		"--store", filepath.Join(dir, "store"),
		"--keyfile", keyFile,
		"--key", "absent",
	)
	require.Equal(t, 0, mocks.fatalCalls)
	require.Equal(t, 1, mocks.exitCalls)
	require.NotZero(t, mocks.lastCode)
}

func TestCLIDelete(t *testing.T) {
	mocks := setupCLITest(t)
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	keyFile := filepath.Join(dir, "identity.yaml")
	docFile := filepath.Join(dir, "doc.json")

	runCLI(t, "keygen", "--output", keyFile)
	require.NoError(t, os.WriteFile(docFile, []byte(`{"n":1}`), 0600))

	runCLI(t, "set", "--store", storeDir, "--keyfile", keyFile, "--key", "app", "--file", docFile)
	runCLI(t, "delete", "--store", storeDir, "--keyfile", keyFile, "--key", "app")
	require.Equal(t, 0, mocks.fatalCalls)

	runCLI(t, "get", "--store", storeDir, "--keyfile", keyFile, "--key", "app")
	require.Equal(t, 1, mocks.exitCalls)
}

func TestCLIEntryRoundTrip(t *testing.T) {
	mocks := setupCLITest(t)
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	keyFile := filepath.Join(dir, "identity.yaml")

	runCLI(t, "keygen", "--output", keyFile)
	runCLI(t, "entry", "set",
		"--store", storeDir,
		"--keyfile", keyFile,
		"--key", "app",
		"--payload", "deadbeef",
	)
	require.Equal(t, 0, mocks.fatalCalls)

	runCLI(t, "entry", "get", "--store", storeDir, "--keyfile", keyFile, "--key", "app")
	require.Equal(t, 0, mocks.fatalCalls)
	require.Equal(t, 0, mocks.exitCalls)
}
