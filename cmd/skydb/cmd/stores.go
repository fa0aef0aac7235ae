package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/skynetlabs/go-skydb/pkg/dlogger"
	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/portal/localfs"
	"github.com/skynetlabs/go-skydb/pkg/registry"
	registrylocalfs "github.com/skynetlabs/go-skydb/pkg/registry/localfs"
	"github.com/skynetlabs/go-skydb/pkg/skydb"
)

// keyDescriptor is the serialized form of an owner identity
type keyDescriptor struct {
	PublicKey  string `json:"publickey" yaml:"publickey"`
	PrivateKey string `json:"privatekey" yaml:"privatekey"`
}

// paramsToDB assembles a SkyDB client over the local stores
func paramsToDB() (*skydb.DB, error) {
	logger, err := dlogger.GetLogger(params.root.logLevel, dlogger.Console())
	if err != nil {
		return nil, errors.New("set log level").Wrap(err)
	}

	storeDir := params.root.storeDir
	for _, sub := range []string{"registry", "content"} {
		if err = os.MkdirAll(filepath.Join(storeDir, sub), 0700); err != nil {
			return nil, errors.New("create store directory").Wrap(err)
		}
	}

	base := afero.NewOsFs()
	reg := registrylocalfs.New(
		afero.NewBasePathFs(base, filepath.Join(storeDir, "registry")),
		registrylocalfs.Logger(logger),
	)
	portal := localfs.New(
		afero.NewBasePathFs(base, filepath.Join(storeDir, "content")),
		localfs.Logger(logger),
	)
	return skydb.New(reg, portal, portal, skydb.Logger(logger)), nil
}

// paramsToOwner resolves the entry owner from --owner, falling back to
// the public half of the key file
func paramsToOwner() (registry.PublicKey, error) {
	if params.key.owner != "" {
		return registry.ParsePublicKey(params.key.owner)
	}
	sk, err := paramsToPrivateKey()
	if err != nil {
		return registry.PublicKey{}, err
	}
	return sk.PublicKey(), nil
}

func paramsToPrivateKey() (registry.PrivateKey, error) {
	if params.key.keyFile == "" {
		return nil, errors.New("no key file: pass --keyfile or set keyfile in the config")
	}
	b, err := os.ReadFile(params.key.keyFile)
	if err != nil {
		return nil, errors.New("read key file").Wrap(err)
	}
	var desc keyDescriptor
	if err = yaml.Unmarshal(b, &desc); err != nil {
		return nil, errors.New("unmarshal key file").Wrap(err)
	}
	return registry.ParsePrivateKey(desc.PrivateKey)
}
