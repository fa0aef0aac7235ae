package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Store    string `json:"store" yaml:"store"`       // Directory holding the local stores
	LogLevel string `json:"loglevel" yaml:"loglevel"` // Log level for skydb
	KeyFile  string `json:"keyfile" yaml:"keyfile"`   // Default key pair file
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setRootParams(flags *paramsT) {
	if flags.root.storeDir == "" {
		flags.root.storeDir = c.Store
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.key.keyFile == "" {
		flags.key.keyFile = c.KeyFile
	}
}
