package cmd

import (
	"github.com/spf13/cobra"
)

const (
	storeDirFlag = "store"
	logLevelFlag = "loglevel"
	dataKeyFlag  = "key"
	ownerFlag    = "owner"
	keyFileFlag  = "keyfile"
	fileFlag     = "file"
	outputFlag   = "output"
	rawFlag      = "raw"
	nameFlag     = "name"
	payloadFlag  = "payload"
)

type rootFlags struct {
	storeDir string
	logLevel string
}

type keyFlags struct {
	keyFile string
	owner   string
}

type entryFlags struct {
	dataKey string
	file    string
	output  string
	name    string
	payload string
	raw     bool
}

type paramsT struct {
	root  rootFlags
	key   keyFlags
	entry entryFlags
}

var params = paramsT{}

func addDataKeyFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&params.entry.dataKey, dataKeyFlag, "", "The data key the entry is stored under")
	return dataKeyFlag
}

func addOwnerFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&params.key.owner, ownerFlag, "", "Hex encoded public key of the entry owner")
	return ownerFlag
}

func addKeyFileFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&params.key.keyFile, keyFileFlag, "", "Path to a key pair file written by 'skydb keygen'")
	return keyFileFlag
}

func addFileFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&params.entry.file, fileFlag, "", "Read the document from this file instead of stdin")
	return fileFlag
}

func addOutputFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&params.entry.output, outputFlag, "", "Write output to this file instead of stdout")
	return outputFlag
}

func addFileNameFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&params.entry.name, nameFlag, "", "File name recorded with the uploaded content")
	return nameFlag
}
