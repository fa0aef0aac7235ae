package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/skynetlabs/go-skydb/pkg/registry"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an owner key pair",
	Long: `Generates a fresh ed25519 key pair and writes it as YAML.

The public key identifies the owner to readers; the private key signs
every write. Keep the output file private.`,
	Run: func(cmd *cobra.Command, args []string) {
		pk, sk, err := registry.GenerateKeyPair()
		if err != nil {
			wrapFatalln("generate key pair", err)
			return
		}
		desc := keyDescriptor{
			PublicKey:  pk.String(),
			PrivateKey: sk.String(),
		}
		b, err := yaml.Marshal(desc)
		if err != nil {
			wrapFatalln("marshal key pair", err)
			return
		}
		if params.entry.output == "" {
			infoLogger.Print(string(b))
			return
		}
		if err = os.WriteFile(params.entry.output, b, 0600); err != nil {
			wrapFatalln("write key file", err)
			return
		}
		infoLogger.Println("wrote key pair to", params.entry.output)
	},
}

func init() {
	addOutputFlag(keygenCmd)
	rootCmd.AddCommand(keygenCmd)
}
