package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/skynetlabs/go-skydb/pkg/skydb"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a document under a data key",
	Long: `Stores a JSON document under the owner's data key.

The document is read from --file or stdin, uploaded as immutable
content and the signed registry entry is advanced one revision to
reference it.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		db, err := paramsToDB()
		if err != nil {
			wrapFatalln("create local stores", err)
			return
		}
		sk, err := paramsToPrivateKey()
		if err != nil {
			wrapFatalln("resolve signing key", err)
			return
		}

		b, err := readInput()
		if err != nil {
			wrapFatalln("read document", err)
			return
		}
		var doc interface{}
		if err = json.Unmarshal(b, &doc); err != nil {
			wrapFatalln("parse document", err)
			return
		}

		var opts []skydb.CallOption
		if params.entry.name != "" {
			opts = append(opts, skydb.WithFileName(params.entry.name))
		}
		link, err := db.SetJSON(ctx, sk, params.entry.dataKey, doc, opts...)
		if err != nil {
			wrapFatalln("set JSON", err)
			return
		}
		infoLogger.Printf("stored %s at %s", params.entry.dataKey, link)
	},
}

func readInput() ([]byte, error) {
	if params.entry.file == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(params.entry.file)
}

func init() {
	requiredFlags := []string{addDataKeyFlag(setCmd)}
	addKeyFileFlag(setCmd)
	addFileFlag(setCmd)
	addFileNameFlag(setCmd)

	for _, flag := range requiredFlags {
		err := setCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	rootCmd.AddCommand(setCmd)
}
