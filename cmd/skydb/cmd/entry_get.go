package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var getEntryCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the raw entry payload for a data key",
	Long: `Performs a direct lookup of the owner's registry entry.
Prints the hex encoded entry payload and the cached revision if the
entry exists, exits with ENOENT status otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		db, err := paramsToDB()
		if err != nil {
			wrapFatalln("create local stores", err)
			return
		}
		owner, err := paramsToOwner()
		if err != nil {
			wrapFatalln("resolve owner", err)
			return
		}
		data, err := db.GetEntryData(ctx, owner, params.entry.dataKey)
		if err != nil {
			wrapFatalln("get entry", err)
			return
		}
		if data == nil {
			fmt.Fprintf(os.Stderr, "didn't find data key '%v'\n", params.entry.dataKey)
			osExit(int(unix.ENOENT))
			return
		}
		revision, _ := db.CachedRevision(owner, params.entry.dataKey)
		infoLogger.Printf("%s revision %d: %s", params.entry.dataKey, revision, hex.EncodeToString(data))
	},
}

func init() {
	requiredFlags := []string{addDataKeyFlag(getEntryCmd)}
	addOwnerFlag(getEntryCmd)
	addKeyFileFlag(getEntryCmd)

	for _, flag := range requiredFlags {
		err := getEntryCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	entryCmd.AddCommand(getEntryCmd)
}
