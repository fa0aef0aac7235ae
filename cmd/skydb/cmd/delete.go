package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the document stored under a data key",
	Long: `Marks the owner's data key as deleted.

Deletion is a registry write like any other: the entry advances one
revision and carries a deletion marker in place of a content address.
Later writes to the same data key continue from that revision.`,
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
		if err = db.DeleteJSON(ctx, sk, params.entry.dataKey); err != nil {
			wrapFatalln("delete", err)
			return
		}
		infoLogger.Println("deleted", params.entry.dataKey)
	},
}

func init() {
	requiredFlags := []string{addDataKeyFlag(deleteCmd)}
	addKeyFileFlag(deleteCmd)

	for _, flag := range requiredFlags {
		err := deleteCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	rootCmd.AddCommand(deleteCmd)
}
