package cmd

import (
	"context"
	"encoding/hex"

	"github.com/spf13/cobra"
)

var setEntryCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the raw entry payload for a data key",
	Long: `Stores a hex encoded payload directly in the owner's registry
entry, advancing it one revision. The payload is limited to 70 bytes
and is not uploaded anywhere; use 'skydb set' to store documents.`,
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
		data, err := hex.DecodeString(params.entry.payload)
		if err != nil {
			wrapFatalln("decode payload", err)
			return
		}
		if err = db.SetEntryData(ctx, sk, params.entry.dataKey, data); err != nil {
			wrapFatalln("set entry", err)
			return
		}
		revision, _ := db.CachedRevision(sk.PublicKey(), params.entry.dataKey)
		infoLogger.Printf("stored %s at revision %d", params.entry.dataKey, revision)
	},
}

func init() {
	requiredFlags := []string{addDataKeyFlag(setEntryCmd)}
	addKeyFileFlag(setEntryCmd)
	setEntryCmd.Flags().StringVar(&params.entry.payload, payloadFlag, "", "Hex encoded entry payload")
	requiredFlags = append(requiredFlags, payloadFlag)

	for _, flag := range requiredFlags {
		err := setEntryCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	entryCmd.AddCommand(setEntryCmd)
}
