package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the document stored under a data key",
	Long: `Performs a direct lookup of the owner's data key.
Prints the current document if one exists,
exits with ENOENT status otherwise.`,
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

		if params.entry.raw {
			resp, err := db.GetRawBytes(ctx, owner, params.entry.dataKey)
			if err != nil {
				wrapFatalln("get raw bytes", err)
				return
			}
			if resp.Data == nil {
				fmt.Fprintf(os.Stderr, "didn't find data key '%v'\n", params.entry.dataKey)
				osExit(int(unix.ENOENT))
				return
			}
			if err = writeOutput(resp.Data); err != nil {
				wrapFatalln("write output", err)
				return
			}
			infoLogger.Printf("%s (%s) from %s",
				params.entry.dataKey, units.HumanSize(float64(len(resp.Data))), resp.DataLink)
			return
		}

		resp, err := db.GetJSON(ctx, owner, params.entry.dataKey)
		if err != nil {
			wrapFatalln("get JSON", err)
			return
		}
		if resp.Data == nil {
			fmt.Fprintf(os.Stderr, "didn't find data key '%v'\n", params.entry.dataKey)
			osExit(int(unix.ENOENT))
			return
		}
		b, err := json.MarshalIndent(resp.Data, "", "  ")
		if err != nil {
			wrapFatalln("marshal document", err)
			return
		}
		if err = writeOutput(append(b, '\n')); err != nil {
			wrapFatalln("write output", err)
			return
		}
	},
}

func writeOutput(b []byte) error {
	if params.entry.output == "" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(params.entry.output, b, 0600)
}

func init() {
	requiredFlags := []string{addDataKeyFlag(getCmd)}
	addOwnerFlag(getCmd)
	addKeyFileFlag(getCmd)
	addOutputFlag(getCmd)
	getCmd.Flags().BoolVar(&params.entry.raw, rawFlag, false, "Download the referenced content verbatim instead of decoding JSON")

	for _, flag := range requiredFlags {
		err := getCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	rootCmd.AddCommand(getCmd)
}
