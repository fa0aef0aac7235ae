package cmd

import (
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Commands to manage raw registry entries",
	Long: `Commands to manage raw registry entries.

A registry entry is the signed, versioned record behind every data key.
These commands read and write the entry payload directly, without the
document layer on top.
`,
}

func init() {
	rootCmd.AddCommand(entryCmd)
}
