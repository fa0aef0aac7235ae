package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skydb",
	Short: "SkyDB is a mutable key-value layer over immutable storage",
	Long: `SkyDB stores mutable, versioned documents on top of an immutable
content-addressed store.

Every write uploads the document as immutable content and repoints a
signed, monotonically versioned registry entry at the new content
address. Readers verify the signature and follow the entry to the
current content.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&params.root.storeDir, storeDirFlag, "",
		"Directory holding the registry and content stores")
	rootCmd.PersistentFlags().StringVar(&params.root.logLevel, logLevelFlag, "",
		"Log level (info, debug, none)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("store", defaultStoreDir())
	viper.SetDefault("loglevel", "none")
	if os.Getenv("SKYDB_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("SKYDB_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.skydb")
		viper.AddConfigPath("/etc/skydb")
		viper.SetConfigName("skydb")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setRootParams(&params)
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skydb-store"
	}
	return home + "/.skydb-store"
}
