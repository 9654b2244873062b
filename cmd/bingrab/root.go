package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"bingrab/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

// rootCmd represents the base command. The fetch flags are registered on
// it as well, so `bingrab -q puppy` works without naming the subcommand.
var rootCmd = &cobra.Command{
	Use:   "bingrab",
	Short: "Bulk image downloader for Bing image search",
	Long: `bingrab queries the Bing image search endpoint, extracts direct image
URLs from the result pages, and downloads them concurrently to a local
directory.

Downloads are best effort: a single failed image is logged and skipped,
and the run still finishes with the rest.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}
		if cmd.Name() != "version" && cmd.Name() != "help" && cmd.Name() != "completion" {
			ui.PrintLogo()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if query != "" {
			runFetch()
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.config/bingrab/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress all output except errors")

	addFetchFlags(rootCmd)

	rootCmd.SetVersionTemplate(`bingrab {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
