package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wxbak/wechat-session/internal"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wechat-session",
	Short: "Export WeChat chat logs from the desktop client's local storage",
	Long: `A CLI tool to export WeChat chat logs to readable transcripts.

It reads the desktop client's local SQLite storage (MSG.db) and decodes the
undocumented per-message blobs: BytesExtra for the real sender of group
messages, CompressContent for quoted replies. Sender ids are resolved to
display names via MicroMsg.db; unmapped ids get stable pseudonyms.

Quick Start:
  wechat-session export --db Msg/Multi/MSG.db --out chat.txt
  wechat-session export --db Msg/Multi/MSG.db --group --format md
  wechat-session contacts --db Msg/Multi/MSG.db
  wechat-session inspect --hex 0a0408... --kind sender`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the MSG.db message database")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
