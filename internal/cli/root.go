package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rkowalik/tabload/internal/logging"
	"github.com/rkowalik/tabload/pkg/tabload"
)

const asciiLogo = `
 _        _     _                 _
| |_ __ _| |__ | | ___   __ _  __| |
| __/ _` + "`" + ` | '_ \| |/ _ \ / _` + "`" + ` |/ _` + "`" + ` |
| || (_| | |_) | | (_) | (_| | (_| |
 \__\__,_|_.__/|_|\___/ \__,_|\__,_|`

var rootCmd = &cobra.Command{
	Use:   "tabload",
	Short: "Delimited-file to relational-store loader and query tool",
	Long: asciiLogo + `

tabload reads delimited employee files, loads them into an embedded or
networked relational store, and answers criteria queries and aggregate
reports over the loaded table.

Credentials never appear in configuration or on the command line: the
networked backend reads DB_USER and DB_PASSWORD from the environment
(or mints an IAM token when the config asks for it).

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - Source file unreadable or malformed
  13 - Invalid query request (unknown column, empty value list)
  14 - Sink write failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for tabload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringP("config", "c", "tabload.yaml", "Path to the project configuration file")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the logger every command shares.
func newLogger(cmd *cobra.Command) tabload.Logger {
	return logging.NewConsoleLogger(getVerboseFlag(cmd))
}

func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return "tabload.yaml"
	}
	return path
}
