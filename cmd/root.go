package cmd

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/keyfold/keyfold/internal/logging"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	rootCmd = &cobra.Command{
		Use:   "keyfold",
		Short: "Store and retrieve personal secrets, organized into keychains",
		Long: `Keyfold keeps your secrets in named keychains, each sealed under its own
OpenPGP credential. One keychain is the default; most commands act on it
unless you point them elsewhere with --keychain.

Typical session:

  keyfold manage create work     # create a keychain with a fresh credential
  keyfold use work               # make it the default
  keyfold write db-password      # store a secret (prompted, or piped in)
  keyfold read db-password       # print it back
  keyfold keygen --replace       # replace the credential
  keyfold refresh                # re-encrypt everything under the new one

Run 'keyfold help <command>' for details on a specific command.`,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Arguments validated by now: a failure from here on is a
			// runtime error, not a usage mistake.
			cmd.SilenceUsage = true

			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keyfold with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(manageCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(refreshCmd)
}

// Execute runs the root command and exits non-zero on failure. Commands
// that already printed their own failure message return errCommandFailed
// so the error is not printed twice.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
		}
		os.Exit(1)
	}
}
