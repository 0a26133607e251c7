package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var readKeychain string

func init() {
	readCmd.Flags().StringVarP(&readKeychain, "keychain", "k", "", "target keychain (default: the active one)")
}

var readCmd = &cobra.Command{
	Use:   "read <key>",
	Short: "Decrypt and print a stored secret",
	Long: `Decrypts a secret and writes the plaintext to stdout, nothing else.
The output is safe to pipe or substitute into another command.

Examples:
  # Print a secret
  keyfold read db-password

  # Use it in a command without showing it
  psql "postgres://app:$(keyfold read db-password)@localhost/app"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// No spinner here: stdout must carry the plaintext and only the
		// plaintext.
		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.Read(cmd.Context(), env, workflows.ReadOptions{
			Keychain: readKeychain,
			Key:      args[0],
		})
		if err != nil {
			return err
		}

		if _, err := os.Stdout.Write(result.Plaintext); err != nil {
			return fmt.Errorf("writing secret to stdout: %w", err)
		}
		// A trailing newline on a terminal keeps the shell prompt clean;
		// piped output gets the secret byte-for-byte.
		if utils.StdoutIsTerminal() && !bytes.HasSuffix(result.Plaintext, []byte("\n")) {
			fmt.Println()
		}
		return nil
	},
}
