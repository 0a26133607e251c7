package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var writeKeychain string

func init() {
	writeCmd.Flags().StringVarP(&writeKeychain, "keychain", "k", "", "target keychain (default: the active one)")
}

var writeCmd = &cobra.Command{
	Use:   "write <key>",
	Short: "Encrypt and store a secret",
	Long: `Stores a secret under the given key name, encrypted with the keychain's
current credential. Writing an existing key overwrites it.

The value is read from stdin when piped, otherwise prompted for without
echo. It never appears on the command line or in shell history.

Examples:
  # Prompt for the value (hidden input)
  keyfold write db-password

  # Pipe the value in
  openssl rand -base64 32 | keyfold write api-token`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		// Collect the value before the spinner so the prompt owns the
		// terminal.
		var value []byte
		var err error
		if utils.IsTerminal() {
			value, err = utils.ReadSecretValue("Enter value for " + key + ": ")
		} else {
			value, err = utils.ReadStdin()
		}
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Encrypting secret...")
		defer cleanup()

		if len(value) == 0 {
			return fail(spinner, "Refusing to store an empty value for "+ui.Highlight.Sprint(key))
		}

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.Write(cmd.Context(), env, workflows.WriteOptions{
			Keychain:  writeKeychain,
			Key:       key,
			Plaintext: value,
		})
		if err != nil {
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Stored " + ui.Highlight.Sprint(result.Key) +
			" in keychain " + ui.Highlight.Sprint(result.Keychain) +
			" under " + ui.Muted.Sprint(utils.ShortIdentity(string(result.Identity)))
		return nil
	},
}
