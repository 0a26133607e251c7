package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	removeKeychain string
	removeYes      bool
)

func init() {
	removeCmd.Flags().StringVarP(&removeKeychain, "keychain", "k", "", "target keychain (default: the active one)")
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip confirmation prompt")
}

var removeCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Delete a stored secret",
	Long: `Deletes a secret from a keychain. Removing a key that does not exist is
a no-op, not an error.

Examples:
  # Remove a secret (with confirmation prompt)
  keyfold remove db-password

  # Remove without prompting
  keyfold remove db-password --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Removing secret...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.RemoveKey(cmd.Context(), env, workflows.RemoveKeyOptions{
			Keychain: removeKeychain,
			Key:      args[0],
			Confirm:  confirmWith(spinner, removeYes),
		})
		if err != nil {
			return err
		}
		if result.Cancelled {
			spinner.FinalMSG = ui.Warning.Sprint("!") + " Aborted, " + ui.Highlight.Sprint(result.Key) + " was not removed"
			return nil
		}
		if !result.Removed {
			spinner.FinalMSG = ui.Info.Sprint("→") + " Keychain " + ui.Highlight.Sprint(result.Keychain) +
				" has no key " + ui.Highlight.Sprint(result.Key) + ", nothing to do"
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(result.Key) +
			" from keychain " + ui.Highlight.Sprint(result.Keychain)
		return nil
	},
}
