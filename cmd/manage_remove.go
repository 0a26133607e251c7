package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var manageRemoveYes bool

func init() {
	manageRemoveCmd.Flags().BoolVarP(&manageRemoveYes, "yes", "y", false, "skip confirmation prompt")
}

var manageRemoveCmd = &cobra.Command{
	Use:   "remove <keychain>",
	Short: "Destroy a keychain with all its secrets",
	Long: `Destroys a keychain: its credential, every stored secret, and every
backup. This cannot be undone.

Examples:
  # Remove a keychain (with confirmation prompt)
  keyfold manage remove work

  # Remove without prompting
  keyfold manage remove work --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		spinner, cleanup := startSpinner("Removing keychain...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.RemoveKeychain(cmd.Context(), env, workflows.RemoveKeychainOptions{
			Name:    name,
			Confirm: confirmWith(spinner, manageRemoveYes),
		})
		if err != nil {
			return err
		}
		if result.Cancelled {
			spinner.FinalMSG = ui.Warning.Sprint("!") + " Aborted, keychain " + ui.Highlight.Sprint(name) + " was not removed"
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed keychain " + ui.Highlight.Sprint(result.Name)
		return nil
	},
}
