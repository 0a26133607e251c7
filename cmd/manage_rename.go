package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var manageRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a keychain",
	Long: `Renames a keychain in place. Its credential, secrets, and backups move
with it, and if it was the default the default follows the rename.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName, newName := args[0], args[1]
		spinner, cleanup := startSpinner("Renaming keychain...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.RenameKeychain(cmd.Context(), env, workflows.RenameKeychainOptions{
			OldName: oldName,
			NewName: newName,
		})
		if err != nil {
			return err
		}

		msg := ui.Success.Sprint("✓") + " Renamed keychain " + ui.Highlight.Sprint(result.OldName) +
			" to " + ui.Highlight.Sprint(result.NewName)
		if result.WasDefault {
			msg += "\n" + ui.Info.Sprint("→") + " It is still the default keychain"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
