package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	keygenKeychain string
	keygenReplace  bool
	keygenYes      bool
)

func init() {
	keygenCmd.Flags().StringVarP(&keygenKeychain, "keychain", "k", "", "target keychain (default: the active one)")
	keygenCmd.Flags().BoolVar(&keygenReplace, "replace", false, "archive the current credential and generate a fresh one")
	keygenCmd.Flags().BoolVarP(&keygenYes, "yes", "y", false, "skip confirmation prompt")
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a credential for a keychain",
	Long: `Generates a credential for the active keychain. Without --replace the
command refuses to touch a keychain that already has one.

With --replace the current credential is archived into the keychain's
backup directory and a fresh one takes its place. The stored secrets
stay sealed under the old identity until you run 'keyfold refresh'.

Examples:
  # Generate a credential for a keychain that has none
  keyfold keygen

  # Replace the credential of a specific keychain
  keyfold keygen --keychain work --replace`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Generating credential...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.Keygen(cmd.Context(), env, workflows.KeygenOptions{
			Keychain: keygenKeychain,
			Replace:  keygenReplace,
			Confirm:  confirmWith(spinner, keygenYes),
		})
		if err != nil {
			return err
		}
		if result.Cancelled {
			spinner.FinalMSG = ui.Warning.Sprint("!") + " Aborted, the credential of " +
				ui.Highlight.Sprint(result.Keychain) + " is unchanged"
			return nil
		}

		Logger.Debugf("Credential saved to %s", result.CredentialPath)
		msg := ui.Success.Sprint("✓") + " Generated credential " +
			ui.Muted.Sprint(utils.ShortIdentity(string(result.Identity))) +
			" for keychain " + ui.Highlight.Sprint(result.Keychain)
		if result.Replaced {
			msg += "\n" + ui.Info.Sprint("→") + " The old credential was archived. Run " +
				ui.Code.Sprint("keyfold refresh") + " to re-encrypt the stored secrets"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
