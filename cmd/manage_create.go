package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var manageCreateCmd = &cobra.Command{
	Use:   "create <keychain>",
	Short: "Create a keychain with a fresh credential",
	Long: `Creates a new keychain and generates its first credential. The keychain
starts empty; store secrets into it with 'keyfold write'.

Examples:
  # Create a keychain named work
  keyfold manage create work

  # Make it the default afterwards
  keyfold use work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Creating keychain %s", name)
		spinner, cleanup := startSpinner("Creating keychain...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.CreateKeychain(cmd.Context(), env, workflows.CreateKeychainOptions{Name: name})
		if err != nil {
			return err
		}

		Logger.Debugf("Credential saved to %s", result.CredentialPath)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created keychain " + ui.Highlight.Sprint(result.Name) +
			" with credential " + ui.Muted.Sprint(utils.ShortIdentity(string(result.Identity))) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyfold use "+result.Name) + " to make it the default"
		return nil
	},
}
