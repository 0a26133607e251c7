package cmd

import (
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/secrets"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var refreshKeychain string

func init() {
	refreshCmd.Flags().StringVarP(&refreshKeychain, "keychain", "k", "", "target keychain (default: the active one)")
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-encrypt every secret under the current credential",
	Long: `Re-encrypts every secret in a keychain under its current credential.
Run it after 'keyfold keygen --replace' so the stored secrets stop
depending on the archived credential.

Each secret's previous ciphertext is copied into the keychain's backup
directory before being overwritten. A secret that fails to re-encrypt
is skipped and reported; the rest proceed.

Examples:
  # Refresh the active keychain
  keyfold refresh

  # Refresh a specific keychain
  keyfold refresh --keychain work`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Refreshing secrets...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.Refresh(cmd.Context(), env, workflows.RefreshOptions{
			Keychain: refreshKeychain,
			OnItem: func(item secrets.ItemResult) {
				if item.Err != nil {
					Logger.Errorf("Failed to re-encrypt %s: %v", item.Key, item.Err)
					return
				}
				Logger.Infof("Re-encrypted %s", item.Key)
			},
		})
		if err != nil && !errors.Is(err, kerrors.ErrPartialRefresh) {
			return err
		}

		report := result.Report
		if errors.Is(err, kerrors.ErrPartialRefresh) {
			var b strings.Builder
			fmt.Fprintf(&b, "%s Refreshed %d of %d secret(s) in keychain %s\n",
				ui.Error.Sprint("✗"), report.Processed, report.Processed+report.Failed,
				ui.Highlight.Sprint(report.Keychain))
			for _, item := range report.Items {
				if item.Err != nil {
					fmt.Fprintf(&b, "  %s %s: %v\n", ui.Error.Sprint("✗"), item.Key, item.Err)
				}
			}
			b.WriteString(ui.Info.Sprint("→") + " The previous ciphertexts are in the keychain's backup directory")
			spinner.FinalMSG = b.String()
			return errCommandFailed
		}

		if report.Processed == 0 {
			spinner.FinalMSG = ui.Info.Sprint("→") + " Keychain " + ui.Highlight.Sprint(report.Keychain) +
				" holds no secrets, nothing to refresh"
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Re-encrypted %d secret(s) in keychain %s under %s",
			report.Processed, ui.Highlight.Sprint(report.Keychain),
			ui.Muted.Sprint(utils.ShortIdentity(string(report.Identity))))
		return nil
	},
}
