package cmd

import (
	"errors"
	"strings"

	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <keychain>",
	Short: "Make a keychain the default",
	Long: `Points the default at the named keychain. The switch is atomic: it
either completes or leaves the previous default untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		spinner, cleanup := startSpinner("Switching default keychain...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.Use(cmd.Context(), env, workflows.UseOptions{Name: name})
		if err != nil {
			if errors.Is(err, kerrors.ErrKeychainNotFound) {
				known, listErr := env.Store.Keychains()
				if listErr == nil && len(known) > 0 {
					return fail(spinner, "No keychain named "+ui.Highlight.Sprint(name)+
						". Known keychains: "+strings.Join(known, ", "))
				}
				return fail(spinner, "No keychain named "+ui.Highlight.Sprint(name)+
					". Run "+ui.Code.Sprint("keyfold manage create "+name)+" to create it")
			}
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Default keychain is now " + ui.Highlight.Sprint(result.Name)
		return nil
	},
}
