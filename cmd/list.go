package cmd

import (
	"fmt"
	"strings"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var listKeys bool

func init() {
	listCmd.Flags().BoolVar(&listKeys, "keys", false, "also list the key names of the active keychain")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List keychains, marking the active one",
	Long: `Lists every keychain with its credential identity and the number of
secrets it holds. The active keychain is marked with an asterisk.

Examples:
  # List keychains
  keyfold list

  # Also show the key names stored in the active keychain
  keyfold list --keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Listing keychains...")
		defer cleanup()

		env, err := workflows.Setup(cmd.Context())
		if err != nil {
			return err
		}

		result, err := workflows.List(cmd.Context(), env, workflows.ListOptions{Keys: listKeys})
		if err != nil {
			return err
		}

		if len(result.Keychains) == 0 {
			spinner.FinalMSG = ui.Info.Sprint("→") + " No keychains yet. Run " +
				ui.Code.Sprint("keyfold manage create <name>") + " to create one"
			return nil
		}

		var b strings.Builder
		for _, info := range result.Keychains {
			marker := " "
			if info.Active {
				marker = ui.Success.Sprint("*")
			}
			identity := "no credential"
			if info.Identity != "" {
				identity = utils.ShortIdentity(string(info.Identity))
			}
			fmt.Fprintf(&b, "%s %s  %s  %d key(s)\n",
				marker, ui.Highlight.Sprint(info.Name), ui.Muted.Sprint(identity), info.KeyCount)
		}
		if result.FellBack {
			b.WriteString(ui.Warning.Sprint("!") + " No default keychain set, " +
				ui.Highlight.Sprint(result.Active) + " was chosen by name order. Pin one with " +
				ui.Code.Sprint("keyfold use "+result.Active) + "\n")
		}
		if listKeys {
			for _, key := range result.Keys {
				b.WriteString("  " + key + "\n")
			}
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}
