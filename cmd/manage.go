package cmd

import (
	"github.com/spf13/cobra"
)

var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Create, remove, and rename keychains",
	Long: `Administers keychains themselves. Creating a keychain also generates
its first credential; removing one destroys its credential, secrets,
and backups.`,
}

func init() {
	manageCmd.AddCommand(manageCreateCmd)
	manageCmd.AddCommand(manageRemoveCmd)
	manageCmd.AddCommand(manageRenameCmd)
}
