package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/cliout"
)

var renameCmd = &cobra.Command{
	Use:   "rename <group> <new_name>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, newName := qualifyGroup(args[0]), args[1]

		if msg := cliout.ValidateGroupName(newName); msg != "" {
			return fmt.Errorf("%s", msg)
		}

		// A bare new name also moves the group to <new_name>@domain; a full
		// address only changes the display name.
		domain := cfg.Domain
		if strings.Contains(newName, "@") {
			domain = ""
		}

		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		updated, err := client.RenameGroup(ctx, group, newName, domain)
		if err != nil {
			return err
		}
		fmt.Printf("Group '%s' renamed to '%s' (%s)\n", group, updated.Name, updated.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
