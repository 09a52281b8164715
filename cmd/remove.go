package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/cliout"
)

var removeCmd = &cobra.Command{
	Use:   "remove <group> <email>",
	Short: "Remove a member from a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, email := qualifyGroup(args[0]), args[1]

		if !cliout.ValidEmail(email) {
			return fmt.Errorf("invalid email address: %s", email)
		}

		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		if err := client.RemoveMember(ctx, group, email); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s\n", email, group)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
